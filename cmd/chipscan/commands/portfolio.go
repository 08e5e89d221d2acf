package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/report"
)

// portfolioCmd resolves holdings quotes against the day's snapshot
var portfolioCmd = &cobra.Command{
	Use:   "portfolio [持股清單]",
	Short: "自選持股行情查詢",
	Long: `查詢自選持股的當日行情與法人買賣超。

持股清單為自由格式, 同時接受代號與中文名稱:

Example:
  go run ./cmd/chipscan portfolio "2330 2454 長榮"
  go run ./cmd/chipscan portfolio 台積電 --date 2026-08-28`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPortfolio,
}

var portfolioDate string

func init() {
	rootCmd.AddCommand(portfolioCmd)

	portfolioCmd.Flags().StringVar(&portfolioDate, "date", "", "交易日 (YYYY-MM-DD, 預設今天)")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(portfolioDate)
	if err != nil {
		return err
	}

	rows, err := d.service.Portfolio(cmd.Context(), date, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("portfolio lookup: %w", err)
	}

	printTableHeader("自選持股行情", date)
	if len(rows) == 0 {
		fmt.Println("查無符合的持股")
		return nil
	}
	printTable(report.PortfolioTable(rows), 0)
	return nil
}
