package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/report"
)

// streakCmd produces the consecutive buy/sell leaderboards
var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "法人連續買賣超排行",
	Long: `回推近期交易日的籌碼資料, 計算外資與投信的連續買超/賣超天數。

逐日呼叫交易所端點, 視窗 25 個交易日 (上限 60 個日曆日),
執行時間以分鐘計。

Example:
  go run ./cmd/chipscan streak
  go run ./cmd/chipscan streak --date 2026-08-28 --csv`,
	RunE: runStreak,
}

var (
	streakDate string
	streakCSV  bool
)

func init() {
	rootCmd.AddCommand(streakCmd)

	streakCmd.Flags().StringVar(&streakDate, "date", "", "基準交易日 (YYYY-MM-DD, 預設今天)")
	streakCmd.Flags().BoolVar(&streakCSV, "csv", false, "匯出 CSV 至報表目錄")
}

func runStreak(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(streakDate)
	if err != nil {
		return err
	}

	fmt.Printf("回推籌碼歷史中 (視窗 %d 個交易日)...\n", d.cfg.Scan.Window)

	rep, err := d.service.Streak(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("streak report: %w", err)
	}

	printTableHeader("法人連續買賣超排行", date)
	fmt.Println("\n▲ 連續買超")
	printTable(rep.BuyTable(), 20)
	fmt.Println("\n▼ 連續賣超")
	printTable(rep.SellTable(), 20)

	if streakCSV {
		return exportCSV(d.cfg.Report.OutputDir, date, map[string]*report.Table{
			"streak_buy.csv":  rep.BuyTable(),
			"streak_sell.csv": rep.SellTable(),
		})
	}
	return nil
}
