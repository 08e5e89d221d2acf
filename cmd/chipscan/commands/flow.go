package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/report"
)

// flowCmd produces the institutional net buy/sell leaderboards
var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "法人買賣超排行",
	Long: `列出當日三大法人 (外資、投信、自營商) 合計買超與賣超排行。

Example:
  go run ./cmd/chipscan flow
  go run ./cmd/chipscan flow --date 2026-08-28 --csv`,
	RunE: runFlow,
}

var (
	flowDate string
	flowCSV  bool
)

func init() {
	rootCmd.AddCommand(flowCmd)

	flowCmd.Flags().StringVar(&flowDate, "date", "", "交易日 (YYYY-MM-DD, 預設今天)")
	flowCmd.Flags().BoolVar(&flowCSV, "csv", false, "匯出 CSV 至報表目錄")
}

func runFlow(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(flowDate)
	if err != nil {
		return err
	}

	rep, err := d.service.Flow(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("flow report: %w", err)
	}

	printTableHeader("法人買賣超排行", date)
	fmt.Println("\n▲ 法人買超")
	printTable(rep.BuyTable(), 20)
	fmt.Println("\n▼ 法人賣超")
	printTable(rep.SellTable(), 20)

	if flowCSV {
		return exportCSV(d.cfg.Report.OutputDir, date, map[string]*report.Table{
			"flow_buy.csv":  rep.BuyTable(),
			"flow_sell.csv": rep.SellTable(),
		})
	}
	return nil
}
