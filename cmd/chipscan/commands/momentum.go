package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/report"
)

// momentumCmd produces the daily gainer/loser leaderboards
var momentumCmd = &cobra.Command{
	Use:   "momentum",
	Short: "強弱勢股排行 (依漲跌幅)",
	Long: `列出當日強勢股與弱勢股排行。

依漲跌幅排序, 排除 ETF、權證與 KY 股,
並套用最低成交量門檻 (預設 1000 張)。

Example:
  go run ./cmd/chipscan momentum
  go run ./cmd/chipscan momentum --date 2026-08-28 --csv`,
	RunE: runMomentum,
}

var (
	momentumDate string
	momentumCSV  bool
)

func init() {
	rootCmd.AddCommand(momentumCmd)

	momentumCmd.Flags().StringVar(&momentumDate, "date", "", "交易日 (YYYY-MM-DD, 預設今天)")
	momentumCmd.Flags().BoolVar(&momentumCSV, "csv", false, "匯出 CSV 至報表目錄")
}

func runMomentum(cmd *cobra.Command, args []string) error {
	d, err := buildDeps()
	if err != nil {
		return err
	}

	date, err := parseDateFlag(momentumDate)
	if err != nil {
		return err
	}

	rep, err := d.service.Momentum(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("momentum report: %w", err)
	}

	printTableHeader("強弱勢股排行", date)
	fmt.Println("\n▲ 強勢股")
	printTable(rep.StrongTable(), 20)
	fmt.Println("\n▼ 弱勢股")
	printTable(rep.WeakTable(), 20)

	if momentumCSV {
		return exportCSV(d.cfg.Report.OutputDir, date, map[string]*report.Table{
			"momentum_strong.csv": rep.StrongTable(),
			"momentum_weak.csv":   rep.WeakTable(),
		})
	}
	return nil
}
