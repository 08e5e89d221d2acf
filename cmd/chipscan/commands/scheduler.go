package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/scheduler"
	"github.com/pochun/chipscan/internal/scheduler/jobs"
)

// schedulerCmd runs the daily report scheduler in the foreground
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "盤後報表排程器啟動",
	Long: `啟動盤後報表排程器。

平日收盤後 (預設 15:30) 自動產出法人買賣超與連續買賣超報表,
並匯出 CSV 至報表目錄。

Example:
  go run ./cmd/chipscan scheduler
  SCHEDULER_SPEC="0 0 16 * * 1-5" go run ./cmd/chipscan scheduler`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "now", false, "啟動後立即執行一次")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== chipscan Scheduler ===")

	d, err := buildDeps()
	if err != nil {
		return err
	}

	sched := scheduler.New(d.log)
	job := jobs.NewDailyReportJob(d.service, d.cfg.Report.OutputDir, d.cfg.Scheduler.Spec, d.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("\n✅ Scheduler running (spec: %s)\n", d.cfg.Scheduler.Spec)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
