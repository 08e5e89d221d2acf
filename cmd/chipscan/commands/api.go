package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pochun/chipscan/internal/api"
	"github.com/pochun/chipscan/internal/api/handlers"
	"github.com/pochun/chipscan/internal/scheduler"
	"github.com/pochun/chipscan/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 伺服器啟動",
	Long: `啟動 REST API 伺服器。

Endpoints:
  GET /health                       - Health check
  GET /api/v1/reports/momentum      - 強弱勢股排行
  GET /api/v1/reports/flow          - 法人買賣超排行
  GET /api/v1/reports/streak        - 法人連續買賣超排行
  GET /api/v1/portfolio             - 自選持股行情

Example:
  go run ./cmd/chipscan api
  go run ./cmd/chipscan api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 伺服器埠號 (預設取環境變數 PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== chipscan API Server ===")

	d, err := buildDeps()
	if err != nil {
		return err
	}
	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	reportsHandler := handlers.NewReportsHandler(d.service, d.log)
	router := api.NewRouter(reportsHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	// SCHEDULER_ENABLED=true 時, API 伺服器同時跑盤後排程
	if d.cfg.Scheduler.Enabled {
		sched := scheduler.New(d.log)
		job := jobs.NewDailyReportJob(d.service, d.cfg.Report.OutputDir, d.cfg.Scheduler.Spec, d.log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("add job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
