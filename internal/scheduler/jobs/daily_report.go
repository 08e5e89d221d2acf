// Package jobs contains the scheduled job implementations.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pochun/chipscan/internal/contracts"
	"github.com/pochun/chipscan/internal/report"
	"github.com/pochun/chipscan/pkg/logger"
)

// DailyReportJob generates the post-close reports every trading day
// ⭐ SSOT: 盤後報表排程只在這個 Job
type DailyReportJob struct {
	service   *report.Service
	outputDir string
	spec      string
	logger    *logger.Logger
}

// NewDailyReportJob creates the post-close report job.
func NewDailyReportJob(service *report.Service, outputDir, spec string, log *logger.Logger) *DailyReportJob {
	return &DailyReportJob{
		service:   service,
		outputDir: outputDir,
		spec:      spec,
		logger:    log,
	}
}

// Name returns the job name
func (j *DailyReportJob) Name() string {
	return "daily_report"
}

// Schedule returns the cron schedule
func (j *DailyReportJob) Schedule() string {
	return j.spec
}

// Run generates the flow and streak reports for today and exports them as
// CSV under the output directory. A holiday (no market data) is a normal
// outcome, not a failure to retry.
func (j *DailyReportJob) Run(ctx context.Context) error {
	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	stamp := date.Format("20060102")

	dir := filepath.Join(j.outputDir, stamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	flow, err := j.service.Flow(ctx, date)
	if err != nil {
		if errors.Is(err, contracts.ErrNoMarketData) {
			j.logger.WithField("date", stamp).Info("No market data, skipping daily report")
			return nil
		}
		return fmt.Errorf("flow report: %w", err)
	}

	tables := map[string]*report.Table{
		"flow_buy.csv":  flow.BuyTable(),
		"flow_sell.csv": flow.SellTable(),
	}

	strk, err := j.service.Streak(ctx, date)
	if err != nil {
		return fmt.Errorf("streak report: %w", err)
	}
	tables["streak_buy.csv"] = strk.BuyTable()
	tables["streak_sell.csv"] = strk.SellTable()

	for name, table := range tables {
		if err := writeTable(filepath.Join(dir, name), table); err != nil {
			return err
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"date": stamp,
		"dir":  dir,
	}).Info("Daily reports exported")

	return nil
}

func writeTable(path string, table *report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := table.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
