package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pochun/chipscan/internal/report"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 所有指令共用同一套輸出格式
// ═══════════════════════════════════════════════════════════

// printTableHeader prints a formatted report header
func printTableHeader(title string, date time.Time) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  %s\n", title)
	fmt.Printf("  日期: %s\n", date.Format("2006-01-02"))
	fmt.Println("───────────────────────────────────────────────────────────")
}

// printTable renders a report table to stdout, columns joined by tabs.
func printTable(table *report.Table, limit int) {
	fmt.Println(strings.Join(table.Columns, "\t"))
	for i, row := range table.Rows {
		if limit > 0 && i >= limit {
			fmt.Printf("... (%d more rows)\n", len(table.Rows)-limit)
			break
		}
		fmt.Println(strings.Join(row, "\t"))
	}
}

// exportCSV writes tables into dir, one file per table, and reports the paths.
func exportCSV(dir string, date time.Time, tables map[string]*report.Table) error {
	out := filepath.Join(dir, date.Format("20060102"))
	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for name, table := range tables {
		path := filepath.Join(out, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := table.WriteCSV(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		f.Close()
		fmt.Printf("✅ %s\n", path)
	}
	return nil
}
