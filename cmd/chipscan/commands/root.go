package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chipscan",
	Short: "chipscan - 台股法人籌碼掃描工具",
	Long: `chipscan CLI

整合上市 (TWSE) 與上櫃 (TPEX) 盤後資料,
產出強弱勢股、法人買賣超與法人連續買賣超排行。

Usage:
  go run ./cmd/chipscan [command]

Examples:
  go run ./cmd/chipscan flow
  go run ./cmd/chipscan streak --date 2026-08-28
  go run ./cmd/chipscan api
  go run ./cmd/chipscan scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
