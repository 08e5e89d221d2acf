package main

import (
	"os"

	"github.com/pochun/chipscan/cmd/chipscan/commands"
)

// main is the entry point for the chipscan CLI
// ⭐ 統一 CLI 進入點: go run ./cmd/chipscan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
