package main

import (
	"os"

	"github.com/wonny/kabuscan/cmd/kabuscan/commands"
)

// main is the entry point for the kabuscan CLI.
// 統合CLI進入点: go run ./cmd/kabuscan [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
