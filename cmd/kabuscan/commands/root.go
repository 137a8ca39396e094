package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kabuscan",
	Short: "kabuscan - 日本株スクリーニング・バリュエーションエンジン",
	Long: `kabuscan CLI

3段階の適格性ゲートと疑似配当バリュエーションで日本株を
スクリーニングし、結果をスプレッドシートへ書き込みます。

Usage:
  go run ./cmd/kabuscan [command]

Examples:
  go run ./cmd/kabuscan screen
  go run ./cmd/kabuscan screen --force
  go run ./cmd/kabuscan scheduler start
  go run ./cmd/kabuscan check`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
