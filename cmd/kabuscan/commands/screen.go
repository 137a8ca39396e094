package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var screenForce bool

// screenCmd runs a full screening pass once.
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "スクリーニングを1回実行",
	Long: `銘柄ユニバース全体を1回スクリーニングします。

この命令は:
- シンクから銘柄リストを読み込み
- バッチごとに株価を一括取得
- 3段階ゲート + バリュエーションを並列実行
- 結果をシンクへ逐次書き込み

休場日は何もせず終了します (--force で強制実行)。

Example:
  go run ./cmd/kabuscan screen
  go run ./cmd/kabuscan screen --force`,
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.Flags().BoolVar(&screenForce, "force", false, "休場日でも実行する")
}

func runScreen(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Ctrl+C stops cleanly between batches.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	a, err := initApp(ctx)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.close()

	if err := a.runner.Run(ctx, screenForce); err != nil {
		return fmt.Errorf("screening run: %w", err)
	}
	return nil
}
