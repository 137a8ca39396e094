package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd verifies configuration and connectivity before a real run.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "設定と接続の確認",
	Long: `設定・シンク・データソースの疎通を確認します。

この命令は:
- 設定の読み込みと検証
- シンクから銘柄ユニバースを読み込み
- 先頭銘柄の株価を試験取得

Example:
  go run ./cmd/kabuscan check`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := initApp(ctx)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.close()

	fmt.Printf("✅ Config loaded (env=%s, sink=%s)\n", a.cfg.Env, a.cfg.SinkKind)

	tickers, err := a.sink.Tickers(ctx)
	if err != nil {
		return fmt.Errorf("❌ universe load failed: %w", err)
	}
	fmt.Printf("✅ Universe loaded: %d tickers\n", len(tickers))

	if len(tickers) == 0 {
		fmt.Println("⚠️  Universe is empty, skipping quote check")
		return nil
	}

	sample := tickers[0]
	closes := a.prices.FetchLastCloses(ctx, []string{sample})
	if price := closes[sample]; price != nil {
		fmt.Printf("✅ Quote check: %s last close %.1f\n", sample, *price)
	} else {
		fmt.Printf("⚠️  Quote check: no close price for %s\n", sample)
	}

	return nil
}
