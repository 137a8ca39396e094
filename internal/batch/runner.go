// Package batch drives a full screening run: universe load, batching,
// concurrent analysis, and positional sink writes.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/kabuscan/internal/marketcal"
	"github.com/wonny/kabuscan/internal/screener"
	"github.com/wonny/kabuscan/internal/sink"
	"github.com/wonny/kabuscan/pkg/config"
	"github.com/wonny/kabuscan/pkg/logger"
)

// Analyzer screens a single ticker.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, prices screener.PriceCache) *screener.Result
}

// PriceFetcher bulk-fetches last close prices for a batch of tickers.
type PriceFetcher interface {
	FetchLastCloses(ctx context.Context, tickers []string) map[string]*float64
}

// Runner executes the screening pipeline. Each batch is priced in one
// bulk call, analyzed by a bounded worker pool, and written to the sink
// at its fixed row offset so a re-run overwrites in place.
type Runner struct {
	analyzer Analyzer
	prices   PriceFetcher
	sink     sink.Sink
	cfg      config.ScreenerConfig
	logger   *logger.Logger

	now func() time.Time
}

// NewRunner creates a batch runner.
func NewRunner(analyzer Analyzer, prices PriceFetcher, out sink.Sink, cfg config.ScreenerConfig, log *logger.Logger) *Runner {
	return &Runner{
		analyzer: analyzer,
		prices:   prices,
		sink:     out,
		cfg:      cfg,
		logger:   log.WithField("module", "batch"),
		now:      marketcal.Now,
	}
}

// Run executes one full screening pass. On a non-trading day the run is
// a no-op unless force is set. A failed batch write is logged and the
// run continues; only a failed universe load or header write aborts.
func (r *Runner) Run(ctx context.Context, force bool) error {
	if ok, reason := marketcal.IsTradingDay(r.now()); !ok && !force {
		r.logger.WithField("reason", reason).Info("Market closed, skipping run")
		return nil
	}

	tickers, err := r.sink.Tickers(ctx)
	if err != nil {
		return fmt.Errorf("load ticker universe: %w", err)
	}
	if len(tickers) == 0 {
		r.logger.Warn("Ticker universe is empty, nothing to do")
		return nil
	}

	if err := r.sink.WriteHeader(ctx); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	batches := partition(tickers, r.cfg.BatchSize)
	r.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"batches": len(batches),
		"workers": r.cfg.Workers,
	}).Info("Starting screening run")

	start := time.Now()
	failedWrites := 0

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows := r.runBatch(ctx, i, batch)

		// Data rows start at sheet row 2, each batch at its fixed offset.
		startRow := 2 + i*r.cfg.BatchSize
		if err := r.sink.WriteRows(ctx, startRow, rows); err != nil {
			failedWrites++
			r.logger.WithError(err).WithFields(map[string]interface{}{
				"batch":     i + 1,
				"start_row": startRow,
			}).Error("Batch write failed, continuing")
		} else if err := sleepCtx(ctx, r.cfg.PostWriteDelay); err != nil {
			return err
		}

		if i < len(batches)-1 {
			if err := sleepCtx(ctx, r.cfg.InterBatchDelay); err != nil {
				return err
			}
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"tickers":       len(tickers),
		"failed_writes": failedWrites,
		"duration":      time.Since(start).Round(time.Second).String(),
	}).Info("Screening run completed")
	return nil
}

// runBatch analyzes one batch and returns its rows in ticker order.
func (r *Runner) runBatch(ctx context.Context, batchIdx int, tickers []string) [][]interface{} {
	r.logger.WithFields(map[string]interface{}{
		"batch":   batchIdx + 1,
		"tickers": len(tickers),
	}).Info("Processing batch")

	// One bulk quote per batch; per-ticker fallbacks cover the gaps.
	cache := screener.PriceCache(r.prices.FetchLastCloses(ctx, tickers))

	type job struct {
		idx    int
		ticker string
	}
	type rowResult struct {
		idx int
		row []interface{}
	}

	jobCh := make(chan job, len(tickers))
	resultCh := make(chan rowResult, len(tickers))

	var wg sync.WaitGroup
	for w := 0; w < r.cfg.Workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobCh {
				resultCh <- rowResult{idx: j.idx, row: r.analyzeOne(ctx, workerID, j.ticker, cache)}
			}
		}(w)
	}

	for i, t := range tickers {
		jobCh <- job{idx: i, ticker: t}
	}
	close(jobCh)

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	rows := make([][]interface{}, len(tickers))
	for res := range resultCh {
		rows[res.idx] = res.row
	}
	return rows
}

// analyzeOne runs a single analysis behind its own recovery boundary.
// The engine absorbs its own faults; this catches anything that still
// escapes so one ticker can never sink its batch.
func (r *Runner) analyzeOne(ctx context.Context, workerID int, ticker string, cache screener.PriceCache) (row []interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(map[string]interface{}{
				"worker": workerID,
				"ticker": ticker,
				"panic":  rec,
			}).Error("Analysis panicked, emitting blank row")
			row = screener.BlankRow()
		}
	}()

	res := r.analyzer.Analyze(ctx, ticker, cache)
	if res == nil {
		return screener.BlankRow()
	}
	return res.Row()
}

// partition splits tickers into consecutive chunks of at most size.
func partition(tickers []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var batches [][]string
	for start := 0; start < len(tickers); start += size {
		end := start + size
		if end > len(tickers) {
			end = len(tickers)
		}
		batches = append(batches, tickers[start:end])
	}
	return batches
}

// sleepCtx sleeps for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
