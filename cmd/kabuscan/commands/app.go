package commands

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/kabuscan/internal/batch"
	"github.com/wonny/kabuscan/internal/external/yahoo"
	"github.com/wonny/kabuscan/internal/external/yahoojp"
	"github.com/wonny/kabuscan/internal/screener"
	"github.com/wonny/kabuscan/internal/sink"
	"github.com/wonny/kabuscan/pkg/config"
	"github.com/wonny/kabuscan/pkg/database"
	"github.com/wonny/kabuscan/pkg/httputil"
	"github.com/wonny/kabuscan/pkg/logger"
)

// app bundles the wired pipeline shared by the CLI commands.
type app struct {
	cfg    *config.Config
	logger *logger.Logger
	sink   sink.Sink
	runner *batch.Runner
	prices *yahoo.Client
}

// initApp wires config, logger, HTTP clients, gateways, engine, sink and
// runner. The API client is rate limited; the scrape client is paced with
// a randomized delay to stay polite toward Yahoo!ファイナンス.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	apiClient := httputil.New(log, 30*time.Second).
		WithRateLimiter(rate.NewLimiter(rate.Limit(2), 1))

	scrapeClient := httputil.New(log, 20*time.Second).
		WithPacing(1500*time.Millisecond, 3*time.Second)

	yahooClient := yahoo.NewClient(apiClient, log)
	profileClient := yahoojp.NewClient(scrapeClient, log)

	engine := screener.NewEngine(yahooClient, profileClient, log)

	out, err := buildSink(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.Screener.TickerFile != "" {
		out = sink.WithFileUniverse(out, cfg.Screener.TickerFile)
	}

	return &app{
		cfg:    cfg,
		logger: log,
		sink:   out,
		runner: batch.NewRunner(engine, yahooClient, out, cfg.Screener, log),
		prices: yahooClient,
	}, nil
}

// buildSink creates the configured output sink.
func buildSink(ctx context.Context, cfg *config.Config, log *logger.Logger) (sink.Sink, error) {
	switch cfg.SinkKind {
	case config.SinkSheets:
		s, err := sink.NewSheetsSink(ctx, cfg.Sheets, log)
		if err != nil {
			return nil, fmt.Errorf("init sheets sink: %w", err)
		}
		return s, nil

	case config.SinkPostgres:
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		s, err := sink.NewPostgresSink(ctx, db, log)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("init postgres sink: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown sink kind: %s", cfg.SinkKind)
	}
}

// close releases the app's resources.
func (a *app) close() {
	if err := a.sink.Close(); err != nil {
		a.logger.WithError(err).Warn("Sink close failed")
	}
}
