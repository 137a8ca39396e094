package sink

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/wonny/kabuscan/internal/screener"
	"github.com/wonny/kabuscan/internal/universe"
	"github.com/wonny/kabuscan/pkg/config"
	"github.com/wonny/kabuscan/pkg/logger"
)

// SheetsSink writes screening rows to a Google Sheets worksheet. The
// worksheet doubles as the ticker source: codes live in column A from
// row 2, results go to columns B..AB on the same rows.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
	logger        *logger.Logger
}

// NewSheetsSink creates a Sheets sink from service-account credentials.
func NewSheetsSink(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSink{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		logger:        log.WithField("module", "sheets_sink"),
	}, nil
}

// Tickers reads the universe from column A, skipping blank rows and
// normalizing bare codes to the .T suffix.
func (s *SheetsSink) Tickers(ctx context.Context) ([]string, error) {
	resp, err := s.svc.Spreadsheets.Values.
		Get(s.spreadsheetID, tickerRange(s.worksheet)).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read ticker column: %w", err)
	}

	raw := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if code, ok := row[0].(string); ok {
			raw = append(raw, code)
		}
	}

	tickers := universe.NormalizeAll(raw)
	s.logger.WithField("count", len(tickers)).Info("Loaded ticker universe")
	return tickers, nil
}

// WriteHeader writes the fixed header row to B1:AB1.
func (s *SheetsSink) WriteHeader(ctx context.Context) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{screener.Header()}}

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, headerRange(s.worksheet), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteRows overwrites the block of rows starting at startRow.
func (s *SheetsSink) WriteRows(ctx context.Context, startRow int, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	vr := &sheets.ValueRange{Values: rows}
	rng := rowRange(s.worksheet, startRow, len(rows))

	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write rows %s: %w", rng, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"range": rng,
		"rows":  len(rows),
	}).Debug("Wrote result rows")
	return nil
}

// Close is a no-op; the sheets service holds no persistent connection.
func (s *SheetsSink) Close() error {
	return nil
}
