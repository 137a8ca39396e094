// Package sink writes screening rows to their destination. The row schema
// is fixed: 27 cells per ticker, columns B through AB, header on row 1,
// data from row 2. Both implementations overwrite by position so re-runs
// are idempotent.
package sink

import (
	"context"
	"fmt"
)

// Sink is the output destination for a screening run.
type Sink interface {
	// Tickers returns the universe to screen, already normalized.
	Tickers(ctx context.Context) ([]string, error)

	// WriteHeader writes the fixed header row.
	WriteHeader(ctx context.Context) error

	// WriteRows writes rows starting at the given 1-based sheet row,
	// overwriting whatever is there.
	WriteRows(ctx context.Context, startRow int, rows [][]interface{}) error

	Close() error
}

// rowRange returns the A1-notation range covering len(rows) data rows
// starting at startRow, e.g. "screen!B2:AB51".
func rowRange(worksheet string, startRow, rowCount int) string {
	return fmt.Sprintf("%s!B%d:AB%d", worksheet, startRow, startRow+rowCount-1)
}

// headerRange returns the A1-notation range of the header row.
func headerRange(worksheet string) string {
	return fmt.Sprintf("%s!B1:AB1", worksheet)
}

// tickerRange returns the A1-notation range of the ticker column.
func tickerRange(worksheet string) string {
	return fmt.Sprintf("%s!A2:A", worksheet)
}
