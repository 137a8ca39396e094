package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wonny/kabuscan/internal/screener"
	"github.com/wonny/kabuscan/internal/universe"
	"github.com/wonny/kabuscan/pkg/database"
	"github.com/wonny/kabuscan/pkg/logger"
)

// PostgresSink mirrors the sheet layout into two tables: screen_universe
// holds the ticker list in display order, screen_results holds one row
// per sheet row keyed by its position. Writes upsert by row number, so a
// re-run overwrites in place exactly like the sheet does.
type PostgresSink struct {
	db     *database.DB
	logger *logger.Logger
}

// NewPostgresSink creates a Postgres sink and ensures its schema exists.
func NewPostgresSink(ctx context.Context, db *database.DB, log *logger.Logger) (*PostgresSink, error) {
	s := &PostgresSink{
		db:     db,
		logger: log.WithField("module", "postgres_sink"),
	}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresSink) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS screen_universe (
			position INT PRIMARY KEY,
			ticker   TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS screen_results (
			row_no     INT PRIMARY KEY,
			cells      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`

	if _, err := s.db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure sink schema: %w", err)
	}
	return nil
}

// Tickers loads the universe ordered by its sheet position.
func (s *PostgresSink) Tickers(ctx context.Context) ([]string, error) {
	rows, err := s.db.Pool.Query(ctx,
		`SELECT ticker FROM screen_universe ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("read ticker universe: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		raw = append(raw, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ticker universe: %w", err)
	}

	tickers := universe.NormalizeAll(raw)
	s.logger.WithField("count", len(tickers)).Info("Loaded ticker universe")
	return tickers, nil
}

// WriteHeader stores the header as row 1, same as the sheet layout.
func (s *PostgresSink) WriteHeader(ctx context.Context) error {
	return s.upsertRow(ctx, 1, screener.Header())
}

// WriteRows upserts the block of rows starting at startRow.
func (s *PostgresSink) WriteRows(ctx context.Context, startRow int, rows [][]interface{}) error {
	for i, row := range rows {
		if err := s.upsertRow(ctx, startRow+i, row); err != nil {
			return err
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"start_row": startRow,
		"rows":      len(rows),
	}).Debug("Wrote result rows")
	return nil
}

func (s *PostgresSink) upsertRow(ctx context.Context, rowNo int, cells []interface{}) error {
	payload, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("marshal row %d: %w", rowNo, err)
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO screen_results (row_no, cells, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (row_no) DO UPDATE
		SET cells = EXCLUDED.cells, updated_at = now()`,
		rowNo, payload)
	if err != nil {
		return fmt.Errorf("upsert row %d: %w", rowNo, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() error {
	s.db.Close()
	return nil
}
