package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
)

// importLedger implements driven.ImportLedger.
type importLedger struct {
	store *Store
}

var _ driven.ImportLedger = (*importLedger)(nil)

// Record inserts a run, replacing any earlier row with the same ID.
func (l *importLedger) Record(ctx context.Context, run domain.ImportRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := l.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_runs
			(id, provider, query, target, fetched, imported, skipped, started_at, finished_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Provider.String(), run.Query, run.Target,
		run.Fetched, run.Imported, run.Skipped,
		formatTime(run.StartedAt), formatTime(run.FinishedAt),
		nullString(run.Error))
	if err != nil {
		return fmt.Errorf("recording import run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (l *importLedger) Get(ctx context.Context, id string) (*domain.ImportRun, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT id, provider, query, target, fetched, imported, skipped, started_at, finished_at, error
		FROM import_runs WHERE id = ?
	`, id)

	run, err := scanImportRun(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns up to limit runs, most recent first. A non-positive limit
// returns every run.
func (l *importLedger) List(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT id, provider, query, target, fetched, imported, skipped, started_at, finished_at, error
		FROM import_runs
		ORDER BY started_at DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying import runs: %w", err)
	}
	defer rows.Close()

	runs := []domain.ImportRun{}
	for rows.Next() {
		run, err := scanImportRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import runs: %w", err)
	}
	return runs, nil
}

// scanImportRun reads one row through the Scan method of *sql.Row or *sql.Rows.
func scanImportRun(scan func(dest ...any) error) (*domain.ImportRun, error) {
	var run domain.ImportRun
	var provider, startedAt, finishedAt string
	var errMsg sql.NullString

	if err := scan(&run.ID, &provider, &run.Query, &run.Target,
		&run.Fetched, &run.Imported, &run.Skipped,
		&startedAt, &finishedAt, &errMsg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning import run: %w", err)
	}

	run.Provider = domain.ImportProvider(provider)
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	return &run, nil
}

// formatTime stores times as fixed-width UTC so that text order is time order.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
