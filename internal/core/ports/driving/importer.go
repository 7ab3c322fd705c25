package driving

import (
	"context"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// ImportService grows catalogs from remote searches.
type ImportService interface {
	// Import runs one search, appends new rows and records the run.
	Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportRun, error)

	// History returns recent import runs, newest first.
	History(ctx context.Context, limit int) ([]domain.ImportRun, error)
}
