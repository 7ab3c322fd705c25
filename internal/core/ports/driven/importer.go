package driven

import (
	"context"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// RemoteSearcher runs a one-shot search against a remote service and
// converts the hits into catalog rows. It is never used while scoring.
type RemoteSearcher interface {
	// Provider identifies the remote service.
	Provider() domain.ImportProvider

	// Search returns at most req.Limit rows for req.Query.
	Search(ctx context.Context, req domain.ImportRequest) ([]domain.CatalogRow, error)
}

// ImportLedger persists the history of import runs.
type ImportLedger interface {
	// Record stores a finished run.
	Record(ctx context.Context, run domain.ImportRun) error

	// Get returns one run by ID, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.ImportRun, error)

	// List returns the most recent runs first. A limit <= 0 returns all runs.
	List(ctx context.Context, limit int) ([]domain.ImportRun, error)
}

// ChangeNotifier reports modifications of watched files.
type ChangeNotifier interface {
	// Watch calls onChange after any of the paths is written, created,
	// removed or renamed. It blocks until ctx is cancelled.
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}
