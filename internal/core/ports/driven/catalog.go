package driven

import (
	"context"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// CatalogLoader reads one catalog into Sources.
// Each loader is backed by a single file and format.
type CatalogLoader interface {
	// Type returns the source type this loader produces.
	Type() domain.SourceType

	// Path returns the backing file path.
	Path() string

	// Load reads the whole catalog. Malformed rows are skipped.
	// An unreadable file is returned as an error; callers decide
	// whether that is fatal.
	Load(ctx context.Context) ([]domain.Source, error)
}

// CatalogAppender appends imported rows to a catalog file.
type CatalogAppender interface {
	// Path returns the backing file path.
	Path() string

	// ExistingURLs returns the URLs already present in the catalog.
	// A missing file yields an empty set.
	ExistingURLs(ctx context.Context) (map[string]struct{}, error)

	// Append writes rows to the end of the catalog, creating the file
	// (and its header, if the format has one) when it does not exist.
	Append(ctx context.Context, rows []domain.CatalogRow) error
}
