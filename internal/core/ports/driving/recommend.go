package driving

import (
	"context"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// RecommendService ranks the catalog for a free-text query.
type RecommendService interface {
	// Recommend tags the query, scores every catalog source, ranks them and
	// returns a diversified top-N with gap suggestions. It returns
	// domain.ErrNoSources when every catalog is empty or unreadable.
	Recommend(ctx context.Context, query string, opts domain.RecommendOptions) (*domain.Recommendation, error)

	// CatalogPaths returns the files the recommendation is built from.
	CatalogPaths() []string
}
