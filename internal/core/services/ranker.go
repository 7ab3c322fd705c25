package services

import (
	"sort"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Ranker scores every source and orders the pool.
type Ranker struct {
	scorer *Scorer
}

// NewRanker creates a ranker around a scorer.
func NewRanker(scorer *Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank returns all sources ordered by knowledge value, then relevance,
// both descending. Exact ties fall back to name and URL so the output
// never depends on load order.
func (r *Ranker) Rank(sources []domain.Source, qtags domain.TagSet) []domain.Ranked {
	ranked := make([]domain.Ranked, 0, len(sources))
	for _, src := range sources {
		c := r.scorer.Components(src, qtags)
		ranked = append(ranked, domain.Ranked{
			Score:      c.Combine(r.scorer.Weights()),
			Components: c,
			Source:     src,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rankedLess(ranked[i], ranked[j])
	})
	return ranked
}

// rankedLess reports whether a sorts before b.
func rankedLess(a, b domain.Ranked) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Components.Relevance != b.Components.Relevance {
		return a.Components.Relevance > b.Components.Relevance
	}
	if a.Source.Name != b.Source.Name {
		return a.Source.Name < b.Source.Name
	}
	return a.Source.URL < b.Source.URL
}
