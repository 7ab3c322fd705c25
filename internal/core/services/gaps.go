package services

import "github.com/custodia-labs/sourcerank/internal/core/domain"

// GapReporter lists reference categories the selection leaves uncovered.
type GapReporter struct {
	rules    []domain.GapRule
	fallback string
}

// NewGapReporter creates a reporter from the vocabulary's gap rules.
func NewGapReporter(vocab *domain.Vocabulary) *GapReporter {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}
	return &GapReporter{rules: vocab.GapRules, fallback: vocab.GapFallback}
}

// Gaps checks the rules in declared order. A rule fires when its query tag
// is present and its sentinel tag appears on no selected source. When no
// rule fires the single fallback suggestion is returned.
func (g *GapReporter) Gaps(qtags domain.TagSet, selected []domain.Ranked) []string {
	covered := make(domain.TagSet)
	for _, e := range selected {
		for t := range e.Source.Tags {
			covered[t] = struct{}{}
		}
	}

	var needs []string
	for _, r := range g.rules {
		if qtags.Has(r.QueryTag) && !covered.Has(r.Sentinel) {
			needs = append(needs, r.Suggestion)
		}
	}
	if len(needs) == 0 {
		needs = append(needs, g.fallback)
	}
	return needs
}
