package services

import (
	"fmt"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// relevanceEpsilon absorbs float error in threshold comparisons
// (2.3 + 1.1 is not exactly 3.4).
const relevanceEpsilon = 1e-9

// DiversificationStrategy selects a top-N from a ranked pool.
// Output keeps acceptance order and never exceeds n entries.
type DiversificationStrategy interface {
	// Name identifies the strategy.
	Name() domain.StrategyName

	// Select picks at most n entries from ranked.
	Select(ranked []domain.Ranked, n int) []domain.Ranked
}

// NewStrategy builds the named strategy from the diversification settings.
func NewStrategy(name domain.StrategyName, cfg domain.DiversifySettings) (DiversificationStrategy, error) {
	switch name {
	case domain.StrategyHardQuota:
		return &HardQuota{cfg: cfg}, nil
	case domain.StrategySoftQuota:
		return &SoftQuota{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
	}
}

// HardQuota walks the ranking once and skips any entry whose source type
// has reached its cap. Skipped entries are never reconsidered.
type HardQuota struct {
	cfg domain.DiversifySettings
}

var _ DiversificationStrategy = (*HardQuota)(nil)

// Name identifies the strategy.
func (h *HardQuota) Name() domain.StrategyName {
	return domain.StrategyHardQuota
}

// Select picks at most n entries under the per-type caps.
func (h *HardQuota) Select(ranked []domain.Ranked, n int) []domain.Ranked {
	if n <= 0 {
		return []domain.Ranked{}
	}

	chosen := make([]domain.Ranked, 0, n)
	counts := make(map[domain.SourceType]int)

	for _, e := range ranked {
		if len(chosen) >= n {
			break
		}
		t := e.Source.Type
		if counts[t] >= h.cfg.CapFor(t) {
			continue
		}
		chosen = append(chosen, e)
		counts[t]++
	}

	logger.Debug("hard quota: selected %d of %d (per type %v)", len(chosen), len(ranked), counts)
	return chosen
}

// SoftQuota restricts the pool to the top n*WindowMultiplier entries and
// caps entries per URL host. Primary sources are accepted outright;
// secondary sources need AcceptRelevance. If fewer than MinSecondary
// secondary sources made it, a second walk over the same window accepts
// secondary sources down to BackfillRelevance.
type SoftQuota struct {
	cfg domain.DiversifySettings
}

var _ DiversificationStrategy = (*SoftQuota)(nil)

// Name identifies the strategy.
func (s *SoftQuota) Name() domain.StrategyName {
	return domain.StrategySoftQuota
}

// Select picks at most n entries under the host cap with secondary backfill.
func (s *SoftQuota) Select(ranked []domain.Ranked, n int) []domain.Ranked {
	if n <= 0 {
		return []domain.Ranked{}
	}

	window := ranked
	if size := n * s.cfg.WindowMultiplier; size < len(window) {
		window = window[:size]
	}

	sel := &softSelection{
		limit:   n,
		hostCap: s.cfg.PerHostCap,
		chosen:  make([]domain.Ranked, 0, n),
		taken:   make([]bool, len(window)),
		perHost: make(map[string]int),
	}

	for i, e := range window {
		if sel.full() {
			break
		}
		if e.Source.Type.Category() == domain.CategorySecondary &&
			e.Components.Relevance+relevanceEpsilon < s.cfg.AcceptRelevance {
			continue
		}
		sel.accept(i, e)
	}

	if sel.secondary < s.cfg.MinSecondary {
		logger.Debug("soft quota: %d secondary after first pass, backfilling to %d",
			sel.secondary, s.cfg.MinSecondary)
		for i, e := range window {
			if sel.full() || sel.secondary >= s.cfg.MinSecondary {
				break
			}
			if sel.taken[i] || e.Source.Type.Category() != domain.CategorySecondary {
				continue
			}
			if e.Components.Relevance+relevanceEpsilon < s.cfg.BackfillRelevance {
				continue
			}
			sel.accept(i, e)
		}
	}

	logger.Debug("soft quota: selected %d from window of %d (secondary %d)",
		len(sel.chosen), len(window), sel.secondary)
	return sel.chosen
}

// softSelection is the running state of one soft-quota selection.
type softSelection struct {
	limit     int
	hostCap   int
	chosen    []domain.Ranked
	taken     []bool
	perHost   map[string]int
	secondary int
}

func (s *softSelection) full() bool {
	return len(s.chosen) >= s.limit
}

// accept adds window entry i unless its host is at the cap.
func (s *softSelection) accept(i int, e domain.Ranked) {
	host := e.Source.Host()
	if s.perHost[host] >= s.hostCap {
		return
	}
	s.chosen = append(s.chosen, e)
	s.taken[i] = true
	s.perHost[host]++
	if e.Source.Type.Category() == domain.CategorySecondary {
		s.secondary++
	}
}
