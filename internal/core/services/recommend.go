package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.RecommendService = (*RecommendService)(nil)

// RecommendService runs the tag, score, rank, diversify and gap pipeline.
// Every call reloads the catalogs; nothing is cached between queries.
type RecommendService struct {
	loaders   []driven.CatalogLoader
	vocab     *domain.Vocabulary
	tagger    *Tagger
	ranker    *Ranker
	gaps      *GapReporter
	recommend domain.RecommendSettings
	diversify domain.DiversifySettings
}

// NewRecommendService creates a recommendation service.
// Loaders are read in the given order; the first occurrence of a URL wins.
func NewRecommendService(
	loaders []driven.CatalogLoader,
	vocab *domain.Vocabulary,
	settings domain.AppSettings,
) (*RecommendService, error) {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}

	scorer, err := NewScorer(vocab, domain.DefaultWeights())
	if err != nil {
		return nil, fmt.Errorf("create scorer: %w", err)
	}

	if _, err := NewStrategy(settings.Recommend.Strategy, settings.Diversify); err != nil {
		return nil, err
	}

	return &RecommendService{
		loaders:   loaders,
		vocab:     vocab,
		tagger:    NewTagger(vocab),
		ranker:    NewRanker(scorer),
		gaps:      NewGapReporter(vocab),
		recommend: settings.Recommend,
		diversify: settings.Diversify,
	}, nil
}

// CatalogPaths returns the files the recommendation is built from.
func (s *RecommendService) CatalogPaths() []string {
	paths := make([]string, 0, len(s.loaders))
	for _, l := range s.loaders {
		paths = append(paths, l.Path())
	}
	return paths
}

// Recommend ranks the catalogs for a query and selects a diversified top-N.
func (s *RecommendService) Recommend(
	ctx context.Context, query string, opts domain.RecommendOptions,
) (*domain.Recommendation, error) {
	logger.Section("Recommendation")
	logger.Debug("Query: %q", query)

	limit := opts.Limit
	if limit <= 0 {
		limit = s.recommend.Limit
	}
	name := opts.Strategy
	if name == "" {
		name = s.recommend.Strategy
	}
	strategy, err := NewStrategy(name, s.diversify)
	if err != nil {
		return nil, err
	}
	logger.Debug("Limit: %d, strategy: %s", limit, strategy.Name().Description())

	qtags := s.tagger.Tag(strings.TrimSpace(query))
	logger.Info("Query tags: %s", qtags)

	sources, byType, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		logger.Warn("All catalogs are empty or unreadable")
		return nil, domain.ErrNoSources
	}

	ranked := s.ranker.Rank(sources, qtags)
	top := strategy.Select(ranked, limit)
	logger.Debug("Ranked %d sources, selected %d", len(ranked), len(top))

	rec := &domain.Recommendation{
		Query:        query,
		QueryTags:    qtags.Sorted(),
		PoolSize:     len(sources),
		PoolByType:   byType,
		Strategy:     strategy.Name(),
		Items:        top,
		ReadingOrder: s.vocab.ReadingOrder,
		Gaps:         s.gaps.Gaps(qtags, top),
		Closing:      s.vocab.Closing,
	}
	if qtags.HasAny(s.vocab.AdvisoryTags...) {
		rec.Advisory = s.vocab.Advisory
	}
	return rec, nil
}

// loadAll reads every catalog. An unreadable catalog counts as empty.
func (s *RecommendService) loadAll(ctx context.Context) ([]domain.Source, map[domain.SourceType]int, error) {
	defer logger.Timed("Loading catalogs")()

	var all []domain.Source
	byType := make(map[domain.SourceType]int)
	seen := make(map[string]struct{})

	for _, l := range s.loaders {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		sources, err := l.Load(ctx)
		if err != nil {
			logger.Warn("Catalog %s unavailable, treating as empty: %v", l.Path(), err)
			continue
		}

		dupes := 0
		for _, src := range sources {
			if _, ok := seen[src.URL]; ok {
				dupes++
				continue
			}
			seen[src.URL] = struct{}{}
			all = append(all, src)
			byType[src.Type]++
		}
		logger.Debug("Loaded %d sources from %s (%d duplicate URLs dropped)",
			len(sources)-dupes, l.Path(), dupes)
	}

	return all, byType, nil
}
