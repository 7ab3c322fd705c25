package mcp

import (
	"context"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

type mockRecommendService struct {
	rec       *domain.Recommendation
	err       error
	paths     []string
	lastQuery string
	lastOpts  domain.RecommendOptions
}

func (m *mockRecommendService) Recommend(
	_ context.Context, query string, opts domain.RecommendOptions,
) (*domain.Recommendation, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.rec, m.err
}

func (m *mockRecommendService) CatalogPaths() []string {
	return m.paths
}

type mockImportService struct {
	runs []domain.ImportRun
	err  error
}

func (m *mockImportService) Import(_ context.Context, _ domain.ImportRequest) (*domain.ImportRun, error) {
	return nil, m.err
}

func (m *mockImportService) History(_ context.Context, limit int) ([]domain.ImportRun, error) {
	if limit < len(m.runs) {
		return m.runs[:limit], m.err
	}
	return m.runs, m.err
}

func sampleRecommendation() *domain.Recommendation {
	return &domain.Recommendation{
		Query:      "seo blackhat",
		QueryTags:  []string{"adversarial", "seo"},
		PoolSize:   3,
		PoolByType: map[domain.SourceType]int{domain.SourceTypeDeepGitHub: 2, domain.SourceTypeTelegram: 1},
		Strategy:   domain.StrategySoftQuota,
		Items: []domain.Ranked{{
			Score:      4.12,
			Components: domain.ComponentScores{Relevance: 4.5, Depth: 4.2, Actionability: 4.4, Freshness: 3.8, Consequence: 3.8},
			Source: domain.Source{
				Name: "acme/serp-lab", URL: "https://github.com/acme/serp-lab", Type: domain.SourceTypeDeepGitHub,
				Tags: domain.NewTagSet("seo", "tools"), Stars: 900, Note: "Deep-water entry point",
			},
		}},
		Advisory: "Possible consequences",
		Gaps:     []string{"Platform policy changelog"},
		Closing:  "Experiment",
	}
}
