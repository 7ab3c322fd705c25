package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

type mockRecommendService struct {
	rec   *domain.Recommendation
	err   error
	paths []string

	queries []string
	opts    []domain.RecommendOptions
}

func (m *mockRecommendService) Recommend(
	_ context.Context, query string, opts domain.RecommendOptions,
) (*domain.Recommendation, error) {
	m.queries = append(m.queries, query)
	m.opts = append(m.opts, opts)
	return m.rec, m.err
}

func (m *mockRecommendService) CatalogPaths() []string {
	return m.paths
}

type mockImportService struct {
	run  *domain.ImportRun
	runs []domain.ImportRun
	err  error

	req   domain.ImportRequest
	limit int
}

func (m *mockImportService) Import(_ context.Context, req domain.ImportRequest) (*domain.ImportRun, error) {
	m.req = req
	return m.run, m.err
}

func (m *mockImportService) History(_ context.Context, limit int) ([]domain.ImportRun, error) {
	m.limit = limit
	return m.runs, m.err
}

// flakyRecommendService succeeds once, then fails.
type flakyRecommendService struct {
	rec   *domain.Recommendation
	err   error
	calls int
}

func (f *flakyRecommendService) Recommend(
	context.Context, string, domain.RecommendOptions,
) (*domain.Recommendation, error) {
	f.calls++
	if f.calls > 1 {
		return nil, f.err
	}
	return f.rec, nil
}

func (f *flakyRecommendService) CatalogPaths() []string {
	return nil
}

// mockNotifier reports each path once and returns.
type mockNotifier struct {
	changes []string
	watched []string
}

func (m *mockNotifier) Watch(_ context.Context, paths []string, onChange func(string)) error {
	m.watched = paths
	for _, p := range m.changes {
		onChange(p)
	}
	return nil
}

func sampleRecommendation() *domain.Recommendation {
	return &domain.Recommendation{
		Query:      "seo blackhat",
		QueryTags:  []string{"adversarial", "seo"},
		PoolSize:   3,
		PoolByType: map[domain.SourceType]int{domain.SourceTypeDeepGitHub: 2, domain.SourceTypeTelegram: 1},
		Strategy:   domain.StrategyHardQuota,
		Items: []domain.Ranked{
			{
				Score:      4.12,
				Components: domain.ComponentScores{Relevance: 4.5, Depth: 4.2, Actionability: 4.4, Freshness: 3.8, Consequence: 3.8},
				Source: domain.Source{
					Name: "acme/serp-lab", URL: "https://github.com/acme/serp-lab", Type: domain.SourceTypeDeepGitHub,
					Stars: 12400, Note: "Deep-water entry point",
				},
			},
			{
				Score: 3.02,
				Source: domain.Source{
					Name: "SEO Underground", URL: "https://t.me/seo_underground", Type: domain.SourceTypeTelegram,
					Members: 5300, Note: "Practitioner chat",
				},
			},
		},
		ReadingOrder: "Reading order: repositories first.",
		Advisory:     "Possible consequences: penalties.",
		Gaps:         []string{"Platform policy changelog"},
		Closing:      "Verify before acting.",
	}
}

func sampleRun() *domain.ImportRun {
	start := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)
	return &domain.ImportRun{
		ID:         "run-1",
		Provider:   domain.ImportProviderGitHub,
		Query:      "osint",
		Target:     "references/deep-sources-github.tsv",
		Fetched:    7,
		Imported:   5,
		Skipped:    2,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}
}

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func resetServices() {
	recommendService = nil
	importService = nil
	settingsService = nil
	catalogWatcher = nil
	vocabulary = nil
	closeServices = nil
}

// execute runs the root command with svcs installed and returns
// everything written to stdout and stderr.
func execute(t *testing.T, svcs *Services, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	resetServices()
	Configure(svcs)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetServices()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
