package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func sampleRecommendation() *domain.Recommendation {
	return &domain.Recommendation{
		Query:     "seo blackhat",
		QueryTags: []string{"adversarial", "seo"},
		PoolSize:  5,
		PoolByType: map[domain.SourceType]int{
			domain.SourceTypeDeepGitHub: 2,
			domain.SourceTypeTelegram:   3,
		},
		Strategy: domain.StrategyHardQuota,
		Items: []domain.Ranked{
			{
				Score:      4.21,
				Components: domain.ComponentScores{Relevance: 4.5, Depth: 4.27, Actionability: 4.4, Freshness: 3.8, Consequence: 3.8},
				Source: domain.Source{
					Name: "acme/serp-lab", URL: "https://github.com/acme/serp-lab",
					Type: domain.SourceTypeDeepGitHub, Stars: 12345, Note: "Deep-water entry point",
				},
			},
			{
				Score: 3.5,
				Source: domain.Source{
					Name: "grey-chat", URL: "https://t.me/grey", Type: domain.SourceTypeTelegram,
					Members: 800, Note: "Telegram channel",
				},
			},
		},
		ReadingOrder: "Reading order: a -> b",
		Advisory:     "Possible consequences: bans",
		Gaps:         []string{"Platform policy changelog", "SEO forum index"},
		Closing:      "Experiment within 24 hours",
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, sampleRecommendation(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "Query tags: adversarial, seo\n")
	assert.Contains(t, out, "Candidate pool: 5 (deep-github 2, telegram 3)\n")
	assert.Contains(t, out, "Strategy: hard-quota\n")
	assert.Contains(t, out, "Top 2\n")
	assert.Contains(t, out,
		"1. acme/serp-lab (deep-github) | stars 12,345 | KnowledgeValue 4.21/5 | Deep-water entry point | https://github.com/acme/serp-lab\n")
	assert.Contains(t, out,
		"2. grey-chat (telegram) | members 800 | KnowledgeValue 3.50/5 | Telegram channel | https://t.me/grey\n")
	assert.Contains(t, out, "Possible consequences: bans")
	assert.Contains(t, out, "- Platform policy changelog\n- SEO forum index\n")
	assert.True(t, strings.HasSuffix(out, "Experiment within 24 hours\n"))
	assert.NotContains(t, out, "relevance 4.50")
}

func TestWriteText_SectionOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleRecommendation(), Options{}))
	out := buf.String()

	order := []string{"Query tags", "Candidate pool", "Top 2", "Reading order", "Possible consequences", "Missing reference", "Experiment"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.NotEqual(t, -1, idx, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
}

func TestWriteText_ExplainAndNoAdvisory(t *testing.T) {
	rec := sampleRecommendation()
	rec.Advisory = ""
	var buf bytes.Buffer

	require.NoError(t, WriteText(&buf, rec, Options{Explain: true}))

	out := buf.String()
	assert.Contains(t, out, "relevance 4.50  depth 4.27  actionability 4.40  freshness 3.80  consequence 3.80")
	assert.NotContains(t, out, "Possible consequences")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, sampleRecommendation()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "seo blackhat", decoded["query"])
	items, ok := decoded["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.InDelta(t, 4.21, first["score"], 1e-9)
	assert.Equal(t, "deep-github", first["source"].(map[string]any)["type"])
	assert.Len(t, decoded["gaps"], 2)
}

func TestPoolSummary_EmptyBreakdown(t *testing.T) {
	assert.Equal(t, "0", PoolSummary(&domain.Recommendation{}))
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "1,000", thousands(1000))
	assert.Equal(t, "1,234,567", thousands(1234567))
	assert.Equal(t, "-12,000", thousands(-12000))
}
