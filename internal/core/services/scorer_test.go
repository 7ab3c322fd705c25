package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func newTestScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := NewScorer(nil, domain.DefaultWeights())
	require.NoError(t, err)
	return s
}

func TestNewScorer_RejectsInvalidWeights(t *testing.T) {
	_, err := NewScorer(nil, domain.Weights{Relevance: 0.5})

	assert.ErrorIs(t, err, domain.ErrInvalidWeights)
}

func TestScorer_Karpathy(t *testing.T) {
	s := newTestScorer(t)
	src := domain.Source{
		Name:    "simonwillison.net",
		URL:     "https://simonwillison.net",
		Type:    domain.SourceTypeKarpathy,
		Tags:    domain.NewTagSet("agent", "research"),
		Cluster: "ai-eng",
	}

	c := s.Components(src, domain.NewTagSet("agent"))

	assert.Equal(t, domain.ComponentScores{
		Relevance: 3.4, Depth: 4.7, Actionability: 3.5, Freshness: 3.6, Consequence: 3.3,
	}, roundAll(c))
	assert.InDelta(t, 3.76, s.Score(src, domain.NewTagSet("agent")), 1e-9)
}

func TestScorer_RelevanceCapsAtMax(t *testing.T) {
	s := newTestScorer(t)
	src := domain.Source{URL: "https://x.example", Type: domain.SourceTypeManualList,
		Tags: domain.NewTagSet("seo", "agent", "osint")}

	c := s.Components(src, domain.NewTagSet("seo", "agent", "osint"))

	assert.InDelta(t, domain.MaxScore, c.Relevance, 1e-9)
	assert.InDelta(t, 2.3, s.Components(src, domain.NewTagSet("ops")).Relevance, 1e-9)
}

func TestScorer_DeepGitHub(t *testing.T) {
	s := newTestScorer(t)

	tests := []struct {
		name       string
		stars      int
		tags       domain.TagSet
		wantDepth  float64
		wantAction float64
	}{
		{"small repo", 20000, domain.NewTagSet("seo"), 4.3, 4.0},
		{"popularity bonus is capped", 500000, domain.NewTagSet("seo"), 4.9, 4.0},
		{"practical tag", 0, domain.NewTagSet("tools"), 4.2, 4.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := domain.Source{URL: "https://github.com/a/b", Type: domain.SourceTypeDeepGitHub,
				Stars: tt.stars, Tags: tt.tags}
			c := s.Components(src, domain.NewTagSet("seo"))

			assert.InDelta(t, tt.wantDepth, c.Depth, 1e-9)
			assert.InDelta(t, tt.wantAction, c.Actionability, 1e-9)
			assert.InDelta(t, 3.8, c.Freshness, 1e-9)
		})
	}
}

func TestScorer_TelegramConsequence(t *testing.T) {
	s := newTestScorer(t)
	src := domain.Source{URL: "https://t.me/chan", Type: domain.SourceTypeTelegram,
		Members: 15000, Tags: domain.NewTagSet("telegram", "adversarial")}

	plain := s.Components(src, domain.NewTagSet("seo"))
	seeking := s.Components(src, domain.NewTagSet("security"))

	assert.InDelta(t, 3.7, plain.Depth, 1e-9)
	assert.InDelta(t, 4.3, plain.Freshness, 1e-9)
	assert.InDelta(t, 1.0, plain.Consequence, 1e-9, "risk content penalised when not asked for")
	assert.InDelta(t, 3.8, seeking.Consequence, 1e-9)
}

func TestScorer_ConsequenceOnlyFlagsRiskContent(t *testing.T) {
	s := newTestScorer(t)
	security := domain.Source{URL: "https://courtlistener.com", Type: domain.SourceTypeManualList,
		Tags: domain.NewTagSet("security", "legal-casebook")}

	c := s.Components(security, domain.NewTagSet("adversarial"))

	assert.InDelta(t, 3.3, c.Consequence, 1e-9, "security sources are not risk content")
}

func TestScorer_ManualListHosts(t *testing.T) {
	s := newTestScorer(t)

	code := s.Components(domain.Source{URL: "https://github.com/a/b", Type: domain.SourceTypeManualList}, nil)
	social := s.Components(domain.Source{URL: "https://www.reddit.com/r/seo", Type: domain.SourceTypeManualList}, nil)

	assert.InDelta(t, 3.6, code.Depth, 1e-9)
	assert.InDelta(t, 4.4, code.Actionability, 1e-9)
	assert.InDelta(t, 3.6, code.Freshness, 1e-9)
	assert.InDelta(t, 3.5, social.Actionability, 1e-9)
	assert.InDelta(t, 4.2, social.Freshness, 1e-9)
}

func TestScorer_ScoresStayInRange(t *testing.T) {
	s := newTestScorer(t)
	qtags := domain.NewTagSet("seo", "adversarial", "agent")

	for _, typ := range domain.AllSourceTypes() {
		src := domain.Source{URL: "https://t.me/x", Type: typ, Stars: 1 << 30, Members: 1 << 30,
			Tags: domain.NewTagSet("seo", "adversarial", "agent", "tools")}
		v := s.Score(src, qtags)
		assert.GreaterOrEqual(t, v, 0.0, typ.String())
		assert.LessOrEqual(t, v, domain.MaxScore, typ.String())
	}
}

// roundAll rounds every component to two decimals for exact comparison.
func roundAll(c domain.ComponentScores) domain.ComponentScores {
	return domain.ComponentScores{
		Relevance:     domain.Round2(c.Relevance),
		Depth:         domain.Round2(c.Depth),
		Actionability: domain.Round2(c.Actionability),
		Freshness:     domain.Round2(c.Freshness),
		Consequence:   domain.Round2(c.Consequence),
	}
}

func TestScorer_RelevanceMonotonicInOverlap(t *testing.T) {
	s := newTestScorer(t)
	qtags := domain.NewTagSet("seo", "agent", "osint", "ops")
	tags := []string{"seo", "agent", "osint", "ops"}

	prevRel, prevScore := 0.0, 0.0
	for i := 0; i <= len(tags); i++ {
		src := domain.Source{URL: "https://blog.example", Type: domain.SourceTypeKarpathy,
			Tags: domain.NewTagSet(tags[:i]...)}
		c := s.Components(src, qtags)
		score := s.Score(src, qtags)

		assert.GreaterOrEqual(t, c.Relevance, prevRel)
		assert.GreaterOrEqual(t, score, prevScore)
		prevRel, prevScore = c.Relevance, score
	}
}
