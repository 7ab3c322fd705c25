package services

import (
	"math"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Relevance constants. A source with no overlapping tag gets the base.
const (
	relevanceBase  = 2.3
	relevanceBonus = 1.1
)

// Depth constants per source type.
const (
	githubDepthBase    = 4.2
	githubDepthCap     = 0.7
	githubStarsDivisor = 200000.0
	telegramDepthBase  = 3.4
	telegramDepthCap   = 0.6
	telegramMembersDiv = 50000.0
	manualListDepth    = 3.6
	defaultSourceDepth = 3.6
)

// Actionability constants. Practical tags or code hosts lift a source.
const (
	actionabilityBase   = 3.5
	githubActionability = 4.0
	practicalAction     = 4.4
)

// Freshness constants per source type.
const (
	karpathyFreshness = 3.6
	githubFreshness   = 3.8
	telegramFreshness = 4.3
	socialFreshness   = 4.2
	defaultFreshness  = 3.6
)

// Consequence constants. Risk-flagged content is only penalised when the
// query does not ask for it.
const (
	consequenceNeutral = 3.3
	consequenceAligned = 3.8
	consequencePenalty = 1.0
)

// Scorer computes the five component scores of a source for a query and
// combines them into a knowledge value.
type Scorer struct {
	vocab   *domain.Vocabulary
	weights domain.Weights
}

// NewScorer creates a scorer. It fails if the weights do not sum to 1.0.
func NewScorer(vocab *domain.Vocabulary, weights domain.Weights) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}
	return &Scorer{vocab: vocab, weights: weights}, nil
}

// Weights returns the aggregation weights.
func (s *Scorer) Weights() domain.Weights {
	return s.weights
}

// Score returns the knowledge value of src for the query tags.
func (s *Scorer) Score(src domain.Source, qtags domain.TagSet) float64 {
	return s.Components(src, qtags).Combine(s.weights)
}

// Components returns the five bounded sub-scores.
func (s *Scorer) Components(src domain.Source, qtags domain.TagSet) domain.ComponentScores {
	return domain.ComponentScores{
		Relevance:     bounded(s.relevance(src, qtags)),
		Depth:         bounded(s.depth(src)),
		Actionability: bounded(s.actionability(src)),
		Freshness:     bounded(s.freshness(src)),
		Consequence:   bounded(s.consequence(src, qtags)),
	}
}

func (s *Scorer) relevance(src domain.Source, qtags domain.TagSet) float64 {
	overlap := src.Tags.Overlap(qtags)
	return math.Min(domain.MaxScore, relevanceBase+float64(overlap)*relevanceBonus)
}

func (s *Scorer) depth(src domain.Source) float64 {
	switch src.Type {
	case domain.SourceTypeKarpathy:
		return s.vocab.DepthForCluster(src.Cluster)
	case domain.SourceTypeDeepGitHub:
		return linearDepth(githubDepthBase, githubDepthCap, float64(src.Stars)/githubStarsDivisor)
	case domain.SourceTypeTelegram:
		return linearDepth(telegramDepthBase, telegramDepthCap, float64(src.Members)/telegramMembersDiv)
	case domain.SourceTypeManualList:
		return manualListDepth
	default:
		return defaultSourceDepth
	}
}

func (s *Scorer) actionability(src domain.Source) float64 {
	practical := src.Tags.HasAny(s.vocab.PracticalTags...)

	switch src.Type {
	case domain.SourceTypeKarpathy:
		return actionabilityBase
	case domain.SourceTypeDeepGitHub:
		if practical {
			return practicalAction
		}
		return githubActionability
	default:
		if practical || s.vocab.IsCodeHost(src.Host()) {
			return practicalAction
		}
		return actionabilityBase
	}
}

func (s *Scorer) freshness(src domain.Source) float64 {
	switch src.Type {
	case domain.SourceTypeKarpathy:
		return karpathyFreshness
	case domain.SourceTypeDeepGitHub:
		return githubFreshness
	case domain.SourceTypeTelegram:
		return telegramFreshness
	default:
		if s.vocab.IsSocialHost(src.Host()) {
			return socialFreshness
		}
		return defaultFreshness
	}
}

func (s *Scorer) consequence(src domain.Source, qtags domain.TagSet) float64 {
	if !src.Tags.HasAny(s.vocab.RiskFlagTags...) {
		return consequenceNeutral
	}
	if qtags.HasAny(s.vocab.RiskSeekingTags...) {
		return consequenceAligned
	}
	return consequencePenalty
}

// linearDepth adds a capped linear popularity bonus to a base depth.
func linearDepth(base, ceiling, bonus float64) float64 {
	if bonus < 0 {
		bonus = 0
	}
	return domain.Round2(base + math.Min(ceiling, bonus))
}

func bounded(v float64) float64 {
	return domain.Clamp(v, 0, domain.MaxScore)
}
