package domain

import "math"

// weightTolerance absorbs float rounding when summing weights.
const weightTolerance = 1e-9

// MaxScore is the upper bound of every component and of the knowledge value.
const MaxScore = 5.0

// Weights are the aggregation weights of the five component scores.
type Weights struct {
	Relevance     float64 `json:"relevance"`
	Depth         float64 `json:"depth"`
	Actionability float64 `json:"actionability"`
	Freshness     float64 `json:"freshness"`
	Consequence   float64 `json:"consequence"`
}

// DefaultWeights returns the fixed knowledge value weights.
func DefaultWeights() Weights {
	return Weights{
		Relevance:     0.30,
		Depth:         0.25,
		Actionability: 0.25,
		Freshness:     0.10,
		Consequence:   0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Relevance + w.Depth + w.Actionability + w.Freshness + w.Consequence
}

// Validate checks that the weights are non-negative and sum to 1.0.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Relevance, w.Depth, w.Actionability, w.Freshness, w.Consequence} {
		if v < 0 {
			return ErrInvalidWeights
		}
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return ErrInvalidWeights
	}
	return nil
}

// ComponentScores are the five sub-scores of one source for one query.
type ComponentScores struct {
	Relevance     float64 `json:"relevance"`
	Depth         float64 `json:"depth"`
	Actionability float64 `json:"actionability"`
	Freshness     float64 `json:"freshness"`
	Consequence   float64 `json:"consequence"`
}

// Combine aggregates the components into a knowledge value in [0, 5],
// rounded to two decimals.
func (c ComponentScores) Combine(w Weights) float64 {
	v := w.Relevance*c.Relevance +
		w.Depth*c.Depth +
		w.Actionability*c.Actionability +
		w.Freshness*c.Freshness +
		w.Consequence*c.Consequence
	return Round2(Clamp(v, 0, MaxScore))
}

// Ranked is one scored source. Components.Relevance is the tie-break key.
type Ranked struct {
	Score      float64         `json:"score"`
	Components ComponentScores `json:"components"`
	Source     Source          `json:"source"`
}

// Recommendation is the full result of one query.
type Recommendation struct {
	Query        string             `json:"query"`
	QueryTags    []string           `json:"query_tags"`
	PoolSize     int                `json:"pool_size"`
	PoolByType   map[SourceType]int `json:"pool_by_type"`
	Strategy     StrategyName       `json:"strategy"`
	Items        []Ranked           `json:"items"`
	ReadingOrder string             `json:"reading_order"`
	Advisory     string             `json:"advisory,omitempty"`
	Gaps         []string           `json:"gaps"`
	Closing      string             `json:"closing"`
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// RecommendOptions overrides the configured defaults for one query.
// Zero values keep the configured defaults.
type RecommendOptions struct {
	Limit    int
	Strategy StrategyName
}
