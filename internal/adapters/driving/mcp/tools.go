package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// RecommendInput is the input schema of recommend_sources.
type RecommendInput struct {
	Query    string `json:"query" jsonschema:"free-text topic, e.g. 'seo blackhat' or 'agent workflow'"`
	Limit    int    `json:"limit,omitempty" jsonschema:"number of sources to select (default from settings)"`
	Strategy string `json:"strategy,omitempty" jsonschema:"hard-quota or soft-quota (default from settings)"`
}

// RecommendOutput is the output schema of recommend_sources.
type RecommendOutput struct {
	Query        string         `json:"query"`
	QueryTags    []string       `json:"query_tags"`
	PoolSize     int            `json:"pool_size"`
	PoolByType   map[string]int `json:"pool_by_type"`
	Strategy     string         `json:"strategy"`
	Items        []ItemOutput   `json:"items"`
	ReadingOrder string         `json:"reading_order"`
	Advisory     string         `json:"advisory,omitempty"`
	Gaps         []string       `json:"gaps"`
	Closing      string         `json:"closing"`
}

// ItemOutput is one selected source.
type ItemOutput struct {
	Rank       int             `json:"rank"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	URL        string          `json:"url"`
	Note       string          `json:"note"`
	Tags       []string        `json:"tags"`
	Stars      int             `json:"stars,omitempty"`
	Members    int             `json:"members,omitempty"`
	Score      float64         `json:"score" jsonschema:"knowledge value between 0 and 5"`
	Components ComponentOutput `json:"components"`
}

// ComponentOutput holds the five sub-scores.
type ComponentOutput struct {
	Relevance     float64 `json:"relevance"`
	Depth         float64 `json:"depth"`
	Actionability float64 `json:"actionability"`
	Freshness     float64 `json:"freshness"`
	Consequence   float64 `json:"consequence"`
}

// HistoryInput is the input schema of import_history.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"number of runs to return (default 20)"`
}

// HistoryOutput is the output schema of import_history.
type HistoryOutput struct {
	Runs []RunOutput `json:"runs"`
}

// RunOutput is one recorded import run.
type RunOutput struct {
	ID        string `json:"id"`
	Provider  string `json:"provider"`
	Query     string `json:"query"`
	Target    string `json:"target"`
	Imported  int    `json:"imported"`
	Skipped   int    `json:"skipped"`
	StartedAt string `json:"started_at"`
	Error     string `json:"error,omitempty"`
}

const defaultHistoryLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "recommend_sources",
		Description: "Rank the local reference catalogs for a topic and return a diversified " +
			"top-N reading list with knowledge values, a risk advisory and missing categories",
	}, s.handleRecommend)

	if s.ports.Import != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "import_history",
			Description: "List recent catalog import runs, most recent first",
		}, s.handleHistory)
	}
}

func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	opts := domain.RecommendOptions{
		Limit:    input.Limit,
		Strategy: domain.StrategyName(input.Strategy),
	}
	rec, err := s.ports.Recommend.Recommend(ctx, input.Query, opts)
	if err != nil {
		return nil, RecommendOutput{}, err
	}
	return nil, toOutput(rec), nil
}

func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	runs, err := s.ports.Import.History(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	out := HistoryOutput{Runs: make([]RunOutput, len(runs))}
	for i, r := range runs {
		out.Runs[i] = RunOutput{
			ID:        r.ID,
			Provider:  r.Provider.String(),
			Query:     r.Query,
			Target:    r.Target,
			Imported:  r.Imported,
			Skipped:   r.Skipped,
			StartedAt: r.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			Error:     r.Error,
		}
	}
	return nil, out, nil
}

func toOutput(rec *domain.Recommendation) RecommendOutput {
	out := RecommendOutput{
		Query:        rec.Query,
		QueryTags:    rec.QueryTags,
		PoolSize:     rec.PoolSize,
		PoolByType:   make(map[string]int, len(rec.PoolByType)),
		Strategy:     rec.Strategy.String(),
		Items:        make([]ItemOutput, len(rec.Items)),
		ReadingOrder: rec.ReadingOrder,
		Advisory:     rec.Advisory,
		Gaps:         rec.Gaps,
		Closing:      rec.Closing,
	}
	for t, n := range rec.PoolByType {
		out.PoolByType[t.String()] = n
	}
	for i, item := range rec.Items {
		c := item.Components
		out.Items[i] = ItemOutput{
			Rank:    i + 1,
			Name:    item.Source.Name,
			Type:    item.Source.Type.String(),
			URL:     item.Source.URL,
			Note:    item.Source.Note,
			Tags:    item.Source.Tags.Sorted(),
			Stars:   item.Source.Stars,
			Members: item.Source.Members,
			Score:   item.Score,
			Components: ComponentOutput{
				Relevance:     c.Relevance,
				Depth:         c.Depth,
				Actionability: c.Actionability,
				Freshness:     c.Freshness,
				Consequence:   c.Consequence,
			},
		}
	}
	return out
}
