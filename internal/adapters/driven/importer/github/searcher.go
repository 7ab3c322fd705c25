package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

const (
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// maxPerPage is the search API page size ceiling.
	maxPerPage = 100

	// maxResults is the search API's hard cap on reachable hits.
	maxResults = 1000

	// noteLimit truncates descriptions so notes stay one short line.
	noteLimit = 160
)

// Searcher finds repositories for the deep-github catalog.
type Searcher struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
}

var _ driven.RemoteSearcher = (*Searcher)(nil)

// NewSearcher wraps an existing go-github client.
func NewSearcher(client *gh.Client, limiter *RateLimiter) *Searcher {
	if limiter == nil {
		limiter = NewRateLimiter(SearchRate)
	}
	return &Searcher{gh: client, rateLimiter: limiter}
}

// NewSearcherWithToken creates a searcher. An empty token makes
// unauthenticated requests, which GitHub limits far more tightly.
func NewSearcherWithToken(ctx context.Context, token string) *Searcher {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout
	return NewSearcher(gh.NewClient(hc), nil)
}

// Provider identifies the searcher.
func (s *Searcher) Provider() domain.ImportProvider {
	return domain.ImportProviderGitHub
}

// Search runs a repository search sorted by stars and pages until
// req.Limit hits are collected or results run out.
func (s *Searcher) Search(ctx context.Context, req domain.ImportRequest) ([]domain.CatalogRow, error) {
	limit := req.Limit
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}

	opts := &gh.SearchOptions{
		Sort:        "stars",
		Order:       "desc",
		ListOptions: gh.ListOptions{PerPage: min(limit, maxPerPage)},
	}

	rows := make([]domain.CatalogRow, 0, limit)
	for len(rows) < limit {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			return rows, fmt.Errorf("rate limit wait: %w", err)
		}

		result, resp, err := s.gh.Search.Repositories(ctx, req.Query, opts)
		if resp != nil {
			s.rateLimiter.UpdateFromResponse(resp.Response)
		}
		if err != nil {
			return rows, s.wrapError(err, "search repositories")
		}
		if result.GetIncompleteResults() {
			logger.Warn("GitHub search for %q returned incomplete results", req.Query)
		}
		logger.Debug("GitHub page %d: %d repositories (total %d)",
			max(opts.Page, 1), len(result.Repositories), result.GetTotal())

		for _, repo := range result.Repositories {
			if len(rows) == limit {
				break
			}
			rows = append(rows, rowFromRepository(repo))
		}

		if resp == nil || resp.NextPage == 0 || len(result.Repositories) == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return rows, nil
}

func rowFromRepository(repo *gh.Repository) domain.CatalogRow {
	tags := domain.ParseTags(strings.Join(repo.Topics, ",") + "," + repo.GetLanguage())

	return domain.CatalogRow{
		Name:  repo.GetFullName(),
		URL:   repo.GetHTMLURL(),
		Type:  domain.SourceTypeDeepGitHub,
		Stars: repo.GetStargazersCount(),
		Tags:  tags,
		Note:  truncate(strings.TrimSpace(repo.GetDescription()), noteLimit),
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// wrapError converts go-github errors to this package's error types.
func (s *Searcher) wrapError(err error, operation string) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		remaining, limit, reset := s.rateLimiter.Snapshot()
		return &RateLimitError{ResetAt: reset, Remaining: max(remaining, 0), Limit: limit}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{StatusCode: ghErr.Response.StatusCode, Message: ghErr.Message}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
