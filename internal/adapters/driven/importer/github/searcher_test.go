package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func newTestSearcher(t *testing.T, handler http.HandlerFunc) *Searcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := gh.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return NewSearcher(client, NewRateLimiter(rate.Inf))
}

const searchPage = `{
  "total_count": 2,
  "incomplete_results": false,
  "items": [
    {
      "full_name": "acme/osint-kit",
      "html_url": "https://github.com/acme/osint-kit",
      "stargazers_count": 12345,
      "description": "  Collected OSINT tooling  ",
      "language": "Go",
      "topics": ["osint", "Recon"]
    },
    {
      "full_name": "acme/serp-lab",
      "html_url": "https://github.com/acme/serp-lab",
      "stargazers_count": 80,
      "topics": []
    }
  ]
}`

func TestSearcher_Search(t *testing.T) {
	var gotQuery, gotSort string
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		gotSort = r.URL.Query().Get("sort")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, searchPage)
	})

	rows, err := s.Search(context.Background(), domain.ImportRequest{Query: "osint in:readme", Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, "osint in:readme", gotQuery)
	assert.Equal(t, "stars", gotSort)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "acme/osint-kit", first.Name)
	assert.Equal(t, "https://github.com/acme/osint-kit", first.URL)
	assert.Equal(t, domain.SourceTypeDeepGitHub, first.Type)
	assert.Equal(t, 12345, first.Stars)
	assert.Equal(t, "Collected OSINT tooling", first.Note)
	assert.Equal(t, []string{"go", "osint", "recon"}, first.Tags.Sorted())

	assert.Empty(t, rows[1].Tags.Sorted())
	assert.Equal(t, domain.ImportProviderGitHub, s.Provider())
}

func TestSearcher_SearchFollowsPagesUntilLimit(t *testing.T) {
	calls := 0
	var srvURL string
	s := newTestSearcher(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/search/repositories?q=x&page=%d>; rel="next"`, srvURL, page+1))
		fmt.Fprintf(w, `{"total_count": 100, "items": [
			{"full_name": "o/r%d-a", "html_url": "https://github.com/o/r%d-a"},
			{"full_name": "o/r%d-b", "html_url": "https://github.com/o/r%d-b"}
		]}`, page, page, page, page)
	})
	srvURL = s.gh.BaseURL.String()
	srvURL = srvURL[:len(srvURL)-1]

	rows, err := s.Search(context.Background(), domain.ImportRequest{Query: "x", Limit: 3})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, rows, 3)
	assert.Equal(t, "https://github.com/o/r2-a", rows[2].URL)
}

func TestSearcher_SearchAPIError(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message": "Validation Failed"}`)
	})

	_, err := s.Search(context.Background(), domain.ImportRequest{Query: "x", Limit: 5})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "Validation Failed", apiErr.Message)
	assert.False(t, IsUnauthorized(err))
}

func TestSearcher_SearchRateLimited(t *testing.T) {
	s := newTestSearcher(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerRateLimit, "30")
		w.Header().Set(headerRateRemaining, "0")
		w.Header().Set(headerRateReset, "1893456000")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	})

	_, err := s.Search(context.Background(), domain.ImportRequest{Query: "x", Limit: 5})

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 30, rl.Limit)
	assert.Equal(t, int64(1893456000), rl.ResetAt.Unix())
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	r := NewRateLimiter(rate.Inf)
	remaining, _, _ := r.Snapshot()
	assert.Equal(t, -1, remaining)

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "12")
	resp.Header.Set(headerRateLimit, "30")
	resp.Header.Set(headerRateReset, "1700000000")
	r.UpdateFromResponse(resp)

	remaining, limit, reset := r.Snapshot()
	assert.Equal(t, 12, remaining)
	assert.Equal(t, 30, limit)
	assert.Equal(t, int64(1700000000), reset.Unix())
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_WaitHonoursContext(t *testing.T) {
	r := NewRateLimiter(rate.Inf)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(headerRateRemaining, "0")
	resp.Header.Set(headerRateReset, "4102444800")
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, r.Wait(ctx), context.Canceled)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
