// Package feed grows a URL list from RSS and Atom feeds. Feeds are not
// searchable, so every configured feed is pulled and its items are
// filtered locally by the query's keywords.
package feed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

const (
	// DefaultTimeout bounds each feed download.
	DefaultTimeout = 15 * time.Second

	// fetchConcurrency caps parallel feed downloads.
	fetchConcurrency = 4

	// minKeywordLen drops short words that match almost anything.
	minKeywordLen = 3
)

// ErrNoFeeds is returned when neither the request nor the config names a feed.
var ErrNoFeeds = errors.New("feed: no feeds configured")

// Searcher filters feed items by keyword.
type Searcher struct {
	client *http.Client
	feeds  []string
}

var _ driven.RemoteSearcher = (*Searcher)(nil)

// NewSearcher creates a searcher over the configured feeds.
func NewSearcher(feeds []string) *Searcher {
	return &Searcher{
		client: &http.Client{Timeout: DefaultTimeout},
		feeds:  feeds,
	}
}

// Provider identifies the searcher.
func (s *Searcher) Provider() domain.ImportProvider {
	return domain.ImportProviderFeed
}

// Search downloads every feed concurrently and returns matching items in
// feed order, then item order. A feed that fails is skipped; the search
// fails only when every feed does.
func (s *Searcher) Search(ctx context.Context, req domain.ImportRequest) ([]domain.CatalogRow, error) {
	feeds := req.Feeds
	if len(feeds) == 0 {
		feeds = s.feeds
	}
	if len(feeds) == 0 {
		return nil, ErrNoFeeds
	}
	keywords := queryKeywords(req.Query)
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: query has no keyword of %d or more characters", domain.ErrInvalidInput, minKeywordLen)
	}

	results := make([][]domain.CatalogRow, len(feeds))
	var (
		mu       sync.Mutex
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, feedURL := range feeds {
		g.Go(func() error {
			feed, err := s.fetch(gctx, feedURL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn("Skipping feed %s: %v", feedURL, err)
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return nil
			}
			results[i] = matchItems(feed, keywords)
			logger.Debug("Feed %s: %d items, %d matched", feedURL, len(feed.Items), len(results[i]))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(failures) == len(feeds) {
		return nil, fmt.Errorf("all %d feeds failed: %w", len(feeds), errors.Join(failures...))
	}

	var rows []domain.CatalogRow
	for _, r := range results {
		rows = append(rows, r...)
	}
	if req.Limit > 0 && len(rows) > req.Limit {
		rows = rows[:req.Limit]
	}
	return rows, nil
}

func (s *Searcher) fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return feed, nil
}

func matchItems(feed *gofeed.Feed, keywords []string) []domain.CatalogRow {
	var rows []domain.CatalogRow
	for _, it := range feed.Items {
		link := strings.TrimSpace(it.Link)
		if !isWebLink(link) {
			continue
		}
		text := strings.ToLower(it.Title + " " + it.Description)
		if !containsAny(text, keywords) {
			continue
		}

		row := domain.CatalogRow{
			Name: strings.TrimSpace(it.Title),
			URL:  link,
			Type: domain.SourceTypeManualList,
			Tags: domain.ParseTags(strings.Join(it.Categories, ",")),
			Note: strings.TrimSpace(feed.Title),
		}
		switch {
		case it.PublishedParsed != nil:
			row.LastSeen = it.PublishedParsed.UTC()
		case it.UpdatedParsed != nil:
			row.LastSeen = it.UpdatedParsed.UTC()
		}
		rows = append(rows, row)
	}
	return rows
}

// isWebLink reports whether link is an absolute http(s) URL.
func isWebLink(link string) bool {
	lower := strings.ToLower(link)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) && len(lower) > len(scheme) {
			return true
		}
	}
	return false
}

func queryKeywords(query string) []string {
	var out []string
	for _, k := range strings.Fields(strings.ToLower(query)) {
		if len(k) >= minKeywordLen {
			out = append(out, k)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
