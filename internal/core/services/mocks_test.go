package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// stubLoader returns fixed sources, or err.
type stubLoader struct {
	typ     domain.SourceType
	path    string
	sources []domain.Source
	err     error
}

func (l *stubLoader) Type() domain.SourceType { return l.typ }
func (l *stubLoader) Path() string            { return l.path }

func (l *stubLoader) Load(_ context.Context) ([]domain.Source, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.sources, nil
}

// stubSearcher returns fixed rows and records the last request.
type stubSearcher struct {
	provider domain.ImportProvider
	rows     []domain.CatalogRow
	err      error
	lastReq  domain.ImportRequest
}

func (s *stubSearcher) Provider() domain.ImportProvider { return s.provider }

func (s *stubSearcher) Search(_ context.Context, req domain.ImportRequest) ([]domain.CatalogRow, error) {
	s.lastReq = req
	return s.rows, s.err
}

// stubAppender keeps appended rows in memory.
type stubAppender struct {
	mu        sync.Mutex
	path      string
	existing  []string
	appended  []domain.CatalogRow
	readErr   error
	appendErr error
}

func (a *stubAppender) Path() string { return a.path }

func (a *stubAppender) ExistingURLs(_ context.Context) (map[string]struct{}, error) {
	if a.readErr != nil {
		return nil, a.readErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	urls := make(map[string]struct{}, len(a.existing))
	for _, u := range a.existing {
		urls[u] = struct{}{}
	}
	for _, r := range a.appended {
		urls[r.URL] = struct{}{}
	}
	return urls, nil
}

func (a *stubAppender) Append(_ context.Context, rows []domain.CatalogRow) error {
	if a.appendErr != nil {
		return a.appendErr
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appended = append(a.appended, rows...)
	return nil
}

// brokenLedger fails every call.
type brokenLedger struct{}

var errLedger = errors.New("ledger unavailable")

func (brokenLedger) Record(context.Context, domain.ImportRun) error { return errLedger }
func (brokenLedger) Get(context.Context, string) (*domain.ImportRun, error) {
	return nil, errLedger
}
func (brokenLedger) List(context.Context, int) ([]domain.ImportRun, error) { return nil, errLedger }

// entry builds a ranked entry with the given relevance.
func entry(name, url string, typ domain.SourceType, score, relevance float64) domain.Ranked {
	return domain.Ranked{
		Score:      score,
		Components: domain.ComponentScores{Relevance: relevance},
		Source:     domain.Source{Name: name, URL: url, Type: typ},
	}
}

func names(entries []domain.Ranked) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Source.Name)
	}
	return out
}
