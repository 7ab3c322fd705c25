package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// DefaultImportLimit is the number of hits requested when none is given.
const DefaultImportLimit = 30

// ImportTarget pairs a remote search with the catalog its rows land in.
type ImportTarget struct {
	Searcher driven.RemoteSearcher
	Appender driven.CatalogAppender
}

// ImportService runs one-shot remote searches and appends new rows to
// catalogs. It is independent of the scoring path: imported rows only
// affect rankings the next time the catalogs are loaded.
type ImportService struct {
	targets map[domain.ImportProvider]ImportTarget
	ledger  driven.ImportLedger
	now     func() time.Time
}

// NewImportService creates an import service. The ledger is optional.
func NewImportService(ledger driven.ImportLedger, targets ...ImportTarget) *ImportService {
	m := make(map[domain.ImportProvider]ImportTarget, len(targets))
	for _, t := range targets {
		m[t.Searcher.Provider()] = t
	}
	return &ImportService{
		targets: m,
		ledger:  ledger,
		now:     time.Now,
	}
}

// Import searches, drops rows whose URL is already in the catalog (or
// repeated within the batch), appends the rest and records the run.
func (s *ImportService) Import(ctx context.Context, req domain.ImportRequest) (*domain.ImportRun, error) {
	logger.Section("Import")

	target, ok := s.targets[req.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownProvider, req.Provider)
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if req.Limit <= 0 {
		req.Limit = DefaultImportLimit
	}

	run := &domain.ImportRun{
		ID:        uuid.New().String(),
		Provider:  req.Provider,
		Query:     req.Query,
		Target:    target.Appender.Path(),
		StartedAt: s.now().UTC(),
	}
	logger.Debug("Run %s: provider=%s query=%q limit=%d target=%s",
		run.ID, run.Provider, run.Query, req.Limit, run.Target)

	err := s.execute(ctx, target, req, run)
	run.FinishedAt = s.now().UTC()
	if err != nil {
		run.Error = err.Error()
		logger.Warn("Import %s failed: %v", run.ID, err)
	}

	if s.ledger != nil {
		if lerr := s.ledger.Record(ctx, *run); lerr != nil {
			logger.Warn("Recording import run %s: %v", run.ID, lerr)
		}
	}

	if err != nil {
		return run, fmt.Errorf("import %s: %w", req.Provider, err)
	}
	logger.Info("Imported %d rows (%d skipped) into %s", run.Imported, run.Skipped, run.Target)
	return run, nil
}

func (s *ImportService) execute(
	ctx context.Context, target ImportTarget, req domain.ImportRequest, run *domain.ImportRun,
) error {
	rows, err := target.Searcher.Search(ctx, req)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	run.Fetched = len(rows)

	existing, err := target.Appender.ExistingURLs(ctx)
	if err != nil {
		return fmt.Errorf("read existing catalog: %w", err)
	}
	if existing == nil {
		existing = make(map[string]struct{})
	}

	fresh := make([]domain.CatalogRow, 0, len(rows))
	for _, row := range rows {
		row.URL = strings.TrimSpace(row.URL)
		if row.URL == "" {
			run.Skipped++
			continue
		}
		if _, dup := existing[row.URL]; dup {
			run.Skipped++
			continue
		}
		existing[row.URL] = struct{}{}

		row.Tags = row.Tags.Union(req.Tags)
		if row.LastSeen.IsZero() {
			row.LastSeen = run.StartedAt
		}
		fresh = append(fresh, row)
	}

	if len(fresh) == 0 {
		return nil
	}
	if err := target.Appender.Append(ctx, fresh); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	run.Imported = len(fresh)
	return nil
}

// History returns recent import runs, newest first.
func (s *ImportService) History(ctx context.Context, limit int) ([]domain.ImportRun, error) {
	if s.ledger == nil {
		return []domain.ImportRun{}, nil
	}
	runs, err := s.ledger.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	return runs, nil
}
