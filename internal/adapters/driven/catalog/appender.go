package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
)

// Column layouts written by the appenders. They match what the loaders read.
var (
	DeepGitHubColumns = []string{"name", "url", "stars", "tags", "note"}
	TelegramColumns   = []string{"name", "type", "members", "tags", "url", "note", "last_seen_utc"}
)

// TableAppender appends rows to a tab-separated catalog.
type TableAppender struct {
	path    string
	columns []string
}

var _ driven.CatalogAppender = (*TableAppender)(nil)

// NewDeepGitHubAppender appends to the repository catalog.
func NewDeepGitHubAppender(path string) *TableAppender {
	return &TableAppender{path: path, columns: DeepGitHubColumns}
}

// NewTelegramAppender appends to the channel catalog.
func NewTelegramAppender(path string) *TableAppender {
	return &TableAppender{path: path, columns: TelegramColumns}
}

// Path returns the backing file path.
func (a *TableAppender) Path() string {
	return a.path
}

// ExistingURLs returns the url column of every row.
func (a *TableAppender) ExistingURLs(_ context.Context) (map[string]struct{}, error) {
	urls := make(map[string]struct{})
	rows, err := readTable(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return urls, nil
	}
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if u := row.Get("url", ""); u != "" {
			urls[u] = struct{}{}
		}
	}
	return urls, nil
}

// Append writes rows, creating the file with a header row if needed.
func (a *TableAppender) Append(_ context.Context, rows []domain.CatalogRow) error {
	f, created, err := openAppend(a.path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'
	if created {
		if err := w.Write(a.columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i := range rows {
		if err := w.Write(a.record(rows[i])); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", a.path, err)
	}
	return f.Close()
}

func (a *TableAppender) record(row domain.CatalogRow) []string {
	values := map[string]string{
		"name":          cell(row.Name),
		"url":           row.URL,
		"type":          row.Type.String(),
		"stars":         strconv.Itoa(row.Stars),
		"members":       strconv.Itoa(row.Members),
		"tags":          strings.Join(row.Tags.Sorted(), ","),
		"note":          cell(row.Note),
		"last_seen_utc": row.LastSeen.UTC().Format(time.RFC3339),
	}
	out := make([]string, len(a.columns))
	for i, c := range a.columns {
		out[i] = values[c]
	}
	return out
}

// URLListAppender appends URLs to a plain-text list.
type URLListAppender struct {
	path string
}

var _ driven.CatalogAppender = (*URLListAppender)(nil)

// NewURLListAppender creates an appender for a URL list.
func NewURLListAppender(path string) *URLListAppender {
	return &URLListAppender{path: path}
}

// Path returns the backing file path.
func (a *URLListAppender) Path() string {
	return a.path
}

// ExistingURLs returns every accepted URL line.
func (a *URLListAppender) ExistingURLs(_ context.Context) (map[string]struct{}, error) {
	urls := make(map[string]struct{})
	list, err := readURLList(a.path)
	if errors.Is(err, os.ErrNotExist) {
		return urls, nil
	}
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		urls[u] = struct{}{}
	}
	return urls, nil
}

// Append writes one URL per line.
func (a *URLListAppender) Append(_ context.Context, rows []domain.CatalogRow) error {
	if err := ensureTrailingNewline(a.path); err != nil {
		return err
	}
	f, _, err := openAppend(a.path)
	if err != nil {
		return err
	}
	defer f.Close()

	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row.URL)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", a.path, err)
	}
	return f.Close()
}

// openAppend opens path for appending and reports whether it was empty
// or missing, in which case a header is due.
func openAppend(path string) (*os.File, bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating catalog directory: %w", err)
	}
	created := true
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		created = false
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, created, nil
}

func ensureTrailingNewline(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) || len(data) == 0 {
		return nil
	}
	if err != nil {
		return err
	}
	if data[len(data)-1] == '\n' {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString("\n")
	return err
}

// cell keeps free text on one TSV line.
func cell(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
