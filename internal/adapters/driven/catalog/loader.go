package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// RowParser turns one table row into a Source.
type RowParser func(row Row, vocab *domain.Vocabulary) (domain.Source, error)

// TableLoader loads a tab-separated catalog with a per-format row parser.
type TableLoader struct {
	path  string
	typ   domain.SourceType
	vocab *domain.Vocabulary
	parse RowParser
}

var _ driven.CatalogLoader = (*TableLoader)(nil)

// NewKarpathyLoader loads the long-form blog catalog
// (columns source_name, html_url, cluster).
func NewKarpathyLoader(path string, vocab *domain.Vocabulary) *TableLoader {
	return newTableLoader(path, domain.SourceTypeKarpathy, vocab, ParseKarpathyRow)
}

// NewDeepGitHubLoader loads the repository catalog
// (columns name, url, stars, tags, note).
func NewDeepGitHubLoader(path string, vocab *domain.Vocabulary) *TableLoader {
	return newTableLoader(path, domain.SourceTypeDeepGitHub, vocab, ParseDeepGitHubRow)
}

// NewTelegramLoader loads the channel catalog
// (columns name, type, members, tags, url, note, last_seen_utc).
func NewTelegramLoader(path string, vocab *domain.Vocabulary) *TableLoader {
	return newTableLoader(path, domain.SourceTypeTelegram, vocab, ParseTelegramRow)
}

func newTableLoader(path string, typ domain.SourceType, vocab *domain.Vocabulary, parse RowParser) *TableLoader {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}
	return &TableLoader{path: path, typ: typ, vocab: vocab, parse: parse}
}

// Type returns the source type this loader produces.
func (l *TableLoader) Type() domain.SourceType {
	return l.typ
}

// Path returns the backing file path.
func (l *TableLoader) Path() string {
	return l.path
}

// Load reads the catalog, skipping rows that fail to parse or yield an
// invalid source.
func (l *TableLoader) Load(ctx context.Context) ([]domain.Source, error) {
	rows, err := readTable(l.path)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", l.typ, err)
	}

	out := make([]domain.Source, 0, len(rows))
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src, err := l.parse(row, l.vocab)
		if err == nil {
			err = src.Validate()
		}
		if err != nil {
			var perr *domain.ParseError
			if errors.As(err, &perr) && perr.Line == 0 {
				perr.Line = row.Line
			}
			logger.Warn("%s: skipping row: %v", l.path, err)
			continue
		}
		out = append(out, src)
	}
	return out, nil
}
