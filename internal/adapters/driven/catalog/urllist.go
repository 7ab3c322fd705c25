package catalog

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// urlSchemes are the prefixes a URL list line must start with.
var urlSchemes = []string{"https://", "http://"}

// URLListLoader loads a plain-text file with one URL per line.
type URLListLoader struct {
	path  string
	vocab *domain.Vocabulary
}

var _ driven.CatalogLoader = (*URLListLoader)(nil)

// NewURLListLoader creates a loader for a URL list.
func NewURLListLoader(path string, vocab *domain.Vocabulary) *URLListLoader {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}
	return &URLListLoader{path: path, vocab: vocab}
}

// Type returns the source type this loader produces.
func (l *URLListLoader) Type() domain.SourceType {
	return domain.SourceTypeManualList
}

// Path returns the backing file path.
func (l *URLListLoader) Path() string {
	return l.path
}

// Load reads the list. Lines that do not start with a known scheme are
// discarded silently.
func (l *URLListLoader) Load(ctx context.Context) ([]domain.Source, error) {
	urls, err := readURLList(l.path)
	if err != nil {
		return nil, fmt.Errorf("load url list: %w", err)
	}

	out := make([]domain.Source, 0, len(urls))
	for _, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := SourceFromURL(u, l.vocab)
		if err := src.Validate(); err != nil {
			logger.Warn("%s: skipping %q: %v", l.path, u, err)
			continue
		}
		out = append(out, src)
	}
	return out, nil
}

// SourceFromURL derives a manual-list source from a bare URL using the
// vocabulary's domain hints. The first hint in table order whose domain
// matches the host wins; unmatched hosts get the fallback note and tags.
func SourceFromURL(url string, vocab *domain.Vocabulary) domain.Source {
	host := domain.HostOf(url)
	src := domain.Source{
		Name: displayName(url),
		URL:  url,
		Type: domain.SourceTypeManualList,
		Note: vocab.FallbackNote,
		Tags: domain.NewTagSet(vocab.FallbackTags...),
	}
	if hint, ok := vocab.HintForHost(host); ok {
		src.Note = hint.Note
		src.Tags = domain.NewTagSet(hint.Tags...)
	}
	return src
}

func readURLList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseURLList(data), nil
}

func parseURLList(data []byte) []string {
	data = bytes.TrimPrefix(data, utf8BOM)

	var urls []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if hasURLScheme(line) {
			urls = append(urls, line)
		}
	}
	return urls
}

func hasURLScheme(line string) bool {
	lower := strings.ToLower(line)
	for _, s := range urlSchemes {
		if strings.HasPrefix(lower, s) && len(lower) > len(s) {
			return true
		}
	}
	return false
}
