package services

import (
	"strings"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Tagger maps a free-text query to topic tags by keyword containment.
// There is no tokenisation or stemming: a tag matches when any of its
// keywords is a substring of the lower-cased query.
type Tagger struct {
	rules      []domain.KeywordRule
	defaultTag string
}

// NewTagger creates a tagger from the vocabulary's keyword table.
// Keywords are lower-cased once here so matching is case-insensitive.
func NewTagger(vocab *domain.Vocabulary) *Tagger {
	if vocab == nil {
		vocab = domain.DefaultVocabulary()
	}

	rules := make([]domain.KeywordRule, 0, len(vocab.QueryKeywords))
	for _, r := range vocab.QueryKeywords {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		rules = append(rules, domain.KeywordRule{Tag: r.Tag, Keywords: kws})
	}

	return &Tagger{rules: rules, defaultTag: vocab.DefaultTag}
}

// Tag returns the tags of a query. When nothing matches the default tag
// is returned on its own, or an empty set if no default is configured.
func (t *Tagger) Tag(query string) domain.TagSet {
	q := strings.ToLower(query)
	tags := make(domain.TagSet)

	for _, r := range t.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(q, kw) {
				tags[r.Tag] = struct{}{}
				break
			}
		}
	}

	if len(tags) == 0 && t.defaultTag != "" {
		tags[t.defaultTag] = struct{}{}
	}
	return tags
}
