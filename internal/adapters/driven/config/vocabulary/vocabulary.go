// Package vocabulary loads keyword, cluster, domain-hint and gap tables
// from a YAML file layered over the built-in defaults.
//
// Scalars and lists present in the file replace the default value.
// Maps (cluster_tags, cluster_depth) are merged key by key. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
package vocabulary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// Load reads path and overlays it on domain.DefaultVocabulary.
// An empty path returns the defaults.
func Load(path string) (*domain.Vocabulary, error) {
	if path == "" {
		return domain.DefaultVocabulary(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	vocab, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vocab, nil
}

// Parse overlays YAML data on the defaults.
func Parse(data []byte) (*domain.Vocabulary, error) {
	vocab := domain.DefaultVocabulary()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(vocab); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: vocabulary: %v", domain.ErrInvalidInput, err)
	}

	if err := validate(vocab); err != nil {
		return nil, err
	}
	return vocab, nil
}

// Write encodes v as YAML. Used to dump the defaults as a starting point.
func Write(w io.Writer, v *domain.Vocabulary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	return enc.Close()
}

func validate(v *domain.Vocabulary) error {
	for i, rule := range v.QueryKeywords {
		if rule.Tag == "" {
			return fmt.Errorf("%w: query_keywords[%d]: tag is required", domain.ErrInvalidInput, i)
		}
	}
	for cluster, depth := range v.ClusterDepth {
		if depth < 0 || depth > domain.MaxScore {
			return fmt.Errorf("%w: cluster_depth[%s]: %.2f outside [0, 5]", domain.ErrInvalidInput, cluster, depth)
		}
	}
	for i, hint := range v.DomainHints {
		if hint.Domain == "" {
			return fmt.Errorf("%w: domain_hints[%d]: domain is required", domain.ErrInvalidInput, i)
		}
	}
	for i, rule := range v.GapRules {
		if rule.QueryTag == "" || rule.Sentinel == "" {
			return fmt.Errorf("%w: gap_rules[%d]: query_tag and sentinel are required", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
