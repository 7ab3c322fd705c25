package vocabulary

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	vocab, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVocabulary(), vocab)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestParse_EmptyDocumentReturnsDefaults(t *testing.T) {
	vocab, err := Parse(nil)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVocabulary(), vocab)
}

func TestParse_OverlaysScalarsAndMergesMaps(t *testing.T) {
	data := []byte(`
default_tag: agent
cluster_depth:
  ai-eng: 4.9
  infra: 4.3
practical_tags: [howto]
`)
	vocab, err := Parse(data)
	require.NoError(t, err)

	defaults := domain.DefaultVocabulary()
	assert.Equal(t, "agent", vocab.DefaultTag)
	assert.Equal(t, []string{"howto"}, vocab.PracticalTags)
	assert.InDelta(t, 4.9, vocab.ClusterDepth["ai-eng"], 1e-9)
	assert.InDelta(t, 4.3, vocab.ClusterDepth["infra"], 1e-9)
	assert.InDelta(t, defaults.ClusterDepth["security"], vocab.ClusterDepth["security"], 1e-9)
	assert.Equal(t, defaults.QueryKeywords, vocab.QueryKeywords)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("defualt_tag: seo\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"keyword rule without tag", "query_keywords:\n  - keywords: [x]\n"},
		{"depth out of range", "cluster_depth:\n  ai-eng: 7\n"},
		{"hint without domain", "domain_hints:\n  - name: x\n"},
		{"gap rule without sentinel", "gap_rules:\n  - query_tag: seo\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestWrite_RoundTripsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.DefaultVocabulary()))

	path := filepath.Join(t.TempDir(), "vocab.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	vocab, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultVocabulary(), vocab)
}
