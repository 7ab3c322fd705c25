package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func TestDefaultTheme_CoversEverySourceType(t *testing.T) {
	theme := DefaultTheme()

	for _, typ := range domain.AllSourceTypes() {
		assert.NotEmpty(t, string(theme.Types[typ]), typ)
	}
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	seen := make(map[lipgloss.Color]bool)
	for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilTheme(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestPlain_RendersUnchanged(t *testing.T) {
	s := Plain()

	assert.Equal(t, "Top 10", s.Title.Render("Top 10"))
	assert.Equal(t, "4.21", s.Score.Render("4.21"))
	assert.Equal(t, "telegram", s.TypeBadge(domain.SourceTypeTelegram))
}

func TestTypeBadge_ContainsTypeName(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.TypeBadge(domain.SourceTypeDeepGitHub), "deep-github")
	assert.Equal(t, "custom", s.TypeBadge(domain.SourceType("custom")))
}
