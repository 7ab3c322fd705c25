package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

func sampleItems() []domain.Ranked {
	return []domain.Ranked{
		{Score: 4.1, Source: domain.Source{Name: "serp-lab", Type: domain.SourceTypeDeepGitHub, URL: "https://github.com/a/serp-lab", Note: "tools"}},
		{Score: 3.7, Source: domain.Source{Name: "Essay", Type: domain.SourceTypeKarpathy, URL: "https://blog.example.com/essay", Note: "long form"}},
		{Score: 2.9, Source: domain.Source{Name: "Channel", Type: domain.SourceTypeTelegram, URL: "https://t.me/chan", Note: "chat", Members: 1200}},
	}
}

func TestNewRankedList(t *testing.T) {
	l := NewRankedList(nil)

	require.NotNil(t, l)
	assert.NotNil(t, l.styles)
	assert.Zero(t, l.Count())
	assert.Nil(t, l.SelectedItem())
	assert.Nil(t, l.Init())
}

func TestRankedList_Navigation(t *testing.T) {
	l := NewRankedList(styles.Plain())
	l.SetItems(sampleItems())

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.Update(tea.KeyMsg{Type: tea.KeyDown})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected(), "selection stops at the last item")
	assert.Equal(t, "Channel", l.SelectedItem().Source.Name)

	l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())

	l.SetItems(sampleItems()[:1])
	assert.Equal(t, 0, l.Selected(), "new items reset the selection")
}

func TestRankedList_View(t *testing.T) {
	l := NewRankedList(styles.Plain())
	assert.Contains(t, l.View(), "No sources selected")

	l.SetDimensions(200, 20)
	l.SetItems(sampleItems())
	view := l.View()

	assert.Contains(t, view, "Top 3")
	assert.Contains(t, view, ">  1. serp-lab (deep-github)")
	assert.Contains(t, view, "   3. Channel (telegram) | members 1,200")
	assert.NotContains(t, view, "relevance")

	l.SetExplain(true)
	assert.True(t, l.Explain())
	assert.Contains(t, l.View(), "relevance 0.00")
}

func TestRankedList_ViewScrollsToSelection(t *testing.T) {
	l := NewRankedList(styles.Plain())
	l.SetDimensions(200, 6)
	l.SetItems(sampleItems())
	l.MoveDown()
	l.MoveDown()

	view := l.View()

	assert.NotContains(t, view, "serp-lab")
	assert.Contains(t, view, "Channel")
}

func TestRankedList_TruncatesLongLines(t *testing.T) {
	l := NewRankedList(styles.Plain())
	l.SetDimensions(30, 20)
	l.SetItems(sampleItems())

	assert.Contains(t, l.View(), "...")
}
