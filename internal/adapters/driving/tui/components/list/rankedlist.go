// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/report"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// RankedList displays the selected sources in a navigable list.
type RankedList struct {
	items    []domain.Ranked
	selected int
	explain  bool
	styles   *styles.Styles
	width    int
	height   int
}

// NewRankedList creates a new ranked list component.
func NewRankedList(s *styles.Styles) *RankedList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &RankedList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (r *RankedList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *RankedList) Update(msg tea.Msg) (*RankedList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the list.
func (r *RankedList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render("No sources selected")
	}

	lines := make([]string, 0, len(r.items)*2+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Top %d", len(r.items))), "")

	perItem := 1
	if r.explain {
		perItem = 2
	}
	visible := max((r.height-4)/perItem, 1)

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := min(start+visible, len(r.items))

	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i))
		if r.explain {
			lines = append(lines, r.styles.Muted.Render("     "+report.Components(r.items[i].Components)))
		}
	}
	return strings.Join(lines, "\n")
}

func (r *RankedList) renderItem(index int) string {
	line := fmt.Sprintf("%2d. %s", index+1, report.ItemLine(r.items[index], styles.Plain()))
	if maxLen := r.width - 4; maxLen > 10 && len([]rune(line)) > maxLen {
		line = string([]rune(line)[:maxLen-3]) + "..."
	}
	if index == r.selected {
		return r.styles.Selected.Render("> " + line)
	}
	return r.styles.Normal.Render("  " + line)
}

// SetItems replaces the list contents and resets the selection.
func (r *RankedList) SetItems(items []domain.Ranked) {
	r.items = items
	r.selected = 0
}

// Items returns the current items.
func (r *RankedList) Items() []domain.Ranked {
	return r.items
}

// SetExplain toggles the component score line under each item.
func (r *RankedList) SetExplain(on bool) {
	r.explain = on
}

// Explain reports whether component scores are shown.
func (r *RankedList) Explain() bool {
	return r.explain
}

// Selected returns the index of the selected item.
func (r *RankedList) Selected() int {
	return r.selected
}

// SelectedItem returns the selected item, or nil when the list is empty.
func (r *RankedList) SelectedItem() *domain.Ranked {
	if r.selected < 0 || r.selected >= len(r.items) {
		return nil
	}
	return &r.items[r.selected]
}

// MoveUp moves selection up.
func (r *RankedList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RankedList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *RankedList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of items.
func (r *RankedList) Count() int {
	return len(r.items)
}
