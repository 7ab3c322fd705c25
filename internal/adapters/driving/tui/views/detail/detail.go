// Package detail shows one ranked source with its component scores.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// View is the source detail view.
type View struct {
	styles *styles.Styles
	item   *domain.Ranked
	rank   int
	width  int
	height int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// SetItem sets the source to display.
func (v *View) SetItem(rank int, item domain.Ranked) {
	v.rank = rank
	v.item = &item
}

// Item returns the displayed source, or nil.
func (v *View) Item() *domain.Ranked {
	return v.item
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update returns to the ranked list on esc, enter or backspace.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "enter", "backspace":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewRecommend}
			}
		}
	}
	return v, nil
}

// View renders the detail view.
func (v *View) View() string {
	if v.item == nil {
		return v.styles.Muted.Render("No source selected") + "\n\n" + v.styles.Help.Render("[esc] back")
	}
	src := v.item.Source
	c := v.item.Components

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", v.styles.Title.Render(fmt.Sprintf("#%d %s", v.rank, src.Name)))

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", v.styles.Subtitle.Render(fmt.Sprintf("%-10s", label)), value)
	}
	row("Type", fmt.Sprintf("%s (%s)", v.styles.TypeBadge(src.Type), src.Type.Category()))
	row("URL", v.styles.URL.Render(src.URL))
	row("Host", src.Host())
	row("Tags", strings.Join(src.Tags.Sorted(), ", "))
	row("Cluster", src.Cluster)
	if src.Stars > 0 {
		row("Stars", fmt.Sprintf("%d", src.Stars))
	}
	if src.Members > 0 {
		row("Members", fmt.Sprintf("%d", src.Members))
	}
	row("Note", src.Note)

	fmt.Fprintf(&b, "\n%s %s/5\n\n", v.styles.Subtitle.Render("KnowledgeValue"),
		v.styles.Score.Render(fmt.Sprintf("%.2f", v.item.Score)))

	bar := func(label string, score float64) {
		filled := int(score*4 + 0.5)
		fmt.Fprintf(&b, "  %-14s %s%s %.2f\n", label,
			v.styles.Score.Render(strings.Repeat("█", filled)),
			v.styles.Muted.Render(strings.Repeat("░", int(domain.MaxScore*4)-filled)),
			score)
	}
	bar("relevance", c.Relevance)
	bar("depth", c.Depth)
	bar("actionability", c.Actionability)
	bar("freshness", c.Freshness)
	bar("consequence", c.Consequence)

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[esc] back to results"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
