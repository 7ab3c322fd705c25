// Package history lists recorded catalog import runs.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
)

// Limit is the number of runs loaded.
const Limit = 50

// View is the import history view.
type View struct {
	styles  *styles.Styles
	service driving.ImportService
	ctx     context.Context

	runs     []domain.ImportRun
	selected int
	width    int
	height   int
	loading  bool
	err      error
}

// NewView creates a history view. A nil service shows an empty history.
func NewView(s *styles.Styles, service driving.ImportService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		service: service,
		ctx:     context.Background(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context used to load runs.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the runs.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return func() tea.Msg {
		if v.service == nil {
			return messages.HistoryLoaded{}
		}
		runs, err := v.service.History(v.ctx, Limit)
		return messages.HistoryLoaded{Runs: runs, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		v.runs = msg.Runs
		v.selected = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.runs)-1 {
				v.selected++
			}
		case "r":
			return v, v.Init()
		}
	}
	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Import history"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case len(v.runs) == 0:
		b.WriteString(v.styles.Muted.Render("No import runs recorded."))
	default:
		for i, r := range v.runs {
			line := runLine(r)
			if i == v.selected {
				b.WriteString(v.styles.Selected.Render("> " + line))
			} else {
				b.WriteString(v.styles.Normal.Render("  " + line))
			}
			b.WriteString("\n")
		}
		if r := v.runs[v.selected]; r.Error != "" {
			b.WriteString("\n" + v.styles.Error.Render(r.Error))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [r] Reload  [esc] Back"))
	return b.String()
}

func runLine(r domain.ImportRun) string {
	status := "ok"
	if !r.Succeeded() {
		status = "failed"
	}
	return fmt.Sprintf("%s  %-6s  %-24q  +%d  (%d skipped)  %s  %s",
		r.StartedAt.Local().Format(time.DateTime), r.Provider, r.Query,
		r.Imported, r.Skipped, status, r.Target)
}

// Runs returns the loaded runs.
func (v *View) Runs() []domain.ImportRun {
	return v.runs
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
