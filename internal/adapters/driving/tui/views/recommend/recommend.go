// Package recommend provides the query and ranked list view for the TUI.
package recommend

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/report"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
)

// ErrNoRecommendService indicates that no recommend service was provided.
var ErrNoRecommendService = errors.New("recommend service is required")

// View holds the query input, the ranked list and the status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.RankedList
	statusbar *status.Bar

	service driving.RecommendService
	ctx     context.Context

	rec        *domain.Recommendation
	query      string
	strategy   domain.StrategyName
	width      int
	height     int
	ready      bool
	err        error
	focusInput bool
}

// NewView creates a new recommend view.
func NewView(s *styles.Styles, km *keymap.KeyMap, service driving.RecommendService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQueryInput(s),
		list:       list.NewRankedList(s),
		statusbar:  status.NewBar(s, km),
		service:    service,
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context used for recommendation calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the recommend view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecommendCompleted:
		v.handleCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focusInput {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			query := strings.TrimSpace(v.input.Value())
			if query == "" {
				return v, nil
			}
			v.query = query
			v.focusInput = false
			v.input.Blur()
			return v, v.run()
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch {
	case keymap.Matches(msg.String(), v.keymap.Select):
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		sel := messages.SourceSelected{Rank: v.list.Selected() + 1, Item: *item}
		return v, func() tea.Msg { return sel }

	case keymap.Matches(msg.String(), v.keymap.Up):
		v.list.MoveUp()

	case keymap.Matches(msg.String(), v.keymap.Down):
		v.list.MoveDown()

	case keymap.Matches(msg.String(), v.keymap.NewQuery):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()

	case keymap.Matches(msg.String(), v.keymap.Explain):
		v.list.SetExplain(!v.list.Explain())

	case keymap.Matches(msg.String(), v.keymap.Strategy):
		if v.query == "" {
			return v, nil
		}
		v.strategy = nextStrategy(v.currentStrategy())
		return v, v.run()
	}

	return v, nil
}

// run asks the service for a recommendation of the current query.
func (v *View) run() tea.Cmd {
	v.statusbar.SetState(status.StateRanking)
	v.statusbar.SetMessage("")

	query := v.query
	opts := domain.RecommendOptions{Strategy: v.strategy}
	return func() tea.Msg {
		if v.service == nil {
			return messages.ErrorOccurred{Err: ErrNoRecommendService}
		}
		rec, err := v.service.Recommend(v.ctx, query, opts)
		return messages.RecommendCompleted{Recommendation: rec, Err: err}
	}
}

func (v *View) handleCompleted(msg messages.RecommendCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	if msg.Recommendation == nil {
		return
	}

	v.err = nil
	v.rec = msg.Recommendation
	v.strategy = v.rec.Strategy
	v.list.SetItems(v.rec.Items)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetResults(len(v.rec.Items), v.rec.PoolSize, v.rec.Strategy)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) currentStrategy() domain.StrategyName {
	if v.rec != nil {
		return v.rec.Strategy
	}
	return v.strategy
}

func nextStrategy(s domain.StrategyName) domain.StrategyName {
	if s == domain.StrategySoftQuota {
		return domain.StrategyHardQuota
	}
	return domain.StrategySoftQuota
}

// View renders the recommend view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{v.styles.Title.Render("sourcerank"), "", v.input.View(), ""}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.rec != nil {
		sections = append(sections,
			v.styles.Subtitle.Render("Query tags: ")+strings.Join(v.rec.QueryTags, ", "),
			v.styles.Subtitle.Render("Candidate pool: ")+report.PoolSummary(v.rec),
			"",
		)
	}

	sections = append(sections, v.list.View())

	if v.rec != nil {
		if v.rec.Advisory != "" {
			sections = append(sections, "", v.styles.Advisory.Render(v.rec.Advisory))
		}
		if len(v.rec.Gaps) > 0 {
			sections = append(sections, "", v.styles.Subtitle.Render("Missing reference categories:"))
			for _, g := range v.rec.Gaps {
				sections = append(sections, "- "+g)
			}
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// SetQuery fills the input, as if typed.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Recommendation returns the last successful recommendation.
func (v *View) Recommendation() *domain.Recommendation {
	return v.rec
}

// Strategy returns the strategy the next run will request. Empty means
// the configured default.
func (v *View) Strategy() domain.StrategyName {
	return v.strategy
}

// SelectedIndex returns the index of the selected item.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Explain reports whether component scores are shown.
func (v *View) Explain() bool {
	return v.list.Explain()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}

// Reset returns to an empty query with input focus.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetItems(nil)
	v.rec = nil
	v.query = ""
	v.err = nil
	v.statusbar.Clear()
}
