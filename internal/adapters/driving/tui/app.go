package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/views/recommend"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	menuView      *menu.View
	recommendView *recommend.View
	detailView    *detail.View
	historyView   *history.View

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		recommendView: recommend.NewView(s, km, ports.Recommend),
		detailView:    detail.NewView(s),
		historyView:   history.NewView(s, ports.Import),
		currentView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.recommendView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// WithQuery opens the app on the recommend view with a query already run.
func (a *App) WithQuery(query string) *App {
	if query == "" {
		return a
	}
	a.currentView = messages.ViewRecommend
	a.recommendView.SetQuery(query)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle("sourcerank")}
	if a.currentView == messages.ViewRecommend {
		_, cmd := a.recommendView.Update(tea.KeyMsg{Type: tea.KeyEnter})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewRecommend:
			a.recommendView, cmd = a.recommendView.Update(msg)
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewRecommend:
			if a.recommendView.Recommendation() == nil {
				a.recommendView.Reset()
			}
			return a, a.recommendView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewMenu, messages.ViewDetail, messages.ViewHelp:
		}
		return a, nil

	case messages.RecommendCompleted:
		a.err = msg.Err
		a.recommendView, cmd = a.recommendView.Update(msg)
		return a, cmd

	case messages.SourceSelected:
		a.detailView.SetItem(msg.Rank, msg.Item)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewRecommend {
			a.recommendView, cmd = a.recommendView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	if a.currentView == messages.ViewRecommend {
		a.recommendView, cmd = a.recommendView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewRecommend:
		return a.recommendView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewMenu:
	}
	return a.menuView.View()
}

func (a *App) viewHelp() string {
	return `Help

Recommend:
  (type)      Enter a topic
  enter       Rank the catalogs
  j/k, ↑/↓    Navigate the top-N
  enter       Show scores of the selected source
  s           Switch hard-quota / soft-quota and rerun
  e           Toggle component scores
  n           New query
  esc         Back to menu

History:
  j/k         Navigate runs
  r           Reload
  esc         Back to menu

ctrl+c quits from anywhere.

[esc] back to menu`
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.recommendView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
}
