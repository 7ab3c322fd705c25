// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

// RecommendCompleted carries a recommendation back to the model.
type RecommendCompleted struct {
	Recommendation *domain.Recommendation
	Err            error
}

// SourceSelected is sent when a ranked source is opened for detail.
type SourceSelected struct {
	Rank int
	Item domain.Ranked
}

// HistoryLoaded carries recorded import runs.
type HistoryLoaded struct {
	Runs []domain.ImportRun
	Err  error
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewRecommend is the query input and ranked list.
	ViewRecommend
	// ViewDetail shows one ranked source with its component scores.
	ViewDetail
	// ViewHistory lists recent import runs.
	ViewHistory
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewRecommend:
		return "recommend"
	case ViewDetail:
		return "detail"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
