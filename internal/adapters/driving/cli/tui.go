package cli

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui"
)

// runProgram starts the bubbletea program. Tests replace it.
var runProgram = func(app *tui.App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}

var tuiCmd = &cobra.Command{
	Use:   "tui [query]",
	Short: "Browse recommendations interactively",
	Long: `Launch the interactive terminal browser.

Type a topic to rank the catalogs, open a pick to see its five component
scores, switch strategies in place and review the import history.
A query given on the command line is ranked immediately.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Rank / Details
  s        - Switch strategy
  e        - Toggle component scores
  Esc      - Back
  Ctrl+C   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if recommendService == nil {
		return errNotConfigured("recommend")
	}

	app, err := tui.NewApp(&tui.Ports{
		Recommend: recommendService,
		Import:    importService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithQuery(strings.Join(args, " "))

	if err := runProgram(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
