// Package cli implements the sourcerank command line with cobra.
//
// Services are injected through Configure (tests) or built lazily by the
// bootstrap function registered with SetBootstrap (the binary), which
// runs after flags are parsed so that --config-dir is honoured.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sourcerank/internal/core/domain"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driven"
	"github.com/custodia-labs/sourcerank/internal/core/ports/driving"
	"github.com/custodia-labs/sourcerank/internal/logger"
)

// Services are the ports the commands drive.
type Services struct {
	Recommend  driving.RecommendService
	Import     driving.ImportService
	Settings   driving.SettingsService
	Watcher    driven.ChangeNotifier
	Vocabulary *domain.Vocabulary

	// Close releases resources such as the ledger database.
	Close func() error
}

// Bootstrap builds the services from the configuration directory.
type Bootstrap func(ctx context.Context, configDir string) (*Services, error)

// skipBootstrap marks commands that need no services.
const skipBootstrap = "skip-bootstrap"

var (
	version   = "dev"
	verbose   bool
	configDir string

	bootstrap Bootstrap

	recommendService driving.RecommendService
	importService    driving.ImportService
	settingsService  driving.SettingsService
	catalogWatcher   driven.ChangeNotifier
	vocabulary       *domain.Vocabulary
	closeServices    func() error
)

var rootCmd = &cobra.Command{
	Use:   "sourcerank",
	Short: "Rank reference sources by knowledge value for a query",
	Long: `sourcerank scores a local catalog of reference sources (blogs,
repositories, channels and link lists) against a free-text query and
prints a diversified top-N reading list with the categories still missing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
			return nil
		}
		svcs, err := bootstrap(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		Configure(svcs)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.sourcerank)")
}

// Configure installs services for the commands.
func Configure(s *Services) {
	if s == nil {
		return
	}
	recommendService = s.Recommend
	importService = s.Import
	settingsService = s.Settings
	catalogWatcher = s.Watcher
	vocabulary = s.Vocabulary
	closeServices = s.Close
}

// SetBootstrap registers the function that builds services at startup.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			logger.Warn("Closing services: %v", cerr)
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}
