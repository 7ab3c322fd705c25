package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sourcerank/internal/adapters/driving/report"
	"github.com/custodia-labs/sourcerank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sourcerank/internal/core/domain"
)

var (
	recommendLimit    int
	recommendStrategy string
	recommendJSON     bool
	recommendExplain  bool
	recommendWatch    bool
)

var recommendCmd = &cobra.Command{
	Use:     "recommend [query]",
	Aliases: []string{"rank"},
	Short:   "Recommend sources for a query",
	Long: `Scores every catalog source against the query and prints a diversified
top-N list with knowledge values, a reading order, a risk advisory for
adversarial topics and the reference categories the selection lacks.

Strategies:
  hard-quota  - at most diversify.per_type_cap picks per source type
  soft-quota  - curated sources first, community sources gated by relevance,
                at most diversify.per_host_cap picks per host`,
	Example: `  sourcerank recommend "seo blackhat"
  sourcerank recommend --strategy soft-quota -n 5 osint forums
  sourcerank recommend --watch agent workflow`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVarP(&recommendLimit, "limit", "n", 0, "number of sources to select (default recommend.limit)")
	recommendCmd.Flags().StringVarP(&recommendStrategy, "strategy", "s", "", "diversification strategy: hard-quota or soft-quota")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "output the recommendation as JSON")
	recommendCmd.Flags().BoolVar(&recommendExplain, "explain", false, "print the five component scores of each pick")
	recommendCmd.Flags().BoolVarP(&recommendWatch, "watch", "w", false, "re-run when a catalog file changes")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recommendService == nil {
		return errNotConfigured("recommend")
	}

	query := strings.Join(args, " ")
	opts := domain.RecommendOptions{Limit: recommendLimit}
	if recommendStrategy != "" {
		opts.Strategy = domain.StrategyName(recommendStrategy)
		if !opts.Strategy.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, recommendStrategy)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if err := printRecommendation(ctx, out, query, opts); err != nil {
		return err
	}
	if !recommendWatch {
		return nil
	}

	if catalogWatcher == nil {
		return errNotConfigured("watch")
	}
	paths := recommendService.CatalogPaths()
	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching %d catalog files, press Ctrl+C to stop.\n", len(paths))

	return catalogWatcher.Watch(ctx, paths, func(path string) {
		fmt.Fprintf(out, "\n--- %s changed ---\n\n", path)
		if err := printRecommendation(ctx, out, query, opts); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	})
}

func printRecommendation(ctx context.Context, out io.Writer, query string, opts domain.RecommendOptions) error {
	rec, err := recommendService.Recommend(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("recommend failed: %w", err)
	}
	if recommendJSON {
		return report.WriteJSON(out, rec)
	}
	return report.WriteText(out, rec, report.Options{
		Explain: recommendExplain,
		Styles:  stylesFor(out),
	})
}

// stylesFor colours output only when it goes to a terminal.
func stylesFor(w io.Writer) *styles.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styles.DefaultStyles()
	}
	return styles.Plain()
}
