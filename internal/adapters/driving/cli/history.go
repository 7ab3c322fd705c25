package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded import runs",
	Long:  `Lists import runs from the ledger, most recent first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output runs as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := importService.History(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		data, err := json.MarshalIndent(runs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal runs: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No import runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tPROVIDER\tQUERY\tIMPORTED\tSKIPPED\tSTATUS")
	for _, r := range runs {
		status := "ok"
		if !r.Succeeded() {
			status = "error: " + r.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"), r.Provider, r.Query, r.Imported, r.Skipped, status)
	}
	return tw.Flush()
}
