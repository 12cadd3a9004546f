package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/airstrip/internal/app"
	"github.com/felixgeelhaar/airstrip/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past provisioning runs",
	Long: `Display the runs airstrip has recorded on this machine.

Only live runs are recorded; dry-runs leave no trace. Each entry keeps
the full step-by-step report of the run.

Examples:
  airstrip history              # Show recent runs
  airstrip history --limit 50   # Show more entries
  airstrip history --json       # JSON output
  airstrip history clear        # Delete all recorded runs`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Long:  `Remove every recorded run. This cannot be undone.`,
	RunE:  runHistoryClear,
}

var (
	historyLimit int
	historyJSON  bool
)

var newHistoryAirstrip = func(out io.Writer) airstripClient {
	return &airstripAdapter{app.New(out)}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
}

func runHistory(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	entries, err := newHistoryAirstrip(os.Stdout).History().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// List returns newest first; the limit keeps the most recent runs.
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	outputHistoryTable(entries)
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	removed, err := newHistoryAirstrip(os.Stdout).History().Clear(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Printf("Removed %d run(s).\n", removed)
	return nil
}

func outputHistoryTable(entries []history.Entry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "WHEN\tSTATUS\tSATISFIED\tAPPLIED\tFAILED\tDURATION")
	for _, e := range entries {
		summary := e.Summary()
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%s\n",
			formatRunAge(e.StartedAt),
			formatRunStatus(e),
			summary.AlreadySatisfied,
			summary.Applied,
			summary.Failed,
			e.Duration.Round(time.Second),
		)
	}
	_ = w.Flush()

	fmt.Printf("\nShowing %d run(s)\n", len(entries))
}

func formatRunStatus(e history.Entry) string {
	switch {
	case e.Interrupted:
		return "~ interrupted"
	case e.ExitCode != 0:
		return "✗ aborted"
	case e.Summary().Failed > 0:
		return "! partial"
	default:
		return "✓ success"
	}
}

func formatRunAge(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	if d < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	if d < 30*24*time.Hour {
		return fmt.Sprintf("%dw ago", int(d.Hours()/(24*7)))
	}
	return t.Format("Jan 2")
}
