package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/vibe-manager/internal/observability"
)

var (
	metricsJSON  bool
	metricsSince string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics [path]",
	Short: "Display workspace activity metrics",
	Long: `Display activity aggregated from the workspace event log.

Metrics include meetings held, observations by context, edits, deletions,
mood updates, recruited and archived reports, and failed actions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sinceTime, err := parseSinceDuration(metricsSince)
		if err != nil {
			return fmt.Errorf("parsing --since: %w", err)
		}

		ws, err := openWorkspace(args)
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()
		if ws.MetricsCalc == nil {
			return fmt.Errorf("metrics calculator not initialized (event log unavailable)")
		}

		metrics, err := ws.MetricsCalc.Calculate(sinceTime)
		if err != nil {
			return fmt.Errorf("calculating metrics: %w", err)
		}

		out := cmd.OutOrStdout()
		if metricsJSON {
			data, err := json.MarshalIndent(metrics, "", "  ")
			if err != nil {
				return fmt.Errorf("formatting metrics as JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		printMetrics(out, metrics, sinceTime)
		return nil
	},
}

func printMetrics(out io.Writer, m *observability.Metrics, since time.Time) {
	fmt.Fprintf(out, "Metrics (since %s)\n\n", since.Format("2006-01-02"))
	fmt.Fprintf(out, "  %-24s %d\n", "Events recorded:", m.EventCount)
	fmt.Fprintf(out, "  %-24s %d\n", "Meetings held:", m.MeetingsHeld)
	fmt.Fprintf(out, "  %-24s %d\n", "Observations:", m.ObservationsRecorded)
	fmt.Fprintf(out, "  %-24s %d\n", "Entries edited:", m.EntriesEdited)
	fmt.Fprintf(out, "  %-24s %d\n", "Entries discarded:", m.EntriesDiscarded)
	fmt.Fprintf(out, "  %-24s %d\n", "Entries deleted:", m.EntriesDeleted)
	fmt.Fprintf(out, "  %-24s %d\n", "Mood updates:", m.MoodUpdates)
	fmt.Fprintf(out, "  %-24s %d\n", "Reports recruited:", m.ReportsRecruited)
	fmt.Fprintf(out, "  %-24s %d\n", "Reports archived:", m.ReportsArchived)
	fmt.Fprintf(out, "  %-24s %d\n", "Failures:", m.Failures)

	printCounts(out, "Observations by context:", m.ObservationsByContext)
	printCounts(out, "Activity by report:", m.ActivityByReport)
	printCounts(out, "Failures by action:", m.FailuresByAction)

	if m.OldestEvent != nil {
		fmt.Fprintf(out, "\n  %-24s %s\n", "Oldest event:", m.OldestEvent.Format(time.RFC3339))
	}
	if m.NewestEvent != nil {
		fmt.Fprintf(out, "  %-24s %s\n", "Newest event:", m.NewestEvent.Format(time.RFC3339))
	}
}

func printCounts(out io.Writer, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(out, "\n  %s\n", title)
	for _, k := range keys {
		fmt.Fprintf(out, "    %-20s %d\n", k+":", counts[k])
	}
}

// parseSinceDuration parses a human-friendly duration string like "7d", "30d",
// or "24h" and returns the corresponding time in the past.
func parseSinceDuration(s string) (time.Time, error) {
	now := time.Now().UTC()
	s = strings.TrimSpace(s)
	if s == "" {
		return now.AddDate(0, 0, -7), nil
	}

	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day duration %q", s)
		}
		return now.AddDate(0, 0, -days), nil
	}

	if strings.HasSuffix(s, "h") {
		hours, err := strconv.Atoi(strings.TrimSuffix(s, "h"))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid hour duration %q", s)
		}
		return now.Add(-time.Duration(hours) * time.Hour), nil
	}

	return time.Time{}, fmt.Errorf("unsupported duration format %q (use e.g. 7d, 30d, 24h)", s)
}

func init() {
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Output metrics as JSON")
	metricsCmd.Flags().StringVar(&metricsSince, "since", "7d", "Time window for metrics (e.g. 7d, 30d, 24h)")
	rootCmd.AddCommand(metricsCmd)
}
