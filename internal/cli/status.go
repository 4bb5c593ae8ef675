package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/internal/observability"
	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

var statusAll bool

var statusCmd = &cobra.Command{
	Use:   "status [path]",
	Short: "Print reports ranked by urgency",
	Long: `Print every direct report of the workspace as a table, most urgent
first, followed by the workspace summary and any attention alerts.

Archived reports are hidden unless --all is given. Output is plain text and
safe to pipe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(args)
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		e, err := ws.Snapshot()
		if err != nil {
			return fmt.Errorf("loading workspace: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(e.Reports) == 0 {
			fmt.Fprintln(out, "No reports yet. Run vibe and press n to recruit one.")
			return nil
		}

		summaries := reportSummaries(e)
		printReportTable(out, summaries, statusAll)
		fmt.Fprintln(out)
		printWorkspaceSummary(out, e.Summary)

		if ws.AlertEngine == nil {
			return nil
		}
		alerts, err := ws.AlertEngine.Evaluate(summaries, e.Now())
		if err != nil {
			return fmt.Errorf("evaluating alerts: %w", err)
		}
		if len(alerts) > 0 {
			fmt.Fprintln(out)
			printAlerts(out, alerts)
		}
		return nil
	},
}

func printReportTable(out io.Writer, reports []models.ReportSummary, all bool) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed, color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("NAME"), bold.Sprint("LEVEL"), bold.Sprint("CADENCE"), bold.Sprint("LAST 1:1"),
		bold.Sprint("MOOD"), bold.Sprint("URGENCY"), bold.Sprint("TEAM"))
	for _, r := range reports {
		if !r.Active && !all {
			continue
		}
		last := daysText(r.DaysSinceMeeting)
		if r.IsOverdue {
			last = red.Sprint(last + " overdue")
		}
		mood := "-"
		if r.HasMood() {
			mood = strconv.Itoa(r.RecentMood) + " " + r.MoodTrend.Arrow()
		}
		team := ""
		if r.Team != nil {
			team = fmt.Sprintf("%d (health %d)", r.Team.TeamSize, r.Team.HealthScore)
		}
		name := r.Name
		if !r.Active {
			name = faint.Sprint(name + " (archived)")
		}
		tbl.AddRow(name, r.Level, r.MeetingFrequency, last, mood, r.UrgencyScore, team)
	}
	fmt.Fprintln(out, tbl)
}

func printWorkspaceSummary(out io.Writer, s models.WorkspaceSummary) {
	fmt.Fprintf(out, "%d reports, %d active, %d overdue, average mood %s",
		s.TeamSize, s.ActiveCount, s.OverdueCount, averageText(s.AverageMood))
	if s.TotalReportCount > s.TeamSize {
		fmt.Fprintf(out, ", %d people in total", s.TotalReportCount)
	}
	fmt.Fprintln(out)
}

func printAlerts(out io.Writer, alerts []observability.Alert) {
	fmt.Fprintln(out, color.New(color.Bold).Sprint("Alerts"))
	for _, a := range alerts {
		fmt.Fprintf(out, "  %s %s\n", severityColor(a.Severity).Sprintf("[%s]", a.Severity), a.Message)
	}
}

func severityColor(s observability.AlertSeverity) *color.Color {
	switch s {
	case observability.SeverityHigh:
		return color.New(color.FgRed, color.Bold)
	case observability.SeverityMedium:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}

func reportSummaries(e *core.Engine) []models.ReportSummary {
	out := make([]models.ReportSummary, 0, len(e.Reports))
	for _, rec := range e.Reports {
		out = append(out, rec.Summary)
	}
	return out
}

func init() {
	statusCmd.Flags().BoolVar(&statusAll, "all", false, "Include archived reports")
	rootCmd.AddCommand(statusCmd)
}
