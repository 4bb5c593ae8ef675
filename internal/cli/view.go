package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

const (
	cardWidth        = 30
	maxObservations  = 8
	defaultViewWidth = 80
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth - 2)

	activeCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("62"))

	modalStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	archivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	modeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("238")).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	fieldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	dangerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// moodColors index 1..5.
var moodColors = []lipgloss.Color{"241", "196", "208", "226", "112", "46"}

func moodStyle(mood int) lipgloss.Style {
	if !models.ValidMood(mood) {
		return mutedStyle
	}
	return lipgloss.NewStyle().Foreground(moodColors[mood])
}

// moodGauge renders a mood as five dots, or a dash when absent.
func moodGauge(mood int) string {
	if !models.ValidMood(mood) {
		return mutedStyle.Render("-----")
	}
	return moodStyle(mood).Render(strings.Repeat("●", mood) + strings.Repeat("○", models.MaxMood-mood))
}

func trendText(t models.MoodTrend) string {
	switch t {
	case models.MoodRising:
		return moodStyle(5).Render(t.Arrow())
	case models.MoodFalling:
		return moodStyle(1).Render(t.Arrow())
	default:
		return mutedStyle.Render(t.Arrow())
	}
}

func daysText(days *int) string {
	switch {
	case days == nil:
		return "never"
	case *days == 0:
		return "today"
	case *days == 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%dd ago", *days)
	}
}

func averageText(avg *float64) string {
	if avg == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *avg)
}

func entryTimeText(e models.JournalEntry) string {
	if e.HasTime() {
		return e.Timestamp.Format("Jan 02, 2006 15:04")
	}
	return e.Timestamp.Format("Jan 02, 2006")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimLeft(s, "# ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

// render draws the whole screen for the engine's current state.
func render(e *core.Engine, keys keyMap, h help.Model, width, height int, now time.Time) string {
	if width <= 0 {
		width = defaultViewWidth
	}

	var body string
	switch m := e.Mode.(type) {
	case core.DashboardMode:
		body = renderDashboard(e, width)
	case core.ReportDetailMode:
		body = renderReportDetail(e, m.Report, width)
	case core.NoteViewerMode:
		body = renderNoteViewer(e, m, width)
	case core.NewReportMode:
		body = renderModal(renderDashboard(e, width), renderNewReport(m.Form), width, height)
	case core.DeleteConfirmMode:
		body = renderModal("", renderDeleteConfirm(e, m), width, height)
	case core.EntryInputMode:
		body = renderModal("", renderEntryInput(e, m), width, height)
	case core.HelpMode:
		body = renderModal("", renderHelp(keys, h), width, height)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, renderStatusBar(e, keys, h, width, now))
}

// renderModal centers box on the screen. With a non-empty background the
// modal is shown below it instead, which keeps the dashboard visible.
func renderModal(background, box string, width, height int) string {
	box = modalStyle.Render(box)
	if background != "" {
		return lipgloss.JoinVertical(lipgloss.Left, background, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, box))
	}
	if height <= 2 {
		return box
	}
	return lipgloss.Place(width, height-2, lipgloss.Center, lipgloss.Center, box)
}

func renderWorkspaceHeader(s models.WorkspaceSummary) string {
	parts := []string{
		fmt.Sprintf("%d reports", s.TeamSize),
		fmt.Sprintf("%d active", s.ActiveCount),
	}
	overdue := fmt.Sprintf("%d overdue", s.OverdueCount)
	if s.OverdueCount > 0 {
		overdue = overdueStyle.Render(overdue)
	}
	parts = append(parts, overdue, "avg mood "+averageText(s.AverageMood))
	if s.TotalReportCount > s.TeamSize {
		parts = append(parts, fmt.Sprintf("%d in org", s.TotalReportCount))
	}
	return titleStyle.Render("vibe") + "  " + strings.Join(parts, mutedStyle.Render(" · "))
}

func renderDashboard(e *core.Engine, width int) string {
	var b strings.Builder
	b.WriteString(renderWorkspaceHeader(e.Summary))
	b.WriteString("\n\n")

	if len(e.Reports) == 0 {
		b.WriteString(mutedStyle.Render("  No reports yet. Press n to recruit your first report."))
		return b.String()
	}

	perRow := max(1, width/cardWidth)
	var rows []string
	var row []string
	for i, rec := range e.Reports {
		row = append(row, renderCard(rec, i == e.Selected))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return b.String()
}

func renderCard(rec core.ReportRecord, selected bool) string {
	s := rec.Summary
	name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(s.Color)).Render(truncate(s.Name, cardWidth-6))

	lines := []string{name}
	meta := s.Level
	if meta != "" {
		meta += " · "
	}
	meta += s.MeetingFrequency
	if s.IsManager {
		meta += " · mgr"
	}
	lines = append(lines, mutedStyle.Render(meta))

	last := "Last 1:1 " + daysText(s.DaysSinceMeeting)
	if s.IsOverdue {
		last = overdueStyle.Render(last + " !")
	}
	lines = append(lines, last)
	lines = append(lines, fmt.Sprintf("Mood %s %s", moodGauge(s.RecentMood), trendText(s.MoodTrend)))
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("Urgency %d", s.UrgencyScore)))
	if s.Team != nil {
		lines = append(lines, fmt.Sprintf("Team %d · health %d", s.Team.TeamSize, s.Team.HealthScore))
	}
	if !s.Active {
		lines = append(lines, archivedStyle.Render("archived"))
	}

	style := cardStyle
	if selected {
		style = activeCardStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func renderReportDetail(e *core.Engine, report, width int) string {
	if report >= len(e.Reports) {
		return ""
	}
	rec := e.Reports[report]
	r := rec.Report
	s := rec.Summary

	var b strings.Builder
	b.WriteString(titleStyle.Render(r.Profile.Name))
	if r.Profile.Title != "" {
		b.WriteString("  " + r.Profile.Title)
	}
	b.WriteString("\n")

	meta := []string{s.Level, s.MeetingFrequency}
	if r.Profile.StartDate != "" {
		meta = append(meta, "since "+r.Profile.StartDate)
	}
	if s.IsManager {
		meta = append(meta, "manager")
	}
	if !s.Active {
		meta = append(meta, "archived")
	}
	b.WriteString(mutedStyle.Render(strings.Join(nonEmpty(meta), " · ")))
	b.WriteString("\n\n")

	last := "Last 1:1 " + daysText(s.DaysSinceMeeting)
	if s.IsOverdue {
		last = overdueStyle.Render(last + " (overdue)")
	}
	fmt.Fprintf(&b, "%s   Mood %s %s   Urgency %d\n", last, moodGauge(s.RecentMood), trendText(s.MoodTrend), s.UrgencyScore)
	if s.Team != nil {
		fmt.Fprintf(&b, "Team of %d · avg mood %s · %d overdue · health %d\n",
			s.Team.TeamSize, averageText(s.Team.AverageMood), s.Team.OverdueCount, s.Team.HealthScore)
		for _, member := range rec.Team {
			ms := member.Summary
			fmt.Fprintf(&b, "  %-20s %s %s  %s\n", truncate(ms.Name, 20), moodGauge(ms.RecentMood), trendText(ms.MoodTrend), mutedStyle.Render(daysText(ms.DaysSinceMeeting)))
		}
	}

	b.WriteString("\n" + headerStyle.Render("1-on-1s") + "\n")
	meetings := core.Meetings(rec.Entries)
	if len(meetings) == 0 {
		b.WriteString(mutedStyle.Render("  No meetings yet. Press n to start one."))
		b.WriteString("\n")
	}
	for i, m := range meetings {
		mood, _ := m.Mood()
		line := fmt.Sprintf("%-20s %s  %s", entryTimeText(m), moodGauge(mood), truncate(firstLine(m.Content), max(10, width-40)))
		if i == e.Selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	observations := core.Observations(rec.Entries)
	if len(observations) > 0 {
		b.WriteString("\n" + headerStyle.Render("Observations") + "\n")
		for i, o := range observations {
			if i == maxObservations {
				b.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d more", len(observations)-maxObservations)) + "\n")
				break
			}
			mood, _ := o.Mood()
			ctx, _ := o.Context()
			fmt.Fprintf(&b, "  %-20s %-4s %s  %s\n", entryTimeText(o), ctx.Short(), moodGauge(mood), truncate(firstLine(o.Content), max(10, width-46)))
		}
	}
	return b.String()
}

func renderNoteViewer(e *core.Engine, m core.NoteViewerMode, width int) string {
	if m.Report >= len(e.Reports) || m.Entry >= len(e.Reports[m.Report].Entries) {
		return ""
	}
	rec := e.Reports[m.Report]
	entry := rec.Entries[m.Entry]

	var b strings.Builder
	b.WriteString(titleStyle.Render(rec.Report.Profile.Name))
	fmt.Fprintf(&b, "  %s  Mood %s\n\n", entryTimeText(entry), moodGauge(m.Mood))
	body := m.Content
	if strings.TrimSpace(body) == "" {
		body = mutedStyle.Render("(empty)")
	}
	b.WriteString(wordwrap.String(body, max(20, width-4)))
	return b.String()
}

func renderNewReport(f *core.NewReportForm) string {
	if f == nil {
		return ""
	}
	cursor := func(field core.FormField) string {
		if f.Field == field {
			return fieldStyle.Render("> ")
		}
		return "  "
	}
	text := func(field core.FormField, v string) string {
		if f.Field == field {
			return v + "█"
		}
		return v
	}
	choice := func(field core.FormField, v string) string {
		if f.Field == field {
			return "◀ " + fieldStyle.Render(v) + " ▶"
		}
		return v
	}

	kind := "Individual contributor"
	if f.ReportType.IsManager() {
		kind = "Manager"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Recruit a new report") + "\n\n")
	fmt.Fprintf(&b, "%sType       %s\n", cursor(core.FieldReportType), choice(core.FieldReportType, kind))
	fmt.Fprintf(&b, "%sName       %s\n", cursor(core.FieldName), text(core.FieldName, f.Name))
	fmt.Fprintf(&b, "%sTitle      %s\n", cursor(core.FieldTitle), text(core.FieldTitle, f.Title))
	fmt.Fprintf(&b, "%sLevel      %s\n", cursor(core.FieldLevel), choice(core.FieldLevel, f.Level()))
	fmt.Fprintf(&b, "%sFrequency  %s\n", cursor(core.FieldFrequency), choice(core.FieldFrequency, f.Frequency()))
	return b.String()
}

func renderDeleteConfirm(e *core.Engine, m core.DeleteConfirmMode) string {
	what := "this entry"
	if m.Report < len(e.Reports) && m.Entry < len(e.Reports[m.Report].Entries) {
		rec := e.Reports[m.Report]
		what = fmt.Sprintf("the entry from %s for %s", entryTimeText(rec.Entries[m.Entry]), rec.Report.Profile.Name)
	}
	return dangerStyle.Render("Delete entry?") + "\n\n" +
		"This removes " + what + " from disk.\n\n" +
		"[y] delete   [n] keep"
}

func renderEntryInput(e *core.Engine, m core.EntryInputMode) string {
	name := ""
	if m.Report < len(e.Reports) {
		name = e.Reports[m.Report].Report.Profile.Name
	}

	var moods []string
	for i := models.MinMood; i <= models.MaxMood; i++ {
		label := fmt.Sprintf(" %d ", i)
		if i == m.Mood {
			label = moodStyle(i).Reverse(true).Render(label)
		}
		moods = append(moods, label)
	}

	var contexts []string
	for _, c := range models.Contexts {
		if c == m.Context {
			contexts = append(contexts, fieldStyle.Render("["+c.Label()+"]"))
		} else {
			contexts = append(contexts, mutedStyle.Render(c.Label()))
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("How is "+name+" doing?") + "\n\n")
	b.WriteString("Mood     " + strings.Join(moods, "") + "\n")
	b.WriteString("Context  " + strings.Join(contexts, " ") + "\n")
	b.WriteString("Notes    " + m.Notes + "█\n")
	return b.String()
}

func renderHelp(keys keyMap, h help.Model) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Keys") + "\n")
	for _, section := range keys.helpScreen() {
		b.WriteString("\n" + fieldStyle.Render(section.title) + "\n")
		b.WriteString(h.FullHelpView(section.bindings))
		b.WriteString("\n")
	}
	return b.String()
}

func modeLabel(mode core.Mode) string {
	switch mode.(type) {
	case core.DashboardMode:
		return "DASHBOARD"
	case core.ReportDetailMode, core.EntryInputMode:
		return "REPORT"
	case core.NoteViewerMode, core.DeleteConfirmMode:
		return "NOTE"
	case core.NewReportMode:
		return "NEW REPORT"
	case core.HelpMode:
		return "HELP"
	}
	return ""
}

func renderStatusBar(e *core.Engine, keys keyMap, h help.Model, width int, now time.Time) string {
	left := modeStyle.Render(modeLabel(e.Mode)) + " "
	if text, ok := e.StatusText(now); ok {
		left += statusStyle.Render(text)
	} else if rec, ok := e.CurrentReport(); ok {
		left += rec.Report.Profile.Name
	} else {
		left += mutedStyle.Render(e.Workspace.Path)
	}

	h.Width = max(0, width-lipgloss.Width(left)-2)
	right := h.ShortHelpView(keys.helpFor(e.Mode).ShortHelp())
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
