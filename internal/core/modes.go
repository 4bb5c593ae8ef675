package core

import "github.com/valter-silva-au/vibe-manager/pkg/models"

// Mode is the current UI mode. Only the active mode's buffers exist, so
// switching modes always discards stale input.
type Mode interface {
	Name() string
}

// DashboardMode lists all direct reports.
type DashboardMode struct{}

// ReportDetailMode shows one report and its meetings.
type ReportDetailMode struct {
	Report int
}

// NoteViewerMode shows one entry. Content and Mood mirror the entry for the
// renderer.
type NoteViewerMode struct {
	Report  int
	Entry   int
	Content string
	Mood    int
}

// NewReportMode holds the recruit form.
type NewReportMode struct {
	Form *NewReportForm
}

// DeleteConfirmMode asks before deleting an entry. Return is the mode to go
// back to on cancel.
type DeleteConfirmMode struct {
	Report   int
	Entry    int
	FromList bool
	Return   Mode
}

// EntryInputMode collects a quick mood observation.
type EntryInputMode struct {
	Report  int
	Mood    int
	Context models.Context
	Notes   string
}

// HelpMode overlays the key reference on top of Return.
type HelpMode struct {
	Return Mode
}

func (DashboardMode) Name() string     { return "dashboard" }
func (ReportDetailMode) Name() string  { return "report_detail" }
func (NoteViewerMode) Name() string    { return "note_viewer" }
func (NewReportMode) Name() string     { return "new_report" }
func (DeleteConfirmMode) Name() string { return "delete_confirm" }
func (EntryInputMode) Name() string    { return "entry_input" }
func (HelpMode) Name() string          { return "help" }
