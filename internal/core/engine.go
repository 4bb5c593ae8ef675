package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

var (
	// ErrInvalidMood is returned when a mood outside 1..5 is supplied.
	ErrInvalidMood = errors.New("mood must be between 1 and 5")
	// ErrDuplicateTimestamp is returned when a report already holds an entry
	// with the same timestamp.
	ErrDuplicateTimestamp = errors.New("an entry already exists at this time")
	// ErrMissingFields is returned when the recruit form lacks a name or
	// title.
	ErrMissingFields = errors.New("name and title are required")
)

// MemberRecord is a second-level report together with its entries and
// summary.
type MemberRecord struct {
	Report  *models.Report
	Entries []models.JournalEntry
	Summary models.ReportSummary
}

// ReportRecord keeps a direct report, its entries (ascending) and its
// summary together so they can never drift apart.
type ReportRecord struct {
	Report  *models.Report
	Entries []models.JournalEntry
	Summary models.ReportSummary
	Team    []MemberRecord
}

// Engine owns the application model. Every change to the model goes
// through Apply, one event at a time; side effects that need the terminal
// are returned as an Effect for the runtime to perform.
type Engine struct {
	Workspace models.Workspace
	// Reports is ordered by urgency, highest first, as of the last load.
	Reports []ReportRecord
	Summary models.WorkspaceSummary
	Mode    Mode
	// Selected is the list cursor of the dashboard or report detail view.
	Selected   int
	ShouldQuit bool
	// Now is the engine clock.
	Now func() time.Time

	store    Store
	logger   EventLogger
	status   string
	statusAt time.Time
}

// NewEngine creates an engine in dashboard mode. Call Load before use.
// logger may be nil.
func NewEngine(ws models.Workspace, store Store, logger EventLogger) *Engine {
	return &Engine{
		Workspace: ws,
		Mode:      DashboardMode{},
		Now:       time.Now,
		store:     store,
		logger:    logger,
	}
}

// Load reads every report of the workspace. Listing failures are returned;
// reports that fail to load are skipped and logged.
func (e *Engine) Load() error {
	if err := e.reload(); err != nil {
		return err
	}
	e.clampSelection()
	e.log("workspace.loaded", map[string]any{
		"path":    e.Workspace.Path,
		"reports": len(e.Reports),
		"total":   e.Summary.TotalReportCount,
	})
	return nil
}

func (e *Engine) reload() error {
	dirs, err := e.store.ListReportDirs(e.Workspace.Path)
	if err != nil {
		return fmt.Errorf("loading workspace %s: %w", e.Workspace.Path, err)
	}

	today := e.Now()
	records := make([]ReportRecord, 0, len(dirs))
	for _, dir := range dirs {
		rec, err := e.loadRecord(dir, today)
		if err != nil {
			e.log("report.skipped", map[string]any{"dir": dir, "error": err.Error()})
			continue
		}
		records = append(records, rec)
	}
	SortByUrgency(records, func(r ReportRecord) int { return r.Summary.UrgencyScore })

	e.Reports = records
	e.Summary = e.workspaceSummary()
	return nil
}

func (e *Engine) loadRecord(dir string, today time.Time) (ReportRecord, error) {
	r, err := e.store.LoadReport(dir)
	if err != nil {
		return ReportRecord{}, err
	}
	entries, err := e.store.LoadEntries(dir)
	if err != nil {
		return ReportRecord{}, err
	}
	rec := ReportRecord{Report: r, Entries: entries}

	if r.IsManager() {
		memberDirs, err := e.store.ListTeamMemberDirs(dir)
		if err != nil {
			e.log("report.skipped", map[string]any{"dir": dir, "error": err.Error(), "team": true})
		}
		for _, md := range memberDirs {
			member, err := e.store.LoadReportWithManager(md, r.Slug)
			if err != nil {
				e.log("report.skipped", map[string]any{"dir": md, "error": err.Error()})
				continue
			}
			memberEntries, err := e.store.LoadEntries(md)
			if err != nil {
				e.log("report.skipped", map[string]any{"dir": md, "error": err.Error()})
				continue
			}
			if err := r.AddTeamMember(member); err != nil {
				continue
			}
			rec.Team = append(rec.Team, MemberRecord{Report: member, Entries: memberEntries})
		}
	}

	e.summarize(&rec, today)
	return rec, nil
}

func (e *Engine) threshold() int {
	return e.Workspace.Config.Settings.OverdueThresholdDays
}

func (e *Engine) summarize(rec *ReportRecord, today time.Time) {
	th := e.threshold()
	rec.Summary = Summarize(rec.Report, rec.Entries, th, today)
	if !rec.Report.IsManager() {
		return
	}
	members := make([]models.ReportSummary, len(rec.Team))
	for i := range rec.Team {
		rec.Team[i].Summary = Summarize(rec.Team[i].Report, rec.Team[i].Entries, th, today)
		members[i] = rec.Team[i].Summary
	}
	rec.Summary.Team = ComputeTeamMetrics(members)
}

func (e *Engine) workspaceSummary() models.WorkspaceSummary {
	summaries := make([]models.ReportSummary, len(e.Reports))
	secondLevel := 0
	for i, rec := range e.Reports {
		summaries[i] = rec.Summary
		secondLevel += len(rec.Team)
	}
	return ComputeWorkspaceSummary(summaries, secondLevel)
}

// recompute refreshes one report's summary and the workspace rollup after
// its entries changed. The report list is not re-sorted.
func (e *Engine) recompute(report int) {
	e.summarize(&e.Reports[report], e.Now())
	e.Summary = e.workspaceSummary()
}

// Apply handles one event. Events that do not apply to the current mode
// are ignored.
func (e *Engine) Apply(ev Event) Effect {
	switch ev := ev.(type) {
	case Quit:
		e.ShouldQuit = true
	case Back:
		e.back()
	case ShowHelp:
		switch e.Mode.(type) {
		case DashboardMode, ReportDetailMode, NoteViewerMode:
			e.Mode = HelpMode{Return: e.Mode}
		}
	case HideHelp:
		if m, ok := e.Mode.(HelpMode); ok {
			e.Mode = m.Return
		}
	case SelectNext:
		if n := e.ListLen(); n > 0 {
			e.Selected = wrapNext(e.Selected, n)
		}
	case SelectPrev:
		if n := e.ListLen(); n > 0 {
			e.Selected = wrapPrev(e.Selected, n)
		}
	case SelectFirst:
		if e.ListLen() > 0 {
			e.Selected = 0
		}
	case SelectLast:
		if n := e.ListLen(); n > 0 {
			e.Selected = n - 1
		}
	case ViewReport:
		e.viewReport()
	case ViewMeeting:
		e.viewMeeting(ev.Index)
	case NewMeeting:
		return e.newMeeting()
	case EditMeeting:
		if m, ok := e.Mode.(NoteViewerMode); ok {
			return spawnEditor(e.Reports[m.Report].Entries[m.Entry].Path, false)
		}
	case EditMeetingFromList:
		if m, ok := e.Mode.(ReportDetailMode); ok {
			if i, ok := DisplayToEntryIndex(e.Reports[m.Report].Entries, ev.Index); ok {
				return spawnEditor(e.Reports[m.Report].Entries[i].Path, false)
			}
		}
	case UpdateMood:
		e.updateMood(ev.Mood)
	case ShowDeleteConfirm:
		e.showDeleteConfirm()
	case ConfirmDelete:
		e.confirmDelete()
	case ShowNewReport:
		if _, ok := e.Mode.(DashboardMode); ok {
			e.Mode = NewReportMode{Form: NewNewReportForm(e.Workspace.Config.Settings.DefaultMeetingFrequency)}
		}
	case CreateReport:
		e.createReport()
	case CancelModal:
		switch e.Mode.(type) {
		case NewReportMode, EntryInputMode, DeleteConfirmMode, HelpMode:
			e.back()
		}
	case ModalLeft:
		if f := e.form(); f != nil {
			f.Left()
		}
	case ModalRight:
		if f := e.form(); f != nil {
			f.Right()
		}
	case ModalNextField:
		if f := e.form(); f != nil {
			f.NextField()
		}
	case ModalPrevField:
		if f := e.form(); f != nil {
			f.PrevField()
		}
	case ShowEntryInput:
		if m, ok := e.Mode.(ReportDetailMode); ok {
			e.Mode = EntryInputMode{Report: m.Report, Context: models.ContextStandup}
		}
	case SetEntryMood:
		if m, ok := e.Mode.(EntryInputMode); ok && models.ValidMood(ev.Mood) {
			m.Mood = ev.Mood
			e.Mode = m
		}
	case CycleEntryContext:
		if m, ok := e.Mode.(EntryInputMode); ok {
			m.Context = m.Context.Next()
			e.Mode = m
		}
	case SaveEntry:
		e.saveEntry()
	case RefreshData:
		e.refresh()
	case Input:
		e.input(ev.Rune)
	case Backspace:
		e.backspace()
	case Enter:
		switch e.Mode.(type) {
		case NewReportMode:
			e.createReport()
		case EntryInputMode:
			e.saveEntry()
		}
	case ArchiveReport:
		e.archiveReport()
	case EditorFinished:
		e.editorFinished(ev)
	}
	return noEffect
}

// ListLen is the length of the navigable list in the current mode.
func (e *Engine) ListLen() int {
	return e.listLen(e.Mode)
}

func (e *Engine) listLen(mode Mode) int {
	switch m := mode.(type) {
	case DashboardMode:
		return len(e.Reports)
	case ReportDetailMode:
		return len(MeetingIndices(e.Reports[m.Report].Entries))
	}
	return 0
}

// CurrentReport returns the report the current mode is about, if any.
func (e *Engine) CurrentReport() (*ReportRecord, bool) {
	i, ok := reportIndex(e.Mode)
	if !ok || i >= len(e.Reports) {
		return nil, false
	}
	return &e.Reports[i], true
}

func reportIndex(mode Mode) (int, bool) {
	switch m := mode.(type) {
	case ReportDetailMode:
		return m.Report, true
	case NoteViewerMode:
		return m.Report, true
	case DeleteConfirmMode:
		return m.Report, true
	case EntryInputMode:
		return m.Report, true
	case HelpMode:
		return reportIndex(m.Return)
	}
	return 0, false
}

// listMode is the navigable mode underneath any overlay. The cursor
// belongs to it while a modal or help is open.
func listMode(mode Mode) Mode {
	switch m := mode.(type) {
	case HelpMode:
		return listMode(m.Return)
	case DeleteConfirmMode:
		return listMode(m.Return)
	case NewReportMode:
		return DashboardMode{}
	case EntryInputMode:
		return ReportDetailMode{Report: m.Report}
	}
	return mode
}

func (e *Engine) clampSelection() {
	n := e.listLen(listMode(e.Mode))
	switch {
	case n == 0 || e.Selected < 0:
		e.Selected = 0
	case e.Selected >= n:
		e.Selected = n - 1
	}
}

func (e *Engine) form() *NewReportForm {
	if m, ok := e.Mode.(NewReportMode); ok {
		return m.Form
	}
	return nil
}

func (e *Engine) back() {
	switch m := e.Mode.(type) {
	case ReportDetailMode:
		e.Mode = DashboardMode{}
		e.Selected = m.Report
	case NoteViewerMode:
		e.Mode = ReportDetailMode{Report: m.Report}
		if d, ok := EntryToDisplayIndex(e.Reports[m.Report].Entries, m.Entry); ok {
			e.Selected = d
		}
		e.clampSelection()
	case HelpMode:
		e.Mode = m.Return
	case NewReportMode:
		e.Mode = DashboardMode{}
	case EntryInputMode:
		e.Mode = ReportDetailMode{Report: m.Report}
	case DeleteConfirmMode:
		e.Mode = m.Return
	}
}

func (e *Engine) viewReport() {
	if _, ok := e.Mode.(DashboardMode); !ok || len(e.Reports) == 0 {
		return
	}
	e.clampSelection()
	e.Mode = ReportDetailMode{Report: e.Selected}
	e.Selected = 0
}

func (e *Engine) viewMeeting(display int) {
	m, ok := e.Mode.(ReportDetailMode)
	if !ok {
		return
	}
	entries := e.Reports[m.Report].Entries
	i, ok := DisplayToEntryIndex(entries, display)
	if !ok {
		return
	}
	e.Mode = viewerFor(m.Report, i, entries[i])
}

func viewerFor(report, index int, entry models.JournalEntry) NoteViewerMode {
	mood, _ := entry.Mood()
	return NoteViewerMode{Report: report, Entry: index, Content: entry.Content, Mood: mood}
}

func (e *Engine) newMeeting() Effect {
	m, ok := e.Mode.(ReportDetailMode)
	if !ok {
		return noEffect
	}
	rec := &e.Reports[m.Report]
	entry, err := e.store.CreateMeeting(rec.Report.Path, nil)
	if err != nil {
		e.fail("creating meeting", err)
		return noEffect
	}
	idx, err := insertEntry(&rec.Entries, entry)
	if err != nil {
		_ = e.store.DeleteEntry(entry)
		e.fail("creating meeting", err)
		return noEffect
	}
	e.recompute(m.Report)
	e.Mode = viewerFor(m.Report, idx, entry)
	if d, ok := EntryToDisplayIndex(rec.Entries, idx); ok {
		e.Selected = d
	}
	e.log("meeting.created", map[string]any{"report": rec.Report.Slug, "path": entry.Path})
	return spawnEditor(entry.Path, true)
}

// insertEntry adds entry keeping ascending timestamp order and returns its
// position.
func insertEntry(entries *[]models.JournalEntry, entry models.JournalEntry) (int, error) {
	list := *entries
	pos := sort.Search(len(list), func(i int) bool {
		return !list[i].Timestamp.Before(entry.Timestamp)
	})
	if pos < len(list) && list[pos].Timestamp.Equal(entry.Timestamp) {
		return 0, fmt.Errorf("%s: %w", entry.Timestamp.Format(time.DateTime), ErrDuplicateTimestamp)
	}
	*entries = slices.Insert(list, pos, entry)
	return pos, nil
}

func (e *Engine) removeEntry(report, index int) {
	rec := &e.Reports[report]
	rec.Entries = slices.Delete(rec.Entries, index, index+1)
	e.recompute(report)
}

func (e *Engine) updateMood(mood int) {
	m, ok := e.Mode.(NoteViewerMode)
	if !ok {
		return
	}
	if !models.ValidMood(mood) {
		e.fail("updating mood", fmt.Errorf("%w, got %d", ErrInvalidMood, mood))
		return
	}
	rec := &e.Reports[m.Report]
	updated := rec.Entries[m.Entry]
	if err := e.store.UpdateEntryMood(&updated, mood); err != nil {
		e.fail("updating mood", err)
		return
	}
	rec.Entries[m.Entry] = updated
	m.Mood = mood
	e.Mode = m
	e.recompute(m.Report)
	e.SetStatus("Mood updated")
	e.log("entry.mood_updated", map[string]any{"report": rec.Report.Slug, "path": updated.Path, "mood": mood})
}

func (e *Engine) showDeleteConfirm() {
	switch m := e.Mode.(type) {
	case NoteViewerMode:
		e.Mode = DeleteConfirmMode{Report: m.Report, Entry: m.Entry, Return: m}
	case ReportDetailMode:
		if i, ok := DisplayToEntryIndex(e.Reports[m.Report].Entries, e.Selected); ok {
			e.Mode = DeleteConfirmMode{Report: m.Report, Entry: i, FromList: true, Return: m}
		}
	}
}

func (e *Engine) confirmDelete() {
	m, ok := e.Mode.(DeleteConfirmMode)
	if !ok {
		return
	}
	rec := &e.Reports[m.Report]
	entry := rec.Entries[m.Entry]
	if err := e.store.DeleteEntry(entry); err != nil {
		e.fail("deleting entry", err)
		return
	}
	e.removeEntry(m.Report, m.Entry)
	e.Mode = ReportDetailMode{Report: m.Report}
	e.clampSelection()
	e.SetStatus("Entry deleted")
	e.log("entry.deleted", map[string]any{"report": rec.Report.Slug, "path": entry.Path})
}

func (e *Engine) createReport() {
	m, ok := e.Mode.(NewReportMode)
	if !ok {
		return
	}
	if !m.Form.Valid() {
		e.fail("creating report", ErrMissingFields)
		return
	}

	profile := m.Form.Profile(e.Now().Format(models.EntryDateLayout))
	e.Mode = DashboardMode{}
	created, err := e.store.CreateReport(e.Workspace.Path, profile.Name, profile)
	if err != nil {
		e.fail("creating report", err)
		return
	}
	if err := e.reload(); err != nil {
		e.fail("reloading workspace", err)
		return
	}
	if i, ok := e.indexOfSlug(created.Slug); ok {
		e.Selected = i
	}
	e.clampSelection()

	label := "IC"
	if created.IsManager() {
		label = "manager"
	}
	e.SetStatus(fmt.Sprintf("Recruited %s (%s)", created.Profile.Name, label))
	e.log("report.recruited", map[string]any{"report": created.Slug, "type": string(created.Profile.ReportType)})
}

func (e *Engine) saveEntry() {
	m, ok := e.Mode.(EntryInputMode)
	if !ok {
		return
	}
	e.Mode = ReportDetailMode{Report: m.Report}
	rec := &e.Reports[m.Report]
	entry, err := e.store.CreateEntry(rec.Report.Path, m.Mood, m.Context, m.Notes)
	if err != nil {
		e.fail("recording observation", err)
		return
	}
	if _, err := insertEntry(&rec.Entries, entry); err != nil {
		_ = e.store.DeleteEntry(entry)
		e.fail("recording observation", err)
		return
	}
	e.recompute(m.Report)
	e.clampSelection()
	e.SetStatus("Observation recorded")
	e.log("entry.created", map[string]any{
		"report":  rec.Report.Slug,
		"path":    entry.Path,
		"mood":    m.Mood,
		"context": string(m.Context),
	})
}

func (e *Engine) archiveReport() {
	m, ok := e.Mode.(ReportDetailMode)
	if !ok {
		return
	}
	rec := &e.Reports[m.Report]
	updated := *rec.Report
	if err := e.store.ArchiveReport(&updated); err != nil {
		e.fail("archiving report", err)
		return
	}
	*rec.Report = updated
	e.recompute(m.Report)
	e.Mode = DashboardMode{}
	e.Selected = m.Report
	e.SetStatus(fmt.Sprintf("Archived %s", rec.Report.Profile.Name))
	e.log("report.archived", map[string]any{"report": rec.Report.Slug})
}

func (e *Engine) input(r rune) {
	switch m := e.Mode.(type) {
	case NewReportMode:
		m.Form.Input(r)
	case EntryInputMode:
		m.Notes += string(r)
		e.Mode = m
	}
}

func (e *Engine) backspace() {
	switch m := e.Mode.(type) {
	case NewReportMode:
		m.Form.Backspace()
	case EntryInputMode:
		m.Notes = dropLastRune(m.Notes)
		e.Mode = m
	}
}

// refresh reloads everything from disk and keeps the user on the same
// report and entry when they still exist.
func (e *Engine) refresh() {
	prev := e.Reports
	prevMode := e.Mode
	var dashboardSlug string
	if _, ok := listMode(prevMode).(DashboardMode); ok && e.Selected < len(prev) {
		dashboardSlug = prev[e.Selected].Report.Slug
	}

	if err := e.reload(); err != nil {
		e.fail("refreshing", err)
		return
	}

	e.Mode = e.rebind(prevMode, prev)
	if i, ok := e.indexOfSlug(dashboardSlug); ok {
		e.Selected = i
	}
	e.clampSelection()
	e.SetStatus("Refreshed")
}

func (e *Engine) rebind(mode Mode, prev []ReportRecord) Mode {
	slugAt := func(i int) string {
		if i < 0 || i >= len(prev) {
			return ""
		}
		return prev[i].Report.Slug
	}

	switch m := mode.(type) {
	case ReportDetailMode:
		if i, ok := e.indexOfSlug(slugAt(m.Report)); ok {
			return ReportDetailMode{Report: i}
		}
		return DashboardMode{}
	case NoteViewerMode:
		i, ok := e.indexOfSlug(slugAt(m.Report))
		if !ok {
			return DashboardMode{}
		}
		j, ok := indexOfPath(e.Reports[i].Entries, prev[m.Report].Entries[m.Entry].Path)
		if !ok {
			return ReportDetailMode{Report: i}
		}
		return viewerFor(i, j, e.Reports[i].Entries[j])
	case DeleteConfirmMode:
		return e.rebind(m.Return, prev)
	case EntryInputMode:
		i, ok := e.indexOfSlug(slugAt(m.Report))
		if !ok {
			return DashboardMode{}
		}
		m.Report = i
		return m
	case HelpMode:
		return HelpMode{Return: e.rebind(m.Return, prev)}
	}
	return mode
}

func (e *Engine) editorFinished(ev EditorFinished) {
	if ev.Err != nil {
		e.fail("running editor", ev.Err)
		return
	}
	if !ev.Result.Modified {
		return
	}

	ri, ei, ok := e.findEntry(ev.Path)
	if !ok {
		e.fail("reconciling edit", fmt.Errorf("%s is not loaded", filepath.Base(ev.Path)))
		return
	}
	rec := &e.Reports[ri]
	entry, err := e.store.LoadEntry(ev.Path)
	if errors.Is(err, fs.ErrNotExist) {
		// The editor removed the file; drop the stale entry.
		e.discardEntry(ri, ei, ev)
		return
	}
	if err != nil {
		e.fail("reconciling edit", err)
		return
	}

	if strings.TrimSpace(entry.Content) == "" {
		if err := e.store.DeleteEntry(entry); err != nil {
			e.fail("discarding empty entry", err)
			return
		}
		e.discardEntry(ri, ei, ev)
		return
	}

	rec.Entries[ei] = entry
	e.recompute(ri)
	if m, ok := e.Mode.(NoteViewerMode); ok && m.Report == ri && m.Entry == ei {
		e.Mode = viewerFor(ri, ei, entry)
	}
	e.SetStatus("Entry saved")
	e.log("entry.edited", map[string]any{"report": rec.Report.Slug, "path": ev.Path, "is_new": ev.IsNew})
}

// discardEntry removes an entry whose file is already gone from disk and
// moves the viewer off it.
func (e *Engine) discardEntry(ri, ei int, ev EditorFinished) {
	slug := e.Reports[ri].Report.Slug
	e.removeEntry(ri, ei)
	if m, ok := e.Mode.(NoteViewerMode); ok && m.Report == ri {
		switch {
		case m.Entry == ei:
			e.Mode = ReportDetailMode{Report: ri}
		case m.Entry > ei:
			m.Entry--
			e.Mode = m
		}
	}
	e.clampSelection()
	e.SetStatus("Empty entry discarded")
	e.log("entry.discarded", map[string]any{"report": slug, "path": ev.Path, "is_new": ev.IsNew})
}

func (e *Engine) findEntry(path string) (int, int, bool) {
	for i := range e.Reports {
		if j, ok := indexOfPath(e.Reports[i].Entries, path); ok {
			return i, j, true
		}
	}
	return 0, 0, false
}

func indexOfPath(entries []models.JournalEntry, path string) (int, bool) {
	for i, entry := range entries {
		if entry.Path == path {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) indexOfSlug(slug string) (int, bool) {
	if slug == "" {
		return 0, false
	}
	for i, rec := range e.Reports {
		if rec.Report.Slug == slug {
			return i, true
		}
	}
	return 0, false
}

func (e *Engine) fail(action string, err error) {
	e.SetStatus(fmt.Sprintf("Error %s: %v", action, err))
	e.log("action.failed", map[string]any{"action": action, "error": err.Error()})
}

func (e *Engine) log(eventType string, data map[string]any) {
	if e.logger == nil {
		return
	}
	_ = e.logger.LogEvent(eventType, data)
}
