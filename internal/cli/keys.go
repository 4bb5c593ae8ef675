package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/valter-silva-au/vibe-manager/internal/core"
)

// keyMap holds every binding of the TUI. Letter keys accept both cases,
// except g and G which mean different things.
type keyMap struct {
	ForceQuit    key.Binding
	ForceRefresh key.Binding

	Quit    key.Binding
	Refresh key.Binding
	Help    key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	First key.Binding
	Last  key.Binding

	OpenReport  key.Binding
	OpenMeeting key.Binding
	Back        key.Binding

	NewReport  key.Binding
	NewMeeting key.Binding
	Edit       key.Binding
	Observe    key.Binding
	Delete     key.Binding
	Archive    key.Binding
	SetMood    key.Binding

	Confirm key.Binding
	Cancel  key.Binding

	FieldNext key.Binding
	FieldPrev key.Binding
	VimLeft   key.Binding
	VimRight  key.Binding
	VimUp     key.Binding
	VimDown   key.Binding
	Submit    key.Binding
	Erase     key.Binding

	EntryMood    key.Binding
	EntryContext key.Binding

	CloseHelp key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+c", "quit")),
		ForceRefresh: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),

		Quit:    key.NewBinding(key.WithKeys("q", "Q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Up:    key.NewBinding(key.WithKeys("up", "k", "K"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j", "J"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h", "H"), key.WithHelp("←/h", "prev")),
		Right: key.NewBinding(key.WithKeys("right", "l", "L"), key.WithHelp("→/l", "next")),
		First: key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Last:  key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),

		OpenReport:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open report")),
		OpenMeeting: key.NewBinding(key.WithKeys("enter", "right", "l", "L"), key.WithHelp("enter", "view meeting")),
		Back:        key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),

		NewReport:  key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "recruit")),
		NewMeeting: key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "new 1-on-1")),
		Edit:       key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "edit")),
		Observe:    key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "log mood")),
		Delete:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete")),
		Archive:    key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "archive")),
		SetMood:    key.NewBinding(key.WithKeys("f1", "f2", "f3", "f4", "f5"), key.WithHelp("F1-F5", "set mood")),

		Confirm: key.NewBinding(key.WithKeys("enter", "y", "Y"), key.WithHelp("y", "delete")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "n", "N"), key.WithHelp("n", "keep")),

		FieldNext: key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("tab", "next field")),
		FieldPrev: key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("shift+tab", "prev field")),
		VimLeft:   key.NewBinding(key.WithKeys("h")),
		VimRight:  key.NewBinding(key.WithKeys("l")),
		VimUp:     key.NewBinding(key.WithKeys("k")),
		VimDown:   key.NewBinding(key.WithKeys("j")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Erase:     key.NewBinding(key.WithKeys("backspace")),

		EntryMood:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "mood")),
		EntryContext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "context")),

		CloseHelp: key.NewBinding(key.WithKeys("esc", "q", "Q", "?"), key.WithHelp("?/esc", "close")),
	}
}

// translate maps a key press to engine events for the current mode. Most
// keys produce at most one event; pasted text produces one Input per rune.
func (k keyMap) translate(e *core.Engine, msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, k.ForceQuit):
		return one(core.Quit{})
	case key.Matches(msg, k.ForceRefresh):
		return one(core.RefreshData{})
	}

	switch m := e.Mode.(type) {
	case core.DashboardMode:
		return k.dashboard(msg)
	case core.ReportDetailMode:
		return k.reportDetail(e, msg)
	case core.NoteViewerMode:
		return k.noteViewer(msg)
	case core.DeleteConfirmMode:
		return k.deleteConfirm(msg)
	case core.NewReportMode:
		return k.newReport(m.Form, msg)
	case core.EntryInputMode:
		return k.entryInput(msg)
	case core.HelpMode:
		if key.Matches(msg, k.CloseHelp) {
			return one(core.HideHelp{})
		}
	}
	return nil
}

func (k keyMap) dashboard(msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, k.First):
		return one(core.SelectFirst{})
	case key.Matches(msg, k.Last):
		return one(core.SelectLast{})
	case key.Matches(msg, k.Up), key.Matches(msg, k.Left):
		return one(core.SelectPrev{})
	case key.Matches(msg, k.Down), key.Matches(msg, k.Right):
		return one(core.SelectNext{})
	case key.Matches(msg, k.OpenReport):
		return one(core.ViewReport{})
	case key.Matches(msg, k.NewReport):
		return one(core.ShowNewReport{})
	case key.Matches(msg, k.Help):
		return one(core.ShowHelp{})
	case key.Matches(msg, k.Refresh):
		return one(core.RefreshData{})
	case key.Matches(msg, k.Quit):
		return one(core.Quit{})
	}
	return nil
}

func (k keyMap) reportDetail(e *core.Engine, msg tea.KeyMsg) []core.Event {
	onMeeting := e.Selected < e.ListLen()
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Left):
		return one(core.Back{})
	case key.Matches(msg, k.First):
		return one(core.SelectFirst{})
	case key.Matches(msg, k.Last):
		return one(core.SelectLast{})
	case key.Matches(msg, k.Up):
		return one(core.SelectPrev{})
	case key.Matches(msg, k.Down):
		return one(core.SelectNext{})
	case key.Matches(msg, k.OpenMeeting):
		if onMeeting {
			return one(core.ViewMeeting{Index: e.Selected})
		}
	case key.Matches(msg, k.Edit):
		if onMeeting {
			return one(core.EditMeetingFromList{Index: e.Selected})
		}
	case key.Matches(msg, k.NewMeeting):
		return one(core.NewMeeting{})
	case key.Matches(msg, k.Observe):
		return one(core.ShowEntryInput{})
	case key.Matches(msg, k.Delete):
		return one(core.ShowDeleteConfirm{})
	case key.Matches(msg, k.Archive):
		return one(core.ArchiveReport{})
	case key.Matches(msg, k.Help):
		return one(core.ShowHelp{})
	case key.Matches(msg, k.Quit):
		return one(core.Quit{})
	}
	return nil
}

func (k keyMap) noteViewer(msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, k.Back):
		return one(core.Back{})
	case key.Matches(msg, k.Delete):
		return one(core.ShowDeleteConfirm{})
	case key.Matches(msg, k.SetMood):
		return one(core.UpdateMood{Mood: int(msg.String()[1] - '0')})
	case key.Matches(msg, k.Edit):
		return one(core.EditMeeting{})
	case key.Matches(msg, k.Help):
		return one(core.ShowHelp{})
	case key.Matches(msg, k.Quit):
		return one(core.Quit{})
	}
	return nil
}

func (k keyMap) deleteConfirm(msg tea.KeyMsg) []core.Event {
	switch {
	case key.Matches(msg, k.Confirm):
		return one(core.ConfirmDelete{})
	case key.Matches(msg, k.Cancel):
		return one(core.CancelModal{})
	}
	return nil
}

func (k keyMap) newReport(form *core.NewReportForm, msg tea.KeyMsg) []core.Event {
	selector := form != nil && !form.InTextField()
	switch {
	case msg.Type == tea.KeyEsc:
		return one(core.CancelModal{})
	case msg.Type == tea.KeyLeft, selector && key.Matches(msg, k.VimLeft):
		return one(core.ModalLeft{})
	case msg.Type == tea.KeyRight, selector && key.Matches(msg, k.VimRight):
		return one(core.ModalRight{})
	case key.Matches(msg, k.FieldPrev), selector && key.Matches(msg, k.VimUp):
		return one(core.ModalPrevField{})
	case key.Matches(msg, k.FieldNext), selector && key.Matches(msg, k.VimDown):
		return one(core.ModalNextField{})
	case key.Matches(msg, k.Submit):
		return one(core.Enter{})
	case key.Matches(msg, k.Erase):
		return one(core.Backspace{})
	}
	return runes(msg)
}

func (k keyMap) entryInput(msg tea.KeyMsg) []core.Event {
	switch {
	case msg.Type == tea.KeyEsc:
		return one(core.CancelModal{})
	case key.Matches(msg, k.EntryMood):
		return one(core.SetEntryMood{Mood: int(msg.String()[0] - '0')})
	case key.Matches(msg, k.EntryContext):
		return one(core.CycleEntryContext{})
	case key.Matches(msg, k.Submit):
		return one(core.SaveEntry{})
	case key.Matches(msg, k.Erase):
		return one(core.Backspace{})
	}
	return runes(msg)
}

func one(ev core.Event) []core.Event {
	return []core.Event{ev}
}

func runes(msg tea.KeyMsg) []core.Event {
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return nil
	}
	events := make([]core.Event, 0, len(msg.Runes))
	for _, r := range msg.Runes {
		events = append(events, core.Input{Rune: r})
	}
	return events
}

// modeHelp adapts the bindings relevant to one mode to help.KeyMap.
type modeHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h modeHelp) ShortHelp() []key.Binding  { return h.short }
func (h modeHelp) FullHelp() [][]key.Binding { return h.full }

func (k keyMap) helpFor(mode core.Mode) modeHelp {
	switch mode.(type) {
	case core.DashboardMode:
		return modeHelp{
			short: []key.Binding{k.Left, k.Right, k.OpenReport, k.NewReport, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Left, k.Right, k.First, k.Last},
				{k.OpenReport, k.NewReport, k.Refresh},
				{k.Help, k.Quit, k.ForceQuit, k.ForceRefresh},
			},
		}
	case core.ReportDetailMode:
		return modeHelp{
			short: []key.Binding{k.OpenMeeting, k.Edit, k.NewMeeting, k.Observe, k.Delete, k.Back},
			full: [][]key.Binding{
				{k.Up, k.Down, k.First, k.Last, k.OpenMeeting, k.Back},
				{k.NewMeeting, k.Edit, k.Observe, k.Delete, k.Archive},
				{k.Help, k.Quit},
			},
		}
	case core.NoteViewerMode:
		return modeHelp{short: []key.Binding{k.Edit, k.Delete, k.SetMood, k.Back}}
	case core.DeleteConfirmMode:
		return modeHelp{short: []key.Binding{k.Confirm, k.Cancel}}
	case core.NewReportMode:
		esc := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
		return modeHelp{short: []key.Binding{k.FieldNext, k.Left, k.Right, k.Submit, esc}}
	case core.EntryInputMode:
		esc := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
		return modeHelp{short: []key.Binding{k.EntryMood, k.EntryContext, k.Submit, esc}}
	case core.HelpMode:
		return modeHelp{short: []key.Binding{k.CloseHelp}}
	}
	return modeHelp{}
}

// helpScreen lists every binding grouped by screen for the help overlay.
func (k keyMap) helpScreen() []helpSection {
	return []helpSection{
		{title: "Dashboard", bindings: k.helpFor(core.DashboardMode{}).full},
		{title: "Report", bindings: k.helpFor(core.ReportDetailMode{}).full},
		{title: "Note", bindings: [][]key.Binding{{k.Edit, k.Delete, k.SetMood, k.Back}}},
		{title: "Anywhere", bindings: [][]key.Binding{{k.ForceQuit, k.ForceRefresh}}},
	}
}

type helpSection struct {
	title    string
	bindings [][]key.Binding
}
