package core

import "github.com/valter-silva-au/vibe-manager/pkg/models"

// Event is an application event delivered by the input mapper or the
// runtime. The set of events is closed.
type Event interface {
	isEvent()
}

type (
	Quit                struct{}
	Back                struct{}
	ShowHelp            struct{}
	HideHelp            struct{}
	SelectNext          struct{}
	SelectPrev          struct{}
	SelectFirst         struct{}
	SelectLast          struct{}
	ViewReport          struct{}
	ViewMeeting         struct{ Index int }
	NewMeeting          struct{}
	EditMeeting         struct{}
	EditMeetingFromList struct{ Index int }
	UpdateMood          struct{ Mood int }
	ShowDeleteConfirm   struct{}
	ConfirmDelete       struct{}
	ShowNewReport       struct{}
	CreateReport        struct{}
	CancelModal         struct{}
	ModalLeft           struct{}
	ModalRight          struct{}
	ModalNextField      struct{}
	ModalPrevField      struct{}
	ShowEntryInput      struct{}
	SetEntryMood        struct{ Mood int }
	CycleEntryContext   struct{}
	SaveEntry           struct{}
	RefreshData         struct{}
	Input               struct{ Rune rune }
	Backspace           struct{}
	Enter               struct{}
	ArchiveReport       struct{}
)

// EditorFinished is sent by the runtime once the external editor exits.
type EditorFinished struct {
	Path   string
	IsNew  bool
	Result models.EditResult
	Err    error
}

func (Quit) isEvent()                {}
func (Back) isEvent()                {}
func (ShowHelp) isEvent()            {}
func (HideHelp) isEvent()            {}
func (SelectNext) isEvent()          {}
func (SelectPrev) isEvent()          {}
func (SelectFirst) isEvent()         {}
func (SelectLast) isEvent()          {}
func (ViewReport) isEvent()          {}
func (ViewMeeting) isEvent()         {}
func (NewMeeting) isEvent()          {}
func (EditMeeting) isEvent()         {}
func (EditMeetingFromList) isEvent() {}
func (UpdateMood) isEvent()          {}
func (ShowDeleteConfirm) isEvent()   {}
func (ConfirmDelete) isEvent()       {}
func (ShowNewReport) isEvent()       {}
func (CreateReport) isEvent()        {}
func (CancelModal) isEvent()         {}
func (ModalLeft) isEvent()           {}
func (ModalRight) isEvent()          {}
func (ModalNextField) isEvent()      {}
func (ModalPrevField) isEvent()      {}
func (ShowEntryInput) isEvent()      {}
func (SetEntryMood) isEvent()        {}
func (CycleEntryContext) isEvent()   {}
func (SaveEntry) isEvent()           {}
func (RefreshData) isEvent()         {}
func (Input) isEvent()               {}
func (Backspace) isEvent()           {}
func (Enter) isEvent()               {}
func (ArchiveReport) isEvent()       {}
func (EditorFinished) isEvent()      {}

// EffectKind identifies a side effect the runtime must perform.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSpawnEditor
)

// Effect is returned by Engine.Apply. The engine never spawns processes
// itself.
type Effect struct {
	Kind EffectKind
	// Path is the file to open in the editor.
	Path string
	// IsNew is set when the entry was just created.
	IsNew bool
}

var noEffect = Effect{Kind: EffectNone}

func spawnEditor(path string, isNew bool) Effect {
	return Effect{Kind: EffectSpawnEditor, Path: path, IsNew: isNew}
}
