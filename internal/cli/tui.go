package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/internal/integration"
)

const tickInterval = time.Second

// stdoutIsTerminal gates the TUI; tests replace it.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type tickMsg time.Time

// editorDoneMsg is delivered once the external editor process exits.
type editorDoneMsg struct {
	path   string
	isNew  bool
	before time.Time
	err    error
}

// tuiModel adapts the engine to bubbletea. It translates keys into engine
// events and performs the effects the engine returns.
type tuiModel struct {
	engine *core.Engine
	editor integration.Editor
	keys   keyMap
	help   help.Model
	width  int
	height int
}

func newTUIModel(e *core.Engine, editor integration.Editor) tuiModel {
	return tuiModel{
		engine: e,
		editor: editor,
		keys:   newKeyMap(),
		help:   help.New(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m tuiModel) Init() tea.Cmd {
	return tick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		var cmds []tea.Cmd
		for _, ev := range m.keys.translate(m.engine, msg) {
			if cmd := m.perform(m.engine.Apply(ev)); cmd != nil {
				cmds = append(cmds, cmd)
			}
			if m.engine.ShouldQuit {
				return m, tea.Quit
			}
		}
		return m, tea.Batch(cmds...)

	case editorDoneMsg:
		done := core.EditorFinished{Path: msg.path, IsNew: msg.isNew, Err: msg.err}
		if msg.err == nil {
			done.Result, done.Err = m.editor.Inspect(msg.path, msg.before)
		}
		return m, m.perform(m.engine.Apply(done))

	case tickMsg:
		m.engine.ClearExpiredStatus(time.Time(msg))
		return m, tick()
	}

	return m, nil
}

// perform runs an engine effect. Spawning the editor suspends the program
// until the editor exits.
func (m tuiModel) perform(effect core.Effect) tea.Cmd {
	if effect.Kind != core.EffectSpawnEditor {
		return nil
	}
	if m.editor == nil {
		return func() tea.Msg {
			return editorDoneMsg{path: effect.Path, isNew: effect.IsNew, err: fmt.Errorf("no editor configured")}
		}
	}
	before := m.editor.ModTime(effect.Path)
	return tea.ExecProcess(m.editor.Command(effect.Path), func(err error) tea.Msg {
		return editorDoneMsg{path: effect.Path, isNew: effect.IsNew, before: before, err: err}
	})
}

func (m tuiModel) View() string {
	return render(m.engine, m.keys, m.help, m.width, m.height, m.engine.Now())
}

func runTUI(args []string) error {
	ws, err := openWorkspace(args)
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	if !stdoutIsTerminal() {
		return fmt.Errorf("stdout is not a terminal; use `vibe status` for a plain listing")
	}

	e, err := ws.NewEngine()
	if err != nil {
		return fmt.Errorf("loading workspace %s: %w", ws.Path, err)
	}

	p := tea.NewProgram(newTUIModel(e, ws.Editor), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
