package cli

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/internal/observability"
	"github.com/valter-silva-au/vibe-manager/internal/storage"
	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// newTestWorkspace creates a workspace with two reports, dated relative to
// the wall clock since commands load through the default engine clock:
//
//	sam   never met
//	alex  one meeting two days ago, mood 4
func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, storage.InitWorkspace(dir))

	met := time.Now().AddDate(0, 0, -2).Truncate(time.Second)
	writeFile(t, filepath.Join(dir, "alex", "_profile.md"), "---\nname: Alex Chen\ntitle: Engineer\nlevel: P3\nmeeting_frequency: weekly\n---\n")
	writeFile(t, filepath.Join(dir, "alex", "journal", models.FormatEntryFilename(met)), "---\nmood: 4\ncontext: meeting\n---\n\n# Roadmap chat")
	writeFile(t, filepath.Join(dir, "sam", "_profile.md"), "---\nname: Sam Lee\ntitle: Designer\n---\n")

	return &Workspace{
		Path:        dir,
		Config:      models.DefaultWorkspaceConfig(),
		Store:       storage.NewStore(),
		AlertEngine: observability.NewAlertEngine(nil, observability.DefaultAlertThresholds()),
		Editor:      &fakeEditor{},
	}
}

// useWorkspace points the OpenWorkspace hook at ws for the rest of the test.
func useWorkspace(t *testing.T, ws *Workspace) {
	t.Helper()
	orig := OpenWorkspace
	t.Cleanup(func() { OpenWorkspace = orig })
	OpenWorkspace = func(string) (*Workspace, error) { return ws, nil }
}

func loadEngine(t *testing.T, ws *Workspace) *core.Engine {
	t.Helper()
	e, err := ws.NewEngine()
	require.NoError(t, err)
	return e
}

type fakeEditor struct {
	result   models.EditResult
	err      error
	commands []string
}

func (f *fakeEditor) Argv() []string { return []string{"true"} }

func (f *fakeEditor) Command(path string) *exec.Cmd {
	f.commands = append(f.commands, path)
	return exec.Command("true", path)
}

func (f *fakeEditor) ModTime(string) time.Time { return time.Time{} }

func (f *fakeEditor) Inspect(path string, _ time.Time) (models.EditResult, error) {
	if f.err != nil {
		return models.EditResult{}, f.err
	}
	return f.result, nil
}

type recordingLogger struct {
	events []string
}

func (l *recordingLogger) LogEvent(eventType string, _ map[string]any) error {
	l.events = append(l.events, eventType)
	return nil
}
