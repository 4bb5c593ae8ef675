package integration

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// fallbackEditors are tried on PATH, in order, when neither $EDITOR nor
// $VISUAL is set.
var fallbackEditors = []string{"nano", "vim", "vi"}

// Editor opens entry files in the user's external editor.
type Editor interface {
	// Argv returns the resolved editor command line without the file.
	Argv() []string
	// Command builds the process that edits path. The caller runs it with
	// the terminal attached.
	Command(path string) *exec.Cmd
	// ModTime returns the modification time of path, or the zero time when
	// it cannot be read.
	ModTime(path string) time.Time
	// Inspect compares the file's modification time against before and
	// returns its current content.
	Inspect(path string, before time.Time) (models.EditResult, error)
}

type externalEditor struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
}

// NewEditor creates an Editor resolved from the process environment.
func NewEditor() Editor {
	return &externalEditor{getenv: os.Getenv, lookPath: exec.LookPath}
}

// Argv picks $EDITOR, then $VISUAL, then the first of nano, vim or vi found
// on PATH, and finally plain vi. The variable is split on whitespace so
// values like "code --wait" work.
func (e *externalEditor) Argv() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(e.getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	for _, name := range fallbackEditors {
		if _, err := e.lookPath(name); err == nil {
			return []string{name}
		}
	}
	return []string{"vi"}
}

func (e *externalEditor) Command(path string) *exec.Cmd {
	argv := append(e.Argv(), path)
	return exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204: editor command comes from $EDITOR/$VISUAL
}

func (e *externalEditor) ModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func (e *externalEditor) Inspect(path string, before time.Time) (models.EditResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Deleted from inside the editor: an emptied entry.
		return models.EditResult{Modified: true}, nil
	}
	if err != nil {
		return models.EditResult{}, fmt.Errorf("inspecting %s after edit: %w", path, err)
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: entry path from the workspace
	if err != nil {
		return models.EditResult{}, fmt.Errorf("inspecting %s after edit: %w", path, err)
	}
	return models.EditResult{
		Modified: !info.ModTime().Equal(before),
		Content:  string(data),
	}, nil
}
