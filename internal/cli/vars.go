package cli

import (
	"fmt"

	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/internal/integration"
	"github.com/valter-silva-au/vibe-manager/internal/observability"
	"github.com/valter-silva-au/vibe-manager/internal/storage"
	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// Workspace bundles the services bound to one workspace directory.
type Workspace struct {
	Path        string
	Config      models.WorkspaceConfig
	Store       storage.Store
	Logger      core.EventLogger
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
	AlertEngine observability.AlertEngine
	Editor      integration.Editor
}

// Application wiring, set in app.go before Execute runs.
var (
	// ResolvePath turns the optional path argument into an absolute
	// workspace path.
	ResolvePath func(pathArg string) (string, error)
	// OpenWorkspace resolves the path argument and wires the services of an
	// existing workspace.
	OpenWorkspace func(pathArg string) (*Workspace, error)
)

// NewEngine builds an engine over the workspace and loads every report.
func (w *Workspace) NewEngine() (*core.Engine, error) {
	return w.loadEngine(w.Logger)
}

// Snapshot loads the workspace for read-only commands. Nothing is written
// to the event log.
func (w *Workspace) Snapshot() (*core.Engine, error) {
	return w.loadEngine(nil)
}

func (w *Workspace) loadEngine(logger core.EventLogger) (*core.Engine, error) {
	e := core.NewEngine(models.Workspace{Path: w.Path, Config: w.Config}, w.Store, logger)
	if err := e.Load(); err != nil {
		return nil, err
	}
	return e, nil
}

// Close releases the event log. It is safe on a workspace without one.
func (w *Workspace) Close() error {
	if w.EventLog != nil {
		return w.EventLog.Close()
	}
	return nil
}

func openWorkspace(args []string) (*Workspace, error) {
	if OpenWorkspace == nil {
		return nil, fmt.Errorf("workspace loader not initialized")
	}
	var pathArg string
	if len(args) > 0 {
		pathArg = args[0]
	}
	return OpenWorkspace(pathArg)
}
