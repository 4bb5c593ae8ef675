// Package internal wires the storage, engine, observability and editor
// services of a vibe-manager workspace into the CLI layer.
package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/valter-silva-au/vibe-manager/internal/cli"
	"github.com/valter-silva-au/vibe-manager/internal/core"
	"github.com/valter-silva-au/vibe-manager/internal/integration"
	"github.com/valter-silva-au/vibe-manager/internal/observability"
	"github.com/valter-silva-au/vibe-manager/internal/storage"
)

// HomeEnv names the environment variable holding the default workspace.
const HomeEnv = "VIBE_HOME"

// App builds workspace services on demand. The workspace path is a command
// argument, so nothing is opened until a command asks for it.
type App struct {
	Getenv          func(string) string
	Getwd           func() (string, error)
	AlertThresholds observability.AlertThresholds
}

// NewApp creates the application and installs its hooks into the CLI layer.
func NewApp() *App {
	app := &App{
		Getenv:          os.Getenv,
		Getwd:           os.Getwd,
		AlertThresholds: observability.DefaultAlertThresholds(),
	}
	cli.ResolvePath = app.ResolveBasePath
	cli.OpenWorkspace = app.Open
	return app
}

// ResolveBasePath picks the workspace directory: the explicit argument,
// then $VIBE_HOME, then the nearest enclosing workspace, then the current
// directory. A leading ~ is expanded in both the argument and $VIBE_HOME.
func (a *App) ResolveBasePath(pathArg string) (string, error) {
	if pathArg == "" {
		pathArg = a.Getenv(HomeEnv)
	}
	if pathArg != "" {
		expanded, err := homedir.Expand(pathArg)
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", pathArg, err)
		}
		return filepath.Abs(expanded)
	}

	cwd, err := a.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	if found, err := storage.FindWorkspace(cwd); err == nil {
		return found, nil
	}
	return filepath.Abs(cwd)
}

// Open resolves pathArg and wires the services of the workspace found
// there. A workspace whose event log cannot be opened still works, without
// metrics and failure alerts.
func (a *App) Open(pathArg string) (*cli.Workspace, error) {
	basePath, err := a.ResolveBasePath(pathArg)
	if err != nil {
		return nil, err
	}
	if !storage.IsWorkspace(basePath) {
		return nil, fmt.Errorf("%s: %w (run `vibe init` to create one)", basePath, storage.ErrNotWorkspace)
	}

	configMgr := core.NewConfigurationManager(basePath)
	cfg, err := configMgr.LoadWorkspaceConfig()
	if err != nil {
		return nil, fmt.Errorf("loading workspace config: %w", err)
	}
	fallbacks := configMgr.NormalizeConfig(cfg)
	if err := configMgr.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid workspace config: %w", err)
	}

	ws := &cli.Workspace{
		Path:   basePath,
		Config: *cfg,
		Store:  storage.NewStore(),
		Editor: integration.NewEditor(),
	}

	eventLog, err := observability.OpenWorkspaceEventLog(basePath)
	if err == nil {
		ws.EventLog = eventLog
		ws.Logger = &eventLogAdapter{log: eventLog}
		ws.MetricsCalc = observability.NewMetricsCalculator(eventLog)
		for _, fb := range fallbacks {
			_ = ws.Logger.LogEvent(observability.EventConfigFallback, map[string]any{
				"key":     fb.Key,
				"value":   fb.Value,
				"default": fb.Default,
			})
		}
	}
	ws.AlertEngine = observability.NewAlertEngine(ws.EventLog, a.AlertThresholds)
	return ws, nil
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	if a.log == nil {
		return errors.New("event log not open")
	}
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   observability.LevelFor(eventType),
		Type:    eventType,
		Message: observability.MessageFor(eventType, data),
		Data:    data,
	})
}
