package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// ConfigFile marks a directory as a vibe-manager workspace.
const ConfigFile = ".vibe-manager"

const teamDir = "team"

var (
	// ErrNotWorkspace is returned when a path has no .vibe-manager file.
	ErrNotWorkspace = errors.New("not a vibe-manager workspace")
	// ErrWorkspaceExists is returned by InitWorkspace on an existing
	// workspace.
	ErrWorkspaceExists = errors.New("workspace already initialized")
)

// IsWorkspace reports whether path contains a workspace config file.
func IsWorkspace(path string) bool {
	info, err := os.Stat(filepath.Join(path, ConfigFile))
	return err == nil && !info.IsDir()
}

// FindWorkspace walks up from start until it finds a workspace.
func FindWorkspace(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		if IsWorkspace(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("searching from %s: %w", start, ErrNotWorkspace)
		}
		dir = parent
	}
}

// InitWorkspace writes the default workspace config into path, creating the
// directory if needed.
func InitWorkspace(path string) error {
	if IsWorkspace(path) {
		return fmt.Errorf("initializing %s: %w", path, ErrWorkspaceExists)
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("initializing %s: %w", path, err)
	}
	data, err := yaml.Marshal(models.DefaultWorkspaceConfig())
	if err != nil {
		return fmt.Errorf("encoding workspace config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, ConfigFile), data, 0o600); err != nil {
		return fmt.Errorf("writing workspace config: %w", err)
	}
	return nil
}

// ListReportDirs returns the report directories of a workspace sorted by
// name. Hidden directories and directories without a profile are ignored.
func (s *fileStore) ListReportDirs(workspacePath string) ([]string, error) {
	dirs, err := listProfileDirs(workspacePath)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return dirs, nil
}

// ListTeamMemberDirs returns the second-level report directories under a
// manager's team/ directory. A missing team/ yields no members.
func (s *fileStore) ListTeamMemberDirs(managerDir string) ([]string, error) {
	dirs, err := listProfileDirs(filepath.Join(managerDir, teamDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing team of %s: %w", filepath.Base(managerDir), err)
	}
	return dirs, nil
}

// HasTeamDir reports whether dir has a team/ subdirectory.
func (s *fileStore) HasTeamDir(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, teamDir))
	return err == nil && info.IsDir()
}

func listProfileDirs(root string) ([]string, error) {
	items, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, item := range items {
		name := item.Name()
		if !item.IsDir() || strings.HasPrefix(name, ".") || name == teamDir || name == journalDir {
			continue
		}
		dir := filepath.Join(root, name)
		if fileExists(filepath.Join(dir, ProfileFile)) {
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
