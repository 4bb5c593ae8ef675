// Package core contains the business logic for vibe-manager: the
// state-update engine that drives the TUI, the scoring engine that ranks
// reports, and workspace configuration.
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// WorkspaceConfigFile is the name of the workspace configuration file.
const WorkspaceConfigFile = ".vibe-manager"

// ConfigurationManager loads and validates the workspace configuration.
type ConfigurationManager interface {
	LoadWorkspaceConfig() (*models.WorkspaceConfig, error)
	NormalizeConfig(cfg *models.WorkspaceConfig) []SettingFallback
	ValidateConfig(cfg *models.WorkspaceConfig) error
}

// SettingFallback records a setting whose value was not understood and was
// replaced by its default.
type SettingFallback struct {
	Key     string
	Value   string
	Default string
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML .vibe-manager file.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager for the workspace
// rooted at basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// LoadWorkspaceConfig reads .vibe-manager. Missing keys, an empty file and a
// missing file all fall back to defaults.
func (cm *viperConfigManager) LoadWorkspaceConfig() (*models.WorkspaceConfig, error) {
	defaults := models.DefaultWorkspaceConfig()

	v := viper.New()
	v.SetConfigFile(filepath.Join(cm.basePath, WorkspaceConfigFile))
	v.SetConfigType("yaml")

	v.SetDefault("version", defaults.Version)
	v.SetDefault("settings.default_meeting_frequency", defaults.Settings.DefaultMeetingFrequency)
	v.SetDefault("settings.overdue_threshold_days", defaults.Settings.OverdueThresholdDays)
	v.SetDefault("settings.default_2nd_level_frequency", defaults.Settings.Default2ndLevelFrequency)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", WorkspaceConfigFile, err)
		}
	}

	cfg := &models.WorkspaceConfig{
		Version: v.GetInt("version"),
		Settings: models.WorkspaceSettings{
			DefaultMeetingFrequency:  v.GetString("settings.default_meeting_frequency"),
			OverdueThresholdDays:     v.GetInt("settings.overdue_threshold_days"),
			Default2ndLevelFrequency: v.GetString("settings.default_2nd_level_frequency"),
		},
	}
	// Older workspaces call the default cadence "default_cadence".
	if !v.InConfig("settings.default_meeting_frequency") && v.IsSet("settings.default_cadence") {
		cfg.Settings.DefaultMeetingFrequency = v.GetString("settings.default_cadence")
	}
	return cfg, nil
}

// NormalizeConfig lower-cases the cadence settings and replaces unknown
// cadences with their defaults. The replaced settings are returned so the
// caller can report them; an unknown cadence never stops a workspace from
// opening.
func (cm *viperConfigManager) NormalizeConfig(cfg *models.WorkspaceConfig) []SettingFallback {
	if cfg == nil {
		return nil
	}
	defaults := models.DefaultWorkspaceConfig().Settings
	var fallbacks []SettingFallback
	for _, c := range []struct {
		key   string
		value *string
		def   string
	}{
		{"settings.default_meeting_frequency", &cfg.Settings.DefaultMeetingFrequency, defaults.DefaultMeetingFrequency},
		{"settings.default_2nd_level_frequency", &cfg.Settings.Default2ndLevelFrequency, defaults.Default2ndLevelFrequency},
	} {
		if models.ValidCadence(*c.value) {
			*c.value = strings.ToLower(*c.value)
			continue
		}
		fallbacks = append(fallbacks, SettingFallback{Key: c.key, Value: *c.value, Default: c.def})
		*c.value = c.def
	}
	return fallbacks
}

// ValidateConfig rejects negative thresholds. Cadences are handled by
// NormalizeConfig.
func (cm *viperConfigManager) ValidateConfig(cfg *models.WorkspaceConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}
	s := cfg.Settings
	if s.OverdueThresholdDays < 0 {
		return fmt.Errorf("settings.overdue_threshold_days must not be negative, got %d", s.OverdueThresholdDays)
	}
	return nil
}
