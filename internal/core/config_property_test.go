package core

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// genSettings generates valid workspace settings.
func genSettings(t *rapid.T) models.WorkspaceSettings {
	return models.WorkspaceSettings{
		DefaultMeetingFrequency:  rapid.SampledFrom(models.Cadences).Draw(t, "frequency"),
		OverdueThresholdDays:     rapid.IntRange(0, 60).Draw(t, "threshold"),
		Default2ndLevelFrequency: rapid.SampledFrom(models.Cadences).Draw(t, "second_level"),
	}
}

// Feature: vibe-manager, Property 9: Workspace settings written to .vibe-manager load back unchanged
func TestWorkspaceConfigRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "vibe-config-*")
		if err != nil {
			rt.Fatalf("creating temp dir: %v", err)
		}
		defer os.RemoveAll(dir)

		version := rapid.IntRange(1, 5).Draw(rt, "version")
		settings := genSettings(rt)
		content := fmt.Sprintf("version: %d\nsettings:\n  default_meeting_frequency: %s\n  overdue_threshold_days: %d\n  default_2nd_level_frequency: %s\n",
			version, settings.DefaultMeetingFrequency, settings.OverdueThresholdDays, settings.Default2ndLevelFrequency)
		if err := os.WriteFile(filepath.Join(dir, WorkspaceConfigFile), []byte(content), 0o600); err != nil {
			rt.Fatalf("writing config: %v", err)
		}

		cm := NewConfigurationManager(dir)
		cfg, err := cm.LoadWorkspaceConfig()
		if err != nil {
			rt.Fatalf("LoadWorkspaceConfig: %v", err)
		}
		if cfg.Version != version {
			rt.Errorf("Version = %d, want %d", cfg.Version, version)
		}
		if cfg.Settings != settings {
			rt.Errorf("Settings = %+v, want %+v", cfg.Settings, settings)
		}
		if fallbacks := cm.NormalizeConfig(cfg); len(fallbacks) != 0 {
			rt.Errorf("valid settings replaced: %+v", fallbacks)
		}
		if err := cm.ValidateConfig(cfg); err != nil {
			rt.Errorf("valid settings rejected: %v", err)
		}
	})
}

// Feature: vibe-manager, Property 10: Missing settings keys fall back to defaults
func TestWorkspaceConfigPartialDefaultsProperty(t *testing.T) {
	defaults := models.DefaultWorkspaceConfig().Settings

	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp("", "vibe-config-*")
		if err != nil {
			rt.Fatalf("creating temp dir: %v", err)
		}
		defer os.RemoveAll(dir)

		settings := genSettings(rt)
		writeFrequency := rapid.Bool().Draw(rt, "write_frequency")
		writeThreshold := rapid.Bool().Draw(rt, "write_threshold")

		content := "settings:\n"
		want := defaults
		if writeFrequency {
			content += "  default_meeting_frequency: " + settings.DefaultMeetingFrequency + "\n"
			want.DefaultMeetingFrequency = settings.DefaultMeetingFrequency
		}
		if writeThreshold {
			content += fmt.Sprintf("  overdue_threshold_days: %d\n", settings.OverdueThresholdDays)
			want.OverdueThresholdDays = settings.OverdueThresholdDays
		}
		if err := os.WriteFile(filepath.Join(dir, WorkspaceConfigFile), []byte(content), 0o600); err != nil {
			rt.Fatalf("writing config: %v", err)
		}

		cfg, err := NewConfigurationManager(dir).LoadWorkspaceConfig()
		if err != nil {
			rt.Fatalf("LoadWorkspaceConfig: %v", err)
		}
		if cfg.Settings != want {
			rt.Errorf("Settings = %+v, want %+v", cfg.Settings, want)
		}
	})
}

// Feature: vibe-manager, Property 11: Normalized cadence settings are always supported cadences
func TestNormalizeConfigCadencesProperty(t *testing.T) {
	cm := NewConfigurationManager(t.TempDir())

	rapid.Check(t, func(rt *rapid.T) {
		cfg := models.DefaultWorkspaceConfig()
		cfg.Settings.DefaultMeetingFrequency = rapid.OneOf(
			rapid.SampledFrom(models.Cadences),
			rapid.String(),
		).Draw(rt, "frequency")
		original := cfg.Settings.DefaultMeetingFrequency

		fallbacks := cm.NormalizeConfig(&cfg)

		got := cfg.Settings.DefaultMeetingFrequency
		if !slices.Contains(models.Cadences, got) {
			rt.Fatalf("DefaultMeetingFrequency = %q after normalizing %q", got, original)
		}
		replaced := len(fallbacks) == 1
		if replaced == models.ValidCadence(original) {
			rt.Errorf("normalizing %q: fallbacks = %+v", original, fallbacks)
		}
		if !replaced && !strings.EqualFold(got, original) {
			rt.Errorf("valid cadence %q rewritten to %q", original, got)
		}
	})
}
