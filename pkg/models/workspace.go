package models

// WorkspaceSettings are the tunable settings of a workspace.
type WorkspaceSettings struct {
	DefaultMeetingFrequency  string `yaml:"default_meeting_frequency"`
	OverdueThresholdDays     int    `yaml:"overdue_threshold_days"`
	Default2ndLevelFrequency string `yaml:"default_2nd_level_frequency"`
}

// WorkspaceConfig mirrors the .vibe-manager file.
type WorkspaceConfig struct {
	Version  int               `yaml:"version"`
	Settings WorkspaceSettings `yaml:"settings"`
}

// DefaultWorkspaceConfig returns the configuration written by init.
func DefaultWorkspaceConfig() WorkspaceConfig {
	return WorkspaceConfig{
		Version: 1,
		Settings: WorkspaceSettings{
			DefaultMeetingFrequency:  CadenceBiweekly,
			OverdueThresholdDays:     3,
			Default2ndLevelFrequency: CadenceMonthly,
		},
	}
}

// Workspace is a directory of report folders plus its configuration.
type Workspace struct {
	Path   string
	Config WorkspaceConfig
}
