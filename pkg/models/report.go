package models

import (
	"fmt"
	"strings"
)

// ReportType distinguishes individual contributors from managers.
type ReportType string

const (
	ReportTypeIndividual ReportType = "individual"
	ReportTypeManager    ReportType = "manager"
)

// IsManager reports whether t is the manager type. The zero value is an
// individual contributor.
func (t ReportType) IsManager() bool {
	return t == ReportTypeManager
}

// Cadence values for meeting frequency.
const (
	CadenceWeekly   = "weekly"
	CadenceBiweekly = "biweekly"
	CadenceMonthly  = "monthly"
)

// Cadences lists the supported cadences in ascending length.
var Cadences = []string{CadenceWeekly, CadenceBiweekly, CadenceMonthly}

// CadenceDays converts a cadence string into days. Unrecognized values fall
// back to biweekly.
func CadenceDays(cadence string) int {
	switch strings.ToLower(cadence) {
	case CadenceWeekly:
		return 7
	case CadenceMonthly:
		return 30
	default:
		return 14
	}
}

// ValidCadence reports whether cadence is one of the supported values.
func ValidCadence(cadence string) bool {
	for _, c := range Cadences {
		if strings.EqualFold(c, cadence) {
			return true
		}
	}
	return false
}

// LevelString formats a career level such as "P3" or "M2" for the given
// report type and 1-based level number.
func LevelString(t ReportType, n int) string {
	prefix := "P"
	if t.IsManager() {
		prefix = "M"
	}
	return fmt.Sprintf("%s%d", prefix, n)
}

// ManagerInfo holds manager-only metadata.
type ManagerInfo struct {
	TeamName string `yaml:"team_name,omitempty"`
}

// Skills maps skill names to assessments, grouped by category.
type Skills struct {
	Technical     map[string]string `yaml:"technical,omitempty"`
	Delivery      map[string]string `yaml:"delivery,omitempty"`
	Collaboration map[string]string `yaml:"collaboration,omitempty"`
	Leadership    map[string]string `yaml:"leadership,omitempty"`
}

// ReportProfile is the data stored in a report's _profile.md frontmatter.
// Dates are kept as YYYY-MM-DD strings.
type ReportProfile struct {
	Name             string       `yaml:"name"`
	Title            string       `yaml:"title,omitempty"`
	StartDate        string       `yaml:"start_date,omitempty"`
	Level            string       `yaml:"level,omitempty"`
	MeetingFrequency string       `yaml:"meeting_frequency"`
	Active           bool         `yaml:"active"`
	ReportType       ReportType   `yaml:"report_type,omitempty"`
	ManagerInfo      *ManagerInfo `yaml:"manager_info,omitempty"`
	Birthday         string       `yaml:"birthday,omitempty"`
	Partner          string       `yaml:"partner,omitempty"`
	Children         []string     `yaml:"children,omitempty"`
	Skills           *Skills      `yaml:"skills,omitempty"`
	SkillsUpdated    string       `yaml:"skills_updated,omitempty"`
	Color            string       `yaml:"color,omitempty"`
}

// Report is a tracked person loaded from their directory. Only managers
// carry a non-empty Team.
type Report struct {
	Slug         string
	Path         string
	Profile      ReportProfile
	NotesContent string
	// ManagerSlug is set for second-level reports.
	ManagerSlug string
	Team        []*Report
}

// CadenceDays returns the meeting cadence in days.
func (r *Report) CadenceDays() int {
	return CadenceDays(r.Profile.MeetingFrequency)
}

// IsManager reports whether the report manages a team.
func (r *Report) IsManager() bool {
	return r.Profile.ReportType.IsManager()
}

// IsSecondLevel reports whether the report sits under one of your managers.
func (r *Report) IsSecondLevel() bool {
	return r.ManagerSlug != ""
}

// AddTeamMember attaches a second-level report. Individuals cannot own a
// team.
func (r *Report) AddTeamMember(member *Report) error {
	if !r.IsManager() {
		return fmt.Errorf("adding team member to %s: report is not a manager", r.Slug)
	}
	r.Team = append(r.Team, member)
	return nil
}
