package observability

import (
	"fmt"
	"sort"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// AlertSeverity represents the urgency of an alert.
type AlertSeverity string

const (
	SeverityHigh   AlertSeverity = "high"
	SeverityMedium AlertSeverity = "medium"
	SeverityLow    AlertSeverity = "low"
)

// Alert conditions.
const (
	ConditionNeverMet       = "report_never_met"
	ConditionOverdue        = "report_overdue"
	ConditionLowMood        = "low_mood"
	ConditionMoodFalling    = "mood_falling"
	ConditionTeamHealth     = "team_health_low"
	ConditionRepeatedErrors = "repeated_failures"
)

// Alert represents a triggered alert condition.
type Alert struct {
	ID          string        `json:"id"`
	Condition   string        `json:"condition"`
	Severity    AlertSeverity `json:"severity"`
	Message     string        `json:"message"`
	TriggeredAt time.Time     `json:"triggered_at"`
}

// AlertThresholds configures when alerts fire.
type AlertThresholds struct {
	LowMood          int `yaml:"low_mood" json:"low_mood"`
	MinTeamHealth    int `yaml:"min_team_health" json:"min_team_health"`
	FailureWindowHrs int `yaml:"failure_window_hours" json:"failure_window_hours"`
	MaxFailures      int `yaml:"max_failures" json:"max_failures"`
}

// DefaultAlertThresholds returns the thresholds used by vibe status.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{
		LowMood:          2,
		MinTeamHealth:    50,
		FailureWindowHrs: 24,
		MaxFailures:      3,
	}
}

// AlertEngine evaluates attention alerts for a set of report summaries.
type AlertEngine interface {
	Evaluate(reports []models.ReportSummary, now time.Time) ([]Alert, error)
}

type alertEngine struct {
	eventLog   EventLog
	thresholds AlertThresholds
}

// NewAlertEngine creates an AlertEngine. eventLog may be nil, in which case
// failure alerts are not evaluated.
func NewAlertEngine(eventLog EventLog, thresholds AlertThresholds) AlertEngine {
	return &alertEngine{eventLog: eventLog, thresholds: thresholds}
}

// Evaluate returns the triggered alerts, most severe first. Inactive
// reports never raise alerts.
func (ae *alertEngine) Evaluate(reports []models.ReportSummary, now time.Time) ([]Alert, error) {
	var alerts []Alert
	for _, r := range reports {
		if !r.Active {
			continue
		}
		alerts = append(alerts, ae.checkReport(r, now)...)
	}

	failures, err := ae.checkFailures(now)
	if err != nil {
		return nil, fmt.Errorf("checking failures: %w", err)
	}
	alerts = append(alerts, failures...)

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank(alerts[i].Severity) < severityRank(alerts[j].Severity)
	})
	return alerts, nil
}

func (ae *alertEngine) checkReport(r models.ReportSummary, now time.Time) []Alert {
	var alerts []Alert
	add := func(condition string, severity AlertSeverity, msg string) {
		alerts = append(alerts, Alert{
			ID:          fmt.Sprintf("%s-%s", condition, r.Name),
			Condition:   condition,
			Severity:    severity,
			Message:     msg,
			TriggeredAt: now,
		})
	}

	switch {
	case r.DaysSinceMeeting == nil:
		add(ConditionNeverMet, SeverityHigh, fmt.Sprintf("%s has no 1-on-1 on record", r.Name))
	case r.IsOverdue:
		add(ConditionOverdue, SeverityHigh, fmt.Sprintf("%s is overdue: last 1-on-1 %d days ago (%s)", r.Name, *r.DaysSinceMeeting, r.MeetingFrequency))
	}

	if r.HasMood() && r.RecentMood <= ae.thresholds.LowMood {
		add(ConditionLowMood, SeverityMedium, fmt.Sprintf("%s's recent mood is %d/5", r.Name, r.RecentMood))
	}
	if r.MoodTrend == models.MoodFalling {
		add(ConditionMoodFalling, SeverityLow, fmt.Sprintf("%s's mood is falling", r.Name))
	}
	if r.Team != nil && r.Team.HealthScore < ae.thresholds.MinTeamHealth {
		add(ConditionTeamHealth, SeverityMedium, fmt.Sprintf("%s's team health is %d/100", r.Name, r.Team.HealthScore))
	}
	return alerts
}

func (ae *alertEngine) checkFailures(now time.Time) ([]Alert, error) {
	if ae.eventLog == nil || ae.thresholds.MaxFailures <= 0 {
		return nil, nil
	}
	since := now.Add(-time.Duration(ae.thresholds.FailureWindowHrs) * time.Hour)
	events, err := ae.eventLog.Read(EventFilter{Since: &since, Type: EventActionFailed})
	if err != nil {
		return nil, err
	}
	if len(events) < ae.thresholds.MaxFailures {
		return nil, nil
	}
	return []Alert{{
		ID:          ConditionRepeatedErrors,
		Condition:   ConditionRepeatedErrors,
		Severity:    SeverityMedium,
		Message:     fmt.Sprintf("%d failed actions in the last %d hours, see %s", len(events), ae.thresholds.FailureWindowHrs, EventsFile),
		TriggeredAt: now,
	}}, nil
}

func severityRank(s AlertSeverity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}
