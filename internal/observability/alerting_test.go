package observability

import (
	"testing"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

var alertNow = time.Date(2026, 1, 20, 14, 30, 0, 0, time.UTC)

func days(n int) *int { return &n }

func conditions(alerts []Alert) map[string]Alert {
	out := make(map[string]Alert, len(alerts))
	for _, a := range alerts {
		out[a.ID] = a
	}
	return out
}

func TestAlertEngine_ReportConditions(t *testing.T) {
	reports := []models.ReportSummary{
		{Name: "Sam", Active: true, IsOverdue: true},
		{Name: "Alex", Active: true, DaysSinceMeeting: days(21), IsOverdue: true, MeetingFrequency: "biweekly", RecentMood: 2, MoodTrend: models.MoodFalling},
		{Name: "Jordan", Active: true, DaysSinceMeeting: days(2), RecentMood: 4, IsManager: true, Team: &models.TeamMetrics{TeamSize: 2, HealthScore: 40}},
		{Name: "Kim", Active: true, DaysSinceMeeting: days(1), RecentMood: 5, MoodTrend: models.MoodRising},
		{Name: "Archived", Active: false, IsOverdue: true, RecentMood: 1},
	}

	alerts, err := NewAlertEngine(nil, DefaultAlertThresholds()).Evaluate(reports, alertNow)
	if err != nil {
		t.Fatalf("evaluating alerts: %v", err)
	}

	got := conditions(alerts)
	want := map[string]AlertSeverity{
		"report_never_met-Sam":   SeverityHigh,
		"report_overdue-Alex":    SeverityHigh,
		"low_mood-Alex":          SeverityMedium,
		"mood_falling-Alex":      SeverityLow,
		"team_health_low-Jordan": SeverityMedium,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d alerts, got %d: %+v", len(want), len(got), alerts)
	}
	for id, sev := range want {
		a, ok := got[id]
		if !ok {
			t.Errorf("missing alert %s", id)
			continue
		}
		if a.Severity != sev {
			t.Errorf("%s: severity = %s, want %s", id, a.Severity, sev)
		}
		if !a.TriggeredAt.Equal(alertNow) {
			t.Errorf("%s: TriggeredAt = %v", id, a.TriggeredAt)
		}
	}
	if msg := got["report_overdue-Alex"].Message; msg != "Alex is overdue: last 1-on-1 21 days ago (biweekly)" {
		t.Errorf("unexpected message %q", msg)
	}

	for i := 1; i < len(alerts); i++ {
		if severityRank(alerts[i-1].Severity) > severityRank(alerts[i].Severity) {
			t.Fatalf("alerts not ordered by severity: %+v", alerts)
		}
	}
}

func TestAlertEngine_RepeatedFailures(t *testing.T) {
	log := newTestLog(t)
	for i := 0; i < 3; i++ {
		writeEvents(t, log, Event{
			Time:  alertNow.Add(-time.Duration(i) * time.Hour),
			Level: LevelError,
			Type:  EventActionFailed,
			Data:  map[string]any{"action": "deleting entry"},
		})
	}
	writeEvents(t, log, Event{Time: alertNow.Add(-72 * time.Hour), Level: LevelError, Type: EventActionFailed})

	alerts, err := NewAlertEngine(log, DefaultAlertThresholds()).Evaluate(nil, alertNow)
	if err != nil {
		t.Fatalf("evaluating alerts: %v", err)
	}
	if len(alerts) != 1 || alerts[0].Condition != ConditionRepeatedErrors {
		t.Fatalf("expected one repeated failure alert, got %+v", alerts)
	}

	th := DefaultAlertThresholds()
	th.MaxFailures = 4
	alerts, err = NewAlertEngine(log, th).Evaluate(nil, alertNow)
	if err != nil {
		t.Fatalf("evaluating alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts below threshold, got %+v", alerts)
	}
}

func TestAlertEngine_QuietWorkspace(t *testing.T) {
	reports := []models.ReportSummary{
		{Name: "Kim", Active: true, DaysSinceMeeting: days(3), RecentMood: 4, MoodTrend: models.MoodStable},
	}
	alerts, err := NewAlertEngine(newTestLog(t), DefaultAlertThresholds()).Evaluate(reports, alertNow)
	if err != nil {
		t.Fatalf("evaluating alerts: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}
