package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

var scoringToday = time.Date(2026, 1, 20, 12, 0, 0, 0, time.Local)

func daysAgo(n int) time.Time {
	return scoringToday.AddDate(0, 0, -n)
}

func meeting(ts time.Time, mood int) models.JournalEntry {
	return models.JournalEntry{
		Timestamp:   ts,
		Frontmatter: models.EntryFrontmatter{Mood: mood, Context: models.ContextMeeting},
		Content:     "notes",
	}
}

func observation(ts time.Time, mood int, ctx models.Context) models.JournalEntry {
	return models.JournalEntry{
		Timestamp:   ts,
		Frontmatter: models.EntryFrontmatter{Mood: mood, Context: ctx},
	}
}

func individual(cadence string) *models.Report {
	return &models.Report{
		Slug:    "alex",
		Profile: models.ReportProfile{Name: "Alex", MeetingFrequency: cadence, Active: true},
	}
}

func TestSummarize_OverdueStableMood(t *testing.T) {
	entries := []models.JournalEntry{meeting(daysAgo(25), 3), meeting(daysAgo(20), 3)}

	s := Summarize(individual("biweekly"), entries, 3, scoringToday)

	require.NotNil(t, s.DaysSinceMeeting)
	assert.Equal(t, 20, *s.DaysSinceMeeting)
	assert.True(t, s.IsOverdue)
	assert.Equal(t, 3, s.RecentMood)
	assert.Equal(t, models.MoodStable, s.MoodTrend)
	assert.Equal(t, 30, s.UrgencyScore)
}

func TestSummarize_NeverMetNoMood(t *testing.T) {
	s := Summarize(individual("biweekly"), nil, 3, scoringToday)

	assert.Nil(t, s.DaysSinceMeeting)
	assert.True(t, s.IsOverdue)
	assert.False(t, s.HasMood())
	assert.Empty(t, s.MoodTrend)
	assert.Equal(t, 110, s.UrgencyScore)
}

func TestSummarize_LowFallingMoodOnSchedule(t *testing.T) {
	entries := []models.JournalEntry{
		observation(daysAgo(10), 4, models.ContextStandup),
		meeting(daysAgo(7), 2),
	}

	s := Summarize(individual("biweekly"), entries, 3, scoringToday)

	assert.False(t, s.IsOverdue)
	assert.Equal(t, models.MoodFalling, s.MoodTrend)
	assert.Equal(t, 35, s.UrgencyScore)
}

func TestSummarize_DueSoon(t *testing.T) {
	s := Summarize(individual("weekly"), []models.JournalEntry{meeting(daysAgo(6), 4)}, 3, scoringToday)
	assert.Equal(t, 5, s.UrgencyScore)
}

func TestSummarize_OverdueCap(t *testing.T) {
	s := Summarize(individual("biweekly"), []models.JournalEntry{meeting(daysAgo(100), 0)}, 3, scoringToday)
	assert.Equal(t, 80+10, s.UrgencyScore)
}

func TestSummarize_MoodWindow(t *testing.T) {
	entries := []models.JournalEntry{
		meeting(daysAgo(9), 1),
		observation(daysAgo(3), 0, models.ContextSlack),
		observation(daysAgo(2), 0, models.ContextSlack),
		observation(daysAgo(1), 0, models.ContextOther),
	}

	s := Summarize(individual("biweekly"), entries, 3, scoringToday)

	assert.False(t, s.HasMood(), "mood older than the window must be ignored")
	assert.Empty(t, s.MoodTrend)
}

func TestSummarize_ObservationsDoNotCountAsMeetings(t *testing.T) {
	entries := []models.JournalEntry{
		meeting(daysAgo(30), 4),
		{Timestamp: daysAgo(1), Frontmatter: models.EntryFrontmatter{Context: models.ContextStandup}, Content: "long standup notes"},
	}

	s := Summarize(individual("biweekly"), entries, 3, scoringToday)

	require.NotNil(t, s.DaysSinceMeeting)
	assert.Equal(t, 30, *s.DaysSinceMeeting)
}

func TestSummarize_CalendarDays(t *testing.T) {
	late := time.Date(2026, 1, 19, 23, 30, 0, 0, time.Local)
	early := time.Date(2026, 1, 20, 0, 15, 0, 0, time.Local)

	s := Summarize(individual("biweekly"), []models.JournalEntry{meeting(late, 4)}, 3, early)

	require.NotNil(t, s.DaysSinceMeeting)
	assert.Equal(t, 1, *s.DaysSinceMeeting)
}

func TestSummarize_Color(t *testing.T) {
	r := individual("biweekly")
	r.Profile.Color = "#6495ed"
	assert.Equal(t, "#6495ed", Summarize(r, nil, 3, scoringToday).Color)

	r.Profile.Color = "not-a-color"
	assert.Equal(t, ColorFromName("Alex").Hex(), Summarize(r, nil, 3, scoringToday).Color)
}

func member(mood int, trend models.MoodTrend, overdue bool) models.ReportSummary {
	return models.ReportSummary{Active: true, RecentMood: mood, MoodTrend: trend, IsOverdue: overdue}
}

func TestComputeTeamMetrics_Healthy(t *testing.T) {
	tm := ComputeTeamMetrics([]models.ReportSummary{
		member(4, models.MoodStable, false),
		member(5, models.MoodStable, false),
		member(4, "", false),
	})

	require.NotNil(t, tm)
	assert.Equal(t, 3, tm.TeamSize)
	require.NotNil(t, tm.AverageMood)
	assert.InDelta(t, 13.0/3.0, *tm.AverageMood, 1e-9)
	assert.GreaterOrEqual(t, tm.HealthScore, 90)
	assert.Equal(t, 0, tm.OverdueCount)
}

func TestComputeTeamMetrics_Struggling(t *testing.T) {
	tm := ComputeTeamMetrics([]models.ReportSummary{
		member(2, models.MoodFalling, true),
		member(1, models.MoodFalling, true),
		member(3, models.MoodFalling, true),
	})

	require.NotNil(t, tm)
	assert.Less(t, tm.HealthScore, 50)
	assert.Equal(t, 20, tm.HealthScore)
	assert.Equal(t, 3, tm.OverdueCount)
	assert.Equal(t, models.MoodFalling, tm.MoodTrend)
}

func TestComputeTeamMetrics_TrendAndNoMood(t *testing.T) {
	tm := ComputeTeamMetrics([]models.ReportSummary{
		member(0, models.MoodRising, false),
		member(0, models.MoodFalling, false),
	})
	require.NotNil(t, tm)
	assert.Nil(t, tm.AverageMood)
	assert.Equal(t, models.MoodStable, tm.MoodTrend)
	// 100 - 10 (no mood) - 1/2*20 (falling)
	assert.Equal(t, 80, tm.HealthScore)

	tm = ComputeTeamMetrics([]models.ReportSummary{member(4, "", false)})
	assert.Empty(t, tm.MoodTrend)

	inactive := member(1, models.MoodFalling, true)
	inactive.Active = false
	tm = ComputeTeamMetrics([]models.ReportSummary{inactive, member(5, "", false)})
	assert.Equal(t, 2, tm.TeamSize)
	assert.Equal(t, 0, tm.OverdueCount)
	assert.Equal(t, 100, tm.HealthScore)

	assert.Nil(t, ComputeTeamMetrics(nil))
}

func TestComputeWorkspaceSummary(t *testing.T) {
	archived := member(1, "", true)
	archived.Active = false

	ws := ComputeWorkspaceSummary([]models.ReportSummary{
		member(4, "", true),
		member(2, "", false),
		member(0, "", true),
		archived,
	}, 2)

	assert.Equal(t, 4, ws.TeamSize)
	assert.Equal(t, 3, ws.ActiveCount)
	assert.Equal(t, 2, ws.OverdueCount)
	assert.Equal(t, 6, ws.TotalReportCount)
	require.NotNil(t, ws.AverageMood)
	assert.InDelta(t, 3.0, *ws.AverageMood, 1e-9)

	empty := ComputeWorkspaceSummary(nil, 0)
	assert.Nil(t, empty.AverageMood)
}

func TestSortByUrgency(t *testing.T) {
	type item struct {
		name  string
		score int
	}
	items := []item{{"a", 30}, {"b", 110}, {"c", 0}, {"d", 30}}

	SortByUrgency(items, func(i item) int { return i.score })

	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.name
	}
	assert.Equal(t, []string{"b", "a", "d", "c"}, names)
}
