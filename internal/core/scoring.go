package core

import (
	"sort"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// MoodWindow is the number of most recent entries inspected for mood and
// trend.
const MoodWindow = 3

// Urgency weights.
const (
	urgencyNeverMet     = 100
	urgencyPerDayLate   = 10
	urgencyLateCap      = 80
	urgencyDueSoon      = 5
	urgencyDueSoonDays  = 2
	urgencyNoMood       = 10
	urgencyLowMood      = 20
	urgencyLowMoodLimit = 2
	urgencyFalling      = 15
)

// Team health penalties.
const (
	healthMax          = 100.0
	healthMoodBaseline = 4.0
	healthMoodWeight   = 10.0
	healthNoMood       = 10.0
	healthOverdue      = 40.0
	healthFalling      = 20.0
)

// Summarize derives a report's summary from its entries as of today.
// Entries must be in ascending timestamp order.
func Summarize(r *models.Report, entries []models.JournalEntry, overdueThreshold int, today time.Time) models.ReportSummary {
	s := models.ReportSummary{
		Name:             r.Profile.Name,
		Level:            r.Profile.Level,
		MeetingFrequency: r.Profile.MeetingFrequency,
		Active:           r.Profile.Active,
		IsManager:        r.IsManager(),
		Color:            ReportColor(r.Profile.Color, r.Profile.Name),
	}

	cadence := r.CadenceDays()
	s.DaysSinceMeeting = daysSinceLastMeeting(entries, today)
	s.IsOverdue = s.DaysSinceMeeting == nil || *s.DaysSinceMeeting > cadence+overdueThreshold

	samples := recentMoods(entries)
	if len(samples) > 0 {
		s.RecentMood = samples[0]
	}
	s.MoodTrend = trendOf(samples)
	s.UrgencyScore = urgency(s, cadence, overdueThreshold)
	return s
}

func daysSinceLastMeeting(entries []models.JournalEntry, today time.Time) *int {
	var last time.Time
	found := false
	for _, e := range entries {
		if !e.IsMeeting() {
			continue
		}
		if !found || e.Timestamp.After(last) {
			last = e.Timestamp
			found = true
		}
	}
	if !found {
		return nil
	}
	days := calendarDays(last, today)
	return &days
}

// calendarDays counts whole days between the dates of from and to,
// ignoring the time of day.
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// recentMoods returns the moods found in the last MoodWindow entries,
// newest first.
func recentMoods(entries []models.JournalEntry) []int {
	var moods []int
	for i := len(entries) - 1; i >= 0 && i >= len(entries)-MoodWindow; i-- {
		if m, ok := entries[i].Mood(); ok {
			moods = append(moods, m)
		}
	}
	return moods
}

// trendOf compares the newest sample to the oldest. Fewer than two samples
// yield no trend.
func trendOf(newestFirst []int) models.MoodTrend {
	if len(newestFirst) < 2 {
		return ""
	}
	newest, oldest := newestFirst[0], newestFirst[len(newestFirst)-1]
	switch {
	case newest > oldest:
		return models.MoodRising
	case newest < oldest:
		return models.MoodFalling
	default:
		return models.MoodStable
	}
}

func urgency(s models.ReportSummary, cadence, overdueThreshold int) int {
	score := 0
	if s.DaysSinceMeeting == nil {
		score += urgencyNeverMet
	} else {
		days := *s.DaysSinceMeeting
		if late := days - cadence - overdueThreshold; late > 0 {
			score += min(late*urgencyPerDayLate, urgencyLateCap)
		} else if cadence-days <= urgencyDueSoonDays {
			score += urgencyDueSoon
		}
	}

	if !s.HasMood() {
		score += urgencyNoMood
	} else if s.RecentMood <= urgencyLowMoodLimit {
		score += urgencyLowMood
	}

	if s.MoodTrend == models.MoodFalling {
		score += urgencyFalling
	}
	return score
}

// ComputeTeamMetrics aggregates the summaries of a manager's team. It
// returns nil for an empty team. Mood, trend and overdue figures only
// consider active members.
func ComputeTeamMetrics(members []models.ReportSummary) *models.TeamMetrics {
	if len(members) == 0 {
		return nil
	}

	tm := &models.TeamMetrics{TeamSize: len(members)}
	var moodSum, moodCount, rising, falling int
	for _, m := range members {
		if !m.Active {
			continue
		}
		if m.HasMood() {
			moodSum += m.RecentMood
			moodCount++
		}
		switch m.MoodTrend {
		case models.MoodRising:
			rising++
		case models.MoodFalling:
			falling++
		}
		if m.IsOverdue {
			tm.OverdueCount++
		}
	}

	if moodCount > 0 {
		avg := float64(moodSum) / float64(moodCount)
		tm.AverageMood = &avg
	}

	switch {
	case rising > 2*falling:
		tm.MoodTrend = models.MoodRising
	case falling > 2*rising:
		tm.MoodTrend = models.MoodFalling
	case rising > 0 || falling > 0:
		tm.MoodTrend = models.MoodStable
	}

	tm.HealthScore = healthScore(tm.AverageMood, tm.OverdueCount, falling, tm.TeamSize)
	return tm
}

func healthScore(avgMood *float64, overdue, falling, size int) int {
	score := healthMax
	if avgMood != nil {
		score -= max(0, healthMoodBaseline-*avgMood) * healthMoodWeight
	} else {
		score -= healthNoMood
	}
	score -= float64(overdue) / float64(size) * healthOverdue
	score -= float64(falling) / float64(size) * healthFalling
	return int(min(max(score, 0), healthMax))
}

// ComputeWorkspaceSummary rolls up the direct reports' summaries.
// secondLevel is the number of second-level reports, counted only in
// TotalReportCount.
func ComputeWorkspaceSummary(summaries []models.ReportSummary, secondLevel int) models.WorkspaceSummary {
	ws := models.WorkspaceSummary{
		TeamSize:         len(summaries),
		TotalReportCount: len(summaries) + secondLevel,
	}
	var moodSum, moodCount int
	for _, s := range summaries {
		if !s.Active {
			continue
		}
		ws.ActiveCount++
		if s.IsOverdue {
			ws.OverdueCount++
		}
		if s.HasMood() {
			moodSum += s.RecentMood
			moodCount++
		}
	}
	if moodCount > 0 {
		avg := float64(moodSum) / float64(moodCount)
		ws.AverageMood = &avg
	}
	return ws
}

// SortByUrgency orders items by descending urgency, keeping the original
// order of equal scores.
func SortByUrgency[T any](items []T, score func(T) int) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}
