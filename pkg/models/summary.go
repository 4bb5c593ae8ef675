package models

// MoodTrend is the direction of recent mood samples.
type MoodTrend string

const (
	MoodRising  MoodTrend = "rising"
	MoodStable  MoodTrend = "stable"
	MoodFalling MoodTrend = "falling"
)

// Arrow returns the glyph used in list views.
func (t MoodTrend) Arrow() string {
	switch t {
	case MoodRising:
		return "↑"
	case MoodStable:
		return "→"
	case MoodFalling:
		return "↓"
	default:
		return " "
	}
}

// ReportSummary is derived from a report and its entries. It is never
// persisted and is recomputed whenever the entries change.
type ReportSummary struct {
	Name             string
	Level            string
	MeetingFrequency string
	Active           bool
	IsManager        bool
	// DaysSinceMeeting is nil when the report has never had a meeting.
	DaysSinceMeeting *int
	IsOverdue        bool
	// RecentMood is 0 when no mood is available.
	RecentMood int
	// MoodTrend is empty when fewer than two samples exist.
	MoodTrend    MoodTrend
	Color        string
	UrgencyScore int
	Team         *TeamMetrics
}

// HasMood reports whether a recent mood is available.
func (s ReportSummary) HasMood() bool {
	return ValidMood(s.RecentMood)
}

// TeamMetrics aggregates a manager's second-level reports.
type TeamMetrics struct {
	TeamSize int
	// AverageMood is nil when no active member has mood data.
	AverageMood  *float64
	MoodTrend    MoodTrend
	OverdueCount int
	HealthScore  int
}

// WorkspaceSummary aggregates all direct reports.
type WorkspaceSummary struct {
	TeamSize     int
	ActiveCount  int
	OverdueCount int
	AverageMood  *float64
	// TotalReportCount includes second-level reports.
	TotalReportCount int
}
