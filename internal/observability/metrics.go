package observability

import (
	"fmt"
	"time"
)

// Metrics summarizes workspace activity recorded in the event log.
type Metrics struct {
	MeetingsHeld          int            `json:"meetings_held"`
	ObservationsRecorded  int            `json:"observations_recorded"`
	ObservationsByContext map[string]int `json:"observations_by_context"`
	EntriesEdited         int            `json:"entries_edited"`
	EntriesDiscarded      int            `json:"entries_discarded"`
	EntriesDeleted        int            `json:"entries_deleted"`
	MoodUpdates           int            `json:"mood_updates"`
	ReportsRecruited      int            `json:"reports_recruited"`
	ReportsArchived       int            `json:"reports_archived"`
	Failures              int            `json:"failures"`
	FailuresByAction      map[string]int `json:"failures_by_action"`
	// ActivityByReport counts meetings and observations per report slug.
	ActivityByReport map[string]int `json:"activity_by_report"`
	EventCount       int            `json:"event_count"`
	OldestEvent      *time.Time     `json:"oldest_event,omitempty"`
	NewestEvent      *time.Time     `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a MetricsCalculator reading from eventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate aggregates every event at or after since.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{
		ObservationsByContext: make(map[string]int),
		FailuresByAction:      make(map[string]int),
		ActivityByReport:      make(map[string]int),
		EventCount:            len(events),
	}

	for i, event := range events {
		t := event.Time
		if i == 0 {
			m.OldestEvent = &t
		}
		m.NewestEvent = &t

		report, _ := event.Data["report"].(string)
		switch event.Type {
		case EventMeetingCreated:
			m.MeetingsHeld++
			if report != "" {
				m.ActivityByReport[report]++
			}
		case EventEntryCreated:
			m.ObservationsRecorded++
			if ctx, ok := event.Data["context"].(string); ok {
				m.ObservationsByContext[ctx]++
			}
			if report != "" {
				m.ActivityByReport[report]++
			}
		case EventEntryEdited:
			m.EntriesEdited++
		case EventEntryDiscarded:
			m.EntriesDiscarded++
		case EventEntryDeleted:
			m.EntriesDeleted++
		case EventEntryMoodUpdated:
			m.MoodUpdates++
		case EventReportRecruited:
			m.ReportsRecruited++
		case EventReportArchived:
			m.ReportsArchived++
		case EventActionFailed:
			m.Failures++
			if action, ok := event.Data["action"].(string); ok {
				m.FailuresByAction[action]++
			}
		}
	}

	return m, nil
}
