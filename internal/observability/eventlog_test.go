package observability

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestLog(t *testing.T) EventLog {
	t.Helper()
	log, err := NewJSONLEventLog(filepath.Join(t.TempDir(), EventsFile))
	if err != nil {
		t.Fatalf("creating event log: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log
}

func writeEvents(t *testing.T, log EventLog, events ...Event) {
	t.Helper()
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}
}

func TestEventLog_WriteAndRead(t *testing.T) {
	log := newTestLog(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	writeEvents(t, log,
		Event{Time: now, Level: LevelInfo, Type: EventMeetingCreated, Message: "meeting created: alex", Data: map[string]any{"report": "alex"}},
		Event{Time: now.Add(time.Second), Level: LevelError, Type: EventActionFailed, Message: "action failed", Data: map[string]any{"action": "deleting entry"}},
	)

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
	if result[0].Type != EventMeetingCreated {
		t.Errorf("expected type %s, got %s", EventMeetingCreated, result[0].Type)
	}
	if result[0].Data["report"] != "alex" {
		t.Errorf("expected report alex, got %v", result[0].Data["report"])
	}
	if !result[0].Time.Equal(now) {
		t.Errorf("expected time %v, got %v", now, result[0].Time)
	}
	if result[1].Level != LevelError {
		t.Errorf("expected level ERROR, got %s", result[1].Level)
	}
}

func TestEventLog_Filters(t *testing.T) {
	log := newTestLog(t)

	base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	writeEvents(t, log,
		Event{Time: base, Level: LevelInfo, Type: EventEntryCreated, Message: "first"},
		Event{Time: base.Add(time.Hour), Level: LevelWarn, Type: EventReportSkipped, Message: "second"},
		Event{Time: base.Add(2 * time.Hour), Level: LevelInfo, Type: EventEntryCreated, Message: "third"},
		Event{Time: base.Add(3 * time.Hour), Level: LevelError, Type: EventActionFailed, Message: "fourth"},
	)

	since := base.Add(30 * time.Minute)
	until := base.Add(2*time.Hour + 30*time.Minute)
	tests := []struct {
		name   string
		filter EventFilter
		want   []string
	}{
		{name: "type", filter: EventFilter{Type: EventEntryCreated}, want: []string{"first", "third"}},
		{name: "level", filter: EventFilter{Level: LevelWarn}, want: []string{"second"}},
		{name: "time range", filter: EventFilter{Since: &since, Until: &until}, want: []string{"second", "third"}},
		{name: "combined", filter: EventFilter{Since: &since, Type: EventEntryCreated}, want: []string{"third"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := log.Read(tt.filter)
			if err != nil {
				t.Fatalf("reading events: %v", err)
			}
			if len(result) != len(tt.want) {
				t.Fatalf("expected %d events, got %d", len(tt.want), len(result))
			}
			for i, msg := range tt.want {
				if result[i].Message != msg {
					t.Errorf("event %d: expected %q, got %q", i, msg, result[i].Message)
				}
			}
		})
	}
}

func TestEventLog_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), EventsFile)
	content := `{"time":"2026-01-15T10:00:00Z","level":"INFO","type":"entry.created","msg":"ok"}
not json

{"time":"2026-01-15T11:00:00Z","level":"INFO","type":"entry.deleted","msg":"ok"}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing log: %v", err)
	}
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("opening event log: %v", err)
	}
	defer log.Close()

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result))
	}
}

func TestEventLog_EmptyLog(t *testing.T) {
	log := newTestLog(t)

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading empty log: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected 0 events from empty log, got %d", len(result))
	}
}

func TestEventLog_ConcurrentWrites(t *testing.T) {
	log := newTestLog(t)

	const goroutines = 10
	const eventsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < eventsPerGoroutine; i++ {
				event := Event{
					Time:    time.Now().UTC(),
					Level:   LevelInfo,
					Type:    EventEntryCreated,
					Message: "concurrent event",
					Data:    map[string]any{"goroutine": id, "index": i},
				}
				if err := log.Write(event); err != nil {
					t.Errorf("concurrent write error: %v", err)
				}
			}
		}(g)
	}
	wg.Wait()

	result, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("reading events after concurrent writes: %v", err)
	}
	if want := goroutines * eventsPerGoroutine; len(result) != want {
		t.Errorf("expected %d events, got %d", want, len(result))
	}
}

func TestOpenWorkspaceEventLog(t *testing.T) {
	dir := t.TempDir()
	log, err := OpenWorkspaceEventLog(dir)
	if err != nil {
		t.Fatalf("opening workspace event log: %v", err)
	}
	defer log.Close()

	info, err := os.Stat(filepath.Join(dir, EventsFile))
	if err != nil {
		t.Fatalf("event log not created: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}
}

func TestLevelAndMessageFor(t *testing.T) {
	if got := LevelFor(EventActionFailed); got != LevelError {
		t.Errorf("LevelFor(action.failed) = %s, want ERROR", got)
	}
	if got := LevelFor(EventReportSkipped); got != LevelWarn {
		t.Errorf("LevelFor(report.skipped) = %s, want WARN", got)
	}
	if got := LevelFor(EventMeetingCreated); got != LevelInfo {
		t.Errorf("LevelFor(meeting.created) = %s, want INFO", got)
	}

	if got := MessageFor(EventEntryMoodUpdated, map[string]any{"report": "alex"}); got != "entry mood updated: alex" {
		t.Errorf("MessageFor = %q", got)
	}
	if got := MessageFor(EventActionFailed, map[string]any{"action": "creating meeting"}); got != "action failed: creating meeting" {
		t.Errorf("MessageFor = %q", got)
	}
	if got := MessageFor(EventWorkspaceLoaded, nil); got != "workspace loaded" {
		t.Errorf("MessageFor = %q", got)
	}
}
