package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// EventsFile is the name of the event log inside a workspace.
const EventsFile = ".vibe-events.jsonl"

// Event levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Event types written by the engine and the app.
const (
	EventWorkspaceLoaded  = "workspace.loaded"
	EventReportSkipped    = "report.skipped"
	EventReportRecruited  = "report.recruited"
	EventReportArchived   = "report.archived"
	EventMeetingCreated   = "meeting.created"
	EventEntryCreated     = "entry.created"
	EventEntryEdited      = "entry.edited"
	EventEntryDiscarded   = "entry.discarded"
	EventEntryDeleted     = "entry.deleted"
	EventEntryMoodUpdated = "entry.mood_updated"
	EventActionFailed     = "action.failed"
	EventConfigFallback   = "config.fallback"
)

// Event represents a single observable event in a workspace.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// LevelFor returns the level an event type is logged at.
func LevelFor(eventType string) string {
	switch eventType {
	case EventActionFailed:
		return LevelError
	case EventReportSkipped, EventConfigFallback:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// MessageFor renders a short human readable message for an event.
func MessageFor(eventType string, data map[string]any) string {
	msg := strings.ReplaceAll(eventType, ".", " ")
	msg = strings.ReplaceAll(msg, "_", " ")
	if report, ok := data["report"].(string); ok && report != "" {
		msg += ": " + report
	}
	if action, ok := data["action"].(string); ok && action != "" {
		msg += ": " + action
	}
	if key, ok := data["key"].(string); ok && key != "" {
		msg += ": " + key
	}
	return msg
}

// EventFilter specifies criteria for reading events.
type EventFilter struct {
	Since *time.Time
	Until *time.Time
	Type  string
	Level string
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog opens (or creates) the JSONL event log at path.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{path: path, file: f}, nil
}

// OpenWorkspaceEventLog opens the event log of the workspace at basePath.
func OpenWorkspaceEventLog(basePath string) (EventLog, error) {
	return NewJSONLEventLog(filepath.Join(basePath, EventsFile))
}

// Write appends one JSON-encoded event line.
func (l *jsonlEventLog) Write(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log and returns the events matching filter, in file order.
// Malformed lines are skipped.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}
		if filter.matches(event) {
			events = append(events, event)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}
	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

func (f EventFilter) matches(event Event) bool {
	if f.Since != nil && event.Time.Before(*f.Since) {
		return false
	}
	if f.Until != nil && event.Time.After(*f.Until) {
		return false
	}
	if f.Type != "" && event.Type != f.Type {
		return false
	}
	if f.Level != "" && event.Level != f.Level {
		return false
	}
	return true
}
