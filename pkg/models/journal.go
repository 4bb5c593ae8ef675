package models

import (
	"strings"
	"time"
)

// Context describes the kind of interaction a journal entry records.
type Context string

const (
	ContextMeeting Context = "meeting"
	ContextStandup Context = "standup"
	ContextSlack   Context = "slack"
	ContextOther   Context = "other"
)

// Contexts lists every context in cycling order.
var Contexts = []Context{ContextMeeting, ContextStandup, ContextSlack, ContextOther}

// Valid reports whether c is one of the known contexts.
func (c Context) Valid() bool {
	for _, known := range Contexts {
		if c == known {
			return true
		}
	}
	return false
}

// Next cycles to the following context, wrapping around.
func (c Context) Next() Context {
	for i, known := range Contexts {
		if c == known {
			return Contexts[(i+1)%len(Contexts)]
		}
	}
	return ContextMeeting
}

// Prev cycles to the preceding context, wrapping around.
func (c Context) Prev() Context {
	for i, known := range Contexts {
		if c == known {
			return Contexts[(i-1+len(Contexts))%len(Contexts)]
		}
	}
	return ContextMeeting
}

// Label returns the display name of the context.
func (c Context) Label() string {
	switch c {
	case ContextMeeting:
		return "Meeting"
	case ContextStandup:
		return "Standup"
	case ContextSlack:
		return "Slack"
	case ContextOther:
		return "Other"
	default:
		return ""
	}
}

// Short returns a compact label for list views.
func (c Context) Short() string {
	switch c {
	case ContextMeeting:
		return "1:1"
	case ContextStandup:
		return "Stnd"
	case ContextSlack:
		return "Slck"
	case ContextOther:
		return "Othr"
	default:
		return ""
	}
}

// MinMood and MaxMood bound a valid mood rating.
const (
	MinMood = 1
	MaxMood = 5
)

// ValidMood reports whether mood is a rating in 1..5.
func ValidMood(mood int) bool {
	return mood >= MinMood && mood <= MaxMood
}

// EntryFrontmatter is the YAML header stored at the top of an entry file.
// A zero Mood and an empty Context mean "not set".
type EntryFrontmatter struct {
	Mood    int     `yaml:"mood,omitempty"`
	Context Context `yaml:"context,omitempty"`
}

// JournalEntry is a single dated observation: a 1-on-1 meeting note or a
// lightweight mood observation. Timestamp is immutable once created and is
// unique within the owning report.
type JournalEntry struct {
	Timestamp   time.Time
	Path        string
	Frontmatter EntryFrontmatter
	Content     string
}

// Mood returns the validated mood rating. Stored values outside 1..5 are
// reported as absent.
func (e JournalEntry) Mood() (int, bool) {
	if ValidMood(e.Frontmatter.Mood) {
		return e.Frontmatter.Mood, true
	}
	return 0, false
}

// Context returns the explicit context, or Meeting for context-less entries
// with content. The second result is false when neither applies.
func (e JournalEntry) Context() (Context, bool) {
	if e.Frontmatter.Context != "" {
		return e.Frontmatter.Context, true
	}
	if strings.TrimSpace(e.Content) != "" {
		return ContextMeeting, true
	}
	return "", false
}

// IsMeeting reports whether the entry counts toward the meeting schedule.
// Explicit non-meeting contexts never do, regardless of content.
func (e JournalEntry) IsMeeting() bool {
	switch e.Frontmatter.Context {
	case ContextMeeting:
		return true
	case "":
		return strings.TrimSpace(e.Content) != ""
	default:
		return false
	}
}

// Date returns the calendar date of the entry.
func (e JournalEntry) Date() time.Time {
	y, m, d := e.Timestamp.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Timestamp.Location())
}

// HasTime reports whether the timestamp carries a time of day (not midnight).
func (e JournalEntry) HasTime() bool {
	h, m, s := e.Timestamp.Clock()
	return h != 0 || m != 0 || s != 0 || e.Timestamp.Nanosecond() != 0
}

// Entry filename layouts. New entries always use EntryTimestampLayout.
const (
	EntryTimestampLayout = "2006-01-02T150405"
	EntryDateLayout      = "2006-01-02"
	entryExt             = ".md"
)

// entryLayouts are tried in priority order when parsing a filename.
var entryLayouts = []string{EntryTimestampLayout, EntryDateLayout}

// ParseEntryTimestamp extracts the timestamp from an entry filename such as
// "2026-01-20T143000.md" or the legacy "2026-01-15.md" (midnight). Times are
// interpreted in the local zone.
func ParseEntryTimestamp(filename string) (time.Time, bool) {
	stem, ok := strings.CutSuffix(filename, entryExt)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range entryLayouts {
		if ts, err := time.ParseInLocation(layout, stem, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// FormatEntryFilename renders the full-timestamp filename for ts.
func FormatEntryFilename(ts time.Time) string {
	return ts.Format(EntryTimestampLayout) + entryExt
}
