package core

import "github.com/valter-silva-au/vibe-manager/pkg/models"

// MeetingIndices returns the positions of meeting entries within entries,
// oldest first.
func MeetingIndices(entries []models.JournalEntry) []int {
	var idx []int
	for i, e := range entries {
		if e.IsMeeting() {
			idx = append(idx, i)
		}
	}
	return idx
}

// DisplayToEntryIndex maps a newest-first display index over the meetings
// to the entry's position in entries. The second result is false when
// display is out of range.
func DisplayToEntryIndex(entries []models.JournalEntry, display int) (int, bool) {
	meetings := MeetingIndices(entries)
	pos := len(meetings) - 1 - display
	if display < 0 || pos < 0 {
		return 0, false
	}
	return meetings[pos], true
}

// EntryToDisplayIndex is the inverse of DisplayToEntryIndex.
func EntryToDisplayIndex(entries []models.JournalEntry, entry int) (int, bool) {
	meetings := MeetingIndices(entries)
	for pos, i := range meetings {
		if i == entry {
			return len(meetings) - 1 - pos, true
		}
	}
	return 0, false
}

// Meetings returns the meeting entries newest first, as displayed.
func Meetings(entries []models.JournalEntry) []models.JournalEntry {
	idx := MeetingIndices(entries)
	out := make([]models.JournalEntry, 0, len(idx))
	for i := len(idx) - 1; i >= 0; i-- {
		out = append(out, entries[idx[i]])
	}
	return out
}

// Observations returns the non-meeting entries newest first.
func Observations(entries []models.JournalEntry) []models.JournalEntry {
	var out []models.JournalEntry
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].IsMeeting() {
			out = append(out, entries[i])
		}
	}
	return out
}

func wrapNext(i, n int) int {
	return (i + 1) % n
}

func wrapPrev(i, n int) int {
	if i <= 0 {
		return n - 1
	}
	return i - 1
}
