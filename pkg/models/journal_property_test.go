package models

import (
	"testing"

	"pgregory.net/rapid"
)

// Feature: vibe-manager, Property 1: Explicit non-meeting contexts are never meetings
func TestIsMeetingExplicitContextProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := rapid.SampledFrom([]Context{ContextStandup, ContextSlack, ContextOther}).Draw(t, "context")
		content := rapid.String().Draw(t, "content")
		mood := rapid.IntRange(-2, 8).Draw(t, "mood")

		e := JournalEntry{Frontmatter: EntryFrontmatter{Mood: mood, Context: ctx}, Content: content}
		if e.IsMeeting() {
			t.Fatalf("entry with context %q and %d bytes of content classified as meeting", ctx, len(content))
		}
	})
}

// Feature: vibe-manager, Property 2: Mood is present only inside 1..5
func TestMoodRangeProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stored := rapid.IntRange(-100, 100).Draw(t, "stored")
		e := JournalEntry{Frontmatter: EntryFrontmatter{Mood: stored}}

		m, ok := e.Mood()
		if ok != (stored >= 1 && stored <= 5) {
			t.Fatalf("Mood() ok = %v for stored %d", ok, stored)
		}
		if ok && m != stored {
			t.Fatalf("Mood() = %d, want %d", m, stored)
		}
	})
}
