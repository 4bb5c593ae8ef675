package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// ErrDuplicateEntry is returned when an entry already exists at the
// requested timestamp.
var ErrDuplicateEntry = errors.New("entry already exists")

const journalDir = "journal"

// LoadEntries reads every entry of a report. Legacy entries live directly in
// the report directory and newer ones under journal/; both are merged and
// returned oldest first. Unreadable entries are skipped.
func (s *fileStore) LoadEntries(reportDir string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	for _, dir := range []string{reportDir, filepath.Join(reportDir, journalDir)} {
		loaded, err := loadEntriesFromDir(dir)
		if err != nil {
			return nil, fmt.Errorf("loading entries from %s: %w", dir, err)
		}
		entries = append(entries, loaded...)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func loadEntriesFromDir(dir string) ([]models.JournalEntry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []models.JournalEntry
	for _, item := range items {
		name := item.Name()
		if item.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".md") {
			continue
		}
		if _, ok := models.ParseEntryTimestamp(name); !ok {
			continue
		}
		entry, err := readEntry(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadEntry reads a single entry file.
func (s *fileStore) LoadEntry(path string) (models.JournalEntry, error) {
	return readEntry(path)
}

func readEntry(path string) (models.JournalEntry, error) {
	ts, ok := models.ParseEntryTimestamp(filepath.Base(path))
	if !ok {
		return models.JournalEntry{}, fmt.Errorf("reading entry %s: filename is not a timestamp", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("reading entry %s: %w", path, err)
	}

	header, body, _ := SplitFrontMatter(string(data))
	var fm models.EntryFrontmatter
	if err := decodeFrontMatter(header, &fm); err != nil {
		return models.JournalEntry{}, fmt.Errorf("reading entry %s: %w", path, err)
	}
	if fm.Context != "" && !fm.Context.Valid() {
		return models.JournalEntry{}, fmt.Errorf("reading entry %s: %w: unknown context %q", path, ErrMalformedFrontMatter, fm.Context)
	}

	return models.JournalEntry{
		Timestamp:   ts,
		Path:        path,
		Frontmatter: fm,
		Content:     body,
	}, nil
}

// SaveEntry writes the entry's frontmatter and content to its path.
func (s *fileStore) SaveEntry(entry models.JournalEntry) error {
	data, err := RenderFrontMatter(entry.Frontmatter, entry.Content)
	if err != nil {
		return fmt.Errorf("saving entry %s: %w", entry.Path, err)
	}
	if err := os.WriteFile(entry.Path, data, 0o600); err != nil {
		return fmt.Errorf("saving entry %s: %w", entry.Path, err)
	}
	return nil
}

// CreateEntry records a mood observation (or any entry) at the current time
// under journal/.
func (s *fileStore) CreateEntry(reportDir string, mood int, context models.Context, notes string) (models.JournalEntry, error) {
	ts := s.now().Truncate(time.Second)
	path, err := s.newEntryPath(reportDir, ts)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("creating entry: %w", err)
	}

	entry := models.JournalEntry{
		Timestamp:   ts,
		Path:        path,
		Frontmatter: models.EntryFrontmatter{Mood: mood, Context: context},
		Content:     notes,
	}
	if err := s.SaveEntry(entry); err != nil {
		return models.JournalEntry{}, fmt.Errorf("creating entry: %w", err)
	}
	return entry, nil
}

// CreateMeeting creates a 1-on-1 entry with the meeting template. A nil date
// uses the current time; an explicit date is recorded at midnight.
func (s *fileStore) CreateMeeting(reportDir string, date *time.Time) (models.JournalEntry, error) {
	var ts time.Time
	if date != nil {
		y, m, d := date.Date()
		ts = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		legacy := ts.Format(models.EntryDateLayout) + ".md"
		for _, dir := range []string{reportDir, filepath.Join(reportDir, journalDir)} {
			if fileExists(filepath.Join(dir, legacy)) {
				return models.JournalEntry{}, fmt.Errorf("creating meeting for %s: %w", legacy, ErrDuplicateEntry)
			}
		}
	} else {
		ts = s.now().Truncate(time.Second)
	}

	path, err := s.newEntryPath(reportDir, ts)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("creating meeting: %w", err)
	}

	entry := models.JournalEntry{
		Timestamp:   ts,
		Path:        path,
		Frontmatter: models.EntryFrontmatter{Context: models.ContextMeeting},
		Content:     meetingTemplate(ts),
	}
	if err := s.SaveEntry(entry); err != nil {
		return models.JournalEntry{}, fmt.Errorf("creating meeting: %w", err)
	}
	return entry, nil
}

func meetingTemplate(ts time.Time) string {
	return fmt.Sprintf("# 1-on-1 - %s\n\n## Discussion\n\n## Notes\n\n## Action Items\n- [ ] \n",
		ts.Format("January 02, 2006"))
}

// newEntryPath ensures journal/ exists and returns a free path for ts.
func (s *fileStore) newEntryPath(reportDir string, ts time.Time) (string, error) {
	dir := filepath.Join(reportDir, journalDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating journal directory: %w", err)
	}
	path := filepath.Join(dir, models.FormatEntryFilename(ts))
	if fileExists(path) {
		return "", fmt.Errorf("%s: %w", ts.Format(time.DateTime), ErrDuplicateEntry)
	}
	return path, nil
}

// UpdateEntryMood sets and persists the entry's mood.
func (s *fileStore) UpdateEntryMood(entry *models.JournalEntry, mood int) error {
	if !models.ValidMood(mood) {
		return fmt.Errorf("updating mood: mood must be between %d and %d, got %d", models.MinMood, models.MaxMood, mood)
	}
	entry.Frontmatter.Mood = mood
	return s.SaveEntry(*entry)
}

// DeleteEntry removes the entry file from disk.
func (s *fileStore) DeleteEntry(entry models.JournalEntry) error {
	if err := os.Remove(entry.Path); err != nil {
		return fmt.Errorf("deleting entry %s: %w", entry.Path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
