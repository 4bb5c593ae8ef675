package storage

import (
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// Store is the file-backed persistence layer for reports and their journal
// entries. All operations are synchronous.
type Store interface {
	ListReportDirs(workspacePath string) ([]string, error)
	ListTeamMemberDirs(managerDir string) ([]string, error)
	HasTeamDir(dir string) bool

	LoadReport(dir string) (*models.Report, error)
	LoadReportWithManager(dir, managerSlug string) (*models.Report, error)
	SaveReport(r *models.Report) error
	ArchiveReport(r *models.Report) error
	CreateReport(workspacePath, name string, profile models.ReportProfile) (*models.Report, error)

	LoadEntries(reportDir string) ([]models.JournalEntry, error)
	LoadEntry(path string) (models.JournalEntry, error)
	SaveEntry(entry models.JournalEntry) error
	CreateEntry(reportDir string, mood int, context models.Context, notes string) (models.JournalEntry, error)
	CreateMeeting(reportDir string, date *time.Time) (models.JournalEntry, error)
	UpdateEntryMood(entry *models.JournalEntry, mood int) error
	DeleteEntry(entry models.JournalEntry) error
}

type fileStore struct {
	now func() time.Time
}

// Option configures a Store.
type Option func(*fileStore)

// WithClock overrides the clock used to timestamp new entries.
func WithClock(now func() time.Time) Option {
	return func(s *fileStore) {
		s.now = now
	}
}

// NewStore creates a Store backed by the local filesystem.
func NewStore(opts ...Option) Store {
	s := &fileStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
