package core

import (
	"time"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// Store is the persistence the engine relies on. It is satisfied by
// storage.Store.
type Store interface {
	ListReportDirs(workspacePath string) ([]string, error)
	ListTeamMemberDirs(managerDir string) ([]string, error)
	LoadReport(dir string) (*models.Report, error)
	LoadReportWithManager(dir, managerSlug string) (*models.Report, error)
	ArchiveReport(r *models.Report) error
	CreateReport(workspacePath, name string, profile models.ReportProfile) (*models.Report, error)

	LoadEntries(reportDir string) ([]models.JournalEntry, error)
	LoadEntry(path string) (models.JournalEntry, error)
	CreateEntry(reportDir string, mood int, context models.Context, notes string) (models.JournalEntry, error)
	CreateMeeting(reportDir string, date *time.Time) (models.JournalEntry, error)
	UpdateEntryMood(entry *models.JournalEntry, mood int) error
	DeleteEntry(entry models.JournalEntry) error
}
