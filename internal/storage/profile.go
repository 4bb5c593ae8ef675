package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

var (
	// ErrProfileNotFound is returned when a report directory has no
	// _profile.md.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrReportExists is returned when creating a report whose directory is
	// already taken.
	ErrReportExists = errors.New("report already exists")
)

// ProfileFile is the name of the profile document inside a report directory.
const ProfileFile = "_profile.md"

// profileHeader accepts the legacy "cadence" key alongside
// meeting_frequency.
type profileHeader struct {
	models.ReportProfile `yaml:",inline"`
	Cadence              string `yaml:"cadence,omitempty"`
}

// LoadReport reads a direct report from dir.
func (s *fileStore) LoadReport(dir string) (*models.Report, error) {
	return s.LoadReportWithManager(dir, "")
}

// LoadReportWithManager reads a report from dir, recording managerSlug for
// second-level reports. The slug is the directory name.
func (s *fileStore) LoadReportWithManager(dir, managerSlug string) (*models.Report, error) {
	path := filepath.Join(dir, ProfileFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("loading report %s: %w", dir, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("loading report %s: %w", dir, err)
	}

	header, body, ok := SplitFrontMatter(string(data))
	if !ok {
		return nil, fmt.Errorf("loading report %s: %w", dir, ErrMissingFrontMatter)
	}

	var h profileHeader
	h.Active = true
	if err := decodeFrontMatter(header, &h); err != nil {
		return nil, fmt.Errorf("loading report %s: %w", dir, err)
	}
	if strings.TrimSpace(h.Name) == "" {
		return nil, fmt.Errorf("loading report %s: %w: name is required", dir, ErrMalformedFrontMatter)
	}

	profile := h.ReportProfile
	if profile.MeetingFrequency == "" {
		profile.MeetingFrequency = h.Cadence
	}
	if profile.MeetingFrequency == "" {
		profile.MeetingFrequency = models.CadenceBiweekly
	}
	if profile.ReportType == "" {
		profile.ReportType = models.ReportTypeIndividual
	}

	return &models.Report{
		Slug:         filepath.Base(dir),
		Path:         dir,
		Profile:      profile,
		NotesContent: body,
		ManagerSlug:  managerSlug,
	}, nil
}

// SaveReport writes the profile frontmatter and notes back to _profile.md.
func (s *fileStore) SaveReport(r *models.Report) error {
	data, err := RenderFrontMatter(r.Profile, r.NotesContent)
	if err != nil {
		return fmt.Errorf("saving report %s: %w", r.Slug, err)
	}
	if err := os.WriteFile(filepath.Join(r.Path, ProfileFile), data, 0o600); err != nil {
		return fmt.Errorf("saving report %s: %w", r.Slug, err)
	}
	return nil
}

// ArchiveReport marks the report inactive and persists it.
func (s *fileStore) ArchiveReport(r *models.Report) error {
	r.Profile.Active = false
	if err := s.SaveReport(r); err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}
	return nil
}

// CreateReport creates a new report directory named after the slug of name,
// with a journal/ subdirectory and a profile seeded from profile.
func (s *fileStore) CreateReport(workspacePath, name string, profile models.ReportProfile) (*models.Report, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("creating report %q: name has no usable characters", name)
	}
	dir := filepath.Join(workspacePath, slug)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("creating report %s: %w", slug, ErrReportExists)
	}
	if err := os.MkdirAll(filepath.Join(dir, journalDir), 0o750); err != nil {
		return nil, fmt.Errorf("creating report %s: %w", slug, err)
	}

	profile.Name = name
	if profile.MeetingFrequency == "" {
		profile.MeetingFrequency = models.CadenceBiweekly
	}
	if profile.ReportType == "" {
		profile.ReportType = models.ReportTypeIndividual
	}
	r := &models.Report{
		Slug:         slug,
		Path:         dir,
		Profile:      profile,
		NotesContent: fmt.Sprintf("# %s\n\n## Background\n\n## Working Style\n\n## Notes\n", name),
	}
	if err := s.SaveReport(r); err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}
	return r, nil
}
