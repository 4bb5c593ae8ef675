package core

import (
	"strings"

	"github.com/valter-silva-au/vibe-manager/pkg/models"
)

// FormField identifies a field of the recruit form.
type FormField int

const (
	FieldReportType FormField = iota
	FieldName
	FieldTitle
	FieldLevel
	FieldFrequency
	fieldCount
)

const (
	maxLevelIndex     = 4
	defaultLevelIndex = 2
	defaultFreqIndex  = 1
)

// NewReportForm is the state of the recruit form. Level and frequency are
// indices into P1..P5 (M1..M5) and models.Cadences.
type NewReportForm struct {
	ReportType     models.ReportType
	Name           string
	Title          string
	LevelIndex     int
	FrequencyIndex int
	Field          FormField
}

// NewNewReportForm returns a form preset to an individual P3 met at the
// workspace default cadence. Unknown cadences start on biweekly.
func NewNewReportForm(defaultCadence string) *NewReportForm {
	freq := defaultFreqIndex
	for i, c := range models.Cadences {
		if strings.EqualFold(c, defaultCadence) {
			freq = i
			break
		}
	}
	return &NewReportForm{
		ReportType:     models.ReportTypeIndividual,
		LevelIndex:     defaultLevelIndex,
		FrequencyIndex: freq,
		Field:          FieldReportType,
	}
}

// Level returns the level string, e.g. "P3" or "M2".
func (f *NewReportForm) Level() string {
	return models.LevelString(f.ReportType, f.LevelIndex+1)
}

// Frequency returns the selected cadence.
func (f *NewReportForm) Frequency() string {
	return models.Cadences[f.FrequencyIndex]
}

// Valid reports whether name and title are both filled in.
func (f *NewReportForm) Valid() bool {
	return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Title) != ""
}

// InTextField reports whether the focused field accepts free text.
func (f *NewReportForm) InTextField() bool {
	return f.Field == FieldName || f.Field == FieldTitle
}

func (f *NewReportForm) NextField() {
	f.Field = (f.Field + 1) % fieldCount
}

func (f *NewReportForm) PrevField() {
	f.Field = (f.Field + fieldCount - 1) % fieldCount
}

// Left toggles the report type or decreases the focused selector.
func (f *NewReportForm) Left() {
	switch f.Field {
	case FieldReportType:
		f.toggleType()
	case FieldLevel:
		f.LevelIndex = max(f.LevelIndex-1, 0)
	case FieldFrequency:
		f.FrequencyIndex = max(f.FrequencyIndex-1, 0)
	}
}

// Right toggles the report type or increases the focused selector.
func (f *NewReportForm) Right() {
	switch f.Field {
	case FieldReportType:
		f.toggleType()
	case FieldLevel:
		f.LevelIndex = min(f.LevelIndex+1, maxLevelIndex)
	case FieldFrequency:
		f.FrequencyIndex = min(f.FrequencyIndex+1, len(models.Cadences)-1)
	}
}

func (f *NewReportForm) toggleType() {
	if f.ReportType.IsManager() {
		f.ReportType = models.ReportTypeIndividual
	} else {
		f.ReportType = models.ReportTypeManager
	}
}

// Input appends r to the focused text field.
func (f *NewReportForm) Input(r rune) {
	switch f.Field {
	case FieldName:
		f.Name += string(r)
	case FieldTitle:
		f.Title += string(r)
	}
}

// Backspace removes the last rune of the focused text field.
func (f *NewReportForm) Backspace() {
	switch f.Field {
	case FieldName:
		f.Name = dropLastRune(f.Name)
	case FieldTitle:
		f.Title = dropLastRune(f.Title)
	}
}

// Profile builds the profile recorded for a new report.
func (f *NewReportForm) Profile(startDate string) models.ReportProfile {
	p := models.ReportProfile{
		Name:             strings.TrimSpace(f.Name),
		Title:            strings.TrimSpace(f.Title),
		StartDate:        startDate,
		Level:            f.Level(),
		MeetingFrequency: f.Frequency(),
		Active:           true,
		ReportType:       f.ReportType,
	}
	if f.ReportType.IsManager() {
		p.ManagerInfo = &models.ManagerInfo{}
	}
	return p
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
