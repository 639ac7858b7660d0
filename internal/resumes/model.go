package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// Resume is a stored resume with its presentation settings.
type Resume struct {
	ID        string
	Title     string
	Data      model.ResumeData
	Design    model.DesignOptions
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Export formats.
const (
	FormatPDF     = "pdf"
	FormatDOC     = "doc"
	FormatCapture = "capture"
)

// ExportRecord remembers one archived export.
type ExportRecord struct {
	ID         string
	ResumeID   string
	Format     string
	FileName   string
	StorageKey string
	SizeBytes  int64
	Digest     string
	CreatedAt  time.Time
}
