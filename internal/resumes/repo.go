package resumes

import (
	"context"
	"encoding/json"
	"fmt"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
)

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, resumeID string) (Resume, error)
	List(ctx context.Context, limit, offset int) ([]Resume, error)
	Update(ctx context.Context, resume Resume) error
	Delete(ctx context.Context, resumeID string) error
	RecordExport(ctx context.Context, rec ExportRecord) error
	ListExports(ctx context.Context, resumeID string) ([]ExportRecord, error)
}

func encodeResume(r Resume) (data, design []byte, err error) {
	data, err = json.Marshal(r.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("encode resume data: %w", err)
	}
	design, err = json.Marshal(r.Design)
	if err != nil {
		return nil, nil, fmt.Errorf("encode design options: %w", err)
	}
	return data, design, nil
}

// decodeStored never fails: stored payloads that no longer validate are
// salvaged field by field so the resume can still be opened.
func decodeStored(resumeID string, dataRaw, designRaw []byte) (model.ResumeData, model.DesignOptions) {
	data, problems := model.RecoverResumeData(dataRaw)
	if len(problems) > 0 {
		telemetry.Warn("resume.recovered", map[string]any{
			"resumeId": resumeID,
			"problems": problems,
		})
	}
	return data, model.RecoverDesignOptions(designRaw)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
