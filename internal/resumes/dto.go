package resumes

import (
	"encoding/json"
	"fmt"
	"time"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/score"
)

type resumeRequest struct {
	Title  string               `json:"title"`
	Data   json.RawMessage      `json:"data"`
	Design *model.DesignOptions `json:"design"`
	Color  string               `json:"color"`
}

func (r resumeRequest) draft() (Draft, error) {
	data, err := decodePayload(r.Data)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Title: r.Title, Data: data, Design: designOrDefault(r.Design), Color: r.Color}, nil
}

type renderRequest struct {
	Data     json.RawMessage      `json:"data"`
	Design   *model.DesignOptions `json:"design"`
	Color    string               `json:"color"`
	Page     int                  `json:"page"`
	Mode     string               `json:"mode"`
	FileName string               `json:"fileName"`
}

func decodePayload(raw json.RawMessage) (model.ResumeData, error) {
	if len(raw) == 0 {
		return model.ResumeData{}, fmt.Errorf("%w: data is required", ErrInvalidInput)
	}
	data, err := model.DecodeResumeData(raw)
	if err != nil {
		return model.ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return data, nil
}

func designOrDefault(d *model.DesignOptions) model.DesignOptions {
	if d == nil {
		return model.DefaultDesignOptions()
	}
	return d.Normalize()
}

func parseMode(raw string) render.PreviewMode {
	if render.PreviewMode(raw) == render.ContinuousMode {
		return render.ContinuousMode
	}
	return render.PagedMode
}

type resumeResponse struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Data      model.ResumeData    `json:"data"`
	Design    model.DesignOptions `json:"design"`
	Color     string              `json:"color"`
	Score     int                 `json:"score"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func toResponse(r Resume) resumeResponse {
	return resumeResponse{
		ID:        r.ID,
		Title:     r.Title,
		Data:      r.Data,
		Design:    r.Design,
		Color:     r.Color,
		Score:     score.Score(r.Data),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type resumeSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toSummary(r Resume) resumeSummary {
	return resumeSummary{
		ID:         r.ID,
		Title:      r.Title,
		TemplateID: r.Data.TemplateID,
		Name:       r.Data.Contact.FullName(),
		Score:      score.Score(r.Data),
		UpdatedAt:  r.UpdatedAt,
	}
}

type previewResponse struct {
	Template         model.Template       `json:"template"`
	TemplateFallback bool                 `json:"templateFallback"`
	ActiveSections   []contract.SectionID `json:"activeSections"`
	TotalPages       int                  `json:"totalPages"`
	CurrentPage      int                  `json:"currentPage"`
	Mode             render.PreviewMode   `json:"mode"`
	Sections         []string             `json:"sections"`
	HTML             string               `json:"html"`
	CSS              string               `json:"css"`
	Score            int                  `json:"score"`
}

func toPreviewResponse(p *render.Preview, data model.ResumeData) previewResponse {
	return previewResponse{
		Template:         p.Template,
		TemplateFallback: p.TemplateFallback,
		ActiveSections:   p.ActiveSections,
		TotalPages:       p.TotalPages,
		CurrentPage:      p.CurrentPage,
		Mode:             p.Mode,
		Sections:         p.Root.SectionOrder(),
		HTML:             p.Root.HTML(),
		CSS:              p.Styles.CSS(),
		Score:            score.Score(data),
	}
}

type exportResponse struct {
	ID         string    `json:"id"`
	Format     string    `json:"format"`
	FileName   string    `json:"fileName"`
	StorageKey string    `json:"storageKey"`
	SizeBytes  int64     `json:"sizeBytes"`
	Digest     string    `json:"sha256"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toExportResponse(rec ExportRecord) exportResponse {
	return exportResponse{
		ID:         rec.ID,
		Format:     rec.Format,
		FileName:   rec.FileName,
		StorageKey: rec.StorageKey,
		SizeBytes:  rec.SizeBytes,
		Digest:     rec.Digest,
		CreatedAt:  rec.CreatedAt,
	}
}
