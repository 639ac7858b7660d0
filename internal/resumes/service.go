package resumes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/contract"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/score"
	resumeservice "resume-builder/resume/service"
)

// Draft is the editable part of a resume.
type Draft struct {
	Title  string
	Data   model.ResumeData
	Design model.DesignOptions
	Color  string
}

// SectionsView describes which sections show and where.
type SectionsView struct {
	Layout     model.Layout                 `json:"layout"`
	Active     []contract.SectionID         `json:"active"`
	Ordered    []contract.SectionID         `json:"ordered"`
	Pages      map[int][]contract.SectionID `json:"pages"`
	TotalPages int                          `json:"totalPages"`
}

// Service contains business logic for stored resumes.
type Service struct {
	Repo     Repo
	Exporter *resumeservice.Exporter
	Store    object.ObjectStore
	FileName string
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Create validates and stores a new resume.
func (s *Service) Create(ctx context.Context, draft Draft) (Resume, error) {
	if err := validateDraft(draft); err != nil {
		return Resume{}, err
	}
	now := s.now()
	resume := Resume{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(draft.Title),
		Data:      draft.Data,
		Design:    draft.Design.Normalize(),
		Color:     strings.TrimSpace(draft.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func (s *Service) Get(ctx context.Context, resumeID string) (Resume, error) {
	if !validID(resumeID) {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, resumeID)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Resume, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Update replaces the whole editable state of a resume.
func (s *Service) Update(ctx context.Context, resumeID string, draft Draft) (Resume, error) {
	current, err := s.Get(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if err := validateDraft(draft); err != nil {
		return Resume{}, err
	}
	current.Title = strings.TrimSpace(draft.Title)
	current.Data = draft.Data
	current.Design = draft.Design.Normalize()
	current.Color = strings.TrimSpace(draft.Color)
	current.UpdatedAt = s.now()
	if err := s.Repo.Update(ctx, current); err != nil {
		return Resume{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, resumeID string) error {
	if !validID(resumeID) {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, resumeID)
}

// Preview renders the stored resume for the screen.
func (s *Service) Preview(ctx context.Context, resumeID string, page int, mode render.PreviewMode) (*render.Preview, error) {
	resume, err := s.Get(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	return PreviewOf(resume.Data, resume.Design, resume.Color, page, mode), nil
}

// Sections reports the visibility contract for a stored resume.
func (s *Service) Sections(ctx context.Context, resumeID string) (SectionsView, error) {
	resume, err := s.Get(ctx, resumeID)
	if err != nil {
		return SectionsView{}, err
	}
	return SectionsOf(resume.Data), nil
}

func (s *Service) Score(ctx context.Context, resumeID string) (score.Breakdown, error) {
	resume, err := s.Get(ctx, resumeID)
	if err != nil {
		return score.Breakdown{}, err
	}
	return score.Compute(resume.Data), nil
}

// Export generates a document for the stored resume, archives it in the
// object store and records the export.
func (s *Service) Export(ctx context.Context, resumeID, format, fileName string) (resumeservice.File, error) {
	resume, err := s.Get(ctx, resumeID)
	if err != nil {
		return resumeservice.File{}, err
	}
	if s.Exporter == nil {
		return resumeservice.File{}, errors.New("missing exporter")
	}
	if strings.TrimSpace(fileName) == "" {
		fileName = s.FileName
	}

	exporter := s.Exporter
	var archive *resumeservice.StoreSink
	if s.Store != nil {
		archive = &resumeservice.StoreSink{Store: s.Store, Namespace: "exports/" + resume.ID}
		exporter = exporter.WithSink(archive)
	}

	file, err := RunExport(ctx, exporter, format, resumeservice.ExportRequest{
		Data:          resume.Data,
		Design:        resume.Design,
		ColorOverride: resume.Color,
		FileName:      fileName,
	})
	if err != nil {
		return resumeservice.File{}, err
	}

	if archive != nil {
		rec := ExportRecord{
			ID:         uuid.NewString(),
			ResumeID:   resume.ID,
			Format:     format,
			FileName:   file.Name,
			StorageKey: archive.Key(file.Name),
			SizeBytes:  int64(len(file.Data)),
			Digest:     util.ContentDigest(file.Data),
			CreatedAt:  s.now(),
		}
		if err := s.Repo.RecordExport(ctx, rec); err != nil {
			if delErr := s.Store.Delete(context.WithoutCancel(ctx), rec.StorageKey); delErr != nil {
				telemetry.Warn("export.cleanup_failed", map[string]any{
					"resumeId":   resume.ID,
					"storageKey": rec.StorageKey,
					"error":      delErr,
				})
			}
			return resumeservice.File{}, fmt.Errorf("record export: %w", err)
		}
	}
	return file, nil
}

func (s *Service) Exports(ctx context.Context, resumeID string) ([]ExportRecord, error) {
	if _, err := s.Get(ctx, resumeID); err != nil {
		return nil, err
	}
	return s.Repo.ListExports(ctx, resumeID)
}

// RunExport dispatches to the exporter for format.
func RunExport(ctx context.Context, exporter *resumeservice.Exporter, format string, req resumeservice.ExportRequest) (resumeservice.File, error) {
	switch format {
	case FormatPDF:
		return exporter.ExportPDF(ctx, req)
	case FormatDOC:
		return exporter.ExportDOC(ctx, req)
	case FormatCapture:
		return exporter.ExportCapture(ctx, req)
	default:
		return resumeservice.File{}, fmt.Errorf("%w: unknown export format %q", ErrInvalidInput, format)
	}
}

// PreviewOf renders data without touching storage.
func PreviewOf(data model.ResumeData, design model.DesignOptions, color string, page int, mode render.PreviewMode) *render.Preview {
	start := time.Now()
	metrics.IncRender(metrics.TargetPreview)
	defer func() {
		metrics.ObserveRenderDurationMs(metrics.SinceMillis(start))
	}()
	return render.RenderPreview(data, render.PreviewOptions{
		Design:        design,
		ColorOverride: color,
		Page:          page,
		Mode:          mode,
	})
}

// SectionsOf evaluates the visibility contract for data.
func SectionsOf(data model.ResumeData) SectionsView {
	tpl, _ := model.ResolveTemplate(data.TemplateID)
	view := SectionsView{
		Layout:     tpl.Layout,
		Active:     contract.Active(data),
		Ordered:    contract.Ordered(tpl.Layout, data),
		Pages:      make(map[int][]contract.SectionID),
		TotalPages: contract.TotalPages(data),
	}
	for page := 1; page <= view.TotalPages; page++ {
		view.Pages[page] = contract.OnPage(tpl.Layout, data, page)
	}
	return view
}

func validateDraft(draft Draft) error {
	if strings.TrimSpace(draft.Data.TemplateID) == "" {
		return fmt.Errorf("%w: templateId is required", ErrInvalidInput)
	}
	if err := draft.Data.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
