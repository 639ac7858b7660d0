package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
	"resume-builder/resume/score"
	resumeservice "resume-builder/resume/service"
)

const maxPayloadSize = 2 << 20 // 2MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume and render routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.templates)
	rg.GET("/fonts", h.fonts)

	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
	rg.GET("/resumes/:id/preview", h.preview)
	rg.GET("/resumes/:id/sections", h.sections)
	rg.GET("/resumes/:id/score", h.score)
	rg.POST("/resumes/:id/export/:format", h.export)
	rg.GET("/resumes/:id/exports", h.exports)

	r := rg.Group("/render")
	r.POST("/preview", h.renderPreview)
	r.POST("/score", h.renderScore)
	r.POST("/sections", h.renderSections)
	r.POST("/pdf", h.renderExport(FormatPDF))
	r.POST("/doc", h.renderExport(FormatDOC))
	r.POST("/capture", h.renderExport(FormatCapture))
}

func (h *Handler) templates(c *gin.Context) {
	respond.OK(c, model.Templates())
}

func (h *Handler) fonts(c *gin.Context) {
	respond.OK(c, gin.H{"fonts": model.Fonts(), "defaults": model.DefaultDesignOptions()})
}

func (h *Handler) create(c *gin.Context) {
	var req resumeRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := req.draft()
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	resume, err := h.Svc.Create(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set(middleware.ResumeIDKey, resume.ID)
	respond.Created(c, toResponse(resume))
}

func (h *Handler) list(c *gin.Context) {
	// Paging bounds are enforced by the repo.
	items, err := h.Svc.List(c.Request.Context(), queryInt(c, "limit", 0), queryInt(c, "offset", 0))
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	resp := make([]resumeSummary, 0, len(items))
	for _, item := range items {
		resp = append(resp, toSummary(item))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.Get(c.Request.Context(), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to fetch resume")
		return
	}
	respond.OK(c, toResponse(resume))
}

func (h *Handler) update(c *gin.Context) {
	var req resumeRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := req.draft()
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	resume, err := h.Svc.Update(c.Request.Context(), resumeID(c), draft)
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, toResponse(resume))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), resumeID(c)); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) preview(c *gin.Context) {
	page := queryInt(c, "page", 1)
	resume, err := h.Svc.Get(c.Request.Context(), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	p := PreviewOf(resume.Data, resume.Design, resume.Color, page, parseMode(c.Query("mode")))
	if c.Query("format") == "html" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(p.Document()))
		return
	}
	respond.OK(c, toPreviewResponse(p, resume.Data))
}

func (h *Handler) sections(c *gin.Context) {
	view, err := h.Svc.Sections(c.Request.Context(), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to evaluate sections")
		return
	}
	respond.OK(c, view)
}

func (h *Handler) score(c *gin.Context) {
	breakdown, err := h.Svc.Score(c.Request.Context(), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to score resume")
		return
	}
	respond.OK(c, breakdown)
}

func (h *Handler) export(c *gin.Context) {
	format := c.Param("format")
	c.Set(middleware.ExportFormatKey, format)
	file, err := h.Svc.Export(c.Request.Context(), resumeID(c), format, c.Query("fileName"))
	if err != nil {
		writeError(c, err, "failed to export resume")
		return
	}
	respond.Attachment(c, file.Name, file.ContentType, file.Data)
}

func (h *Handler) exports(c *gin.Context) {
	records, err := h.Svc.Exports(c.Request.Context(), resumeID(c))
	if err != nil {
		writeError(c, err, "failed to list exports")
		return
	}
	resp := make([]exportResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, toExportResponse(rec))
	}
	respond.OK(c, resp)
}

func (h *Handler) renderPreview(c *gin.Context) {
	var req renderRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := decodePayload(req.Data)
	if err != nil {
		writeError(c, err, "failed to render preview")
		return
	}
	p := PreviewOf(data, designOrDefault(req.Design), req.Color, req.Page, parseMode(req.Mode))
	respond.OK(c, toPreviewResponse(p, data))
}

func (h *Handler) renderScore(c *gin.Context) {
	var req renderRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := decodePayload(req.Data)
	if err != nil {
		writeError(c, err, "failed to score resume")
		return
	}
	respond.OK(c, score.Compute(data))
}

func (h *Handler) renderSections(c *gin.Context) {
	var req renderRequest
	if !bindJSON(c, &req) {
		return
	}
	data, err := decodePayload(req.Data)
	if err != nil {
		writeError(c, err, "failed to evaluate sections")
		return
	}
	respond.OK(c, SectionsOf(data))
}

func (h *Handler) renderExport(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ExportFormatKey, format)
		var req renderRequest
		if !bindJSON(c, &req) {
			return
		}
		data, err := decodePayload(req.Data)
		if err != nil {
			writeError(c, err, "failed to export resume")
			return
		}
		if h.Svc.Exporter == nil {
			respond.Error(c, http.StatusServiceUnavailable, "export_unavailable", "export is not configured", nil)
			return
		}
		fileName := req.FileName
		if fileName == "" {
			fileName = h.Svc.FileName
		}
		file, err := RunExport(c.Request.Context(), h.Svc.Exporter.WithSink(nil), format, resumeservice.ExportRequest{
			Data:          data,
			Design:        designOrDefault(req.Design),
			ColorOverride: req.Color,
			FileName:      fileName,
		})
		if err != nil {
			writeError(c, err, "failed to export resume")
			return
		}
		respond.Attachment(c, file.Name, file.ContentType, file.Data)
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPayloadSize)
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return false
	}
	return true
}

func resumeID(c *gin.Context) string {
	id := c.Param("id")
	c.Set(middleware.ResumeIDKey, id)
	return id
}

func queryInt(c *gin.Context, key string, def int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func writeError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, resumeservice.ErrCaptureUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "capture_unavailable", "print capture is not configured", nil)
	case errors.Is(err, resumeservice.ErrGenerationFailed):
		respond.Error(c, http.StatusInternalServerError, "generation_failed", message, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
