package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

// ErrGenerationFailed is the single failure signal for exports. Nothing
// has been delivered when it is returned.
var ErrGenerationFailed = errors.New("document generation failed")

// ErrCaptureUnavailable means no HTML printer is configured.
var ErrCaptureUnavailable = errors.New("print capture is not configured")

const (
	DefaultFileName = "resume"

	ContentTypePDF = "application/pdf"
	ContentTypeDOC = "application/msword"
)

// HTMLPrinter turns an HTML document into PDF bytes.
type HTMLPrinter interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// ExportRequest carries everything one export needs.
type ExportRequest struct {
	Data          model.ResumeData
	Design        model.DesignOptions
	ColorOverride string
	FileName      string
}

// Exporter generates documents and hands them to a FileSink. Each call is
// self-contained; an Exporter holds no per-call state.
type Exporter struct {
	Sink    FileSink
	Capture HTMLPrinter
	Now     func() time.Time
}

func NewExporter(sink FileSink, capture HTMLPrinter) *Exporter {
	return &Exporter{Sink: sink, Capture: capture, Now: time.Now}
}

// WithSink returns a copy delivering to sink.
func (e *Exporter) WithSink(sink FileSink) *Exporter {
	next := *e
	next.Sink = sink
	return &next
}

// ExportPDF builds the coordinate-placed A4 document and delivers
// {fileName}.pdf.
func (e *Exporter) ExportPDF(ctx context.Context, req ExportRequest) (File, error) {
	return e.export(ctx, metrics.TargetPDF, req, func() (File, error) {
		tpl, _ := render.ResolveTemplate(req.Data)
		doc, err := render.GeneratePrintDocument(req.Data, tpl, render.PrintOptions{
			Design:        req.Design,
			ColorOverride: req.ColorOverride,
			CreatedAt:     e.now(),
		})
		if err != nil {
			return File{}, err
		}
		return File{Name: FileName(req.FileName, ".pdf"), ContentType: ContentTypePDF, Data: doc.Bytes}, nil
	})
}

// ExportDOC builds the Word-compatible document and delivers
// {fileName}.doc.
func (e *Exporter) ExportDOC(ctx context.Context, req ExportRequest) (File, error) {
	return e.export(ctx, metrics.TargetDOC, req, func() (File, error) {
		tpl, _ := render.ResolveTemplate(req.Data)
		markup, err := render.GenerateExportDocument(req.Data, tpl, render.ExportOptions{
			Design:        req.Design,
			ColorOverride: req.ColorOverride,
		})
		if err != nil {
			return File{}, err
		}
		return File{Name: FileName(req.FileName, ".doc"), ContentType: ContentTypeDOC, Data: []byte(markup)}, nil
	})
}

// ExportCapture prints the continuous preview through the HTML printer
// and delivers {fileName}.pdf.
func (e *Exporter) ExportCapture(ctx context.Context, req ExportRequest) (File, error) {
	return e.export(ctx, metrics.TargetCapture, req, func() (File, error) {
		if e.Capture == nil {
			return File{}, ErrCaptureUnavailable
		}
		preview := render.RenderPreview(req.Data, render.PreviewOptions{
			Design:        req.Design,
			ColorOverride: req.ColorOverride,
			Mode:          render.ContinuousMode,
		})
		data, err := e.Capture.RenderHTMLToPDF(ctx, preview.Document())
		if err != nil {
			return File{}, err
		}
		return File{Name: FileName(req.FileName, ".pdf"), ContentType: ContentTypePDF, Data: data}, nil
	})
}

func (e *Exporter) export(ctx context.Context, target string, req ExportRequest, generate func() (File, error)) (File, error) {
	start := time.Now()
	metrics.IncRender(target)
	defer func() {
		metrics.ObserveRenderDurationMs(metrics.SinceMillis(start))
	}()

	file, err := safeGenerate(generate)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil && e.Sink != nil {
		err = e.Sink.Deliver(ctx, file)
	}
	if err != nil {
		metrics.IncRenderFailed(target)
		telemetry.Error("export.failed", map[string]any{
			"target":     target,
			"templateId": req.Data.TemplateID,
			"error":      err.Error(),
		})
		return File{}, fmt.Errorf("%w: %s: %w", ErrGenerationFailed, target, err)
	}
	return file, nil
}

// safeGenerate turns a renderer panic into an error so no half-built
// file escapes.
func safeGenerate(generate func() (File, error)) (file File, err error) {
	defer func() {
		if r := recover(); r != nil {
			file = File{}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return generate()
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now().UTC()
}

// FileName sanitizes a requested base name and appends ext. Blank or
// unsafe names fall back to DefaultFileName.
func FileName(base, ext string) string {
	name := strings.TrimSpace(base)
	for _, known := range []string{".pdf", ".doc"} {
		name = strings.TrimSuffix(name, known)
	}
	clean, err := util.SanitizeFileName(name)
	if err != nil {
		clean = DefaultFileName
	}
	return clean + ext
}
