package render

import (
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

func TestRenderPreviewDeterministic(t *testing.T) {
	t.Parallel()

	for _, tpl := range model.Templates() {
		data := sampleResume(tpl.ID)
		opts := PreviewOptions{Design: model.DefaultDesignOptions(), Page: 1}

		first := RenderPreview(data, opts)
		second := RenderPreview(data, opts)
		if !reflect.DeepEqual(first.ActiveSections, second.ActiveSections) {
			t.Fatalf("%s: active sections differ: %v vs %v", tpl.ID, first.ActiveSections, second.ActiveSections)
		}
		if first.TotalPages != second.TotalPages {
			t.Fatalf("%s: total pages differ", tpl.ID)
		}
		if first.Root.HTML() != second.Root.HTML() {
			t.Fatalf("%s: markup differs between runs", tpl.ID)
		}
	}
}

func TestRenderPreviewReferencesOnlySecondPage(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("classic")
	data.Contact.FirstName = "Grace"
	data.Experiences = []model.Experience{{ID: "e1", JobTitle: "Rear Admiral"}}
	data.Finalize.References = []model.Reference{{ID: "r1", Name: "Howard Aiken"}}

	preview := RenderPreview(data, PreviewOptions{Page: 1})
	if preview.TotalPages != 2 {
		t.Fatalf("expected 2 pages, got %d", preview.TotalPages)
	}
	if got := preview.Root.SectionOrder(); !reflect.DeepEqual(got, []string{"experience"}) {
		t.Fatalf("page 1: expected [experience], got %v", got)
	}

	page2 := preview.GoToPage(2)
	if got := page2.Root.SectionOrder(); !reflect.DeepEqual(got, []string{"references"}) {
		t.Fatalf("page 2: expected [references], got %v", got)
	}
	if page2.Root.Find(ElementHeader) != nil {
		t.Fatalf("page 2 should not repeat the header")
	}
	if preview.CurrentPage != 1 {
		t.Fatalf("GoToPage must not modify the original preview")
	}
}

func TestGoToPageClamps(t *testing.T) {
	t.Parallel()

	preview := RenderPreview(sampleResume("modern"), PreviewOptions{Page: 7})
	if preview.CurrentPage != 2 {
		t.Fatalf("expected page clamped to 2, got %d", preview.CurrentPage)
	}
	if got := preview.GoToPage(0).CurrentPage; got != 1 {
		t.Fatalf("expected page clamped to 1, got %d", got)
	}

	single := RenderPreview(model.NewResumeData("modern"), PreviewOptions{Page: 2})
	if single.TotalPages != 1 || single.CurrentPage != 1 {
		t.Fatalf("expected single page, got %d/%d", single.CurrentPage, single.TotalPages)
	}
}

func TestRenderPreviewHarvardEducationFirst(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("harvard")
	data.Summary = "This summary is long enough to count but Harvard never shows it."
	data.Educations = []model.Education{{ID: "d1", Degree: "AB", School: "Harvard College"}}
	data.Skills = []model.Skill{{ID: "s1", Name: "Latin"}}

	preview := RenderPreview(data, PreviewOptions{})
	got := preview.Root.SectionOrder()
	want := []string{"education", "skills"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	text := preview.Root.TextContent()
	assertNotContains(t, text, "EXPERIENCE")
	assertNotContains(t, text, "never shows it")
}

func TestRenderPreviewActiveSectionsFollowLayout(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("harvard")
	data.Summary = "A summary that the Harvard layout leaves out of every view."
	data.Experiences = []model.Experience{{ID: "e1", JobTitle: "Tutor"}}
	data.Educations = []model.Education{{ID: "d1", Degree: "AB", School: "Harvard College"}}

	preview := RenderPreview(data, PreviewOptions{Mode: ContinuousMode})
	want := []contract.SectionID{contract.SectionEducation, contract.SectionExperience}
	if !reflect.DeepEqual(preview.ActiveSections, want) {
		t.Fatalf("expected %v, got %v", want, preview.ActiveSections)
	}
	rendered := preview.Root.SectionOrder()
	if len(rendered) != len(preview.ActiveSections) {
		t.Fatalf("rendered %v but reported %v", rendered, preview.ActiveSections)
	}
	for i, id := range preview.ActiveSections {
		if rendered[i] != string(id) {
			t.Fatalf("rendered %v but reported %v", rendered, preview.ActiveSections)
		}
	}

	data.TemplateID = "classic"
	classic := RenderPreview(data, PreviewOptions{})
	if classic.ActiveSections[0] != contract.SectionSummary {
		t.Fatalf("classic should lead with the summary, got %v", classic.ActiveSections)
	}
}

func TestRenderPreviewUnknownTemplateFallsBack(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := telemetry.SetLogger(zap.New(core))
	defer restore()

	data := sampleResume("does-not-exist")
	preview := RenderPreview(data, PreviewOptions{})

	first := model.Templates()[0]
	if preview.Template.ID != first.ID || !preview.TemplateFallback {
		t.Fatalf("expected fallback to %s, got %s (fallback=%v)", first.ID, preview.Template.ID, preview.TemplateFallback)
	}
	entries := logs.FilterMessage("template.fallback").All()
	if len(entries) != 1 {
		t.Fatalf("expected one template.fallback entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["templateId"]; got != "does-not-exist" {
		t.Fatalf("expected templateId field, got %v", got)
	}
}

func TestRenderPreviewContinuousMode(t *testing.T) {
	t.Parallel()

	data := sampleResume("classic")
	preview := RenderPreview(data, PreviewOptions{Mode: ContinuousMode})

	pages := preview.Root.FindAll(ElementPage)
	if len(pages) != 2 {
		t.Fatalf("expected 2 stacked pages, got %d", len(pages))
	}
	if pages[0].Page != 1 || pages[1].Page != 2 {
		t.Fatalf("unexpected page numbers %d, %d", pages[0].Page, pages[1].Page)
	}

	var want []string
	for page := 1; page <= contract.MaxPages; page++ {
		for _, id := range contract.OnPage(model.LayoutClassic, data, page) {
			want = append(want, string(id))
		}
	}
	if got := preview.Root.SectionOrder(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	doc := preview.Document()
	assertContains(t, doc, "<!DOCTYPE html>")
	assertContains(t, doc, "<title>Ada Lovelace</title>")
	assertContains(t, doc, "page-break-after")
}

func TestRenderPreviewSidebarColumns(t *testing.T) {
	t.Parallel()

	preview := RenderPreview(sampleResume("sidebar"), PreviewOptions{})
	aside := preview.Root.Find(ElementSidebar)
	if aside == nil {
		t.Fatalf("expected a sidebar column")
	}
	if got, want := aside.SectionOrder(), []string{"skills", "languages", "websites"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("sidebar: expected %v, got %v", want, got)
	}
	main := preview.Root.Find(ElementMain)
	if got, want := main.SectionOrder(), []string{"summary", "experience", "education", "certifications"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("main: expected %v, got %v", want, got)
	}
}

func TestRenderPreviewUsesResolvedStyles(t *testing.T) {
	t.Parallel()

	data := sampleResume("bold")
	preview := RenderPreview(data, PreviewOptions{ColorOverride: "rgb(10, 20, 30)"})
	if preview.Styles.Accent != (RGB{10, 20, 30}) {
		t.Fatalf("expected override accent, got %+v", preview.Styles.Accent)
	}
	title := preview.Root.Find(ElementSectionTitle)
	if title.Style != preview.Styles.Inline(ElementSectionTitle) {
		t.Fatalf("section title style does not come from the style set")
	}
	if title.Text != strings.ToUpper(contract.Title(contract.SectionSummary)) {
		t.Fatalf("expected uppercase title, got %q", title.Text)
	}
}

func TestNodeHTMLEscapes(t *testing.T) {
	t.Parallel()

	data := model.NewResumeData("minimal")
	data.Contact.FirstName = "<script>alert(1)</script>"
	out := RenderPreview(data, PreviewOptions{}).Root.HTML()
	assertNotContains(t, out, "<script>")
	assertContains(t, out, "&lt;script&gt;")
}

func TestRenderPreviewDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	data := sampleResume("executive")
	before := sampleResume("executive")
	RenderPreview(data, PreviewOptions{Mode: ContinuousMode})
	if !reflect.DeepEqual(data, before) {
		t.Fatalf("renderer modified its input")
	}
}
