package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

//go:embed templates/export.html.tmpl
var exportFS embed.FS

var exportTemplate = template.Must(
	template.New("export.html.tmpl").
		Funcs(template.FuncMap{
			"class": func(el string) string { return ClassName(Element(el)) },
		}).
		ParseFS(exportFS, "templates/export.html.tmpl"),
)

// msoHead asks Word to open the file in print layout at 100%.
const msoHead = `<!--[if gte mso 9]><xml><w:WordDocument><w:View>Print</w:View><w:Zoom>100</w:Zoom><w:DoNotOptimizeForBrowser/></w:WordDocument></xml><![endif]-->`

type ExportOptions struct {
	Design        model.DesignOptions
	ColorOverride string
	Title         string
}

type exportView struct {
	Title    string
	MSOHead  template.HTML
	CSS      template.CSS
	Header   header
	Sections []exportSection
}

type exportSection struct {
	ID    contract.SectionID
	Title string
	List  bool
	Items []exportItem
}

type exportItem struct {
	Title     string
	Subtitle  string
	Meta      string
	Line      string
	BodyLines []string
}

// GenerateExportDocument renders a Word-compatible HTML document in one
// continuous flow. Word paginates it on open.
func GenerateExportDocument(data model.ResumeData, tpl model.Template, opts ExportOptions) (string, error) {
	if tpl.ID == "" {
		tpl, _ = ResolveTemplate(data)
	}
	styles := ResolveStyles(tpl.Layout, AccentFor(tpl, opts.ColorOverride), opts.Design)

	view := exportView{
		Title:   documentTitle(opts.Title, data),
		MSOHead: template.HTML(msoHead),
		CSS:     template.CSS(styles.CSS()),
		Header:  buildHeader(data.Contact),
	}
	for _, b := range buildBlocks(contract.Ordered(styles.Layout, data), data) {
		view.Sections = append(view.Sections, exportSectionFor(styles, b))
	}

	var buf bytes.Buffer
	if err := exportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render export document: %w", err)
	}
	return buf.String(), nil
}

func exportSectionFor(s StyleSet, b block) exportSection {
	out := exportSection{
		ID:    b.ID,
		Title: s.TitleText(b.Title),
		List:  b.Kind == kindList,
	}
	for _, e := range b.Entries {
		item := exportItem{
			Title:    e.Title,
			Subtitle: e.Subtitle,
			Meta:     e.Meta,
		}
		if out.List {
			item.Line = e.listLine()
			if item.Line == "" {
				continue
			}
		}
		if e.Body != "" {
			item.BodyLines = strings.Split(e.Body, "\n")
		}
		out.Items = append(out.Items, item)
	}
	return out
}
