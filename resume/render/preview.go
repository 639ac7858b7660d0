package render

import (
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

type PreviewMode string

const (
	// PagedMode renders one logical page at a time.
	PagedMode PreviewMode = "paged"
	// ContinuousMode stacks every page, for print capture.
	ContinuousMode PreviewMode = "continuous"
)

type PreviewOptions struct {
	Design        model.DesignOptions
	ColorOverride string
	Page          int
	Mode          PreviewMode
}

// Preview is a pure projection of one ResumeData. It holds the inputs so
// page changes can re-render without recomputing anything else.
type Preview struct {
	Template         model.Template       `json:"template"`
	TemplateFallback bool                 `json:"templateFallback"`
	Styles           StyleSet             `json:"-"`
	// ActiveSections lists the rendered sections in the layout's order.
	ActiveSections   []contract.SectionID `json:"activeSections"`
	TotalPages       int                  `json:"totalPages"`
	CurrentPage      int                  `json:"currentPage"`
	Mode             PreviewMode          `json:"mode"`
	Root             *Node                `json:"root"`

	data model.ResumeData
	opts PreviewOptions
}

// ResolveTemplate looks up the resume's template, logging when it falls
// back to the first catalog entry.
func ResolveTemplate(data model.ResumeData) (model.Template, bool) {
	tpl, ok := model.ResolveTemplate(data.TemplateID)
	if !ok {
		telemetry.Warn("template.fallback", map[string]any{
			"templateId": data.TemplateID,
			"fallback":   tpl.ID,
		})
	}
	return tpl, !ok
}

// AccentFor picks the override color when one is given.
func AccentFor(tpl model.Template, override string) string {
	if override != "" {
		return override
	}
	return tpl.PrimaryColor
}

// RenderPreview renders the on-screen view for data.
func RenderPreview(data model.ResumeData, opts PreviewOptions) *Preview {
	tpl, fallback := ResolveTemplate(data)
	styles := ResolveStyles(tpl.Layout, AccentFor(tpl, opts.ColorOverride), opts.Design)
	if opts.Mode != ContinuousMode {
		opts.Mode = PagedMode
	}

	p := &Preview{
		Template:         tpl,
		TemplateFallback: fallback,
		Styles:           styles,
		ActiveSections:   contract.Ordered(styles.Layout, data),
		TotalPages:       contract.TotalPages(data),
		Mode:             opts.Mode,
		data:             data,
		opts:             opts,
	}
	p.CurrentPage = clampPage(opts.Page, p.TotalPages)
	p.Root = p.compose()
	return p
}

// GoToPage returns a new preview showing page, clamped to [1, TotalPages].
func (p *Preview) GoToPage(page int) *Preview {
	next := *p
	next.opts.Page = page
	next.CurrentPage = clampPage(page, p.TotalPages)
	next.Root = next.compose()
	return &next
}

// Document returns a standalone HTML document for the current view.
func (p *Preview) Document() string {
	title := p.data.Contact.FullName()
	if title == "" {
		title = "Resume"
	}
	return document(title, printCSS, p.Root.toHTML())
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

func (p *Preview) compose() *Node {
	compose := composers[p.Styles.Layout]
	if compose == nil {
		compose = composeStacked
	}
	if p.Mode == ContinuousMode {
		root := &Node{Tag: "div", Class: "rb-document"}
		for page := 1; page <= p.TotalPages; page++ {
			root.append(compose(p.Styles, p.data, page))
		}
		return root
	}
	return compose(p.Styles, p.data, p.CurrentPage)
}

type composer func(StyleSet, model.ResumeData, int) *Node

var composers = map[model.Layout]composer{
	model.LayoutClassic:   composeStacked,
	model.LayoutModern:    composeStacked,
	model.LayoutSidebar:   composeSidebar,
	model.LayoutBold:      composeStacked,
	model.LayoutMinimal:   composeStacked,
	model.LayoutExecutive: composeStacked,
	model.LayoutHarvard:   composeStacked,
}

func pageNode(s StyleSet, page int) *Node {
	n := el("div", ElementPage, s.Inline(ElementPage))
	n.Page = page
	return n
}

func composeStacked(s StyleSet, data model.ResumeData, page int) *Node {
	n := pageNode(s, page)
	if page == 1 {
		n.append(headerNode(s, data.Contact))
	}
	for _, b := range buildBlocks(contract.OnPage(s.Layout, data, page), data) {
		n.append(sectionNode(s, b))
	}
	return n
}

// composeSidebar splits page one into a side column and a main column.
// Later pages have no side sections and stack normally.
func composeSidebar(s StyleSet, data model.ResumeData, page int) *Node {
	n := pageNode(s, page)
	if page == 1 {
		n.append(headerNode(s, data.Contact))
	}
	ids := contract.OnPage(s.Layout, data, page)
	var side, main []contract.SectionID
	for _, id := range ids {
		if s.IsSide(id) {
			side = append(side, id)
		} else {
			main = append(main, id)
		}
	}
	if len(side) == 0 {
		for _, b := range buildBlocks(main, data) {
			n.append(sectionNode(s, b))
		}
		return n
	}
	aside := el("aside", ElementSidebar, s.Inline(ElementSidebar))
	for _, b := range buildBlocks(side, data) {
		aside.append(sectionNode(s, b))
	}
	body := el("div", ElementMain, s.Inline(ElementMain))
	for _, b := range buildBlocks(main, data) {
		body.append(sectionNode(s, b))
	}
	return n.append(el("div", ElementColumns, s.Inline(ElementColumns), aside, body))
}

func headerNode(s StyleSet, c model.ContactInfo) *Node {
	h := buildHeader(c)
	n := el("header", ElementHeader, s.Inline(ElementHeader))
	if h.Name != "" {
		n.append(textEl("h1", ElementName, s.Inline(ElementName), h.Name))
	}
	if h.JobTitle != "" {
		n.append(textEl("p", ElementJobTitle, s.Inline(ElementJobTitle), h.JobTitle))
	}
	if h.Contact != "" {
		n.append(textEl("p", ElementContact, s.Inline(ElementContact), h.Contact))
	}
	return n
}

func sectionNode(s StyleSet, b block) *Node {
	n := el("section", ElementSection, s.Inline(ElementSection))
	n.Section = string(b.ID)
	n.append(textEl("h2", ElementSectionTitle, s.Inline(ElementSectionTitle), s.TitleText(b.Title)))

	switch b.Kind {
	case kindParagraph:
		for _, e := range b.Entries {
			if e.Body != "" {
				n.append(textEl("p", ElementBody, s.Inline(ElementBody), e.Body))
			}
		}
	case kindEntries:
		for _, e := range b.Entries {
			item := el("div", ElementEntry, s.Inline(ElementEntry))
			if e.Meta != "" {
				item.append(textEl("span", ElementEntryMeta, s.Inline(ElementEntryMeta), e.Meta))
			}
			if e.Title != "" {
				item.append(textEl("div", ElementEntryTitle, s.Inline(ElementEntryTitle), e.Title))
			}
			if e.Subtitle != "" {
				item.append(textEl("p", ElementEntrySub, s.Inline(ElementEntrySub), e.Subtitle))
			}
			if e.Body != "" {
				item.append(textEl("p", ElementBody, s.Inline(ElementBody), e.Body))
			}
			n.append(item)
		}
	case kindList:
		list := el("ul", ElementList, s.Inline(ElementList))
		for _, e := range b.Entries {
			if line := e.listLine(); line != "" {
				list.append(textEl("li", ElementListItem, s.Inline(ElementListItem), line))
			}
		}
		n.append(list)
	}
	return n
}

// printCSS keeps each logical page on its own sheet when the continuous
// view is printed.
const printCSS = `@page { size: A4; margin: 0; }
body { margin: 0; background: #f3f4f6; }
.rb-page { box-sizing: border-box; width: 210mm; min-height: 297mm; padding: 15mm; margin: 0 auto 12px auto; }
@media print { body { background: #ffffff; } .rb-page { margin: 0; page-break-after: always; } .rb-page:last-child { page-break-after: auto; } }
`
