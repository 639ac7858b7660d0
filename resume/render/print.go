package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

// A4 geometry and page-break thresholds, in millimetres.
const (
	pageWidthMM    = 210.0
	pageHeightMM   = 297.0
	marginMM       = 15.0
	contentWidthMM = pageWidthMM - 2*marginMM

	// A section with wrapped text starts on a new page unless this much
	// room is left.
	sectionMinSpaceMM = 40.0
	// Sections made of single-line items need less.
	listSectionMinSpaceMM = 15.0
	// Room needed before each further experience or education entry.
	entryMinSpaceMM = 20.0
	// Room needed before each further list item.
	listItemMinSpaceMM = 8.0

	bannerPaddingMM   = 8.0
	stripeWidthMM     = 6.0
	titlePaddingMM    = 2.0
	listIndentMM      = 4.0
	metaGapMM         = 4.0
	ruleWidthMM       = 0.3
	baselineRatio     = 0.8
	mmPerPt           = 25.4 / 72
	mmPerPx           = 25.4 / 96
	bulletGlyph       = "•"
	fallbackDocTitle  = "Resume"
	printProducerName = "resume-builder"
)

// printEpoch is stamped when no creation time is given so output is
// byte-stable across runs.
var printEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

type PrintOptions struct {
	Design        model.DesignOptions
	ColorOverride string
	Title         string
	CreatedAt     time.Time
}

// PrintDocument is a finished A4 PDF.
type PrintDocument struct {
	Bytes    []byte
	Pages    int
	Sections []contract.SectionID
	// SectionPages maps each emitted section to the page its title landed on.
	SectionPages map[contract.SectionID]int
}

// GeneratePrintDocument lays data out on A4 pages with absolute
// placement. Pages break dynamically inside the layout's section order.
// Only assembly failures are returned; input problems fall back to
// defaults.
func GeneratePrintDocument(data model.ResumeData, tpl model.Template, opts PrintOptions) (*PrintDocument, error) {
	if tpl.ID == "" {
		tpl, _ = ResolveTemplate(data)
	}
	styles := ResolveStyles(tpl.Layout, AccentFor(tpl, opts.ColorOverride), opts.Design)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM, marginMM)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	created := opts.CreatedAt
	if created.IsZero() {
		created = printEpoch
	}
	pdf.SetCreationDate(created)
	pdf.SetProducer(printProducerName, false)
	pdf.SetTitle(documentTitle(opts.Title, data), true)

	p := newPrinter(pdf, styles)
	p.newPage()
	p.header(buildHeader(data.Contact))

	ordered := contract.Ordered(styles.Layout, data)
	for _, b := range buildBlocks(ordered, data) {
		p.section(b)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("assemble pdf: %w", pdf.Error())
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return &PrintDocument{
		Bytes:        buf.Bytes(),
		Pages:        pdf.PageNo(),
		Sections:     ordered,
		SectionPages: p.pages,
	}, nil
}

func documentTitle(title string, data model.ResumeData) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	if name := data.Contact.FullName(); name != "" {
		return name
	}
	return fallbackDocTitle
}

type printer struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	s     StyleSet
	face  string
	y     float64
	pages map[contract.SectionID]int
}

func newPrinter(pdf *fpdf.Fpdf, styles StyleSet) *printer {
	return &printer{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		s:     styles,
		face:  string(styles.Font.Face),
		pages: make(map[contract.SectionID]int),
	}
}

func (p *printer) newPage() {
	p.pdf.AddPage()
	p.y = marginMM
	if c, ok := p.s.StripeColor(); ok {
		p.fill(c)
		p.pdf.Rect(0, 0, stripeWidthMM, pageHeightMM, "F")
	}
}

func (p *printer) remaining() float64 {
	return pageHeightMM - marginMM - p.y
}

// ensureSpace breaks the page when less than h is left. A fresh page is
// never broken again.
func (p *printer) ensureSpace(h float64) {
	if p.remaining() < h && p.y > marginMM {
		p.newPage()
	}
}

func (p *printer) lineHeight(sizePt float64) float64 {
	return sizePt * mmPerPt * p.s.Design.LineSpacing
}

func (p *printer) font(style string, sizePt float64, c RGB) {
	p.pdf.SetFont(p.face, style, sizePt)
	p.pdf.SetTextColor(c.ints())
}

func (p *printer) fill(c RGB) {
	p.pdf.SetFillColor(c.ints())
}

func (p *printer) width(s string) float64 {
	return p.pdf.GetStringWidth(p.tr(s))
}

// line writes one pre-wrapped line at the cursor and advances it.
func (p *printer) line(x float64, text string, sizePt float64) {
	lh := p.lineHeight(sizePt)
	p.ensureSpace(lh)
	p.pdf.Text(x, p.y+sizePt*mmPerPt*baselineRatio+(lh-sizePt*mmPerPt)/2, p.tr(text))
	p.y += lh
}

func (p *printer) paragraph(text string, x, w float64, style string, sizePt float64, c RGB) {
	p.font(style, sizePt, c)
	for _, l := range WrapText(text, w, p.width) {
		p.line(x, l, sizePt)
	}
}

func (p *printer) aligned(text string, style string, sizePt float64, c RGB, centered bool, left, w float64) {
	p.font(style, sizePt, c)
	for _, l := range WrapText(text, w, p.width) {
		x := left
		if centered {
			x = left + (w-p.width(l))/2
		}
		p.line(x, l, sizePt)
	}
}

// headerBox returns the left edge and width of the header text.
func (p *printer) headerBox() (float64, float64) {
	left := marginMM
	if _, ok := p.s.StripeColor(); ok {
		left = marginMM + stripeWidthMM/2
	}
	return left, pageWidthMM - marginMM - left
}

func (p *printer) header(h header) {
	left, w := p.headerBox()
	centered := p.s.Style.Header == HeaderCentered

	if fill, ok := p.s.HeaderFill(); ok {
		height := p.bannerHeight(h, w)
		p.fill(fill)
		p.pdf.Rect(0, 0, pageWidthMM, height, "F")
		p.y = bannerPaddingMM
		p.headerLines(h, centered, left, w)
		p.y = height + p.sectionGap()
		return
	}

	p.headerLines(h, centered, left, w)
	p.y += p.sectionGap()
}

type headerRow struct {
	text   string
	style  string
	sizePt float64
	color  RGB
}

func (p *printer) headerRows(h header) []headerRow {
	var rows []headerRow
	if h.Name != "" {
		rows = append(rows, headerRow{h.Name, "B", p.s.NameSize(), p.s.NameColor()})
	}
	if h.JobTitle != "" {
		rows = append(rows, headerRow{h.JobTitle, "", p.s.JobTitleSize(), p.s.ContactColor()})
	}
	if h.Contact != "" {
		rows = append(rows, headerRow{h.Contact, "", p.s.MetaSize(), p.s.ContactColor()})
	}
	return rows
}

// bannerHeight wraps the header rows at width w so the fill covers every
// line headerLines will draw.
func (p *printer) bannerHeight(h header, w float64) float64 {
	height := 2 * bannerPaddingMM
	for _, r := range p.headerRows(h) {
		p.font(r.style, r.sizePt, r.color)
		height += float64(len(WrapText(r.text, w, p.width))) * p.lineHeight(r.sizePt)
	}
	return height
}

func (p *printer) headerLines(h header, centered bool, left, w float64) {
	for _, r := range p.headerRows(h) {
		p.aligned(r.text, r.style, r.sizePt, r.color, centered, left, w)
	}
}

func (p *printer) sectionGap() float64 {
	return p.s.Design.SectionSpacing * mmPerPx
}

func (p *printer) paragraphGap() float64 {
	return p.s.Design.ParagraphSpacing * mmPerPx
}

func (p *printer) section(b block) {
	need := sectionMinSpaceMM
	if b.Kind == kindList {
		need = listSectionMinSpaceMM
	}
	p.ensureSpace(need)
	if _, seen := p.pages[b.ID]; !seen {
		p.pages[b.ID] = p.pdf.PageNo()
	}
	p.sectionTitle(p.s.TitleText(b.Title))

	switch b.Kind {
	case kindParagraph:
		for _, e := range b.Entries {
			p.paragraph(e.Body, marginMM, contentWidthMM, "", p.s.BodySize(), p.s.BodyColor())
		}
	case kindEntries:
		for i, e := range b.Entries {
			if i > 0 {
				p.y += p.paragraphGap()
				p.ensureSpace(entryMinSpaceMM)
			}
			p.entry(e)
		}
	case kindList:
		for i, e := range b.Entries {
			if i > 0 {
				p.ensureSpace(listItemMinSpaceMM)
			}
			p.listItem(e.listLine())
		}
	}
	p.y += p.sectionGap()
}

func (p *printer) sectionTitle(title string) {
	size := p.s.TitleSize()
	lh := p.lineHeight(size)
	if fill, ok := p.s.TitleFill(); ok {
		p.fill(fill)
		p.pdf.Rect(marginMM, p.y, contentWidthMM, lh, "F")
		p.font("B", size, p.s.TitleColor())
		p.line(marginMM+titlePaddingMM, title, size)
	} else {
		p.font("B", size, p.s.TitleColor())
		p.line(marginMM, title, size)
	}
	if rule, ok := p.s.RuleColor(); ok {
		p.pdf.SetDrawColor(rule.ints())
		p.pdf.SetLineWidth(ruleWidthMM)
		p.pdf.Line(marginMM, p.y, marginMM+contentWidthMM, p.y)
	}
	p.y += p.paragraphGap()
}

func (p *printer) entry(e entry) {
	metaW := 0.0
	if e.Meta != "" {
		p.font("", p.s.MetaSize(), p.s.MetaColor())
		metaW = p.width(e.Meta)
		lh := p.lineHeight(p.s.EntrySize())
		p.ensureSpace(lh)
		size := p.s.MetaSize()
		p.pdf.Text(marginMM+contentWidthMM-metaW, p.y+size*mmPerPt*baselineRatio+(lh-size*mmPerPt)/2, p.tr(e.Meta))
	}
	titleW := contentWidthMM
	if metaW > 0 {
		titleW = contentWidthMM - metaW - metaGapMM
	}
	if e.Title != "" {
		p.paragraph(e.Title, marginMM, titleW, "B", p.s.EntrySize(), heading)
	} else if metaW > 0 {
		p.y += p.lineHeight(p.s.EntrySize())
	}
	if e.Subtitle != "" {
		p.paragraph(e.Subtitle, marginMM, contentWidthMM, "I", p.s.MetaSize(), p.s.MetaColor())
	}
	if e.Body != "" {
		p.paragraph(e.Body, marginMM, contentWidthMM, "", p.s.BodySize(), p.s.BodyColor())
	}
}

func (p *printer) listItem(text string) {
	if text == "" {
		return
	}
	size := p.s.BodySize()
	p.font("", size, p.s.BodyColor())
	lines := WrapText(text, contentWidthMM-listIndentMM, p.width)
	for i, l := range lines {
		if i == 0 {
			lh := p.lineHeight(size)
			p.ensureSpace(lh)
			p.pdf.Text(marginMM, p.y+size*mmPerPt*baselineRatio+(lh-size*mmPerPt)/2, p.tr(bulletGlyph))
		}
		p.line(marginMM+listIndentMM, l, size)
	}
}
