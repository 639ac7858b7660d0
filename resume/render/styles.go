package render

import (
	"strconv"
	"strings"

	"resume-builder/resume/contract"
	"resume-builder/resume/model"
)

type HeaderTreatment string

const (
	HeaderCentered HeaderTreatment = "centered"
	HeaderLeft     HeaderTreatment = "left"
	HeaderBanner   HeaderTreatment = "banner"
)

type TitleTreatment string

const (
	TitleUnderline TitleTreatment = "underline"
	TitleFilled    TitleTreatment = "filled"
	TitlePlain     TitleTreatment = "plain"
)

// LayoutStyle is one row of the per-layout style table.
type LayoutStyle struct {
	Header          HeaderTreatment
	Title           TitleTreatment
	AccentName      bool
	AccentTitles    bool
	AccentRules     bool
	AccentStripe    bool
	UppercaseTitles bool
	// SideSections render in a side column where the target supports one.
	SideSections []contract.SectionID
}

var layoutStyles = map[model.Layout]LayoutStyle{
	model.LayoutClassic: {
		Header:       HeaderCentered,
		Title:        TitleUnderline,
		AccentTitles: true,
		AccentRules:  true,
	},
	model.LayoutModern: {
		Header:       HeaderLeft,
		Title:        TitlePlain,
		AccentName:   true,
		AccentTitles: true,
	},
	model.LayoutSidebar: {
		Header:       HeaderLeft,
		Title:        TitleFilled,
		AccentName:   true,
		AccentStripe: true,
		SideSections: []contract.SectionID{
			contract.SectionSkills,
			contract.SectionLanguages,
			contract.SectionWebsites,
		},
	},
	model.LayoutBold: {
		Header:          HeaderBanner,
		Title:           TitleFilled,
		UppercaseTitles: true,
	},
	model.LayoutMinimal: {
		Header: HeaderLeft,
		Title:  TitlePlain,
	},
	model.LayoutExecutive: {
		Header:          HeaderBanner,
		Title:           TitleUnderline,
		AccentTitles:    true,
		AccentRules:     true,
		UppercaseTitles: true,
	},
	model.LayoutHarvard: {
		Header:          HeaderCentered,
		Title:           TitleUnderline,
		UppercaseTitles: true,
	},
}

// StyleFor returns the table row for a layout, falling back to classic.
func StyleFor(layout model.Layout) LayoutStyle {
	if s, ok := layoutStyles[layout]; ok {
		return s
	}
	return layoutStyles[model.LayoutClassic]
}

// Element names a styled part of the document. Preview, print and export
// all read their formatting through these.
type Element string

const (
	ElementPage         Element = "page"
	ElementHeader       Element = "header"
	ElementName         Element = "name"
	ElementJobTitle     Element = "jobtitle"
	ElementContact      Element = "contact"
	ElementSection      Element = "section"
	ElementSectionTitle Element = "section-title"
	ElementEntry        Element = "entry"
	ElementEntryTitle   Element = "entry-title"
	ElementEntryMeta    Element = "entry-meta"
	ElementEntrySub     Element = "entry-subtitle"
	ElementBody         Element = "body"
	ElementList         Element = "list"
	ElementListItem     Element = "list-item"
	ElementColumns      Element = "columns"
	ElementSidebar      Element = "sidebar"
	ElementMain         Element = "main"
)

var elements = []Element{
	ElementPage,
	ElementHeader,
	ElementName,
	ElementJobTitle,
	ElementContact,
	ElementSection,
	ElementSectionTitle,
	ElementEntry,
	ElementEntryTitle,
	ElementEntryMeta,
	ElementEntrySub,
	ElementBody,
	ElementList,
	ElementListItem,
	ElementColumns,
	ElementSidebar,
	ElementMain,
}

// ClassName is the CSS class used for an element in generated markup.
func ClassName(el Element) string {
	return "rb-" + string(el)
}

// Declaration is a single CSS property.
type Declaration struct {
	Property string
	Value    string
}

// Type scale relative to the body font size.
const (
	nameScale     = 2.2
	jobTitleScale = 1.2
	titleScale    = 1.15
	entryScale    = 1.0
	metaScale     = 0.9
)

// StyleSet is the resolved style sheet for one layout, accent color and
// set of design options.
type StyleSet struct {
	Layout model.Layout
	Style  LayoutStyle
	Accent RGB
	Design model.DesignOptions
	Font   model.Font
}

// ResolveStyles is total over layouts; unknown layouts use classic.
func ResolveStyles(layout model.Layout, primaryColor string, opts model.DesignOptions) StyleSet {
	if !layout.Valid() {
		layout = model.LayoutClassic
	}
	design := opts.Normalize()
	return StyleSet{
		Layout: layout,
		Style:  StyleFor(layout),
		Accent: NormalizeColor(primaryColor),
		Design: design,
		Font:   model.FontFor(design.FontFamily),
	}
}

func (s StyleSet) NameSize() float64     { return s.Design.FontSize * nameScale }
func (s StyleSet) JobTitleSize() float64 { return s.Design.FontSize * jobTitleScale }
func (s StyleSet) TitleSize() float64    { return s.Design.FontSize * titleScale }
func (s StyleSet) EntrySize() float64    { return s.Design.FontSize * entryScale }
func (s StyleSet) BodySize() float64     { return s.Design.FontSize }
func (s StyleSet) MetaSize() float64     { return s.Design.FontSize * metaScale }

func (s StyleSet) NameColor() RGB {
	switch {
	case s.Style.Header == HeaderBanner:
		return white
	case s.Style.AccentName:
		return s.Accent
	}
	return ink
}

// ContactColor is used for the job title and contact line.
func (s StyleSet) ContactColor() RGB {
	if s.Style.Header == HeaderBanner {
		return white
	}
	return muted
}

// HeaderFill reports the banner color, if the layout has a banner.
func (s StyleSet) HeaderFill() (RGB, bool) {
	if s.Style.Header == HeaderBanner {
		return s.Accent, true
	}
	return RGB{}, false
}

func (s StyleSet) TitleColor() RGB {
	switch {
	case s.Style.Title == TitleFilled:
		return white
	case s.Style.AccentTitles:
		return s.Accent
	}
	return heading
}

// TitleFill reports the section title background, if any.
func (s StyleSet) TitleFill() (RGB, bool) {
	if s.Style.Title == TitleFilled {
		return s.Accent, true
	}
	return RGB{}, false
}

// RuleColor reports the underline color for underlined titles.
func (s StyleSet) RuleColor() (RGB, bool) {
	if s.Style.Title != TitleUnderline {
		return RGB{}, false
	}
	if s.Style.AccentRules {
		return s.Accent, true
	}
	return heading, true
}

// StripeColor reports the page stripe color for layouts with one.
func (s StyleSet) StripeColor() (RGB, bool) {
	if s.Style.AccentStripe {
		return s.Accent, true
	}
	return RGB{}, false
}

func (s StyleSet) BodyColor() RGB { return body }
func (s StyleSet) MetaColor() RGB { return muted }

// TitleText applies the layout's title casing.
func (s StyleSet) TitleText(title string) string {
	if s.Style.UppercaseTitles {
		return strings.ToUpper(title)
	}
	return title
}

// IsSide reports whether a section belongs in the side column.
func (s StyleSet) IsSide(id contract.SectionID) bool {
	for _, side := range s.Style.SideSections {
		if side == id {
			return true
		}
	}
	return false
}

// Element returns the ordered declarations for one element.
func (s StyleSet) Element(el Element) []Declaration {
	d := s.Design
	lineHeight := num(d.LineSpacing)
	switch el {
	case ElementPage:
		decls := []Declaration{
			{"font-family", s.Font.Stack},
			{"font-size", pt(d.FontSize)},
			{"line-height", lineHeight},
			{"color", body.Hex()},
			{"background", white.Hex()},
		}
		if c, ok := s.StripeColor(); ok {
			decls = append(decls, Declaration{"border-left", "8px solid " + c.Hex()})
		}
		return decls
	case ElementHeader:
		decls := []Declaration{
			{"text-align", headerAlign(s.Style.Header)},
			{"margin-bottom", px(d.SectionSpacing)},
		}
		if fill, ok := s.HeaderFill(); ok {
			decls = append(decls,
				Declaration{"background", fill.Hex()},
				Declaration{"padding", "18px 24px"},
			)
		}
		return decls
	case ElementName:
		return []Declaration{
			{"font-size", pt(s.NameSize())},
			{"font-weight", "700"},
			{"color", s.NameColor().Hex()},
			{"margin", "0"},
		}
	case ElementJobTitle:
		return []Declaration{
			{"font-size", pt(s.JobTitleSize())},
			{"color", s.ContactColor().Hex()},
			{"margin", "4px 0 0 0"},
		}
	case ElementContact:
		return []Declaration{
			{"font-size", pt(s.MetaSize())},
			{"color", s.ContactColor().Hex()},
			{"margin", "4px 0 0 0"},
		}
	case ElementSection:
		return []Declaration{
			{"margin-bottom", px(d.SectionSpacing)},
		}
	case ElementSectionTitle:
		decls := []Declaration{
			{"font-size", pt(s.TitleSize())},
			{"font-weight", "700"},
			{"color", s.TitleColor().Hex()},
			{"margin", "0 0 " + px(d.ParagraphSpacing) + " 0"},
		}
		if s.Style.UppercaseTitles {
			decls = append(decls, Declaration{"text-transform", "uppercase"}, Declaration{"letter-spacing", "0.05em"})
		}
		if fill, ok := s.TitleFill(); ok {
			decls = append(decls, Declaration{"background", fill.Hex()}, Declaration{"padding", "2px 6px"})
		}
		if rule, ok := s.RuleColor(); ok {
			decls = append(decls, Declaration{"border-bottom", "1px solid " + rule.Hex()}, Declaration{"padding-bottom", "2px"})
		}
		return decls
	case ElementEntry:
		return []Declaration{
			{"margin-bottom", px(d.ParagraphSpacing)},
		}
	case ElementEntryTitle:
		return []Declaration{
			{"font-size", pt(s.EntrySize())},
			{"font-weight", "700"},
			{"color", heading.Hex()},
		}
	case ElementEntryMeta:
		return []Declaration{
			{"font-size", pt(s.MetaSize())},
			{"color", muted.Hex()},
			{"float", "right"},
		}
	case ElementEntrySub:
		return []Declaration{
			{"font-size", pt(s.MetaSize())},
			{"font-style", "italic"},
			{"color", muted.Hex()},
			{"margin", "0"},
		}
	case ElementBody:
		return []Declaration{
			{"font-size", pt(s.BodySize())},
			{"white-space", "pre-wrap"},
			{"margin", "2px 0 0 0"},
		}
	case ElementList:
		return []Declaration{
			{"margin", "0"},
			{"padding-left", "16px"},
		}
	case ElementListItem:
		return []Declaration{
			{"font-size", pt(s.BodySize())},
			{"margin-bottom", "2px"},
		}
	case ElementColumns:
		return []Declaration{
			{"display", "flex"},
			{"gap", "24px"},
		}
	case ElementSidebar:
		return []Declaration{
			{"width", "32%"},
			{"padding-right", "12px"},
			{"border-right", "1px solid " + s.Accent.Hex()},
		}
	case ElementMain:
		return []Declaration{
			{"flex", "1"},
		}
	}
	return nil
}

// Inline formats an element's declarations as a style attribute value.
func (s StyleSet) Inline(el Element) string {
	return joinDecls(s.Element(el), "; ")
}

// CSS renders a class rule for every element, in a fixed order.
func (s StyleSet) CSS() string {
	var b strings.Builder
	for _, el := range elements {
		decls := s.Element(el)
		if len(decls) == 0 {
			continue
		}
		b.WriteString(".")
		b.WriteString(ClassName(el))
		b.WriteString(" { ")
		b.WriteString(joinDecls(decls, "; "))
		b.WriteString("; }\n")
	}
	return b.String()
}

// Properties returns an element's declarations as a map, for comparisons.
func (s StyleSet) Properties(el Element) map[string]string {
	out := make(map[string]string)
	for _, d := range s.Element(el) {
		out[d.Property] = d.Value
	}
	return out
}

func joinDecls(decls []Declaration, sep string) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, sep)
}

func headerAlign(h HeaderTreatment) string {
	if h == HeaderCentered {
		return "center"
	}
	return "left"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pt(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + "pt"
}

func px(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + "px"
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
