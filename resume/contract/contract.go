// Package contract is the single section-visibility and ordering table
// shared by the preview, print and export renderers.
package contract

import (
	"strings"

	"resume-builder/resume/model"
)

type SectionID string

const (
	SectionSummary        SectionID = "summary"
	SectionExperience     SectionID = "experience"
	SectionEducation      SectionID = "education"
	SectionSkills         SectionID = "skills"
	SectionLanguages      SectionID = "languages"
	SectionCertifications SectionID = "certifications"
	SectionAwards         SectionID = "awards"
	SectionWebsites       SectionID = "websites"
	SectionReferences     SectionID = "references"
	SectionHobbies        SectionID = "hobbies"
	SectionCustom         SectionID = "customSections"
)

// MaxPages is the number of logical pages a resume can span.
const MaxPages = 2

type section struct {
	id    SectionID
	title string
	page  int
	has   func(model.ResumeData) bool
}

var sections = []section{
	{SectionSummary, "Professional Summary", 1, func(d model.ResumeData) bool { return HasValue(d.Summary) }},
	{SectionExperience, "Experience", 1, func(d model.ResumeData) bool { return len(d.Experiences) > 0 }},
	{SectionEducation, "Education", 1, func(d model.ResumeData) bool { return len(d.Educations) > 0 }},
	{SectionSkills, "Skills", 1, func(d model.ResumeData) bool { return len(d.Skills) > 0 }},
	{SectionLanguages, "Languages", 1, func(d model.ResumeData) bool { return len(d.Finalize.Languages) > 0 }},
	{SectionCertifications, "Certifications", 1, func(d model.ResumeData) bool { return len(d.Finalize.Certifications) > 0 }},
	{SectionAwards, "Awards", 2, func(d model.ResumeData) bool { return len(d.Finalize.Awards) > 0 }},
	{SectionWebsites, "Websites", 1, func(d model.ResumeData) bool { return len(d.Finalize.Websites) > 0 }},
	{SectionReferences, "References", 2, func(d model.ResumeData) bool { return len(d.Finalize.References) > 0 }},
	{SectionHobbies, "Hobbies", 2, func(d model.ResumeData) bool { return len(d.Finalize.Hobbies) > 0 }},
	{SectionCustom, "Additional Information", 2, func(d model.ResumeData) bool { return len(d.Finalize.CustomSections) > 0 }},
}

var canonicalOrder = []SectionID{
	SectionSummary,
	SectionExperience,
	SectionEducation,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
	SectionAwards,
	SectionWebsites,
	SectionReferences,
	SectionHobbies,
	SectionCustom,
}

// Harvard convention: education leads and there is no summary.
var harvardOrder = []SectionID{
	SectionEducation,
	SectionExperience,
	SectionSkills,
	SectionLanguages,
	SectionCertifications,
	SectionAwards,
	SectionWebsites,
	SectionReferences,
	SectionHobbies,
	SectionCustom,
}

var orderByLayout = map[model.Layout][]SectionID{
	model.LayoutClassic:   canonicalOrder,
	model.LayoutModern:    canonicalOrder,
	model.LayoutSidebar:   canonicalOrder,
	model.LayoutBold:      canonicalOrder,
	model.LayoutMinimal:   canonicalOrder,
	model.LayoutExecutive: canonicalOrder,
	model.LayoutHarvard:   harvardOrder,
}

func lookup(id SectionID) (section, bool) {
	for _, s := range sections {
		if s.id == id {
			return s, true
		}
	}
	return section{}, false
}

// All returns every section id in canonical order.
func All() []SectionID {
	out := make([]SectionID, len(canonicalOrder))
	copy(out, canonicalOrder)
	return out
}

// Order returns the emission order for a layout. Unknown layouts use the
// classic order.
func Order(layout model.Layout) []SectionID {
	order, ok := orderByLayout[layout]
	if !ok {
		order = orderByLayout[model.LayoutClassic]
	}
	out := make([]SectionID, len(order))
	copy(out, order)
	return out
}

// Visible reports whether a section has content.
func Visible(id SectionID, data model.ResumeData) bool {
	s, ok := lookup(id)
	return ok && s.has(data)
}

// Active lists the sections with content in canonical order. It does not
// depend on the layout.
func Active(data model.ResumeData) []SectionID {
	out := make([]SectionID, 0, len(sections))
	for _, id := range canonicalOrder {
		if Visible(id, data) {
			out = append(out, id)
		}
	}
	return out
}

// Ordered lists the sections a renderer emits for a layout, in order.
func Ordered(layout model.Layout, data model.ResumeData) []SectionID {
	order := Order(layout)
	out := make([]SectionID, 0, len(order))
	for _, id := range order {
		if Visible(id, data) {
			out = append(out, id)
		}
	}
	return out
}

// PageOf returns the logical page a section belongs to.
func PageOf(id SectionID) int {
	if s, ok := lookup(id); ok {
		return s.page
	}
	return 1
}

// TotalPages is 2 when any page-two section has content, otherwise 1.
func TotalPages(data model.ResumeData) int {
	for _, s := range sections {
		if s.page == 2 && s.has(data) {
			return 2
		}
	}
	return 1
}

// OnPage lists the ordered sections rendered on one logical page.
func OnPage(layout model.Layout, data model.ResumeData, page int) []SectionID {
	ordered := Ordered(layout, data)
	out := make([]SectionID, 0, len(ordered))
	for _, id := range ordered {
		if PageOf(id) == page {
			out = append(out, id)
		}
	}
	return out
}

// Title is the display heading for a section.
func Title(id SectionID) string {
	if s, ok := lookup(id); ok {
		return s.title
	}
	return string(id)
}

// HasValue reports whether a string has non-whitespace content.
func HasValue(value string) bool {
	return strings.TrimSpace(value) != ""
}
