package model

import "strings"

type Layout string

const (
	LayoutClassic   Layout = "classic"
	LayoutModern    Layout = "modern"
	LayoutSidebar   Layout = "sidebar"
	LayoutBold      Layout = "bold"
	LayoutMinimal   Layout = "minimal"
	LayoutExecutive Layout = "executive"
	LayoutHarvard   Layout = "harvard"
)

// Layouts is the closed set of layouts in catalog order.
var Layouts = []Layout{
	LayoutClassic,
	LayoutModern,
	LayoutSidebar,
	LayoutBold,
	LayoutMinimal,
	LayoutExecutive,
	LayoutHarvard,
}

func (l Layout) Valid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

// ParseLayout falls back to classic for anything outside the closed set.
func ParseLayout(value string) Layout {
	l := Layout(strings.ToLower(strings.TrimSpace(value)))
	if l.Valid() {
		return l
	}
	return LayoutClassic
}

// Template is a read-only catalog entry.
type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PrimaryColor string `json:"primaryColor"`
	Layout       Layout `json:"layout"`
}

var catalog = []Template{
	{
		ID:           "classic",
		Name:         "Classic",
		Description:  "Centered header with underlined section titles.",
		PrimaryColor: "#1e3a5f",
		Layout:       LayoutClassic,
	},
	{
		ID:           "modern",
		Name:         "Modern",
		Description:  "Left-aligned header with accent-colored headings.",
		PrimaryColor: "#2563eb",
		Layout:       LayoutModern,
	},
	{
		ID:           "sidebar",
		Name:         "Sidebar",
		Description:  "Two-column layout with skills and languages in a side column.",
		PrimaryColor: "#0f766e",
		Layout:       LayoutSidebar,
	},
	{
		ID:           "bold",
		Name:         "Bold",
		Description:  "Color-block banner header with filled section titles.",
		PrimaryColor: "#7c3aed",
		Layout:       LayoutBold,
	},
	{
		ID:           "minimal",
		Name:         "Minimal",
		Description:  "Plain typography with generous whitespace.",
		PrimaryColor: "#374151",
		Layout:       LayoutMinimal,
	},
	{
		ID:           "executive",
		Name:         "Executive",
		Description:  "Banner header with ruled section titles for senior roles.",
		PrimaryColor: "#1f2937",
		Layout:       LayoutExecutive,
	},
	{
		ID:           "harvard",
		Name:         "Harvard",
		Description:  "Academic convention: education first, no summary.",
		PrimaryColor: "#000000",
		Layout:       LayoutHarvard,
	},
}

// Templates returns a copy of the catalog.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// LookupTemplate finds a catalog entry by id.
func LookupTemplate(id string) (Template, bool) {
	trimmed := strings.TrimSpace(id)
	for _, tpl := range catalog {
		if tpl.ID == trimmed {
			return tpl, true
		}
	}
	return Template{}, false
}

// ResolveTemplate returns the matching template, or the first catalog
// entry with ok=false when id is unknown. Callers log the fallback.
func ResolveTemplate(id string) (Template, bool) {
	if tpl, ok := LookupTemplate(id); ok {
		return tpl, true
	}
	return catalog[0], false
}
