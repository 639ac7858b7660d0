package model

import "strings"

// DesignOptions are the user-adjustable typography and spacing values.
// One shared type feeds the preview, print and export paths.
type DesignOptions struct {
	FontFamily       string  `json:"fontFamily"`
	FontSize         float64 `json:"fontSize"`         // points
	SectionSpacing   float64 `json:"sectionSpacing"`   // px
	ParagraphSpacing float64 `json:"paragraphSpacing"` // px
	LineSpacing      float64 `json:"lineSpacing"`      // multiplier
}

const (
	MinFontSize    = 8.0
	MaxFontSize    = 16.0
	MaxSpacing     = 48.0
	MinLineSpacing = 1.0
	MaxLineSpacing = 2.5
)

// DefaultDesignOptions returns the defaults applied to a fresh resume.
func DefaultDesignOptions() DesignOptions {
	return DesignOptions{
		FontFamily:       "Inter",
		FontSize:         11,
		SectionSpacing:   16,
		ParagraphSpacing: 8,
		LineSpacing:      1.5,
	}
}

// Normalize fills zero values from the defaults and clamps the rest.
// Unknown font families fall back to the default family.
func (o DesignOptions) Normalize() DesignOptions {
	def := DefaultDesignOptions()
	out := o

	if _, ok := LookupFont(out.FontFamily); !ok {
		out.FontFamily = def.FontFamily
	}
	if out.FontSize <= 0 {
		out.FontSize = def.FontSize
	}
	out.FontSize = clamp(out.FontSize, MinFontSize, MaxFontSize)

	if out.SectionSpacing < 0 {
		out.SectionSpacing = def.SectionSpacing
	}
	out.SectionSpacing = clamp(out.SectionSpacing, 0, MaxSpacing)

	if out.ParagraphSpacing < 0 {
		out.ParagraphSpacing = def.ParagraphSpacing
	}
	out.ParagraphSpacing = clamp(out.ParagraphSpacing, 0, MaxSpacing)

	if out.LineSpacing <= 0 {
		out.LineSpacing = def.LineSpacing
	}
	out.LineSpacing = clamp(out.LineSpacing, MinLineSpacing, MaxLineSpacing)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PrintFace is one of the built-in faces the PDF path can use without
// embedding font files.
type PrintFace string

const (
	FaceHelvetica PrintFace = "Helvetica"
	FaceTimes     PrintFace = "Times"
	FaceCourier   PrintFace = "Courier"
)

// Font is a selectable font family with its CSS stack and print face.
type Font struct {
	Name  string    `json:"name"`
	Stack string    `json:"stack"`
	Face  PrintFace `json:"printFace"`
}

var fonts = []Font{
	{Name: "Inter", Stack: "'Inter', Arial, sans-serif", Face: FaceHelvetica},
	{Name: "Roboto", Stack: "'Roboto', Arial, sans-serif", Face: FaceHelvetica},
	{Name: "Open Sans", Stack: "'Open Sans', Arial, sans-serif", Face: FaceHelvetica},
	{Name: "Lato", Stack: "'Lato', Arial, sans-serif", Face: FaceHelvetica},
	{Name: "Montserrat", Stack: "'Montserrat', Arial, sans-serif", Face: FaceHelvetica},
	{Name: "Georgia", Stack: "Georgia, 'Times New Roman', serif", Face: FaceTimes},
	{Name: "Merriweather", Stack: "'Merriweather', Georgia, serif", Face: FaceTimes},
	{Name: "Playfair Display", Stack: "'Playfair Display', Georgia, serif", Face: FaceTimes},
	{Name: "Times New Roman", Stack: "'Times New Roman', Times, serif", Face: FaceTimes},
	{Name: "Source Code Pro", Stack: "'Source Code Pro', 'Courier New', monospace", Face: FaceCourier},
}

// Fonts lists the selectable font families in display order.
func Fonts() []Font {
	out := make([]Font, len(fonts))
	copy(out, fonts)
	return out
}

// LookupFont matches a family name case-insensitively.
func LookupFont(name string) (Font, bool) {
	trimmed := strings.TrimSpace(name)
	for _, f := range fonts {
		if strings.EqualFold(f.Name, trimmed) {
			return f, true
		}
	}
	return Font{}, false
}

// FontFor resolves a family name, falling back to the default family.
func FontFor(name string) Font {
	if f, ok := LookupFont(name); ok {
		return f
	}
	f, _ := LookupFont(DefaultDesignOptions().FontFamily)
	return f
}
