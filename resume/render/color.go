package render

import (
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"resume-builder/internal/shared/telemetry"
)

// RGB is an opaque 8-bit color triple, the only color form the print
// path accepts.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) ints() (int, int, int) {
	return int(c.R), int(c.G), int(c.B)
}

// DefaultAccent is returned by NormalizeColor when parsing fails.
var DefaultAccent = RGB{R: 37, G: 99, B: 235}

var (
	white = RGB{R: 255, G: 255, B: 255}
	// ink and heading mirror the name and section heading colors of the
	// original Word template.
	ink     = RGB{R: 17, G: 17, B: 17}
	heading = RGB{R: 31, G: 41, B: 55}
	body    = RGB{R: 55, G: 65, B: 81}
	muted   = RGB{R: 107, G: 114, B: 128}
)

// NormalizeColor parses any CSS color syntax (hex, rgb(), hsl(), named)
// into an RGB triple. Unparseable input yields DefaultAccent and a
// color.fallback log line. Alpha is composited over white.
func NormalizeColor(input string) RGB {
	trimmed := strings.TrimSpace(input)
	c, err := csscolorparser.Parse(trimmed)
	if err != nil || trimmed == "" {
		telemetry.Warn("color.fallback", map[string]any{
			"input":    input,
			"fallback": DefaultAccent.Hex(),
		})
		return DefaultAccent
	}
	r, g, b, a := c.RGBA255()
	if a == 255 {
		return RGB{R: r, G: g, B: b}
	}
	alpha := float64(a) / 255
	blend := func(v uint8) uint8 {
		return uint8(float64(v)*alpha + 255*(1-alpha) + 0.5)
	}
	return RGB{R: blend(r), G: blend(g), B: blend(b)}
}
