package core

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// reportPalette holds the fallback display colors for reports without an
// explicit color.
var reportPalette = []colorful.Color{
	{R: 100 / 255.0, G: 149 / 255.0, B: 237 / 255.0}, // cornflower blue
	{R: 143 / 255.0, G: 188 / 255.0, B: 143 / 255.0}, // sage green
	{R: 205 / 255.0, G: 133 / 255.0, B: 63 / 255.0},  // terracotta
	{R: 147 / 255.0, G: 112 / 255.0, B: 219 / 255.0}, // medium purple
	{R: 240 / 255.0, G: 128 / 255.0, B: 128 / 255.0}, // light coral
	{R: 72 / 255.0, G: 61 / 255.0, B: 139 / 255.0},   // dark slate blue
	{R: 189 / 255.0, G: 183 / 255.0, B: 107 / 255.0}, // khaki
	{R: 178 / 255.0, G: 102 / 255.0, B: 102 / 255.0}, // dusty rose
	{R: 70 / 255.0, G: 130 / 255.0, B: 180 / 255.0},  // steel blue
	{R: 102 / 255.0, G: 178 / 255.0, B: 102 / 255.0}, // soft green
}

// ColorFromName picks a stable palette color for name.
func ColorFromName(name string) colorful.Color {
	var hash uint32
	for i := 0; i < len(name); i++ {
		hash = hash*31 + uint32(name[i])
	}
	return reportPalette[hash%uint32(len(reportPalette))]
}

// ParseHexColor parses "#6495ED" or "6495ED". Only six-digit forms are
// accepted.
func ParseHexColor(s string) (colorful.Color, bool) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ReportColor returns the report's display color as a "#rrggbb" string:
// the explicit color when it parses, otherwise one derived from the name.
func ReportColor(explicit, name string) string {
	if c, ok := ParseHexColor(explicit); ok {
		return c.Hex()
	}
	return ColorFromName(name).Hex()
}
