package render

import (
	"regexp"
	"strings"
)

// Palette maps a series index to a colour token.
type Palette func(index int) string

// DefaultColors is the colour cycle used when no palette is configured.
var DefaultColors = []string{"blue", "pink", "indigo", "green", "violet", "yellow"}

// DefaultPalette cycles through DefaultColors.
var DefaultPalette = NewPalette(DefaultColors...)

// NewPalette returns a palette cycling through colors. An empty list falls back to DefaultColors.
func NewPalette(colors ...string) Palette {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	cycle := append([]string(nil), colors...)
	return func(index int) string {
		if index < 0 {
			index = -index
		}
		return cycle[index%len(cycle)]
	}
}

var nonWordRe = regexp.MustCompile(`[^\w-]+`)

// Slugify turns a series name into an id usable for gradient definitions.
func Slugify(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return nonWordRe.ReplaceAllString(slug, "")
}
