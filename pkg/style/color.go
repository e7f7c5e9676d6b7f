package style

import (
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// FallbackColor is used when a profile has no usable default.
const FallbackColor = "#808080"

// hueTable maps common color words to an approximate hue in degrees.
var hueTable = map[string]float64{
	"red":       0,
	"scarlet":   5,
	"vermilion": 10,
	"rust":      18,
	"orange":    30,
	"amber":     45,
	"gold":      50,
	"golden":    50,
	"yellow":    58,
	"lemon":     60,
	"lime":      90,
	"green":     120,
	"grass":     110,
	"forest":    130,
	"emerald":   140,
	"mint":      150,
	"jade":      155,
	"teal":      175,
	"cyan":      185,
	"turquoise": 175,
	"aqua":      185,
	"sky":       200,
	"azure":     210,
	"ocean":     205,
	"sea":       195,
	"blue":      225,
	"cobalt":    220,
	"navy":      230,
	"sapphire":  225,
	"indigo":    260,
	"violet":    275,
	"purple":    285,
	"lavender":  270,
	"plum":      300,
	"magenta":   305,
	"fuchsia":   305,
	"pink":      330,
	"rose":      340,
	"crimson":   348,
	"ruby":      350,
	"cherry":    352,
	"brown":     25,
	"chocolate": 25,
	"tan":       35,
	"beige":     40,
}

// modifiers adjust saturation and lightness of the color they prefix.
var modifiers = map[string]struct{ ds, dl float64 }{
	"light":  {0, 0.2},
	"pale":   {-0.3, 0.25},
	"dark":   {0, -0.2},
	"deep":   {0.1, -0.12},
	"bright": {0.2, 0.05},
	"dull":   {-0.3, 0},
}

// normalizeWord lowercases a color word and collapses separators to single
// spaces.
func normalizeWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// parseHex accepts "#rgb" and "#rrggbb".
func parseHex(s string) (colorful.Color, bool) {
	if len(s) == 4 && s[0] == '#' {
		s = "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// defaultColor returns the profile default, or FallbackColor if it does not
// parse.
func defaultColor(p Profile) colorful.Color {
	if c, ok := parseHex(strings.ToLower(p.DefaultColor())); ok {
		return c
	}
	c, _ := parseHex(FallbackColor)
	return c
}

// ResolveColor maps a color word onto a concrete color using the profile. It
// never fails; unknown words produce the profile default.
//
// Order: palette entry, hex literal, modifier + base word, hue table,
// SVG color keyword, default.
func ResolveColor(p Profile, word string) colorful.Color {
	c, ok := lookupColor(p, normalizeWord(word))
	if !ok {
		return defaultColor(p)
	}
	return c
}

func lookupColor(p Profile, w string) (colorful.Color, bool) {
	if w == "" {
		return colorful.Color{}, false
	}
	if hex, ok := p.PaletteFor(w); ok {
		if c, ok := parseHex(strings.ToLower(hex)); ok {
			return c, true
		}
	}
	if c, ok := parseHex(w); ok {
		return c, true
	}
	if head, rest, found := strings.Cut(w, " "); found {
		if m, ok := modifiers[head]; ok {
			base, ok := lookupColor(p, rest)
			if !ok {
				base = defaultColor(p)
			}
			h, s, l := base.Hsl()
			return colorful.Hsl(h, clamp01(s+m.ds), clamp01(l+m.dl)).Clamped(), true
		}
	}
	if hue, ok := hueTable[w]; ok {
		return nearestByHue(p, hue), true
	}
	if rgba, ok := colornames.Map[strings.ReplaceAll(w, " ", "")]; ok {
		c, _ := colorful.MakeColor(rgba)
		return nearestByLab(p, c), true
	}
	// "sky blue", "forest green": the last word carries the hue.
	if i := strings.LastIndexByte(w, ' '); i >= 0 {
		return lookupColor(p, w[i+1:])
	}
	return colorful.Color{}, false
}

// paletteColors returns the parsed palette of p, or nil if p cannot
// enumerate it.
func paletteColors(p Profile) []colorful.Color {
	pp, ok := p.(Palettes)
	if !ok {
		return nil
	}
	var out []colorful.Color
	for _, hex := range pp.Colors() {
		if c, ok := parseHex(strings.ToLower(hex)); ok {
			out = append(out, c)
		}
	}
	return out
}

// maxHueDistance is how far a palette color's hue may be from the requested
// hue and still be chosen over a synthesized color.
const maxHueDistance = 25.0

func nearestByHue(p Profile, hue float64) colorful.Color {
	best, bestDist := colorful.Color{}, math.Inf(1)
	for _, c := range paletteColors(p) {
		h, s, _ := c.Hsl()
		if s < 0.15 {
			continue
		}
		d := math.Abs(h - hue)
		if d > 180 {
			d = 360 - d
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist <= maxHueDistance {
		return best
	}
	return colorful.Hsl(hue, 0.7, 0.5).Clamped()
}

// maxLabDistance bounds palette substitution for named colors.
const maxLabDistance = 0.12

func nearestByLab(p Profile, want colorful.Color) colorful.Color {
	best, bestDist := want, math.Inf(1)
	for _, c := range paletteColors(p) {
		if d := want.DistanceLab(c); d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist <= maxLabDistance {
		return best
	}
	return want
}

// Lighten shifts the HSL lightness of c by dl, clamped to [0, 1].
func Lighten(c colorful.Color, dl float64) colorful.Color {
	h, s, l := c.Hsl()
	return colorful.Hsl(h, s, clamp01(l+dl)).Clamped()
}

// Shade lightens or darkens a hex color. Unparseable input is returned
// unchanged.
func Shade(hex string, dl float64) string {
	c, ok := parseHex(strings.ToLower(hex))
	if !ok {
		return hex
	}
	return Lighten(c, dl).Hex()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
