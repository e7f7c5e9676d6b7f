// Package style turns semantic color words into concrete paint.
//
// A Profile is the lookup table supplied by the caller. Resolver applies a
// profile to (color, shape) pairs and caches the result so that nodes sharing
// a visual treatment share one gradient or pattern definition.
package style

import (
	"sort"
	"strings"
)

// Profile is a named palette. PaletteFor receives normalized color words
// (lower case, single spaces).
type Profile interface {
	ID() string
	PaletteFor(color string) (string, bool)
	DefaultColor() string
}

// Treatments is implemented by profiles that pick a paint treatment per
// shape kind.
type Treatments interface {
	TreatmentFor(shape string) Treatment
}

// Strokes is implemented by profiles with an outline preset. An empty color
// means "derive from the fill".
type Strokes interface {
	StrokeFor() (color string, width float64)
}

// Backgrounds is implemented by profiles that paint the canvas.
type Backgrounds interface {
	Background() string
}

// Palettes is implemented by profiles that can enumerate their colors, in a
// stable order. It enables nearest-color matching.
type Palettes interface {
	Colors() []string
}

// Opacities is implemented by profiles with a global fill opacity.
type Opacities interface {
	Opacity() float64
}

// StrokePreset is the outline part of a Table.
type StrokePreset struct {
	Color string  `yaml:"color" json:"color" validate:"omitempty,hexcolor"`
	Width float64 `yaml:"width" json:"width" validate:"gte=0"`
}

// Table is the file-backed Profile implementation. It satisfies every
// optional capability interface.
type Table struct {
	Name        string               `yaml:"name" json:"name" validate:"required"`
	Description string               `yaml:"description" json:"description"`
	Default     string               `yaml:"default_color" json:"default_color" validate:"required,hexcolor"`
	Fill        string               `yaml:"background_color" json:"background_color" validate:"omitempty,hexcolor"`
	Stroke      StrokePreset         `yaml:"stroke" json:"stroke"`
	Alpha       float64              `yaml:"opacity" json:"opacity" validate:"gte=0,lte=1"`
	Palette     map[string]string    `yaml:"palette" json:"palette" validate:"dive,hexcolor"`
	Treatment   map[string]Treatment `yaml:"treatments" json:"treatments"`
}

var (
	_ Profile     = (*Table)(nil)
	_ Treatments  = (*Table)(nil)
	_ Strokes     = (*Table)(nil)
	_ Backgrounds = (*Table)(nil)
	_ Palettes    = (*Table)(nil)
	_ Opacities   = (*Table)(nil)
)

func (t *Table) ID() string { return t.Name }

func (t *Table) PaletteFor(color string) (string, bool) {
	c, ok := t.Palette[color]
	return c, ok
}

func (t *Table) DefaultColor() string { return t.Default }

func (t *Table) Background() string { return t.Fill }

func (t *Table) StrokeFor() (string, float64) { return t.Stroke.Color, t.Stroke.Width }

// Opacity defaults to fully opaque when unset.
func (t *Table) Opacity() float64 {
	if t.Alpha <= 0 {
		return 1
	}
	return t.Alpha
}

// TreatmentFor looks up the shape, then the "*" wildcard, then falls back to
// flat paint.
func (t *Table) TreatmentFor(shape string) Treatment {
	if tr, ok := t.Treatment[shape]; ok && tr.Valid() {
		return tr
	}
	if tr, ok := t.Treatment["*"]; ok && tr.Valid() {
		return tr
	}
	return TreatmentFlat
}

// Colors returns palette values ordered by their color word.
func (t *Table) Colors() []string {
	keys := make([]string, 0, len(t.Palette))
	for k := range t.Palette {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = t.Palette[k]
	}
	return out
}

// normalize lowercases the palette keys so lookups match normalized words.
func (t *Table) normalize() {
	if len(t.Palette) == 0 {
		return
	}
	p := make(map[string]string, len(t.Palette))
	for k, v := range t.Palette {
		p[normalizeWord(k)] = strings.ToLower(v)
	}
	t.Palette = p
}
