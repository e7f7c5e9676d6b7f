package style

import (
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultStrokeWidth is used when a profile has no stroke preset.
const DefaultStrokeWidth = 2.0

// cacheKey identifies one visual treatment.
type cacheKey struct {
	profile string
	color   string
	shape   string
}

// Resolver resolves paint and remembers every treatment it produced. A
// Resolver belongs to a single build; it is safe for concurrent use.
type Resolver struct {
	mu      sync.Mutex
	entries map[cacheKey]Spec
	defs    []Spec
	defIDs  map[string]bool
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{entries: make(map[cacheKey]Spec), defIDs: make(map[string]bool)}
}

// Resolve returns the paint for a shape of the given semantic color. Repeat
// calls with the same (profile, color, shape) return the cached spec.
func (r *Resolver) Resolve(p Profile, color, shape string) Spec {
	key := cacheKey{profile: p.ID(), color: normalizeWord(color), shape: shape}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.entries[key]; ok {
		return s
	}
	s := buildSpec(p, key, ResolveColor(p, key.color))
	r.entries[key] = s
	// Different words can land on the same color; one definition serves
	// them all.
	if id := s.DefinitionID(); id != "" && !r.defIDs[id] {
		r.defIDs[id] = true
		r.defs = append(r.defs, s)
	}
	return s
}

// Definitions returns the specs carrying a gradient or pattern, one per
// definition id, in the order they were first resolved.
func (r *Resolver) Definitions() []Spec {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Spec, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len reports the number of cached treatments.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func buildSpec(p Profile, key cacheKey, base colorful.Color) Spec {
	s := Spec{
		Treatment:   TreatmentFlat,
		Base:        base.Hex(),
		StrokeWidth: DefaultStrokeWidth,
		Opacity:     1,
	}
	if tp, ok := p.(Treatments); ok {
		s.Treatment = tp.TreatmentFor(key.shape)
	}
	if sp, ok := p.(Strokes); ok {
		c, w := sp.StrokeFor()
		if c != "" {
			s.Stroke = strings.ToLower(c)
		}
		if w > 0 {
			s.StrokeWidth = w
		}
	}
	if s.Stroke == "" {
		s.Stroke = Lighten(base, -0.25).Hex()
	}
	if op, ok := p.(Opacities); ok {
		s.Opacity = op.Opacity()
	}

	id := definitionID(s.Treatment, key.shape, s.Base)
	switch s.Treatment {
	case TreatmentLinear:
		s.Gradient = &Gradient{
			ID: id, X1: 0, Y1: 0, X2: 0, Y2: 1,
			Stops: []Stop{
				{Offset: 0, Color: Lighten(base, 0.2).Hex()},
				{Offset: 1, Color: Lighten(base, -0.15).Hex()},
			},
		}
	case TreatmentRadial:
		s.Gradient = &Gradient{
			ID: id, Radial: true,
			Stops: []Stop{
				{Offset: 0, Color: Lighten(base, 0.3).Hex()},
				{Offset: 0.7, Color: s.Base},
				{Offset: 1, Color: Lighten(base, -0.1).Hex()},
			},
		}
	case TreatmentRainbow:
		s.Gradient = rainbow(id, base)
	case TreatmentStripes, TreatmentDots, TreatmentGrid:
		s.Pattern = &Pattern{
			ID:         id,
			Kind:       s.Treatment,
			Tile:       patternTile(s.Treatment),
			Background: Lighten(base, 0.25).Hex(),
			Foreground: s.Base,
			LineWidth:  2,
		}
	}
	return s
}

// rainbow spreads seven stops around the hue circle starting at the base hue.
func rainbow(id string, base colorful.Color) *Gradient {
	h, _, _ := base.Hsl()
	g := &Gradient{ID: id, X1: 0, Y1: 0, X2: 1, Y2: 0}
	const n = 7
	for i := 0; i < n; i++ {
		hue := h + float64(i)*300.0/(n-1)
		for hue >= 360 {
			hue -= 360
		}
		g.Stops = append(g.Stops, Stop{
			Offset: float64(i) / (n - 1),
			Color:  colorful.Hsl(hue, 0.85, 0.55).Clamped().Hex(),
		})
	}
	return g
}

func patternTile(t Treatment) float64 {
	switch t {
	case TreatmentDots:
		return 10
	case TreatmentGrid:
		return 12
	}
	return 8
}

// definitionID derives a stable id from the treatment, shape and color.
func definitionID(t Treatment, shape, hex string) string {
	var prefix string
	switch t {
	case TreatmentLinear:
		prefix = "lg"
	case TreatmentRadial:
		prefix = "rg"
	case TreatmentRainbow:
		prefix = "rb"
	case TreatmentStripes, TreatmentDots, TreatmentGrid:
		prefix = "pt-" + string(t)
	default:
		return ""
	}
	return prefix + "-" + slug(shape) + "-" + strings.TrimPrefix(hex, "#")
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "x"
	}
	return b.String()
}
