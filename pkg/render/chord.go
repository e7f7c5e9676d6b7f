package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/samber/lo"
)

// ChordConfig shapes chord maps. Bow is the fraction of the way each
// control point moves from its endpoint toward the circle center.
type ChordConfig struct {
	MinBow       float64 `validate:"gte=0,lte=1"`
	MaxBow       float64 `validate:"gtefield=MinBow,lte=1"`
	MinWidth     float64 `validate:"gte=0"`
	MaxWidth     float64 `validate:"gtefield=MinWidth"`
	MarkerRadius float64 `validate:"gte=0"`
}

// DefaultChordConfig returns the documented defaults.
func DefaultChordConfig() ChordConfig {
	return ChordConfig{
		MinBow:       0.2,
		MaxBow:       0.85,
		MinWidth:     1,
		MaxWidth:     8,
		MarkerRadius: 4,
	}
}

func (c ChordConfig) withDefaults() ChordConfig {
	if c == (ChordConfig{}) {
		return DefaultChordConfig()
	}
	if c.MaxBow < c.MinBow {
		c.MaxBow = c.MinBow
	}
	if c.MaxWidth < c.MinWidth {
		c.MaxWidth = c.MinWidth
	}
	return c
}

// Chord is one weighted connection drawn as a cubic curve.
type Chord struct {
	Source, Target string
	// Indices into ChordLayout.Entities.
	From, To int
	Weight   float64

	Start, Control1, Control2, End geom.Vec2

	Bow     float64
	Width   float64
	Opacity float64
}

// ChordLayout is the computed geometry of a chord map.
type ChordLayout struct {
	Center    geom.Vec2
	Radius    float64
	Entities  []string
	Positions []geom.Vec2
	Chords    []Chord
}

// LayoutChords places entities on a circle in the order they first appear
// in links, at angle i/n*2π, and connects them. Heavier links bow further
// toward the center and draw wider, both scaled by weight over the maximum
// weight. Self links and links with a non-positive weight are not drawn.
func LayoutChords(links []scene.Link, center geom.Vec2, radius float64, cfg ChordConfig) ChordLayout {
	cfg = cfg.withDefaults()

	names := lo.Compact(lo.Uniq(lo.FlatMap(links, func(l scene.Link, _ int) []string {
		return []string{l.Source, l.Target}
	})))
	index := make(map[string]int, len(names))
	out := ChordLayout{
		Center:    center,
		Radius:    radius,
		Entities:  names,
		Positions: make([]geom.Vec2, len(names)),
	}
	for i, name := range names {
		index[name] = i
		out.Positions[i] = geom.Polar(center, radius, float64(i)/float64(len(names))*2*math.Pi)
	}

	drawn := lo.Filter(links, func(l scene.Link, _ int) bool {
		return l.Weight > 0 && l.Source != "" && l.Target != "" && l.Source != l.Target
	})
	if len(drawn) == 0 {
		return out
	}
	wmax := lo.Max(lo.Map(drawn, func(l scene.Link, _ int) float64 { return l.Weight }))

	out.Chords = make([]Chord, len(drawn))
	for i, l := range drawn {
		t := l.Weight / wmax
		from, to := index[l.Source], index[l.Target]
		p, q := out.Positions[from], out.Positions[to]
		bow := cfg.MinBow + (cfg.MaxBow-cfg.MinBow)*t
		out.Chords[i] = Chord{
			Source:   l.Source,
			Target:   l.Target,
			From:     from,
			To:       to,
			Weight:   l.Weight,
			Start:    p,
			Control1: geom.Lerp(p, center, bow),
			Control2: geom.Lerp(q, center, bow),
			End:      q,
			Bow:      bow,
			Width:    math.Max(cfg.MinWidth, cfg.MaxWidth*t),
			Opacity:  0.3 + 0.7*t,
		}
	}
	return out
}

// chordInset leaves room for the entity markers inside the node's box.
const chordInset = 0.88

// entityColors spreads n hues around the circle starting at base.
func entityColors(base string, n int) []string {
	c, err := colorful.Hex(base)
	h := 210.0
	if err == nil {
		h, _, _ = c.Hsl()
	}
	out := make([]string, n)
	for i := range out {
		hue := math.Mod(h+float64(i)*360/float64(n), 360)
		out[i] = colorful.Hsl(hue, 0.65, 0.5).Clamped().Hex()
	}
	return out
}

func renderChordMap(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.ChordData)
	lay := LayoutChords(d.Links, n.Center(), n.Radius()*chordInset, cfg.Chord)
	colors := entityColors(baseColor(n), len(lay.Entities))

	ringStroke := n.Style.Stroke
	if ringStroke == "" {
		ringStroke = baseColor(n)
	}
	g := NewFragment("g").Set("id", nodeID(n))
	g.Append(NewFragment("circle").
		Set("cx", lay.Center.X).
		Set("cy", lay.Center.Y).
		Set("r", lay.Radius).
		Set("fill", "none").
		Set("stroke", ringStroke).
		Set("stroke-width", 1.0))

	for _, c := range lay.Chords {
		var p pathData
		p.MoveTo(c.Start).CubicTo(c.Control1, c.Control2, c.End)
		g.Append(NewFragment("path").
			Set("d", p.String()).
			Set("fill", "none").
			Set("stroke", colors[c.From]).
			Set("stroke-width", c.Width).
			Set("stroke-opacity", c.Opacity).
			Set("stroke-linecap", "round"))
	}
	for i, pos := range lay.Positions {
		g.Append(NewFragment("circle").
			Set("cx", pos.X).
			Set("cy", pos.Y).
			Set("r", cfg.Chord.MarkerRadius).
			Set("fill", colors[i]))
	}
	return g, nil
}
