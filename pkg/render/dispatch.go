// Package render turns positioned, styled scene nodes into SVG fragments.
//
// Dispatch is an explicit table keyed by shape kind. Kinds without an entry
// fail with ErrUnsupportedShape; callers substitute Placeholder.
package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel/sdfx"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// ErrUnsupportedShape is returned for shape kinds with no renderer.
var ErrUnsupportedShape = errors.New("unsupported shape")

// Config holds rendering tunables.
type Config struct {
	// FocalLength is the camera distance for perspective solids.
	FocalLength float64 `validate:"gt=0"`
	// MinStrokeWidth and MaxStrokeWidth bound outline widths.
	MinStrokeWidth float64 `validate:"gte=0"`
	MaxStrokeWidth float64 `validate:"gtefield=MinStrokeWidth"`
	Chord          ChordConfig
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		FocalLength:    geom.DefaultFocalLength,
		MinStrokeWidth: 0.5,
		MaxStrokeWidth: 6,
		Chord:          DefaultChordConfig(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FocalLength <= 0 {
		c.FocalLength = d.FocalLength
	}
	if c.MinStrokeWidth < 0 {
		c.MinStrokeWidth = d.MinStrokeWidth
	}
	if c.MaxStrokeWidth <= 0 || c.MaxStrokeWidth < c.MinStrokeWidth {
		c.MaxStrokeWidth = d.MaxStrokeWidth
	}
	c.Chord = c.Chord.withDefaults()
	return c
}

// Renderer draws one node. The node's Style is already resolved.
type Renderer interface {
	Render(n *scene.SceneNode, cfg Config) (*Fragment, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(n *scene.SceneNode, cfg Config) (*Fragment, error)

// Render calls fn(n, cfg).
func (fn RendererFunc) Render(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	return fn(n, cfg)
}

// Dispatcher routes nodes to renderers by shape kind. The table is fixed
// after construction, so Render is safe for concurrent use.
type Dispatcher struct {
	cfg    Config
	table  map[scene.ShapeKind]Renderer
	solids *SolidRenderer
}

// NewDispatcher returns a dispatcher with every built-in renderer. Solids
// use k, or the sdfx kernel when k is nil.
func NewDispatcher(cfg Config, k kernel.Kernel) *Dispatcher {
	if k == nil {
		k = sdfx.New()
	}
	solids := &SolidRenderer{Kernel: k}
	d := &Dispatcher{
		cfg: cfg.withDefaults(),
		table: map[scene.ShapeKind]Renderer{
			scene.ShapeCircle:   RendererFunc(renderCircle),
			scene.ShapeSquare:   RendererFunc(renderRect),
			scene.ShapeRect:     RendererFunc(renderRect),
			scene.ShapeTriangle: RendererFunc(renderTriangle),
			scene.ShapePolygon:  RendererFunc(renderPolygon),
			scene.ShapeStar:     RendererFunc(renderStar),
			scene.ShapeSun:      RendererFunc(renderSun),
			scene.ShapeSky:      RendererFunc(renderBand),
			scene.ShapeGround:   RendererFunc(renderBand),
			scene.ShapeCube:     solids,
			scene.ShapePrism:    solids,
			scene.ShapePyramid:  solids,
			scene.ShapeChordMap: RendererFunc(renderChordMap),

			scene.ShapeBarChart:   RendererFunc(renderBarChart),
			scene.ShapePieChart:   RendererFunc(renderPieChart),
			scene.ShapeLineChart:  RendererFunc(renderLineChart),
			scene.ShapeScatter:    RendererFunc(renderScatter),
			scene.ShapeGrid:       RendererFunc(renderGrid),
			scene.ShapeRadialGrid: RendererFunc(renderGrid),
		},
	}
	d.solids = solids
	return d
}

// Config returns the effective configuration.
func (d *Dispatcher) Config() Config { return d.cfg }

// Register replaces or adds the renderer for kind. It must not be called
// concurrently with Render.
func (d *Dispatcher) Register(kind scene.ShapeKind, r Renderer) {
	d.table[kind] = r
}

// Supports reports whether kind has a renderer.
func (d *Dispatcher) Supports(kind scene.ShapeKind) bool {
	_, ok := d.table[kind]
	return ok
}

// Kinds lists the supported shape kinds, sorted.
func (d *Dispatcher) Kinds() []scene.ShapeKind {
	out := make([]scene.ShapeKind, 0, len(d.table))
	for k := range d.table {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Render draws n. Unknown kinds fail with an error matching
// ErrUnsupportedShape.
func (d *Dispatcher) Render(n *scene.SceneNode) (*Fragment, error) {
	r, ok := d.table[n.Shape]
	if !ok {
		return nil, fmt.Errorf("node %s: %w %q", n.ID, ErrUnsupportedShape, n.Shape)
	}
	f, err := r.Render(n, d.cfg)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}
	return f, nil
}

// Mesh returns the placed model of a solid node, as drawn by Render.
func (d *Dispatcher) Mesh(n *scene.SceneNode) (*kernel.Mesh, error) {
	s, err := d.solids.Model(n)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", n.ID, err)
	}
	return d.solids.Kernel.Mesh(s), nil
}

// Placeholder colors.
const (
	PlaceholderFill   = "#cccccc"
	PlaceholderStroke = "#999999"
)

// Placeholder is the neutral dashed rectangle drawn in place of a node that
// could not be rendered.
func Placeholder(n *scene.SceneNode) *Fragment {
	return NewFragment("rect").
		Set("id", nodeID(n)).
		Set("x", n.X()).
		Set("y", n.Y()).
		Set("width", n.Width()).
		Set("height", n.Height()).
		Set("fill", PlaceholderFill).
		Set("stroke", PlaceholderStroke).
		Set("stroke-width", 1.0).
		Set("stroke-dasharray", "4,4")
}

func nodeID(n *scene.SceneNode) string {
	return "node-" + n.ID
}
