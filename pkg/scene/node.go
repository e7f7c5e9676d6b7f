package scene

import (
	"math"
	"strings"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// ShapeKind names what an element depicts. Unknown kinds are carried through
// so the renderer can substitute a placeholder.
type ShapeKind string

const (
	ShapeCircle   ShapeKind = "circle"
	ShapeSquare   ShapeKind = "square"
	ShapeRect     ShapeKind = "rect"
	ShapeTriangle ShapeKind = "triangle"
	ShapePolygon  ShapeKind = "polygon"
	ShapeStar     ShapeKind = "star"
	ShapeSun      ShapeKind = "sun"
	ShapeSky      ShapeKind = "sky"
	ShapeGround   ShapeKind = "ground"
	ShapeCube     ShapeKind = "cube"
	ShapePrism    ShapeKind = "prism"
	ShapePyramid  ShapeKind = "pyramid"
	ShapeChordMap ShapeKind = "chord-map"

	ShapeBarChart   ShapeKind = "bar-chart"
	ShapePieChart   ShapeKind = "pie-chart"
	ShapeLineChart  ShapeKind = "line-chart"
	ShapeScatter    ShapeKind = "scatter-plot"
	ShapeGrid       ShapeKind = "grid"
	ShapeRadialGrid ShapeKind = "radial-grid"
)

var knownShapes = map[ShapeKind]bool{
	ShapeCircle: true, ShapeSquare: true, ShapeRect: true, ShapeTriangle: true,
	ShapePolygon: true, ShapeStar: true, ShapeSun: true, ShapeSky: true,
	ShapeGround: true, ShapeCube: true, ShapePrism: true, ShapePyramid: true,
	ShapeChordMap: true, ShapeBarChart: true, ShapePieChart: true,
	ShapeLineChart: true, ShapeScatter: true, ShapeGrid: true, ShapeRadialGrid: true,
}

var shapeAliases = map[string]ShapeKind{
	"rectangle": ShapeRect,
	"box":       ShapeSquare,
	"ball":      ShapeCircle,
	"dot":       ShapeCircle,
	"hexagon":   ShapePolygon,
	"chord":     ShapeChordMap,
	"chordmap":  ShapeChordMap,
	"chord map": ShapeChordMap,
	"chord_map": ShapeChordMap,

	"bar":          ShapeBarChart,
	"bar_chart":    ShapeBarChart,
	"bar chart":    ShapeBarChart,
	"pie":          ShapePieChart,
	"pie_chart":    ShapePieChart,
	"pie chart":    ShapePieChart,
	"line":         ShapeLineChart,
	"line_chart":   ShapeLineChart,
	"line chart":   ShapeLineChart,
	"scatter":      ShapeScatter,
	"scatter_plot": ShapeScatter,
	"scatter plot": ShapeScatter,
	"floor":        ShapeGrid,
	"radial":       ShapeRadialGrid,
	"radial_grid":  ShapeRadialGrid,
	"radial grid":  ShapeRadialGrid,
}

// NormalizeShape lowercases s and resolves common aliases.
func NormalizeShape(s string) ShapeKind {
	k := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := shapeAliases[k]; ok {
		return alias
	}
	return ShapeKind(k)
}

// Known reports whether a renderer ships for this kind.
func (k ShapeKind) Known() bool { return knownShapes[k] }

// IsBackground reports whether the kind is drawn on layer 0.
func (k ShapeKind) IsBackground() bool {
	return k == ShapeSun || k == ShapeSky || k == ShapeGround
}

// IsBackdrop reports whether the kind spans the canvas. Backdrops take no
// grid cell and never take part in conflict resolution.
func (k ShapeKind) IsBackdrop() bool {
	return k == ShapeSky || k == ShapeGround
}

// IsSolid reports whether the kind is drawn by the perspective renderer.
func (k ShapeKind) IsSolid() bool {
	return k == ShapeCube || k == ShapePrism || k == ShapePyramid
}

// IsChart reports whether the kind plots a data series.
func (k ShapeKind) IsChart() bool {
	switch k {
	case ShapeBarChart, ShapePieChart, ShapeLineChart, ShapeScatter:
		return true
	}
	return false
}

// IsGrid reports whether the kind is a projected floor lattice.
func (k ShapeKind) IsGrid() bool {
	return k == ShapeGrid || k == ShapeRadialGrid
}

// NodeData is the interface for kind-specific projection parameters.
type NodeData interface {
	nodeData() // marker method restricting implementations to this package
}

// SolidData carries the orientation of a perspective solid. Depth is the
// extent along Z relative to the node width; zero means a cube-like depth.
type SolidData struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Depth float64 `json:"depth,omitempty"`
}

func (SolidData) nodeData() {}

// ChordData carries the weighted connections of a chord map.
type ChordData struct {
	Links []Link `json:"links"`
}

func (ChordData) nodeData() {}

// PolygonData carries the vertex count of polygons and stars.
type PolygonData struct {
	Sides int `json:"sides"`
}

func (PolygonData) nodeData() {}

// ChartData carries the series of a chart. Bar, pie and line charts read
// Values; scatter plots read Points.
type ChartData struct {
	Values []float64   `json:"values,omitempty"`
	Points []geom.Vec2 `json:"points,omitempty"`
}

func (ChartData) nodeData() {}

// GridData carries a floor lattice seen through the perspective camera.
// Divisions counts cells per side of a grid or rings of a radial grid;
// Spokes is only used by radial grids.
type GridData struct {
	Divisions int     `json:"divisions"`
	Spokes    int     `json:"spokes,omitempty"`
	Yaw       float64 `json:"yaw"`
	Pitch     float64 `json:"pitch"`
}

func (GridData) nodeData() {}

// SceneNode is a positioned, layered element.
type SceneNode struct {
	ID    string    `json:"id"`
	Seq   int       `json:"seq"` // parse order, the stable tiebreaker
	Shape ShapeKind `json:"shape"`
	Color string    `json:"color,omitempty"`

	Bounds geom.Box `json:"bounds"`
	Layer  int      `json:"layer"`

	Style     style.Spec `json:"style"`
	Data      NodeData   `json:"data,omitempty"`
	Relations []Relation `json:"relations,omitempty"`
}

func (n *SceneNode) X() float64      { return n.Bounds.Min.X }
func (n *SceneNode) Y() float64      { return n.Bounds.Min.Y }
func (n *SceneNode) Width() float64  { return n.Bounds.Width() }
func (n *SceneNode) Height() float64 { return n.Bounds.Height() }

// Center returns the midpoint of the node's bounds.
func (n *SceneNode) Center() geom.Vec2 { return n.Bounds.Center() }

// Radius is half the smaller dimension; round renderers use it.
func (n *SceneNode) Radius() float64 {
	return math.Min(n.Width(), n.Height()) / 2
}

// RelatedTo reports whether n carries a relation of kind k to target.
func (n *SceneNode) RelatedTo(k RelationKind, target string) bool {
	for _, r := range n.Relations {
		if r.Kind == k && r.Target == target {
			return true
		}
	}
	return false
}
