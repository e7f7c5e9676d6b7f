package render

import (
	"math"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// paint applies the node's resolved fill, outline and opacity.
func paint(f *Fragment, n *scene.SceneNode, cfg Config) *Fragment {
	s := n.Style
	fill := s.Fill()
	if fill == "" {
		fill = style.FallbackColor
	}
	f.Set("fill", fill)
	if s.Stroke != "" {
		f.Set("stroke", s.Stroke).Set("stroke-width", strokeWidth(s.StrokeWidth, cfg))
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		f.Set("fill-opacity", s.Opacity)
	}
	return f
}

func strokeWidth(w float64, cfg Config) float64 {
	if w <= 0 {
		w = style.DefaultStrokeWidth
	}
	return geom.Clamp(w, cfg.MinStrokeWidth, cfg.MaxStrokeWidth)
}

func baseColor(n *scene.SceneNode) string {
	if n.Style.Base == "" {
		return style.FallbackColor
	}
	return n.Style.Base
}

func renderCircle(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	c := n.Center()
	f := NewFragment("circle").
		Set("id", nodeID(n)).
		Set("cx", c.X).
		Set("cy", c.Y).
		Set("r", n.Radius())
	return paint(f, n, cfg), nil
}

func renderRect(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	f := NewFragment("rect").
		Set("id", nodeID(n)).
		Set("x", n.X()).
		Set("y", n.Y()).
		Set("width", n.Width()).
		Set("height", n.Height())
	return paint(f, n, cfg), nil
}

func polygon(n *scene.SceneNode, pts []geom.Vec2, cfg Config) *Fragment {
	f := NewFragment("polygon").
		Set("id", nodeID(n)).
		Set("points", points(pts))
	return paint(f, n, cfg)
}

// renderTriangle draws an isosceles triangle filling the node's box.
func renderTriangle(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	b := n.Bounds
	pts := []geom.Vec2{
		{X: b.Center().X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
	return polygon(n, pts, cfg), nil
}

func sides(n *scene.SceneNode, def int) int {
	if d, ok := n.Data.(scene.PolygonData); ok && d.Sides >= 3 {
		return d.Sides
	}
	return def
}

func renderPolygon(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	pts := geom.RegularPolygon(n.Center(), n.Radius(), sides(n, 6))
	return polygon(n, pts, cfg), nil
}

// starInset is the inner radius of a star relative to its outer radius.
const starInset = 0.45

func renderStar(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	r := n.Radius()
	pts := geom.Star(n.Center(), r, r*starInset, sides(n, 5))
	return polygon(n, pts, cfg), nil
}

// Sun proportions relative to the node radius.
const (
	sunRays      = 12
	sunCore      = 0.62
	sunRayInner  = 0.74
	sunRayOuter  = 0.98
	sunRayWeight = 0.06
)

// renderSun draws a disc and a single path holding every ray.
func renderSun(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	c, r := n.Center(), n.Radius()
	core := NewFragment("circle").
		Set("cx", c.X).
		Set("cy", c.Y).
		Set("r", r*sunCore)
	paint(core, n, cfg)

	var d pathData
	for i := 0; i < sunRays; i++ {
		a := float64(i) * 2 * math.Pi / sunRays
		d.MoveTo(geom.Polar(c, r*sunRayInner, a)).LineTo(geom.Polar(c, r*sunRayOuter, a))
	}
	rays := NewFragment("path").
		Set("d", d.String()).
		Set("fill", "none").
		Set("stroke", baseColor(n)).
		Set("stroke-width", geom.Clamp(r*sunRayWeight, cfg.MinStrokeWidth, cfg.MaxStrokeWidth)).
		Set("stroke-linecap", "round")

	return NewFragment("g").Set("id", nodeID(n)).Append(rays, core), nil
}

// renderBand draws sky and ground as unstroked rectangles.
func renderBand(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	f := NewFragment("rect").
		Set("id", nodeID(n)).
		Set("x", n.X()).
		Set("y", n.Y()).
		Set("width", n.Width()).
		Set("height", n.Height())
	fill := n.Style.Fill()
	if fill == "" {
		fill = style.FallbackColor
	}
	f.Set("fill", fill)
	if o := n.Style.Opacity; o > 0 && o < 1 {
		f.Set("fill-opacity", o)
	}
	return f, nil
}
