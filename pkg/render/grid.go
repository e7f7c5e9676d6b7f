package render

import (
	"math"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// ringSegments is how many chords approximate each ring of a radial grid.
const ringSegments = 32

// floorOpacity tints the area a grid covers.
const floorOpacity = 0.15

// FloorLines returns the lattice of a grid node in the y=0 plane, centered
// on the origin and modelSize across, plus the rim enclosing it. Radial
// grids get concentric rings and spokes; square grids get lines along X and
// Z. Ring polylines repeat their first point to close.
func FloorLines(kind scene.ShapeKind, d scene.GridData) (lines [][]geom.Vec3, rim []geom.Vec3) {
	const half = modelSize / 2
	div := max(d.Divisions, 1)

	if kind == scene.ShapeRadialGrid {
		ring := func(r float64) []geom.Vec3 {
			pts := make([]geom.Vec3, ringSegments+1)
			for i := range pts {
				a := 2 * math.Pi * float64(i) / ringSegments
				pts[i] = geom.Vec3{X: r * math.Cos(a), Z: r * math.Sin(a)}
			}
			return pts
		}
		for k := 1; k <= div; k++ {
			lines = append(lines, ring(half*float64(k)/float64(div)))
		}
		for j := 0; j < d.Spokes; j++ {
			a := 2 * math.Pi * float64(j) / float64(d.Spokes)
			lines = append(lines, []geom.Vec3{{}, {X: half * math.Cos(a), Z: half * math.Sin(a)}})
		}
		outer := lines[div-1]
		return lines, outer[:len(outer)-1]
	}

	for i := 0; i <= div; i++ {
		t := -half + modelSize*float64(i)/float64(div)
		lines = append(lines,
			[]geom.Vec3{{X: t, Z: -half}, {X: t, Z: half}},
			[]geom.Vec3{{X: -half, Z: t}, {X: half, Z: t}},
		)
	}
	rim = []geom.Vec3{{X: -half, Z: -half}, {X: half, Z: -half}, {X: half, Z: half}, {X: -half, Z: half}}
	return lines, rim
}

// renderGrid tilts the lattice by the node's yaw and pitch, pushes it
// behind the picture plane and projects it into the node's box.
func renderGrid(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.GridData)
	lines, rim := FloorLines(n.Shape, d)

	rot := geom.Rotation3(d.Yaw, d.Pitch, 0)
	near := math.Inf(1)
	for _, l := range lines {
		for i, p := range l {
			l[i] = rot.Apply(p)
			near = math.Min(near, l[i].Z)
		}
	}
	for i, p := range rim {
		rim[i] = rot.Apply(p)
	}

	clamped := 0
	project := func(pts []geom.Vec3) []geom.Vec2 {
		out := make([]geom.Vec2, len(pts))
		for i, p := range pts {
			p.Z -= near
			q, err := geom.Project(p, cfg.FocalLength)
			if err != nil {
				clamped++
				q, _ = geom.Project(geom.ClampDepth(p, cfg.FocalLength), cfg.FocalLength)
			}
			out[i] = q
		}
		return out
	}
	flat := make([][]geom.Vec2, len(lines))
	var all []geom.Vec2
	for i, l := range lines {
		flat[i] = project(l)
		all = append(all, flat[i]...)
	}
	outline := project(rim)
	if clamped > 0 {
		logger.Warn("Clamped degenerate projection", "node", n.ID, "points", clamped, "focal_length", cfg.FocalLength)
	}
	fit := fitInto(geom.BoundsOf(all), n.Bounds)

	color := baseColor(n)
	stroke := n.Style.Stroke
	if stroke == "" {
		stroke = color
	}
	g := NewFragment("g").Set("id", nodeID(n))
	g.Append(NewFragment("polygon").
		Set("points", points(fit.ApplyAll(outline))).
		Set("fill", color).
		Set("fill-opacity", floorOpacity))

	var p pathData
	for _, l := range flat {
		l = fit.ApplyAll(l)
		p.MoveTo(l[0])
		for _, pt := range l[1:] {
			p.LineTo(pt)
		}
	}
	g.Append(NewFragment("path").
		Set("d", p.String()).
		Set("fill", "none").
		Set("stroke", stroke).
		Set("stroke-width", strokeWidth(n.Style.StrokeWidth/2, cfg)).
		Set("stroke-linecap", "round"))
	return g, nil
}
