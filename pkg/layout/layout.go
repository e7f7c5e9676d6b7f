// Package layout places parsed elements on the canvas.
//
// Layout is a fixed sequence of deterministic rules, not a solver: grid
// anchors, relations in input order, layer assignment, then a bounded
// conflict pass that pushes overlapping nodes apart.
package layout

import (
	"fmt"
	"math"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// Engine runs layout with a fixed configuration. It holds no per-call state
// and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// New returns an engine using cfg, with invalid fields replaced by defaults.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Layout converts elements into a sorted SceneGraph. Elements must have
// unique ids. The only layout failure is an unresolvable residual overlap,
// reported as *UnresolvableError.
func (e *Engine) Layout(elements []scene.ParsedElement, canvas geom.Size) (*scene.SceneGraph, error) {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = scene.DefaultCanvas
	}
	g := scene.New(canvas)
	if err := anchor(g, elements); err != nil {
		return nil, err
	}
	p := newPlacement(g)
	e.applyRelations(p, elements)
	p.fitGroups()
	assignLayers(g)
	p.clampAll()
	if err := e.settle(g); err != nil {
		return nil, err
	}
	g.Sort()
	return g, nil
}

// ---------------------------------------------------------------------------
// Step 1: grid anchors
// ---------------------------------------------------------------------------

var sizeFactor = map[scene.SizeHint]float64{
	scene.SizeSmall:  0.35,
	scene.SizeMedium: 0.5,
	scene.SizeLarge:  0.7,
}

// gridDims returns a near-square grid with at least n cells.
func gridDims(n int) (cols, rows int) {
	if n <= 0 {
		return 1, 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}

func anchor(g *scene.SceneGraph, elements []scene.ParsedElement) error {
	cells := 0
	for _, el := range elements {
		if !scene.NormalizeShape(string(el.Shape)).IsBackdrop() {
			cells++
		}
	}
	cols, rows := gridDims(cells)
	cw, ch := g.Canvas.Width/float64(cols), g.Canvas.Height/float64(rows)
	cell := 0

	for i, el := range elements {
		kind := promote(scene.NormalizeShape(string(el.Shape)), el)
		n := &scene.SceneNode{
			ID:        el.ID,
			Seq:       i,
			Shape:     kind,
			Color:     el.EffectiveColor(),
			Relations: append([]scene.Relation(nil), el.Relations...),
			Data:      nodeData(kind, el),
		}

		switch kind {
		case scene.ShapeSky:
			n.Bounds = geom.BoxAt(0, 0, g.Canvas.Width, g.Canvas.Height*0.4)
		case scene.ShapeGround:
			n.Bounds = geom.BoxAt(0, g.Canvas.Height*0.75, g.Canvas.Width, g.Canvas.Height*0.25)
		default:
			col, row := cell%cols, cell/cols
			center := geom.Vec2{X: cw * (float64(col) + 0.5), Y: ch * (float64(row) + 0.5)}
			w, h := extent(kind, el.Size, math.Min(cw, ch))
			n.Bounds = geom.BoxAround(center, w, h)
			cell++
		}

		if err := g.Add(n); err != nil {
			return fmt.Errorf("layout: %w", err)
		}
	}
	return nil
}

// extent sizes a node relative to its grid cell.
func extent(kind scene.ShapeKind, hint scene.SizeHint, cell float64) (w, h float64) {
	f, ok := sizeFactor[hint]
	if !ok {
		f = sizeFactor[scene.SizeMedium]
	}
	s := cell * f
	switch kind {
	case scene.ShapeRect, scene.ShapePrism:
		return s, s * 0.6
	case scene.ShapeBarChart, scene.ShapeLineChart, scene.ShapeScatter:
		s = math.Min(s*1.3, cell*0.9)
		return s, s * 0.7
	case scene.ShapeChordMap, scene.ShapePieChart, scene.ShapeGrid, scene.ShapeRadialGrid:
		s = math.Min(s*1.3, cell*0.9)
		return s, s
	}
	return s, s
}

// promote turns flat shapes carrying 3D hints into their solid
// counterparts.
func promote(kind scene.ShapeKind, el scene.ParsedElement) scene.ShapeKind {
	if el.Solid == nil {
		return kind
	}
	switch kind {
	case scene.ShapeSquare:
		return scene.ShapeCube
	case scene.ShapeRect:
		return scene.ShapePrism
	case scene.ShapeTriangle:
		return scene.ShapePyramid
	}
	return kind
}

func nodeData(kind scene.ShapeKind, el scene.ParsedElement) scene.NodeData {
	switch {
	case kind.IsSolid():
		h := scene.DefaultSolidHints
		d := scene.SolidData{Yaw: h.Yaw, Pitch: h.Pitch}
		if el.Solid != nil {
			d = scene.SolidData{Yaw: el.Solid.Yaw, Pitch: el.Solid.Pitch, Roll: el.Solid.Roll, Depth: el.Solid.Depth}
		}
		return d
	case kind == scene.ShapeChordMap:
		return scene.ChordData{Links: append([]scene.Link(nil), el.Links...)}
	case kind.IsChart():
		d := scene.ChartData{Values: append([]float64(nil), el.Values...)}
		for _, pt := range el.Points {
			d.Points = append(d.Points, geom.Vec2{X: pt[0], Y: pt[1]})
		}
		return d
	case kind.IsGrid():
		h := scene.DefaultGridHints
		if el.Solid != nil {
			h = *el.Solid
		}
		d := scene.GridData{Divisions: divisionsOr(el.Divisions, 8), Yaw: h.Yaw, Pitch: h.Pitch}
		if kind == scene.ShapeRadialGrid {
			d.Divisions = divisionsOr(el.Divisions, 5)
			d.Spokes = sidesOr(el.Sides, 24)
		}
		return d
	case kind == scene.ShapePolygon:
		return scene.PolygonData{Sides: sidesOr(el.Sides, 6)}
	case kind == scene.ShapeStar:
		return scene.PolygonData{Sides: sidesOr(el.Sides, 5)}
	}
	return nil
}

func sidesOr(n, def int) int {
	if n < 3 || n > 32 {
		return def
	}
	return n
}

func divisionsOr(n, def int) int {
	if n < 1 || n > 64 {
		return def
	}
	return n
}

// ---------------------------------------------------------------------------
// Step 2: relations
// ---------------------------------------------------------------------------

func (e *Engine) applyRelations(p *placement, elements []scene.ParsedElement) {
	g := p.g
	for _, el := range elements {
		a := g.Get(el.ID)
		for _, r := range el.Relations {
			b := g.Get(r.Target)
			switch {
			case b == nil:
				logger.Warn("Skipping relation to unknown element", "element", el.ID, "relation", r.Kind, "target", r.Target)
				continue
			case a == b:
				logger.Warn("Skipping relation to self", "element", el.ID, "relation", r.Kind)
				continue
			case a.Shape.IsBackdrop():
				logger.Debug("Backdrop keeps its band", "element", el.ID, "relation", r.Kind)
				continue
			}
			e.relate(p, a, b, r.Kind)
		}
	}
}

// sideShift is the horizontal move that puts a beside b, on b's right when
// right is set.
func sideShift(a, b geom.Box, right bool, gap float64) float64 {
	if right {
		return (b.Max.X + gap) - a.Min.X
	}
	return (b.Min.X - gap) - a.Max.X
}

// nudge applies the move d that satisfies a relation of a to b. main is the
// part of d along the relation's axis. A target placed by an earlier
// relation stays put and a takes the whole move; a dependent placed earlier
// stays put and b takes it; otherwise the two split the main axis and a
// takes the alignment.
func (p *placement) nudge(a, b *scene.SceneNode, d, main geom.Vec2) {
	switch {
	case p.fixed(b):
		p.translate(a, d)
	case p.placed[a.ID]:
		p.translate(b, d.MulScalar(-1))
	default:
		p.translate(a, d.Sub(main.MulScalar(0.5)))
		p.translate(b, main.MulScalar(-0.5))
	}
}

func (e *Engine) relate(p *placement, a, b *scene.SceneNode, kind scene.RelationKind) {
	gap := e.cfg.Gap
	switch kind {
	case scene.RelNextTo:
		// Keep the side a is already on, ties go right, unless that side
		// is taken by a node placed earlier.
		right := a.Center().X >= b.Center().X
		move := func(right bool) (d, main geom.Vec2) {
			main = geom.Vec2{X: sideShift(a.Bounds, b.Bounds, right, gap)}
			return main.Add(geom.Vec2{Y: b.Center().Y - a.Center().Y}), main
		}
		d, main := move(right)
		if e.blocked(p, a, b, d) {
			if d2, main2 := move(!right); !e.blocked(p, a, b, d2) {
				d, main = d2, main2
			}
		}
		p.nudge(a, b, d, main)

	case scene.RelAbove, scene.RelUnder:
		var main geom.Vec2
		if kind == scene.RelAbove {
			main.Y = (b.Bounds.Min.Y - gap) - a.Bounds.Max.Y
		} else {
			main.Y = (b.Bounds.Max.Y + gap) - a.Bounds.Min.Y
		}
		p.nudge(a, b, main.Add(geom.Vec2{X: b.Center().X - a.Center().X}), main)

	case scene.RelInside:
		inset := e.cfg.InsideInset
		k := math.Min(1, math.Min(inset*b.Width()/a.Width(), inset*b.Height()/a.Height()))
		p.translate(a, b.Center().Sub(a.Center()))
		a.Bounds = geom.BoxAround(a.Center(), a.Width()*k, a.Height()*k)

	case scene.RelOverlapping:
		// Intentional overlap; positions stay.
		return

	default:
		logger.Warn("Skipping unknown relation", "element", a.ID, "relation", kind)
		return
	}
	p.placed[a.ID] = true
	p.placed[b.ID] = true
}

// blocked reports whether moving a by d (or b by -d, when a is the one
// already placed) would land on a node placed earlier. Split moves are
// never blocked.
func (e *Engine) blocked(p *placement, a, b *scene.SceneNode, d geom.Vec2) bool {
	switch {
	case p.fixed(b):
		return p.collides(a, b, a.Bounds.Translate(d), e.cfg.Tolerance)
	case p.placed[a.ID]:
		return p.collides(b, a, b.Bounds.Translate(d.MulScalar(-1)), e.cfg.Tolerance)
	}
	return false
}

// ---------------------------------------------------------------------------
// Step 4: layers (computed before the conflict pass, which compares layers)
// ---------------------------------------------------------------------------

func assignLayers(g *scene.SceneGraph) {
	memo := make(map[string]int, g.Len())
	visiting := make(map[string]bool)

	var layerOf func(n *scene.SceneNode) int
	layerOf = func(n *scene.SceneNode) int {
		if l, ok := memo[n.ID]; ok {
			return l
		}
		l := 1
		if n.Shape.IsBackground() {
			l = 0
		}
		if visiting[n.ID] {
			// Containment cycle; validation reports it.
			return l
		}
		visiting[n.ID] = true
		if id, ok := n.Container(); ok {
			if c := g.Get(id); c != nil {
				l = layerOf(c) + 1
			}
		}
		delete(visiting, n.ID)
		memo[n.ID] = l
		return l
	}

	for _, n := range g.Nodes {
		n.Layer = layerOf(n)
	}
}

// ---------------------------------------------------------------------------
// Step 3: conflict pass
// ---------------------------------------------------------------------------

func inCanvas(c geom.Vec2, canvas geom.Size) bool {
	return c.X >= 0 && c.X <= canvas.Width && c.Y >= 0 && c.Y <= canvas.Height
}

// clampCenter pulls n's center onto the canvas, carrying its contents.
func (p *placement) clampCenter(n *scene.SceneNode) {
	c := n.Center()
	to := geom.Vec2{
		X: geom.Clamp(c.X, 0, p.g.Canvas.Width),
		Y: geom.Clamp(c.Y, 0, p.g.Canvas.Height),
	}
	p.translate(n, to.Sub(c))
}

func (p *placement) clampAll() {
	for _, n := range p.g.Nodes {
		if !n.Shape.IsBackdrop() {
			p.clampCenter(n)
		}
	}
}

// pushes returns the translations that move b clear of a: the minimum
// translation vector first, then every axis-aligned escape by length.
func pushes(a, b geom.Box) []geom.Vec2 {
	escapes := []geom.Vec2{
		{X: a.Max.X - b.Min.X},
		{X: a.Min.X - b.Max.X},
		{Y: a.Max.Y - b.Min.Y},
		{Y: a.Min.Y - b.Max.Y},
	}
	// Insertion sort keeps equal lengths in their listed order.
	for i := 1; i < len(escapes); i++ {
		for j := i; j > 0 && escapes[j].Length() < escapes[j-1].Length(); j-- {
			escapes[j], escapes[j-1] = escapes[j-1], escapes[j]
		}
	}
	return append([]geom.Vec2{a.Penetration(b)}, escapes...)
}

// restore returns the move that puts the dependent of r back on the side
// its relation names.
func (e *Engine) restore(r edge) geom.Vec2 {
	d, t := r.dep.Bounds, r.target.Bounds
	switch r.kind {
	case scene.RelAbove:
		return geom.Vec2{Y: (t.Min.Y - e.cfg.Gap) - d.Max.Y}
	case scene.RelUnder:
		return geom.Vec2{Y: (t.Max.Y + e.cfg.Gap) - d.Min.Y}
	}
	return geom.Vec2{X: sideShift(d, t, d.Center().X >= t.Center().X, e.cfg.Gap)}
}

// push separates a and b. A related pair is separated in the direction of
// its relation by moving the dependent. Otherwise the later node moves
// along the shortest translation that keeps its center on the canvas,
// unless it is held by a relation and the earlier node is not, in which
// case the earlier node moves. Both centers are clamped afterwards.
func (e *Engine) push(p *placement, a, b *scene.SceneNode) {
	if r, ok := p.relation(a, b); ok {
		p.translate(r.dep, e.restore(r))
	} else {
		still, mover := a, b
		if p.held[b.ID] && !p.held[a.ID] {
			still, mover = b, a
		}
		cands := pushes(still.Bounds, mover.Bounds)
		chosen := cands[0]
		for _, d := range cands {
			if inCanvas(mover.Center().Add(d), p.g.Canvas) {
				chosen = d
				break
			}
		}
		p.translate(mover, chosen)
	}
	p.clampCenter(a)
	p.clampCenter(b)
}

// settle runs the conflict pass and audits what is left.
func (e *Engine) settle(g *scene.SceneGraph) error {
	p := newPlacement(g)
	iterations := 0
	for ; iterations < e.cfg.MaxPushIterations; iterations++ {
		moved := false
		for i, a := range g.Nodes {
			for _, b := range g.Nodes[i+1:] {
				if a.Layer != b.Layer || g.SanctionsOverlap(a, b) {
					continue
				}
				if hit, area := a.Bounds.Intersect(b.Bounds); !hit || area <= e.cfg.Tolerance {
					continue
				}
				e.push(p, a, b)
				moved = true
			}
		}
		if !moved {
			return nil
		}
	}

	residual := scene.Overlaps(g, e.cfg.Tolerance)
	if len(residual) == 0 {
		return nil
	}
	var hard []Residual
	for _, p := range residual {
		r := Residual{A: g.Nodes[p.A].ID, B: g.Nodes[p.B].ID, Area: p.Area, Ratio: p.Ratio}
		if p.Ratio >= e.cfg.HardOverlapRatio {
			hard = append(hard, r)
			continue
		}
		logger.Warn("Accepting residual overlap", "a", r.A, "b", r.B, "area", r.Area)
	}
	if len(hard) > 0 {
		return &UnresolvableError{Iterations: iterations, Pairs: hard}
	}
	return nil
}
