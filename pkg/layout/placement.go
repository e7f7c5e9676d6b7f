package layout

import (
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// edge is one usable relation between two laid-out nodes.
type edge struct {
	dep, target *scene.SceneNode
	kind        scene.RelationKind
}

// placement tracks what the relation and conflict passes need to know about
// a graph: which nodes are held by a relation, which nodes sit inside which
// container, and which relation (if any) joins a pair.
type placement struct {
	g        *scene.SceneGraph
	index    map[string]int
	children map[string][]*scene.SceneNode
	edges    []edge
	// held marks nodes bound by a relation other than overlapping.
	held map[string]bool
	// placed marks nodes already positioned by an earlier relation.
	placed map[string]bool
}

func newPlacement(g *scene.SceneGraph) *placement {
	p := &placement{
		g:        g,
		index:    make(map[string]int, g.Len()),
		children: make(map[string][]*scene.SceneNode),
		held:     make(map[string]bool),
		placed:   make(map[string]bool),
	}
	for i, n := range g.Nodes {
		p.index[n.ID] = i
	}
	for _, n := range g.Nodes {
		if id, ok := n.Container(); ok && g.Get(id) != nil {
			p.children[id] = append(p.children[id], n)
		}
		if n.Shape.IsBackdrop() {
			continue
		}
		for _, r := range n.Relations {
			t := g.Get(r.Target)
			if t == nil || t == n {
				continue
			}
			p.edges = append(p.edges, edge{dep: n, target: t, kind: r.Kind})
			if r.Kind == scene.RelOverlapping {
				continue
			}
			p.held[n.ID] = true
			if !t.Shape.IsBackdrop() {
				p.held[t.ID] = true
			}
		}
	}
	return p
}

// fixed reports whether n must not move while relating another node to it.
func (p *placement) fixed(n *scene.SceneNode) bool {
	return n.Shape.IsBackdrop() || p.placed[n.ID]
}

// translate moves n and everything nested inside it by d.
func (p *placement) translate(n *scene.SceneNode, d geom.Vec2) {
	if d.X == 0 && d.Y == 0 {
		return
	}
	seen := make(map[string]bool)
	var move func(n *scene.SceneNode)
	move = func(n *scene.SceneNode) {
		if seen[n.ID] {
			return
		}
		seen[n.ID] = true
		n.Bounds = n.Bounds.Translate(d)
		for _, c := range p.children[n.ID] {
			move(c)
		}
	}
	move(n)
}

// nested reports whether n sits, directly or transitively, inside root.
func (p *placement) nested(n, root *scene.SceneNode) bool {
	seen := make(map[string]bool)
	for {
		id, ok := n.Container()
		if !ok || seen[id] {
			return false
		}
		if id == root.ID {
			return true
		}
		seen[id] = true
		if n = p.g.Get(id); n == nil {
			return false
		}
	}
}

// collides reports whether box b, proposed for mover, would cover a node
// placed earlier. The relation target, the mover's own containment tree and
// backdrops are ignored.
func (p *placement) collides(mover, target *scene.SceneNode, b geom.Box, tolerance float64) bool {
	for _, n := range p.g.Nodes {
		if n == mover || n == target || !p.placed[n.ID] || n.Shape.IsBackdrop() {
			continue
		}
		if p.nested(n, mover) || p.nested(mover, n) || p.nested(n, target) {
			continue
		}
		if hit, area := b.Intersect(n.Bounds); hit && area > tolerance {
			return true
		}
	}
	return false
}

// relation returns the directional relation joining a and b, if any.
func (p *placement) relation(a, b *scene.SceneNode) (edge, bool) {
	for _, e := range p.edges {
		if (e.dep == a && e.target == b) || (e.dep == b && e.target == a) {
			switch e.kind {
			case scene.RelNextTo, scene.RelAbove, scene.RelUnder:
				return e, true
			}
		}
	}
	return edge{}, false
}

// groups returns the connected groups of related nodes, each in graph
// order, groups ordered by their first node. Backdrops are left out; a
// group touching one is reported as anchored.
func (p *placement) groups() (groups [][]*scene.SceneNode, anchored []bool) {
	parent := make([]int, p.g.Len())
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	anchor := make(map[int]bool)
	for _, e := range p.edges {
		a := p.index[e.dep.ID]
		if e.target.Shape.IsBackdrop() {
			anchor[a] = true
			continue
		}
		ra, rb := find(a), find(p.index[e.target.ID])
		if ra == rb {
			continue
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	slot := make(map[int]int)
	for i, n := range p.g.Nodes {
		if n.Shape.IsBackdrop() {
			continue
		}
		r := find(i)
		k, ok := slot[r]
		if !ok {
			k = len(groups)
			slot[r] = k
			groups = append(groups, nil)
			anchored = append(anchored, false)
		}
		groups[k] = append(groups[k], n)
		if anchor[i] {
			anchored[k] = true
		}
	}
	return groups, anchored
}

// fitShift returns the offset that brings the span [lo, hi] inside
// [0, limit], or centers it when it is wider than the limit.
func fitShift(lo, hi, limit float64) float64 {
	switch {
	case hi-lo > limit:
		return limit/2 - (lo+hi)/2
	case lo < 0:
		return -lo
	case hi > limit:
		return limit - hi
	}
	return 0
}

// fitGroups moves every free group of related nodes as one piece so that
// it lies on the canvas, keeping the relations inside it intact. Groups
// tied to a backdrop band stay where the band put them.
func (p *placement) fitGroups() {
	groups, anchored := p.groups()
	for i, grp := range groups {
		if len(grp) < 2 || anchored[i] {
			continue
		}
		box := grp[0].Bounds
		for _, n := range grp[1:] {
			box = box.Union(n.Bounds)
		}
		d := geom.Vec2{
			X: fitShift(box.Min.X, box.Max.X, p.g.Canvas.Width),
			Y: fitShift(box.Min.Y, box.Max.Y, p.g.Canvas.Height),
		}
		if d.X == 0 && d.Y == 0 {
			continue
		}
		for _, n := range grp {
			n.Bounds = n.Bounds.Translate(d)
		}
	}
}
