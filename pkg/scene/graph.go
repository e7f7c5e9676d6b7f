package scene

import (
	"fmt"
	"sort"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
)

// DefaultCanvas is the canvas used when a caller does not provide one.
var DefaultCanvas = geom.Size{Width: 800, Height: 600}

// SceneGraph is the ordered set of nodes produced by layout.
type SceneGraph struct {
	Canvas geom.Size    `json:"canvas"`
	Nodes  []*SceneNode `json:"nodes"`

	index map[string]*SceneNode
}

// New creates an empty graph for the given canvas.
func New(canvas geom.Size) *SceneGraph {
	return &SceneGraph{
		Canvas: canvas,
		index:  make(map[string]*SceneNode),
	}
}

// Add appends a node. A node whose ID is already present is rejected.
func (g *SceneGraph) Add(n *SceneNode) error {
	if _, dup := g.index[n.ID]; dup {
		return fmt.Errorf("scene: duplicate node id %q", n.ID)
	}
	g.Nodes = append(g.Nodes, n)
	g.index[n.ID] = n
	return nil
}

// Get returns the node with the given ID, or nil.
func (g *SceneGraph) Get(id string) *SceneNode {
	return g.index[id]
}

// Len returns the number of nodes.
func (g *SceneGraph) Len() int { return len(g.Nodes) }

// Sort orders nodes by layer, then parse order.
func (g *SceneGraph) Sort() {
	sort.SliceStable(g.Nodes, func(i, j int) bool {
		return Less(g.Nodes[i], g.Nodes[j])
	})
}

// Less is the paint order: ascending layer, ties broken by parse order.
func Less(a, b *SceneNode) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.Seq < b.Seq
}

// Layers returns the distinct layer indices in ascending order.
func (g *SceneGraph) Layers() []int {
	seen := make(map[int]bool)
	var out []int
	for _, n := range g.Nodes {
		if !seen[n.Layer] {
			seen[n.Layer] = true
			out = append(out, n.Layer)
		}
	}
	sort.Ints(out)
	return out
}

// SanctionsOverlap reports whether a and b may overlap: either carries an
// inside or overlapping relation to the other, or either is a backdrop.
func (g *SceneGraph) SanctionsOverlap(a, b *SceneNode) bool {
	if a.Shape.IsBackdrop() || b.Shape.IsBackdrop() {
		return true
	}
	for _, r := range a.Relations {
		if r.Target == b.ID && r.Kind.SanctionsOverlap() {
			return true
		}
	}
	for _, r := range b.Relations {
		if r.Target == a.ID && r.Kind.SanctionsOverlap() {
			return true
		}
	}
	return false
}
