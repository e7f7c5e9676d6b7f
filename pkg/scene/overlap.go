package scene

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
)

// OverlapPair is an unsanctioned same-layer intersection between the nodes
// at indices A < B of SceneGraph.Nodes.
type OverlapPair struct {
	A, B  int
	Area  float64
	Ratio float64 // Area over the smaller node's area
}

// minExtent keeps degenerate boxes insertable into the R-tree.
const minExtent = 1e-6

type spatialNode struct {
	idx  int
	rect rtreego.Rect
}

func (s *spatialNode) Bounds() rtreego.Rect { return s.rect }

func rectOf(b geom.Box) rtreego.Rect {
	r, err := rtreego.NewRect(
		rtreego.Point{b.Min.X, b.Min.Y},
		[]float64{math.Max(b.Width(), minExtent), math.Max(b.Height(), minExtent)},
	)
	if err != nil {
		// Unreachable: both lengths are positive.
		panic(err)
	}
	return r
}

// Overlaps lists every pair of nodes on the same layer whose intersection
// area exceeds tolerance and that the graph does not sanction. Pairs are
// ordered by (A, B).
func Overlaps(g *SceneGraph, tolerance float64) []OverlapPair {
	if len(g.Nodes) < 2 {
		return nil
	}
	tree := rtreego.NewTree(2, 4, 16)
	items := make([]*spatialNode, len(g.Nodes))
	for i, n := range g.Nodes {
		items[i] = &spatialNode{idx: i, rect: rectOf(n.Bounds)}
		tree.Insert(items[i])
	}

	var pairs []OverlapPair
	for i, n := range g.Nodes {
		for _, hit := range tree.SearchIntersect(items[i].rect) {
			j := hit.(*spatialNode).idx
			if j <= i {
				continue
			}
			m := g.Nodes[j]
			if m.Layer != n.Layer || g.SanctionsOverlap(n, m) {
				continue
			}
			ok, area := n.Bounds.Intersect(m.Bounds)
			if !ok || area <= tolerance {
				continue
			}
			smaller := math.Min(n.Bounds.Area(), m.Bounds.Area())
			ratio := 1.0
			if smaller > 0 {
				ratio = area / smaller
			}
			pairs = append(pairs, OverlapPair{A: i, B: j, Area: area, Ratio: ratio})
		}
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].A != pairs[b].A {
			return pairs[a].A < pairs[b].A
		}
		return pairs[a].B < pairs[b].B
	})
	return pairs
}
