package render

import (
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
)

// SVGNamespace is the xmlns of the root element.
const SVGNamespace = "http://www.w3.org/2000/svg"

// Document is an assembled scene: the root <svg> element plus direct access
// to the node fragments in paint order. Meshes holds the placed model of
// every solid node, keyed by node id.
type Document struct {
	Canvas geom.Size               `json:"canvas"`
	Root   *Fragment               `json:"root"`
	Nodes  []*Fragment             `json:"-"`
	Meshes map[string]*kernel.Mesh `json:"meshes,omitempty"`
}

// NewDocument assembles the root element. Paint servers go first inside
// <defs>, then the optional background, then nodes in the given order.
func NewDocument(canvas geom.Size, defs []*Fragment, background string, nodes []*Fragment) *Document {
	root := NewFragment("svg").
		Set("xmlns", SVGNamespace).
		Set("width", canvas.Width).
		Set("height", canvas.Height).
		Set("viewBox", "0 0 "+Num(canvas.Width)+" "+Num(canvas.Height))

	if len(defs) > 0 {
		root.Append(NewFragment("defs").Append(defs...))
	}
	if background != "" {
		root.Append(NewFragment("rect").
			Set("width", canvas.Width).
			Set("height", canvas.Height).
			Set("fill", background))
	}
	root.Append(nodes...)
	return &Document{Canvas: canvas, Root: root, Nodes: nodes}
}
