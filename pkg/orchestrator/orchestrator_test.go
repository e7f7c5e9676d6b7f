package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

var canvas400 = geom.Size{Width: 400, Height: 400}

func exampleElements() []scene.ParsedElement {
	b := scene.NewBuilder()
	b.Element("1").Shape(scene.ShapeCircle).Color("blue")
	b.Element("2").Shape(scene.ShapeSquare).Color("red").NextTo("1")
	b.Element("3").Shape(scene.ShapeSun).Color("yellow").Above("1")
	return b.Elements()
}

func nodeIDs(doc *render.Document) []string {
	ids := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		id, _ := n.Attr("id")
		ids[i] = strings.TrimPrefix(id, "node-")
	}
	return ids
}

func compose(t *testing.T, o *Orchestrator, els []scene.ParsedElement, c geom.Size) *render.Document {
	t.Helper()
	doc, err := o.Compose(context.Background(), els, c)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return doc
}

func treeBytes(t *testing.T, doc *render.Document) []byte {
	t.Helper()
	data, err := json.Marshal(doc.Root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

// ---------------------------------------------------------------------------
// End to end
// ---------------------------------------------------------------------------

func TestComposeExample(t *testing.T) {
	o := New(Options{})
	doc := compose(t, o, exampleElements(), canvas400)

	if got := strings.Join(nodeIDs(doc), ","); got != "3,1,2" {
		t.Errorf("paint order = %s, want 3,1,2", got)
	}
	if doc.Root.Name != "svg" {
		t.Fatalf("root = %s", doc.Root.Name)
	}
	if w, _ := doc.Root.Attr("width"); w != "400" {
		t.Errorf("width = %q", w)
	}
	// Default profile paints a background behind the nodes.
	if first := doc.Root.Children[0]; first.Name != "rect" {
		t.Errorf("first child = <%s>, want background rect", first.Name)
	}
}

func TestComposeDeterministic(t *testing.T) {
	els := exampleElements()
	b := scene.NewBuilder()
	b.Element("box").Shape(scene.ShapeCube).Color("green")
	b.Element("web").Shape(scene.ShapeChordMap).Link("a", "b", 2).Link("b", "c", 5)
	b.Element("gem").Shape(scene.ShapeStar).Color("purple").Under("box")
	els = append(els, b.Elements()...)

	vivid, _ := style.Builtin("vivid")
	first := treeBytes(t, compose(t, New(Options{Profile: vivid, Workers: 1}), els, canvas400))
	for _, workers := range []int{1, 2, 8} {
		o := New(Options{Profile: vivid, Workers: workers})
		if got := treeBytes(t, compose(t, o, els, canvas400)); !bytes.Equal(got, first) {
			t.Fatalf("output with %d workers differs from the first run", workers)
		}
	}
}

func TestRenderLeavesGraphUntouched(t *testing.T) {
	vivid, _ := style.Builtin("vivid")
	pastel, _ := style.Builtin("pastel")
	ov, op := New(Options{Profile: vivid}), New(Options{Profile: pastel})

	g, err := ov.BuildScene(exampleElements(), canvas400)
	if err != nil {
		t.Fatal(err)
	}
	draw := func(o *Orchestrator) []byte {
		doc, err := o.Render(context.Background(), g)
		if err != nil {
			t.Error(err)
			return nil
		}
		data, err := json.Marshal(doc.Root)
		if err != nil {
			t.Error(err)
		}
		return data
	}
	wantVivid, wantPastel := draw(ov), draw(op)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if got := draw(ov); !bytes.Equal(got, wantVivid) {
				t.Errorf("vivid output changed under concurrent renders")
			}
		}()
		go func() {
			defer wg.Done()
			if got := draw(op); !bytes.Equal(got, wantPastel) {
				t.Errorf("pastel output changed under concurrent renders")
			}
		}()
	}
	wg.Wait()

	for _, n := range g.Nodes {
		if n.Style != (style.Spec{}) {
			t.Errorf("node %s was styled in place: %+v", n.ID, n.Style)
		}
	}
}

func TestComposeCollectsSolidMeshes(t *testing.T) {
	b := scene.NewBuilder()
	b.Element("box").Shape(scene.ShapeCube)
	b.Element("roof").Shape(scene.ShapePyramid)
	b.Element("ball").Shape(scene.ShapeCircle)
	doc := compose(t, New(Options{}), b.Elements(), canvas400)

	if len(doc.Meshes) != 2 || doc.Meshes["ball"] != nil {
		t.Fatalf("meshes = %v", doc.Meshes)
	}
	if m := doc.Meshes["roof"]; m == nil || m.FaceCount() != 5 || m.VertexCount() != 5 {
		t.Errorf("pyramid mesh = %+v", m)
	}
}

func TestComposeChartsAndGrids(t *testing.T) {
	b := scene.NewBuilder()
	b.Element("bars").Shape(scene.ShapeBarChart).Values(4, 2, 7)
	b.Element("pie").Shape(scene.ShapePieChart).Values(1, 3).NextTo("bars")
	b.Element("floor").Shape(scene.ShapeGrid).Under("bars")
	b.Element("web").Shape(scene.ShapeRadialGrid)
	doc := compose(t, New(Options{}), b.Elements(), canvas400)

	if len(doc.Nodes) != 4 {
		t.Fatalf("nodes = %v", nodeIDs(doc))
	}
	for _, n := range doc.Nodes {
		id, _ := n.Attr("id")
		if n.Name != "g" || (n.Count("path") == 0 && n.Count("rect") < 2) {
			t.Errorf("%s drawn as <%s> with %d children", id, n.Name, len(n.Children))
		}
	}
}

func TestLayerOrdering(t *testing.T) {
	b := scene.NewBuilder()
	b.Element("a").Shape(scene.ShapeSquare).Size(scene.SizeLarge)
	b.Element("b").Shape(scene.ShapeCircle).Inside("a")
	b.Element("c").Shape(scene.ShapeTriangle)
	b.Element("sky").Shape(scene.ShapeSky)
	b.Element("d").Shape(scene.ShapeCircle).Size(scene.SizeSmall).Inside("b")

	o := New(Options{})
	g, err := o.BuildScene(b.Elements(), canvas400)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := o.Render(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}

	last := -1
	for _, id := range nodeIDs(doc) {
		layer := g.Get(id).Layer
		if layer < last {
			t.Errorf("node %s at layer %d painted after layer %d", id, layer, last)
		}
		last = layer
	}
	if got := strings.Join(nodeIDs(doc), ","); got != "sky,a,c,b,d" {
		t.Errorf("paint order = %s", got)
	}
}

// ---------------------------------------------------------------------------
// Degradation
// ---------------------------------------------------------------------------

func TestPlaceholderSubstitution(t *testing.T) {
	els := exampleElements()
	els = append(els, scene.ParsedElement{ID: "4", Shape: "dragon", Color: "green"})

	doc := compose(t, New(Options{}), els, canvas400)
	if len(doc.Nodes) != len(els) {
		t.Fatalf("nodes = %d, want %d", len(doc.Nodes), len(els))
	}
	placeholders := 0
	for _, n := range doc.Nodes {
		if fill, _ := n.Attr("fill"); fill == render.PlaceholderFill {
			placeholders++
		}
	}
	if placeholders != 1 {
		t.Errorf("placeholders = %d, want 1", placeholders)
	}
}

func TestFailingRendererBecomesPlaceholder(t *testing.T) {
	o := New(Options{})
	o.Dispatcher().Register(scene.ShapeSquare, render.RendererFunc(func(*scene.SceneNode, render.Config) (*render.Fragment, error) {
		return nil, errors.New("boom")
	}))
	doc := compose(t, o, exampleElements(), canvas400)
	if got := doc.Root.Count("rect"); got < 2 {
		t.Errorf("expected background plus placeholder rects, got %d", got)
	}
}

func TestValidationErrorsAbort(t *testing.T) {
	els := []scene.ParsedElement{
		{ID: "a", Shape: scene.ShapeCircle},
		{ID: "a", Shape: scene.ShapeSquare},
	}
	if _, err := New(Options{}).Compose(context.Background(), els, canvas400); err == nil {
		t.Fatal("duplicate ids should fail the build")
	}
}

func TestValidationWarningsDoNotAbort(t *testing.T) {
	b := scene.NewBuilder()
	b.Element("a").Shape(scene.ShapeCircle).NextTo("missing").Size("huge")
	doc := compose(t, New(Options{}), b.Elements(), canvas400)
	if len(doc.Nodes) != 1 {
		t.Errorf("nodes = %d", len(doc.Nodes))
	}
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Compose(ctx, exampleElements(), canvas400)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// Styling
// ---------------------------------------------------------------------------

func TestSharedDefinitions(t *testing.T) {
	vivid, _ := style.Builtin("vivid")
	b := scene.NewBuilder()
	for i := 0; i < 3; i++ {
		b.Element(fmt.Sprint("sq", i)).Shape(scene.ShapeSquare).Color("red")
	}
	b.Element("blue").Shape(scene.ShapeSquare).Color("blue")

	doc := compose(t, New(Options{Profile: vivid}), b.Elements(), canvas400)
	if got := doc.Root.Count("linearGradient"); got != 2 {
		t.Errorf("gradients = %d, want 2 (one per color)", got)
	}
	if doc.Root.Children[0].Name != "defs" {
		t.Errorf("defs should come first, got <%s>", doc.Root.Children[0].Name)
	}
}

func TestNoStateAcrossRuns(t *testing.T) {
	vivid, _ := style.Builtin("vivid")
	o := New(Options{Profile: vivid})

	b := scene.NewBuilder()
	b.Element("r").Shape(scene.ShapeSquare).Color("red")
	compose(t, o, b.Elements(), canvas400)

	b = scene.NewBuilder()
	b.Element("c").Shape(scene.ShapeCircle).Color("blue")
	doc := compose(t, o, b.Elements(), canvas400)
	if got := doc.Root.Count("linearGradient"); got != 0 {
		t.Errorf("definitions leaked from the previous run: %d", got)
	}
}

func TestMonochromeHasNoBackground(t *testing.T) {
	mono, _ := style.Builtin("monochrome")
	doc := compose(t, New(Options{Profile: mono}), exampleElements(), canvas400)
	if len(doc.Root.Children) != len(doc.Nodes) {
		t.Errorf("root children = %d, nodes = %d", len(doc.Root.Children), len(doc.Nodes))
	}
}
