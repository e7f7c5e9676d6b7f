package render

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel/sdfx"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

func solidNode(kind scene.ShapeKind, yaw, pitch float64) *scene.SceneNode {
	n := node("s", kind, geom.BoxAt(100, 100, 120, 120))
	n.Data = scene.SolidData{Yaw: yaw, Pitch: pitch}
	return n
}

func parsePoints(t *testing.T, s string) []geom.Vec2 {
	t.Helper()
	var out []geom.Vec2
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			t.Fatalf("bad point %q", pair)
		}
		x, err1 := strconv.ParseFloat(xy[0], 64)
		y, err2 := strconv.ParseFloat(xy[1], 64)
		if err1 != nil || err2 != nil {
			t.Fatalf("bad point %q", pair)
		}
		out = append(out, geom.Vec2{X: x, Y: y})
	}
	return out
}

func TestCubeFacingCameraShowsOneFace(t *testing.T) {
	r := &SolidRenderer{Kernel: sdfx.New()}
	f, err := r.Render(solidNode(scene.ShapeCube, 0, 0), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Count("polygon"); got != 1 {
		t.Errorf("visible faces = %d, want 1", got)
	}
}

func TestRotatedCubeShowsThreeFaces(t *testing.T) {
	r := &SolidRenderer{Kernel: sdfx.New()}
	f, err := r.Render(solidNode(scene.ShapeCube, 35, 25), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Count("polygon"); got != 3 {
		t.Errorf("visible faces = %d, want 3", got)
	}
}

func TestSolidFitsNodeBox(t *testing.T) {
	r := &SolidRenderer{Kernel: sdfx.New()}
	for _, kind := range []scene.ShapeKind{scene.ShapeCube, scene.ShapePrism, scene.ShapePyramid} {
		n := solidNode(kind, 40, 30)
		f, err := r.Render(n, DefaultConfig())
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if f.Count("polygon") == 0 {
			t.Fatalf("%s: nothing drawn", kind)
		}
		grown := geom.Box{
			Min: n.Bounds.Min.Sub(geom.Vec2{X: 0.01, Y: 0.01}),
			Max: n.Bounds.Max.Add(geom.Vec2{X: 0.01, Y: 0.01}),
		}
		for _, p := range f.Find("polygon") {
			for _, pt := range parsePoints(t, attr(t, p, "points")) {
				if pt.X < grown.Min.X || pt.X > grown.Max.X || pt.Y < grown.Min.Y || pt.Y > grown.Max.Y {
					t.Errorf("%s: point %+v outside %+v", kind, pt, n.Bounds)
				}
			}
		}
	}
}

func TestVisibleFacesFarToNear(t *testing.T) {
	k := sdfx.New()
	s := k.Rotate(k.Prism(100, 60, 80), 50, 35, 10)
	faces, clamped := VisibleFaces(k, s, geom.DefaultFocalLength)
	if clamped != 0 {
		t.Errorf("clamped %d points at the default focal length", clamped)
	}
	if len(faces) < 2 {
		t.Fatalf("visible faces = %d", len(faces))
	}
	for i := 1; i < len(faces); i++ {
		if faces[i].Face.Depth() > faces[i-1].Face.Depth() {
			t.Errorf("face %d is farther than the face drawn before it", faces[i].Face.Index)
		}
	}
	for _, f := range faces {
		if geom.SignedArea(f.Points) <= 0 {
			t.Errorf("back face %d kept", f.Face.Index)
		}
	}
}

func TestVisibleFacesClampsBehindCamera(t *testing.T) {
	k := sdfx.New()
	s := k.Rotate(k.Cube(100), 35, 25, 0)
	_, clamped := VisibleFaces(k, s, 10)
	if clamped == 0 {
		t.Error("expected points behind the camera plane to be clamped")
	}

	r := &SolidRenderer{Kernel: k}
	cfg := DefaultConfig()
	cfg.FocalLength = 10
	if _, err := r.Render(solidNode(scene.ShapeCube, 35, 25), cfg); err != nil {
		t.Errorf("degenerate projection should not fail the node: %v", err)
	}
}

func TestSolidFacesAreShaded(t *testing.T) {
	r := &SolidRenderer{Kernel: sdfx.New()}
	f, _ := r.Render(solidNode(scene.ShapeCube, 35, 25), DefaultConfig())
	fills := map[string]bool{}
	for _, p := range f.Find("polygon") {
		fills[attr(t, p, "fill")] = true
	}
	if len(fills) < 2 {
		t.Errorf("faces share one fill: %v", fills)
	}
}

func TestSolidRejectsFlatKinds(t *testing.T) {
	r := &SolidRenderer{Kernel: sdfx.New()}
	if _, err := r.Solid(node("c", scene.ShapeCircle, geom.BoxAt(0, 0, 10, 10))); err == nil {
		t.Error("expected an error for a flat shape")
	}
}

func TestSolidModelSitsBehindPicturePlane(t *testing.T) {
	k := sdfx.New()
	r := &SolidRenderer{Kernel: k}
	s, err := r.Model(solidNode(scene.ShapePyramid, 35, 25))
	if err != nil {
		t.Fatal(err)
	}
	min, max := s.BoundingBox()
	if math.Abs(min.Z) > 1e-9 || max.Z <= 0 {
		t.Errorf("depth range = %g..%g, want 0..positive", min.Z, max.Z)
	}
	_, clamped := VisibleFaces(k, s, 1)
	if clamped != 0 {
		t.Errorf("placed model clamped %d points", clamped)
	}
}

func TestDispatcherMesh(t *testing.T) {
	d := NewDispatcher(DefaultConfig(), nil)
	m, err := d.Mesh(solidNode(scene.ShapeCube, 35, 25))
	if err != nil {
		t.Fatal(err)
	}
	if m.VertexCount() != 8 || m.FaceCount() != 6 {
		t.Errorf("cube mesh = %d vertices, %d faces", m.VertexCount(), m.FaceCount())
	}
	if _, err := d.Mesh(node("c", scene.ShapeCircle, geom.BoxAt(0, 0, 10, 10))); err == nil {
		t.Error("flat shapes have no mesh")
	}
}
