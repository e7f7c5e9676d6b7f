package sdfx

import (
	"math"
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func center(pts []geom.Vec3) geom.Vec3 {
	var c geom.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.MulScalar(1 / float64(len(pts)))
}

// assertOutward checks every face normal against the solid's center.
func assertOutward(t *testing.T, k *SdfxKernel, s kernel.Solid) {
	t.Helper()
	mesh := k.Mesh(s)
	c := center(mesh.Vertices)
	for _, f := range k.Faces(s) {
		if d := f.Normal.Dot(center(f.Points).Sub(c)); d <= 0 {
			t.Errorf("face %d normal %+v points inward (dot %g)", f.Index, f.Normal, d)
		}
		if !approxEqual(f.Normal.Length(), 1, 1e-9) {
			t.Errorf("face %d normal not unit length: %g", f.Index, f.Normal.Length())
		}
	}
}

func TestCube(t *testing.T) {
	k := New()
	cube := k.Cube(100)
	mesh := k.Mesh(cube)
	if mesh.VertexCount() != 8 {
		t.Fatalf("vertex count = %d, want 8", mesh.VertexCount())
	}
	if mesh.FaceCount() != 6 {
		t.Fatalf("face count = %d, want 6", mesh.FaceCount())
	}
	min, max := cube.BoundingBox()
	if min.X != -50 || min.Y != -50 || min.Z != -50 || max.X != 50 || max.Y != 50 || max.Z != 50 {
		t.Errorf("bounding box = %+v..%+v", min, max)
	}
	assertOutward(t, k, cube)
}

func TestPrism(t *testing.T) {
	k := New()
	p := k.Prism(100, 60, 40)
	min, max := p.BoundingBox()
	if max.X-min.X != 100 || max.Y-min.Y != 60 || max.Z-min.Z != 40 {
		t.Errorf("extents = %g x %g x %g", max.X-min.X, max.Y-min.Y, max.Z-min.Z)
	}
	assertOutward(t, k, p)
}

func TestPyramid(t *testing.T) {
	k := New()
	p := k.Pyramid(100, 80)
	mesh := k.Mesh(p)
	if mesh.VertexCount() != 5 || mesh.FaceCount() != 5 {
		t.Fatalf("pyramid has %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
	}
	min, _ := p.BoundingBox()
	if min.Y != -40 {
		t.Errorf("apex y = %g, want -40", min.Y)
	}
	assertOutward(t, k, p)
}

func TestFrontFaceNormal(t *testing.T) {
	k := New()
	f := k.Faces(k.Cube(10))[0]
	if !approxEqual(f.Normal.X, 0, 1e-9) || !approxEqual(f.Normal.Y, 0, 1e-9) || !approxEqual(f.Normal.Z, -1, 1e-9) {
		t.Errorf("front normal = %+v, want (0,0,-1)", f.Normal)
	}
}

func TestRotatePreservesOrientation(t *testing.T) {
	k := New()
	for _, s := range []kernel.Solid{k.Cube(100), k.Prism(100, 50, 30), k.Pyramid(100, 100)} {
		r := k.Rotate(s, 35, -25, 10)
		assertOutward(t, k, r)
	}
}

func TestRotateYaw(t *testing.T) {
	k := New()
	r := k.Rotate(k.Cube(100), 90, 0, 0)
	min, max := r.BoundingBox()
	if !approxEqual(max.X-min.X, 100, 1e-9) || !approxEqual(max.Z-min.Z, 100, 1e-9) {
		t.Errorf("quarter turn changed extents: %+v..%+v", min, max)
	}
	// A cube turned 45 degrees is wider.
	r = k.Rotate(k.Cube(100), 45, 0, 0)
	min, max = r.BoundingBox()
	if !approxEqual(max.X-min.X, 100*math.Sqrt2, 1e-9) {
		t.Errorf("45 degree width = %g", max.X-min.X)
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	s := k.Translate(k.Cube(10), 100, 0, -5)
	min, max := s.BoundingBox()
	if min.X != 95 || max.X != 105 {
		t.Errorf("X range = %g..%g, want 95..105", min.X, max.X)
	}
	if min.Z != -10 || max.Z != 0 {
		t.Errorf("Z range = %g..%g, want -10..0", min.Z, max.Z)
	}
}

func TestTransformDoesNotAlias(t *testing.T) {
	k := New()
	base := k.Cube(10)
	_ = k.Translate(base, 50, 50, 50)
	min, _ := base.BoundingBox()
	if min.X != -5 {
		t.Errorf("original solid was modified: min %+v", min)
	}
}
