// Package sdfx implements the kernel.Kernel interface with the vector and
// matrix types of the github.com/deadsy/sdfx CAD library.
package sdfx

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// polyhedron is a convex solid with faces wound so that the vertex cross
// product points inward.
type polyhedron struct {
	verts []v3.Vec
	faces [][]int
}

// BoundingBox returns the axis-aligned bounding box.
func (p *polyhedron) BoundingBox() (min, max geom.Vec3) {
	if len(p.verts) == 0 {
		return min, max
	}
	min, max = p.verts[0], p.verts[0]
	for _, v := range p.verts[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// SdfxKernel implements kernel.Kernel using sdfx matrices.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying polyhedron from a kernel.Solid.
func unwrap(s kernel.Solid) *polyhedron {
	return s.(*polyhedron)
}

// Cube creates a cube with the given edge length.
func (k *SdfxKernel) Cube(edge float64) kernel.Solid {
	return k.Prism(edge, edge, edge)
}

// Prism creates a box with the given extents along X, Y and Z.
func (k *SdfxKernel) Prism(w, h, d float64) kernel.Solid {
	half := v3.Vec{X: w / 2, Y: h / 2, Z: d / 2}
	p := &polyhedron{verts: make([]v3.Vec, 8)}
	// Vertex i has its X, Y and Z signs in bits 0, 1 and 2.
	for i := range p.verts {
		p.verts[i] = v3.Vec{
			X: sign(i&1) * half.X,
			Y: sign(i&2) * half.Y,
			Z: sign(i&4) * half.Z,
		}
	}
	p.faces = [][]int{
		{0, 1, 3, 2}, // front
		{4, 5, 7, 6}, // back
		{0, 2, 6, 4}, // left
		{1, 3, 7, 5}, // right
		{0, 1, 5, 4}, // top
		{2, 3, 7, 6}, // bottom
	}
	orient(p)
	return p
}

func sign(bit int) float64 {
	if bit != 0 {
		return 1
	}
	return -1
}

// Pyramid creates a square pyramid with its apex up (negative Y).
func (k *SdfxKernel) Pyramid(base, height float64) kernel.Solid {
	b, h := base/2, height/2
	p := &polyhedron{
		verts: []v3.Vec{
			{X: -b, Y: h, Z: -b},
			{X: b, Y: h, Z: -b},
			{X: b, Y: h, Z: b},
			{X: -b, Y: h, Z: b},
			{X: 0, Y: -h, Z: 0},
		},
		faces: [][]int{
			{0, 1, 2, 3},
			{0, 1, 4},
			{1, 2, 4},
			{2, 3, 4},
			{3, 0, 4},
		},
	}
	orient(p)
	return p
}

// orient reverses every face whose cross product points away from the
// vertex centroid. Only valid for convex solids.
func orient(p *polyhedron) {
	var c v3.Vec
	for _, v := range p.verts {
		c = c.Add(v)
	}
	c = c.MulScalar(1 / float64(len(p.verts)))

	for _, f := range p.faces {
		n := winding(p.verts, f)
		if n.Dot(faceCenter(p.verts, f).Sub(c)) > 0 {
			for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
				f[i], f[j] = f[j], f[i]
			}
		}
	}
}

func winding(verts []v3.Vec, f []int) v3.Vec {
	a, b, c := verts[f[0]], verts[f[1]], verts[f[2]]
	return b.Sub(a).Cross(c.Sub(b))
}

func faceCenter(verts []v3.Vec, f []int) v3.Vec {
	var c v3.Vec
	for _, i := range f {
		c = c.Add(verts[i])
	}
	return c.MulScalar(1 / float64(len(f)))
}

// transform applies m to every vertex of s.
func transform(s kernel.Solid, m sdf.M44) kernel.Solid {
	p := unwrap(s)
	out := &polyhedron{
		verts: make([]v3.Vec, len(p.verts)),
		faces: make([][]int, len(p.faces)),
	}
	for i, v := range p.verts {
		out.verts[i] = m.MulPosition(v)
	}
	for i, f := range p.faces {
		out.faces[i] = append([]int(nil), f...)
	}
	return out
}

// Rotate turns a solid by yaw (about Y), pitch (about X) and roll (about
// Z), in degrees. Roll is applied first and yaw last.
func (k *SdfxKernel) Rotate(s kernel.Solid, yaw, pitch, roll float64) kernel.Solid {
	m := sdf.RotateY(geom.Radians(yaw)).
		Mul(sdf.RotateX(geom.Radians(pitch))).
		Mul(sdf.RotateZ(geom.Radians(roll)))
	return transform(s, m)
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return transform(s, sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z}))
}

// Faces returns the faces of s with outward unit normals.
func (k *SdfxKernel) Faces(s kernel.Solid) []kernel.Face {
	p := unwrap(s)
	faces := make([]kernel.Face, len(p.faces))
	for i, f := range p.faces {
		pts := make([]geom.Vec3, len(f))
		for j, idx := range f {
			pts[j] = p.verts[idx]
		}
		faces[i] = kernel.Face{
			Index:  i,
			Points: pts,
			Normal: winding(p.verts, f).MulScalar(-1).Normalize(),
		}
	}
	return faces
}

// Mesh returns a copy of the vertex and face tables.
func (k *SdfxKernel) Mesh(s kernel.Solid) *kernel.Mesh {
	p := unwrap(s)
	m := &kernel.Mesh{
		Vertices: append([]geom.Vec3(nil), p.verts...),
		Faces:    make([][]int, len(p.faces)),
	}
	for i, f := range p.faces {
		m.Faces[i] = append([]int(nil), f...)
	}
	return m
}
