// Package kernel defines the solid modeling interface used by the
// perspective renderer. Implementations build small convex polyhedra and
// transform them; the renderer only ever sees their faces.
package kernel

import "github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"

// Solid is an opaque handle to a kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max geom.Vec3)
}

// Kernel is the abstract geometry kernel interface. Every solid is centered
// on the origin when created.
type Kernel interface {
	// Primitives
	Cube(edge float64) Solid
	Prism(w, h, d float64) Solid
	Pyramid(base, height float64) Solid

	// Transforms
	Rotate(s Solid, yaw, pitch, roll float64) Solid // degrees
	Translate(s Solid, x, y, z float64) Solid

	// Faces returns the faces of s in a stable order. Face vertices wind
	// clockwise when the face is seen from outside on a y-down screen.
	Faces(s Solid) []Face

	// Mesh returns the vertex/face tables of s.
	Mesh(s Solid) *Mesh
}
