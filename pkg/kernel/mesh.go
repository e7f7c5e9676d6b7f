package kernel

import "github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"

// Mesh is an indexed polygon mesh. Each face lists vertex indices.
type Mesh struct {
	Vertices []geom.Vec3 `json:"vertices"`
	Faces    [][]int     `json:"faces"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Face is one polygon of a solid with its outward unit normal.
type Face struct {
	Index  int         `json:"index"`
	Points []geom.Vec3 `json:"points"`
	Normal geom.Vec3   `json:"normal"`
}

// Depth returns the mean Z of the face vertices. Larger is farther from
// the viewer.
func (f Face) Depth() float64 {
	if len(f.Points) == 0 {
		return 0
	}
	var z float64
	for _, p := range f.Points {
		z += p.Z
	}
	return z / float64(len(f.Points))
}
