package kernel

import (
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []geom.Vec3
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []geom.Vec3{{X: 1, Y: 2, Z: 3}}, 1},
		{"four vertices", make([]geom.Vec3, 4), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshFaceCount(t *testing.T) {
	tests := []struct {
		name  string
		faces [][]int
		want  int
	}{
		{"empty", nil, 0},
		{"one triangle", [][]int{{0, 1, 2}}, 1},
		{"triangle and quad", [][]int{{0, 1, 2}, {0, 1, 2, 3}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Faces: tt.faces}
			if got := m.FaceCount(); got != tt.want {
				t.Errorf("FaceCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []geom.Vec3{{X: 1, Y: 2, Z: 3}}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Face tests ---

func TestFaceDepth(t *testing.T) {
	f := Face{Points: []geom.Vec3{{Z: 1}, {Z: 3}, {Z: 5}}}
	if got := f.Depth(); got != 3 {
		t.Errorf("Depth() = %g, want 3", got)
	}
	if got := (Face{}).Depth(); got != 0 {
		t.Errorf("empty Depth() = %g, want 0", got)
	}
}
