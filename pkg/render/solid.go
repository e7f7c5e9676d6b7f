package render

import (
	"fmt"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// modelSize is the edge length solids are built at before the projection
// is fitted into the node's box, so perspective strength does not depend on
// node size.
const modelSize = 100.0

// defaultPrismDepth is the prism depth relative to its width.
const defaultPrismDepth = 0.6

// lightDir points from a surface toward the light: up, left and in front.
var lightDir = geom.Vec3{X: -0.4, Y: -0.7, Z: -0.6}.Normalize()

// Face shading: lightness shift of a face turned fully away from the light,
// and the extra shift of one facing it.
const (
	shadeMin   = -0.22
	shadeRange = 0.32
)

// ProjectedFace is a visible face with its picture-plane outline.
type ProjectedFace struct {
	Face   kernel.Face
	Points []geom.Vec2
}

// VisibleFaces projects the faces of s through a pinhole camera at focal
// length f, drops the faces that wind counter-clockwise on screen, and
// returns the rest far-to-near by mean depth. Ties keep face order.
// clamped counts the vertices that had to be pulled in front of the camera.
func VisibleFaces(k kernel.Kernel, s kernel.Solid, f float64) (faces []ProjectedFace, clamped int) {
	for _, face := range k.Faces(s) {
		pts := make([]geom.Vec2, len(face.Points))
		for i, p := range face.Points {
			q, err := geom.Project(p, f)
			if err != nil {
				clamped++
				q, _ = geom.Project(geom.ClampDepth(p, f), f)
			}
			pts[i] = q
		}
		if geom.SignedArea(pts) <= 0 {
			continue
		}
		faces = append(faces, ProjectedFace{Face: face, Points: pts})
	}
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].Face.Depth() > faces[j].Face.Depth()
	})
	return faces, clamped
}

// SolidRenderer draws cubes, prisms and pyramids in perspective.
type SolidRenderer struct {
	Kernel kernel.Kernel
}

// Solid builds the oriented model solid for n.
func (r *SolidRenderer) Solid(n *scene.SceneNode) (kernel.Solid, error) {
	d, _ := n.Data.(scene.SolidData)
	aspect := 1.0
	if n.Width() > 0 && n.Height() > 0 {
		aspect = n.Height() / n.Width()
	}

	var s kernel.Solid
	switch n.Shape {
	case scene.ShapeCube:
		s = r.Kernel.Cube(modelSize)
	case scene.ShapePrism:
		depth := defaultPrismDepth
		if d.Depth > 0 {
			depth = d.Depth
		}
		s = r.Kernel.Prism(modelSize, modelSize*aspect, modelSize*depth)
	case scene.ShapePyramid:
		s = r.Kernel.Pyramid(modelSize, modelSize*aspect)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedShape, n.Shape)
	}
	return r.Kernel.Rotate(s, d.Yaw, d.Pitch, d.Roll), nil
}

// Model returns the oriented solid for n moved behind the picture plane, so
// that its nearest point sits at depth zero.
func (r *SolidRenderer) Model(n *scene.SceneNode) (kernel.Solid, error) {
	s, err := r.Solid(n)
	if err != nil {
		return nil, err
	}
	min, _ := s.BoundingBox()
	return r.Kernel.Translate(s, 0, 0, -min.Z), nil
}

// Render emits one polygon per visible face inside a group, scaled to fit
// the node's box.
func (r *SolidRenderer) Render(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	s, err := r.Model(n)
	if err != nil {
		return nil, err
	}
	faces, clamped := VisibleFaces(r.Kernel, s, cfg.FocalLength)
	if clamped > 0 {
		logger.Warn("Clamped degenerate projection", "node", n.ID, "points", clamped, "focal_length", cfg.FocalLength)
	}

	var outline []geom.Vec2
	for _, f := range faces {
		outline = append(outline, f.Points...)
	}
	fit := fitInto(geom.BoundsOf(outline), n.Bounds)

	base, err := colorful.Hex(baseColor(n))
	if err != nil {
		base, _ = colorful.Hex(style.FallbackColor)
	}
	stroke := n.Style.Stroke
	if stroke == "" {
		stroke = style.Lighten(base, -0.3).Hex()
	}
	width := strokeWidth(n.Style.StrokeWidth/2, cfg)

	g := NewFragment("g").Set("id", nodeID(n))
	for _, f := range faces {
		lambert := math.Max(0, f.Face.Normal.Dot(lightDir))
		poly := NewFragment("polygon").
			Set("points", points(fit.ApplyAll(f.Points))).
			Set("fill", style.Lighten(base, shadeMin+shadeRange*lambert).Hex()).
			Set("stroke", stroke).
			Set("stroke-width", width).
			Set("stroke-linejoin", "round")
		if o := n.Style.Opacity; o > 0 && o < 1 {
			poly.Set("fill-opacity", o)
		}
		g.Append(poly)
	}
	return g, nil
}

// fitInto maps src uniformly onto the center of dst.
func fitInto(src, dst geom.Box) geom.Affine {
	k := 1.0
	switch w, h := src.Width(), src.Height(); {
	case w > 0 && h > 0:
		k = math.Min(dst.Width()/w, dst.Height()/h)
	case w > 0:
		k = dst.Width() / w
	case h > 0:
		k = dst.Height() / h
	}
	sc, dc := src.Center(), dst.Center()
	return geom.Identity().Translate(dc.X, dc.Y).Scale(k, k).Translate(-sc.X, -sc.Y)
}
