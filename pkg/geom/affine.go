package geom

import (
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Affine is a 2D affine transform backed by an sdfx 3x3 matrix.
//
// Builders post-multiply, so Identity().Translate(c).Rotate(a) rotates a
// point first and then translates it.
type Affine struct {
	m sdf.M33
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{m: sdf.Identity2d()}
}

// Translate appends a translation.
func (a Affine) Translate(dx, dy float64) Affine {
	return Affine{m: a.m.Mul(sdf.Translate2d(v2.Vec{X: dx, Y: dy}))}
}

// Scale appends a non-uniform scale.
func (a Affine) Scale(sx, sy float64) Affine {
	return Affine{m: a.m.Mul(sdf.Scale2d(v2.Vec{X: sx, Y: sy}))}
}

// Rotate appends a rotation in degrees. Positive angles turn clockwise on a
// y-down canvas.
func (a Affine) Rotate(deg float64) Affine {
	return Affine{m: a.m.Mul(sdf.Rotate2d(Radians(deg)))}
}

// Then returns the transform that applies a and then b.
func (a Affine) Then(b Affine) Affine {
	return Affine{m: b.m.Mul(a.m)}
}

// Apply transforms a single point.
func (a Affine) Apply(p Vec2) Vec2 {
	return a.m.MulPosition(p)
}

// ApplyAll transforms every point into a new slice.
func (a Affine) ApplyAll(pts []Vec2) []Vec2 {
	out := make([]Vec2, len(pts))
	for i, p := range pts {
		out[i] = a.m.MulPosition(p)
	}
	return out
}

// Transform3 is a rigid 3D transform backed by an sdfx 4x4 matrix.
type Transform3 struct {
	m sdf.M44
}

// Rotation3 builds a rotation from yaw (about Y), pitch (about X) and roll
// (about Z), all in degrees. Roll is applied first, then pitch, then yaw.
func Rotation3(yaw, pitch, roll float64) Transform3 {
	m := sdf.RotateY(Radians(yaw)).Mul(sdf.RotateX(Radians(pitch))).Mul(sdf.RotateZ(Radians(roll)))
	return Transform3{m: m}
}

// Translate3 builds a translation.
func Translate3(d Vec3) Transform3 {
	return Transform3{m: sdf.Translate3d(v3.Vec{X: d.X, Y: d.Y, Z: d.Z})}
}

// Then returns the transform that applies t and then u.
func (t Transform3) Then(u Transform3) Transform3 {
	return Transform3{m: u.m.Mul(t.m)}
}

// Apply transforms a point.
func (t Transform3) Apply(p Vec3) Vec3 {
	return t.m.MulPosition(p)
}
