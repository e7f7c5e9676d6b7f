package geom

import (
	"errors"
	"fmt"
)

// DefaultFocalLength is the camera distance used when none is configured.
const DefaultFocalLength = 400.0

// minDepth is how far in front of the camera plane ClampDepth places a
// point.
const minDepth = 1e-3

// ErrDegenerateProjection is returned when a point lies on or behind the
// camera plane and cannot be projected.
var ErrDegenerateProjection = errors.New("degenerate projection")

// Project maps a 3D point onto the z=0 picture plane through a pinhole
// camera sitting at distance f in front of it:
//
//	x' = x * f / (f + z)
//	y' = y * f / (f + z)
//
// Points with f + z <= 0 fail with ErrDegenerateProjection.
func Project(p Vec3, f float64) (Vec2, error) {
	d := f + p.Z
	if d <= 0 {
		return Vec2{}, fmt.Errorf("z=%g with focal length %g: %w", p.Z, f, ErrDegenerateProjection)
	}
	k := f / d
	return Vec2{X: p.X * k, Y: p.Y * k}, nil
}

// ClampDepth returns p with its depth pulled just in front of the camera
// plane when it would otherwise be unprojectable.
func ClampDepth(p Vec3, f float64) Vec3 {
	if f+p.Z <= 0 {
		p.Z = minDepth - f
	}
	return p
}
