package geom

import (
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vec2 is a point or displacement on the canvas. Y grows downward.
type Vec2 = v2.Vec

// Vec3 is a point in the local space of a solid. Z grows away from the
// viewer.
type Vec3 = v3.Vec

// Size is a width/height pair in canvas units.
type Size struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height" validate:"gt=0"`
}

// Min returns the smaller of the two dimensions.
func (s Size) Min() float64 {
	return math.Min(s.Width, s.Height)
}

// Center returns the midpoint of a canvas of this size.
func (s Size) Center() Vec2 {
	return Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Polar returns the point at the given angle (radians) and radius around c.
func Polar(c Vec2, radius, angle float64) Vec2 {
	return Vec2{X: c.X + radius*math.Cos(angle), Y: c.Y + radius*math.Sin(angle)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
