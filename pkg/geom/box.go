package geom

import "math"

// Box is an axis-aligned bounding box. Min is the top-left corner.
type Box struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// BoxAt returns the box with top-left corner (x, y) and the given size.
func BoxAt(x, y, w, h float64) Box {
	return Box{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// BoxAround returns the box of the given size centered on c.
func BoxAround(c Vec2, w, h float64) Box {
	return BoxAt(c.X-w/2, c.Y-h/2, w, h)
}

// BoundsOf returns the smallest box containing every point. The zero Box is
// returned for an empty slice.
func BoundsOf(pts []Vec2) Box {
	if len(pts) == 0 {
		return Box{}
	}
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
func (b Box) Area() float64   { return b.Width() * b.Height() }

// Center returns the midpoint of the box.
func (b Box) Center() Vec2 {
	return Vec2{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Translate moves the box by d.
func (b Box) Translate(d Vec2) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// MoveCenter returns the box moved so that its center sits at c.
func (b Box) MoveCenter(c Vec2) Box {
	return BoxAround(c, b.Width(), b.Height())
}

// ScaleAbout scales the box by k around its center.
func (b Box) ScaleAbout(k float64) Box {
	return BoxAround(b.Center(), b.Width()*k, b.Height()*k)
}

// Union returns the smallest box containing both boxes.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Vec2{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Contains reports whether o lies entirely within b.
func (b Box) Contains(o Box) bool {
	return o.Min.X >= b.Min.X && o.Min.Y >= b.Min.Y &&
		o.Max.X <= b.Max.X && o.Max.Y <= b.Max.Y
}

// overlapExtent returns the overlap lengths along each axis. Either value is
// <= 0 when the boxes are disjoint on that axis.
func (b Box) overlapExtent(o Box) (dx, dy float64) {
	dx = math.Min(b.Max.X, o.Max.X) - math.Max(b.Min.X, o.Min.X)
	dy = math.Min(b.Max.Y, o.Max.Y) - math.Max(b.Min.Y, o.Min.Y)
	return dx, dy
}

// Intersect reports whether the boxes share interior area and, if so, how
// much. Boxes that only touch along an edge do not intersect.
func (b Box) Intersect(o Box) (bool, float64) {
	dx, dy := b.overlapExtent(o)
	if dx <= 0 || dy <= 0 {
		return false, 0
	}
	return true, dx * dy
}

// Penetration returns the minimum translation that moves o out of b. The
// shorter overlap axis wins; the direction points from b's center toward
// o's center, defaulting to +X/+Y when the centers coincide. A zero vector
// is returned when the boxes do not intersect.
func (b Box) Penetration(o Box) Vec2 {
	dx, dy := b.overlapExtent(o)
	if dx <= 0 || dy <= 0 {
		return Vec2{}
	}
	bc, oc := b.Center(), o.Center()
	if dx <= dy {
		if oc.X < bc.X {
			return Vec2{X: -dx}
		}
		return Vec2{X: dx}
	}
	if oc.Y < bc.Y {
		return Vec2{Y: -dy}
	}
	return Vec2{Y: dy}
}
