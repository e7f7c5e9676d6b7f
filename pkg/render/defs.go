package render

import (
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// Definition renders the paint server referenced by s, or nil for flat
// paint.
func Definition(s style.Spec) *Fragment {
	switch {
	case s.Gradient != nil:
		return gradient(s.Gradient)
	case s.Pattern != nil:
		return pattern(s.Pattern)
	}
	return nil
}

// Definitions renders every paint server in specs, in order, skipping flat
// paint.
func Definitions(specs []style.Spec) []*Fragment {
	var out []*Fragment
	for _, s := range specs {
		if f := Definition(s); f != nil {
			out = append(out, f)
		}
	}
	return out
}

func gradient(g *style.Gradient) *Fragment {
	var f *Fragment
	if g.Radial {
		f = NewFragment("radialGradient").
			Set("id", g.ID).
			Set("cx", 0.5).
			Set("cy", 0.5).
			Set("r", 0.5).
			Set("fx", 0.35).
			Set("fy", 0.35)
	} else {
		f = NewFragment("linearGradient").
			Set("id", g.ID).
			Set("x1", g.X1).
			Set("y1", g.Y1).
			Set("x2", g.X2).
			Set("y2", g.Y2)
	}
	for _, s := range g.Stops {
		f.Append(NewFragment("stop").
			Set("offset", s.Offset).
			Set("stop-color", s.Color))
	}
	return f
}

func pattern(p *style.Pattern) *Fragment {
	t := p.Tile
	f := NewFragment("pattern").
		Set("id", p.ID).
		Set("width", t).
		Set("height", t).
		Set("patternUnits", "userSpaceOnUse")
	f.Append(NewFragment("rect").
		Set("width", t).
		Set("height", t).
		Set("fill", p.Background))

	switch p.Kind {
	case style.TreatmentDots:
		f.Append(NewFragment("circle").
			Set("cx", t/2).
			Set("cy", t/2).
			Set("r", t/5).
			Set("fill", p.Foreground))
	case style.TreatmentGrid:
		var d pathData
		d.MoveTo(geom.Vec2{X: t}).LineTo(geom.Vec2{}).LineTo(geom.Vec2{Y: t})
		f.Append(NewFragment("path").
			Set("d", d.String()).
			Set("fill", "none").
			Set("stroke", p.Foreground).
			Set("stroke-width", p.LineWidth))
	default:
		f.Append(NewFragment("rect").
			Set("width", t/2).
			Set("height", t).
			Set("fill", p.Foreground))
	}
	return f
}
