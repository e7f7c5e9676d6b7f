package render

import (
	"math"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

// Chart styling.
const (
	chartInset    = 0.9 // plot area relative to the node's box
	chartFrame    = "#cccccc"
	sliceStroke   = "#ffffff"
	barSlot       = 1.2 // bar slot width relative to the bar
	seriesMargin  = 0.05
	lineMarker    = 4.0
	scatterMarker = 5.0
)

// chartGroup opens the node group and draws the plot frame.
func chartGroup(n *scene.SceneNode) (*Fragment, geom.Box) {
	area := n.Bounds.ScaleAbout(chartInset)
	g := NewFragment("g").Set("id", nodeID(n))
	g.Append(NewFragment("rect").
		Set("x", area.Min.X).
		Set("y", area.Min.Y).
		Set("width", area.Width()).
		Set("height", area.Height()).
		Set("fill", "none").
		Set("stroke", chartFrame).
		Set("stroke-width", 1.0))
	return g, area
}

// seriesRange returns the bounds of vs widened by seriesMargin of their
// spread, or by one unit either side when every value is equal.
func seriesRange(vs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi-lo == 0 {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * seriesMargin
	return lo - pad, hi + pad
}

// scale maps v from [lo, hi] onto [a, b].
func scale(v, lo, hi, a, b float64) float64 {
	return a + (v-lo)/(hi-lo)*(b-a)
}

func renderBarChart(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.ChartData)
	g, area := chartGroup(n)
	if len(d.Values) == 0 {
		return g, nil
	}
	top := 0.0
	for _, v := range d.Values {
		top = math.Max(top, v)
	}
	if top == 0 {
		return g, nil
	}

	slot := area.Width() / float64(len(d.Values))
	w := slot / barSlot
	colors := entityColors(baseColor(n), len(d.Values))
	for i, v := range d.Values {
		if v <= 0 {
			continue
		}
		h := v / top * area.Height()
		bar := NewFragment("rect").
			Set("x", area.Min.X+float64(i)*slot+(slot-w)/2).
			Set("y", area.Max.Y-h).
			Set("width", w).
			Set("height", h).
			Set("fill", colors[i])
		if o := n.Style.Opacity; o > 0 && o < 1 {
			bar.Set("fill-opacity", o)
		}
		g.Append(bar)
	}
	return g, nil
}

func renderPieChart(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.ChartData)
	c, r := n.Center(), n.Radius()*chartInset
	g := NewFragment("g").Set("id", nodeID(n))

	total, count := 0.0, 0
	for _, v := range d.Values {
		if v > 0 {
			total += v
			count++
		}
	}
	if count == 0 {
		g.Append(NewFragment("circle").
			Set("cx", c.X).
			Set("cy", c.Y).
			Set("r", r).
			Set("fill", "none").
			Set("stroke", chartFrame).
			Set("stroke-width", 1.0))
		return g, nil
	}

	colors := entityColors(baseColor(n), len(d.Values))
	angle := 0.0
	for i, v := range d.Values {
		if v <= 0 {
			continue
		}
		var slice *Fragment
		if count == 1 {
			// A lone slice is the whole disc; an arc cannot end where it starts.
			slice = NewFragment("circle").Set("cx", c.X).Set("cy", c.Y).Set("r", r)
		} else {
			span := v / total * 2 * math.Pi
			var p pathData
			p.MoveTo(c).
				LineTo(geom.Polar(c, r, angle)).
				ArcTo(r, span > math.Pi, geom.Polar(c, r, angle+span)).
				Close()
			slice = NewFragment("path").Set("d", p.String())
			angle += span
		}
		slice.Set("fill", colors[i]).
			Set("stroke", sliceStroke).
			Set("stroke-width", 1.0)
		g.Append(slice)
	}
	return g, nil
}

func renderLineChart(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.ChartData)
	g, area := chartGroup(n)
	if len(d.Values) == 0 {
		return g, nil
	}
	lo, hi := seriesRange(d.Values)
	pts := make([]geom.Vec2, len(d.Values))
	for i, v := range d.Values {
		x := area.Center().X
		if len(d.Values) > 1 {
			x = area.Min.X + float64(i)*area.Width()/float64(len(d.Values)-1)
		}
		pts[i] = geom.Vec2{X: x, Y: scale(v, lo, hi, area.Max.Y, area.Min.Y)}
	}

	color := baseColor(n)
	if len(pts) > 1 {
		var p pathData
		p.MoveTo(pts[0])
		for _, pt := range pts[1:] {
			p.LineTo(pt)
		}
		g.Append(NewFragment("path").
			Set("d", p.String()).
			Set("fill", "none").
			Set("stroke", color).
			Set("stroke-width", strokeWidth(n.Style.StrokeWidth, cfg)).
			Set("stroke-linejoin", "round"))
	}
	for _, pt := range pts {
		g.Append(NewFragment("circle").
			Set("cx", pt.X).
			Set("cy", pt.Y).
			Set("r", lineMarker).
			Set("fill", "#ffffff").
			Set("stroke", color).
			Set("stroke-width", 1.5))
	}
	return g, nil
}

func renderScatter(n *scene.SceneNode, cfg Config) (*Fragment, error) {
	d, _ := n.Data.(scene.ChartData)
	g, area := chartGroup(n)
	if len(d.Points) == 0 {
		return g, nil
	}
	xs := make([]float64, len(d.Points))
	ys := make([]float64, len(d.Points))
	for i, p := range d.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	xlo, xhi := seriesRange(xs)
	ylo, yhi := seriesRange(ys)

	color := baseColor(n)
	for _, p := range d.Points {
		dot := NewFragment("circle").
			Set("cx", scale(p.X, xlo, xhi, area.Min.X, area.Max.X)).
			Set("cy", scale(p.Y, ylo, yhi, area.Max.Y, area.Min.Y)).
			Set("r", scatterMarker).
			Set("fill", color).
			Set("fill-opacity", 0.7)
		g.Append(dot)
	}
	return g, nil
}
