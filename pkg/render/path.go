package render

import (
	"strings"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
)

// pathData builds an SVG path "d" attribute with absolute commands.
type pathData struct {
	b strings.Builder
}

func (p *pathData) cmd(c byte, pts ...geom.Vec2) *pathData {
	if p.b.Len() > 0 {
		p.b.WriteByte(' ')
	}
	p.b.WriteByte(c)
	for i, v := range pts {
		if i > 0 {
			p.b.WriteByte(',')
		}
		p.b.WriteByte(' ')
		p.b.WriteString(Num(v.X))
		p.b.WriteByte(' ')
		p.b.WriteString(Num(v.Y))
	}
	return p
}

func (p *pathData) MoveTo(v geom.Vec2) *pathData { return p.cmd('M', v) }
func (p *pathData) LineTo(v geom.Vec2) *pathData { return p.cmd('L', v) }

func (p *pathData) CubicTo(c1, c2, to geom.Vec2) *pathData {
	return p.cmd('C', c1, c2, to)
}

// ArcTo draws a circular arc of radius r to v, clockwise on screen.
func (p *pathData) ArcTo(r float64, large bool, v geom.Vec2) *pathData {
	flag := "0"
	if large {
		flag = "1"
	}
	p.cmd('A')
	p.b.WriteString(" " + Num(r) + " " + Num(r) + " 0 " + flag + " 1 " + Num(v.X) + " " + Num(v.Y))
	return p
}

func (p *pathData) Close() *pathData { return p.cmd('Z') }

func (p *pathData) String() string { return p.b.String() }

// points formats a polygon "points" attribute.
func points(pts []geom.Vec2) string {
	var b strings.Builder
	for i, v := range pts {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Num(v.X))
		b.WriteByte(',')
		b.WriteString(Num(v.Y))
	}
	return b.String()
}
