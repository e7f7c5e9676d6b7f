package scene

// Builder assembles an element list in code. It is used by tests, the
// script engine and examples.
type Builder struct {
	elements []*ParsedElement
	index    map[string]*ParsedElement
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]*ParsedElement)}
}

// ElementBuilder configures one element.
type ElementBuilder struct {
	e *ParsedElement
}

// Element returns the builder for id, creating the element on first use.
// Elements keep the order in which they were first named.
func (b *Builder) Element(id string) *ElementBuilder {
	if e, ok := b.index[id]; ok {
		return &ElementBuilder{e: e}
	}
	e := &ParsedElement{ID: id}
	b.elements = append(b.elements, e)
	b.index[id] = e
	return &ElementBuilder{e: e}
}

// Has reports whether id has been named.
func (b *Builder) Has(id string) bool {
	_, ok := b.index[id]
	return ok
}

// Elements returns a copy of the elements built so far.
func (b *Builder) Elements() []ParsedElement {
	out := make([]ParsedElement, len(b.elements))
	for i, e := range b.elements {
		out[i] = *e
		out[i].Relations = append([]Relation(nil), e.Relations...)
		out[i].Links = append([]Link(nil), e.Links...)
		if e.Solid != nil {
			s := *e.Solid
			out[i].Solid = &s
		}
	}
	return out
}

func (eb *ElementBuilder) Shape(k ShapeKind) *ElementBuilder {
	eb.e.Shape = k
	return eb
}

func (eb *ElementBuilder) Color(c string) *ElementBuilder {
	eb.e.Color = c
	return eb
}

func (eb *ElementBuilder) Size(s SizeHint) *ElementBuilder {
	eb.e.Size = s
	return eb
}

func (eb *ElementBuilder) Sides(n int) *ElementBuilder {
	eb.e.Sides = n
	return eb
}

// Values sets the series plotted by bar, pie and line charts.
func (eb *ElementBuilder) Values(v ...float64) *ElementBuilder {
	eb.e.Values = append(eb.e.Values, v...)
	return eb
}

// Point adds one (x, y) sample to a scatter plot.
func (eb *ElementBuilder) Point(x, y float64) *ElementBuilder {
	eb.e.Points = append(eb.e.Points, [2]float64{x, y})
	return eb
}

func (eb *ElementBuilder) Divisions(n int) *ElementBuilder {
	eb.e.Divisions = n
	return eb
}

// Solid marks the element for perspective rendering.
func (eb *ElementBuilder) Solid(yaw, pitch float64) *ElementBuilder {
	if eb.e.Solid == nil {
		eb.e.Solid = &SolidHints{}
	}
	eb.e.Solid.Yaw, eb.e.Solid.Pitch = yaw, pitch
	return eb
}

// Roll sets the solid's rotation about the view axis.
func (eb *ElementBuilder) Roll(deg float64) *ElementBuilder {
	if eb.e.Solid == nil {
		h := DefaultSolidHints
		eb.e.Solid = &h
	}
	eb.e.Solid.Roll = deg
	return eb
}

// Depth sets the Z extent of a solid relative to its width.
func (eb *ElementBuilder) Depth(d float64) *ElementBuilder {
	if eb.e.Solid == nil {
		h := DefaultSolidHints
		eb.e.Solid = &h
	}
	eb.e.Solid.Depth = d
	return eb
}

// Relate appends a relation. Relations keep insertion order.
func (eb *ElementBuilder) Relate(k RelationKind, target string) *ElementBuilder {
	eb.e.Relations = append(eb.e.Relations, Relation{Kind: k, Target: target})
	return eb
}

func (eb *ElementBuilder) NextTo(target string) *ElementBuilder      { return eb.Relate(RelNextTo, target) }
func (eb *ElementBuilder) Above(target string) *ElementBuilder       { return eb.Relate(RelAbove, target) }
func (eb *ElementBuilder) Under(target string) *ElementBuilder       { return eb.Relate(RelUnder, target) }
func (eb *ElementBuilder) Inside(target string) *ElementBuilder      { return eb.Relate(RelInside, target) }
func (eb *ElementBuilder) Overlapping(target string) *ElementBuilder { return eb.Relate(RelOverlapping, target) }

// Link appends a weighted chord connection.
func (eb *ElementBuilder) Link(source, target string, weight float64) *ElementBuilder {
	eb.e.Links = append(eb.e.Links, Link{Source: source, Target: target, Weight: weight})
	return eb
}
