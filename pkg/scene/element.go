package scene

// ---------------------------------------------------------------------------
// Relations
// ---------------------------------------------------------------------------

// RelationKind is a spatial constraint from one element to another.
type RelationKind string

const (
	RelNextTo      RelationKind = "next-to"
	RelAbove       RelationKind = "above"
	RelUnder       RelationKind = "under"
	RelInside      RelationKind = "inside"
	RelOverlapping RelationKind = "overlapping"
)

// Valid reports whether k is a known relation kind.
func (k RelationKind) Valid() bool {
	switch k {
	case RelNextTo, RelAbove, RelUnder, RelInside, RelOverlapping:
		return true
	}
	return false
}

// SanctionsOverlap reports whether the relation permits its two ends to
// overlap.
func (k RelationKind) SanctionsOverlap() bool {
	return k == RelInside || k == RelOverlapping
}

// Relation points from the element that carries it (the dependent) to
// Target.
type Relation struct {
	Kind   RelationKind `json:"kind" validate:"required,oneof=next-to above under inside overlapping"`
	Target string       `json:"target" validate:"required"`
}

// ---------------------------------------------------------------------------
// Chord links
// ---------------------------------------------------------------------------

// Link is a weighted connection between two chord-map entities.
type Link struct {
	Source string  `json:"source" validate:"required"`
	Target string  `json:"target" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0"`
}

// ---------------------------------------------------------------------------
// Elements
// ---------------------------------------------------------------------------

// SizeHint is a coarse size request.
type SizeHint string

const (
	SizeSmall  SizeHint = "small"
	SizeMedium SizeHint = "medium"
	SizeLarge  SizeHint = "large"
)

// SolidHints request a perspective rendering.
type SolidHints struct {
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`
	Roll  float64 `json:"roll"`
	Depth float64 `json:"depth,omitempty" validate:"gte=0"`
}

// DefaultSolidHints shows three faces of a cube.
var DefaultSolidHints = SolidHints{Yaw: 35, Pitch: 25}

// DefaultGridHints tilt a floor lattice back from the viewer.
var DefaultGridHints = SolidHints{Yaw: 20, Pitch: 60}

// ParsedElement is one parsed object from a scene description.
type ParsedElement struct {
	ID        string      `json:"id" validate:"required"`
	Shape     ShapeKind   `json:"shape"`
	Color     string      `json:"color,omitempty"`
	Size      SizeHint    `json:"size,omitempty" validate:"omitempty,oneof=small medium large"`
	Relations []Relation  `json:"relations,omitempty" validate:"dive"`
	Solid     *SolidHints `json:"solid,omitempty"`
	Links     []Link      `json:"links,omitempty" validate:"dive"`
	Sides     int         `json:"sides,omitempty" validate:"omitempty,min=3,max=32"`

	Values    []float64    `json:"values,omitempty"`
	Points    [][2]float64 `json:"points,omitempty"`
	Divisions int          `json:"divisions,omitempty" validate:"omitempty,min=1,max=64"`
}

// defaultColors fills in a color for elements that did not name one.
var defaultColors = map[ShapeKind]string{
	ShapeSun:    "yellow",
	ShapeSky:    "sky blue",
	ShapeGround: "green",
}

// EffectiveColor returns the element's color word, or the customary color
// for its kind when none was given.
func (e ParsedElement) EffectiveColor() string {
	if e.Color != "" {
		return e.Color
	}
	return defaultColors[NormalizeShape(string(e.Shape))]
}
