package style

// Treatment selects how a shape is filled.
type Treatment string

const (
	TreatmentFlat    Treatment = "flat"
	TreatmentLinear  Treatment = "linear"
	TreatmentRadial  Treatment = "radial"
	TreatmentRainbow Treatment = "rainbow"
	TreatmentStripes Treatment = "stripes"
	TreatmentDots    Treatment = "dots"
	TreatmentGrid    Treatment = "grid"
)

// Valid reports whether t is a known treatment.
func (t Treatment) Valid() bool {
	switch t {
	case TreatmentFlat, TreatmentLinear, TreatmentRadial, TreatmentRainbow,
		TreatmentStripes, TreatmentDots, TreatmentGrid:
		return true
	}
	return false
}

// IsPattern reports whether t is painted with a tile pattern.
func (t Treatment) IsPattern() bool {
	return t == TreatmentStripes || t == TreatmentDots || t == TreatmentGrid
}

// Stop is one gradient color stop. Offset is in [0, 1].
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Gradient is a paint server definition. Linear gradients run from
// (X1,Y1) to (X2,Y2) in bounding-box units.
type Gradient struct {
	ID     string  `json:"id"`
	Radial bool    `json:"radial"`
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Stops  []Stop  `json:"stops"`
}

// Pattern is a tile definition in user space.
type Pattern struct {
	ID         string    `json:"id"`
	Kind       Treatment `json:"kind"`
	Tile       float64   `json:"tile"`
	Background string    `json:"background"`
	Foreground string    `json:"foreground"`
	LineWidth  float64   `json:"lineWidth"`
}

// Spec is the resolved paint for one node.
type Spec struct {
	Treatment   Treatment `json:"treatment"`
	Base        string    `json:"base"`
	Stroke      string    `json:"stroke"`
	StrokeWidth float64   `json:"strokeWidth"`
	Opacity     float64   `json:"opacity"`
	Gradient    *Gradient `json:"gradient,omitempty"`
	Pattern     *Pattern  `json:"pattern,omitempty"`
}

// Fill returns the value for an SVG fill attribute.
func (s Spec) Fill() string {
	switch {
	case s.Gradient != nil:
		return "url(#" + s.Gradient.ID + ")"
	case s.Pattern != nil:
		return "url(#" + s.Pattern.ID + ")"
	}
	return s.Base
}

// DefinitionID returns the id of the paint server the spec references, or
// "" for flat paint.
func (s Spec) DefinitionID() string {
	switch {
	case s.Gradient != nil:
		return s.Gradient.ID
	case s.Pattern != nil:
		return s.Pattern.ID
	}
	return ""
}
