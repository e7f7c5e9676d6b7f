package layout

// Config holds the tunables of the layout engine.
type Config struct {
	// Gap is the spacing between related boxes (next-to, above, under).
	Gap float64 `validate:"gte=0"`
	// Tolerance is the intersection area below which two boxes are
	// considered clear of each other.
	Tolerance float64 `validate:"gte=0"`
	// MaxPushIterations caps the conflict pass.
	MaxPushIterations int `validate:"gte=1"`
	// HardOverlapRatio is the share of the smaller box that a residual
	// overlap must cover before the build is aborted.
	HardOverlapRatio float64 `validate:"gt=0,lte=1"`
	// InsideInset is the largest fraction of a container's extent a
	// contained node may occupy.
	InsideInset float64 `validate:"gt=0,lte=1"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Gap:               12,
		Tolerance:         0.5,
		MaxPushIterations: 64,
		HardOverlapRatio:  0.9,
		InsideInset:       0.7,
	}
}

// withDefaults replaces zero values with defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Gap < 0 {
		c.Gap = d.Gap
	}
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.MaxPushIterations <= 0 {
		c.MaxPushIterations = d.MaxPushIterations
	}
	if c.HardOverlapRatio <= 0 || c.HardOverlapRatio > 1 {
		c.HardOverlapRatio = d.HardOverlapRatio
	}
	if c.InsideInset <= 0 || c.InsideInset > 1 {
		c.InsideInset = d.InsideInset
	}
	return c
}
