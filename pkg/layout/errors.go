package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLayoutUnresolvable is matched by errors.Is when the conflict pass gave
// up with a residual overlap above the hard threshold.
var ErrLayoutUnresolvable = errors.New("layout unresolvable")

// Residual is an overlap left after the conflict pass.
type Residual struct {
	A, B  string
	Area  float64
	Ratio float64
}

// UnresolvableError reports the overlaps that aborted a build.
type UnresolvableError struct {
	Iterations int
	Pairs      []Residual
}

func (e *UnresolvableError) Error() string {
	parts := make([]string, len(e.Pairs))
	for i, p := range e.Pairs {
		parts[i] = fmt.Sprintf("%s/%s covers %.0f%%", p.A, p.B, p.Ratio*100)
	}
	return fmt.Sprintf("%s after %d iterations: %s", ErrLayoutUnresolvable, e.Iterations, strings.Join(parts, ", "))
}

func (e *UnresolvableError) Is(target error) bool {
	return target == ErrLayoutUnresolvable
}
