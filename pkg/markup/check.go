package markup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
)

// ErrConstraint is matched by errors.Is for every constraint failure.
var ErrConstraint = errors.New("svg constraint violated")

// Constraints bound what a finished document may contain.
type Constraints struct {
	MaxBytes int `validate:"gte=0"` // 0 disables the size check
	MaxDepth int `validate:"gte=0"` // 0 disables the depth check
	Allowed  []string
	// Prohibited attributes are rejected everywhere, except that "id" is
	// accepted on paint servers and their stops.
	Prohibited []string
}

// DefaultConstraints returns the stock output rules: 10 KB, a small element
// vocabulary and no styling hooks.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxBytes: 10 * 1024,
		MaxDepth: 5,
		Allowed: []string{
			"svg", "g", "path", "circle", "rect", "polygon", "defs",
			"linearGradient", "radialGradient", "stop", "pattern",
		},
		Prohibited: []string{"style", "filter", "href", "xlink:href", "class", "id"},
	}
}

var paintServers = map[string]bool{
	"linearGradient": true,
	"radialGradient": true,
	"pattern":        true,
	"stop":           true,
}

// Violation is one constraint failure. Path is the slash-joined element
// path from the root, e.g. "svg/g[2]/polygon[0]".
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// CheckError lists every violation found.
type CheckError struct {
	Violations []Violation
}

func (e *CheckError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrConstraint, strings.Join(parts, "; "))
}

func (e *CheckError) Is(target error) bool {
	return target == ErrConstraint
}

func set(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

func (c Constraints) attrProhibited(prohibited map[string]bool, element, attr string) bool {
	if attr == "id" && paintServers[element] {
		return false
	}
	return prohibited[attr]
}

// Check validates root against c. It returns a *CheckError listing every
// violation, or nil.
func Check(root *render.Fragment, c Constraints) error {
	allowed, prohibited := set(c.Allowed), set(c.Prohibited)
	var out []Violation

	var visit func(f *render.Fragment, path string, depth int)
	visit = func(f *render.Fragment, path string, depth int) {
		if len(allowed) > 0 && !allowed[f.Name] {
			out = append(out, Violation{Path: path, Message: fmt.Sprintf("element <%s> is not allowed", f.Name)})
		}
		if c.MaxDepth > 0 && depth > c.MaxDepth {
			out = append(out, Violation{Path: path, Message: fmt.Sprintf("nesting depth %d exceeds %d", depth, c.MaxDepth)})
		}
		for _, a := range f.Attributes() {
			if c.attrProhibited(prohibited, f.Name, a.Key) {
				out = append(out, Violation{Path: path, Message: fmt.Sprintf("attribute %q is prohibited", a.Key)})
			}
		}
		for i, ch := range f.Children {
			visit(ch, fmt.Sprintf("%s/%s[%d]", path, ch.Name, i), depth+1)
		}
	}
	visit(root, root.Name, 0)

	if c.MaxBytes > 0 {
		b, err := Bytes(root)
		if err != nil {
			return err
		}
		if len(b) > c.MaxBytes {
			out = append(out, Violation{Message: fmt.Sprintf("document is %d bytes, limit %d", len(b), c.MaxBytes)})
		}
	}

	if len(out) > 0 {
		return &CheckError{Violations: out}
	}
	return nil
}

// Sanitize returns a copy of root without disallowed elements (and their
// subtrees) and without prohibited attributes. root itself is not modified.
// A disallowed root yields nil.
func Sanitize(root *render.Fragment, c Constraints) *render.Fragment {
	allowed, prohibited := set(c.Allowed), set(c.Prohibited)

	var clean func(f *render.Fragment) *render.Fragment
	clean = func(f *render.Fragment) *render.Fragment {
		if len(allowed) > 0 && !allowed[f.Name] {
			logger.Debug("Removing disallowed element", "element", f.Name)
			return nil
		}
		out := render.NewFragment(f.Name)
		for _, a := range f.Attributes() {
			if c.attrProhibited(prohibited, f.Name, a.Key) {
				continue
			}
			out.Set(a.Key, a.Value)
		}
		for _, ch := range f.Children {
			out.Append(clean(ch))
		}
		return out
	}
	return clean(root)
}
