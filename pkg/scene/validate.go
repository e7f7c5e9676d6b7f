package scene

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator"
)

// ValidationSeverity indicates whether a finding blocks the build or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks the build
	SeverityWarning                           // the element is degraded, not rejected
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ID       string             // offending element, empty for list-level findings
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] element %q: %s", e.Severity, e.ID, e.Message)
}

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Err joins the blocking errors, or returns nil if there are none.
func (r ValidationResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) add(e ValidationError) {
	if e.Severity == SeverityError {
		r.Errors = append(r.Errors, e)
	} else {
		r.Warnings = append(r.Warnings, e)
	}
}

var structValidator = validator.New()

// Validate checks an element list. It is read-only.
//
// Errors: empty or duplicate ids, cycles among inside relations.
// Warnings: malformed fields (bad size hint, relation kind, link weight or
// side count), relations to unknown ids, relations to self, charts with
// nothing to plot.
func Validate(elements []ParsedElement) ValidationResult {
	var res ValidationResult
	validateFields(elements, &res)
	validateIDs(elements, &res)
	validateTargets(elements, &res)
	validateSeries(elements, &res)
	validateInsideCycles(elements, &res)
	return res
}

// validateFields runs the struct tags on each element.
func validateFields(elements []ParsedElement, res *ValidationResult) {
	for i := range elements {
		err := structValidator.Struct(&elements[i])
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			res.add(ValidationError{ID: elements[i].ID, Message: err.Error(), Severity: SeverityError})
			continue
		}
		for _, fe := range fieldErrs {
			if fe.Field() == "ID" {
				// Reported by validateIDs with a better message.
				continue
			}
			res.add(ValidationError{
				ID:       elements[i].ID,
				Message:  fmt.Sprintf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()),
				Severity: SeverityWarning,
			})
		}
	}
}

func validateIDs(elements []ParsedElement, res *ValidationResult) {
	seen := make(map[string]int)
	for i, e := range elements {
		if e.ID == "" {
			res.add(ValidationError{
				Message:  fmt.Sprintf("element at index %d has no id", i),
				Severity: SeverityError,
			})
			continue
		}
		if first, dup := seen[e.ID]; dup {
			res.add(ValidationError{
				ID:       e.ID,
				Message:  fmt.Sprintf("duplicate id (first used at index %d)", first),
				Severity: SeverityError,
			})
			continue
		}
		seen[e.ID] = i
	}
}

func validateTargets(elements []ParsedElement, res *ValidationResult) {
	ids := make(map[string]bool, len(elements))
	for _, e := range elements {
		ids[e.ID] = true
	}
	for _, e := range elements {
		for _, r := range e.Relations {
			switch {
			case r.Target == e.ID:
				res.add(ValidationError{
					ID:       e.ID,
					Message:  fmt.Sprintf("%s relation to itself is ignored", r.Kind),
					Severity: SeverityWarning,
				})
			case !ids[r.Target]:
				res.add(ValidationError{
					ID:       e.ID,
					Message:  fmt.Sprintf("%s relation references unknown element %q", r.Kind, r.Target),
					Severity: SeverityWarning,
				})
			}
		}
	}
}

func validateSeries(elements []ParsedElement, res *ValidationResult) {
	for _, e := range elements {
		kind := NormalizeShape(string(e.Shape))
		if !kind.IsChart() {
			continue
		}
		empty := len(e.Values) == 0
		if kind == ShapeScatter {
			empty = len(e.Points) == 0
		}
		if empty {
			res.add(ValidationError{
				ID:       e.ID,
				Message:  fmt.Sprintf("%s has no data and renders as an empty frame", kind),
				Severity: SeverityWarning,
			})
		}
	}
}

// validateInsideCycles finds containment loops using DFS with 3-color
// marking. Only the first inside relation of each element defines its
// container, matching how layout assigns layers.
func validateInsideCycles(elements []ParsedElement, res *ValidationResult) {
	const (
		white = iota
		gray
		black
	)

	container := make(map[string]string)
	for _, e := range elements {
		if c, ok := ContainerOf(e); ok {
			container[e.ID] = c
		}
	}

	color := make(map[string]int)
	var visit func(id string) bool
	visit = func(id string) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			return true
		}
		color[id] = gray
		if next, ok := container[id]; ok && visit(next) {
			color[id] = black
			return true
		}
		color[id] = black
		return false
	}

	for _, e := range elements {
		if color[e.ID] != white {
			continue
		}
		if visit(e.ID) {
			res.add(ValidationError{
				ID:       e.ID,
				Message:  "inside relations form a cycle",
				Severity: SeverityError,
			})
		}
	}
}

// ContainerOf returns the target of the element's first usable inside
// relation.
func ContainerOf(e ParsedElement) (string, bool) {
	return firstInside(e.ID, e.Relations)
}

// Container is ContainerOf for a laid-out node.
func (n *SceneNode) Container() (string, bool) {
	return firstInside(n.ID, n.Relations)
}

func firstInside(id string, rels []Relation) (string, bool) {
	for _, r := range rels {
		if r.Kind == RelInside && r.Target != id && r.Target != "" {
			return r.Target, true
		}
	}
	return "", false
}
