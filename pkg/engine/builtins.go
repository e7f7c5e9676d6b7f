package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/samber/lo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix marks keywords rewritten by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source for zygomys:
//
//  1. :keyword becomes the string "__kw_keyword", so keywords need no
//     global symbols.
//  2. Kebab-case identifiers become snake_case (chord-map -> chord_map);
//     zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals pass through untouched.
func preprocessSource(src string) string {
	var out strings.Builder
	out.Grow(len(src) + len(src)/4)
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"' || c == '`':
			j := skipQuoted(src, i)
			out.WriteString(src[i:j])
			i = j
		case c == ';':
			j := i
			for j < len(src) && src[j] == ';' {
				j++
			}
			end := len(src)
			if k := strings.IndexByte(src[j:], '\n'); k >= 0 {
				end = j + k
			}
			out.WriteString("//")
			out.WriteString(src[j:end])
			i = end
		case c == ':' && i+1 < len(src) && isLetter(src[i+1]):
			j := i + 1
			for j < len(src) && isKWChar(src[j]) {
				j++
			}
			out.WriteString(strconv.Quote(kwPrefix + src[i+1:j]))
			i = j
		case c == '-' && i > 0 && i+1 < len(src) && isIdentChar(src[i-1]) && isLetter(src[i+1]):
			out.WriteByte('_')
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// skipQuoted returns the index just past the literal opening at i.
// Backslash escapes apply inside double quotes only.
func skipQuoted(src string, i int) int {
	q := src[i]
	j := i + 1
	for j < len(src) && src[j] != q {
		if q == '"' && src[j] == '\\' && j+1 < len(src) {
			j += 2
			continue
		}
		j++
	}
	if j < len(src) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

// sexpElement is returned by element and chords so scripts can bind it.
type sexpElement struct {
	id string
}

func (e *sexpElement) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(element %q)", e.id)
}
func (e *sexpElement) Type() *zygo.RegisteredType { return nil }

// sexpLink is one weighted chord connection.
type sexpLink struct {
	link scene.Link
}

func (l *sexpLink) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(link %q %q %g)", l.link.Source, l.link.Target, l.link.Weight)
}
func (l *sexpLink) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a rewritten keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates keyword pairs from positional arguments. A trailing
// keyword without a value maps to SexpNull.
func parseArgs(args []zygo.Sexp) kwArgs {
	res := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			res.positional = append(res.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			res.kw[name] = args[i+1]
			i++
		} else {
			res.kw[name] = zygo.SexpNull
		}
	}
	return res
}

// unknownKeys returns keys of pa not in allowed, sorted.
func (pa kwArgs) unknownKeys(allowed ...string) []string {
	keys := lo.Filter(lo.Keys(pa.kw), func(k string, _ int) bool {
		return !slices.Contains(allowed, k)
	})
	slices.Sort(keys)
	return keys
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toWord accepts a keyword or a plain string.
func toWord(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toElementID accepts an element value, a string or an integer.
func toElementID(s zygo.Sexp) (string, error) {
	switch v := s.(type) {
	case *sexpElement:
		return v.id, nil
	case *zygo.SexpStr:
		if _, kw := isKW(v); kw {
			break
		}
		if strings.TrimSpace(v.S) == "" {
			return "", fmt.Errorf("empty element id")
		}
		return v.S, nil
	case *zygo.SexpInt:
		return strconv.FormatInt(v.Val, 10), nil
	}
	return "", fmt.Errorf("expected element id, got %T (%s)", s, s.SexpString(nil))
}

var relationKinds = map[string]scene.RelationKind{
	"next-to":     scene.RelNextTo,
	"next_to":     scene.RelNextTo,
	"above":       scene.RelAbove,
	"under":       scene.RelUnder,
	"below":       scene.RelUnder,
	"inside":      scene.RelInside,
	"overlapping": scene.RelOverlapping,
}

func toRelationKind(s zygo.Sexp) (scene.RelationKind, error) {
	w, err := toWord(s)
	if err != nil {
		return "", err
	}
	k, ok := relationKinds[strings.ToLower(w)]
	if !ok {
		return "", fmt.Errorf("unknown relation %q", w)
	}
	return k, nil
}

// ---------------------------------------------------------------------------
// Builtins
// ---------------------------------------------------------------------------

// scriptState collects declarations while a script runs.
type scriptState struct {
	b       *scene.Builder
	canvas  geom.Size
	profile string
}

func newScriptState() *scriptState {
	return &scriptState{b: scene.NewBuilder(), canvas: scene.DefaultCanvas}
}

func (st *scriptState) script() *Script {
	return &Script{Canvas: st.canvas, Profile: st.profile, Elements: st.b.Elements()}
}

var elementOptions = []string{
	"shape", "color", "size", "sides", "yaw", "pitch", "roll", "depth",
	"values", "points", "divisions",
}

// registerBuiltins installs the scene DSL into env. Source must be passed
// through preprocessSource first.
func registerBuiltins(env *zygo.Zlisp, st *scriptState) {

	// (canvas 400 300)
	env.AddFunction("canvas", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("canvas requires width and height, got %d arguments", len(args))
		}
		w, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: width: %w", err)
		}
		h, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: height: %w", err)
		}
		if w <= 0 || h <= 0 {
			return zygo.SexpNull, fmt.Errorf("canvas: size must be positive, got %gx%g", w, h)
		}
		st.canvas = geom.Size{Width: w, Height: h}
		return zygo.SexpNull, nil
	})

	// (profile :pastel)
	env.AddFunction("profile", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("profile requires a name")
		}
		p, err := toWord(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("profile: %w", err)
		}
		st.profile = p
		return zygo.SexpNull, nil
	})

	// (element "id" :shape :cube :color "sky blue" :size :large
	//          :sides 6 :yaw 30 :pitch 20 :roll 0 :depth 0.6)
	env.AddFunction("element", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("element requires exactly one id")
		}
		id, err := toElementID(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("element: %w", err)
		}
		if st.b.Has(id) {
			return zygo.SexpNull, fmt.Errorf("element: %q already defined", id)
		}
		if bad := pa.unknownKeys(elementOptions...); len(bad) > 0 {
			return zygo.SexpNull, fmt.Errorf("element %s: unknown option :%s", id, bad[0])
		}

		eb := st.b.Element(id)
		if v, ok := pa.kw["shape"]; ok {
			w, err := toWord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("element %s: shape: %w", id, err)
			}
			eb.Shape(scene.NormalizeShape(w))
		}
		if v, ok := pa.kw["color"]; ok {
			w, err := toWord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("element %s: color: %w", id, err)
			}
			eb.Color(w)
		}
		if v, ok := pa.kw["size"]; ok {
			w, err := toWord(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("element %s: size: %w", id, err)
			}
			eb.Size(scene.SizeHint(strings.ToLower(w)))
		}
		if v, ok := pa.kw["sides"]; ok {
			n, err := toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("element %s: sides: %w", id, err)
			}
			eb.Sides(n)
		}
		if err := applySolid(eb, pa); err != nil {
			return zygo.SexpNull, fmt.Errorf("element %s: %w", id, err)
		}
		if err := applySeries(eb, pa); err != nil {
			return zygo.SexpNull, fmt.Errorf("element %s: %w", id, err)
		}
		return &sexpElement{id: id}, nil
	})

	// (relate "2" :next-to "1")
	env.AddFunction("relate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("relate requires an element, a relation and a target")
		}
		id, err := toElementID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relate: %w", err)
		}
		if !st.b.Has(id) {
			return zygo.SexpNull, fmt.Errorf("relate: no element named %q", id)
		}
		kind, err := toRelationKind(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relate %s: %w", id, err)
		}
		target, err := toElementID(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("relate %s: target: %w", id, err)
		}
		st.b.Element(id).Relate(kind, target)
		return &sexpElement{id: id}, nil
	})

	// (link "a" "b" 3); the weight defaults to 1.
	env.AddFunction("link", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 || len(args) > 3 {
			return zygo.SexpNull, fmt.Errorf("link requires a source, a target and an optional weight")
		}
		src, err := toWord(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link: source: %w", err)
		}
		dst, err := toWord(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link: target: %w", err)
		}
		weight := 1.0
		if len(args) == 3 {
			if weight, err = toFloat64(args[2]); err != nil {
				return zygo.SexpNull, fmt.Errorf("link: weight: %w", err)
			}
		}
		return &sexpLink{link: scene.Link{Source: src, Target: dst, Weight: weight}}, nil
	})

	// (chords "id" (link ...) ...) declares a chord map, or adds links to
	// an existing one.
	env.AddFunction("chords", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("chords requires an id")
		}
		id, err := toElementID(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("chords: %w", err)
		}
		var links []scene.Link
		for i, a := range args[1:] {
			items := []zygo.Sexp{a}
			if list, err := sexpListToSlice(a); err == nil {
				items = list
			}
			for _, item := range items {
				l, ok := item.(*sexpLink)
				if !ok {
					return zygo.SexpNull, fmt.Errorf("chords %s: argument %d: expected link, got %s", id, i+2, item.SexpString(nil))
				}
				links = append(links, l.link)
			}
		}

		existed := st.b.Has(id)
		eb := st.b.Element(id)
		if !existed {
			eb.Shape(scene.ShapeChordMap)
		}
		for _, l := range links {
			eb.Link(l.Source, l.Target, l.Weight)
		}
		return &sexpElement{id: id}, nil
	})
}

// applySolid sets perspective hints when any orientation option is given.
// Options left out keep their defaults.
func applySolid(eb *scene.ElementBuilder, pa kwArgs) error {
	h := scene.DefaultSolidHints
	set := false
	for _, opt := range []struct {
		key string
		dst *float64
	}{
		{"yaw", &h.Yaw}, {"pitch", &h.Pitch}, {"roll", &h.Roll}, {"depth", &h.Depth},
	} {
		v, ok := pa.kw[opt.key]
		if !ok {
			continue
		}
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("%s: %w", opt.key, err)
		}
		*opt.dst = f
		set = true
	}
	if !set {
		return nil
	}
	eb.Solid(h.Yaw, h.Pitch).Roll(h.Roll)
	if h.Depth != 0 {
		eb.Depth(h.Depth)
	}
	return nil
}

// sexpListToSlice converts a list or array to a slice.
// applySeries reads chart data and grid density:
// :values [3 1 4], :points [[0 1] [2 3]], :divisions 6.
func applySeries(eb *scene.ElementBuilder, pa kwArgs) error {
	if v, ok := pa.kw["values"]; ok {
		items, err := sexpListToSlice(v)
		if err != nil {
			return fmt.Errorf("values: %w", err)
		}
		for i, it := range items {
			f, err := toFloat64(it)
			if err != nil {
				return fmt.Errorf("values[%d]: %w", i, err)
			}
			eb.Values(f)
		}
	}
	if v, ok := pa.kw["points"]; ok {
		items, err := sexpListToSlice(v)
		if err != nil {
			return fmt.Errorf("points: %w", err)
		}
		for i, it := range items {
			xy, err := sexpListToSlice(it)
			if err != nil || len(xy) != 2 {
				return fmt.Errorf("points[%d]: expected an [x y] pair", i)
			}
			x, err := toFloat64(xy[0])
			if err != nil {
				return fmt.Errorf("points[%d]: x: %w", i, err)
			}
			y, err := toFloat64(xy[1])
			if err != nil {
				return fmt.Errorf("points[%d]: y: %w", i, err)
			}
			eb.Point(x, y)
		}
	}
	if v, ok := pa.kw["divisions"]; ok {
		n, err := toInt(v)
		if err != nil {
			return fmt.Errorf("divisions: %w", err)
		}
		eb.Divisions(n)
	}
	return nil
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}
