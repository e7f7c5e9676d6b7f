package render

import (
	"fmt"
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fragment is one unserialized SVG element. Attribute and child order are
// preserved so that serialization is byte-stable.
type Fragment struct {
	Name     string                                 `json:"name"`
	Attrs    *orderedmap.OrderedMap[string, string] `json:"attrs"`
	Children []*Fragment                            `json:"children,omitempty"`
}

// Attr is a single name/value pair in document order.
type Attr struct {
	Key, Value string
}

// NewFragment returns an empty element.
func NewFragment(name string) *Fragment {
	return &Fragment{Name: name, Attrs: orderedmap.New[string, string]()}
}

// Set assigns an attribute. Floats are written with at most two decimals;
// re-setting a key keeps its original position.
func (f *Fragment) Set(key string, v any) *Fragment {
	var s string
	switch v := v.(type) {
	case string:
		s = v
	case float64:
		s = Num(v)
	case int:
		s = strconv.Itoa(v)
	default:
		s = fmt.Sprint(v)
	}
	f.Attrs.Set(key, s)
	return f
}

// Attr returns the value of key.
func (f *Fragment) Attr(key string) (string, bool) {
	return f.Attrs.Get(key)
}

// Attributes lists the attributes in insertion order.
func (f *Fragment) Attributes() []Attr {
	out := make([]Attr, 0, f.Attrs.Len())
	for p := f.Attrs.Oldest(); p != nil; p = p.Next() {
		out = append(out, Attr{Key: p.Key, Value: p.Value})
	}
	return out
}

// Append adds children in order and returns f.
func (f *Fragment) Append(children ...*Fragment) *Fragment {
	for _, c := range children {
		if c != nil {
			f.Children = append(f.Children, c)
		}
	}
	return f
}

// Walk visits f and its descendants depth-first in document order. The
// root has depth 0. Returning false from fn skips a fragment's children.
func (f *Fragment) Walk(fn func(f *Fragment, depth int) bool) {
	f.walk(fn, 0)
}

func (f *Fragment) walk(fn func(*Fragment, int) bool, depth int) {
	if !fn(f, depth) {
		return
	}
	for _, c := range f.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of fragments named name in the tree, or every
// fragment when name is empty.
func (f *Fragment) Count(name string) int {
	n := 0
	f.Walk(func(c *Fragment, _ int) bool {
		if name == "" || c.Name == name {
			n++
		}
		return true
	})
	return n
}

// Find returns the fragments named name in document order.
func (f *Fragment) Find(name string) []*Fragment {
	var out []*Fragment
	f.Walk(func(c *Fragment, _ int) bool {
		if c.Name == name {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Num formats a coordinate with at most two decimals and no negative zero.
func Num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 { // -0
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
