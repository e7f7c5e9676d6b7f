package main

import (
	"os"
	"strings"
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := NewApp(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return app
}

func requireNoErrors(t *testing.T, res EvalResult) {
	t.Helper()
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			t.Errorf("error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
}

// TestE2EJSONExample runs the three-shape example: circle, a square next
// to it and a sun above it.
func TestE2EJSONExample(t *testing.T) {
	f, err := os.Open("examples/three-shapes.json")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	res := newTestApp(t).ComposeJSON(f)
	requireNoErrors(t, res)

	if !strings.HasPrefix(res.SVG, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("unexpected prologue: %.60s", res.SVG)
	}
	if !strings.Contains(res.SVG, `viewBox="0 0 400 400"`) {
		t.Error("canvas size not applied")
	}

	// The sun is on the background layer and paints first.
	i3 := strings.Index(res.SVG, `id="node-3"`)
	i1 := strings.Index(res.SVG, `id="node-1"`)
	i2 := strings.Index(res.SVG, `id="node-2"`)
	if i3 < 0 || i1 < 0 || i2 < 0 {
		t.Fatalf("missing nodes: %d %d %d", i3, i1, i2)
	}
	if !(i3 < i1 && i1 < i2) {
		t.Errorf("paint order = %d %d %d, want 3 before 1 before 2", i3, i1, i2)
	}
}

func TestE2EScriptExample(t *testing.T) {
	src, err := os.ReadFile("examples/landscape.lisp")
	if err != nil {
		t.Fatal(err)
	}
	res := newTestApp(t).Evaluate(string(src))
	requireNoErrors(t, res)

	if res.Profile != "vivid" {
		t.Errorf("profile = %q, want vivid", res.Profile)
	}
	if got := len(res.Document.Nodes); got != 8 {
		t.Errorf("got %d nodes, want 8", got)
	}
	for _, id := range []string{"sky", "ground", "house", "tree", "roof", "door", "sun", "visits"} {
		if !strings.Contains(res.SVG, `id="node-`+id+`"`) {
			t.Errorf("missing node %s", id)
		}
	}
	// sky paints before the house it sits behind
	if strings.Index(res.SVG, "node-sky") > strings.Index(res.SVG, "node-house") {
		t.Error("sky painted after house")
	}
}

func TestE2EEmptySource(t *testing.T) {
	res := newTestApp(t).Evaluate("")
	requireNoErrors(t, res)
	if res.Document == nil || len(res.Document.Nodes) != 0 {
		t.Errorf("expected an empty document, got %+v", res.Document)
	}
	if !strings.Contains(res.SVG, `viewBox="0 0 800 600"`) {
		t.Error("default canvas not used")
	}
}

func TestE2ESyntaxError(t *testing.T) {
	res := newTestApp(t).Evaluate(`(element "a" :shape :circle`)
	if len(res.Errors) == 0 {
		t.Fatal("expected errors")
	}
	if res.Document != nil || res.SVG != "" {
		t.Error("no document expected on error")
	}
}

func TestE2EProfileOverride(t *testing.T) {
	app := newTestApp(t)
	app.profile = "monochrome"
	res := app.Evaluate(`(profile :vivid) (element "a" :shape :star)`)
	requireNoErrors(t, res)
	if res.Profile != "monochrome" {
		t.Errorf("profile = %q, want monochrome", res.Profile)
	}
}

func TestE2EUnknownProfile(t *testing.T) {
	res := newTestApp(t).Evaluate(`(profile :neon) (element "a" :shape :circle)`)
	if len(res.Errors) != 1 || !strings.Contains(res.Errors[0].Message, "unknown profile") {
		t.Errorf("errors = %+v", res.Errors)
	}
}

func TestE2EDuplicateIDsInJSON(t *testing.T) {
	in := `{"elements": [{"id": "a", "shape": "circle"}, {"id": "a", "shape": "square"}]}`
	res := newTestApp(t).ComposeJSON(strings.NewReader(in))
	if len(res.Errors) == 0 {
		t.Fatal("expected a validation error")
	}
}

func TestE2EUnknownJSONField(t *testing.T) {
	in := `{"elements": [], "colour": "red"}`
	res := newTestApp(t).ComposeJSON(strings.NewReader(in))
	if len(res.Errors) == 0 || !strings.Contains(res.Errors[0].Message, "decode scene") {
		t.Errorf("errors = %+v", res.Errors)
	}
}

func TestE2EUnsupportedShapePlaceholder(t *testing.T) {
	res := newTestApp(t).Evaluate(`(element "x" :shape :dragon)`)
	requireNoErrors(t, res)
	if !strings.Contains(res.SVG, `stroke-dasharray="4,4"`) {
		t.Error("placeholder not drawn for unknown shape")
	}
}
