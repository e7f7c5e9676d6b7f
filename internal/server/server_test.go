package server

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
)

const exampleScene = `{
  "width": 400, "height": 300,
  "elements": [
    {"id": "1", "shape": "circle", "color": "blue", "size": "medium"},
    {"id": "2", "shape": "square", "color": "red", "relations": [{"kind": "next-to", "target": "1"}]},
    {"id": "3", "shape": "triangle", "color": "green", "relations": [{"kind": "above", "target": "1"}]}
  ]
}`

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	e, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestNewRejectsUnknownProfile(t *testing.T) {
	cfg := config.Default()
	cfg.Profile = "nope"
	if _, err := New(cfg); err == nil {
		t.Error("expected an error for an unknown default profile")
	}
}

func TestProfiles(t *testing.T) {
	rec := do(newTestServer(t), http.MethodGet, "/api/profiles", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got []struct {
		Name    string `json:"name"`
		Default bool   `json:"default"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d profiles, want 5", len(got))
	}
	defaults := 0
	for _, p := range got {
		if p.Default {
			defaults++
			if p.Name != "default" {
				t.Errorf("default flag on %q", p.Name)
			}
		}
	}
	if defaults != 1 {
		t.Errorf("%d profiles flagged default", defaults)
	}
}

// ---------------------------------------------------------------------------
// Render
// ---------------------------------------------------------------------------

func TestRenderSVG(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/api/render", exampleScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<svg") {
		t.Errorf("body does not start with <svg: %.40s", body)
	}
	if !strings.Contains(body, `viewBox="0 0 400 300"`) {
		t.Error("canvas size from the request not applied")
	}
	for _, id := range []string{"node-1", "node-2", "node-3"} {
		if !strings.Contains(body, id) {
			t.Errorf("missing %s", id)
		}
	}
}

func TestRenderMesh(t *testing.T) {
	body := `{"elements": [{"id": "box", "shape": "cube", "color": "red"}, {"id": "c", "shape": "circle"}]}`
	rec := do(newTestServer(t), http.MethodPost, "/api/render?format=mesh", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var meshes map[string]struct {
		Vertices []struct{ X, Y, Z float64 } `json:"vertices"`
		Faces    [][]int                      `json:"faces"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &meshes); err != nil {
		t.Fatal(err)
	}
	if len(meshes) != 1 {
		t.Fatalf("meshes for %d nodes, want only the cube", len(meshes))
	}
	m := meshes["box"]
	if len(m.Vertices) != 8 || len(m.Faces) != 6 {
		t.Errorf("cube mesh = %d vertices, %d faces", len(m.Vertices), len(m.Faces))
	}
	for _, v := range m.Vertices {
		if v.Z < -1e-9 {
			t.Errorf("vertex %+v in front of the picture plane", v)
		}
	}
}

func TestRenderTree(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/api/render?format=tree", exampleScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var root struct {
		Name     string `json:"name"`
		Children []struct {
			Name string `json:"name"`
		} `json:"children"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Name != "svg" {
		t.Errorf("root = %q", root.Name)
	}
	// background plus three nodes
	if len(root.Children) != 4 {
		t.Errorf("got %d children, want 4", len(root.Children))
	}
}

func TestRenderWithProfile(t *testing.T) {
	body := `{"profile": "monochrome", "elements": [{"id": "a", "shape": "circle"}]}`
	rec := do(newTestServer(t), http.MethodPost, "/api/render", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `viewBox="0 0 800 600"`) {
		t.Error("default canvas not applied")
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name, body string
		want       int
	}{
		{"malformed json", `{"elements": [`, http.StatusBadRequest},
		{"unknown profile", `{"profile": "neon", "elements": []}`, http.StatusBadRequest},
		{"bad relation kind", `{"elements": [{"id": "a", "shape": "circle", "relations": [{"kind": "beside", "target": "b"}]}]}`, http.StatusBadRequest},
		{"negative width", `{"width": -1, "elements": []}`, http.StatusBadRequest},
		{"duplicate ids", `{"elements": [{"id": "a", "shape": "circle"}, {"id": "a", "shape": "star"}]}`, http.StatusUnprocessableEntity},
	}
	e := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/render", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Scripts
// ---------------------------------------------------------------------------

func TestRenderScript(t *testing.T) {
	src := `(canvas 300 200) (profile :vivid) (element "sun" :shape :sun) (element "hill" :shape :triangle) (relate "sun" :above "hill")`
	body, _ := json.Marshal(map[string]string{"source": src})
	rec := do(newTestServer(t), http.MethodPost, "/api/render/script", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	out := rec.Body.String()
	if !strings.Contains(out, `viewBox="0 0 300 200"`) || !strings.Contains(out, "node-sun") {
		t.Errorf("unexpected document: %.200s", out)
	}
}

func TestRenderScriptErrors(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/render/script", `{"source": "(element \"a\""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("syntax error: status = %d", rec.Code)
	}
	var res struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || len(res.Errors) == 0 {
		t.Errorf("expected eval errors, got %s", rec.Body.String())
	}

	rec = do(e, http.MethodPost, "/api/render/script", `{"source": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty source: status = %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/api/render/script", `{"source": "(profile :neon)"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown profile: status = %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// PNG
// ---------------------------------------------------------------------------

func TestRenderPNG(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/api/render/png?scale=0.5", exampleScene)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Errorf("bounds = %v, want 200x150", b)
	}
}

func TestRenderPNGBadScale(t *testing.T) {
	rec := do(newTestServer(t), http.MethodPost, "/api/render/png?scale=abc", exampleScene)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}
