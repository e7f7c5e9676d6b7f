package preview

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/orchestrator"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

func squareDocument(t *testing.T) (*render.Document, geom.Box) {
	t.Helper()
	b := scene.NewBuilder()
	b.Element("box").Shape(scene.ShapeSquare).Color("blue").Size(scene.SizeLarge)
	o := orchestrator.New(orchestrator.Options{})
	g, err := o.BuildScene(b.Elements(), geom.Size{Width: 200, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := o.Render(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	return doc, g.Get("box").Bounds
}

func TestRasterizeDocument(t *testing.T) {
	doc, box := squareDocument(t)
	img, err := Document(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("bounds = %v, want 400x200", b)
	}

	c := box.Center()
	r, g, bl, a := img.At(int(c.X*2), int(c.Y*2)).RGBA()
	if a == 0 {
		t.Fatal("square center is transparent")
	}
	if bl <= r || bl <= g {
		t.Errorf("square center is not blue: r=%d g=%d b=%d", r, g, bl)
	}

	// Corner shows the white background.
	r, g, bl, _ = img.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Errorf("corner = %d,%d,%d, want white", r, g, bl)
	}
}

func TestWritePNG(t *testing.T) {
	doc, _ := squareDocument(t)
	var buf bytes.Buffer
	if err := WritePNG(&buf, doc, 1); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRasterizeBadSize(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`
	for _, size := range [][2]int{{0, 10}, {10, -1}, {5000, 5000}} {
		_, err := Rasterize(strings.NewReader(svg), size[0], size[1])
		if !errors.Is(err, ErrBadSize) {
			t.Errorf("%v: err = %v, want ErrBadSize", size, err)
		}
	}
}
