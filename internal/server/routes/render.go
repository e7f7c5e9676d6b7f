package routes

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/server/middleware"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/engine"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/kernel"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/markup"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/preview"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
)

const svgContentType = "image/svg+xml"

type renderRequest struct {
	Width    float64               `json:"width" validate:"gte=0,lte=20000"`
	Height   float64               `json:"height" validate:"gte=0,lte=20000"`
	Profile  string                `json:"profile"`
	Elements []scene.ParsedElement `json:"elements" validate:"dive"`
}

type scriptRequest struct {
	Source string `json:"source" validate:"required"`
}

// RenderHandler composes a JSON element list. ?format=tree returns the
// fragment tree as JSON instead of SVG markup; ?format=mesh returns the
// models of the solid nodes.
func RenderHandler(c echo.Context) error {
	data := new(renderRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	doc, status, err := compose(c, data.Profile, data.Elements, data.canvas(c))
	if err != nil {
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return writeDocument(c, doc)
}

// RenderScriptHandler evaluates a scene script and composes the result.
func RenderScriptHandler(c echo.Context) error {
	data := new(scriptRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	app := c.(*middleware.AppContext).App
	s, evalErrs, err := app.Config.Engine().Evaluate(data.Source)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrTimeout) {
			status = http.StatusRequestTimeout
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	if len(evalErrs) > 0 {
		return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": evalErrs})
	}

	doc, status, err := compose(c, s.Profile, s.Elements, s.Canvas)
	if err != nil {
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return writeDocument(c, doc)
}

// RenderPNGHandler composes a JSON element list and rasterizes it.
// ?scale=2 doubles the output size.
func RenderPNGHandler(c echo.Context) error {
	data := new(renderRequest)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	scale := 1.0
	if s := c.QueryParam("scale"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 || v > 8 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scale"})
		}
		scale = v
	}

	doc, status, err := compose(c, data.Profile, data.Elements, data.canvas(c))
	if err != nil {
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := preview.WritePNG(&buf, doc, scale); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, preview.ErrBadSize) {
			status = http.StatusBadRequest
		}
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (r *renderRequest) canvas(c echo.Context) geom.Size {
	size := c.(*middleware.AppContext).App.Config.Canvas()
	if r.Width > 0 {
		size.Width = r.Width
	}
	if r.Height > 0 {
		size.Height = r.Height
	}
	return size
}

// compose runs the pipeline and maps failures to a status code.
func compose(c echo.Context, profile string, elements []scene.ParsedElement, canvas geom.Size) (*render.Document, int, error) {
	app := c.(*middleware.AppContext).App
	o, err := app.Orchestrator(profile)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	doc, err := o.Compose(c.Request().Context(), elements, canvas)
	if err != nil {
		logger.Debug("Scene rejected", "err", err)
		return nil, http.StatusUnprocessableEntity, err
	}
	return doc, http.StatusOK, nil
}

func writeDocument(c echo.Context, doc *render.Document) error {
	switch c.QueryParam("format") {
	case "tree":
		return c.JSON(http.StatusOK, doc.Root)
	case "mesh":
		meshes := doc.Meshes
		if meshes == nil {
			meshes = map[string]*kernel.Mesh{}
		}
		return c.JSON(http.StatusOK, meshes)
	}
	out, err := markup.Bytes(doc.Root)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.Blob(http.StatusOK, svgContentType, out)
}
