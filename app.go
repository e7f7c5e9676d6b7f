package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/engine"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/logger"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/markup"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/orchestrator"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// App runs scene descriptions through the pipeline.
type App struct {
	cfg      config.Config
	engine   *engine.Engine
	profiles *style.Registry
	// profile overrides whatever the input selects when non-empty.
	profile string
}

// SceneFile is the JSON input format.
type SceneFile struct {
	Width    float64               `json:"width"`
	Height   float64               `json:"height"`
	Profile  string                `json:"profile"`
	Elements []scene.ParsedElement `json:"elements"`
}

// EvalErrorData is one error reported back to the caller.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the outcome of one run. Document is nil when Errors is
// not empty.
type EvalResult struct {
	Document *render.Document `json:"-"`
	SVG      string           `json:"svg"`
	Profile  string           `json:"profile"`
	Errors   []EvalErrorData  `json:"errors"`
}

// NewApp loads the profile registry described by cfg.
func NewApp(cfg config.Config) (*App, error) {
	reg, err := cfg.Profiles()
	if err != nil {
		return nil, err
	}
	return &App{cfg: cfg, engine: cfg.Engine(), profiles: reg}, nil
}

// Evaluate runs a scene script.
func (a *App) Evaluate(source string) EvalResult {
	s, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		logger.Error("Evaluate fatal error", "err", err)
		return failed(err)
	}
	if len(evalErrs) > 0 {
		res := EvalResult{Errors: make([]EvalErrorData, 0, len(evalErrs))}
		for _, e := range evalErrs {
			res.Errors = append(res.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
		}
		return res
	}
	return a.compose(s.Profile, s.Elements, s.Canvas)
}

// ComposeJSON runs a JSON scene file.
func (a *App) ComposeJSON(r io.Reader) EvalResult {
	var f SceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return failed(fmt.Errorf("decode scene: %w", err))
	}
	canvas := a.cfg.Canvas()
	if f.Width > 0 {
		canvas.Width = f.Width
	}
	if f.Height > 0 {
		canvas.Height = f.Height
	}
	return a.compose(f.Profile, f.Elements, canvas)
}

func (a *App) compose(profile string, elements []scene.ParsedElement, canvas geom.Size) EvalResult {
	switch {
	case a.profile != "":
		profile = a.profile
	case profile == "":
		profile = a.cfg.Profile
	}
	p, ok := a.profiles.Get(profile)
	if !ok {
		return failed(fmt.Errorf("unknown profile %q (have %v)", profile, a.profiles.Names()))
	}

	o := orchestrator.New(orchestrator.Options{
		Layout:  a.cfg.Layout,
		Render:  a.cfg.Render,
		Profile: p,
		Workers: a.cfg.Workers,
	})
	doc, err := o.Compose(context.Background(), elements, canvas)
	if err != nil {
		return failed(err)
	}

	var buf bytes.Buffer
	if err := markup.Write(&buf, doc.Root); err != nil {
		return failed(err)
	}
	return EvalResult{Document: doc, SVG: buf.String(), Profile: profile, Errors: []EvalErrorData{}}
}

func failed(err error) EvalResult {
	return EvalResult{Errors: []EvalErrorData{{Message: err.Error()}}}
}
