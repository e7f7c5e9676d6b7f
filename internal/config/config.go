// Package config assembles runtime settings from the environment.
//
// Recognized variables, all optional:
//
//	CANVAS_WIDTH, CANVAS_HEIGHT    default canvas (800x600)
//	LAYOUT_GAP                     spacing between related boxes
//	LAYOUT_MAX_PUSH_ITERATIONS     conflict pass cap
//	FOCAL_LENGTH                   perspective camera distance
//	CHORD_MIN_WIDTH, CHORD_MAX_WIDTH
//	RENDER_WORKERS                 0 means GOMAXPROCS
//	STYLE_PROFILE                  profile name
//	STYLE_PROFILE_DIR              extra YAML profiles
//	SCRIPT_TIMEOUT                 e.g. "2s"
//	PORT                           HTTP port
//	DEBUG                          "true" enables debug logging
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/engine"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/geom"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/layout"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/render"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/scene"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// Config holds every tunable of the pipeline and its front ends.
type Config struct {
	CanvasWidth  float64 `validate:"gt=0,lte=20000"`
	CanvasHeight float64 `validate:"gt=0,lte=20000"`

	Layout layout.Config
	Render render.Config

	Workers    int    `validate:"gte=0,lte=1024"`
	Profile    string `validate:"required"`
	ProfileDir string

	ScriptTimeout time.Duration `validate:"gt=0"`
	Port          string        `validate:"required,numeric"`
	Debug         bool
}

var validate = validator.New()

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		CanvasWidth:   scene.DefaultCanvas.Width,
		CanvasHeight:  scene.DefaultCanvas.Height,
		Layout:        layout.DefaultConfig(),
		Render:        render.DefaultConfig(),
		Profile:       style.DefaultProfile,
		ScriptTimeout: engine.EvalTimeout,
		Port:          "8080",
	}
}

// Load reads the environment over Default and validates the result.
// Call LoadEnv first to pick up a .env file.
func Load() (Config, error) {
	c := Default()

	c.CanvasWidth = GetEnvNumeric("CANVAS_WIDTH", c.CanvasWidth)
	c.CanvasHeight = GetEnvNumeric("CANVAS_HEIGHT", c.CanvasHeight)

	c.Layout.Gap = GetEnvNumeric("LAYOUT_GAP", c.Layout.Gap)
	c.Layout.MaxPushIterations = int(GetEnvNumeric("LAYOUT_MAX_PUSH_ITERATIONS", float64(c.Layout.MaxPushIterations)))

	c.Render.FocalLength = GetEnvNumeric("FOCAL_LENGTH", c.Render.FocalLength)
	c.Render.Chord.MinWidth = GetEnvNumeric("CHORD_MIN_WIDTH", c.Render.Chord.MinWidth)
	c.Render.Chord.MaxWidth = GetEnvNumeric("CHORD_MAX_WIDTH", c.Render.Chord.MaxWidth)

	c.Workers = int(GetEnvNumeric("RENDER_WORKERS", float64(c.Workers)))
	c.Profile = GetEnvString("STYLE_PROFILE", c.Profile)
	c.ProfileDir = GetEnv("STYLE_PROFILE_DIR")

	c.ScriptTimeout = GetEnvDuration("SCRIPT_TIMEOUT", c.ScriptTimeout)
	c.Port = GetEnvString("PORT", c.Port)
	c.Debug = GetEnvBool("DEBUG", false)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Canvas returns the default canvas size.
func (c Config) Canvas() geom.Size {
	return geom.Size{Width: c.CanvasWidth, Height: c.CanvasHeight}
}

// Profiles returns the built-in profiles plus those in ProfileDir.
func (c Config) Profiles() (*style.Registry, error) {
	reg := style.NewRegistry()
	if c.ProfileDir == "" {
		return reg, nil
	}
	if _, err := reg.LoadDir(c.ProfileDir); err != nil {
		return nil, fmt.Errorf("load profiles from %s: %w", c.ProfileDir, err)
	}
	return reg, nil
}

// Engine returns a script engine using ScriptTimeout.
func (c Config) Engine() *engine.Engine {
	e := engine.NewEngine()
	e.Timeout = c.ScriptTimeout
	return e
}
