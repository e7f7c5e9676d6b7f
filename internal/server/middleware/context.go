package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/config"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/orchestrator"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

// App is the state shared by every request.
type App struct {
	Config   config.Config
	Profiles *style.Registry
}

// AppContext carries App through handlers.
type AppContext struct {
	echo.Context
	App *App
}

// AppContextMiddleware wraps each request context in an AppContext.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}

// UnknownProfileError reports a profile name missing from the registry.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile %q", e.Name)
}

// Orchestrator builds a pipeline for the named profile; an empty name
// selects the configured one.
func (a *App) Orchestrator(profile string) (*orchestrator.Orchestrator, error) {
	if profile == "" {
		profile = a.Config.Profile
	}
	p, ok := a.Profiles.Get(profile)
	if !ok {
		return nil, &UnknownProfileError{Name: profile}
	}
	return orchestrator.New(orchestrator.Options{
		Layout:  a.Config.Layout,
		Render:  a.Config.Render,
		Profile: p,
		Workers: a.Config.Workers,
	}), nil
}
