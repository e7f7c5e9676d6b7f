package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/server/middleware"
	"github.com/ochoaughini/SVG-Generator-Modular/pkg/style"
)

type profileInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     bool   `json:"default,omitempty"`
}

func GetProfilesHandler(c echo.Context) error {
	app := c.(*middleware.AppContext).App

	names := app.Profiles.Names()
	res := make([]profileInfo, 0, len(names))
	for _, name := range names {
		info := profileInfo{Name: name, Default: name == app.Config.Profile}
		if p, ok := app.Profiles.Get(name); ok {
			if t, ok := p.(*style.Table); ok {
				info.Description = t.Description
			}
		}
		res = append(res, info)
	}
	return c.JSON(http.StatusOK, res)
}
