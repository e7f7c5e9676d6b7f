package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ochoaughini/SVG-Generator-Modular/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")
	api.GET("/profiles", routes.GetProfilesHandler)
	api.POST("/render", routes.RenderHandler)
	api.POST("/render/script", routes.RenderScriptHandler)
	api.POST("/render/png", routes.RenderPNGHandler)
}
