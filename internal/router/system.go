package router

import (
	"github.com/labstack/echo/v4"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/handler"
)

// registerSystemRoutes mounts the health endpoint and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.Static("/static", "static")
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
