// Package router builds the echo instance: global middleware, system routes
// and the /api/posts group.
package router

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/handler"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/middleware"
	"github.com/FatihBc/fsweb-s13g2-node-api-project-2/internal/server"
)

// NewRouter wires the middleware chain and every route.
//
// Order matters: the request id and locale are resolved before the rate
// limiter so rejected requests are still correlated and localized, and the
// context enhancer runs after New Relic so the request logger carries the
// trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Pre(echomiddleware.RemoveTrailingSlash())

	router.Use(
		middleware.RequestID(),
		middlewares.Locale.Detect(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerPostRoutes(router.Group("/api/posts"), h, middlewares)

	return router
}
