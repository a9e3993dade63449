// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/agro-backend/internal/handler"
	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with every route of the API.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middleware.RequestID(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	// Auth runs per group, so the context is enhanced a second time to put
	// the user and tenant on the request logger.
	v1 := router.Group("/api/v1",
		middlewares.Auth.RequireAuth,
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Auth.RequireTenant,
	)
	registerV1Routes(v1, h, middlewares)

	return router
}
