package middleware

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware throttles endpoints that call third-party services.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Lookups limits CEP/CNPJ lookups per tenant (per IP before auth) to the
// configured rate. Rejections are answered with 429 and recorded.
func (r *RateLimitMiddleware) Lookups() echo.MiddlewareFunc {
	cfg := r.server.Config.Lookup

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.RatePerSecond),
			Burst:     cfg.RateBurst,
			ExpiresIn: cfg.RateWindow,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if tenantID := GetTenantID(c); tenantID != "" {
				return tenantID, nil
			}
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Não foi possível identificar a requisição", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().
				Str("identifier", identifier).
				Msg("lookup rate limit exceeded")

			return &errs.HTTPError{
				Code:     "TOO_MANY_REQUESTS",
				Message:  "Muitas consultas em sequência, tente novamente em instantes",
				Status:   http.StatusTooManyRequests,
				Override: true,
			}
		},
	})
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic, if enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
