package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	lookup := config.DefaultLookupConfig()
	lookup.RatePerSecond = 0.001
	lookup.RateBurst = 1

	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
			Lookup:  lookup,
		},
		Logger: &logger,
	}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	global := NewGlobalMiddlewares(s)
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	return e
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestEnhanceContextNegotiatesLanguage(t *testing.T) {
	e := newTestEcho(newTestServer())

	var got language.Tag
	e.GET("/", func(c echo.Context) error {
		got = notify.LanguageFrom(c.Request().Context())
		return c.NoContent(http.StatusNoContent)
	})

	for header, want := range map[string]language.Tag{
		"en-US,en;q=0.9": language.English,
		"pt-BR":          language.BrazilianPortuguese,
		"":               language.BrazilianPortuguese,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", header)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, want, got, header)
		assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	}
}

func TestRequestIDIsReused(t *testing.T) {
	e := newTestEcho(newTestServer())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestGlobalErrorHandler(t *testing.T) {
	e := newTestEcho(newTestServer())

	e.GET("/notified", func(c echo.Context) error {
		err := errs.NewNotFoundError("Registro de silo não encontrado", true, nil)
		return err.WithNotification(notify.Failure(language.BrazilianPortuguese, notify.EntitySilo, notify.ActionLoad, err.Message))
	})
	e.GET("/plain", func(c echo.Context) error {
		return errors.New("connection reset by peer")
	})

	t.Run("http error keeps its notification", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notified", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.True(t, body.Override)
		require.NotNil(t, body.Notification)
		assert.Equal(t, "Erro ao carregar silo: Registro de silo não encontrado", body.Notification.Message)
	})

	t.Run("unknown error is a generic 500", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/plain", nil)
		req.Header.Set("Accept-Language", "en")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
		require.NotNil(t, body.Notification)
		assert.Equal(t, "Error", body.Notification.Title)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decodeError(t, rec).Message)
	})
}

func TestRequireTenant(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	auth := NewAuthMiddleware(s)

	ok := func(c echo.Context) error { return c.String(http.StatusOK, GetTenantID(c)) }
	e.GET("/anon", ok, auth.RequireTenant)
	e.GET("/org", ok, func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(TenantIDKey, "org_1")
			return next(c)
		}
	}, auth.RequireTenant)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anon", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/org", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "org_1", rec.Body.String())
}

func TestLookupRateLimit(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	e.GET("/cep", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, NewRateLimitMiddleware(s).Lookups())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/cep", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)

}
