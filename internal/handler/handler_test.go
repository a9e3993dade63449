package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testTenant = "org_1"

// memStore is an in-memory table keyed by id.
type memStore[T any] struct {
	mu     sync.Mutex
	spec   *repository.TableSpec
	items  []T
	build  func(payload any) T
	tenant []string
}

func (m *memStore[T]) Spec() *repository.TableSpec { return m.spec }

func (m *memStore[T]) List(_ context.Context, tenantID string, _ repository.Query) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenant = append(m.tenant, tenantID)
	return m.items, nil
}

// Sum totals value per key over every item, matching columns by db tag.
func (m *memStore[T]) Sum(_ context.Context, tenantID string, _ repository.Query, key, value string) (map[uuid.UUID]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tenant = append(m.tenant, tenantID)

	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, item := range m.items {
		cols, vals, err := repository.Columns(item)
		if err != nil {
			return nil, err
		}
		var (
			k uuid.UUID
			v float64
		)
		for i, c := range cols {
			switch "t." + c {
			case key:
				k = vals[i].(uuid.UUID)
			case value:
				v = vals[i].(float64)
			}
		}
		totals[k] = totals[k].Add(decimal.NewFromFloat(v))
	}
	return totals, nil
}

func (m *memStore[T]) Get(_ context.Context, _ string, _ uuid.UUID) (*T, error) {
	if len(m.items) == 0 {
		return nil, fmt.Errorf("table:%s: %w", m.spec.Name, pgx.ErrNoRows)
	}
	return &m.items[0], nil
}

func (m *memStore[T]) Create(_ context.Context, _ string, payload any) (*T, error) {
	item := m.build(payload)
	m.items = append(m.items, item)
	return &item, nil
}

func (m *memStore[T]) Update(_ context.Context, _ string, _ uuid.UUID, payload any) (*T, error) {
	cols, _, err := repository.Columns(payload)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, repository.ErrNoChanges
	}
	item := m.build(payload)
	return &item, nil
}

func (m *memStore[T]) Delete(_ context.Context, _ string, _ uuid.UUID) error {
	if len(m.items) == 0 {
		return fmt.Errorf("table:%s: %w", m.spec.Name, pgx.ErrNoRows)
	}
	return nil
}

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Lookup:  config.DefaultLookupConfig(),
		},
		Logger: &logger,
	}
}

// newTestEcho wires the error handler and context middlewares, and plays the
// part of auth by setting the tenant.
func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(
		middleware.RequestID(),
		func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				c.Set(middleware.TenantIDKey, testTenant)
				return next(c)
			}
		},
		middleware.NewContextEnhancer(s).EnhanceContext(),
	)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	return decode[errs.HTTPError](t, rec)
}
