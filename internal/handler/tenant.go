package handler

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// TenantHandler reads and replaces the company profile of the active organization.
type TenantHandler struct {
	Handler
	tenants *service.TenantService
}

func NewTenantHandler(s *server.Server, services *service.Services) *TenantHandler {
	return &TenantHandler{
		Handler: NewHandler(s),
		tenants: services.Tenant,
	}
}

func (h *TenantHandler) Register(g *echo.Group) {
	g.GET("", Handle(h.Handler, h.Get, http.StatusOK, factory[EmptyRequest]()))
	g.PUT("", Handle(h.Handler, h.Upsert, http.StatusOK, factory[model.UpsertTenantPayload]()))
}

func (h *TenantHandler) Get(c echo.Context, _ *EmptyRequest) (*service.Result[*model.Tenant], error) {
	tenant, err := h.tenants.Get(c.Request().Context(), middleware.GetTenantID(c))
	if err != nil {
		return nil, err
	}
	return &service.Result[*model.Tenant]{Data: tenant}, nil
}

func (h *TenantHandler) Upsert(c echo.Context, req *model.UpsertTenantPayload) (*service.Result[*model.Tenant], error) {
	return h.tenants.Upsert(c.Request().Context(), middleware.GetTenantID(c), req)
}
