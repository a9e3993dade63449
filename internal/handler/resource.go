package handler

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ResourceHandler exposes a service.Resource as a REST collection. C and U
// are the create and update payload types.
type ResourceHandler[T any, C, U validation.Validatable] struct {
	Handler
	resource  *service.Resource[T]
	newCreate func() C
	newUpdate func() U
}

func NewResourceHandler[T any, C, U validation.Validatable](
	s *server.Server,
	resource *service.Resource[T],
	newCreate func() C,
	newUpdate func() U,
) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{
		Handler:   NewHandler(s),
		resource:  resource,
		newCreate: newCreate,
		newUpdate: newUpdate,
	}
}

// Register mounts the collection routes on g:
//
//	GET    /      list, filtered by query parameters
//	GET    /:id
//	POST   /      201
//	PUT    /:id   partial: absent fields are kept
//	DELETE /:id
func (h *ResourceHandler[T, C, U]) Register(g *echo.Group) {
	g.GET("", Handle(h.Handler, h.List, http.StatusOK, factory[EmptyRequest]()))
	g.GET("/:id", Handle(h.Handler, h.Get, http.StatusOK, factory[EmptyRequest]()))
	g.POST("", Handle(h.Handler, h.Create, http.StatusCreated, h.newCreate))
	g.PUT("/:id", Handle(h.Handler, h.Update, http.StatusOK, h.newUpdate))
	g.DELETE("/:id", Handle(h.Handler, h.Delete, http.StatusOK, factory[EmptyRequest]()))
}

func (h *ResourceHandler[T, C, U]) List(c echo.Context, _ *EmptyRequest) (*service.Result[[]T], error) {
	items, err := h.resource.Find(c.Request().Context(), middleware.GetTenantID(c), c.QueryParams())
	if err != nil {
		return nil, err
	}
	return &service.Result[[]T]{Data: items}, nil
}

func (h *ResourceHandler[T, C, U]) Get(c echo.Context, _ *EmptyRequest) (*service.Result[*T], error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}

	item, err := h.resource.Get(c.Request().Context(), middleware.GetTenantID(c), id)
	if err != nil {
		return nil, err
	}
	return &service.Result[*T]{Data: item}, nil
}

func (h *ResourceHandler[T, C, U]) Create(c echo.Context, payload C) (*service.Result[*T], error) {
	return h.resource.Create(c.Request().Context(), middleware.GetTenantID(c), payload)
}

func (h *ResourceHandler[T, C, U]) Update(c echo.Context, payload U) (*service.Result[*T], error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return h.resource.Update(c.Request().Context(), middleware.GetTenantID(c), id, payload)
}

func (h *ResourceHandler[T, C, U]) Delete(c echo.Context, _ *EmptyRequest) (*service.Result[uuid.UUID], error) {
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}
	return h.resource.Delete(c.Request().Context(), middleware.GetTenantID(c), id)
}
