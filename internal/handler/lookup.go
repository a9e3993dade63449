package handler

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/lib/lookup"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// LookupHandler proxies the CEP and CNPJ lookups. Input that is not a postal
// code or a CNPJ answers with null data.
type LookupHandler struct {
	Handler
	lookup *service.LookupService
}

func NewLookupHandler(s *server.Server, services *service.Services) *LookupHandler {
	return &LookupHandler{
		Handler: NewHandler(s),
		lookup:  services.Lookup,
	}
}

func (h *LookupHandler) Register(g *echo.Group) {
	g.GET("/cep/:cep", Handle(h.Handler, h.CEP, http.StatusOK, factory[CEPRequest]()))
	g.GET("/cnpj/:cnpj", Handle(h.Handler, h.CNPJ, http.StatusOK, factory[CNPJRequest]()))
}

func (h *LookupHandler) CEP(c echo.Context, req *CEPRequest) (*service.Result[*lookup.Endereco], error) {
	endereco, err := h.lookup.CEP(c.Request().Context(), req.CEP)
	if err != nil {
		return nil, err
	}
	return &service.Result[*lookup.Endereco]{Data: endereco}, nil
}

func (h *LookupHandler) CNPJ(c echo.Context, req *CNPJRequest) (*service.Result[*lookup.Empresa], error) {
	empresa, err := h.lookup.CNPJ(c.Request().Context(), req.CNPJ)
	if err != nil {
		return nil, err
	}
	return &service.Result[*lookup.Empresa]{Data: empresa}, nil
}
