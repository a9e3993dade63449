package handler

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/lib/fiscal"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// FiscalHandler serves the static tax-situation code tables.
type FiscalHandler struct {
	Handler
}

func NewFiscalHandler(s *server.Server) *FiscalHandler {
	return &FiscalHandler{Handler: NewHandler(s)}
}

func (h *FiscalHandler) Register(g *echo.Group) {
	g.GET("/cst", Handle(h.Handler, h.Tabelas, http.StatusOK, factory[EmptyRequest]()))
	g.GET("/cst/:tabela", Handle(h.Handler, h.Tabela, http.StatusOK, factory[TabelaFiscalRequest]()))
	g.GET("/cst/:tabela/:codigo", Handle(h.Handler, h.Codigo, http.StatusOK, factory[TabelaFiscalRequest]()))
}

// Tabelas lists the available tables without their codes.
func (h *FiscalHandler) Tabelas(c echo.Context, _ *EmptyRequest) (*service.Result[[]fiscal.Table], error) {
	out := make([]fiscal.Table, 0, len(fiscal.Names()))
	for _, name := range fiscal.Names() {
		t, _ := fiscal.Tabela(name)
		out = append(out, fiscal.Table{Nome: t.Nome, Titulo: t.Titulo})
	}
	return &service.Result[[]fiscal.Table]{Data: out}, nil
}

func (h *FiscalHandler) Tabela(c echo.Context, req *TabelaFiscalRequest) (*service.Result[*fiscal.Table], error) {
	t, ok := fiscal.Tabela(req.Tabela)
	if !ok {
		return nil, notFound(c, "Tabela fiscal desconhecida: "+req.Tabela)
	}
	return &service.Result[*fiscal.Table]{Data: t}, nil
}

// Codigo returns one code; its tributado flag is the "is taxed" predicate.
func (h *FiscalHandler) Codigo(c echo.Context, req *TabelaFiscalRequest) (*service.Result[fiscal.Code], error) {
	if _, ok := fiscal.Tabela(req.Tabela); !ok {
		return nil, notFound(c, "Tabela fiscal desconhecida: "+req.Tabela)
	}

	code, ok := fiscal.Buscar(req.Tabela, req.Codigo)
	if !ok {
		return nil, notFound(c, "Código "+req.Codigo+" não encontrado em "+req.Tabela)
	}
	return &service.Result[fiscal.Code]{Data: code}, nil
}

func notFound(c echo.Context, message string) error {
	lang := notify.LanguageFrom(c.Request().Context())
	return errs.NewNotFoundError(message, true, nil).
		WithNotification(notify.Failure(lang, notify.EntityFiscal, notify.ActionLoad, message))
}
