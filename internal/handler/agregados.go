package handler

import (
	"net/http"

	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// AgregadosHandler serves values derived from several tables: producer
// balances, silo stock and the monthly rainfall summary.
type AgregadosHandler struct {
	Handler
	saldo   *service.SaldoService
	estoque *service.EstoqueService
	chuva   *service.PluviometriaService
}

func NewAgregadosHandler(s *server.Server, services *service.Services) *AgregadosHandler {
	return &AgregadosHandler{
		Handler: NewHandler(s),
		saldo:   services.Saldo,
		estoque: services.Estoque,
		chuva:   services.ResumoChuva,
	}
}

func (h *AgregadosHandler) Register(g *echo.Group) {
	g.GET("/saldo-produtor", Handle(h.Handler, h.Saldo, http.StatusOK, factory[SaldoRequest]()))
	g.GET("/silos/estoque", Handle(h.Handler, h.Estoque, http.StatusOK, factory[EstoqueRequest]()))
	g.GET("/pluviometria/resumo", Handle(h.Handler, h.ResumoChuva, http.StatusOK, factory[EmptyRequest]()))
}

// Saldo answers with zeros until all three ids are given.
func (h *AgregadosHandler) Saldo(c echo.Context, req *SaldoRequest) (*service.Result[*model.Saldo], error) {
	saldo, err := h.saldo.Compute(c.Request().Context(), middleware.GetTenantID(c), model.SaldoKey{
		InscricaoID: optionalUUID(req.InscricaoID),
		SafraID:     optionalUUID(req.SafraID),
		ProdutoID:   optionalUUID(req.ProdutoID),
	})
	if err != nil {
		return nil, err
	}
	return &service.Result[*model.Saldo]{Data: saldo}, nil
}

func (h *AgregadosHandler) Estoque(c echo.Context, req *EstoqueRequest) (*service.Result[[]model.EstoqueSilo], error) {
	itens, err := h.estoque.PorSilo(c.Request().Context(), middleware.GetTenantID(c), service.EstoqueFilter{
		GranjaID: optionalUUID(req.GranjaID),
		SafraID:  optionalUUID(req.SafraID),
	})
	if err != nil {
		return nil, err
	}
	return &service.Result[[]model.EstoqueSilo]{Data: itens}, nil
}

// ResumoChuva takes the rainfall listing filters: granja_id, de, ate.
func (h *AgregadosHandler) ResumoChuva(c echo.Context, _ *EmptyRequest) (*service.Result[[]model.ResumoPluviometrico], error) {
	q, err := service.ParseQuery(repository.PluviometriaSpec, c.QueryParams())
	if err != nil {
		return nil, err
	}

	resumo, err := h.chuva.ResumoMensal(c.Request().Context(), middleware.GetTenantID(c), q)
	if err != nil {
		return nil, err
	}
	return &service.Result[[]model.ResumoPluviometrico]{Data: resumo}, nil
}
