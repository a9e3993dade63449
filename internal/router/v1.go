package router

import (
	"github.com/deppfellow/agro-backend/internal/handler"
	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerV1Routes mounts the tenant-scoped API.
func registerV1Routes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	h.Tenant.Register(v1.Group("/tenant"))

	h.Granjas.Register(v1.Group("/granjas"))
	h.Culturas.Register(v1.Group("/culturas"))
	h.Lavouras.Register(v1.Group("/lavouras"))
	h.Produtos.Register(v1.Group("/produtos"))
	h.Safras.Register(v1.Group("/safras"))
	h.Silos.Register(v1.Group("/silos"))
	h.AnalisesSolo.Register(v1.Group("/analises-solo"))
	h.Pluviometria.Register(v1.Group("/pluviometria"))
	h.Produtores.Register(v1.Group("/produtores"))
	h.Inscricoes.Register(v1.Group("/inscricoes"))
	h.Colheitas.Register(v1.Group("/colheitas"))
	h.Transferencias.Register(v1.Group("/transferencias"))
	h.NotasFiscais.Register(v1.Group("/notas-fiscais"))

	// Static segments win over :id in Echo, so /silos/estoque and
	// /pluviometria/resumo do not clash with the collections above.
	h.Agregados.Register(v1)
	h.Reports.Register(v1)
	h.Fiscal.Register(v1.Group("/fiscal"))
	h.Lookup.Register(v1.Group("/lookup", m.RateLimit.Lookups()))
}
