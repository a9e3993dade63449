package handler

import (
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler

	Tenant    *TenantHandler
	Agregados *AgregadosHandler
	Lookup    *LookupHandler
	Fiscal    *FiscalHandler
	Reports   *ReportHandler

	Granjas        *ResourceHandler[model.Granja, *model.CreateGranjaPayload, *model.UpdateGranjaPayload]
	Culturas       *ResourceHandler[model.Cultura, *model.CreateCulturaPayload, *model.UpdateCulturaPayload]
	Lavouras       *ResourceHandler[model.Lavoura, *model.CreateLavouraPayload, *model.UpdateLavouraPayload]
	Produtos       *ResourceHandler[model.Produto, *model.CreateProdutoPayload, *model.UpdateProdutoPayload]
	Safras         *ResourceHandler[model.Safra, *model.CreateSafraPayload, *model.UpdateSafraPayload]
	Silos          *ResourceHandler[model.Silo, *model.CreateSiloPayload, *model.UpdateSiloPayload]
	AnalisesSolo   *ResourceHandler[model.AnaliseSolo, *model.CreateAnaliseSoloPayload, *model.UpdateAnaliseSoloPayload]
	Pluviometria   *ResourceHandler[model.Pluviometria, *model.CreatePluviometriaPayload, *model.UpdatePluviometriaPayload]
	Produtores     *ResourceHandler[model.Produtor, *model.CreateProdutorPayload, *model.UpdateProdutorPayload]
	Inscricoes     *ResourceHandler[model.Inscricao, *model.CreateInscricaoPayload, *model.UpdateInscricaoPayload]
	Colheitas      *ResourceHandler[model.Colheita, *model.CreateColheitaPayload, *model.UpdateColheitaPayload]
	Transferencias *ResourceHandler[model.Transferencia, *model.CreateTransferenciaPayload, *model.UpdateTransferenciaPayload]
	NotasFiscais   *ResourceHandler[model.NotaFiscal, *model.CreateNotaFiscalPayload, *model.UpdateNotaFiscalPayload]
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),

		Tenant:    NewTenantHandler(s, services),
		Agregados: NewAgregadosHandler(s, services),
		Lookup:    NewLookupHandler(s, services),
		Fiscal:    NewFiscalHandler(s),
		Reports:   NewReportHandler(s, services),

		Granjas: NewResourceHandler(s, services.Granjas,
			factory[model.CreateGranjaPayload](), factory[model.UpdateGranjaPayload]()),
		Culturas: NewResourceHandler(s, services.Culturas,
			factory[model.CreateCulturaPayload](), factory[model.UpdateCulturaPayload]()),
		Lavouras: NewResourceHandler(s, services.Lavouras,
			factory[model.CreateLavouraPayload](), factory[model.UpdateLavouraPayload]()),
		Produtos: NewResourceHandler(s, services.Produtos,
			factory[model.CreateProdutoPayload](), factory[model.UpdateProdutoPayload]()),
		Safras: NewResourceHandler(s, services.Safras,
			factory[model.CreateSafraPayload](), factory[model.UpdateSafraPayload]()),
		Silos: NewResourceHandler(s, services.Silos,
			factory[model.CreateSiloPayload](), factory[model.UpdateSiloPayload]()),
		AnalisesSolo: NewResourceHandler(s, services.AnalisesSolo,
			factory[model.CreateAnaliseSoloPayload](), factory[model.UpdateAnaliseSoloPayload]()),
		Pluviometria: NewResourceHandler(s, services.Pluviometria,
			factory[model.CreatePluviometriaPayload](), factory[model.UpdatePluviometriaPayload]()),
		Produtores: NewResourceHandler(s, services.Produtores,
			factory[model.CreateProdutorPayload](), factory[model.UpdateProdutorPayload]()),
		Inscricoes: NewResourceHandler(s, services.Inscricoes,
			factory[model.CreateInscricaoPayload](), factory[model.UpdateInscricaoPayload]()),
		Colheitas: NewResourceHandler(s, services.Colheitas,
			factory[model.CreateColheitaPayload](), factory[model.UpdateColheitaPayload]()),
		Transferencias: NewResourceHandler(s, services.Transferencias,
			factory[model.CreateTransferenciaPayload](), factory[model.UpdateTransferenciaPayload]()),
		NotasFiscais: NewResourceHandler(s, services.NotasFiscais,
			factory[model.CreateNotaFiscalPayload](), factory[model.UpdateNotaFiscalPayload]()),
	}
}
