package service

import (
	"github.com/deppfellow/agro-backend/internal/lib/job"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/deppfellow/agro-backend/internal/server"
)

type Services struct {
	Auth *AuthService
	Job  *job.JobService

	Tenant *TenantService

	Granjas        *Resource[model.Granja]
	Lavouras       *Resource[model.Lavoura]
	Culturas       *Resource[model.Cultura]
	Produtos       *Resource[model.Produto]
	Safras         *Resource[model.Safra]
	Silos          *Resource[model.Silo]
	AnalisesSolo   *Resource[model.AnaliseSolo]
	Pluviometria   *Resource[model.Pluviometria]
	Produtores     *Resource[model.Produtor]
	Inscricoes     *Resource[model.Inscricao]
	Colheitas      *Resource[model.Colheita]
	Transferencias *Resource[model.Transferencia]
	NotasFiscais   *Resource[model.NotaFiscal]

	Saldo       *SaldoService
	Estoque     *EstoqueService
	ResumoChuva *PluviometriaService
	Lookup      *LookupService
	Reports     *ReportService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)

	c := s.Cache
	ttl := s.Config.Cache.ListTTL
	log := s.Logger

	// A mutation drops its own table and every group whose cached values
	// join or aggregate it.
	svc := &Services{
		Auth: authService,
		Job:  s.Job,

		Tenant: NewTenantService(repos.Tenants, c, ttl, log),

		Granjas: NewResource[model.Granja](repos.Granjas, notify.EntityGranja, c, ttl, log,
			repository.TableLavouras, repository.TableSilos, repository.TableInscricoes, repository.TablePluviometria, GroupEstoque),
		Culturas: NewResource[model.Cultura](repos.Culturas, notify.EntityCultura, c, ttl, log,
			repository.TableLavouras),
		Lavouras: NewResource[model.Lavoura](repos.Lavouras, notify.EntityLavoura, c, ttl, log,
			repository.TableAnalisesSolo, repository.TableColheitas),
		Produtos: NewResource[model.Produto](repos.Produtos, notify.EntityProduto, c, ttl, log,
			repository.TableColheitas, repository.TableTransferencias),
		Safras: NewResource[model.Safra](repos.Safras, notify.EntitySafra, c, ttl, log,
			repository.TableColheitas, repository.TableTransferencias),
		Silos: NewResource[model.Silo](repos.Silos, notify.EntitySilo, c, ttl, log,
			repository.TableColheitas, GroupEstoque),
		AnalisesSolo: NewResource[model.AnaliseSolo](repos.AnalisesSolo, notify.EntityAnaliseSolo, c, ttl, log),
		Pluviometria: NewResource[model.Pluviometria](repos.Pluviometria, notify.EntityPluviometria, c, ttl, log),
		Produtores: NewResource[model.Produtor](repos.Produtores, notify.EntityProdutor, c, ttl, log,
			repository.TableInscricoes),
		Inscricoes: NewResource[model.Inscricao](repos.Inscricoes, notify.EntityInscricao, c, ttl, log,
			repository.TableTransferencias),
		Colheitas: NewResource[model.Colheita](repos.Colheitas, notify.EntityColheita, c, ttl, log,
			GroupSaldo, GroupEstoque),
		Transferencias: NewResource[model.Transferencia](repos.Transferencias, notify.EntityTransferencia, c, ttl, log,
			GroupSaldo),
		NotasFiscais: NewResource[model.NotaFiscal](repos.NotasFiscais, notify.EntityNotaFiscal, c, ttl, log),

		Saldo:       NewSaldoService(repos.Colheitas, repos.Transferencias, c, ttl, log),
		Estoque:     NewEstoqueService(repos.Silos, repos.Colheitas, c, ttl, log),
		ResumoChuva: NewPluviometriaService(repos.Pluviometria, c, ttl, log),
		Lookup:      NewLookupService(s.Lookup.CEP, s.Lookup.CNPJ, log),
	}

	svc.Reports = NewReportService(ReportSources{
		Tenants:      svc.Tenant,
		Saldo:        svc.Saldo,
		Estoque:      svc.Estoque,
		Pluviometria: svc.ResumoChuva,
		Granjas:      svc.Granjas,
		Safras:       svc.Safras,
		Produtos:     svc.Produtos,
		Inscricoes:   svc.Inscricoes,
		Produtores:   svc.Produtores,
		NotasFiscais: svc.NotasFiscais,
		Colheitas:    svc.Colheitas,
	}, s.Job.Client, log)

	return svc, nil
}
