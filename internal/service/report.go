package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/lib/job"
	"github.com/deppfellow/agro-backend/internal/lib/report"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Reports are stamped in Brazilian local time.
const reportTimezone = "America/Sao_Paulo"

// Enqueuer pushes background tasks. *asynq.Client satisfies it.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TenantReader reads the company profile.
type TenantReader interface {
	Get(ctx context.Context, tenantID string) (*model.Tenant, error)
}

// ReportSources are the reads reports are built from.
type ReportSources struct {
	Tenants      TenantReader
	Saldo        *SaldoService
	Estoque      *EstoqueService
	Pluviometria *PluviometriaService
	Granjas      Getter[model.Granja]
	Safras       Getter[model.Safra]
	Produtos     Getter[model.Produto]
	Inscricoes   Getter[model.Inscricao]
	Produtores   Getter[model.Produtor]
	NotasFiscais Lister[model.NotaFiscal]
	Colheitas    Lister[model.Colheita]
}

// ReportService renders PDF reports and spreadsheet exports, and queues
// reports for email delivery.
type ReportService struct {
	base
	src      ReportSources
	enqueuer Enqueuer
	location *time.Location
	now      func() time.Time
}

func NewReportService(src ReportSources, enqueuer Enqueuer, logger *zerolog.Logger) *ReportService {
	loc, err := time.LoadLocation(reportTimezone)
	if err != nil {
		loc = time.Local
	}
	return &ReportService{
		base:     base{logger: logger},
		src:      src,
		enqueuer: enqueuer,
		location: loc,
		now:      time.Now,
	}
}

// Generate renders kind for tenantID from query parameters. Missing filters
// produce an empty report, malformed ones a 400.
func (s *ReportService) Generate(ctx context.Context, tenantID string, kind report.Kind, params url.Values) ([]byte, error) {
	out, _, err := s.render(ctx, tenantID, kind, params)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityRelatorio, notify.ActionReport, err)
	}
	return out, nil
}

// Render implements job.ReportRenderer.
func (s *ReportService) Render(ctx context.Context, tenantID, kind string, params map[string]string) (*job.Rendered, error) {
	k, ok := report.ParseKind(kind)
	if !ok {
		return nil, errs.NewNotFoundError("Relatório desconhecido: "+kind, true, nil)
	}

	values := url.Values{}
	for name, v := range params {
		values.Set(name, v)
	}

	content, h, err := s.render(ctx, tenantID, k, values)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityRelatorio, notify.ActionReport, err)
	}

	return &job.Rendered{
		Title:       reportTitles[k],
		Company:     h.Empresa,
		GeneratedAt: brfmt.FormatDateTime(h.GeradoEm),
		Filename:    k.Filename(),
		Content:     content,
	}, nil
}

func (s *ReportService) render(ctx context.Context, tenantID string, kind report.Kind, params url.Values) ([]byte, report.Header, error) {
	h, err := s.header(ctx, tenantID)
	if err != nil {
		return nil, h, err
	}

	var out []byte
	switch kind {
	case report.KindEstoqueSilos:
		out, err = s.estoqueSilos(ctx, tenantID, h, params)
	case report.KindSaldoProdutor:
		out, err = s.saldoProdutor(ctx, tenantID, h, params)
	case report.KindPluviometria:
		out, err = s.pluviometria(ctx, tenantID, h, params)
	case report.KindNotasFiscais:
		out, err = s.notasFiscais(ctx, tenantID, h, params)
	default:
		err = errs.NewNotFoundError("Relatório desconhecido: "+string(kind), true, nil)
	}
	return out, h, err
}

var reportTitles = map[report.Kind]string{
	report.KindEstoqueSilos:  "Estoque por silo",
	report.KindSaldoProdutor: "Saldo do produtor",
	report.KindPluviometria:  "Pluviometria mensal",
	report.KindNotasFiscais:  "Notas fiscais emitidas",
}

// Enqueue queues a report to be rendered and emailed.
func (s *ReportService) Enqueue(ctx context.Context, tenantID string, payload *model.EnvioRelatorioPayload) (*Result[string], error) {
	task, err := job.NewReportEmailTask(job.ReportEmailPayload{
		TenantID: tenantID,
		Kind:     payload.Relatorio,
		Params:   payload.Parametros,
		To:       payload.Destinatario,
	})
	if err != nil {
		return nil, s.fail(ctx, notify.EntityRelatorio, notify.ActionEnqueue, err)
	}

	info, err := s.enqueuer.EnqueueContext(ctx, task)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityRelatorio, notify.ActionEnqueue,
			errs.NewServiceUnavailableError("Fila de processamento indisponível", true))
	}

	return &Result[string]{
		Data:         info.ID,
		Notification: notify.Success(notify.LanguageFrom(ctx), notify.EntityRelatorio, notify.ActionEnqueue),
	}, nil
}

// ExportColheitas writes the harvest listing matching params as a spreadsheet.
func (s *ReportService) ExportColheitas(ctx context.Context, tenantID string, params url.Values) ([]byte, error) {
	q, err := ParseQuery(repository.ColheitasSpec, params)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityColheita, notify.ActionReport, err)
	}

	h, err := s.header(ctx, tenantID)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityColheita, notify.ActionReport, err)
	}

	colheitas, err := s.src.Colheitas.List(ctx, tenantID, q)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityColheita, notify.ActionReport, err)
	}

	out, err := report.ColheitasXLSX(h, colheitas)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityColheita, notify.ActionReport, err)
	}
	return out, nil
}

// header builds the page header from the company profile. A tenant that has
// not filled in its profile gets its id as company name.
func (s *ReportService) header(ctx context.Context, tenantID string) (report.Header, error) {
	h := report.Header{Empresa: tenantID, GeradoEm: s.now().In(s.location)}

	tenant, err := s.src.Tenants.Get(ctx, tenantID)
	if err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return h, nil
		}
		return h, err
	}

	h.Empresa = tenant.Nome
	if tenant.CNPJ != nil {
		h.Documento = *tenant.CNPJ
	}
	return h, nil
}

func (s *ReportService) estoqueSilos(ctx context.Context, tenantID string, h report.Header, params url.Values) ([]byte, error) {
	var f EstoqueFilter
	var err error
	if f.GranjaID, err = uuidParam(params, "granja_id"); err != nil {
		return nil, err
	}
	if f.SafraID, err = uuidParam(params, "safra_id"); err != nil {
		return nil, err
	}

	itens, err := s.src.Estoque.PorSilo(ctx, tenantID, f)
	if err != nil {
		return nil, err
	}
	return report.EstoqueSilos(h, itens)
}

func (s *ReportService) saldoProdutor(ctx context.Context, tenantID string, h report.Header, params url.Values) ([]byte, error) {
	var key model.SaldoKey
	var err error
	if key.InscricaoID, err = uuidParam(params, "inscricao_id"); err != nil {
		return nil, err
	}
	if key.SafraID, err = uuidParam(params, "safra_id"); err != nil {
		return nil, err
	}
	if key.ProdutoID, err = uuidParam(params, "produto_id"); err != nil {
		return nil, err
	}

	saldo, err := s.src.Saldo.Compute(ctx, tenantID, key)
	if err != nil {
		return nil, err
	}

	info := report.SaldoInfo{Saldo: *saldo}
	if !key.Complete() {
		return report.SaldoProdutor(h, info)
	}

	inscricao, err := s.src.Inscricoes.Get(ctx, tenantID, *key.InscricaoID)
	if err != nil {
		return nil, err
	}
	safra, err := s.src.Safras.Get(ctx, tenantID, *key.SafraID)
	if err != nil {
		return nil, err
	}
	produto, err := s.src.Produtos.Get(ctx, tenantID, *key.ProdutoID)
	if err != nil {
		return nil, err
	}

	info.Inscricao = inscricao.InscricaoEstadual
	info.Produtor = inscricao.ProdutorNome
	info.Granja = inscricao.GranjaNome
	info.Safra = safra.Nome
	info.Produto = produto.Nome

	if produtor, err := s.src.Produtores.Get(ctx, tenantID, inscricao.ProdutorID); err == nil {
		info.Produtor = produtor.Nome + " - " + brfmt.FormatDocument(produtor.CPFCNPJ)
	}

	return report.SaldoProdutor(h, info)
}

func (s *ReportService) pluviometria(ctx context.Context, tenantID string, h report.Header, params url.Values) ([]byte, error) {
	q, err := ParseQuery(repository.PluviometriaSpec, params)
	if err != nil {
		return nil, err
	}

	resumo, err := s.src.Pluviometria.ResumoMensal(ctx, tenantID, q)
	if err != nil {
		return nil, err
	}

	granja := "-"
	if id, ok := q.Where["granja_id"].(uuid.UUID); ok {
		g, err := s.src.Granjas.Get(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		granja = g.Nome
	}

	return report.Pluviometria(h, granja, periodo(q), resumo)
}

func (s *ReportService) notasFiscais(ctx context.Context, tenantID string, h report.Header, params url.Values) ([]byte, error) {
	q, err := ParseQuery(repository.NotasFiscaisSpec, params)
	if err != nil {
		return nil, err
	}

	notas, err := s.src.NotasFiscais.List(ctx, tenantID, q)
	if err != nil {
		return nil, err
	}
	return report.NotasFiscais(h, periodo(q), notas)
}

// periodo renders the de/ate filters as "01/03/2025 a 31/03/2025".
func periodo(q repository.Query) string {
	de, hasDe := q.Where["de"].(time.Time)
	ate, hasAte := q.Where["ate"].(time.Time)

	switch {
	case hasDe && hasAte:
		return brfmt.FormatDate(de) + " a " + brfmt.FormatDate(ate)
	case hasDe:
		return "A partir de " + brfmt.FormatDate(de)
	case hasAte:
		return "Até " + brfmt.FormatDate(ate)
	}
	return ""
}

func uuidParam(params url.Values, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(params.Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, errs.NewBadRequestError("Parâmetro inválido: "+name, true, nil,
			[]errs.FieldError{{Field: name, Error: "must be a valid UUID"}}, nil)
	}
	return &id, nil
}
