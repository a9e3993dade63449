package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/lib/job"
	"github.com/deppfellow/agro-backend/internal/lib/report"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTenants struct {
	tenant *model.Tenant
}

func (f fakeTenants) Get(context.Context, string) (*model.Tenant, error) {
	if f.tenant == nil {
		return nil, errs.NewNotFoundError("Registro de empresa não encontrado", true, nil)
	}
	return f.tenant, nil
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

type reportFixture struct {
	svc      *ReportService
	enqueuer *fakeEnqueuer
	silo     model.Silo
}

func newReportFixture(t *testing.T, tenantProfile *model.Tenant) *reportFixture {
	t.Helper()
	logger := testLogger()

	silo := model.Silo{Base: model.Base{ID: uuid.New()}, Nome: "Silo Norte", GranjaNome: "Granja Boa Vista", Capacidade: 1000}
	silos := newFakeStore(repository.SilosSpec, silo)
	colheitas := newFakeStore(repository.ColheitasSpec, model.Colheita{
		SiloID:      silo.ID,
		Quantidade:  420,
		Data:        model.NewDate(time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)),
		SafraNome:   "2024/2025",
		SiloNome:    silo.Nome,
		LavouraNome: "Talhão 1",
		ProdutoNome: "Soja",
	})
	transferencias := newFakeStore[model.Transferencia](repository.TransferenciasSpec)
	chuva := newFakeStore(repository.PluviometriaSpec, registro(2025, time.March, 1, 10))

	enqueuer := &fakeEnqueuer{}
	svc := NewReportService(ReportSources{
		Tenants:      fakeTenants{tenant: tenantProfile},
		Saldo:        NewSaldoService(colheitas, transferencias, nil, time.Minute, logger),
		Estoque:      NewEstoqueService(silos, colheitas, nil, time.Minute, logger),
		Pluviometria: NewPluviometriaService(chuva, nil, time.Minute, logger),
		Granjas:      newFakeStore(repository.GranjasSpec, model.Granja{Nome: "Granja Boa Vista"}),
		Safras:       newFakeStore(repository.SafrasSpec, model.Safra{Nome: "2024/2025"}),
		Produtos:     newFakeStore(repository.ProdutosSpec, model.Produto{Nome: "Soja"}),
		Inscricoes:   newFakeStore(repository.InscricoesSpec, model.Inscricao{InscricaoEstadual: "123456789", ProdutorNome: "João"}),
		Produtores:   newFakeStore(repository.ProdutoresSpec, model.Produtor{Nome: "João", CPFCNPJ: "52998224725"}),
		NotasFiscais: newFakeStore[model.NotaFiscal](repository.NotasFiscaisSpec),
		Colheitas:    colheitas,
	}, enqueuer, logger)
	svc.now = func() time.Time { return time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC) }

	return &reportFixture{svc: svc, enqueuer: enqueuer, silo: silo}
}

func TestGenerateEveryKind(t *testing.T) {
	cnpj := "11222333000181"
	f := newReportFixture(t, &model.Tenant{ID: tenant, Nome: "Agro Ltda", CNPJ: &cnpj})
	ctx := context.Background()

	params := map[report.Kind]url.Values{
		report.KindEstoqueSilos: {},
		report.KindSaldoProdutor: {
			"inscricao_id": {uuid.NewString()},
			"safra_id":     {uuid.NewString()},
			"produto_id":   {uuid.NewString()},
		},
		report.KindPluviometria: {"granja_id": {uuid.NewString()}, "de": {"2025-01-01"}},
		report.KindNotasFiscais: {},
	}

	for _, kind := range report.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			out, err := f.svc.Generate(ctx, tenant, kind, params[kind])
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestGenerateErrors(t *testing.T) {
	f := newReportFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, tenant, report.Kind("balanco"), nil)
	assert.Equal(t, http.StatusNotFound, httpError(t, err).Status)

	_, err = f.svc.Generate(ctx, tenant, report.KindEstoqueSilos, url.Values{"granja_id": {"nope"}})
	httpErr := httpError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "granja_id", httpErr.Errors[0].Field)
	assert.Equal(t, "Erro ao gerar relatório: Parâmetro inválido: granja_id", httpErr.Notification.Message)
}

func TestRenderUsesTenantIDWithoutProfile(t *testing.T) {
	f := newReportFixture(t, nil)

	rendered, err := f.svc.Render(context.Background(), tenant, string(report.KindEstoqueSilos), nil)
	require.NoError(t, err)
	assert.Equal(t, tenant, rendered.Company)
	assert.Equal(t, "Estoque por silo", rendered.Title)
	assert.Equal(t, report.KindEstoqueSilos.Filename(), rendered.Filename)
	assert.Equal(t, "10/03/2025 12:00", rendered.GeneratedAt)
	assert.True(t, bytes.HasPrefix(rendered.Content, []byte("%PDF")))

	_, err = f.svc.Render(context.Background(), tenant, "balanco", nil)
	assert.Error(t, err)
}

func TestEnqueueReport(t *testing.T) {
	f := newReportFixture(t, nil)
	payload := &model.EnvioRelatorioPayload{
		Relatorio:    string(report.KindSaldoProdutor),
		Destinatario: "financeiro@example.com",
		Parametros:   map[string]string{"safra_id": "x"},
	}

	res, err := f.svc.Enqueue(context.Background(), tenant, payload)
	require.NoError(t, err)
	assert.Equal(t, "task-1", res.Data)
	assert.Equal(t, "Relatório enviado para processamento", res.Notification.Message)

	require.Len(t, f.enqueuer.tasks, 1)
	task := f.enqueuer.tasks[0]
	assert.Equal(t, job.TaskReportEmail, task.Type())

	var got job.ReportEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, job.ReportEmailPayload{
		TenantID: tenant,
		Kind:     "saldo-produtor",
		Params:   map[string]string{"safra_id": "x"},
		To:       "financeiro@example.com",
	}, got)

	f.enqueuer.err = assert.AnError
	_, err = f.svc.Enqueue(context.Background(), tenant, payload)
	assert.Equal(t, http.StatusServiceUnavailable, httpError(t, err).Status)
}

func TestExportColheitas(t *testing.T) {
	f := newReportFixture(t, nil)

	out, err := f.svc.ExportColheitas(context.Background(), tenant, url.Values{"safra_id": {uuid.NewString()}})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("PK")))

	_, err = f.svc.ExportColheitas(context.Background(), tenant, url.Values{"de": {"ontem"}})
	assert.Equal(t, http.StatusBadRequest, httpError(t, err).Status)
}
