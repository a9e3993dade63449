package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/agro-backend/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	gotTenant string
	gotKind   string
	gotParams map[string]string
	err       error
}

func (f *fakeRenderer) Render(_ context.Context, tenantID, kind string, params map[string]string) (*Rendered, error) {
	f.gotTenant, f.gotKind, f.gotParams = tenantID, kind, params
	if f.err != nil {
		return nil, f.err
	}
	return &Rendered{
		Title:       "Estoque por silo",
		Company:     "Fazenda Boa Vista",
		GeneratedAt: "07/03/2025 14:05",
		Filename:    "estoque-silos.pdf",
		Content:     []byte("%PDF-1.3"),
	}, nil
}

type fakeMailer struct {
	to   string
	sent *email.Report
}

func (f *fakeMailer) SendReportEmail(_ context.Context, to string, r email.Report) error {
	f.to, f.sent = to, &r
	return nil
}

func newTestService(r ReportRenderer, m Mailer) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, renderer: r, mailer: m}
}

func TestReportEmailTask(t *testing.T) {
	task, err := NewReportEmailTask(ReportEmailPayload{
		TenantID: "org_1",
		Kind:     "estoque-silos",
		Params:   map[string]string{"granja_id": "g1"},
		To:       "gerente@fazenda.com.br",
	})
	require.NoError(t, err)
	assert.Equal(t, TaskReportEmail, task.Type())

	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	require.NoError(t, newTestService(renderer, mailer).handleReportEmailTask(context.Background(), task))

	assert.Equal(t, "org_1", renderer.gotTenant)
	assert.Equal(t, "estoque-silos", renderer.gotKind)
	assert.Equal(t, map[string]string{"granja_id": "g1"}, renderer.gotParams)

	require.NotNil(t, mailer.sent)
	assert.Equal(t, "gerente@fazenda.com.br", mailer.to)
	assert.Equal(t, "estoque-silos.pdf", mailer.sent.Filename)
	assert.Equal(t, []byte("%PDF-1.3"), mailer.sent.Content)
}

func TestReportEmailTaskRenderFailureIsRetried(t *testing.T) {
	payload, _ := json.Marshal(ReportEmailPayload{TenantID: "org_1", Kind: "pluviometria", To: "a@b.com"})
	renderErr := errors.New("database down")
	mailer := &fakeMailer{}

	err := newTestService(&fakeRenderer{err: renderErr}, mailer).
		handleReportEmailTask(context.Background(), asynq.NewTask(TaskReportEmail, payload))

	assert.ErrorIs(t, err, renderErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Nil(t, mailer.sent)
}

func TestReportEmailTaskMalformedPayloadSkipsRetry(t *testing.T) {
	err := newTestService(&fakeRenderer{}, &fakeMailer{}).
		handleReportEmailTask(context.Background(), asynq.NewTask(TaskReportEmail, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestStartRequiresHandlers(t *testing.T) {
	assert.Error(t, newTestService(nil, nil).Start())
}
