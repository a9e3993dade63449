package handler

import (
	"net/http"
	"testing"

	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandlerRejectsBeforeRendering(t *testing.T) {
	s := newTestServer()
	services := &service.Services{
		Reports: service.NewReportService(service.ReportSources{}, nil, s.Logger),
	}

	e := newTestEcho(s)
	NewReportHandler(s, services).Register(e.Group(""))

	rec := do(e, http.MethodGet, "/relatorios/balanco.pdf", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, "Erro ao gerar relatório: Relatório desconhecido: balanco", body.Notification.Message)

	rec = do(e, http.MethodPost, "/relatorios/envio", `{"relatorio":"pluviometria","destinatario":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/relatorios/envio", `{"relatorio":"balanco","destinatario":"a@b.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
