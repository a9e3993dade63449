package handler

import (
	"net/http"
	"strings"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/lib/report"
	"github.com/deppfellow/agro-backend/internal/middleware"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/server"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler downloads PDF reports and spreadsheets, and queues reports
// for email delivery.
type ReportHandler struct {
	Handler
	reports *service.ReportService
}

func NewReportHandler(s *server.Server, services *service.Services) *ReportHandler {
	return &ReportHandler{
		Handler: NewHandler(s),
		reports: services.Reports,
	}
}

func (h *ReportHandler) Register(g *echo.Group) {
	g.GET("/relatorios/:arquivo", HandleFile(h.Handler, h.Download, http.StatusOK, factory[RelatorioRequest]()))
	g.POST("/relatorios/envio", Handle(h.Handler, h.Enviar, http.StatusAccepted, factory[model.EnvioRelatorioPayload]()))
	g.GET("/exportar/colheitas.xlsx", HandleFile(h.Handler, h.ExportColheitas, http.StatusOK, factory[EmptyRequest]()))
}

// Download serves /relatorios/<kind>.pdf; the filters come from the query string.
func (h *ReportHandler) Download(c echo.Context, req *RelatorioRequest) (*File, error) {
	name := strings.TrimSuffix(req.Arquivo, ".pdf")
	kind, ok := report.ParseKind(name)
	if !ok {
		message := "Relatório desconhecido: " + name
		return nil, errs.NewNotFoundError(message, true, nil).WithNotification(
			notify.Failure(notify.LanguageFrom(c.Request().Context()), notify.EntityRelatorio, notify.ActionReport, message))
	}

	out, err := h.reports.Generate(c.Request().Context(), middleware.GetTenantID(c), kind, c.QueryParams())
	if err != nil {
		return nil, err
	}
	return &File{Name: kind.Filename(), ContentType: contentTypePDF, Content: out}, nil
}

func (h *ReportHandler) Enviar(c echo.Context, req *model.EnvioRelatorioPayload) (*service.Result[string], error) {
	return h.reports.Enqueue(c.Request().Context(), middleware.GetTenantID(c), req)
}

// ExportColheitas takes the harvest listing filters.
func (h *ReportHandler) ExportColheitas(c echo.Context, _ *EmptyRequest) (*File, error) {
	out, err := h.reports.ExportColheitas(c.Request().Context(), middleware.GetTenantID(c), c.QueryParams())
	if err != nil {
		return nil, err
	}
	return &File{Name: "colheitas.xlsx", ContentType: contentTypeXLSX, Content: out}, nil
}
