package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/deppfellow/agro-backend/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// ReportRenderer renders a report of a tenant to PDF.
type ReportRenderer interface {
	Render(ctx context.Context, tenantID, kind string, params map[string]string) (*Rendered, error)
}

// Rendered is a finished report.
type Rendered struct {
	Title       string
	Company     string
	GeneratedAt string
	Filename    string
	Content     []byte
}

// Mailer delivers rendered reports.
type Mailer interface {
	SendReportEmail(ctx context.Context, to string, r email.Report) error
}

// InitHandlers wires the dependencies task handlers need. It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, renderer ReportRenderer) {
	j.mailer = email.NewClient(cfg, logger)
	j.renderer = renderer
}

// handleReportEmailTask renders the requested report and emails it.
//
// Malformed payloads are not retried. Rendering and delivery failures are,
// up to the task's MaxRetry.
func (j *JobService) handleReportEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ReportEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal report email payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskReportEmail).
		Str("tenant_id", p.TenantID).
		Str("kind", p.Kind).
		Str("to", p.To).
		Logger()

	logger.Info().Msg("Processing report email task")

	rendered, err := j.renderer.Render(ctx, p.TenantID, p.Kind, p.Params)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to render report")
		return err
	}

	err = j.mailer.SendReportEmail(ctx, p.To, email.Report{
		Titulo:   rendered.Title,
		Empresa:  rendered.Company,
		GeradoEm: rendered.GeneratedAt,
		Filename: rendered.Filename,
		Content:  rendered.Content,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to send report email")
		return err
	}

	logger.Info().
		Int("size_bytes", len(rendered.Content)).
		Msg("Successfully sent report email")

	return nil
}
