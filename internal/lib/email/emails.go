package email

import "context"

// Report is a rendered report to deliver.
type Report struct {
	Titulo   string
	Empresa  string
	GeradoEm string
	Filename string
	Content  []byte
}

// SendReportEmail sends a report as a PDF attachment.
func (c *Client) SendReportEmail(ctx context.Context, to string, r Report) error {
	data := map[string]string{
		"Titulo":   r.Titulo,
		"Empresa":  r.Empresa,
		"GeradoEm": r.GeradoEm,
		"Arquivo":  r.Filename,
	}

	return c.SendEmail(
		ctx,
		to,
		r.Titulo+" - "+r.Empresa,
		TemplateReport,
		data,
		Attachment{Filename: r.Filename, ContentType: "application/pdf", Content: r.Content},
	)
}
