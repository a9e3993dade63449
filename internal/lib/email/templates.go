package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateReport corresponds to templates/report.html
	TemplateReport Template = "report"
)
