package email

// PreviewData contains sample template data for local preview/testing.
//
//	templateName -> (templateVariableName -> exampleValue)
var PreviewData = map[Template]map[string]string{
	TemplateReport: {
		"Titulo":   "Estoque por silo",
		"Empresa":  "Fazenda Boa Vista",
		"GeradoEm": "07/03/2025 14:05",
		"Arquivo":  "estoque-silos.pdf",
	},
}
