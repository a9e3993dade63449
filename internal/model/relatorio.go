package model

import (
	"strings"

	"github.com/deppfellow/agro-backend/internal/validation"
)

// EnvioRelatorioPayload asks for a report to be rendered in the background
// and emailed as a PDF attachment.
type EnvioRelatorioPayload struct {
	Relatorio    string            `json:"relatorio" validate:"required,oneof=estoque-silos saldo-produtor pluviometria notas-fiscais"`
	Destinatario string            `json:"destinatario" validate:"required,email"`
	Parametros   map[string]string `json:"parametros"`
}

func (p *EnvioRelatorioPayload) Validate() error {
	p.Destinatario = strings.TrimSpace(p.Destinatario)
	return validation.Struct(p)
}
