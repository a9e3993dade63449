package model

import (
	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/lib/fiscal"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
)

// NotaFiscal is an invoice issued under an inscrição.
type NotaFiscal struct {
	Base
	InscricaoID           uuid.UUID `json:"inscricao_id" db:"inscricao_id"`
	Numero                int32     `json:"numero" db:"numero"`
	Serie                 int32     `json:"serie" db:"serie"`
	DataEmissao           Date      `json:"data_emissao" db:"data_emissao"`
	CFOP                  string    `json:"cfop" db:"cfop"`
	NaturezaOperacao      string    `json:"natureza_operacao" db:"natureza_operacao"`
	DestinatarioNome      string    `json:"destinatario_nome" db:"destinatario_nome"`
	DestinatarioDocumento string    `json:"destinatario_documento" db:"destinatario_documento"`
	ValorTotal            float64   `json:"valor_total" db:"valor_total"`
	CSTICMS               *string   `json:"cst_icms" db:"cst_icms"`
	CSTPISCOFINS          *string   `json:"cst_pis_cofins" db:"cst_pis_cofins"`
	CSTIBSCBS             *string   `json:"cst_ibs_cbs" db:"cst_ibs_cbs"`
	ChaveAcesso           *string   `json:"chave_acesso" db:"chave_acesso"`
	Observacoes           *string   `json:"observacoes" db:"observacoes"`
}

// TributadaIBSCBS reports whether the invoice's IBS/CBS code is a taxed one.
// Invoices without a code are not taxed.
func (n *NotaFiscal) TributadaIBSCBS() bool {
	if n.CSTIBSCBS == nil {
		return false
	}
	return fiscal.TemTributacaoIBSCBS(*n.CSTIBSCBS)
}

type CreateNotaFiscalPayload struct {
	InscricaoID           uuid.UUID      `json:"inscricao_id" db:"inscricao_id" validate:"required"`
	Numero                int32          `json:"numero" db:"numero" validate:"gt=0"`
	Serie                 *int32         `json:"serie" db:"serie" validate:"omitempty,gte=0,lte=999"`
	DataEmissao           Date           `json:"data_emissao" db:"data_emissao" validate:"required"`
	CFOP                  string         `json:"cfop" db:"cfop" validate:"required,numeric,len=4"`
	NaturezaOperacao      string         `json:"natureza_operacao" db:"natureza_operacao" validate:"required,max=60"`
	DestinatarioNome      string         `json:"destinatario_nome" db:"destinatario_nome" validate:"required,max=160"`
	DestinatarioDocumento string         `json:"destinatario_documento" db:"destinatario_documento" validate:"required,cpf_cnpj"`
	ValorTotal            brfmt.Quantity `json:"valor_total" db:"valor_total" validate:"gte=0"`
	CSTICMS               *string        `json:"cst_icms" db:"cst_icms" validate:"omitempty,max=3"`
	CSTPISCOFINS          *string        `json:"cst_pis_cofins" db:"cst_pis_cofins" validate:"omitempty,len=2"`
	CSTIBSCBS             *string        `json:"cst_ibs_cbs" db:"cst_ibs_cbs" validate:"omitempty,cst_ibs_cbs"`
	ChaveAcesso           *string        `json:"chave_acesso" db:"chave_acesso" validate:"omitempty,numeric,len=44"`
	Observacoes           *string        `json:"observacoes" db:"observacoes" validate:"omitempty,max=2000"`
}

func (p *CreateNotaFiscalPayload) Validate() error {
	p.DestinatarioDocumento = brfmt.OnlyDigits(p.DestinatarioDocumento)
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateTaxCodes(p.CSTICMS, p.CSTPISCOFINS)
}

type UpdateNotaFiscalPayload struct {
	Numero                *int32          `json:"numero" db:"numero" validate:"omitempty,gt=0"`
	Serie                 *int32          `json:"serie" db:"serie" validate:"omitempty,gte=0,lte=999"`
	DataEmissao           *Date           `json:"data_emissao" db:"data_emissao"`
	CFOP                  *string         `json:"cfop" db:"cfop" validate:"omitempty,numeric,len=4"`
	NaturezaOperacao      *string         `json:"natureza_operacao" db:"natureza_operacao" validate:"omitempty,max=60"`
	DestinatarioNome      *string         `json:"destinatario_nome" db:"destinatario_nome" validate:"omitempty,max=160"`
	DestinatarioDocumento *string         `json:"destinatario_documento" db:"destinatario_documento" validate:"omitempty,cpf_cnpj"`
	ValorTotal            *brfmt.Quantity `json:"valor_total" db:"valor_total" validate:"omitempty,gte=0"`
	CSTICMS               *string         `json:"cst_icms" db:"cst_icms" validate:"omitempty,max=3"`
	CSTPISCOFINS          *string         `json:"cst_pis_cofins" db:"cst_pis_cofins" validate:"omitempty,len=2"`
	CSTIBSCBS             *string         `json:"cst_ibs_cbs" db:"cst_ibs_cbs" validate:"omitempty,cst_ibs_cbs"`
	ChaveAcesso           *string         `json:"chave_acesso" db:"chave_acesso" validate:"omitempty,numeric,len=44"`
	Observacoes           *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=2000"`
}

func (p *UpdateNotaFiscalPayload) Validate() error {
	normalizeDocs(p.DestinatarioDocumento)
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validateTaxCodes(p.CSTICMS, p.CSTPISCOFINS)
}

// validateTaxCodes accepts either a CST ICMS or a CSOSN code for ICMS.
func validateTaxCodes(icms, pisCofins *string) error {
	var errs validation.CustomValidationErrors
	if icms != nil && !fiscal.ValidCode(fiscal.CSTICMS, *icms) && !fiscal.ValidCode(fiscal.CSOSN, *icms) {
		errs = append(errs, validation.CustomValidationError{Field: "cst_icms", Message: "must be a known CST ICMS or CSOSN code"})
	}
	if pisCofins != nil && !fiscal.ValidCode(fiscal.CSTPISCOFINS, *pisCofins) {
		errs = append(errs, validation.CustomValidationError{Field: "cst_pis_cofins", Message: "must be a known CST PIS/COFINS code"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
