package handler

import (
	"strings"

	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EmptyRequest is bound by endpoints that read everything from the path or
// from free-form query parameters.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Parâmetro inválido: id", true, nil,
			[]errs.FieldError{{Field: "id", Error: "must be a valid UUID"}}, nil)
	}
	return id, nil
}

// optionalUUID parses an already validated, possibly empty UUID string.
func optionalUUID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

type SaldoRequest struct {
	InscricaoID string `query:"inscricao_id" json:"inscricao_id" validate:"omitempty,uuid"`
	SafraID     string `query:"safra_id" json:"safra_id" validate:"omitempty,uuid"`
	ProdutoID   string `query:"produto_id" json:"produto_id" validate:"omitempty,uuid"`
}

func (r *SaldoRequest) Validate() error {
	return validation.Struct(r)
}

type EstoqueRequest struct {
	GranjaID string `query:"granja_id" json:"granja_id" validate:"omitempty,uuid"`
	SafraID  string `query:"safra_id" json:"safra_id" validate:"omitempty,uuid"`
}

func (r *EstoqueRequest) Validate() error {
	return validation.Struct(r)
}

type CEPRequest struct {
	CEP string `param:"cep" json:"cep" validate:"required,max=9"`
}

func (r *CEPRequest) Validate() error {
	return validation.Struct(r)
}

type CNPJRequest struct {
	CNPJ string `param:"cnpj" json:"cnpj" validate:"required,max=18"`
}

func (r *CNPJRequest) Validate() error {
	return validation.Struct(r)
}

type TabelaFiscalRequest struct {
	Tabela string `param:"tabela" json:"tabela" validate:"required"`
	Codigo string `param:"codigo" json:"codigo"`
}

func (r *TabelaFiscalRequest) Validate() error {
	return validation.Struct(r)
}

// RelatorioRequest binds "/relatorios/<kind>.pdf".
type RelatorioRequest struct {
	Arquivo string `param:"arquivo" json:"arquivo" validate:"required"`
}

func (r *RelatorioRequest) Validate() error {
	return validation.Struct(r)
}
