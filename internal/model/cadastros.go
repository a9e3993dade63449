package model

import (
	"strings"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
)

// Granja is a farm.
type Granja struct {
	Base
	Nome       string   `json:"nome" db:"nome"`
	CNPJ       *string  `json:"cnpj" db:"cnpj"`
	AreaTotal  *float64 `json:"area_total" db:"area_total"`
	CEP        *string  `json:"cep" db:"cep"`
	Logradouro *string  `json:"logradouro" db:"logradouro"`
	Cidade     *string  `json:"cidade" db:"cidade"`
	UF         *string  `json:"uf" db:"uf"`
}

type CreateGranjaPayload struct {
	Nome       string          `json:"nome" db:"nome" validate:"required,min=2,max=120"`
	CNPJ       *string         `json:"cnpj" db:"cnpj" validate:"omitempty,cnpj"`
	AreaTotal  *brfmt.Quantity `json:"area_total" db:"area_total" validate:"omitempty,gte=0"`
	CEP        *string         `json:"cep" db:"cep" validate:"omitempty,cep"`
	Logradouro *string         `json:"logradouro" db:"logradouro" validate:"omitempty,max=200"`
	Cidade     *string         `json:"cidade" db:"cidade" validate:"omitempty,max=120"`
	UF         *string         `json:"uf" db:"uf" validate:"omitempty,uf"`
}

func (p *CreateGranjaPayload) Validate() error {
	normalizeDocs(p.CNPJ, p.CEP)
	normalizeUF(p.UF)
	return validation.Struct(p)
}

type UpdateGranjaPayload struct {
	Nome       *string         `json:"nome" db:"nome" validate:"omitempty,min=2,max=120"`
	CNPJ       *string         `json:"cnpj" db:"cnpj" validate:"omitempty,cnpj"`
	AreaTotal  *brfmt.Quantity `json:"area_total" db:"area_total" validate:"omitempty,gte=0"`
	CEP        *string         `json:"cep" db:"cep" validate:"omitempty,cep"`
	Logradouro *string         `json:"logradouro" db:"logradouro" validate:"omitempty,max=200"`
	Cidade     *string         `json:"cidade" db:"cidade" validate:"omitempty,max=120"`
	UF         *string         `json:"uf" db:"uf" validate:"omitempty,uf"`
}

func (p *UpdateGranjaPayload) Validate() error {
	normalizeDocs(p.CNPJ, p.CEP)
	normalizeUF(p.UF)
	return validation.Struct(p)
}

// Cultura is a crop.
type Cultura struct {
	Base
	Nome      string  `json:"nome" db:"nome"`
	Variedade *string `json:"variedade" db:"variedade"`
	CicloDias *int32  `json:"ciclo_dias" db:"ciclo_dias"`
}

type CreateCulturaPayload struct {
	Nome      string  `json:"nome" db:"nome" validate:"required,min=2,max=120"`
	Variedade *string `json:"variedade" db:"variedade" validate:"omitempty,max=120"`
	CicloDias *int32  `json:"ciclo_dias" db:"ciclo_dias" validate:"omitempty,gt=0"`
}

func (p *CreateCulturaPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateCulturaPayload struct {
	Nome      *string `json:"nome" db:"nome" validate:"omitempty,min=2,max=120"`
	Variedade *string `json:"variedade" db:"variedade" validate:"omitempty,max=120"`
	CicloDias *int32  `json:"ciclo_dias" db:"ciclo_dias" validate:"omitempty,gt=0"`
}

func (p *UpdateCulturaPayload) Validate() error {
	return validation.Struct(p)
}

// Lavoura is a field belonging to a farm.
type Lavoura struct {
	Base
	GranjaID    uuid.UUID  `json:"granja_id" db:"granja_id"`
	CulturaID   *uuid.UUID `json:"cultura_id" db:"cultura_id"`
	Nome        string     `json:"nome" db:"nome"`
	Area        *float64   `json:"area" db:"area"`
	Observacoes *string    `json:"observacoes" db:"observacoes"`

	GranjaNome  string  `json:"granja_nome" db:"granja_nome"`
	CulturaNome *string `json:"cultura_nome" db:"cultura_nome"`
}

type CreateLavouraPayload struct {
	GranjaID    uuid.UUID       `json:"granja_id" db:"granja_id" validate:"required"`
	CulturaID   *uuid.UUID      `json:"cultura_id" db:"cultura_id"`
	Nome        string          `json:"nome" db:"nome" validate:"required,min=1,max=120"`
	Area        *brfmt.Quantity `json:"area" db:"area" validate:"omitempty,gte=0"`
	Observacoes *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=2000"`
}

func (p *CreateLavouraPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateLavouraPayload struct {
	GranjaID    *uuid.UUID      `json:"granja_id" db:"granja_id"`
	CulturaID   *uuid.UUID      `json:"cultura_id" db:"cultura_id"`
	Nome        *string         `json:"nome" db:"nome" validate:"omitempty,min=1,max=120"`
	Area        *brfmt.Quantity `json:"area" db:"area" validate:"omitempty,gte=0"`
	Observacoes *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=2000"`
}

func (p *UpdateLavouraPayload) Validate() error {
	return validation.Struct(p)
}

// Produto is a product harvested or transferred, e.g. "Soja em grão".
type Produto struct {
	Base
	Nome    string  `json:"nome" db:"nome"`
	Unidade string  `json:"unidade" db:"unidade"`
	NCM     *string `json:"ncm" db:"ncm"`
}

type CreateProdutoPayload struct {
	Nome    string  `json:"nome" db:"nome" validate:"required,min=2,max=120"`
	Unidade *string `json:"unidade" db:"unidade" validate:"omitempty,oneof=kg t sc"`
	NCM     *string `json:"ncm" db:"ncm" validate:"omitempty,numeric,len=8"`
}

func (p *CreateProdutoPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateProdutoPayload struct {
	Nome    *string `json:"nome" db:"nome" validate:"omitempty,min=2,max=120"`
	Unidade *string `json:"unidade" db:"unidade" validate:"omitempty,oneof=kg t sc"`
	NCM     *string `json:"ncm" db:"ncm" validate:"omitempty,numeric,len=8"`
}

func (p *UpdateProdutoPayload) Validate() error {
	return validation.Struct(p)
}

// Safra is a harvest season.
type Safra struct {
	Base
	Nome       string `json:"nome" db:"nome"`
	DataInicio Date   `json:"data_inicio" db:"data_inicio"`
	DataFim    *Date  `json:"data_fim" db:"data_fim"`
}

type CreateSafraPayload struct {
	Nome       string `json:"nome" db:"nome" validate:"required,min=2,max=60"`
	DataInicio Date   `json:"data_inicio" db:"data_inicio" validate:"required"`
	DataFim    *Date  `json:"data_fim" db:"data_fim"`
}

func (p *CreateSafraPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validatePeriod(&p.DataInicio, p.DataFim)
}

type UpdateSafraPayload struct {
	Nome       *string `json:"nome" db:"nome" validate:"omitempty,min=2,max=60"`
	DataInicio *Date   `json:"data_inicio" db:"data_inicio"`
	DataFim    *Date   `json:"data_fim" db:"data_fim"`
}

func (p *UpdateSafraPayload) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	return validatePeriod(p.DataInicio, p.DataFim)
}

// Produtor is a rural producer (person or company).
type Produtor struct {
	Base
	Nome       string  `json:"nome" db:"nome"`
	CPFCNPJ    string  `json:"cpf_cnpj" db:"cpf_cnpj"`
	Email      *string `json:"email" db:"email"`
	Telefone   *string `json:"telefone" db:"telefone"`
	CEP        *string `json:"cep" db:"cep"`
	Logradouro *string `json:"logradouro" db:"logradouro"`
	Cidade     *string `json:"cidade" db:"cidade"`
	UF         *string `json:"uf" db:"uf"`
}

type CreateProdutorPayload struct {
	Nome       string  `json:"nome" db:"nome" validate:"required,min=2,max=160"`
	CPFCNPJ    string  `json:"cpf_cnpj" db:"cpf_cnpj" validate:"required,cpf_cnpj"`
	Email      *string `json:"email" db:"email" validate:"omitempty,email"`
	Telefone   *string `json:"telefone" db:"telefone" validate:"omitempty,max=20"`
	CEP        *string `json:"cep" db:"cep" validate:"omitempty,cep"`
	Logradouro *string `json:"logradouro" db:"logradouro" validate:"omitempty,max=200"`
	Cidade     *string `json:"cidade" db:"cidade" validate:"omitempty,max=120"`
	UF         *string `json:"uf" db:"uf" validate:"omitempty,uf"`
}

func (p *CreateProdutorPayload) Validate() error {
	p.CPFCNPJ = brfmt.OnlyDigits(p.CPFCNPJ)
	normalizeDocs(p.CEP)
	normalizeUF(p.UF)
	return validation.Struct(p)
}

type UpdateProdutorPayload struct {
	Nome       *string `json:"nome" db:"nome" validate:"omitempty,min=2,max=160"`
	CPFCNPJ    *string `json:"cpf_cnpj" db:"cpf_cnpj" validate:"omitempty,cpf_cnpj"`
	Email      *string `json:"email" db:"email" validate:"omitempty,email"`
	Telefone   *string `json:"telefone" db:"telefone" validate:"omitempty,max=20"`
	CEP        *string `json:"cep" db:"cep" validate:"omitempty,cep"`
	Logradouro *string `json:"logradouro" db:"logradouro" validate:"omitempty,max=200"`
	Cidade     *string `json:"cidade" db:"cidade" validate:"omitempty,max=120"`
	UF         *string `json:"uf" db:"uf" validate:"omitempty,uf"`
}

func (p *UpdateProdutorPayload) Validate() error {
	normalizeDocs(p.CPFCNPJ, p.CEP)
	normalizeUF(p.UF)
	return validation.Struct(p)
}

// Inscricao is a state tax registration tying a producer to a farm. Stock is
// attributed to inscrições.
type Inscricao struct {
	Base
	ProdutorID        uuid.UUID `json:"produtor_id" db:"produtor_id"`
	GranjaID          uuid.UUID `json:"granja_id" db:"granja_id"`
	InscricaoEstadual string    `json:"inscricao_estadual" db:"inscricao_estadual"`
	Ativa             bool      `json:"ativa" db:"ativa"`

	ProdutorNome string `json:"produtor_nome" db:"produtor_nome"`
	GranjaNome   string `json:"granja_nome" db:"granja_nome"`
}

type CreateInscricaoPayload struct {
	ProdutorID        uuid.UUID `json:"produtor_id" db:"produtor_id" validate:"required"`
	GranjaID          uuid.UUID `json:"granja_id" db:"granja_id" validate:"required"`
	InscricaoEstadual string    `json:"inscricao_estadual" db:"inscricao_estadual" validate:"required,max=20"`
	Ativa             *bool     `json:"ativa" db:"ativa"`
}

func (p *CreateInscricaoPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateInscricaoPayload struct {
	ProdutorID        *uuid.UUID `json:"produtor_id" db:"produtor_id"`
	GranjaID          *uuid.UUID `json:"granja_id" db:"granja_id"`
	InscricaoEstadual *string    `json:"inscricao_estadual" db:"inscricao_estadual" validate:"omitempty,max=20"`
	Ativa             *bool      `json:"ativa" db:"ativa"`
}

func (p *UpdateInscricaoPayload) Validate() error {
	return validation.Struct(p)
}

// normalizeDocs strips masks from document fields before validation and storage.
func normalizeDocs(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = brfmt.OnlyDigits(*f)
		}
	}
}

func normalizeUF(uf *string) {
	if uf != nil {
		*uf = strings.ToUpper(strings.TrimSpace(*uf))
	}
}

func validatePeriod(inicio, fim *Date) error {
	if inicio == nil || fim == nil || fim.IsZero() {
		return nil
	}
	if fim.Before(inicio.Time) {
		return validation.CustomValidationErrors{{Field: "data_fim", Message: "must not be before data_inicio"}}
	}
	return nil
}
