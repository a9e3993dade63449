package model

import (
	"time"

	"github.com/deppfellow/agro-backend/internal/validation"
)

// Tenant is the contracting company. Its ID is the Clerk organization id, so
// it has no separate tenant_id column.
type Tenant struct {
	ID                string    `json:"id" db:"id"`
	Nome              string    `json:"nome" db:"nome"`
	CNPJ              *string   `json:"cnpj" db:"cnpj"`
	InscricaoEstadual *string   `json:"inscricao_estadual" db:"inscricao_estadual"`
	Email             *string   `json:"email" db:"email"`
	Telefone          *string   `json:"telefone" db:"telefone"`
	CEP               *string   `json:"cep" db:"cep"`
	Logradouro        *string   `json:"logradouro" db:"logradouro"`
	Numero            *string   `json:"numero" db:"numero"`
	Bairro            *string   `json:"bairro" db:"bairro"`
	Cidade            *string   `json:"cidade" db:"cidade"`
	UF                *string   `json:"uf" db:"uf"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertTenantPayload replaces the company profile.
type UpsertTenantPayload struct {
	Nome              string  `json:"nome" db:"nome" validate:"required,min=2,max=160"`
	CNPJ              *string `json:"cnpj" db:"cnpj" validate:"omitempty,cnpj"`
	InscricaoEstadual *string `json:"inscricao_estadual" db:"inscricao_estadual" validate:"omitempty,max=20"`
	Email             *string `json:"email" db:"email" validate:"omitempty,email"`
	Telefone          *string `json:"telefone" db:"telefone" validate:"omitempty,max=20"`
	CEP               *string `json:"cep" db:"cep" validate:"omitempty,cep"`
	Logradouro        *string `json:"logradouro" db:"logradouro" validate:"omitempty,max=200"`
	Numero            *string `json:"numero" db:"numero" validate:"omitempty,max=20"`
	Bairro            *string `json:"bairro" db:"bairro" validate:"omitempty,max=120"`
	Cidade            *string `json:"cidade" db:"cidade" validate:"omitempty,max=120"`
	UF                *string `json:"uf" db:"uf" validate:"omitempty,uf"`
}

func (p *UpsertTenantPayload) Validate() error {
	normalizeDocs(p.CNPJ, p.CEP)
	normalizeUF(p.UF)
	return validation.Struct(p)
}
