package model

import (
	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
)

// Colheita is a harvest entry: grain from a field stored in a silo and
// attributed to an inscrição for a season and product.
type Colheita struct {
	Base
	SafraID      uuid.UUID `json:"safra_id" db:"safra_id"`
	SiloID       uuid.UUID `json:"silo_id" db:"silo_id"`
	LavouraID    uuid.UUID `json:"lavoura_id" db:"lavoura_id"`
	InscricaoID  uuid.UUID `json:"inscricao_id" db:"inscricao_id"`
	ProdutoID    uuid.UUID `json:"produto_id" db:"produto_id"`
	Data         Date      `json:"data" db:"data"`
	Quantidade   float64   `json:"quantidade" db:"quantidade"`
	Umidade      *float64  `json:"umidade" db:"umidade"`
	Impureza     *float64  `json:"impureza" db:"impureza"`
	PlacaVeiculo *string   `json:"placa_veiculo" db:"placa_veiculo"`
	Observacoes  *string   `json:"observacoes" db:"observacoes"`

	SafraNome   string `json:"safra_nome" db:"safra_nome"`
	SiloNome    string `json:"silo_nome" db:"silo_nome"`
	LavouraNome string `json:"lavoura_nome" db:"lavoura_nome"`
	ProdutoNome string `json:"produto_nome" db:"produto_nome"`
}

type CreateColheitaPayload struct {
	SafraID      uuid.UUID       `json:"safra_id" db:"safra_id" validate:"required"`
	SiloID       uuid.UUID       `json:"silo_id" db:"silo_id" validate:"required"`
	LavouraID    uuid.UUID       `json:"lavoura_id" db:"lavoura_id" validate:"required"`
	InscricaoID  uuid.UUID       `json:"inscricao_id" db:"inscricao_id" validate:"required"`
	ProdutoID    uuid.UUID       `json:"produto_id" db:"produto_id" validate:"required"`
	Data         Date            `json:"data" db:"data" validate:"required"`
	Quantidade   brfmt.Quantity  `json:"quantidade" db:"quantidade" validate:"gt=0"`
	Umidade      *brfmt.Quantity `json:"umidade" db:"umidade" validate:"omitempty,gte=0,lte=100"`
	Impureza     *brfmt.Quantity `json:"impureza" db:"impureza" validate:"omitempty,gte=0,lte=100"`
	PlacaVeiculo *string         `json:"placa_veiculo" db:"placa_veiculo" validate:"omitempty,max=10"`
	Observacoes  *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *CreateColheitaPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateColheitaPayload struct {
	SafraID      *uuid.UUID      `json:"safra_id" db:"safra_id"`
	SiloID       *uuid.UUID      `json:"silo_id" db:"silo_id"`
	LavouraID    *uuid.UUID      `json:"lavoura_id" db:"lavoura_id"`
	InscricaoID  *uuid.UUID      `json:"inscricao_id" db:"inscricao_id"`
	ProdutoID    *uuid.UUID      `json:"produto_id" db:"produto_id"`
	Data         *Date           `json:"data" db:"data"`
	Quantidade   *brfmt.Quantity `json:"quantidade" db:"quantidade" validate:"omitempty,gt=0"`
	Umidade      *brfmt.Quantity `json:"umidade" db:"umidade" validate:"omitempty,gte=0,lte=100"`
	Impureza     *brfmt.Quantity `json:"impureza" db:"impureza" validate:"omitempty,gte=0,lte=100"`
	PlacaVeiculo *string         `json:"placa_veiculo" db:"placa_veiculo" validate:"omitempty,max=10"`
	Observacoes  *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *UpdateColheitaPayload) Validate() error {
	return validation.Struct(p)
}

// Transferencia moves stock of a product between two inscrições within a season.
type Transferencia struct {
	Base
	SafraID            uuid.UUID `json:"safra_id" db:"safra_id"`
	ProdutoID          uuid.UUID `json:"produto_id" db:"produto_id"`
	InscricaoOrigemID  uuid.UUID `json:"inscricao_origem_id" db:"inscricao_origem_id"`
	InscricaoDestinoID uuid.UUID `json:"inscricao_destino_id" db:"inscricao_destino_id"`
	Data               Date      `json:"data" db:"data"`
	Quantidade         float64   `json:"quantidade" db:"quantidade"`
	Observacoes        *string   `json:"observacoes" db:"observacoes"`

	ProdutoNome      string `json:"produto_nome" db:"produto_nome"`
	InscricaoOrigem  string `json:"inscricao_origem" db:"inscricao_origem"`
	InscricaoDestino string `json:"inscricao_destino" db:"inscricao_destino"`
}

type CreateTransferenciaPayload struct {
	SafraID            uuid.UUID      `json:"safra_id" db:"safra_id" validate:"required"`
	ProdutoID          uuid.UUID      `json:"produto_id" db:"produto_id" validate:"required"`
	InscricaoOrigemID  uuid.UUID      `json:"inscricao_origem_id" db:"inscricao_origem_id" validate:"required"`
	InscricaoDestinoID uuid.UUID      `json:"inscricao_destino_id" db:"inscricao_destino_id" validate:"required,nefield=InscricaoOrigemID"`
	Data               Date           `json:"data" db:"data" validate:"required"`
	Quantidade         brfmt.Quantity `json:"quantidade" db:"quantidade" validate:"gt=0"`
	Observacoes        *string        `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *CreateTransferenciaPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateTransferenciaPayload struct {
	Data        *Date           `json:"data" db:"data"`
	Quantidade  *brfmt.Quantity `json:"quantidade" db:"quantidade" validate:"omitempty,gt=0"`
	Observacoes *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *UpdateTransferenciaPayload) Validate() error {
	return validation.Struct(p)
}
