package model

import "github.com/google/uuid"

// SaldoKey identifies a producer balance. Any nil part makes the key incomplete.
type SaldoKey struct {
	InscricaoID *uuid.UUID `query:"inscricao_id"`
	SafraID     *uuid.UUID `query:"safra_id"`
	ProdutoID   *uuid.UUID `query:"produto_id"`
}

// Complete reports whether all three parts are present.
func (k SaldoKey) Complete() bool {
	return k.InscricaoID != nil && k.SafraID != nil && k.ProdutoID != nil
}

// Saldo is the stock held by an inscrição for a season and product:
// what it harvested plus what it received minus what it sent.
type Saldo struct {
	Colhido  float64 `json:"colhido"`
	Recebido float64 `json:"recebido"`
	Enviado  float64 `json:"enviado"`
	Saldo    float64 `json:"saldo"`
}

// EstoqueSilo is the stored quantity of one silo.
type EstoqueSilo struct {
	SiloID     uuid.UUID `json:"silo_id"`
	SiloNome   string    `json:"silo_nome"`
	GranjaID   uuid.UUID `json:"granja_id"`
	GranjaNome string    `json:"granja_nome"`
	Capacidade float64   `json:"capacidade"`
	Estoque    float64   `json:"estoque"`
	Percentual float64   `json:"percentual"`
}

// ResumoPluviometrico is the rainfall of one month.
type ResumoPluviometrico struct {
	Ano        int     `json:"ano"`
	Mes        int     `json:"mes"`
	Milimetros float64 `json:"milimetros"`
	DiasChuva  int     `json:"dias_chuva"`
	Registros  int     `json:"registros"`
}
