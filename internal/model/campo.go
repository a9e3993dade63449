package model

import (
	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/validation"
	"github.com/google/uuid"
)

// Silo is a storage unit on a farm. Capacidade uses the same unit as
// harvest quantities.
type Silo struct {
	Base
	GranjaID   uuid.UUID `json:"granja_id" db:"granja_id"`
	Nome       string    `json:"nome" db:"nome"`
	Tipo       *string   `json:"tipo" db:"tipo"`
	Capacidade float64   `json:"capacidade" db:"capacidade"`

	GranjaNome string `json:"granja_nome" db:"granja_nome"`
}

type CreateSiloPayload struct {
	GranjaID   uuid.UUID       `json:"granja_id" db:"granja_id" validate:"required"`
	Nome       string          `json:"nome" db:"nome" validate:"required,min=1,max=120"`
	Tipo       *string         `json:"tipo" db:"tipo" validate:"omitempty,max=60"`
	Capacidade *brfmt.Quantity `json:"capacidade" db:"capacidade" validate:"omitempty,gte=0"`
}

func (p *CreateSiloPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateSiloPayload struct {
	GranjaID   *uuid.UUID      `json:"granja_id" db:"granja_id"`
	Nome       *string         `json:"nome" db:"nome" validate:"omitempty,min=1,max=120"`
	Tipo       *string         `json:"tipo" db:"tipo" validate:"omitempty,max=60"`
	Capacidade *brfmt.Quantity `json:"capacidade" db:"capacidade" validate:"omitempty,gte=0"`
}

func (p *UpdateSiloPayload) Validate() error {
	return validation.Struct(p)
}

// AnaliseSolo is a soil analysis of a field.
type AnaliseSolo struct {
	Base
	LavouraID       uuid.UUID `json:"lavoura_id" db:"lavoura_id"`
	DataColeta      Date      `json:"data_coleta" db:"data_coleta"`
	Laboratorio     *string   `json:"laboratorio" db:"laboratorio"`
	Profundidade    *string   `json:"profundidade" db:"profundidade"`
	PH              *float64  `json:"ph" db:"ph"`
	MateriaOrganica *float64  `json:"materia_organica" db:"materia_organica"`
	Fosforo         *float64  `json:"fosforo" db:"fosforo"`
	Potassio        *float64  `json:"potassio" db:"potassio"`
	Calcio          *float64  `json:"calcio" db:"calcio"`
	Magnesio        *float64  `json:"magnesio" db:"magnesio"`
	Aluminio        *float64  `json:"aluminio" db:"aluminio"`
	CTC             *float64  `json:"ctc" db:"ctc"`
	SaturacaoBases  *float64  `json:"saturacao_bases" db:"saturacao_bases"`
	Observacoes     *string   `json:"observacoes" db:"observacoes"`

	LavouraNome string `json:"lavoura_nome" db:"lavoura_nome"`
}

// AnaliseSoloValues groups the laboratory readings shared by create and update.
type AnaliseSoloValues struct {
	Laboratorio     *string         `json:"laboratorio" db:"laboratorio" validate:"omitempty,max=120"`
	Profundidade    *string         `json:"profundidade" db:"profundidade" validate:"omitempty,max=20"`
	PH              *brfmt.Quantity `json:"ph" db:"ph" validate:"omitempty,gte=0,lte=14"`
	MateriaOrganica *brfmt.Quantity `json:"materia_organica" db:"materia_organica" validate:"omitempty,gte=0"`
	Fosforo         *brfmt.Quantity `json:"fosforo" db:"fosforo" validate:"omitempty,gte=0"`
	Potassio        *brfmt.Quantity `json:"potassio" db:"potassio" validate:"omitempty,gte=0"`
	Calcio          *brfmt.Quantity `json:"calcio" db:"calcio" validate:"omitempty,gte=0"`
	Magnesio        *brfmt.Quantity `json:"magnesio" db:"magnesio" validate:"omitempty,gte=0"`
	Aluminio        *brfmt.Quantity `json:"aluminio" db:"aluminio" validate:"omitempty,gte=0"`
	CTC             *brfmt.Quantity `json:"ctc" db:"ctc" validate:"omitempty,gte=0"`
	SaturacaoBases  *brfmt.Quantity `json:"saturacao_bases" db:"saturacao_bases" validate:"omitempty,gte=0,lte=100"`
	Observacoes     *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=2000"`
}

type CreateAnaliseSoloPayload struct {
	LavouraID  uuid.UUID `json:"lavoura_id" db:"lavoura_id" validate:"required"`
	DataColeta Date      `json:"data_coleta" db:"data_coleta" validate:"required"`
	AnaliseSoloValues
}

func (p *CreateAnaliseSoloPayload) Validate() error {
	return validation.Struct(p)
}

type UpdateAnaliseSoloPayload struct {
	DataColeta *Date `json:"data_coleta" db:"data_coleta"`
	AnaliseSoloValues
}

func (p *UpdateAnaliseSoloPayload) Validate() error {
	return validation.Struct(p)
}

// Pluviometria is one rainfall reading for a farm on a given day.
type Pluviometria struct {
	Base
	GranjaID    uuid.UUID `json:"granja_id" db:"granja_id"`
	Data        Date      `json:"data" db:"data"`
	Milimetros  float64   `json:"milimetros" db:"milimetros"`
	Observacoes *string   `json:"observacoes" db:"observacoes"`

	GranjaNome string `json:"granja_nome" db:"granja_nome"`
}

type CreatePluviometriaPayload struct {
	GranjaID    uuid.UUID      `json:"granja_id" db:"granja_id" validate:"required"`
	Data        Date           `json:"data" db:"data" validate:"required"`
	Milimetros  brfmt.Quantity `json:"milimetros" db:"milimetros" validate:"gte=0,lte=1000"`
	Observacoes *string        `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *CreatePluviometriaPayload) Validate() error {
	return validation.Struct(p)
}

type UpdatePluviometriaPayload struct {
	Data        *Date           `json:"data" db:"data"`
	Milimetros  *brfmt.Quantity `json:"milimetros" db:"milimetros" validate:"omitempty,gte=0,lte=1000"`
	Observacoes *string         `json:"observacoes" db:"observacoes" validate:"omitempty,max=500"`
}

func (p *UpdatePluviometriaPayload) Validate() error {
	return validation.Struct(p)
}
