package repository

import (
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Tenants *TenantRepository

	Granjas        *Table[model.Granja]
	Lavouras       *Table[model.Lavoura]
	Culturas       *Table[model.Cultura]
	Produtos       *Table[model.Produto]
	Safras         *Table[model.Safra]
	Silos          *Table[model.Silo]
	AnalisesSolo   *Table[model.AnaliseSolo]
	Pluviometria   *Table[model.Pluviometria]
	Produtores     *Table[model.Produtor]
	Inscricoes     *Table[model.Inscricao]
	Colheitas      *Table[model.Colheita]
	Transferencias *Table[model.Transferencia]
	NotasFiscais   *Table[model.NotaFiscal]
}

// NewRepositories constructs the repository container on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool)
}

func newRepositories(db Querier) *Repositories {
	return &Repositories{
		Tenants: NewTenantRepository(db),

		Granjas:        NewTable[model.Granja](db, GranjasSpec),
		Lavouras:       NewTable[model.Lavoura](db, LavourasSpec),
		Culturas:       NewTable[model.Cultura](db, CulturasSpec),
		Produtos:       NewTable[model.Produto](db, ProdutosSpec),
		Safras:         NewTable[model.Safra](db, SafrasSpec),
		Silos:          NewTable[model.Silo](db, SilosSpec),
		AnalisesSolo:   NewTable[model.AnaliseSolo](db, AnalisesSoloSpec),
		Pluviometria:   NewTable[model.Pluviometria](db, PluviometriaSpec),
		Produtores:     NewTable[model.Produtor](db, ProdutoresSpec),
		Inscricoes:     NewTable[model.Inscricao](db, InscricoesSpec),
		Colheitas:      NewTable[model.Colheita](db, ColheitasSpec),
		Transferencias: NewTable[model.Transferencia](db, TransferenciasSpec),
		NotasFiscais:   NewTable[model.NotaFiscal](db, NotasFiscaisSpec),
	}
}
