package repository

import "fmt"

// Table names double as cache group names.
const (
	TableGranjas        = "granjas"
	TableLavouras       = "lavouras"
	TableCulturas       = "culturas"
	TableProdutos       = "produtos"
	TableSafras         = "safras"
	TableSilos          = "silos"
	TableAnalisesSolo   = "analises_solo"
	TablePluviometria   = "pluviometria"
	TableProdutores     = "produtores"
	TableInscricoes     = "inscricoes"
	TableColheitas      = "colheitas"
	TableTransferencias = "transferencias"
	TableNotasFiscais   = "notas_fiscais"
)

func baseColumns(cols ...string) []string {
	return append([]string{"t.id", "t.tenant_id", "t.created_at", "t.updated_at"}, cols...)
}

func search(column string) Filter {
	return Filter{Param: "busca", Column: column, Op: OpILike}
}

func byID(param, column string) Filter {
	return Filter{Param: param, Column: column, Kind: KindUUID}
}

// join matches the referenced row within the same tenant.
func join(table, alias, fk string) string {
	return fmt.Sprintf("JOIN %s %s ON %s.tenant_id = t.tenant_id AND %s.id = %s", table, alias, alias, alias, fk)
}

func leftJoin(table, alias, fk string) string {
	return "LEFT " + join(table, alias, fk)
}

func dateRange(column string) []Filter {
	return []Filter{
		{Param: "de", Column: column, Op: OpGte, Kind: KindDate},
		{Param: "ate", Column: column, Op: OpLte, Kind: KindDate},
	}
}

var GranjasSpec = &TableSpec{
	Name:    TableGranjas,
	Columns: baseColumns("t.nome", "t.cnpj", "t.area_total", "t.cep", "t.logradouro", "t.cidade", "t.uf"),
	Filters: []Filter{search("t.nome")},
	OrderBy: "t.nome",
}

var CulturasSpec = &TableSpec{
	Name:    TableCulturas,
	Columns: baseColumns("t.nome", "t.variedade", "t.ciclo_dias"),
	Filters: []Filter{search("t.nome")},
	OrderBy: "t.nome",
}

var LavourasSpec = &TableSpec{
	Name: TableLavouras,
	Columns: baseColumns("t.granja_id", "t.cultura_id", "t.nome", "t.area", "t.observacoes",
		"g.nome AS granja_nome", "c.nome AS cultura_nome"),
	Joins: []string{
		join(TableGranjas, "g", "t.granja_id"),
		leftJoin(TableCulturas, "c", "t.cultura_id"),
	},
	Filters: []Filter{byID("granja_id", "t.granja_id"), byID("cultura_id", "t.cultura_id"), search("t.nome")},
	OrderBy: "t.nome",
}

var ProdutosSpec = &TableSpec{
	Name:    TableProdutos,
	Columns: baseColumns("t.nome", "t.unidade", "t.ncm"),
	Filters: []Filter{search("t.nome")},
	OrderBy: "t.nome",
}

var SafrasSpec = &TableSpec{
	Name:    TableSafras,
	Columns: baseColumns("t.nome", "t.data_inicio", "t.data_fim"),
	Filters: []Filter{search("t.nome")},
	OrderBy: "t.data_inicio DESC",
}

var SilosSpec = &TableSpec{
	Name:    TableSilos,
	Columns: baseColumns("t.granja_id", "t.nome", "t.tipo", "t.capacidade", "g.nome AS granja_nome"),
	Joins:   []string{join(TableGranjas, "g", "t.granja_id")},
	Filters: []Filter{byID("granja_id", "t.granja_id")},
	OrderBy: "t.nome",
}

var AnalisesSoloSpec = &TableSpec{
	Name: TableAnalisesSolo,
	Columns: baseColumns("t.lavoura_id", "t.data_coleta", "t.laboratorio", "t.profundidade",
		"t.ph", "t.materia_organica", "t.fosforo", "t.potassio", "t.calcio", "t.magnesio",
		"t.aluminio", "t.ctc", "t.saturacao_bases", "t.observacoes", "l.nome AS lavoura_nome"),
	Joins: []string{join(TableLavouras, "l", "t.lavoura_id")},
	Filters: append([]Filter{
		{Param: "lavoura_id", Column: "t.lavoura_id", Kind: KindUUID, Required: true},
	}, dateRange("t.data_coleta")...),
	OrderBy: "t.data_coleta DESC",
}

var PluviometriaSpec = &TableSpec{
	Name:    TablePluviometria,
	Columns: baseColumns("t.granja_id", "t.data", "t.milimetros", "t.observacoes", "g.nome AS granja_nome"),
	Joins:   []string{join(TableGranjas, "g", "t.granja_id")},
	Filters: append([]Filter{
		{Param: "granja_id", Column: "t.granja_id", Kind: KindUUID, Required: true},
	}, dateRange("t.data")...),
	OrderBy: "t.data DESC",
	Limit:   5000,
}

var ProdutoresSpec = &TableSpec{
	Name:    TableProdutores,
	Columns: baseColumns("t.nome", "t.cpf_cnpj", "t.email", "t.telefone", "t.cep", "t.logradouro", "t.cidade", "t.uf"),
	Filters: []Filter{search("t.nome"), {Param: "cpf_cnpj", Column: "t.cpf_cnpj"}},
	OrderBy: "t.nome",
}

var InscricoesSpec = &TableSpec{
	Name: TableInscricoes,
	Columns: baseColumns("t.produtor_id", "t.granja_id", "t.inscricao_estadual", "t.ativa",
		"p.nome AS produtor_nome", "g.nome AS granja_nome"),
	Joins: []string{
		join(TableProdutores, "p", "t.produtor_id"),
		join(TableGranjas, "g", "t.granja_id"),
	},
	Filters: []Filter{
		byID("produtor_id", "t.produtor_id"),
		byID("granja_id", "t.granja_id"),
		{Param: "ativa", Column: "t.ativa", Kind: KindBool},
	},
	OrderBy: "t.inscricao_estadual",
}

var ColheitasSpec = &TableSpec{
	Name: TableColheitas,
	Columns: baseColumns("t.safra_id", "t.silo_id", "t.lavoura_id", "t.inscricao_id", "t.produto_id",
		"t.data", "t.quantidade", "t.umidade", "t.impureza", "t.placa_veiculo", "t.observacoes",
		"s.nome AS safra_nome", "si.nome AS silo_nome", "l.nome AS lavoura_nome", "p.nome AS produto_nome"),
	Joins: []string{
		join(TableSafras, "s", "t.safra_id"),
		join(TableSilos, "si", "t.silo_id"),
		join(TableLavouras, "l", "t.lavoura_id"),
		join(TableProdutos, "p", "t.produto_id"),
	},
	Filters: append([]Filter{
		byID("safra_id", "t.safra_id"),
		byID("silo_id", "t.silo_id"),
		byID("lavoura_id", "t.lavoura_id"),
		byID("inscricao_id", "t.inscricao_id"),
		byID("produto_id", "t.produto_id"),
		byID("granja_id", "si.granja_id"),
	}, dateRange("t.data")...),
	OrderBy: "t.data DESC, t.created_at DESC",
	Limit:   10000,
}

var TransferenciasSpec = &TableSpec{
	Name: TableTransferencias,
	Columns: baseColumns("t.safra_id", "t.produto_id", "t.inscricao_origem_id", "t.inscricao_destino_id",
		"t.data", "t.quantidade", "t.observacoes", "p.nome AS produto_nome",
		"io.inscricao_estadual AS inscricao_origem", "idest.inscricao_estadual AS inscricao_destino"),
	Joins: []string{
		join(TableProdutos, "p", "t.produto_id"),
		join(TableInscricoes, "io", "t.inscricao_origem_id"),
		join(TableInscricoes, "idest", "t.inscricao_destino_id"),
	},
	Filters: append([]Filter{
		byID("safra_id", "t.safra_id"),
		byID("produto_id", "t.produto_id"),
		byID("inscricao_origem_id", "t.inscricao_origem_id"),
		byID("inscricao_destino_id", "t.inscricao_destino_id"),
	}, dateRange("t.data")...),
	OrderBy: "t.data DESC, t.created_at DESC",
	Limit:   10000,
}

var NotasFiscaisSpec = &TableSpec{
	Name: TableNotasFiscais,
	Columns: baseColumns("t.inscricao_id", "t.numero", "t.serie", "t.data_emissao", "t.cfop",
		"t.natureza_operacao", "t.destinatario_nome", "t.destinatario_documento", "t.valor_total",
		"t.cst_icms", "t.cst_pis_cofins", "t.cst_ibs_cbs", "t.chave_acesso", "t.observacoes"),
	Filters: append([]Filter{
		byID("inscricao_id", "t.inscricao_id"),
		{Param: "cst_ibs_cbs", Column: "t.cst_ibs_cbs"},
	}, dateRange("t.data_emissao")...),
	OrderBy: "t.data_emissao DESC, t.numero DESC",
}
