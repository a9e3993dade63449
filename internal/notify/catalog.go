package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Entities known to the catalog.
const (
	EntityTenant        Entity = "tenant"
	EntityGranja        Entity = "granja"
	EntityLavoura       Entity = "lavoura"
	EntityCultura       Entity = "cultura"
	EntityProduto       Entity = "produto"
	EntitySafra         Entity = "safra"
	EntitySilo          Entity = "silo"
	EntityAnaliseSolo   Entity = "analise_solo"
	EntityPluviometria  Entity = "pluviometria"
	EntityProdutor      Entity = "produtor"
	EntityInscricao     Entity = "inscricao"
	EntityColheita      Entity = "colheita"
	EntityTransferencia Entity = "transferencia"
	EntityNotaFiscal    Entity = "nota_fiscal"
	EntitySaldo         Entity = "saldo"
	EntityEstoque       Entity = "estoque"
	EntityCEP           Entity = "cep"
	EntityCNPJ          Entity = "cnpj"
	EntityRelatorio     Entity = "relatorio"
	EntityFiscal        Entity = "fiscal"
)

var feminine = map[Entity]bool{
	EntityTenant:        true,
	EntityGranja:        true,
	EntityLavoura:       true,
	EntityCultura:       true,
	EntitySafra:         true,
	EntityAnaliseSolo:   true,
	EntityInscricao:     true,
	EntityColheita:      true,
	EntityTransferencia: true,
	EntityNotaFiscal:    true,
	EntityFiscal:        true,
}

type entry struct {
	key string
	pt  string
	en  string
}

var entries = []entry{
	{"title.success", "Sucesso", "Success"},
	{"title.error", "Erro", "Error"},

	{"entity.tenant", "Empresa", "Company"},
	{"entity.granja", "Granja", "Farm"},
	{"entity.lavoura", "Lavoura", "Field"},
	{"entity.cultura", "Cultura", "Crop"},
	{"entity.produto", "Produto", "Product"},
	{"entity.safra", "Safra", "Season"},
	{"entity.silo", "Silo", "Silo"},
	{"entity.analise_solo", "Análise de solo", "Soil analysis"},
	{"entity.pluviometria", "Registro de chuva", "Rainfall record"},
	{"entity.produtor", "Produtor", "Producer"},
	{"entity.inscricao", "Inscrição", "Registration"},
	{"entity.colheita", "Colheita", "Harvest"},
	{"entity.transferencia", "Transferência", "Transfer"},
	{"entity.nota_fiscal", "Nota fiscal", "Invoice"},
	{"entity.saldo", "Saldo", "Balance"},
	{"entity.estoque", "Estoque", "Stock"},
	{"entity.cep", "CEP", "Postal code"},
	{"entity.cnpj", "CNPJ", "Company"},
	{"entity.relatorio", "Relatório", "Report"},
	{"entity.fiscal", "Tabela fiscal", "Tax table"},

	{"success.create.f", "%s criada com sucesso", "%s created successfully"},
	{"success.create.m", "%s criado com sucesso", "%s created successfully"},
	{"success.update.f", "%s atualizada com sucesso", "%s updated successfully"},
	{"success.update.m", "%s atualizado com sucesso", "%s updated successfully"},
	{"success.delete.f", "%s excluída com sucesso", "%s deleted successfully"},
	{"success.delete.m", "%s excluído com sucesso", "%s deleted successfully"},
	{"success.enqueue.f", "%s enviada para processamento", "%s queued for processing"},
	{"success.enqueue.m", "%s enviado para processamento", "%s queued for processing"},

	{"error.create", "Erro ao criar %s: %s", "Error creating %s: %s"},
	{"error.update", "Erro ao atualizar %s: %s", "Error updating %s: %s"},
	{"error.delete", "Erro ao excluir %s: %s", "Error deleting %s: %s"},
	{"error.load", "Erro ao carregar %s: %s", "Error loading %s: %s"},
	{"error.lookup", "Erro ao consultar %s: %s", "Error looking up %s: %s"},
	{"error.report", "Erro ao gerar %s: %s", "Error generating %s: %s"},
	{"error.enqueue", "Erro ao enviar %s: %s", "Error sending %s: %s"},
}

func init() {
	for _, e := range entries {
		_ = message.SetString(language.BrazilianPortuguese, e.key, e.pt)
		_ = message.SetString(language.English, e.key, e.en)
	}
}
