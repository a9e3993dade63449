package report

import (
	"fmt"
	"strconv"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/shopspring/decimal"
)

// Kind names a report.
type Kind string

const (
	KindEstoqueSilos  Kind = "estoque-silos"
	KindSaldoProdutor Kind = "saldo-produtor"
	KindPluviometria  Kind = "pluviometria"
	KindNotasFiscais  Kind = "notas-fiscais"
)

// Kinds lists every report kind.
func Kinds() []Kind {
	return []Kind{KindEstoqueSilos, KindSaldoProdutor, KindPluviometria, KindNotasFiscais}
}

// ParseKind validates a report name.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Filename is the attachment name of a rendered report.
func (k Kind) Filename() string {
	return string(k) + ".pdf"
}

var meses = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// NomeMes returns the Portuguese name of month 1..12.
func NomeMes(m int) string {
	if m < 1 || m > 12 {
		return strconv.Itoa(m)
	}
	return meses[m-1]
}

func sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// EstoqueSilos renders the stored quantity of each silo.
func EstoqueSilos(h Header, itens []model.EstoqueSilo) ([]byte, error) {
	d := NewDocument(h, "Estoque por silo", "")

	if len(itens) == 0 {
		d.Empty("Nenhum silo cadastrado.")
		return d.Bytes()
	}

	d.Table(
		Column{Title: "Granja", Width: 48},
		Column{Title: "Silo", Width: 48},
		Column{Title: "Capacidade (kg)", Width: 32, Align: AlignRight},
		Column{Title: "Estoque (kg)", Width: 32, Align: AlignRight},
		Column{Title: "Ocupação", Width: 26, Align: AlignRight},
	)

	capacidades := make([]float64, 0, len(itens))
	estoques := make([]float64, 0, len(itens))
	for _, it := range itens {
		d.Row(
			it.GranjaNome,
			it.SiloNome,
			brfmt.FormatQuantity(it.Capacidade, 0),
			brfmt.FormatQuantity(it.Estoque, 0),
			brfmt.FormatQuantity(it.Percentual, 1)+"%",
		)
		capacidades = append(capacidades, it.Capacidade)
		estoques = append(estoques, it.Estoque)
	}

	d.TotalRow("Total", "", brfmt.FormatQuantity(sum(capacidades...), 0), brfmt.FormatQuantity(sum(estoques...), 0), "")
	return d.Bytes()
}

// SaldoInfo describes whose balance is being reported.
type SaldoInfo struct {
	Produtor  string
	Inscricao string
	Granja    string
	Safra     string
	Produto   string
	Saldo     model.Saldo
}

// SaldoProdutor renders one producer balance.
func SaldoProdutor(h Header, info SaldoInfo) ([]byte, error) {
	d := NewDocument(h, "Saldo do produtor", info.Safra)

	d.Section("Identificação")
	d.Field("Produtor", info.Produtor)
	d.Field("Inscrição estadual", info.Inscricao)
	d.Field("Granja", info.Granja)
	d.Field("Safra", info.Safra)
	d.Field("Produto", info.Produto)

	d.Section("Movimentação (kg)")
	d.Table(
		Column{Title: "Descrição", Width: 120},
		Column{Title: "Quantidade", Width: 66, Align: AlignRight},
	)
	d.Row("Colhido", brfmt.FormatQuantity(info.Saldo.Colhido, 2))
	d.Row("Recebido em transferências", brfmt.FormatQuantity(info.Saldo.Recebido, 2))
	d.Row("Enviado em transferências", brfmt.FormatQuantity(-info.Saldo.Enviado, 2))
	d.TotalRow("Saldo", brfmt.FormatQuantity(info.Saldo.Saldo, 2))

	return d.Bytes()
}

// Pluviometria renders monthly rainfall of a farm.
func Pluviometria(h Header, granja, periodo string, resumo []model.ResumoPluviometrico) ([]byte, error) {
	subtitle := "Granja " + granja
	if periodo != "" {
		subtitle += " - " + periodo
	}
	d := NewDocument(h, "Pluviometria mensal", subtitle)

	if len(resumo) == 0 {
		d.Empty("Nenhuma medição no período.")
		return d.Bytes()
	}

	d.Table(
		Column{Title: "Mês", Width: 70},
		Column{Title: "Precipitação (mm)", Width: 44, Align: AlignRight},
		Column{Title: "Dias de chuva", Width: 36, Align: AlignRight},
		Column{Title: "Medições", Width: 36, Align: AlignRight},
	)

	var dias, registros int
	mm := make([]float64, 0, len(resumo))
	for _, r := range resumo {
		d.Row(
			fmt.Sprintf("%s/%d", NomeMes(r.Mes), r.Ano),
			brfmt.FormatQuantity(r.Milimetros, 1),
			strconv.Itoa(r.DiasChuva),
			strconv.Itoa(r.Registros),
		)
		mm = append(mm, r.Milimetros)
		dias += r.DiasChuva
		registros += r.Registros
	}

	d.TotalRow("Total", brfmt.FormatQuantity(sum(mm...), 1), strconv.Itoa(dias), strconv.Itoa(registros))
	return d.Bytes()
}

// NotasFiscais renders a list of invoices.
func NotasFiscais(h Header, periodo string, notas []model.NotaFiscal) ([]byte, error) {
	d := NewDocument(h, "Notas fiscais emitidas", periodo)

	if len(notas) == 0 {
		d.Empty("Nenhuma nota fiscal no período.")
		return d.Bytes()
	}

	d.Table(
		Column{Title: "Número/Série", Width: 24},
		Column{Title: "Emissão", Width: 20, Align: AlignCenter},
		Column{Title: "CFOP", Width: 13, Align: AlignCenter},
		Column{Title: "Destinatário", Width: 62},
		Column{Title: "IBS/CBS", Width: 30, Align: AlignCenter},
		Column{Title: "Valor", Width: 37, Align: AlignRight},
	)

	valores := make([]float64, 0, len(notas))
	for _, n := range notas {
		d.Row(
			fmt.Sprintf("%d/%d", n.Numero, n.Serie),
			brfmt.FormatDate(n.DataEmissao.Time),
			n.CFOP,
			truncate(n.DestinatarioNome, 34),
			ibsCbsLabel(&n),
			brfmt.FormatCurrency(n.ValorTotal),
		)
		valores = append(valores, n.ValorTotal)
	}

	d.TotalRow(fmt.Sprintf("%d notas", len(notas)), "", "", "", "", brfmt.FormatCurrency(sum(valores...)))
	return d.Bytes()
}

func ibsCbsLabel(n *model.NotaFiscal) string {
	if n.CSTIBSCBS == nil {
		return "-"
	}
	if n.TributadaIBSCBS() {
		return *n.CSTIBSCBS + " tributada"
	}
	return *n.CSTIBSCBS + " não tributada"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
