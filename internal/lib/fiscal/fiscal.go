// Package fiscal exposes the static Brazilian tax-situation code tables
// (CST ICMS, CSOSN, CST PIS/COFINS and CST IBS/CBS).
package fiscal

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Table names.
const (
	CSTICMS      = "cst_icms"
	CSOSN        = "csosn"
	CSTPISCOFINS = "cst_pis_cofins"
	CSTIBSCBS    = "cst_ibs_cbs"
)

// Code is one entry of a table.
type Code struct {
	Codigo    string `yaml:"codigo" json:"codigo"`
	Descricao string `yaml:"descricao" json:"descricao"`
	Tributado bool   `yaml:"tributado" json:"tributado"`
}

// Label renders "000 - Tributação integral".
func (c Code) Label() string {
	return c.Codigo + " - " + c.Descricao
}

// Table is a named list of codes.
type Table struct {
	Nome    string `yaml:"nome" json:"nome"`
	Titulo  string `yaml:"titulo" json:"titulo"`
	Codigos []Code `yaml:"codigos" json:"codigos"`

	index map[string]Code
}

//go:embed tables.yaml
var tablesYAML []byte

var tables = mustLoad(tablesYAML)

func mustLoad(data []byte) map[string]*Table {
	loaded, err := load(data)
	if err != nil {
		panic(err)
	}
	return loaded
}

func load(data []byte) (map[string]*Table, error) {
	var list []*Table
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("fiscal: parse tables: %w", err)
	}

	out := make(map[string]*Table, len(list))
	for _, t := range list {
		t.index = make(map[string]Code, len(t.Codigos))
		for _, c := range t.Codigos {
			if _, dup := t.index[c.Codigo]; dup {
				return nil, fmt.Errorf("fiscal: duplicate code %s in %s", c.Codigo, t.Nome)
			}
			t.index[c.Codigo] = c
		}
		out[t.Nome] = t
	}
	return out, nil
}

// Names lists the available tables in a stable order.
func Names() []string {
	return []string{CSTICMS, CSOSN, CSTPISCOFINS, CSTIBSCBS}
}

// Tabela returns the table called name.
func Tabela(name string) (*Table, bool) {
	t, ok := tables[name]
	return t, ok
}

// Buscar looks a code up in the named table. Surrounding whitespace is ignored.
func Buscar(table, code string) (Code, bool) {
	t, ok := tables[table]
	if !ok {
		return Code{}, false
	}
	c, ok := t.index[strings.TrimSpace(code)]
	return c, ok
}

// TemTributacaoIBSCBS reports whether an IBS/CBS CST code describes a taxed
// operation. Exemption, immunity, deferral and suspension codes (400, 410,
// 510, 550) are not taxed; empty or unknown codes are not taxed either.
func TemTributacaoIBSCBS(code string) bool {
	c, ok := Buscar(CSTIBSCBS, code)
	return ok && c.Tributado
}

// ValidCode reports whether code exists in the named table.
func ValidCode(table, code string) bool {
	_, ok := Buscar(table, code)
	return ok
}
