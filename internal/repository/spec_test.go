package repository

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/agro-backend/internal/lib/brfmt"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	granja := uuid.New()

	q, err := PluviometriaSpec.ParseQuery(url.Values{
		"granja_id": {granja.String()},
		"de":        {"01/01/2025"},
		"ate":       {"2025-12-31"},
		"ignored":   {"x"},
		"limit":     {"10"},
	})
	require.NoError(t, err)

	assert.Equal(t, granja, q.Where["granja_id"])
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), q.Where["de"])
	assert.NotContains(t, q.Where, "ignored")
	assert.Equal(t, 10, q.Limit)

	_, err = PluviometriaSpec.ParseQuery(url.Values{"granja_id": {"nope"}})
	var fe *FilterError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "granja_id", fe.Param)

	_, err = InscricoesSpec.ParseQuery(url.Values{"limit": {"-1"}})
	assert.Error(t, err)
}

func TestMissingRequiredFilter(t *testing.T) {
	assert.Equal(t, []string{"lavoura_id"}, AnalisesSoloSpec.Missing(NewQuery()))
	assert.Empty(t, AnalisesSoloSpec.Missing(NewQuery().With("lavoura_id", uuid.New())))
	assert.Empty(t, LavourasSpec.Missing(NewQuery()))
}

func TestSelectSQL(t *testing.T) {
	granja := uuid.New()
	q := NewQuery().With("granja_id", granja).With("busca", "norte")

	sql, args := LavourasSpec.SelectSQL("org_1", q)

	assert.Equal(t,
		`SELECT t.id, t.tenant_id, t.created_at, t.updated_at, t.granja_id, t.cultura_id, t.nome, t.area, t.observacoes, g.nome AS granja_nome, c.nome AS cultura_nome`+
			` FROM "lavouras" t JOIN granjas g ON g.tenant_id = t.tenant_id AND g.id = t.granja_id`+
			` LEFT JOIN culturas c ON c.tenant_id = t.tenant_id AND c.id = t.cultura_id`+
			` WHERE t.tenant_id = $1 AND t.granja_id = $2 AND t.nome ILIKE $3 ESCAPE '\' ORDER BY t.nome LIMIT 1000`,
		sql)
	assert.Equal(t, []any{"org_1", granja, "%norte%"}, args)
}

func TestSearchEscapesWildcards(t *testing.T) {
	tests := []struct {
		busca string
		want  string
	}{
		{"norte", "%norte%"},
		{"50%", `%50\%%`},
		{"lote_1", `%lote\_1%`},
		{`a\b`, `%a\\b%`},
	}

	for _, tt := range tests {
		t.Run(tt.busca, func(t *testing.T) {
			sql, args := GranjasSpec.SelectSQL("org", NewQuery().With("busca", tt.busca))
			assert.Contains(t, sql, `t.nome ILIKE $2 ESCAPE '\'`)
			assert.Equal(t, []any{"org", tt.want}, args)
		})
	}
}

func TestSumSQL(t *testing.T) {
	granja, safra := uuid.New(), uuid.New()
	q := NewQuery().With("granja_id", granja).With("safra_id", safra)
	q.Limit = 10

	sql, args := ColheitasSpec.SumSQL("org", q, "t.silo_id", "t.quantidade")

	assert.True(t, strings.HasPrefix(sql,
		`SELECT t.silo_id AS chave, COALESCE(SUM(t.quantidade), 0)::text AS total FROM "colheitas" t JOIN safras s`), sql)
	assert.Contains(t, sql, " WHERE t.tenant_id = $1 AND t.safra_id = $2 AND si.granja_id = $3 GROUP BY t.silo_id")
	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "ORDER BY")
	assert.Equal(t, []any{"org", safra, granja}, args)
}

func TestJoinsStayWithinTenant(t *testing.T) {
	specs := []*TableSpec{
		GranjasSpec, CulturasSpec, LavourasSpec, ProdutosSpec, SafrasSpec, SilosSpec, AnalisesSoloSpec,
		PluviometriaSpec, ProdutoresSpec, InscricoesSpec, ColheitasSpec, TransferenciasSpec, NotasFiscaisSpec,
	}

	for _, spec := range specs {
		for _, j := range spec.Joins {
			fields := strings.Fields(strings.TrimPrefix(j, "LEFT "))
			require.GreaterOrEqual(t, len(fields), 4, j)
			alias := fields[2]
			assert.Contains(t, j, alias+".tenant_id = t.tenant_id", "%s: %s", spec.Name, j)
		}
	}
}

func TestSelectSQLLimit(t *testing.T) {
	sql, _ := GranjasSpec.SelectSQL("org", Query{Limit: 5})
	assert.Contains(t, sql, "LIMIT 5")

	sql, _ = GranjasSpec.SelectSQL("org", Query{Limit: 50000})
	assert.Contains(t, sql, "LIMIT 1000")

	sql, _ = PluviometriaSpec.SelectSQL("org", Query{})
	assert.Contains(t, sql, "LIMIT 5000")
}

func TestMutationSQL(t *testing.T) {
	id := uuid.New()

	sql, args := SilosSpec.InsertSQL("org", []string{"granja_id", "nome"}, []any{id, "Silo 1"})
	assert.Equal(t,
		`WITH t AS (INSERT INTO "silos" (tenant_id, "granja_id", "nome") VALUES ($1, $2, $3) RETURNING *)`+
			` SELECT t.id, t.tenant_id, t.created_at, t.updated_at, t.granja_id, t.nome, t.tipo, t.capacidade, g.nome AS granja_nome`+
			` FROM t JOIN granjas g ON g.tenant_id = t.tenant_id AND g.id = t.granja_id`,
		sql)
	assert.Equal(t, []any{"org", id, "Silo 1"}, args)

	sql, args = SilosSpec.UpdateSQL("org", id, []string{"capacidade"}, []any{1500.0})
	assert.Contains(t, sql, `WITH t AS (UPDATE "silos" SET "capacidade" = $3 WHERE tenant_id = $1 AND id = $2 RETURNING *)`)
	assert.Equal(t, []any{"org", id, 1500.0}, args)

	sql, args = SilosSpec.DeleteSQL("org", id)
	assert.Equal(t, `DELETE FROM "silos" WHERE tenant_id = $1 AND id = $2`, sql)
	assert.Equal(t, []any{"org", id}, args)

	sql, _ = SilosSpec.GetSQL("org", id)
	assert.Contains(t, sql, "WHERE t.tenant_id = $1 AND t.id = $2")
}

func TestColumns(t *testing.T) {
	nome := "Silo Norte"
	capacidade := brfmt.Quantity(1200)

	cols, vals, err := Columns(&model.UpdateSiloPayload{Nome: &nome, Capacidade: &capacidade})
	require.NoError(t, err)
	assert.Equal(t, []string{"nome", "capacidade"}, cols)
	assert.Equal(t, []any{&nome, &capacidade}, vals)

	cols, _, err = Columns(&model.UpdateSiloPayload{})
	require.NoError(t, err)
	assert.Empty(t, cols)

	ph := brfmt.Quantity(6.1)
	cols, _, err = Columns(&model.CreateAnaliseSoloPayload{
		LavouraID:         uuid.New(),
		DataColeta:        model.NewDate(time.Now()),
		AnaliseSoloValues: model.AnaliseSoloValues{PH: &ph},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lavoura_id", "data_coleta", "ph"}, cols)

	_, _, err = Columns("not a struct")
	assert.Error(t, err)

	var nilPayload *model.UpdateSiloPayload
	_, _, err = Columns(nilPayload)
	assert.Error(t, err)
}

func TestFingerprint(t *testing.T) {
	id := uuid.MustParse("7f1c2e10-8a4b-4f3e-9b7a-2d5e6f708192")

	a := NewQuery().With("safra_id", id).With("busca", "x")
	b := NewQuery().With("busca", "x").With("safra_id", id)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, "busca=x;safra_id=7f1c2e10-8a4b-4f3e-9b7a-2d5e6f708192;", a.Fingerprint())
	assert.Equal(t, "all", NewQuery().Fingerprint())
}

func TestUpsertTenantSQL(t *testing.T) {
	uf := "PR"
	sql, args, err := upsertTenantSQL("org_9", &model.UpsertTenantPayload{Nome: "Agro Sul", UF: &uf})
	require.NoError(t, err)

	assert.Contains(t, sql, `INSERT INTO tenants (id, "nome", "uf") VALUES ($1, $2, $3)`)
	assert.Contains(t, sql, `ON CONFLICT (id) DO UPDATE SET "nome" = EXCLUDED."nome", "uf" = EXCLUDED."uf"`)
	assert.Equal(t, []any{"org_9", "Agro Sul", &uf}, args)
}
