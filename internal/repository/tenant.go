package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const tenantColumns = "id, nome, cnpj, inscricao_estadual, email, telefone, cep, logradouro, numero, bairro, cidade, uf, created_at, updated_at"

// TenantRepository stores the contracting company profile, one row per organization.
type TenantRepository struct {
	db Querier
}

func NewTenantRepository(db Querier) *TenantRepository {
	return &TenantRepository{db: db}
}

// Get returns the profile of tenantID.
func (r *TenantRepository) Get(ctx context.Context, tenantID string) (*model.Tenant, error) {
	rows, err := r.db.Query(ctx, "SELECT "+tenantColumns+" FROM tenants WHERE id = $1", tenantID)
	if err != nil {
		return nil, err
	}

	tenant, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Tenant])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("table:tenants: %w", pgx.ErrNoRows)
		}
		return nil, err
	}
	return tenant, nil
}

// Upsert creates the profile or overwrites the fields present in payload.
func (r *TenantRepository) Upsert(ctx context.Context, tenantID string, payload *model.UpsertTenantPayload) (*model.Tenant, error) {
	sql, args, err := upsertTenantSQL(tenantID, payload)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Tenant])
}

func upsertTenantSQL(tenantID string, payload *model.UpsertTenantPayload) (string, []any, error) {
	cols, vals, err := Columns(payload)
	if err != nil {
		return "", nil, err
	}

	names := []string{"id"}
	params := []string{"$1"}
	sets := make([]string, 0, len(cols))
	args := append([]any{tenantID}, vals...)

	for i, c := range cols {
		ident := pgx.Identifier{c}.Sanitize()
		names = append(names, ident)
		params = append(params, "$"+strconv.Itoa(i+2))
		sets = append(sets, ident+" = EXCLUDED."+ident)
	}

	sql := fmt.Sprintf("INSERT INTO tenants (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s RETURNING %s",
		strings.Join(names, ", "), strings.Join(params, ", "), strings.Join(sets, ", "), tenantColumns)
	return sql, args, nil
}
