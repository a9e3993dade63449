// Package repository handles all interactions with the database.
//
// Every tenant-scoped table is served by the generic Table[T], configured by
// a TableSpec: table name, select list (joined display fields included),
// joins, filterable query parameters and natural ordering. Statements are
// always scoped by tenant. Rows are scanned by column name into T.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// ErrNoChanges is returned by Update when the payload sets no column.
var ErrNoChanges = errors.New("repository: nothing to update")

// Querier is the subset of pgxpool.Pool used by repositories. pgx.Tx satisfies it too.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Table is a tenant-scoped CRUD repository over one table.
type Table[T any] struct {
	spec *TableSpec
	db   Querier
}

// NewTable binds spec to db.
func NewTable[T any](db Querier, spec *TableSpec) *Table[T] {
	return &Table[T]{spec: spec, db: db}
}

// Spec returns the table definition.
func (t *Table[T]) Spec() *TableSpec {
	return t.spec
}

// notFound tags pgx.ErrNoRows with the table so sqlerr can name the entity.
func (t *Table[T]) notFound() error {
	return fmt.Errorf("table:%s: %w", t.spec.Name, pgx.ErrNoRows)
}

// List returns the rows matching q, ordered by the natural key.
func (t *Table[T]) List(ctx context.Context, tenantID string, q Query) ([]T, error) {
	sql, args := t.spec.SelectSQL(tenantID, q)

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Sum totals the value column per key column over every row matching q.
// Keys without rows are absent from the result.
func (t *Table[T]) Sum(ctx context.Context, tenantID string, q Query, key, value string) (map[uuid.UUID]decimal.Decimal, error) {
	sql, args := t.spec.SumSQL(tenantID, q, key, value)

	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]decimal.Decimal)
	var (
		chave uuid.UUID
		total string
	)
	_, err = pgx.ForEachRow(rows, []any{&chave, &total}, func() error {
		d, err := decimal.NewFromString(total)
		if err != nil {
			return fmt.Errorf("table:%s: sum of %s: %w", t.spec.Name, value, err)
		}
		totals[chave] = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// Get returns one row by id.
func (t *Table[T]) Get(ctx context.Context, tenantID string, id uuid.UUID) (*T, error) {
	sql, args := t.spec.GetSQL(tenantID, id)
	return t.one(ctx, sql, args)
}

// Create inserts payload and returns the stored row with its joined fields.
func (t *Table[T]) Create(ctx context.Context, tenantID string, payload any) (*T, error) {
	cols, vals, err := Columns(payload)
	if err != nil {
		return nil, err
	}

	sql, args := t.spec.InsertSQL(tenantID, cols, vals)
	return t.one(ctx, sql, args)
}

// Update sets the non-nil payload fields on the row and returns it.
func (t *Table[T]) Update(ctx context.Context, tenantID string, id uuid.UUID, payload any) (*T, error) {
	cols, vals, err := Columns(payload)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, ErrNoChanges
	}

	sql, args := t.spec.UpdateSQL(tenantID, id, cols, vals)
	return t.one(ctx, sql, args)
}

// Delete removes the row.
func (t *Table[T]) Delete(ctx context.Context, tenantID string, id uuid.UUID) error {
	sql, args := t.spec.DeleteSQL(tenantID, id)

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return t.notFound()
	}
	return nil
}

func (t *Table[T]) one(ctx context.Context, sql string, args []any) (*T, error) {
	rows, err := t.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByNameLax[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, t.notFound()
		}
		return nil, err
	}
	return item, nil
}
