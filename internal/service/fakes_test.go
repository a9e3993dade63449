package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// fakeStore is an in-memory Store. Create and Update return the stored item;
// err, when set, is returned by every call.
type fakeStore[T any] struct {
	mu      sync.Mutex
	spec    *repository.TableSpec
	items   []T
	created *T
	err     error

	lists   []repository.Query
	sums    []repository.Query
	listFn  func(q repository.Query) []T
	deletes int
}

func newFakeStore[T any](spec *repository.TableSpec, items ...T) *fakeStore[T] {
	return &fakeStore[T]{spec: spec, items: items}
}

func (f *fakeStore[T]) Spec() *repository.TableSpec { return f.spec }

func (f *fakeStore[T]) List(_ context.Context, _ string, q repository.Query) ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, q)
	if f.err != nil {
		return nil, f.err
	}
	rows := f.rows(q)
	if n := f.spec.RowLimit(q.Limit); len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (f *fakeStore[T]) rows(q repository.Query) []T {
	if f.listFn != nil {
		return f.listFn(q)
	}
	return f.items
}

// Sum totals the rows List would return before its row limit, matching key
// and value by db tag.
func (f *fakeStore[T]) Sum(_ context.Context, _ string, q repository.Query, key, value string) (map[uuid.UUID]decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sums = append(f.sums, q)
	if f.err != nil {
		return nil, f.err
	}
	return sumRows(f.rows(q), key, value)
}

func (f *fakeStore[T]) sumCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sums)
}

func sumRows[T any](rows []T, key, value string) (map[uuid.UUID]decimal.Decimal, error) {
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, row := range rows {
		cols, vals, err := repository.Columns(row)
		if err != nil {
			return nil, err
		}
		var (
			k uuid.UUID
			v float64
		)
		for i, c := range cols {
			switch "t." + c {
			case key:
				k = vals[i].(uuid.UUID)
			case value:
				v = vals[i].(float64)
			}
		}
		totals[k] = totals[k].Add(decimal.NewFromFloat(v))
	}
	return totals, nil
}

func (f *fakeStore[T]) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lists)
}

func (f *fakeStore[T]) Get(_ context.Context, _ string, _ uuid.UUID) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) == 0 {
		return nil, fmt.Errorf("table:%s: %w", f.spec.Name, pgx.ErrNoRows)
	}
	return &f.items[0], nil
}

func (f *fakeStore[T]) Create(_ context.Context, _ string, _ any) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeStore[T]) Update(_ context.Context, _ string, _ uuid.UUID, payload any) (*T, error) {
	if f.err != nil {
		return nil, f.err
	}
	cols, _, err := repository.Columns(payload)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, repository.ErrNoChanges
	}
	return f.created, nil
}

func (f *fakeStore[T]) Delete(_ context.Context, _ string, _ uuid.UUID) error {
	f.deletes++
	if f.err != nil {
		return f.err
	}
	if len(f.items) == 0 {
		return fmt.Errorf("table:%s: %w", f.spec.Name, pgx.ErrNoRows)
	}
	return nil
}

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.New(client, time.Minute, testLogger()), mr
}
