package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/errs"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/deppfellow/agro-backend/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Result is the body of a mutation response: the affected record and the
// notification the client should display.
type Result[T any] struct {
	Data         T                    `json:"data"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// Lister reads filtered rows of a table.
type Lister[T any] interface {
	List(ctx context.Context, tenantID string, q repository.Query) ([]T, error)
}

// Summer totals a numeric column per key column over the rows matching q.
type Summer interface {
	Sum(ctx context.Context, tenantID string, q repository.Query, key, value string) (map[uuid.UUID]decimal.Decimal, error)
}

// ParseQuery converts params with spec, reporting conversion errors as 400s.
func ParseQuery(spec *repository.TableSpec, params url.Values) (repository.Query, error) {
	q, err := spec.ParseQuery(params)
	if err != nil {
		var filterErr *repository.FilterError
		if errors.As(err, &filterErr) {
			return q, errs.NewBadRequestError("Parâmetro inválido: "+filterErr.Param, true, nil,
				[]errs.FieldError{{Field: filterErr.Param, Error: filterErr.Error()}}, nil)
		}
		return q, err
	}
	return q, nil
}

// Getter reads one row of a table.
type Getter[T any] interface {
	Get(ctx context.Context, tenantID string, id uuid.UUID) (*T, error)
}

// Store is the table access a Resource needs. *repository.Table[T] satisfies it.
type Store[T any] interface {
	Lister[T]
	Getter[T]
	Spec() *repository.TableSpec
	Create(ctx context.Context, tenantID string, payload any) (*T, error)
	Update(ctx context.Context, tenantID string, id uuid.UUID, payload any) (*T, error)
	Delete(ctx context.Context, tenantID string, id uuid.UUID) error
}

// base carries what every service needs to cache, invalidate and fail.
type base struct {
	cache  *cache.Cache
	logger *zerolog.Logger
}

// fail converts err into an *errs.HTTPError carrying a localized failure
// notification for action on entity.
func (b *base) fail(ctx context.Context, entity notify.Entity, action notify.Action, err error) error {
	if errors.Is(err, repository.ErrNoChanges) {
		code := "NO_CHANGES"
		err = errs.NewBadRequestError("Nenhum campo informado para atualização", true, &code, nil, nil)
	}

	var httpErr *errs.HTTPError
	if !errors.As(sqlerr.HandleError(err), &httpErr) {
		httpErr = errs.NewInternalServerError()
	}

	if httpErr.Status >= http.StatusInternalServerError {
		b.logger.Error().Err(err).
			Str("entity", string(entity)).
			Str("action", string(action)).
			Msg("operation failed")
	}

	return httpErr.WithNotification(notify.Failure(notify.LanguageFrom(ctx), entity, action, httpErr.Message))
}

// invalidate drops the cached entries of groups. Failures are logged only:
// entries expire on their own.
func (b *base) invalidate(ctx context.Context, tenantID string, groups ...string) {
	if err := b.cache.InvalidateGroups(ctx, tenantID, groups...); err != nil {
		b.logger.Warn().Err(err).
			Str("tenant_id", tenantID).
			Strs("groups", groups).
			Msg("cache invalidation failed")
	}
}

// Resource serves one tenant-scoped table: cached, filtered listings and
// mutations that invalidate every cache group built from the table.
type Resource[T any] struct {
	base
	store  Store[T]
	entity notify.Entity
	ttl    time.Duration
	groups []string
}

// NewResource wraps store. dependents are the cache groups that read this
// table too (joined names, balances, stock) and are dropped with it.
func NewResource[T any](store Store[T], entity notify.Entity, c *cache.Cache, ttl time.Duration, logger *zerolog.Logger, dependents ...string) *Resource[T] {
	groups := append([]string{store.Spec().Name}, dependents...)
	return &Resource[T]{
		base:   base{cache: c, logger: logger},
		store:  store,
		entity: entity,
		ttl:    ttl,
		groups: groups,
	}
}

func (r *Resource[T]) Spec() *repository.TableSpec {
	return r.store.Spec()
}

func (r *Resource[T]) Entity() notify.Entity {
	return r.entity
}

// Groups lists the cache groups a mutation invalidates, own table first.
func (r *Resource[T]) Groups() []string {
	return r.groups
}

// List returns the rows matching q in natural order. A query lacking a
// required filter returns an empty list without touching the store.
func (r *Resource[T]) List(ctx context.Context, tenantID string, q repository.Query) ([]T, error) {
	spec := r.store.Spec()
	if len(spec.Missing(q)) > 0 {
		return []T{}, nil
	}

	key := cache.Key(tenantID, spec.Name, q.Fingerprint())
	items, err := cache.Remember(ctx, r.cache, key, r.ttl, func(ctx context.Context) ([]T, error) {
		return r.store.List(ctx, tenantID, q)
	})
	if err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionLoad, err)
	}
	return items, nil
}

// Find converts query parameters with the table's filters and lists the
// matching rows. Malformed parameters fail with a 400.
func (r *Resource[T]) Find(ctx context.Context, tenantID string, params url.Values) ([]T, error) {
	q, err := ParseQuery(r.store.Spec(), params)
	if err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionLoad, err)
	}
	return r.List(ctx, tenantID, q)
}

func (r *Resource[T]) Get(ctx context.Context, tenantID string, id uuid.UUID) (*T, error) {
	item, err := r.store.Get(ctx, tenantID, id)
	if err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionLoad, err)
	}
	return item, nil
}

func (r *Resource[T]) Create(ctx context.Context, tenantID string, payload any) (*Result[*T], error) {
	item, err := r.store.Create(ctx, tenantID, payload)
	if err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionCreate, err)
	}
	return r.succeed(ctx, tenantID, notify.ActionCreate, item), nil
}

func (r *Resource[T]) Update(ctx context.Context, tenantID string, id uuid.UUID, payload any) (*Result[*T], error) {
	item, err := r.store.Update(ctx, tenantID, id, payload)
	if err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionUpdate, err)
	}
	return r.succeed(ctx, tenantID, notify.ActionUpdate, item), nil
}

func (r *Resource[T]) Delete(ctx context.Context, tenantID string, id uuid.UUID) (*Result[uuid.UUID], error) {
	if err := r.store.Delete(ctx, tenantID, id); err != nil {
		return nil, r.fail(ctx, r.entity, notify.ActionDelete, err)
	}

	r.invalidate(ctx, tenantID, r.groups...)
	return &Result[uuid.UUID]{
		Data:         id,
		Notification: notify.Success(notify.LanguageFrom(ctx), r.entity, notify.ActionDelete),
	}, nil
}

func (r *Resource[T]) succeed(ctx context.Context, tenantID string, action notify.Action, item *T) *Result[*T] {
	r.invalidate(ctx, tenantID, r.groups...)
	return &Result[*T]{
		Data:         item,
		Notification: notify.Success(notify.LanguageFrom(ctx), r.entity, action),
	}
}
