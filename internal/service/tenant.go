package service

import (
	"context"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/rs/zerolog"
)

const groupTenant = "tenant"

// TenantStore reads and writes the company profile.
type TenantStore interface {
	Get(ctx context.Context, tenantID string) (*model.Tenant, error)
	Upsert(ctx context.Context, tenantID string, payload *model.UpsertTenantPayload) (*model.Tenant, error)
}

// TenantService manages the profile of the contracting company.
type TenantService struct {
	base
	store TenantStore
	ttl   time.Duration
}

func NewTenantService(store TenantStore, c *cache.Cache, ttl time.Duration, logger *zerolog.Logger) *TenantService {
	return &TenantService{
		base:  base{cache: c, logger: logger},
		store: store,
		ttl:   ttl,
	}
}

func (s *TenantService) Get(ctx context.Context, tenantID string) (*model.Tenant, error) {
	tenant, err := cache.Remember(ctx, s.cache, cache.Key(tenantID, groupTenant, "profile"), s.ttl,
		func(ctx context.Context) (*model.Tenant, error) {
			return s.store.Get(ctx, tenantID)
		})
	if err != nil {
		return nil, s.fail(ctx, notify.EntityTenant, notify.ActionLoad, err)
	}
	return tenant, nil
}

func (s *TenantService) Upsert(ctx context.Context, tenantID string, payload *model.UpsertTenantPayload) (*Result[*model.Tenant], error) {
	tenant, err := s.store.Upsert(ctx, tenantID, payload)
	if err != nil {
		return nil, s.fail(ctx, notify.EntityTenant, notify.ActionUpdate, err)
	}

	s.invalidate(ctx, tenantID, groupTenant)
	return &Result[*model.Tenant]{
		Data:         tenant,
		Notification: notify.Success(notify.LanguageFrom(ctx), notify.EntityTenant, notify.ActionUpdate),
	}, nil
}
