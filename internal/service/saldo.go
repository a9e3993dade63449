package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Cache groups of derived values. They have no table of their own and are
// dropped by the tables they are computed from.
const (
	GroupSaldo   = "saldo"
	GroupEstoque = "estoque"
)

// SaldoService computes producer balances.
type SaldoService struct {
	base
	colheitas      Summer
	transferencias Summer
	ttl            time.Duration
}

func NewSaldoService(colheitas, transferencias Summer, c *cache.Cache, ttl time.Duration, logger *zerolog.Logger) *SaldoService {
	return &SaldoService{
		base:           base{cache: c, logger: logger},
		colheitas:      colheitas,
		transferencias: transferencias,
		ttl:            ttl,
	}
}

// Compute returns harvested + received - sent for the inscrição, season and
// product in key. An incomplete key yields a zero balance without any read.
func (s *SaldoService) Compute(ctx context.Context, tenantID string, key model.SaldoKey) (*model.Saldo, error) {
	if !key.Complete() {
		return &model.Saldo{}, nil
	}

	fingerprint := fmt.Sprintf("%s:%s:%s", key.InscricaoID, key.SafraID, key.ProdutoID)
	saldo, err := cache.Remember(ctx, s.cache, cache.Key(tenantID, GroupSaldo, fingerprint), s.ttl,
		func(ctx context.Context) (*model.Saldo, error) {
			return s.load(ctx, tenantID, key)
		})
	if err != nil {
		return nil, s.fail(ctx, notify.EntitySaldo, notify.ActionLoad, err)
	}
	return saldo, nil
}

func (s *SaldoService) load(ctx context.Context, tenantID string, key model.SaldoKey) (*model.Saldo, error) {
	scope := repository.NewQuery().
		With("safra_id", *key.SafraID).
		With("produto_id", *key.ProdutoID)

	var colhido, recebido, enviado decimal.Decimal
	inscricao := *key.InscricaoID

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.colheitas.Sum(gctx, tenantID, scope.With("inscricao_id", inscricao), "t.inscricao_id", "t.quantidade")
		colhido = totals[inscricao]
		return err
	})

	g.Go(func() error {
		totals, err := s.transferencias.Sum(gctx, tenantID, scope.With("inscricao_destino_id", inscricao), "t.inscricao_destino_id", "t.quantidade")
		recebido = totals[inscricao]
		return err
	})

	g.Go(func() error {
		totals, err := s.transferencias.Sum(gctx, tenantID, scope.With("inscricao_origem_id", inscricao), "t.inscricao_origem_id", "t.quantidade")
		enviado = totals[inscricao]
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Saldo{
		Colhido:  colhido.InexactFloat64(),
		Recebido: recebido.InexactFloat64(),
		Enviado:  enviado.InexactFloat64(),
		Saldo:    colhido.Add(recebido).Sub(enviado).InexactFloat64(),
	}, nil
}
