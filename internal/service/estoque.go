package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// EstoqueFilter narrows silo stock to a farm and/or a season.
type EstoqueFilter struct {
	GranjaID *uuid.UUID `query:"granja_id"`
	SafraID  *uuid.UUID `query:"safra_id"`
}

func (f EstoqueFilter) fingerprint() string {
	var granja, safra string
	if f.GranjaID != nil {
		granja = f.GranjaID.String()
	}
	if f.SafraID != nil {
		safra = f.SafraID.String()
	}
	return fmt.Sprintf("granja=%s;safra=%s", granja, safra)
}

// EstoqueService sums harvested quantities per silo.
type EstoqueService struct {
	base
	silos     Lister[model.Silo]
	colheitas Summer
	ttl       time.Duration
}

func NewEstoqueService(silos Lister[model.Silo], colheitas Summer, c *cache.Cache, ttl time.Duration, logger *zerolog.Logger) *EstoqueService {
	return &EstoqueService{
		base:      base{cache: c, logger: logger},
		silos:     silos,
		colheitas: colheitas,
		ttl:       ttl,
	}
}

// Percentual is the share of capacidade filled by estoque, within [0, 100].
// A silo without capacity is always at 0.
func Percentual(estoque, capacidade float64) float64 {
	if capacidade <= 0 {
		return 0
	}
	p := estoque / capacidade * 100
	return math.Max(0, math.Min(100, p))
}

// PorSilo returns every silo matching f with its stored quantity, in silo order.
func (s *EstoqueService) PorSilo(ctx context.Context, tenantID string, f EstoqueFilter) ([]model.EstoqueSilo, error) {
	key := cache.Key(tenantID, GroupEstoque, f.fingerprint())
	items, err := cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]model.EstoqueSilo, error) {
		return s.load(ctx, tenantID, f)
	})
	if err != nil {
		return nil, s.fail(ctx, notify.EntityEstoque, notify.ActionLoad, err)
	}
	return items, nil
}

func (s *EstoqueService) load(ctx context.Context, tenantID string, f EstoqueFilter) ([]model.EstoqueSilo, error) {
	siloQuery := repository.NewQuery()
	colheitaQuery := repository.NewQuery()
	if f.GranjaID != nil {
		siloQuery = siloQuery.With("granja_id", *f.GranjaID)
		colheitaQuery = colheitaQuery.With("granja_id", *f.GranjaID)
	}
	if f.SafraID != nil {
		colheitaQuery = colheitaQuery.With("safra_id", *f.SafraID)
	}

	var (
		silos  []model.Silo
		totals map[uuid.UUID]decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		silos, err = s.silos.List(gctx, tenantID, siloQuery)
		return err
	})
	g.Go(func() (err error) {
		totals, err = s.colheitas.Sum(gctx, tenantID, colheitaQuery, "t.silo_id", "t.quantidade")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Estoques(silos, totals), nil
}

// Estoques pairs each silo with its harvested total. Totals of silos not in
// silos are ignored.
func Estoques(silos []model.Silo, totals map[uuid.UUID]decimal.Decimal) []model.EstoqueSilo {
	out := make([]model.EstoqueSilo, 0, len(silos))
	for _, silo := range silos {
		estoque := totals[silo.ID].InexactFloat64()
		out = append(out, model.EstoqueSilo{
			SiloID:     silo.ID,
			SiloNome:   silo.Nome,
			GranjaID:   silo.GranjaID,
			GranjaNome: silo.GranjaNome,
			Capacidade: silo.Capacidade,
			Estoque:    estoque,
			Percentual: Percentual(estoque, silo.Capacidade),
		})
	}
	return out
}
