package service

import (
	"context"
	"sort"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PluviometriaService summarizes rainfall records.
type PluviometriaService struct {
	base
	registros Lister[model.Pluviometria]
	spec      *repository.TableSpec
	ttl       time.Duration
}

func NewPluviometriaService(registros Lister[model.Pluviometria], c *cache.Cache, ttl time.Duration, logger *zerolog.Logger) *PluviometriaService {
	return &PluviometriaService{
		base:      base{cache: c, logger: logger},
		registros: registros,
		spec:      repository.PluviometriaSpec,
		ttl:       ttl,
	}
}

// ResumoMensal totals the rainfall of q (granja_id required, de/ate optional)
// per month, oldest first. Without a farm it returns an empty summary.
func (s *PluviometriaService) ResumoMensal(ctx context.Context, tenantID string, q repository.Query) ([]model.ResumoPluviometrico, error) {
	if len(s.spec.Missing(q)) > 0 {
		return []model.ResumoPluviometrico{}, nil
	}

	// Stored with the listings so rainfall mutations drop it too.
	key := cache.Key(tenantID, s.spec.Name, "resumo:"+q.Fingerprint())
	resumo, err := cache.Remember(ctx, s.cache, key, s.ttl, func(ctx context.Context) ([]model.ResumoPluviometrico, error) {
		registros, err := s.registros.List(ctx, tenantID, q)
		if err != nil {
			return nil, err
		}
		return ResumirPorMes(registros), nil
	})
	if err != nil {
		return nil, s.fail(ctx, notify.EntityPluviometria, notify.ActionLoad, err)
	}
	return resumo, nil
}

// ResumirPorMes groups records by calendar month. A rainy day is a distinct
// date with more than zero millimetres.
func ResumirPorMes(registros []model.Pluviometria) []model.ResumoPluviometrico {
	type mes struct{ ano, mes int }

	totais := map[mes]decimal.Decimal{}
	dias := map[mes]map[string]bool{}
	contagem := map[mes]int{}

	for _, r := range registros {
		k := mes{r.Data.Year(), int(r.Data.Month())}
		totais[k] = totais[k].Add(decimal.NewFromFloat(r.Milimetros))
		contagem[k]++
		if r.Milimetros > 0 {
			if dias[k] == nil {
				dias[k] = map[string]bool{}
			}
			dias[k][r.Data.Format(time.DateOnly)] = true
		}
	}

	out := make([]model.ResumoPluviometrico, 0, len(totais))
	for k, total := range totais {
		out = append(out, model.ResumoPluviometrico{
			Ano:        k.ano,
			Mes:        k.mes,
			Milimetros: total.InexactFloat64(),
			DiasChuva:  len(dias[k]),
			Registros:  contagem[k],
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Ano != out[j].Ano {
			return out[i].Ano < out[j].Ano
		}
		return out[i].Mes < out[j].Mes
	})
	return out
}
