package service

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registro(y int, m time.Month, d int, mm float64) model.Pluviometria {
	return model.Pluviometria{Data: model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), Milimetros: mm}
}

func TestResumirPorMes(t *testing.T) {
	got := ResumirPorMes([]model.Pluviometria{
		registro(2025, time.February, 3, 12.5),
		registro(2025, time.January, 10, 20),
		registro(2025, time.January, 10, 5),
		registro(2025, time.January, 11, 0),
		registro(2024, time.December, 31, 1.2),
	})

	require.Len(t, got, 3)
	assert.Equal(t, model.ResumoPluviometrico{Ano: 2024, Mes: 12, Milimetros: 1.2, DiasChuva: 1, Registros: 1}, got[0])
	assert.Equal(t, model.ResumoPluviometrico{Ano: 2025, Mes: 1, Milimetros: 25, DiasChuva: 1, Registros: 3}, got[1])
	assert.Equal(t, model.ResumoPluviometrico{Ano: 2025, Mes: 2, Milimetros: 12.5, DiasChuva: 1, Registros: 1}, got[2])

	assert.Empty(t, ResumirPorMes(nil))
}

func TestResumoMensalRequiresGranja(t *testing.T) {
	store := newFakeStore(repository.PluviometriaSpec, registro(2025, time.March, 1, 10))
	c, _ := newTestCache(t)
	svc := NewPluviometriaService(store, c, time.Minute, testLogger())
	ctx := context.Background()

	resumo, err := svc.ResumoMensal(ctx, tenant, repository.NewQuery())
	require.NoError(t, err)
	assert.Empty(t, resumo)
	assert.Zero(t, store.listCalls())

	q := repository.NewQuery().With("granja_id", uuid.New())
	for range 2 {
		resumo, err = svc.ResumoMensal(ctx, tenant, q)
		require.NoError(t, err)
		require.Len(t, resumo, 1)
		assert.Equal(t, 3, resumo[0].Mes)
	}
	assert.Equal(t, 1, store.listCalls())
}
