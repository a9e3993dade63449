package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/agro-backend/internal/model"
	"github.com/deppfellow/agro-backend/internal/notify"
	"github.com/deppfellow/agro-backend/internal/repository"
	"github.com/deppfellow/agro-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var granjaID = uuid.MustParse("7b0f3c1e-2a54-4c8e-9d61-0f1a2b3c4d5e")

func buildSilo(payload any) model.Silo {
	silo := model.Silo{Base: model.Base{ID: uuid.New(), TenantID: testTenant}}
	switch p := payload.(type) {
	case *model.CreateSiloPayload:
		silo.GranjaID = p.GranjaID
		silo.Nome = p.Nome
		if p.Capacidade != nil {
			silo.Capacidade = p.Capacidade.Float64()
		}
	case *model.UpdateSiloPayload:
		if p.Nome != nil {
			silo.Nome = *p.Nome
		}
	}
	return silo
}

func newSiloRouter(t *testing.T, items ...model.Silo) (*echo.Echo, *memStore[model.Silo]) {
	t.Helper()

	s := newTestServer()
	store := &memStore[model.Silo]{spec: repository.SilosSpec, items: items, build: buildSilo}
	resource := service.NewResource[model.Silo](store, notify.EntitySilo, nil, time.Minute, s.Logger)

	h := NewResourceHandler(s, resource,
		factory[model.CreateSiloPayload](), factory[model.UpdateSiloPayload]())

	e := newTestEcho(s)
	h.Register(e.Group("/silos"))
	return e, store
}

func TestResourceHandlerList(t *testing.T) {
	e, store := newSiloRouter(t, model.Silo{Nome: "Silo 1", GranjaID: granjaID})

	rec := do(e, http.MethodGet, "/silos?granja_id="+granjaID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[service.Result[[]model.Silo]](t, rec)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Silo 1", body.Data[0].Nome)
	assert.Nil(t, body.Notification)
	assert.Equal(t, []string{testTenant}, store.tenant)
}

func TestResourceHandlerListRejectsBadFilter(t *testing.T) {
	e, store := newSiloRouter(t)

	rec := do(e, http.MethodGet, "/silos?granja_id=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, "Erro ao carregar silo: Parâmetro inválido: granja_id", body.Notification.Message)
	assert.Empty(t, store.tenant)
}

func TestResourceHandlerCreate(t *testing.T) {
	e, _ := newSiloRouter(t)

	rec := do(e, http.MethodPost, "/silos", `{"granja_id":"`+granjaID.String()+`","nome":"Silo Norte","capacidade":"1.500,5"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decode[service.Result[*model.Silo]](t, rec)
	require.NotNil(t, body.Data)
	assert.Equal(t, "Silo Norte", body.Data.Nome)
	assert.InDelta(t, 1500.5, body.Data.Capacidade, 1e-9)
	require.NotNil(t, body.Notification)
	assert.Equal(t, "Silo criado com sucesso", body.Notification.Message)
}

func TestResourceHandlerCreateValidates(t *testing.T) {
	e, store := newSiloRouter(t)

	rec := do(e, http.MethodPost, "/silos", `{"granja_id":"`+granjaID.String()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.items)

	rec = do(e, http.MethodPost, "/silos", `{"nome":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResourceHandlerUpdate(t *testing.T) {
	e, _ := newSiloRouter(t, model.Silo{Nome: "Silo 1"})
	id := uuid.NewString()

	rec := do(e, http.MethodPut, "/silos/"+id, `{"nome":"Silo Sul"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Silo Sul", decode[service.Result[*model.Silo]](t, rec).Data.Nome)

	rec = do(e, http.MethodPut, "/silos/"+id, `{}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "NO_CHANGES", body.Code)
}

func TestResourceHandlerPathID(t *testing.T) {
	e, _ := newSiloRouter(t, model.Silo{Nome: "Silo 1"})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		rec := do(e, method, "/silos/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, method)
	}
}

func TestResourceHandlerDelete(t *testing.T) {
	e, _ := newSiloRouter(t)

	rec := do(e, http.MethodDelete, "/silos/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeError(t, rec)
	require.NotNil(t, body.Notification)
	assert.Equal(t, notify.KindError, body.Notification.Kind)

	e, _ = newSiloRouter(t, model.Silo{Nome: "Silo 1"})
	id := uuid.New()

	rec = do(e, http.MethodDelete, "/silos/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	deleted := decode[service.Result[uuid.UUID]](t, rec)
	assert.Equal(t, id, deleted.Data)
	assert.Equal(t, "Silo excluído com sucesso", deleted.Notification.Message)
}
