package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type upstreamStub struct {
	calls atomic.Int32
	srv   *httptest.Server
}

func newStub(t *testing.T, handler http.HandlerFunc) *upstreamStub {
	t.Helper()
	s := &upstreamStub{}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func testConfig(base string) *config.LookupConfig {
	return &config.LookupConfig{
		ViaCEPBaseURL:    base,
		BrasilAPIBaseURL: base,
		Timeout:          2 * time.Second,
		BreakerFailures:  2,
		BreakerOpenFor:   time.Minute,
		CacheTTL:         time.Hour,
	}
}

func newClients(t *testing.T, base string, c *cache.Cache) *Clients {
	t.Helper()
	logger := zerolog.Nop()
	clients := NewClients(testConfig(base), c, &logger)
	t.Cleanup(clients.Close)
	return clients
}

const viaCEPBody = `{
	"cep": "01310-100",
	"logradouro": "Avenida Paulista",
	"complemento": "de 612 a 1510 - lado par",
	"bairro": "Bela Vista",
	"localidade": "São Paulo",
	"uf": "SP",
	"ibge": "3550308",
	"ddd": "11"
}`

const brasilAPIBody = `{
	"cnpj": "11222333000181",
	"razao_social": "COOPERATIVA AGRO LTDA",
	"nome_fantasia": "COOPAGRO",
	"descricao_situacao_cadastral": "ATIVA",
	"municipio": "CASCAVEL",
	"uf": "PR",
	"cep": "85810000",
	"email": null
}`

func TestCEPLookup(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json/", r.URL.Path)
		_, _ = w.Write([]byte(viaCEPBody))
	})
	clients := newClients(t, stub.srv.URL, nil)

	endereco, err := clients.CEP.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	require.NotNil(t, endereco)
	assert.Equal(t, "01310-100", endereco.CEP)
	assert.Equal(t, "São Paulo", endereco.Localidade)
	assert.Equal(t, "SP", endereco.UF)
}

func TestCEPLookupShortInputSkipsNetwork(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected call")
	})
	clients := newClients(t, stub.srv.URL, nil)

	for _, in := range []string{"", "0131", "01310-10", "013101000"} {
		endereco, err := clients.CEP.Lookup(context.Background(), in)
		assert.NoError(t, err)
		assert.Nil(t, endereco)
	}
	assert.Zero(t, stub.calls.Load())
}

func TestCEPLookupNotFound(t *testing.T) {
	for name, body := range map[string]string{
		"bool":   `{"erro": true}`,
		"string": `{"erro": "true"}`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			clients := newClients(t, stub.srv.URL, nil)

			_, err := clients.CEP.Lookup(context.Background(), "99999999")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestCEPLookupRejectsUnexpectedShape(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cep": "01310-100"}`))
	})
	clients := newClients(t, stub.srv.URL, nil)

	_, err := clients.CEP.Lookup(context.Background(), "01310100")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCNPJLookup(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cnpj/v1/11222333000181", r.URL.Path)
		_, _ = w.Write([]byte(brasilAPIBody))
	})
	clients := newClients(t, stub.srv.URL, nil)

	empresa, err := clients.CNPJ.Lookup(context.Background(), "11.222.333/0001-81")
	require.NoError(t, err)
	require.NotNil(t, empresa)
	assert.Equal(t, "11.222.333/0001-81", empresa.CNPJ)
	assert.Equal(t, "COOPERATIVA AGRO LTDA", empresa.RazaoSocial)
	assert.Equal(t, "85810-000", empresa.CEP)
	assert.Nil(t, empresa.Email)
}

func TestCNPJLookupNotFound(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "CNPJ não encontrado"}`))
	})
	clients := newClients(t, stub.srv.URL, nil)

	empresa, err := clients.CNPJ.Lookup(context.Background(), "11222333000181")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, empresa)

	empresa, err = clients.CNPJ.Lookup(context.Background(), "1122233300018")
	assert.NoError(t, err)
	assert.Nil(t, empresa)
	assert.EqualValues(t, 1, stub.calls.Load())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	clients := newClients(t, stub.srv.URL, nil)
	ctx := context.Background()

	for range 2 {
		_, err := clients.CNPJ.Lookup(ctx, "11222333000181")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	_, err := clients.CNPJ.Lookup(ctx, "11222333000181")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.EqualValues(t, 2, stub.calls.Load())

	// The CEP breaker is independent.
	_, err = clients.CEP.Lookup(ctx, "01310100")
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestNotFoundDoesNotTripBreaker(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	clients := newClients(t, stub.srv.URL, nil)

	for range 4 {
		_, err := clients.CNPJ.Lookup(context.Background(), "11222333000181")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.EqualValues(t, 4, stub.calls.Load())
}

func TestSuccessfulLookupsAreCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	logger := zerolog.Nop()
	c := cache.New(rdb, time.Minute, &logger)

	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(viaCEPBody))
	})
	clients := newClients(t, stub.srv.URL, c)
	ctx := context.Background()

	first, err := clients.CEP.Lookup(ctx, "01310100")
	require.NoError(t, err)
	second, err := clients.CEP.Lookup(ctx, "01310-100")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, stub.calls.Load())
	assert.Equal(t, time.Hour, mr.TTL(cache.Key(cacheTenant, "lookup-viacep", "01310100")))
}

func TestCallerCancellationDoesNotTripBreaker(t *testing.T) {
	stub := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(brasilAPIBody))
	})
	clients := newClients(t, stub.srv.URL, nil)

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	for range 2 {
		_, err := clients.CNPJ.Lookup(canceled, "11222333000181")
		assert.ErrorIs(t, err, context.Canceled)
		_, err = clients.CNPJ.Lookup(expired, "11222333000181")
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	}

	empresa, err := clients.CNPJ.Lookup(context.Background(), "11222333000181")
	require.NoError(t, err)
	require.NotNil(t, empresa)
	assert.EqualValues(t, 1, stub.calls.Load())
}
