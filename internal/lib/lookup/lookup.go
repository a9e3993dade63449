// Package lookup resolves Brazilian postal codes (ViaCEP) and company tax
// IDs (BrasilAPI) over HTTP.
//
// Inputs of the wrong length never reach the network: the lookup returns a
// nil result and a nil error. Each upstream sits behind its own circuit
// breaker, successful answers are cached in Redis, and nothing is retried.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deppfellow/agro-backend/internal/cache"
	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

var (
	// ErrNotFound means the upstream answered but knows nothing about the input.
	ErrNotFound = errors.New("lookup: not found")

	// ErrInvalidResponse means the upstream answered with something unusable.
	ErrInvalidResponse = errors.New("lookup: invalid response")

	// ErrUnavailable means the circuit breaker is open.
	ErrUnavailable = errors.New("lookup: service unavailable")
)

// cacheTenant scopes lookup entries, which are shared across tenants.
const cacheTenant = "global"

// maxBody caps how much of an upstream response is read.
const maxBody = 1 << 20

// Clients groups both lookups.
type Clients struct {
	CEP  *CEPClient
	CNPJ *CNPJClient
}

// NewClients builds both lookup clients from config. c may be nil.
func NewClients(cfg *config.LookupConfig, c *cache.Cache, logger *zerolog.Logger) *Clients {
	return &Clients{
		CEP:  NewCEPClient(cfg, c, logger),
		CNPJ: NewCNPJClient(cfg, c, logger),
	}
}

// Close releases idle upstream connections.
func (c *Clients) Close() {
	c.CEP.upstream.close()
	c.CNPJ.upstream.close()
}

// errAbandoned wraps the caller's context error when it ends a request.
var errAbandoned = errors.New("lookup: request abandoned")

// upstream is a JSON GET endpoint behind a circuit breaker.
type upstream struct {
	name    string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	cache   *cache.Cache
	ttl     time.Duration
	logger  *zerolog.Logger
}

func newUpstream(name string, cfg *config.LookupConfig, c *cache.Cache, logger *zerolog.Logger) *upstream {
	u := &upstream{
		name:   name,
		http:   &http.Client{Timeout: cfg.Timeout, Transport: http.DefaultTransport.(*http.Transport).Clone()},
		cache:  c,
		ttl:    cfg.CacheTTL,
		logger: logger,
	}

	failures := cfg.BreakerFailures
	u.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    name,
		Timeout: cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// A definitive "not found" is a healthy upstream, and so is a
		// request the caller abandoned.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, errAbandoned)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("lookup circuit breaker changed state")
		},
	})
	return u
}

func (u *upstream) close() {
	u.http.CloseIdleConnections()
}

// fetch returns the cached value for id or performs the GET through the breaker.
func fetch[T any](ctx context.Context, u *upstream, id, url string, check func(*T) error) (*T, error) {
	key := cache.Key(cacheTenant, "lookup-"+u.name, id)

	return cache.Remember(ctx, u.cache, key, u.ttl, func(ctx context.Context) (*T, error) {
		res, err := u.breaker.Execute(func() (any, error) {
			out := new(T)
			if err := u.getJSON(ctx, url, out); err != nil {
				if ctx.Err() != nil {
					return nil, fmt.Errorf("%w: %w", errAbandoned, ctx.Err())
				}
				return nil, err
			}
			if err := check(out); err != nil {
				return nil, err
			}
			return out, nil
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, u.name)
		}
		if err != nil {
			return nil, err
		}
		return res.(*T), nil
	})
}

func (u *upstream) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := u.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", u.name, err)
	}
	defer res.Body.Close()

	body := io.LimitReader(res.Body, maxBody)

	switch {
	case res.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, body)
		return ErrNotFound
	case res.StatusCode < 200 || res.StatusCode >= 300:
		_, _ = io.Copy(io.Discard, body)
		return fmt.Errorf("%s: GET %s -> %s", u.name, url, res.Status)
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, u.name, err)
	}
	return nil
}
