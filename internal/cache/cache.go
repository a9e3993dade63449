// Package cache is the Redis read cache in front of tenant listings and
// derived values (balances, silo stock, lookups).
//
// Keys look like "agro:<tenant>:<group>:<fingerprint>". A mutation bumps the
// generation of every group it affects and drops the group's keys; a read
// that started under an older generation does not write its result back.
// Redis is optional: when it is down, reads go straight to the source and
// errors are only logged.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "agro"

// scanBatch is the COUNT hint used while scanning keys to invalidate.
const scanBatch = 200

// Cache wraps a Redis client. A nil *Cache is valid and caches nothing.
type Cache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zerolog.Logger
}

// New creates a cache whose entries expire after ttl unless a caller picks another TTL.
func New(client redis.UniversalClient, ttl time.Duration, logger *zerolog.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Key builds a cache key.
func Key(tenant, group, fingerprint string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, tenant, group, fingerprint)
}

func groupPattern(tenant, group string) string {
	return fmt.Sprintf("%s:%s:%s:*", keyPrefix, tenant, group)
}

// generationKey holds the invalidation counter of a group. It sits outside
// the group pattern so invalidation never deletes it.
func generationKey(tenant, group string) string {
	return fmt.Sprintf("%s-gen:%s:%s", keyPrefix, tenant, group)
}

// groupOf recovers the generation key of a key built by Key.
func groupOf(key string) (string, bool) {
	parts := strings.SplitN(key, ":", 4)
	if len(parts) != 4 || parts[0] != keyPrefix {
		return "", false
	}
	return generationKey(parts[1], parts[2]), true
}

// errStale aborts a write-back whose group was invalidated meanwhile.
var errStale = errors.New("cache: group invalidated during load")

// GetJSON decodes the value at key into dst. It reports false on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v at key. ttl <= 0 uses the cache default.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *Cache) generation(ctx context.Context, genKey string) (int64, error) {
	n, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// setAtGeneration stores v at key only while genKey still holds gen.
// It returns errStale otherwise.
func (c *Cache) setAtGeneration(ctx context.Context, key, genKey string, gen int64, v any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", key, err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStale
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, raw, ttl)
			return nil
		})
		return err
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return errStale
	}
	return err
}

// InvalidateGroups deletes every key of the given groups for tenant.
func (c *Cache) InvalidateGroups(ctx context.Context, tenant string, groups ...string) error {
	if c == nil {
		return nil
	}

	for _, group := range groups {
		if err := c.client.Incr(ctx, generationKey(tenant, group)).Err(); err != nil {
			return fmt.Errorf("cache: bump %s: %w", group, err)
		}

		iter := c.client.Scan(ctx, 0, groupPattern(tenant, group), scanBatch).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache: scan %s: %w", group, err)
		}

		if len(keys) == 0 {
			continue
		}
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache: delete %s: %w", group, err)
		}
	}
	return nil
}

// Ping reports whether Redis answers.
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil {
		return errors.New("cache: disabled")
	}
	return c.client.Ping(ctx).Err()
}

func (c *Cache) warn(err error, key, msg string) {
	if c.logger == nil {
		return
	}
	c.logger.Warn().Err(err).Str("key", key).Msg(msg)
}

// Remember returns the cached value at key, or calls load and caches its
// result. Cache failures never fail the read; load errors are returned as is
// and nothing is cached. A result is not cached when the key's group was
// invalidated while load ran.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return load(ctx)
	}

	genKey, grouped := groupOf(key)
	var gen int64
	if grouped {
		var err error
		if gen, err = c.generation(ctx, genKey); err != nil {
			c.warn(err, key, "cache generation read failed")
			return load(ctx)
		}
	}

	var cached T
	hit, err := c.GetJSON(ctx, key, &cached)
	if err != nil {
		c.warn(err, key, "cache read failed")
	}
	if hit {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if grouped {
		err = c.setAtGeneration(ctx, key, genKey, gen, value, ttl)
	} else {
		err = c.SetJSON(ctx, key, value, ttl)
	}
	switch {
	case errors.Is(err, errStale):
		if c.logger != nil {
			c.logger.Debug().Str("key", key).Msg("cache write skipped, group invalidated")
		}
	case err != nil:
		c.warn(err, key, "cache write failed")
	}
	return value, nil
}
