package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"dareboard/internal/apiutil"
	"dareboard/internal/pagination"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Store is the slice of the redis client the page cache needs.
// *redis.Client satisfies it.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// NewClient opens a redis client and pings it.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// record keeps the envelope's shape exactly as fetched.
type record[T any] struct {
	Shape apiutil.Shape `json:"shape"`
	Items []T           `json:"items,omitempty"`
	Item  *T            `json:"item,omitempty"`
	Meta  *apiutil.Meta `json:"meta,omitempty"`
}

// Wrap returns a fetch function that serves pages from store when present
// and caches successful fetches for ttl. Cache failures are logged and
// bypassed; fetch errors are never cached.
func Wrap[T any](store Store, prefix string, ttl time.Duration, fetch pagination.FetchFunc[T]) pagination.FetchFunc[T] {
	return func(ctx context.Context, p pagination.Params) (apiutil.Envelope[T], error) {
		key := Key(prefix, p)

		raw, err := store.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var rec record[T]
			jerr := json.Unmarshal(raw, &rec)
			if jerr == nil {
				log.Debug().Str("key", key).Msg("page cache hit")
				return apiutil.Envelope[T]{Shape: rec.Shape, Items: rec.Items, Item: rec.Item, Meta: rec.Meta}, nil
			}
			log.Warn().Err(jerr).Str("key", key).Msg("discarding unreadable cache entry")
		case errors.Is(err, redis.Nil):
		default:
			log.Warn().Err(err).Str("key", key).Msg("page cache unavailable")
		}

		env, err := fetch(ctx, p)
		if err != nil {
			return env, err
		}

		b, err := json.Marshal(record[T]{Shape: env.Shape, Items: env.Items, Item: env.Item, Meta: env.Meta})
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not encode page for cache")
			return env, nil
		}
		if err := store.Set(ctx, key, b, ttl).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("could not write page cache")
		}
		return env, nil
	}
}

// Key builds a stable cache key from the request. Extras are escaped and
// sorted, and empty ones skipped, so only equivalent requests share an entry.
func Key(prefix string, p pagination.Params) string {
	key := fmt.Sprintf("%s:p=%d:l=%d", prefix, p.Page, p.Limit)

	q := url.Values{}
	for k, v := range p.Extra {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return key
	}
	return key + ":" + q.Encode()
}
