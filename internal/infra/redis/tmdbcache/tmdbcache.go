package infra_tmdb_cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-redis/redis"
	infra_tmdb "github.com/humanbelnik/flickswipe/internal/infra/tmdb"
)

const keyPrefix = "tmdb:"

type Cmdable interface {
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(key string) *redis.StringCmd
}

// Fetcher keeps raw TMDB responses in redis for ttl. A broken cache never
// fails a request, it only costs an upstream call.
type Fetcher struct {
	next   infra_tmdb.Fetcher
	client Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*Fetcher)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

func New(next infra_tmdb.Fetcher, client Cmdable, ttl time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := cacheKey(path, query)

	cached, err := f.client.Get(key).Bytes()
	switch {
	case err == nil:
		return cached, nil
	case err != redis.Nil:
		f.logger.Warn("tmdb cache read failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}

	body, err := f.next.Fetch(ctx, path, query)
	if err != nil {
		return nil, err
	}

	if err := f.client.Set(key, body, f.ttl).Err(); err != nil {
		f.logger.Warn("tmdb cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	return body, nil
}

// url.Values.Encode sorts by key, so equal queries share a key.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return keyPrefix + path
	}
	return keyPrefix + path + "?" + query.Encode()
}
