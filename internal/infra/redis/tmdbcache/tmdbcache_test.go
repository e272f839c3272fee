package infra_tmdb_cache

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TMDBCacheUnitSuite struct {
	suite.Suite
}

type memoryRedis struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	readErr error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Get(key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return redis.NewStringResult("", m.readErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

type countingFetcher struct {
	calls int
	body  []byte
	err   error
}

func (c *countingFetcher) Fetch(ctx context.Context, path string, query url.Values) ([]byte, error) {
	c.calls++
	return c.body, c.err
}

func (s *TMDBCacheUnitSuite) TestFetch(t provider.T) {
	t.Run("Should hit upstream once and then serve cache", func(t provider.T) {
		store := newMemoryRedis()
		upstream := &countingFetcher{body: []byte(`{"id":550}`)}
		f := New(upstream, store, time.Hour)
		query := url.Values{"append_to_response": {"videos"}}

		first, err := f.Fetch(context.Background(), "/movie/550", query)
		require.NoError(t, err)
		second, err := f.Fetch(context.Background(), "/movie/550", query)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, upstream.calls)
		assert.Equal(t, time.Hour, store.ttls["tmdb:/movie/550?append_to_response=videos"])
	})

	t.Run("Should not cache upstream errors", func(t provider.T) {
		store := newMemoryRedis()
		upstream := &countingFetcher{err: errors.New("boom")}
		f := New(upstream, store, time.Hour)

		_, err := f.Fetch(context.Background(), "/movie/1", nil)

		assert.Error(t, err)
		assert.Empty(t, store.data)
	})

	t.Run("Should fall through on broken cache", func(t provider.T) {
		store := newMemoryRedis()
		store.readErr = errors.New("connection refused")
		upstream := &countingFetcher{body: []byte(`{}`)}
		f := New(upstream, store, time.Hour)

		body, err := f.Fetch(context.Background(), "/movie/popular", url.Values{"page": {"1"}})

		require.NoError(t, err)
		assert.Equal(t, []byte(`{}`), body)
		assert.Equal(t, 1, upstream.calls)
	})
}

func (s *TMDBCacheUnitSuite) TestCacheKey(t provider.T) {
	a := cacheKey("/movie/1/recommendations", url.Values{"b": {"2"}, "a": {"1"}})
	b := cacheKey("/movie/1/recommendations", url.Values{"a": {"1"}, "b": {"2"}})

	assert.Equal(t, a, b)
	assert.Equal(t, "tmdb:/movie/1/credits", cacheKey("/movie/1/credits", nil))
}

func TestTMDBCacheUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(TMDBCacheUnitSuite))
}
