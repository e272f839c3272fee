package infra_session_cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type SessionCacheUnitSuite struct {
	suite.Suite
}

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func (f *fakeRedis) Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (s *SessionCacheUnitSuite) TestDriver(t provider.T) {
	store := &fakeRedis{data: map[string]string{}}
	d := New(store, "admin")

	assert.NoError(t, d.Set("token", "active", time.Minute))
	assert.Equal(t, "active", store.data["admin:token"])

	v, err := d.Get("token")
	assert.NoError(t, err)
	assert.Equal(t, "active", v)

	assert.NoError(t, d.Delete("token"))
	v, err = d.Get("token")
	assert.NoError(t, err)
	assert.Empty(t, v)
}

func (s *SessionCacheUnitSuite) TestGetError(t provider.T) {
	d := New(&fakeRedis{data: map[string]string{}, getErr: errors.New("down")}, "")

	_, err := d.Get("token")

	assert.Error(t, err)
}

func TestSessionCacheUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(SessionCacheUnitSuite))
}
