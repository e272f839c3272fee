package infra_session_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Cmdable is the part of the redis client the driver talks to.
type Cmdable interface {
	Set(key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(key string) *redis.StringCmd
	Del(keys ...string) *redis.IntCmd
}

type Driver struct {
	client Cmdable
	key    string
}

func New(
	client Cmdable,
	key string,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
	}
}

func (d *Driver) Set(key string, value string, ttl time.Duration) error {
	return d.client.Set(d.getFullKey(key), value, ttl).Err()
}

// Get returns "" for a missing or expired key.
func (d *Driver) Get(key string) (string, error) {
	val, err := d.client.Get(d.getFullKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return val, nil
}

func (d *Driver) Delete(key string) error {
	return d.client.Del(d.getFullKey(key)).Err()
}

func (d *Driver) getFullKey(key string) string {
	if d.key != "" {
		return d.key + ":" + key
	}
	return key
}
