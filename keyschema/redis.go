package keyschema

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/internal/shared"
)

// DefaultRedisKeyPrefix namespaces the cache keys.
const DefaultRedisKeyPrefix = "fleetdal:keyschema:"

// Redis is an ICache shared across processes.
type Redis struct {
	// Client is the Redis client.
	Client redis.Cmdable `json:"-" validate:"required"`

	// KeyPrefix is prepended to the table name.
	KeyPrefix string `json:"keyPrefix"`

	ttl time.Duration
}

// Get returns the cached key names of `table`.
func (r *Redis) Get(ctx context.Context, table string) (TableKeyNames, bool, error) {
	var names TableKeyNames

	data, err := r.Client.Get(ctx, r.KeyPrefix+table).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return names, false, nil
		}

		return names, false, customerror.NewFailedToError("get key schema from cache", customerror.WithError(err))
	}

	if err := shared.Unmarshal(data, &names); err != nil {
		return names, false, err
	}

	return names, true, nil
}

// Set caches the key names of `table` for the configured TTL.
func (r *Redis) Set(ctx context.Context, table string, names TableKeyNames) error {
	data, err := shared.Marshal(names)
	if err != nil {
		return err
	}

	if err := r.Client.Set(ctx, r.KeyPrefix+table, data, r.ttl).Err(); err != nil {
		return customerror.NewFailedToError("set key schema in cache", customerror.WithError(err))
	}

	return nil
}

// NewRedis returns a Redis backed cache whose entries live for `ttl`,
// DefaultTTL if not positive.
func NewRedis(client redis.Cmdable, ttl time.Duration) *Redis {
	return &Redis{
		Client:    client,
		KeyPrefix: DefaultRedisKeyPrefix,
		ttl:       ttlOrDefault(ttl),
	}
}
