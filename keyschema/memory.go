package keyschema

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory is an in-process ICache.
type Memory struct {
	client *cache.Cache
	ttl    time.Duration
}

// Get returns the cached key names of `table`.
func (m *Memory) Get(_ context.Context, table string) (TableKeyNames, bool, error) {
	v, ok := m.client.Get(table)
	if !ok {
		return TableKeyNames{}, false, nil
	}

	names, ok := v.(TableKeyNames)

	return names, ok, nil
}

// Set caches the key names of `table` for the configured TTL.
func (m *Memory) Set(_ context.Context, table string, names TableKeyNames) error {
	m.client.Set(table, names, m.ttl)

	return nil
}

// NewMemory returns an in-process cache whose entries live for `ttl`,
// DefaultTTL if not positive.
func NewMemory(ttl time.Duration) *Memory {
	ttl = ttlOrDefault(ttl)

	return &Memory{
		client: cache.New(ttl, ttl),
		ttl:    ttl,
	}
}
