// Package keyschema caches the physical key attribute names of document store
// tables. Key names are immutable per table, so concurrent first accesses may
// populate the cache redundantly - last writer wins.
package keyschema

import (
	"context"
	"time"
)

//////
// Const, vars, and types.
//////

// DefaultTTL is how long key names are trusted before being described again.
const DefaultTTL = 12 * time.Hour

// TableKeyNames are the physical key attribute names of one table.
type TableKeyNames struct {
	// PartitionKey attribute name. Always set.
	PartitionKey string `json:"partitionKey" validate:"required"`

	// SortKey attribute name. Empty if the table has no sort key.
	SortKey string `json:"sortKey,omitempty"`
}

// HasSortKey returns true if the table has a sort key.
func (k TableKeyNames) HasSortKey() bool {
	return k.SortKey != ""
}

// ICache stores TableKeyNames per physical table name. Entries expire after
// the TTL the implementation was built with.
type ICache interface {
	// Get returns the cached key names of `table`, and false on a miss.
	Get(ctx context.Context, table string) (TableKeyNames, bool, error)

	// Set caches the key names of `table`.
	Set(ctx context.Context, table string, names TableKeyNames) error
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}

	return ttl
}
