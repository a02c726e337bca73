package storage

import (
	"context"

	"github.com/thalesfsp/sypl"
)

//////
// Const, vars, and types.
//////

// IDocumentStore defines the document store data access layer: typed CRUD
// and filtered scans over tables addressed by a partition key and an optional
// sort key.
//
// Methods read into, and write from `v` - a pointer to a struct or to a slice
// of structs for list operations. Package-level generic functions in the
// implementing packages provide the typed API on top of it.
//
//nolint:dupl
type IDocumentStore interface {
	// GetItem reads the item addressed by partition key only into `v`. It
	// returns false, and leaves `v` untouched, if there's no such item.
	GetItem(ctx context.Context, table, key string, v any, options ...Func) (bool, error)

	// GetItemWithSortKey reads the item addressed by the composite key into
	// `v`. An absent item leaves `v` untouched.
	GetItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, v any, options ...Func) error

	// GetItems reads all items sharing `partitionKey` into `v`.
	GetItems(ctx context.Context, table, partitionKey string, v any, options ...Func) error

	// Scan reads the whole table, narrowed by the AND-combined `filters`, into
	// `v`.
	Scan(ctx context.Context, table string, filters []FilterCondition, v any, options ...Func) error

	// PutItem upserts `v` by the table's key fields.
	PutItem(ctx context.Context, table string, v any, options ...Func) error

	// DeleteItem removes the item addressed by partition key only.
	DeleteItem(ctx context.Context, table, key string, options ...Func) error

	// DeleteItemWithSortKey removes the item addressed by the composite key.
	DeleteItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, options ...Func) error

	// GetClient returns the storage client. Use that to interact with the
	// underlying storage client.
	GetClient() any

	// GetLogger returns the logger.
	GetLogger() sypl.ISypl

	// GetName returns the storage name.
	GetName() string

	// GetType returns its type.
	GetType() string
}

// ITimeSeriesStore defines the time-series store data access layer. Query is
// the page-fetch primitive, everything else is built on top of it.
type ITimeSeriesStore interface {
	// Query runs the literal `query`, returning one page. `maxRows` <= 0 uses
	// the store default. An empty `continuationToken` starts from the top.
	Query(ctx context.Context, query string, maxRows int64, continuationToken string, options ...Func) (*ResultSet, error)

	// GetClient returns the storage client. Use that to interact with the
	// underlying storage client.
	GetClient() any

	// GetLogger returns the logger.
	GetLogger() sypl.ISypl

	// GetName returns the storage name.
	GetName() string

	// GetType returns its type.
	GetType() string
}
