package dynamodb

import (
	"context"

	"github.com/thalesfsp/fleetdal/storage"
)

//////
// Typed API over any storage.IDocumentStore.
//////

// GetItem reads the item addressed by partition key only. It returns nil if
// there's no such item.
func GetItem[T any](ctx context.Context, s storage.IDocumentStore, table, key string, options ...storage.Func) (*T, error) {
	var t T

	found, err := s.GetItem(ctx, table, key, &t, options...)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, nil
	}

	return &t, nil
}

// GetItemWithSortKey reads the item addressed by the composite key.
//
// NOTE: An absent item yields the zero value of T, not an error.
func GetItemWithSortKey[T any](ctx context.Context, s storage.IDocumentStore, table, partitionKey, sortKey string, options ...storage.Func) (T, error) {
	var t T

	if err := s.GetItemWithSortKey(ctx, table, partitionKey, sortKey, &t, options...); err != nil {
		var zero T

		return zero, err
	}

	return t, nil
}

// GetItems reads every item sharing `partitionKey`. Never nil.
func GetItems[T any](ctx context.Context, s storage.IDocumentStore, table, partitionKey string, options ...storage.Func) ([]T, error) {
	t := []T{}

	if err := s.GetItems(ctx, table, partitionKey, &t, options...); err != nil {
		return nil, err
	}

	if t == nil {
		t = []T{}
	}

	return t, nil
}

// Scan reads the whole table, narrowed by the AND-combined `filters`. Never
// nil.
func Scan[T any](ctx context.Context, s storage.IDocumentStore, table string, filters []storage.FilterCondition, options ...storage.Func) ([]T, error) {
	t := []T{}

	if err := s.Scan(ctx, table, filters, &t, options...); err != nil {
		return nil, err
	}

	if t == nil {
		t = []T{}
	}

	return t, nil
}

// PutItem upserts `item`.
func PutItem[T any](ctx context.Context, s storage.IDocumentStore, table string, item T, options ...storage.Func) error {
	return s.PutItem(ctx, table, item, options...)
}
