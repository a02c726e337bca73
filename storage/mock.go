package storage

import (
	"context"

	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/sypl"
)

// MockName is the name reported by mocks.
const MockName = "mock"

//////
// Creates structs which satisfy the storage interfaces.
//////

// DocumentStoreMock is a struct which satisfies the storage.IDocumentStore
// interface.
//
//nolint:dupl
type DocumentStoreMock struct {
	//////
	// Allows to set the returned value of each method.
	//////

	MockGetItem               func(ctx context.Context, table, key string, v any, options ...Func) (bool, error)
	MockGetItemWithSortKey    func(ctx context.Context, table, partitionKey, sortKey string, v any, options ...Func) error
	MockGetItems              func(ctx context.Context, table, partitionKey string, v any, options ...Func) error
	MockScan                  func(ctx context.Context, table string, filters []FilterCondition, v any, options ...Func) error
	MockPutItem               func(ctx context.Context, table string, v any, options ...Func) error
	MockDeleteItem            func(ctx context.Context, table, key string, options ...Func) error
	MockDeleteItemWithSortKey func(ctx context.Context, table, partitionKey, sortKey string, options ...Func) error

	MockGetClient func() any
}

//////
// When the methods are called, it will call the corresponding method in the
// Mock struct returning the desired value. This implements the
// IDocumentStore interface.
//////

// GetItem reads one item by partition key.
func (m *DocumentStoreMock) GetItem(ctx context.Context, table, key string, v any, options ...Func) (bool, error) {
	return m.MockGetItem(ctx, table, key, v, options...)
}

// GetItemWithSortKey reads one item by composite key.
func (m *DocumentStoreMock) GetItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, v any, options ...Func) error {
	return m.MockGetItemWithSortKey(ctx, table, partitionKey, sortKey, v, options...)
}

// GetItems reads all items of a partition.
func (m *DocumentStoreMock) GetItems(ctx context.Context, table, partitionKey string, v any, options ...Func) error {
	return m.MockGetItems(ctx, table, partitionKey, v, options...)
}

// Scan reads the whole table.
func (m *DocumentStoreMock) Scan(ctx context.Context, table string, filters []FilterCondition, v any, options ...Func) error {
	return m.MockScan(ctx, table, filters, v, options...)
}

// PutItem upserts an item.
func (m *DocumentStoreMock) PutItem(ctx context.Context, table string, v any, options ...Func) error {
	return m.MockPutItem(ctx, table, v, options...)
}

// DeleteItem removes an item by partition key.
func (m *DocumentStoreMock) DeleteItem(ctx context.Context, table, key string, options ...Func) error {
	return m.MockDeleteItem(ctx, table, key, options...)
}

// DeleteItemWithSortKey removes an item by composite key.
func (m *DocumentStoreMock) DeleteItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, options ...Func) error {
	return m.MockDeleteItemWithSortKey(ctx, table, partitionKey, sortKey, options...)
}

// GetClient returns the storage client.
func (m *DocumentStoreMock) GetClient() any {
	if m.MockGetClient == nil {
		return nil
	}

	return m.MockGetClient()
}

// GetLogger returns the logger.
func (m *DocumentStoreMock) GetLogger() sypl.ISypl {
	return logging.Get()
}

// GetName returns the storage name.
func (m *DocumentStoreMock) GetName() string {
	return MockName
}

// GetType returns its type.
func (m *DocumentStoreMock) GetType() string {
	return Type
}

// TimeSeriesStoreMock is a struct which satisfies the storage.ITimeSeriesStore
// interface.
type TimeSeriesStoreMock struct {
	MockQuery func(ctx context.Context, query string, maxRows int64, continuationToken string, options ...Func) (*ResultSet, error)

	MockGetClient func() any
}

// Query fetches one page.
func (m *TimeSeriesStoreMock) Query(ctx context.Context, query string, maxRows int64, continuationToken string, options ...Func) (*ResultSet, error) {
	return m.MockQuery(ctx, query, maxRows, continuationToken, options...)
}

// GetClient returns the storage client.
func (m *TimeSeriesStoreMock) GetClient() any {
	if m.MockGetClient == nil {
		return nil
	}

	return m.MockGetClient()
}

// GetLogger returns the logger.
func (m *TimeSeriesStoreMock) GetLogger() sypl.ISypl {
	return logging.Get()
}

// GetName returns the storage name.
func (m *TimeSeriesStoreMock) GetName() string {
	return MockName
}

// GetType returns its type.
func (m *TimeSeriesStoreMock) GetType() string {
	return Type
}
