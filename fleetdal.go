package fleetdal

import (
	"context"

	"github.com/thalesfsp/fleetdal/dynamodb"
	"github.com/thalesfsp/fleetdal/internal/shared"
	"github.com/thalesfsp/fleetdal/storage"
	"github.com/thalesfsp/fleetdal/timestream"
)

// Clients bundles both stores.
type Clients struct {
	// Documents is the document store.
	Documents storage.IDocumentStore

	// TimeSeries is the time-series query store.
	TimeSeries storage.ITimeSeriesStore
}

// Meta returns the metadata of the configured stores.
func (c *Clients) Meta() []IMeta {
	meta := []IMeta{}

	if c.Documents != nil {
		meta = append(meta, c.Documents)
	}

	if c.TimeSeries != nil {
		meta = append(meta, c.TimeSeries)
	}

	return meta
}

// NewFromEnv loads `envFiles` (`.env` if none), and creates both clients from
// the env. DynamoDB options, e.g. a shared key schema cache, are applied to
// the document store.
func NewFromEnv(ctx context.Context, envFiles []string, options ...dynamodb.Option) (*Clients, error) {
	if err := shared.LoadEnv(envFiles...); err != nil {
		return nil, err
	}

	documentsCfg, err := dynamodb.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	timeSeriesCfg, err := timestream.ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	documents, err := dynamodb.New(ctx, documentsCfg, options...)
	if err != nil {
		return nil, err
	}

	timeSeries, err := timestream.New(ctx, timeSeriesCfg)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Documents:  documents,
		TimeSeries: timeSeries,
	}, nil
}
