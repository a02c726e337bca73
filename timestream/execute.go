package timestream

import (
	"context"

	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/fleetdal/internal/shared"
	"github.com/thalesfsp/fleetdal/storage"
	"github.com/thalesfsp/sypl"
	"github.com/thalesfsp/sypl/fields"
	"github.com/thalesfsp/sypl/level"
)

//////
// Typed API over any storage.ITimeSeriesStore.
//////

// ExecuteScalar resolves `query` with `params`, and returns the first column
// of the first row converted to T. Empty pages carrying a token are followed.
// An empty result returns the zero value of T.
func ExecuteScalar[T any](
	ctx context.Context,
	s storage.ITimeSeriesStore,
	query string,
	params map[string]any,
	options ...storage.Func,
) (T, error) {
	var zero T

	resolved, err := ResolveTemplate(query, params)
	if err != nil {
		return zero, err
	}

	options = append(options[:len(options):len(options)], storage.WithOperation(storage.OperationScalar))

	token := ""

	for {
		rs, err := s.Query(ctx, resolved, 0, token, options...)
		if err != nil {
			return zero, err
		}

		if len(rs.Rows) > 0 {
			if len(rs.Rows[0]) == 0 {
				return zero, nil
			}

			return ConvertDatum[T](rs.Rows[0][0])
		}

		if rs.NextToken == "" {
			return zero, nil
		}

		token = rs.NextToken
	}
}

// ExecuteSinglePage fetches one page. With `params`, `query` is a template
// resolved once, and if no `continuationToken` is given and the first fetch
// already returns a token, the next page is fetched with the resolved text
// too, both pages being returned. Page.Query is the text sent to the backend.
func ExecuteSinglePage[T any](
	ctx context.Context,
	s storage.ITimeSeriesStore,
	query string,
	maxRows int64,
	continuationToken string,
	params map[string]any,
	options ...storage.Func,
) (*storage.Page[T], error) {
	resolved, err := ResolveTemplate(query, params)
	if err != nil {
		return nil, err
	}

	rs, err := s.Query(ctx, resolved, maxRows, continuationToken, options...)
	if err != nil {
		return nil, err
	}

	items, err := UnmarshalRows[T](rs.Columns, rs.Rows)
	if err != nil {
		return nil, err
	}

	page := &storage.Page[T]{
		Items:             items,
		ContinuationToken: rs.NextToken,
		Query:             resolved,
	}

	if len(params) == 0 || continuationToken != "" || rs.NextToken == "" {
		return page, nil
	}

	next, err := s.Query(ctx, resolved, maxRows, rs.NextToken, options...)
	if err != nil {
		return nil, err
	}

	nextItems, err := UnmarshalRows[T](next.Columns, next.Rows)
	if err != nil {
		return nil, err
	}

	page.Items = append(page.Items, nextItems...)
	page.ContinuationToken = next.NextToken

	return page, nil
}

// ExecuteQueryCombined resolves `query` with `params` once, and follows the
// continuation token to exhaustion, returning every row in arrival order.
// Never nil.
func ExecuteQueryCombined[T any](
	ctx context.Context,
	s storage.ITimeSeriesStore,
	query string,
	params map[string]any,
	options ...storage.Func,
) ([]T, error) {
	resolved, err := ResolveTemplate(query, params)
	if err != nil {
		return nil, err
	}

	queryID := shared.GenerateUUID()

	pages := [][]T{}

	token := ""

	for {
		rs, err := s.Query(ctx, resolved, 0, token, options...)
		if err != nil {
			return nil, err
		}

		items, err := UnmarshalRows[T](rs.Columns, rs.Rows)
		if err != nil {
			return nil, err
		}

		pages = append(pages, items)

		if rs.NextToken == "" {
			break
		}

		token = rs.NextToken
	}

	result := storage.Flatten2D(pages)

	s.GetLogger().PrintlnWithOptions(
		level.Debug,
		"combined",
		sypl.WithFields(logging.ToAPM(ctx, fields.Fields{
			"query.id": queryID,
			"pages":    len(pages),
			"rows":     len(result),
		})),
	)

	return result, nil
}
