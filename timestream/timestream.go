// Package timestream provides the time-series query client, backed by Amazon
// Timestream.
package timestream

import (
	"context"
	"errors"
	"expvar"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/timestreamquery"
	"github.com/aws/aws-sdk-go/service/timestreamquery/timestreamqueryiface"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/internal/customapm"
	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/fleetdal/internal/shared"
	"github.com/thalesfsp/fleetdal/storage"
	"github.com/thalesfsp/status"
	"github.com/thalesfsp/sypl"
	"github.com/thalesfsp/sypl/fields"
	"github.com/thalesfsp/sypl/level"
	"github.com/thalesfsp/validation"
)

//////
// Const, vars, and types.
//////

// Name of the storage.
const Name = "timestream"

var (
	// ErrRequiredQuery is returned when the query text is empty.
	ErrRequiredQuery = customerror.NewRequiredError("query", customerror.WithErrorCode("ERR_REQUIRED_QUERY"))

	// ErrInvalidMaxRows is returned when the page size is above MaxRowsLimit.
	ErrInvalidMaxRows = customerror.New(
		fmt.Sprintf("invalid max rows, must be at most %d", MaxRowsLimit),
		customerror.WithErrorCode("ERR_INVALID_MAX_ROWS"),
	)

	// ErrRequiredListValues is returned when a list parameter is empty.
	ErrRequiredListValues = customerror.NewRequiredError("list parameter values", customerror.WithErrorCode("ERR_REQUIRED_LIST_VALUES"))
)

// Timestream storage definition.
type Timestream struct {
	*storage.Storage

	// Client is the Timestream query client.
	Client timestreamqueryiface.TimestreamQueryAPI `json:"-" validate:"required"`

	// Config is the client configuration.
	Config Config `json:"config"`
}

//////
// Helpers.
//////

// ToResultSet converts the backend output. NULLs become Datum{}, row values
// are flattened into arrays.
func ToResultSet(out *timestreamquery.QueryOutput) *storage.ResultSet {
	rs := &storage.ResultSet{
		Columns: []storage.Column{},
		Rows:    []storage.Row{},
	}

	if out == nil {
		return rs
	}

	rs.NextToken = aws.StringValue(out.NextToken)
	rs.QueryID = aws.StringValue(out.QueryId)

	for _, column := range out.ColumnInfo {
		rs.Columns = append(rs.Columns, storage.Column{
			Name: aws.StringValue(column.Name),
			Type: columnType(column),
		})
	}

	for _, row := range out.Rows {
		rs.Rows = append(rs.Rows, toRow(row))
	}

	return rs
}

func columnType(column *timestreamquery.ColumnInfo) string {
	if column == nil || column.Type == nil {
		return ""
	}

	switch {
	case column.Type.ScalarType != nil:
		return aws.StringValue(column.Type.ScalarType)
	case column.Type.ArrayColumnInfo != nil:
		return "ARRAY"
	case column.Type.RowColumnInfo != nil:
		return "ROW"
	case column.Type.TimeSeriesMeasureValueColumnInfo != nil:
		return "TIMESERIES"
	default:
		return ""
	}
}

func toRow(row *timestreamquery.Row) storage.Row {
	if row == nil {
		return storage.Row{}
	}

	r := make(storage.Row, 0, len(row.Data))

	for _, d := range row.Data {
		r = append(r, toDatum(d))
	}

	return r
}

func toDatum(d *timestreamquery.Datum) storage.Datum {
	switch {
	case d == nil, aws.BoolValue(d.NullValue):
		return storage.Datum{}
	case d.ScalarValue != nil:
		return storage.Datum{Scalar: d.ScalarValue}
	case d.ArrayValue != nil:
		array := make([]storage.Datum, 0, len(d.ArrayValue))

		for _, element := range d.ArrayValue {
			array = append(array, toDatum(element))
		}

		return storage.Datum{Array: array}
	case d.RowValue != nil:
		return storage.Datum{Array: toRow(d.RowValue)}
	default:
		return storage.Datum{}
	}
}

// counters returns the success, and failure metrics of `operation`.
func (ts *Timestream) counters(operation storage.Operation) (status.Status, *expvar.Int, *expvar.Int) {
	if operation == storage.OperationScalar {
		return status.Counted, ts.GetCounterCounted(), ts.GetCounterCountedFailed()
	}

	return status.Listed, ts.GetCounterListed(), ts.GetCounterListedFailed()
}

//////
// Implements the ITimeSeriesStore interface.
//////

// Query runs the literal `query`, returning one page. `maxRows` <= 0 uses
// Config.DefaultMaxRows. An empty `continuationToken` starts from the top,
// otherwise `query` must be the very same text which produced the token.
func (ts *Timestream) Query(
	ctx context.Context,
	query string,
	maxRows int64,
	continuationToken string,
	options ...storage.Func,
) (*storage.ResultSet, error) {
	o, err := storage.NewOptions(options...)
	if err != nil {
		return nil, customapm.TraceError(ctx, err, ts.GetLogger(), ts.GetCounterListedFailed())
	}

	operation := storage.OperationQuery
	if o.Operation != "" {
		operation = o.Operation
	}

	st, counter, counterFailed := ts.counters(operation)

	if query == "" {
		return nil, customapm.TraceError(ctx, ErrRequiredQuery, ts.GetLogger(), counterFailed)
	}

	if maxRows <= 0 {
		maxRows = ts.Config.DefaultMaxRows
	}

	if maxRows > MaxRowsLimit {
		return nil, customapm.TraceError(ctx, ErrInvalidMaxRows, ts.GetLogger(), counterFailed)
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		ts.GetType(),
		Name,
		st.String(),
	)
	defer span.End()

	//////
	// Query.
	//////

	if err := o.RunPreHook(ctx, operation, query, nil); err != nil {
		return nil, customapm.TraceError(ctx, err, ts.GetLogger(), counterFailed)
	}

	input := &timestreamquery.QueryInput{
		QueryString: aws.String(query),
	}

	if maxRows > 0 {
		input.MaxRows = aws.Int64(maxRows)
	}

	if continuationToken != "" {
		input.NextToken = aws.String(continuationToken)
	}

	out, err := ts.Client.QueryWithContext(ctx, input)
	if err != nil {
		return nil, customapm.TraceError(ctx, err, ts.GetLogger(), counterFailed)
	}

	rs := ToResultSet(out)

	if err := o.RunPostHook(ctx, operation, query, rs); err != nil {
		return nil, customapm.TraceError(ctx, err, ts.GetLogger(), counterFailed)
	}

	//////
	// Logging
	//////

	// Correlates the transaction, span and log, and logs it.
	ts.GetLogger().PrintlnWithOptions(
		level.Debug,
		st.String(),
		sypl.WithFields(logging.ToAPM(ctx, fields.Fields{
			"backend.query.id": rs.QueryID,
			"rows":             len(rs.Rows),
			"more":             rs.NextToken != "",
		})),
	)

	//////
	// Metrics.
	//////

	counter.Add(1)

	return rs, nil
}

// GetClient returns the client.
func (ts *Timestream) GetClient() any {
	return ts.Client
}

//////
// Factory.
//////

// New creates a Timestream query client from `cfg`, and checks connectivity.
func New(ctx context.Context, cfg Config) (*Timestream, error) {
	s, err := storage.New(ctx, Name)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(&cfg); err != nil {
		return nil, customapm.TraceError(ctx, err, s.GetLogger(), s.GetCounterInstantiationFailed())
	}

	awsCfg := &aws.Config{
		Region:                  aws.String(cfg.Region),
		EnableEndpointDiscovery: aws.Bool(cfg.Endpoint == ""),
	}

	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, customapm.TraceError(
			ctx,
			customerror.NewFailedToError("create session", customerror.WithError(err)),
			s.GetLogger(),
			s.GetCounterPingFailed(),
		)
	}

	client := timestreamquery.New(sess)

	// Test connection.
	r := retrier.New(retrier.ExponentialBackoff(3, shared.TimeoutPing), pingClassifier{})

	if err := r.RunCtx(ctx, func(ctx context.Context) error {
		_, err := client.DescribeEndpointsWithContext(ctx, &timestreamquery.DescribeEndpointsInput{})

		return err
	}); err != nil {
		return nil, customapm.TraceError(
			ctx,
			customerror.NewFailedToError("test connection", customerror.WithError(err)),
			s.GetLogger(),
			s.GetCounterPingFailed(),
		)
	}

	return newTimestream(ctx, s, client, cfg)
}

// NewWithClient creates a Timestream storage around an existing `client`. No
// connectivity check is done.
func NewWithClient(ctx context.Context, client timestreamqueryiface.TimestreamQueryAPI, cfg Config) (*Timestream, error) {
	s, err := storage.New(ctx, Name)
	if err != nil {
		return nil, err
	}

	return newTimestream(ctx, s, client, cfg)
}

func newTimestream(
	ctx context.Context,
	s *storage.Storage,
	client timestreamqueryiface.TimestreamQueryAPI,
	cfg Config,
) (*Timestream, error) {
	// Enforces ITimeSeriesStore interface implementation.
	var _ storage.ITimeSeriesStore = (*Timestream)(nil)

	ts := &Timestream{
		Storage: s,

		Client: client,
		Config: cfg,
	}

	if err := validation.Validate(ts); err != nil {
		return nil, customapm.TraceError(ctx, err, s.GetLogger(), s.GetCounterInstantiationFailed())
	}

	return ts, nil
}

// pingClassifier retries throttling, and network failures only.
type pingClassifier struct{}

// Classify implements retrier.Classifier.
func (pingClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}

	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case timestreamquery.ErrCodeThrottlingException, timestreamquery.ErrCodeInternalServerException, "RequestError":
			return retrier.Retry
		}

		return retrier.Fail
	}

	return retrier.Retry
}
