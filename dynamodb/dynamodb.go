package dynamodb

import (
	"context"
	"errors"
	"expvar"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/eapache/go-resiliency/retrier"
	"github.com/thalesfsp/concurrentloop"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/internal/customapm"
	"github.com/thalesfsp/fleetdal/internal/logging"
	"github.com/thalesfsp/fleetdal/internal/shared"
	"github.com/thalesfsp/fleetdal/keyschema"
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
const Name = "dynamodb"

var (
	// ErrRequiredTable is returned when the table name is empty.
	ErrRequiredTable = customerror.NewRequiredError("table", customerror.WithErrorCode("ERR_REQUIRED_TABLE"))

	// ErrRequiredKey is returned when the key is empty.
	ErrRequiredKey = customerror.NewRequiredError("key", customerror.WithErrorCode("ERR_REQUIRED_KEY"))

	// ErrRequiredPartitionKey is returned when the partition key is empty.
	ErrRequiredPartitionKey = customerror.NewRequiredError("partition key", customerror.WithErrorCode("ERR_REQUIRED_PARTITION_KEY"))

	// ErrRequiredSortKey is returned when the sort key is empty.
	ErrRequiredSortKey = customerror.NewRequiredError("sort key", customerror.WithErrorCode("ERR_REQUIRED_SORT_KEY"))

	// ErrRequiredItem is returned when the item to write is nil.
	ErrRequiredItem = customerror.NewRequiredError("item", customerror.WithErrorCode("ERR_REQUIRED_ITEM"))

	// ErrRequiredAttributeName is returned when a filter condition has no
	// attribute name.
	ErrRequiredAttributeName = customerror.NewRequiredError("filter attribute name", customerror.WithErrorCode("ERR_REQUIRED_ATTRIBUTE_NAME"))

	// ErrRequiredInValues is returned when an `In` filter has no values.
	ErrRequiredInValues = customerror.NewRequiredError("at least one value for the In filter", customerror.WithErrorCode("ERR_REQUIRED_IN_VALUES"))

	// ErrMissingKeyAttribute is returned when the item to write lacks a key
	// attribute of the table.
	ErrMissingKeyAttribute = customerror.NewMissingError("key attribute in item", customerror.WithErrorCode("ERR_MISSING_KEY_ATTRIBUTE"))

	// ErrTableHasNoSortKey is returned when a sort key is given for a table
	// without one.
	ErrTableHasNoSortKey = customerror.New("sort key given for a table without one", customerror.WithErrorCode("ERR_TABLE_HAS_NO_SORT_KEY"))
)

// TableNameFunc maps a logical table name to the physical one.
type TableNameFunc func(table string) string

// Option allows to customize the client at construction time.
type Option func(d *DynamoDB)

// DynamoDB storage definition.
type DynamoDB struct {
	*storage.Storage

	// Client is the DynamoDB client.
	Client dynamodbiface.DynamoDBAPI `json:"-" validate:"required"`

	// Config is the client configuration.
	Config Config `json:"config"`

	// KeySchemas caches table key names.
	KeySchemas keyschema.ICache `json:"-" validate:"required"`

	// Target maps a logical table name to the physical one. Defaults to
	// prepending Config.TablePrefix.
	Target TableNameFunc `json:"-" validate:"required"`
}

//////
// Options.
//////

// WithKeySchemaCache sets the key schema cache, e.g. a keyschema.Redis shared
// by many processes.
func WithKeySchemaCache(c keyschema.ICache) Option {
	return func(d *DynamoDB) {
		d.KeySchemas = c
	}
}

// WithTableNameFunc sets how logical table names map to physical ones.
func WithTableNameFunc(fn TableNameFunc) Option {
	return func(d *DynamoDB) {
		d.Target = fn
	}
}

// PrefixTableName returns a TableNameFunc which prepends `prefix`.
func PrefixTableName(prefix string) TableNameFunc {
	return func(table string) string {
		return prefix + table
	}
}

//////
// Helpers.
//////

// setup builds the operation options, resolves the physical table, and runs
// the pre-hook.
func (d *DynamoDB) setup(
	ctx context.Context,
	operation storage.Operation,
	table string,
	data any,
	options []storage.Func,
) (*storage.Options, string, error) {
	o, err := storage.NewOptions(options...)
	if err != nil {
		return nil, "", err
	}

	trgt := d.Target(table)

	if err := o.RunPreHook(ctx, operation, trgt, data); err != nil {
		return nil, "", err
	}

	return o, trgt, nil
}

// done logs the successful operation, and bumps its counter.
func (d *DynamoDB) done(ctx context.Context, st status.Status, trgt string, counter *expvar.Int) {
	// Correlates the transaction, span and log, and logs it.
	d.GetLogger().PrintlnWithOptions(
		level.Debug,
		st.String(),
		sypl.WithFields(logging.ToAPM(ctx, fields.Fields{"table": trgt})),
	)

	counter.Add(1)
}

// keyNames returns the key names of the physical `table`, describing it on a
// cache miss. Cache failures degrade to describing the table.
func (d *DynamoDB) keyNames(ctx context.Context, table string) (keyschema.TableKeyNames, error) {
	names, ok, err := d.KeySchemas.Get(ctx, table)
	if err != nil {
		d.GetLogger().PrintlnWithOptions(
			level.Warn,
			"key schema cache get failed: "+err.Error(),
			sypl.WithFields(logging.ToAPM(ctx, fields.Fields{"table": table})),
		)
	} else if ok {
		return names, nil
	}

	out, err := d.Client.DescribeTableWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	})
	if err != nil {
		return names, err
	}

	names, err = KeyNamesFrom(out.Table)
	if err != nil {
		return names, err
	}

	if err := d.KeySchemas.Set(ctx, table, names); err != nil {
		d.GetLogger().PrintlnWithOptions(
			level.Warn,
			"key schema cache set failed: "+err.Error(),
			sypl.WithFields(logging.ToAPM(ctx, fields.Fields{"table": table})),
		)
	}

	return names, nil
}

func (d *DynamoDB) queryAll(ctx context.Context, input *dynamodb.QueryInput) (Items, error) {
	items := Items{}

	for {
		out, err := d.Client.QueryWithContext(ctx, input)
		if err != nil {
			return nil, err
		}

		items = append(items, out.Items...)

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}

		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (d *DynamoDB) scanAll(ctx context.Context, input *dynamodb.ScanInput) (Items, error) {
	items := Items{}

	for {
		out, err := d.Client.ScanWithContext(ctx, input)
		if err != nil {
			return nil, err
		}

		items = append(items, out.Items...)

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}

		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

//////
// Key schema.
//////

// KeyNames returns the partition and sort key attribute names of the logical
// `table`, from cache or by describing it.
func (d *DynamoDB) KeyNames(ctx context.Context, table string) (keyschema.TableKeyNames, error) {
	if table == "" {
		return keyschema.TableKeyNames{}, customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		storage.OperationDescribe.String(),
	)
	defer span.End()

	names, err := d.keyNames(ctx, d.Target(table))
	if err != nil {
		return names, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	return names, nil
}

// WarmKeySchemas resolves the key names of all `tables` concurrently,
// populating the cache.
func (d *DynamoDB) WarmKeySchemas(ctx context.Context, tables ...string) error {
	if _, errs := concurrentloop.Map(ctx, tables, func(ctx context.Context, table string) (keyschema.TableKeyNames, error) {
		return d.KeyNames(ctx, table)
	}); len(errs) > 0 {
		return errs
	}

	return nil
}

//////
// Implements the IDocumentStore interface.
//////

// GetItem reads the item addressed by partition key only into `v`. It returns
// false, leaving `v` untouched, if there's no such item.
func (d *DynamoDB) GetItem(ctx context.Context, table, key string, v any, options ...storage.Func) (bool, error) {
	if table == "" {
		return false, customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	if key == "" {
		return false, customapm.TraceError(ctx, ErrRequiredKey, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Retrieved.String(),
	)
	defer span.End()

	o, trgt, err := d.setup(ctx, storage.OperationGet, table, v, options)
	if err != nil {
		return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	//////
	// Retrieve.
	//////

	names, err := d.keyNames(ctx, trgt)
	if err != nil {
		return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	k, err := BuildKey(names, key, "")
	if err != nil {
		return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	out, err := d.Client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(trgt),
		Key:       k,
	})
	if err != nil {
		return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	found := len(out.Item) > 0

	if found {
		if err := UnmarshalItem(out.Item, v); err != nil {
			return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
		}
	}

	if err := o.RunPostHook(ctx, storage.OperationGet, trgt, v); err != nil {
		return false, customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	d.done(ctx, status.Retrieved, trgt, d.GetCounterRetrieved())

	return found, nil
}

// GetItemWithSortKey reads the item addressed by the composite key into `v`.
//
// NOTE: Unlike GetItem, an absent item isn't reported, `v` is left as is.
func (d *DynamoDB) GetItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, v any, options ...storage.Func) error {
	if table == "" {
		return customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	if partitionKey == "" {
		return customapm.TraceError(ctx, ErrRequiredPartitionKey, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	if sortKey == "" {
		return customapm.TraceError(ctx, ErrRequiredSortKey, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Retrieved.String(),
	)
	defer span.End()

	o, trgt, err := d.setup(ctx, storage.OperationGet, table, v, options)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	//////
	// Retrieve.
	//////

	names, err := d.keyNames(ctx, trgt)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	k, err := BuildKey(names, partitionKey, sortKey)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	out, err := d.Client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(trgt),
		Key:       k,
	})
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	if len(out.Item) > 0 {
		if err := UnmarshalItem(out.Item, v); err != nil {
			return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
		}
	}

	if err := o.RunPostHook(ctx, storage.OperationGet, trgt, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterRetrievedFailed())
	}

	d.done(ctx, status.Retrieved, trgt, d.GetCounterRetrieved())

	return nil
}

// GetItems reads every item sharing `partitionKey` into `v`, following the
// backend pagination to exhaustion.
func (d *DynamoDB) GetItems(ctx context.Context, table, partitionKey string, v any, options ...storage.Func) error {
	if table == "" {
		return customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterListedFailed())
	}

	if partitionKey == "" {
		return customapm.TraceError(ctx, ErrRequiredPartitionKey, d.GetLogger(), d.GetCounterListedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Listed.String(),
	)
	defer span.End()

	o, trgt, err := d.setup(ctx, storage.OperationList, table, v, options)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	//////
	// List.
	//////

	names, err := d.keyNames(ctx, trgt)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	items, err := d.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(trgt),
		KeyConditionExpression: aws.String("#pk = :pk"),
		ExpressionAttributeNames: map[string]*string{
			"#pk": aws.String(names.PartitionKey),
		},
		ExpressionAttributeValues: Item{
			":pk": {S: aws.String(partitionKey)},
		},
	})
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	if err := UnmarshalItems(items, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	if err := o.RunPostHook(ctx, storage.OperationList, trgt, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	d.done(ctx, status.Listed, trgt, d.GetCounterListed())

	return nil
}

// Scan reads the whole table into `v`, narrowed by the AND-combined
// `filters`, following the backend pagination to exhaustion.
func (d *DynamoDB) Scan(ctx context.Context, table string, filters []storage.FilterCondition, v any, options ...storage.Func) error {
	if table == "" {
		return customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterListedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Listed.String(),
	)
	defer span.End()

	filter, err := BuildFilterExpression(filters)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	o, trgt, err := d.setup(ctx, storage.OperationScan, table, v, options)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	//////
	// List.
	//////

	input := &dynamodb.ScanInput{
		TableName: aws.String(trgt),
	}

	if filter != nil {
		input.FilterExpression = aws.String(filter.Expression)
		input.ExpressionAttributeNames = filter.Names
		input.ExpressionAttributeValues = filter.Values
	}

	items, err := d.scanAll(ctx, input)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	if err := UnmarshalItems(items, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	if err := o.RunPostHook(ctx, storage.OperationScan, trgt, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterListedFailed())
	}

	d.done(ctx, status.Listed, trgt, d.GetCounterListed())

	return nil
}

// PutItem upserts `v`. The item must carry the table's key attributes. NULL
// attributes are omitted unless Config.KeepNullAttributes.
func (d *DynamoDB) PutItem(ctx context.Context, table string, v any, options ...storage.Func) error {
	if table == "" {
		return customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	if isNil(v) {
		return customapm.TraceError(ctx, ErrRequiredItem, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Created.String(),
	)
	defer span.End()

	o, trgt, err := d.setup(ctx, storage.OperationPut, table, v, options)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	//////
	// Create.
	//////

	item, err := MarshalItem(v, d.Config.KeepNullAttributes)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	names, err := d.keyNames(ctx, trgt)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	if _, ok := item[names.PartitionKey]; !ok {
		return customapm.TraceError(ctx, ErrMissingKeyAttribute, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	if _, ok := item[names.SortKey]; names.HasSortKey() && !ok {
		return customapm.TraceError(ctx, ErrMissingKeyAttribute, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	if _, err := d.Client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(trgt),
		Item:      item,
	}); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	if err := o.RunPostHook(ctx, storage.OperationPut, trgt, v); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterCreatedFailed())
	}

	d.done(ctx, status.Created, trgt, d.GetCounterCreated())

	return nil
}

// DeleteItem removes the item addressed by partition key only. Deleting an
// absent item succeeds.
func (d *DynamoDB) DeleteItem(ctx context.Context, table, key string, options ...storage.Func) error {
	if key == "" {
		return customapm.TraceError(ctx, ErrRequiredKey, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	return d.deleteItem(ctx, table, key, "", options)
}

// DeleteItemWithSortKey removes the item addressed by the composite key.
// Deleting an absent item succeeds.
func (d *DynamoDB) DeleteItemWithSortKey(ctx context.Context, table, partitionKey, sortKey string, options ...storage.Func) error {
	if partitionKey == "" {
		return customapm.TraceError(ctx, ErrRequiredPartitionKey, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	if sortKey == "" {
		return customapm.TraceError(ctx, ErrRequiredSortKey, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	return d.deleteItem(ctx, table, partitionKey, sortKey, options)
}

func (d *DynamoDB) deleteItem(ctx context.Context, table, partitionKey, sortKey string, options []storage.Func) error {
	if table == "" {
		return customapm.TraceError(ctx, ErrRequiredTable, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	//////
	// APM Tracing.
	//////

	ctx, span := customapm.Trace(
		ctx,
		d.GetType(),
		Name,
		status.Deleted.String(),
	)
	defer span.End()

	o, trgt, err := d.setup(ctx, storage.OperationDelete, table, nil, options)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	//////
	// Delete.
	//////

	names, err := d.keyNames(ctx, trgt)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	k, err := BuildKey(names, partitionKey, sortKey)
	if err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	if _, err := d.Client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(trgt),
		Key:       k,
	}); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	if err := o.RunPostHook(ctx, storage.OperationDelete, trgt, nil); err != nil {
		return customapm.TraceError(ctx, err, d.GetLogger(), d.GetCounterDeletedFailed())
	}

	d.done(ctx, status.Deleted, trgt, d.GetCounterDeleted())

	return nil
}

// GetClient returns the client.
func (d *DynamoDB) GetClient() any {
	return d.Client
}

//////
// Factory.
//////

// New creates a DynamoDB client from `cfg`, and checks connectivity.
func New(ctx context.Context, cfg Config, options ...Option) (*DynamoDB, error) {
	s, err := storage.New(ctx, Name)
	if err != nil {
		return nil, err
	}

	if err := validation.Validate(&cfg); err != nil {
		return nil, customapm.TraceError(ctx, err, s.GetLogger(), s.GetCounterInstantiationFailed())
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
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

	client := dynamodb.New(sess)

	// Test connection.
	r := retrier.New(retrier.ExponentialBackoff(3, shared.TimeoutPing), pingClassifier{})

	if err := r.RunCtx(ctx, func(ctx context.Context) error {
		_, err := client.ListTablesWithContext(ctx, &dynamodb.ListTablesInput{
			Limit: aws.Int64(1),
		})

		return err
	}); err != nil {
		return nil, customapm.TraceError(
			ctx,
			customerror.NewFailedToError("test connection", customerror.WithError(err)),
			s.GetLogger(),
			s.GetCounterPingFailed(),
		)
	}

	return newDynamoDB(ctx, s, client, cfg, options...)
}

// NewWithClient creates a DynamoDB storage around an existing `client`. No
// connectivity check is done.
func NewWithClient(ctx context.Context, client dynamodbiface.DynamoDBAPI, cfg Config, options ...Option) (*DynamoDB, error) {
	s, err := storage.New(ctx, Name)
	if err != nil {
		return nil, err
	}

	return newDynamoDB(ctx, s, client, cfg, options...)
}

func newDynamoDB(
	ctx context.Context,
	s *storage.Storage,
	client dynamodbiface.DynamoDBAPI,
	cfg Config,
	options ...Option,
) (*DynamoDB, error) {
	// Enforces IDocumentStore interface implementation.
	var _ storage.IDocumentStore = (*DynamoDB)(nil)

	d := &DynamoDB{
		Storage: s,

		Client:     client,
		Config:     cfg,
		KeySchemas: keyschema.NewMemory(cfg.KeySchemaTTL),
		Target:     PrefixTableName(cfg.TablePrefix),
	}

	for _, option := range options {
		option(d)
	}

	if err := validation.Validate(d); err != nil {
		return nil, customapm.TraceError(ctx, err, s.GetLogger(), s.GetCounterInstantiationFailed())
	}

	return d, nil
}

// pingClassifier retries only transient connectivity failures.
type pingClassifier struct{}

// Classify implements retrier.Classifier.
func (pingClassifier) Classify(err error) retrier.Action {
	if err == nil {
		return retrier.Succeed
	}

	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case dynamodb.ErrCodeRequestLimitExceeded, "ServiceUnavailable", "RequestError":
			return retrier.Retry
		}

		return retrier.Fail
	}

	return retrier.Retry
}
