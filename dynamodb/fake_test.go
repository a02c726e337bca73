package dynamodb

import (
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

// fakeTable is an ordered, in-memory table.
type fakeTable struct {
	partitionKey string
	sortKey      string
	items        Items
}

// fakeDynamoDB implements the calls the client makes. Pages hold at most
// `pageSize` items, filtering happens after paging, like the real service.
type fakeDynamoDB struct {
	dynamodbiface.DynamoDBAPI

	mu sync.Mutex

	pageSize int
	tables   map[string]*fakeTable

	// err, if set, fails every data call. Describe isn't affected.
	err error

	describeCalls int
	dataCalls     int
	queryCalls    int
	scanCalls     int
	lastPut       Item
}

func newFakeDynamoDB(pageSize int) *fakeDynamoDB {
	return &fakeDynamoDB{
		pageSize: pageSize,
		tables:   map[string]*fakeTable{},
	}
}

func (f *fakeDynamoDB) withTable(physical, partitionKey, sortKey string, items ...Item) *fakeDynamoDB {
	f.tables[physical] = &fakeTable{
		partitionKey: partitionKey,
		sortKey:      sortKey,
		items:        items,
	}

	return f
}

func (f *fakeDynamoDB) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.describeCalls + f.dataCalls
}

func notFound(table string) error {
	return awserr.New(dynamodb.ErrCodeResourceNotFoundException, "table not found: "+table, nil)
}

func (f *fakeDynamoDB) table(name *string) (*fakeTable, error) {
	t, ok := f.tables[aws.StringValue(name)]
	if !ok {
		return nil, notFound(aws.StringValue(name))
	}

	return t, nil
}

func (t *fakeTable) indexOf(key Item) int {
	for i, item := range t.items {
		if scalarOf(item[t.partitionKey]) != scalarOf(key[t.partitionKey]) {
			continue
		}

		if t.sortKey != "" && scalarOf(item[t.sortKey]) != scalarOf(key[t.sortKey]) {
			continue
		}

		return i
	}

	return -1
}

func scalarOf(av *dynamodb.AttributeValue) string {
	switch {
	case av == nil:
		return ""
	case av.S != nil:
		return *av.S
	case av.N != nil:
		return *av.N
	default:
		return ""
	}
}

// matches evaluates the `=` and `begins_with` subset of the expression
// grammar.
func matches(item Item, expression *string, names map[string]*string, values Item) bool {
	if aws.StringValue(expression) == "" {
		return true
	}

	for _, fragment := range strings.Split(*expression, " AND ") {
		if strings.HasPrefix(fragment, "begins_with(") {
			args := strings.Split(strings.TrimSuffix(strings.TrimPrefix(fragment, "begins_with("), ")"), ", ")

			if !strings.HasPrefix(scalarOf(item[*names[args[0]]]), scalarOf(values[args[1]])) {
				return false
			}

			continue
		}

		parts := strings.Fields(fragment)
		if len(parts) != 3 || parts[1] != "=" {
			return false
		}

		if scalarOf(item[*names[parts[0]]]) != scalarOf(values[parts[2]]) {
			return false
		}
	}

	return true
}

func (f *fakeDynamoDB) page(items Items, start Item, expression *string, names map[string]*string, values Item) (Items, Item) {
	offset := 0

	if start != nil {
		offset, _ = strconv.Atoi(scalarOf(start["offset"]))
	}

	end := min(offset+f.pageSize, len(items))

	matched := Items{}

	for _, item := range items[offset:end] {
		if matches(item, expression, names, values) {
			matched = append(matched, item)
		}
	}

	if end >= len(items) {
		return matched, nil
	}

	return matched, Item{"offset": {N: aws.String(strconv.Itoa(end))}}
}

func (f *fakeDynamoDB) DescribeTableWithContext(_ aws.Context, in *dynamodb.DescribeTableInput, _ ...request.Option) (*dynamodb.DescribeTableOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.describeCalls++

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	schema := []*dynamodb.KeySchemaElement{
		{AttributeName: aws.String(t.partitionKey), KeyType: aws.String(dynamodb.KeyTypeHash)},
	}

	if t.sortKey != "" {
		schema = append(schema, &dynamodb.KeySchemaElement{
			AttributeName: aws.String(t.sortKey),
			KeyType:       aws.String(dynamodb.KeyTypeRange),
		})
	}

	return &dynamodb.DescribeTableOutput{
		Table: &dynamodb.TableDescription{
			TableName: in.TableName,
			KeySchema: schema,
		},
	}, nil
}

func (f *fakeDynamoDB) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dataCalls++

	if f.err != nil {
		return nil, f.err
	}

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	if i := t.indexOf(in.Key); i >= 0 {
		return &dynamodb.GetItemOutput{Item: t.items[i]}, nil
	}

	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamoDB) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dataCalls++

	if f.err != nil {
		return nil, f.err
	}

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	f.lastPut = in.Item

	if i := t.indexOf(in.Item); i >= 0 {
		t.items[i] = in.Item
	} else {
		t.items = append(t.items, in.Item)
	}

	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dataCalls++

	if f.err != nil {
		return nil, f.err
	}

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	if i := t.indexOf(in.Key); i >= 0 {
		t.items = append(t.items[:i], t.items[i+1:]...)
	}

	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) QueryWithContext(_ aws.Context, in *dynamodb.QueryInput, _ ...request.Option) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dataCalls++
	f.queryCalls++

	if f.err != nil {
		return nil, f.err
	}

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	items, last := f.page(t.items, in.ExclusiveStartKey, in.KeyConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)

	return &dynamodb.QueryOutput{Items: items, LastEvaluatedKey: last}, nil
}

func (f *fakeDynamoDB) ScanWithContext(_ aws.Context, in *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dataCalls++
	f.scanCalls++

	if f.err != nil {
		return nil, f.err
	}

	t, err := f.table(in.TableName)
	if err != nil {
		return nil, err
	}

	items, last := f.page(t.items, in.ExclusiveStartKey, in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)

	return &dynamodb.ScanOutput{Items: items, LastEvaluatedKey: last}, nil
}
