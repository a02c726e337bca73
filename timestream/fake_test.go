package timestream

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/timestreamquery"
	"github.com/aws/aws-sdk-go/service/timestreamquery/timestreamqueryiface"
)

const tokenPrefix = "page-"

// fakeTimestream serves `pages` in order, page N+1 being behind the token
// `page-N+1`.
type fakeTimestream struct {
	timestreamqueryiface.TimestreamQueryAPI

	mu sync.Mutex

	pages []*timestreamquery.QueryOutput
	err   error

	inputs []*timestreamquery.QueryInput
}

func newFakeTimestream(pages ...*timestreamquery.QueryOutput) *fakeTimestream {
	return &fakeTimestream{pages: pages}
}

func (f *fakeTimestream) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.inputs)
}

func (f *fakeTimestream) QueryWithContext(_ aws.Context, in *timestreamquery.QueryInput, _ ...request.Option) (*timestreamquery.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inputs = append(f.inputs, in)

	if f.err != nil {
		return nil, f.err
	}

	idx := 0

	if token := aws.StringValue(in.NextToken); token != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(token, tokenPrefix))
		if err != nil || n >= len(f.pages) {
			return nil, fmt.Errorf("invalid token %q", token)
		}

		idx = n
	}

	if len(f.pages) == 0 {
		return &timestreamquery.QueryOutput{}, nil
	}

	page := *f.pages[idx]
	page.NextToken = nil

	if idx+1 < len(f.pages) {
		page.NextToken = aws.String(tokenPrefix + strconv.Itoa(idx+1))
	}

	return &page, nil
}

func scalarColumn(name, scalarType string) *timestreamquery.ColumnInfo {
	return &timestreamquery.ColumnInfo{
		Name: aws.String(name),
		Type: &timestreamquery.Type{ScalarType: aws.String(scalarType)},
	}
}

var readingColumns = []*timestreamquery.ColumnInfo{
	scalarColumn("assetId", timestreamquery.ScalarTypeVarchar),
	scalarColumn("time", timestreamquery.ScalarTypeTimestamp),
	scalarColumn("measure_value::double", timestreamquery.ScalarTypeDouble),
}

// readingPage returns `n` readings numbered from `start`.
func readingPage(start, n int) *timestreamquery.QueryOutput {
	rows := make([]*timestreamquery.Row, 0, n)

	for i := start; i < start+n; i++ {
		rows = append(rows, &timestreamquery.Row{
			Data: []*timestreamquery.Datum{
				{ScalarValue: aws.String(fmt.Sprintf("a%03d", i))},
				{ScalarValue: aws.String("2024-01-02 03:04:05.000000000")},
				{ScalarValue: aws.String(strconv.Itoa(i) + ".5")},
			},
		})
	}

	return &timestreamquery.QueryOutput{
		ColumnInfo: readingColumns,
		Rows:       rows,
		QueryId:    aws.String("backend-query"),
	}
}

func scalarPage(values ...string) *timestreamquery.QueryOutput {
	rows := make([]*timestreamquery.Row, 0, len(values))

	for _, v := range values {
		rows = append(rows, &timestreamquery.Row{
			Data: []*timestreamquery.Datum{{ScalarValue: aws.String(v)}},
		})
	}

	return &timestreamquery.QueryOutput{
		ColumnInfo: []*timestreamquery.ColumnInfo{scalarColumn("_col0", timestreamquery.ScalarTypeBigint)},
		Rows:       rows,
	}
}
