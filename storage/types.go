package storage

//////
// Document store.
//////

// Operator is a filter comparison operator.
type Operator string

const (
	Equal              Operator = "Equal"
	NotEqual           Operator = "NotEqual"
	LessThan           Operator = "LessThan"
	LessThanOrEqual    Operator = "LessThanOrEqual"
	GreaterThan        Operator = "GreaterThan"
	GreaterThanOrEqual Operator = "GreaterThanOrEqual"
	BeginsWith         Operator = "BeginsWith"
	Contains           Operator = "Contains"
	NotContains        Operator = "NotContains"
	In                 Operator = "In"
)

// String implements the Stringer interface.
func (o Operator) String() string {
	return string(o)
}

// FilterCondition is one `(attribute, operator, value)` clause narrowing a
// scan. A list of conditions is always AND-combined.
type FilterCondition struct {
	// AttributeName is the real attribute name, as stored.
	AttributeName string `json:"attributeName" validate:"required"`

	// Operator to compare with.
	Operator Operator `json:"operator" validate:"required"`

	// Value is a string, number, bool, nil, or a homogeneous list of those.
	Value any `json:"value"`
}

//////
// Time-series store.
//////

// Column describes one column of a result set.
type Column struct {
	// Name of the column.
	Name string `json:"name"`

	// Type is the backend scalar type, e.g. VARCHAR, BIGINT, TIMESTAMP.
	Type string `json:"type"`
}

// Datum is one cell. A nil Scalar with a nil Array is a NULL.
type Datum struct {
	// Scalar is the textual scalar value.
	Scalar *string `json:"scalar,omitempty"`

	// Array holds the elements of an array value.
	Array []Datum `json:"array,omitempty"`
}

// IsNull returns true if the datum carries no value.
func (d Datum) IsNull() bool {
	return d.Scalar == nil && d.Array == nil
}

// Row is an ordered list of cells, aligned with the result set columns.
type Row []Datum

// ResultSet is one raw page returned by the time-series store.
type ResultSet struct {
	// Columns of the page.
	Columns []Column `json:"columns"`

	// Rows of the page, in arrival order.
	Rows []Row `json:"rows"`

	// NextToken is the continuation token. Empty signals exhaustion.
	NextToken string `json:"nextToken,omitempty"`

	// QueryID is the backend id of the query, if any.
	QueryID string `json:"queryId,omitempty"`
}

// Page is one round trip's typed result.
type Page[T any] struct {
	// Items of the page.
	Items []T `json:"items"`

	// ContinuationToken is empty when the result is exhausted.
	ContinuationToken string `json:"continuationToken,omitempty"`

	// Query is the literal query text sent to the backend. Thread it back with
	// the continuation token.
	Query string `json:"query"`
}

// HasMore returns true if there are more pages to fetch.
func (p *Page[T]) HasMore() bool {
	return p != nil && p.ContinuationToken != ""
}
