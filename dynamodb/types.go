// Package dynamodb provides the document store client, backed by DynamoDB.
package dynamodb

import (
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

//////
// Types.
//////

// Item represents a DynamoDB item.
type Item = map[string]*dynamodb.AttributeValue

// Items represents a slice of DynamoDB items.
type Items = []Item

// TableDescription represents DynamoDB table description.
type TableDescription = dynamodb.TableDescription

// FilterExpression is the immutable result of compiling filter conditions:
// the combined expression and the two parallel token maps it references.
type FilterExpression struct {
	// Expression is the AND-combined fragments, e.g.
	// `#attr0 = :val0 AND begins_with(#attr1, :val1)`.
	Expression string

	// Names maps `#attrN` tokens to real attribute names.
	Names map[string]*string

	// Values maps `:valN` tokens to typed values.
	Values map[string]*dynamodb.AttributeValue
}
