package dynamodb

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/keyschema"
	"github.com/thalesfsp/fleetdal/storage"
)

//////
// Backend error classification. Backend errors are returned unchanged, these
// let callers tell them apart.
//////

// IsNotFoundError checks if the error is a DynamoDB resource (table) not
// found error.
func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for AWS specific error
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		return awsErr.Code() == dynamodb.ErrCodeResourceNotFoundException
	}

	// Check if it's a customerror not found type
	if customErr, ok := customerror.To(err); ok {
		return customErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsProvisionedThroughputExceededError checks if the error is a throughput exceeded error.
func IsProvisionedThroughputExceededError(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		return awsErr.Code() == dynamodb.ErrCodeProvisionedThroughputExceededException
	}

	return false
}

// IsThrottlingError checks if the error is any kind of request throttling.
func IsThrottlingError(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case dynamodb.ErrCodeProvisionedThroughputExceededException,
			dynamodb.ErrCodeRequestLimitExceeded,
			"ThrottlingException":
			return true
		}
	}

	return false
}

//////
// Filter expressions.
//////

var (
	infixOperators = map[storage.Operator]string{
		storage.Equal:              "=",
		storage.NotEqual:           "<>",
		storage.LessThan:           "<",
		storage.LessThanOrEqual:    "<=",
		storage.GreaterThan:        ">",
		storage.GreaterThanOrEqual: ">=",
	}

	functionOperators = map[storage.Operator]string{
		storage.BeginsWith:  "begins_with",
		storage.Contains:    "contains",
		storage.NotContains: "NOT contains",
	}
)

// BuildFilterExpression compiles AND-combined conditions. Condition `i` gets
// the name token `#attrI` and the value token `:valI`, so reserved words never
// appear literally in the expression. Each call returns fresh maps.
//
// NOTE: `In` expands a list value to `#attrI IN (:valI_0, :valI_1, ...)`.
func BuildFilterExpression(conditions []storage.FilterCondition) (*FilterExpression, error) {
	if len(conditions) == 0 {
		return nil, nil
	}

	fragments := make([]string, 0, len(conditions))
	names := make(map[string]*string, len(conditions))
	values := make(map[string]*dynamodb.AttributeValue, len(conditions))

	for i, condition := range conditions {
		if condition.AttributeName == "" {
			return nil, ErrRequiredAttributeName
		}

		nameToken := fmt.Sprintf("#attr%d", i)
		valueToken := fmt.Sprintf(":val%d", i)

		names[nameToken] = aws.String(condition.AttributeName)

		if condition.Operator == storage.In {
			elements := listElements(condition.Value)
			if len(elements) == 0 {
				return nil, ErrRequiredInValues
			}

			tokens := make([]string, 0, len(elements))

			for j, element := range elements {
				token := fmt.Sprintf("%s_%d", valueToken, j)

				av, err := marshalFilterValue(condition.AttributeName, element)
				if err != nil {
					return nil, err
				}

				values[token] = av
				tokens = append(tokens, token)
			}

			fragments = append(fragments, fmt.Sprintf("%s IN (%s)", nameToken, strings.Join(tokens, ", ")))

			continue
		}

		av, err := marshalFilterValue(condition.AttributeName, condition.Value)
		if err != nil {
			return nil, err
		}

		values[valueToken] = av

		if op, ok := infixOperators[condition.Operator]; ok {
			fragments = append(fragments, fmt.Sprintf("%s %s %s", nameToken, op, valueToken))

			continue
		}

		if fn, ok := functionOperators[condition.Operator]; ok {
			fragments = append(fragments, fmt.Sprintf("%s(%s, %s)", fn, nameToken, valueToken))

			continue
		}

		return nil, customerror.New(
			fmt.Sprintf("invalid filter operator %q", condition.Operator),
			customerror.WithErrorCode("ERR_INVALID_FILTER_OPERATOR"),
		)
	}

	return &FilterExpression{
		Expression: strings.Join(fragments, " AND "),
		Names:      names,
		Values:     values,
	}, nil
}

func marshalFilterValue(attributeName string, value any) (*dynamodb.AttributeValue, error) {
	av, err := dynamodbattribute.Marshal(value)
	if err != nil {
		return nil, customerror.NewFailedToError(
			fmt.Sprintf("marshal filter value for %s", attributeName),
			customerror.WithError(err),
		)
	}

	return av, nil
}

// listElements spreads a slice or array into its elements. Anything else,
// including []byte, is a single element.
func listElements(value any) []any {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)

	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() == reflect.Uint8 {
		return []any{value}
	}

	elements := make([]any, 0, rv.Len())

	for i := range rv.Len() {
		elements = append(elements, rv.Index(i).Interface())
	}

	return elements
}

//////
// Items and keys.
//////

// MarshalItem marshals a Go value to a DynamoDB item. Unless `keepNulls`,
// NULL attributes are left out of the item instead of being written.
func MarshalItem(v any, keepNulls bool) (Item, error) {
	item, err := dynamodbattribute.MarshalMap(v)
	if err != nil {
		return nil, customerror.NewFailedToError("marshal item", customerror.WithError(err))
	}

	if keepNulls {
		return item, nil
	}

	for name, av := range item {
		if av == nil || aws.BoolValue(av.NULL) {
			delete(item, name)
		}
	}

	return item, nil
}

// UnmarshalItem unmarshals a DynamoDB item to a Go value.
func UnmarshalItem(item Item, v any) error {
	if err := dynamodbattribute.UnmarshalMap(item, v); err != nil {
		return customerror.NewFailedToError("unmarshal item", customerror.WithError(err))
	}

	return nil
}

// UnmarshalItems unmarshals a slice of DynamoDB items to a slice of Go values.
func UnmarshalItems(items Items, v any) error {
	if err := dynamodbattribute.UnmarshalListOfMaps(items, v); err != nil {
		return customerror.NewFailedToError("unmarshal items", customerror.WithError(err))
	}

	return nil
}

// BuildKey builds the physical key of an item from the table key names.
func BuildKey(names keyschema.TableKeyNames, partitionKey, sortKey string) (Item, error) {
	key := Item{
		names.PartitionKey: {S: aws.String(partitionKey)},
	}

	if sortKey == "" {
		return key, nil
	}

	if !names.HasSortKey() {
		return nil, ErrTableHasNoSortKey
	}

	key[names.SortKey] = &dynamodb.AttributeValue{S: aws.String(sortKey)}

	return key, nil
}

// KeyNamesFrom extracts the key names from a table description.
func KeyNamesFrom(description *TableDescription) (keyschema.TableKeyNames, error) {
	var names keyschema.TableKeyNames

	if description != nil {
		for _, element := range description.KeySchema {
			switch aws.StringValue(element.KeyType) {
			case dynamodb.KeyTypeHash:
				names.PartitionKey = aws.StringValue(element.AttributeName)
			case dynamodb.KeyTypeRange:
				names.SortKey = aws.StringValue(element.AttributeName)
			}
		}
	}

	if names.PartitionKey == "" {
		return names, customerror.NewMissingError("partition key in table description")
	}

	return names, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
