package timestream

import (
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/thalesfsp/customerror"
	"github.com/thalesfsp/fleetdal/storage"
	"golang.org/x/text/cases"
)

//////
// Const, vars, and types.
//////

// TagName is the struct tag naming the column a field is read from. `-` skips
// the field.
const TagName = "timestream"

// Backend timestamp layouts, tried in order.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

var timeType = reflect.TypeOf(time.Time{})

// RowUnmarshaler is implemented by result types decoding rows themselves,
// without reflection.
type RowUnmarshaler interface {
	UnmarshalRow(columns []storage.Column, row storage.Row) error
}

//////
// Helpers.
//////

func foldName(name string) string {
	return cases.Fold().String(name)
}

func isStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t != timeType
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return cast.ToTimeE(s)
}

// datumValue turns a cell into the plain value the decoder reads: the scalar
// text, a list for arrays, nil for NULL.
func datumValue(d storage.Datum) any {
	switch {
	case d.Scalar != nil:
		return *d.Scalar
	case d.Array != nil:
		elements := make([]any, 0, len(d.Array))

		for _, element := range d.Array {
			elements = append(elements, datumValue(element))
		}

		return elements
	default:
		return nil
	}
}

// scalarHook converts scalar text to the target kind. Numbers are always
// read as decimal, so "010" is 10 and "0x1F" is an error.
func scalarHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	s, _ := data.(string)

	if to == timeType {
		return parseTime(s)
	}

	switch to.Kind() {
	case reflect.Bool:
		return cast.ToBoolE(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.ParseInt(s, 10, to.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseUint(s, 10, to.Bits())
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(s, to.Bits())
	}

	return data, nil
}

// decode writes `input` into `result`, a pointer. NULLs leave the target
// untouched. Embedded structs are flattened, so their fields are matched
// like top-level ones.
func decode(input, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(mapstructure.DecodeHookFuncType(scalarHook)),
		MatchName:        func(key, field string) bool { return foldName(key) == foldName(field) },
		Result:           result,
		Squash:           true,
		TagName:          TagName,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(input); err != nil {
		return customerror.NewFailedToError(
			"convert "+reflect.TypeOf(result).Elem().String(),
			customerror.WithErrorCode("ERR_CONVERSION"),
			customerror.WithError(err),
		)
	}

	return nil
}

// unmarshalRow decodes `row` into a T.
func unmarshalRow[T any](columns []storage.Column, row storage.Row) (T, error) {
	var t T

	target := any(&t)

	if v := reflect.ValueOf(&t).Elem(); v.Kind() == reflect.Ptr && isStruct(v.Type().Elem()) {
		v.Set(reflect.New(v.Type().Elem()))

		target = v.Interface()
	}

	if u, ok := target.(RowUnmarshaler); ok {
		return t, u.UnmarshalRow(columns, row)
	}

	// Scalars read the first column.
	if !isStruct(reflect.TypeOf(target).Elem()) {
		if len(row) == 0 {
			return t, nil
		}

		return t, decode(datumValue(row[0]), target)
	}

	record := make(map[string]any, len(columns))

	for i, column := range columns {
		if i >= len(row) {
			break
		}

		record[column.Name] = datumValue(row[i])
	}

	return t, decode(record, target)
}

//////
// Exported functionalities.
//////

// ConvertDatum converts one cell to T.
func ConvertDatum[T any](d storage.Datum) (T, error) {
	var t T

	if err := decode(datumValue(d), &t); err != nil {
		var zero T

		return zero, err
	}

	return t, nil
}

// UnmarshalRows decodes `rows` into T, in order. Scalar types read the first
// column. Struct fields, including those of embedded structs, are matched by
// case-insensitive name, or by the `timestream` tag. Unmatched columns, and
// fields, are skipped. Never nil.
func UnmarshalRows[T any](columns []storage.Column, rows []storage.Row) ([]T, error) {
	result := make([]T, 0, len(rows))

	for _, row := range rows {
		t, err := unmarshalRow[T](columns, row)
		if err != nil {
			return nil, err
		}

		result = append(result, t)
	}

	return result, nil
}
