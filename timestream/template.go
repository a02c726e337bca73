package timestream

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/thalesfsp/customerror"
)

//////
// Const, vars, and types.
//////

// TimeParameter is a relative time literal, e.g. `{120, "m"}` renders as
// `120m`, for clauses like `time > ago(@window)`.
type TimeParameter struct {
	// Value of the offset.
	Value int64 `json:"value"`

	// Unit of the offset, e.g. `ns`, `s`, `m`, `h`, `d`.
	Unit string `json:"unit" validate:"required"`
}

// String implements the Stringer interface.
func (t TimeParameter) String() string {
	return fmt.Sprintf("%d%s", t.Value, t.Unit)
}

//////
// Template substitution.
//////

// ResolveTemplate replaces every literal occurrence of each placeholder name,
// e.g. `@assetId`, with the formatted literal of its value. Longer names are
// replaced first, so `@id` never clobbers `@ids`.
//
// WARN: This is text substitution, not parameter binding. Strings only get
// their single quotes doubled.
func ResolveTemplate(template string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return template, nil
	}

	names := make([]string, 0, len(params))

	for name := range params {
		if name == "" {
			return "", customerror.NewRequiredError("parameter name", customerror.WithErrorCode("ERR_REQUIRED_PARAMETER_NAME"))
		}

		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}

		return names[i] < names[j]
	})

	oldnew := make([]string, 0, len(names)*2)

	for _, name := range names {
		literal, err := FormatLiteral(params[name])
		if err != nil {
			return "", err
		}

		oldnew = append(oldnew, name, literal)
	}

	return strings.NewReplacer(oldnew...).Replace(template), nil
}

// FormatLiteral renders `v` as a query literal. Supported: nil, strings,
// string lists, numbers, number lists, bools, time.Time, and TimeParameter.
// Lists must not be empty.
func FormatLiteral(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quote(t), nil
	case []string:
		if len(t) == 0 {
			return "", ErrRequiredListValues
		}

		quoted := make([]string, 0, len(t))

		for _, s := range t {
			quoted = append(quoted, quote(s))
		}

		return strings.Join(quoted, ", "), nil
	case bool:
		if t {
			return "TRUE", nil
		}

		return "FALSE", nil
	case time.Time:
		return fmt.Sprintf("from_iso8601_timestamp('%s')", t.UTC().Format(time.RFC3339Nano)), nil
	case TimeParameter:
		return t.String(), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToStringE(t)
	case []int:
		return joinNumbers(t)
	case []int64:
		return joinNumbers(t)
	case []float64:
		return joinNumbers(t)
	default:
		return "", customerror.NewFailedToError(
			fmt.Sprintf("convert parameter of type %T to a query literal", v),
			customerror.WithErrorCode("ERR_UNSUPPORTED_PARAMETER"),
		)
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func joinNumbers[N int | int64 | float64](numbers []N) (string, error) {
	if len(numbers) == 0 {
		return "", ErrRequiredListValues
	}

	literals := make([]string, 0, len(numbers))

	for _, n := range numbers {
		literal, err := cast.ToStringE(n)
		if err != nil {
			return "", err
		}

		literals = append(literals, literal)
	}

	return strings.Join(literals, ", "), nil
}
