package timestream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]any
		want     string
	}{
		{
			name:     "Should double quotes",
			template: "SELECT * FROM Drivers WHERE name = @name",
			params:   map[string]any{"@name": "O'Brien"},
			want:     "SELECT * FROM Drivers WHERE name = 'O''Brien'",
		},
		{
			name:     "Should join string lists",
			template: "assetId IN (@ids)",
			params:   map[string]any{"@ids": []string{"a1", "it's"}},
			want:     "assetId IN ('a1', 'it''s')",
		},
		{
			name:     "Should replace longer names first",
			template: "id = @id AND ids IN (@ids)",
			params:   map[string]any{"@id": "a1", "@ids": []string{"a2", "a3"}},
			want:     "id = 'a1' AND ids IN ('a2', 'a3')",
		},
		{
			name:     "Should replace every occurrence",
			template: "@x = @x",
			params:   map[string]any{"@x": 1},
			want:     "1 = 1",
		},
		{
			name:     "Should format scalars",
			template: "@b AND @f AND @n AND @null",
			params:   map[string]any{"@b": true, "@f": 2.5, "@n": int64(-3), "@null": nil},
			want:     "TRUE AND 2.5 AND -3 AND NULL",
		},
		{
			name:     "Should format number lists",
			template: "speed IN (@speeds)",
			params:   map[string]any{"@speeds": []int{10, 20}},
			want:     "speed IN (10, 20)",
		},
		{
			name:     "Should format times",
			template: "time > @from AND time > ago(@window)",
			params: map[string]any{
				"@from":   time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600)),
				"@window": TimeParameter{Value: 120, Unit: "m"},
			},
			want: "time > from_iso8601_timestamp('2024-01-02T02:04:05Z') AND time > ago(120m)",
		},
		{
			name:     "Should not substitute substituted text",
			template: "a = @a AND b = @b",
			params:   map[string]any{"@a": "@b", "@b": "x"},
			want:     "a = '@b' AND b = 'x'",
		},
		{
			name:     "Should keep templates without params",
			template: "SELECT 1",
			params:   nil,
			want:     "SELECT 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTemplate(tt.template, tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTemplate_errors(t *testing.T) {
	_, err := ResolveTemplate("@x", map[string]any{"@x": map[string]string{}})
	assert.Error(t, err)

	_, err = ResolveTemplate("@x", map[string]any{"": "x"})
	assert.Error(t, err)
}

func TestFormatLiteral_emptyLists(t *testing.T) {
	for _, v := range []any{[]string{}, []int{}, []int64(nil), []float64{}} {
		_, err := FormatLiteral(v)
		assert.ErrorIs(t, err, ErrRequiredListValues)
	}

	_, err := ResolveTemplate("SELECT * FROM t WHERE a IN (@ids)", map[string]any{"@ids": []string{}})
	assert.ErrorIs(t, err, ErrRequiredListValues)
}
