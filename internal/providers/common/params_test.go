package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNumber(t *testing.T) {
	params := map[string]interface{}{
		"float":  2.5,
		"int":    3,
		"int64":  int64(4),
		"f32":    float32(0.5),
		"string": " 12.5 ",
		"sci":    "1.5e3",
		"bad":    "abc",
		"bool":   true,
	}

	tests := []struct {
		key  string
		want float64
		ok   bool
	}{
		{"float", 2.5, true},
		{"int", 3, true},
		{"int64", 4, true},
		{"f32", 0.5, true},
		{"string", 12.5, true},
		{"sci", 1500, true},
		{"bad", 0, false},
		{"bool", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := GetNumber(params, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 0.0, NumberOrZero(params, "bad"))
	assert.Equal(t, 0.0, NumberOrZero(params, "missing"))
	assert.Equal(t, 2.5, NumberOrZero(params, "float"))
}

func TestGetStrings(t *testing.T) {
	params := map[string]interface{}{
		"decoded": []interface{}{"1", "+", "2"},
		"native":  []string{"C"},
		"mixed":   []interface{}{"1", 2},
	}

	got, ok := GetStrings(params, "decoded")
	require.True(t, ok)
	assert.Equal(t, []string{"1", "+", "2"}, got)

	got, ok = GetStrings(params, "native")
	require.True(t, ok)
	assert.Equal(t, []string{"C"}, got)

	_, ok = GetStrings(params, "mixed")
	assert.False(t, ok)
	_, ok = GetStrings(params, "missing")
	assert.False(t, ok)
}

func TestResults(t *testing.T) {
	res, err := Success(map[string]interface{}{"value": 1.0})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.Error)

	res, err = Failure("boom")
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, "boom", *res.Error)

	res, _ = FailureWithData("syntax_error", map[string]interface{}{"display": "Error"})
	assert.False(t, res.Success)
	assert.Equal(t, "Error", res.Data["display"])
}
