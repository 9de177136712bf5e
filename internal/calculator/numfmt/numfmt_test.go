package numfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmart(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1500000000, "1.500000e+9"},
		{0.0000003, "3.000000e-7"},
		{2.5, "2.5"},
		{3, "3"},
		{-1234.5678, "-1234.5678"},
		{1.0 / 3, "0.333333"},
		{2.0 / 3, "0.666667"},
		{-2.0 / 3, "-0.666667"},
		{12.0000004, "12"},
		{0.000001, "0.000001"},
		{999999999, "999999999"},
		{-2e12, "-2.000000e+12"},
		{1.23456789e-10, "1.234568e-10"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{math.Inf(1), "0"},
		{math.NaN(), "0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Smart(tt.in), "Smart(%v)", tt.in)
	}
}

func TestScientific(t *testing.T) {
	assert.Equal(t, "1.500000e+9", Scientific(1.5e9, 6))
	assert.Equal(t, "1.00e+0", Scientific(1, 2))
	assert.Equal(t, "-4.2e-300", Scientific(-4.2e-300, 1))
	assert.Equal(t, "1.000000e+100", Scientific(1e100, 6))
}

func TestPlainAndFixed(t *testing.T) {
	assert.Equal(t, "0.5", Plain(0.5))
	assert.Equal(t, "0.3333333333333333", Plain(1.0/3))
	assert.Equal(t, "1000000000000000000000", Plain(1e21))
	assert.Equal(t, "-42", Plain(-42))

	assert.Equal(t, "212.00", Fixed(212, 2))
	assert.Equal(t, "0.67", Fixed(2.0/3, 2))
}
