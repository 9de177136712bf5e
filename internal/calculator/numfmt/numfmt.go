// Package numfmt renders calculator numbers for the display.
package numfmt

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	// Decimals is the precision of both the fixed and scientific forms.
	Decimals = 6

	scientificAbove = 1e9
	scientificBelow = 1e-6
)

// Smart renders v in fixed-point with 6 decimals and trailing zeros trimmed,
// or in scientific notation with 6 fractional digits when |v| >= 1e9 or
// 0 < |v| < 1e-6. Non-finite values render as "0".
func Smart(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= scientificAbove || abs < scientificBelow {
		return Scientific(v, Decimals)
	}
	return humanize.Ftoa(v)
}

// Scientific renders v as d.dddddde±x with digits fractional digits. The
// exponent carries no leading zeros: 1.5e9 is "1.500000e+9".
func Scientific(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mantissa, exponent, ok := strings.Cut(s, "e")
	if !ok || len(exponent) < 2 {
		return s
	}
	sign, magnitude := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if magnitude == "" {
		magnitude = "0"
	}
	return mantissa + "e" + sign + magnitude
}

// Plain renders v as the shortest plain decimal that parses back to v.
func Plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Fixed renders v with exactly decimals fractional digits.
func Fixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
