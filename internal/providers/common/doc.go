// Package common holds the result constructors and parameter readers shared
// by the calculator and conversion providers.
//
// Tool parameters arrive as decoded JSON (map[string]interface{}), so a
// number may be a float64, an integer type, or a string typed into a form
// field. GetNumber accepts all of them; NumberOrZero additionally maps
// anything unparseable to 0, which is how the conversion panels treat
// non-numeric input.
package common
