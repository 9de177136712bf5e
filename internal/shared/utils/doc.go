// Package utils validates request input before it reaches a provider or
// the evaluator.
package utils
