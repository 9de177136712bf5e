package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Request limits
const (
	MaxIDLength       = 128
	MaxCategoryLength = 64
	MaxQueryLength    = 1024
	MaxKeyLength      = 16
	MaxKeysPerRequest = 256
	MaxExpression     = 4096
)

// Regular expressions for validation
var (
	// ToolIDPattern allows alphanumeric, hyphens, underscores, and dots (for service.tool format)
	ToolIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	// CategoryPattern allows lowercase letters, numbers, and hyphens
	CategoryPattern = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && value == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateToolID validates a tool ID field (allows dots for service.tool format)
func ValidateToolID(id, fieldName string, required bool) error {
	if err := ValidateString(id, fieldName, 1, MaxIDLength, required); err != nil {
		return err
	}

	if id != "" && !ToolIDPattern.MatchString(id) {
		return fmt.Errorf("%s contains invalid characters (only alphanumeric, dots, hyphens, and underscores allowed)", fieldName)
	}

	return nil
}

// ValidateCategory validates a category field
func ValidateCategory(category string, required bool) error {
	if err := ValidateString(category, "category", 0, MaxCategoryLength, required); err != nil {
		return err
	}

	if category != "" && !CategoryPattern.MatchString(category) {
		return fmt.Errorf("category must contain only lowercase letters, numbers, and hyphens")
	}

	return nil
}

// ValidateQuery validates a discovery query
func ValidateQuery(query string) error {
	if err := ValidateString(query, "query", 1, MaxQueryLength, true); err != nil {
		return err
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query must not be blank")
	}
	return nil
}

// ValidateExpression bounds an expression before it reaches the evaluator.
// Empty is allowed and evaluates to 0.
func ValidateExpression(expression string) error {
	return ValidateString(expression, "expression", 0, MaxExpression, false)
}

// ValidateKeys validates a batch of keypad keys
func ValidateKeys(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("keys must not be empty")
	}
	if len(keys) > MaxKeysPerRequest {
		return fmt.Errorf("too many keys (maximum %d)", MaxKeysPerRequest)
	}

	for i, key := range keys {
		if err := ValidateString(key, fmt.Sprintf("keys[%d]", i), 1, MaxKeyLength, true); err != nil {
			return err
		}
	}

	return nil
}
