package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// amounts above this are assumed to be input mistakes
var maxAmount = decimal.New(1, 12) // 10^12

// ParseAmount parses a required positive money amount. Malformed input is
// rejected here, at the boundary, instead of being coerced to zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", v)
	}
	if v.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", v)
	}
	return v, nil
}

// ParseOptionalAmount is ParseAmount but an empty string means zero and
// non-negative values are allowed (savings balances start at zero).
func ParseOptionalAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if v.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", v)
	}
	if v.GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount too large, got %s", v)
	}
	return v, nil
}

// ParseDate parses a transaction date. An empty string means "now".
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

// ValidateCategory checks a spending category name.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is required")
	}
	if len(category) > 64 {
		return fmt.Errorf("category too long, max 64 characters")
	}
	return nil
}

// ValidateUsername checks signup usernames: 3-20 word characters.
func ValidateUsername(username string) error {
	if len(username) < 3 || len(username) > 20 {
		return fmt.Errorf("username must be 3-20 characters")
	}
	for _, ch := range username {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '_':
		default:
			return fmt.Errorf("username may only contain letters, digits and underscore")
		}
	}
	return nil
}
