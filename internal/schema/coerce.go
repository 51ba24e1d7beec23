package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseDate attempts to parse a raw cell as a calendar date using the given
// layouts in order. Returns the date truncated to day precision.
func ParseDate(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseAmount attempts numeric coercion of a raw cell. Common spreadsheet
// noise is stripped first: currency symbols, thousands separators, and
// accounting-style parentheses for negatives.
func ParseAmount(value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, false
	}

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = value[1 : len(value)-1]
	}
	value = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "").Replace(value)

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	if negative {
		d = d.Neg()
	}
	return d, true
}

// IsNumericColumn reports whether a column's content is numeric: every
// non-empty value coerces, and at least one value is present. This mirrors a
// typed-frame "numeric dtype" check on untyped string input.
func IsNumericColumn(values []string) bool {
	seen := false
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := ParseAmount(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}
