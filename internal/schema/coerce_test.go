package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	layouts := DefaultConfig().DateLayouts

	tests := []struct {
		name     string
		value    string
		expected string
		ok       bool
	}{
		{
			name:     "ISO date",
			value:    "2024-01-15",
			expected: "2024-01-15",
			ok:       true,
		},
		{
			name:     "US slash date",
			value:    "01/31/2024",
			expected: "2024-01-31",
			ok:       true,
		},
		{
			name:     "short slash date",
			value:    "1/2/2024",
			expected: "2024-01-02",
			ok:       true,
		},
		{
			name:     "datetime truncated to day",
			value:    "2024-03-05 13:45:12",
			expected: "2024-03-05",
			ok:       true,
		},
		{
			name:     "month name date",
			value:    "Jan 2, 2024",
			expected: "2024-01-02",
			ok:       true,
		},
		{
			name:     "surrounding whitespace",
			value:    "  2024-06-01  ",
			expected: "2024-06-01",
			ok:       true,
		},
		{
			name:  "not a date",
			value: "groceries",
			ok:    false,
		},
		{
			name:  "empty value",
			value: "",
			ok:    false,
		},
		{
			name:  "bare number",
			value: "42",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseDate(tt.value, layouts)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, expected %v", tt.value, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if got := parsed.Format("2006-01-02"); got != tt.expected {
				t.Errorf("ParseDate(%q) = %s, expected %s", tt.value, got, tt.expected)
			}
			if h, m, s := parsed.Clock(); h != 0 || m != 0 || s != 0 {
				t.Errorf("ParseDate(%q) not truncated to day: %v", tt.value, parsed)
			}
			if parsed.Location() != time.UTC {
				t.Errorf("ParseDate(%q) location = %v, expected UTC", tt.value, parsed.Location())
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		ok       bool
	}{
		{"plain decimal", "4.50", "4.5", true},
		{"integer", "1200", "1200", true},
		{"negative sign", "-15.99", "-15.99", true},
		{"dollar sign", "$12.00", "12", true},
		{"thousands separators", "$1,234.56", "1234.56", true},
		{"pound sign", "£99.95", "99.95", true},
		{"accounting negative", "(50.00)", "-50", true},
		{"accounting with separators", "(1,000.00)", "-1000", true},
		{"internal space", "1 234.00", "1234", true},
		{"text", "pending", "", false},
		{"empty", "", "", false},
		{"mixed digits and text", "12.3a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := ParseAmount(tt.value)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, expected %v", tt.value, ok, tt.ok)
			}
			if !tt.ok {
				if !amount.IsZero() {
					t.Errorf("ParseAmount(%q) failed but returned %s, expected zero", tt.value, amount)
				}
				return
			}
			expected, err := decimal.NewFromString(tt.expected)
			if err != nil {
				t.Fatalf("bad expectation %q: %v", tt.expected, err)
			}
			if !amount.Equal(expected) {
				t.Errorf("ParseAmount(%q) = %s, expected %s", tt.value, amount, expected)
			}
		})
	}
}

func TestIsNumericColumn(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected bool
	}{
		{
			name:     "all numeric",
			values:   []string{"1.50", "2", "-3.25"},
			expected: true,
		},
		{
			name:     "currency noise still numeric",
			values:   []string{"$1,200.00", "(45.00)"},
			expected: true,
		},
		{
			name:     "one non-numeric value disqualifies",
			values:   []string{"1.50", "pending", "3.00"},
			expected: false,
		},
		{
			name:     "empty values ignored",
			values:   []string{"", "2.00", ""},
			expected: true,
		},
		{
			name:     "all empty",
			values:   []string{"", "", ""},
			expected: false,
		},
		{
			name:     "no values",
			values:   nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumericColumn(tt.values); got != tt.expected {
				t.Errorf("IsNumericColumn(%v) = %v, expected %v", tt.values, got, tt.expected)
			}
		})
	}
}
