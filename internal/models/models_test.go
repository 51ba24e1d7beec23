package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestColumnRoleRequired(t *testing.T) {
	tests := []struct {
		role     ColumnRole
		required bool
	}{
		{RoleDate, true},
		{RoleAmount, true},
		{RoleCategory, false},
		{RoleDescription, false},
		{RoleMerchant, false},
		{RolePaymentMethod, false},
		{RoleFlowType, false},
		{RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.Required(); got != tt.required {
				t.Errorf("Required() = %v, expected %v", got, tt.required)
			}
		})
	}
}

func TestRawRowValue(t *testing.T) {
	row := RawRow{"a", "b"}

	tests := []struct {
		name     string
		index    int
		expected string
	}{
		{"in range", 1, "b"},
		{"past end", 2, ""},
		{"negative", -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := row.Value(tt.index); got != tt.expected {
				t.Errorf("Value(%d) = %q, expected %q", tt.index, got, tt.expected)
			}
		})
	}
}

func TestRawTableColumnIndex(t *testing.T) {
	table := &RawTable{Columns: []string{"Date", "date", "Amount"}}

	tests := []struct {
		name     string
		lookup   string
		expected int
	}{
		{"exact match wins over case fold", "date", 1},
		{"exact match", "Date", 0},
		{"case-insensitive fallback", "amount", 2},
		{"missing", "category", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.ColumnIndex(tt.lookup); got != tt.expected {
				t.Errorf("ColumnIndex(%q) = %d, expected %d", tt.lookup, got, tt.expected)
			}
		})
	}
}

func TestRawTableColumnValues(t *testing.T) {
	table := &RawTable{
		Columns: []string{"a", "b"},
		Rows: []RawRow{
			{"1", "2"},
			{"3"},
		},
	}

	values := table.ColumnValues(1)
	if len(values) != 2 {
		t.Fatalf("got %d values, expected 2", len(values))
	}
	if values[0] != "2" {
		t.Errorf("values[0] = %q, expected 2", values[0])
	}
	if values[1] != "" {
		t.Errorf("short row value = %q, expected empty", values[1])
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:        time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("4.50"),
		Category:    "Food",
		MonthBucket: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		valid  bool
	}{
		{"valid", func(tx *Transaction) {}, true},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, false},
		{"blank category", func(tx *Transaction) { tx.Category = "  " }, false},
		{"missing month bucket", func(tx *Transaction) { tx.MonthBucket = time.Time{} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tt.valid && err == nil {
				t.Error("Validate() = nil, expected error")
			}
		})
	}
}

func TestBudgetTableLookup(t *testing.T) {
	budget := &BudgetTable{Entries: []BudgetEntry{
		{Category: "Food", Budget: decimal.RequireFromString("300")},
		{Category: "Transport", Budget: decimal.RequireFromString("120")},
	}}

	amount, ok := budget.Lookup("food")
	if !ok {
		t.Fatal("Lookup(food) not found, expected case-insensitive match")
	}
	if !amount.Equal(decimal.RequireFromString("300")) {
		t.Errorf("Lookup(food) = %s, expected 300", amount)
	}

	if _, ok := budget.Lookup("Housing"); ok {
		t.Error("Lookup(Housing) found, expected miss")
	}
}

func TestReportTableAddRow(t *testing.T) {
	table := NewReportTable("category", "amount")
	table.AddRow("Food", decimal.RequireFromString("12.50"))
	table.AddRow("Rent", nil)

	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, expected 2", len(table.Rows))
	}
	if table.Rows[0][0] != "Food" {
		t.Errorf("cell = %v, expected Food", table.Rows[0][0])
	}
	if table.Rows[1][1] != nil {
		t.Errorf("cell = %v, expected nil null", table.Rows[1][1])
	}
}
