// Package models defines the core data types shared across the analysis
// pipeline: raw tabular input, inferred column roles, canonical transactions,
// budget tables, and report results.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ColumnRole identifies the semantic role a raw input column plays.
type ColumnRole string

const (
	RoleDate          ColumnRole = "date"
	RoleAmount        ColumnRole = "amount"
	RoleCategory      ColumnRole = "category"
	RoleDescription   ColumnRole = "description"
	RoleMerchant      ColumnRole = "merchant"
	RolePaymentMethod ColumnRole = "payment_method"
	RoleFlowType      ColumnRole = "flow_type"
	RoleUnknown       ColumnRole = "unknown"
)

// String returns the string representation of the role
func (r ColumnRole) String() string {
	return string(r)
}

// Required reports whether a run cannot proceed without this role resolved.
// Only date and amount are required; every other role degrades to a default
// value or an omitted report.
func (r ColumnRole) Required() bool {
	return r == RoleDate || r == RoleAmount
}

// RawRow is one ordered record of raw string values, parallel to the
// column list of its RawTable. Rows are never mutated after parsing.
type RawRow []string

// Value returns the cell at the column index, or "" when out of range.
func (r RawRow) Value(index int) string {
	if index < 0 || index >= len(r) {
		return ""
	}
	return r[index]
}

// RawTable holds a parsed tabular input file: the original column names in
// their original order, and one RawRow per input record.
type RawTable struct {
	Source  string
	Columns []string
	Rows    []RawRow
}

// ColumnIndex returns the index of the named column, or -1 if not present.
// Lookup is exact first, then case-insensitive.
func (t *RawTable) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	lower := strings.ToLower(name)
	for i, col := range t.Columns {
		if strings.ToLower(col) == lower {
			return i
		}
	}
	return -1
}

// ColumnValues returns every row's value for the column at index.
// Short rows contribute an empty string.
func (t *RawTable) ColumnValues(index int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Value(index)
	}
	return values
}

// DefaultCategory is assigned when no category column resolves or a row's
// category cell is empty.
const DefaultCategory = "Uncategorized"

// Transaction is the canonical normalized record every report consumes.
// Instances are immutable after normalization; report generators must not
// write back into the shared transaction set.
type Transaction struct {
	// Index preserves original input order, used for deterministic
	// tie-breaking in ranked reports.
	Index       int             `json:"index"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`

	// Optional enrichments: nil when the corresponding role was not
	// detected in the input. Reports branch on presence, not sentinels.
	Merchant      *string `json:"merchant,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	FlowType      *string `json:"flowType,omitempty"`

	// Derived fields computed once during normalization.
	MonthBucket time.Time `json:"monthBucket"`
	WeekdayName string    `json:"weekdayName"`
	IsWeekend   bool      `json:"isWeekend"`
}

// Validate performs basic invariant checks on the Transaction
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date cannot be zero")
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("transaction category cannot be empty")
	}
	if t.MonthBucket.IsZero() {
		return fmt.Errorf("transaction month bucket not derived")
	}
	return nil
}

// String returns a string representation of the Transaction
func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction{Date: %s, Amount: %s, Category: %s, Description: %s}",
		t.Date.Format("2006-01-02"), t.Amount.String(), t.Category, t.Description)
}

// BudgetEntry is one row of a supplied budget table.
type BudgetEntry struct {
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
}

// BudgetTable is the optional external budget input consumed by the budget
// comparison report.
type BudgetTable struct {
	Entries []BudgetEntry `json:"entries"`
}

// Lookup returns the budget for a category, case-insensitively.
func (b *BudgetTable) Lookup(category string) (decimal.Decimal, bool) {
	for _, e := range b.Entries {
		if strings.EqualFold(e.Category, category) {
			return e.Budget, true
		}
	}
	return decimal.Zero, false
}

// Cell is a single typed value in a report row. Supported concrete types are
// string, int, float64, decimal.Decimal, time.Time and bool. A nil Cell is a
// null and renders as an empty field in tabular output.
type Cell interface{}

// Row is an ordered list of cells, parallel to the table's column list.
type Row []Cell

// ReportTable is a table of typed values produced by a report generator.
type ReportTable struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewReportTable creates an empty table with the given columns
func NewReportTable(columns ...string) *ReportTable {
	return &ReportTable{Columns: columns}
}

// AddRow appends a row; the cell count must match the column count.
func (t *ReportTable) AddRow(cells ...Cell) {
	t.Rows = append(t.Rows, Row(cells))
}

// ChartKind selects the rendering style of a chart artifact.
type ChartKind string

const (
	ChartHistogram ChartKind = "histogram"
	ChartLine      ChartKind = "line"
)

// HistogramBin is one bucket of a histogram chart.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// ChartSeries is one named line of a line chart.
type ChartSeries struct {
	Name    string      `json:"name"`
	XValues []time.Time `json:"xValues"`
	YValues []float64   `json:"yValues"`
}

// ChartSpec describes a chart artifact for the output sink to render.
type ChartSpec struct {
	Title  string         `json:"title"`
	Kind   ChartKind      `json:"kind"`
	Bins   []HistogramBin `json:"bins,omitempty"`
	Series []ChartSeries  `json:"series,omitempty"`
}

// ReportResult is the output of a single report generator: a named table
// and/or a chart descriptor, plus the fixed artifact file name.
type ReportResult struct {
	Name     string       `json:"name"`
	FileName string       `json:"fileName"`
	Table    *ReportTable `json:"table,omitempty"`
	Chart    *ChartSpec   `json:"chart,omitempty"`
}
