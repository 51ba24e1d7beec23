// Package reports implements the report engine: a registry of independent
// report generators, each a pure function from the shared transaction set
// (plus the optional budget table) to a report result. Generators never
// mutate the dataset and never depend on another generator's output, so
// execution order is irrelevant and one failing report never suppresses the
// rest.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/internal/schema"
)

// Dataset is the immutable input contract every generator shares: the
// normalized transaction set, the optional budget table, and presence flags
// for the optional roles that gate conditional reports.
type Dataset struct {
	Transactions []*models.Transaction
	Budget       *models.BudgetTable

	HasMerchant      bool
	HasPaymentMethod bool
	HasFlowType      bool
}

// NewDataset builds a Dataset from the normalized transactions and the
// resolved role assignment.
func NewDataset(transactions []*models.Transaction, budget *models.BudgetTable, roles *schema.Assignment) *Dataset {
	ds := &Dataset{
		Transactions: transactions,
		Budget:       budget,
	}
	if roles != nil {
		ds.HasMerchant = roles.Has(models.RoleMerchant)
		ds.HasPaymentMethod = roles.Has(models.RolePaymentMethod)
		ds.HasFlowType = roles.Has(models.RoleFlowType)
	}
	return ds
}

// MinDate returns the earliest transaction date, or a zero time when the
// dataset is empty.
func (ds *Dataset) MinDate() time.Time {
	var min time.Time
	for _, tx := range ds.Transactions {
		if min.IsZero() || tx.Date.Before(min) {
			min = tx.Date
		}
	}
	return min
}

// MaxDate returns the latest transaction date, or a zero time when the
// dataset is empty.
func (ds *Dataset) MaxDate() time.Time {
	var max time.Time
	for _, tx := range ds.Transactions {
		if tx.Date.After(max) {
			max = tx.Date
		}
	}
	return max
}

// Categories returns the distinct categories in ascending order.
func (ds *Dataset) Categories() []string {
	seen := make(map[string]bool)
	for _, tx := range ds.Transactions {
		seen[tx.Category] = true
	}
	return sortedKeys(seen)
}

// Months returns the distinct month buckets in ascending order.
func (ds *Dataset) Months() []time.Time {
	seen := make(map[time.Time]bool)
	for _, tx := range ds.Transactions {
		seen[tx.MonthBucket] = true
	}
	months := make([]time.Time, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months
}

// pivot is the month-by-category wide form several reports derive from:
// one row per month bucket, one column per category, missing pairs filled
// with zero.
type pivot struct {
	months     []time.Time
	categories []string
	values     [][]decimal.Decimal // [month][category]
}

func (ds *Dataset) monthlyPivot() *pivot {
	p := &pivot{
		months:     ds.Months(),
		categories: ds.Categories(),
	}

	monthIdx := make(map[time.Time]int, len(p.months))
	for i, m := range p.months {
		monthIdx[m] = i
	}
	catIdx := make(map[string]int, len(p.categories))
	for i, c := range p.categories {
		catIdx[c] = i
	}

	p.values = make([][]decimal.Decimal, len(p.months))
	for i := range p.values {
		p.values[i] = make([]decimal.Decimal, len(p.categories))
	}
	for _, tx := range ds.Transactions {
		p.values[monthIdx[tx.MonthBucket]][catIdx[tx.Category]] =
			p.values[monthIdx[tx.MonthBucket]][catIdx[tx.Category]].Add(tx.Amount)
	}
	return p
}

// header returns the pivot's report columns: the month column followed by
// one column per category.
func (p *pivot) header(monthColumn string) []string {
	columns := make([]string, 0, len(p.categories)+1)
	columns = append(columns, monthColumn)
	return append(columns, p.categories...)
}

// sumBy accumulates transaction amounts keyed by the given classifier.
func sumBy(transactions []*models.Transaction, key func(*models.Transaction) string) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		k := key(tx)
		sums[k] = sums[k].Add(tx.Amount)
	}
	return sums
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ytdWindow filters transactions to the trailing 12-month window ending at
// the maximum transaction date, inclusive at both ends.
func (ds *Dataset) ytdWindow() []*models.Transaction {
	max := ds.MaxDate()
	if max.IsZero() {
		return nil
	}
	start := max.AddDate(0, -12, 0)
	window := make([]*models.Transaction, 0, len(ds.Transactions))
	for _, tx := range ds.Transactions {
		if !tx.Date.Before(start) {
			window = append(window, tx)
		}
	}
	return window
}
