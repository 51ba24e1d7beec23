package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
)

// recurringThreshold is the occurrence count at which a (description,
// amount) pair is flagged recurring. The heuristic is a pure count with no
// periodicity check; one-off multi-installment purchases will over-flag.
const recurringThreshold = 3

// generateNoSpendDays lists every calendar day between the earliest and
// latest transaction dates, inclusive, that has no transactions.
func generateNoSpendDays(ds *Dataset) (*models.ReportResult, error) {
	spent := make(map[string]bool)
	for _, tx := range ds.Transactions {
		spent[tx.Date.Format("2006-01-02")] = true
	}

	table := models.NewReportTable("date")
	min, max := ds.MinDate(), ds.MaxDate()
	for day := min; !day.After(max); day = day.AddDate(0, 0, 1) {
		if !spent[day.Format("2006-01-02")] {
			table.AddRow(day)
		}
	}

	return &models.ReportResult{
		Name:     "no_spend_days",
		FileName: "days_with_no_spending.csv",
		Table:    table,
	}, nil
}

// generateRecurringPayments flags (description, amount) pairs occurring at
// least three times, with their first and last occurrence dates.
func generateRecurringPayments(ds *Dataset) (*models.ReportResult, error) {
	type group struct {
		description string
		amount      decimal.Decimal
		count       int
		first       time.Time
		last        time.Time
	}

	groups := make(map[string]*group)
	var order []string
	for _, tx := range ds.Transactions {
		k := tx.Description + "\x00" + tx.Amount.String()
		g, ok := groups[k]
		if !ok {
			g = &group{description: tx.Description, amount: tx.Amount, first: tx.Date, last: tx.Date}
			groups[k] = g
			order = append(order, k)
		}
		g.count++
		if tx.Date.Before(g.first) {
			g.first = tx.Date
		}
		if tx.Date.After(g.last) {
			g.last = tx.Date
		}
	}

	var recurring []*group
	for _, k := range order {
		if g := groups[k]; g.count >= recurringThreshold {
			recurring = append(recurring, g)
		}
	}
	sort.SliceStable(recurring, func(i, j int) bool {
		if recurring[i].count != recurring[j].count {
			return recurring[i].count > recurring[j].count
		}
		if recurring[i].description != recurring[j].description {
			return recurring[i].description < recurring[j].description
		}
		return recurring[i].amount.LessThan(recurring[j].amount)
	})

	table := models.NewReportTable("description", "amount", "count", "first_date", "last_date")
	for _, g := range recurring {
		table.AddRow(g.description, g.amount, g.count, g.first, g.last)
	}

	return &models.ReportResult{
		Name:     "recurring_payments",
		FileName: "recurring_payments.csv",
		Table:    table,
	}, nil
}

// generateBudgetComparison left-joins per-category spending over the
// trailing 12-month window against the supplied budget table. Categories
// with no budget entry yield a null variance, not zero.
func generateBudgetComparison(ds *Dataset) (*models.ReportResult, error) {
	sums := sumBy(ds.ytdWindow(), func(tx *models.Transaction) string { return tx.Category })

	table := models.NewReportTable("category", "amount", "budget", "over_under")
	for _, category := range sortedKeys(sums) {
		amount := sums[category]
		if budget, ok := ds.Budget.Lookup(category); ok {
			table.AddRow(category, amount, budget, amount.Sub(budget))
		} else {
			table.AddRow(category, amount, nil, nil)
		}
	}

	return &models.ReportResult{
		Name:     "budget_comparison",
		FileName: "budget_comparison.csv",
		Table:    table,
	}, nil
}

// generateStatsByCategory reports mean, median and count per category.
func generateStatsByCategory(ds *Dataset) (*models.ReportResult, error) {
	byCategory := make(map[string][]decimal.Decimal)
	for _, tx := range ds.Transactions {
		byCategory[tx.Category] = append(byCategory[tx.Category], tx.Amount)
	}

	table := models.NewReportTable("category", "mean", "median", "count")
	for _, category := range sortedKeys(byCategory) {
		amounts := byCategory[category]
		table.AddRow(category, mean(amounts), median(amounts), len(amounts))
	}

	return &models.ReportResult{
		Name:     "stats_by_category",
		FileName: "transaction_stats_by_category.csv",
		Table:    table,
	}, nil
}

// generateStatsOverall reports mean, median and count across the whole set.
func generateStatsOverall(ds *Dataset) (*models.ReportResult, error) {
	amounts := make([]decimal.Decimal, len(ds.Transactions))
	for i, tx := range ds.Transactions {
		amounts[i] = tx.Amount
	}

	table := models.NewReportTable("mean", "median", "count")
	if len(amounts) > 0 {
		table.AddRow(mean(amounts), median(amounts), len(amounts))
	}

	return &models.ReportResult{
		Name:     "stats_overall",
		FileName: "transaction_stats_overall.csv",
		Table:    table,
	}, nil
}

// histogramBins is the fixed bucket count of the distribution histogram.
const histogramBins = 50

// generateDistributionHistogram buckets amounts into a fixed-bin histogram
// chart over the full amount range.
func generateDistributionHistogram(ds *Dataset) (*models.ReportResult, error) {
	values := make([]float64, len(ds.Transactions))
	for i, tx := range ds.Transactions {
		values[i] = tx.Amount.InexactFloat64()
	}

	return &models.ReportResult{
		Name:     "distribution_histogram",
		FileName: "spending_distribution_histogram.png",
		Chart: &models.ChartSpec{
			Title: "Spending Distribution (Histogram)",
			Kind:  models.ChartHistogram,
			Bins:  histogram(values, histogramBins),
		},
	}, nil
}

func histogram(values []float64, bins int) []models.HistogramBin {
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []models.HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i] = models.HistogramBin{Low: min + float64(i)*width, High: min + float64(i+1)*width}
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

func mean(amounts []decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum.Div(decimal.NewFromInt(int64(len(amounts))))
}

func median(amounts []decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	sorted := make([]decimal.Decimal, len(amounts))
	copy(sorted, amounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
}
