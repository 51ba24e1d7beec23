package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
)

// topN is the fixed rank cutoff for the ranked reports.
const topN = 10

// generateYearToDate sums spending per category over the trailing 12-month
// window ending at the maximum transaction date.
func generateYearToDate(ds *Dataset) (*models.ReportResult, error) {
	sums := sumBy(ds.ytdWindow(), func(tx *models.Transaction) string { return tx.Category })

	table := models.NewReportTable("category", "amount")
	for _, category := range sortedKeys(sums) {
		table.AddRow(category, sums[category])
	}

	return &models.ReportResult{
		Name:     "ytd_by_category",
		FileName: "year_to_date_spending_by_category.csv",
		Table:    table,
	}, nil
}

// generateCumulativeSpending produces the running total over time. Multiple
// transactions on the same date are summed before accumulating.
func generateCumulativeSpending(ds *Dataset) (*models.ReportResult, error) {
	daily := make(map[string]decimal.Decimal)
	for _, tx := range ds.Transactions {
		k := tx.Date.Format("2006-01-02")
		daily[k] = daily[k].Add(tx.Amount)
	}
	days := sortedKeys(daily)

	table := models.NewReportTable("date", "cumulative_amount")
	running := decimal.Zero
	for _, day := range days {
		running = running.Add(daily[day])
		table.AddRow(day, running)
	}

	return &models.ReportResult{
		Name:     "cumulative_spending",
		FileName: "cumulative_spending.csv",
		Table:    table,
	}, nil
}

// generateTopSpenders ranks descriptions by total amount, descending, and
// keeps the top 10.
func generateTopSpenders(ds *Dataset) (*models.ReportResult, error) {
	sums := sumBy(ds.Transactions, func(tx *models.Transaction) string { return tx.Description })

	type entry struct {
		description string
		amount      decimal.Decimal
	}
	entries := make([]entry, 0, len(sums))
	for _, desc := range sortedKeys(sums) {
		entries = append(entries, entry{desc, sums[desc]})
	}
	// Keys are pre-sorted ascending, so equal amounts rank alphabetically.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].amount.GreaterThan(entries[j].amount)
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}

	table := models.NewReportTable("description", "amount")
	for _, e := range entries {
		table.AddRow(e.description, e.amount)
	}

	return &models.ReportResult{
		Name:     "top_spenders",
		FileName: "top_10_spenders.csv",
		Table:    table,
	}, nil
}

// generateLargestTransactions lists the 10 largest single transactions by
// amount. Ties keep input order.
func generateLargestTransactions(ds *Dataset) (*models.ReportResult, error) {
	ranked := make([]*models.Transaction, len(ds.Transactions))
	copy(ranked, ds.Transactions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.GreaterThan(ranked[j].Amount)
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	table := models.NewReportTable("date", "description", "category", "amount")
	for _, tx := range ranked {
		table.AddRow(tx.Date, tx.Description, tx.Category, tx.Amount)
	}

	return &models.ReportResult{
		Name:     "largest_transactions",
		FileName: "largest_single_transactions.csv",
		Table:    table,
	}, nil
}
