package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
)

// weekdayOrder is the fixed output ordering for the weekday breakdown.
var weekdayOrder = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
	time.Sunday.String(),
}

// generateByMerchant sums spending per merchant, descending.
func generateByMerchant(ds *Dataset) (*models.ReportResult, error) {
	table := rankedBreakdown(ds, "merchant", func(tx *models.Transaction) *string { return tx.Merchant })
	return &models.ReportResult{
		Name:     "by_merchant",
		FileName: "spending_by_merchant.csv",
		Table:    table,
	}, nil
}

// generateByPaymentMethod sums spending per payment method, descending.
func generateByPaymentMethod(ds *Dataset) (*models.ReportResult, error) {
	table := rankedBreakdown(ds, "payment_method", func(tx *models.Transaction) *string { return tx.PaymentMethod })
	return &models.ReportResult{
		Name:     "by_payment_method",
		FileName: "spending_by_payment_method.csv",
		Table:    table,
	}, nil
}

// rankedBreakdown builds a key/amount table sorted by amount descending,
// with alphabetical order breaking ties.
func rankedBreakdown(ds *Dataset, column string, key func(*models.Transaction) *string) *models.ReportTable {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range ds.Transactions {
		if v := key(tx); v != nil {
			sums[*v] = sums[*v].Add(tx.Amount)
		}
	}

	keys := sortedKeys(sums)
	sort.SliceStable(keys, func(i, j int) bool {
		return sums[keys[i]].GreaterThan(sums[keys[j]])
	})

	table := models.NewReportTable(column, "amount")
	for _, k := range keys {
		table.AddRow(k, sums[k])
	}
	return table
}

// generateByWeekday sums spending per weekday name in fixed Monday-Sunday
// order. Weekdays with no transactions report zero.
func generateByWeekday(ds *Dataset) (*models.ReportResult, error) {
	sums := sumBy(ds.Transactions, func(tx *models.Transaction) string { return tx.WeekdayName })

	table := models.NewReportTable("weekday", "amount")
	for _, day := range weekdayOrder {
		table.AddRow(day, sums[day])
	}

	return &models.ReportResult{
		Name:     "by_weekday",
		FileName: "spending_by_weekday.csv",
		Table:    table,
	}, nil
}

// generateWeekdayWeekend splits total spending into the two-row
// weekday/weekend view.
func generateWeekdayWeekend(ds *Dataset) (*models.ReportResult, error) {
	weekday, weekend := decimal.Zero, decimal.Zero
	for _, tx := range ds.Transactions {
		if tx.IsWeekend {
			weekend = weekend.Add(tx.Amount)
		} else {
			weekday = weekday.Add(tx.Amount)
		}
	}

	table := models.NewReportTable("day_type", "amount")
	table.AddRow("Weekday", weekday)
	table.AddRow("Weekend", weekend)

	return &models.ReportResult{
		Name:     "weekday_weekend",
		FileName: "spending_by_weekday_weekend.csv",
		Table:    table,
	}, nil
}

// generateCashFlow pivots spending per month across the distinct flow-type
// values, with a net column summing each row.
func generateCashFlow(ds *Dataset) (*models.ReportResult, error) {
	flowValues := make(map[string]bool)
	for _, tx := range ds.Transactions {
		if tx.FlowType != nil {
			flowValues[*tx.FlowType] = true
		}
	}
	flows := sortedKeys(flowValues)

	sums := make(map[string]map[string]decimal.Decimal)
	for _, tx := range ds.Transactions {
		if tx.FlowType == nil {
			continue
		}
		k := tx.MonthBucket.Format("2006-01-02")
		if sums[k] == nil {
			sums[k] = make(map[string]decimal.Decimal)
		}
		sums[k][*tx.FlowType] = sums[k][*tx.FlowType].Add(tx.Amount)
	}

	columns := append([]string{monthColumn}, flows...)
	columns = append(columns, "net")
	table := models.NewReportTable(columns...)

	for _, month := range ds.Months() {
		k := month.Format("2006-01-02")
		row := make(models.Row, 0, len(flows)+2)
		row = append(row, month)
		net := decimal.Zero
		for _, flow := range flows {
			v := sums[k][flow]
			net = net.Add(v)
			row = append(row, v)
		}
		row = append(row, net)
		table.Rows = append(table.Rows, row)
	}

	return &models.ReportResult{
		Name:     "cash_flow",
		FileName: "cash_flow_analysis.csv",
		Table:    table,
	}, nil
}
