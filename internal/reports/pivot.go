package reports

import (
	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
)

const monthColumn = "year_month"

// generateMonthlyByCategory produces the month-by-category spending pivot.
// Missing (month, category) pairs are filled with zero.
func generateMonthlyByCategory(ds *Dataset) (*models.ReportResult, error) {
	p := ds.monthlyPivot()

	table := models.NewReportTable(p.header(monthColumn)...)
	for i, month := range p.months {
		row := make(models.Row, 0, len(p.categories)+1)
		row = append(row, month)
		for j := range p.categories {
			row = append(row, p.values[i][j])
		}
		table.Rows = append(table.Rows, row)
	}

	return &models.ReportResult{
		Name:     "monthly_by_category",
		FileName: "monthly_spending_by_category.csv",
		Table:    table,
	}, nil
}

// generateMonthlyTotal produces the total spend per month bucket.
func generateMonthlyTotal(ds *Dataset) (*models.ReportResult, error) {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range ds.Transactions {
		k := tx.MonthBucket.Format("2006-01-02")
		totals[k] = totals[k].Add(tx.Amount)
	}

	table := models.NewReportTable(monthColumn, "amount")
	for _, month := range ds.Months() {
		table.AddRow(month, totals[month.Format("2006-01-02")])
	}

	return &models.ReportResult{
		Name:     "monthly_total",
		FileName: "monthly_total_spending.csv",
		Table:    table,
	}, nil
}

// rollingWindow is the trailing window length for the rolling average.
const rollingWindow = 3

// generateRollingAverage produces the trailing 3-period mean of the monthly
// pivot. The first two periods lack a full window and are dropped.
func generateRollingAverage(ds *Dataset) (*models.ReportResult, error) {
	p := ds.monthlyPivot()
	window := decimal.NewFromInt(rollingWindow)

	table := models.NewReportTable(p.header(monthColumn)...)
	for i := rollingWindow - 1; i < len(p.months); i++ {
		row := make(models.Row, 0, len(p.categories)+1)
		row = append(row, p.months[i])
		for j := range p.categories {
			sum := decimal.Zero
			for k := i - rollingWindow + 1; k <= i; k++ {
				sum = sum.Add(p.values[k][j])
			}
			row = append(row, sum.Div(window))
		}
		table.Rows = append(table.Rows, row)
	}

	return &models.ReportResult{
		Name:     "rolling_avg_by_category",
		FileName: "3mo_rolling_avg_by_category.csv",
		Table:    table,
	}, nil
}

// generatePercentChange produces the month-over-month percentage change per
// category. A change is null, never infinite, when the prior period's total
// is zero; the first period has no prior and is null as well.
func generatePercentChange(ds *Dataset) (*models.ReportResult, error) {
	p := ds.monthlyPivot()
	hundred := decimal.NewFromInt(100)

	table := models.NewReportTable(p.header(monthColumn)...)
	for i, month := range p.months {
		row := make(models.Row, 0, len(p.categories)+1)
		row = append(row, month)
		for j := range p.categories {
			if i == 0 || p.values[i-1][j].IsZero() {
				row = append(row, nil)
				continue
			}
			prev := p.values[i-1][j]
			change := p.values[i][j].Sub(prev).Div(prev).Mul(hundred)
			row = append(row, change)
		}
		table.Rows = append(table.Rows, row)
	}

	return &models.ReportResult{
		Name:     "category_pct_change",
		FileName: "category_monthly_pct_change.csv",
		Table:    table,
	}, nil
}

// generateMonthlyChart produces the monthly-spending trend chart: one line
// per category over the month buckets.
func generateMonthlyChart(ds *Dataset) (*models.ReportResult, error) {
	p := ds.monthlyPivot()

	series := make([]models.ChartSeries, 0, len(p.categories))
	for j, category := range p.categories {
		s := models.ChartSeries{Name: category}
		for i, month := range p.months {
			s.XValues = append(s.XValues, month)
			s.YValues = append(s.YValues, p.values[i][j].InexactFloat64())
		}
		series = append(series, s)
	}

	return &models.ReportResult{
		Name:     "monthly_spending_chart",
		FileName: "monthly_spending_by_category.png",
		Chart: &models.ChartSpec{
			Title:  "Monthly Spending by Category",
			Kind:   models.ChartLine,
			Series: series,
		},
	}, nil
}
