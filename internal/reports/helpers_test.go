package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// tx builds a normalized transaction with the derived fields populated the
// way the normalizer would.
func tx(index int, date, amount, category, description string) *models.Transaction {
	d := day(date)
	wd := d.Weekday()
	return &models.Transaction{
		Index:       index,
		Date:        d,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
		Description: description,
		MonthBucket: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
		WeekdayName: wd.String(),
		IsWeekend:   wd == time.Saturday || wd == time.Sunday,
	}
}

func dataset(transactions ...*models.Transaction) *Dataset {
	return &Dataset{Transactions: transactions}
}

func cellDecimal(t *testing.T, cell models.Cell) decimal.Decimal {
	t.Helper()
	d, ok := cell.(decimal.Decimal)
	if !ok {
		t.Fatalf("cell %v (%T) is not a decimal", cell, cell)
	}
	return d
}

func assertCellEquals(t *testing.T, cell models.Cell, expected string) {
	t.Helper()
	if !cellDecimal(t, cell).Equal(decimal.RequireFromString(expected)) {
		t.Errorf("cell = %v, expected %s", cell, expected)
	}
}
