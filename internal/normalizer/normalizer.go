// Package normalizer joins the raw row set with a resolved role assignment
// to produce the canonical transaction set. It is a pure single pass: the
// transaction set is built once and treated as read-only for the remainder
// of the run.
package normalizer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/internal/schema"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// Normalizer builds canonical transactions from raw rows.
type Normalizer struct {
	config *schema.Config
	logger logger.Logger
}

// NewNormalizer creates a Normalizer. The schema config supplies the date
// layouts so row-level parsing agrees with column-level detection.
func NewNormalizer(config *schema.Config) *Normalizer {
	if config == nil {
		config = schema.DefaultConfig()
	}
	return &Normalizer{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("normalizer"),
	}
}

// Normalize maps raw rows to transactions in input order. Rows whose date
// cell does not parse are dropped (the date column qualified at a >50%
// threshold, so individual failures are expected); amount coercion failures
// become zero, never null. A missing category role or an empty category
// cell yields the default category.
func (n *Normalizer) Normalize(table *models.RawTable, roles *schema.Assignment) []*models.Transaction {
	transactions := make([]*models.Transaction, 0, len(table.Rows))
	dropped := 0

	for i, row := range table.Rows {
		date, ok := schema.ParseDate(row.Value(roles.Date), n.config.DateLayouts)
		if !ok {
			dropped++
			continue
		}

		amount, ok := schema.ParseAmount(row.Value(roles.Amount))
		if !ok {
			amount = decimal.Zero
		}

		tx := &models.Transaction{
			Index:       i,
			Date:        date,
			Amount:      amount,
			Category:    categoryValue(row, roles),
			Description: strings.TrimSpace(row.Value(roles.Description)),

			MonthBucket: monthBucket(date),
			WeekdayName: date.Weekday().String(),
			IsWeekend:   isWeekend(date),
		}
		tx.Merchant = optionalValue(row, roles.Merchant)
		tx.PaymentMethod = optionalValue(row, roles.PaymentMethod)
		tx.FlowType = optionalValue(row, roles.FlowType)

		transactions = append(transactions, tx)
	}

	if dropped > 0 {
		n.logger.WithFields(logger.Fields{
			"dropped": dropped,
			"total":   len(table.Rows),
		}).Warn("Dropped rows with unparseable dates")
	}
	n.logger.WithField("transactions", len(transactions)).Info("Normalized transaction set")

	return transactions
}

func categoryValue(row models.RawRow, roles *schema.Assignment) string {
	if roles.Category < 0 {
		return models.DefaultCategory
	}
	category := strings.TrimSpace(row.Value(roles.Category))
	if category == "" {
		return models.DefaultCategory
	}
	return category
}

// optionalValue returns a pointer for optional enrichment roles: nil when
// the role is absent, a trimmed value otherwise.
func optionalValue(row models.RawRow, idx int) *string {
	if idx < 0 {
		return nil
	}
	v := strings.TrimSpace(row.Value(idx))
	return &v
}

// monthBucket truncates a date to the first day of its calendar month.
func monthBucket(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
