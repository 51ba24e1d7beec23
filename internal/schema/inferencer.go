// Package schema implements the schema inferencer: the heuristics that
// classify raw, arbitrarily-named input columns into the semantic roles the
// normalizer needs (date, amount, category, description, and the optional
// enrichments).
//
// All heuristics are applied in a fixed priority order. Columns are always
// scanned in their original order and the first qualifying column wins, so
// two runs over the same input always produce the same assignment.
package schema

import (
	"strings"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// Assignment maps each semantic role to a column index in the raw table.
// An index of -1 means the role is unresolved; for optional roles that is a
// degraded-but-valid outcome.
type Assignment struct {
	Date          int
	Amount        int
	Category      int
	Description   int
	Merchant      int
	PaymentMethod int
	FlowType      int

	// AmountByName records that the amount column was resolved through the
	// name fallback rather than content-type inference.
	AmountByName bool
}

// Has reports whether the given role resolved to a column.
func (a *Assignment) Has(role models.ColumnRole) bool {
	switch role {
	case models.RoleDate:
		return a.Date >= 0
	case models.RoleAmount:
		return a.Amount >= 0
	case models.RoleCategory:
		return a.Category >= 0
	case models.RoleDescription:
		return a.Description >= 0
	case models.RoleMerchant:
		return a.Merchant >= 0
	case models.RolePaymentMethod:
		return a.PaymentMethod >= 0
	case models.RoleFlowType:
		return a.FlowType >= 0
	default:
		return false
	}
}

// Roles returns the resolved role names per column, for logging and the run
// summary.
func (a *Assignment) Roles(table *models.RawTable) map[models.ColumnRole]string {
	roles := make(map[models.ColumnRole]string)
	assign := func(role models.ColumnRole, idx int) {
		if idx >= 0 && idx < len(table.Columns) {
			roles[role] = table.Columns[idx]
		}
	}
	assign(models.RoleDate, a.Date)
	assign(models.RoleAmount, a.Amount)
	assign(models.RoleCategory, a.Category)
	assign(models.RoleDescription, a.Description)
	assign(models.RoleMerchant, a.Merchant)
	assign(models.RolePaymentMethod, a.PaymentMethod)
	assign(models.RoleFlowType, a.FlowType)
	return roles
}

// Inferencer classifies raw columns into semantic roles.
type Inferencer struct {
	config *Config
	logger logger.Logger
}

// NewInferencer creates an Inferencer with the given configuration.
func NewInferencer(config *Config) *Inferencer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Inferencer{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("schema_inferencer"),
	}
}

// Infer resolves a role assignment for the raw table, or fails with a schema
// error naming the first required role no column qualified for.
func (inf *Inferencer) Infer(table *models.RawTable) (*Assignment, error) {
	assignment := &Assignment{
		Date:          -1,
		Amount:        -1,
		Category:      -1,
		Description:   -1,
		Merchant:      -1,
		PaymentMethod: -1,
		FlowType:      -1,
	}

	assignment.Date = inf.detectDate(table)
	if assignment.Date < 0 {
		return nil, errors.SchemaError(models.RoleDate.String(), nil)
	}

	amount, byName := inf.detectAmount(table)
	if amount < 0 {
		return nil, errors.SchemaError(models.RoleAmount.String(), nil)
	}
	assignment.Amount = amount
	assignment.AmountByName = byName

	assignment.Category = inf.detectCategory(table)
	assignment.Description = inf.detectDescription(table, assignment.Date)
	assignment.Merchant = inf.detectKeyword(table, models.RoleMerchant, inf.config.MerchantKeywords)
	assignment.PaymentMethod = inf.detectKeyword(table, models.RolePaymentMethod, inf.config.PaymentMethodKeywords)
	assignment.FlowType = inf.detectKeyword(table, models.RoleFlowType, inf.config.FlowTypeKeywords)

	return assignment, nil
}

// detectDate selects the first column, in original column order, where more
// than DateThreshold of the values parse as dates.
func (inf *Inferencer) detectDate(table *models.RawTable) int {
	for i, col := range table.Columns {
		values := table.ColumnValues(i)
		parsed := 0
		for _, v := range values {
			if _, ok := ParseDate(v, inf.config.DateLayouts); ok {
				parsed++
			}
		}
		if float64(parsed) > inf.config.DateThreshold*float64(len(values)) {
			inf.logger.Infof("Detected date column: '%s'", col)
			return i
		}
	}
	return -1
}

// detectAmount prefers the first column whose content is numeric. If none
// qualifies, it falls back to the first column whose name contains the
// amount keyword; values that fail coercion become 0 during normalization.
func (inf *Inferencer) detectAmount(table *models.RawTable) (int, bool) {
	for i, col := range table.Columns {
		if IsNumericColumn(table.ColumnValues(i)) {
			inf.logger.Infof("Detected amount column: '%s'", col)
			return i, false
		}
	}
	for i, col := range table.Columns {
		if strings.Contains(strings.ToLower(col), inf.config.AmountKeyword) {
			inf.logger.Infof("Detected amount column by name: '%s'", col)
			return i, true
		}
	}
	return -1, false
}

// detectCategory resolves the category column: exact header match first,
// then the substring fallback. No match is a degraded outcome, not a
// failure; every transaction's category defaults instead.
func (inf *Inferencer) detectCategory(table *models.RawTable) int {
	for i, col := range table.Columns {
		if strings.EqualFold(col, inf.config.CategoryColumn) {
			inf.logger.Infof("Detected category column: '%s'", col)
			return i
		}
	}
	for i, col := range table.Columns {
		if strings.Contains(strings.ToLower(col), inf.config.CategoryKeyword) {
			inf.logger.Infof("Detected category column: '%s'", col)
			return i
		}
	}
	inf.logger.Warnf("No category column found. Assigning all as '%s'.", models.DefaultCategory)
	return -1
}

// detectDescription resolves the description column by keyword, falling back
// to the first non-date column so ranked-description reports always have
// something to group on.
func (inf *Inferencer) detectDescription(table *models.RawTable, dateIdx int) int {
	if idx := inf.detectKeyword(table, models.RoleDescription, inf.config.DescriptionKeywords); idx >= 0 {
		return idx
	}
	for i := range table.Columns {
		if i != dateIdx {
			inf.logger.Infof("Falling back to column '%s' for descriptions", table.Columns[i])
			return i
		}
	}
	return -1
}

// detectKeyword scans columns in original order and returns the first whose
// name contains any of the keywords (case-insensitive).
func (inf *Inferencer) detectKeyword(table *models.RawTable, role models.ColumnRole, keywords []string) int {
	for i, col := range table.Columns {
		lower := strings.ToLower(col)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				inf.logger.Infof("Detected %s column: '%s'", role, col)
				return i
			}
		}
	}
	inf.logger.Debugf("No %s column found", role)
	return -1
}
