package parsers

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// BudgetParser loads the optional budget table. Unlike the transaction
// input, the budget file has a fixed schema: a "category" column and a
// "budget" column.
type BudgetParser struct {
	tables *TableParser
	logger logger.Logger
}

// NewBudgetParser creates a new BudgetParser
func NewBudgetParser(config *ParseConfig) *BudgetParser {
	return &BudgetParser{
		tables: NewTableParser(config),
		logger: logger.GetGlobalLogger().WithComponent("budget_parser"),
	}
}

// LoadBudget parses the budget file at path.
func (bp *BudgetParser) LoadBudget(path string) (*models.BudgetTable, error) {
	table, err := bp.tables.LoadTable(path)
	if err != nil {
		return nil, err
	}

	categoryIdx := table.ColumnIndex("category")
	if categoryIdx < 0 {
		return nil, errors.ParseError(errors.CodeMissingColumn, path, 0, "category", nil)
	}
	budgetIdx := table.ColumnIndex("budget")
	if budgetIdx < 0 {
		return nil, errors.ParseError(errors.CodeMissingColumn, path, 0, "budget", nil)
	}

	budget := &models.BudgetTable{}
	for i, row := range table.Rows {
		category := strings.TrimSpace(row.Value(categoryIdx))
		if category == "" {
			continue
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(row.Value(budgetIdx)))
		if err != nil {
			bp.logger.WithFields(logger.Fields{
				"file_path": path,
				"line":      i + 2,
				"category":  category,
			}).Warn("Skipping budget row with non-numeric budget value")
			continue
		}
		budget.Entries = append(budget.Entries, models.BudgetEntry{
			Category: category,
			Budget:   amount,
		})
	}

	bp.logger.WithFields(logger.Fields{
		"file_path":  path,
		"categories": len(budget.Entries),
	}).Info("Loaded budget table")

	return budget, nil
}
