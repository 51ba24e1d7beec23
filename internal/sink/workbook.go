package sink

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// WorkbookName is the consolidated xlsx artifact collecting every report
// table as its own sheet.
const WorkbookName = "analysis_workbook.xlsx"

// maxSheetName is the xlsx sheet-name length limit.
const maxSheetName = 31

// Workbook accumulates report tables into a single xlsx file.
type Workbook struct {
	file   *excelize.File
	sheets int
	logger logger.Logger
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{
		file:   excelize.NewFile(),
		logger: logger.GetGlobalLogger().WithComponent("workbook"),
	}
}

// AddTable appends a table as a sheet named after the report.
func (w *Workbook) AddTable(name string, table *models.ReportTable) error {
	sheet := sheetName(name)

	if w.sheets == 0 {
		// Reuse the default sheet excelize creates.
		if err := w.file.SetSheetName(w.file.GetSheetName(0), sheet); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "workbook sheet", err)
		}
	} else {
		if _, err := w.file.NewSheet(sheet); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "workbook sheet", err)
		}
	}
	w.sheets++

	for i, col := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "workbook cell", err)
		}
		if err := w.file.SetCellValue(sheet, cell, col); err != nil {
			return errors.InternalError(errors.CodeUnexpectedError, "workbook cell", err)
		}
	}

	for r, row := range table.Rows {
		for c, value := range row {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.InternalError(errors.CodeUnexpectedError, "workbook cell", err)
			}
			if err := w.file.SetCellValue(sheet, cell, sheetValue(value)); err != nil {
				return errors.InternalError(errors.CodeUnexpectedError, "workbook cell", err)
			}
		}
	}

	return nil
}

// Sheets returns the number of tables added so far.
func (w *Workbook) Sheets() int {
	return w.sheets
}

// Save writes the workbook to path, overwriting any prior artifact.
func (w *Workbook) Save(path string) error {
	if w.sheets == 0 {
		return nil
	}
	if err := w.file.SaveAs(path); err != nil {
		return errors.FileError(errors.CodeDirectoryError, path, err)
	}
	w.logger.WithFields(logger.Fields{
		"path":   path,
		"sheets": w.sheets,
	}).Info("Wrote consolidated workbook")
	return nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

// sheetValue converts a cell to a type excelize stores natively.
func sheetValue(cell models.Cell) interface{} {
	switch v := cell.(type) {
	case decimal.Decimal:
		return v.InexactFloat64()
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return v
	}
}
