package parsers

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
)

// loadWorkbook reads the first sheet of an xlsx workbook as a raw table.
// The first row is the header; trailing blank cells are preserved so rows
// stay parallel to the header.
func (tp *TableParser) loadWorkbook(path string) (*models.RawTable, error) {
	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 0, "workbook has no sheets",
			fmt.Errorf("empty workbook"))
	}
	sheet := sheets[0]

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 0, "failed to read sheet", err)
	}

	table := &models.RawTable{Source: path}
	for _, record := range rows {
		if tp.config.SkipEmptyRows && isEmptyRow(record) {
			continue
		}
		if table.Columns == nil && tp.config.HasHeader {
			table.Columns = trimAll(record)
			continue
		}
		// GetRows drops trailing empty cells; pad to the header width.
		for len(record) < len(table.Columns) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, models.RawRow(record))
	}

	return tp.finish(table, path)
}
