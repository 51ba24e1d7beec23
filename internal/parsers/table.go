package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// TableParser loads untyped tabular input into a models.RawTable.
type TableParser struct {
	config *ParseConfig
	logger logger.Logger
}

// NewTableParser creates a new TableParser with the given configuration
func NewTableParser(config *ParseConfig) *TableParser {
	if config == nil {
		config = DefaultParseConfig()
	}
	return &TableParser{
		config: config,
		logger: logger.GetGlobalLogger().WithComponent("table_parser"),
	}
}

// LoadTable parses the file at path into a RawTable. The format is selected
// by extension: .xlsx workbooks go through the spreadsheet loader, anything
// else is treated as delimited text.
func (tp *TableParser) LoadTable(path string) (*models.RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return tp.loadWorkbook(path)
	default:
		return tp.loadDelimited(path)
	}
}

func (tp *TableParser) loadDelimited(path string) (*models.RawTable, error) {
	file, err := openFile(path, tp.logger)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if tp.config.ValidateEncoding {
		if err := validateEncoding(file, path); err != nil {
			tp.logger.WithError(err).WithField("file_path", path).Error("Encoding validation failed")
			return nil, err
		}
	}

	reader := csv.NewReader(file)
	reader.Comma = tp.config.Delimiter
	reader.TrimLeadingSpace = tp.config.TrimLeadingSpace
	// Real-world exports have ragged rows; normalize length per record instead.
	reader.FieldsPerRecord = -1

	table := &models.RawTable{Source: path}
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.ParseError(errors.CodeInvalidFormat, path, line, "malformed record", err)
		}

		if tp.config.SkipEmptyRows && isEmptyRow(record) {
			continue
		}

		if table.Columns == nil && tp.config.HasHeader {
			table.Columns = trimAll(record)
			continue
		}
		table.Rows = append(table.Rows, models.RawRow(record))
	}

	return tp.finish(table, path)
}

// finish validates the assembled table and logs its shape.
func (tp *TableParser) finish(table *models.RawTable, path string) (*models.RawTable, error) {
	if len(table.Columns) == 0 {
		return nil, errors.ParseError(errors.CodeInvalidFormat, path, 0, "no header row",
			fmt.Errorf("input has no columns"))
	}
	if len(table.Rows) == 0 {
		return nil, errors.ParseError(errors.CodeEmptyInput, path, 0, "", nil)
	}

	tp.logger.WithFields(logger.Fields{
		"file_path": path,
		"columns":   len(table.Columns),
		"rows":      len(table.Rows),
	}).Info("Loaded raw table")

	return table, nil
}

func trimAll(record []string) []string {
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.TrimSpace(field)
	}
	return out
}
