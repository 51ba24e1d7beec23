// Package sink writes report results to their output artifacts: one CSV per
// table, PNG renders for charts, and a consolidated xlsx workbook collecting
// every table. File-name collisions overwrite the prior artifact.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ichoake/spend-analysis/internal/models"
	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// Sink writes report artifacts into a destination directory.
type Sink struct {
	dir    string
	logger logger.Logger
}

// NewSink creates a Sink for the destination directory, creating the
// directory if missing.
func NewSink(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.FileError(errors.CodeDirectoryError, dir, err)
	}
	return &Sink{
		dir:    dir,
		logger: logger.GetGlobalLogger().WithComponent("output_sink"),
	}, nil
}

// Dir returns the destination directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Write serializes one report result to its artifact and returns the
// written path.
func (s *Sink) Write(result *models.ReportResult) (string, error) {
	path := filepath.Join(s.dir, result.FileName)

	var err error
	switch {
	case result.Table != nil:
		err = s.writeTable(path, result.Table)
	case result.Chart != nil:
		err = s.renderChart(path, result.Chart)
	default:
		err = errors.ReportError(errors.CodeReportFailed, result.Name,
			fmt.Errorf("report result has neither table nor chart"))
	}
	if err != nil {
		return "", err
	}

	s.logger.WithFields(logger.Fields{
		"report": result.Name,
		"path":   path,
	}).Info("Wrote report artifact")
	return path, nil
}

func (s *Sink) writeTable(path string, table *models.ReportTable) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.FileError(errors.CodeDirectoryError, path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(table.Columns); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = FormatCell(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return errors.FileError(errors.CodeFileCorrupted, path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// FormatCell renders a typed cell as its tabular string form. Nil cells are
// nulls and render empty.
func FormatCell(cell models.Cell) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	case decimal.Decimal:
		return v.String()
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
