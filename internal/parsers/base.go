// Package parsers loads raw tabular input for the analysis pipeline.
//
// The loaders make no assumptions about column names or order: they produce a
// models.RawTable with the original headers and raw string cells, leaving all
// semantic interpretation to the schema inferencer. Supported inputs are CSV
// files (the common case for bank exports) and xlsx workbooks.
//
// A separate loader handles the optional budget table, which is the one input
// with a fixed schema (category, budget).
package parsers

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/ichoake/spend-analysis/pkg/errors"
	"github.com/ichoake/spend-analysis/pkg/logger"
)

// ParseConfig holds configuration for tabular parsing
type ParseConfig struct {
	HasHeader        bool
	Delimiter        rune
	TrimLeadingSpace bool
	SkipEmptyRows    bool
	ValidateEncoding bool
}

// DefaultParseConfig returns a configuration with sensible defaults
func DefaultParseConfig() *ParseConfig {
	return &ParseConfig{
		HasHeader:        true,
		Delimiter:        ',',
		TrimLeadingSpace: true,
		SkipEmptyRows:    true,
		ValidateEncoding: true,
	}
}

// openFile opens an input file, mapping OS errors to typed file errors.
func openFile(path string, log logger.Logger) (*os.File, error) {
	log.WithField("file_path", path).Debug("Opening input file")

	file, err := os.Open(path)
	if err != nil {
		log.WithError(err).WithField("file_path", path).Error("Failed to open input file")
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeDirectoryError, path, err)
	}
	return file, nil
}

// validateEncoding checks the leading bytes of the file for valid UTF-8.
// Truncation at the sample boundary can split a rune, so the tail is allowed
// to be incomplete.
func validateEncoding(file *os.File, path string) error {
	const sampleSize = 64 * 1024

	buf := make([]byte, sampleSize)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	sample := buf[:n]

	for len(sample) > 0 && !utf8.Valid(sample) {
		r, size := utf8.DecodeLastRune(sample)
		if r == utf8.RuneError && size <= 1 && len(sample) > utf8.UTFMax {
			return errors.ParseError(errors.CodeEncodingError, path, 0, "", fmt.Errorf("input is not valid UTF-8"))
		}
		sample = sample[:len(sample)-size]
	}

	if _, err := file.Seek(0, 0); err != nil {
		return errors.FileError(errors.CodeFileCorrupted, path, err)
	}
	return nil
}

// isEmptyRow reports whether every cell of a record is blank.
func isEmptyRow(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
