// Package errors provides the typed error hierarchy used across the
// analyzer: categorized errors with codes, suggestions, context and stack
// traces, plus constructors for the failure modes the pipeline distinguishes
// (fatal load failures, schema-detection failures, degraded detections and
// per-report failures).
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorCategory represents different categories of errors
type ErrorCategory string

const (
	CategoryFile          ErrorCategory = "file"
	CategoryParse         ErrorCategory = "parse"
	CategorySchema        ErrorCategory = "schema"
	CategoryReport        ErrorCategory = "report"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound   ErrorCode = "file_not_found"
	CodeFilePermission ErrorCode = "file_permission"
	CodeFileCorrupted  ErrorCode = "file_corrupted"
	CodeDirectoryError ErrorCode = "directory_error"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeMissingColumn ErrorCode = "missing_column"
	CodeInvalidData   ErrorCode = "invalid_data"
	CodeEncodingError ErrorCode = "encoding_error"
	CodeEmptyInput    ErrorCode = "empty_input"

	// Schema detection errors
	CodeMissingRole ErrorCode = "missing_role"

	// Report errors
	CodeReportFailed ErrorCode = "report_failed"
	CodeEmptyGroup   ErrorCode = "empty_group"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// AnalysisError is the base error type for all application errors
type AnalysisError struct {
	Category   ErrorCategory     `json:"category"`
	Code       ErrorCode         `json:"code"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
	Context    Context           `json:"context,omitempty"`
	Cause      error             `json:"-"`
	StackTrace errors.StackTrace `json:"-"`
}

// Context provides additional information about the error
type Context map[string]interface{}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns the process exit code for the error. Any fatal error
// exits 1; the distinction between failure modes lives in the category and
// code, not the exit status.
func (e *AnalysisError) GetExitCode() int {
	return 1
}

// WithContext adds context information to the error
func (e *AnalysisError) WithContext(key string, value interface{}) *AnalysisError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *AnalysisError) WithSuggestion(suggestion string) *AnalysisError {
	e.Suggestion = suggestion
	return e
}

// New creates a new AnalysisError
func New(category ErrorCategory, code ErrorCode, message string) *AnalysisError {
	return &AnalysisError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with AnalysisError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *AnalysisError {
	if err == nil {
		return nil
	}

	return &AnalysisError{
		Category:   category,
		Code:       code,
		Message:    message,
		Cause:      err,
		StackTrace: errors.WithStack(err).(stackTracer).StackTrace(),
	}
}

// stackTracer interface for extracting stack traces
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FileError creates a file-related error
func FileError(code ErrorCode, path string, err error) *AnalysisError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("file not found: %s", path)
		suggestion = "check if the file path is correct and the file exists"
	case CodeFilePermission:
		message = fmt.Sprintf("permission denied accessing file: %s", path)
		suggestion = "check file permissions and ensure you have read access"
	case CodeFileCorrupted:
		message = fmt.Sprintf("file appears to be corrupted: %s", path)
		suggestion = "verify the file integrity and try using a fresh export"
	case CodeDirectoryError:
		message = fmt.Sprintf("directory error: %s", path)
		suggestion = "ensure the directory exists and is writable"
	default:
		message = fmt.Sprintf("file error: %s", path)
		suggestion = "check the file and try again"
	}

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_path", path)
}

// ParseError creates a parsing-related error
func ParseError(code ErrorCode, file string, line int, detail string, err error) *AnalysisError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidFormat:
		message = fmt.Sprintf("invalid format in file %s at line %d: %s", file, line, detail)
		suggestion = "check the data format and ensure the file parses as tabular data"
	case CodeMissingColumn:
		message = fmt.Sprintf("missing required column '%s' in file %s", detail, file)
		suggestion = "verify the file has a header row with the expected columns"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data in file %s at line %d: %s", file, line, detail)
		suggestion = "correct the data format or remove the invalid entry"
	case CodeEncodingError:
		message = fmt.Sprintf("encoding error in file %s at line %d", file, line)
		suggestion = "ensure the file is saved in UTF-8 encoding"
	case CodeEmptyInput:
		message = fmt.Sprintf("file %s contains no data rows", file)
		suggestion = "supply a file with a header row and at least one record"
	default:
		message = fmt.Sprintf("parse error in file %s at line %d", file, line)
		suggestion = "check the file format and data integrity"
	}

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryParse, code, message)
	} else {
		result = New(CategoryParse, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file", file).
		WithContext("line", line)
}

// SchemaError creates a schema-detection error for a required role that no
// column qualified for. The message names the missing role.
func SchemaError(role string, err error) *AnalysisError {
	message := fmt.Sprintf("schema detection failed: no column qualifies for required role '%s'", role)
	suggestion := "check that the input has a parseable " + role + " column"

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategorySchema, CodeMissingRole, message)
	} else {
		result = New(CategorySchema, CodeMissingRole, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("role", role)
}

// ReportError creates a per-report generation error. These are non-fatal:
// the engine logs them and continues with the remaining reports.
func ReportError(code ErrorCode, report string, err error) *AnalysisError {
	var message string
	var suggestion string

	switch code {
	case CodeEmptyGroup:
		message = fmt.Sprintf("report '%s' produced an empty group", report)
		suggestion = "the input may not contain the data this report requires"
	default:
		message = fmt.Sprintf("report '%s' failed to generate", report)
		suggestion = "check data quality in the input file"
	}

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryReport, code, message)
	} else {
		result = New(CategoryReport, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("report", report)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *AnalysisError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "check the flag documentation for valid values"
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this flag or set it in a config file"
	default:
		message = fmt.Sprintf("configuration error: %s", setting)
		suggestion = "check your configuration and try again"
	}

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryConfiguration, code, message)
	} else {
		result = New(CategoryConfiguration, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("setting", setting).
		WithContext("value", value)
}

// InternalError creates an internal error
func InternalError(code ErrorCode, operation string, err error) *AnalysisError {
	message := fmt.Sprintf("unexpected error during %s", operation)
	suggestion := "this is likely a bug - please report it with the error details"

	var result *AnalysisError
	if err != nil {
		result = Wrap(err, CategoryInternal, code, message)
	} else {
		result = New(CategoryInternal, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("operation", operation)
}

// ErrorSummary aggregates the non-fatal errors collected across a run,
// typically the per-report failures the engine skipped over.
type ErrorSummary struct {
	Total      int                   `json:"total"`
	ByCategory map[ErrorCategory]int `json:"by_category"`
	ByCode     map[ErrorCode]int     `json:"by_code"`
	Errors     []*AnalysisError      `json:"errors"`
}

// NewErrorSummary creates a new error summary
func NewErrorSummary(errs []*AnalysisError) *ErrorSummary {
	summary := &ErrorSummary{
		Total:      len(errs),
		ByCategory: make(map[ErrorCategory]int),
		ByCode:     make(map[ErrorCode]int),
		Errors:     errs,
	}

	for _, err := range errs {
		summary.ByCategory[err.Category]++
		summary.ByCode[err.Code]++
	}

	return summary
}

// Error returns a formatted error message for the summary
func (es *ErrorSummary) Error() string {
	if es.Total == 0 {
		return "no errors"
	}
	if es.Total == 1 {
		return es.Errors[0].Error()
	}

	var categories []string
	for category, count := range es.ByCategory {
		categories = append(categories, fmt.Sprintf("%s: %d", category, count))
	}

	return fmt.Sprintf("%d errors occurred (%s)", es.Total, strings.Join(categories, ", "))
}

// HasCategory checks if the summary contains errors of the given category
func (es *ErrorSummary) HasCategory(category ErrorCategory) bool {
	return es.ByCategory[category] > 0
}

// IsAnalysisError checks if an error is an AnalysisError
func IsAnalysisError(err error) bool {
	_, ok := err.(*AnalysisError)
	return ok
}

// AsAnalysisError extracts an AnalysisError from an error chain
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr, true
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already an AnalysisError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *AnalysisError {
	if err == nil {
		return nil
	}
	if analysisErr, ok := AsAnalysisError(err); ok {
		return analysisErr
	}
	return Wrap(err, category, code, message)
}
