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
	CategoryValidation    ErrorCategory = "validation"
	CategoryConfiguration ErrorCategory = "configuration"
	CategoryProcessing    ErrorCategory = "processing"
	CategoryInternal      ErrorCategory = "internal"
)

// ErrorCode represents specific error codes within categories
type ErrorCode string

const (
	// File errors
	CodeFileNotFound      ErrorCode = "file_not_found"
	CodeFileLocked        ErrorCode = "file_locked"
	CodeFileCorrupted     ErrorCode = "file_corrupted"
	CodeUnsupportedFormat ErrorCode = "unsupported_format"
	CodeDirectoryError    ErrorCode = "directory_error"

	// Parse errors
	CodeInvalidFormat ErrorCode = "invalid_format"
	CodeMissingColumn ErrorCode = "missing_column"
	CodeMissingSheet  ErrorCode = "missing_sheet"
	CodeInvalidData   ErrorCode = "invalid_data"

	// Validation errors
	CodeInvalidAmount ErrorCode = "invalid_amount"
	CodeInvalidDate   ErrorCode = "invalid_date"
	CodeMissingField  ErrorCode = "missing_field"

	// Configuration errors
	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeMissingConfig ErrorCode = "missing_config"

	// Processing errors
	CodeGenerationFailed ErrorCode = "generation_failed"
	CodeWriteFailed      ErrorCode = "write_failed"
	CodeArchiveFailed    ErrorCode = "archive_failed"

	// Internal errors
	CodeUnexpectedError ErrorCode = "unexpected_error"
)

// ReportError is the base error type for all application errors
type ReportError struct {
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
func (e *ReportError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (suggestion: %s)", e.Message, e.Suggestion)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// GetExitCode returns an appropriate exit code for the error
func (e *ReportError) GetExitCode() int {
	switch e.Category {
	case CategoryFile:
		return 2
	case CategoryParse, CategoryValidation:
		return 3
	case CategoryConfiguration:
		return 4
	case CategoryProcessing, CategoryInternal:
		return 5
	default:
		return 1
	}
}

// WithContext adds context information to the error
func (e *ReportError) WithContext(key string, value interface{}) *ReportError {
	if e.Context == nil {
		e.Context = make(Context)
	}
	e.Context[key] = value
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ReportError) WithSuggestion(suggestion string) *ReportError {
	e.Suggestion = suggestion
	return e
}

// New creates a new ReportError
func New(category ErrorCategory, code ErrorCode, message string) *ReportError {
	return &ReportError{
		Category:   category,
		Code:       code,
		Message:    message,
		StackTrace: errors.New("").(stackTracer).StackTrace(),
	}
}

// Wrap wraps an existing error with ReportError context
func Wrap(err error, category ErrorCategory, code ErrorCode, message string) *ReportError {
	if err == nil {
		return nil
	}

	return &ReportError{
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

// Specific error constructors

// FileError creates a file-related error. The label is the human name of the
// exchange file ("F_CPMaster_data", "CashCollateral_FNO", ...) so the operator
// can tell which attachment is wrong.
func FileError(code ErrorCode, label, path string, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeFileNotFound:
		message = fmt.Sprintf("error reading %s file: file not found: %s", label, path)
		suggestion = "check if the correct file is attached and the path is right"
	case CodeFileLocked:
		message = fmt.Sprintf("error reading %s file: the file is open in another program: %s", label, path)
		suggestion = "please close the file and retry"
	case CodeFileCorrupted:
		message = fmt.Sprintf("error reading %s file: file appears to be corrupted: %s", label, path)
		suggestion = "re-download the file from the exchange portal"
	case CodeUnsupportedFormat:
		message = fmt.Sprintf("error reading %s file: unsupported file type: %s", label, path)
		suggestion = "attach a .csv, .xls or .xlsx file"
	case CodeDirectoryError:
		message = fmt.Sprintf("directory error for %s: %s", label, path)
		suggestion = "ensure the directory exists and is accessible"
	default:
		message = fmt.Sprintf("error reading %s file: %s", label, path)
		suggestion = "please check if the correct file is attached"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryFile, code, message)
	} else {
		result = New(CategoryFile, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_label", label).
		WithContext("file_path", path)
}

// MissingColumnError creates a parse error listing the columns actually found,
// so the operator can identify a wrong-format attachment.
func MissingColumnError(label string, missing []string, available []string) *ReportError {
	message := fmt.Sprintf("error reading %s file: required column(s) %s not found",
		label, strings.Join(missing, ", "))

	return New(CategoryParse, CodeMissingColumn, message).
		WithSuggestion("please check if the correct file is attached").
		WithContext("file_label", label).
		WithContext("missing_columns", strings.Join(missing, ", ")).
		WithContext("available_columns", strings.Join(available, ", "))
}

// ParseError creates a parsing-related error
func ParseError(code ErrorCode, label string, detail string, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidFormat:
		message = fmt.Sprintf("invalid format in %s file: %s", label, detail)
		suggestion = "check the data format and ensure it matches the exchange layout"
	case CodeMissingSheet:
		message = fmt.Sprintf("worksheet %q not found in %s file", detail, label)
		suggestion = "please check if the correct file is attached"
	case CodeInvalidData:
		message = fmt.Sprintf("invalid data in %s file: %s", label, detail)
		suggestion = "correct the data or remove the invalid entry"
	default:
		message = fmt.Sprintf("parse error in %s file: %s", label, detail)
		suggestion = "check the file format and data integrity"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryParse, code, message)
	} else {
		result = New(CategoryParse, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("file_label", label).
		WithContext("detail", detail)
}

// ValidationError creates a validation-related error
func ValidationError(code ErrorCode, field string, value interface{}, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidAmount:
		message = fmt.Sprintf("invalid amount in field '%s': %v", field, value)
		suggestion = "ensure amounts are valid decimal numbers (e.g., '12.34')"
	case CodeInvalidDate:
		message = fmt.Sprintf("invalid date in field '%s': %v", field, value)
		suggestion = "use date format DD/MM/YYYY"
	case CodeMissingField:
		message = fmt.Sprintf("required field '%s' is missing or empty", field)
		suggestion = "provide a value for this required field"
	default:
		message = fmt.Sprintf("validation error in field '%s': %v", field, value)
		suggestion = "check the field value and format"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryValidation, code, message)
	} else {
		result = New(CategoryValidation, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("field", field).
		WithContext("value", value)
}

// ConfigurationError creates a configuration-related error
func ConfigurationError(code ErrorCode, setting string, value interface{}, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeInvalidConfig:
		message = fmt.Sprintf("invalid configuration for '%s': %v", setting, value)
		suggestion = "check the command-line flags for valid values"
	case CodeMissingConfig:
		message = fmt.Sprintf("missing required configuration: %s", setting)
		suggestion = "provide this flag or set it in the config file"
	default:
		message = fmt.Sprintf("configuration error: %s", setting)
		suggestion = "check your configuration and try again"
	}

	var result *ReportError
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

// ProcessingError creates a report-processing error
func ProcessingError(code ErrorCode, operation string, err error) *ReportError {
	var message string
	var suggestion string

	switch code {
	case CodeGenerationFailed:
		message = fmt.Sprintf("report generation failed during %s", operation)
		suggestion = "check the attached files and try again"
	case CodeWriteFailed:
		message = fmt.Sprintf("failed to write output during %s", operation)
		suggestion = "check the output folder permissions and free disk space"
	case CodeArchiveFailed:
		message = fmt.Sprintf("failed to archive report bundle during %s", operation)
		suggestion = "the report file itself was written; re-run to archive"
	default:
		message = fmt.Sprintf("processing error during %s", operation)
		suggestion = "review the inputs and configuration"
	}

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryProcessing, code, message)
	} else {
		result = New(CategoryProcessing, code, message)
	}

	return result.
		WithSuggestion(suggestion).
		WithContext("operation", operation)
}

// InternalError creates an internal error
func InternalError(code ErrorCode, operation string, err error) *ReportError {
	message := fmt.Sprintf("unexpected error during %s", operation)

	var result *ReportError
	if err != nil {
		result = Wrap(err, CategoryInternal, code, message)
	} else {
		result = New(CategoryInternal, code, message)
	}

	return result.
		WithSuggestion("this is likely a bug - please report it with the error details").
		WithContext("operation", operation)
}

// Utility functions

// IsReportError checks if an error is a ReportError
func IsReportError(err error) bool {
	_, ok := err.(*ReportError)
	return ok
}

// AsReportError extracts a ReportError from an error chain
func AsReportError(err error) (*ReportError, bool) {
	var reportErr *ReportError
	if errors.As(err, &reportErr) {
		return reportErr, true
	}
	return nil, false
}

// WrapIfNeeded wraps an error if it's not already a ReportError
func WrapIfNeeded(err error, category ErrorCategory, code ErrorCode, message string) *ReportError {
	if err == nil {
		return nil
	}

	if reportErr, ok := AsReportError(err); ok {
		return reportErr
	}

	return Wrap(err, category, code, message)
}
