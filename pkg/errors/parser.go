package errors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CellRef locates a value inside a tabular input file. Row is 1-based as
// shown in a spreadsheet application; Sheet is empty for CSV inputs.
type CellRef struct {
	File   string `json:"file"`
	Sheet  string `json:"sheet,omitempty"`
	Row    int    `json:"row,omitempty"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
}

// LocatedError extends ReportError with a cell reference so parse failures
// point at the exact spot in the exchange file.
type LocatedError struct {
	*ReportError
	Ref CellRef `json:"ref"`
}

// Error implements the error interface with the location appended
func (e *LocatedError) Error() string {
	parts := []string{e.ReportError.Error()}

	location := fmt.Sprintf("at %s", filepath.Base(e.Ref.File))
	if e.Ref.Sheet != "" {
		location += fmt.Sprintf(" sheet %q", e.Ref.Sheet)
	}
	if e.Ref.Row > 0 {
		location += fmt.Sprintf(" row %d", e.Ref.Row)
	}
	if e.Ref.Column != "" {
		location += fmt.Sprintf(" column %q", e.Ref.Column)
	}
	parts = append(parts, location)

	return strings.Join(parts, " ")
}

// Unwrap exposes the embedded ReportError to errors.As/errors.Is
func (e *LocatedError) Unwrap() error {
	return e.ReportError
}

// NewLocatedError creates a parse error carrying a cell reference
func NewLocatedError(code ErrorCode, ref CellRef, message string, cause error) *LocatedError {
	var base *ReportError
	if cause != nil {
		base = Wrap(cause, CategoryParse, code, message)
	} else {
		base = New(CategoryParse, code, message)
	}

	base.WithContext("file", ref.File)
	if ref.Sheet != "" {
		base.WithContext("sheet", ref.Sheet)
	}
	if ref.Row > 0 {
		base.WithContext("row", ref.Row)
	}
	if ref.Column != "" {
		base.WithContext("column", ref.Column)
	}
	if ref.Value != "" {
		base.WithContext("value", ref.Value)
	}

	return &LocatedError{ReportError: base, Ref: ref}
}

// WithSuggestion adds a suggestion and returns the LocatedError
func (e *LocatedError) WithSuggestion(suggestion string) *LocatedError {
	e.ReportError.WithSuggestion(suggestion)
	return e
}

// Common located-error constructors

// HeaderRowError reports a header row offset that points past the end of the
// file, which usually means the wrong exchange file was attached.
func HeaderRowError(label, path string, headerRow, totalRows int) *LocatedError {
	ref := CellRef{File: path, Row: headerRow + 1}
	message := fmt.Sprintf("error reading %s file: header expected at row %d but the file has only %d row(s)",
		label, headerRow+1, totalRows)

	err := NewLocatedError(CodeInvalidFormat, ref, message, nil).
		WithSuggestion("please check if the correct file is attached")
	err.WithContext("file_label", label)
	return err
}

// ColumnRangeError reports an unparseable Excel letter range such as "B:T"
func ColumnRangeError(label, rangeSpec string) *LocatedError {
	ref := CellRef{Value: rangeSpec}
	message := fmt.Sprintf("invalid column range %q for %s file", rangeSpec, label)

	err := NewLocatedError(CodeInvalidFormat, ref, message, nil).
		WithSuggestion(`use an Excel letter range like "B:T"`)
	err.WithContext("file_label", label)
	return err
}

// EmptySheetError reports a worksheet that exists but holds no data rows
func EmptySheetError(label, path, sheet string) *LocatedError {
	ref := CellRef{File: path, Sheet: sheet}
	message := fmt.Sprintf("error reading %s file: worksheet %q has no data", label, sheet)

	err := NewLocatedError(CodeInvalidData, ref, message, nil).
		WithSuggestion("please check if the correct file is attached")
	err.WithContext("file_label", label)
	return err
}
