package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestReportError(t *testing.T) {
	tests := []struct {
		name       string
		category   ErrorCategory
		code       ErrorCode
		message    string
		cause      error
		expectCode int
	}{
		{
			name:       "file error",
			category:   CategoryFile,
			code:       CodeFileNotFound,
			message:    "file not found",
			cause:      errors.New("no such file"),
			expectCode: 2,
		},
		{
			name:       "parse error",
			category:   CategoryParse,
			code:       CodeInvalidFormat,
			message:    "invalid format",
			cause:      nil,
			expectCode: 3,
		},
		{
			name:       "validation error",
			category:   CategoryValidation,
			code:       CodeInvalidDate,
			message:    "bad date",
			cause:      nil,
			expectCode: 3,
		},
		{
			name:       "configuration error",
			category:   CategoryConfiguration,
			code:       CodeMissingConfig,
			message:    "missing flag",
			cause:      nil,
			expectCode: 4,
		},
		{
			name:       "processing error",
			category:   CategoryProcessing,
			code:       CodeGenerationFailed,
			message:    "generation failed",
			cause:      errors.New("boom"),
			expectCode: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *ReportError
			if tt.cause != nil {
				err = Wrap(tt.cause, tt.category, tt.code, tt.message)
			} else {
				err = New(tt.category, tt.code, tt.message)
			}

			if err.Category != tt.category {
				t.Errorf("Category = %v, want %v", err.Category, tt.category)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %v, want %v", err.Code, tt.code)
			}
			if err.GetExitCode() != tt.expectCode {
				t.Errorf("GetExitCode() = %d, want %d", err.GetExitCode(), tt.expectCode)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Error("wrapped error should match cause via errors.Is")
			}
		})
	}
}

func TestReportErrorFormatting(t *testing.T) {
	err := New(CategoryFile, CodeFileNotFound, "file not found")
	if err.Error() != "file not found" {
		t.Errorf("Error() = %q, want plain message", err.Error())
	}

	err.WithSuggestion("check the path")
	if !strings.Contains(err.Error(), "suggestion: check the path") {
		t.Errorf("Error() = %q, want embedded suggestion", err.Error())
	}
}

func TestReportErrorContext(t *testing.T) {
	err := New(CategoryParse, CodeInvalidData, "bad cell").
		WithContext("file_label", "DailyMargin_FNO").
		WithContext("row", 9)

	if err.Context["file_label"] != "DailyMargin_FNO" {
		t.Errorf("Context[file_label] = %v, want DailyMargin_FNO", err.Context["file_label"])
	}
	if err.Context["row"] != 9 {
		t.Errorf("Context[row] = %v, want 9", err.Context["row"])
	}
}

func TestFileError(t *testing.T) {
	tests := []struct {
		name     string
		code     ErrorCode
		contains []string
	}{
		{
			name:     "not found",
			code:     CodeFileNotFound,
			contains: []string{"F_CPMaster_data", "file not found", "/tmp/cp.csv"},
		},
		{
			name:     "locked",
			code:     CodeFileLocked,
			contains: []string{"open in another program", "close the file and retry"},
		},
		{
			name:     "unsupported",
			code:     CodeUnsupportedFormat,
			contains: []string{"unsupported file type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FileError(tt.code, "F_CPMaster_data", "/tmp/cp.csv", nil)

			if err.Category != CategoryFile {
				t.Errorf("Category = %v, want %v", err.Category, CategoryFile)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Error() = %q, want it to contain %q", err.Error(), want)
				}
			}
			if err.Context["file_label"] != "F_CPMaster_data" {
				t.Error("file_label context missing")
			}
		})
	}
}

func TestMissingColumnError(t *testing.T) {
	err := MissingColumnError("CashCollateral_FNO",
		[]string{"TotalCollateral"},
		[]string{"CP Code", "Funds"})

	if err.Code != CodeMissingColumn {
		t.Errorf("Code = %v, want %v", err.Code, CodeMissingColumn)
	}
	if !strings.Contains(err.Message, "TotalCollateral") {
		t.Errorf("Message = %q, want the missing column named", err.Message)
	}
	if err.Context["available_columns"] != "CP Code, Funds" {
		t.Errorf("available_columns = %v", err.Context["available_columns"])
	}
}

func TestLocatedError(t *testing.T) {
	ref := CellRef{File: "/data/margin.xlsx", Sheet: "Sheet1", Row: 12, Column: "Funds", Value: "abc"}
	err := NewLocatedError(CodeInvalidData, ref, "invalid amount", nil)

	msg := err.Error()
	for _, want := range []string{"margin.xlsx", "row 12", `column "Funds"`, `sheet "Sheet1"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
	if err.Context["value"] != "abc" {
		t.Error("cell value missing from context")
	}
}

func TestHeaderRowError(t *testing.T) {
	err := HeaderRowError("DailyMargin_FNO", "/data/margin.xlsx", 9, 4)

	if err.Code != CodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, CodeInvalidFormat)
	}
	if !strings.Contains(err.Message, "row 10") {
		t.Errorf("Message = %q, want 1-based header row", err.Message)
	}
	if !strings.Contains(err.Message, "4 row(s)") {
		t.Errorf("Message = %q, want total row count", err.Message)
	}
}

func TestAsReportError(t *testing.T) {
	base := New(CategoryFile, CodeFileNotFound, "missing")

	got, ok := AsReportError(base)
	if !ok || got != base {
		t.Error("AsReportError should find a direct ReportError")
	}

	located := NewLocatedError(CodeInvalidData, CellRef{File: "x.csv"}, "bad", nil)
	if _, ok := AsReportError(located); !ok {
		t.Error("AsReportError should unwrap a LocatedError")
	}

	if _, ok := AsReportError(errors.New("plain")); ok {
		t.Error("AsReportError should reject a plain error")
	}
}

func TestWrapIfNeeded(t *testing.T) {
	if WrapIfNeeded(nil, CategoryInternal, CodeUnexpectedError, "x") != nil {
		t.Error("nil in, nil out")
	}

	orig := New(CategoryFile, CodeFileNotFound, "missing")
	if got := WrapIfNeeded(orig, CategoryInternal, CodeUnexpectedError, "x"); got != orig {
		t.Error("existing ReportError should pass through unchanged")
	}

	plain := errors.New("boom")
	got := WrapIfNeeded(plain, CategoryProcessing, CodeGenerationFailed, "generation failed")
	if got.Category != CategoryProcessing || !errors.Is(got, plain) {
		t.Error("plain error should be wrapped with the given category")
	}
}
