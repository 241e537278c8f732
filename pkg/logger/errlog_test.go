package logger

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestErrorReporterAppends(t *testing.T) {
	dir := t.TempDir()

	reporter := NewErrorReporter(dir)
	reporter.now = func() time.Time {
		return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	}

	reporter.Report("CashCollateral_FNO", errors.New("file not found"))
	reporter.Report("DailyMargin_FNO", errors.New("missing column"))

	data, err := os.ReadFile(filepath.Join(dir, "error_log.txt"))
	if err != nil {
		t.Fatalf("reading error log: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"[ERROR] File: CashCollateral_FNO",
		"Timestamp: 2024-03-15 10:30:00",
		"Exception: file not found",
		"[ERROR] File: DailyMargin_FNO",
		"Exception: missing column",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("error log missing %q\ngot:\n%s", want, content)
		}
	}

	if strings.Count(content, "====") != 2 {
		t.Errorf("expected 2 separator lines, got %d", strings.Count(content, "===="))
	}
}

func TestErrorReporterNilError(t *testing.T) {
	dir := t.TempDir()

	NewErrorReporter(dir).Report("F_CPMaster_data", nil)

	if _, err := os.Stat(filepath.Join(dir, "error_log.txt")); !os.IsNotExist(err) {
		t.Error("nil error should not create the log file")
	}
}

func TestErrorReporterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "out")

	NewErrorReporter(dir).Report("Valuation_FNO", errors.New("boom"))

	if _, err := os.Stat(filepath.Join(dir, "error_log.txt")); err != nil {
		t.Errorf("error log not created in missing directory: %v", err)
	}
}
