package segregation

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/krishnapatil2/pcm/pkg/errors"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// OutputFileName builds the regulatory file name {cpPAN}_{ddmmyyyy}_01.csv
func OutputFileName(cpPAN string, reportDate time.Time) string {
	return fmt.Sprintf("%s_%s_01.csv", cpPAN, reportDate.Format("02012006"))
}

// FormatReportDate renders the date cell value used on every generated row
func FormatReportDate(reportDate time.Time) string {
	return reportDate.Format("02-01-2006")
}

// WriteReport serializes the final row list to path in registry column
// order. The whole record set is rendered in memory first so a failed run
// never leaves a half-written report behind.
func WriteReport(path string, rows []*Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, Headers())
	for _, row := range rows {
		records = append(records, row.Values())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.ProcessingError(errors.CodeWriteFailed, "creating output directory", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.ProcessingError(errors.CodeWriteFailed, "creating report file", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(records); err != nil {
		return errors.ProcessingError(errors.CodeWriteFailed, "writing report rows", err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ProcessingError(errors.CodeWriteFailed, "flushing report file", err)
	}

	logger.WithComponent("writer").WithFields(logger.Fields{
		"file": filepath.Base(path),
		"rows": len(rows),
	}).Info("Wrote segregation report")
	return nil
}

// ParseRunDate parses the operator-entered report date (DD/MM/YYYY)
func ParseRunDate(raw string) (time.Time, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, errors.ValidationError(errors.CodeInvalidDate, "date", raw, err)
	}
	return t, nil
}
