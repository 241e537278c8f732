package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrorReporter appends failure details to error_log.txt in the output
// directory so back-office operators have a record without reading stderr.
type ErrorReporter struct {
	dir    string
	logger Logger
	now    func() time.Time
}

// NewErrorReporter creates a reporter writing under the given directory
func NewErrorReporter(dir string) *ErrorReporter {
	return &ErrorReporter{
		dir:    dir,
		logger: GetGlobalLogger().WithComponent("error-log"),
		now:    time.Now,
	}
}

// Path returns the location of the error log file
func (r *ErrorReporter) Path() string {
	return filepath.Join(r.dir, "error_log.txt")
}

// Report appends one entry for the given input file label. A reporter
// failure is logged but never masks the original error.
func (r *ErrorReporter) Report(label string, err error) {
	if err == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[ERROR] File: %s\n", label)
	fmt.Fprintf(&b, "Timestamp: %s\n", r.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Exception: %s\n", err.Error())
	b.WriteString(strings.Repeat("=", 40))
	b.WriteString("\n")

	if mkErr := os.MkdirAll(r.dir, 0755); mkErr != nil {
		r.logger.WithError(mkErr).Warn("Could not create output directory for error log")
		return
	}

	f, openErr := os.OpenFile(r.Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if openErr != nil {
		r.logger.WithError(openErr).Warn("Could not open error log for appending")
		return
	}
	defer f.Close()

	if _, wErr := f.WriteString(b.String()); wErr != nil {
		r.logger.WithError(wErr).Warn("Could not append to error log")
	}
}
