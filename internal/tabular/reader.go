// Package tabular loads the exchange-supplied CSV/XLS/XLSX files into a
// uniform Table keyed by stripped header names. Every exchange file uses a
// different header row offset and column subset, so both are caller options.
package tabular

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"

	"github.com/krishnapatil2/pcm/pkg/errors"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// Options control how a file is read
type Options struct {
	// Label is the human name of the exchange file, embedded in errors
	// ("F_CPMaster_data", "CashCollateral_FNO", ...).
	Label string

	// HeaderRow is the zero-based row index holding the column names.
	// Rows above it are discarded.
	HeaderRow int

	// Sheet selects a named worksheet (XLSX only). Empty means the first
	// sheet; XLS files always read the first sheet.
	Sheet string

	// Columns restricts the table to the named columns. Applied after the
	// header row is read; every name listed must exist.
	Columns []string

	// Range restricts the table to an Excel letter range such as "B:T",
	// applied before the header row is interpreted.
	Range string
}

// Table is a header-keyed view over the data rows of one input file
type Table struct {
	Path    string
	Label   string
	headers []string
	index   map[string]int
	rows    [][]string
}

// Read loads the file at path according to opts. The format is chosen by
// extension: .csv, .xls or .xlsx (anything else is rejected).
func Read(path string, opts Options) (*Table, error) {
	log := logger.WithComponent("tabular").WithFields(logger.Fields{
		"file":  filepath.Base(path),
		"label": opts.Label,
	})

	var raw [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = readCSV(path, opts.Label)
	case ".xls":
		raw, err = readXLS(path, opts.Label)
	case ".xlsx":
		raw, err = readXLSX(path, opts)
	default:
		return nil, errors.FileError(errors.CodeUnsupportedFormat, opts.Label, path, nil)
	}
	if err != nil {
		return nil, err
	}

	table, err := assemble(path, raw, opts)
	if err != nil {
		return nil, err
	}

	log.WithField("rows", table.Len()).Debug("Loaded input file")
	return table, nil
}

// open classifies OS-level open failures so callers can tell a missing
// attachment from a spreadsheet still open in another program.
func open(path, label string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	switch {
	case os.IsNotExist(err):
		return nil, errors.FileError(errors.CodeFileNotFound, label, path, err)
	case os.IsPermission(err):
		return nil, errors.FileError(errors.CodeFileLocked, label, path, err)
	default:
		return nil, errors.FileError(errors.CodeFileCorrupted, label, path, err)
	}
}

func readCSV(path, label string) ([][]string, error) {
	f, err := open(path, label)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.ParseError(errors.CodeInvalidFormat, label, err.Error(), err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLS(path, label string) ([][]string, error) {
	// Probe with os.Open first so locked/missing files get the right code;
	// xlsReader only reports a generic failure.
	probe, err := open(path, label)
	if err != nil {
		return nil, err
	}
	probe.Close()

	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, label, path, err)
	}

	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidFormat, label, "workbook has no sheets", err)
	}

	var rows [][]string
	for _, xlsRow := range sheet.GetRows() {
		var cells []string
		for _, col := range xlsRow.GetCols() {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readXLSX(path string, opts Options) ([][]string, error) {
	f, err := open(path, opts.Label)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	workbook, err := excelize.OpenReader(f)
	if err != nil {
		return nil, errors.FileError(errors.CodeFileCorrupted, opts.Label, path, err)
	}
	defer workbook.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	} else if idx, _ := workbook.GetSheetIndex(sheet); idx < 0 {
		return nil, errors.ParseError(errors.CodeMissingSheet, opts.Label, sheet, nil)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, errors.ParseError(errors.CodeInvalidFormat, opts.Label, err.Error(), err)
	}
	if len(rows) == 0 {
		return nil, errors.EmptySheetError(opts.Label, path, sheet)
	}
	return rows, nil
}

// assemble applies the range restriction, extracts stripped headers at the
// configured offset, and applies the named-column restriction.
func assemble(path string, raw [][]string, opts Options) (*Table, error) {
	if opts.Range != "" {
		start, end, err := parseRange(opts.Range, opts.Label)
		if err != nil {
			return nil, err
		}
		raw = sliceColumns(raw, start, end)
	}

	if opts.HeaderRow >= len(raw) {
		return nil, errors.HeaderRowError(opts.Label, path, opts.HeaderRow, len(raw))
	}

	headers := make([]string, len(raw[opts.HeaderRow]))
	for i, h := range raw[opts.HeaderRow] {
		headers[i] = strings.TrimSpace(h)
	}
	data := raw[opts.HeaderRow+1:]

	if len(opts.Columns) > 0 {
		var err error
		headers, data, err = restrictColumns(headers, data, opts)
		if err != nil {
			return nil, err
		}
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	return &Table{
		Path:    path,
		Label:   opts.Label,
		headers: headers,
		index:   index,
		rows:    data,
	}, nil
}

// parseRange converts an Excel letter range like "B:T" into zero-based
// inclusive column indexes.
func parseRange(rangeSpec, label string) (int, int, error) {
	parts := strings.Split(rangeSpec, ":")
	if len(parts) != 2 {
		return 0, 0, errors.ColumnRangeError(label, rangeSpec)
	}

	start, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.ColumnRangeError(label, rangeSpec)
	}
	end, err := excelize.ColumnNameToNumber(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.ColumnRangeError(label, rangeSpec)
	}
	if end < start {
		return 0, 0, errors.ColumnRangeError(label, rangeSpec)
	}

	return start - 1, end - 1, nil
}

func sliceColumns(raw [][]string, start, end int) [][]string {
	out := make([][]string, len(raw))
	for i, row := range raw {
		var cells []string
		for c := start; c <= end; c++ {
			if c < len(row) {
				cells = append(cells, row[c])
			} else {
				cells = append(cells, "")
			}
		}
		out[i] = cells
	}
	return out
}

func restrictColumns(headers []string, data [][]string, opts Options) ([]string, [][]string, error) {
	positions := make([]int, 0, len(opts.Columns))
	var missing []string
	for _, name := range opts.Columns {
		found := -1
		for i, h := range headers {
			if h == name {
				found = i
				break
			}
		}
		if found < 0 {
			missing = append(missing, name)
			continue
		}
		positions = append(positions, found)
	}
	if len(missing) > 0 {
		return nil, nil, errors.MissingColumnError(opts.Label, missing, headers)
	}

	newData := make([][]string, len(data))
	for i, row := range data {
		cells := make([]string, len(positions))
		for j, pos := range positions {
			if pos < len(row) {
				cells[j] = row[pos]
			}
		}
		newData[i] = cells
	}
	return append([]string(nil), opts.Columns...), newData, nil
}

// Headers returns the stripped header names in table order
func (t *Table) Headers() []string {
	return t.headers
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the trimmed value at the given data row for the named column.
// Missing columns and short rows read as "".
func (t *Table) Cell(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// Record returns one data row as a header-keyed map
func (t *Table) Record(row int) map[string]string {
	record := make(map[string]string, len(t.headers))
	for _, h := range t.headers {
		record[h] = t.Cell(row, h)
	}
	return record
}

// RequireColumns fails with a column-listing error unless every named
// column is present.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return errors.MissingColumnError(t.Label, missing, t.headers)
	}
	return nil
}
