// Package lookups converts each exchange input file into the keyed mapping
// the report generator consumes. Builders are independent and fail fast with
// a file-identifying error so the operator knows which attachment is wrong.
package lookups

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/krishnapatil2/pcm/internal/tabular"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// Column names as they appear in the exchange files
const (
	colCPCode          = "CP Code"
	colPANNumber       = "PAN Number"
	colClientCode      = "ClientCode"
	colTotalCollateral = "TotalCollateral"
	colFunds           = "Funds"
	colCashEquivalent  = "CashEquivalent"
	colNonCash         = "NonCash"

	colPledgeCP    = "Client/CP code"
	colPledgeSeg   = "Segment"
	colPledgeType  = "Pledge Type"
	colPostHaircut = "Post Haircut Value"
)

// PledgeSheet is the worksheet holding G-Sec pledge valuations
const PledgeSheet = "Valuation_G-Sec"

// reportHeaderRow is the zero-based header offset shared by the collateral,
// margin and valuation reports (nine banner rows precede the header).
const reportHeaderRow = 9

// Master holds the CP code and PAN lists of one segment's master file.
// The lists are order-correlated and iterated in lock-step by the generator.
type Master struct {
	CPCodes []string
	PANs    []string
}

// Len returns the number of (CP code, PAN) pairs
func (m *Master) Len() int {
	return len(m.CPCodes)
}

// Valuation holds the two collateral valuation figures per CP code
type Valuation struct {
	CashEquivalent decimal.Decimal
	NonCash        decimal.Decimal
}

// parseDecimal reads an exchange numeric cell. Blank, "NA" and malformed
// values count as zero; thousands separators are tolerated.
func parseDecimal(raw string) decimal.Decimal {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "NA") {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(trimmed, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// BuildMaster reads a CP master file into parallel CP code / PAN lists
func BuildMaster(path, label string) (*Master, error) {
	table, err := tabular.Read(path, tabular.Options{
		Label:   label,
		Columns: []string{colCPCode, colPANNumber},
	})
	if err != nil {
		return nil, err
	}

	master := &Master{
		CPCodes: make([]string, 0, table.Len()),
		PANs:    make([]string, 0, table.Len()),
	}
	for i := 0; i < table.Len(); i++ {
		cp := table.Cell(i, colCPCode)
		if cp == "" {
			continue
		}
		master.CPCodes = append(master.CPCodes, cp)
		master.PANs = append(master.PANs, table.Cell(i, colPANNumber))
	}

	logger.WithComponent("lookups").WithFields(logger.Fields{
		"label": label,
		"pairs": master.Len(),
	}).Debug("Built master list")
	return master, nil
}

// BuildCollateral reads a cash collateral report into {CP → TotalCollateral}.
// Duplicate client codes keep the last row's value.
func BuildCollateral(path, label string) (map[string]decimal.Decimal, error) {
	table, err := tabular.Read(path, tabular.Options{
		Label:     label,
		HeaderRow: reportHeaderRow,
		Range:     "B:I",
	})
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(colClientCode, colTotalCollateral); err != nil {
		return nil, err
	}

	lookup := make(map[string]decimal.Decimal, table.Len())
	for i := 0; i < table.Len(); i++ {
		code := table.Cell(i, colClientCode)
		if code == "" {
			continue
		}
		lookup[code] = parseDecimal(table.Cell(i, colTotalCollateral))
	}
	return lookup, nil
}

// BuildMargin reads a daily margin report into {CP → Funds}.
// Duplicate client codes keep the last row's value.
func BuildMargin(path, label string) (map[string]decimal.Decimal, error) {
	table, err := tabular.Read(path, tabular.Options{
		Label:     label,
		HeaderRow: reportHeaderRow,
		Range:     "B:T",
	})
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(colClientCode, colFunds); err != nil {
		return nil, err
	}

	lookup := make(map[string]decimal.Decimal, table.Len())
	for i := 0; i < table.Len(); i++ {
		code := table.Cell(i, colClientCode)
		if code == "" {
			continue
		}
		lookup[code] = parseDecimal(table.Cell(i, colFunds))
	}
	return lookup, nil
}

// BuildValuation reads a collateral valuation report into
// {CP → {CashEquivalent, NonCash}}. Duplicate client codes keep the last
// row's values per field.
func BuildValuation(path, label string) (map[string]Valuation, error) {
	table, err := tabular.Read(path, tabular.Options{
		Label:     label,
		HeaderRow: reportHeaderRow,
		Range:     "B:H",
	})
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(colClientCode, colCashEquivalent, colNonCash); err != nil {
		return nil, err
	}

	lookup := make(map[string]Valuation, table.Len())
	for i := 0; i < table.Len(); i++ {
		code := table.Cell(i, colClientCode)
		if code == "" {
			continue
		}
		lookup[code] = Valuation{
			CashEquivalent: parseDecimal(table.Cell(i, colCashEquivalent)),
			NonCash:        parseDecimal(table.Cell(i, colNonCash)),
		}
	}
	return lookup, nil
}

// BuildPledge reads the G-Sec pledge valuation workbook into
// {CP → post-haircut total}. Only FNO segment rows pledged via E-Kuber
// count; per-CP totals are summed then rounded to two decimals, half away
// from zero.
func BuildPledge(path, label string) (map[string]decimal.Decimal, error) {
	table, err := tabular.Read(path, tabular.Options{
		Label: label,
		Sheet: PledgeSheet,
	})
	if err != nil {
		return nil, err
	}
	if err := table.RequireColumns(colPledgeCP, colPledgeSeg, colPledgeType, colPostHaircut); err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for i := 0; i < table.Len(); i++ {
		if !strings.EqualFold(table.Cell(i, colPledgeSeg), "FNO") {
			continue
		}
		if !strings.EqualFold(table.Cell(i, colPledgeType), "E-Kuber") {
			continue
		}
		code := table.Cell(i, colPledgeCP)
		if code == "" {
			continue
		}
		totals[code] = totals[code].Add(parseDecimal(table.Cell(i, colPostHaircut)))
	}

	for code, total := range totals {
		totals[code] = total.Round(2)
	}

	logger.WithComponent("lookups").WithFields(logger.Fields{
		"label": label,
		"cps":   len(totals),
	}).Debug("Built pledge lookup")
	return totals, nil
}
