package segregation

import (
	"github.com/shopspring/decimal"

	"github.com/krishnapatil2/pcm/pkg/logger"
)

// MergeSantom appends one row per SANTOM file row to the final list.
// Proprietary ("P") rows get the cash-with-NCL adjustment: the
// FDR-placed-with-NCL column becomes cash-placed-with-CM minus the operator
// scalar and the scalar itself lands in the cash-placed-with-NCL column.
// When the cash-placed-with-CM cell of a "P" row cannot be read as a number
// the balance defaults to zero instead of 0 minus the scalar.
// All other rows copy the three NCL columns straight from their CM-side
// sources. Afterwards the sentinel columns are backfilled on every row,
// since SANTOM rows bypass the normalizer.
func MergeSantom(rows []*Row, santomRows []*Row, cashWithNCL decimal.Decimal) []*Row {
	for _, s := range santomRows {
		adReadable := s.hasNumericCell(ColAD)
		s.NormalizeAmounts()

		if s.AccountType() == "P" {
			if adReadable {
				s.SetAmount(ColAV, s.Amount(ColAD).Sub(cashWithNCL))
			} else {
				s.SetAmount(ColAV, decimal.Zero)
			}
			s.SetAmount(ColAT, cashWithNCL)
		} else {
			s.SetAmount(ColAV, s.Amount(ColAD))
		}
		s.SetAmount(ColAW, s.Amount(ColAG))
		s.SetAmount(ColAH, s.Amount(ColAX))

		rows = append(rows, s)
	}

	applySentinels(rows)

	if len(santomRows) > 0 {
		logger.WithComponent("santom").WithField("rows", len(santomRows)).Info("Merged SANTOM override rows")
	}
	return rows
}

// ParseScalar reads the operator-entered cash-with-NCL value. Malformed
// input defaults to zero rather than aborting the run.
func ParseScalar(raw string) decimal.Decimal {
	return parseAmount(raw)
}
