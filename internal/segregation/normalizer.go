package segregation

import (
	"sort"

	"github.com/krishnapatil2/pcm/pkg/logger"
)

// Finalize orders the generated rows for output:
//  1. blank/NA cells in the numeric segregation columns become zero,
//  2. rows sort by segment indicator ascending (stable, segment only),
//  3. all-zero rows move to the tail,
//  4. extra records sit between the non-zero rows and the zero tail, kept
//     in their source-file order,
//  5. the two sentinel columns are forced to "NA" on every row.
//
// Significant rows surface first for operator review, with manual additions
// kept visibly separate from the no-activity tail.
func Finalize(rows []*Row, extras []*Row) []*Row {
	for _, row := range rows {
		row.NormalizeAmounts()
	}
	for _, row := range extras {
		row.NormalizeAmounts()
	}

	sorted := append([]*Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Segment() < sorted[j].Segment()
	})

	nonZero := make([]*Row, 0, len(sorted))
	zero := make([]*Row, 0)
	for _, row := range sorted {
		if row.IsZero() {
			zero = append(zero, row)
		} else {
			nonZero = append(nonZero, row)
		}
	}

	final := make([]*Row, 0, len(sorted)+len(extras))
	final = append(final, nonZero...)
	final = append(final, extras...)
	final = append(final, zero...)

	applySentinels(final)

	logger.WithComponent("normalizer").WithFields(logger.Fields{
		"non_zero": len(nonZero),
		"extras":   len(extras),
		"zero":     len(zero),
	}).Info("Ordered report rows")
	return final
}

// applySentinels forces the MTF indicator and unclaimed-funds columns to the
// literal "NA" required by the exchange file format.
func applySentinels(rows []*Row) {
	for _, row := range rows {
		for _, c := range SentinelColumns {
			row.SetText(c, "NA")
		}
	}
}
