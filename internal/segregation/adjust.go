package segregation

import (
	"github.com/krishnapatil2/pcm/internal/overrides"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// ApplyAT runs the post-sort AT adjustment: for the first AT record matching
// a row's (CP code, segment), the FDR-placed-with-NCL column becomes
// cash-placed-with-CM minus the override value, and the override value
// itself lands in the cash-placed-with-NCL column. Rows keep their position,
// so the pass runs on the final ordered list. When both an AV and an AT
// record match a row, the AT record wins by running later.
func ApplyAT(rows []*Row, store *overrides.Store) {
	if store == nil {
		return
	}

	adjusted := 0
	for _, row := range rows {
		at, ok := store.FindAT(row.CPCode(), row.Segment())
		if !ok {
			continue
		}
		row.SetAmount(ColAV, row.Amount(ColAD).Sub(at.Value))
		row.SetAmount(ColAT, at.Value)
		adjusted++
	}

	if adjusted > 0 {
		logger.WithComponent("at-pass").WithField("rows", adjusted).Info("Applied AT overrides")
	}
}
