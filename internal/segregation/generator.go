package segregation

import (
	"github.com/shopspring/decimal"

	"github.com/krishnapatil2/pcm/internal/lookups"
	"github.com/krishnapatil2/pcm/internal/overrides"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// Segment indicators as they appear in the output file
const (
	SegmentFO = "FO"
	SegmentCD = "CD"
)

// accountTypeClient is the fixed account type for generated rows; "P" rows
// only enter via SANTOM or extra records.
const accountTypeClient = "C"

// SegmentInputs bundles one segment's master list and lookups
type SegmentInputs struct {
	Master     *lookups.Master
	Collateral map[string]decimal.Decimal
	Margin     map[string]decimal.Decimal
	Valuation  map[string]lookups.Valuation
}

// GeneratorInputs holds everything the generator consumes. Pledge values are
// FNO-scoped by construction and only ever land on FO rows.
type GeneratorInputs struct {
	FO     SegmentInputs
	CD     SegmentInputs
	Pledge map[string]decimal.Decimal
}

// Generator builds one report row per (CP code, PAN) pair per segment
type Generator struct {
	reportDate string
	cpPAN      string
	store      *overrides.Store
	log        logger.Logger
}

// NewGenerator creates a generator for one report run. reportDate is the
// already-formatted date cell value; cpPAN is the clearing member PAN written
// to both member PAN columns.
func NewGenerator(reportDate, cpPAN string, store *overrides.Store) *Generator {
	if store == nil {
		store = &overrides.Store{}
	}
	return &Generator{
		reportDate: reportDate,
		cpPAN:      cpPAN,
		store:      store,
		log:        logger.WithComponent("generator"),
	}
}

// Generate produces the full unsorted row set, FO rows first then CD rows
func (g *Generator) Generate(inputs GeneratorInputs) []*Row {
	rows := make([]*Row, 0, inputs.FO.Master.Len()+inputs.CD.Master.Len())

	rows = append(rows, g.generateSegment(SegmentFO, inputs.FO, inputs.Pledge)...)
	rows = append(rows, g.generateSegment(SegmentCD, inputs.CD, nil)...)

	g.log.WithFields(logger.Fields{
		"fo_rows": inputs.FO.Master.Len(),
		"cd_rows": inputs.CD.Master.Len(),
	}).Info("Generated report rows")
	return rows
}

func (g *Generator) generateSegment(segment string, in SegmentInputs, pledge map[string]decimal.Decimal) []*Row {
	rows := make([]*Row, 0, in.Master.Len())

	for i, cp := range in.Master.CPCodes {
		row := NewRow()
		row.SetText(ColA, g.reportDate)
		row.SetText(ColB, g.cpPAN)
		row.SetText(ColC, g.cpPAN)
		row.SetText(ColD, cp)
		row.SetText(ColE, in.Master.PANs[i])
		row.SetText(ColF, "")
		row.SetText(ColG, accountTypeClient)
		row.SetText(ColH, segment)
		row.SetText(ColI, "")

		// Absence from a lookup is normal: the CP had no activity that day.
		row.SetAmount(ColJ, in.Collateral[cp])
		margin := in.Margin[cp]
		row.SetAmount(ColK, margin)
		row.SetAmount(ColL, margin)

		valuation := in.Valuation[cp]
		row.SetAmount(ColO, valuation.CashEquivalent)
		row.SetAmount(ColP, valuation.NonCash)

		// The exchange requires the same balance reported redundantly
		// across the placed-with-CM and placed-with-NCL sub-columns.
		row.SetAmount(ColAD, margin)
		row.SetAmount(ColAV, margin)
		row.SetAmount(ColAG, valuation.CashEquivalent)
		row.SetAmount(ColAW, valuation.CashEquivalent)
		row.SetAmount(ColAH, valuation.NonCash)
		row.SetAmount(ColAX, valuation.NonCash)

		if value, ok := pledge[cp]; ok {
			row.SetAmount(ColBB, value)
			row.SetAmount(ColBD, value)
			row.SetAmount(ColBF, value)
		}

		if av, ok := g.store.FindAV(row.AccountType(), segment); ok {
			row.SetAmount(ColAV, av.Value)
		}

		rows = append(rows, row)
	}
	return rows
}
