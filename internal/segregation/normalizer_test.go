package segregation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func makeRow(segment, cp string, j float64) *Row {
	row := NewRow()
	row.SetText(ColH, segment)
	row.SetText(ColD, cp)
	if j != 0 {
		row.SetAmount(ColJ, decimal.NewFromFloat(j))
	}
	return row
}

func TestFinalizeSortsBySegmentOnly(t *testing.T) {
	rows := []*Row{
		makeRow("FO", "CPB", 10),
		makeRow("CD", "CPZ", 5),
		makeRow("FO", "CPA", 20),
		makeRow("CD", "CPA", 7),
	}

	final := Finalize(rows, nil)

	segments := make([]string, len(final))
	for i, row := range final {
		segments[i] = row.Segment()
	}
	want := []string{"CD", "CD", "FO", "FO"}
	for i := range want {
		if segments[i] != want[i] {
			t.Fatalf("segment order = %v, want %v", segments, want)
		}
	}

	// Stable: within a segment, source order survives (no CP sorting).
	if final[0].CPCode() != "CPZ" || final[1].CPCode() != "CPA" {
		t.Errorf("CD rows reordered: %s, %s", final[0].CPCode(), final[1].CPCode())
	}
	if final[2].CPCode() != "CPB" || final[3].CPCode() != "CPA" {
		t.Errorf("FO rows reordered: %s, %s", final[2].CPCode(), final[3].CPCode())
	}
}

func TestFinalizeZeroRowPartition(t *testing.T) {
	rows := []*Row{
		makeRow("FO", "ZERO1", 0),
		makeRow("CD", "LIVE1", 5),
		makeRow("CD", "ZERO2", 0),
		makeRow("FO", "LIVE2", 10),
	}

	final := Finalize(rows, nil)

	order := make([]string, len(final))
	for i, row := range final {
		order[i] = row.CPCode()
	}
	want := []string{"LIVE1", "LIVE2", "ZERO1", "ZERO2"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFinalizeExtrasSitBetweenLiveAndZeroRows(t *testing.T) {
	rows := []*Row{
		makeRow("FO", "ZERO", 0),
		makeRow("CD", "LIVE", 5),
	}
	extras := []*Row{
		makeRow("XX", "EXTRA2", 1),
		makeRow("AA", "EXTRA1", 1),
	}

	final := Finalize(rows, extras)

	order := make([]string, len(final))
	for i, row := range final {
		order[i] = row.CPCode()
	}
	// Extras keep their source order, unsorted, before the zero tail.
	want := []string{"LIVE", "EXTRA2", "EXTRA1", "ZERO"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestFinalizeNormalizesTextCells(t *testing.T) {
	row := makeRow("FO", "CP001", 0)
	row.SetText(ColK, "NA")
	row.SetText(ColL, "")
	row.SetText(ColO, "12.5")

	final := Finalize([]*Row{row}, nil)

	got := final[0]
	if !got.Amount(ColK).IsZero() || !got.Amount(ColL).IsZero() {
		t.Error("NA/blank cells must normalize to zero")
	}
	if !got.Amount(ColO).Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("Amount(O) = %s, want 12.5", got.Amount(ColO))
	}
}

func TestFinalizeSentinelsOnEveryRow(t *testing.T) {
	rows := []*Row{
		makeRow("FO", "CP001", 10),
		makeRow("CD", "CP002", 0),
	}
	extra := makeRow("FO", "EXTRA", 1)
	extra.SetText(ColAZ, "something else")

	final := Finalize(rows, []*Row{extra})

	for i, row := range final {
		if row.Render(ColAZ) != "NA" {
			t.Errorf("row %d AZ = %q, want NA", i, row.Render(ColAZ))
		}
		if row.Render(ColBL) != "NA" {
			t.Errorf("row %d BL = %q, want NA", i, row.Render(ColBL))
		}
	}
}
