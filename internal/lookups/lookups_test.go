package lookups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/krishnapatil2/pcm/pkg/errors"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// bannered prepends the nine banner lines the exchange reports carry before
// their header row, plus a junk first column so the letter ranges start at B.
func bannered(header string, rows ...string) string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteString("banner line\n")
	}
	b.WriteString("x," + header + "\n")
	for _, r := range rows {
		b.WriteString("x," + r + "\n")
	}
	return b.String()
}

func TestBuildMaster(t *testing.T) {
	path := writeFixture(t, "F_CPMaster_data.csv",
		"CP Code,PAN Number,City\nCP001,PAN001,Mumbai\n,,Pune\nCP002,PAN002,Delhi\n")

	master, err := BuildMaster(path, "F_CPMaster_data")
	if err != nil {
		t.Fatalf("BuildMaster() error: %v", err)
	}

	if master.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank CP row skipped)", master.Len())
	}
	if master.CPCodes[1] != "CP002" || master.PANs[1] != "PAN002" {
		t.Errorf("lists not parallel: %v / %v", master.CPCodes, master.PANs)
	}
}

func TestBuildCollateralLastWins(t *testing.T) {
	path := writeFixture(t, "CashCollateral_fno.csv", bannered(
		"ClientCode,TotalCollateral",
		"CP001,100.50",
		"CP002,not-a-number",
		"CP001,999.25",
	))

	lookup, err := BuildCollateral(path, "CashCollateral_FNO")
	if err != nil {
		t.Fatalf("BuildCollateral() error: %v", err)
	}

	if got := lookup["CP001"]; !got.Equal(decimal.NewFromFloat(999.25)) {
		t.Errorf("CP001 = %s, want last value 999.25", got)
	}
	if got := lookup["CP002"]; !got.IsZero() {
		t.Errorf("malformed amount should read zero, got %s", got)
	}
}

func TestBuildCollateralMissingColumn(t *testing.T) {
	path := writeFixture(t, "CashCollateral_fno.csv", bannered(
		"ClientCode,SomethingElse",
		"CP001,100",
	))

	_, err := BuildCollateral(path, "CashCollateral_FNO")
	reportErr, _ := errors.AsReportError(err)
	if reportErr == nil || reportErr.Code != errors.CodeMissingColumn {
		t.Fatalf("err = %v, want %v", err, errors.CodeMissingColumn)
	}
	if !strings.Contains(err.Error(), "CashCollateral_FNO") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestBuildMargin(t *testing.T) {
	path := writeFixture(t, "DailyMargin_NSEFNO.csv", bannered(
		"ClientCode,Funds,Other",
		"CP001,1500",
		"CP003,\"2,250.75\"",
	))

	lookup, err := BuildMargin(path, "DailyMargin_FNO")
	if err != nil {
		t.Fatalf("BuildMargin() error: %v", err)
	}

	if got := lookup["CP001"]; !got.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("CP001 = %s, want 1500", got)
	}
	if got := lookup["CP003"]; !got.Equal(decimal.NewFromFloat(2250.75)) {
		t.Errorf("thousands separator not tolerated: %s", got)
	}
}

func TestBuildValuationLastWins(t *testing.T) {
	path := writeFixture(t, "valuation.csv", bannered(
		"ClientCode,CashEquivalent,NonCash",
		"CP001,50,10",
		"CP001,75,NA",
	))

	lookup, err := BuildValuation(path, "Valuation")
	if err != nil {
		t.Fatalf("BuildValuation() error: %v", err)
	}

	got := lookup["CP001"]
	if !got.CashEquivalent.Equal(decimal.NewFromInt(75)) {
		t.Errorf("CashEquivalent = %s, want last value 75", got.CashEquivalent)
	}
	if !got.NonCash.IsZero() {
		t.Errorf("NA NonCash should read zero, got %s", got.NonCash)
	}
}

func TestBuildPledge(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet(PledgeSheet); err != nil {
		t.Fatalf("creating sheet: %v", err)
	}

	rows := [][]interface{}{
		{"Client/CP code", "Segment", "Pledge Type", "Post Haircut Value"},
		{"CPX", "FNO", "E-Kuber", 10.004},
		{"CPX", "FNO", "E-Kuber", 10.001},
		{"CPX", "CDS", "E-Kuber", 500},    // wrong segment
		{"CPX", "FNO", "Physical", 500},   // wrong pledge type
		{"CPY", "FNO", "E-Kuber", 3.999},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(PledgeSheet, cell, &row); err != nil {
			t.Fatalf("writing row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "pledge.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving fixture: %v", err)
	}

	lookup, err := BuildPledge(path, "SEC_PLEDGE")
	if err != nil {
		t.Fatalf("BuildPledge() error: %v", err)
	}

	// 10.004 + 10.001 = 20.005, rounded half away from zero to 20.01
	if got := lookup["CPX"]; !got.Equal(decimal.NewFromFloat(20.01)) {
		t.Errorf("CPX = %s, want 20.01", got)
	}
	if got := lookup["CPY"]; !got.Equal(decimal.NewFromFloat(4.00)) {
		t.Errorf("CPY = %s, want 4", got)
	}
}

func TestBuildPledgeRepeatable(t *testing.T) {
	path := writeFixture(t, "collateral.csv", bannered(
		"ClientCode,TotalCollateral",
		"CP001,100",
		"CP001,250",
	))

	first, err := BuildCollateral(path, "CashCollateral_FNO")
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := BuildCollateral(path, "CashCollateral_FNO")
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	if len(first) != len(second) || !first["CP001"].Equal(second["CP001"]) {
		t.Error("re-running the builder should yield identical lookups")
	}
}
