package overrides

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func writeStore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "master_records.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeStore(t, `{
		"AV_Records": [
			{"Account Type": "P", "Segment Indicator": "FO", "av_value": 100.5}
		],
		"AT_Records": [
			{"CP Code": "CP001", "Segment Indicator": "FO", "at_value": 30},
			{"CP Code": "CP001", "Segment Indicator": "CD", "at_value": "12.25"}
		]
	}`)

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(store.AVRecords) != 1 || len(store.ATRecords) != 2 {
		t.Fatalf("loaded %d AV / %d AT records", len(store.AVRecords), len(store.ATRecords))
	}
	if !store.AVRecords[0].Value.Equal(decimal.NewFromFloat(100.5)) {
		t.Errorf("av_value = %s", store.AVRecords[0].Value)
	}
	if !store.ATRecords[1].Value.Equal(decimal.NewFromFloat(12.25)) {
		t.Errorf("string-encoded at_value = %s", store.ATRecords[1].Value)
	}
}

func TestLoadAbsentFile(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("absent file must not fail: %v", err)
	}
	if len(store.AVRecords) != 0 || len(store.ATRecords) != 0 {
		t.Error("absent file should yield empty override lists")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeStore(t, `{"AV_Records": not-json`)

	if _, err := Load(path); err == nil {
		t.Fatal("malformed JSON should fail")
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	store := &Store{
		AVRecords: []AVRecord{
			{AccountType: "P", Segment: "FO", Value: decimal.NewFromInt(100)},
			{AccountType: "P", Segment: "FO", Value: decimal.NewFromInt(999)},
		},
		ATRecords: []ATRecord{
			{CPCode: "CP001", Segment: "FO", Value: decimal.NewFromInt(30)},
			{CPCode: "CP001", Segment: "FO", Value: decimal.NewFromInt(77)},
		},
	}

	av, ok := store.FindAV("P", "FO")
	if !ok || !av.Value.Equal(decimal.NewFromInt(100)) {
		t.Errorf("FindAV = %v %v, want first record", av, ok)
	}
	at, ok := store.FindAT("CP001", "FO")
	if !ok || !at.Value.Equal(decimal.NewFromInt(30)) {
		t.Errorf("FindAT = %v %v, want first record", at, ok)
	}

	if _, ok := store.FindAV("C", "FO"); ok {
		t.Error("FindAV should miss on unknown account type")
	}
	if _, ok := store.FindAT("CP002", "FO"); ok {
		t.Error("FindAT should miss on unknown CP code")
	}
}
