// Package overrides loads the operator-maintained master override file.
// AV records set a segment-wide default for the FDR-placed-with-NCL column;
// AT records adjust a single CP's NCL-placed cash.
package overrides

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"github.com/krishnapatil2/pcm/pkg/errors"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// AVRecord is a segment-wide default keyed by (account type, segment).
// JSON field names follow the regulatory column names used by the editing
// tooling that maintains the file.
type AVRecord struct {
	AccountType string          `json:"Account Type"`
	Segment     string          `json:"Segment Indicator"`
	Value       decimal.Decimal `json:"av_value"`
}

// ATRecord is a per-CP adjustment keyed by (CP code, segment)
type ATRecord struct {
	CPCode  string          `json:"CP Code"`
	Segment string          `json:"Segment Indicator"`
	Value   decimal.Decimal `json:"at_value"`
}

// Store holds the override lists in file order. Matching is first-match-wins
// and duplicates are kept as stored; the lists are small (dozens of rows).
type Store struct {
	AVRecords []AVRecord `json:"AV_Records"`
	ATRecords []ATRecord `json:"AT_Records"`
}

// Load reads the master override JSON. An absent file is not an error: the
// feature is optional and an empty store is returned.
func Load(path string) (*Store, error) {
	log := logger.WithComponent("overrides")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Debug("No master override file, proceeding without overrides")
			return &Store{}, nil
		}
		return nil, errors.FileError(errors.CodeFileCorrupted, "master_records", path, err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return nil, errors.ParseError(errors.CodeInvalidFormat, "master_records", err.Error(), err)
	}

	log.WithFields(logger.Fields{
		"av_records": len(store.AVRecords),
		"at_records": len(store.ATRecords),
	}).Debug("Loaded master override file")
	return store, nil
}

// FindAV returns the first AV record matching (account type, segment)
func (s *Store) FindAV(accountType, segment string) (AVRecord, bool) {
	for _, rec := range s.AVRecords {
		if rec.AccountType == accountType && rec.Segment == segment {
			return rec, true
		}
	}
	return AVRecord{}, false
}

// FindAT returns the first AT record matching (CP code, segment)
func (s *Store) FindAT(cpCode, segment string) (ATRecord, bool) {
	for _, rec := range s.ATRecords {
		if rec.CPCode == cpCode && rec.Segment == segment {
			return rec, true
		}
	}
	return ATRecord{}, false
}
