// Package archive persists each successful report run: the input files and
// the generated report are zipped together and stored as a blob row in a
// local SQLite database, giving the back office a replayable audit trail.
package archive

import (
	"archive/zip"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/krishnapatil2/pcm/pkg/errors"
	"github.com/krishnapatil2/pcm/pkg/logger"
)

// ReportTypeSegregation tags segregation report bundles in the database
const ReportTypeSegregation = "SEGREGATION_REPORT"

// NamedFile pairs a file on disk with the name it gets inside the bundle
type NamedFile struct {
	Path    string
	Arcname string
}

// Store writes report bundles to a SQLite database
type Store struct {
	dbPath string
	log    logger.Logger
	now    func() time.Time
}

// NewStore creates a store backed by the database at dbPath. The schema is
// created on first use.
func NewStore(dbPath string) *Store {
	return &Store{
		dbPath: dbPath,
		log:    logger.WithComponent("archive"),
		now:    time.Now,
	}
}

func (s *Store) openDB() (*sql.DB, error) {
	if dir := filepath.Dir(s.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", s.dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS pcm (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type_of_report TEXT,
			created_at TEXT,
			modified_at TEXT,
			report_blob BLOB
		)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// SaveBundle zips the given files, writes the zip next to the report in
// outputDir, and inserts it as a blob row tagged with reportType.
func (s *Store) SaveBundle(reportType string, files []NamedFile, outputDir string) (string, error) {
	stamp := s.now()
	zipName := fmt.Sprintf("%s_%s.zip", reportType, stamp.Format("20060102_150405"))
	zipPath := filepath.Join(outputDir, zipName)

	if err := writeZip(zipPath, files); err != nil {
		return "", errors.ProcessingError(errors.CodeArchiveFailed, "zipping report bundle", err)
	}

	blob, err := os.ReadFile(zipPath)
	if err != nil {
		return "", errors.ProcessingError(errors.CodeArchiveFailed, "reading report bundle", err)
	}

	db, err := s.openDB()
	if err != nil {
		return "", errors.ProcessingError(errors.CodeArchiveFailed, "opening archive database", err)
	}
	defer db.Close()

	timestamp := stamp.Format("2006-01-02 15:04:05")
	_, err = db.Exec(`
		INSERT INTO pcm (type_of_report, created_at, modified_at, report_blob)
		VALUES (?, ?, ?, ?)`,
		reportType, timestamp, timestamp, blob)
	if err != nil {
		return "", errors.ProcessingError(errors.CodeArchiveFailed, "inserting report bundle", err)
	}

	s.log.WithFields(logger.Fields{
		"zip":   zipName,
		"files": len(files),
		"bytes": len(blob),
	}).Info("Archived report bundle")
	return zipPath, nil
}

func writeZip(zipPath string, files []NamedFile) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, file := range files {
		src, err := os.Open(file.Path)
		if err != nil {
			return err
		}

		arcname := file.Arcname
		if arcname == "" {
			arcname = filepath.Base(file.Path)
		}
		entry, err := zw.Create(arcname)
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return zw.Close()
}

// Count returns the number of archived bundles for a report type
func (s *Store) Count(reportType string) (int, error) {
	db, err := s.openDB()
	if err != nil {
		return 0, errors.ProcessingError(errors.CodeArchiveFailed, "opening archive database", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM pcm WHERE type_of_report = ?`, reportType).Scan(&count)
	if err != nil {
		return 0, errors.ProcessingError(errors.CodeArchiveFailed, "querying archive database", err)
	}
	return count, nil
}
