package locusstats

import (
	"strings"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

const summarySchema = `
CREATE TABLE IF NOT EXISTS Summary (
	locus_id TEXT NOT NULL,
	n_observations INTEGER NOT NULL,
	mean REAL NOT NULL,
	variance REAL NOT NULL,
	percentile_5 REAL NOT NULL,
	percentile_95 REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS Metadata (
	filename TEXT NOT NULL,
	index_creation_time INTEGER NOT NULL
);
`

// SummaryDB stores summary records in a SQLite database alongside the TSV
// report, so loci can be queried without reparsing the report.
type SummaryDB struct {
	DB       *sqlx.DB
	Metadata *SummaryMetadata

	tx     *sqlx.Tx
	insert *sqlx.NamedStmt
}

// SummaryMetadata conforms to the single row of the "Metadata" table.
type SummaryMetadata struct {
	Filename          string `db:"filename"`
	IndexCreationTime Time   `db:"index_creation_time"`
}

// CreateSummaryDB opens the database at path for writing, replacing any
// records it already holds. source names the input table. Records written
// through the returned SummaryDB become visible once Close succeeds.
func CreateSummaryDB(path, source string) (*SummaryDB, error) {
	db, err := connectSQLite(sqliteURI(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	s := &SummaryDB{
		DB:       db,
		Metadata: &SummaryMetadata{Filename: source, IndexCreationTime: Time(time.Now().Truncate(time.Second))},
	}

	if err := s.prepare(); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return s, nil
}

func (s *SummaryDB) prepare() error {
	if _, err := s.DB.Exec(summarySchema); err != nil {
		return err
	}

	tx, err := s.DB.Beginx()
	if err != nil {
		return err
	}
	s.tx = tx

	if _, err := tx.Exec("DELETE FROM Summary"); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("DELETE FROM Metadata"); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO Metadata (filename, index_creation_time) VALUES (?, ?)",
		s.Metadata.Filename, time.Time(s.Metadata.IndexCreationTime).Unix()); err != nil {
		tx.Rollback()
		return err
	}

	s.insert, err = tx.PrepareNamed(`INSERT INTO Summary
		(locus_id, n_observations, mean, variance, percentile_5, percentile_95)
		VALUES (:locus_id, :n_observations, :mean, :variance, :percentile_5, :percentile_95)`)
	if err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

func (s *SummaryDB) Write(rec SummaryRecord) error {
	if s.insert == nil {
		return pfx.Err(errReadOnlySummaryDB)
	}

	if _, err := s.insert.Exec(rec); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// OpenSummaryDB opens an existing summary database for querying.
func OpenSummaryDB(path string) (*SummaryDB, error) {
	db, err := connectSQLite(sqliteURI(path))
	if err != nil {
		return nil, pfx.Err(err)
	}

	s := &SummaryDB{
		DB:       db,
		Metadata: &SummaryMetadata{},
	}

	if err := db.Get(s.Metadata, "SELECT filename, index_creation_time FROM Metadata LIMIT 1"); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return s, nil
}

// Records returns every stored record in the order it was written.
func (s *SummaryDB) Records() ([]SummaryRecord, error) {
	var out []SummaryRecord
	err := s.DB.Select(&out, `SELECT locus_id, n_observations, mean, variance, percentile_5, percentile_95
		FROM Summary ORDER BY rowid ASC`)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}

// Close commits pending writes and closes the database.
func (s *SummaryDB) Close() error {
	if s.tx != nil {
		if err := s.insert.Close(); err != nil {
			s.tx.Rollback()
			s.DB.Close()
			return pfx.Err(err)
		}
		if err := s.tx.Commit(); err != nil {
			s.DB.Close()
			return pfx.Err(err)
		}
		s.tx, s.insert = nil, nil
	}

	return s.DB.Close()
}

// Abort discards pending writes, leaving whatever the database held before
// CreateSummaryDB, and closes it.
func (s *SummaryDB) Abort() error {
	if s.tx != nil {
		s.insert.Close()
		if err := s.tx.Rollback(); err != nil {
			s.DB.Close()
			return pfx.Err(err)
		}
		s.tx, s.insert = nil, nil
	}

	return s.DB.Close()
}

// URI filenames have to begin with 'file:'; see
// https://www.sqlite.org/c3ref/open.html
func sqliteURI(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	return path
}
