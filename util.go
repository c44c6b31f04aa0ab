package locusstats

import "errors"

var errReadOnlySummaryDB = errors.New("summary database was opened read-only")

// WhichSQLiteDriver names the database/sql driver backing SummaryDB: "sqlite3"
// when built with cgo, "sqlite" otherwise.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
