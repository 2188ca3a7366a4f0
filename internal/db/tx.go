package db

import "database/sql"

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside an explicit transaction; the caller controls the
// transaction boundary and isolation level.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
