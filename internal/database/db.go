// Package database holds the SQL statements for the board's two collections.
// Queries run against either the shared connection or an open transaction.
package database

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns Queries bound to db
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries executes the board's statements
type Queries struct {
	db DBTX
}

// WithTx returns Queries bound to tx
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}
