// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package sqlutil contains generic support code for database/sql
// backends.  The postgres and sqlite packages share it.
//
// There are three main things in here:
//
// (1) A DB wrapper whose WithTx() does work in a transaction that can
//     be retried, plus ScanRows() to loop over the results of a
//     multi-row SELECT
//
// (2) Helpers to build SQL SELECT statements (dealing entirely in
//     strings)
//
// (3) Helpers to manage query parameter lists: QueryParams produces
//     placeholders in the driver's style, and FieldList is an
//     INSERT column/value list
package sqlutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// DB wraps a database/sql connection pool with backend-specific
// transaction behavior.
type DB struct {
	*sql.DB

	// Setup, if non-nil, runs at the start of every transaction,
	// for instance to set its isolation level.
	Setup func(tx *sql.Tx, readOnly bool) error

	// Retryable, if non-nil, reports whether a transaction that
	// failed with err should be run again from the start.
	Retryable func(err error) bool

	// Placeholder formats the nth (1-based) query parameter.  If
	// nil, Question is used.
	Placeholder func(n int) string
}

// WithTx calls some function with a database/sql transaction object.
// If f panics or returns a non-nil error, rolls the transaction back;
// otherwise commits it before returning.  If the failure is one
// db.Retryable accepts, the whole transaction is run again.  Returns
// the error value from f, or some other error related to transaction
// management.
func (db *DB) WithTx(ctx context.Context, readOnly bool, f func(*sql.Tx) error) (err error) {
	var (
		tx   *sql.Tx
		done bool
	)

	// If we have a failure, roll back; and if that rollback fails
	// and we don't yet have an error, set the error
	defer func() {
		if tx != nil && !done {
			err2 := tx.Rollback()
			if err == nil {
				err = err2
			}
		}
	}()

	for {
		done = false
		tx, err = db.BeginTx(ctx, nil)
		if err != nil {
			tx = nil
			return
		}

		if db.Setup != nil {
			err = db.Setup(tx, readOnly)
			if err != nil {
				return
			}
		}

		err = f(tx)
		if err == nil {
			err = tx.Commit()
			done = true
		}

		if err != nil && db.Retryable != nil && db.Retryable(err) && ctx.Err() == nil {
			if !done {
				err = tx.Rollback()
				if err != nil && !errors.Is(err, sql.ErrTxDone) {
					return
				}
			}
			tx = nil
			continue
		}

		break
	}
	return
}

// QueryAndScan establishes a read-only transaction, runs query on it
// with params, and calls f for each row in it.  It is the common case
// of combining WithTx() and ScanRows().
func (db *DB) QueryAndScan(ctx context.Context, query string, params *QueryParams, f func(*sql.Rows) error) error {
	return db.WithTx(ctx, true, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, params.Values...)
		if err != nil {
			return err
		}
		return ScanRows(rows, func() error {
			return f(rows)
		})
	})
}

// ExecInTx establishes a read-write transaction and executes a
// statement, dropping the result.  It is the common case of combining
// WithTx() and a simple tx.Exec().
func (db *DB) ExecInTx(ctx context.Context, query string, params *QueryParams) error {
	return db.WithTx(ctx, false, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, query, params.Values...)
		return err
	})
}

// Params creates an empty parameter list in this database's
// placeholder style.
func (db *DB) Params() *QueryParams {
	placeholder := db.Placeholder
	if placeholder == nil {
		placeholder = Question
	}
	return &QueryParams{Placeholder: placeholder}
}

// ScanRows calls a function for each row in a query result.  The
// callback function should only call the Scan() method on the
// provided Rows object; this function will take care of advancing
// through the list of rows and closing the iterator as required.
func ScanRows(rows *sql.Rows, f func() error) (err error) {
	var done bool
	defer func() {
		if !done {
			err2 := rows.Close()
			if err == nil {
				err = err2
			}
		}
	}()

	for rows.Next() {
		err = f()
		if err != nil {
			return
		}
	}
	done = true
	err = rows.Err()
	return
}

// BuildSelect constructs a simple SQL SELECT statement by string
// concatenation.  All of the conditions are ANDed together.
func BuildSelect(outputs, tables, conditions []string) string {
	query := "SELECT "
	query += strings.Join(outputs, ", ")
	query += " FROM "
	query += strings.Join(tables, ", ")
	if len(conditions) > 0 {
		query += " WHERE "
		query += strings.Join(conditions, " AND ")
	}
	return query
}

// Dollar formats PostgreSQL-style placeholders, $1, $2, ...
func Dollar(n int) string {
	return fmt.Sprintf("$%v", n)
}

// Question formats positional ? placeholders.
func Question(n int) string {
	return "?"
}

// QueryParams wraps a list of query parameters.
type QueryParams struct {
	Placeholder func(n int) string
	Values      []interface{}
}

// Param adds a parameter to the query parameter list, returning the
// placeholder that refers to it.
func (qp *QueryParams) Param(param interface{}) string {
	qp.Values = append(qp.Values, param)
	return qp.Placeholder(len(qp.Values))
}

// FieldPair is a pair of values in a FieldList.
type FieldPair struct {
	Field string
	Value string
}

// FieldList is a list of field and value pairs as appears in SQL
// INSERT statements.
type FieldList struct {
	Fields []FieldPair
}

// Add adds a name and dynamic value to the field list.
func (f *FieldList) Add(qp *QueryParams, field string, value interface{}) {
	f.AddDirect(field, qp.Param(value))
}

// AddDirect adds a name and fixed value to the field list.  value is
// an unquoted SQL string.
func (f *FieldList) AddDirect(field, value string) {
	f.Fields = append(f.Fields, FieldPair{Field: field, Value: value})
}

// MapFields converts a field list to a string slice by calling a
// function on every field pair.
func (f FieldList) MapFields(mf func(fp FieldPair) string) []string {
	result := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		result[i] = mf(field)
	}
	return result
}

// FieldNames returns just the field names out as an array.
func (f FieldList) FieldNames() []string {
	return f.MapFields(func(fp FieldPair) string { return fp.Field })
}

// FieldValues returns just the field values out as an array.
func (f FieldList) FieldValues() []string {
	return f.MapFields(func(fp FieldPair) string { return fp.Value })
}

// InsertStatement produces a syntactically complete SQL INSERT statement.
func (f FieldList) InsertStatement(table string) string {
	return "INSERT INTO " + table +
		"(" + strings.Join(f.FieldNames(), ", ") + ")" +
		" VALUES(" + strings.Join(f.FieldValues(), ", ") + ")"
}

// ExcludedChanges converts a field list into "field=EXCLUDED.field"
// statements, suitable for the DO UPDATE part of an
// INSERT ... ON CONFLICT upsert.  Both PostgreSQL and SQLite accept
// this syntax.
func (f FieldList) ExcludedChanges() []string {
	return f.MapFields(func(fp FieldPair) string {
		return fp.Field + "=EXCLUDED." + fp.Field
	})
}
