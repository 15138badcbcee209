// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package sqlite provides a payroll Repository stored in an SQLite
// database file, using the pure-Go modernc.org/sqlite driver.  The
// schema is created on open by running the package's migrations.
//
// The special filename ":memory:" is accepted, but since every pooled
// connection would see its own private database, the pool is limited
// to a single connection in that case.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/sqlutil"
	migrate "github.com/rubenv/sql-migrate"
	"modernc.org/sqlite"
)

const (
	employeeTable     = "employee"
	employeeID        = "id"
	employeeFirstName = "first_name"
	employeeLastName  = "last_name"
	employeeRole      = "role"

	// SQLITE_BUSY and SQLITE_LOCKED primary result codes
	sqliteBusy   = 5
	sqliteLocked = 6
	sqliteFull   = 13
)

var employeeColumns = []string{
	employeeID,
	employeeFirstName,
	employeeLastName,
	employeeRole,
}

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-employee",
			Up: []string{
				// AUTOINCREMENT keeps the high-water mark in
				// sqlite_sequence, including explicit IDs, so
				// deleted and client-chosen IDs are never reissued
				`CREATE TABLE employee(
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					role TEXT NOT NULL
				)`,
			},
			Down: []string{
				`DROP TABLE employee`,
			},
		},
	},
}

type sqliteRepository struct {
	db *sqlutil.DB
}

// New opens (creating if needed) the SQLite database at path and
// returns a Repository on it.
func New(path string) (payroll.Repository, error) {
	// Every pooled connection needs the busy timeout, so it goes
	// in the DSN rather than a one-off PRAGMA
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", path+sep+"_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if path == ":memory:" || path == "" {
		db.SetMaxOpenConns(1)
	}
	err = Upgrade(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteRepository{
		db: &sqlutil.DB{
			DB:          db,
			Retryable:   isBusy,
			Placeholder: sqlutil.Question,
		},
	}, nil
}

// Upgrade upgrades a database to the latest database schema version.
func Upgrade(db *sql.DB) error {
	_, err := migrate.Exec(db, "sqlite3", migrationSource, migrate.Up)
	return err
}

// Drop clears a database by running all of the migrations in reverse.
func Drop(db *sql.DB) error {
	_, err := migrate.Exec(db, "sqlite3", migrationSource, migrate.Down)
	return err
}

func isBusy(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}
	return false
}

func isFull(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		return serr.Code()&0xff == sqliteFull
	}
	return false
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row scanner) (e payroll.Employee, err error) {
	err = row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role)
	return
}

func (r *sqliteRepository) FindByID(ctx context.Context, id int64) (e payroll.Employee, err error) {
	params := r.db.Params()
	query := sqlutil.BuildSelect(employeeColumns, []string{employeeTable}, []string{
		employeeID + "=" + params.Param(id),
	})
	err = r.db.WithTx(ctx, true, func(tx *sql.Tx) error {
		var err error
		e, err = scanEmployee(tx.QueryRowContext(ctx, query, params.Values...))
		return err
	})
	if err == sql.ErrNoRows {
		err = payroll.ErrNoSuchEmployee{ID: id}
	}
	return
}

func (r *sqliteRepository) FindAll(ctx context.Context) ([]payroll.Employee, error) {
	all := []payroll.Employee{}
	query := sqlutil.BuildSelect(employeeColumns, []string{employeeTable}, nil) +
		" ORDER BY " + employeeID
	err := r.db.QueryAndScan(ctx, query, r.db.Params(), func(rows *sql.Rows) error {
		e, err := scanEmployee(rows)
		if err == nil {
			all = append(all, e)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

func (r *sqliteRepository) Save(ctx context.Context, e payroll.Employee) (payroll.Employee, error) {
	if e.ID < 0 {
		return payroll.Employee{}, payroll.ErrBadID
	}
	params := r.db.Params()
	fields := sqlutil.FieldList{}
	fields.Add(params, employeeFirstName, e.FirstName)
	fields.Add(params, employeeLastName, e.LastName)
	fields.Add(params, employeeRole, e.Role)
	query := fields.InsertStatement(employeeTable)
	if e.ID != 0 {
		changes := fields.ExcludedChanges()
		fields.Add(params, employeeID, e.ID)
		query = fields.InsertStatement(employeeTable) +
			" ON CONFLICT(" + employeeID + ") DO UPDATE SET " + strings.Join(changes, ", ")
	}
	id := e.ID
	err := r.db.WithTx(ctx, false, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, params.Values...)
		if err != nil || e.ID != 0 {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if e.ID == 0 && isFull(err) {
		// AUTOINCREMENT has used the largest possible rowid
		err = payroll.ErrNoMoreIDs
	}
	if err != nil {
		return payroll.Employee{}, err
	}
	e.ID = id
	return e, nil
}

func (r *sqliteRepository) DeleteByID(ctx context.Context, id int64) error {
	params := r.db.Params()
	query := "DELETE FROM " + employeeTable + " WHERE " + employeeID + "=" + params.Param(id)
	return r.db.ExecInTx(ctx, query, params)
}
