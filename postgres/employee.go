// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/sqlutil"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row scanner) (e payroll.Employee, err error) {
	err = row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Role)
	return
}

// employeeFields builds the non-identity column list for an INSERT.
func employeeFields(params *sqlutil.QueryParams, e payroll.Employee) sqlutil.FieldList {
	fields := sqlutil.FieldList{}
	fields.Add(params, employeeFirstName, e.FirstName)
	fields.Add(params, employeeLastName, e.LastName)
	fields.Add(params, employeeRole, e.Role)
	return fields
}

func (r *pgRepository) FindByID(ctx context.Context, id int64) (e payroll.Employee, err error) {
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

func (r *pgRepository) FindAll(ctx context.Context) ([]payroll.Employee, error) {
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

func (r *pgRepository) Save(ctx context.Context, e payroll.Employee) (payroll.Employee, error) {
	if e.ID < 0 {
		return payroll.Employee{}, payroll.ErrBadID
	}
	id := e.ID
	err := r.db.WithTx(ctx, false, func(tx *sql.Tx) (err error) {
		if e.ID == 0 {
			id, err = r.insert(ctx, tx, e)
			return
		}
		return r.upsert(ctx, tx, e)
	})
	if isSequenceExhausted(err) {
		err = payroll.ErrNoMoreIDs
	}
	if err != nil {
		return payroll.Employee{}, err
	}
	e.ID = id
	return e, nil
}

// insert adds a new row, letting the serial column pick its ID.
func (r *pgRepository) insert(ctx context.Context, tx *sql.Tx, e payroll.Employee) (id int64, err error) {
	params := r.db.Params()
	fields := employeeFields(params, e)
	query := fields.InsertStatement(employeeTable) + " RETURNING " + employeeID
	err = tx.QueryRowContext(ctx, query, params.Values...).Scan(&id)
	return
}

// upsert writes a row under an explicit ID, then moves the serial
// sequence past it so later inserts do not collide.  The sequence
// never moves backwards.
func (r *pgRepository) upsert(ctx context.Context, tx *sql.Tx, e payroll.Employee) error {
	params := r.db.Params()
	fields := employeeFields(params, e)
	changes := fields.ExcludedChanges()
	fields.Add(params, employeeID, e.ID)
	query := fields.InsertStatement(employeeTable) +
		" ON CONFLICT (" + employeeID + ") DO UPDATE SET " + strings.Join(changes, ", ")
	_, err := tx.ExecContext(ctx, query, params.Values...)
	if err != nil {
		return err
	}
	seqParams := r.db.Params()
	seq := "pg_get_serial_sequence('" + employeeTable + "', '" + employeeID + "')"
	// nextval() would fail once the sequence is at its maximum
	query = "SELECT setval(" + seq + ", GREATEST(COALESCE(pg_sequence_last_value(" + seq + "::regclass), 0), " + seqParams.Param(e.ID) + "))"
	_, err = tx.ExecContext(ctx, query, seqParams.Values...)
	return err
}

func (r *pgRepository) DeleteByID(ctx context.Context, id int64) error {
	params := r.db.Params()
	query := "DELETE FROM " + employeeTable + " WHERE " + employeeID + "=" + params.Param(id)
	return r.db.ExecInTx(ctx, query, params)
}
