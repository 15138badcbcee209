// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres

const (
	// SQL table names:
	employeeTable = "employee"

	// SQL column names:
	employeeID        = "id"
	employeeFirstName = "first_name"
	employeeLastName  = "last_name"
	employeeRole      = "role"

	// serialization_failure, returned when a REPEATABLE READ
	// transaction conflicts with a concurrent one
	serializationFailure = "40001"

	// nextval() past the sequence maximum
	sequenceGeneratorLimitExceeded = "2200H"
)

// employeeColumns are the columns scanned by scanEmployee, in order.
var employeeColumns = []string{
	employeeID,
	employeeFirstName,
	employeeLastName,
	employeeRole,
}
