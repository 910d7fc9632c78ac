package db

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error classes used to map constraint breaches onto domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return pqCode(err) == codeForeignKeyViolation
}

func IsCheckViolation(err error) bool {
	return pqCode(err) == codeCheckViolation
}

// ConstraintName returns the violated constraint's name when the driver
// reports one, so callers can tell a duplicate tax ID from a duplicate
// (member, session) pair.
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}
