package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	pkgerrors "github.com/novamart/orderhub-backend/pkg/errors"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports whether err references a unique constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgCode(err) == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

// Classify maps a raw persistence error onto the error taxonomy: constraint
// violations that can be attributed to bad input surface as validation
// failures, duplicates as conflicts, anything else as a persistence fault.
func Classify(err error, op string) *pkgerrors.Error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op+": duplicate value")
	case pgForeignKeyViolation, pgNotNullViolation, pgCheckViolation:
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, op+": constraint violated")
	}
	if IsUniqueViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, op+": duplicate value")
	}
	return pkgerrors.Wrap(pkgerrors.CodePersistence, err, op+" failed")
}
