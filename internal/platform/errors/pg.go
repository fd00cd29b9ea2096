package errors

// Postgres helpers: SQLSTATE predicates and mapping pgx errors to ErrorCode

import (
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we classify
const (
	pgErrUniqueViolation           = "23505"
	pgErrNotNullViolation          = "23502"
	pgErrCheckViolation            = "23514"
	pgErrStringDataRightTruncation = "22001"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidJSONText           = "22P05"
	pgErrInvalidDatetimeFormat     = "22007"
	pgErrReadOnlySQLTransaction    = "25006"
	pgErrCannotConnectNow          = "57P03" // startup in progress
	pgErrTooManyConnections        = "53300"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsDuplicateKey reports whether the error is a unique constraint violation
func IsDuplicateKey(err error) bool { return IsSQLState(err, pgErrUniqueViolation) }

// IsConnectionUnavailable reports whether the server refused new sessions
func IsConnectionUnavailable(err error) bool {
	return IsSQLState(err, pgErrCannotConnectNow) || IsSQLState(err, pgErrTooManyConnections)
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; callers fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		return ErrorCodeDuplicateKey, true

	case pgErrNotNullViolation, pgErrCheckViolation:
		return ErrorCodeValidation, true

	case pgErrStringDataRightTruncation, pgErrInvalidTextRepresentation,
		pgErrInvalidJSONText, pgErrInvalidDatetimeFormat:
		return ErrorCodeInvalidArgument, true

	case pgErrReadOnlySQLTransaction, pgErrCannotConnectNow, pgErrTooManyConnections:
		return ErrorCodeUnavailable, true
	}

	return ErrorCodeDB, true
}

// Describe renders a pg error with its SQLSTATE and constraint for log lines and
// internal error messages; foreign errors render as err.Error()
func Describe(err error) string {
	if err == nil {
		return ""
	}
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err.Error()
	}
	var b strings.Builder
	b.WriteString(pgErr.Message)
	b.WriteString(" (SQLSTATE ")
	b.WriteString(pgErr.Code)
	b.WriteString(")")
	if c := strings.TrimSpace(pgErr.ConstraintName); c != "" {
		b.WriteString(" constraint=")
		b.WriteString(c)
	}
	if d := strings.TrimSpace(pgErr.Detail); d != "" {
		b.WriteString(": ")
		b.WriteString(d)
	}
	return b.String()
}
