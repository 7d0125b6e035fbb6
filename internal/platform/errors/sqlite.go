package errors

// SQLite-specific helpers for mapping modernc.org/sqlite errors to project ErrorCode

import (
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// primary result codes live in the low byte; extended codes add detail above it
const sqlitePrimaryMask = 0xff

// ExtractSQLiteError returns (*sqlite.Error, true) if the chain holds a SQLite error
func ExtractSQLiteError(err error) (*sqlite.Error, bool) {
	var le *sqlite.Error
	if stderrs.As(err, &le) {
		return le, true
	}
	return nil, false
}

// sqlitePrimary returns the primary result code, or -1 when err is not a SQLite error
func sqlitePrimary(err error) int {
	le, ok := ExtractSQLiteError(err)
	if !ok {
		return -1
	}
	return le.Code() & sqlitePrimaryMask
}

// IsSQLiteBusy reports a locked or busy database file
func IsSQLiteBusy(err error) bool {
	p := sqlitePrimary(err)
	return p == sqlite3.SQLITE_BUSY || p == sqlite3.SQLITE_LOCKED
}

// SQLiteErrorCode maps a SQLite error to an ErrorCode with an ok flag
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	le, ok := ExtractSQLiteError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}

	switch le.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	}

	switch le.Code() & sqlitePrimaryMask {
	case sqlite3.SQLITE_CONSTRAINT:
		return ErrorCodeValidation, true
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrorCodeUnavailable, true
	case sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR, sqlite3.SQLITE_FULL, sqlite3.SQLITE_READONLY, sqlite3.SQLITE_PERM:
		return ErrorCodeIO, true
	}
	return ErrorCodeDB, true
}
