package database

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// Thin helpers for running parameterized SQL against a *gorm.DB handle,
// which may be the base connection or an open transaction. Parameters are
// name/value pairs created with Param; a nil value binds as SQL NULL.
// Errors are returned as-is: callers run these inside db.Transaction, which
// rolls back on any error.

// Param names a statement parameter for use as @name in the query text.
func Param(name string, value any) sql.NamedArg {
	return sql.Named(name, value)
}

// NonQuery executes a statement and returns the number of affected rows.
func NonQuery(db *gorm.DB, query string, params ...any) (int64, error) {
	res := db.Exec(query, params...)
	return res.RowsAffected, res.Error
}

// Scalar executes a single-value query. The second return is false when the
// query matched no row or the value was NULL.
func Scalar[T any](db *gorm.DB, query string, params ...any) (T, bool, error) {
	var zero T
	var v sql.Null[T]
	row := db.Raw(query, params...).Row()
	if err := row.Err(); err != nil {
		return zero, false, err
	}
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, false, nil
		}
		return zero, false, err
	}
	if !v.Valid {
		return zero, false, nil
	}
	return v.V, true, nil
}

// Rows executes a multi-row query and returns a forward-only result set.
// The caller owns closing it.
func Rows(db *gorm.DB, query string, params ...any) (*sql.Rows, error) {
	return db.Raw(query, params...).Rows()
}
