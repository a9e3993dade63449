// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the pgx driver and converts them
// into application errors with user-friendly messages (e.g. a foreign key
// violation on lavouras.granja_id becomes "A granja referenciada não existe").
package sqlerr
