package errors

import (
	stdErrors "errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Diagnostics is the storage detail carried behind an error. It is meant for
// logs only and never reaches a caller.
type Diagnostics struct {
	Code       Code
	SQLState   string
	Constraint string
	Table      string
	Column     string
	Detail     string
}

// Diagnose walks the chain of err for a Postgres error raised by either the
// pgx or the lib/pq driver.
func Diagnose(err error) Diagnostics {
	if err == nil {
		return Diagnostics{}
	}
	d := Diagnostics{Code: CodeOf(err)}

	var pgxErr *pgconn.PgError
	if stdErrors.As(err, &pgxErr) {
		d.SQLState = pgxErr.Code
		d.Constraint = pgxErr.ConstraintName
		d.Table = pgxErr.TableName
		d.Column = pgxErr.ColumnName
		d.Detail = pgxErr.Detail
		return d
	}

	var pqErr *pq.Error
	if stdErrors.As(err, &pqErr) {
		d.SQLState = string(pqErr.Code)
		d.Constraint = pqErr.Constraint
		d.Table = pqErr.Table
		d.Column = pqErr.Column
		d.Detail = pqErr.Detail
	}
	return d
}

// Fields renders the populated diagnostics as log fields.
func (d Diagnostics) Fields() map[string]any {
	fields := map[string]any{}
	add := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	add("error_code", string(d.Code))
	add("pg_code", d.SQLState)
	add("pg_constraint", d.Constraint)
	add("pg_table", d.Table)
	add("pg_column", d.Column)
	add("pg_detail", d.Detail)
	return fields
}
