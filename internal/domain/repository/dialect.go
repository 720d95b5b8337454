package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"leet_tracker/internal/platform/config"
)

// Dialect captures what differs between the Postgres and SQLite encodings of
// the schema. Queries are written with "?" placeholders and rebound.
type Dialect struct {
	Name string

	numberedParams bool
	likeOp         string
	precision      time.Duration
	encodeTime     func(time.Time) any
	encodeBool     func(bool) any
	uniqueCode     func(error) bool
	foreignKeyCode func(error) bool
}

var Postgres = Dialect{
	Name:           config.DriverPostgres,
	numberedParams: true,
	likeOp:         "ILIKE",
	precision:      time.Microsecond,
	encodeTime:     func(t time.Time) any { return t },
	encodeBool:     func(b bool) any { return strconv.FormatBool(b) },
	uniqueCode:     func(err error) bool { return pgCode(err) == "23505" },
	foreignKeyCode: func(err error) bool { return pgCode(err) == "23503" },
}

var SQLite = Dialect{
	Name:           config.DriverSQLite,
	numberedParams: false,
	likeOp:         "LIKE", // case-insensitive for ASCII
	precision:      time.Second,
	encodeTime:     func(t time.Time) any { return t.Unix() },
	encodeBool: func(b bool) any {
		if b {
			return 1
		}
		return 0
	},
	uniqueCode: func(err error) bool {
		switch sqliteCode(err) {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(err.Error(), "UNIQUE constraint failed")
		}
		return false
	},
	foreignKeyCode: func(err error) bool {
		switch sqliteCode(err) {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
		}
		return false
	},
}

// DialectFor returns the dialect registered for a DB_DRIVER value.
func DialectFor(driver string) (Dialect, bool) {
	switch driver {
	case config.DriverPostgres:
		return Postgres, true
	case config.DriverSQLite:
		return SQLite, true
	}
	return Dialect{}, false
}

func (d Dialect) rebind(query string) string {
	if !d.numberedParams {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d Dialect) now() time.Time {
	return time.Now().UTC().Truncate(d.precision)
}

func (d Dialect) isUniqueViolation(err error) bool {
	return err != nil && d.uniqueCode(err)
}

func (d Dialect) isForeignKeyViolation(err error) bool {
	return err != nil && d.foreignKeyCode(err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func sqliteCode(err error) int {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()
	}
	return 0
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as the
// escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
