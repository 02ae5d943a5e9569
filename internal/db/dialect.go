package db

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect captures what differs between the supported database drivers.
type Dialect struct {
	Driver      string
	Placeholder squirrel.PlaceholderFormat
	migrations  string
}

var (
	SQLite   = Dialect{Driver: "sqlite3", Placeholder: squirrel.Question, migrations: "migrations/sqlite"}
	Postgres = Dialect{Driver: "pgx", Placeholder: squirrel.Dollar, migrations: "migrations/postgres"}
)

// DialectFor returns the dialect registered for a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite3", "sqlite":
		return SQLite, nil
	case "pgx", "postgres", "postgresql":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Builder returns a squirrel statement builder using the dialect's placeholders.
func (d Dialect) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// Rebind rewrites ?-style placeholders for the dialect.
func (d Dialect) Rebind(query string) string {
	out, err := d.Placeholder.ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return out
}

func (d Dialect) dsn(raw string) string {
	if d.Driver != SQLite.Driver || strings.Contains(raw, "?") {
		return raw
	}
	return raw + "?_busy_timeout=5000&_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL"
}
