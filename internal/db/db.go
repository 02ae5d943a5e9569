package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vytor/statsboard/internal/logger"
	"github.com/vytor/statsboard/internal/stattype"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	dialect Dialect
	log     *logger.Logger
}

// Open connects using the named driver, applies pending migrations and
// syncs the stat definition table with the taxonomy.
func Open(driver, dsn string) (*DB, error) {
	log := logger.Default().WithPrefix("db")

	dialect, err := DialectFor(driver)
	if err != nil {
		log.Error("failed to resolve dialect: %v", err)
		return nil, err
	}

	log.Info("opening %s database", dialect.Driver)
	sqlDB, err := sql.Open(dialect.Driver, dialect.dsn(dsn))
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	if dialect.Driver == SQLite.Driver {
		// Single connection: one writer, and :memory: databases live per connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(16)
		sqlDB.SetMaxIdleConns(4)
	}

	db := &DB{DB: sqlDB, dialect: dialect, log: log}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to reach database: %v", err)
		sqlDB.Close()
		return nil, err
	}

	log.Debug("applying migrations")
	if err := db.applyMigrations(ctx); err != nil {
		log.Error("failed to apply migrations: %v", err)
		sqlDB.Close()
		return nil, err
	}
	if err := db.syncStatDefinitions(ctx); err != nil {
		log.Error("failed to sync stat definitions: %v", err)
		sqlDB.Close()
		return nil, err
	}

	log.Info("database ready")
	return db, nil
}

// Dialect returns the dialect the database was opened with.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) applyMigrations(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(128) PRIMARY KEY, applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir(db.dialect.migrations)
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		version := entry.Name()
		applied, err := db.isMigrationApplied(ctx, version)
		if err != nil {
			return err
		}
		if applied {
			db.log.Debug("migration %s already applied, skipping", version)
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile(path.Join(db.dialect.migrations, version))
		if err != nil {
			return err
		}
		db.log.Info("applying migration: %s", version)
		if _, err := db.ExecContext(ctx, string(sqlBytes)); err != nil {
			db.log.Error("migration %s failed: %v", version, err)
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, db.dialect.Rebind(`INSERT INTO schema_migrations (version) VALUES (?)`), version); err != nil {
			return err
		}
		db.log.Info("migration %s applied successfully", version)
	}
	return nil
}

func (db *DB) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var v string
	err := db.QueryRowContext(ctx, db.dialect.Rebind(`SELECT version FROM schema_migrations WHERE version = ?`), version).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (db *DB) syncStatDefinitions(ctx context.Context) error {
	insert := db.dialect.Builder().
		Insert("stat_definitions").
		Columns("id", "display_key", "description")
	for _, kind := range stattype.All() {
		insert = insert.Values(kind.ID(), kind.DisplayKey(), kind.Description())
	}
	query, args, err := insert.
		Suffix("ON CONFLICT (id) DO UPDATE SET display_key = excluded.display_key, description = excluded.description").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	db.log.Debug("synced %d stat definitions", len(stattype.All()))
	return nil
}

// Migrate re-runs provisioning. It is a no-op when everything is applied.
func (db *DB) Migrate(ctx context.Context) error {
	if err := db.applyMigrations(ctx); err != nil {
		return err
	}
	return db.syncStatDefinitions(ctx)
}
