package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database schema migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// allMigrations defines all migrations in order
var allMigrations = []Migration{
	{
		Version: 1,
		Name:    "initial_schema",
		Up:      migration001InitialSchema,
	},
	{
		Version: 2,
		Name:    "seed_defaults",
		Up:      migration002SeedDefaults,
	},
	{
		Version: 3,
		Name:    "add_recurring_column",
		Up:      migration003AddRecurringColumn,
	},
}

// runMigrations executes all pending migrations
func (s *Storage) runMigrations() error {
	if err := s.ensureMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := s.getAppliedMigrations()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, migration := range allMigrations {
		if applied[migration.Version] {
			continue
		}

		log.Printf("Running migration %d: %s", migration.Version, migration.Name)

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)",
			migration.Version, migration.Name,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func (s *Storage) ensureMigrationsTable() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func (s *Storage) getAppliedMigrations() (map[int]bool, error) {
	rows, err := s.db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func migration001InitialSchema(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE accounts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			is_default INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL CHECK (type IN ('EXPENSE', 'INCOME'))
		)`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			amount TEXT NOT NULL,
			direction TEXT NOT NULL CHECK (direction IN ('DEBIT', 'CREDIT')),
			counterparty TEXT NOT NULL,
			raw_body TEXT NOT NULL,
			sender TEXT NOT NULL,
			occurred_at DATETIME NOT NULL,
			category TEXT NOT NULL DEFAULT 'Others',
			account_id INTEGER NOT NULL REFERENCES accounts(id),
			fingerprint TEXT NOT NULL DEFAULT '',
			rule_id TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		// Partial unique index: dedup is per non-empty fingerprint only.
		// Unfingerprinted rows must never collide with each other.
		`CREATE UNIQUE INDEX idx_transactions_fingerprint
			ON transactions(fingerprint) WHERE fingerprint != ''`,
		`CREATE INDEX idx_transactions_occurred_at ON transactions(occurred_at)`,
		`CREATE INDEX idx_transactions_sender ON transactions(sender)`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func migration002SeedDefaults(tx *sql.Tx) error {
	// "Others" must always exist; it is the default category for every
	// extracted transaction.
	categories := []struct {
		name string
		typ  string
	}{
		{"Others", "EXPENSE"},
		{"Food", "EXPENSE"},
		{"Shopping", "EXPENSE"},
		{"Transport", "EXPENSE"},
		{"Bills", "EXPENSE"},
		{"Salary", "INCOME"},
		{"Refund", "INCOME"},
	}

	for _, c := range categories {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO categories (name, type) VALUES (?, ?)",
			c.name, c.typ,
		); err != nil {
			return err
		}
	}

	_, err := tx.Exec(
		"INSERT OR IGNORE INTO accounts (name, is_default) VALUES ('Cash', 1)")
	return err
}

func migration003AddRecurringColumn(tx *sql.Tx) error {
	// Recurring payments are an external CRUD entity; the engine only stores
	// the association it is told about, so this is a bare nullable column.
	_, err := tx.Exec("ALTER TABLE transactions ADD COLUMN recurring_id INTEGER")
	return err
}
