package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
)

// Storage provides SQLite database access for transactions, accounts and
// categories. It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// InsertTransaction persists an extracted transaction. A unique-constraint
// violation on the fingerprint index surfaces as ErrDuplicateFingerprint so
// the caller can treat a lost insert race as an ordinary duplicate.
func (s *Storage) InsertTransaction(tx *Transaction) error {
	query := `
	INSERT INTO transactions
	(id, amount, direction, counterparty, raw_body, sender, occurred_at,
	 category, account_id, recurring_id, fingerprint, rule_id)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		tx.ID,
		tx.Amount.String(),
		string(tx.Direction),
		tx.Counterparty,
		tx.RawBody,
		tx.Sender,
		tx.OccurredAt,
		tx.Category,
		tx.AccountID,
		tx.RecurringID,
		tx.Fingerprint,
		tx.RuleID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrDuplicateFingerprint
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

const transactionColumns = `
	id, amount, direction, counterparty, raw_body, sender, occurred_at,
	category, account_id, recurring_id, fingerprint, rule_id, created_at`

// GetTransaction retrieves a transaction by ID
func (s *Storage) GetTransaction(id string) (*Transaction, error) {
	row := s.db.QueryRow(
		"SELECT"+transactionColumns+" FROM transactions WHERE id = ?", id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return tx, err
}

// ListTransactions returns transactions matching the filters, newest first
func (s *Storage) ListTransactions(filters TransactionFilters) ([]*Transaction, error) {
	query := "SELECT" + transactionColumns + " FROM transactions WHERE 1=1"
	args := []interface{}{}

	if filters.Sender != "" {
		query += " AND sender = ?"
		args = append(args, filters.Sender)
	}
	if filters.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filters.Direction)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " ORDER BY occurred_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, filters.Offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// CountByFingerprint reports prior occurrences of a fingerprint
func (s *Storage) CountByFingerprint(fingerprint string) (int, error) {
	if fingerprint == "" {
		return 0, nil
	}

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM transactions WHERE fingerprint = ?",
		fingerprint,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count by fingerprint: %w", err)
	}
	return count, nil
}

// GetStats returns aggregate transaction statistics
func (s *Storage) GetStats() (*Stats, error) {
	stats := &Stats{
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
		ByCategory:  make(map[string]int),
	}

	rows, err := s.db.Query("SELECT amount, direction, category FROM transactions")
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var amountStr, direction, category string
		if err := rows.Scan(&amountStr, &direction, &category); err != nil {
			return nil, err
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
		}

		stats.TotalCount++
		stats.ByCategory[category]++
		switch direction {
		case "DEBIT":
			stats.DebitCount++
			stats.DebitTotal = stats.DebitTotal.Add(amount)
		case "CREDIT":
			stats.CreditCount++
			stats.CreditTotal = stats.CreditTotal.Add(amount)
		}
	}
	return stats, rows.Err()
}

// ListAccounts returns all accounts
func (s *Storage) ListAccounts() ([]*Account, error) {
	rows, err := s.db.Query(
		"SELECT id, name, is_default, created_at FROM accounts ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*Account
	for rows.Next() {
		a := &Account{}
		if err := rows.Scan(&a.ID, &a.Name, &a.IsDefault, &a.CreatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetDefaultAccount returns the default account, or (nil, nil) when none
func (s *Storage) GetDefaultAccount() (*Account, error) {
	a := &Account{}
	err := s.db.QueryRow(
		"SELECT id, name, is_default, created_at FROM accounts WHERE is_default = 1",
	).Scan(&a.ID, &a.Name, &a.IsDefault, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default account: %w", err)
	}
	return a, nil
}

// CreateAccount creates an account, clearing any previous default when
// isDefault is set
func (s *Storage) CreateAccount(name string, isDefault bool) (*Account, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	if isDefault {
		if _, err := tx.Exec("UPDATE accounts SET is_default = 0"); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to clear default flag: %w", err)
		}
	}

	res, err := tx.Exec(
		"INSERT INTO accounts (name, is_default) VALUES (?, ?)", name, isDefault)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Account{ID: id, Name: name, IsDefault: isDefault}, nil
}

// SetDefaultAccount makes the given account the single default
func (s *Storage) SetDefaultAccount(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec("UPDATE accounts SET is_default = 0"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear default flag: %w", err)
	}

	res, err := tx.Exec("UPDATE accounts SET is_default = 1 WHERE id = ?", id)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to set default account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if affected == 0 {
		_ = tx.Rollback()
		return fmt.Errorf("account %d: %w", id, ErrAccountNotFound)
	}

	return tx.Commit()
}

// ListCategories returns all categories
func (s *Storage) ListCategories() ([]*CategoryRecord, error) {
	rows, err := s.db.Query("SELECT id, name, type FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*CategoryRecord
	for rows.Next() {
		c := &CategoryRecord{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Type); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*Transaction, error) {
	tx := &Transaction{}
	var amountStr, direction string
	var recurringID sql.NullInt64

	err := row.Scan(
		&tx.ID,
		&amountStr,
		&direction,
		&tx.Counterparty,
		&tx.RawBody,
		&tx.Sender,
		&tx.OccurredAt,
		&tx.Category,
		&tx.AccountID,
		&recurringID,
		&tx.Fingerprint,
		&tx.RuleID,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
	}
	tx.Direction = catalog.Direction(direction)
	if recurringID.Valid {
		tx.RecurringID = &recurringID.Int64
	}
	return tx, nil
}
