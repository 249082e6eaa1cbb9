package storage

import "errors"

// ErrDuplicateFingerprint is returned by InsertTransaction when another
// transaction with the same non-empty fingerprint already exists. The unique
// index makes the duplicate check and the insert effectively atomic per
// fingerprint, so two concurrent ingests of the same message cannot both land.
var ErrDuplicateFingerprint = errors.New("transaction with this fingerprint already exists")

// ErrAccountNotFound is returned when an account ID does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with the
// in-memory mock straightforward.
type Repository interface {
	TransactionRepository
	AccountRepository
	CategoryRepository
	Close() error
}

// TransactionRepository handles transaction persistence and lookups.
type TransactionRepository interface {
	// InsertTransaction persists a transaction. Returns
	// ErrDuplicateFingerprint when the fingerprint is already present.
	InsertTransaction(tx *Transaction) error

	// GetTransaction retrieves a transaction by ID; (nil, nil) when absent.
	GetTransaction(id string) (*Transaction, error)

	// ListTransactions returns transactions matching the filters,
	// newest first.
	ListTransactions(filters TransactionFilters) ([]*Transaction, error)

	// CountByFingerprint reports how many transactions carry the given
	// fingerprint. Empty fingerprints are never counted.
	CountByFingerprint(fingerprint string) (int, error)

	// GetStats returns aggregate statistics.
	GetStats() (*Stats, error)
}

// AccountRepository handles account operations.
type AccountRepository interface {
	// ListAccounts returns all accounts.
	ListAccounts() ([]*Account, error)

	// GetDefaultAccount returns the account flagged as default, or
	// (nil, nil) when none is configured.
	GetDefaultAccount() (*Account, error)

	// CreateAccount creates an account. When isDefault is set, any previous
	// default is cleared in the same transaction.
	CreateAccount(name string, isDefault bool) (*Account, error)

	// SetDefaultAccount makes the given account the single default.
	SetDefaultAccount(id int64) error
}

// CategoryRepository handles category lookups.
type CategoryRepository interface {
	// ListCategories returns all categories.
	ListCategories() ([]*CategoryRecord, error)
}
