package storage

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
)

// DefaultCategory is assigned to every extracted transaction. The category
// row always exists (seeded by migration) and is never deleted.
const DefaultCategory = "Others"

// Category types.
const (
	CategoryExpense = "EXPENSE"
	CategoryIncome  = "INCOME"
)

// Transaction is a persisted financial transaction extracted from a message.
// Once inserted it is immutable history.
type Transaction struct {
	ID           string
	Amount       decimal.Decimal
	Direction    catalog.Direction
	Counterparty string
	RawBody      string
	Sender       string
	OccurredAt   time.Time
	Category     string
	AccountID    int64
	RecurringID  *int64
	Fingerprint  string
	RuleID       string
	CreatedAt    time.Time
}

// Account is a spending account transactions are linked to.
// At most one account is the default at any time.
type Account struct {
	ID        int64
	Name      string
	IsDefault bool
	CreatedAt time.Time
}

// CategoryRecord is a named transaction category.
type CategoryRecord struct {
	ID   int64
	Name string
	Type string
}

// TransactionFilters narrows ListTransactions results.
type TransactionFilters struct {
	Sender    string // empty = all
	Direction string // "DEBIT", "CREDIT", or empty for all
	Limit     int    // 0 = default 50
	Offset    int
}

// Stats aggregates persisted transactions.
type Stats struct {
	TotalCount  int
	DebitCount  int
	CreditCount int
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	ByCategory  map[string]int
}
