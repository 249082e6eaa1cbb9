package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testTransaction(fingerprint string) *Transaction {
	return &Transaction{
		ID:           uuid.NewString(),
		Amount:       decimal.RequireFromString("100.00"),
		Direction:    catalog.Debit,
		Counterparty: "MERCHANT",
		RawBody:      "Rs 100.00 debited to MERCHANT",
		Sender:       "HDFCBK",
		OccurredAt:   time.Now().UTC().Truncate(time.Second),
		Category:     DefaultCategory,
		AccountID:    1,
		Fingerprint:  fingerprint,
		RuleID:       "generic-debit",
	}
}

func TestStorage_InsertAndGetTransaction(t *testing.T) {
	store := newTestStorage(t)

	tx := testTransaction("fp-abc")
	require.NoError(t, store.InsertTransaction(tx))

	got, err := store.GetTransaction(tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, tx.ID, got.ID)
	assert.True(t, got.Amount.Equal(tx.Amount), "amount %s", got.Amount)
	assert.Equal(t, catalog.Debit, got.Direction)
	assert.Equal(t, "MERCHANT", got.Counterparty)
	assert.Equal(t, "HDFCBK", got.Sender)
	assert.Equal(t, DefaultCategory, got.Category)
	assert.Equal(t, "fp-abc", got.Fingerprint)
	assert.Equal(t, "generic-debit", got.RuleID)
	assert.Nil(t, got.RecurringID)
}

func TestStorage_GetTransaction_Missing(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetTransaction("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStorage_AmountRoundTrip_NoPrecisionLoss(t *testing.T) {
	store := newTestStorage(t)

	tx := testTransaction("fp-precision")
	tx.Amount = decimal.RequireFromString("1234.56")
	require.NoError(t, store.InsertTransaction(tx))

	got, err := store.GetTransaction(tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "1234.56", got.Amount.StringFixed(2))
}

func TestStorage_FingerprintUniqueness(t *testing.T) {
	store := newTestStorage(t)

	first := testTransaction("fp-same")
	second := testTransaction("fp-same")
	require.NoError(t, store.InsertTransaction(first))

	err := store.InsertTransaction(second)
	assert.ErrorIs(t, err, ErrDuplicateFingerprint)

	count, err := store.CountByFingerprint("fp-same")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStorage_EmptyFingerprintsNeverCollide(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.InsertTransaction(testTransaction("")))
	require.NoError(t, store.InsertTransaction(testTransaction("")))

	count, err := store.CountByFingerprint("")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_RecurringAssociation(t *testing.T) {
	store := newTestStorage(t)

	recurring := int64(42)
	tx := testTransaction("fp-recurring")
	tx.RecurringID = &recurring
	require.NoError(t, store.InsertTransaction(tx))

	got, err := store.GetTransaction(tx.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RecurringID)
	assert.Equal(t, int64(42), *got.RecurringID)
}

func TestStorage_ListTransactions_Filters(t *testing.T) {
	store := newTestStorage(t)

	debit := testTransaction("fp-1")
	credit := testTransaction("fp-2")
	credit.Direction = catalog.Credit
	credit.Sender = "SBIINB"
	require.NoError(t, store.InsertTransaction(debit))
	require.NoError(t, store.InsertTransaction(credit))

	all, err := store.ListTransactions(TransactionFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	credits, err := store.ListTransactions(TransactionFilters{Direction: "CREDIT"})
	require.NoError(t, err)
	require.Len(t, credits, 1)
	assert.Equal(t, credit.ID, credits[0].ID)

	bySender, err := store.ListTransactions(TransactionFilters{Sender: "SBIINB"})
	require.NoError(t, err)
	require.Len(t, bySender, 1)
	assert.Equal(t, credit.ID, bySender[0].ID)
}

func TestStorage_SeededDefaults(t *testing.T) {
	store := newTestStorage(t)

	// migration002 seeds the Cash default account
	account, err := store.GetDefaultAccount()
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "Cash", account.Name)
	assert.True(t, account.IsDefault)

	// "Others" always exists
	categories, err := store.ListCategories()
	require.NoError(t, err)
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, DefaultCategory)
}

func TestStorage_SingleDefaultAccountInvariant(t *testing.T) {
	store := newTestStorage(t)

	savings, err := store.CreateAccount("Savings", false)
	require.NoError(t, err)

	require.NoError(t, store.SetDefaultAccount(savings.ID))

	accounts, err := store.ListAccounts()
	require.NoError(t, err)

	defaults := 0
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
			assert.Equal(t, savings.ID, a.ID)
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default account")
}

func TestStorage_SetDefaultAccount_Missing(t *testing.T) {
	store := newTestStorage(t)
	assert.ErrorIs(t, store.SetDefaultAccount(9999), ErrAccountNotFound)
}

func TestStorage_GetStats(t *testing.T) {
	store := newTestStorage(t)

	debit := testTransaction("fp-s1")
	credit := testTransaction("fp-s2")
	credit.Direction = catalog.Credit
	credit.Amount = decimal.RequireFromString("250.50")
	require.NoError(t, store.InsertTransaction(debit))
	require.NoError(t, store.InsertTransaction(credit))

	stats, err := store.GetStats()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCount)
	assert.Equal(t, 1, stats.DebitCount)
	assert.Equal(t, 1, stats.CreditCount)
	assert.Equal(t, "100.00", stats.DebitTotal.StringFixed(2))
	assert.Equal(t, "250.50", stats.CreditTotal.StringFixed(2))
	assert.Equal(t, 2, stats.ByCategory[DefaultCategory])
}

func TestStorage_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := NewStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs the migration loop again; all versions already applied.
	store, err = NewStorage(path)
	require.NoError(t, err)
	defer store.Close()

	account, err := store.GetDefaultAccount()
	require.NoError(t, err)
	require.NotNil(t, account)
}
