package ingest

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

const (
	debitBody  = "Rs 100.00 debited to MERCHANT"
	creditBody = "Rs 200 credited to your account from SENDER"
	testSender = "HDFCBK"
)

func newTestPipeline(t *testing.T) (*Pipeline, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	_, err := repo.CreateAccount("Cash", true)
	require.NoError(t, err)

	p := New(repo, slog.New(slog.DiscardHandler))
	return p, repo
}

func TestIngest_Accepted(t *testing.T) {
	p, repo := newTestPipeline(t)

	fixed := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	p.clock = func() time.Time { return fixed }

	outcome := p.Ingest(context.Background(), debitBody, testSender, Options{})

	require.Equal(t, StatusAccepted, outcome.Status)
	require.True(t, outcome.Accepted())
	require.NotNil(t, outcome.Transaction)

	tx := outcome.Transaction
	assert.Equal(t, "100.00", tx.Amount.StringFixed(2))
	assert.Equal(t, catalog.Debit, tx.Direction)
	assert.Equal(t, "MERCHANT", tx.Counterparty)
	assert.Equal(t, debitBody, tx.RawBody)
	assert.Equal(t, testSender, tx.Sender)
	assert.Equal(t, fixed, tx.OccurredAt)
	assert.Equal(t, storage.DefaultCategory, tx.Category)
	assert.Equal(t, int64(1), tx.AccountID)
	assert.NotEmpty(t, tx.ID)
	assert.NotEmpty(t, tx.Fingerprint)
	assert.Equal(t, "generic-debit", tx.RuleID)

	assert.True(t, repo.InsertCalled)
	assert.Equal(t, 1, repo.InsertCount)
}

func TestIngest_ExplicitDateOverridesClock(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.clock = func() time.Time { return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC) }

	explicit := time.Date(2023, 12, 25, 8, 0, 0, 0, time.UTC)
	outcome := p.Ingest(context.Background(), debitBody, testSender,
		Options{OccurredAt: &explicit})

	require.Equal(t, StatusAccepted, outcome.Status)
	assert.Equal(t, explicit, outcome.Transaction.OccurredAt)
}

func TestIngest_NoMatch_NoSideEffects(t *testing.T) {
	p, repo := newTestPipeline(t)

	for _, body := range []string{"", "Your OTP is 482913"} {
		outcome := p.Ingest(context.Background(), body, testSender, Options{})
		assert.Equal(t, StatusNoMatch, outcome.Status)
		assert.Nil(t, outcome.Transaction)
	}

	assert.False(t, repo.InsertCalled, "no-match must not touch the store")
	assert.False(t, repo.CountByFingerprintCalled)
}

// Redelivery of an identical (body, sender) pair yields Accepted exactly
// once; every subsequent delivery is a duplicate.
func TestIngest_Idempotence(t *testing.T) {
	p, repo := newTestPipeline(t)

	first := p.Ingest(context.Background(), creditBody, "SBIINB", Options{})
	require.Equal(t, StatusAccepted, first.Status)

	second := p.Ingest(context.Background(), creditBody, "SBIINB", Options{})
	assert.Equal(t, StatusDuplicate, second.Status)
	assert.Nil(t, second.Transaction)
	assert.Equal(t, "generic-credit", second.RuleID)

	third := p.Ingest(context.Background(), creditBody, "SBIINB", Options{})
	assert.Equal(t, StatusDuplicate, third.Status)

	assert.Equal(t, 1, repo.InsertCount, "exactly one persisted transaction")
}

// Formatting differences between redeliveries must not defeat dedup.
func TestIngest_DuplicateAcrossWhitespaceVariants(t *testing.T) {
	p, repo := newTestPipeline(t)

	first := p.Ingest(context.Background(),
		"Rs 100.00 debited to MERCHANT", testSender, Options{})
	require.Equal(t, StatusAccepted, first.Status)

	second := p.Ingest(context.Background(),
		"  Rs  100.00  debited to MERCHANT ", testSender, Options{})
	assert.Equal(t, StatusDuplicate, second.Status)
	assert.Equal(t, 1, repo.InsertCount)
}

func TestIngest_SameBodyDifferentSenderIsNotDuplicate(t *testing.T) {
	p, repo := newTestPipeline(t)

	require.Equal(t, StatusAccepted,
		p.Ingest(context.Background(), debitBody, "HDFCBK", Options{}).Status)
	require.Equal(t, StatusAccepted,
		p.Ingest(context.Background(), debitBody, "AXISBK", Options{}).Status)

	assert.Equal(t, 2, repo.InsertCount)
}

func TestIngest_DedupLookupFailureIsAnError(t *testing.T) {
	p, repo := newTestPipeline(t)
	repo.CountByFingerprintErr = errors.New("database is locked")

	outcome := p.Ingest(context.Background(), debitBody, testSender, Options{})

	require.Equal(t, StatusError, outcome.Status)
	assert.ErrorContains(t, outcome.Err, "database is locked")
	assert.False(t, repo.InsertCalled,
		"a failed lookup must not be treated as not-a-duplicate")
}

func TestIngest_NoDefaultAccountIsConfigurationError(t *testing.T) {
	repo := storage.NewMockRepository() // no accounts at all
	p := New(repo, slog.New(slog.DiscardHandler))

	outcome := p.Ingest(context.Background(), debitBody, testSender, Options{})

	require.Equal(t, StatusError, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrNoDefaultAccount)
	assert.False(t, repo.InsertCalled)
}

func TestIngest_InsertRaceLostMapsToDuplicate(t *testing.T) {
	p, repo := newTestPipeline(t)
	repo.InsertErr = storage.ErrDuplicateFingerprint

	outcome := p.Ingest(context.Background(), debitBody, testSender, Options{})
	assert.Equal(t, StatusDuplicate, outcome.Status)
	assert.Nil(t, outcome.Transaction)
}

func TestIngest_InsertFailurePropagates(t *testing.T) {
	p, repo := newTestPipeline(t)
	repo.InsertErr = errors.New("disk full")

	outcome := p.Ingest(context.Background(), debitBody, testSender, Options{})
	require.Equal(t, StatusError, outcome.Status)
	assert.ErrorContains(t, outcome.Err, "disk full")
}

func TestIngest_RecurringAssociation(t *testing.T) {
	p, _ := newTestPipeline(t)

	recurring := int64(7)
	outcome := p.Ingest(context.Background(), debitBody, testSender,
		Options{RecurringID: &recurring})

	require.Equal(t, StatusAccepted, outcome.Status)
	require.NotNil(t, outcome.Transaction.RecurringID)
	assert.Equal(t, int64(7), *outcome.Transaction.RecurringID)
}

func TestIngest_CancelledContext(t *testing.T) {
	p, repo := newTestPipeline(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := p.Ingest(ctx, debitBody, testSender, Options{})
	assert.Equal(t, StatusError, outcome.Status)
	assert.ErrorIs(t, outcome.Err, context.Canceled)
	assert.False(t, repo.InsertCalled)
}

func TestFingerprint(t *testing.T) {
	base := Fingerprint("Rs 100.00 debited to MERCHANT", "HDFCBK")
	require.NotEmpty(t, base)

	// Stable across whitespace-only differences
	assert.Equal(t, base,
		Fingerprint(" Rs  100.00\tdebited to  MERCHANT ", "HDFCBK"))
	assert.Equal(t, base,
		Fingerprint("Rs 100.00 debited to MERCHANT", "  HDFCBK "))

	// Sensitive to content differences
	assert.NotEqual(t, base,
		Fingerprint("Rs 100.01 debited to MERCHANT", "HDFCBK"))
	assert.NotEqual(t, base,
		Fingerprint("Rs 100.00 debited to MERCHANT", "AXISBK"))

	// Unidentifiable messages have no fingerprint
	assert.Empty(t, Fingerprint("", "HDFCBK"))
	assert.Empty(t, Fingerprint("   \n ", "HDFCBK"))
}

func TestOutcomeStatusString(t *testing.T) {
	assert.Equal(t, "accepted", StatusAccepted.String())
	assert.Equal(t, "no_match", StatusNoMatch.String())
	assert.Equal(t, "duplicate", StatusDuplicate.String())
	assert.Equal(t, "error", StatusError.String())
}
