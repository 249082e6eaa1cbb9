// Package ingest orchestrates the message-to-transaction pipeline: extract,
// fingerprint, dedup, account resolution, persist.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
	"github.com/smsledger/sms-expense-backend/internal/domain/extractor"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// ErrNoDefaultAccount means the store has no account flagged as default.
// This is a configuration error that must reach a human, not be swallowed.
var ErrNoDefaultAccount = errors.New("no default account configured")

// Options carry the per-call knobs external callers control.
type Options struct {
	// OccurredAt overrides the transaction timestamp (e.g. the message's
	// original delivery time during a batch scan). Nil means "now".
	OccurredAt *time.Time

	// RecurringID associates the transaction with an externally managed
	// recurring payment. The pipeline only records the association.
	RecurringID *int64
}

// Pipeline is the sole entry point for turning a raw message into a persisted
// transaction. It is stateless apart from the read-only catalog and may be
// called concurrently; the store's fingerprint uniqueness makes concurrent
// ingests of the same message safe.
type Pipeline struct {
	extractor *extractor.Extractor
	repo      storage.Repository
	logger    *slog.Logger
	clock     func() time.Time
}

// New creates a Pipeline over the default rule catalog.
func New(repo storage.Repository, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		extractor: extractor.New(catalog.Default()),
		repo:      repo,
		logger:    logger,
		clock:     time.Now,
	}
}

// Ingest runs the full pipeline for one message. Every step is synchronous
// and ordered; the outcome is always returned to the caller, who owns retry
// decisions.
func (p *Pipeline) Ingest(ctx context.Context, body, sender string, opts Options) Outcome {
	if err := ctx.Err(); err != nil {
		return Outcome{Status: StatusError, Err: err}
	}

	ext, ok := p.extractor.Extract(body, sender)
	if !ok {
		p.logger.Debug("no pattern matched", "sender", sender)
		return Outcome{Status: StatusNoMatch}
	}

	occurredAt := p.clock()
	if opts.OccurredAt != nil {
		occurredAt = *opts.OccurredAt
	}

	fingerprint := Fingerprint(body, sender)

	duplicate, err := p.isDuplicate(fingerprint)
	if err != nil {
		// A lookup failure is not "not a duplicate"; guessing would permit
		// double counting on transient store failures.
		return Outcome{Status: StatusError, RuleID: ext.RuleID,
			Err: fmt.Errorf("duplicate check: %w", err)}
	}
	if duplicate {
		p.logger.Debug("duplicate message discarded",
			"sender", sender, "rule", ext.RuleID)
		return Outcome{Status: StatusDuplicate, RuleID: ext.RuleID}
	}

	account, err := p.resolveAccount()
	if err != nil {
		return Outcome{Status: StatusError, RuleID: ext.RuleID, Err: err}
	}

	tx := &storage.Transaction{
		ID:           uuid.NewString(),
		Amount:       ext.Amount,
		Direction:    ext.Direction,
		Counterparty: ext.Counterparty,
		RawBody:      body,
		Sender:       sender,
		OccurredAt:   occurredAt,
		Category:     storage.DefaultCategory,
		AccountID:    account.ID,
		RecurringID:  opts.RecurringID,
		Fingerprint:  fingerprint,
		RuleID:       ext.RuleID,
	}

	if err := p.repo.InsertTransaction(tx); err != nil {
		if errors.Is(err, storage.ErrDuplicateFingerprint) {
			// Lost an insert race with a concurrent ingest of the same
			// message; same outcome as the gate catching it.
			return Outcome{Status: StatusDuplicate, RuleID: ext.RuleID}
		}
		return Outcome{Status: StatusError, RuleID: ext.RuleID,
			Err: fmt.Errorf("insert transaction: %w", err)}
	}

	p.logger.Info("transaction ingested",
		"rule", ext.RuleID,
		"direction", string(ext.Direction),
		"amount", ext.Amount.String(),
		"counterparty", ext.Counterparty,
	)

	return Outcome{Status: StatusAccepted, Transaction: tx, RuleID: ext.RuleID}
}

// isDuplicate consults the store for prior occurrences of the fingerprint.
// An empty fingerprint identifies nothing and is never a duplicate.
func (p *Pipeline) isDuplicate(fingerprint string) (bool, error) {
	if fingerprint == "" {
		return false, nil
	}
	count, err := p.repo.CountByFingerprint(fingerprint)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// resolveAccount supplies the default account for transactions that carry no
// explicit one.
func (p *Pipeline) resolveAccount() (*storage.Account, error) {
	account, err := p.repo.GetDefaultAccount()
	if err != nil {
		return nil, fmt.Errorf("resolve default account: %w", err)
	}
	if account == nil {
		return nil, ErrNoDefaultAccount
	}
	return account, nil
}
