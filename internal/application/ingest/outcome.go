package ingest

import "github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"

// Status classifies the result of an Ingest call. Every call maps to exactly
// one status; there is no partial state.
type Status int

const (
	// StatusAccepted means a transaction was extracted and persisted.
	StatusAccepted Status = iota

	// StatusNoMatch means no catalog rule recognized the message.
	// Frequent and expected; not an error.
	StatusNoMatch

	// StatusDuplicate means the message fingerprint was already persisted.
	// Expected under redelivery; the transaction is discarded.
	StatusDuplicate

	// StatusError means a store or configuration failure. The caller decides
	// whether to retry; the pipeline never retries internally.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusNoMatch:
		return "no_match"
	case StatusDuplicate:
		return "duplicate"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result returned to every caller of Ingest.
type Outcome struct {
	Status Status

	// Transaction is set only when Status is StatusAccepted.
	Transaction *storage.Transaction

	// RuleID names the catalog rule that matched, when one did.
	RuleID string

	// Err is set only when Status is StatusError.
	Err error
}

// Accepted reports whether the outcome carries a persisted transaction.
func (o Outcome) Accepted() bool {
	return o.Status == StatusAccepted
}
