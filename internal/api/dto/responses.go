package dto

import (
	"time"

	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
	"github.com/smsledger/sms-expense-backend/internal/application/scan"
	"github.com/smsledger/sms-expense-backend/internal/infrastructure/storage"
)

// APIError is the uniform error payload.
type APIError struct {
	Error string `json:"error"`
}

// TransactionResponse is the JSON shape of a persisted transaction.
type TransactionResponse struct {
	ID           string `json:"id"`
	Amount       string `json:"amount"`
	Direction    string `json:"direction"`
	Counterparty string `json:"counterparty"`
	Sender       string `json:"sender"`
	OccurredAt   string `json:"occurred_at"`
	Category     string `json:"category"`
	AccountID    int64  `json:"account_id"`
	RecurringID  *int64 `json:"recurring_id,omitempty"`
	RuleID       string `json:"rule_id,omitempty"`
}

// NewTransactionResponse maps a stored transaction to its JSON shape.
func NewTransactionResponse(tx *storage.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           tx.ID,
		Amount:       tx.Amount.String(),
		Direction:    string(tx.Direction),
		Counterparty: tx.Counterparty,
		Sender:       tx.Sender,
		OccurredAt:   tx.OccurredAt.Format(time.RFC3339),
		Category:     tx.Category,
		AccountID:    tx.AccountID,
		RecurringID:  tx.RecurringID,
		RuleID:       tx.RuleID,
	}
}

// IngestResponse reports the outcome of one ingest call.
type IngestResponse struct {
	Status      string               `json:"status"`
	RuleID      string               `json:"rule_id,omitempty"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// NewIngestResponse maps a pipeline outcome to its JSON shape.
func NewIngestResponse(outcome ingest.Outcome) IngestResponse {
	resp := IngestResponse{
		Status: outcome.Status.String(),
		RuleID: outcome.RuleID,
	}
	if outcome.Transaction != nil {
		tx := NewTransactionResponse(outcome.Transaction)
		resp.Transaction = &tx
	}
	if outcome.Err != nil {
		resp.Error = outcome.Err.Error()
	}
	return resp
}

// ScanResponse reports a batch scan.
type ScanResponse struct {
	Scanned    int      `json:"scanned"`
	Created    int      `json:"created"`
	Duplicates int      `json:"duplicates"`
	NoMatch    int      `json:"no_match"`
	Errored    int      `json:"errored"`
	Errors     []string `json:"errors,omitempty"`
}

// NewScanResponse maps a scan report to its JSON shape.
func NewScanResponse(report scan.Report) ScanResponse {
	return ScanResponse{
		Scanned:    report.Scanned,
		Created:    report.Created,
		Duplicates: report.Duplicates,
		NoMatch:    report.NoMatch,
		Errored:    report.Errored,
		Errors:     report.Errors,
	}
}

// AccountResponse is the JSON shape of an account.
type AccountResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// CategoryResponse is the JSON shape of a category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// StatsResponse aggregates persisted transactions.
type StatsResponse struct {
	TotalCount  int            `json:"total_count"`
	DebitCount  int            `json:"debit_count"`
	CreditCount int            `json:"credit_count"`
	DebitTotal  string         `json:"debit_total"`
	CreditTotal string         `json:"credit_total"`
	ByCategory  map[string]int `json:"by_category"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewHealthResponse returns the OK health payload.
func NewHealthResponse() HealthResponse {
	return HealthResponse{Status: "ok"}
}
