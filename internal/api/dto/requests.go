package dto

// IngestRequest is the body of POST /api/ingest.
type IngestRequest struct {
	Body   string `json:"body" binding:"required"`
	Sender string `json:"sender" binding:"required"`

	// OccurredAt optionally overrides the transaction timestamp, RFC3339.
	OccurredAt string `json:"occurred_at,omitempty"`

	// RecurringID optionally associates the transaction with an externally
	// managed recurring payment.
	RecurringID *int64 `json:"recurring_id,omitempty"`
}

// ScanRequest is the body of POST /api/scan: a batch of inbox messages to
// run through the pipeline in order.
type ScanRequest struct {
	Messages []ScanMessage `json:"messages" binding:"required"`
}

// ScanMessage is one message within a ScanRequest.
type ScanMessage struct {
	Body       string `json:"body"`
	Sender     string `json:"sender"`
	ReceivedAt string `json:"received_at"` // RFC3339
}
