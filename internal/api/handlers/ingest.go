package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smsledger/sms-expense-backend/internal/api/dto"
	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
	"github.com/smsledger/sms-expense-backend/internal/application/scan"
)

// Ingester is the slice of the pipeline the handlers need.
type Ingester interface {
	Ingest(ctx context.Context, body, sender string, opts ingest.Options) ingest.Outcome
}

// IngestHandler exposes the pipeline over HTTP.
type IngestHandler struct {
	pipeline Ingester
	scanner  *scan.Scanner
}

// NewIngestHandler creates an ingest handler.
func NewIngestHandler(pipeline Ingester, scanner *scan.Scanner) *IngestHandler {
	return &IngestHandler{pipeline: pipeline, scanner: scanner}
}

// Ingest handles POST /api/ingest: one message through the pipeline.
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req dto.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "body and sender are required")
		return
	}

	var opts ingest.Options
	if req.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "occurred_at must be RFC3339")
			return
		}
		opts.OccurredAt = &occurredAt
	}
	opts.RecurringID = req.RecurringID

	outcome := h.pipeline.Ingest(c.Request.Context(), req.Body, req.Sender, opts)
	c.JSON(ingestStatusCode(outcome), dto.NewIngestResponse(outcome))
}

// Scan handles POST /api/scan: a batch of messages through the pipeline,
// per-message acceptance, partial progress preserved.
func (h *IngestHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "messages are required")
		return
	}

	messages := make([]scan.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		receivedAt, err := time.Parse(time.RFC3339, m.ReceivedAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "received_at must be RFC3339")
			return
		}
		messages = append(messages, scan.Message{
			Body:       m.Body,
			Sender:     m.Sender,
			ReceivedAt: receivedAt,
		})
	}

	report := h.scanner.Run(c.Request.Context(), messages, scan.Options{})
	c.JSON(http.StatusOK, dto.NewScanResponse(report))
}

// ingestStatusCode maps pipeline outcomes to HTTP statuses: the caller can
// branch on the code alone, the JSON body carries the detail.
func ingestStatusCode(outcome ingest.Outcome) int {
	switch outcome.Status {
	case ingest.StatusAccepted:
		return http.StatusCreated
	case ingest.StatusDuplicate:
		return http.StatusConflict
	case ingest.StatusNoMatch:
		return http.StatusUnprocessableEntity
	default:
		if errors.Is(outcome.Err, ingest.ErrNoDefaultAccount) {
			return http.StatusPreconditionFailed
		}
		return http.StatusInternalServerError
	}
}
