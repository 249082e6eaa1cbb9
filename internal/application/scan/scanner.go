package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/smsledger/sms-expense-backend/internal/application/ingest"
)

// Ingester is the slice of the pipeline the scanner needs.
type Ingester interface {
	Ingest(ctx context.Context, body, sender string, opts ingest.Options) ingest.Outcome
}

// Options narrow which inbox messages a scan considers.
type Options struct {
	// Senders restricts the scan to these sender IDs. Empty means all.
	Senders []string

	// After skips messages received before this instant. Zero means all.
	After time.Time
}

// Report summarizes one scan. Acceptance is per-message: counts accumulated
// before a failure are never rolled back.
type Report struct {
	Scanned    int
	Created    int
	Duplicates int
	NoMatch    int
	Errored    int

	// Errors holds one formatted entry per errored message.
	Errors []string
}

// Scanner runs a batch of inbox messages through the pipeline.
type Scanner struct {
	pipeline Ingester
	logger   *slog.Logger
}

// NewScanner creates a Scanner.
func NewScanner(pipeline Ingester, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{pipeline: pipeline, logger: logger}
}

// Run ingests each message in order, one call at a time, with the message's
// original delivery time as the transaction timestamp. A cancelled context
// stops the scan between messages; everything accepted so far stays persisted.
func (s *Scanner) Run(ctx context.Context, messages []Message, opts Options) Report {
	var report Report

	allowed := make(map[string]bool, len(opts.Senders))
	for _, sender := range opts.Senders {
		allowed[sender] = true
	}

	for _, msg := range messages {
		if ctx.Err() != nil {
			s.logger.Warn("scan aborted", "scanned", report.Scanned)
			break
		}

		if len(allowed) > 0 && !allowed[msg.Sender] {
			continue
		}
		if !opts.After.IsZero() && msg.ReceivedAt.Before(opts.After) {
			continue
		}

		report.Scanned++

		receivedAt := msg.ReceivedAt
		outcome := s.pipeline.Ingest(ctx, msg.Body, msg.Sender,
			ingest.Options{OccurredAt: &receivedAt})

		switch outcome.Status {
		case ingest.StatusAccepted:
			report.Created++
		case ingest.StatusDuplicate:
			report.Duplicates++
		case ingest.StatusNoMatch:
			report.NoMatch++
		case ingest.StatusError:
			report.Errored++
			report.Errors = append(report.Errors,
				fmt.Sprintf("%s: %v", msg.Sender, outcome.Err))
			s.logger.Error("message ingest failed",
				"sender", msg.Sender, "error", outcome.Err)
		}
	}

	s.logger.Info("scan complete",
		"scanned", report.Scanned,
		"created", report.Created,
		"duplicates", report.Duplicates,
		"no_match", report.NoMatch,
		"errored", report.Errored,
	)

	return report
}
