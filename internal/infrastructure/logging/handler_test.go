package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger/sms-expense-backend/internal/infrastructure/config"
)

func TestHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("transaction ingested", "rule", "generic-debit", "amount", "100.00")

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "transaction ingested")
	assert.Contains(t, line, "rule=generic-debit")
	assert.Contains(t, line, "amount=100.00")
	assert.NotContains(t, line, "\033[", "no colors for non-terminal writers")
}

func TestHandler_SystemBracket(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("system", "ingest")

	logger.Info("scan complete")

	line := buf.String()
	assert.Contains(t, line, "[ingest]")
	assert.NotContains(t, line, "system=", "system attr lifted into prefix")
}

func TestHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	logger := slog.New(h)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Error("shown")

	line := buf.String()
	assert.NotContains(t, line, "hidden")
	assert.Contains(t, line, "[ERROR]")
	assert.Contains(t, line, "shown")
}

func TestNewLogger_LevelFromConfig(t *testing.T) {
	logger := NewLogger(config.Logging{Level: "debug"})
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger = NewLogger(config.Logging{Level: "error"})
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
}
