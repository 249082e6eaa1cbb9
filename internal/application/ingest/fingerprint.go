package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/smsledger/sms-expense-backend/internal/domain/normalize"
)

// Fingerprint derives the dedup content hash for a message. It is a pure
// function of (body, sender): stable across redelivery of the same event and
// sensitive to content differences.
//
// The body is whitespace-normalized first so benign formatting differences
// between deliveries produce the same hash. An empty normalized body yields
// an empty fingerprint, which the dedup gate treats as never-a-duplicate.
func Fingerprint(body, sender string) string {
	normalized := normalize.Body(body)
	if normalized == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(normalized + "|" + strings.TrimSpace(sender)))
	return hex.EncodeToString(sum[:])
}
