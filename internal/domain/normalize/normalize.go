// Package normalize provides the numeric and string cleanup shared by the
// extraction cascade and the fingerprint derivation.
//
// Bank messages carry amounts with grouping separators ("1,234.56") and
// counterparties with stray whitespace; everything downstream (rule matching,
// dedup fingerprints, storage) expects the cleaned forms produced here.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount parses a matched amount string into an exact decimal.
// Grouping separators and surrounding whitespace are stripped first.
// Two-decimal currency amounts round-trip without float loss.
func Amount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %q", raw)
	}

	return amount, nil
}

// Counterparty joins the captured counterparty fragments into a single
// trimmed name, with an optional rule-supplied prefix prepended.
func Counterparty(parts []string, prefix string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			cleaned = append(cleaned, part)
		}
	}

	joined := strings.Join(cleaned, " ")
	if prefix != "" && joined != "" {
		joined = prefix + joined
	}
	return joined
}

// Body collapses all runs of whitespace in a message body to single spaces
// and trims the ends. Fingerprints are computed over this form so benign
// formatting differences between redeliveries do not defeat dedup.
func Body(body string) string {
	return strings.Join(strings.Fields(body), " ")
}
