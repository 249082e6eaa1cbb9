// Package extractor applies the rule cascade to a single message body.
package extractor

import (
	"github.com/shopspring/decimal"

	"github.com/smsledger/sms-expense-backend/internal/domain/catalog"
	"github.com/smsledger/sms-expense-backend/internal/domain/normalize"
)

// Extraction is the structured result of a successful match.
type Extraction struct {
	Amount       decimal.Decimal
	Direction    catalog.Direction
	Counterparty string
	RuleID       string
}

// Extractor runs the rule cascade. It holds only the read-only catalog and is
// safe for concurrent use.
type Extractor struct {
	rules []catalog.Rule
}

// New creates an Extractor over the given rule cascade.
func New(rules []catalog.Rule) *Extractor {
	return &Extractor{rules: rules}
}

// Extract tries each rule in catalog order against body and returns the
// result of the first match. The second return is false when no rule matched.
//
// An amount that fails to parse after separator stripping is treated as a
// non-match for that rule and the cascade continues; the pattern's own digit
// syntax should make this impossible, but a rule defect must not take down
// the whole cascade. Extract never touches storage.
func (e *Extractor) Extract(body, sender string) (*Extraction, bool) {
	if body == "" {
		return nil, false
	}

	for _, rule := range e.rules {
		match := rule.Pattern.FindStringSubmatch(body)
		if match == nil {
			continue
		}

		amount, err := normalize.Amount(match[rule.AmountGroup])
		if err != nil {
			continue
		}

		parts := make([]string, 0, len(rule.CounterpartyGroups))
		for _, g := range rule.CounterpartyGroups {
			parts = append(parts, match[g])
		}

		return &Extraction{
			Amount:       amount,
			Direction:    rule.Direction,
			Counterparty: normalize.Counterparty(parts, rule.CounterpartyPrefix),
			RuleID:       rule.ID,
		}, true
	}

	return nil, false
}
