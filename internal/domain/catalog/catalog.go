// Package catalog holds the ordered list of extraction rules for the known
// bank and wallet message dialects.
//
// Rule order is part of the contract: a message is tried against the rules in
// slice order and the first match wins. Provider-specific rules sit ahead of
// the generic fallbacks so a Kotak or HDFC template is never swallowed by the
// looser generic patterns. Reordering rules is a behavioral change and must be
// re-certified against the regression fixtures in the extractor tests.
package catalog

import "regexp"

// Direction is whether a transaction decreases or increases the balance.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// Rule describes one recognizable message template: the compiled pattern,
// which capture groups carry the amount and counterparty, and the direction
// the template implies.
type Rule struct {
	// ID identifies the rule in logs and stored transactions. Stable.
	ID string

	// Pattern is the compiled template. Capture groups are referenced by
	// AmountGroup and CounterpartyGroups.
	Pattern *regexp.Regexp

	// Direction the matched transaction takes.
	Direction Direction

	// AmountGroup is the 1-based capture group holding the amount text.
	AmountGroup int

	// CounterpartyGroups are the 1-based capture groups joined (in order,
	// space-separated) to form the counterparty name.
	CounterpartyGroups []int

	// CounterpartyPrefix, when set, is prepended to the joined counterparty.
	CounterpartyPrefix string
}

// rules is the fixed cascade. Append-only; insert new provider templates
// above the generic-* block, never below it.
var rules = []Rule{
	{
		ID:                 "kotak-upi-debit",
		Pattern:            regexp.MustCompile(`(?i)Sent\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+from\s+Kotak\s+Bank\s+AC\s+\w+\s+to\s+([\w.@-]+)\s+on`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "kotak-upi-credit",
		Pattern:            regexp.MustCompile(`(?i)Received\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+in\s+your\s+Kotak\s+Bank\s+AC\s+\w+\s+from\s+([\w.@-]+)\s+on`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "hdfc-upi-debit",
		Pattern:            regexp.MustCompile(`(?i)Amt\s+Sent\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+From\s+HDFC\s+Bank\s+A/C\s+\*?\w+\s+To\s+(.+?)\s+On\s+\d`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "hdfc-upi-debit-alt",
		Pattern:            regexp.MustCompile(`(?i)Rs\.?\s*([\d,]+(?:\.\d+)?)\s+debited\s+from\s+HDFC\s+Bank\s+A/C\s+\*?\w+\s+to\s+VPA\s+([\w.@-]+)`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "hdfc-upi-credit",
		Pattern:            regexp.MustCompile(`(?i)Rs\.?\s*([\d,]+(?:\.\d+)?)\s+credited\s+to\s+HDFC\s+Bank\s+A/C\s+\*?\w+\s+by\s+(.+?)(?:\s+on\b|\s*\(|\.|$)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "icici-upi-debit",
		Pattern:            regexp.MustCompile(`(?i)ICICI\s+Bank\s+Acct\s+\w+\s+debited\s+for\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+on\s+[\w-]+;\s*(.+?)\s+credited`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "icici-credit",
		Pattern:            regexp.MustCompile(`(?i)ICICI\s+Bank\s+Acct\s+\w+\s+(?:is\s+)?credited\s+with\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+on\s+[\w-]+\s+(?:from|by)\s+(.+?)(?:\.|$)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "sbi-upi-debit",
		Pattern:            regexp.MustCompile(`(?i)A/C\s+\w+\s+debited\s+by\s+([\d,]+(?:\.\d+)?)\s+on\s+date\s+\w+\s+trf\s+to\s+(.+?)\s+Refno`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		// Credit-by-sender NEFT deposits; the sender name is the only
		// counterparty the message carries.
		ID:                 "sbi-neft-credit",
		Pattern:            regexp.MustCompile(`(?i)A/C\s+\w+\s+Credited\s+(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+on\s+[\d/-]+\s*-?\s*Deposit\s+by\s+transfer\s+from\s+(.+?)(?:\s+Avl\b|\.|$)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
		CounterpartyPrefix: "NEFT/",
	},
	{
		ID:                 "axis-card-spend",
		Pattern:            regexp.MustCompile(`(?i)Spent\s+Card\s+no\.\s+\w+\s+(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+[\d-]+\s+(?:[\d:]+\s+)?(.+?)\s+Avl\s+Lmt`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "paytm-wallet-debit",
		Pattern:            regexp.MustCompile(`(?i)Paid\s+Rs\.?\s*([\d,]+(?:\.\d+)?)\s+to\s+(.+?)\s+via\s+Paytm`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		// IMPS credits carry both the sender name and their handle; join them.
		ID:                 "imps-credit",
		Pattern:            regexp.MustCompile(`(?i)IMPS\s+(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+received\s+in\s+your\s+account\s+from\s+(.+?)\s+\(([\w.@-]+)\)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2, 3},
	},
	{
		ID:                 "generic-card-spend",
		Pattern:            regexp.MustCompile(`(?i)(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+spent\s+(?:on|using)\s+.*?card\s+\S+\s+at\s+(.+?)(?:\s+on\b|\.|$)`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "generic-debit",
		Pattern:            regexp.MustCompile(`(?i)(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+(?:is\s+|has\s+been\s+|was\s+)?debited\s+(?:to|at|for|towards)\s+(.+?)(?:\s+on\b|\s+Ref\b|\.|$)`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "generic-debit-alt",
		Pattern:            regexp.MustCompile(`(?i)(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+(?:is\s+|has\s+been\s+|was\s+)?debited\s+from\s+.+?\s+(?:to|towards)\s+(.+?)(?:\s+on\b|\s+Ref\b|\.|$)`),
		Direction:          Debit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "generic-credit",
		Pattern:            regexp.MustCompile(`(?i)(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+(?:is\s+|has\s+been\s+|was\s+)?credited\s+to\s+your\s+account\s+(?:from|by)\s+(.+?)(?:\s+on\b|\.|$)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
	{
		ID:                 "generic-credit-alt",
		Pattern:            regexp.MustCompile(`(?i)(?:INR|Rs\.?)\s*([\d,]+(?:\.\d+)?)\s+(?:is\s+|has\s+been\s+)?credited\s+(?:in|to)\s+.+?\s+(?:from|by)\s+(.+?)(?:\s+on\b|\.|$)`),
		Direction:          Credit,
		AmountGroup:        1,
		CounterpartyGroups: []int{2},
	},
}

// Default returns the fixed rule cascade. The returned slice is shared and
// read-only; callers must not mutate it.
func Default() []Rule {
	return rules
}
