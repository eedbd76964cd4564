package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/types"
)

// Entry is one immutable record of a balance change. Entries are appended
// in commit order and never mutated or removed; BalanceAfter snapshots the
// customer's balance immediately after the commit, so replaying all entries
// from zero reproduces the current balance.
type Entry struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	Timestamp  time.Time `json:"timestamp"`
	// Amount is signed: positive for credits, negative for debits
	Amount       decimal.Decimal       `json:"amount"`
	Type         types.LedgerEntryType `json:"type"`
	Reason       string                `json:"reason"`
	ActorID      string                `json:"actor_id"`
	BalanceAfter decimal.Decimal       `json:"balance_after"`
	// ReferenceID links the entry to the record that caused it, e.g. the
	// payout request an approval debited
	ReferenceID string `json:"reference_id,omitempty"`
}

// Clone returns a copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}
