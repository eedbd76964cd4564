package ledger

import (
	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// Operation is a request to move a customer's balance. Amount is always
// positive; Type determines the direction.
type Operation struct {
	CustomerID string                `json:"customer_id"`
	Type       types.LedgerEntryType `json:"type"`
	Amount     decimal.Decimal       `json:"amount"`
	Reason     string                `json:"reason"`
	// ReferenceID links the entry to the record that caused it, e.g. a
	// payout request ID
	ReferenceID string `json:"reference_id,omitempty"`
}

func (o *Operation) Validate() error {
	if o.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := o.Type.Validate(); err != nil {
		return err
	}
	if o.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("ledger operation amount must be greater than 0").
			WithHint("Amount must be greater than 0").
			WithReportableDetails(map[string]any{
				"customer_id": o.CustomerID,
				"amount":      o.Amount,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsDebit reports whether the operation moves the balance down.
func (o *Operation) IsDebit() bool {
	return o.Type == types.LedgerEntryTypePayout || o.Type == types.LedgerEntryTypeAdjustment
}

// SignedAmount returns the amount with the sign the entry will carry.
func (o *Operation) SignedAmount() decimal.Decimal {
	if o.IsDebit() {
		return o.Amount.Neg()
	}
	return o.Amount
}
