package customer

import (
	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// Customer is a policy record ("Akte") for one insured community member.
// The balance is owned by the ledger: it only moves through ledger
// operations, never by direct assignment.
type Customer struct {
	ID string `json:"id"`
	// Name is the role-play name the record is kept under
	Name string `json:"name"`
	// AccountRef links the record to the chat-platform account
	AccountRef string `json:"account_ref"`
	// PaymentHandle is the in-game payment number invoices are billed to
	PaymentHandle string `json:"payment_handle"`
	// Policies are the active policy types from the catalog
	Policies []string `json:"policies"`
	// MonthlyPremium is the aggregate premium across all active policies
	MonthlyPremium decimal.Decimal `json:"monthly_premium"`
	Status         types.Status    `json:"status"`
	Balance        decimal.Decimal `json:"balance"`
	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	if len(c.Policies) == 0 {
		return ierr.NewError("customer has no policies").
			WithHint("At least one policy type must be selected").
			Mark(ierr.ErrValidation)
	}
	if c.Balance.IsNegative() {
		return ierr.NewError("customer balance is negative").
			WithHint("Balance must never fall below zero").
			WithReportableDetails(map[string]any{
				"customer_id": c.ID,
				"balance":     c.Balance,
			}).
			Mark(ierr.ErrValidation)
	}
	return c.Status.Validate()
}

// IsArchived reports whether the record has been closed. Archived records
// keep their history and balance but take no new invoices or payouts.
func (c *Customer) IsArchived() bool {
	return c.Status == types.StatusArchived
}

// Clone returns a deep copy of the customer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Policies = append([]string(nil), c.Policies...)
	return &clone
}
