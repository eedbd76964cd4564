package invoice

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// Invoice is one billing demand against a customer. AmountGross moves with
// the reminder stage; AmountOriginal is the baseline every surcharge is
// computed from, so repeated stage advances never compound.
type Invoice struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`

	AmountNet      decimal.Decimal `json:"amount_net"`
	AmountTax      decimal.Decimal `json:"amount_tax"`
	AmountGross    decimal.Decimal `json:"amount_gross"`
	AmountOriginal decimal.Decimal `json:"amount_original"`

	Paid          bool                `json:"paid"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	DueDate       time.Time           `json:"due_date"`
	ReminderStage types.ReminderStage `json:"reminder_stage"`

	types.BaseModel
}

// New builds a stage-0 unpaid invoice over the given net amount. Tax and
// due date follow the fixed billing terms.
func New(id, customerID string, net decimal.Decimal, issuedAt time.Time) *Invoice {
	tax := net.Mul(types.TaxRate)
	gross := net.Add(tax)
	return &Invoice{
		ID:             id,
		CustomerID:     customerID,
		AmountNet:      net,
		AmountTax:      tax,
		AmountGross:    gross,
		AmountOriginal: gross,
		Paid:           false,
		DueDate:        issuedAt.Add(types.PaymentTerm),
		ReminderStage:  types.ReminderStageNone,
	}
}

func (i *Invoice) Validate() error {
	if i.CustomerID == "" {
		return ierr.NewError("invoice has no customer").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if i.AmountNet.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("invoice net amount must be greater than 0").
			WithHint("Invoice net amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	if err := i.ReminderStage.Validate(); err != nil {
		return err
	}
	if i.Paid {
		// settled invoices are immutable; the gross keeps the amount that
		// was actually owed, surcharges included
		return nil
	}
	// gross = original * (1 + surcharge(stage)) must hold while unpaid
	expected := i.expectedGross()
	if !i.AmountGross.Equal(expected) {
		return ierr.NewError("invoice gross amount does not match reminder stage").
			WithHint("Invoice amount is inconsistent with its reminder stage").
			WithReportableDetails(map[string]any{
				"invoice_id": i.ID,
				"gross":      i.AmountGross,
				"expected":   expected,
				"stage":      i.ReminderStage,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (i *Invoice) expectedGross() decimal.Decimal {
	return i.AmountOriginal.Mul(decimal.NewFromInt(1).Add(i.ReminderStage.Surcharge()))
}

// DaysOverdue returns the whole days elapsed since the due date, negative
// when the invoice is not yet due. Floor, not truncation: an invoice due in
// an hour is -1 days overdue, never 0.
func (i *Invoice) DaysOverdue(now time.Time) int {
	return int(math.Floor(now.Sub(i.DueDate).Hours() / 24))
}

// AdvanceStage moves the invoice exactly one reminder stage forward and
// recomputes the gross amount from the original. The stage never decreases
// and a paid invoice never advances. At the final stage the invoice stays
// put so repeat reminders re-send the last notice without further surcharge.
func (i *Invoice) AdvanceStage(now time.Time) error {
	if i.Paid {
		return ierr.NewError("invoice already paid").
			WithHintf("Invoice %s is already settled", i.ID).
			Mark(ierr.ErrAlreadySettled)
	}
	i.ReminderStage = i.ReminderStage.Next()
	i.AmountGross = i.expectedGross()
	i.UpdatedAt = now
	return nil
}

// MarkPaid settles the invoice. Settling is terminal: a second call is
// rejected. The stage is reset for bookkeeping; the paid flag is the true
// terminal marker.
func (i *Invoice) MarkPaid(now time.Time) error {
	if i.Paid {
		return ierr.NewError("invoice already paid").
			WithHintf("Invoice %s is already settled", i.ID).
			Mark(ierr.ErrAlreadySettled)
	}
	i.Paid = true
	i.PaidAt = &now
	i.ReminderStage = types.ReminderStageNone
	i.UpdatedAt = now
	return nil
}

// Clone returns a deep copy of the invoice.
func (i *Invoice) Clone() *Invoice {
	if i == nil {
		return nil
	}
	clone := *i
	if i.PaidAt != nil {
		t := *i.PaidAt
		clone.PaidAt = &t
	}
	return &clone
}
