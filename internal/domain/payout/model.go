package payout

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// PayoutRequest is a staff-initiated request to debit a customer's balance,
// resolved exactly once by an approver. The amount is re-checked against the
// balance at approval time, not just at request time.
type PayoutRequest struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`

	Status      types.PayoutStatus `json:"status"`
	RequestedBy string             `json:"requested_by"`
	ResolvedBy  string             `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time         `json:"resolved_at,omitempty"`
	// RejectionReason is set only when the request was rejected
	RejectionReason string `json:"rejection_reason,omitempty"`

	types.BaseModel
}

func (p *PayoutRequest) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("payout request has no customer").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ierr.NewError("payout amount must be greater than 0").
			WithHint("Payout amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}
	return p.Status.Validate()
}

// EnsurePending rejects any second resolution attempt.
func (p *PayoutRequest) EnsurePending() error {
	if p.Status.IsResolved() {
		return ierr.NewError("payout request already resolved").
			WithHintf("Payout request %s is already %s", p.ID, p.Status).
			WithReportableDetails(map[string]any{
				"payout_id": p.ID,
				"status":    p.Status,
			}).
			Mark(ierr.ErrAlreadyResolved)
	}
	return nil
}

// Approve marks the request approved. The caller is responsible for the
// balance debit; the two happen inside one commit.
func (p *PayoutRequest) Approve(approver string, now time.Time) error {
	if err := p.EnsurePending(); err != nil {
		return err
	}
	p.Status = types.PayoutStatusApproved
	p.ResolvedBy = approver
	p.ResolvedAt = &now
	p.UpdatedAt = now
	p.UpdatedBy = approver
	return nil
}

// Reject marks the request rejected with a reason. No balance change.
func (p *PayoutRequest) Reject(approver, reason string, now time.Time) error {
	if err := p.EnsurePending(); err != nil {
		return err
	}
	p.Status = types.PayoutStatusRejected
	p.ResolvedBy = approver
	p.ResolvedAt = &now
	p.RejectionReason = reason
	p.UpdatedAt = now
	p.UpdatedBy = approver
	return nil
}

// Clone returns a deep copy of the payout request.
func (p *PayoutRequest) Clone() *PayoutRequest {
	if p == nil {
		return nil
	}
	clone := *p
	if p.ResolvedAt != nil {
		t := *p.ResolvedAt
		clone.ResolvedAt = &t
	}
	return &clone
}
