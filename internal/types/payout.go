package types

import ierr "github.com/insuranceguard/insuranceguard/internal/errors"

// PayoutStatus is the approval state of a payout request.
// pending -> approved | rejected, terminal once resolved.
type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "pending"
	PayoutStatusApproved PayoutStatus = "approved"
	PayoutStatusRejected PayoutStatus = "rejected"
)

func (s PayoutStatus) String() string {
	return string(s)
}

// IsResolved reports whether the request reached a terminal state.
func (s PayoutStatus) IsResolved() bool {
	return s == PayoutStatusApproved || s == PayoutStatusRejected
}

func (s PayoutStatus) Validate() error {
	switch s {
	case PayoutStatusPending, PayoutStatusApproved, PayoutStatusRejected:
		return nil
	}
	return ierr.NewError("invalid payout status").
		WithHint("Invalid payout status").
		Mark(ierr.ErrValidation)
}
