package payout

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

func newPendingRequest() *PayoutRequest {
	return &PayoutRequest{
		ID:          "AZ-2503-AAAA",
		CustomerID:  "VN-25000001",
		Amount:      decimal.NewFromInt(300),
		Description: "Sturmschaden",
		Status:      types.PayoutStatusPending,
		RequestedBy: "user_staff",
	}
}

func TestApproveResolvesOnce(t *testing.T) {
	req := newPendingRequest()
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, req.Approve("user_boss", now))
	assert.Equal(t, types.PayoutStatusApproved, req.Status)
	assert.Equal(t, "user_boss", req.ResolvedBy)
	require.NotNil(t, req.ResolvedAt)
	assert.Equal(t, now, *req.ResolvedAt)

	err := req.Approve("user_boss", now)
	assert.True(t, ierr.IsAlreadyResolved(err))
	err = req.Reject("user_boss", "zu spät", now)
	assert.True(t, ierr.IsAlreadyResolved(err))
}

func TestRejectStoresReason(t *testing.T) {
	req := newPendingRequest()
	now := time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, req.Reject("user_boss", "Unplausibel", now))
	assert.Equal(t, types.PayoutStatusRejected, req.Status)
	assert.Equal(t, "Unplausibel", req.RejectionReason)

	err := req.Approve("user_boss", now)
	assert.True(t, ierr.IsAlreadyResolved(err))
}

func TestValidateRejectsBadAmounts(t *testing.T) {
	req := newPendingRequest()
	req.Amount = decimal.Zero
	assert.True(t, ierr.IsValidation(req.Validate()))

	req.Amount = decimal.NewFromInt(-5)
	assert.True(t, ierr.IsValidation(req.Validate()))
}
