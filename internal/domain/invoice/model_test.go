package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

var issuedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestInvoice(t *testing.T) *Invoice {
	t.Helper()
	inv := New("RE-2503-AAAA", "VN-25000001", decimal.NewFromInt(3000), issuedAt)
	require.NoError(t, inv.Validate())
	return inv
}

func TestNewAppliesBillingTerms(t *testing.T) {
	inv := newTestInvoice(t)

	assert.True(t, inv.AmountTax.Equal(decimal.NewFromInt(150)))
	assert.True(t, inv.AmountGross.Equal(decimal.NewFromInt(3150)))
	assert.True(t, inv.AmountOriginal.Equal(inv.AmountGross))
	assert.Equal(t, issuedAt.Add(72*time.Hour), inv.DueDate)
	assert.Equal(t, types.ReminderStageNone, inv.ReminderStage)
	assert.False(t, inv.Paid)
}

func TestDaysOverdue(t *testing.T) {
	inv := newTestInvoice(t)
	due := inv.DueDate

	assert.Equal(t, -2, inv.DaysOverdue(due.Add(-25*time.Hour)))
	assert.Equal(t, -1, inv.DaysOverdue(due.Add(-time.Hour)))
	assert.Equal(t, 0, inv.DaysOverdue(due))
	assert.Equal(t, 0, inv.DaysOverdue(due.Add(23*time.Hour)))
	assert.Equal(t, 1, inv.DaysOverdue(due.Add(24*time.Hour)))
	assert.Equal(t, 3, inv.DaysOverdue(due.Add(3*24*time.Hour)))
}

func TestAdvanceStageSurcharges(t *testing.T) {
	inv := newTestInvoice(t)
	now := inv.DueDate

	require.NoError(t, inv.AdvanceStage(now))
	assert.Equal(t, types.ReminderStageFirst, inv.ReminderStage)
	assert.True(t, inv.AmountGross.Equal(decimal.NewFromInt(3150)), "first reminder carries no surcharge")

	require.NoError(t, inv.AdvanceStage(now))
	assert.Equal(t, types.ReminderStageSecond, inv.ReminderStage)
	assert.True(t, inv.AmountGross.Equal(decimal.RequireFromString("3307.50")))

	require.NoError(t, inv.AdvanceStage(now))
	assert.Equal(t, types.ReminderStageThird, inv.ReminderStage)
	assert.True(t, inv.AmountGross.Equal(decimal.RequireFromString("3465")))

	// surcharge never compounds past the final stage
	require.NoError(t, inv.AdvanceStage(now))
	assert.Equal(t, types.ReminderStageThird, inv.ReminderStage)
	assert.True(t, inv.AmountGross.Equal(decimal.RequireFromString("3465")))
	require.NoError(t, inv.Validate())
}

func TestAdvanceStageOnPaidInvoice(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.MarkPaid(issuedAt))

	err := inv.AdvanceStage(issuedAt)
	assert.True(t, ierr.IsAlreadySettled(err))
}

func TestMarkPaidIsTerminal(t *testing.T) {
	inv := newTestInvoice(t)
	paidAt := issuedAt.Add(time.Hour)

	require.NoError(t, inv.MarkPaid(paidAt))
	assert.True(t, inv.Paid)
	require.NotNil(t, inv.PaidAt)
	assert.Equal(t, paidAt, *inv.PaidAt)
	assert.Equal(t, types.ReminderStageNone, inv.ReminderStage)

	err := inv.MarkPaid(paidAt.Add(time.Hour))
	assert.True(t, ierr.IsAlreadySettled(err))
}

func TestMarkPaidKeepsOwedGross(t *testing.T) {
	inv := newTestInvoice(t)
	require.NoError(t, inv.AdvanceStage(inv.DueDate))
	require.NoError(t, inv.AdvanceStage(inv.DueDate))

	require.NoError(t, inv.MarkPaid(inv.DueDate))
	assert.True(t, inv.AmountGross.Equal(decimal.RequireFromString("3307.50")))
	require.NoError(t, inv.Validate())
}

func TestValidateCatchesInconsistentGross(t *testing.T) {
	inv := newTestInvoice(t)
	inv.AmountGross = decimal.NewFromInt(9999)

	err := inv.Validate()
	assert.True(t, ierr.IsValidation(err))
}
