package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type DunningServiceSuite struct {
	serviceSuite
	dunning  DunningService
	invoices InvoiceService
}

func TestDunningService(t *testing.T) {
	suite.Run(t, new(DunningServiceSuite))
}

func (s *DunningServiceSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.dunning = NewDunningService(s.params)
	s.invoices = NewInvoiceService(s.params)
}

// issueOverdue bills the customer and moves the clock past the due date by
// the given number of days.
func (s *DunningServiceSuite) issueOverdue(customerID string, days int) *invoice.Invoice {
	inv, err := s.invoices.Issue(s.GetContext(), customerID)
	s.Require().NoError(err)
	s.GetClock().Advance(72*time.Hour + time.Duration(days)*24*time.Hour)
	s.GetNotifier().Reset()
	return inv
}

func (s *DunningServiceSuite) reload(id string) *invoice.Invoice {
	inv, err := s.invoices.Get(s.GetContext(), id)
	s.Require().NoError(err)
	return inv
}

func (s *DunningServiceSuite) TestSweepBeforeDueDateDoesNothing() {
	cust := s.createCustomer("Haftpflichtversicherung")
	_, err := s.invoices.Issue(s.GetContext(), cust.ID)
	s.Require().NoError(err)
	s.GetClock().Advance(71 * time.Hour)

	result, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Scanned)
	s.Equal(0, result.Advanced)
}

// The escalation path of the fixed dunning schedule: due date reached moves
// the invoice to the first reminder with no surcharge, one day later 5% on
// the original gross, two days later 10%.
func (s *DunningServiceSuite) TestEscalationSchedule() {
	cust := s.createCustomer("Haftpflichtversicherung") // 3000 net, 3150 gross
	inv := s.issueOverdue(cust.ID, 0)

	result, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Advanced)
	got := s.reload(inv.ID)
	s.Equal(types.ReminderStageFirst, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3150")))

	s.GetClock().Advance(24 * time.Hour)
	_, err = s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	got = s.reload(inv.ID)
	s.Equal(types.ReminderStageSecond, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3307.50")))

	s.GetClock().Advance(24 * time.Hour)
	_, err = s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	got = s.reload(inv.ID)
	s.Equal(types.ReminderStageThird, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3465")))

	// surcharge is computed from the original gross, never compounded
	s.True(got.AmountOriginal.Equal(mustDecimal("3150")))
}

// A sweep gap never skips stages: an invoice three days overdue advances
// one stage per sweep until it catches up, and ends at the same stage the
// day-by-day schedule produces.
func (s *DunningServiceSuite) TestMissedSweepsCatchUpOneStagePerRun() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv := s.issueOverdue(cust.ID, 3)

	for want := types.ReminderStageFirst; want <= types.ReminderStageThird; want++ {
		result, err := s.dunning.Sweep(s.GetContext())
		s.NoError(err)
		s.Equal(1, result.Advanced)
		s.Equal(want, s.reload(inv.ID).ReminderStage)
	}

	// fully caught up, the next sweep is a no-op
	result, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Advanced)
	s.Equal(types.ReminderStageThird, s.reload(inv.ID).ReminderStage)
}

func (s *DunningServiceSuite) TestDayByDayAndJumpConverge() {
	cust := s.createCustomer("Haftpflichtversicherung")
	daily := s.issueOverdue(cust.ID, 0)

	for i := 0; i < 3; i++ {
		_, err := s.dunning.Sweep(s.GetContext())
		s.Require().NoError(err)
		s.GetClock().Advance(24 * time.Hour)
	}
	s.Equal(types.ReminderStageThird, s.reload(daily.ID).ReminderStage)

	// second invoice sees the sweep only after the same three days passed
	jumped, err := s.invoices.Issue(s.GetContext(), cust.ID)
	s.Require().NoError(err)
	s.GetClock().Advance(72*time.Hour + 3*24*time.Hour)
	for i := 0; i < 3; i++ {
		_, err := s.dunning.Sweep(s.GetContext())
		s.Require().NoError(err)
	}
	got := s.reload(jumped.ID)
	s.Equal(types.ReminderStageThird, got.ReminderStage)
	s.True(got.AmountGross.Equal(s.reload(daily.ID).AmountGross))
}

func (s *DunningServiceSuite) TestPaidInvoicesAreSkipped() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv := s.issueOverdue(cust.ID, 5)

	_, err := s.invoices.MarkPaid(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	result, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	s.Equal(0, result.Scanned)
	s.Equal(0, result.Advanced)
}

func (s *DunningServiceSuite) TestStageCapsAtThree() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv := s.issueOverdue(cust.ID, 30)

	for i := 0; i < 6; i++ {
		_, err := s.dunning.Sweep(s.GetContext())
		s.Require().NoError(err)
	}
	got := s.reload(inv.ID)
	s.Equal(types.ReminderStageThird, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3465")))
}

// The stage change commits before the reminder is sent; a failing notifier
// loses the notice, never the mutation.
func (s *DunningServiceSuite) TestNotificationFailureDoesNotBlockAdvance() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv := s.issueOverdue(cust.ID, 0)

	s.GetNotifier().FailWith(ierr.NewError("webhook down").Mark(ierr.ErrNotification))

	result, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)
	s.Equal(1, result.Advanced)
	s.Equal(types.ReminderStageFirst, s.reload(inv.ID).ReminderStage)
}

func (s *DunningServiceSuite) TestSweepSendsReminderNotice() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.issueOverdue(cust.ID, 0)

	_, err := s.dunning.Sweep(s.GetContext())
	s.NoError(err)

	sent := s.GetNotifier().ByTarget(notifier.TargetInvoices)
	s.Require().Len(sent, 1)
	s.Equal("user-1001", sent[0].Recipient)
	s.Contains(sent[0].Title, "1. Mahnung")
}

func (s *DunningServiceSuite) TestSweepRecordsReminderAudit() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv := s.issueOverdue(cust.ID, 0)

	_, err := s.dunning.Sweep(s.GetContext())
	s.Require().NoError(err)

	entries, err := s.params.AuditRepo.List(s.GetContext(), 1)
	s.NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(types.AuditActionReminderFirst, entries[0].Action)
	s.Equal(types.DefaultActorID, entries[0].ActorID)
	s.Equal(inv.ID, entries[0].Details["invoice_id"])
}

func (s *DunningServiceSuite) TestManualReminderBypassesDayGating() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv, err := s.invoices.Issue(s.GetContext(), cust.ID)
	s.Require().NoError(err)

	// not yet due, a sweep would not touch it
	got, err := s.dunning.ManualReminder(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.ReminderStageFirst, got.ReminderStage)

	got, err = s.dunning.ManualReminder(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.ReminderStageSecond, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3307.50")))
}

func (s *DunningServiceSuite) TestManualReminderOnPaidInvoice() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv, err := s.invoices.Issue(s.GetContext(), cust.ID)
	s.Require().NoError(err)
	_, err = s.invoices.MarkPaid(s.GetContext(), inv.ID)
	s.Require().NoError(err)

	_, err = s.dunning.ManualReminder(s.GetContext(), inv.ID)
	s.True(ierr.IsAlreadySettled(err))
}

func (s *DunningServiceSuite) TestManualReminderAtFinalStageResends() {
	cust := s.createCustomer("Haftpflichtversicherung")
	inv, err := s.invoices.Issue(s.GetContext(), cust.ID)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.dunning.ManualReminder(s.GetContext(), inv.ID)
		s.Require().NoError(err)
	}
	s.GetNotifier().Reset()

	got, err := s.dunning.ManualReminder(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Equal(types.ReminderStageThird, got.ReminderStage)
	s.True(got.AmountGross.Equal(mustDecimal("3465")))
	s.Len(s.GetNotifier().ByTarget(notifier.TargetInvoices), 1)
}
