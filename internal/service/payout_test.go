package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type PayoutServiceSuite struct {
	serviceSuite
	payouts PayoutService
	ledger  LedgerService
}

func TestPayoutService(t *testing.T) {
	suite.Run(t, new(PayoutServiceSuite))
}

func (s *PayoutServiceSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.payouts = NewPayoutService(s.params)
	s.ledger = NewLedgerService(s.params)
}

func (s *PayoutServiceSuite) TestRequestCreatesPendingRequest() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("300"), "Sturmschaden")
	s.NoError(err)
	s.Equal(types.PayoutStatusPending, req.Status)
	s.Equal("user_test", req.RequestedBy)
	s.Regexp(`^AZ-\d{4}-[A-Z0-9]{4}$`, req.ID)

	pending, err := s.payouts.ListPending(s.GetContext())
	s.NoError(err)
	s.Len(pending, 1)

	// the request itself must not move the balance
	balance, err := s.ledger.Balance(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(balance.Equal(mustDecimal("1000")))

	staff := s.GetNotifier().ByTarget(notifier.TargetPayouts)
	s.Require().Len(staff, 1)
	s.Contains(staff[0].Title, "Auszahlungsanfrage")
}

func (s *PayoutServiceSuite) TestRequestOverBalanceIsRejected() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("100"))

	_, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("100.01"), "Sturmschaden")
	s.True(ierr.IsInsufficientBalance(err))

	pending, err := s.payouts.ListPending(s.GetContext())
	s.NoError(err)
	s.Empty(pending)
}

func (s *PayoutServiceSuite) TestApproveDebitsBalanceOnce() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("300"), "Sturmschaden")
	s.Require().NoError(err)

	approved, err := s.payouts.Approve(s.GetContext(), req.ID)
	s.NoError(err)
	s.Equal(types.PayoutStatusApproved, approved.Status)
	s.Equal("user_test", approved.ResolvedBy)
	s.NotNil(approved.ResolvedAt)

	balance, err := s.ledger.Balance(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(balance.Equal(mustDecimal("700")))

	history, err := s.ledger.History(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Require().Len(history, 2)
	s.Equal(types.LedgerEntryTypePayout, history[1].Type)
	s.True(history[1].Amount.Equal(mustDecimal("-300")))
	s.Equal(req.ID, history[1].ReferenceID)
}

func (s *PayoutServiceSuite) TestApproveTwiceIsRejected() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("300"), "Sturmschaden")
	s.Require().NoError(err)

	_, err = s.payouts.Approve(s.GetContext(), req.ID)
	s.Require().NoError(err)

	_, err = s.payouts.Approve(s.GetContext(), req.ID)
	s.True(ierr.IsAlreadyResolved(err))

	// the second attempt must not debit again
	balance, err := s.ledger.Balance(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(balance.Equal(mustDecimal("700")))

	history, err := s.ledger.History(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Len(history, 2)
}

func (s *PayoutServiceSuite) TestRejectResolvesWithoutDebit() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("300"), "Sturmschaden")
	s.Require().NoError(err)

	rejected, err := s.payouts.Reject(s.GetContext(), req.ID, "Unplausibel")
	s.NoError(err)
	s.Equal(types.PayoutStatusRejected, rejected.Status)
	s.Equal("Unplausibel", rejected.RejectionReason)

	balance, err := s.ledger.Balance(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(balance.Equal(mustDecimal("1000")))

	_, err = s.payouts.Approve(s.GetContext(), req.ID)
	s.True(ierr.IsAlreadyResolved(err))
}

func (s *PayoutServiceSuite) TestRejectWithoutReasonUsesDefault() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("300"), "Sturmschaden")
	s.Require().NoError(err)

	rejected, err := s.payouts.Reject(s.GetContext(), req.ID, "")
	s.NoError(err)
	s.Equal("Kein Grund angegeben", rejected.RejectionReason)
}

// The balance is re-validated inside the approval commit. A request that
// was covered when filed but is no longer covered stays pending, so staff
// can top up and retry or reject it.
func (s *PayoutServiceSuite) TestApproveRevalidatesBalance() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("50000"))

	big, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("50000"), "Totalschaden")
	s.Require().NoError(err)
	small, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("0.01"), "Restbetrag")
	s.Require().NoError(err)

	_, err = s.payouts.Approve(s.GetContext(), big.ID)
	s.Require().NoError(err)

	_, err = s.payouts.Approve(s.GetContext(), small.ID)
	s.True(ierr.IsInsufficientBalance(err))

	// still pending, resolvable after a top-up
	stored, err := s.payouts.Get(s.GetContext(), small.ID)
	s.NoError(err)
	s.Equal(types.PayoutStatusPending, stored.Status)

	s.topUp(cust.ID, mustDecimal("0.01"))
	_, err = s.payouts.Approve(s.GetContext(), small.ID)
	s.NoError(err)
}

func (s *PayoutServiceSuite) TestApproveToZeroNotifiesCustomer() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("50000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("50000"), "Totalschaden")
	s.Require().NoError(err)
	s.GetNotifier().Reset()

	_, err = s.payouts.Approve(s.GetContext(), req.ID)
	s.NoError(err)

	direct := s.GetNotifier().ByTarget(notifier.TargetCustomer)
	s.Require().Len(direct, 1)
	s.Equal("user-1001", direct[0].Recipient)
	s.Contains(direct[0].Title, "aufgebraucht")
}

func (s *PayoutServiceSuite) TestApproveAboveZeroSkipsCustomerNotice() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("1000"))

	req, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("999.99"), "Teilschaden")
	s.Require().NoError(err)
	s.GetNotifier().Reset()

	_, err = s.payouts.Approve(s.GetContext(), req.ID)
	s.NoError(err)
	s.Empty(s.GetNotifier().ByTarget(notifier.TargetCustomer))
}

// Two approvals racing over a balance that covers only one of them: exactly
// one wins, the other stays pending with an insufficient-balance error.
func (s *PayoutServiceSuite) TestConcurrentApprovalsSerialize() {
	cust := s.createCustomer("Haftpflichtversicherung")
	s.topUp(cust.ID, mustDecimal("50000"))

	first, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("50000"), "Totalschaden")
	s.Require().NoError(err)
	second, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("50000"), "Doppelt eingereicht")
	s.Require().NoError(err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = s.payouts.Approve(s.GetContext(), id)
		}(i, id)
	}
	wg.Wait()

	if errs[0] == nil {
		s.True(ierr.IsInsufficientBalance(errs[1]))
	} else {
		s.True(ierr.IsInsufficientBalance(errs[0]))
		s.NoError(errs[1])
	}

	balance, err := s.ledger.Balance(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(balance.IsZero())

	history, err := s.ledger.History(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Len(history, 2) // one top-up, one payout
}

func (s *PayoutServiceSuite) TestRequestRejectsNonPositiveAmount() {
	cust := s.createCustomer("Haftpflichtversicherung")
	_, err := s.payouts.Request(s.GetContext(), cust.ID, mustDecimal("0"), "Nichts")
	s.True(ierr.IsValidation(err))
}
