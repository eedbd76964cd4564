package service

import (
	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	"github.com/insuranceguard/insuranceguard/internal/testutil"
)

// serviceSuite wires the in-memory store and deterministic clock/randomness
// into a ready-to-use ServiceParams for every service test.
type serviceSuite struct {
	testutil.BaseServiceTestSuite
	params ServiceParams
}

func (s *serviceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	st := s.GetStore()
	s.params = ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		DB:           st,
		Clock:        s.GetClock(),
		IDGen:        s.GetIDGenerator(),
		CustomerRepo: st.CustomerRepo(),
		InvoiceRepo:  st.InvoiceRepo(),
		PayoutRepo:   st.PayoutRepo(),
		LedgerRepo:   st.LedgerRepo(),
		AuditRepo:    st.AuditRepo(),
		Notifier:     s.GetNotifier(),
	}
}

// createCustomer creates an active record with the given policy types.
func (s *serviceSuite) createCustomer(policies ...string) *customer.Customer {
	cust, err := NewCustomerService(s.params).Create(
		s.GetContext(), "Max Mustermann", "user-1001", "max#bank", policies)
	s.Require().NoError(err)
	s.GetNotifier().Reset()
	return cust
}

// topUp credits the customer and clears the notifications it produced.
func (s *serviceSuite) topUp(customerID string, amount decimal.Decimal) {
	_, err := NewLedgerService(s.params).TopUp(
		s.GetContext(), customerID, amount, "Einzahlung")
	s.Require().NoError(err)
	s.GetNotifier().Reset()
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
