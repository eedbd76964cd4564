package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type CustomerServiceSuite struct {
	serviceSuite
	customers CustomerService
}

func TestCustomerService(t *testing.T) {
	suite.Run(t, new(CustomerServiceSuite))
}

func (s *CustomerServiceSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.customers = NewCustomerService(s.params)
}

func (s *CustomerServiceSuite) TestCreateComputesPremium() {
	cust, err := s.customers.Create(s.GetContext(), "Erika Musterfrau", "user-2002", "erika#bank",
		[]string{"Krankenversicherung (Privat)", "Kfz-Versicherung"})
	s.NoError(err)
	s.Regexp(`^VN-\d{8}$`, cust.ID)
	s.Equal(types.StatusActive, cust.Status)
	s.True(cust.MonthlyPremium.Equal(mustDecimal("8000")))
	s.True(cust.Balance.IsZero())
	s.Equal("user_test", cust.CreatedBy)
}

func (s *CustomerServiceSuite) TestCreateRejectsUnknownPolicy() {
	_, err := s.customers.Create(s.GetContext(), "Erika Musterfrau", "user-2002", "erika#bank",
		[]string{"Drachenversicherung"})
	s.True(ierr.IsValidation(err))
}

func (s *CustomerServiceSuite) TestCreateRetriesOnIDCollision() {
	s.GetRand().Enqueue("111111", "111111", "222222")

	first, err := s.customers.Create(s.GetContext(), "A", "user-1", "a#bank",
		[]string{"Kfz-Versicherung"})
	s.Require().NoError(err)
	second, err := s.customers.Create(s.GetContext(), "B", "user-2", "b#bank",
		[]string{"Kfz-Versicherung"})
	s.Require().NoError(err)
	s.NotEqual(first.ID, second.ID)
	s.Equal("VN-25222222", second.ID)
}

func (s *CustomerServiceSuite) TestArchiveIsTerminal() {
	cust := s.createCustomer("Kfz-Versicherung")

	archived, err := s.customers.Archive(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Equal(types.StatusArchived, archived.Status)

	_, err = s.customers.Archive(s.GetContext(), cust.ID)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *CustomerServiceSuite) TestArchiveKeepsHistory() {
	cust := s.createCustomer("Kfz-Versicherung")
	s.topUp(cust.ID, mustDecimal("100"))

	_, err := s.customers.Archive(s.GetContext(), cust.ID)
	s.Require().NoError(err)

	got, err := s.customers.Get(s.GetContext(), cust.ID)
	s.NoError(err)
	s.True(got.Balance.Equal(mustDecimal("100")))

	history, err := NewLedgerService(s.params).History(s.GetContext(), cust.ID)
	s.NoError(err)
	s.Len(history, 1)
}

func (s *CustomerServiceSuite) TestCreateRecordsAudit() {
	s.createCustomer("Kfz-Versicherung")

	entries, err := s.params.AuditRepo.List(s.GetContext(), 1)
	s.NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(types.AuditActionCustomerCreated, entries[0].Action)
}

func (s *CustomerServiceSuite) TestGetUnknownCustomer() {
	_, err := s.customers.Get(s.GetContext(), "VN-25999999")
	s.True(ierr.IsNotFound(err))
}
