package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// CustomerService manages policy records. Records are never deleted:
// closing one archives it with its full history intact.
type CustomerService interface {
	Create(ctx context.Context, name, accountRef, paymentHandle string, policies []string) (*customer.Customer, error)
	Archive(ctx context.Context, customerID string) (*customer.Customer, error)
	Get(ctx context.Context, customerID string) (*customer.Customer, error)
	List(ctx context.Context) ([]*customer.Customer, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) Create(ctx context.Context, name, accountRef, paymentHandle string, policies []string) (*customer.Customer, error) {
	premium, err := customer.PremiumFor(policies)
	if err != nil {
		return nil, err
	}

	var cust *customer.Customer
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		now := s.Clock.Now()
		for attempt := 0; ; attempt++ {
			id, err := s.IDGen.Generate(types.IDKindCustomer)
			if err != nil {
				return err
			}
			cust = &customer.Customer{
				ID:             id,
				Name:           name,
				AccountRef:     accountRef,
				PaymentHandle:  paymentHandle,
				Policies:       append([]string(nil), policies...),
				MonthlyPremium: premium,
				Status:         types.StatusActive,
				Balance:        decimal.Zero,
				BaseModel:      types.NewBaseModel(ctx, now),
			}
			if err := cust.Validate(); err != nil {
				return err
			}
			err = s.CustomerRepo.Create(ctx, cust)
			if err == nil {
				break
			}
			if !ierr.IsAlreadyExists(err) || attempt+1 >= maxIDAttempts {
				return err
			}
		}

		return s.appendAudit(ctx, types.AuditActionCustomerCreated, types.Metadata{
			"customer_id":     cust.ID,
			"name":            name,
			"monthly_premium": premium.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "📁 Neue Kundenakte angelegt",
		Color:  notifier.ColorInfo,
		Fields: []notifier.Field{
			{Name: "Kunden-ID", Value: cust.ID, Inline: true},
			{Name: "Name", Value: name, Inline: true},
			{Name: "Monatsbeitrag", Value: formatAmount(premium), Inline: true},
		},
	})
	return cust, nil
}

func (s *customerService) Archive(ctx context.Context, customerID string) (*customer.Customer, error) {
	var cust *customer.Customer
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		cust, err = s.CustomerRepo.Get(ctx, customerID)
		if err != nil {
			return err
		}
		if cust.IsArchived() {
			return ierr.NewError("customer already archived").
				WithHintf("Customer %s is already archived", customerID).
				Mark(ierr.ErrInvalidOperation)
		}

		now := s.Clock.Now()
		cust.Status = types.StatusArchived
		cust.UpdatedAt = now
		cust.UpdatedBy = types.GetActorID(ctx)
		if err := s.CustomerRepo.Update(ctx, cust); err != nil {
			return err
		}

		return s.appendAudit(ctx, types.AuditActionCustomerArchived, types.Metadata{
			"customer_id": customerID,
			"name":        cust.Name,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "🗄️ Kundenakte archiviert",
		Color:  notifier.ColorWarning,
		Fields: []notifier.Field{
			{Name: "Kunden-ID", Value: cust.ID, Inline: true},
			{Name: "Name", Value: cust.Name, Inline: true},
		},
	})
	return cust, nil
}

func (s *customerService) Get(ctx context.Context, customerID string) (*customer.Customer, error) {
	return s.CustomerRepo.Get(ctx, customerID)
}

func (s *customerService) List(ctx context.Context) ([]*customer.Customer, error) {
	return s.CustomerRepo.List(ctx)
}
