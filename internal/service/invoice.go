package service

import (
	"context"

	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// InvoiceService issues and settles invoices. The dunning engine owns every
// other invoice mutation.
type InvoiceService interface {
	// Issue bills the customer's aggregate monthly premium: 5% tax on top,
	// due in 3 days, stage 0, unpaid.
	Issue(ctx context.Context, customerID string) (*invoice.Invoice, error)

	// MarkPaid settles the invoice. Terminal: repeated calls are rejected
	// as already settled.
	MarkPaid(ctx context.Context, invoiceID string) (*invoice.Invoice, error)

	Get(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
	List(ctx context.Context) ([]*invoice.Invoice, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) Issue(ctx context.Context, customerID string) (*invoice.Invoice, error) {
	var (
		inv        *invoice.Invoice
		accountRef string
	)
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		cust, err := s.CustomerRepo.Get(ctx, customerID)
		if err != nil {
			return err
		}
		if cust.IsArchived() {
			return ierr.NewError("customer is archived").
				WithHintf("Customer %s is archived and cannot be billed", customerID).
				Mark(ierr.ErrInvalidOperation)
		}
		accountRef = cust.AccountRef

		now := s.Clock.Now()
		for attempt := 0; ; attempt++ {
			id, err := s.IDGen.Generate(types.IDKindInvoice)
			if err != nil {
				return err
			}
			inv = invoice.New(id, customerID, cust.MonthlyPremium, now)
			inv.BaseModel = types.NewBaseModel(ctx, now)
			if err := inv.Validate(); err != nil {
				return err
			}
			err = s.InvoiceRepo.Create(ctx, inv)
			if err == nil {
				break
			}
			if !ierr.IsAlreadyExists(err) || attempt+1 >= maxIDAttempts {
				return err
			}
		}

		return s.appendAudit(ctx, types.AuditActionInvoiceIssued, types.Metadata{
			"invoice_id":  inv.ID,
			"customer_id": customerID,
			"net":         inv.AmountNet.StringFixed(2),
			"tax":         inv.AmountTax.StringFixed(2),
			"gross":       inv.AmountGross.StringFixed(2),
			"due_date":    inv.DueDate.Format("02.01.2006"),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target:      notifier.TargetInvoices,
		Recipient:   accountRef,
		Title:       "🧾 Versicherungsrechnung",
		Description: "Zahlungsaufforderung für Versicherungsbeiträge",
		Color:       notifier.ColorPrimary,
		Fields: []notifier.Field{
			{Name: "Rechnungsnummer", Value: inv.ID, Inline: true},
			{Name: "Fällig am", Value: inv.DueDate.Format("02.01.2006"), Inline: true},
			{Name: "Zwischensumme (Netto)", Value: formatAmount(inv.AmountNet), Inline: true},
			{Name: "Steuer (5%)", Value: formatAmount(inv.AmountTax), Inline: true},
			{Name: "Rechnungsbetrag", Value: formatAmount(inv.AmountGross), Inline: true},
		},
		Footer: "Rechnung " + inv.ID,
	})
	return inv, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.InvoiceRepo.Get(ctx, invoiceID)
		if err != nil {
			return err
		}
		if err := inv.MarkPaid(s.Clock.Now()); err != nil {
			return err
		}
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		return s.appendAudit(ctx, types.AuditActionInvoicePaid, types.Metadata{
			"invoice_id":  inv.ID,
			"customer_id": inv.CustomerID,
			"gross":       inv.AmountGross.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "✅ Rechnung bezahlt",
		Color:  notifier.ColorSuccess,
		Fields: []notifier.Field{
			{Name: "Rechnungsnummer", Value: inv.ID, Inline: true},
			{Name: "Betrag", Value: formatAmount(inv.AmountGross), Inline: true},
		},
	})
	return inv, nil
}

func (s *invoiceService) Get(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	return s.InvoiceRepo.Get(ctx, invoiceID)
}

func (s *invoiceService) List(ctx context.Context) ([]*invoice.Invoice, error) {
	return s.InvoiceRepo.List(ctx)
}
