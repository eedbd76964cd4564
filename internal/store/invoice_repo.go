package store

import (
	"context"
	"sort"

	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

type invoiceRepository struct {
	s *Store
}

// InvoiceRepo returns the invoice repository backed by this store.
func (s *Store) InvoiceRepo() invoice.Repository {
	return &invoiceRepository{s: s}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Invoices[inv.ID]; exists {
			return ierr.NewError("invoice id already taken").
				WithHintf("An invoice with ID %s already exists", inv.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		d.Invoices[inv.ID] = inv.Clone()
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	d := r.s.dataset(ctx)
	inv, exists := d.Invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithHintf("No invoice with ID %s", id).
			Mark(ierr.ErrNotFound)
	}
	return inv.Clone(), nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Invoices[inv.ID]; !exists {
			return ierr.NewError("invoice not found").
				WithHintf("No invoice with ID %s", inv.ID).
				Mark(ierr.ErrNotFound)
		}
		d.Invoices[inv.ID] = inv.Clone()
		return nil
	})
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	d := r.s.dataset(ctx)
	result := make([]*invoice.Invoice, 0, len(d.Invoices))
	for _, inv := range d.Invoices {
		result = append(result, inv.Clone())
	}
	sortInvoices(result)
	return result, nil
}

func (r *invoiceRepository) ListUnpaid(ctx context.Context) ([]*invoice.Invoice, error) {
	d := r.s.dataset(ctx)
	result := make([]*invoice.Invoice, 0)
	for _, inv := range d.Invoices {
		if !inv.Paid {
			result = append(result, inv.Clone())
		}
	}
	sortInvoices(result)
	return result, nil
}

func sortInvoices(invs []*invoice.Invoice) {
	sort.Slice(invs, func(i, j int) bool { return invs[i].ID < invs[j].ID })
}
