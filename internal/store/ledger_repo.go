package store

import (
	"context"

	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

type ledgerRepository struct {
	s *Store
}

// LedgerRepo returns the balance history repository backed by this store.
func (s *Store) LedgerRepo() ledger.Repository {
	return &ledgerRepository{s: s}
}

func (r *ledgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Customers[e.CustomerID]; !exists {
			return ierr.NewError("customer not found").
				WithHintf("No customer record with ID %s", e.CustomerID).
				Mark(ierr.ErrNotFound)
		}
		d.Ledger[e.CustomerID] = append(d.Ledger[e.CustomerID], e.Clone())
		return nil
	})
}

func (r *ledgerRepository) ListByCustomer(ctx context.Context, customerID string) ([]*ledger.Entry, error) {
	d := r.s.dataset(ctx)
	entries := d.Ledger[customerID]
	result := make([]*ledger.Entry, len(entries))
	for i, e := range entries {
		result[i] = e.Clone()
	}
	return result, nil
}
