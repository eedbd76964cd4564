package store

import (
	"context"
	"sort"

	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

type payoutRepository struct {
	s *Store
}

// PayoutRepo returns the payout request repository backed by this store.
func (s *Store) PayoutRepo() payout.Repository {
	return &payoutRepository{s: s}
}

func (r *payoutRepository) Create(ctx context.Context, p *payout.PayoutRequest) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Payouts[p.ID]; exists {
			return ierr.NewError("payout id already taken").
				WithHintf("A payout request with ID %s already exists", p.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		d.Payouts[p.ID] = p.Clone()
		return nil
	})
}

func (r *payoutRepository) Get(ctx context.Context, id string) (*payout.PayoutRequest, error) {
	d := r.s.dataset(ctx)
	p, exists := d.Payouts[id]
	if !exists {
		return nil, ierr.NewError("payout request not found").
			WithHintf("No payout request with ID %s", id).
			Mark(ierr.ErrNotFound)
	}
	return p.Clone(), nil
}

func (r *payoutRepository) Update(ctx context.Context, p *payout.PayoutRequest) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Payouts[p.ID]; !exists {
			return ierr.NewError("payout request not found").
				WithHintf("No payout request with ID %s", p.ID).
				Mark(ierr.ErrNotFound)
		}
		d.Payouts[p.ID] = p.Clone()
		return nil
	})
}

func (r *payoutRepository) ListPending(ctx context.Context) ([]*payout.PayoutRequest, error) {
	d := r.s.dataset(ctx)
	result := make([]*payout.PayoutRequest, 0)
	for _, p := range d.Payouts {
		if !p.Status.IsResolved() {
			result = append(result, p.Clone())
		}
	}
	sortPayouts(result)
	return result, nil
}

func (r *payoutRepository) ListByCustomer(ctx context.Context, customerID string) ([]*payout.PayoutRequest, error) {
	d := r.s.dataset(ctx)
	result := make([]*payout.PayoutRequest, 0)
	for _, p := range d.Payouts {
		if p.CustomerID == customerID {
			result = append(result, p.Clone())
		}
	}
	sortPayouts(result)
	return result, nil
}

func sortPayouts(ps []*payout.PayoutRequest) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}
