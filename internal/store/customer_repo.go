package store

import (
	"context"
	"sort"

	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

type customerRepository struct {
	s *Store
}

// CustomerRepo returns the customer repository backed by this store.
func (s *Store) CustomerRepo() customer.Repository {
	return &customerRepository{s: s}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Customers[c.ID]; exists {
			return ierr.NewError("customer id already taken").
				WithHintf("A customer with ID %s already exists", c.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		d.Customers[c.ID] = c.Clone()
		return nil
	})
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	d := r.s.dataset(ctx)
	c, exists := d.Customers[id]
	if !exists {
		return nil, ierr.NewError("customer not found").
			WithHintf("No customer record with ID %s", id).
			Mark(ierr.ErrNotFound)
	}
	return c.Clone(), nil
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return r.s.update(ctx, func(d *Dataset) error {
		if _, exists := d.Customers[c.ID]; !exists {
			return ierr.NewError("customer not found").
				WithHintf("No customer record with ID %s", c.ID).
				Mark(ierr.ErrNotFound)
		}
		d.Customers[c.ID] = c.Clone()
		return nil
	})
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	d := r.s.dataset(ctx)
	result := make([]*customer.Customer, 0, len(d.Customers))
	for _, c := range d.Customers {
		result = append(result, c.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
