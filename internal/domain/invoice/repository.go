package invoice

import "context"

// Repository provides access to invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	List(ctx context.Context) ([]*Invoice, error)
	// ListUnpaid returns invoices that have not been settled, in stable ID
	// order so sweep runs are deterministic.
	ListUnpaid(ctx context.Context) ([]*Invoice, error)
}
