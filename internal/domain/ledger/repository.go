package ledger

import "context"

// Repository provides access to the append-only balance history.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// ListByCustomer returns the customer's entries in append order.
	ListByCustomer(ctx context.Context, customerID string) ([]*Entry, error)
}
