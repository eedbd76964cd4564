package payout

import "context"

// Repository provides access to payout requests.
type Repository interface {
	Create(ctx context.Context, p *PayoutRequest) error
	Get(ctx context.Context, id string) (*PayoutRequest, error)
	Update(ctx context.Context, p *PayoutRequest) error
	ListPending(ctx context.Context) ([]*PayoutRequest, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*PayoutRequest, error)
}
