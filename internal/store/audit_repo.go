package store

import (
	"context"

	"github.com/insuranceguard/insuranceguard/internal/domain/audit"
)

type auditRepository struct {
	s *Store
}

// AuditRepo returns the action log repository backed by this store.
func (s *Store) AuditRepo() audit.Repository {
	return &auditRepository{s: s}
}

func (r *auditRepository) Append(ctx context.Context, e *audit.Entry) error {
	return r.s.update(ctx, func(d *Dataset) error {
		d.AuditLog = append(d.AuditLog, e.Clone())
		return nil
	})
}

func (r *auditRepository) List(ctx context.Context, limit int) ([]*audit.Entry, error) {
	d := r.s.dataset(ctx)
	n := len(d.AuditLog)
	if limit <= 0 || limit > n {
		limit = n
	}
	// newest first
	result := make([]*audit.Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, d.AuditLog[i].Clone())
	}
	return result, nil
}
