package testutil

import (
	"context"
	"sync"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/store"
)

// InMemoryGateway is a dataset gateway that persists to memory only. It can
// be told to fail the next save to exercise the save-then-swap rollback.
type InMemoryGateway struct {
	mu        sync.Mutex
	saved     *store.Dataset
	saveCount int
	failNext  bool
}

func NewInMemoryGateway() *InMemoryGateway {
	return &InMemoryGateway{}
}

func (g *InMemoryGateway) Load(ctx context.Context) (*store.Dataset, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saved == nil {
		return store.NewDataset(), nil
	}
	return g.saved.Clone(), nil
}

func (g *InMemoryGateway) Save(ctx context.Context, d *store.Dataset) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failNext {
		g.failNext = false
		return ierr.NewError("simulated save failure").
			WithHint("Simulated save failure").
			Mark(ierr.ErrIO)
	}
	g.saved = d.Clone()
	g.saveCount++
	return nil
}

// FailNextSave makes the next Save call return an IO error.
func (g *InMemoryGateway) FailNextSave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failNext = true
}

// SaveCount returns how many saves succeeded.
func (g *InMemoryGateway) SaveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saveCount
}

// Saved returns the last successfully saved dataset.
func (g *InMemoryGateway) Saved() *store.Dataset {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.saved == nil {
		return nil
	}
	return g.saved.Clone()
}
