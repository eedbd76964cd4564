package store

import (
	"context"
	"sync"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/logger"
)

// Gateway loads and saves the whole dataset as one snapshot. Load and Save
// are all-or-nothing; the store never assumes partial persistence.
type Gateway interface {
	Load(ctx context.Context) (*Dataset, error)
	Save(ctx context.Context, d *Dataset) error
}

type txKeyType struct{}

var txKey = txKeyType{}

// Store holds the in-memory dataset and serializes every mutation through a
// single commit path. The commit sequence is: clone the committed dataset,
// apply the mutation to the clone, save the clone through the gateway, then
// swap it in. Two concurrent debits therefore can never both pass a balance
// check the committed state does not support.
type Store struct {
	mu      sync.RWMutex
	data    *Dataset
	gateway Gateway
	logger  *logger.Logger
}

// Open loads the persisted dataset and returns a store over it.
func Open(ctx context.Context, gateway Gateway, log *logger.Logger) (*Store, error) {
	data, err := gateway.Load(ctx)
	if err != nil {
		return nil, err
	}
	data.Normalize()
	return &Store{
		data:    data,
		gateway: gateway,
		logger:  log,
	}, nil
}

// WithTx runs fn inside one serialized commit. All repository calls made
// with the returned context operate on the same working copy; the copy is
// persisted and swapped in only when fn returns nil and the save succeeds.
// Nested WithTx calls join the enclosing commit.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txDataset(ctx) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.data.Clone()
	txCtx := context.WithValue(ctx, txKey, working)

	if err := fn(txCtx); err != nil {
		return err
	}

	if err := s.gateway.Save(ctx, working); err != nil {
		s.logger.Errorw("dataset save failed, commit rolled back", "error", err)
		return ierr.WithError(err).
			WithHint("Could not persist the change, nothing was applied").
			Mark(ierr.ErrIO)
	}

	s.data = working
	return nil
}

// dataset resolves the dataset a repository call should read: the working
// copy inside a transaction, the committed state otherwise.
func (s *Store) dataset(ctx context.Context) *Dataset {
	if d := txDataset(ctx); d != nil {
		return d
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// update applies a mutation: inside a transaction it joins the enclosing
// commit, otherwise it runs as its own single-operation commit.
func (s *Store) update(ctx context.Context, fn func(d *Dataset) error) error {
	if d := txDataset(ctx); d != nil {
		return fn(d)
	}
	return s.WithTx(ctx, func(ctx context.Context) error {
		return fn(txDataset(ctx))
	})
}

func txDataset(ctx context.Context) *Dataset {
	if d, ok := ctx.Value(txKey).(*Dataset); ok {
		return d
	}
	return nil
}
