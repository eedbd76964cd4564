package testutil

import (
	"context"
	"sync"

	"github.com/insuranceguard/insuranceguard/internal/notifier"
)

// CaptureNotifier records every notification instead of delivering it. It
// can simulate delivery failure to verify that mutations still commit.
type CaptureNotifier struct {
	mu       sync.Mutex
	captured []*notifier.Notification
	err      error
}

func NewCaptureNotifier() *CaptureNotifier {
	return &CaptureNotifier{}
}

func (c *CaptureNotifier) Notify(ctx context.Context, n *notifier.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captured = append(c.captured, n)
	return c.err
}

// FailWith makes every subsequent Notify return err.
func (c *CaptureNotifier) FailWith(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Captured returns all recorded notifications in delivery order.
func (c *CaptureNotifier) Captured() []*notifier.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]*notifier.Notification, len(c.captured))
	copy(result, c.captured)
	return result
}

// ByTarget returns recorded notifications for one target.
func (c *CaptureNotifier) ByTarget(target notifier.Target) []*notifier.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	var result []*notifier.Notification
	for _, n := range c.captured {
		if n.Target == target {
			result = append(result, n)
		}
	}
	return result
}

// Reset drops everything recorded so far.
func (c *CaptureNotifier) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.captured = nil
	c.err = nil
}
