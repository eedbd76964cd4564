package testutil

import "sync"

// SequenceRandomSource hands out pre-seeded suffixes in order and falls
// back to a counter-derived suffix when the sequence is exhausted. Lets
// tests force ID collisions deterministically.
type SequenceRandomSource struct {
	mu      sync.Mutex
	queue   []string
	counter int
}

func NewSequenceRandomSource(seed ...string) *SequenceRandomSource {
	return &SequenceRandomSource{queue: seed}
}

func (r *SequenceRandomSource) Pick(alphabet string, n int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		return next
	}
	r.counter++
	out := make([]byte, n)
	v := r.counter
	for i := n - 1; i >= 0; i-- {
		out[i] = alphabet[v%len(alphabet)]
		v /= len(alphabet)
	}
	return string(out)
}

// Enqueue appends suffixes to be returned before counter-derived ones.
func (r *SequenceRandomSource) Enqueue(suffixes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, suffixes...)
}
