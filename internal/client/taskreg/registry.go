// Package taskreg deduplicates asynchronous work by key.
//
// The registry owns a map from task key to a single in-flight operation.
// Callers that request work for a key already running receive a handle to the
// same operation instead of starting a duplicate. Cancellation is reference
// counted: each caller releases its own handle, and the underlying operation
// is cancelled only when the last interested caller has released. On
// completion the key is evicted so a later call starts fresh work.
package taskreg

import (
	"context"
	"sync"
)

// Producer performs the actual work. The passed context is cancelled when
// every caller has released its handle before completion.
type Producer func(ctx context.Context) (any, error)

// Registry maps task keys to shared in-flight operations.
type Registry struct {
	mu    sync.Mutex
	tasks map[string]*task
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
	result any
	err    error
	refs   int
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{tasks: make(map[string]*task)}
}

// Do returns a handle to the in-flight operation for key, starting produce
// in a new goroutine if none is running.
func (r *Registry) Do(key string, produce Producer) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tasks[key]; ok {
		t.refs++
		return &Handle{reg: r, t: t}
	}

	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{}), refs: 1}
	r.tasks[key] = t

	go func() {
		result, err := produce(ctx)
		cancel()

		r.mu.Lock()
		t.result, t.err = result, err
		if r.tasks[key] == t {
			delete(r.tasks, key)
		}
		r.mu.Unlock()

		close(t.done)
	}()

	return &Handle{reg: r, t: t}
}

// Lookup joins the in-flight operation for key without starting one.
// The second return is false when nothing is running for the key.
func (r *Registry) Lookup(key string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[key]
	if !ok {
		return nil, false
	}
	t.refs++
	return &Handle{reg: r, t: t}, true
}

// Running reports whether an operation for key is currently in flight.
func (r *Registry) Running(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tasks[key]
	return ok
}

// Handle is one caller's reference to a shared operation.
type Handle struct {
	reg  *Registry
	t    *task
	once sync.Once
}

// Wait blocks until the operation completes or ctx is done. Waiting callers
// abandoning via ctx should still Release the handle.
func (h *Handle) Wait(ctx context.Context) (any, error) {
	select {
	case <-h.t.done:
		return h.t.result, h.t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release drops this caller's interest. When the last handle for a still
// running operation is released, the producer's context is cancelled.
// Release is idempotent per handle.
func (h *Handle) Release() {
	h.once.Do(func() {
		h.reg.mu.Lock()
		defer h.reg.mu.Unlock()

		h.t.refs--
		if h.t.refs > 0 {
			return
		}
		select {
		case <-h.t.done:
		default:
			h.t.cancel()
		}
	})
}
