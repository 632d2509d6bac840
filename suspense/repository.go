// Package suspense implements the read-through cache behind generated
// suspense hooks. A Repository owns one key→value mapping for one operation:
// Read returns the cached value synchronously on a hit, and on a miss starts
// an asynchronous fetch and reports Pending so a suspending scheduler can
// park the caller and retry once the fetch settles.
//
// Resolved entries are never evicted, expired, or overwritten. Failed
// fetches cache nothing, so the next Read for the same key retries from
// scratch. By default concurrent reads of the same unresolved key each start
// their own fetch; WithInflightSharing opts in to collapsing them onto a
// single execution.
package suspense

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/Tyson-Skiba/codegen-apollo-suspense/observability/tracing"
)

// FetchFunc produces the value for one argument tuple. It is treated as an
// opaque asynchronous computation; the repository never retries or cancels
// it.
type FetchFunc[T any] func(ctx context.Context, args ...any) (T, error)

// KeyFunc derives the cache key for an argument tuple.
type KeyFunc func(args []any) string

// Repository is a suspension-compatible read-through cache. One instance is
// created per generated operation and lives for the life of the process.
type Repository[T any] struct {
	fetch  FetchFunc[T]
	key    KeyFunc
	share  bool
	tracer tracing.Tracer

	mu      sync.Mutex
	entries map[string]T
	group   singleflight.Group
}

// Option configures a Repository at construction time.
type Option[T any] func(*Repository[T])

// WithKeyFunc overrides the key derivation strategy. Generated wirings use
// this to install the variables-joining override.
func WithKeyFunc[T any](fn KeyFunc) Option[T] {
	return func(r *Repository[T]) {
		if fn != nil {
			r.key = fn
		}
	}
}

// WithInflightSharing collapses concurrent reads of the same unresolved key
// onto a single fetch execution. Without it the repository reproduces the
// historical behavior: every miss starts its own fetch, even while an
// earlier fetch for the same key is still in flight.
func WithInflightSharing[T any]() Option[T] {
	return func(r *Repository[T]) { r.share = true }
}

// WithTracer emits a span per fetch invocation.
func WithTracer[T any](tracer tracing.Tracer) Option[T] {
	return func(r *Repository[T]) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewRepository builds a repository around the provided fetch function. The
// key strategy defaults to DefaultKey.
func NewRepository[T any](fetch FetchFunc[T], opts ...Option[T]) *Repository[T] {
	repo := &Repository[T]{
		fetch:   fetch,
		key:     DefaultKey,
		tracer:  tracing.NoopTracer{},
		entries: make(map[string]T),
	}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Read resolves the argument tuple to a key and returns one of three
// outcomes: Ready with the cached value, or Pending with a handle to an
// in-flight fetch. A pending result settles into Ready or Failed once its
// Done channel closes; Failed leaves the key absent so a later Read retries.
func (r *Repository[T]) Read(ctx context.Context, args ...any) Result[T] {
	key := r.key(args)
	r.mu.Lock()
	if value, ok := r.entries[key]; ok {
		r.mu.Unlock()
		return ready(value)
	}
	r.mu.Unlock()

	fl := &flight[T]{done: make(chan struct{})}
	if r.share {
		ch := r.group.DoChan(key, func() (any, error) {
			return r.invoke(ctx, key, args)
		})
		go r.settleShared(key, fl, ch)
	} else {
		go r.settle(ctx, key, fl, args)
	}
	return pending(fl)
}

// Len reports the number of resolved entries.
func (r *Repository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Contains reports whether a resolved value exists for key.
func (r *Repository[T]) Contains(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

func (r *Repository[T]) invoke(ctx context.Context, key string, args []any) (T, error) {
	fetchCtx, span := r.tracer.Start(ctx, "suspense.fetch", tracing.Attribute{Key: "cache.key", Value: key})
	value, err := r.fetch(fetchCtx, args...)
	span.End(err)
	return value, err
}

func (r *Repository[T]) settle(ctx context.Context, key string, fl *flight[T], args []any) {
	value, err := r.invoke(ctx, key, args)
	r.resolve(key, fl, value, err)
}

func (r *Repository[T]) settleShared(key string, fl *flight[T], ch <-chan singleflight.Result) {
	res := <-ch
	var value T
	if res.Err == nil {
		value, _ = res.Val.(T)
	}
	r.resolve(key, fl, value, res.Err)
}

// resolve records a successful fetch and settles the flight. The first
// resolution for a key wins; later duplicates observe the stored value so a
// key never remaps once resolved.
func (r *Repository[T]) resolve(key string, fl *flight[T], value T, err error) {
	if err != nil {
		fl.err = err
		close(fl.done)
		return
	}
	r.mu.Lock()
	stored, ok := r.entries[key]
	if !ok {
		r.entries[key] = value
		stored = value
	}
	r.mu.Unlock()
	fl.value = stored
	close(fl.done)
}

// Await reads in a loop until the value is ready or the fetch fails. It is
// the non-suspending entry point for callers without a parking scheduler.
func Await[T any](ctx context.Context, repo *Repository[T], args ...any) (T, error) {
	var zero T
	for {
		res := repo.Read(ctx, args...)
		switch res.State() {
		case StateReady:
			return res.Value(), nil
		case StateFailed:
			return zero, res.Err()
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-res.Done():
		}
		settled := res.Settle()
		switch settled.State() {
		case StateReady:
			return settled.Value(), nil
		case StateFailed:
			return zero, settled.Err()
		}
	}
}
