package suspense

// State classifies the outcome of a repository read.
type State int

const (
	// StateReady means the value was cached and is available synchronously.
	StateReady State = iota
	// StatePending means a fetch is in flight; wait on Done, then Settle.
	StatePending
	// StateFailed means the suspended computation rejected. The key remains
	// absent, so a later Read retries the fetch.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StatePending:
		return "pending"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// flight tracks one asynchronous fetch from start to settlement. Its value
// and err fields are written exactly once, before done is closed.
type flight[T any] struct {
	done  chan struct{}
	value T
	err   error
}

func (f *flight[T]) settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result is the three-valued outcome of Repository.Read. A Result is never
// delivered by panicking; schedulers branch on State instead of recovering
// control flow.
type Result[T any] struct {
	state  State
	value  T
	err    error
	flight *flight[T]
}

func ready[T any](value T) Result[T] {
	return Result[T]{state: StateReady, value: value}
}

func pending[T any](fl *flight[T]) Result[T] {
	return Result[T]{state: StatePending, flight: fl}
}

func failed[T any](err error) Result[T] {
	return Result[T]{state: StateFailed, err: err}
}

// State reports which of the three outcomes this result carries.
func (r Result[T]) State() State { return r.state }

// Ready reports whether the value is available synchronously.
func (r Result[T]) Ready() bool { return r.state == StateReady }

// Value returns the cached value. It is the zero value unless Ready.
func (r Result[T]) Value() T { return r.value }

// Err returns the rejection error. It is nil unless the result is Failed.
func (r Result[T]) Err() error { return r.err }

// Done exposes the completion channel of a pending fetch. It is nil unless
// the result is Pending. The channel closes when the fetch settles, after
// which Settle yields the terminal outcome.
func (r Result[T]) Done() <-chan struct{} {
	if r.flight == nil {
		return nil
	}
	return r.flight.done
}

// Settle converts a pending result whose fetch has completed into a Ready or
// Failed result. Results that are not pending, or whose fetch is still in
// flight, are returned unchanged.
func (r Result[T]) Settle() Result[T] {
	if r.state != StatePending || r.flight == nil || !r.flight.settled() {
		return r
	}
	if r.flight.err != nil {
		return failed[T](r.flight.err)
	}
	return ready(r.flight.value)
}
