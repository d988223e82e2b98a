package resource

import "context"

// Status describes where a cached resource is in its lifecycle.
// Entries move idle -> loading -> resolved|failed and re-enter loading on
// invalidation. They are never destroyed; an entry lives as long as the
// cache that owns it.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusLoading  Status = "loading"
	StatusResolved Status = "resolved"
	StatusFailed   Status = "failed"
)

// FetchFn is the function signature the cache expects when fetching a
// resource from its source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// Snapshot is a point-in-time view of a cached resource. While a refresh is
// in flight the previously resolved value stays readable (HasValue true,
// Status loading).
type Snapshot[T any] struct {
	Value    T
	HasValue bool
	Status   Status
	Err      error
}

// Subscriber receives a snapshot on every status transition of its key.
type Subscriber[T any] func(Snapshot[T])
