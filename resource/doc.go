// Package resource implements a per-key cache for remote collections with
// explicit fetch state.
//
// Each key holds at most one value plus its lifecycle status (idle, loading,
// resolved, failed). Reads are lazy: the first Read for a key triggers a
// fetch, and any number of concurrent readers share that single in-flight
// call. While a refresh is running the previously resolved value stays
// readable, so consumers can keep rendering stale data until fresh data
// lands.
//
// # Invalidation
//
// Invalidate bumps the entry's generation and starts a new fetch even when
// one is already in flight. The running fetch is never reused for the
// invalidation: it may have started before whatever mutation prompted the
// refresh, so its result cannot be trusted to reflect the post-mutation
// state. When it lands it is discarded; only the newest generation's result
// is stored.
//
// # Subscriptions
//
// Subscribe attaches a callback per key that fires on every status
// transition, delivered in the order the transitions occurred. Detaching is
// safe at any time and does not cancel a fetch;
// fetches always run to completion because other subscribers, or a future
// read, may still depend on the result.
//
// # Failure policy
//
// A failed fetch is stored as a failed status with its error and is not
// retried automatically. The next Read, Wait or Invalidate starts a fresh
// fetch and can clear the failed state.
package resource
