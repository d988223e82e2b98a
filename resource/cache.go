package resource

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ErrNoFetcher is returned by Wait when a key has never been given a fetch
// function, so there is nothing to read through to.
var ErrNoFetcher = errors.New("resource: no fetch function registered for key")

// errFlightSuperseded is returned by a flight whose generation was settled
// or invalidated before its fetch began. Nothing observes the value; callers
// re-read the entry after the flight completes.
var errFlightSuperseded = errors.New("resource: flight superseded")

// Cache holds one entry per resource key. All fetches go through a
// singleflight group keyed by (key, generation): concurrent triggers and
// waiters for the same generation share a single remote call, and an
// invalidation issued while a fetch is in flight always starts a fresh call
// under the next generation. A flight whose generation is no longer current
// has its result discarded.
type Cache[T any] struct {
	entries *xsync.MapOf[string, *entry[T]]
	flight  singleflight.Group
	log     zerolog.Logger
}

type entry[T any] struct {
	mu       sync.Mutex
	fetch    FetchFn[T]
	status   Status
	value    T
	hasValue bool
	err      error

	gen        uint64 // bumped by Invalidate; flights carry the gen they started with
	loading    bool
	loadingGen uint64

	subs    map[uint64]Subscriber[T]
	nextSub uint64

	// notices queued under mu so subscribers observe transitions in order.
	queue    []notice[T]
	draining bool
}

type notice[T any] struct {
	snap Snapshot[T]
	subs []Subscriber[T]
}

// New creates an empty cache. The logger may be zerolog.Nop().
func New[T any](log zerolog.Logger) *Cache[T] {
	return &Cache[T]{
		entries: xsync.NewMapOf[string, *entry[T]](),
		log:     log,
	}
}

// Read returns the current snapshot for key, creating the entry on first
// use. An idle or failed entry triggers a fetch; a loading entry is left
// attached to the call already in flight. The returned snapshot reflects
// the state after any triggered fetch has been started.
func (c *Cache[T]) Read(ctx context.Context, key string, fetch FetchFn[T]) Snapshot[T] {
	e := c.ensure(key)

	e.mu.Lock()
	if fetch != nil {
		e.fetch = fetch
	}
	if e.status == StatusIdle || e.status == StatusFailed {
		c.startFlightLocked(ctx, key, e)
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	c.drain(e)
	return snap
}

// Wait reads through the cache, blocking until the entry settles. It
// triggers at most one fetch per call: an idle or failed entry gets a fresh
// fetch, a loading entry joins the flight already underway. The context
// cancels the wait only, never the fetch itself.
func (c *Cache[T]) Wait(ctx context.Context, key string, fetch FetchFn[T]) (T, error) {
	var zero T
	triggered := false

	for {
		e := c.ensure(key)

		e.mu.Lock()
		if fetch != nil {
			e.fetch = fetch
			fetch = nil
		}
		if e.status == StatusIdle || (e.status == StatusFailed && !triggered) {
			triggered = c.startFlightLocked(ctx, key, e) || triggered
		}

		if e.loading {
			// DoChan never blocks, so joining under the lock is safe; it
			// pins the flight before settle can retire it.
			fn := c.flightFn(key, e, e.loadingGen, e.fetch, context.WithoutCancel(ctx))
			ch := c.flight.DoChan(flightKey(key, e.loadingGen), fn)
			e.mu.Unlock()

			c.drain(e)
			select {
			case <-ch:
				continue
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		switch e.status {
		case StatusResolved:
			v := e.value
			e.mu.Unlock()
			return v, nil
		case StatusFailed:
			err := e.err
			e.mu.Unlock()
			return zero, err
		default:
			e.mu.Unlock()
			return zero, ErrNoFetcher
		}
	}
}

// Peek returns the current snapshot without triggering a fetch.
func (c *Cache[T]) Peek(key string) Snapshot[T] {
	e, ok := c.entries.Load(key)
	if !ok {
		return Snapshot[T]{Status: StatusIdle}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Invalidate marks the entry stale and immediately starts a fresh fetch,
// regardless of current status. A fetch already in flight keeps running but
// its result is discarded when it lands; the post-invalidation fetch is the
// one ultimately observed as current. Returns false when the key has no
// entry or no fetch function, in which case there is nothing to refresh.
func (c *Cache[T]) Invalidate(ctx context.Context, key string) bool {
	e, ok := c.entries.Load(key)
	if !ok {
		return false
	}

	e.mu.Lock()
	if e.fetch == nil {
		e.mu.Unlock()
		return false
	}
	e.gen++
	c.startFlightLocked(ctx, key, e)
	e.mu.Unlock()

	c.log.Debug().Str("key", key).Msg("resource invalidated")
	c.drain(e)
	return true
}

// Subscribe registers fn for every status transition on key, creating the
// entry if needed. The returned stop function detaches the subscriber; it
// is safe to call at any time and never cancels a fetch.
func (c *Cache[T]) Subscribe(key string, fn Subscriber[T]) func() {
	e := c.ensure(key)

	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (c *Cache[T]) ensure(key string) *entry[T] {
	e, _ := c.entries.LoadOrCompute(key, func() *entry[T] {
		return &entry[T]{
			status: StatusIdle,
			subs:   make(map[uint64]Subscriber[T]),
		}
	})
	return e
}

func flightKey(key string, gen uint64) string {
	return key + "#" + strconv.FormatUint(gen, 10)
}

// startFlightLocked announces a flight for the entry's current generation
// and launches it through the singleflight group. Callers must hold e.mu.
// Deduplication is the group's: any waiter joining via DoChan before the
// launch goroutine runs simply becomes the flight's executor.
func (c *Cache[T]) startFlightLocked(ctx context.Context, key string, e *entry[T]) bool {
	if e.fetch == nil {
		return false
	}
	if e.loading && e.loadingGen == e.gen {
		return false // flight for this generation already announced
	}

	gen := e.gen
	e.loading = true
	e.loadingGen = gen
	e.status = StatusLoading
	e.err = nil
	e.enqueueLocked()

	// The fetch runs to completion even if the triggering caller goes away;
	// other subscribers or a later read may depend on its result.
	fn := c.flightFn(key, e, gen, e.fetch, context.WithoutCancel(ctx))

	c.log.Debug().Str("key", key).Uint64("gen", gen).Msg("resource fetch started")

	go c.flight.Do(flightKey(key, gen), fn)
	return true
}

// flightFn wraps a fetch for the singleflight group. The outcome is settled
// before the function returns, so once the group forgets the flight key the
// entry is already out of the loading state and a late DoChan re-execution
// falls through the superseded check without touching the remote.
func (c *Cache[T]) flightFn(key string, e *entry[T], gen uint64, fetch FetchFn[T], fctx context.Context) func() (any, error) {
	return func() (any, error) {
		e.mu.Lock()
		superseded := gen != e.gen || !e.loading
		e.mu.Unlock()
		if superseded {
			return nil, errFlightSuperseded
		}

		v, err := fetch(fctx)
		c.settle(key, e, gen, v, err)
		return v, err
	}
}

// settle records a flight's outcome. Flights from superseded generations
// are discarded without touching the entry.
func (c *Cache[T]) settle(key string, e *entry[T], gen uint64, v T, err error) {
	e.mu.Lock()
	if gen != e.gen || !e.loading {
		e.mu.Unlock()
		c.log.Debug().Str("key", key).Uint64("gen", gen).Msg("stale fetch discarded")
		return
	}

	e.loading = false
	if err != nil {
		e.status = StatusFailed
		e.err = err
	} else {
		e.value = v
		e.hasValue = true
		e.status = StatusResolved
		e.err = nil
	}
	e.enqueueLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	c.log.Debug().Str("key", key).Uint64("gen", gen).Str("status", string(snap.Status)).Msg("resource settled")
	c.drain(e)
}

// enqueueLocked captures the current snapshot and audience for delivery.
// Appending under mu is what keeps notifications in transition order.
func (e *entry[T]) enqueueLocked() {
	if len(e.subs) == 0 {
		return
	}
	e.queue = append(e.queue, notice[T]{
		snap: e.snapshotLocked(),
		subs: e.subscribersLocked(),
	})
}

// drain delivers queued notices one at a time, releasing the lock around
// each callback. A single drainer runs per entry; concurrent callers leave
// their notices for it to pick up.
func (c *Cache[T]) drain(e *entry[T]) {
	e.mu.Lock()
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	for len(e.queue) > 0 {
		n := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		for _, fn := range n.subs {
			fn(n.snap)
		}
		e.mu.Lock()
	}
	e.draining = false
	e.mu.Unlock()
}

func (e *entry[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Value:    e.value,
		HasValue: e.hasValue,
		Status:   e.status,
		Err:      e.err,
	}
}

func (e *entry[T]) subscribersLocked() []Subscriber[T] {
	if len(e.subs) == 0 {
		return nil
	}
	out := make([]Subscriber[T], 0, len(e.subs))
	for _, fn := range e.subs {
		out = append(out, fn)
	}
	return out
}
