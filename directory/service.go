package directory

import (
	"context"
	"fmt"

	"github.com/containerd/errdefs"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-customer-directory/cache"
	"github.com/goliatone/go-customer-directory/customer"
	"github.com/goliatone/go-customer-directory/resource"
)

// Service exposes the customer directory to a presentation layer: cached
// reads of the collection, memoized per-email lookups, and create/remove
// mutations that keep the cache consistent with the remote store.
//
// The service holds no cache of its own and never writes cache values
// directly. On a successful mutation it only triggers invalidation; the
// resource cache then re-fetches, so every cached value comes from the
// store. A failed mutation leaves cached state exactly as it was.
type Service struct {
	store     customer.Store
	resources *resource.Cache[[]customer.Customer]
	items     cache.CacheService
	keys      cache.KeySerializer
	itemKeys  *xsync.MapOf[string, struct{}] // track active lookup keys for invalidation
	log       zerolog.Logger
}

// New wires a directory service. The resource cache carries the collection;
// items carries the per-email lookups.
func New(
	store customer.Store,
	resources *resource.Cache[[]customer.Customer],
	items cache.CacheService,
	keys cache.KeySerializer,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:     store,
		resources: resources,
		items:     items,
		keys:      keys,
		itemKeys:  xsync.NewMapOf[string, struct{}](),
		log:       log,
	}
}

func (s *Service) customersKey() string {
	return s.keys.SerializeKey("Customers")
}

// Customers returns the current snapshot of the customer collection,
// triggering a lazy fetch on first read. The collection keeps the store's
// ordering; nothing is reordered or deduplicated locally.
func (s *Service) Customers(ctx context.Context) resource.Snapshot[[]customer.Customer] {
	return s.resources.Read(ctx, s.customersKey(), s.store.List)
}

// WaitCustomers reads through the cache and blocks until the collection is
// resolved or the fetch fails.
func (s *Service) WaitCustomers(ctx context.Context) ([]customer.Customer, error) {
	return s.resources.Wait(ctx, s.customersKey(), s.store.List)
}

// Subscribe registers fn for every status transition of the collection. The
// returned stop function detaches it and is safe to call at any time.
func (s *Service) Subscribe(fn resource.Subscriber[[]customer.Customer]) func() {
	return s.resources.Subscribe(s.customersKey(), fn)
}

// GetByEmail returns the customer with the given email, memoized per email.
// Misses resolve through the cached collection; the lookup key is tracked
// and dropped on the next successful mutation.
func (s *Service) GetByEmail(ctx context.Context, email string) (customer.Customer, error) {
	key := s.keys.SerializeKey("GetByEmail", email)
	s.itemKeys.Store(key, struct{}{})

	return cache.GetOrFetch(ctx, s.items, key, func(ctx context.Context) (customer.Customer, error) {
		list, err := s.resources.Wait(ctx, s.customersKey(), s.store.List)
		if err != nil {
			return customer.Customer{}, err
		}
		for _, c := range list {
			if c.Email == email {
				return c, nil
			}
		}
		return customer.Customer{}, fmt.Errorf("customer %q: %w", email, errdefs.ErrNotFound)
	})
}

// Create validates the input, submits it to the store, and invalidates the
// cached collection strictly after the store reports success. A validation
// failure returns before the store is contacted; a remote failure returns
// with the cache untouched, so the list never shows an uncommitted record.
func (s *Service) Create(ctx context.Context, input customer.NewCustomerInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.store.Create(ctx, input); err != nil {
		return err
	}

	s.log.Debug().Str("email", input.Email).Msg("customer created")
	s.invalidateAfterMutation(ctx)
	return nil
}

// Remove deletes the customer keyed by email, invalidating the cache only
// after the store confirms the delete.
func (s *Service) Remove(ctx context.Context, email string) error {
	if err := s.store.Delete(ctx, email); err != nil {
		return err
	}

	s.log.Debug().Str("email", email).Msg("customer removed")
	s.invalidateAfterMutation(ctx)
	return nil
}

// invalidateAfterMutation runs strictly after a successful remote write: the
// collection entry re-fetches, and every tracked lookup key is deleted so
// the next GetByEmail reads through again.
func (s *Service) invalidateAfterMutation(ctx context.Context) {
	s.resources.Invalidate(ctx, s.customersKey())

	s.itemKeys.Range(func(key string, _ struct{}) bool {
		if err := s.items.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("lookup key invalidation failed")
		}
		s.itemKeys.Delete(key)
		return true
	})
}
