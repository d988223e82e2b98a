// Package directory coordinates reads and mutations for the remote customer
// collection.
//
// # Overview
//
// Reads go through two caches: the full collection lives in a resource
// cache entry with explicit fetch state (resource package), and per-email
// lookups are memoized in a CacheService (cache package). Writes pass
// straight through to the remote store.
//
// # Consistency model
//
// The service enforces mutation-then-invalidate ordering: cache invalidation
// happens only after the store confirms a create or delete, never before and
// never concurrently. The invalidated collection entry re-fetches from the
// store, so the next read reflects committed server state rather than a
// locally synthesized one. There is no optimistic patching; the only local
// mutation is replacing the whole cached collection with a freshly fetched
// one.
//
// Failures of any kind (validation, store rejection, transport) leave
// cached state untouched.
//
// # Usage
//
//	container, _ := di.NewContainerWithDefaults()
//	store := httpstore.New(httpstore.Config{BaseURL: apiURL})
//	svc := di.NewDirectory(container, store, logger)
//
//	stop := svc.Subscribe(func(snap resource.Snapshot[[]customer.Customer]) {
//		render(snap)
//	})
//	defer stop()
//
//	customers, err := svc.WaitCustomers(ctx)
//	err = svc.Create(ctx, customer.NewCustomerInput{...})
package directory
