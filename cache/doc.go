// Package cache provides caching interfaces and key serialization for
// memoized directory lookups.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: a generic caching interface for read-through operations
//   - KeySerializer: builds stable cache keys from method names and arguments
//
// The directory service uses a CacheService for per-item lookups (one key
// per customer email) and deletes those keys whenever a mutation succeeds,
// so the next lookup reads fresh data. The collection itself is cached in
// the resource package, which tracks fetch state explicitly; this package
// only covers plain value memoization.
//
// # Basic Usage
//
//	serializer := cache.NewDefaultKeySerializer()
//	key := serializer.SerializeKey("GetByEmail", "a@x.com")
//
//	result, err := cache.GetOrFetch(ctx, service, key, func(ctx context.Context) (Customer, error) {
//		return store.Lookup(ctx, "a@x.com")
//	})
//
// # Key Serialization Strategy
//
// The default serializer joins the method name and arguments with "::".
// Strings pass through untouched, basic types use their string form, slices
// and maps serialize recursively (maps with sorted keys for determinism),
// and anything else falls back to JSON so key generation never fails
// outright.
//
// # Error Handling
//
// GetOrFetch returns ErrInvalidResultType when a cached value does not match
// the requested type; fetch errors propagate unchanged and are not cached.
package cache
