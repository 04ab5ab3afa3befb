// Package restaurantcache provides the cache-backed restaurant service:
// a façade that composes a source-of-record store with the cache engine.
//
// Reads (single record, full listing, filtered search) are read-through:
// a hit returns the cached copy, a miss falls back to the store and
// populates the cache at the namespace's TTL tier. Writes go to the
// store first and then run the invalidation cascade, so entries written
// through this service never serve data the service knows is stale.
//
// The façade inherits the engine's failure policy: with an unreachable
// cache backend every operation still completes against the store.
package restaurantcache
