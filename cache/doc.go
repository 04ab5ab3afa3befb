// Package cache implements the policy core of the restaurant caching
// layer: key composition, payload serialization, and the cache engine with
// its tiered expiration and invalidation cascades.
//
// # Overview
//
// The package exports four pieces:
//
//   - KeyComposer: builds deterministic keys from a namespace, an
//     identifier, and an optional sorted parameter set
//   - Codec: msgpack encode/decode for cached payloads
//   - Backend: the key-value store contract implemented in internal/cacheinfra
//   - Engine: read-through population, tiered TTLs, cascades, and stats
//
// # Key Composition
//
// Keys are colon-joined segments under a closed set of namespaces:
//
//	record:rest_001
//	bulk-listing:all
//	search:9f8a1c3d5e7b2a41:cuisine:italian_min_rating:4.5
//
// Parameter names are sorted lexicographically before concatenation, so
// two logically identical parameter sets always produce the same key no
// matter how they were built. Search identifiers are a fixed-width xxhash
// digest of the query text, keeping key length bounded regardless of query
// length and keeping arbitrary query characters out of the key structure.
//
// # Expiration Tiers
//
// Broader result sets go stale faster and are cheaper to recompute
// relative to their staleness risk, so TTLs are tiered by namespace:
// record entries live the full base TTL, bulk listings half of it, and
// search results a quarter. The backend enforces expiry; the engine only
// sets the TTL at write time, and an expired entry is indistinguishable
// from an absent one.
//
// # Failure Policy
//
// Backend unavailability is never surfaced to callers: reads degrade to
// misses, writes are skipped, both are logged. The one hard failure is
// SerializationError, because a corrupted cache entry indicates a logic
// bug and masking it risks returning wrong data.
//
// # Concurrency
//
// Read-through population is deliberately not guarded by per-key locks.
// Two concurrent misses on the same key may both fall through to the
// source of record and both write back; that is safe (last-writer-wins,
// idempotent) and cheaper than coordinating a lock across callers. Every
// backend call is bounded by the configured per-op timeout.
//
// # See Also
//
// For the backend adapters, see internal/cacheinfra. For the cache-backed
// restaurant service built on this engine, see the restaurantcache package.
package cache
