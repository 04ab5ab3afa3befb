package cache

import (
	"context"
	"errors"
	"time"
)

// ErrEntryNotFound is returned by Backend.Get when the key is absent or
// its entry has expired. The engine treats both cases identically.
var ErrEntryNotFound = errors.New("cache: entry not found")

// Backend is the key-value store the engine writes through. The backend
// owns expiration enforcement: the engine sets a TTL at write time and
// never sees entries past expiry. Single-key operations are assumed
// atomic; the engine issues no multi-key transactions.
//
// Implementations live in internal/cacheinfra. The backend connection is
// injected into the engine at construction so the engine never owns global
// connection state.
type Backend interface {
	// Get returns the payload stored under key, or ErrEntryNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key with the given time-to-live,
	// unconditionally overwriting any existing entry.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Delete removes the given keys, returning how many existed.
	// Deleting an absent key is a no-op.
	Delete(ctx context.Context, keys ...string) (int64, error)

	// Keys enumerates keys matching a glob pattern. Used only for
	// namespace-wide invalidation and stats; acceptable at demo scale, a
	// production redesign would track key sets explicitly.
	Keys(ctx context.Context, pattern string) ([]string, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Info returns server metadata for stats reporting.
	Info(ctx context.Context) (ServerInfo, error)
}

// ServerInfo carries backend server metadata surfaced through Stats.
// The keyspace hit/miss counters are backend-global and may be polluted by
// unrelated workloads sharing the instance; the engine tracks its own
// hit/miss counters for the effectiveness ratio.
type ServerInfo struct {
	Version          string
	UsedMemory       string
	ConnectedClients int
	KeyspaceHits     int64
	KeyspaceMisses   int64
}

// Stats is a derived, non-persistent snapshot of cache state. Computed on
// demand, never stored, and reading it never mutates an entry or its TTL.
type Stats struct {
	Connected bool
	Server    ServerInfo

	// Per-namespace live key counts.
	RecordKeys      int
	BulkListingKeys int
	SearchKeys      int

	// Hit/miss counters tracked locally by the engine, scoped to this
	// cache's own keys.
	Hits     int64
	Misses   int64
	HitRatio float64
}
