package cache

import (
	"context"
	"errors"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
)

// Engine is the policy core of the caching layer: read-through population,
// tiered expiration, invalidation cascades, and statistics aggregation.
//
// Backend unavailability is never surfaced to callers. Every read degrades
// to a miss and every write is silently skipped (and logged), so the
// primary data path keeps working when the backend is down. Caching is an
// optimization, not a correctness dependency. Serialization failures are
// the one exception: they are propagated hard, since a corrupted cache
// entry is worse than a cache miss.
type Engine struct {
	backend  Backend
	codec    Codec
	composer KeyComposer
	cfg      Config
	log      *zap.Logger

	hits   *xsync.Counter
	misses *xsync.Counter
}

// NewEngine constructs an engine around the injected backend. It validates
// the configuration and falls back to the msgpack codec and the default
// key composer.
func NewEngine(cfg Config, backend Backend) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, &ConfigError{Field: "backend", Message: "cannot be nil"}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Engine{
		backend:  backend,
		codec:    NewMsgpackCodec(),
		composer: NewDefaultKeyComposer(),
		cfg:      cfg,
		log:      log,
		hits:     xsync.NewCounter(),
		misses:   xsync.NewCounter(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Composer returns the key composer the engine was built with.
func (e *Engine) Composer() KeyComposer {
	return e.composer
}

// opContext bounds a backend call with the configured per-op timeout.
func (e *Engine) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.cfg.OpTimeout)
}

// Read attempts to load the entry under key into dest. It returns false on
// a miss; an expired entry, an absent entry, and an unreachable backend
// all look the same to the caller. The only error it can return is a
// SerializationError from decoding a stored payload.
func (e *Engine) Read(ctx context.Context, key string, dest any) (bool, error) {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	payload, err := e.backend.Get(opCtx, key)
	if err != nil {
		if !errors.Is(err, ErrEntryNotFound) {
			e.log.Warn("cache read failed, treating as miss",
				zap.String("key", key), zap.Error(err))
		}
		e.misses.Inc()
		return false, nil
	}

	if err := e.codec.Decode(payload, dest); err != nil {
		return false, err
	}

	e.hits.Inc()
	return true, nil
}

// Write stores value under key at the namespace's TTL tier, overwriting
// any existing entry (last-writer-wins; entries are always reconstructible
// from the source of record, so no versioning is needed). A backend
// failure skips the write and logs; an encoding failure is returned.
func (e *Engine) Write(ctx context.Context, key string, ns Namespace, value any) error {
	payload, err := e.codec.Encode(value)
	if err != nil {
		return err
	}

	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	if err := e.backend.Set(opCtx, key, payload, e.cfg.TTLFor(ns)); err != nil {
		e.log.Warn("cache write skipped",
			zap.String("key", key), zap.Error(err))
	}
	return nil
}

// Invalidate deletes the given entries. Idempotent: deleting absent keys
// is a no-op, and backend failures are logged rather than raised.
func (e *Engine) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	if _, err := e.backend.Delete(opCtx, keys...); err != nil {
		e.log.Warn("cache invalidation skipped",
			zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateRecord runs the cascade for a mutated or deleted record: the
// record's own entry, the bulk-listing entry (any listing might now be
// stale), and every search entry (a search result's membership cannot be
// verified without re-running the query). Over-invalidation is the point;
// a partial invalidation that misses a stale search result would be a
// correctness bug.
func (e *Engine) InvalidateRecord(ctx context.Context, recordID string) {
	keys := []string{
		e.composer.Key(NamespaceRecord, recordID, nil),
		e.composer.Key(NamespaceBulkListing, BulkListingID, nil),
	}
	keys = append(keys, e.keysIn(ctx, NamespaceSearch)...)

	e.Invalidate(ctx, keys...)
}

// Clear deletes every entry across all namespaces. Used for
// administrative reset and pre-benchmark isolation.
func (e *Engine) Clear(ctx context.Context) {
	var keys []string
	for _, ns := range Namespaces() {
		keys = append(keys, e.keysIn(ctx, ns)...)
	}
	e.Invalidate(ctx, keys...)
}

// Stats assembles a point-in-time snapshot. It only enumerates keys and
// reads server metadata; it never touches an entry or its TTL.
func (e *Engine) Stats(ctx context.Context) Stats {
	stats := Stats{
		Hits:   e.hits.Value(),
		Misses: e.misses.Value(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(total)
	}

	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	if err := e.backend.Ping(opCtx); err != nil {
		e.log.Warn("cache backend unreachable", zap.Error(err))
		return stats
	}
	stats.Connected = true

	if info, err := e.backend.Info(opCtx); err == nil {
		stats.Server = info
	} else {
		e.log.Warn("cache backend info unavailable", zap.Error(err))
	}

	stats.RecordKeys = len(e.keysIn(ctx, NamespaceRecord))
	stats.BulkListingKeys = len(e.keysIn(ctx, NamespaceBulkListing))
	stats.SearchKeys = len(e.keysIn(ctx, NamespaceSearch))

	return stats
}

// keysIn enumerates the live keys of a namespace via the backend's glob
// scan. All pattern enumeration funnels through here; replacing the scan
// with an explicit key index only has to touch this helper.
func (e *Engine) keysIn(ctx context.Context, ns Namespace) []string {
	opCtx, cancel := e.opContext(ctx)
	defer cancel()

	keys, err := e.backend.Keys(opCtx, ns.Pattern())
	if err != nil {
		e.log.Warn("cache key scan failed",
			zap.String("namespace", string(ns)), zap.Error(err))
		return nil
	}
	return keys
}
