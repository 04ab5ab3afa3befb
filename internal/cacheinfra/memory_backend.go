package cacheinfra

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/goliatone/go-restaurant-cache/cache"
)

// memEntry is one stored payload with its expiry deadline.
type memEntry struct {
	payload   []byte
	expiresAt time.Time
	ttl       time.Duration
}

func (e memEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// MemoryBackend is an in-process cache.Backend with per-entry deadlines.
// It mirrors the Redis backend's semantics (TTL expiry, glob key scans,
// multi-key deletes) so tests and single-process deployments can run
// without a server. Expired entries are reaped lazily on access and on
// key scans.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[key]
	if !ok {
		return nil, cache.ErrEntryNotFound
	}
	if entry.expired(b.now()) {
		delete(b.entries, key)
		return nil, cache.ErrEntryNotFound
	}

	payload := make([]byte, len(entry.payload))
	copy(payload, entry.payload)
	return payload, nil
}

func (b *MemoryBackend) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = memEntry{
		payload:   stored,
		expiresAt: b.now().Add(ttl),
		ttl:       ttl,
	}
	return nil
}

func (b *MemoryBackend) Delete(ctx context.Context, keys ...string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var removed int64
	for _, key := range keys {
		if _, ok := b.entries[key]; ok {
			delete(b.entries, key)
			removed++
		}
	}
	return removed, nil
}

func (b *MemoryBackend) Keys(ctx context.Context, pattern string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	var keys []string
	for key, entry := range b.entries {
		if entry.expired(now) {
			delete(b.entries, key)
			continue
		}
		if ok, err := path.Match(pattern, key); err == nil && ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (b *MemoryBackend) Ping(ctx context.Context) error {
	return nil
}

func (b *MemoryBackend) Info(ctx context.Context) (cache.ServerInfo, error) {
	return cache.ServerInfo{
		Version:          "memory",
		UsedMemory:       "0B",
		ConnectedClients: 1,
	}, nil
}

// RemainingTTL reports the TTL the entry was written with and whether the
// key currently holds a live entry. Test hook; Redis exposes the same
// information through the TTL command.
func (b *MemoryBackend) RemainingTTL(key string) (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry, ok := b.entries[key]
	if !ok || entry.expired(b.now()) {
		return 0, false
	}
	return entry.ttl, true
}

// Len returns the number of live entries.
func (b *MemoryBackend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	n := 0
	for _, entry := range b.entries {
		if !entry.expired(now) {
			n++
		}
	}
	return n
}

var _ cache.Backend = (*MemoryBackend)(nil)
