package restaurantcache

import (
	"context"
	"strconv"
	"strings"

	"github.com/goliatone/go-restaurant-cache/cache"
	"github.com/goliatone/go-restaurant-cache/store"
)

// Store is the source-of-record contract the service reads through to.
// Absence is a normal result: GetByID returns nil for unknown
// identifiers, Update and Delete report false.
type Store interface {
	GetByID(ctx context.Context, id string) (*store.RestaurantRecord, error)
	GetAll(ctx context.Context) ([]store.RestaurantRecord, error)
	Filter(ctx context.Context, pred func(store.RestaurantRecord) bool) ([]store.RestaurantRecord, error)
	Insert(ctx context.Context, record *store.RestaurantRecord) (string, error)
	Update(ctx context.Context, id string, patch store.RecordPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Interface assertion to ensure the bun-backed store satisfies Store.
var _ Store = (*store.Store)(nil)

// Service is the cache-backed restaurant façade: read operations go
// through the cache engine with read-through population, write operations
// go to the source of record and cascade-invalidate, so the cache is
// never knowingly stale after a write that flowed through this service.
// Out-of-band writes to the source are not detected.
type Service struct {
	store    Store
	engine   *cache.Engine
	composer cache.KeyComposer
}

// New wires the façade around a source-of-record store and a cache engine.
func New(st Store, engine *cache.Engine) *Service {
	return &Service{
		store:    st,
		engine:   engine,
		composer: engine.Composer(),
	}
}

// GetRecord returns the record with the given identifier, reading through
// the cache at the record tier. A nil record means not found; misses on
// absent records are never cached, so a record becomes visible
// immediately once created.
func (s *Service) GetRecord(ctx context.Context, id string) (*store.RestaurantRecord, error) {
	key := s.composer.Key(cache.NamespaceRecord, id, nil)

	var cached store.RestaurantRecord
	found, err := s.engine.Read(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return &cached, nil
	}

	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if err := s.engine.Write(ctx, key, cache.NamespaceRecord, record); err != nil {
		return nil, err
	}
	return record, nil
}

// GetRecordUncached bypasses the cache and reads straight from the source
// of record. Used for benchmarking the cache against direct reads.
func (s *Service) GetRecordUncached(ctx context.Context, id string) (*store.RestaurantRecord, error) {
	return s.store.GetByID(ctx, id)
}

// ListAll returns every record in identifier order, reading through the
// cache at the bulk-listing tier under the single bulk-listing:all key.
func (s *Service) ListAll(ctx context.Context) ([]store.RestaurantRecord, error) {
	key := s.composer.Key(cache.NamespaceBulkListing, cache.BulkListingID, nil)

	var cached []store.RestaurantRecord
	found, err := s.engine.Read(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return cached, nil
	}

	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		if err := s.engine.Write(ctx, key, cache.NamespaceBulkListing, records); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Search returns the records matching a case-insensitive substring query
// on name and description, an optional case-insensitive cuisine match,
// and a minimum rating threshold. Results are cached at the search tier
// under a key derived from the query digest and the sorted filter
// parameters, so logically identical searches share one entry.
func (s *Service) Search(ctx context.Context, query, cuisineFilter string, minRating float64) ([]store.RestaurantRecord, error) {
	key := s.composer.Key(cache.NamespaceSearch, cache.SearchDigest(query), searchParams(cuisineFilter, minRating))

	var cached []store.RestaurantRecord
	found, err := s.engine.Read(ctx, key, &cached)
	if err != nil {
		return nil, err
	}
	if found {
		return cached, nil
	}

	needle := strings.ToLower(query)
	results, err := s.store.Filter(ctx, func(r store.RestaurantRecord) bool {
		if !strings.Contains(strings.ToLower(r.Name), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
		if cuisineFilter != "" && !strings.EqualFold(r.CuisineType, cuisineFilter) {
			return false
		}
		return r.Rating >= minRating
	})
	if err != nil {
		return nil, err
	}

	if err := s.engine.Write(ctx, key, cache.NamespaceSearch, results); err != nil {
		return nil, err
	}
	return results, nil
}

// searchParams builds the sorted-parameter set for a search key. The
// values must distinguish exactly what the filter distinguishes: cuisine
// is lowercased only, the equivalence class the case-insensitive match
// defines, and the rating threshold keeps full precision. Anything
// lossier would let two different filters share one cache entry.
func searchParams(cuisineFilter string, minRating float64) map[string]string {
	cuisine := "any"
	if cuisineFilter != "" {
		cuisine = strings.ToLower(cuisineFilter)
	}
	return map[string]string{
		"cuisine":    cuisine,
		"min_rating": strconv.FormatFloat(minRating, 'f', -1, 64),
	}
}

// Create validates and inserts a new record, then runs the invalidation
// cascade so stale bulk listings and search results cannot outlive the
// write.
func (s *Service) Create(ctx context.Context, record *store.RestaurantRecord) (string, error) {
	id, err := s.store.Insert(ctx, record)
	if err != nil {
		return "", err
	}
	s.engine.InvalidateRecord(ctx, id)
	return id, nil
}

// Update applies a partial patch through the source of record and
// cascade-invalidates on success.
func (s *Service) Update(ctx context.Context, id string, patch store.RecordPatch) (bool, error) {
	ok, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return false, err
	}
	if ok {
		s.engine.InvalidateRecord(ctx, id)
	}
	return ok, nil
}

// Delete removes a record through the source of record and
// cascade-invalidates on success, evicting any cached copy.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		s.engine.InvalidateRecord(ctx, id)
	}
	return ok, nil
}

// InvalidateRecord runs the cascade for a record mutated outside the
// service's own write path.
func (s *Service) InvalidateRecord(ctx context.Context, id string) {
	s.engine.InvalidateRecord(ctx, id)
}

// ClearCache deletes every cache entry across all namespaces. Used for
// administrative reset and pre-benchmark isolation.
func (s *Service) ClearCache(ctx context.Context) {
	s.engine.Clear(ctx)
}

// CacheStats returns a point-in-time snapshot of cache state.
func (s *Service) CacheStats(ctx context.Context) cache.Stats {
	return s.engine.Stats(ctx)
}
