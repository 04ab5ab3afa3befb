package di

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-restaurant-cache/restaurantcache"
	"github.com/goliatone/go-restaurant-cache/store"
)

func newBenchService(b *testing.B, records int) (*restaurantcache.Service, *store.Store) {
	b.Helper()

	container, err := NewContainerWithDefaults()
	if err != nil {
		b.Fatalf("Failed to create DI container: %v", err)
	}

	db, err := store.Open(store.DefaultConfig())
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	b.Cleanup(func() { db.Close() })

	st := store.New(db)
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		b.Fatalf("failed to initialize schema: %v", err)
	}

	for i := 0; i < records; i++ {
		record := store.RestaurantRecord{
			ID:          fmt.Sprintf("rest_%03d", i),
			Name:        fmt.Sprintf("Restaurant %d", i),
			CuisineType: []string{"Italian", "Japanese", "American", "Mexican"}[i%4],
			Rating:      3.5 + float64(i%15)/10,
			Description: fmt.Sprintf("Neighborhood spot number %d", i),
			IsActive:    true,
		}
		if _, err := st.Insert(ctx, &record); err != nil {
			b.Fatalf("failed to seed record %d: %v", i, err)
		}
	}

	return NewCachedService(container, st), st
}

// BenchmarkCachedVsDirectReads compares the cache-backed read paths with
// direct source-of-record reads over the same data set.
func BenchmarkCachedVsDirectReads(b *testing.B) {
	svc, st := newBenchService(b, 100)
	ctx := context.Background()

	b.Run("direct_store_GetRecord", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			id := fmt.Sprintf("rest_%03d", i%100)
			if _, err := svc.GetRecordUncached(ctx, id); err != nil {
				b.Fatal(err)
			}
		}
	})

	// Warm every record before measuring the hit path.
	svc.ClearCache(ctx)
	for i := 0; i < 100; i++ {
		svc.GetRecord(ctx, fmt.Sprintf("rest_%03d", i))
	}

	b.Run("cached_GetRecord_hit", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			id := fmt.Sprintf("rest_%03d", i%100)
			if _, err := svc.GetRecord(ctx, id); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("direct_store_ListAll", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := st.GetAll(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	svc.ClearCache(ctx)
	svc.ListAll(ctx)

	b.Run("cached_ListAll_hit", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := svc.ListAll(ctx); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("search_miss", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := svc.Search(ctx, fmt.Sprintf("unique query %d", i), "", 4.0); err != nil {
				b.Fatal(err)
			}
		}
	})

	svc.ClearCache(ctx)
	svc.Search(ctx, "Restaurant", "Italian", 4.0)

	b.Run("search_hit", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := svc.Search(ctx, "Restaurant", "Italian", 4.0); err != nil {
				b.Fatal(err)
			}
		}
	})
}

// BenchmarkConcurrentCacheHits measures the warmed read path under
// parallel load.
func BenchmarkConcurrentCacheHits(b *testing.B) {
	svc, _ := newBenchService(b, 100)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		svc.GetRecord(ctx, fmt.Sprintf("rest_%03d", i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			id := fmt.Sprintf("rest_%03d", i%100)
			if _, err := svc.GetRecord(ctx, id); err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
