package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-restaurant-cache/store"
)

// SeedRestaurants returns the canonical demo data set: three restaurants
// with menus and reviews, covering three cuisines and a spread of
// ratings. Tests and the example program share this set so key names and
// search expectations line up everywhere.
func SeedRestaurants() []store.RestaurantRecord {
	return []store.RestaurantRecord{
		{
			ID:          "rest_001",
			Name:        "The Golden Spoon",
			Address:     "123 Main St, Downtown, City 12345",
			PhoneNumber: "+1-555-0101",
			Rating:      4.8,
			CuisineType: "Italian",
			Description: "Authentic Italian cuisine with a modern twist",
			IsActive:    true,
			MenuItems: []store.MenuItem{
				{ItemID: "item_001", Name: "Margherita Pizza", Description: "Classic pizza with fresh mozzarella and basil", Price: 15.99, Category: "Pizza", IsAvailable: true},
				{ItemID: "item_002", Name: "Spaghetti Carbonara", Description: "Creamy pasta with pancetta and parmesan", Price: 18.50, Category: "Pasta", IsAvailable: true},
			},
			Reviews: []store.Review{
				{ReviewID: "rev_001", CustomerName: "John Doe", Rating: 5, Comment: "Amazing food and excellent service!", Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			ID:          "rest_002",
			Name:        "Sushi Sensation",
			Address:     "456 Oak Ave, Midtown, City 12346",
			PhoneNumber: "+1-555-0102",
			Rating:      4.9,
			CuisineType: "Japanese",
			Description: "Fresh sushi and sashimi prepared by master chefs",
			IsActive:    true,
			MenuItems: []store.MenuItem{
				{ItemID: "item_003", Name: "Dragon Roll", Description: "Eel and cucumber topped with avocado", Price: 16.99, Category: "Sushi Rolls", IsAvailable: true},
			},
			Reviews: []store.Review{
				{ReviewID: "rev_002", CustomerName: "Jane Smith", Rating: 5, Comment: "Best sushi in town!", Date: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
			},
		},
		{
			ID:          "rest_003",
			Name:        "Burger Barn",
			Address:     "789 Pine Rd, Uptown, City 12347",
			PhoneNumber: "+1-555-0103",
			Rating:      4.6,
			CuisineType: "American",
			Description: "Gourmet burgers made with locally sourced ingredients",
			IsActive:    true,
			MenuItems: []store.MenuItem{
				{ItemID: "item_004", Name: "Classic Cheeseburger", Description: "Beef patty with cheddar, lettuce, and tomato", Price: 12.99, Category: "Burgers", IsAvailable: true},
			},
			Reviews: []store.Review{
				{ReviewID: "rev_003", CustomerName: "Bob Wilson", Rating: 4, Comment: "Great burgers, generous portions", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			},
		},
	}
}

// Seed inserts the canonical restaurant set into the store.
func Seed(ctx context.Context, st *store.Store) error {
	for _, record := range SeedRestaurants() {
		record := record
		if _, err := st.Insert(ctx, &record); err != nil {
			return err
		}
	}
	return nil
}

// NewSeededStore opens an in-memory store, creates the schema, and loads
// the canonical restaurant set. The database is closed on test cleanup.
func NewSeededStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := store.Open(store.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	ctx := context.Background()
	if err := st.Init(ctx); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}
	if err := Seed(ctx, st); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return st
}

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// WriteGolden writes test output to a golden file.
// This should typically only be called when updating golden files.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write golden file to %s: %v", path, err)
	}
}

// CompareWithGolden compares actual data with expected data from a golden file.
// If the golden file doesn't exist, it creates one with the actual data.
func CompareWithGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Logf("Golden file %s does not exist, creating it", path)
			WriteGolden(t, path, actual)
			return
		}
		t.Fatalf("failed to read golden file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("output mismatch for %s:\nExpected:\n%s\nActual:\n%s", path, expected, actual)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// GoldenPath constructs a path to a golden file relative to the testdata directory.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}
