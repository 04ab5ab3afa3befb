package cache

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// menuItem and review mirror the nested value shapes the store produces.
type menuItem struct {
	ItemID      string  `msgpack:"item_id"`
	Name        string  `msgpack:"name"`
	Description string  `msgpack:"description"`
	Price       float64 `msgpack:"price"`
	Category    string  `msgpack:"category"`
	IsAvailable bool    `msgpack:"is_available"`
}

type review struct {
	ReviewID     string    `msgpack:"review_id"`
	CustomerName string    `msgpack:"customer_name"`
	Rating       int       `msgpack:"rating"`
	Comment      string    `msgpack:"comment"`
	Date         time.Time `msgpack:"date"`
}

type restaurantRecord struct {
	ID          string     `msgpack:"restaurant_id"`
	Name        string     `msgpack:"name"`
	Address     string     `msgpack:"address"`
	PhoneNumber string     `msgpack:"phone_number"`
	Rating      float64    `msgpack:"rating"`
	CuisineType string     `msgpack:"cuisine_type"`
	Description string     `msgpack:"description"`
	IsActive    bool       `msgpack:"is_active"`
	CreatedAt   time.Time  `msgpack:"created_at"`
	UpdatedAt   time.Time  `msgpack:"updated_at"`
	MenuItems   []menuItem `msgpack:"menu_items"`
	Reviews     []review   `msgpack:"reviews"`
}

func sampleRecord() restaurantRecord {
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	return restaurantRecord{
		ID:          "rest_001",
		Name:        "The Golden Spoon",
		Address:     "123 Main St, Downtown, City 12345",
		PhoneNumber: "+1-555-0101",
		Rating:      4.8,
		CuisineType: "Italian",
		Description: "Authentic Italian cuisine with a modern twist",
		IsActive:    true,
		CreatedAt:   created,
		UpdatedAt:   created.Add(5 * 24 * time.Hour),
		MenuItems: []menuItem{
			{ItemID: "item_001", Name: "Margherita Pizza", Price: 15.99, Category: "Pizza", IsAvailable: true},
			{ItemID: "item_002", Name: "Pasta Carbonara", Price: 18.50, Category: "Pasta", IsAvailable: true},
		},
		Reviews: []review{
			{ReviewID: "rev_001", CustomerName: "John Doe", Rating: 5, Comment: "Excellent food and service!", Date: created.Add(3 * 24 * time.Hour)},
		},
	}
}

func TestMsgpackCodec_RoundTripRecord(t *testing.T) {
	codec := NewMsgpackCodec()
	original := sampleRecord()

	payload, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if len(payload) == 0 {
		t.Fatal("Encode produced empty payload")
	}

	var decoded restaurantRecord
	if err := codec.Decode(payload, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !decoded.CreatedAt.Equal(original.CreatedAt) || !decoded.UpdatedAt.Equal(original.UpdatedAt) {
		t.Errorf("timestamps did not survive round trip: got %v/%v, want %v/%v",
			decoded.CreatedAt, decoded.UpdatedAt, original.CreatedAt, original.UpdatedAt)
	}

	// Normalize timestamps so reflect.DeepEqual is not tripped up by
	// monotonic clock or location metadata.
	decoded.CreatedAt = decoded.CreatedAt.UTC()
	decoded.UpdatedAt = decoded.UpdatedAt.UTC()
	for i := range decoded.Reviews {
		decoded.Reviews[i].Date = decoded.Reviews[i].Date.UTC()
	}

	if !reflect.DeepEqual(decoded, original) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestMsgpackCodec_RoundTripSlice(t *testing.T) {
	codec := NewMsgpackCodec()
	original := []restaurantRecord{sampleRecord(), sampleRecord()}
	original[1].ID = "rest_002"
	original[1].Name = "Sushi Sensation"

	payload, err := codec.Encode(original)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var decoded []restaurantRecord
	if err := codec.Decode(payload, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if len(decoded) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded))
	}
	if decoded[0].ID != "rest_001" || decoded[1].ID != "rest_002" {
		t.Errorf("record order not preserved: got %s, %s", decoded[0].ID, decoded[1].ID)
	}
}

func TestMsgpackCodec_EncodeUnsupportedType(t *testing.T) {
	codec := NewMsgpackCodec()

	_, err := codec.Encode(make(chan int))
	if err == nil {
		t.Fatal("expected Encode to fail for channel value")
	}

	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %T: %v", err, err)
	}
	if serr.Op != "encode" {
		t.Errorf("SerializationError.Op = %q, want %q", serr.Op, "encode")
	}
}

func TestMsgpackCodec_DecodeCorruptPayload(t *testing.T) {
	codec := NewMsgpackCodec()

	var dest restaurantRecord
	err := codec.Decode([]byte("not msgpack at all"), &dest)
	if err == nil {
		t.Fatal("expected Decode to fail for corrupt payload")
	}

	var serr *SerializationError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SerializationError, got %T: %v", err, err)
	}
	if serr.Op != "decode" {
		t.Errorf("SerializationError.Op = %q, want %q", serr.Op, "decode")
	}
	if serr.Unwrap() == nil {
		t.Error("SerializationError should wrap the underlying error")
	}
}
