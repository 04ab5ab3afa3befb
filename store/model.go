package store

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// RestaurantRecord is the authoritative representation of one restaurant.
// The identifier is immutable once assigned; updates refresh UpdatedAt so
// UpdatedAt >= CreatedAt always holds. Menu items and reviews are owned
// exclusively by their parent record and persist as JSON columns.
type RestaurantRecord struct {
	bun.BaseModel `bun:"table:restaurants,alias:r" msgpack:"-"`

	ID          string     `bun:"id,pk" json:"restaurant_id" msgpack:"restaurant_id"`
	Name        string     `bun:"name,notnull" json:"name" msgpack:"name"`
	Address     string     `bun:"address" json:"address" msgpack:"address"`
	PhoneNumber string     `bun:"phone_number" json:"phone_number" msgpack:"phone_number"`
	Rating      float64    `bun:"rating" json:"rating" msgpack:"rating"`
	CuisineType string     `bun:"cuisine_type" json:"cuisine_type" msgpack:"cuisine_type"`
	Description string     `bun:"description" json:"description" msgpack:"description"`
	IsActive    bool       `bun:"is_active" json:"is_active" msgpack:"is_active"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"created_at" msgpack:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull" json:"updated_at" msgpack:"updated_at"`
	MenuItems   []MenuItem `bun:"menu_items,type:jsonb" json:"menu_items" msgpack:"menu_items"`
	Reviews     []Review   `bun:"reviews,type:jsonb" json:"reviews" msgpack:"reviews"`
}

// MenuItem is a nested value with no independent lifecycle.
type MenuItem struct {
	ItemID      string  `json:"item_id" msgpack:"item_id"`
	Name        string  `json:"name" msgpack:"name"`
	Description string  `json:"description" msgpack:"description"`
	Price       float64 `json:"price" msgpack:"price"`
	Category    string  `json:"category" msgpack:"category"`
	IsAvailable bool    `json:"is_available" msgpack:"is_available"`
}

// Review is a nested value with no independent lifecycle.
type Review struct {
	ReviewID     string    `json:"review_id" msgpack:"review_id"`
	CustomerName string    `json:"customer_name" msgpack:"customer_name"`
	Rating       int       `json:"rating" msgpack:"rating"`
	Comment      string    `json:"comment" msgpack:"comment"`
	Date         time.Time `json:"date" msgpack:"date"`
}

// Validate checks the record's field invariants. Invalid records are
// rejected at the store boundary before anything reaches the cache.
func (r RestaurantRecord) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&r.MenuItems),
		validation.Field(&r.Reviews),
	)
}

// Validate checks the menu item invariants.
func (m MenuItem) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required),
		validation.Field(&m.Price, validation.Min(0.0)),
	)
}

// Validate checks the review invariants.
func (v Review) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Rating, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// RecordPatch is a partial update; nil fields are left untouched. The
// identifier is deliberately absent: it is immutable for the record's
// lifetime.
type RecordPatch struct {
	Name        *string
	Address     *string
	PhoneNumber *string
	Rating      *float64
	CuisineType *string
	Description *string
	IsActive    *bool
	MenuItems   *[]MenuItem
	Reviews     *[]Review
}

// apply copies the set fields onto the record.
func (p RecordPatch) apply(r *RestaurantRecord) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Address != nil {
		r.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		r.PhoneNumber = *p.PhoneNumber
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.CuisineType != nil {
		r.CuisineType = *p.CuisineType
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.IsActive != nil {
		r.IsActive = *p.IsActive
	}
	if p.MenuItems != nil {
		r.MenuItems = *p.MenuItems
	}
	if p.Reviews != nil {
		r.Reviews = *p.Reviews
	}
}
