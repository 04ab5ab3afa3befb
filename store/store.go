// Package store implements the source-of-record for restaurant records on
// top of bun. No caching logic lives here; it is the authoritative
// fallback data source the cache layer reads through to.
package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names for Open.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds the database connection settings.
type Config struct {
	// Driver selects the backing database: DriverSQLite or DriverPostgres.
	Driver string

	// DSN is the driver-specific data source name, e.g. ":memory:" or
	// "file:restaurants.db" for sqlite.
	DSN string
}

// DefaultConfig returns a Config backed by an in-memory sqlite database.
func DefaultConfig() Config {
	return Config{Driver: DriverSQLite, DSN: ":memory:"}
}

// Open connects to the configured database and wraps it in a bun.DB with
// the matching dialect.
func Open(cfg Config) (*bun.DB, error) {
	sqldb, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	switch cfg.Driver {
	case DriverSQLite:
		// A single connection keeps in-memory sqlite databases alive and
		// serializes writers.
		sqldb.SetMaxOpenConns(1)
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case DriverPostgres:
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		sqldb.Close()
		return nil, errors.New("store: unsupported driver " + cfg.Driver)
	}
}

// Store is the bun-backed source-of-record for restaurant records.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// New wraps an open bun.DB. The caller owns the database lifecycle.
func New(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Init creates the restaurants table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*RestaurantRecord)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// GetByID returns the record with the given identifier, or nil when no
// such record exists. Absence is a normal result, not an error.
func (s *Store) GetByID(ctx context.Context, id string) (*RestaurantRecord, error) {
	record := new(RestaurantRecord)
	err := s.db.NewSelect().
		Model(record).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// GetAll returns every record ordered by identifier so listings are
// deterministic.
func (s *Store) GetAll(ctx context.Context) ([]RestaurantRecord, error) {
	var records []RestaurantRecord
	err := s.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Filter returns every record matching the predicate, in identifier
// order. This is a full scan; the store makes no attempt to push
// predicates into the database.
func (s *Store) Filter(ctx context.Context, pred func(RestaurantRecord) bool) ([]RestaurantRecord, error) {
	records, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]RestaurantRecord, 0, len(records))
	for _, record := range records {
		if pred(record) {
			matched = append(matched, record)
		}
	}
	return matched, nil
}

// Insert validates and stores a new record, assigning a generated
// identifier when none is provided. Both timestamps are set to the same
// instant on insert.
func (s *Store) Insert(ctx context.Context, record *RestaurantRecord) (string, error) {
	if record.ID == "" {
		record.ID = "rest_" + uuid.NewString()
	}

	now := s.now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := record.Validate(); err != nil {
		return "", err
	}

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return "", err
	}
	return record.ID, nil
}

// Update applies a partial patch to the record with the given identifier,
// refreshing UpdatedAt. It reports whether a record was updated; false
// means no such record exists.
func (s *Store) Update(ctx context.Context, id string, patch RecordPatch) (bool, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}

	patch.apply(record)
	record.UpdatedAt = s.now()

	if err := record.Validate(); err != nil {
		return false, err
	}

	res, err := s.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes the record with the given identifier, reporting whether
// anything was removed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.db.NewDelete().
		Model((*RestaurantRecord)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	return s.db.NewSelect().
		Model((*RestaurantRecord)(nil)).
		Count(ctx)
}
