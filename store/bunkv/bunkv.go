// Package bunkv persists the session profile slot in SQLite through bun,
// giving the client a durable stand-in for browser local storage.
package bunkv

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	jobnest "github.com/jobnest/go-jobnest"
)

var _ jobnest.SessionStorage = (*Store)(nil)

// Entry is one key/value row in the session slot table.
type Entry struct {
	bun.BaseModel `bun:"table:session_slots,alias:ss"`

	Key       string    `bun:"key,pk" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// Store implements jobnest.SessionStorage on a bun database.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// Open opens a SQLite database for the store. Use ":memory:" for an
// ephemeral slot.
func Open(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// New builds a store over db. Call Init before first use.
func New(db *bun.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Init creates the slot table if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Get returns the value for key and whether a row was present.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	entry := new(Entry)
	err := s.db.NewSelect().
		Model(entry).
		Where("ss.key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set replaces the whole value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := &Entry{Key: key, Value: value, UpdatedAt: s.now()}
	_, err := s.db.NewInsert().
		Model(entry).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// Delete removes key. Deleting an absent key succeeds.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*Entry)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	return err
}
