package postgres

// Package postgres provides a pgx-backed entry store. The schema lives
// under db/migrations: one row per entry with the full record serialized
// into a jsonb column next to denormalized id/timestamp columns used for
// keys and ordering. The columns are authoritative; reads overwrite the
// blob's copies so the two sources cannot drift apart.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tinoosan/journal/internal/errs"
	"github.com/tinoosan/journal/internal/journal"
)

// Unique constraints the store translates into domain errors.
const (
	pkConstraint  = "entries_pkey"
	dayConstraint = "entries_entry_day_key"
)

// Store holds a pgx connection pool. All methods are safe for concurrent
// use; acquisition per request is handled inside the pool.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// Create inserts an entry row. Id reuse maps to ErrConflict; the unique
// index on the derived calendar day maps to ErrDuplicateDay, which closes
// the check-then-insert race at the storage layer.
func (s *Store) Create(ctx context.Context, e journal.Entry) (journal.Entry, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return journal.Entry{}, err
	}
	_, err = s.pool.Exec(ctx, `
        insert into entries (id, data, created_at, updated_at)
        values ($1,$2,$3,$4)
    `, e.ID, data, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case dayConstraint:
				return journal.Entry{}, errs.ErrDuplicateDay
			case pkConstraint:
				return journal.Entry{}, errs.ErrConflict
			}
			return journal.Entry{}, errs.ErrConflict
		}
		return journal.Entry{}, err
	}
	return e, nil
}

// List returns all entries ordered by creation time.
func (s *Store) List(ctx context.Context) ([]journal.Entry, error) {
	rows, err := s.pool.Query(ctx, `
        select id, data, created_at, updated_at
        from entries
        order by created_at asc, id asc
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]journal.Entry, 0)
	for rows.Next() {
		var (
			id                   string
			data                 []byte
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e, err := decodeRow(id, data, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get fetches a single entry by id. Absence is reported as ok=false.
func (s *Store) Get(ctx context.Context, id string) (journal.Entry, bool, error) {
	var (
		data                 []byte
		createdAt, updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx, `
        select data, created_at, updated_at
        from entries
        where id = $1
    `, id).Scan(&data, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Entry{}, false, nil
	}
	if err != nil {
		return journal.Entry{}, false, err
	}
	e, err := decodeRow(id, data, createdAt, updatedAt)
	if err != nil {
		return journal.Entry{}, false, err
	}
	return e, true, nil
}

// Update runs a read-modify-write of the whole record inside a
// transaction, merging the patch and refreshing updated_at in both the
// columns and the blob.
func (s *Store) Update(ctx context.Context, id string, p journal.Patch) (journal.Entry, bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return journal.Entry{}, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		data                 []byte
		createdAt, updatedAt time.Time
	)
	err = tx.QueryRow(ctx, `
        select data, created_at, updated_at
        from entries
        where id = $1
        for update
    `, id).Scan(&data, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.Entry{}, false, nil
	}
	if err != nil {
		return journal.Entry{}, false, err
	}
	e, err := decodeRow(id, data, createdAt, updatedAt)
	if err != nil {
		return journal.Entry{}, false, err
	}

	merged := e.Merge(p, time.Now().UTC())
	mergedData, err := json.Marshal(merged)
	if err != nil {
		return journal.Entry{}, false, err
	}
	if _, err := tx.Exec(ctx, `
        update entries
        set data=$2, updated_at=$3
        where id=$1
    `, id, mergedData, merged.UpdatedAt); err != nil {
		return journal.Entry{}, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return journal.Entry{}, false, err
	}
	return merged, true, nil
}

// Delete removes an entry, reporting whether a row existed.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	ct, err := s.pool.Exec(ctx, `delete from entries where id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// DeleteAll removes every entry and returns the number of rows deleted.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	ct, err := s.pool.Exec(ctx, `delete from entries`)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

// decodeRow unmarshals the blob and overwrites its id and timestamp
// copies with the column values, the authoritative source.
func decodeRow(id string, data []byte, createdAt, updatedAt time.Time) (journal.Entry, error) {
	var e journal.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return journal.Entry{}, fmt.Errorf("decode entry %s: %w", id, err)
	}
	e.ID = id
	e.CreatedAt = createdAt.UTC()
	e.UpdatedAt = updatedAt.UTC()
	if e.SchemaVersion == 0 {
		e.SchemaVersion = journal.SchemaVersion
	}
	return e, nil
}
