package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/patrick-utz/sonorium/internal/models"
	"github.com/patrick-utz/sonorium/internal/shared"
)

const recordColumns = `id, sequence, artist, title, year, format, cover_url, notes,
		owned, wishlist, favorite, ordered, created_at, updated_at, deleted_at`

// RecordStore persists [models.Record] entities in SQLite.
//
// All reads exclude soft-deleted rows; deletes set deleted_at rather than
// removing rows so an import can resurrect a previously deleted identifier.
type RecordStore struct {
	db *sql.DB
}

// NewRecordStore creates a new RecordStore with the given database connection
func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

// execer abstracts *sql.DB and *sql.Tx for helpers used inside and outside transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nextSequence atomically increments and returns the next sequence number for records.
//
// Sequence numbers provide stable human-readable ordering; they are not
// exposed in output.
func nextSequence(ctx context.Context, q execer) (int, error) {
	if _, err := q.ExecContext(ctx, "UPDATE records_sequence SET value = value + 1 WHERE id = 1"); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := q.QueryRowContext(ctx, "SELECT value FROM records_sequence WHERE id = 1").Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}

// Create inserts a new record with a generated ID, sequence, and timestamps.
// The returned record carries the assigned identity fields.
func (s *RecordStore) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	if err := rec.Validate(); err != nil {
		return models.Record{}, fmt.Errorf("validation failed: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequence, err := nextSequence(ctx, tx)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now()
	rec.ID = shared.GenerateID()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := insertRecord(ctx, tx, rec, sequence); err != nil {
		return models.Record{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Record{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return rec, nil
}

// Get retrieves a record by ID, excluding soft-deleted records
func (s *RecordStore) Get(ctx context.Context, id string) (models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE id = ? AND deleted_at IS NULL
	`

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	return rec, nil
}

// List retrieves all live records ordered by sequence
func (s *RecordStore) List(ctx context.Context) ([]models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE deleted_at IS NULL
		ORDER BY sequence ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Update applies a partial update to the record matching id.
//
// The read-modify-write runs in one transaction so concurrent updates never
// clobber each other with a stale base value. A missing id yields
// [shared.ErrRecordNotFound]; Update never promotes a missing record into a
// new one.
func (s *RecordStore) Update(ctx context.Context, id string, fields models.RecordUpdate) (models.Record, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE id = ? AND deleted_at IS NULL
	`
	current, err := scanRecord(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}

	updated := fields.Apply(current)
	if err := updated.Validate(); err != nil {
		return models.Record{}, fmt.Errorf("validation failed: %w", err)
	}
	updated.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, `
		UPDATE records
		SET artist = ?, title = ?, year = ?, format = ?, cover_url = ?, notes = ?,
			owned = ?, wishlist = ?, favorite = ?, ordered = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`,
		updated.Artist,
		updated.Title,
		updated.Year,
		updated.Format,
		updated.CoverURL,
		updated.Notes,
		updated.Owned,
		updated.Wishlist,
		updated.Favorite,
		updated.Ordered,
		updated.UpdatedAt,
		id,
	)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to update record: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return models.Record{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return updated, nil
}

// Delete soft-deletes a record by ID. Deleting an absent id is a no-op.
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE records
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}

// Import bulk-ingests records in a single transaction.
//
// Replace mode soft-deletes the current collection before inserting; merge
// mode upserts by identifier with the incoming record winning a collision
// (including resurrecting a soft-deleted id). Imported records without an id
// get one assigned; zero timestamps are filled with the import time.
func (s *RecordStore) Import(ctx context.Context, records []models.Record, mode models.ImportMode) error {
	if mode != models.ImportMerge && mode != models.ImportReplace {
		return fmt.Errorf("%w: %q", shared.ErrInvalidImportMode, mode)
	}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("validation failed for record %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	if mode == models.ImportReplace {
		if _, err := tx.ExecContext(ctx, "UPDATE records SET deleted_at = ? WHERE deleted_at IS NULL", now); err != nil {
			return fmt.Errorf("failed to clear collection: %w", err)
		}
	}

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = shared.GenerateID()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		rec.UpdatedAt = now

		if err := upsertRecord(ctx, tx, rec); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}

// insertRecord writes a fresh row for rec with the given sequence number.
func insertRecord(ctx context.Context, q execer, rec models.Record, sequence int) error {
	query := `
		INSERT INTO records (id, sequence, artist, title, year, format, cover_url, notes,
			owned, wishlist, favorite, ordered, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := q.ExecContext(ctx, query,
		rec.ID,
		sequence,
		rec.Artist,
		rec.Title,
		rec.Year,
		rec.Format,
		rec.CoverURL,
		rec.Notes,
		rec.Owned,
		rec.Wishlist,
		rec.Favorite,
		rec.Ordered,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	return nil
}

// upsertRecord inserts rec or, on an id collision, overwrites the existing row
// (incoming wins) and clears any soft delete.
func upsertRecord(ctx context.Context, q execer, rec models.Record) error {
	sequence, err := nextSequence(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `
		INSERT INTO records (id, sequence, artist, title, year, format, cover_url, notes,
			owned, wishlist, favorite, ordered, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			artist = excluded.artist,
			title = excluded.title,
			year = excluded.year,
			format = excluded.format,
			cover_url = excluded.cover_url,
			notes = excluded.notes,
			owned = excluded.owned,
			wishlist = excluded.wishlist,
			favorite = excluded.favorite,
			ordered = excluded.ordered,
			updated_at = excluded.updated_at,
			deleted_at = NULL
	`

	_, err = q.ExecContext(ctx, query,
		rec.ID,
		sequence,
		rec.Artist,
		rec.Title,
		rec.Year,
		rec.Format,
		rec.CoverURL,
		rec.Notes,
		rec.Owned,
		rec.Wishlist,
		rec.Favorite,
		rec.Ordered,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}

	return nil
}

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one row of recordColumns into a [models.Record].
func scanRecord(sc scanner) (models.Record, error) {
	var (
		rec       models.Record
		sequence  int
		deletedAt sql.NullTime
	)

	err := sc.Scan(
		&rec.ID,
		&sequence,
		&rec.Artist,
		&rec.Title,
		&rec.Year,
		&rec.Format,
		&rec.CoverURL,
		&rec.Notes,
		&rec.Owned,
		&rec.Wishlist,
		&rec.Favorite,
		&rec.Ordered,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return models.Record{}, err
	}

	return rec, nil
}
