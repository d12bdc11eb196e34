package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/patrick-utz/sonorium/internal/models"
	"github.com/patrick-utz/sonorium/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testRecord() models.Record {
	return models.Record{
		Artist:   "Kraftwerk",
		Title:    "Trans Europa Express",
		Year:     1977,
		Format:   "vinyl",
		CoverURL: "https://covers.example.org/tee.jpg",
		Owned:    true,
	}
}

func TestRecordStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		before := time.Now()

		created, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		if created.ID == "" {
			t.Error("record ID should be set after creation")
		}
		if created.CreatedAt.Before(before) {
			t.Errorf("created_at %v is earlier than call time %v", created.CreatedAt, before)
		}
	})

	t.Run("Create assigns unique ids", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		seen := map[string]bool{}
		for range 5 {
			rec, err := store.Create(ctx, testRecord())
			if err != nil {
				t.Fatalf("failed to create record: %v", err)
			}
			if seen[rec.ID] {
				t.Fatalf("duplicate id assigned: %s", rec.ID)
			}
			seen[rec.ID] = true
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		created, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		got, err := store.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get record: %v", err)
		}

		if got.ID != created.ID {
			t.Errorf("expected ID %s, got %s", created.ID, got.ID)
		}
		if got.Artist != "Kraftwerk" || got.Title != "Trans Europa Express" {
			t.Errorf("unexpected record content: %+v", got)
		}
		if !got.Owned {
			t.Error("owned flag should round-trip")
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		created, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		notes := "blue vinyl reissue"
		fav := true
		updated, err := store.Update(ctx, created.ID, models.RecordUpdate{Notes: &notes, Favorite: &fav})
		if err != nil {
			t.Fatalf("failed to update record: %v", err)
		}

		if updated.Notes != notes || !updated.Favorite {
			t.Errorf("update not applied: %+v", updated)
		}
		if updated.Artist != created.Artist {
			t.Error("untouched fields must survive a partial update")
		}

		got, err := store.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to re-read record: %v", err)
		}
		if got.Notes != notes {
			t.Error("update not persisted")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		created, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		if err := store.Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete record: %v", err)
		}

		if _, err := store.Get(ctx, created.ID); !errors.Is(err, shared.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound after delete, got %v", err)
		}

		// Idempotent: a second delete of the same id is a no-op
		if err := store.Delete(ctx, created.ID); err != nil {
			t.Errorf("repeated delete should not fail: %v", err)
		}
		if err := store.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("deleting an absent id should not fail: %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		first, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}
		second := testRecord()
		second.Title = "Die Mensch-Maschine"
		if _, err := store.Create(ctx, second); err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("failed to list records: %v", err)
		}

		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != first.ID {
			t.Error("records should be ordered by insertion sequence")
		}
	})
}

func TestRecordStoreImport(t *testing.T) {
	ctx := context.Background()

	t.Run("Replace", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		existing, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		incoming := []models.Record{
			{ID: "imp-1", Artist: "Cluster", Title: "Zuckerzeit", Owned: true},
			{ID: "imp-2", Artist: "Harmonia", Title: "Deluxe", Wishlist: true},
		}

		if err := store.Import(ctx, incoming, models.ImportReplace); err != nil {
			t.Fatalf("failed to import: %v", err)
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("failed to list records: %v", err)
		}

		ids := map[string]bool{}
		for _, rec := range records {
			ids[rec.ID] = true
		}
		if len(ids) != 2 || !ids["imp-1"] || !ids["imp-2"] {
			t.Errorf("replace should leave exactly the imported id set, got %v", ids)
		}
		if ids[existing.ID] {
			t.Error("replace must discard the prior collection")
		}
	})

	t.Run("Merge incoming wins", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		existing, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		incoming := []models.Record{
			{ID: existing.ID, Artist: "Kraftwerk", Title: "Trans-Europe Express (US)", Owned: false, Wishlist: true},
			{ID: "imp-3", Artist: "La Düsseldorf", Title: "Viva"},
		}

		if err := store.Import(ctx, incoming, models.ImportMerge); err != nil {
			t.Fatalf("failed to import: %v", err)
		}

		got, err := store.Get(ctx, existing.ID)
		if err != nil {
			t.Fatalf("failed to get merged record: %v", err)
		}
		if got.Title != "Trans-Europe Express (US)" || !got.Wishlist {
			t.Errorf("incoming record should win on collision, got %+v", got)
		}

		records, err := store.List(ctx)
		if err != nil {
			t.Fatalf("failed to list records: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("merge should union by id, got %d records", len(records))
		}
	})

	t.Run("Merge preserves untouched ids", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		keep, err := store.Create(ctx, testRecord())
		if err != nil {
			t.Fatalf("failed to create record: %v", err)
		}

		if err := store.Import(ctx, []models.Record{{ID: "imp-4", Artist: "Faust", Title: "So Far"}}, models.ImportMerge); err != nil {
			t.Fatalf("failed to import: %v", err)
		}

		if _, err := store.Get(ctx, keep.ID); err != nil {
			t.Errorf("existing id absent from the import must survive a merge: %v", err)
		}
	})

	t.Run("Invalid mode", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		store := NewRecordStore(db)
		err := store.Import(ctx, []models.Record{{Artist: "Can", Title: "Ege Bamyasi"}}, models.ImportMode("append"))
		if !errors.Is(err, shared.ErrInvalidImportMode) {
			t.Errorf("expected ErrInvalidImportMode, got %v", err)
		}
	})
}
