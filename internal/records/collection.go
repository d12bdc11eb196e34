package records

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/patrick-utz/sonorium/internal/models"
	"github.com/patrick-utz/sonorium/internal/shared"
)

// Store is the synchronization primitive the collection delegates to.
// Its persistence protocol is opaque to this package.
type Store interface {
	// List returns the full live collection.
	List(ctx context.Context) ([]models.Record, error)

	// Create persists a new record, assigning identifier and timestamps.
	Create(ctx context.Context, rec models.Record) (models.Record, error)

	// Update applies a partial update to the record matching id.
	Update(ctx context.Context, id string, fields models.RecordUpdate) (models.Record, error)

	// Delete removes the record matching id; absent ids are a no-op.
	Delete(ctx context.Context, id string) error

	// Import bulk-ingests records in merge or replace mode.
	Import(ctx context.Context, records []models.Record, mode models.ImportMode) error
}

// Collection is the read/write facade over the record collection.
//
// Mutations are serialized by a single mutex so a later mutation always
// observes the effects of an earlier completed one (sequential consistency per
// record). Reads run concurrently against the snapshot.
type Collection struct {
	store  Store
	logger *log.Logger

	// writeMu serializes mutations end to end, including the read of the
	// base value inside a toggle.
	writeMu sync.Mutex

	mu       sync.RWMutex
	snapshot []models.Record
	index    map[string]int

	loaded  atomic.Bool
	syncing atomic.Int32
}

// NewCollection wires a Collection to its store.
//
// A nil store is a programming error in the wiring and is rejected here,
// synchronously, before any asynchronous work can happen.
func NewCollection(s Store, logger *log.Logger) (*Collection, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: NewCollection called with nil store", shared.ErrNilStore)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Collection{
		store:  s,
		logger: shared.WithLogger(logger, "component", "collection"),
		index:  map[string]int{},
	}, nil
}

// Loading reports whether the initial load has not yet completed successfully.
func (c *Collection) Loading() bool {
	return !c.loaded.Load()
}

// Syncing reports whether a write or refresh is currently in flight.
func (c *Collection) Syncing() bool {
	return c.syncing.Load() > 0
}

// Refresh forces re-synchronization with the store, replacing the snapshot.
func (c *Collection) Refresh(ctx context.Context) error {
	c.syncing.Add(1)
	defer c.syncing.Add(-1)

	records, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.replaceSnapshot(records)
	c.mu.Unlock()

	c.loaded.Store(true)
	c.logger.Debug("collection refreshed", "records", len(records))
	return nil
}

// Add persists a new record. The store assigns identifier and creation
// timestamp; the payload's ID and timestamps are ignored.
func (c *Collection) Add(ctx context.Context, payload models.Record) (models.Record, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.syncing.Add(1)
	defer c.syncing.Add(-1)

	created, err := c.store.Create(ctx, payload)
	if err != nil {
		return models.Record{}, err
	}

	c.mu.Lock()
	c.index[created.ID] = len(c.snapshot)
	c.snapshot = append(c.snapshot, created)
	c.mu.Unlock()

	return created, nil
}

// Update applies a partial update to the record matching id. A missing id
// fails with the store's not-found error; it is never coerced into a create.
func (c *Collection) Update(ctx context.Context, id string, fields models.RecordUpdate) (models.Record, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.update(ctx, id, fields)
}

// Delete removes the record matching id. Deleting an already-absent id does
// not fail.
func (c *Collection) Delete(ctx context.Context, id string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.syncing.Add(1)
	defer c.syncing.Add(-1)

	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	if i, ok := c.index[id]; ok {
		c.snapshot = append(c.snapshot[:i], c.snapshot[i+1:]...)
		c.reindex()
	}
	c.mu.Unlock()

	return nil
}

// ToggleFavorite flips the favorite flag on the addressed record.
//
// The base value is read under the write lock, so back-to-back toggles each
// observe the previous toggle's result instead of racing to a stale base.
func (c *Collection) ToggleFavorite(ctx context.Context, id string) (models.Record, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	current, ok := c.RecordByID(id)
	if !ok {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}

	next := !current.Favorite
	return c.update(ctx, id, models.RecordUpdate{Favorite: &next})
}

// ToggleOrdered flips the ordered flag on the addressed record.
func (c *Collection) ToggleOrdered(ctx context.Context, id string) (models.Record, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	current, ok := c.RecordByID(id)
	if !ok {
		return models.Record{}, fmt.Errorf("%w: %s", shared.ErrRecordNotFound, id)
	}

	next := !current.Ordered
	return c.update(ctx, id, models.RecordUpdate{Ordered: &next})
}

// Import bulk-ingests records and re-synchronizes the snapshot.
// Replace mode discards the existing collection; merge mode combines by
// identifier with the incoming record winning a collision.
func (c *Collection) Import(ctx context.Context, recs []models.Record, mode models.ImportMode) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.syncing.Add(1)
	defer c.syncing.Add(-1)

	if err := c.store.Import(ctx, recs, mode); err != nil {
		return err
	}

	records, err := c.store.List(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.replaceSnapshot(records)
	c.mu.Unlock()

	c.logger.Info("records imported", "count", len(recs), "mode", mode)
	return nil
}

// RecordByID returns the snapshot record matching id. It never triggers a
// fetch.
func (c *Collection) RecordByID(id string) (models.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return models.Record{}, false
	}
	return c.snapshot[i], true
}

// All returns a copy of the full snapshot.
func (c *Collection) All() []models.Record {
	return c.filter(func(models.Record) bool { return true })
}

// Owned returns the records currently owned.
func (c *Collection) Owned() []models.Record {
	return c.filter(func(r models.Record) bool { return r.Owned })
}

// Wishlist returns the records on the wishlist.
func (c *Collection) Wishlist() []models.Record {
	return c.filter(func(r models.Record) bool { return r.Wishlist })
}

// Favorites returns the records flagged as favorites.
func (c *Collection) Favorites() []models.Record {
	return c.filter(func(r models.Record) bool { return r.Favorite })
}

// Len returns the snapshot size.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snapshot)
}

// update performs the store write and snapshot patch for Update and the
// toggles. Callers hold writeMu.
func (c *Collection) update(ctx context.Context, id string, fields models.RecordUpdate) (models.Record, error) {
	c.syncing.Add(1)
	defer c.syncing.Add(-1)

	updated, err := c.store.Update(ctx, id, fields)
	if err != nil {
		return models.Record{}, err
	}

	c.mu.Lock()
	if i, ok := c.index[id]; ok {
		c.snapshot[i] = updated
	} else {
		c.index[id] = len(c.snapshot)
		c.snapshot = append(c.snapshot, updated)
	}
	c.mu.Unlock()

	return updated, nil
}

// filter returns a copy of the snapshot entries matching keep. Derived views
// recompute from the snapshot only; no I/O.
func (c *Collection) filter(keep func(models.Record) bool) []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Record, 0, len(c.snapshot))
	for _, rec := range c.snapshot {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// replaceSnapshot swaps in a new snapshot. Callers hold mu.
func (c *Collection) replaceSnapshot(records []models.Record) {
	c.snapshot = append(c.snapshot[:0:0], records...)
	c.reindex()
}

// reindex rebuilds the id index. Callers hold mu.
func (c *Collection) reindex() {
	c.index = make(map[string]int, len(c.snapshot))
	for i, rec := range c.snapshot {
		c.index[rec.ID] = i
	}
}
