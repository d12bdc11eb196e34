// Package store provides the SQLite persistence layer for the record collection.
//
// [RecordStore] is the source of truth the collection facade synchronizes
// against. It handles CRUD operations, soft deletes, sequence generation, and
// bulk imports in merge or replace mode.
//
// Semantics the facade relies on:
//   - Create assigns the identifier and both timestamps; callers never pick ids.
//   - Update addresses an existing record and fails with
//     [shared.ErrRecordNotFound] on a missing id. It never creates one.
//   - Delete is idempotent: deleting an absent id is a no-op.
//   - Import with [models.ImportMerge] upserts by identifier (incoming wins);
//     with [models.ImportReplace] it discards the existing collection first.
package store
