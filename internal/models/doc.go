// Package models defines the domain entities for the record collection manager.
//
// The central type is [Record], a single music record (vinyl, CD, ...) with
// identity, timestamps, and the four status flags the collection views are
// derived from (owned, wishlist, favorite, ordered).
//
// Partial updates are expressed with [RecordUpdate], a tagged update-fields
// struct: a nil field means "leave unchanged", a non-nil field means "set to
// this value", so clearing a field is distinguishable from omitting it.
//
// Bulk ingestion is controlled by [ImportMode]: merge combines by identifier
// (the incoming record wins on collision), replace discards the existing
// collection entirely.
package models
