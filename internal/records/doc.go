// Package records exposes the collection facade: a single point of access for
// reading the record collection and performing mutations against its backing
// store.
//
// [Collection] keeps an in-memory snapshot of the last successfully
// synchronized state. Reads ([Collection.RecordByID], the derived views) are
// synchronous, cheap, and never touch the store; mutations go through the
// store first and the snapshot is updated only on success, so the views always
// reflect the latest synchronized state. Store errors propagate to the caller
// unmodified — the facade never swallows them.
//
// The facade is an explicitly constructed dependency: [NewCollection] rejects
// a nil store at wiring time instead of failing later inside a call stack.
package records
