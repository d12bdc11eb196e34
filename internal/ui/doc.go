// Package ui implements the interactive terminal interface for browsing and
// editing the record collection.
//
// The entry point is [Model], a bubbletea model over the collection facade.
// [Menu] is the stateless action menu: it reflects the batch-selection flag it
// is given and forwards user intent (toggle batch mode, verify covers) through
// callbacks without holding state of its own.
package ui
