// Package tasks implements long-running operations over the record collection.
//
// The core abstraction is [Verifier], which checks every record's cover
// artwork URL with rate-limited HTTP requests and classifies the outcome per
// record. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks
