// Package state holds the in-memory data shared between background work and
// the UI.
//
// Collection is a mutex-guarded, ordered list of records keyed by an integer
// id. Fetches replace it wholesale; the mutation controller inserts, replaces
// and removes single records. Readers always receive a cloned slice, so a
// render never observes a half-applied mutation.
//
//	fetch.LoadDashboard ──Replace──┐
//	mutation.Controller ──Prepend──┤──> Collection ──Snapshot──> collection.View.Derive ──> UI
//	                    ──Remove───┘
//
// Health is the prober's view of the remote API: consecutive failures, the
// last error and the circuit breaker state. Two failures in a row mark the
// API offline, which the header shows as a badge.
//
// Both types are safe for concurrent use. Collections are created with
// NewCollection; the zero Health is ready to use.
//
// Nothing here is persisted.
package state
