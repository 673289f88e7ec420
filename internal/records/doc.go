// Package records holds the data model for discovered services: address
// bindings, the ordered set that merges them, and the concurrency-safe
// store shared between the scanner and the UI.
//
// # Model
//
// A Binding is one discovered fact: a host name paired with a single
// address of one family (IPv4 or IPv6). Bindings are grouped into a Set,
// which keeps at most one binding per (family, host) slot; applying a
// newer binding for an occupied slot replaces the older address. The Set
// maintains a deterministic order (family, then address, then host) so
// repeated renders of the same contents always agree.
//
// # Store
//
// Store wraps a Set with a mutex so the background scan task can apply
// batches while the render path takes snapshots. Snapshots are
// independent copies; readers never observe a batch half-applied, and no
// store method blocks beyond the duration of the lock.
package records
