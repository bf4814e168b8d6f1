// Package store provides SQLite-backed durable storage for registry
// snapshots.
//
// The store implements an append-only versioned log:
//   - Snapshots: immutable definition records forming predecessor chains
//   - Snapshot sets: batch labels grouping one producer run's writes
//
// Chain invariants:
//   - The active snapshot for an object is the row with no successor;
//     publishing a successor implicitly supersedes it (no deactivate step).
//   - UNIQUE(predecessor_id) ensures at most one successor per snapshot, so
//     a concurrent duplicate publish fails loudly instead of racing.
//   - version_major is carried forward across drift updates; version_minor
//     increments by exactly 1 per successor.
//
// Definitions are serialized with canonical JSON (reg.MarshalCanonical) so
// stored bytes are deterministic and hash-comparable.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
