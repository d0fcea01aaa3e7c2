// Package store provides SQLite-backed storage for conformance run history.
//
// Each call to RecordRun stores one vector file evaluation:
//   - runs: one row per run, with the kernel configuration and totals
//   - outcomes: one row per case, with the canonical JSON of what the
//     operation produced and any mismatch messages
//
// # Ordering
//
// Runs carry a seq INTEGER assigned from a logical counter inside the write
// transaction. Queries order by seq and never by wall-clock time, so history
// reads are deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
