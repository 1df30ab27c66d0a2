// Package store provides SQLite-backed storage for habits and their logs.
//
// The store is the repository collaborator of the engine: it hands out
// immutable snapshots and never evaluates progress itself.
//
//   - Habits are keyed by ID and upserted; PutHabit reports whether the
//     stored definition changed.
//   - Logs are keyed by their content-addressed ID and written with
//     ON CONFLICT DO NOTHING, so importing the same log twice is harmless.
//   - Log reads by date use the worldwide-buffered raw timestamp window and
//     leave day identity to the engine.
//
// Reads are ordered deterministically (seq, then id) so reports built from
// the store are reproducible.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Logs must reference an existing habit
package store
