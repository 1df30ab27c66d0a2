// Package habit defines the habit and log snapshots the engine evaluates.
//
// This package contains the data model only. The engine packages (schedule,
// completion, progress) import habit; habit imports nothing internal except
// calendar.
//
// Key design constraints:
//   - Schedule and Kind are closed sum types: sealed interfaces with an
//     unexported marker method. Every consumer type-switches over all variants.
//   - A Log keeps the timezone it was created in. That timezone decides which
//     calendar day the log represents for every later query.
//   - Construction-time invariants are checked by New/Validate. The engine
//     assumes validated input and never re-checks.
//   - Content-addressed log IDs use RFC 8785 canonical JSON with domain
//     separation, so importing the same log twice is idempotent.
package habit
