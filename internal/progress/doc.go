// Package progress aggregates schedule and completion decisions into the
// numbers callers display: per-day indicators, weekly quota progress, range
// completion rates, streaks and reminder decisions.
//
// Every function is a pure computation over the snapshot it is handed. The
// zone is always an explicit argument; Evaluator exists only to supply a
// default one.
package progress
