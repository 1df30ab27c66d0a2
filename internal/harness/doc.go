// Package harness runs YAML scenarios through the store and the engine.
//
// A scenario declares habits, logs and checks. The runner loads the habits
// and logs into a fresh in-memory store, reads them back through the same
// windowed queries the CLI uses, evaluates each check, and records what the
// engine computed. The record is compared against the check's expectation
// and, in tests, against a golden snapshot.
//
//	name: daily_two_of_three
//	description: Two of three days completed
//	timezone: UTC
//	habits:
//	  - id: run
//	    schedule: {type: daily}
//	    start_date: "2025-12-01"
//	logs:
//	  - {habit: run, date: "2025-12-01"}
//	  - {habit: run, date: "2025-12-03"}
//	checks:
//	  - {type: range_progress, habit: run, from: "2025-12-01", to: "2025-12-03", expect: 0.6667}
package harness
