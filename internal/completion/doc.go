// Package completion decides whether logs, and the calendar days they fall
// on, count as completed.
//
// A log belongs to the calendar day it was created for, resolved in its own
// stored timezone (falling back to the caller's zone). Several logs on one day
// never accumulate: the day is completed as soon as any single log is.
package completion
