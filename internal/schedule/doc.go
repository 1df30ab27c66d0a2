// Package schedule decides which calendar days a habit expects and counts
// them over a range.
//
// All functions are pure. Range bounds are clamped to the habit's own
// [start, end] days before anything is counted, so a habit is never expected
// before it starts or after it ends.
package schedule
