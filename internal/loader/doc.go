// Package loader compiles CUE habit definitions into validated habits.
//
// A definitions directory holds one CUE package whose `habit` struct maps
// labels to definitions:
//
//	package habits
//
//	habit: run: {
//		schedule:   {type: "times_per_week", target: 3}
//		start_date: "2025-12-01"
//	}
//
//	habit: water: {
//		name:       "Drink water"
//		schedule:   {type: "daily"}
//		kind:       {type: "numeric", daily_target: 8}
//		start_date: "2025-12-01"
//		timezone:   "Europe/Berlin"
//	}
//
// Each definition is checked against the embedded #Habit schema, then
// against the habit invariants. Without an explicit id a habit gets a
// UUIDv5 derived from its label, so loading the same files twice yields the
// same IDs.
package loader
