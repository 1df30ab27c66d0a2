// Package calendar resolves instants to civil calendar days.
//
// Every function takes its timezone explicitly. There is no package-level
// "current timezone": a day key is only meaningful together with the zone it
// was resolved in, and two instants denote the same calendar day when their
// resolved (year, month, day) components match, even if the zones differ.
//
// A nil *time.Location is treated as UTC.
//
// Weekdays use ISO numbering: Monday=1 ... Sunday=7. Weeks are Monday-anchored.
package calendar
