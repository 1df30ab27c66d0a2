package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LoadZone resolves a timezone name.
//
// IANA names ("Pacific/Kiritimati", "America/New_York") go through
// time.LoadLocation. Fixed offsets written as "UTC+14", "UTC-5", "UTC+05:30"
// or "GMT-03:00" become time.FixedZone values named exactly as given, so a
// zone survives a round trip through ZoneName.
func LoadZone(name string) (*time.Location, error) {
	if name == "" || name == "UTC" || name == "Z" {
		return time.UTC, nil
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}
	offset, ok := parseOffset(name)
	if !ok {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	return time.FixedZone(name, offset), nil
}

// ZoneName returns the name LoadZone accepts for loc.
func ZoneName(loc *time.Location) string {
	return resolve(loc).String()
}

// parseOffset parses "UTC+H", "UTC-HH:MM" (or the GMT equivalents) into seconds east of UTC.
func parseOffset(name string) (int, bool) {
	var rest string
	switch {
	case strings.HasPrefix(name, "UTC"):
		rest = name[3:]
	case strings.HasPrefix(name, "GMT"):
		rest = name[3:]
	default:
		return 0, false
	}
	if len(rest) < 2 || (rest[0] != '+' && rest[0] != '-') {
		return 0, false
	}
	neg := rest[0] == '-'
	rest = rest[1:]

	hoursPart, minutesPart, hasMinutes := strings.Cut(rest, ":")
	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 || hours > 14 {
		return 0, false
	}
	minutes := 0
	if hasMinutes {
		minutes, err = strconv.Atoi(minutesPart)
		if err != nil || minutes < 0 || minutes >= 60 {
			return 0, false
		}
	}

	secs := hours*3600 + minutes*60
	if neg {
		secs = -secs
	}
	return secs, true
}
