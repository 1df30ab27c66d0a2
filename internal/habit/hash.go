package habit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/roach88/ritual/internal/calendar"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm change.
const (
	DomainLog   = "ritual/log/v1"
	DomainHabit = "ritual/habit/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// LogID computes the content-addressed ID of a log: its habit, the calendar
// day it represents, the zone that day was resolved in, and its value.
// The same entry imported twice gets the same ID.
//
// A log without a zone has no fixed day until a caller supplies a fallback,
// so its raw instant is hashed instead.
func LogID(l Log) string {
	obj := map[string]any{"habit_id": l.HabitID}
	if l.Timezone == nil {
		obj["instant"] = l.Date.UnixNano()
	} else {
		obj["day"] = calendar.DateOf(l.Date, l.Timezone).String()
		obj["timezone"] = calendar.ZoneName(l.Timezone)
	}
	if l.Value != nil {
		obj["value"] = formatQuantity(*l.Value)
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		// Only strings and an int64 go into obj, so this cannot fail.
		panic(fmt.Sprintf("LogID: %v", err))
	}
	return hashWithDomain(DomainLog, canonical)
}

// Digest returns a content hash of the habit definition. Two habits with the
// same digest evaluate identically for any log set.
func Digest(h Habit) (string, error) {
	obj := map[string]any{
		"id":         h.ID,
		"schedule":   h.Schedule.String(),
		"kind":       h.Kind.String(),
		"start_date": h.StartDate.UTC().Format("2006-01-02T15:04:05Z"),
		"is_active":  h.IsActive,
	}
	if h.EndDate != nil {
		obj["end_date"] = h.EndDate.UTC().Format("2006-01-02T15:04:05Z")
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("Digest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainHabit, canonical), nil
}

// formatQuantity renders v as the shortest decimal that round-trips.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
