package activity

import (
	"fmt"
	"strings"
	"time"
)

// ParseTimestamp parses the ISO-8601 timestamps found in Takeout JSON.
// Values without an offset are taken as UTC. The result is always UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %q", s)
}

// Zone abbreviations seen in Takeout HTML exports, as minutes east of UTC.
var zoneOffsets = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"EST":  -5 * 60,
	"EDT":  -4 * 60,
	"CST":  -6 * 60,
	"CDT":  -5 * 60,
	"MST":  -7 * 60,
	"MDT":  -6 * 60,
	"PST":  -8 * 60,
	"PDT":  -7 * 60,
	"AKST": -9 * 60,
	"AKDT": -8 * 60,
	"HST":  -10 * 60,
	"BST":  60,
	"CET":  60,
	"CEST": 2 * 60,
	"EET":  2 * 60,
	"EEST": 3 * 60,
	"IST":  5*60 + 30,
	"JST":  9 * 60,
	"KST":  9 * 60,
	"AEST": 10 * 60,
	"AEDT": 11 * 60,
}

// parseDisplayTimestamp parses the locale-formatted timestamps of Takeout
// HTML pages, e.g. "Jan 5, 2024, 10:31:02 PM EST".
func parseDisplayTimestamp(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 {
		return time.Time{}, false
	}
	offset := 0
	if off, ok := zoneOffsets[fields[len(fields)-1]]; ok {
		offset = off
		fields = fields[:len(fields)-1]
	}
	value := strings.Join(fields, " ")
	layouts := []string{
		"Jan 2, 2006, 3:04:05 PM",
		"Jan 2, 2006, 15:04:05",
		"2 Jan 2006, 15:04:05",
		"2 Jan 2006, 3:04:05 PM",
		"2006-01-02, 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.Add(-time.Duration(offset) * time.Minute).UTC(), true
		}
	}
	return time.Time{}, false
}
