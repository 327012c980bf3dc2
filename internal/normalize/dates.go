package normalize

import (
	"strings"
	"time"
)

// Common date formats found in source extracts.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseDate attempts to parse a date string in multiple common formats.
// Returns nil if the input is empty or unparseable.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, fmt := range dateFormats {
		if t, err := time.Parse(fmt, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

// DateID encodes a calendar date as its YYYYMMDD key. The encoding is a
// pure function of the date, so the same value serves as both the date
// dimension's natural key and the fact-side foreign key.
func DateID(t time.Time) string {
	return t.Format("20060102")
}

// DateIDFromString parses a raw date string and returns its YYYYMMDD key,
// or nil if the input is empty or unparseable.
func DateIDFromString(s string) *string {
	t := ParseDate(s)
	if t == nil {
		return nil
	}
	id := DateID(*t)
	return &id
}

// TimeID encodes a wall-clock "HH:MM" or "HH:MM:SS" string as its HHMM key.
// Returns nil if the input is nil, empty, or not a valid time of day.
func TimeID(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	var t time.Time
	var err error
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err = time.Parse(layout, v); err == nil {
			id := t.Format("1504")
			return &id
		}
	}
	return nil
}
