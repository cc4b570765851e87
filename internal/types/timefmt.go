package types

import "time"

// ISOTime formats t in UTC as "2006-01-02T15:04:05+00:00", adding
// microseconds only when they are non-zero.
func ISOTime(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/1000 != 0 {
		return t.Format("2006-01-02T15:04:05.000000+00:00")
	}
	return t.Format("2006-01-02T15:04:05+00:00")
}

// ShortLabel formats t for chart axes ("May 01 12:30").
func ShortLabel(t time.Time) string {
	return t.UTC().Format("Jan 02 15:04")
}
