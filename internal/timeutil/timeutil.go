// Package timeutil provides time helpers that consistently work in UTC, to
// avoid time-zone discrepancies across cookie expiry and event timestamps.
package timeutil

import "time"

// Now returns the current instant in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// TimestampNow returns the current Unix timestamp.
func TimestampNow() int64 {
	return time.Now().Unix()
}
