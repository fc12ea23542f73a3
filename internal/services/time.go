package services

import "time"

// Timestamps are persisted as unix milliseconds so ordering is numeric and
// driver-independent.

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
