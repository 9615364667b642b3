package model

import "time"

// TimestampPrecision is the finest unit every supported driver stores.
// gorm's mysql driver creates datetime(3) columns.
const TimestampPrecision = time.Millisecond

// Now returns the current UTC time at TimestampPrecision, so a record
// returned from a write equals the row read back later.
func Now() time.Time {
	return time.Now().UTC().Truncate(TimestampPrecision)
}
