package postgresadapter

import "time"

// SystemClock satisfies ports.Clock with UTC wall time. Ballot
// timestamps must be UTC so the trend query's date bucketing is stable.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
