package postgresadapter

import "time"

// SystemClock supplies UTC wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
