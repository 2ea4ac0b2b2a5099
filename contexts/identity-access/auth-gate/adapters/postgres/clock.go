package postgresadapter

import "time"

// SystemClock is the runtime clock; token expiry derives from it.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
