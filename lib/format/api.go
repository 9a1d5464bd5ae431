/*
Package format provides convenience functions for formatting.
*/
package format

import (
	"time"
)

var (
	TimeFormatSeconds string = "02 Jan 2006 15:04:05 MST"
)

// Duration is similar to the time.Duration.String method from the
// standard library but is more readable, showing only 3 digits of
// precision when the duration is less than 1 minute.
func Duration(duration time.Duration) string {
	return formatDuration(duration)
}

// FormatBytes returns a human-friendly representation of size (in bytes),
// using binary prefixes (i.e. GiB).
func FormatBytes(size uint64) string {
	return formatBytes(size)
}
