package format

import (
	"fmt"
	"time"
)

func formatBytes(size uint64) string {
	if size>>30 > 100 || (size > 0 && size&(1<<30-1) == 0) {
		return fmt.Sprintf("%d GiB", size>>30)
	} else if size>>20 > 100 || (size > 0 && size&(1<<20-1) == 0) {
		return fmt.Sprintf("%d MiB", size>>20)
	} else if size>>10 > 100 || (size > 0 && size&(1<<10-1) == 0) {
		return fmt.Sprintf("%d KiB", size>>10)
	} else {
		return fmt.Sprintf("%d B", size)
	}
}

func formatDuration(duration time.Duration) string {
	if ns := duration.Nanoseconds(); ns < 1000 {
		return fmt.Sprintf("%dns", ns)
	} else if us := float64(duration) / float64(time.Microsecond); us < 1000 {
		return fmt.Sprintf("%.3gµs", us)
	} else if ms := float64(duration) / float64(time.Millisecond); ms < 1000 {
		return fmt.Sprintf("%.3gms", ms)
	} else if s := float64(duration) / float64(time.Second); s < 60 {
		return fmt.Sprintf("%.3gs", s)
	} else {
		duration -= duration % time.Second
		day := time.Hour * 24
		if duration < day {
			return duration.String()
		}
		days := duration / day
		duration %= day
		return fmt.Sprintf("%dd%s", days, duration)
	}
}
