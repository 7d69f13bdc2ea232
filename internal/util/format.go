package util

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	m := total / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatHz formats a frequency as a compact axis label: "20", "440",
// "1.2k", "22k".
func FormatHz(hz float64) string {
	if hz < 0 {
		hz = 0
	}
	if hz < 999.5 {
		return fmt.Sprintf("%d", int(math.Round(hz)))
	}
	k := hz / 1000
	if k < 9.95 {
		return fmt.Sprintf("%.1fk", k)
	}
	return fmt.Sprintf("%.0fk", k)
}
