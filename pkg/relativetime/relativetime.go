// Package relativetime formats timestamps the way the screens show them.
// It exists so the formatting lives in exactly one place.
package relativetime

import (
	"fmt"
	"time"
)

// Format renders t relative to now: "just now", minutes, hours, days and
// weeks as compact suffixes, and an absolute date beyond four weeks.
// A timestamp in the future is treated as "just now".
func Format(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 28*24*time.Hour:
		return fmt.Sprintf("%dw", int(d.Hours()/(24*7)))
	default:
		return t.Format("Jan 2, 2006")
	}
}
