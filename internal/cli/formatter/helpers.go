package formatter

import (
	"fmt"
	"time"
)

// FormatMinutes renders a minute count as "3h30" or "45m".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}

// FormatClock renders the time-of-day component.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatRatio renders an adjustment ratio, dimming the neutral case.
func FormatRatio(r float64) string {
	if r == 1.0 {
		return Dim("1.00")
	}
	s := fmt.Sprintf("%.2f", r)
	if r < 1.0 {
		return StyleYellow.Render(s)
	}
	return StyleBlue.Render(s)
}

// Truncate shortens a string to max runes with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
