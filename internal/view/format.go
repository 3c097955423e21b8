package view

import "time"

const dateLayout = "Jan 2, 2006 15:04"

// formatTime renders a timestamp for display, or the placeholder when nil or
// zero.
func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return placeholder
	}
	return t.UTC().Format(dateLayout)
}

func formatTimeValue(t time.Time) string {
	return formatTime(&t)
}
