package game

import (
	"fmt"
	"time"
)

// pacingRatio maps a tick interval onto the 0..1 height of a pacing bar.
func pacingRatio(d, budget time.Duration) float64 {
	if budget <= 0 || d <= 0 {
		return 0
	}
	return min(float64(d)/float64(budget), 1)
}

// formatUptime formats a duration as MM:SS, or H:MM:SS past the first hour.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
