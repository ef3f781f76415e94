package chart

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds as "H:MM:SS", or "M:SS" under an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatPace renders a minutes-per-mile pace as "M:SS /mi".
func FormatPace(minutesPerMile float64) string {
	if minutesPerMile <= 0 {
		return "-"
	}
	totalSec := int(math.Round(minutesPerMile * 60))
	return fmt.Sprintf("%d:%02d /mi", totalSec/60, totalSec%60)
}
