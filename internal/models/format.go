package models

import (
	"fmt"
	"math"
)

const NotAvailable = "N/A"

// FormatTime renders minutes as "1h 2m 03s", or "2m 03s" below one hour.
// Seconds are rounded half to even.
func FormatTime(minutes float64) string {
	totalSeconds := int64(math.RoundToEven(minutes * 60))
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm %02ds", hours, mins, secs)
	}
	return fmt.Sprintf("%dm %02ds", mins, secs)
}

func FormatTimePtr(minutes *float64) string {
	if minutes == nil {
		return NotAvailable
	}
	return FormatTime(*minutes)
}

// FormatPace renders minutes per km as "5:30 /km". Both parts are truncated.
func FormatPace(pace float64) string {
	if math.IsNaN(pace) || math.IsInf(pace, 0) {
		return "0:00 /km"
	}
	mins := int(pace)
	frac := math.Mod(pace, 1)
	if frac < 0 {
		frac += 1
	}
	secs := int(frac * 60)
	return fmt.Sprintf("%d:%02d /km", mins, secs)
}
