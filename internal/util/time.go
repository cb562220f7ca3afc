package util

import "fmt"

// FormatRunTime renders a run time in seconds using the display convention
// shared by every record embed: "MM:SS.mmm", with an hour segment only when
// the run lasted an hour or longer.
func FormatRunTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	hours := total / 3600
	minutes := (total / 60) % 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%06.3f", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%06.3f", minutes, secs)
}
