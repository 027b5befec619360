package swap

import (
	"fmt"
	"time"
)

const minutesPerDay = 24 * 60

const gameDateLayout = "2006-01-02"

// ParseGameDate parses a YYYY-MM-DD calendar date into UTC midnight.
func ParseGameDate(value string) (time.Time, error) {
	parsed, err := time.Parse(gameDateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse game date %q: want YYYY-MM-DD", value)
	}
	return parsed.UTC(), nil
}

// ParseClock parses an HH:MM wall-clock time into minutes from midnight.
func ParseClock(value string) (int, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse clock time %q: want HH:MM", value)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// FormatGameDate renders a slot date back to YYYY-MM-DD.
func FormatGameDate(date time.Time) string {
	return date.Format(gameDateLayout)
}

// FormatClock renders minutes from midnight back to HH:MM.
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

func sameGameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
