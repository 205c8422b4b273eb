package timeband

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinutesPerDay bounds every minute-of-day value handled by this package.
const MinutesPerDay = 24 * 60

// ToMinutes converts an "HH:mm" (24-hour) string to minutes since midnight.
func ToMinutes(t string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(t), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:mm", t)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", t, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", t)
	}
	return hh*60 + mm, nil
}

// FormatMinutes renders a minute-of-day value as "HH:mm".
// Values are normalized into [0,1440) first.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Wrap normalizes a (start,end) minute pair so that end is strictly after
// start. A shift whose end is at or before its start crosses midnight and
// gets its end pushed into the next day: Wrap(1380, 180) = (1380, 1620).
func Wrap(start, end int) (int, int) {
	if end <= start {
		end += MinutesPerDay
	}
	return start, end
}

// Overlaps reports whether two half-open minute ranges intersect.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}

// HoursFromMinutes converts a minute count to decimal hours rounded to
// 2 places. All hour totals cross the API boundary through here.
func HoursFromMinutes(m int) float64 {
	return round2(float64(m) / 60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
