package dashboard

import (
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

// dateKey returns the calendar-day portion of a date or timestamp string.
func dateKey(raw string) string {
	if len(raw) >= len(dateLayout) {
		return raw[:len(dateLayout)]
	}
	return raw
}

func parseDateKey(key string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, dateKey(key), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func formatDateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// windowDateKeys lists every calendar day from start to end inclusive.
func windowDateKeys(start, end time.Time) []string {
	keys := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		keys = append(keys, formatDateKey(d))
	}
	return keys
}

func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// roundPercent clamps v to [0,100] and rounds half up.
func roundPercent(v float64) int {
	return int(math.Floor(clampPercent(v) + 0.5))
}

func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func percentOf(part, total int) int {
	if total <= 0 {
		return 0
	}
	return roundPercent(float64(part) / float64(total) * 100)
}
