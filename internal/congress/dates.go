package congress

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the layout accepted for user-entered dates.
const DateLayout = "2006-01-02"

// FormatWireDate renders the calendar date of t as "YYYY-MM-DDT00:00:00Z".
// The date parts are taken in t's own location and the time of day is fixed
// to a literal midnight; no UTC conversion happens.
func FormatWireDate(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02dT00:00:00Z", t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD date in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// LastMonth returns the range from one month before now through now.
func LastMonth(now time.Time) DateRange {
	return DateRange{Start: now.AddDate(0, -1, 0), End: now}
}

// Lookback returns the range covering the last d, ending now. Whole days
// step back by calendar day, so a DST change inside the range does not move
// the start date. Durations of less than a day still cover today.
func Lookback(now time.Time, d time.Duration) DateRange {
	if d <= 0 {
		return LastMonth(now)
	}
	const day = 24 * time.Hour
	start := now.AddDate(0, 0, -int(d/day)).Add(-(d % day))
	return DateRange{Start: start, End: now}
}

// Valid reports whether both ends are set and End is not before Start.
func (r DateRange) Valid() bool {
	if r.Start.IsZero() || r.End.IsZero() {
		return false
	}
	// Fixed-width date strings order the same way the dates do.
	return r.Start.Format(DateLayout) <= r.End.Format(DateLayout)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s → %s", formatDay(r.Start), formatDay(r.End))
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Format(DateLayout)
}

// DisplayDate formats an API date or timestamp as MM/DD/YYYY. Empty input
// yields "N/A" and unparseable input is returned unchanged.
func DisplayDate(s string) string {
	if s == "" {
		return "N/A"
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Local().Format("01/02/2006")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.Format("01/02/2006")
	}
	return s
}
