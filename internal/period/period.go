// Package period converts instants to a fixed-offset civil calendar and
// derives the day/week/month boundaries every aggregate query is keyed on.
//
// The calendar runs in a single fixed UTC offset with no daylight-saving
// transitions (Asia/Jakarta, UTC+7, by default). All boundaries are
// half-open ranges [start, end).
package period

import (
	"fmt"
	"time"
)

// weekdayLabels are Indonesian short weekday names, Monday first.
var weekdayLabels = [7]string{"Sen", "Sel", "Rab", "Kam", "Jum", "Sab", "Min"}

// Clock resolves civil dates in one fixed UTC offset. The now function is
// injectable so tests can pin "today".
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a Clock for the given fixed UTC offset in hours.
func NewClock(offsetHours int) *Clock {
	return NewClockAt(offsetHours, time.Now)
}

// NewClockAt creates a Clock with an explicit now function.
func NewClockAt(offsetHours int, now func() time.Time) *Clock {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return &Clock{
		loc: time.FixedZone(name, offsetHours*3600),
		now: now,
	}
}

// Location returns the fixed-offset location.
func (c *Clock) Location() *time.Location { return c.loc }

// Now returns the current instant.
func (c *Clock) Now() time.Time { return c.now() }

// DayKey returns the "YYYY-MM-DD" civil date of the instant in the fixed
// zone. Day keys partition daily aggregates and quota counters.
func (c *Clock) DayKey(t time.Time) string {
	return t.In(c.loc).Format("2006-01-02")
}

// TodayKey returns the day key for the current instant.
func (c *Clock) TodayKey() string {
	return c.DayKey(c.now())
}

// StartOfDay returns civil midnight of the instant's day in the fixed zone.
func (c *Clock) StartOfDay(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// DayRange returns [civil midnight, next civil midnight) for the instant's day.
func (c *Clock) DayRange(t time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(t)
	return start, start.Add(24 * time.Hour)
}

// MonthRange returns the month boundary [day 1 midnight, next month's day 1
// midnight) as absolute instants. Month is 1-12.
func (c *Clock) MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, c.loc)
	end := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, c.loc)
	return start, end
}

// WeekdayIndex returns the ISO-like weekday index of the instant's civil
// day: Monday=0 .. Sunday=6.
func (c *Clock) WeekdayIndex(t time.Time) int {
	// time.Weekday has Sunday=0; rotate so Monday=0.
	return (int(t.In(c.loc).Weekday()) + 6) % 7
}

// WeekRange returns the Monday-to-Sunday 7-day window containing the
// reference instant, as [Monday midnight, next Monday midnight).
func (c *Clock) WeekRange(ref time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(ref).AddDate(0, 0, -c.WeekdayIndex(ref))
	return start, start.AddDate(0, 0, 7)
}

// DaysInMonth returns the number of civil days in the month.
func (c *Clock) DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, c.loc).Day()
}

// WeeksInMonth returns the number of Monday-aligned week buckets
// overlapping the month: ceil((firstWeekdayIndex + daysInMonth) / 7).
func (c *Clock) WeeksInMonth(year, month int) int {
	first, _ := c.MonthRange(year, month)
	return (c.WeekdayIndex(first) + c.DaysInMonth(year, month) + 6) / 7
}

// ClampWeekIndex clamps a 1-based week-of-month index into
// [1, WeeksInMonth]. Out-of-range descriptors are clamped, not rejected.
func (c *Clock) ClampWeekIndex(year, month, weekIndex int) int {
	if weekIndex < 1 {
		return 1
	}
	if max := c.WeeksInMonth(year, month); weekIndex > max {
		return max
	}
	return weekIndex
}

// WeekStartForIndex returns the Monday of the Nth (1-based, clamped) week
// bucket of the month. The first bucket's Monday may fall in the previous
// month.
func (c *Clock) WeekStartForIndex(year, month, weekIndex int) time.Time {
	weekIndex = c.ClampWeekIndex(year, month, weekIndex)
	first, _ := c.MonthRange(year, month)
	firstMonday := first.AddDate(0, 0, -c.WeekdayIndex(first))
	return firstMonday.AddDate(0, 0, (weekIndex-1)*7)
}

// DayLabel returns the Indonesian short weekday label of the instant's
// civil day (Sen..Min).
func (c *Clock) DayLabel(t time.Time) string {
	return weekdayLabels[c.WeekdayIndex(t)]
}

// DayOfMonth returns the civil day-of-month of the instant.
func (c *Clock) DayOfMonth(t time.Time) int {
	return t.In(c.loc).Day()
}

// ParseMonth parses a "YYYY-MM" period descriptor.
func ParseMonth(s string) (year, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	return t.Year(), int(t.Month()), nil
}

// FormatMonth renders the instant's civil month as "YYYY-MM".
func (c *Clock) FormatMonth(t time.Time) string {
	return t.In(c.loc).Format("2006-01")
}
