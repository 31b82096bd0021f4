package calendar

import "time"

// Clock is the single source of "now" for the calendar
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock
type SystemClock struct{}

// Now returns the current local time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}

// FixedDay returns a clock pinned to noon on the given local day
func FixedDay(day, month, year int) FixedClock {
	return FixedClock{At: time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.Local)}
}

// Today returns the clock's current local date
func Today(clock Clock) DateInfo {
	now := clock.Now()
	return fromTime(civil(now.Day(), int(now.Month()), now.Year()))
}

// ThisMonth returns the month of the clock's current local date
func ThisMonth(clock Clock) MonthInfo {
	now := clock.Now()
	return NewMonth(int(now.Month()), now.Year())
}
