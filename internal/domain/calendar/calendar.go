package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a day or month falls outside the calendar
var ErrInvalidDate = errors.New("invalid date")

// Weekday numbers, Monday first
const (
	Monday     = 1
	Sunday     = 7
	DaysInWeek = 7
)

// DateInfo identifies a single calendar day
type DateInfo struct {
	// The day of the month (1–31)
	Date int `json:"date" yaml:"date" mapstructure:"date"`
	// The day of the week (1–7, monday-sunday)
	Weekday int `json:"weekday" yaml:"weekday" mapstructure:"weekday"`
	// The month (1–12)
	Month int `json:"month" yaml:"month" mapstructure:"month"`
	Year  int `json:"year" yaml:"year" mapstructure:"year"`
}

// MonthInfo summarizes a month's length and boundary weekdays
type MonthInfo struct {
	StartWeekday int `json:"startWeekday"`
	EndWeekday   int `json:"endWeekday"`
	// Last day of the month (28–31)
	LastDay int `json:"lastDay"`
	Month   int `json:"month"`
	Year    int `json:"year"`
}

// weekdayNumber maps Go's Sunday=0 numbering onto Monday=1..Sunday=7
func weekdayNumber(wd time.Weekday) int {
	if wd == time.Sunday {
		return Sunday
	}
	return int(wd)
}

func civil(day, month, year int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func fromTime(t time.Time) DateInfo {
	return DateInfo{
		Date:    t.Day(),
		Weekday: weekdayNumber(t.Weekday()),
		Month:   int(t.Month()),
		Year:    t.Year(),
	}
}

func monthFromTime(t time.Time) MonthInfo {
	first := civil(1, int(t.Month()), t.Year())
	last := first.AddDate(0, 1, -1)

	return MonthInfo{
		StartWeekday: weekdayNumber(first.Weekday()),
		EndWeekday:   weekdayNumber(last.Weekday()),
		LastDay:      last.Day(),
		Month:        int(first.Month()),
		Year:         first.Year(),
	}
}

// WeekdayOf returns the weekday (1–7, monday-sunday) of the given day
func WeekdayOf(day, month, year int) int {
	return weekdayNumber(civil(day, month, year).Weekday())
}

// IsLeapYear reports whether year has a February 29th
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month of year
func DaysInMonth(month, year int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// NewDate builds a validated DateInfo with its weekday filled in.
func NewDate(day, month, year int) (DateInfo, error) {
	if month < 1 || month > 12 {
		return DateInfo{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if last := DaysInMonth(month, year); day < 1 || day > last {
		return DateInfo{}, fmt.Errorf("%w: day %d out of range for %02d.%d (1-%d)", ErrInvalidDate, day, month, year, last)
	}
	return fromTime(civil(day, month, year)), nil
}

// Normalize validates d and recomputes its weekday
func Normalize(d DateInfo) (DateInfo, error) {
	return NewDate(d.Date, d.Month, d.Year)
}

// MonthFromDate returns the month containing the given day
func MonthFromDate(day, month, year int) MonthInfo {
	return monthFromTime(civil(day, month, year))
}

// NewMonth returns the MonthInfo for month of year
func NewMonth(month, year int) MonthInfo {
	return MonthFromDate(1, month, year)
}

// NextDay returns the day after d
func NextDay(d DateInfo) DateInfo {
	return fromTime(civil(d.Date, d.Month, d.Year).AddDate(0, 0, 1))
}

// PreviousDay returns the day before d
func PreviousDay(d DateInfo) DateInfo {
	return fromTime(civil(d.Date, d.Month, d.Year).AddDate(0, 0, -1))
}

// NextMonth returns the month after m
func NextMonth(m MonthInfo) MonthInfo {
	return monthFromTime(civil(1, m.Month, m.Year).AddDate(0, 1, 0))
}

// PreviousMonth returns the month before m
func PreviousMonth(m MonthInfo) MonthInfo {
	return monthFromTime(civil(1, m.Month, m.Year).AddDate(0, -1, 0))
}

// DateFromMonth creates a DateInfo for a day inside m.
//
// A day past m.LastDay is not rejected; it rolls into the following month.
func DateFromMonth(m MonthInfo, day int) DateInfo {
	return fromTime(civil(day, m.Month, m.Year))
}

// EqualDate compares day, month and year. The weekday is derived and ignored.
func EqualDate(a, b DateInfo) bool {
	return a.Date == b.Date && a.Month == b.Month && a.Year == b.Year
}

// String formats the date as DD.MM.YYYY
func (d DateInfo) String() string {
	return fmt.Sprintf("%02d.%02d.%d", d.Date, d.Month, d.Year)
}

// Dates lists the days of the month, 1 through LastDay
func (m MonthInfo) Dates() []int {
	dates := make([]int, m.LastDay)
	for i := range dates {
		dates[i] = i + 1
	}
	return dates
}

// IsSunday reports whether the given day of the month is a Sunday
func (m MonthInfo) IsSunday(date int) bool {
	return (m.StartWeekday+date-2)%DaysInWeek == DaysInWeek-1
}

// IsInFirstWeek reports whether date lies in the month's first calendar week
func (m MonthInfo) IsInFirstWeek(date int) bool {
	return date <= DaysInWeek+1-m.StartWeekday
}

// IsToday reports whether date of this month is today
func (m MonthInfo) IsToday(date int, today DateInfo) bool {
	return date == today.Date && m.Month == today.Month && m.Year == today.Year
}

func (m MonthInfo) String() string {
	return fmt.Sprintf("%02d.%d", m.Month, m.Year)
}
