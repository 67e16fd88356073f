// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"go.tempora.net/internal/calmath"
	"go.tempora.net/iso8601"
)

// The supported date domain is ±100,000,000 days around the epoch,
// i.e. -271821-04-20 through +275760-09-13.
const (
	maxEpochDays = 100_000_000
	minISOYear   = -271821
	maxISOYear   = 275760
)

func ymdFromEpochDays(days int64) (y, m, d int) {
	return calmath.YMDFromEpochDays(days)
}

// A PlainDate is a calendar date with no time of day and no time zone.
// The canonical representation is the ISO year/month/day triple; the
// calendar only affects numbering (year, era) and field resolution.
// The zero value is 0000-01-00 and invalid; use a constructor.
type PlainDate struct {
	year, month, day int
	cal              *Calendar
}

func newPlainDate(y, m, d int, cal *Calendar) (PlainDate, error) {
	if m < 1 || m > 12 {
		return PlainDate{}, rangef("month %d out of range", m)
	}
	if dim := calmath.DaysInMonth(y, m); d < 1 || d > dim {
		return PlainDate{}, rangef("day %d out of range for %s-%02d", d, iso8601.FormatYear(y), m)
	}
	ed := calmath.EpochDays(y, m, d)
	if ed < -maxEpochDays || ed > maxEpochDays {
		return PlainDate{}, rangef("date %s out of range", iso8601.FormatDate(y, m, d))
	}
	return PlainDate{year: y, month: m, day: d, cal: cal}, nil
}

// NewPlainDate returns the ISO-calendar date y-m-d, or ErrRange if the
// triple is not a valid date in the supported domain.
func NewPlainDate(y, m, d int) (PlainDate, error) {
	return newPlainDate(y, m, d, ISO8601)
}

// NewPlainDateWithCalendar is NewPlainDate on another calendar; y, m,
// and d remain ISO field values.
func NewPlainDateWithCalendar(y, m, d int, cal *Calendar) (PlainDate, error) {
	return newPlainDate(y, m, d, cal)
}

// PlainDateFromEpochDays returns the date the given number of days after
// 1970-01-01, or ErrRange outside ±100,000,000 days.
func PlainDateFromEpochDays(days int64) (PlainDate, error) {
	return plainDateFromEpochDays(days, ISO8601)
}

func plainDateFromEpochDays(days int64, cal *Calendar) (PlainDate, error) {
	if days < -maxEpochDays || days > maxEpochDays {
		return PlainDate{}, rangef("epoch day %d out of range", days)
	}
	y, m, d := calmath.YMDFromEpochDays(days)
	return PlainDate{year: y, month: m, day: d, cal: cal}, nil
}

// EpochDays returns the number of days from 1970-01-01 to the date.
func (d PlainDate) EpochDays() int64 { return d.epochDays() }

func (d PlainDate) epochDays() int64 {
	return calmath.EpochDays(d.year, d.month, d.day)
}

// Calendar returns the date's calendar.
func (d PlainDate) Calendar() *Calendar { return d.cal }

// WithCalendar returns the same ISO date viewed on another calendar.
func (d PlainDate) WithCalendar(cal *Calendar) PlainDate {
	d.cal = cal
	return d
}

// ISOYear returns the proleptic ISO year, regardless of calendar.
func (d PlainDate) ISOYear() int { return d.year }

// Year returns the calendar-numbered year.
func (d PlainDate) Year() int { return d.cal.Year(d) }

// Month returns the month, 1-12.
func (d PlainDate) Month() int { return d.month }

// MonthCode returns the month code, "M01" through "M12".
func (d PlainDate) MonthCode() string { return d.cal.MonthCode(d) }

// Day returns the day of the month.
func (d PlainDate) Day() int { return d.day }

// Era returns the date's era, if its calendar has eras.
func (d PlainDate) Era() (string, bool) { return d.cal.Era(d) }

// EraYear returns the year within the date's era, if its calendar has eras.
func (d PlainDate) EraYear() (int, bool) { return d.cal.EraYear(d) }

// DayOfWeek returns the ISO weekday, Monday=1 through Sunday=7.
func (d PlainDate) DayOfWeek() int { return d.cal.DayOfWeek(d) }

// DayOfYear returns the ordinal day within the year, 1-366.
func (d PlainDate) DayOfYear() int { return d.cal.DayOfYear(d) }

// WeekOfYear returns the ISO week number, 1-53.
func (d PlainDate) WeekOfYear() int { return d.cal.WeekOfYear(d) }

// YearOfWeek returns the ISO week-numbering year.
func (d PlainDate) YearOfWeek() int { return d.cal.YearOfWeek(d) }

// DaysInMonth returns the length of the date's month.
func (d PlainDate) DaysInMonth() int { return d.cal.DaysInMonth(d) }

// DaysInYear returns 365 or 366.
func (d PlainDate) DaysInYear() int { return d.cal.DaysInYear(d) }

// MonthsInYear returns the number of months in the date's year.
func (d PlainDate) MonthsInYear() int { return d.cal.MonthsInYear(d) }

// InLeapYear reports whether the date falls in a leap year.
func (d PlainDate) InLeapYear() bool { return d.cal.InLeapYear(d) }

// With resolves a partial field record against this date and returns
// the result; absent fields keep their current values.
func (d PlainDate) With(f Fields, overflow Overflow) (PlainDate, error) {
	y, m, day := d.year, d.month, d.day
	base := Fields{Year: &y, Month: &m, Day: &day}
	return d.cal.DateFromFields(d.cal.MergeFields(base, f), overflow)
}

// Add returns the date advanced by dur on the date's calendar.
func (d PlainDate) Add(dur Duration, overflow Overflow) (PlainDate, error) {
	return d.cal.DateAdd(d, dur, overflow)
}

// Subtract returns the date moved back by dur.
func (d PlainDate) Subtract(dur Duration, overflow Overflow) (PlainDate, error) {
	return d.cal.DateAdd(d, dur.Negated(), overflow)
}

// Until returns the difference from d to other, decomposed no higher
// than largest (default days). The calendars must agree.
func (d PlainDate) Until(other PlainDate, largest Unit) (Duration, error) {
	if d.cal.id != other.cal.id {
		return Duration{}, invalidf("dates are on different calendars (%s, %s)", d.cal.id, other.cal.id)
	}
	return d.cal.DateUntil(d, other, largest)
}

// Since is Until with the operands swapped.
func (d PlainDate) Since(other PlainDate, largest Unit) (Duration, error) {
	return other.Until(d, largest)
}

// ComparePlainDates orders two dates by their position on the time line;
// the calendar does not participate.
func ComparePlainDates(a, b PlainDate) int {
	switch ae, be := a.epochDays(), b.epochDays(); {
	case ae < be:
		return -1
	case ae > be:
		return 1
	}
	return 0
}

// Equals reports whether the dates coincide and share a calendar.
func (d PlainDate) Equals(other PlainDate) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day &&
		d.cal.id == other.cal.id
}

// AtTime combines the date with a wall-clock time.
func (d PlainDate) AtTime(hour, min, sec, nsec int) (PlainDateTime, error) {
	return newPlainDateTime(d, hour, min, sec, nsec)
}

// String renders YYYY-MM-DD, with a [u-ca=...] annotation for non-ISO
// calendars.
func (d PlainDate) String() string {
	s := iso8601.FormatDate(d.year, d.month, d.day)
	if d.cal.id != "iso8601" {
		s += "[u-ca=" + d.cal.id + "]"
	}
	return s
}

// ParsePlainDate parses an ISO date string, tolerating a trailing time
// and annotations as PlainDateTime strings carry them.
func ParsePlainDate(s string) (PlainDate, error) {
	dt, err := iso8601.ParseDateTime(s)
	if err != nil {
		return PlainDate{}, invalidf("%v", err)
	}
	cal := ISO8601
	if dt.Calendar != "" {
		if cal, err = CalendarFor(dt.Calendar); err != nil {
			return PlainDate{}, err
		}
	}
	return newPlainDate(dt.Year, dt.Month, dt.Day, cal)
}
