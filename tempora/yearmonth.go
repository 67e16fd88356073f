// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"

	"go.tempora.net/internal/calmath"
	"go.tempora.net/iso8601"
)

// A PlainYearMonth is a month of a specific year with no day: the
// "March 2024" of a billing period or a statement.
type PlainYearMonth struct {
	year, month int
	cal         *Calendar
}

// NewPlainYearMonth returns the ISO-calendar year-month y-m.
func NewPlainYearMonth(y, m int) (PlainYearMonth, error) {
	if m < 1 || m > 12 {
		return PlainYearMonth{}, rangef("month %d out of range", m)
	}
	if y < minISOYear || y > maxISOYear {
		return PlainYearMonth{}, rangef("year %s out of range", iso8601.FormatYear(y))
	}
	return PlainYearMonth{year: y, month: m, cal: ISO8601}, nil
}

// Calendar returns the year-month's calendar.
func (ym PlainYearMonth) Calendar() *Calendar { return ym.cal }

// ISOYear returns the proleptic ISO year.
func (ym PlainYearMonth) ISOYear() int { return ym.year }

// Year returns the calendar-numbered year.
func (ym PlainYearMonth) Year() int { return ym.cal.scheme.yearOf(ym.year) }

// Month returns the month, 1-12.
func (ym PlainYearMonth) Month() int { return ym.month }

// MonthCode returns the month code, "M01" through "M12".
func (ym PlainYearMonth) MonthCode() string { return fmt.Sprintf("M%02d", ym.month) }

// DaysInMonth returns the length of the month.
func (ym PlainYearMonth) DaysInMonth() int { return calmath.DaysInMonth(ym.year, ym.month) }

// DaysInYear returns 365 or 366.
func (ym PlainYearMonth) DaysInYear() int { return calmath.DaysInYear(ym.year) }

// InLeapYear reports whether the year-month falls in a leap year.
func (ym PlainYearMonth) InLeapYear() bool { return calmath.IsLeapYear(ym.year) }

// ToPlainDate combines the year-month with a day of the month.
func (ym PlainYearMonth) ToPlainDate(day int) (PlainDate, error) {
	return newPlainDate(ym.year, ym.month, day, ym.cal)
}

// Add returns the year-month advanced by the calendar portion of dur;
// sub-month fields must be zero.
func (ym PlainYearMonth) Add(dur Duration) (PlainYearMonth, error) {
	if dur.weeks != 0 || dur.days != 0 || dur.timeNanos().Sign() != 0 {
		return PlainYearMonth{}, invalidf("year-month arithmetic takes only years and months")
	}
	first, err := ym.ToPlainDate(1)
	if err != nil {
		return PlainYearMonth{}, err
	}
	d, err := ym.cal.dateAddYM(first, dur.years, dur.months, OverflowConstrain)
	if err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{year: d.year, month: d.month, cal: ym.cal}, nil
}

// Subtract returns the year-month moved back by dur.
func (ym PlainYearMonth) Subtract(dur Duration) (PlainYearMonth, error) {
	return ym.Add(dur.Negated())
}

// Until returns the whole years and months from ym to other.
func (ym PlainYearMonth) Until(other PlainYearMonth) (Duration, error) {
	if ym.cal.id != other.cal.id {
		return Duration{}, invalidf("year-months are on different calendars (%s, %s)", ym.cal.id, other.cal.id)
	}
	months := int64(other.year-ym.year)*12 + int64(other.month-ym.month)
	var sf subFields
	return makeDuration(months/12, months%12, sf), nil
}

// ComparePlainYearMonths orders two year-months; the calendar does not
// participate.
func ComparePlainYearMonths(a, b PlainYearMonth) int {
	switch {
	case a.year != b.year:
		if a.year < b.year {
			return -1
		}
		return 1
	case a.month != b.month:
		if a.month < b.month {
			return -1
		}
		return 1
	}
	return 0
}

// Equals reports whether the year-months coincide and share a calendar.
func (ym PlainYearMonth) Equals(other PlainYearMonth) bool {
	return ym.year == other.year && ym.month == other.month && ym.cal.id == other.cal.id
}

// String renders YYYY-MM, with a [u-ca=...] annotation for non-ISO
// calendars.
func (ym PlainYearMonth) String() string {
	s := fmt.Sprintf("%s-%02d", iso8601.FormatYear(ym.year), ym.month)
	if ym.cal.id != "iso8601" {
		s += "[u-ca=" + ym.cal.id + "]"
	}
	return s
}

// ParsePlainYearMonth parses "YYYY-MM", or a full date whose day is
// ignored.
func ParsePlainYearMonth(s string) (PlainYearMonth, error) {
	y, m, err := iso8601.ParseYearMonth(s)
	if err != nil {
		return PlainYearMonth{}, invalidf("%v", err)
	}
	return NewPlainYearMonth(y, m)
}

// A PlainMonthDay is a month and day with no year: a birthday or an
// anniversary. Day validity is judged in a reference leap year, so
// February 29 is a valid month-day.
type PlainMonthDay struct {
	month, day int
	cal        *Calendar
}

// NewPlainMonthDay returns the ISO-calendar month-day m-d.
func NewPlainMonthDay(m, d int) (PlainMonthDay, error) {
	if m < 1 || m > 12 {
		return PlainMonthDay{}, rangef("month %d out of range", m)
	}
	if dim := calmath.DaysInMonth(monthDayReferenceYear, m); d < 1 || d > dim {
		return PlainMonthDay{}, rangef("day %d out of range for month %d", d, m)
	}
	return PlainMonthDay{month: m, day: d, cal: ISO8601}, nil
}

// Calendar returns the month-day's calendar.
func (md PlainMonthDay) Calendar() *Calendar { return md.cal }

// Month returns the month, 1-12.
func (md PlainMonthDay) Month() int { return md.month }

// MonthCode returns the month code, "M01" through "M12".
func (md PlainMonthDay) MonthCode() string { return fmt.Sprintf("M%02d", md.month) }

// Day returns the day of the month.
func (md PlainMonthDay) Day() int { return md.day }

// ToPlainDate places the month-day in a year. February 29 in a common
// year constrains or rejects per overflow.
func (md PlainMonthDay) ToPlainDate(year int, overflow Overflow) (PlainDate, error) {
	day := md.day
	if dim := calmath.DaysInMonth(year, md.month); day > dim {
		if overflow == OverflowReject {
			return PlainDate{}, rangef("day %d out of range for %s-%02d", day, iso8601.FormatYear(year), md.month)
		}
		day = dim
	}
	return newPlainDate(year, md.month, day, md.cal)
}

// Equals reports whether the month-days coincide and share a calendar.
func (md PlainMonthDay) Equals(other PlainMonthDay) bool {
	return md.month == other.month && md.day == other.day && md.cal.id == other.cal.id
}

// String renders MM-DD, with a [u-ca=...] annotation for non-ISO
// calendars.
func (md PlainMonthDay) String() string {
	s := fmt.Sprintf("%02d-%02d", md.month, md.day)
	if md.cal.id != "iso8601" {
		s += "[u-ca=" + md.cal.id + "]"
	}
	return s
}

// ParsePlainMonthDay parses "MM-DD" or "--MM-DD".
func ParsePlainMonthDay(s string) (PlainMonthDay, error) {
	m, d, err := iso8601.ParseMonthDay(s)
	if err != nil {
		return PlainMonthDay{}, invalidf("%v", err)
	}
	return NewPlainMonthDay(m, d)
}
