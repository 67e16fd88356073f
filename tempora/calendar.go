// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"math/big"

	"go.tempora.net/internal/calmath"
)

// A Calendar interprets ISO date triples under one of the supported
// calendar systems. The set is closed: the package-level singletons are
// the only instances, all stateless and safe for concurrent use. Every
// calendar here shares the ISO month/day structure and delegates it to
// calmath; the variants differ only in year numbering and eras, which
// each contributes through its era scheme.
type Calendar struct {
	id     string
	scheme eraScheme
}

// An eraScheme is the variant point of a Calendar: year numbering and
// the mapping between ISO years and (era, eraYear) pairs.
type eraScheme interface {
	// eraOf assigns an era and era year to an ISO date.
	// ok is false for calendars without eras.
	eraOf(y, m, d int) (era string, eraYear int, ok bool)
	// isoYearOf inverts an (era, eraYear) pair to an ISO year.
	isoYearOf(era string, eraYear int) (int, error)
	// yearOf is the calendar-numbered year of an ISO year.
	yearOf(isoYear int) int
}

// The calendar singletons.
var (
	ISO8601   = &Calendar{id: "iso8601", scheme: isoScheme{}}
	Gregorian = &Calendar{id: "gregory", scheme: gregoryScheme{}}
	Buddhist  = &Calendar{id: "buddhist", scheme: buddhistScheme{}}
	Japanese  = &Calendar{id: "japanese", scheme: japaneseScheme{}}
	ROC       = &Calendar{id: "roc", scheme: rocScheme{}}
)

var calendars = map[string]*Calendar{
	"iso8601":  ISO8601,
	"gregory":  Gregorian,
	"buddhist": Buddhist,
	"japanese": Japanese,
	"roc":      ROC,
}

// CalendarFor returns the calendar singleton for an identifier, or
// ErrUnsupportedCalendar.
func CalendarFor(id string) (*Calendar, error) {
	if c, ok := calendars[id]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("calendar %q: %w", id, ErrUnsupportedCalendar)
}

// ID returns the calendar identifier, e.g. "iso8601" or "japanese".
func (c *Calendar) ID() string { return c.id }

func (c *Calendar) String() string { return c.id }

// Year returns the calendar-numbered year of a date (for example the
// Buddhist year, ISO + 543).
func (c *Calendar) Year(date PlainDate) int { return c.scheme.yearOf(date.year) }

// Era returns the era of a date, if the calendar has eras.
func (c *Calendar) Era(date PlainDate) (string, bool) {
	era, _, ok := c.scheme.eraOf(date.year, date.month, date.day)
	return era, ok
}

// EraYear returns the year within the date's era, if the calendar has eras.
func (c *Calendar) EraYear(date PlainDate) (int, bool) {
	_, y, ok := c.scheme.eraOf(date.year, date.month, date.day)
	return y, ok
}

// MonthCode returns the date's month code, "M01" through "M12".
func (c *Calendar) MonthCode(date PlainDate) string {
	return fmt.Sprintf("M%02d", date.month)
}

// MonthsInYear returns 12 for every supported calendar.
func (c *Calendar) MonthsInYear(date PlainDate) int { return 12 }

// DaysInMonth returns the length of the date's month.
func (c *Calendar) DaysInMonth(date PlainDate) int {
	return calmath.DaysInMonth(date.year, date.month)
}

// DaysInYear returns 365 or 366.
func (c *Calendar) DaysInYear(date PlainDate) int { return calmath.DaysInYear(date.year) }

// InLeapYear reports whether the date's year is an ISO leap year.
func (c *Calendar) InLeapYear(date PlainDate) bool { return calmath.IsLeapYear(date.year) }

// DayOfWeek returns the ISO weekday, Monday=1 through Sunday=7.
func (c *Calendar) DayOfWeek(date PlainDate) int {
	return calmath.DayOfWeek(date.epochDays())
}

// DayOfYear returns the ordinal day within the year, 1-366.
func (c *Calendar) DayOfYear(date PlainDate) int {
	return calmath.DayOfYear(date.year, date.month, date.day)
}

// WeekOfYear returns the ISO week number, 1-53.
func (c *Calendar) WeekOfYear(date PlainDate) int {
	_, week := calmath.ISOWeek(date.year, date.month, date.day)
	return week
}

// YearOfWeek returns the ISO week-numbering year, which can differ from
// the calendar year near year boundaries.
func (c *Calendar) YearOfWeek(date PlainDate) int {
	wy, _ := calmath.ISOWeek(date.year, date.month, date.day)
	return wy
}

// Fields is a partial field record as delivered by the lexical layer.
// Nil pointers are absent fields. Year may instead be given as an
// Era/EraYear pair, and Month as a MonthCode.
type Fields struct {
	Year      *int
	Month     *int
	MonthCode *string
	Day       *int
	Era       *string
	EraYear   *int
}

// FieldNames returns the field names this calendar consumes, given the
// names the caller intends to supply: era calendars extend a "year"
// request with "era" and "eraYear".
func (c *Calendar) FieldNames(names []string) []string {
	out := append([]string(nil), names...)
	if c.id == "iso8601" {
		return out
	}
	for _, n := range names {
		if n == "year" {
			return append(out, "era", "eraYear")
		}
	}
	return out
}

// MergeFields overlays additional onto base. Supplying any of the year
// group (year, era, eraYear) or the month group (month, monthCode)
// replaces the whole group, so stale alternates never leak through.
func (c *Calendar) MergeFields(base, additional Fields) Fields {
	merged := base
	if additional.Year != nil || additional.Era != nil || additional.EraYear != nil {
		merged.Year, merged.Era, merged.EraYear = additional.Year, additional.Era, additional.EraYear
	}
	if additional.Month != nil || additional.MonthCode != nil {
		merged.Month, merged.MonthCode = additional.Month, additional.MonthCode
	}
	if additional.Day != nil {
		merged.Day = additional.Day
	}
	return merged
}

// resolveYear produces the ISO year from a field record, inverting the
// era numbering when the year is given as an era pair.
func (c *Calendar) resolveYear(f Fields) (int, error) {
	switch {
	case f.Year != nil:
		return *f.Year, nil
	case f.Era != nil && f.EraYear != nil:
		return c.scheme.isoYearOf(*f.Era, *f.EraYear)
	}
	return 0, invalidf("year (or era and eraYear) is required")
}

// resolveMonth produces the month number, reconciling month and
// monthCode when both are present.
func (c *Calendar) resolveMonth(f Fields, overflow Overflow) (int, error) {
	m := 0
	if f.MonthCode != nil {
		code := *f.MonthCode
		if len(code) != 3 || code[0] != 'M' || code[1] < '0' || code[1] > '9' || code[2] < '0' || code[2] > '9' {
			return 0, invalidf("malformed month code %q", code)
		}
		m = int(code[1]-'0')*10 + int(code[2]-'0')
		if m < 1 || m > 12 {
			return 0, rangef("month code %q out of range", code)
		}
		if f.Month != nil && *f.Month != m {
			return 0, invalidf("month %d conflicts with month code %q", *f.Month, code)
		}
		return m, nil
	}
	if f.Month == nil {
		return 0, invalidf("month (or monthCode) is required")
	}
	m = *f.Month
	switch {
	case m >= 1 && m <= 12:
	case overflow == OverflowConstrain && m > 12:
		m = 12
	case overflow == OverflowConstrain && m < 1:
		m = 1
	default:
		return 0, rangef("month %d out of range", m)
	}
	return m, nil
}

// resolveDay applies the overflow policy to a day-of-month.
func resolveDay(y, m, day int, overflow Overflow) (int, error) {
	dim := calmath.DaysInMonth(y, m)
	switch {
	case day >= 1 && day <= dim:
		return day, nil
	case overflow == OverflowConstrain && day > dim:
		return dim, nil
	case overflow == OverflowConstrain && day < 1:
		return 1, nil
	}
	return 0, rangef("day %d out of range for %04d-%02d", day, y, m)
}

// DateFromFields resolves a field record to a date on this calendar.
// Out-of-range days clamp under OverflowConstrain and fail with ErrRange
// under OverflowReject.
func (c *Calendar) DateFromFields(f Fields, overflow Overflow) (PlainDate, error) {
	if !overflow.valid() {
		return PlainDate{}, invalidf("unknown overflow policy %d", int(overflow))
	}
	y, err := c.resolveYear(f)
	if err != nil {
		return PlainDate{}, err
	}
	m, err := c.resolveMonth(f, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	if f.Day == nil {
		return PlainDate{}, invalidf("day is required")
	}
	d, err := resolveDay(y, m, *f.Day, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(y, m, d, c)
}

// YearMonthFromFields resolves a field record to a year-month.
func (c *Calendar) YearMonthFromFields(f Fields, overflow Overflow) (PlainYearMonth, error) {
	if !overflow.valid() {
		return PlainYearMonth{}, invalidf("unknown overflow policy %d", int(overflow))
	}
	y, err := c.resolveYear(f)
	if err != nil {
		return PlainYearMonth{}, err
	}
	m, err := c.resolveMonth(f, overflow)
	if err != nil {
		return PlainYearMonth{}, err
	}
	if _, err := newPlainDate(y, m, 1, c); err != nil {
		return PlainYearMonth{}, err
	}
	return PlainYearMonth{year: y, month: m, cal: c}, nil
}

// MonthDayFromFields resolves a field record to a month-day. Day
// validity is judged against a leap reference year, so M02-29 is a valid
// month-day.
func (c *Calendar) MonthDayFromFields(f Fields, overflow Overflow) (PlainMonthDay, error) {
	if !overflow.valid() {
		return PlainMonthDay{}, invalidf("unknown overflow policy %d", int(overflow))
	}
	m, err := c.resolveMonth(f, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	if f.Day == nil {
		return PlainMonthDay{}, invalidf("day is required")
	}
	d, err := resolveDay(monthDayReferenceYear, m, *f.Day, overflow)
	if err != nil {
		return PlainMonthDay{}, err
	}
	return PlainMonthDay{month: m, day: d, cal: c}, nil
}

// monthDayReferenceYear anchors month-day validation; 1972 is the usual
// reference leap year.
const monthDayReferenceYear = 1972

// dateAddYM adds years, then months, re-resolving the day-of-month under
// the overflow policy at each step, so constraining Jan 31 by one month
// yields the last day of February.
func (c *Calendar) dateAddYM(date PlainDate, years, months int64, overflow Overflow) (PlainDate, error) {
	y64 := int64(date.year) + years
	if y64 > maxISOYear+1 || y64 < minISOYear-1 {
		return PlainDate{}, rangef("year %d out of range", y64)
	}
	y, m := int(y64), date.month
	d, err := resolveDay(y, m, date.day, overflow)
	if err != nil {
		return PlainDate{}, err
	}

	total := int64(m-1) + months
	y64 = int64(y) + floorDiv(total, 12)
	if y64 > maxISOYear+1 || y64 < minISOYear-1 {
		return PlainDate{}, rangef("year %d out of range", y64)
	}
	y, m = int(y64), int(floorMod(total, 12))+1
	if d, err = resolveDay(y, m, d, overflow); err != nil {
		return PlainDate{}, err
	}
	return newPlainDate(y, m, d, c)
}

// DateAdd adds a duration to a date: years, then months, re-resolving
// the day-of-month under the overflow policy at each step, then weeks,
// days, and whole days of the time portion as exact day counts, which
// can never overflow a valid day-of-month.
func (c *Calendar) DateAdd(date PlainDate, dur Duration, overflow Overflow) (PlainDate, error) {
	if !overflow.valid() {
		return PlainDate{}, invalidf("unknown overflow policy %d", int(overflow))
	}
	ym, err := c.dateAddYM(date, dur.years, dur.months, overflow)
	if err != nil {
		return PlainDate{}, err
	}
	dayDelta, ok := bigInt64(new(big.Int).Quo(dur.timeNanos(), bigNanosPerDay))
	if !ok {
		return PlainDate{}, rangef("duration day count overflows")
	}
	ed, ok := addInt64(ym.epochDays(), dayDelta)
	if !ok {
		return PlainDate{}, rangef("date out of range")
	}
	return plainDateFromEpochDays(ed, c)
}

// DateUntil returns the signed difference from a to b. Years and months
// are stepped off greedily in the direction of b without crossing it;
// the remainder becomes days via the epoch-day difference, optionally
// divided into fixed seven-day weeks.
func (c *Calendar) DateUntil(a, b PlainDate, largest Unit) (Duration, error) {
	if largest == UnitUnspecified {
		largest = UnitDay
	}
	diff := b.epochDays() - a.epochDays()
	switch largest {
	case UnitDay:
		return Duration{days: diff}, nil
	case UnitWeek:
		return Duration{weeks: diff / 7, days: diff % 7}, nil
	case UnitMonth, UnitYear:
		pos := new(big.Int).SetInt64(b.epochDays())
		pos.Mul(pos, bigNanosPerDay)
		var years, months int64
		anchor := a
		if largest == UnitYear {
			ky, _, _, err := bracketUnits(a, pos, UnitYear)
			if err != nil {
				return Duration{}, err
			}
			years = ky
			if anchor, err = c.dateAddYM(a, ky, 0, OverflowConstrain); err != nil {
				return Duration{}, err
			}
		}
		km, _, _, err := bracketUnits(anchor, pos, UnitMonth)
		if err != nil {
			return Duration{}, err
		}
		months = km
		last, err := c.dateAddYM(anchor, 0, km, OverflowConstrain)
		if err != nil {
			return Duration{}, err
		}
		return Duration{years: years, months: months, days: b.epochDays() - last.epochDays()}, nil
	}
	return Duration{}, invalidf("unknown unit %s for date difference", largest)
}

// --- era schemes ---

type isoScheme struct{}

func (isoScheme) eraOf(y, m, d int) (string, int, bool) { return "", 0, false }
func (isoScheme) yearOf(isoYear int) int                { return isoYear }
func (isoScheme) isoYearOf(era string, eraYear int) (int, error) {
	return 0, invalidf("calendar iso8601 has no era %q", era)
}

type gregoryScheme struct{}

func (gregoryScheme) eraOf(y, m, d int) (string, int, bool) {
	if y >= 1 {
		return "ce", y, true
	}
	return "bce", 1 - y, true // ISO year 0 is 1 BCE
}

func (gregoryScheme) yearOf(isoYear int) int { return isoYear }

func (gregoryScheme) isoYearOf(era string, eraYear int) (int, error) {
	switch era {
	case "ce":
		return eraYear, nil
	case "bce":
		return 1 - eraYear, nil
	}
	return 0, invalidf("calendar gregory has no era %q", era)
}

type buddhistScheme struct{}

func (buddhistScheme) eraOf(y, m, d int) (string, int, bool) { return "be", y + 543, true }
func (buddhistScheme) yearOf(isoYear int) int                { return isoYear + 543 }
func (buddhistScheme) isoYearOf(era string, eraYear int) (int, error) {
	if era != "be" {
		return 0, invalidf("calendar buddhist has no era %q", era)
	}
	return eraYear - 543, nil
}

type rocScheme struct{}

func (rocScheme) eraOf(y, m, d int) (string, int, bool) {
	if y >= 1912 {
		return "roc", y - 1911, true
	}
	return "before-roc", 1912 - y, true
}

func (rocScheme) yearOf(isoYear int) int { return isoYear - 1911 }

func (rocScheme) isoYearOf(era string, eraYear int) (int, error) {
	switch era {
	case "roc":
		return eraYear + 1911, nil
	case "before-roc":
		return 1912 - eraYear, nil
	}
	return 0, invalidf("calendar roc has no era %q", era)
}

type japaneseScheme struct{}

// japaneseEras lists modern era starts in order; a date belongs to the
// latest era whose start is not after it.
var japaneseEras = []struct {
	name             string
	year, month, day int
}{
	{"meiji", 1868, 1, 1},
	{"taisho", 1912, 7, 30},
	{"showa", 1926, 12, 25},
	{"heisei", 1989, 1, 8},
	{"reiwa", 2019, 5, 1},
}

func (japaneseScheme) eraOf(y, m, d int) (string, int, bool) {
	for i := len(japaneseEras) - 1; i >= 0; i-- {
		e := japaneseEras[i]
		if y > e.year || (y == e.year && (m > e.month || (m == e.month && d >= e.day))) {
			return e.name, y - e.year + 1, true
		}
	}
	// Before Meiji the proleptic ISO numbering stands in; there is no
	// era-year count.
	return "japanese", y, true
}

func (japaneseScheme) yearOf(isoYear int) int { return isoYear }

func (japaneseScheme) isoYearOf(era string, eraYear int) (int, error) {
	if era == "japanese" {
		return eraYear, nil
	}
	for _, e := range japaneseEras {
		if e.name == era {
			return e.year + eraYear - 1, nil
		}
	}
	return 0, invalidf("calendar japanese has no era %q", era)
}
