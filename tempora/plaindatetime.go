// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"math/big"

	"go.tempora.net/iso8601"
)

// A PlainDateTime is a wall-clock date and time with no time zone: a
// PlainDate plus a nanosecond-of-day.
type PlainDateTime struct {
	date      PlainDate
	timeNanos int64 // [0, nanosPerDay)
}

func newPlainDateTime(date PlainDate, hour, min, sec, nsec int) (PlainDateTime, error) {
	if hour < 0 || hour > 23 || min < 0 || min > 59 || sec < 0 || sec > 59 {
		return PlainDateTime{}, rangef("time %02d:%02d:%02d out of range", hour, min, sec)
	}
	if nsec < 0 || int64(nsec) >= nanosPerSecond {
		return PlainDateTime{}, rangef("nanosecond %d out of range", nsec)
	}
	ns := (int64(hour)*3600+int64(min)*60+int64(sec))*nanosPerSecond + int64(nsec)
	return PlainDateTime{date: date, timeNanos: ns}, nil
}

// NewPlainDateTime returns the ISO-calendar wall-clock time
// y-m-d hour:min:sec.nsec.
func NewPlainDateTime(y, m, d, hour, min, sec, nsec int) (PlainDateTime, error) {
	date, err := NewPlainDate(y, m, d)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(date, hour, min, sec, nsec)
}

// Date returns the date part.
func (t PlainDateTime) Date() PlainDate { return t.date }

// Calendar returns the calendar of the date part.
func (t PlainDateTime) Calendar() *Calendar { return t.date.cal }

// WithCalendar returns the same wall-clock time on another calendar.
func (t PlainDateTime) WithCalendar(cal *Calendar) PlainDateTime {
	t.date.cal = cal
	return t
}

// Hour returns the hour, 0-23.
func (t PlainDateTime) Hour() int { return int(t.timeNanos / nanosPerHour) }

// Minute returns the minute, 0-59.
func (t PlainDateTime) Minute() int { return int(t.timeNanos / nanosPerMinute % 60) }

// Second returns the second, 0-59.
func (t PlainDateTime) Second() int { return int(t.timeNanos / nanosPerSecond % 60) }

// Millisecond returns the millisecond, 0-999.
func (t PlainDateTime) Millisecond() int { return int(t.timeNanos / nanosPerMilli % 1000) }

// Microsecond returns the microsecond, 0-999.
func (t PlainDateTime) Microsecond() int { return int(t.timeNanos / nanosPerMicro % 1000) }

// Nanosecond returns the nanosecond, 0-999.
func (t PlainDateTime) Nanosecond() int { return int(t.timeNanos % 1000) }

// nanoOfSecond returns the full sub-second part, 0-999999999.
func (t PlainDateTime) nanoOfSecond() int { return int(t.timeNanos % nanosPerSecond) }

// position returns the wall-clock time's nanosecond position on the
// civil 24-hour scale.
func (t PlainDateTime) position() *big.Int {
	p := new(big.Int).SetInt64(t.date.epochDays())
	p.Mul(p, bigNanosPerDay)
	return p.Add(p, big.NewInt(t.timeNanos))
}

// Add returns the wall-clock time advanced by dur: calendar fields move
// the date on its calendar, time fields move the clock with day
// carries into the date.
func (t PlainDateTime) Add(dur Duration, overflow Overflow) (PlainDateTime, error) {
	ymDate, err := t.date.cal.dateAddYM(t.date, dur.years, dur.months, overflow)
	if err != nil {
		return PlainDateTime{}, err
	}
	total := new(big.Int).Add(big.NewInt(t.timeNanos), dur.timeNanos())
	dayDelta, rem := new(big.Int).QuoRem(total, bigNanosPerDay, new(big.Int))
	if rem.Sign() < 0 {
		dayDelta.Sub(dayDelta, bigOne)
		rem.Add(rem, bigNanosPerDay)
	}
	dd, ok := bigInt64(dayDelta)
	if !ok {
		return PlainDateTime{}, rangef("duration day count overflows")
	}
	ed, ok := addInt64(ymDate.epochDays(), dd)
	if !ok {
		return PlainDateTime{}, rangef("date out of range")
	}
	date, err := plainDateFromEpochDays(ed, t.date.cal)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: date, timeNanos: rem.Int64()}, nil
}

// Subtract returns the wall-clock time moved back by dur.
func (t PlainDateTime) Subtract(dur Duration, overflow Overflow) (PlainDateTime, error) {
	return t.Add(dur.Negated(), overflow)
}

// Until returns the difference from t to other decomposed no higher
// than largest (default days). The calendars must agree.
func (t PlainDateTime) Until(other PlainDateTime, largest Unit) (Duration, error) {
	if t.date.cal.id != other.date.cal.id {
		return Duration{}, invalidf("date-times are on different calendars (%s, %s)", t.date.cal.id, other.date.cal.id)
	}
	if largest == UnitUnspecified {
		largest = UnitDay
	}
	if largest <= UnitHour {
		diff := new(big.Int).Sub(other.position(), t.position())
		sf, err := distributeNanos(diff, largest)
		if err != nil {
			return Duration{}, err
		}
		return makeDuration(0, 0, sf), nil
	}

	// Borrow a day so the time remainder carries the overall sign.
	sign := ComparePlainDateTimes(other, t)
	endDate, timeDiff := other.date, other.timeNanos-t.timeNanos
	var err error
	switch {
	case sign > 0 && timeDiff < 0:
		timeDiff += nanosPerDay
		if endDate, err = plainDateFromEpochDays(endDate.epochDays()-1, endDate.cal); err != nil {
			return Duration{}, err
		}
	case sign < 0 && timeDiff > 0:
		timeDiff -= nanosPerDay
		if endDate, err = plainDateFromEpochDays(endDate.epochDays()+1, endDate.cal); err != nil {
			return Duration{}, err
		}
	}
	dateDur, err := t.date.cal.DateUntil(t.date, endDate, largest)
	if err != nil {
		return Duration{}, err
	}
	sf, err := distributeNanos(big.NewInt(timeDiff), UnitHour)
	if err != nil {
		return Duration{}, err
	}
	sf.weeks, sf.days = dateDur.weeks, dateDur.days
	return makeDuration(dateDur.years, dateDur.months, sf), nil
}

// Since is Until with the operands swapped.
func (t PlainDateTime) Since(other PlainDateTime, largest Unit) (Duration, error) {
	return other.Until(t, largest)
}

// Round rounds the time part to a multiple of increment smallest units
// (day or below), carrying into the date as needed.
func (t PlainDateTime) Round(smallest Unit, increment int64, mode RoundingMode) (PlainDateTime, error) {
	if smallest == UnitUnspecified || smallest > UnitDay {
		return PlainDateTime{}, invalidf("smallestUnit must be a day or smaller")
	}
	if increment == 0 {
		increment = 1
	}
	if err := checkIncrement(smallest, increment); err != nil {
		return PlainDateTime{}, err
	}
	step := stepNanos(smallest, increment)
	rounded := roundToMultiple(t.position(), step, mode)
	days, rem := new(big.Int).QuoRem(rounded, bigNanosPerDay, new(big.Int))
	if rem.Sign() < 0 {
		days.Sub(days, bigOne)
		rem.Add(rem, bigNanosPerDay)
	}
	ed, ok := bigInt64(days)
	if !ok {
		return PlainDateTime{}, rangef("date out of range")
	}
	date, err := plainDateFromEpochDays(ed, t.date.cal)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: date, timeNanos: rem.Int64()}, nil
}

// ComparePlainDateTimes orders two wall-clock times; the calendar does
// not participate.
func ComparePlainDateTimes(a, b PlainDateTime) int {
	if c := ComparePlainDates(a.date, b.date); c != 0 {
		return c
	}
	switch {
	case a.timeNanos < b.timeNanos:
		return -1
	case a.timeNanos > b.timeNanos:
		return 1
	}
	return 0
}

// Equals reports whether the wall-clock times coincide and share a
// calendar.
func (t PlainDateTime) Equals(other PlainDateTime) bool {
	return t.date.Equals(other.date) && t.timeNanos == other.timeNanos
}

// String renders <date>T<time>, with a [u-ca=...] annotation for
// non-ISO calendars.
func (t PlainDateTime) String() string {
	s := iso8601.FormatDate(t.date.year, t.date.month, t.date.day) + "T" +
		iso8601.FormatTime(t.Hour(), t.Minute(), t.Second(), t.nanoOfSecond())
	if t.date.cal.id != "iso8601" {
		s += "[u-ca=" + t.date.cal.id + "]"
	}
	return s
}

// ParsePlainDateTime parses an ISO date-time string; a missing time
// reads as midnight.
func ParsePlainDateTime(s string) (PlainDateTime, error) {
	dt, err := iso8601.ParseDateTime(s)
	if err != nil {
		return PlainDateTime{}, invalidf("%v", err)
	}
	cal := ISO8601
	if dt.Calendar != "" {
		if cal, err = CalendarFor(dt.Calendar); err != nil {
			return PlainDateTime{}, err
		}
	}
	date, err := newPlainDate(dt.Year, dt.Month, dt.Day, cal)
	if err != nil {
		return PlainDateTime{}, err
	}
	return newPlainDateTime(date, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond)
}
