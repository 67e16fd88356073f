// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"go.tempora.net/iso8601"
)

// A ZonedDateTime is an instant paired with a time zone and calendar.
// Only the instant is state; every civil reading is derived from the
// zone at access time, so a value never holds a stale offset.
type ZonedDateTime struct {
	instant Instant
	zone    *TimeZone
	cal     *Calendar
}

// NewZonedDateTime pairs an instant with a zone and calendar (nil for
// ISO).
func NewZonedDateTime(t Instant, zone *TimeZone, cal *Calendar) (ZonedDateTime, error) {
	if zone == nil {
		return ZonedDateTime{}, invalidf("zoned date-time requires a time zone")
	}
	if cal == nil {
		cal = ISO8601
	}
	return ZonedDateTime{instant: t, zone: zone, cal: cal}, nil
}

// ZonedFromPlainDateTime resolves a wall-clock time in a zone under the
// given disambiguation policy.
func ZonedFromPlainDateTime(dt PlainDateTime, zone *TimeZone, d Disambiguation) (ZonedDateTime, error) {
	if zone == nil {
		return ZonedDateTime{}, invalidf("zoned date-time requires a time zone")
	}
	t, err := zone.InstantFor(dt, d)
	if err != nil {
		return ZonedDateTime{}, err
	}
	return ZonedDateTime{instant: t, zone: zone, cal: dt.date.cal}, nil
}

// Instant returns the underlying absolute time.
func (z ZonedDateTime) Instant() Instant { return z.instant }

// TimeZone returns the time zone.
func (z ZonedDateTime) TimeZone() *TimeZone { return z.zone }

// Calendar returns the calendar.
func (z ZonedDateTime) Calendar() *Calendar { return z.cal }

// WithTimeZone returns the same instant viewed in another zone.
func (z ZonedDateTime) WithTimeZone(zone *TimeZone) (ZonedDateTime, error) {
	if zone == nil {
		return ZonedDateTime{}, invalidf("zoned date-time requires a time zone")
	}
	z.zone = zone
	return z, nil
}

// WithCalendar returns the same instant viewed on another calendar.
func (z ZonedDateTime) WithCalendar(cal *Calendar) ZonedDateTime {
	z.cal = cal
	return z
}

// EpochSeconds returns the whole seconds since the epoch, truncated
// toward zero.
func (z ZonedDateTime) EpochSeconds() int64 { return z.instant.EpochSeconds() }

// EpochMilliseconds returns the whole milliseconds since the epoch,
// truncated toward zero.
func (z ZonedDateTime) EpochMilliseconds() int64 { return z.instant.EpochMilliseconds() }

// EpochNanoseconds returns the nanoseconds since the epoch, or ErrRange
// if the count does not fit in an int64.
func (z ZonedDateTime) EpochNanoseconds() (int64, error) { return z.instant.EpochNanoseconds() }

// OffsetSeconds returns the zone's UTC offset at this instant.
func (z ZonedDateTime) OffsetSeconds() int { return z.zone.OffsetSecondsFor(z.instant) }

// OffsetString renders the offset at this instant as ±HH:MM[:SS].
func (z ZonedDateTime) OffsetString() string { return z.zone.OffsetStringFor(z.instant) }

// ToPlainDateTime returns the wall-clock reading of this instant.
func (z ZonedDateTime) ToPlainDateTime() (PlainDateTime, error) {
	return z.zone.PlainDateTimeFor(z.instant, z.cal)
}

// ToPlainDate returns the civil date of this instant.
func (z ZonedDateTime) ToPlainDate() (PlainDate, error) {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return PlainDate{}, err
	}
	return dt.date, nil
}

// Year returns the calendar-numbered year of the civil reading.
func (z ZonedDateTime) Year() (int, error) {
	d, err := z.ToPlainDate()
	if err != nil {
		return 0, err
	}
	return d.Year(), nil
}

// Month returns the civil month, 1-12.
func (z ZonedDateTime) Month() (int, error) {
	d, err := z.ToPlainDate()
	if err != nil {
		return 0, err
	}
	return d.month, nil
}

// Day returns the civil day of the month.
func (z ZonedDateTime) Day() (int, error) {
	d, err := z.ToPlainDate()
	if err != nil {
		return 0, err
	}
	return d.day, nil
}

// Hour returns the civil hour, 0-23.
func (z ZonedDateTime) Hour() (int, error) {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return 0, err
	}
	return dt.Hour(), nil
}

// Minute returns the civil minute, 0-59.
func (z ZonedDateTime) Minute() (int, error) {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return 0, err
	}
	return dt.Minute(), nil
}

// Second returns the civil second, 0-59.
func (z ZonedDateTime) Second() (int, error) {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return 0, err
	}
	return dt.Second(), nil
}

// Nanosecond returns the civil sub-second part, 0-999999999.
func (z ZonedDateTime) Nanosecond() (int, error) {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return 0, err
	}
	return dt.nanoOfSecond(), nil
}

// Add returns the zoned time advanced by dur. Calendar and day fields
// move the civil reading, resolved back through the zone with
// compatible disambiguation so the result honors any intervening
// transition; pure time fields move the instant directly, preserving
// true elapsed time across transitions.
func (z ZonedDateTime) Add(dur Duration, overflow Overflow) (ZonedDateTime, error) {
	if dur.years != 0 || dur.months != 0 || dur.weeks != 0 || dur.days != 0 {
		dt, err := z.ToPlainDateTime()
		if err != nil {
			return ZonedDateTime{}, err
		}
		datePart, err := NewDuration(dur.years, dur.months, dur.weeks, dur.days, 0, 0, 0, 0, 0, 0)
		if err != nil {
			return ZonedDateTime{}, err
		}
		moved, err := dt.Add(datePart, overflow)
		if err != nil {
			return ZonedDateTime{}, err
		}
		if z.instant, err = z.zone.InstantFor(moved, DisambiguationCompatible); err != nil {
			return ZonedDateTime{}, err
		}
	}
	timePart := Duration{
		hours: dur.hours, minutes: dur.minutes, seconds: dur.seconds,
		millis: dur.millis, micros: dur.micros, nanos: dur.nanos,
	}
	var err error
	if z.instant, err = z.instant.Add(timePart); err != nil {
		return ZonedDateTime{}, err
	}
	return z, nil
}

// Subtract returns the zoned time moved back by dur.
func (z ZonedDateTime) Subtract(dur Duration, overflow Overflow) (ZonedDateTime, error) {
	return z.Add(dur.Negated(), overflow)
}

// StartOfDay returns the first instant of the civil day containing this
// instant. When midnight falls in a gap, that is the first instant
// after the gap.
func (z ZonedDateTime) StartOfDay() (ZonedDateTime, error) {
	d, err := z.ToPlainDate()
	if err != nil {
		return ZonedDateTime{}, err
	}
	midnight := PlainDateTime{date: d}
	t, err := z.zone.InstantFor(midnight, DisambiguationCompatible)
	if err != nil {
		return ZonedDateTime{}, err
	}
	z.instant = t
	return z, nil
}

// HoursInDay returns the true length of the civil day containing this
// instant, in hours: 24 except around transitions (23 across a spring
// gap, 25 across a fall fold for one-hour shifts).
func (z ZonedDateTime) HoursInDay() (float64, error) {
	start, err := z.StartOfDay()
	if err != nil {
		return 0, err
	}
	d, err := z.ToPlainDate()
	if err != nil {
		return 0, err
	}
	next, err := plainDateFromEpochDays(d.epochDays()+1, d.cal)
	if err != nil {
		return 0, err
	}
	end, err := z.zone.InstantFor(PlainDateTime{date: next}, DisambiguationCompatible)
	if err != nil {
		return 0, err
	}
	sec := float64(end.sec-start.instant.sec) + float64(end.nsec-start.instant.nsec)/float64(nanosPerSecond)
	return sec / 3600, nil
}

// Until returns the elapsed time from z to other decomposed no higher
// than largest, which must be an hour or smaller (default seconds).
func (z ZonedDateTime) Until(other ZonedDateTime, largest Unit) (Duration, error) {
	return z.instant.Until(other.instant, largest)
}

// Since is Until with the operands swapped.
func (z ZonedDateTime) Since(other ZonedDateTime, largest Unit) (Duration, error) {
	return other.instant.Until(z.instant, largest)
}

// CompareZonedDateTimes orders two zoned times by instant; the zone and
// calendar do not participate.
func CompareZonedDateTimes(a, b ZonedDateTime) int {
	return CompareInstants(a.instant, b.instant)
}

// Equals reports whether the instants coincide and the zone and
// calendar identifiers match.
func (z ZonedDateTime) Equals(other ZonedDateTime) bool {
	return z.instant.Equals(other.instant) && z.zone.id == other.zone.id && z.cal.id == other.cal.id
}

// String renders <date>T<time><offset>[<zone>], with a [u-ca=...]
// annotation for non-ISO calendars, e.g.
// "2024-03-15T10:30:45-04:00[America/New_York]".
func (z ZonedDateTime) String() string {
	dt, err := z.ToPlainDateTime()
	if err != nil {
		return "<invalid ZonedDateTime>"
	}
	s := iso8601.FormatDate(dt.date.year, dt.date.month, dt.date.day) + "T" +
		iso8601.FormatTime(dt.Hour(), dt.Minute(), dt.Second(), dt.nanoOfSecond()) +
		z.OffsetString() + "[" + z.zone.id + "]"
	if z.cal.id != "iso8601" {
		s += "[u-ca=" + z.cal.id + "]"
	}
	return s
}

// ParseZonedDateTime parses <date>T<time>±HH:MM[<zone>] or
// <date>T<time>[<zone>]. A numeric offset fixes the instant exactly;
// without one the wall-clock time is resolved through the zone with
// compatible disambiguation.
func ParseZonedDateTime(s string) (ZonedDateTime, error) {
	dt, err := iso8601.ParseDateTime(s)
	if err != nil {
		return ZonedDateTime{}, invalidf("%v", err)
	}
	if dt.Zone == "" {
		return ZonedDateTime{}, invalidf("zoned date-time requires a [zone] annotation in %q", s)
	}
	zone, err := ForZoneID(dt.Zone)
	if err != nil {
		return ZonedDateTime{}, err
	}
	cal := ISO8601
	if dt.Calendar != "" {
		if cal, err = CalendarFor(dt.Calendar); err != nil {
			return ZonedDateTime{}, err
		}
	}
	date, err := newPlainDate(dt.Year, dt.Month, dt.Day, cal)
	if err != nil {
		return ZonedDateTime{}, err
	}
	pdt, err := newPlainDateTime(date, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond)
	if err != nil {
		return ZonedDateTime{}, err
	}
	var t Instant
	if dt.HasOffset {
		base := asUTC(pdt)
		if t, err = makeInstant(base.sec-int64(dt.OffsetSeconds), int64(base.nsec)); err != nil {
			return ZonedDateTime{}, err
		}
	} else {
		if t, err = zone.InstantFor(pdt, DisambiguationCompatible); err != nil {
			return ZonedDateTime{}, err
		}
	}
	return ZonedDateTime{instant: t, zone: zone, cal: cal}, nil
}
