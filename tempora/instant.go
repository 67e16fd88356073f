// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"math/big"

	"go.tempora.net/internal/calmath"
	"go.tempora.net/iso8601"
)

// An Instant is an absolute point on the UTC time line at nanosecond
// resolution, held exactly as whole seconds since the epoch plus a
// non-negative nanosecond-of-second. The representable domain is
// ±100,000,000 days around 1970-01-01T00:00:00Z, which exceeds what a
// single int64 of nanoseconds can carry; the nanosecond epoch accessors
// therefore report ErrRange near the edges of the domain.
type Instant struct {
	sec  int64 // seconds since the epoch
	nsec int32 // [0, 1e9)
}

const maxInstantSeconds = maxEpochDays * secondsPerDay

// makeInstant normalizes an arbitrary (seconds, nanoseconds) pair.
func makeInstant(sec, nsec int64) (Instant, error) {
	sec += floorDiv(nsec, nanosPerSecond)
	nsec = floorMod(nsec, nanosPerSecond)
	if sec < -maxInstantSeconds || sec > maxInstantSeconds ||
		(sec == maxInstantSeconds && nsec > 0) {
		return Instant{}, rangef("instant %d seconds out of range", sec)
	}
	return Instant{sec: sec, nsec: int32(nsec)}, nil
}

// InstantFromEpochSeconds returns the instant s whole seconds after the
// epoch, or ErrRange outside the supported domain.
func InstantFromEpochSeconds(s int64) (Instant, error) {
	return makeInstant(s, 0)
}

// InstantFromEpochMilliseconds returns the instant ms milliseconds after
// the epoch.
func InstantFromEpochMilliseconds(ms int64) (Instant, error) {
	return makeInstant(floorDiv(ms, 1000), floorMod(ms, 1000)*nanosPerMilli)
}

// InstantFromEpochMicroseconds returns the instant µs microseconds after
// the epoch.
func InstantFromEpochMicroseconds(us int64) (Instant, error) {
	return makeInstant(floorDiv(us, 1e6), floorMod(us, 1e6)*nanosPerMicro)
}

// InstantFromEpochNanoseconds returns the instant ns nanoseconds after
// the epoch. Every int64 nanosecond count is in the supported domain.
func InstantFromEpochNanoseconds(ns int64) Instant {
	return Instant{sec: floorDiv(ns, nanosPerSecond), nsec: int32(floorMod(ns, nanosPerSecond))}
}

// EpochSeconds returns the whole seconds since the epoch, truncated
// toward zero.
func (t Instant) EpochSeconds() int64 {
	s := t.sec
	if s < 0 && t.nsec > 0 {
		s++
	}
	return s
}

// EpochMilliseconds returns the whole milliseconds since the epoch,
// truncated toward zero.
func (t Instant) EpochMilliseconds() int64 {
	ms := t.sec*1000 + int64(t.nsec)/nanosPerMilli
	if t.sec < 0 && int64(t.nsec)%nanosPerMilli != 0 {
		ms++
	}
	return ms
}

// EpochMicroseconds returns the whole microseconds since the epoch,
// truncated toward zero, or ErrRange if the count does not fit in an
// int64.
func (t Instant) EpochMicroseconds() (int64, error) {
	us, ok := mulInt64(t.sec, 1e6)
	if !ok {
		return 0, rangef("instant does not fit in int64 microseconds")
	}
	us, ok = addInt64(us, int64(t.nsec)/nanosPerMicro)
	if !ok {
		return 0, rangef("instant does not fit in int64 microseconds")
	}
	if t.sec < 0 && int64(t.nsec)%nanosPerMicro != 0 {
		us++
	}
	return us, nil
}

// EpochNanoseconds returns the nanoseconds since the epoch, or ErrRange
// if the count does not fit in an int64.
func (t Instant) EpochNanoseconds() (int64, error) {
	ns, ok := mulInt64(t.sec, nanosPerSecond)
	if !ok {
		return 0, rangef("instant does not fit in int64 nanoseconds")
	}
	ns, ok = addInt64(ns, int64(t.nsec))
	if !ok {
		return 0, rangef("instant does not fit in int64 nanoseconds")
	}
	return ns, nil
}

// addSeconds shifts the instant without a domain check; callers on the
// zone-conversion paths re-validate where it matters.
func (t Instant) addSeconds(s int64) Instant {
	return Instant{sec: t.sec + s, nsec: t.nsec}
}

// Add returns the instant advanced by the fixed-ladder portion of dur.
// Calendar fields (years, months, weeks, days) have no meaning on the
// absolute time line and are rejected.
func (t Instant) Add(dur Duration) (Instant, error) {
	if dur.years != 0 || dur.months != 0 || dur.weeks != 0 || dur.days != 0 {
		return Instant{}, invalidf("instant arithmetic cannot use calendar units")
	}
	ns := dur.timeNanos()
	sec, rem := new(big.Int).QuoRem(ns, bigNanosPerSecond, new(big.Int))
	s, ok := bigInt64(sec)
	if !ok {
		return Instant{}, rangef("duration overflows instant")
	}
	s2, ok := addInt64(t.sec, s)
	if !ok {
		return Instant{}, rangef("instant out of range")
	}
	return makeInstant(s2, int64(t.nsec)+rem.Int64())
}

// Subtract returns the instant moved back by the fixed-ladder portion
// of dur.
func (t Instant) Subtract(dur Duration) (Instant, error) {
	return t.Add(dur.Negated())
}

// Until returns the elapsed time from t to other decomposed no higher
// than largest, which must be an hour or smaller (default seconds).
func (t Instant) Until(other Instant, largest Unit) (Duration, error) {
	if largest == UnitUnspecified {
		largest = UnitSecond
	}
	if largest > UnitHour {
		return Duration{}, invalidf("instant difference cannot use %ss", largest)
	}
	diff := new(big.Int).SetInt64(other.sec - t.sec)
	diff.Mul(diff, bigNanosPerSecond)
	diff.Add(diff, big.NewInt(int64(other.nsec)-int64(t.nsec)))
	sf, err := distributeNanos(diff, largest)
	if err != nil {
		return Duration{}, err
	}
	return makeDuration(0, 0, sf), nil
}

// Since is Until with the operands swapped.
func (t Instant) Since(other Instant, largest Unit) (Duration, error) {
	return other.Until(t, largest)
}

// CompareInstants orders two instants on the time line.
func CompareInstants(a, b Instant) int {
	switch {
	case a.sec < b.sec:
		return -1
	case a.sec > b.sec:
		return 1
	case a.nsec < b.nsec:
		return -1
	case a.nsec > b.nsec:
		return 1
	}
	return 0
}

// Equals reports whether two instants coincide.
func (t Instant) Equals(other Instant) bool { return CompareInstants(t, other) == 0 }

// civil splits the instant, shifted by an offset in seconds, into an
// epoch day and a nanosecond-of-day.
func (t Instant) civil(offsetSeconds int) (epochDays int64, timeNanos int64) {
	sec := t.sec + int64(offsetSeconds)
	epochDays = floorDiv(sec, secondsPerDay)
	return epochDays, floorMod(sec, secondsPerDay)*nanosPerSecond + int64(t.nsec)
}

// String renders the instant as an ISO-8601 UTC date-time with a Z
// offset, e.g. "2024-03-15T10:30:45.123456789Z".
func (t Instant) String() string {
	days, ns := t.civil(0)
	y, m, d := calmath.YMDFromEpochDays(days)
	sec := ns / nanosPerSecond
	return iso8601.FormatDate(y, m, d) + "T" +
		iso8601.FormatTime(int(sec/3600), int(sec/60%60), int(sec%60), int(ns%nanosPerSecond)) + "Z"
}

// ParseInstant parses an ISO date-time with an offset (numeric or Z)
// into an instant.
func ParseInstant(s string) (Instant, error) {
	dt, err := iso8601.ParseDateTime(s)
	if err != nil {
		return Instant{}, invalidf("%v", err)
	}
	if !dt.HasOffset {
		return Instant{}, invalidf("instant requires a UTC offset in %q", s)
	}
	date, err := NewPlainDate(dt.Year, dt.Month, dt.Day)
	if err != nil {
		return Instant{}, err
	}
	sec := date.epochDays()*secondsPerDay +
		int64(dt.Hour)*3600 + int64(dt.Minute)*60 + int64(dt.Second) - int64(dt.OffsetSeconds)
	return makeInstant(sec, int64(dt.Nanosecond))
}
