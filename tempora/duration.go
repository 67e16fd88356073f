// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tempora provides immutable date, time, and duration values
// with explicit calendar and time-zone semantics.
//
// The types split the problem the way civil time actually splits:
// Instant is a point on the absolute UTC time line; PlainDate,
// PlainDateTime, PlainYearMonth, and PlainMonthDay are wall-clock
// readings with no zone; ZonedDateTime pairs an instant with a zone and
// derives every civil reading on demand; Duration is a signed span kept
// as distinct fields so that calendar-dependent units (years, months)
// never silently collapse into fixed ones.
//
// All values are immutable: every operation returns a new value, and
// values are safe for concurrent use without synchronization. Fallible
// operations return an error wrapping one of the package's sentinel
// errors (ErrRange, ErrInvalidArgument, ErrInvalidSign,
// ErrAmbiguousTime, ErrUnsupportedCalendar), so callers dispatch with
// errors.Is.
package tempora

import (
	"math/big"

	"go.tempora.net/iso8601"
)

// A Duration is a signed span of time held as ten integer fields, years
// through nanoseconds. All non-zero fields share one sign; constructors
// and arithmetic enforce this invariant and every operation returns a
// new value.
//
// Years and months have no fixed length; they participate in arithmetic
// only relative to a date on some calendar. The remaining fields sit on
// a fixed ladder: 1w = 7d, 1d = 24h, 1h = 60m, 1m = 60s, and decimal
// steps below the second.
type Duration struct {
	years, months, weeks, days int64
	hours, minutes, seconds    int64
	millis, micros, nanos      int64
}

// NewDuration returns a duration with the given fields, or ErrInvalidSign
// if a strictly positive and a strictly negative field are both present.
func NewDuration(years, months, weeks, days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds int64) (Duration, error) {
	d := Duration{years, months, weeks, days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds}
	if !d.signConsistent() {
		return Duration{}, ErrInvalidSign
	}
	return d, nil
}

func (d Duration) fields() [10]int64 {
	return [10]int64{d.years, d.months, d.weeks, d.days, d.hours, d.minutes, d.seconds, d.millis, d.micros, d.nanos}
}

func (d Duration) signConsistent() bool {
	pos, neg := false, false
	for _, f := range d.fields() {
		pos = pos || f > 0
		neg = neg || f < 0
	}
	return !(pos && neg)
}

// Years returns the years field.
func (d Duration) Years() int64 { return d.years }

// Months returns the months field.
func (d Duration) Months() int64 { return d.months }

// Weeks returns the weeks field.
func (d Duration) Weeks() int64 { return d.weeks }

// Days returns the days field.
func (d Duration) Days() int64 { return d.days }

// Hours returns the hours field.
func (d Duration) Hours() int64 { return d.hours }

// Minutes returns the minutes field.
func (d Duration) Minutes() int64 { return d.minutes }

// Seconds returns the seconds field.
func (d Duration) Seconds() int64 { return d.seconds }

// Milliseconds returns the milliseconds field.
func (d Duration) Milliseconds() int64 { return d.millis }

// Microseconds returns the microseconds field.
func (d Duration) Microseconds() int64 { return d.micros }

// Nanoseconds returns the nanoseconds field.
func (d Duration) Nanoseconds() int64 { return d.nanos }

// Sign returns -1, 0, or +1 according to the shared sign of the fields.
func (d Duration) Sign() int {
	for _, f := range d.fields() {
		if f > 0 {
			return 1
		}
		if f < 0 {
			return -1
		}
	}
	return 0
}

// IsZero reports whether every field is zero.
func (d Duration) IsZero() bool { return d.Sign() == 0 }

// Negated returns the duration with every field negated.
func (d Duration) Negated() Duration {
	return Duration{-d.years, -d.months, -d.weeks, -d.days, -d.hours, -d.minutes, -d.seconds, -d.millis, -d.micros, -d.nanos}
}

// Abs returns the duration with every field non-negative.
func (d Duration) Abs() Duration {
	if d.Sign() < 0 {
		return d.Negated()
	}
	return d
}

// Add returns d + other, field-wise. The sign invariant is re-checked on
// the result: sums that mix signs (say +1 month and -40 days) fail with
// ErrInvalidSign rather than construct an unusable value. Anchor such
// arithmetic with Total or Rounded and a relative date instead.
func (d Duration) Add(other Duration) (Duration, error) {
	df, of := d.fields(), other.fields()
	var sum [10]int64
	for i := range df {
		s, ok := addInt64(df[i], of[i])
		if !ok {
			return Duration{}, rangef("duration field overflow")
		}
		sum[i] = s
	}
	r := Duration{sum[0], sum[1], sum[2], sum[3], sum[4], sum[5], sum[6], sum[7], sum[8], sum[9]}
	if !r.signConsistent() {
		return Duration{}, ErrInvalidSign
	}
	return r, nil
}

// Subtract returns d - other. See Add for the sign rule.
func (d Duration) Subtract(other Duration) (Duration, error) {
	return d.Add(other.Negated())
}

// timeNanos returns the exact nanosecond value of the fixed-ladder
// portion (weeks through nanoseconds). Years and months do not
// contribute; they have no length without a date.
func (d Duration) timeNanos() *big.Int {
	ns := new(big.Int).SetInt64(d.weeks)
	ns.Mul(ns, big.NewInt(7))
	ns.Add(ns, big.NewInt(d.days))
	ns.Mul(ns, big.NewInt(24))
	ns.Add(ns, big.NewInt(d.hours))
	ns.Mul(ns, big.NewInt(60))
	ns.Add(ns, big.NewInt(d.minutes))
	ns.Mul(ns, big.NewInt(60))
	ns.Add(ns, big.NewInt(d.seconds))
	ns.Mul(ns, bigNanosPerSecond)
	ns.Add(ns, new(big.Int).Mul(big.NewInt(d.millis), big.NewInt(nanosPerMilli)))
	ns.Add(ns, new(big.Int).Mul(big.NewInt(d.micros), big.NewInt(nanosPerMicro)))
	ns.Add(ns, big.NewInt(d.nanos))
	return ns
}

// subFields is the distributed fixed-ladder portion of a duration.
type subFields struct {
	weeks, days, hours, minutes, seconds, millis, micros, nanos int64
}

var subCalendarUnits = [...]Unit{
	UnitWeek, UnitDay, UnitHour, UnitMinute, UnitSecond,
	UnitMillisecond, UnitMicrosecond, UnitNanosecond,
}

// distributeNanos re-expresses total on the fixed ladder so that no unit
// below largest exceeds its carry threshold. largest must be UnitWeek or
// smaller.
func distributeNanos(total *big.Int, largest Unit) (subFields, error) {
	var sf subFields
	dst := map[Unit]*int64{
		UnitWeek:        &sf.weeks,
		UnitDay:         &sf.days,
		UnitHour:        &sf.hours,
		UnitMinute:      &sf.minutes,
		UnitSecond:      &sf.seconds,
		UnitMillisecond: &sf.millis,
		UnitMicrosecond: &sf.micros,
		UnitNanosecond:  &sf.nanos,
	}
	rem := new(big.Int).Set(total)
	for _, u := range subCalendarUnits {
		if u > largest {
			continue
		}
		q, r := new(big.Int).QuoRem(rem, big.NewInt(u.nanos()), new(big.Int))
		v, ok := bigInt64(q)
		if !ok {
			return subFields{}, rangef("%s field overflow balancing duration", u)
		}
		*dst[u] = v
		rem = r
	}
	return sf, nil
}

func makeDuration(years, months int64, sf subFields) Duration {
	return Duration{years, months, sf.weeks, sf.days, sf.hours, sf.minutes, sf.seconds, sf.millis, sf.micros, sf.nanos}
}

// Balanced re-expresses the fixed-ladder portion of d so that no field
// below largest exceeds its carry threshold; years and months pass
// through untouched, since they cannot be balanced without a reference
// date. A largest of years or months balances up to weeks. The unit is
// mandatory.
func (d Duration) Balanced(largest Unit) (Duration, error) {
	if largest == UnitUnspecified {
		return Duration{}, invalidf("largestUnit is required")
	}
	effective := largest
	if largest.IsCalendarUnit() {
		effective = UnitWeek
	}
	sf, err := distributeNanos(d.timeNanos(), effective)
	if err != nil {
		return Duration{}, err
	}
	return makeDuration(d.years, d.months, sf), nil
}

// largestNonzeroSub returns the largest fixed-ladder unit with a
// non-zero field, or UnitUnspecified when the portion is blank.
func (d Duration) largestNonzeroSub() Unit {
	vals := [...]int64{d.weeks, d.days, d.hours, d.minutes, d.seconds, d.millis, d.micros, d.nanos}
	for i, u := range subCalendarUnits {
		if vals[i] != 0 {
			return u
		}
	}
	return UnitUnspecified
}

// Total returns the exact value of d expressed in unit.
//
// For fixed-ladder units the result is the nanosecond-equivalent sum of
// the weeks..nanoseconds fields divided by the unit length; years and
// months contribute nothing. For months and years a relative date is
// mandatory: whole units are stepped off from the anchor on its
// calendar, and the remainder is measured against the calendar-specific
// length of the next unit.
func (d Duration) Total(unit Unit, relativeTo *PlainDate) (float64, error) {
	switch {
	case unit == UnitUnspecified:
		return 0, invalidf("unit is required")
	case !unit.IsCalendarUnit():
		r := new(big.Rat).SetFrac(d.timeNanos(), big.NewInt(unit.nanos()))
		f, _ := r.Float64()
		return f, nil
	case relativeTo == nil:
		return 0, invalidf("total of %ss requires relativeTo", unit)
	}
	r, err := d.totalCalendar(unit, *relativeTo)
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

func (d Duration) totalCalendar(unit Unit, rel PlainDate) (*big.Rat, error) {
	pos, err := d.positionFrom(rel)
	if err != nil {
		return nil, err
	}
	k, posK, posNext, err := bracketUnits(rel, pos, unit)
	if err != nil {
		return nil, err
	}
	total := new(big.Rat).SetInt64(k)
	num := new(big.Int).Sub(pos, posK)
	if num.Sign() != 0 {
		den := new(big.Int).Sub(posNext, posK)
		frac := new(big.Rat).SetFrac(num, den) // numerator and denominator share sign
		if k < 0 || posK.Cmp(pos) > 0 {
			total.Sub(total, frac)
		} else {
			total.Add(total, frac)
		}
	}
	return total, nil
}

// positionFrom returns the nanosecond position, on the civil 24-hour
// scale, of the anchor advanced by the whole duration: years and months
// via the calendar (day-of-month re-resolved by constraining), then the
// fixed-ladder portion exactly.
func (d Duration) positionFrom(rel PlainDate) (*big.Int, error) {
	anchor, err := rel.cal.dateAddYM(rel, d.years, d.months, OverflowConstrain)
	if err != nil {
		return nil, err
	}
	pos := new(big.Int).SetInt64(anchor.epochDays())
	pos.Mul(pos, bigNanosPerDay)
	return pos.Add(pos, d.timeNanos()), nil
}

// bracketUnits finds the signed count k of whole calendar units from rel
// toward pos such that rel+k does not pass pos but rel+(k±1) does. It
// returns the positions of both bracket endpoints.
func bracketUnits(rel PlainDate, pos *big.Int, unit Unit) (k int64, posK, posNext *big.Int, err error) {
	at := func(n int64) (*big.Int, error) {
		var years, months int64
		if unit == UnitYear {
			years = n
		} else {
			months = n
		}
		date, err := rel.cal.dateAddYM(rel, years, months, OverflowConstrain)
		if err != nil {
			return nil, err
		}
		p := new(big.Int).SetInt64(date.epochDays())
		return p.Mul(p, bigNanosPerDay), nil
	}

	relPos, err := at(0)
	if err != nil {
		return 0, nil, nil, err
	}
	dir := int64(1)
	if pos.Cmp(relPos) < 0 {
		dir = -1
	}

	// Initial estimate from the ISO year gap, then settle by stepping.
	targetDays, _ := bigInt64(new(big.Int).Quo(pos, bigNanosPerDay))
	ty, tm, _ := ymdFromEpochDays(targetDays)
	k = int64(ty - rel.year)
	if unit == UnitMonth {
		k = k*12 + int64(tm-rel.month)
	}

	posK, err = at(k)
	if err != nil {
		return 0, nil, nil, err
	}
	// Pull back until rel+k is on the near side of pos...
	for (dir > 0 && posK.Cmp(pos) > 0) || (dir < 0 && posK.Cmp(pos) < 0) {
		k -= dir
		if posK, err = at(k); err != nil {
			return 0, nil, nil, err
		}
	}
	// ...then push forward while the next whole unit still fits.
	for {
		next, err := at(k + dir)
		if err != nil {
			return 0, nil, nil, err
		}
		fits := (dir > 0 && next.Cmp(pos) <= 0) || (dir < 0 && next.Cmp(pos) >= 0)
		if !fits {
			return k, posK, next, nil
		}
		k += dir
		posK = next
	}
}

// Rounded returns d rounded per opts; see RoundOptions for the option
// defaults and constraints.
func (d Duration) Rounded(opts RoundOptions) (Duration, error) {
	smallest := opts.SmallestUnit
	if smallest == UnitUnspecified {
		return Duration{}, invalidf("smallestUnit is required")
	}
	inc := opts.RoundingIncrement
	if inc == 0 {
		inc = 1
	}
	if err := checkIncrement(smallest, inc); err != nil {
		return Duration{}, err
	}
	mode := opts.RoundingMode
	if mode < RoundHalfExpand || mode > RoundTrunc {
		return Duration{}, invalidf("unknown rounding mode %d", int(mode))
	}
	largest := opts.LargestUnit
	if largest != UnitUnspecified && largest < smallest {
		return Duration{}, rangef("largestUnit %s is smaller than smallestUnit %s", largest, smallest)
	}

	if opts.RelativeTo == nil {
		if smallest.IsCalendarUnit() {
			return Duration{}, invalidf("rounding to %ss requires relativeTo", smallest)
		}
		// Calendar fields pass through; only the fixed ladder is rounded.
		if largest == UnitUnspecified {
			if largest = d.largestNonzeroSub(); largest < smallest {
				largest = smallest
			}
		}
		step := stepNanos(smallest, inc)
		rounded := roundToMultiple(d.timeNanos(), step, mode)
		top := largest
		if top > UnitWeek {
			top = UnitWeek
		}
		sf, err := distributeNanos(rounded, top)
		if err != nil {
			return Duration{}, err
		}
		return makeDuration(d.years, d.months, sf), nil
	}

	rel := *opts.RelativeTo
	if smallest.IsCalendarUnit() {
		total, err := d.totalCalendar(smallest, rel)
		if err != nil {
			return Duration{}, err
		}
		n, err := ratRoundToIncrement(total, inc, mode)
		if err != nil {
			return Duration{}, err
		}
		if smallest == UnitYear {
			return Duration{years: n}, nil
		}
		if largest == UnitYear {
			return Duration{years: n / 12, months: n % 12}, nil
		}
		return Duration{months: n}, nil
	}

	// Sub-month smallest unit. Projecting the calendar delta onto the
	// day scale needs an explicit result shape, so largestUnit is
	// mandatory whenever calendar fields are present.
	if d.years != 0 || d.months != 0 {
		if largest == UnitUnspecified {
			return Duration{}, rangef("rounding a duration with calendar fields requires largestUnit")
		}
	} else if largest == UnitUnspecified {
		if largest = d.largestNonzeroSub(); largest < smallest {
			largest = smallest
		}
	}

	pos, err := d.positionFrom(rel)
	if err != nil {
		return Duration{}, err
	}
	step := stepNanos(smallest, inc)

	var years, months int64
	base := new(big.Int).SetInt64(rel.epochDays())
	base.Mul(base, bigNanosPerDay)
	if largest.IsCalendarUnit() {
		anchor := rel
		if largest == UnitYear {
			ky, _, _, err := bracketUnits(rel, pos, UnitYear)
			if err != nil {
				return Duration{}, err
			}
			years = ky
			if anchor, err = rel.cal.dateAddYM(rel, ky, 0, OverflowConstrain); err != nil {
				return Duration{}, err
			}
		}
		km, posK, _, err := bracketUnits(anchor, pos, UnitMonth)
		if err != nil {
			return Duration{}, err
		}
		months = km
		base = posK
	}

	rem := new(big.Int).Sub(pos, base)
	rounded := roundToMultiple(rem, step, mode)
	top := largest
	if top > UnitWeek {
		top = UnitDay // remainder below months is carried in days
	}
	sf, err := distributeNanos(rounded, top)
	if err != nil {
		return Duration{}, err
	}
	return makeDuration(years, months, sf), nil
}

func stepNanos(u Unit, inc int64) *big.Int {
	step := new(big.Int).SetInt64(u.nanos())
	return step.Mul(step, big.NewInt(inc))
}

// ratRoundToIncrement rounds r to a whole multiple of inc under mode and
// returns the rounded count of increments times inc.
func ratRoundToIncrement(r *big.Rat, inc int64, mode RoundingMode) (int64, error) {
	x := new(big.Rat).Quo(r, new(big.Rat).SetInt64(inc))
	num, den := x.Num(), x.Denom() // den > 0
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 {
		bump := false
		switch mode {
		case RoundCeil:
			bump = num.Sign() > 0
		case RoundFloor:
			bump = num.Sign() < 0
		case RoundTrunc:
		default:
			double := new(big.Int).Abs(rem)
			double.Lsh(double, 1)
			bump = double.Cmp(den) >= 0
		}
		if bump {
			if num.Sign() < 0 {
				q.Sub(q, bigOne)
			} else {
				q.Add(q, bigOne)
			}
		}
	}
	n, ok := bigInt64(q)
	if !ok {
		return 0, rangef("rounded duration overflows")
	}
	v, ok := mulInt64(n, inc)
	if !ok {
		return 0, rangef("rounded duration overflows")
	}
	return v, nil
}

// CompareDurations orders two durations by the nanosecond value of their
// fixed-ladder portions, weeks counting as exactly seven 24-hour days.
// Years and months are not compared; they have no length without a date.
func CompareDurations(a, b Duration) int {
	return a.timeNanos().Cmp(b.timeNanos())
}

// String renders the canonical ISO-8601 form: designators only for
// non-zero fields, sub-second fields collapsed into one fraction of at
// most nine digits, "PT0S" for zero, and a single leading minus.
func (d Duration) String() string {
	a := d.Abs()
	return iso8601.FormatDuration(iso8601.Duration{
		Sign:         d.Sign(),
		Years:        a.years,
		Months:       a.months,
		Weeks:        a.weeks,
		Days:         a.days,
		Hours:        a.hours,
		Minutes:      a.minutes,
		Seconds:      a.seconds,
		Milliseconds: a.millis,
		Microseconds: a.micros,
		Nanoseconds:  a.nanos,
	})
}

// ParseDuration parses a canonical or extended ISO-8601 duration string.
func ParseDuration(s string) (Duration, error) {
	f, err := iso8601.ParseDuration(s)
	if err != nil {
		return Duration{}, invalidf("%v", err)
	}
	sign := int64(f.Sign)
	return NewDuration(
		sign*f.Years, sign*f.Months, sign*f.Weeks, sign*f.Days,
		sign*f.Hours, sign*f.Minutes, sign*f.Seconds,
		sign*f.Milliseconds, sign*f.Microseconds, sign*f.Nanoseconds)
}
