// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import "fmt"

const (
	nanosPerMicro  = int64(1e3)
	nanosPerMilli  = int64(1e6)
	nanosPerSecond = int64(1e9)
	nanosPerMinute = 60 * nanosPerSecond
	nanosPerHour   = 60 * nanosPerMinute
	nanosPerDay    = 24 * nanosPerHour
	nanosPerWeek   = 7 * nanosPerDay

	secondsPerDay = int64(86400)
)

// A Unit names one of the ten duration fields, or a date/time
// granularity for rounding and difference operations. Units are ordered:
// a Unit compares greater than every unit it subsumes.
type Unit int

const (
	// UnitUnspecified selects the operation's documented default, or is
	// rejected where a unit is mandatory.
	UnitUnspecified Unit = iota
	UnitNanosecond
	UnitMicrosecond
	UnitMillisecond
	UnitSecond
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

var unitNames = [...]string{
	UnitUnspecified: "unspecified",
	UnitNanosecond:  "nanosecond",
	UnitMicrosecond: "microsecond",
	UnitMillisecond: "millisecond",
	UnitSecond:      "second",
	UnitMinute:      "minute",
	UnitHour:        "hour",
	UnitDay:         "day",
	UnitWeek:        "week",
	UnitMonth:       "month",
	UnitYear:        "year",
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// IsCalendarUnit reports whether u has no fixed nanosecond length.
// Weeks and days are fixed on the duration ladder (1w = 7d, 1d = 24h);
// only months and years require a reference date.
func (u Unit) IsCalendarUnit() bool { return u == UnitMonth || u == UnitYear }

// nanos returns the fixed ladder length of u. Calendar units have none.
func (u Unit) nanos() int64 {
	switch u {
	case UnitNanosecond:
		return 1
	case UnitMicrosecond:
		return nanosPerMicro
	case UnitMillisecond:
		return nanosPerMilli
	case UnitSecond:
		return nanosPerSecond
	case UnitMinute:
		return nanosPerMinute
	case UnitHour:
		return nanosPerHour
	case UnitDay:
		return nanosPerDay
	case UnitWeek:
		return nanosPerWeek
	}
	panic(fmt.Sprintf("unit %s has no fixed length", u))
}

// UnitOf maps a lexical unit token ("year", "month", ... "nanosecond",
// singular only) to its Unit.
func UnitOf(name string) (Unit, error) {
	for u, n := range unitNames {
		if Unit(u) != UnitUnspecified && n == name {
			return Unit(u), nil
		}
	}
	return UnitUnspecified, invalidf("unknown unit %q", name)
}

// RoundingMode controls how a value halfway between (or beyond) two
// rounding increments resolves. The zero value is RoundHalfExpand, the
// default everywhere a mode is optional.
type RoundingMode int

const (
	RoundHalfExpand RoundingMode = iota // nearest; ties away from zero
	RoundCeil                           // toward positive infinity
	RoundFloor                          // toward negative infinity
	RoundTrunc                          // toward zero
)

func (m RoundingMode) String() string {
	switch m {
	case RoundHalfExpand:
		return "halfExpand"
	case RoundCeil:
		return "ceil"
	case RoundFloor:
		return "floor"
	case RoundTrunc:
		return "trunc"
	}
	return fmt.Sprintf("roundingMode(%d)", int(m))
}

// RoundingModeOf maps a lexical rounding-mode token to its mode.
func RoundingModeOf(name string) (RoundingMode, error) {
	switch name {
	case "halfExpand":
		return RoundHalfExpand, nil
	case "ceil":
		return RoundCeil, nil
	case "floor":
		return RoundFloor, nil
	case "trunc":
		return RoundTrunc, nil
	}
	return 0, invalidf("unknown rounding mode %q", name)
}

// Overflow is the policy for resolving an out-of-range calendar field:
// OverflowConstrain clamps to the nearest valid value, OverflowReject
// fails with a range error. The zero value is OverflowConstrain.
type Overflow int

const (
	OverflowConstrain Overflow = iota
	OverflowReject
)

func (o Overflow) String() string {
	switch o {
	case OverflowConstrain:
		return "constrain"
	case OverflowReject:
		return "reject"
	}
	return fmt.Sprintf("overflow(%d)", int(o))
}

// OverflowOf maps a lexical overflow token to its policy. Any token
// other than "constrain" or "reject" is an invalid argument.
func OverflowOf(name string) (Overflow, error) {
	switch name {
	case "constrain":
		return OverflowConstrain, nil
	case "reject":
		return OverflowReject, nil
	}
	return 0, invalidf("unknown overflow policy %q", name)
}

func (o Overflow) valid() bool { return o == OverflowConstrain || o == OverflowReject }

// Disambiguation selects an instant for a wall-clock time that a zone
// transition has skipped (gap) or repeated (fold). The zero value is
// DisambiguationCompatible: the time after a gap, the earlier of a fold.
type Disambiguation int

const (
	DisambiguationCompatible Disambiguation = iota
	DisambiguationEarlier
	DisambiguationLater
	DisambiguationReject
)

func (d Disambiguation) String() string {
	switch d {
	case DisambiguationCompatible:
		return "compatible"
	case DisambiguationEarlier:
		return "earlier"
	case DisambiguationLater:
		return "later"
	case DisambiguationReject:
		return "reject"
	}
	return fmt.Sprintf("disambiguation(%d)", int(d))
}

// DisambiguationOf maps a lexical disambiguation token to its policy.
func DisambiguationOf(name string) (Disambiguation, error) {
	switch name {
	case "compatible":
		return DisambiguationCompatible, nil
	case "earlier":
		return DisambiguationEarlier, nil
	case "later":
		return DisambiguationLater, nil
	case "reject":
		return DisambiguationReject, nil
	}
	return 0, invalidf("unknown disambiguation %q", name)
}

func (d Disambiguation) valid() bool {
	return d >= DisambiguationCompatible && d <= DisambiguationReject
}

// RoundOptions configures Duration.Rounded.
//
// SmallestUnit is mandatory. RoundingIncrement defaults to 1 and, for
// units below a day, must evenly divide (without equalling) the number
// of that unit in the next larger one. RoundingMode defaults to
// RoundHalfExpand. LargestUnit defaults to the larger of SmallestUnit
// and the largest non-zero unit of the input. RelativeTo anchors
// calendar-unit arithmetic; it is mandatory when SmallestUnit is a
// calendar unit, and LargestUnit becomes mandatory when rounding a
// duration with calendar fields below month granularity.
type RoundOptions struct {
	SmallestUnit      Unit
	RoundingIncrement int64
	RoundingMode      RoundingMode
	LargestUnit       Unit
	RelativeTo        *PlainDate
}

// maxIncrement returns the exclusive upper bound that a rounding
// increment must divide for sub-day units, or 0 for unconstrained units.
func maxIncrement(u Unit) int64 {
	switch u {
	case UnitNanosecond, UnitMicrosecond, UnitMillisecond:
		return 1000
	case UnitSecond, UnitMinute:
		return 60
	case UnitHour:
		return 24
	}
	return 0
}

func checkIncrement(u Unit, inc int64) error {
	if inc < 1 {
		return rangef("rounding increment %d must be positive", inc)
	}
	if max := maxIncrement(u); max != 0 && (inc >= max || max%inc != 0) {
		return rangef("rounding increment %d does not divide into %d %ss", inc, max, u)
	}
	return nil
}
