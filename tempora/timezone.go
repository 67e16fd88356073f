// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"fmt"
	"sort"
	"sync"

	"go.tempora.net/iso8601"
)

// A TimeZone maps instants to UTC offsets. It is either a fixed offset
// or a named zone backed by an injected, pre-parsed transition table;
// loading such tables (say from the IANA database) is the caller's
// concern. Zones are immutable once constructed and safe to share.
type TimeZone struct {
	id          string
	fixed       bool
	offset      int // fixed zones: the constant offset, seconds
	initial     int // named zones: offset before the first transition
	transitions []Transition
}

// A Transition records an offset change: at instant At the zone's
// offset switches from OffsetBefore to OffsetAfter, both in seconds.
// OffsetAfter applies on [At, next.At).
type Transition struct {
	At           Instant
	OffsetBefore int
	OffsetAfter  int
}

// UTC is the fixed zero-offset zone.
var UTC = &TimeZone{id: "UTC", fixed: true}

// FixedOffsetZone returns a fixed-offset zone named by its ±HH:MM[:SS]
// form, or ErrRange for offsets of a day or more.
func FixedOffsetZone(offsetSeconds int) (*TimeZone, error) {
	if offsetSeconds <= -int(secondsPerDay) || offsetSeconds >= int(secondsPerDay) {
		return nil, rangef("offset %d seconds out of range", offsetSeconds)
	}
	return &TimeZone{
		id:     iso8601.FormatOffset(offsetSeconds),
		fixed:  true,
		offset: offsetSeconds,
	}, nil
}

// NewZone builds a named zone from a pre-parsed transition table. The
// table must be ordered by instant, with each entry's OffsetBefore
// matching its predecessor's OffsetAfter (the initial offset for the
// first entry). The slice is copied.
func NewZone(id string, initialOffsetSeconds int, transitions []Transition) (*TimeZone, error) {
	if id == "" {
		return nil, invalidf("zone id must not be empty")
	}
	prev := initialOffsetSeconds
	for i, tr := range transitions {
		if i > 0 && CompareInstants(transitions[i-1].At, tr.At) >= 0 {
			return nil, invalidf("zone %s: transitions out of order at %d", id, i)
		}
		if tr.OffsetBefore != prev {
			return nil, invalidf("zone %s: transition %d offsetBefore %d does not chain from %d", id, i, tr.OffsetBefore, prev)
		}
		prev = tr.OffsetAfter
	}
	return &TimeZone{
		id:          id,
		initial:     initialOffsetSeconds,
		transitions: append([]Transition(nil), transitions...),
	}, nil
}

// The zone registry is process-wide: populated by whoever loads the
// platform's zone data, then read-only in practice.
var zoneRegistry = struct {
	sync.RWMutex
	byID map[string]*TimeZone
}{byID: map[string]*TimeZone{}}

// RegisterZone publishes a named zone for lookup by ForZoneID,
// replacing any previous registration of the same identifier.
func RegisterZone(z *TimeZone) {
	zoneRegistry.Lock()
	defer zoneRegistry.Unlock()
	zoneRegistry.byID[z.id] = z
}

// ForZoneID resolves a time zone identifier: "UTC", a fixed offset of
// the form ±HH:MM[:SS], or the name of a registered zone.
func ForZoneID(id string) (*TimeZone, error) {
	if id == "UTC" {
		return UTC, nil
	}
	if len(id) > 0 && (id[0] == '+' || id[0] == '-') {
		sec, err := iso8601.ParseOffsetSeconds(id)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		return FixedOffsetZone(sec)
	}
	zoneRegistry.RLock()
	z := zoneRegistry.byID[id]
	zoneRegistry.RUnlock()
	if z == nil {
		return nil, invalidf("unknown time zone %q", id)
	}
	return z, nil
}

// ID returns the zone identifier.
func (z *TimeZone) ID() string { return z.id }

// IsFixed reports whether the zone's offset never changes.
func (z *TimeZone) IsFixed() bool { return z.fixed }

// OffsetSecondsFor returns the UTC offset in effect at an instant: that
// of the greatest transition at or before it, or the zone's initial
// offset when none precede.
func (z *TimeZone) OffsetSecondsFor(t Instant) int {
	if z.fixed {
		return z.offset
	}
	// First transition strictly after t; the one before it governs.
	i := sort.Search(len(z.transitions), func(i int) bool {
		return CompareInstants(z.transitions[i].At, t) > 0
	})
	if i == 0 {
		return z.initial
	}
	return z.transitions[i-1].OffsetAfter
}

// OffsetNanosecondsFor is OffsetSecondsFor scaled to nanoseconds.
func (z *TimeZone) OffsetNanosecondsFor(t Instant) int64 {
	return int64(z.OffsetSecondsFor(t)) * nanosPerSecond
}

// OffsetStringFor renders the offset at t as ±HH:MM[:SS].
func (z *TimeZone) OffsetStringFor(t Instant) string {
	return iso8601.FormatOffset(z.OffsetSecondsFor(t))
}

// NextTransition returns the first offset transition strictly after t;
// ok is false for fixed zones or when none remains.
func (z *TimeZone) NextTransition(t Instant) (Instant, bool) {
	i := sort.Search(len(z.transitions), func(i int) bool {
		return CompareInstants(z.transitions[i].At, t) > 0
	})
	if i == len(z.transitions) {
		return Instant{}, false
	}
	return z.transitions[i].At, true
}

// PreviousTransition returns the last offset transition strictly before
// t; ok is false for fixed zones or when none precedes.
func (z *TimeZone) PreviousTransition(t Instant) (Instant, bool) {
	i := sort.Search(len(z.transitions), func(i int) bool {
		return CompareInstants(z.transitions[i].At, t) >= 0
	})
	if i == 0 {
		return Instant{}, false
	}
	return z.transitions[i-1].At, true
}

// PlainDateTimeFor converts an instant to the zone's wall-clock time on
// the given calendar (nil for ISO). The conversion is pure addition and
// always yields exactly one result.
func (z *TimeZone) PlainDateTimeFor(t Instant, cal *Calendar) (PlainDateTime, error) {
	if cal == nil {
		cal = ISO8601
	}
	days, ns := t.civil(z.OffsetSecondsFor(t))
	date, err := plainDateFromEpochDays(days, cal)
	if err != nil {
		return PlainDateTime{}, err
	}
	return PlainDateTime{date: date, timeNanos: ns}, nil
}

// asUTC reads a wall-clock time as if its zone were UTC, the reference
// point for candidate offsets.
func asUTC(dt PlainDateTime) Instant {
	sec := dt.date.epochDays()*secondsPerDay + dt.timeNanos/nanosPerSecond
	return Instant{sec: sec, nsec: int32(dt.timeNanos % nanosPerSecond)}
}

// PossibleInstantsFor returns the instants whose wall-clock reading in
// this zone equals dt, ordered earliest first: one for unambiguous
// times, two when a backward transition repeats the reading (fold),
// none when a forward transition skips it (gap).
func (z *TimeZone) PossibleInstantsFor(dt PlainDateTime) []Instant {
	base := asUTC(dt)
	if z.fixed {
		return []Instant{base.addSeconds(int64(-z.offset))}
	}
	// Try the offsets in force just before and just after the reading;
	// any transition near dt lies within a day of the UTC guess.
	before := z.OffsetSecondsFor(base.addSeconds(-secondsPerDay))
	after := z.OffsetSecondsFor(base.addSeconds(secondsPerDay))
	var out []Instant
	for _, off := range []int{before, after} {
		if off == after && after == before && len(out) > 0 {
			break // single candidate offset
		}
		cand := base.addSeconds(int64(-off))
		if z.OffsetSecondsFor(cand) == off {
			out = append(out, cand)
		}
	}
	if len(out) == 2 && CompareInstants(out[0], out[1]) > 0 {
		out[0], out[1] = out[1], out[0]
	}
	if len(out) == 2 && out[0].Equals(out[1]) {
		out = out[:1]
	}
	return out
}

// InstantFor resolves a wall-clock time to a single instant under the
// given disambiguation policy. In a gap, "earlier" selects the reading
// shifted back by the skipped interval and "compatible"/"later" the
// reading shifted forward; in a fold, "compatible" selects the earlier
// of the two instants. "reject" fails with ErrAmbiguousTime in both
// cases.
func (z *TimeZone) InstantFor(dt PlainDateTime, d Disambiguation) (Instant, error) {
	if !d.valid() {
		return Instant{}, invalidf("unknown disambiguation %d", int(d))
	}
	cands := z.PossibleInstantsFor(dt)
	switch len(cands) {
	case 1:
		return cands[0], nil
	case 2:
		switch d {
		case DisambiguationReject:
			return Instant{}, fmt.Errorf("%s is repeated in %s: %w", dt, z.id, ErrAmbiguousTime)
		case DisambiguationLater:
			return cands[1], nil
		}
		return cands[0], nil
	}
	// Gap: dt was skipped by a forward transition.
	if d == DisambiguationReject {
		return Instant{}, fmt.Errorf("%s is skipped in %s: %w", dt, z.id, ErrAmbiguousTime)
	}
	base := asUTC(dt)
	before := z.OffsetSecondsFor(base.addSeconds(-secondsPerDay))
	after := z.OffsetSecondsFor(base.addSeconds(secondsPerDay))
	if d == DisambiguationEarlier {
		// Evaluated under the post-transition offset this reading lands
		// before the transition, i.e. shifted back by the gap's length.
		return base.addSeconds(int64(-after)), nil
	}
	return base.addSeconds(int64(-before)), nil
}
