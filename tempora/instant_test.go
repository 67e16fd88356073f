// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"errors"
	"testing"
)

func mustInstant(t *testing.T, epochSeconds int64) Instant {
	t.Helper()
	it, err := InstantFromEpochSeconds(epochSeconds)
	if err != nil {
		t.Fatalf("InstantFromEpochSeconds(%d): %v", epochSeconds, err)
	}
	return it
}

func TestInstantEpochAccessors(t *testing.T) {
	it, err := InstantFromEpochMilliseconds(1710498645123)
	if err != nil {
		t.Fatalf("InstantFromEpochMilliseconds: %v", err)
	}
	if got := it.EpochSeconds(); got != 1710498645 {
		t.Errorf("EpochSeconds = %d", got)
	}
	if got := it.EpochMilliseconds(); got != 1710498645123 {
		t.Errorf("EpochMilliseconds = %d", got)
	}
	us, err := it.EpochMicroseconds()
	if err != nil || us != 1710498645123000 {
		t.Errorf("EpochMicroseconds = %d, %v", us, err)
	}
	ns, err := it.EpochNanoseconds()
	if err != nil || ns != 1710498645123000000 {
		t.Errorf("EpochNanoseconds = %d, %v", ns, err)
	}
}

func TestInstantTruncationTowardZero(t *testing.T) {
	// -0.5s is before the epoch; whole-unit accessors truncate toward
	// zero, not toward negative infinity.
	it, err := InstantFromEpochMilliseconds(-500)
	if err != nil {
		t.Fatalf("InstantFromEpochMilliseconds(-500): %v", err)
	}
	if got := it.EpochSeconds(); got != 0 {
		t.Errorf("EpochSeconds(-0.5s) = %d, want 0", got)
	}
	if got := it.EpochMilliseconds(); got != -500 {
		t.Errorf("EpochMilliseconds(-0.5s) = %d, want -500", got)
	}

	it = InstantFromEpochNanoseconds(-1500000001)
	if got := it.EpochSeconds(); got != -1 {
		t.Errorf("EpochSeconds(-1.500000001s) = %d, want -1", got)
	}
	if got := it.EpochMilliseconds(); got != -1500 {
		t.Errorf("EpochMilliseconds(-1.500000001s) = %d, want -1500", got)
	}
	us, err := it.EpochMicroseconds()
	if err != nil || us != -1500000 {
		t.Errorf("EpochMicroseconds = %d, %v; want -1500000", us, err)
	}
}

func TestInstantRange(t *testing.T) {
	const maxSec = int64(100000000) * 86400
	if _, err := InstantFromEpochSeconds(maxSec); err != nil {
		t.Errorf("max instant rejected: %v", err)
	}
	if _, err := InstantFromEpochSeconds(maxSec + 1); !errors.Is(err, ErrRange) {
		t.Errorf("beyond max: err = %v, want ErrRange", err)
	}
	if _, err := InstantFromEpochSeconds(-maxSec - 1); !errors.Is(err, ErrRange) {
		t.Errorf("beyond min: err = %v, want ErrRange", err)
	}

	// The domain edge does not fit in int64 nanoseconds.
	it := mustInstant(t, maxSec)
	if _, err := it.EpochNanoseconds(); !errors.Is(err, ErrRange) {
		t.Errorf("EpochNanoseconds at the edge: err = %v, want ErrRange", err)
	}
	if _, err := it.EpochMicroseconds(); err != nil {
		t.Errorf("EpochMicroseconds at the edge: %v", err)
	}
}

func TestInstantAdd(t *testing.T) {
	it := mustInstant(t, 1000)
	got, err := it.Add(mustDuration(t, "PT1H30M0.000000001S"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	ns, err := got.EpochNanoseconds()
	if err != nil || ns != (1000+5400)*1000000000+1 {
		t.Errorf("Add result = %d, %v", ns, err)
	}

	for _, dur := range []string{"P1D", "P1W", "P1M", "P1Y"} {
		if _, err := it.Add(mustDuration(t, dur)); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Add(%s): err = %v, want ErrInvalidArgument", dur, err)
		}
	}

	back, err := got.Subtract(mustDuration(t, "PT1H30M0.000000001S"))
	if err != nil || !back.Equals(it) {
		t.Errorf("Subtract did not invert Add: %v, %v", back, err)
	}
}

func TestInstantUntil(t *testing.T) {
	a := mustInstant(t, 1000)
	b := mustInstant(t, 4600)
	got, err := a.Until(b, UnitHour)
	if err != nil {
		t.Fatalf("Until: %v", err)
	}
	if got.String() != "PT1H" {
		t.Errorf("Until = %s, want PT1H", got)
	}
	got, err = a.Until(b, UnitUnspecified)
	if err != nil || got.String() != "PT3600S" {
		t.Errorf("Until default = %s, %v; want PT3600S", got, err)
	}
	got, err = b.Since(a, UnitMinute)
	if err != nil || got.String() != "PT60M" {
		t.Errorf("Since = %s, %v; want PT60M", got, err)
	}
	if _, err := a.Until(b, UnitDay); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Until(day): err = %v, want ErrInvalidArgument", err)
	}
}

func TestInstantStringRoundTrip(t *testing.T) {
	for _, text := range []string{
		"2024-03-15T10:30:45.123456789Z",
		"1970-01-01T00:00:00Z",
		"1969-12-31T23:59:59.5Z",
		"-000044-03-15T12:00:00Z",
	} {
		it, err := ParseInstant(text)
		if err != nil {
			t.Fatalf("ParseInstant(%q): %v", text, err)
		}
		if got := it.String(); got != text {
			t.Errorf("ParseInstant(%q).String() = %q", text, got)
		}
	}
}

func TestParseInstantOffset(t *testing.T) {
	// The same instant written with different offsets.
	utc, err := ParseInstant("2024-03-15T14:30:45Z")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	ny, err := ParseInstant("2024-03-15T10:30:45-04:00")
	if err != nil {
		t.Fatalf("ParseInstant: %v", err)
	}
	if !utc.Equals(ny) {
		t.Errorf("offset forms disagree: %s vs %s", utc, ny)
	}
	if _, err := ParseInstant("2024-03-15T10:30:45"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("offset-less instant: err = %v, want ErrInvalidArgument", err)
	}
}

func TestCompareInstants(t *testing.T) {
	a := mustInstant(t, 100)
	b := InstantFromEpochNanoseconds(100000000001)
	if CompareInstants(a, b) != -1 || CompareInstants(b, a) != 1 || CompareInstants(a, a) != 0 {
		t.Errorf("CompareInstants ordering broken")
	}
}
