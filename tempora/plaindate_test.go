// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"errors"
	"testing"
)

func TestNewPlainDate(t *testing.T) {
	d, err := NewPlainDate(2024, 2, 29)
	if err != nil {
		t.Fatalf("NewPlainDate(2024, 2, 29): %v", err)
	}
	if d.Year() != 2024 || d.Month() != 2 || d.Day() != 29 {
		t.Errorf("got %d-%d-%d", d.Year(), d.Month(), d.Day())
	}

	for _, test := range []struct{ y, m, d int }{
		{2023, 2, 29},
		{2024, 13, 1},
		{2024, 0, 1},
		{2024, 4, 31},
		{2024, 1, 0},
		{300000, 1, 1},
	} {
		if _, err := NewPlainDate(test.y, test.m, test.d); !errors.Is(err, ErrRange) {
			t.Errorf("NewPlainDate(%d, %d, %d): err = %v, want ErrRange", test.y, test.m, test.d, err)
		}
	}
}

func TestPlainDateEpochDays(t *testing.T) {
	d := mustDate(t, "1970-01-01")
	if d.EpochDays() != 0 {
		t.Errorf("1970-01-01 epoch days = %d", d.EpochDays())
	}
	for _, days := range []int64{0, 1, -1, 19792, -719162, 100000000, -100000000} {
		d, err := PlainDateFromEpochDays(days)
		if err != nil {
			t.Errorf("PlainDateFromEpochDays(%d): %v", days, err)
			continue
		}
		if got := d.EpochDays(); got != days {
			t.Errorf("round trip of epoch day %d = %d", days, got)
		}
	}
	for _, days := range []int64{100000001, -100000001} {
		if _, err := PlainDateFromEpochDays(days); !errors.Is(err, ErrRange) {
			t.Errorf("PlainDateFromEpochDays(%d): err = %v, want ErrRange", days, err)
		}
	}
}

func TestPlainDateAccessors(t *testing.T) {
	d := mustDate(t, "2024-03-15")
	for _, test := range []struct {
		name string
		got  int
		want int
	}{
		{"DayOfWeek", d.DayOfWeek(), 5}, // Friday
		{"DayOfYear", d.DayOfYear(), 75},
		{"WeekOfYear", d.WeekOfYear(), 11},
		{"YearOfWeek", d.YearOfWeek(), 2024},
		{"DaysInMonth", d.DaysInMonth(), 31},
		{"DaysInYear", d.DaysInYear(), 366},
		{"MonthsInYear", d.MonthsInYear(), 12},
	} {
		if test.got != test.want {
			t.Errorf("%s = %d, want %d", test.name, test.got, test.want)
		}
	}
	if !d.InLeapYear() {
		t.Errorf("2024 not reported as a leap year")
	}
	if got := d.MonthCode(); got != "M03" {
		t.Errorf("MonthCode = %q, want M03", got)
	}
}

func TestPlainDateWith(t *testing.T) {
	d := mustDate(t, "2024-01-31")
	got, err := d.With(Fields{Month: intp(2)}, OverflowConstrain)
	if err != nil {
		t.Fatalf("With: %v", err)
	}
	if got.String() != "2024-02-29" {
		t.Errorf("With(month: 2) = %s, want 2024-02-29", got)
	}
	if _, err := d.With(Fields{Month: intp(2)}, OverflowReject); !errors.Is(err, ErrRange) {
		t.Errorf("With(month: 2, reject): err = %v, want ErrRange", err)
	}
	got, err = d.With(Fields{Year: intp(2025), Day: intp(1)}, OverflowReject)
	if err != nil || got.String() != "2025-01-01" {
		t.Errorf("With(year, day) = %v, %v; want 2025-01-01", got, err)
	}
}

func TestPlainDateStringRoundTrip(t *testing.T) {
	for _, text := range []string{
		"2024-03-15",
		"0001-01-01",
		"-000044-03-15",
		"+275760-09-13",
		"2024-03-15[u-ca=buddhist]",
		"2024-03-15[u-ca=japanese]",
	} {
		d := mustDate(t, text)
		if got := d.String(); got != text {
			t.Errorf("ParsePlainDate(%q).String() = %q", text, got)
		}
	}
	if _, err := ParsePlainDate("2024-02-30"); !errors.Is(err, ErrRange) {
		t.Errorf("ParsePlainDate(2024-02-30): err = %v, want ErrRange", err)
	}
	if _, err := ParsePlainDate("bogus"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParsePlainDate(bogus): err = %v, want ErrInvalidArgument", err)
	}
	if _, err := ParsePlainDate("2024-03-15[u-ca=hebrew]"); !errors.Is(err, ErrUnsupportedCalendar) {
		t.Errorf("unsupported calendar: err = %v, want ErrUnsupportedCalendar", err)
	}
}

func TestComparePlainDates(t *testing.T) {
	a := mustDate(t, "2024-03-15")
	b := mustDate(t, "2024-03-16")
	if got := ComparePlainDates(a, b); got != -1 {
		t.Errorf("ComparePlainDates = %d, want -1", got)
	}
	if got := ComparePlainDates(b, a); got != 1 {
		t.Errorf("ComparePlainDates = %d, want 1", got)
	}
	// The calendar does not affect ordering, only equality.
	c := a.WithCalendar(Buddhist)
	if got := ComparePlainDates(a, c); got != 0 {
		t.Errorf("ComparePlainDates across calendars = %d, want 0", got)
	}
	if a.Equals(c) {
		t.Errorf("Equals ignored the calendar")
	}
	if !a.Equals(mustDate(t, "2024-03-15")) {
		t.Errorf("Equals rejected an identical date")
	}
}
