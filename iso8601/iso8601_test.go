// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iso8601

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDateTime(t *testing.T) {
	for _, test := range []struct {
		input string
		want  DateTime
	}{
		{"2024-03-15", DateTime{Year: 2024, Month: 3, Day: 15}},
		{"2024-03-15T10:30:45",
			DateTime{Year: 2024, Month: 3, Day: 15, HasTime: true, Hour: 10, Minute: 30, Second: 45}},
		{"2024-03-15T10:30:45.123456789Z",
			DateTime{Year: 2024, Month: 3, Day: 15, HasTime: true, Hour: 10, Minute: 30, Second: 45,
				Nanosecond: 123456789, HasOffset: true, Zulu: true}},
		{"2024-03-15T10:30:45.5-04:00",
			DateTime{Year: 2024, Month: 3, Day: 15, HasTime: true, Hour: 10, Minute: 30, Second: 45,
				Nanosecond: 500000000, HasOffset: true, OffsetSeconds: -4 * 3600}},
		{"2024-03-15T10:30:45-04:00[America/New_York]",
			DateTime{Year: 2024, Month: 3, Day: 15, HasTime: true, Hour: 10, Minute: 30, Second: 45,
				HasOffset: true, OffsetSeconds: -4 * 3600, Zone: "America/New_York"}},
		{"2024-03-15[u-ca=buddhist]",
			DateTime{Year: 2024, Month: 3, Day: 15, Calendar: "buddhist"}},
		{"2024-03-15T00:00:00+09:00[Asia/Tokyo][u-ca=japanese]",
			DateTime{Year: 2024, Month: 3, Day: 15, HasTime: true,
				HasOffset: true, OffsetSeconds: 9 * 3600, Zone: "Asia/Tokyo", Calendar: "japanese"}},
		{"-000001-12-31", DateTime{Year: -1, Month: 12, Day: 31}},
		{"+275760-09-13", DateTime{Year: 275760, Month: 9, Day: 13}},
	} {
		got, err := ParseDateTime(test.input)
		if err != nil {
			t.Errorf("ParseDateTime(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseDateTime(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseDateTimeErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"2024",
		"2024-3-15",       // month needs two digits
		"2024-13-01",      // month out of range
		"2024-00-01",
		"2024-01-32",
		"2024-01-15T25:00:00",
		"2024-01-15T10:60:00",
		"2024-01-15T10:30:45.1234567891", // ten fraction digits
		"2024-01-15T10:30:45.",
		"2024-01-15x",
		"2024-01-15[",                          // unterminated annotation
		"2024-01-15[Europe/Paris][Asia/Tokyo]", // duplicate zone
	} {
		if _, err := ParseDateTime(input); err == nil {
			t.Errorf("ParseDateTime(%q): unexpected success", input)
		}
	}
}

func TestParseDuration(t *testing.T) {
	for _, test := range []struct {
		input string
		want  Duration
	}{
		{"P1Y2M3W4DT5H6M7S", Duration{Sign: 1, Years: 1, Months: 2, Weeks: 3, Days: 4, Hours: 5, Minutes: 6, Seconds: 7}},
		{"-P1D", Duration{Sign: -1, Days: 1}},
		{"+PT1H", Duration{Sign: 1, Hours: 1}},
		{"PT0S", Duration{Sign: 1}},
		{"P0D", Duration{Sign: 1}},
		{"PT1.5S", Duration{Sign: 1, Seconds: 1, Milliseconds: 500}},
		{"PT0.123456789S", Duration{Sign: 1, Milliseconds: 123, Microseconds: 456, Nanoseconds: 789}},
		{"PT0,5S", Duration{Sign: 1, Milliseconds: 500}}, // comma fraction
		{"P40D", Duration{Sign: 1, Days: 40}},
		{"p1y1m1dt1h1m1s", Duration{Sign: 1, Years: 1, Months: 1, Days: 1, Hours: 1, Minutes: 1, Seconds: 1}},
	} {
		got, err := ParseDuration(test.input)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ParseDuration(%q) mismatch (-want +got):\n%s", test.input, diff)
		}
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"P",     // no components
		"PT",    // T with no time component
		"1Y",    // missing P
		"P1S",   // time designator without T
		"PT1Y",  // date designator after T
		"P1.5D", // fraction outside seconds
		"PT1.5M",
		"PT1.0000000001S",
		"P1Y2Y",
		"P1D2M", // out of order
		"P1Dx",
	} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("ParseDuration(%q): unexpected success", input)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	for _, test := range []struct {
		d    Duration
		want string
	}{
		{Duration{Sign: 1}, "PT0S"},
		{Duration{Sign: -1}, "PT0S"},
		{Duration{Sign: 1, Years: 1, Months: 2, Weeks: 3, Days: 4, Hours: 5, Minutes: 6, Seconds: 7}, "P1Y2M3W4DT5H6M7S"},
		{Duration{Sign: -1, Days: 1}, "-P1D"},
		{Duration{Sign: 1, Milliseconds: 500}, "PT0.5S"},
		{Duration{Sign: 1, Seconds: 1, Nanoseconds: 1}, "PT1.000000001S"},
		{Duration{Sign: 1, Milliseconds: 1500}, "PT1.5S"}, // sub-second overflow balances
		{Duration{Sign: -1, Hours: 26}, "-PT26H"},
	} {
		if got := FormatDuration(test.d); got != test.want {
			t.Errorf("FormatDuration(%+v) = %q, want %q", test.d, got, test.want)
		}
	}
}

func TestFormatDurationRoundTrip(t *testing.T) {
	for _, text := range []string{
		"P1Y2M3W4DT5H6M7S",
		"-P1D",
		"PT0S",
		"PT1.5S",
		"PT0.000000001S",
		"P1000Y",
	} {
		d, err := ParseDuration(text)
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", text, err)
		}
		if got := FormatDuration(d); got != text {
			t.Errorf("FormatDuration(ParseDuration(%q)) = %q", text, got)
		}
	}
}

func TestFormatYear(t *testing.T) {
	for _, test := range []struct {
		y    int
		want string
	}{
		{2024, "2024"},
		{0, "0000"},
		{999, "0999"},
		{9999, "9999"},
		{10000, "+010000"},
		{-1, "-000001"},
		{275760, "+275760"},
		{-271821, "-271821"},
	} {
		if got := FormatYear(test.y); got != test.want {
			t.Errorf("FormatYear(%d) = %q, want %q", test.y, got, test.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	for _, test := range []struct {
		hour, min, sec, nsec int
		want                 string
	}{
		{0, 0, 0, 0, "00:00:00"},
		{10, 30, 45, 0, "10:30:45"},
		{10, 30, 45, 123456789, "10:30:45.123456789"},
		{10, 30, 45, 500000000, "10:30:45.5"},
		{10, 30, 45, 120000000, "10:30:45.12"},
	} {
		if got := FormatTime(test.hour, test.min, test.sec, test.nsec); got != test.want {
			t.Errorf("FormatTime(%d, %d, %d, %d) = %q, want %q",
				test.hour, test.min, test.sec, test.nsec, got, test.want)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	for _, test := range []struct {
		sec  int
		want string
	}{
		{0, "+00:00"},
		{-5 * 3600, "-05:00"},
		{5*3600 + 30*60, "+05:30"},
		{-(4*3600 + 30*60 + 15), "-04:30:15"},
		{14 * 3600, "+14:00"},
	} {
		if got := FormatOffset(test.sec); got != test.want {
			t.Errorf("FormatOffset(%d) = %q, want %q", test.sec, got, test.want)
		}
		back, err := ParseOffsetSeconds(test.want)
		if err != nil || back != test.sec {
			t.Errorf("ParseOffsetSeconds(%q) = %d, %v; want %d", test.want, back, err, test.sec)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	for _, test := range []struct {
		input string
		y, m  int
	}{
		{"2024-03", 2024, 3},
		{"2024-03-15", 2024, 3}, // trailing day tolerated
		{"-000001-12", -1, 12},
	} {
		y, m, err := ParseYearMonth(test.input)
		if err != nil || y != test.y || m != test.m {
			t.Errorf("ParseYearMonth(%q) = %d, %d, %v; want %d, %d", test.input, y, m, err, test.y, test.m)
		}
	}
	for _, input := range []string{"", "2024", "2024-13", "2024-3", "2024-03x"} {
		if _, _, err := ParseYearMonth(input); err == nil {
			t.Errorf("ParseYearMonth(%q): unexpected success", input)
		}
	}
}

func TestParseMonthDay(t *testing.T) {
	for _, test := range []struct {
		input string
		m, d  int
	}{
		{"03-15", 3, 15},
		{"--03-15", 3, 15},
		{"02-29", 2, 29},
	} {
		m, d, err := ParseMonthDay(test.input)
		if err != nil || m != test.m || d != test.d {
			t.Errorf("ParseMonthDay(%q) = %d, %d, %v; want %d, %d", test.input, m, d, err, test.m, test.d)
		}
	}
	for _, input := range []string{"", "13-01", "03-32", "3-15", "03-15x"} {
		if _, _, err := ParseMonthDay(input); err == nil {
			t.Errorf("ParseMonthDay(%q): unexpected success", input)
		}
	}
}
