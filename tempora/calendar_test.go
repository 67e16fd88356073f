// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalendarFor(t *testing.T) {
	for _, id := range []string{"iso8601", "gregory", "buddhist", "japanese", "roc"} {
		c, err := CalendarFor(id)
		if err != nil {
			t.Errorf("CalendarFor(%q): %v", id, err)
			continue
		}
		if c.ID() != id {
			t.Errorf("CalendarFor(%q).ID() = %q", id, c.ID())
		}
	}
	if _, err := CalendarFor("hebrew"); !errors.Is(err, ErrUnsupportedCalendar) {
		t.Errorf("CalendarFor(hebrew): err = %v, want ErrUnsupportedCalendar", err)
	}
}

func TestCalendarEras(t *testing.T) {
	for _, test := range []struct {
		cal     *Calendar
		date    string
		year    int
		era     string
		eraYear int
		hasEra  bool
	}{
		{ISO8601, "2024-03-15", 2024, "", 0, false},
		{Gregorian, "2024-03-15", 2024, "ce", 2024, true},
		{Gregorian, "0001-01-01", 1, "ce", 1, true},
		{Gregorian, "0000-06-01", 0, "bce", 1, true},
		{Gregorian, "-000044-03-15", -44, "bce", 45, true},
		{Buddhist, "2024-03-15", 2567, "be", 2567, true},
		{ROC, "2024-03-15", 113, "roc", 113, true},
		{ROC, "1912-01-01", 1, "roc", 1, true},
		{ROC, "1911-12-31", 0, "before-roc", 1, true},
		{Japanese, "2024-03-15", 2024, "reiwa", 6, true},
		{Japanese, "2019-05-01", 2019, "reiwa", 1, true},
		{Japanese, "2019-04-30", 2019, "heisei", 31, true},
		{Japanese, "1989-01-08", 1989, "heisei", 1, true},
		{Japanese, "1989-01-07", 1989, "showa", 64, true},
		{Japanese, "1926-12-25", 1926, "showa", 1, true},
		{Japanese, "1912-07-30", 1912, "taisho", 1, true},
		{Japanese, "1868-01-01", 1868, "meiji", 1, true},
		{Japanese, "1867-12-31", 1867, "japanese", 1867, true},
	} {
		d := mustDate(t, test.date).WithCalendar(test.cal)
		if got := d.Year(); got != test.year {
			t.Errorf("%s[%s].Year() = %d, want %d", test.date, test.cal, got, test.year)
		}
		era, ok := d.Era()
		if ok != test.hasEra || era != test.era {
			t.Errorf("%s[%s].Era() = %q, %v; want %q, %v", test.date, test.cal, era, ok, test.era, test.hasEra)
		}
		if ey, ok := d.EraYear(); ok != test.hasEra || ey != test.eraYear {
			t.Errorf("%s[%s].EraYear() = %d, %v; want %d, %v", test.date, test.cal, ey, ok, test.eraYear, test.hasEra)
		}
	}
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestDateFromFields(t *testing.T) {
	d, err := ISO8601.DateFromFields(Fields{Year: intp(2024), Month: intp(2), Day: intp(29)}, OverflowReject)
	if err != nil {
		t.Fatalf("DateFromFields: %v", err)
	}
	if got := d.String(); got != "2024-02-29" {
		t.Errorf("DateFromFields = %s, want 2024-02-29", got)
	}

	// Era pairs invert to ISO years.
	d, err = Gregorian.DateFromFields(Fields{Era: strp("bce"), EraYear: intp(45), Month: intp(3), Day: intp(15)}, OverflowReject)
	if err != nil {
		t.Fatalf("DateFromFields(era): %v", err)
	}
	if d.ISOYear() != -44 {
		t.Errorf("bce 45 resolved to ISO year %d, want -44", d.ISOYear())
	}

	d, err = Japanese.DateFromFields(Fields{Era: strp("reiwa"), EraYear: intp(6), MonthCode: strp("M03"), Day: intp(15)}, OverflowReject)
	if err != nil {
		t.Fatalf("DateFromFields(reiwa): %v", err)
	}
	if d.ISOYear() != 2024 || d.Month() != 3 {
		t.Errorf("reiwa 6 M03 resolved to %s", d)
	}
}

func TestDateFromFieldsOverflow(t *testing.T) {
	f := Fields{Year: intp(2023), Month: intp(2), Day: intp(29)}
	d, err := ISO8601.DateFromFields(f, OverflowConstrain)
	if err != nil {
		t.Fatalf("constrain: %v", err)
	}
	if got := d.String(); got != "2023-02-28" {
		t.Errorf("constrained 2023-02-29 = %s, want 2023-02-28", got)
	}
	if _, err := ISO8601.DateFromFields(f, OverflowReject); !errors.Is(err, ErrRange) {
		t.Errorf("reject 2023-02-29: err = %v, want ErrRange", err)
	}

	f = Fields{Year: intp(2024), Month: intp(14), Day: intp(1)}
	if d, err = ISO8601.DateFromFields(f, OverflowConstrain); err != nil || d.Month() != 12 {
		t.Errorf("constrained month 14 = %v, %v; want month 12", d, err)
	}
	if _, err := ISO8601.DateFromFields(f, OverflowReject); !errors.Is(err, ErrRange) {
		t.Errorf("reject month 14: err = %v, want ErrRange", err)
	}
}

func TestDateFromFieldsErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		cal  *Calendar
		f    Fields
	}{
		{"no year", ISO8601, Fields{Month: intp(1), Day: intp(1)}},
		{"no month", ISO8601, Fields{Year: intp(2024), Day: intp(1)}},
		{"no day", ISO8601, Fields{Year: intp(2024), Month: intp(1)}},
		{"month conflicts with code", ISO8601, Fields{Year: intp(2024), Month: intp(2), MonthCode: strp("M03"), Day: intp(1)}},
		{"malformed month code", ISO8601, Fields{Year: intp(2024), MonthCode: strp("3"), Day: intp(1)}},
		{"unknown era", Gregorian, Fields{Era: strp("meiji"), EraYear: intp(1), Month: intp(1), Day: intp(1)}},
		{"era on iso", ISO8601, Fields{Era: strp("ce"), EraYear: intp(2024), Month: intp(1), Day: intp(1)}},
	} {
		if _, err := test.cal.DateFromFields(test.f, OverflowConstrain); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", test.name, err)
		}
	}
}

func TestMergeFields(t *testing.T) {
	base := Fields{Year: intp(2024), Month: intp(3), Day: intp(15)}

	// Supplying a month code displaces the month of the base, not just
	// overlays it.
	merged := ISO8601.MergeFields(base, Fields{MonthCode: strp("M05")})
	if merged.Month != nil {
		t.Errorf("MergeFields kept stale month %d alongside the new month code", *merged.Month)
	}
	if merged.MonthCode == nil || *merged.MonthCode != "M05" {
		t.Errorf("MergeFields lost the month code")
	}

	// Likewise an era pair displaces a plain year.
	merged = Gregorian.MergeFields(base, Fields{Era: strp("bce"), EraYear: intp(1)})
	if merged.Year != nil {
		t.Errorf("MergeFields kept stale year alongside the era pair")
	}

	d, err := Gregorian.DateFromFields(merged, OverflowReject)
	if err != nil {
		t.Fatalf("DateFromFields(merged): %v", err)
	}
	if d.ISOYear() != 0 {
		t.Errorf("merged bce 1 resolved to ISO year %d, want 0", d.ISOYear())
	}
}

func TestFieldNames(t *testing.T) {
	got := Japanese.FieldNames([]string{"year", "month", "day"})
	want := []string{"year", "month", "day", "era", "eraYear"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldNames mismatch (-want +got):\n%s", diff)
	}
	got = ISO8601.FieldNames([]string{"year", "month", "day"})
	if diff := cmp.Diff([]string{"year", "month", "day"}, got); diff != "" {
		t.Errorf("FieldNames(iso) mismatch (-want +got):\n%s", diff)
	}
}

func TestDateAdd(t *testing.T) {
	for _, test := range []struct {
		date, dur string
		overflow  Overflow
		want      string
	}{
		{"2024-01-31", "P1M", OverflowConstrain, "2024-02-29"},
		{"2023-01-31", "P1M", OverflowConstrain, "2023-02-28"},
		{"2024-02-29", "P1Y", OverflowConstrain, "2025-02-28"},
		{"2024-01-31", "P2M", OverflowConstrain, "2024-03-31"},
		{"2024-03-15", "P1Y2M10D", OverflowConstrain, "2025-05-25"},
		{"2024-03-15", "-P1M", OverflowConstrain, "2024-02-15"},
		{"2024-03-31", "-P1M", OverflowConstrain, "2024-02-29"},
		{"2024-01-01", "P1W", OverflowConstrain, "2024-01-08"},
		// Time fields contribute whole days only.
		{"2024-01-01", "PT48H30M", OverflowConstrain, "2024-01-03"},
	} {
		got, err := mustDate(t, test.date).Add(mustDuration(t, test.dur), test.overflow)
		if err != nil {
			t.Errorf("%s.Add(%s): %v", test.date, test.dur, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%s.Add(%s) = %s, want %s", test.date, test.dur, got, test.want)
		}
	}

	if _, err := mustDate(t, "2024-01-31").Add(mustDuration(t, "P1M"), OverflowReject); !errors.Is(err, ErrRange) {
		t.Errorf("2024-01-31 + P1M reject: err = %v, want ErrRange", err)
	}
}

func TestDateUntil(t *testing.T) {
	for _, test := range []struct {
		a, b    string
		largest Unit
		want    string
	}{
		{"2024-01-01", "2024-01-31", UnitDay, "P30D"},
		{"2024-01-01", "2024-01-31", UnitWeek, "P4W2D"},
		{"2024-01-31", "2024-01-01", UnitDay, "-P30D"},
		{"2024-01-31", "2024-01-01", UnitWeek, "-P4W2D"},
		{"2024-01-01", "2024-03-15", UnitMonth, "P2M14D"},
		{"2024-01-31", "2024-02-29", UnitMonth, "P1M"},
		{"2024-01-31", "2024-03-01", UnitMonth, "P1M1D"},
		{"2020-01-01", "2024-03-15", UnitYear, "P4Y2M14D"},
		{"2024-03-15", "2020-01-01", UnitYear, "-P4Y2M14D"},
		{"2024-03-15", "2024-03-15", UnitYear, "PT0S"},
	} {
		a, b := mustDate(t, test.a), mustDate(t, test.b)
		got, err := a.Until(b, test.largest)
		if err != nil {
			t.Errorf("%s.Until(%s, %s): %v", test.a, test.b, test.largest, err)
			continue
		}
		if got.String() != test.want {
			t.Errorf("%s.Until(%s, %s) = %s, want %s", test.a, test.b, test.largest, got, test.want)
		}
	}

	iso := mustDate(t, "2024-01-01")
	other := mustDate(t, "2024-03-01").WithCalendar(Buddhist)
	if _, err := iso.Until(other, UnitDay); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("cross-calendar Until: err = %v, want ErrInvalidArgument", err)
	}
}
