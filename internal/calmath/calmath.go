// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package calmath provides stateless arithmetic over the proleptic
// Gregorian calendar: leap years, month lengths, epoch-day conversion,
// weekdays, and ISO-8601 week numbering.
//
// All functions are pure; dates are plain (year, month, day) integer
// triples and epoch days count from 1970-01-01. Callers are responsible
// for range checking; these functions are exact for any int64 epoch day
// whose year fits in an int.
package calmath

// daysBefore[m] is the number of days in a non-leap year before month m+1.
var daysBefore = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// IsLeapYear reports whether the ISO year y is a leap year:
// divisible by 4, except centuries unless also divisible by 400.
func IsLeapYear(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(y int) int {
	if IsLeapYear(y) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month m (1-12) of year y.
func DaysInMonth(y, m int) int {
	if m == 2 && IsLeapYear(y) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

// DayOfYear returns the ordinal day (1-366) of y-m-d within its year.
func DayOfYear(y, m, d int) int {
	doy := daysBefore[m-1] + d
	if m > 2 && IsLeapYear(y) {
		doy++
	}
	return doy
}

// EpochDays returns the number of days from 1970-01-01 to y-m-d.
// The triple must be a valid calendar date.
func EpochDays(y, m, d int) int64 {
	yy := int64(y)
	if m <= 2 {
		yy--
	}
	era := yy / 400
	if yy < 0 && yy%400 != 0 {
		era--
	}
	yoe := yy - era*400 // [0, 399]
	mp := int64(m+9) % 12
	doy := (153*mp+2)/5 + int64(d) - 1          // [0, 365], March-based
	doe := yoe*365 + yoe/4 - yoe/100 + doy      // [0, 146096]
	return era*146097 + doe - 719468            // shift epoch to 1970-01-01
}

// YMDFromEpochDays is the inverse of EpochDays.
func YMDFromEpochDays(days int64) (y, m, d int) {
	z := days + 719468
	era := z / 146097
	if z < 0 && z%146097 != 0 {
		era--
	}
	doe := z - era*146097                                    // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365   // [0, 399]
	yy := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	dd := doy - (153*mp+2)/5 + 1             // [1, 31]
	mm := mp + 3
	if mp >= 10 {
		mm = mp - 9
	}
	if mm <= 2 {
		yy++
	}
	return int(yy), int(mm), int(dd)
}

// DayOfWeek returns the ISO weekday (Monday=1 .. Sunday=7) of an epoch day.
// 1970-01-01 was a Thursday.
func DayOfWeek(epochDays int64) int {
	return int(((epochDays+3)%7+7)%7) + 1
}

// ISOWeek returns the ISO-8601 week-numbering year and week (1-53) of
// y-m-d. Week 1 is the week containing the year's first Thursday
// (equivalently, the week containing January 4), so the week year may
// differ from y near year boundaries.
func ISOWeek(y, m, d int) (weekYear, week int) {
	ed := EpochDays(y, m, d)
	// The Thursday of this date's week decides the week year.
	thu := ed + int64(4-DayOfWeek(ed))
	ty, tm, td := YMDFromEpochDays(thu)
	return ty, (DayOfYear(ty, tm, td)-1)/7 + 1
}
