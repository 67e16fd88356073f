// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iso8601

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatYear renders an extended ISO year: four digits for 0-9999,
// otherwise a mandatory sign followed by six digits.
func FormatYear(y int) string {
	if 0 <= y && y <= 9999 {
		return fmt.Sprintf("%04d", y)
	}
	if y < 0 {
		return fmt.Sprintf("-%06d", -y)
	}
	return fmt.Sprintf("+%06d", y)
}

// FormatDate renders y-m-d as YYYY-MM-DD with an extended year.
func FormatDate(y, m, d int) string {
	return fmt.Sprintf("%s-%02d-%02d", FormatYear(y), m, d)
}

// FormatTime renders a time of day as HH:MM:SS, followed by a fractional
// part of up to nine digits when nsec is nonzero, trailing zeros stripped.
func FormatTime(hour, min, sec, nsec int) string {
	s := fmt.Sprintf("%02d:%02d:%02d", hour, min, sec)
	if nsec != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%09d", nsec), "0")
	}
	return s
}

// FormatOffset renders a UTC offset in seconds as ±HH:MM, with a
// trailing :SS part only for sub-minute offsets. Zero is "+00:00".
func FormatOffset(seconds int) string {
	sign := "+"
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h, m, s := seconds/3600, seconds/60%60, seconds%60
	if s != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, h, m)
}

// FormatDuration renders a duration record in canonical ISO-8601 form:
// designators only for non-zero fields, the three sub-second fields
// collapsed into a single fractional-seconds part, "PT0S" for zero, and
// a single leading minus for negative durations.
func FormatDuration(d Duration) string {
	// Sub-second fields may individually exceed one second; balance the
	// excess into the seconds position so the fraction has nine digits.
	sub := new(big.Int).SetInt64(d.Milliseconds)
	sub.Mul(sub, big.NewInt(1e6))
	sub.Add(sub, new(big.Int).Mul(big.NewInt(d.Microseconds), big.NewInt(1e3)))
	sub.Add(sub, big.NewInt(d.Nanoseconds))
	secs := new(big.Int).SetInt64(d.Seconds)
	carry, frac := new(big.Int).QuoRem(sub, big.NewInt(1e9), new(big.Int))
	secs.Add(secs, carry)

	var b strings.Builder
	if d.Sign < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeUnit(&b, d.Years, 'Y')
	writeUnit(&b, d.Months, 'M')
	writeUnit(&b, d.Weeks, 'W')
	writeUnit(&b, d.Days, 'D')

	hasSeconds := secs.Sign() != 0 || frac.Sign() != 0
	if d.Hours != 0 || d.Minutes != 0 || hasSeconds {
		b.WriteByte('T')
		writeUnit(&b, d.Hours, 'H')
		writeUnit(&b, d.Minutes, 'M')
		if hasSeconds {
			b.WriteString(secs.String())
			if frac.Sign() != 0 {
				b.WriteString(strings.TrimRight(fmt.Sprintf(".%09d", frac), "0"))
			}
			b.WriteByte('S')
		}
	}

	if b.Len() <= 1 || (d.Sign < 0 && b.Len() <= 2) {
		return "PT0S"
	}
	return b.String()
}

func writeUnit(b *strings.Builder, v int64, designator byte) {
	if v != 0 {
		fmt.Fprintf(b, "%d%c", v, designator)
	}
}
