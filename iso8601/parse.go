// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package iso8601

import (
	"strconv"
	"strings"
)

// A scanner holds parsing state for one input string.
// The grammar is regular, so a position index is the only state.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

// accept consumes c if it is next and reports whether it did.
func (s *scanner) accept(c byte) bool {
	if !s.eof() && s.input[s.pos] == c {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) expect(c byte, what string) error {
	if !s.accept(c) {
		return syntaxErrorf(s.input, "expected %q in %s", string(c), what)
	}
	return nil
}

// digits consumes exactly n decimal digits and returns their value.
func (s *scanner) digits(n int, what string) (int, error) {
	if s.pos+n > len(s.input) {
		return 0, syntaxErrorf(s.input, "%s requires %d digits", what, n)
	}
	v := 0
	for i := 0; i < n; i++ {
		c := s.input[s.pos+i]
		if c < '0' || c > '9' {
			return 0, syntaxErrorf(s.input, "%s requires %d digits", what, n)
		}
		v = v*10 + int(c-'0')
	}
	s.pos += n
	return v, nil
}

// ParseDate parses a bare YYYY-MM-DD (or extended ±YYYYYY-MM-DD) date.
func ParseDate(input string) (y, m, d int, err error) {
	s := &scanner{input: input}
	y, m, d, err = s.date()
	if err == nil && !s.eof() {
		err = syntaxErrorf(input, "unexpected text after date")
	}
	return y, m, d, err
}

// ParseDateTime parses a date, an optional T-separated time, an optional
// offset (numeric or Z), an optional bracketed zone identifier, and an
// optional [u-ca=...] calendar annotation.
func ParseDateTime(input string) (DateTime, error) {
	var dt DateTime
	s := &scanner{input: input}

	y, m, d, err := s.date()
	if err != nil {
		return dt, err
	}
	dt.Year, dt.Month, dt.Day = y, m, d

	if s.accept('T') || s.accept('t') {
		dt.HasTime = true
		if dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, err = s.time(); err != nil {
			return dt, err
		}
	}

	switch c := s.peek(); {
	case c == 'Z' || c == 'z':
		s.pos++
		dt.HasOffset, dt.Zulu = true, true
	case c == '+' || c == '-':
		if dt.OffsetSeconds, err = s.offset(); err != nil {
			return dt, err
		}
		dt.HasOffset = true
	}

	for s.accept('[') {
		end := strings.IndexByte(s.input[s.pos:], ']')
		if end < 0 {
			return dt, syntaxErrorf(input, "unterminated annotation")
		}
		ann := s.input[s.pos : s.pos+end]
		s.pos += end + 1
		switch {
		case strings.HasPrefix(ann, "u-ca="):
			dt.Calendar = ann[len("u-ca="):]
		case ann == "":
			return dt, syntaxErrorf(input, "empty annotation")
		default:
			if dt.Zone != "" {
				return dt, syntaxErrorf(input, "duplicate time zone annotation")
			}
			dt.Zone = ann
		}
	}

	if !s.eof() {
		return dt, syntaxErrorf(input, "unexpected text after date-time")
	}
	return dt, nil
}

// ParseYearMonth parses YYYY-MM (or extended ±YYYYYY-MM), tolerating a
// trailing -DD day.
func ParseYearMonth(input string) (y, m int, err error) {
	s := &scanner{input: input}
	switch s.peek() {
	case '+', '-':
		neg := s.peek() == '-'
		s.pos++
		if y, err = s.digits(6, "extended year"); err != nil {
			return
		}
		if neg {
			y = -y
		}
	default:
		if y, err = s.digits(4, "year"); err != nil {
			return
		}
	}
	if err = s.expect('-', "year-month"); err != nil {
		return
	}
	if m, err = s.digits(2, "month"); err != nil {
		return
	}
	if s.accept('-') {
		if _, err = s.digits(2, "day"); err != nil {
			return
		}
	}
	if m < 1 || m > 12 {
		err = syntaxErrorf(input, "month %02d out of range", m)
	} else if !s.eof() {
		err = syntaxErrorf(input, "unexpected text after year-month")
	}
	return
}

// ParseMonthDay parses MM-DD, with an optional RFC 3339 "--" prefix.
func ParseMonthDay(input string) (m, d int, err error) {
	s := &scanner{input: input}
	if s.accept('-') {
		if err = s.expect('-', "month-day"); err != nil {
			return
		}
	}
	if m, err = s.digits(2, "month"); err != nil {
		return
	}
	if err = s.expect('-', "month-day"); err != nil {
		return
	}
	if d, err = s.digits(2, "day"); err != nil {
		return
	}
	if m < 1 || m > 12 {
		err = syntaxErrorf(input, "month %02d out of range", m)
	} else if d < 1 || d > 31 {
		err = syntaxErrorf(input, "day %02d out of range", d)
	} else if !s.eof() {
		err = syntaxErrorf(input, "unexpected text after month-day")
	}
	return
}

// ParseOffsetSeconds parses a ±HH:MM[:SS] offset, or "UTC"-style "Z".
func ParseOffsetSeconds(input string) (int, error) {
	s := &scanner{input: input}
	if s.accept('Z') || s.accept('z') {
		if !s.eof() {
			return 0, syntaxErrorf(input, "unexpected text after offset")
		}
		return 0, nil
	}
	sec, err := s.offset()
	if err == nil && !s.eof() {
		err = syntaxErrorf(input, "unexpected text after offset")
	}
	return sec, err
}

func (s *scanner) date() (y, m, d int, err error) {
	switch s.peek() {
	case '+', '-':
		neg := s.peek() == '-'
		s.pos++
		if y, err = s.digits(6, "extended year"); err != nil {
			return
		}
		if neg {
			y = -y
		}
	default:
		if y, err = s.digits(4, "year"); err != nil {
			return
		}
	}
	if err = s.expect('-', "date"); err != nil {
		return
	}
	if m, err = s.digits(2, "month"); err != nil {
		return
	}
	if err = s.expect('-', "date"); err != nil {
		return
	}
	if d, err = s.digits(2, "day"); err != nil {
		return
	}
	if m < 1 || m > 12 {
		err = syntaxErrorf(s.input, "month %02d out of range", m)
	} else if d < 1 || d > 31 {
		err = syntaxErrorf(s.input, "day %02d out of range", d)
	}
	return
}

func (s *scanner) time() (hour, min, sec, nsec int, err error) {
	if hour, err = s.digits(2, "hour"); err != nil {
		return
	}
	if err = s.expect(':', "time"); err != nil {
		return
	}
	if min, err = s.digits(2, "minute"); err != nil {
		return
	}
	if err = s.expect(':', "time"); err != nil {
		return
	}
	if sec, err = s.digits(2, "second"); err != nil {
		return
	}
	if s.accept('.') || s.accept(',') {
		start := s.pos
		for !s.eof() && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
			s.pos++
		}
		frac := s.input[start:s.pos]
		if len(frac) == 0 || len(frac) > 9 {
			err = syntaxErrorf(s.input, "fractional seconds must have 1 to 9 digits")
			return
		}
		n, _ := strconv.Atoi(frac)
		for i := len(frac); i < 9; i++ {
			n *= 10
		}
		nsec = n
	}
	if hour > 23 || min > 59 || sec > 59 {
		err = syntaxErrorf(s.input, "time %02d:%02d:%02d out of range", hour, min, sec)
	}
	return
}

func (s *scanner) offset() (int, error) {
	sign := 1
	switch {
	case s.accept('+'):
	case s.accept('-'):
		sign = -1
	default:
		return 0, syntaxErrorf(s.input, "expected offset sign")
	}
	h, err := s.digits(2, "offset hours")
	if err != nil {
		return 0, err
	}
	if err := s.expect(':', "offset"); err != nil {
		return 0, err
	}
	m, err := s.digits(2, "offset minutes")
	if err != nil {
		return 0, err
	}
	sec := 0
	if s.accept(':') {
		if sec, err = s.digits(2, "offset seconds"); err != nil {
			return 0, err
		}
	}
	if h > 23 || m > 59 || sec > 59 {
		return 0, syntaxErrorf(s.input, "offset out of range")
	}
	return sign * (h*3600 + m*60 + sec), nil
}

// ParseDuration parses an ISO-8601 duration: an optional leading sign,
// P, date components in Y/M/W/D order, then optionally T and time
// components in H/M/S order, with a fraction of up to nine digits
// permitted on the seconds field only. At least one component must be
// present. Lowercase designators are accepted; the canonical form is
// uppercase.
func ParseDuration(input string) (Duration, error) {
	d := Duration{Sign: 1}
	s := &scanner{input: input}

	switch {
	case s.accept('-'):
		d.Sign = -1
	case s.accept('+'):
	}
	if !s.accept('P') && !s.accept('p') {
		return d, syntaxErrorf(input, "expected duration designator P")
	}

	parsed := 0
	for _, f := range []struct {
		dst        *int64
		upper, low byte
	}{
		{&d.Years, 'Y', 'y'},
		{&d.Months, 'M', 'm'},
		{&d.Weeks, 'W', 'w'},
		{&d.Days, 'D', 'd'},
	} {
		n, _, ok, err := s.durationComponent(f.upper, f.low, false)
		if err != nil {
			return d, err
		}
		if ok {
			*f.dst = n
			parsed++
		}
	}

	if s.accept('T') || s.accept('t') {
		timeParsed := 0
		for _, f := range []struct {
			dst        *int64
			upper, low byte
			fraction   bool
		}{
			{&d.Hours, 'H', 'h', false},
			{&d.Minutes, 'M', 'm', false},
			{&d.Seconds, 'S', 's', true},
		} {
			n, frac, ok, err := s.durationComponent(f.upper, f.low, f.fraction)
			if err != nil {
				return d, err
			}
			if ok {
				*f.dst = n
				// The fraction is nonzero only on the seconds component;
				// distribute it into the three sub-second fields.
				d.Milliseconds = frac / 1e6
				d.Microseconds = frac % 1e6 / 1e3
				d.Nanoseconds = frac % 1e3
				timeParsed++
			}
		}
		if timeParsed == 0 {
			return d, syntaxErrorf(input, "T must be followed by a time component")
		}
		parsed += timeParsed
	}

	if parsed == 0 {
		return d, syntaxErrorf(input, "duration has no components")
	}
	if !s.eof() {
		return d, syntaxErrorf(input, "unexpected text after duration")
	}
	return d, nil
}

// durationComponent tries to consume "<digits><designator>", with an
// optional fraction before the designator when allowFraction is set.
// If the digits are followed by some other designator the scanner is
// rewound so a later component can claim them.
func (s *scanner) durationComponent(upper, lower byte, allowFraction bool) (v, frac int64, ok bool, err error) {
	start := s.pos
	for !s.eof() && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, 0, false, nil
	}
	digits := s.input[start:s.pos]

	if allowFraction && (s.accept('.') || s.accept(',')) {
		fs := s.pos
		for !s.eof() && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
			s.pos++
		}
		fd := s.input[fs:s.pos]
		if len(fd) == 0 || len(fd) > 9 {
			return 0, 0, false, syntaxErrorf(s.input, "seconds fraction must have 1 to 9 digits")
		}
		frac, _ = strconv.ParseInt(fd, 10, 64)
		for i := len(fd); i < 9; i++ {
			frac *= 10
		}
	}

	if c := s.peek(); c != upper && c != lower {
		s.pos = start
		return 0, 0, false, nil
	}
	s.pos++
	v, perr := strconv.ParseInt(digits, 10, 64)
	if perr != nil {
		return 0, 0, false, syntaxErrorf(s.input, "duration component %s%c overflows", digits, upper)
	}
	return v, frac, true, nil
}
