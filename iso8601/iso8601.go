// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iso8601 implements the lexical grammar of ISO-8601 dates,
// times, UTC offsets, and durations, in both directions.
//
// The package converts between text and uninterpreted field records; it
// performs only lexical validation (digit counts, designator order, field
// ranges that do not depend on a calendar). Calendar- and zone-aware
// interpretation belongs to package tempora, which depends on this one
// and never the reverse.
package iso8601

import "fmt"

// A SyntaxError describes text that does not match the grammar.
type SyntaxError struct {
	Input string // the text being parsed
	Msg   string // description of the problem
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("iso8601: %s in %q", e.Msg, e.Input)
}

func syntaxErrorf(input, format string, args ...interface{}) error {
	return &SyntaxError{Input: input, Msg: fmt.Sprintf(format, args...)}
}

// Duration is the uninterpreted field record of an ISO-8601 duration.
// All fields are non-negative; Sign (-1 or +1) applies to the whole
// record. The fractional-seconds part of the text is split into
// millisecond, microsecond, and nanosecond fields.
type Duration struct {
	Sign                                    int
	Years, Months, Weeks, Days              int64
	Hours, Minutes, Seconds                 int64
	Milliseconds, Microseconds, Nanoseconds int64
}

// DateTime is the uninterpreted field record of an ISO-8601 date or
// date-time string, including any offset, bracketed time zone
// identifier, and u-ca calendar annotation.
type DateTime struct {
	Year, Month, Day int

	HasTime              bool
	Hour, Minute, Second int
	Nanosecond           int // nanosecond-of-second, [0, 1e9)

	HasOffset     bool
	OffsetSeconds int
	Zulu          bool // offset was written "Z"

	Zone     string // bracketed zone identifier, or ""
	Calendar string // [u-ca=...] annotation, or ""
}
