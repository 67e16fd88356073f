// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"errors"
	"fmt"
)

// The error taxonomy is closed: every failure an operation can report
// wraps exactly one of these sentinel values, so callers dispatch with
// errors.Is. No error is fatal and nothing is retried; values are
// immutable so there is never partial state to roll back.
var (
	// ErrInvalidArgument reports a malformed request shape: an unknown
	// field, unit, mode, or calendar token, or a missing required option.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidSign reports a Duration whose non-zero fields do not all
	// share one sign.
	ErrInvalidSign = errors.New("mixed duration field signs")

	// ErrRange reports a value outside its representable domain, a
	// reject-overflow violation, or a bad rounding increment.
	ErrRange = errors.New("value out of range")

	// ErrAmbiguousTime reports a wall-clock time that cannot be resolved
	// to an instant under the reject disambiguation policy.
	ErrAmbiguousTime = errors.New("ambiguous wall-clock time")

	// ErrUnsupportedCalendar reports an operation or identifier that is
	// incompatible with the target calendar.
	ErrUnsupportedCalendar = errors.New("unsupported calendar")
)

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

func rangef(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrRange)...)
}
