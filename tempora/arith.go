// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tempora

import (
	"math"
	"math/big"
)

// All nanosecond and day arithmetic runs either on checked int64 or on
// big.Int; nothing in this package is permitted to wrap silently.

func addInt64(x, y int64) (int64, bool) {
	sum := x + y
	if (sum > x) == (y > 0) || y == 0 {
		return sum, true
	}
	return 0, false
}

func mulInt64(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	p := x * y
	if p/y == x && !(x == -1 && y == math.MinInt64) && !(y == -1 && x == math.MinInt64) {
		return p, true
	}
	return 0, false
}

// floorDiv and floorMod round toward negative infinity, so that
// floorMod's result always lies in [0, y) for positive y.
func floorDiv(x, y int64) int64 {
	q := x / y
	if (x%y != 0) && ((x < 0) != (y < 0)) {
		q--
	}
	return q
}

func floorMod(x, y int64) int64 {
	return x - floorDiv(x, y)*y
}

var (
	bigNanosPerSecond = big.NewInt(nanosPerSecond)
	bigNanosPerDay    = big.NewInt(nanosPerDay)
)

// bigInt64 extracts an int64 from x, reporting false on overflow.
func bigInt64(x *big.Int) (int64, bool) {
	if !x.IsInt64() {
		return 0, false
	}
	return x.Int64(), true
}

// roundToMultiple rounds x to a multiple of step (step > 0) under the
// given mode. halfExpand resolves an exact half away from zero.
func roundToMultiple(x, step *big.Int, mode RoundingMode) *big.Int {
	q, r := new(big.Int).QuoRem(x, step, new(big.Int))
	if r.Sign() == 0 {
		return new(big.Int).Set(x)
	}
	bump := false
	switch mode {
	case RoundCeil:
		bump = x.Sign() > 0
	case RoundFloor:
		bump = x.Sign() < 0
	case RoundTrunc:
		// toward zero; never bump
	default: // RoundHalfExpand
		double := new(big.Int).Abs(r)
		double.Lsh(double, 1)
		bump = double.Cmp(step) >= 0
	}
	if bump {
		if x.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return q.Mul(q, step)
}

var bigOne = big.NewInt(1)
