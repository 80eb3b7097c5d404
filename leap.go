// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import "math"

// The solar leap rule distributes the fractional part of a mean year of
// 365.2422 days. Both the offset and the calibration constants are tied to
// the epoch anchor of the converter and must not be changed independently.
const (
	meanYearFraction = 0.2422

	// solarLeapOffset shifts solar years so that the fraction accumulates
	// from the right phase.
	solarLeapOffset = 1127

	// solarLeapBase and gregorianLeapBase calibrate the cumulative leap
	// counts to the epoch anchor.
	solarLeapBase     = 274
	gregorianLeapBase = 150
)

// IsGregorianLeap reports whether year is a leap year in the proleptic
// Gregorian calendar.
func IsGregorianLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// GregorianLeapCount returns the number of Gregorian leap days before the
// start of year, offset by the calibration constant of the converter. Only
// differences between two counts are meaningful.
func GregorianLeapCount(year int) int {
	y := year - 1
	return floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - gregorianLeapBase
}

// IsLeap reports whether year is a leap year in the solar Hijri calendar. A
// leap year has 366 days, the extra day being the 30th of Esfand.
func IsLeap(year int) bool {
	y := year + solarLeapOffset
	return leapFloor(y+1)-leapFloor(y) == 1
}

// LeapCount returns the number of solar leap days before the start of year,
// offset by the calibration constant of the converter. For every year,
// LeapCount(year+1)-LeapCount(year) is 1 exactly if IsLeap(year).
//
// The count is floor(x)+1 rather than ceil(x). The two only differ where
// x = (year+1127)*0.2422 is integral in float64 (years 3873 mod 5000), and
// there ceil would break the invariant above.
func LeapCount(year int) int {
	return leapFloor(year+solarLeapOffset) + 1 - solarLeapBase
}

// leapFloor returns floor(y*0.2422) computed in float64. The product must
// not be fused with any other operation, the rule is calibrated against this
// exact rounding.
func leapFloor(y int) int {
	f := float64(y) * meanYearFraction
	return int(math.Floor(f))
}

// floorDiv returns a/b rounded towards negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// floorMod returns a mod b in the range [0, b). b must be positive.
func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
