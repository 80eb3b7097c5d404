// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

// The supported range of solar years. The arithmetic works outside of it, but
// the leap rule has only been calibrated within.
const (
	MinYear = 1
	MaxYear = 3500000
)

// CheckDate reports whether the given solar date is valid and within
// [MinYear, MaxYear].
func CheckDate(year int, month Month, day int) bool {
	return !(year < MinYear ||
		year > MaxYear ||
		month < Farvardin ||
		month > Esfand ||
		day < 1 ||
		day > DaysInMonth(year, month))
}

// CheckTime reports whether the given clock time is valid on a 24-hour clock.
func CheckTime(hour, min, sec, msec int) bool {
	return !(hour < 0 ||
		hour > 23 ||
		min < 0 ||
		min > 59 ||
		sec < 0 ||
		sec > 59 ||
		msec < 0 ||
		msec > 999)
}

// CheckTime12 reports whether the given clock time is valid on a 12-hour
// clock, that is with hours from 1 to 12.
func CheckTime12(hour, min, sec, msec int) bool {
	return hour >= 1 && hour <= 12 && CheckTime(hour, min, sec, msec)
}

// CheckWeek reports whether the given week reference is valid: year within
// [MinYear, MaxYear], week within the weeks of the year and day from 0 to 6.
func CheckWeek(year, week, day int, first Weekday) bool {
	return !(year < MinYear ||
		year > MaxYear ||
		week < 1 ||
		week > WeeksInYear(year, first) ||
		day < 0 ||
		day > 6)
}
