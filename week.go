// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"slices"
	"strconv"

	"gonih.org/shdate/words"
)

// A Weekday specifies a day of the week, counted from Saturday.
type Weekday int

const (
	Saturday Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
)

// String returns the English name of the day ("Saturday", "Sunday", ...).
func (d Weekday) String() string {
	if Saturday <= d && d <= Friday {
		return words.Lookup(words.DayFull, int(d), words.English)
	}
	return "%!Weekday(" + strconv.Itoa(int(d)) + ")"
}

// anchorWeekday aligns the running day count with Saturday = 0.
const anchorWeekday = 5

// DayOfWeek returns the day of the week of the given solar date as an index
// relative to first, that is 0 for the first day of the week and 6 for the
// last one. Months and days out of range carry into the date they denote.
func DayOfWeek(year int, month Month, day int, first Weekday) int {
	year, doy := yearDay(year, month, day)
	return floorMod(anchorWeekday+year+LeapCount(year)+doy-int(first), 7)
}

// WeekOfYear returns the week-numbering year and week of the given solar date
// with weeks starting on first. A week belongs to the year that contains at
// least four of its days, so the first days of Farvardin may belong to the
// last week of the preceding year, and the last days of Esfand to week 1 of
// the following year.
func WeekOfYear(year int, month Month, day int, first Weekday) (isoYear, isoWeek int) {
	year, month, day = normDate(year, month, day)
	doy := DayOfYear(month, day) + 1
	// Weekdays below are one-based.
	far1 := DayOfWeek(year, Farvardin, 1, first) + 1

	// The first partial week has less than four days in year.
	if doy <= 8-far1 && far1 > 4 {
		prev := year - 1
		if far1 == 5 || (far1 == 6 && IsLeap(prev)) {
			return prev, 53
		}
		return prev, 52
	}

	// The last partial week has less than four days in year.
	esf := DayOfWeek(year, Esfand, DaysInMonth(year, Esfand), first) + 1
	if doy > DaysInYear(year)-esf && esf < 4 {
		return year + 1, 1
	}

	isoWeek = (5 + doy + far1 - DayOfWeek(year, month, day, first)) / 7
	if far1 > 4 {
		isoWeek--
	}
	return year, isoWeek
}

// WeeksInYear returns the number of weeks, 52 or 53, in the week-numbering
// year year with weeks starting on first.
func WeeksInYear(year int, first Weekday) int {
	far1 := DayOfWeek(year, Farvardin, 1, first) + 1
	if far1 == 4 || (far1 == 3 && IsLeap(year)) {
		return 53
	}
	return 52
}

// WeekOfDay returns the date of the given day (0 to 6, relative to first) in
// the given week of the week-numbering year year. It is the inverse of
// WeekOfYear and DayOfWeek. Weeks and days out of range carry into adjacent
// weeks and years.
func WeekOfDay(year, week, day int, first Weekday) Date {
	// Farvardin 4 is always in week 1.
	doy := (week-1)*7 + day + 1 - DayOfWeek(year, Farvardin, 4, first) + 2
	return DateOfDayOfYear(year, doy)
}

// NthWeekdayOfMonth returns the days of the given month that fall on weekday
// (0 to 6, relative to first), in ascending order. The result has four or
// five elements. A month out of range is carried into the year.
func NthWeekdayOfMonth(year int, month Month, weekday int, first Weekday) []int {
	y, m := norm(year, int(month), 12)
	year, month = y, Month(m)
	firstDow := DayOfWeek(year, month, 1, first)
	nth := floorMod(7-firstDow+weekday, 7) + 1
	days := []int{nth, nth + 7, nth + 14, nth + 21}
	if nth+28 <= DaysInMonth(year, month) {
		days = append(days, nth+28)
	}
	return days
}

// WeekdayInMonth returns the ordinal (1 to 5) of the given date among the days
// of its month falling on the same weekday. For example, it returns 2 for the
// second Friday of a month.
func WeekdayInMonth(year int, month Month, day int, first Weekday) int {
	year, month, day = normDate(year, month, day)
	days := NthWeekdayOfMonth(year, month, DayOfWeek(year, month, day, first), first)
	return slices.Index(days, day) + 1
}

// WeekCorrection normalizes a week reference with an out-of-range week or
// day. It returns the week-numbering year, the week and the day of the week
// (relative to first) of the referenced date.
func WeekCorrection(year, week, day int, first Weekday) (isoYear, isoWeek, dow int) {
	d := WeekOfDay(year, week, day, first)
	isoYear, isoWeek = WeekOfYear(d.Year, d.Month, d.Day, first)
	return isoYear, isoWeek, DayOfWeek(d.Year, d.Month, d.Day, first)
}
