// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"strconv"
	"time"

	"gonih.org/shdate/words"
)

// The epoch anchor: solar 0001-01-01 is Gregorian 0622-03-22. The constants
// are 621*365+80 days, seen from either calendar.
const (
	gregorianEpoch = 226745
	solarEpoch     = 226746
)

// A Month specifies a month of the solar year. Unlike [time.Month], months
// are counted from zero (Farvardin = 0, ...).
type Month int

const (
	Farvardin Month = iota
	Ordibehesht
	Khordad
	Tir
	Mordad
	Shahrivar
	Mehr
	Aban
	Azar
	Dey
	Bahman
	Esfand
)

// String returns the English name of the month ("Farvardin", "Ordibehesht", ...).
func (m Month) String() string {
	if Farvardin <= m && m <= Esfand {
		return words.Lookup(words.MonthFull, int(m), words.English)
	}
	return "%!Month(" + strconv.Itoa(int(m)) + ")"
}

// daysBefore[m] counts the number of days in a solar year before month m
// begins. The first six months have 31 days, the next five 30 and Esfand 29
// or 30.
var daysBefore = [...]int{
	0,
	31,
	31 * 2,
	31 * 3,
	31 * 4,
	31 * 5,
	31 * 6,
	31*6 + 30,
	31*6 + 30*2,
	31*6 + 30*3,
	31*6 + 30*4,
	31*6 + 30*5,
	31*6 + 30*5 + 29,
}

// gregorianDaysBefore is daysBefore for a non-leap Gregorian year, indexed
// by the zero-based month.
var gregorianDaysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// DaysInMonth returns the number of days in the given solar month. Months
// outside [Farvardin, Esfand] carry into adjacent years.
func DaysInMonth(year int, month Month) int {
	year, m := norm(year, int(month), 12)
	if Month(m) == Esfand && IsLeap(year) {
		return 30
	}
	return daysBefore[m+1] - daysBefore[m]
}

// DaysInYear returns 366 for solar leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

func gregorianDaysIn(year, m int) int {
	if m == 1 && IsGregorianLeap(year) {
		return 29
	}
	return gregorianDaysBefore[m+1] - gregorianDaysBefore[m]
}

func gregorianDaysInYear(year int) int {
	if IsGregorianLeap(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the zero-based day of the solar year of the given month
// and day. It does not depend on the year, as only the last month varies in
// length. A day past the end of the month counts into the following months.
//
// The month must be in [Farvardin, Esfand], as carrying a month into other
// years depends on their lengths. DayOfYear panics otherwise; normalize such
// dates with [DateCorrection] first.
func DayOfYear(month Month, day int) int {
	if month < Farvardin || month > Esfand {
		panic("shdate: DayOfYear of month " + strconv.Itoa(int(month)) + " out of range")
	}
	return daysBefore[month] + day - 1
}

// yearDay is DayOfYear for any month. Months outside [Farvardin, Esfand]
// are carried into year, which is returned together with the day of year.
func yearDay(year int, month Month, day int) (int, int) {
	year, m := norm(year, int(month), 12)
	return year, daysBefore[m] + day - 1
}

// normDate returns the date unchanged if month and day are in range and
// carries them like DateCorrection otherwise.
func normDate(year int, month Month, day int) (int, Month, int) {
	if Farvardin <= month && month <= Esfand && 1 <= day && day <= DaysInMonth(year, month) {
		return year, month, day
	}
	d := DateCorrection(year, month, day)
	return d.Year, d.Month, d.Day
}

// daysInYears returns the number of days in the n solar years starting with
// year.
func daysInYears(year, n int) int {
	return n*365 + LeapCount(year+n) - LeapCount(year)
}

// DateOfDayOfYear returns the solar date of the zero-based day of year doy.
// doy may lie outside of the year, in which case the date is found in a
// preceding or following year.
func DateOfDayOfYear(year, doy int) Date {
	doy++
	// Skip whole years first, so that far away days take a few steps.
	for doy < -366 || doy > 2*366 {
		if doy < 1 {
			n := -(doy+1)/365 + 1
			doy += daysInYears(year-n, n)
			year -= n
		} else {
			n := (doy - 1) / 366
			doy -= daysInYears(year, n)
			year += n
		}
	}
	for doy < 1 {
		year--
		doy += DaysInYear(year)
	}
	for doy > DaysInYear(year) {
		doy -= DaysInYear(year)
		year++
	}
	var month Month
	var day int
	if doy <= daysBefore[Shahrivar+1] {
		month = Month((doy - 1) / 31)
		if day = doy % 31; day == 0 {
			day = 31
		}
	} else {
		doy -= daysBefore[Shahrivar+1]
		month = Month((doy-1)/30) + Mehr
		if day = doy % 30; day == 0 {
			day = 30
		}
	}
	return Date{Year: year, Month: month, Day: day}
}

// GregorianDayOfYear returns the zero-based day of the Gregorian year of the
// given date, counting February 29th in leap years. Like DayOfYear, it
// panics if month is not in [January, December].
func GregorianDayOfYear(year int, month time.Month, day int) int {
	if month < time.January || month > time.December {
		panic("shdate: GregorianDayOfYear of month " + strconv.Itoa(int(month)) + " out of range")
	}
	m := int(month) - 1
	doy := gregorianDaysBefore[m] + day - 1
	if m > 1 && IsGregorianLeap(year) {
		doy++
	}
	return doy
}

// GregorianDateOfDayOfYear is the inverse of GregorianDayOfYear. Like
// DateOfDayOfYear, it accepts any doy and moves across years as needed.
func GregorianDateOfDayOfYear(year, doy int) (int, time.Month, int) {
	return gregorianDate(year, doy+1)
}

// daysPer400Years is the length of a Gregorian cycle.
const daysPer400Years = 365*400 + 97

// gregorianDate returns the date of the one-based day of year doy.
func gregorianDate(year, doy int) (int, time.Month, int) {
	if doy < 1 || doy > daysPer400Years {
		n := floorDiv(doy-1, daysPer400Years)
		year += 400 * n
		doy -= n * daysPer400Years
	}
	for doy < 1 {
		year--
		doy += gregorianDaysInYear(year)
	}
	for doy > gregorianDaysInYear(year) {
		doy -= gregorianDaysInYear(year)
		year++
	}
	m := 0
	for m < 11 && doy > gregorianDaysIn(year, m) {
		doy -= gregorianDaysIn(year, m)
		m++
	}
	return year, time.Month(m + 1), doy
}

// GregorianToSolar converts a Gregorian date to the solar calendar. The
// month may be outside its usual range and is carried into the year, like
// for [time.Date]. Overflowing days carry into the following months.
func GregorianToSolar(year int, month time.Month, day int) Date {
	m := int(month) - 1
	year, m = norm(year, m, 12)

	gdoy := (year-1)*365 + GregorianDayOfYear(year, time.Month(m+1), day) + 1 - gregorianEpoch
	sy := gdoy/365 + 1
	sdoy := gdoy%365 + GregorianLeapCount(year) - LeapCount(sy)
	return DateOfDayOfYear(sy, sdoy-1)
}

// SolarToGregorian converts a solar date to the Gregorian calendar. A month
// outside [Farvardin, Esfand] is carried into the year.
//
// The conversion terminates for every input, but is only exact while the
// day count fits into an int, for years within about ±2.5e16. Use [CheckDate]
// to restrict input to the supported years.
func SolarToGregorian(year int, month Month, day int) (int, time.Month, int) {
	year, doy := yearDay(year, month, day)
	sdoy := (year-1)*365 + doy + solarEpoch
	gy := sdoy/365 + 1
	gdoy := sdoy%365 + LeapCount(year) - GregorianLeapCount(gy)
	return gregorianDate(gy, gdoy)
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm(hi, lo, base int) (nhi, nlo int) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// DateCorrection normalizes a solar date with an out-of-range month or day.
// Whole years are carried out of the month first, then the day is carried
// through the day of year. For example, Esfand 31 of a common year becomes
// Farvardin 2 of the next year.
func DateCorrection(year int, month Month, day int) Date {
	year, m := norm(year, int(month), 12)
	return DateOfDayOfYear(year, DayOfYear(Month(m), day))
}

const msPerDay = 24 * 60 * 60 * 1000

// TimeCorrection normalizes a clock time with out-of-range fields. It
// returns the clock in range and the number of whole days the input
// overflowed (positive) or underflowed (negative).
func TimeCorrection(hour, min, sec, msec int) (h, m, s, ms, days int) {
	total := ((hour*60+min)*60+sec)*1000 + msec
	days, total = norm(0, total, msPerDay)
	ms = total % 1000
	s = total / 1000 % 60
	m = total / 60000 % 60
	h = total / 3600000
	return h, m, s, ms, days
}
