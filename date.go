// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shdate implements the solar Hijri calendar (the civil calendar of
// Iran) on top of package time.
//
// The package is organized in layers:
//
//   - Pure calendar arithmetic: leap years ([IsLeap], [LeapCount]),
//     conversion between the Gregorian and the solar calendar
//     ([GregorianToSolar], [SolarToGregorian]), days of the year and the week
//     engine ([DayOfWeek], [WeekOfYear], [WeekOfDay], ...). These functions
//     never fail. Out-of-range input is carried into adjacent months and
//     years.
//   - The [Date] value, a solar calendar date without a clock.
//   - A [Calendar], which binds a time zone, a language for names and a first
//     day of the week, and the [Time] value which pairs a [time.Time] with a
//     Calendar. Time is immutable, its solar fields are computed when read.
//   - A formatter driven by a small token language ([Time.Fields]) and a
//     parser for free-form date strings ([Tokenize], [Parser]).
//
// The leap rule approximates the astronomical calendar with a mean year of
// 365.2422 days, evaluated in float64. It agrees with the 33-year arithmetic
// rule for the solar years 1277 to 1468.
//
// Solar months are counted from zero, Gregorian months use [time.Month].
// Weekdays are counted from Saturday.
package shdate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// A Date is a day of the solar Hijri calendar. The zero value is not a valid
// date; use [Of] or one of the conversion functions to create a Date.
//
// Dates created by this package are always normalized, so they can be
// compared with ==.
type Date struct {
	Year  int
	Month Month
	Day   int
}

// Of returns the Date corresponding to the given solar date.
//
// The arguments may be outside their usual ranges and will be normalized, just
// as for [time.Date]. For example, Esfand 30 of a common year converts to
// Farvardin 1 of the following year.
func Of(year int, month Month, day int) Date {
	return DateCorrection(year, month, day)
}

// FromGregorian returns the solar Date of a Gregorian date.
func FromGregorian(year int, month time.Month, day int) Date {
	return GregorianToSolar(year, month, day)
}

// FromTime returns the solar Date of t in t's location.
func FromTime(t time.Time) Date {
	return GregorianToSolar(t.Date())
}

// Today returns the current solar date in the given location.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

// Gregorian returns the Gregorian year, month and day of d.
func (d Date) Gregorian() (year int, month time.Month, day int) {
	return SolarToGregorian(d.Year, d.Month, d.Day)
}

// AddDate returns the date corresponding to adding the given number of years,
// months and days to d. Like [Of], it normalizes its result, so adding one
// month to Shahrivar 31 yields Mehr 31, which is Aban 1.
func (d Date) AddDate(years, months, days int) Date {
	return Of(d.Year+years, d.Month+Month(months), d.Day+days)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() Weekday {
	return Weekday(DayOfWeek(d.Year, d.Month, d.Day, Saturday))
}

// YearDay returns the zero-based day of the year of d. A d that is not
// normalized is normalized first.
func (d Date) YearDay() int {
	_, month, day := normDate(d.Year, d.Month, d.Day)
	return DayOfYear(month, day)
}

// ISOWeek returns the week-numbering year and week of d, for weeks starting on
// first. Farvardin 1 to 3 may belong to the last week of the preceding year
// and the last days of Esfand to week 1 of the following year.
func (d Date) ISOWeek(first Weekday) (year, week int) {
	return WeekOfYear(d.Year, d.Month, d.Day, first)
}

// IsValid reports whether d lies within the supported range, see [CheckDate].
func (d Date) IsValid() bool {
	return CheckDate(d.Year, d.Month, d.Day)
}

// Compare returns -1 if d is before e, +1 if it is after e and 0 otherwise.
func (d Date) Compare(e Date) int {
	switch {
	case d.Year != e.Year:
		return cmp(d.Year, e.Year)
	case d.Month != e.Month:
		return cmp(int(d.Month), int(e.Month))
	}
	return cmp(d.Day, e.Day)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sub returns the number of days from e to d.
func (d Date) Sub(e Date) int {
	return d.days() - e.days()
}

// days returns the number of days since Farvardin 1 of year 1.
func (d Date) days() int {
	year, doy := yearDay(d.Year, d.Month, d.Day)
	return daysBeforeYear(year) + doy
}

func daysBeforeYear(year int) int {
	return (year-1)*365 + LeapCount(year) - LeapCount(1)
}

// fromDays is the inverse of Date.days.
func fromDays(n int) Date {
	year := 1 + int(math.Floor(float64(n)/(365+meanYearFraction)))
	return DateOfDayOfYear(year, n-daysBeforeYear(year))
}

// Time returns the given moment on d in the given location.
func (d Date) Time(hour, min, sec, nsec int, loc *time.Location) time.Time {
	year, month, day := d.Gregorian()
	return time.Date(year, month, day, hour, min, sec, nsec, loc)
}

// GoString implements fmt.GoStringer and formats d to be printed in Go source code.
func (d Date) GoString() string {
	if Farvardin <= d.Month && d.Month <= Esfand {
		return fmt.Sprintf("shdate.Of(%d, shdate.%v, %d)", d.Year, d.Month, d.Day)
	}
	return fmt.Sprintf("shdate.Of(%d, %d, %d)", d.Year, int(d.Month), d.Day)
}

// String returns the date formatted as YYYY-MM-DD, with months counted
// from 1.
func (d Date) String() string {
	var buf [16]byte
	return string(d.appendISO(buf[:0]))
}

func (d Date) appendISO(b []byte) []byte {
	b = appendYear(b, d.Year)
	b = append(b, '-')
	b = appendInt(b, int(d.Month)+1, 2)
	b = append(b, '-')
	return appendInt(b, d.Day, 2)
}

// appendYear appends a year with at least four digits and a sign for
// negative years.
func appendYear(b []byte, y int) []byte {
	if y < 0 {
		b = append(b, '-')
		y = -y
	}
	return appendInt(b, y, 4)
}

// appendInt appends v, zero-padded to width digits.
func appendInt(b []byte, v, width int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	for n, w := 1, 10; n < width; n, w = n+1, w*10 {
		if v < w {
			b = append(b, '0')
		}
	}
	return strconv.AppendInt(b, int64(v), 10)
}

// maxDays is the day count of the last day of MaxYear.
var maxDays = daysBeforeYear(MaxYear+1) - 1

var errYearRange = fmt.Errorf("year outside of range [%d,%d]", MinYear, MaxYear)

// MarshalBinary implements the encoding.BinaryMarshaler interface. The date
// is represented as a [binary.Varint] of the number of days since Farvardin 1
// of year 1. Dates outside of the years [MinYear, MaxYear] can not be
// marshaled.
func (d Date) MarshalBinary() ([]byte, error) {
	if n := Of(d.Year, d.Month, d.Day); n.Year < MinYear || n.Year > MaxYear {
		return nil, fmt.Errorf("Date.MarshalBinary: %w", errYearRange)
	}
	b := make([]byte, binary.MaxVarintLen64)
	return b[:binary.PutVarint(b, int64(d.days()))], nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Date) UnmarshalBinary(b []byte) error {
	v, i := binary.Varint(b)
	switch {
	case i == 0:
		return errors.New("encoded date truncated")
	case i < 0 || int64(int(v)) != v:
		return errors.New("encoded date overflows int")
	case i != len(b):
		return errors.New("extra data after date")
	case v < 0 || v > int64(maxDays):
		return fmt.Errorf("encoded date: %w", errYearRange)
	}
	*d = fromDays(int(v))
	return nil
}

// MarshalText implements the encoding.TextMarshaler interface. The date is
// formatted as by [Date.String]. Like [ParseDate], it only accepts the years
// [MinYear, MaxYear].
func (d Date) MarshalText() ([]byte, error) {
	if d.Year < MinYear || d.Year > MaxYear {
		return nil, fmt.Errorf("Date.MarshalText: %w", errYearRange)
	}
	return d.appendISO(nil), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The date
// must be in the format of [Date.String].
func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err == nil {
		*d = v
	}
	return err
}

// ParseDate parses a date in the format produced by [Date.String]: a year of
// at least one digit and a two-digit month and day. Unlike [Of], ParseDate
// validates the ranges of year, month and day.
func ParseDate(s string) (Date, error) {
	sc := newScanner(s)
	neg := sc.skipByte('-')
	year, n := sc.digits(0)
	if n == 0 || !sc.skipByte('-') {
		return Date{}, &ParseError{Value: s, Elem: sc.rest(), Message: "malformed year"}
	}
	if neg {
		year = -year
	}
	month, n := sc.digits(2)
	if n != 2 || !sc.skipByte('-') {
		return Date{}, &ParseError{Value: s, Elem: sc.rest(), Message: "malformed month"}
	}
	day, n := sc.digits(2)
	if n != 2 {
		return Date{}, &ParseError{Value: s, Elem: sc.rest(), Message: "malformed day"}
	}
	if !sc.done() {
		return Date{}, &ParseError{Value: s, Elem: sc.rest(), Message: "extra text"}
	}
	if year < MinYear || year > MaxYear {
		return Date{}, &ParseError{Value: s, Message: "year out of range"}
	}
	if month < 1 || month > 12 {
		return Date{}, &ParseError{Value: s, Message: "month out of range"}
	}
	if day < 1 || day > DaysInMonth(year, Month(month-1)) {
		return Date{}, &ParseError{Value: s, Message: "day out of range"}
	}
	return Date{Year: year, Month: Month(month - 1), Day: day}, nil
}
