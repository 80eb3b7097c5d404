// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"time"

	"gonih.org/shdate/words"
)

// A Time is an instant read through a [Calendar]. Its solar fields are
// computed from the wrapped [time.Time] on every read, in the location of
// that time.Time. Methods that change a field return a new Time.
//
// The zero Time has no Calendar and uses Saturday as the first day of the week
// and English names.
type Time struct {
	t   time.Time
	cal *Calendar
}

// Time returns the underlying time.Time.
func (t Time) Time() time.Time { return t.t }

// Calendar returns the calendar of t.
func (t Time) Calendar() *Calendar { return t.cal }

func (t Time) first() Weekday {
	if t.cal == nil {
		return Saturday
	}
	return t.cal.first
}

func (t Time) lang() words.Language {
	if t.cal == nil {
		return words.English
	}
	return t.cal.lang
}

// Date returns the solar date of t.
func (t Time) Date() Date { return FromTime(t.t) }

// Year returns the solar year of t.
func (t Time) Year() int { return t.Date().Year }

// Month returns the solar month of t.
func (t Time) Month() Month { return t.Date().Month }

// Day returns the day of the solar month of t.
func (t Time) Day() int { return t.Date().Day }

// Clock returns the hour, minute and second of t.
func (t Time) Clock() (hour, min, sec int) { return t.t.Clock() }

// Hour returns the hour of t, in the range [0, 23].
func (t Time) Hour() int { return t.t.Hour() }

// Minute returns the minute of t, in the range [0, 59].
func (t Time) Minute() int { return t.t.Minute() }

// Second returns the second of t, in the range [0, 59].
func (t Time) Second() int { return t.t.Second() }

// Millisecond returns the millisecond of t, in the range [0, 999].
func (t Time) Millisecond() int { return t.t.Nanosecond() / int(time.Millisecond) }

// UnixMilli returns t as a Unix time in milliseconds.
func (t Time) UnixMilli() int64 { return t.t.UnixMilli() }

// Weekday returns the day of the week of t, relative to the calendar's first
// day of the week.
func (t Time) Weekday() int {
	d := t.Date()
	return DayOfWeek(d.Year, d.Month, d.Day, t.first())
}

// YearDay returns the zero-based day of the solar year of t.
func (t Time) YearDay() int { return t.Date().YearDay() }

// ISOWeek returns the week-numbering year and week of t.
func (t Time) ISOWeek() (year, week int) { return t.Date().ISOWeek(t.first()) }

// WeeksInYear returns the number of weeks in the solar year of t.
func (t Time) WeeksInYear() int { return WeeksInYear(t.Year(), t.first()) }

// DaysInMonth returns the number of days in the solar month of t.
func (t Time) DaysInMonth() int {
	d := t.Date()
	return DaysInMonth(d.Year, d.Month)
}

// DaysInYear returns the number of days in the solar year of t.
func (t Time) DaysInYear() int { return DaysInYear(t.Year()) }

// IsLeap reports whether the solar year of t is a leap year.
func (t Time) IsLeap() bool { return IsLeap(t.Year()) }

// NthWeekdayOfMonth returns the days of t's month falling on weekday, which
// is relative to the calendar's first day of the week.
func (t Time) NthWeekdayOfMonth(weekday int) []int {
	d := t.Date()
	return NthWeekdayOfMonth(d.Year, d.Month, weekday, t.first())
}

// WeekdayInMonth returns the ordinal of t's day among the days of its month
// falling on the same weekday.
func (t Time) WeekdayInMonth() int {
	d := t.Date()
	return WeekdayInMonth(d.Year, d.Month, d.Day, t.first())
}

// UTC returns t with the location set to UTC, so that its fields are read in
// UTC.
func (t Time) UTC() Time { return Time{t: t.t.UTC(), cal: t.cal} }

// In returns t with its fields read in loc.
func (t Time) In(loc *time.Location) Time { return Time{t: t.t.In(loc), cal: t.cal} }

// Local returns t with its fields read in the calendar's time zone.
func (t Time) Local() Time {
	if t.cal == nil {
		return t
	}
	return t.In(t.cal.loc)
}

// at returns the instant of the solar date d at the given clock, in t's
// location.
func (t Time) at(d Date, hour, min, sec, nsec int) Time {
	return Time{t: d.Time(hour, min, sec, nsec, t.t.Location()), cal: t.cal}
}

// WithDate returns t moved to the given solar date, keeping the clock. The
// date is normalized as by [Of].
func (t Time) WithDate(year int, month Month, day int) Time {
	h, m, s := t.t.Clock()
	return t.at(Of(year, month, day), h, m, s, t.t.Nanosecond())
}

// WithYearDay returns t moved to the zero-based day of year doy of year,
// keeping the clock.
func (t Time) WithYearDay(year, doy int) Time {
	h, m, s := t.t.Clock()
	return t.at(DateOfDayOfYear(year, doy), h, m, s, t.t.Nanosecond())
}

// WithWeek returns t moved to the given day (relative to the calendar's
// first day of the week) of a week of the week-numbering year, keeping the
// clock.
func (t Time) WithWeek(year, week, day int) Time {
	h, m, s := t.t.Clock()
	return t.at(WeekOfDay(year, week, day, t.first()), h, m, s, t.t.Nanosecond())
}

// WithClock returns t with the given clock on the same date. Overflowing
// fields carry into the date, see [TimeCorrection].
func (t Time) WithClock(hour, min, sec, msec int) Time {
	h, m, s, ms, days := TimeCorrection(hour, min, sec, msec)
	d := t.Date().AddDate(0, 0, days)
	return t.at(d, h, m, s, ms*int(time.Millisecond))
}

// AddDate returns t with the given number of solar years, months and days
// added, keeping the clock.
func (t Time) AddDate(years, months, days int) Time {
	h, m, s := t.t.Clock()
	return t.at(t.Date().AddDate(years, months, days), h, m, s, t.t.Nanosecond())
}

// Add returns t+d.
func (t Time) Add(d time.Duration) Time { return Time{t: t.t.Add(d), cal: t.cal} }

// Sub returns the duration t-u.
func (t Time) Sub(u Time) time.Duration { return t.t.Sub(u.t) }

// Equal reports whether t and u are the same instant.
func (t Time) Equal(u Time) bool { return t.t.Equal(u.t) }

// Before reports whether t is before u.
func (t Time) Before(u Time) bool { return t.t.Before(u.t) }

// After reports whether t is after u.
func (t Time) After(u Time) bool { return t.t.After(u.t) }

// IsZero reports whether t wraps the zero time.Time.
func (t Time) IsZero() bool { return t.t.IsZero() }

// String returns t formatted like "1403-01-01 12:30:00 +0330 +0330".
func (t Time) String() string {
	b := make([]byte, 0, 40)
	b = t.Date().appendISO(b)
	b = append(b, ' ')
	return string(t.t.AppendFormat(b, "15:04:05 -0700 MST"))
}
