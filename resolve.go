// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNotRecognized is returned by a strict [Parser] for input in which no
// field was recognized.
var ErrNotRecognized = errors.New("no date or time recognized")

// Result is the outcome of parsing a date string.
type Result struct {
	// Time is the resolved instant.
	Time Time
	// Recognized is false if no field was recognized and Time is the
	// reference instant.
	Recognized bool
	Fields     Fields
}

// A Parser resolves free-form date strings into instants of its Calendar,
// which must not be nil.
//
// By default a Parser is lenient: words it does not recognize are skipped
// and a string without any recognized field resolves to the reference
// instant. Years outside [MinYear, MaxYear], months outside 1 to 12, days
// outside 1 to 31 and timestamps outside the supported years are skipped
// like unrecognized words. A strict Parser reports all of these as errors,
// and checks the ranges of the other recognized fields.
type Parser struct {
	Calendar *Calendar
	Strict   bool
}

// Parse parses s with a lenient Parser, relative to the current instant.
func (c *Calendar) Parse(s string) (Result, error) {
	return Parser{Calendar: c}.Parse(s, time.Time{})
}

// Parse tokenizes s and resolves it relative to ref. If ref is the zero
// time, the calendar's clock is read.
func (p Parser) Parse(s string, ref time.Time) (Result, error) {
	c := p.Calendar
	if ref.IsZero() {
		ref = c.clock()
	}
	f := Tokenize(s)
	if p.Strict {
		if err := p.check(s, f, ref); err != nil {
			return Result{Fields: f}, err
		}
	} else {
		f = discardOutOfRange(f)
	}
	r := Result{
		Time:       p.Resolve(f, ref),
		Recognized: len(f.Tokens) > 0,
		Fields:     f,
	}
	if !r.Recognized {
		c.log.Logf("[DEBUG] nothing recognized in %q, falling back to %v", s, r.Time)
	} else if len(f.Unknown) > 0 {
		c.log.Logf("[DEBUG] skipped %q in %q", f.Unknown, s)
	}
	return r, nil
}

// dateLimits are the ranges of the date fields a lenient Parser resolves.
// Larger values would carry the date far outside of the supported years.
var dateLimits = []struct {
	kind     Kind
	min, max int64
}{
	{KindYear, MinYear, MaxYear},
	{KindMonth, 1, 12},
	{KindDay, 1, 31},
}

// validTimestamp reports whether the Unix time ms, in milliseconds, falls
// into the years [MinYear, MaxYear].
func validTimestamp(ms int64) bool {
	y := FromTime(time.UnixMilli(ms).UTC()).Year
	return MinYear <= y && y <= MaxYear
}

func tokenInRange(t Token) bool {
	if t.Kind == KindTimestamp {
		return validTimestamp(t.Value)
	}
	for _, l := range dateLimits {
		if t.Kind == l.kind {
			return l.min <= t.Value && t.Value <= l.max
		}
	}
	return true
}

// discardOutOfRange moves the tokens of f a lenient Parser does not resolve
// to the unknown words.
func discardOutOfRange(f Fields) Fields {
	out := Fields{Unknown: slices.Clone(f.Unknown)}
	for _, t := range f.Tokens {
		if tokenInRange(t) {
			out.Tokens = append(out.Tokens, t)
		} else if t.Text != "" && !slices.Contains(out.Unknown, t.Text) {
			out.Unknown = append(out.Unknown, t.Text)
		}
	}
	return out
}

// check validates f for a strict Parser.
func (p Parser) check(s string, f Fields, ref time.Time) error {
	if len(f.Tokens) == 0 {
		return fmt.Errorf("parse %q: %w", s, ErrNotRecognized)
	}
	if len(f.Unknown) > 0 {
		return &ParseError{Value: s, Elem: f.Unknown[0], Message: "unrecognized text"}
	}
	year := p.Calendar.Of(ref).Year()
	if t, ok := f.Get(KindYear); ok {
		year = int(t.Value)
	}
	ranges := []struct {
		kind     Kind
		min, max int64
		msg      string
	}{
		{KindYear, MinYear, MaxYear, "year out of range"},
		{KindMonth, 1, 12, "month out of range"},
		{KindHours, 0, 23, "hour out of range"},
		{KindMinutes, 0, 59, "minute out of range"},
		{KindSeconds, 0, 59, "second out of range"},
		{KindDayOfYear, 0, int64(DaysInYear(year)) - 1, "day-of-year out of range"},
		{KindWeekOfYear, 1, int64(WeeksInYear(year, p.Calendar.first)), "week out of range"},
		{KindDayOfWeek, 1, 7, "day of the week out of range"},
	}
	for _, r := range ranges {
		if t, ok := f.Get(r.kind); ok && (t.Value < r.min || t.Value > r.max) {
			return &ParseError{Value: s, Elem: t.Text, Message: r.msg}
		}
	}
	if t, ok := f.Get(KindTimestamp); ok && !validTimestamp(t.Value) {
		return &ParseError{Value: s, Elem: t.Text, Message: "timestamp out of range"}
	}
	if t, ok := f.Get(KindDay); ok {
		month := Farvardin
		if m, ok := f.Get(KindMonth); ok {
			month = Month(m.Value - 1)
		}
		if t.Value < 1 || t.Value > int64(DaysInMonth(year, month)) {
			return &ParseError{Value: s, Elem: t.Text, Message: "day out of range"}
		}
	}
	return nil
}

// Resolve builds the instant described by f, relative to ref. Fields are
// applied in a fixed order, later steps overriding earlier ones:
//
//  1. the year, month and day,
//  2. the day of the year,
//  3. the week and day of the week,
//  4. the keywords,
//  5. a timestamp, which ends resolution,
//  6. the clock,
//  7. the zone, which shifts the wall time read in the calendar's zone to
//     the given zone.
//
// A date without year is in the year of ref, a missing month is Farvardin
// and a missing day the first of the month. Without any date field the date
// of ref is kept. A missing clock is the clock of ref, while a clock without
// seconds or milliseconds sets them to zero. Tokens out of the ranges a
// lenient Parser accepts are ignored.
func (p Parser) Resolve(f Fields, ref time.Time) Time {
	f = discardOutOfRange(f)
	c := p.Calendar
	base := c.Of(ref)
	d := base.Date()
	hour, min, sec := base.Clock()
	nsec := base.t.Nanosecond()

	if f.Has(KindYear) || f.Has(KindMonth) || f.Has(KindDay) {
		d.Month, d.Day = Farvardin, 1
		if t, ok := f.Get(KindYear); ok {
			d.Year = int(t.Value)
		}
		if t, ok := f.Get(KindMonth); ok {
			d.Month = Month(t.Value - 1)
		}
		if t, ok := f.Get(KindDay); ok {
			d.Day = int(t.Value)
		}
	}
	if t, ok := f.Get(KindDayOfYear); ok {
		d = DateOfDayOfYear(d.Year, int(t.Value))
	}
	if t, ok := f.Get(KindWeekOfYear); ok {
		dow := 0
		if wd, ok := f.Get(KindDayOfWeek); ok {
			dow = int(wd.Value) - 1
		}
		d = WeekOfDay(d.Year, int(t.Value), dow, c.first)
	}

	if f.Has(KindNow) {
		now := c.Of(c.clock())
		d = now.Date()
		hour, min, sec = now.Clock()
		nsec = now.t.Nanosecond()
	}
	if f.Has(KindTodayMidnight) {
		hour, min, sec, nsec = 0, 0, 0, 0
	}
	if f.Has(KindYesterday) {
		d = d.AddDate(0, 0, -1)
		hour, min, sec, nsec = 0, 0, 0, 0
	}
	if f.Has(KindTomorrow) {
		d = d.AddDate(0, 0, 1)
		hour, min, sec, nsec = 0, 0, 0, 0
	}
	if f.Has(KindNoon) {
		hour, min, sec, nsec = 12, 0, 0, 0
	}

	if t, ok := f.Get(KindTimestamp); ok {
		return c.UnixMilli(t.Value)
	}

	if t, ok := f.Get(KindHours); ok {
		hour, min, sec, nsec = int(t.Value), 0, 0, 0
		if t, ok := f.Get(KindMinutes); ok {
			min = int(t.Value)
		}
		if t, ok := f.Get(KindSeconds); ok {
			sec = int(t.Value)
		}
		if t, ok := f.Get(KindFraction); ok {
			nsec = int(t.Value) * int(time.Millisecond)
		}
	}

	res := c.Date(d.Year, d.Month, d.Day, hour, min, sec, nsec)
	if t, ok := f.Get(KindTZTime); ok {
		_, off := res.t.Zone()
		corr := time.Duration(off)*time.Second - time.Duration(t.Value)*time.Millisecond
		return res.Add(corr)
	}
	if t, ok := f.Get(KindTZ); ok {
		if loc, err := loadZone(t.Text); err == nil {
			gy, gm, gd := d.Gregorian()
			return c.Of(time.Date(gy, gm, gd, hour, min, sec, nsec, loc))
		}
	}
	return res
}
