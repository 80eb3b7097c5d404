// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"slices"
	"testing"
)

func TestDayOfWeek(t *testing.T) {
	// Weekday of the first of every month of 1403, for weeks starting on
	// Saturday.
	want := []int{4, 0, 3, 6, 2, 5, 1, 3, 5, 0, 2, 4}
	for m := Farvardin; m <= Esfand; m++ {
		if got := DayOfWeek(1403, m, 1, Saturday); got != want[m] {
			t.Errorf("DayOfWeek(1403, %v, 1, Saturday) = %d, want %d", m, got, want[m])
		}
		for first := Saturday; first <= Friday; first++ {
			got := DayOfWeek(1403, m, 1, first)
			if w := (want[m] - int(first) + 7) % 7; got != w {
				t.Errorf("DayOfWeek(1403, %v, 1, %v) = %d, want %d", m, first, got, w)
			}
		}
	}
	if got := (Date{1405, Mehr, 27}).Weekday(); got != Monday {
		t.Errorf("Date{1405, Mehr, 27}.Weekday() = %v, want Monday", got)
	}
}

func TestDayOfWeekCarries(t *testing.T) {
	tcs := []struct {
		year  int
		month Month
		day   int
		want  int
	}{
		{1403, 12, 1, 6},
		{1403, 13, 1, 2},
		{1403, -1, 1, 3},
		{1404, -12, 1, 4},
		{1403, Farvardin, 32, 0},
		{1403, Farvardin, 0, 3},
		{1403, Esfand, 31, 6},
	}
	for _, tc := range tcs {
		if got := DayOfWeek(tc.year, tc.month, tc.day, Saturday); got != tc.want {
			t.Errorf("DayOfWeek(%d, %d, %d, Saturday) = %d, want %d", tc.year, tc.month, tc.day, got, tc.want)
		}
		d := Of(tc.year, tc.month, tc.day)
		if got := DayOfWeek(d.Year, d.Month, d.Day, Saturday); got != tc.want {
			t.Errorf("DayOfWeek(%#v, Saturday) = %d, want %d", d, got, tc.want)
		}
	}
}

func TestWeekOfYear(t *testing.T) {
	tcs := []struct {
		year        int
		weeks       int
		first, last [2]int
	}{
		{1398, 52, [2]int{1397, 52}, [2]int{1398, 52}},
		{1399, 52, [2]int{1398, 52}, [2]int{1400, 1}},
		{1400, 52, [2]int{1400, 1}, [2]int{1401, 1}},
		{1401, 52, [2]int{1401, 1}, [2]int{1402, 1}},
		{1402, 53, [2]int{1402, 1}, [2]int{1402, 53}},
		{1403, 52, [2]int{1402, 53}, [2]int{1403, 52}},
		{1404, 52, [2]int{1403, 52}, [2]int{1404, 52}},
		{1405, 52, [2]int{1405, 1}, [2]int{1406, 1}},
	}
	for _, tc := range tcs {
		if got := WeeksInYear(tc.year, Saturday); got != tc.weeks {
			t.Errorf("WeeksInYear(%d, Saturday) = %d, want %d", tc.year, got, tc.weeks)
		}
		if y, w := WeekOfYear(tc.year, Farvardin, 1, Saturday); [2]int{y, w} != tc.first {
			t.Errorf("WeekOfYear(%d, Farvardin, 1, Saturday) = %d, %d, want %v", tc.year, y, w, tc.first)
		}
		last := DaysInMonth(tc.year, Esfand)
		if y, w := WeekOfYear(tc.year, Esfand, last, Saturday); [2]int{y, w} != tc.last {
			t.Errorf("WeekOfYear(%d, Esfand, %d, Saturday) = %d, %d, want %v", tc.year, last, y, w, tc.last)
		}
	}
}

func TestWeekOfYearCarries(t *testing.T) {
	if y, w := WeekOfYear(1403, 12, 1, Saturday); y != 1403 || w != 52 {
		t.Errorf("WeekOfYear(1403, 12, 1, Saturday) = %d, %d, want 1403, 52", y, w)
	}
	if y, w := WeekOfYear(1403, Farvardin, 0, Saturday); y != 1402 || w != 53 {
		t.Errorf("WeekOfYear(1403, Farvardin, 0, Saturday) = %d, %d, want 1402, 53", y, w)
	}
	if got := WeekdayInMonth(1403, 12, 1, Saturday); got != 1 {
		t.Errorf("WeekdayInMonth(1403, 12, 1, Saturday) = %d, want 1", got)
	}
	if got := WeekdayInMonth(1403, Farvardin, 32, Saturday); got != 1 {
		t.Errorf("WeekdayInMonth(1403, Farvardin, 32, Saturday) = %d, want 1", got)
	}
	if got, want := NthWeekdayOfMonth(1403, 12, 6, Saturday), NthWeekdayOfMonth(1404, Farvardin, 6, Saturday); !slices.Equal(got, want) {
		t.Errorf("NthWeekdayOfMonth(1403, 12, 6, Saturday) = %v, want %v", got, want)
	}
}

// TestWeekBoundaries checks that the first and last day of every year fall
// into a week of that year or of the adjacent one.
func TestWeekBoundaries(t *testing.T) {
	for first := Saturday; first <= Friday; first++ {
		for year := 1; year <= 3000; year++ {
			weeks := WeeksInYear(year, first)
			last := DaysInMonth(year, Esfand)
			ly, lw := WeekOfYear(year, Esfand, last, first)
			if [2]int{ly, lw} != [2]int{year, weeks} && [2]int{ly, lw} != [2]int{year + 1, 1} {
				t.Fatalf("WeekOfYear(%d, Esfand, %d, %v) = %d, %d, want %d, %d or %d, 1", year, last, first, ly, lw, year, weeks, year+1)
			}
			fy, fw := WeekOfYear(year, Farvardin, 1, first)
			if [2]int{fy, fw} != [2]int{year, 1} && [2]int{fy, fw} != [2]int{year - 1, WeeksInYear(year-1, first)} {
				t.Fatalf("WeekOfYear(%d, Farvardin, 1, %v) = %d, %d, want %d, 1 or the last week of %d", year, first, fy, fw, year, year-1)
			}
			ny, nw := WeekOfYear(year+1, Farvardin, 1, first)
			if DayOfWeek(year+1, Farvardin, 1, first) == 0 {
				if ny != year+1 || nw != 1 {
					t.Fatalf("WeekOfYear(%d, Farvardin, 1, %v) = %d, %d, want %d, 1", year+1, first, ny, nw, year+1)
				}
			} else if ny != ly || nw != lw {
				t.Fatalf("WeekOfYear(%d, Farvardin, 1, %v) = %d, %d, want the week of the day before %d, %d", year+1, first, ny, nw, ly, lw)
			}
		}
	}
}

// TestWeekConsistency walks through a range of years and checks that week
// numbers advance with the first day of the week and that WeekOfDay inverts
// WeekOfYear.
func TestWeekConsistency(t *testing.T) {
	for _, first := range []Weekday{Saturday, Sunday, Monday, Friday} {
		d := Date{1380, Farvardin, 1}
		py, pw := d.ISOWeek(first)
		for d = d.AddDate(0, 0, 1); d.Year < 1420; d = d.AddDate(0, 0, 1) {
			y, w := d.ISOWeek(first)
			dow := DayOfWeek(d.Year, d.Month, d.Day, first)
			if dow == 0 {
				if w != pw+1 && !(w == 1 && y == py+1 && pw == WeeksInYear(py, first)) {
					t.Fatalf("%#v.ISOWeek(%v) = %d, %d after %d, %d", d, first, y, w, py, pw)
				}
			} else if y != py || w != pw {
				t.Fatalf("%#v.ISOWeek(%v) = %d, %d, want %d, %d", d, first, y, w, py, pw)
			}
			if w < 1 || w > WeeksInYear(y, first) {
				t.Fatalf("%#v.ISOWeek(%v) = %d, %d, but WeeksInYear(%d) = %d", d, first, y, w, y, WeeksInYear(y, first))
			}
			if got := WeekOfDay(y, w, dow, first); got != d {
				t.Fatalf("WeekOfDay(%d, %d, %d, %v) = %#v, want %#v", y, w, dow, first, got, d)
			}
			py, pw = y, w
		}
	}
}

func TestWeekOfDay(t *testing.T) {
	tcs := []struct {
		year, week, day int
		want            Date
	}{
		{1403, 5, 2, Date{1403, Ordibehesht, 3}},
		{1403, 1, 0, Date{1403, Farvardin, 4}},
		{1403, 0, 0, Date{1402, Esfand, 26}},
		{1403, 53, 0, Date{1404, Farvardin, 2}},
	}
	for _, tc := range tcs {
		if got := WeekOfDay(tc.year, tc.week, tc.day, Saturday); got != tc.want {
			t.Errorf("WeekOfDay(%d, %d, %d, Saturday) = %#v, want %#v", tc.year, tc.week, tc.day, got, tc.want)
		}
	}
}

func TestWeekCorrection(t *testing.T) {
	tcs := []struct {
		year, week, day int
		want            [3]int
	}{
		{1403, 5, 2, [3]int{1403, 5, 2}},
		{1403, 5, 7, [3]int{1403, 6, 0}},
		{1403, 5, -1, [3]int{1403, 4, 6}},
		{1403, 53, 0, [3]int{1404, 1, 0}},
		{1403, 0, 0, [3]int{1402, 53, 0}},
	}
	for _, tc := range tcs {
		y, w, d := WeekCorrection(tc.year, tc.week, tc.day, Saturday)
		if got := [3]int{y, w, d}; got != tc.want {
			t.Errorf("WeekCorrection(%d, %d, %d, Saturday) = %v, want %v", tc.year, tc.week, tc.day, got, tc.want)
		}
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	tcs := []struct {
		month   Month
		weekday int
		want    []int
	}{
		{Farvardin, 6, []int{3, 10, 17, 24, 31}},
		{Farvardin, 4, []int{1, 8, 15, 22, 29}},
		{Esfand, 0, []int{4, 11, 18, 25}},
		{Mehr, 3, []int{3, 10, 17, 24}},
	}
	for _, tc := range tcs {
		got := NthWeekdayOfMonth(1403, tc.month, tc.weekday, Saturday)
		if !slices.Equal(got, tc.want) {
			t.Errorf("NthWeekdayOfMonth(1403, %v, %d, Saturday) = %v, want %v", tc.month, tc.weekday, got, tc.want)
		}
	}
	for day := 1; day <= 31; day++ {
		if got, want := WeekdayInMonth(1403, Farvardin, day, Saturday), (day-1)/7+1; got != want {
			t.Errorf("WeekdayInMonth(1403, Farvardin, %d, Saturday) = %d, want %d", day, got, want)
		}
	}
}

// TestNthWeekdayOfMonthAll checks that every month has four or five of
// each weekday, a week apart and within the month.
func TestNthWeekdayOfMonthAll(t *testing.T) {
	for year := 1; year <= 3000; year++ {
		for m := Farvardin; m <= Esfand; m++ {
			dim := DaysInMonth(year, m)
			for wd := 0; wd < 7; wd++ {
				days := NthWeekdayOfMonth(year, m, wd, Saturday)
				if len(days) != 4 && len(days) != 5 {
					t.Fatalf("NthWeekdayOfMonth(%d, %v, %d, Saturday) = %v, want 4 or 5 days", year, m, wd, days)
				}
				if days[0] < 1 || days[0] > 7 || days[len(days)-1] > dim || days[len(days)-1]+7 <= dim {
					t.Fatalf("NthWeekdayOfMonth(%d, %v, %d, Saturday) = %v, want days in [1, %d]", year, m, wd, days, dim)
				}
				for i, d := range days {
					if i > 0 && d != days[i-1]+7 {
						t.Fatalf("NthWeekdayOfMonth(%d, %v, %d, Saturday) = %v, want days a week apart", year, m, wd, days)
					}
					if got := DayOfWeek(year, m, d, Saturday); got != wd {
						t.Fatalf("DayOfWeek(%d, %v, %d, Saturday) = %d, want %d", year, m, d, got, wd)
					}
				}
			}
		}
	}
}

func TestWeekdayString(t *testing.T) {
	for d, want := range []string{"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		if got := Weekday(d).String(); got != want {
			t.Errorf("Weekday(%d).String() = %q, want %q", d, got, want)
		}
	}
	if got, want := Weekday(7).String(), "%!Weekday(7)"; got != want {
		t.Errorf("Weekday(7).String() = %q, want %q", got, want)
	}
	if got, want := Month(-1).String(), "%!Month(-1)"; got != want {
		t.Errorf("Month(-1).String() = %q, want %q", got, want)
	}
}
