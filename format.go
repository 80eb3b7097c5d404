// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"gonih.org/shdate/internal/cache"
	"gonih.org/shdate/words"
)

// These are predefined layouts for use in [Time.Fields] and [Time.Format].
//
// A layout is a list of tokens separated by "=" or white space. Each token
// produces one value. Upper-case tokens produce zero-padded strings,
// lower-case tokens produce ints. The recognized tokens are
//
//	Year: "YY" "yy"
//	Month, counted from 0: "MM" "mm"
//	Day of the month: "DD" "dd"
//	Hour, minute, second, millisecond: "HH" "hh" "II" "ii" "SS" "ss" "MS" "ms"
//	Days in the year: "Diy" "diy"
//	Day of the year, counted from 0: "Doy" "doy"
//	Days in the month: "Dim" "dim"
//	Day of the week, relative to the first day of the week: "Dow" "dow"
//	Weeks in the year: "Wiy" "wiy"
//	Week of the year, as a [2]string or [2]int of year and week: "Woy" "woy"
//	Cumulative leap count of the year: "LPS" "lps"
//
// and the names, in the language of the calendar:
//
//	"dsn" "dfn": short and full day name
//	"msn" "mfn": short and full month name
//	"esn" "efn": short and full meridiem
//	"asn": animal of the year
//	"csn": constellation of the month
//	"ssn": season
//	"osn": solstice or equinox, empty on other days
//	"sun": ordinal suffix of the day
//
// Any other token is returned verbatim.
const (
	DateLayout     = "YY=MM=DD"
	TimeLayout     = "HH=II=SS"
	DateTimeLayout = "YY=MM=DD=HH=II=SS"
	TextLayout     = "dfn=dd=mfn=yy"
	WeekLayout     = "Woy=dow"
)

// inst is a single component of a layout string, either a literal string, or a
// formatting operator.
type inst struct {
	op  fmtOp
	lit string
}

// String implements fmt.Stringer, for debugging
func (i inst) String() string {
	if i.op == opLiteral {
		return i.lit
	}
	return i.op.String()
}

// fmtOp is a formatting operator.
type fmtOp int

const (
	opLiteral fmtOp = iota

	opZeroYear
	opYear
	opZeroMonth
	opMonth
	opZeroDay
	opDay
	opZeroHour
	opHour
	opZeroMinute
	opMinute
	opZeroSecond
	opSecond
	opZeroMilli
	opMilli
	opZeroDaysInYear
	opDaysInYear
	opZeroYearDay
	opYearDay
	opZeroDaysInMonth
	opDaysInMonth
	opZeroWeekDay
	opWeekDay
	opZeroWeeksInYear
	opWeeksInYear
	opZeroWeek
	opWeek
	opZeroLeapCount
	opLeapCount

	opDayShort
	opDayFull
	opMonthShort
	opMonthFull
	opMeridiemShort
	opMeridiemFull
	opAnimal
	opConstellation
	opSeason
	opSolstice
	opSuffix

	opInvalid
)

var opTokens = [...]string{
	opLiteral:         "<literal>",
	opZeroYear:        "YY",
	opYear:            "yy",
	opZeroMonth:       "MM",
	opMonth:           "mm",
	opZeroDay:         "DD",
	opDay:             "dd",
	opZeroHour:        "HH",
	opHour:            "hh",
	opZeroMinute:      "II",
	opMinute:          "ii",
	opZeroSecond:      "SS",
	opSecond:          "ss",
	opZeroMilli:       "MS",
	opMilli:           "ms",
	opZeroDaysInYear:  "Diy",
	opDaysInYear:      "diy",
	opZeroYearDay:     "Doy",
	opYearDay:         "doy",
	opZeroDaysInMonth: "Dim",
	opDaysInMonth:     "dim",
	opZeroWeekDay:     "Dow",
	opWeekDay:         "dow",
	opZeroWeeksInYear: "Wiy",
	opWeeksInYear:     "wiy",
	opZeroWeek:        "Woy",
	opWeek:            "woy",
	opZeroLeapCount:   "LPS",
	opLeapCount:       "lps",
	opDayShort:        "dsn",
	opDayFull:         "dfn",
	opMonthShort:      "msn",
	opMonthFull:       "mfn",
	opMeridiemShort:   "esn",
	opMeridiemFull:    "efn",
	opAnimal:          "asn",
	opConstellation:   "csn",
	opSeason:          "ssn",
	opSolstice:        "osn",
	opSuffix:          "sun",
}

// String implements fmt.Stringer. Except for opLiteral, it returns the layout
// token of the operator.
func (op fmtOp) String() string {
	if op < 0 || op >= opInvalid {
		panic("invalid fmtOp")
	}
	return opTokens[op]
}

var opByToken = func() map[string]fmtOp {
	m := make(map[string]fmtOp, opInvalid)
	for op := opLiteral + 1; op < opInvalid; op++ {
		m[op.String()] = op
	}
	return m
}()

// layouts memoizes compiled layout strings.
var layouts = cache.New(parseLayout, 256)

func isLayoutSep(r rune) bool {
	return r == '=' || unicode.IsSpace(r)
}

// parseLayout parses layout into a set of instructions to format according
// to it.
func parseLayout(layout string) []inst {
	var prog []inst
	for _, tok := range strings.FieldsFunc(layout, isLayoutSep) {
		if op, ok := opByToken[tok]; ok {
			prog = append(prog, inst{op: op})
		} else {
			prog = append(prog, inst{lit: tok})
		}
	}
	return prog
}

// Fields returns one value per token of layout. See [DateLayout] for the
// recognized tokens.
func (t Time) Fields(layout string) []any {
	prog := layouts.Get(layout)
	vals := make([]any, 0, len(prog))

	d := t.Date()
	hour, minute, sec := t.t.Clock()
	msec := t.Millisecond()
	first, lang := t.first(), t.lang()
	dow := DayOfWeek(d.Year, d.Month, d.Day, first)
	doy := DayOfYear(d.Month, d.Day)
	pad := func(v, w int) string { return string(appendInt(nil, v, w)) }

	meridiem := 0
	if hour >= 12 {
		meridiem = 1
	}
	var (
		isoYear, isoWeek int
		weekComputed     bool
	)
	week := func() (int, int) {
		if !weekComputed {
			isoYear, isoWeek = WeekOfYear(d.Year, d.Month, d.Day, first)
			weekComputed = true
		}
		return isoYear, isoWeek
	}

	for _, i := range prog {
		var v any
		switch i.op {
		case opLiteral:
			v = i.lit
		case opZeroYear:
			v = string(appendYear(nil, d.Year))
		case opYear:
			v = d.Year
		case opZeroMonth:
			v = pad(int(d.Month), 2)
		case opMonth:
			v = int(d.Month)
		case opZeroDay:
			v = pad(d.Day, 2)
		case opDay:
			v = d.Day
		case opZeroHour:
			v = pad(hour, 2)
		case opHour:
			v = hour
		case opZeroMinute:
			v = pad(minute, 2)
		case opMinute:
			v = minute
		case opZeroSecond:
			v = pad(sec, 2)
		case opSecond:
			v = sec
		case opZeroMilli:
			v = pad(msec, 3)
		case opMilli:
			v = msec
		case opZeroDaysInYear:
			v = pad(DaysInYear(d.Year), 3)
		case opDaysInYear:
			v = DaysInYear(d.Year)
		case opZeroYearDay:
			v = pad(doy, 3)
		case opYearDay:
			v = doy
		case opZeroDaysInMonth:
			v = pad(DaysInMonth(d.Year, d.Month), 2)
		case opDaysInMonth:
			v = DaysInMonth(d.Year, d.Month)
		case opZeroWeekDay:
			v = pad(dow, 2)
		case opWeekDay:
			v = dow
		case opZeroWeeksInYear:
			v = pad(WeeksInYear(d.Year, first), 2)
		case opWeeksInYear:
			v = WeeksInYear(d.Year, first)
		case opZeroWeek:
			y, w := week()
			v = [2]string{string(appendYear(nil, y)), pad(w, 2)}
		case opWeek:
			y, w := week()
			v = [2]int{y, w}
		case opZeroLeapCount:
			v = strconv.Itoa(LeapCount(d.Year))
		case opLeapCount:
			v = LeapCount(d.Year)
		case opDayShort:
			v = words.Lookup(words.DayShort, dow+int(first), lang)
		case opDayFull:
			v = words.Lookup(words.DayFull, dow+int(first), lang)
		case opMonthShort:
			v = words.Lookup(words.MonthShort, int(d.Month), lang)
		case opMonthFull:
			v = words.Lookup(words.MonthFull, int(d.Month), lang)
		case opMeridiemShort:
			v = words.Lookup(words.MeridiemShort, meridiem, lang)
		case opMeridiemFull:
			v = words.Lookup(words.MeridiemFull, meridiem, lang)
		case opAnimal:
			v = words.Lookup(words.Animal, d.Year+5, lang)
		case opConstellation:
			v = words.Lookup(words.Constellation, int(d.Month), lang)
		case opSeason:
			v = words.Lookup(words.Season, int(d.Month)/3, lang)
		case opSolstice:
			v = ""
			if d.Month%3 == 0 && d.Day == 1 {
				v = words.Lookup(words.Solstice, int(d.Month)/3, lang)
			}
		case opSuffix:
			v = words.Lookup(words.Suffix, d.Day, lang)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		vals = append(vals, v)
	}
	return vals
}

// Format is like Fields, but renders every value as a string. Week pairs are
// rendered as "1403-W05" for "Woy" and "1403-5" for "woy".
func (t Time) Format(layout string) []string {
	vals := t.Fields(layout)
	out := make([]string, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		case [2]string:
			out[i] = v[0] + "-W" + v[1]
		case [2]int:
			out[i] = strconv.Itoa(v[0]) + "-" + strconv.Itoa(v[1])
		}
	}
	return out
}
