// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonih.org/shdate/words"
)

// Kind is the kind of a [Token].
type Kind int

// Token kinds. The value of a token is given in parentheses.
const (
	KindYear          Kind = iota // solar year
	KindMonth                     // solar month, counted from 1
	KindDay                       // day of the month
	KindHours                     // hour, 0 to 23
	KindMinutes                   // minute
	KindSeconds                   // second
	KindFraction                  // millisecond
	KindTZ                        // zone name in Text, 0
	KindTZTime                    // UTC offset in milliseconds
	KindTimestamp                 // Unix time in milliseconds
	KindDayOfYear                 // day of the year, counted from 0
	KindWeekOfYear                // week of the week-numbering year
	KindDayOfWeek                 // day of the week, 1 to 7 from the first day of the week
	KindNow                       // 0
	KindTodayMidnight             // 0
	KindNoon                      // 0
	KindYesterday                 // 0
	KindTomorrow                  // 0

	numKinds
)

var kindNames = [...]string{
	KindYear:          "YEAR",
	KindMonth:         "MONTH",
	KindDay:           "DAY",
	KindHours:         "HOURS",
	KindMinutes:       "MINUTES",
	KindSeconds:       "SECONDS",
	KindFraction:      "FRACTION",
	KindTZ:            "TZ",
	KindTZTime:        "TZ_TIME",
	KindTimestamp:     "TIMESTAMP",
	KindDayOfYear:     "DAY_OF_YEAR",
	KindWeekOfYear:    "WEEK_OF_YEAR",
	KindDayOfWeek:     "DAY_OF_WEEK",
	KindNow:           "NOW",
	KindTodayMidnight: "TODAY_MIDNIGHT",
	KindNoon:          "NOON",
	KindYesterday:     "YESTERDAY",
	KindTomorrow:      "TOMORROW",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return fmt.Sprintf("%%!Kind(%d)", int(k))
	}
	return kindNames[k]
}

// A Token is a single field recognized in a date string.
type Token struct {
	Kind  Kind
	Value int64
	// Text is the input the token was read from. For KindTZ it is the name
	// of the zone.
	Text string
}

// Fields is the set of fields recognized in a date string. It holds at most
// one token of every kind; a later occurrence replaces an earlier one.
type Fields struct {
	Tokens []Token
	// Unknown lists the words that were not recognized.
	Unknown []string
}

// Get returns the token of kind k.
func (f Fields) Get(k Kind) (Token, bool) {
	for _, t := range f.Tokens {
		if t.Kind == k {
			return t, true
		}
	}
	return Token{}, false
}

// Has reports whether f holds a token of kind k.
func (f Fields) Has(k Kind) bool {
	_, ok := f.Get(k)
	return ok
}

func (f *Fields) set(k Kind, v int64, text string) {
	for i := range f.Tokens {
		if f.Tokens[i].Kind == k {
			f.Tokens[i] = Token{k, v, text}
			return
		}
	}
	f.Tokens = append(f.Tokens, Token{k, v, text})
}

// ParseError describes a problem parsing a date string.
type ParseError struct {
	Value   string
	Elem    string
	Message string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Elem == "" {
		return fmt.Sprintf("parsing date %q: %s", e.Value, e.Message)
	}
	return fmt.Sprintf("parsing date %q: %s at %q", e.Value, e.Message, e.Elem)
}

// maxDigits bounds the length of a number, so it fits into an int64.
const maxDigits = 18

// maxTimestampDigits bounds the seconds of a timestamp, so that they fit
// into an int64 as milliseconds.
const maxTimestampDigits = 15

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

type scanner struct {
	s string
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

func (sc *scanner) done() bool { return sc.s == "" }

func (sc *scanner) rest() string { return sc.s }

// peek returns the byte at offset i of the remaining input, or 0.
func (sc *scanner) peek(i int) byte {
	if i < len(sc.s) {
		return sc.s[i]
	}
	return 0
}

// skipByte skips b, if the input starts with it.
func (sc *scanner) skipByte(b byte) bool {
	if sc.peek(0) == b && sc.s != "" {
		sc.s = sc.s[1:]
		return true
	}
	return false
}

// digits accepts up to max decimal digits, or up to maxDigits if max is 0,
// and returns their value and count.
func (sc *scanner) digits(max int) (v, n int) {
	if max <= 0 || max > maxDigits {
		max = maxDigits
	}
	for n < max && n < len(sc.s) && isDigit(sc.s[n]) {
		v = v*10 + int(sc.s[n]-'0')
		n++
	}
	sc.s = sc.s[n:]
	return v, n
}

// countDigits returns the length of the run of digits at offset i.
func (sc *scanner) countDigits(i int) int {
	n := 0
	for isDigit(sc.peek(i + n)) {
		n++
	}
	return n
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || r == '_' || r == '\u200c'
}

// word accepts a run of letters, together with the dots and slashes inside
// abbreviations and zone names.
func (sc *scanner) word() string {
	i := 0
	for i < len(sc.s) {
		r, size := utf8.DecodeRuneInString(sc.s[i:])
		if !isWordRune(r) && r != '.' && r != '/' {
			break
		}
		i += size
	}
	w := sc.s[:i]
	sc.s = sc.s[i:]
	return w
}

// foldDigits replaces Persian and Arabic-Indic digits by ASCII digits.
func foldDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case '۰' <= r && r <= '۹':
			return '0' + r - '۰'
		case '٠' <= r && r <= '٩':
			return '0' + r - '٠'
		}
		return r
	}, s)
}

var keywords = map[string]Kind{
	"now":       KindNow,
	"today":     KindTodayMidnight,
	"midnight":  KindTodayMidnight,
	"noon":      KindNoon,
	"yesterday": KindYesterday,
	"tomorrow":  KindTomorrow,
	"الان":      KindNow,
	"اکنون":     KindNow,
	"امروز":     KindTodayMidnight,
	"نیمه‌شب":   KindTodayMidnight,
	"ظهر":       KindNoon,
	"دیروز":     KindYesterday,
	"فردا":      KindTomorrow,
}

// monthNames maps lower-case month names and English abbreviations to the
// month, counted from 1.
var monthNames = func() map[string]int {
	m := make(map[string]int)
	for _, l := range words.Languages() {
		for i, n := range words.Names(words.MonthFull, l) {
			m[strings.ToLower(n)] = i + 1
		}
	}
	for i, n := range words.Names(words.MonthShort, words.English) {
		m[strings.ToLower(n)] = i + 1
	}
	return m
}()

// ignored holds weekday names and ordinal suffixes, which are accepted
// without producing a token.
var ignored = func() map[string]bool {
	m := map[string]bool{"st": true, "nd": true, "rd": true, "th": true, "ام": true, "of": true}
	for _, l := range words.Languages() {
		for _, n := range words.Names(words.DayFull, l) {
			m[strings.ToLower(n)] = true
		}
	}
	for _, n := range words.Names(words.DayShort, words.English) {
		m[strings.ToLower(n)] = true
	}
	return m
}()

type meridiem int

const (
	noMeridiem meridiem = iota
	ante
	post
)

type number struct {
	v, n int
	text string
}

type tokenizer struct {
	sc        *scanner
	f         Fields
	pending   []number
	meridiem  meridiem
	textMonth bool
}

// Tokenize splits s into the fields it recognizes. It never fails. Words it
// does not recognize are collected in [Fields.Unknown].
//
// Recognized are Unix timestamps ("@1710880000"), the keywords now, today,
// midnight, noon, yesterday and tomorrow in English and Persian, dates like
// "1403/01/01", "1403-01-01", "1403.01.01", "01/01/1403", "1403/01" and
// "14030101", days of the year ("1403.045"), weeks ("1403-W05-3",
// "1403W053"), month names with a day and year ("1 Farvardin 1403"), clock
// times like "12:30", "12:30:15.250" and "3pm", and zones ("Z", "UTC+3:30",
// "+0330", "IRST", "Asia/Tehran"). Persian digits are accepted.
func Tokenize(s string) Fields {
	t := tokenizer{sc: newScanner(foldDigits(s))}
	t.run()
	return t.f
}

func (t *tokenizer) run() {
	sc := t.sc
	for !sc.done() {
		r, size := utf8.DecodeRuneInString(sc.s)
		c := sc.peek(0)
		switch {
		case unicode.IsSpace(r) || r == ',' || r == '،':
			sc.s = sc.s[size:]
		case c == '@':
			t.timestamp()
		case isDigit(c):
			t.number()
		case c == '+' && isDigit(sc.peek(1)):
			if !t.offset() {
				n := 1 + sc.countDigits(1)
				t.unknown(sc.s[:n])
				sc.s = sc.s[n:]
			}
		case c == '-' && isDigit(sc.peek(1)) && t.f.Has(KindHours):
			if !t.offset() {
				t.unknown(sc.s[:1])
				sc.s = sc.s[1:]
			}
		case isWordRune(r):
			t.word()
		case c == '-' || c == '/' || c == '.' || c == '(' || c == ')':
			sc.s = sc.s[1:]
		default:
			t.unknown(sc.s[:size])
			sc.s = sc.s[size:]
		}
	}
	t.finish()
}

func (t *tokenizer) unknown(s string) {
	t.f.Unknown = append(t.f.Unknown, s)
}

// timestamp accepts "@seconds[.fraction]".
func (t *tokenizer) timestamp() {
	sc := t.sc
	start := sc.s
	sc.skipByte('@')
	neg := sc.skipByte('-')
	if n := sc.countDigits(0); n == 0 || n > maxTimestampDigits {
		if n == 0 {
			t.unknown("@")
			sc.s = start[1:]
			return
		}
		sc.s = sc.s[n:]
		if sc.peek(0) == '.' && isDigit(sc.peek(1)) {
			sc.s = sc.s[1+sc.countDigits(1):]
		}
		t.unknown(start[:len(start)-len(sc.s)])
		return
	}
	sec, _ := sc.digits(0)
	ms := int64(sec) * 1000
	if sc.peek(0) == '.' && isDigit(sc.peek(1)) {
		sc.skipByte('.')
		ms += int64(fraction(sc))
	}
	if neg {
		ms = -ms
	}
	t.f.set(KindTimestamp, ms, start[:len(start)-len(sc.s)])
}

// fraction accepts a decimal fraction of a second and returns it in
// milliseconds.
func fraction(sc *scanner) int {
	v, n := sc.digits(3)
	for ; n < 3; n++ {
		v *= 10
	}
	sc.digits(0)
	return v
}

// offset accepts a UTC offset "±HH", "±HHMM" or "±HH:MM".
func (t *tokenizer) offset() bool {
	sc := t.sc
	start := sc.s
	sign := int64(1)
	if sc.peek(0) == '-' {
		sign = -1
	}
	sc.s = sc.s[1:]
	h, n := sc.digits(4)
	m := 0
	switch n {
	case 4:
		h, m = h/100, h%100
	case 1, 2:
		if sc.peek(0) == ':' && isDigit(sc.peek(1)) {
			sc.skipByte(':')
			var k int
			if m, k = sc.digits(2); k != 2 {
				sc.s = start
				return false
			}
		}
	default:
		sc.s = start
		return false
	}
	if h > 14 || m > 59 || isDigit(sc.peek(0)) {
		sc.s = start
		return false
	}
	t.f.set(KindTZTime, sign*int64(h*60+m)*60000, start[:len(start)-len(sc.s)])
	return true
}

func (t *tokenizer) number() {
	sc := t.sc
	start := sc.s
	a, n := sc.digits(0)
	text := start[:n]
	switch {
	case n <= 2 && sc.peek(0) == ':' && isDigit(sc.peek(1)):
		t.clock(a, start)
	case n == 4 && t.weekAhead():
		t.week(a, text)
	case n == 4 && sc.peek(0) == '.' && sc.countDigits(1) == 3 && sc.peek(4) != '.':
		sc.skipByte('.')
		doy, _ := sc.digits(3)
		t.f.set(KindYear, int64(a), text)
		t.f.set(KindDayOfYear, int64(doy), start[:len(start)-len(sc.s)])
	case (sc.peek(0) == '/' || sc.peek(0) == '-' || sc.peek(0) == '.') && isDigit(sc.peek(1)):
		t.date(a, n, start)
	case n == 8:
		t.f.set(KindYear, int64(a/10000), text[:4])
		t.f.set(KindMonth, int64(a/100%100), text[4:6])
		t.f.set(KindDay, int64(a%100), text[6:])
		t.compactClock()
	case n == 14:
		t.f.set(KindYear, int64(a/1e10), text[:4])
		t.f.set(KindMonth, int64(a/1e8%100), text[4:6])
		t.f.set(KindDay, int64(a/1e6%100), text[6:8])
		t.setClock(a/10000%100, a/100%100, a%100, text[8:])
	default:
		t.pending = append(t.pending, number{a, n, text})
	}
}

// clock accepts "HH:II[:SS[.fff]]", with the hour already read from start.
// Every token carries the text of the whole clock.
func (t *tokenizer) clock(h int, start string) {
	sc := t.sc
	sc.skipByte(':')
	m, _ := sc.digits(2)
	s, frac := -1, -1
	if sc.peek(0) == ':' && isDigit(sc.peek(1)) {
		sc.skipByte(':')
		s, _ = sc.digits(2)
		if (sc.peek(0) == '.' || sc.peek(0) == ',') && isDigit(sc.peek(1)) {
			sc.s = sc.s[1:]
			frac = fraction(sc)
		}
	}
	text := start[:len(start)-len(sc.s)]
	t.f.set(KindHours, int64(h), text)
	t.f.set(KindMinutes, int64(m), text)
	if s >= 0 {
		t.f.set(KindSeconds, int64(s), text)
	}
	if frac >= 0 {
		t.f.set(KindFraction, int64(frac), text)
	}
}

func (t *tokenizer) setClock(h, m, s int, text string) {
	t.f.set(KindHours, int64(h), text)
	t.f.set(KindMinutes, int64(m), text)
	t.f.set(KindSeconds, int64(s), text)
}

// compactClock accepts "THHII" or "THHIISS" following a compact date.
func (t *tokenizer) compactClock() {
	sc := t.sc
	if c := sc.peek(0); c != 'T' && c != 't' {
		return
	}
	switch sc.countDigits(1) {
	case 4:
		sc.s = sc.s[1:]
		text := sc.s[:4]
		v, _ := sc.digits(4)
		t.f.set(KindHours, int64(v/100), text)
		t.f.set(KindMinutes, int64(v%100), text)
	case 6:
		sc.s = sc.s[1:]
		text := sc.s[:6]
		v, _ := sc.digits(6)
		t.setClock(v/10000, v/100%100, v%100, text)
	}
}

// weekAhead reports whether the input continues with a week designator.
func (t *tokenizer) weekAhead() bool {
	i := 0
	if t.sc.peek(0) == '-' {
		i = 1
	}
	c := t.sc.peek(i)
	return (c == 'W' || c == 'w') && isDigit(t.sc.peek(i+1))
}

// week accepts "-Www[-D]" or "Www[D]" after a year.
func (t *tokenizer) week(year int, text string) {
	sc := t.sc
	start := sc.s
	sc.skipByte('-')
	sc.s = sc.s[1:]
	w, _ := sc.digits(2)
	t.f.set(KindYear, int64(year), text)
	t.f.set(KindWeekOfYear, int64(w), start[:len(start)-len(sc.s)])
	i := 0
	if sc.peek(0) == '-' {
		i = 1
	}
	if d := sc.peek(i); '1' <= d && d <= '7' && !isDigit(sc.peek(i+1)) {
		sc.s = sc.s[i+1:]
		t.f.set(KindDayOfWeek, int64(d-'0'), string(d))
	}
}

// date accepts the rest of a numeric date separated by '/', '-' or '.'. A
// leading number of three or more digits is a year, otherwise a trailing
// one is.
func (t *tokenizer) date(a, an int, start string) {
	sc := t.sc
	sep := sc.peek(0)
	sc.skipByte(sep)
	b, _ := sc.digits(0)
	c, cn := 0, 0
	if sc.peek(0) == sep && isDigit(sc.peek(1)) {
		sc.skipByte(sep)
		c, cn = sc.digits(0)
	}
	text := start[:len(start)-len(sc.s)]
	switch {
	case an < 3 && cn >= 3:
		t.f.set(KindDay, int64(a), text)
		t.f.set(KindMonth, int64(b), text)
		t.f.set(KindYear, int64(c), text)
	case an < 3 && cn == 0:
		t.f.set(KindDay, int64(a), text)
		t.f.set(KindMonth, int64(b), text)
	default:
		t.f.set(KindYear, int64(a), text)
		t.f.set(KindMonth, int64(b), text)
		if cn > 0 {
			t.f.set(KindDay, int64(c), text)
		}
	}
}

func (t *tokenizer) word() {
	sc := t.sc
	w := strings.TrimRight(sc.word(), "/")
	lw := strings.ToLower(strings.TrimRight(w, "."))
	if k, ok := keywords[lw]; ok {
		t.f.set(k, 0, w)
		return
	}
	switch lw {
	case "t":
		if isDigit(sc.peek(0)) {
			return
		}
	case "am", "a.m", "ق.ظ":
		t.meridiem = ante
		return
	case "pm", "p.m", "ب.ظ":
		t.meridiem = post
		return
	case "z":
		t.f.set(KindTZ, 0, "UTC")
		t.f.set(KindTZTime, 0, w)
		return
	case "utc", "gmt", "ut":
		t.f.set(KindTZ, 0, "UTC")
		if c := sc.peek(0); (c == '+' || c == '-') && isDigit(sc.peek(1)) && t.offset() {
			return
		}
		t.f.set(KindTZTime, 0, w)
		return
	}
	if off, ok := zoneAbbr(lw); ok {
		t.f.set(KindTZ, 0, strings.ToUpper(lw))
		t.f.set(KindTZTime, int64(off)*60000, w)
		return
	}
	if strings.Contains(w, "/") {
		if _, err := loadZone(w); err == nil {
			t.f.set(KindTZ, 0, w)
			return
		}
	}
	if m, ok := monthNames[lw]; ok {
		t.f.set(KindMonth, int64(m), w)
		t.textMonth = true
		return
	}
	if ignored[lw] {
		return
	}
	t.unknown(w)
}

// finish applies a meridiem and assigns the numbers that stood on their own.
func (t *tokenizer) finish() {
	if t.meridiem != noMeridiem && !t.f.Has(KindHours) {
		if i := len(t.pending) - 1; i >= 0 && t.pending[i].n <= 2 && 1 <= t.pending[i].v && t.pending[i].v <= 12 {
			p := t.pending[i]
			t.pending = t.pending[:i]
			t.f.set(KindHours, int64(p.v), p.text)
			t.f.set(KindMinutes, 0, p.text)
		}
	}
	if h, ok := t.f.Get(KindHours); ok {
		switch {
		case t.meridiem == ante && h.Value == 12:
			t.f.set(KindHours, 0, h.Text)
		case t.meridiem == post && h.Value < 12:
			t.f.set(KindHours, h.Value+12, h.Text)
		}
	}
	for _, p := range t.pending {
		switch {
		case t.textMonth && p.n <= 2 && !t.f.Has(KindDay):
			t.f.set(KindDay, int64(p.v), p.text)
		case p.n >= 3 && !t.f.Has(KindYear):
			t.f.set(KindYear, int64(p.v), p.text)
		case p.n <= 2 && !t.f.Has(KindDay):
			t.f.set(KindDay, int64(p.v), p.text)
		case !t.f.Has(KindYear):
			t.f.set(KindYear, int64(p.v), p.text)
		default:
			t.unknown(p.text)
		}
	}
}
