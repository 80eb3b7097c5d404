// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package words contains the names used when rendering solar Hijri dates:
// day and month names, meridiem designators, the twelve-animal cycle,
// constellations, seasons, solstices and ordinal suffixes.
//
// Every table is indexed by a small integer. The indexing conventions are
// documented per [Category]; callers are responsible for deriving the index
// from calendar fields.
package words

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Category selects a table.
type Category int

const (
	// DayShort and DayFull are indexed 0..6, Saturday first.
	DayShort Category = iota
	DayFull
	// MonthShort and MonthFull are indexed 0..11, Farvardin first.
	MonthShort
	MonthFull
	// MeridiemShort and MeridiemFull are indexed 0 (before noon) and 1.
	MeridiemShort
	MeridiemFull
	// Animal is indexed 0..11, Rat first.
	Animal
	// Constellation is indexed by month, Aries first.
	Constellation
	// Season is indexed 0..3, spring first.
	Season
	// Solstice is indexed 0..3, vernal equinox first.
	Solstice
	// Suffix is indexed by the day of the month.
	Suffix

	numCategories
)

var categoryNames = [...]string{
	DayShort:      "day short name",
	DayFull:       "day full name",
	MonthShort:    "month short name",
	MonthFull:     "month full name",
	MeridiemShort: "meridiem short name",
	MeridiemFull:  "meridiem full name",
	Animal:        "animal",
	Constellation: "constellation",
	Season:        "season",
	Solstice:      "solstice",
	Suffix:        "suffix",
}

// String implements fmt.Stringer.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Language is a language with a complete set of tables.
type Language int

const (
	English Language = iota
	Persian

	numLanguages
)

// ErrUnsupported is returned by Parse for well-formed tags without tables.
var ErrUnsupported = errors.New("unsupported language")

var languageTags = [...]language.Tag{
	English: language.AmericanEnglish,
	Persian: language.MustParse("fa-IR"),
}

// String returns the canonical configuration name of l, like "fa_IR".
func (l Language) String() string {
	if l < 0 || l >= numLanguages {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return strings.ReplaceAll(languageTags[l].String(), "-", "_")
}

// Tag returns the BCP 47 tag of l.
func (l Language) Tag() language.Tag {
	return languageTags[l]
}

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{English, Persian}
}

// Parse returns the Language for a tag like "fa_IR", "fa-IR" or "en". Only
// the base language is significant.
func Parse(s string) (Language, error) {
	if s == "" {
		return 0, errors.New("empty language tag")
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return 0, fmt.Errorf("parse language %q: %w", s, err)
	}
	base, _ := tag.Base()
	for l, t := range languageTags {
		if b, _ := t.Base(); b == base {
			return Language(l), nil
		}
	}
	return 0, fmt.Errorf("language %q: %w", s, ErrUnsupported)
}

// Lookup returns the word for index in category c and language l. Cyclic
// categories (days, months, animals, constellations, seasons) wrap the index
// around. An index outside the range of any other category yields "".
func Lookup(c Category, index int, l Language) string {
	if l < 0 || l >= numLanguages || c < 0 || c >= numCategories {
		return ""
	}
	if c == Suffix {
		return suffix(index, l)
	}
	table := tables[l][c]
	switch c {
	case DayShort, DayFull, MonthShort, MonthFull, Animal, Constellation, Season:
		return table[mod(index, len(table))]
	}
	if index < 0 || index >= len(table) {
		return ""
	}
	return table[index]
}

// Names returns a copy of the table for c in l. For Suffix it returns nil.
func Names(c Category, l Language) []string {
	if l < 0 || l >= numLanguages || c < 0 || c >= numCategories || c == Suffix {
		return nil
	}
	return append([]string(nil), tables[l][c]...)
}

func suffix(day int, l Language) string {
	if l == Persian {
		return "ام"
	}
	if n := day % 100; n >= 11 && n <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

var tables = [numLanguages][numCategories][]string{
	English: {
		DayShort:      {"Sat", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri"},
		DayFull:       {"Saturday", "Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		MonthShort:    {"Far", "Ord", "Kho", "Tir", "Mor", "Sha", "Meh", "Aba", "Aza", "Dey", "Bah", "Esf"},
		MonthFull:     {"Farvardin", "Ordibehesht", "Khordad", "Tir", "Mordad", "Shahrivar", "Mehr", "Aban", "Azar", "Dey", "Bahman", "Esfand"},
		MeridiemShort: {"AM", "PM"},
		MeridiemFull:  {"Ante Meridiem", "Post Meridiem"},
		Animal:        {"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"},
		Constellation: {"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo", "Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces"},
		Season:        {"Spring", "Summer", "Autumn", "Winter"},
		Solstice:      {"Vernal Equinox", "Summer Solstice", "Autumnal Equinox", "Winter Solstice"},
	},
	Persian: {
		DayShort:      {"ش", "ی", "د", "س", "چ", "پ", "ج"},
		DayFull:       {"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه"},
		MonthShort:    {"فر", "ار", "خر", "تی", "مر", "شه", "مه", "آب", "آذ", "دی", "به", "اس"},
		MonthFull:     {"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور", "مهر", "آبان", "آذر", "دی", "بهمن", "اسفند"},
		MeridiemShort: {"ق.ظ", "ب.ظ"},
		MeridiemFull:  {"قبل از ظهر", "بعد از ظهر"},
		Animal:        {"موش", "گاو", "پلنگ", "خرگوش", "نهنگ", "مار", "اسب", "گوسفند", "میمون", "مرغ", "سگ", "خوک"},
		Constellation: {"حمل", "ثور", "جوزا", "سرطان", "اسد", "سنبله", "میزان", "عقرب", "قوس", "جدی", "دلو", "حوت"},
		Season:        {"بهار", "تابستان", "پاییز", "زمستان"},
		Solstice:      {"اعتدال بهاری", "انقلاب تابستانی", "اعتدال پاییزی", "انقلاب زمستانی"},
	},
}
