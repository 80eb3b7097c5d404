// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"fa_IR", Persian},
		{"fa-IR", Persian},
		{"fa", Persian},
		{"en_US", English},
		{"en-GB", English},
		{"en", English},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := Parse("de_DE")
		require.ErrorIs(t, err, ErrUnsupported)
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := Parse("not a tag!")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupported)
	})
	t.Run("empty", func(t *testing.T) {
		_, err := Parse("")
		require.Error(t, err)
	})
}

func TestLanguage(t *testing.T) {
	assert.Equal(t, "fa_IR", Persian.String())
	assert.Equal(t, "en_US", English.String())
	assert.Equal(t, "Language(7)", Language(7).String())
	assert.Equal(t, "fa-IR", Persian.Tag().String())
	assert.Equal(t, []Language{English, Persian}, Languages())

	for _, l := range Languages() {
		got, err := Parse(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got, "String of %v does not parse back", l)
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "Saturday", Lookup(DayFull, 0, English))
	assert.Equal(t, "جمعه", Lookup(DayFull, 6, Persian))
	assert.Equal(t, "Sat", Lookup(DayShort, 7, English), "days wrap around")
	assert.Equal(t, "Fri", Lookup(DayShort, -1, English), "days wrap around")
	assert.Equal(t, "Esfand", Lookup(MonthFull, 11, English))
	assert.Equal(t, "اسفند", Lookup(MonthFull, 11, Persian))
	assert.Equal(t, "Far", Lookup(MonthShort, 12, English))
	assert.Equal(t, "PM", Lookup(MeridiemShort, 1, English))
	assert.Equal(t, "", Lookup(MeridiemShort, 2, English), "meridiem does not wrap")
	assert.Equal(t, "Dragon", Lookup(Animal, 1408, English))
	assert.Equal(t, "Pisces", Lookup(Constellation, 11, English))
	assert.Equal(t, "Winter", Lookup(Season, 3, English))
	assert.Equal(t, "Autumnal Equinox", Lookup(Solstice, 2, English))
	assert.Equal(t, "", Lookup(Solstice, -1, English))
	assert.Equal(t, "", Lookup(numCategories, 0, English))
	assert.Equal(t, "", Lookup(DayFull, 0, Language(5)))
}

func TestSuffix(t *testing.T) {
	tests := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th", 12: "th", 13: "th", 21: "st", 22: "nd", 23: "rd", 30: "th", 31: "st"}
	for day, want := range tests {
		assert.Equal(t, want, Lookup(Suffix, day, English), "day %d", day)
		assert.Equal(t, "ام", Lookup(Suffix, day, Persian), "day %d", day)
	}
}

func TestNames(t *testing.T) {
	for _, l := range Languages() {
		assert.Len(t, Names(DayFull, l), 7)
		assert.Len(t, Names(MonthFull, l), 12)
		assert.Len(t, Names(Animal, l), 12)
		assert.Len(t, Names(Constellation, l), 12)
		assert.Len(t, Names(Season, l), 4)
		assert.Len(t, Names(Solstice, l), 4)
		assert.Len(t, Names(MeridiemFull, l), 2)
		assert.Nil(t, Names(Suffix, l))
	}

	names := Names(MonthFull, English)
	names[0] = "changed"
	assert.Equal(t, "Farvardin", Lookup(MonthFull, 0, English), "Names must return a copy")
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "month full name", MonthFull.String())
	assert.Equal(t, "Category(-1)", Category(-1).String())
}
