// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"strings"
	"time"

	"gonih.org/shdate/internal/cache"
)

type zoneResult struct {
	loc *time.Location
	err error
}

// zones memoizes time.LoadLocation, which reads the zone database on every
// call.
var zones = cache.New(func(name string) zoneResult {
	loc, err := time.LoadLocation(name)
	return zoneResult{loc, err}
}, 64)

func loadZone(name string) (*time.Location, error) {
	r := zones.Get(name)
	return r.loc, r.err
}

// zoneAbbrs maps common zone abbreviations to their UTC offsets in minutes.
var zoneAbbrs = map[string]int{
	"ut":   0,
	"utc":  0,
	"gmt":  0,
	"z":    0,
	"irst": 3*60 + 30,
	"irdt": 4*60 + 30,
	"est":  -5 * 60,
	"edt":  -4 * 60,
	"cst":  -6 * 60,
	"cdt":  -5 * 60,
	"mst":  -7 * 60,
	"mdt":  -6 * 60,
	"pst":  -8 * 60,
	"pdt":  -7 * 60,
}

// zoneAbbr returns the offset in minutes of a zone abbreviation.
func zoneAbbr(s string) (int, bool) {
	off, ok := zoneAbbrs[strings.ToLower(s)]
	return off, ok
}
