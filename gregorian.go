// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"fmt"

	"github.com/araddon/dateparse"
)

// ParseGregorian parses free-form Gregorian text, like "March 20, 2024",
// "2024-03-20 10:00" or "03/20/2024", and returns it as a Time of c. Text
// without a zone is read in the calendar's time zone.
func (c *Calendar) ParseGregorian(s string) (Time, error) {
	t, err := dateparse.ParseIn(s, c.loc)
	if err != nil {
		return Time{}, fmt.Errorf("parse gregorian date %q: %w", s, err)
	}
	return c.Of(t), nil
}
