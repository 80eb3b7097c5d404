// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-playground/validator/v10"

	"gonih.org/shdate/words"
)

// Config configures a [Calendar].
type Config struct {
	// TimeZone is an IANA time zone name, like "Asia/Tehran" or "UTC".
	TimeZone string `yaml:"time_zone" json:"time_zone" validate:"required,timezone" jsonschema:"default=Asia/Tehran,description=IANA time zone the calendar fields are computed in"`
	// Language selects the word table, like "fa_IR" or "en_US".
	Language string `yaml:"language" json:"language" validate:"required,language" jsonschema:"default=fa_IR,description=language of day and month names (fa_IR or en_US)"`
	// FirstDayOfWeek is the first day of the week, from 1 (Saturday) to 7
	// (Friday).
	FirstDayOfWeek int `yaml:"first_day_of_week" json:"first_day_of_week" validate:"min=1,max=7" jsonschema:"default=1,minimum=1,maximum=7,description=first day of the week from 1 (Saturday) to 7 (Friday)"`
	// ServerTimeDiff is added to every reading of the clock.
	ServerTimeDiff time.Duration `yaml:"server_time_diff" json:"server_time_diff" jsonschema:"description=offset added to every reading of the clock"`
}

// DefaultConfig returns the configuration used in Iran: the Asia/Tehran time
// zone, Persian names and weeks starting on Saturday.
func DefaultConfig() Config {
	return Config{
		TimeZone:       "Asia/Tehran",
		Language:       words.Persian.String(),
		FirstDayOfWeek: 1,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		_, err := words.Parse(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks c. The returned error is a *ConfigError.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return &ConfigError{Err: err}
	}
	return nil
}

// ConfigError describes an invalid Config.
type ConfigError struct {
	Err error
}

// Error returns a description of every invalid field.
func (e *ConfigError) Error() string {
	var verrs validator.ValidationErrors
	if !errors.As(e.Err, &verrs) {
		return "invalid calendar config: " + e.Err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "timezone":
			msgs = append(msgs, fmt.Sprintf("unknown time zone %q", fe.Value()))
		case "language":
			msgs = append(msgs, fmt.Sprintf("no word table for language %q", fe.Value()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s %v is not between 1 and 7", fe.Field(), fe.Value()))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return "invalid calendar config: " + strings.Join(msgs, "; ")
}

// Unwrap returns the underlying validation error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// A Calendar binds the settings needed to read solar fields from an instant
// and to resolve date strings: a time zone, the language of names, the first
// day of the week and a clock. A Calendar is immutable and safe for
// concurrent use.
type Calendar struct {
	cfg   Config
	loc   *time.Location
	lang  words.Language
	first Weekday
	now   func() time.Time
	log   lgr.L

	workers int
}

// An Option customizes a Calendar.
type Option func(*Calendar)

// WithClock replaces time.Now as the clock of the calendar.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) { c.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l lgr.L) Option {
	return func(c *Calendar) { c.log = l }
}

// WithWorkers bounds the number of goroutines used by the batch methods. The
// default is runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(c *Calendar) {
		if n > 0 {
			c.workers = n
		}
	}
}

// New returns a Calendar for cfg. Invalid settings are reported as a
// *ConfigError.
func New(cfg Config, opts ...Option) (*Calendar, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	loc, err := loadZone(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone: %w", err)
	}
	lang, err := words.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("load language: %w", err)
	}
	c := &Calendar{
		cfg:   cfg,
		loc:   loc,
		lang:  lang,
		first: Weekday(cfg.FirstDayOfWeek - 1),
		now:   time.Now,
		log:   lgr.NoOp,

		workers: runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(c)
	}
	c.log.Logf("[DEBUG] calendar in %s, language %s, weeks start on %v", loc, lang, c.first)
	return c, nil
}

// Config returns the configuration c was created with.
func (c *Calendar) Config() Config { return c.cfg }

// Location returns the time zone of c.
func (c *Calendar) Location() *time.Location { return c.loc }

// Language returns the language of names rendered by c.
func (c *Calendar) Language() words.Language { return c.lang }

// FirstDayOfWeek returns the first day of the week.
func (c *Calendar) FirstDayOfWeek() Weekday { return c.first }

// clock reads the clock, adjusted by the server time difference.
func (c *Calendar) clock() time.Time {
	return c.now().Add(c.cfg.ServerTimeDiff)
}

// Now returns the current instant.
func (c *Calendar) Now() Time {
	return c.Of(c.clock())
}

// Today returns the current solar date in the calendar's time zone.
func (c *Calendar) Today() Date {
	return c.Now().Date()
}

// Of returns t as a Time of c, in c's time zone.
func (c *Calendar) Of(t time.Time) Time {
	return Time{t: t.In(c.loc), cal: c}
}

// UnixMilli returns the Time of the given Unix time in milliseconds.
func (c *Calendar) UnixMilli(msec int64) Time {
	return c.Of(time.UnixMilli(msec))
}

// Date returns the Time of the given solar date and clock in c's time zone.
// Like [time.Date], all values may be outside their usual ranges and are
// normalized.
func (c *Calendar) Date(year int, month Month, day, hour, min, sec, nsec int) Time {
	gy, gm, gd := SolarToGregorian(year, month, day)
	return Time{t: time.Date(gy, gm, gd, hour, min, sec, nsec, c.loc), cal: c}
}
