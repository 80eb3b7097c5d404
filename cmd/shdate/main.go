// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command shdate converts, formats and parses solar Hijri dates and serves
// them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"gonih.org/shdate"
	"gonih.org/shdate/internal/config"
	"gonih.org/shdate/server"
	"gonih.org/shdate/words"

	_ "time/tzdata"
)

// Opts with all CLI options
type Opts struct {
	Config   string `short:"c" long:"config" env:"SHDATE_CONFIG" description:"configuration file"`
	TimeZone string `long:"tz" env:"SHDATE_TZ" description:"time zone, overrides the configuration"`
	Lang     string `long:"lang" env:"SHDATE_LANG" description:"language of names (fa_IR or en_US), overrides the configuration"`
	FirstDay int    `long:"first-day" description:"first day of the week, 1 (Saturday) to 7 (Friday)"`

	Convert ConvertCmd `command:"convert" description:"convert dates between the Gregorian and the solar calendar"`
	Format  FormatCmd  `command:"format" description:"format a date with a layout"`
	Parse   ParseCmd   `command:"parse" description:"resolve a free-form date string"`
	Cal     CalCmd     `command:"cal" description:"print a month"`
	Serve   ServeCmd   `command:"serve" description:"run the HTTP service"`
	Schema  SchemaCmd  `command:"schema" description:"write the JSON schema of the configuration file"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// ConvertCmd converts dates.
type ConvertCmd struct {
	Gregorian bool `short:"g" long:"gregorian" description:"arguments are Gregorian dates (default)"`
	Solar     bool `short:"s" long:"solar" description:"arguments are solar dates like 1403-01-01"`
	Args      struct {
		Dates []string `positional-arg-name:"DATE" required:"1"`
	} `positional-args:"yes"`
}

// FormatCmd formats a date.
type FormatCmd struct {
	Layout string `short:"l" long:"layout" default:"dfn=dd=mfn=yy" description:"layout tokens separated by = or spaces"`
	Args   struct {
		Text []string `positional-arg-name:"DATE"`
	} `positional-args:"yes"`
}

// ParseCmd resolves a date string.
type ParseCmd struct {
	Strict bool `long:"strict" description:"fail on unrecognized text"`
	Args   struct {
		Text []string `positional-arg-name:"TEXT" required:"1"`
	} `positional-args:"yes"`
}

// CalCmd prints a month.
type CalCmd struct {
	Args struct {
		Year  int `positional-arg-name:"YEAR"`
		Month int `positional-arg-name:"MONTH"`
	} `positional-args:"yes"`
}

// ServeCmd runs the HTTP service.
type ServeCmd struct {
	Listen string `short:"l" long:"listen" description:"listen address, overrides the configuration"`
}

// SchemaCmd writes the configuration schema.
type SchemaCmd struct {
	Args struct {
		File string `positional-arg-name:"FILE"`
	} `positional-args:"yes"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)
	if opts.NoColor {
		color.NoColor = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	cmd := ""
	if parser.Active != nil {
		cmd = parser.Active.Name
	}
	err := run(ctx, opts, cmd, os.Stdout)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run executes the command cmd, writing its output to out.
func run(ctx context.Context, opts Opts, cmd string, out io.Writer) error {
	if cmd == "schema" {
		return writeSchema(opts.Schema.Args.File, out)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cal, err := shdate.New(cfg.Calendar, shdate.WithLogger(lgr.Default()), shdate.WithWorkers(cfg.Server.Workers))
	if err != nil {
		return fmt.Errorf("failed to create calendar: %w", err)
	}

	switch cmd {
	case "convert":
		return convert(cal, opts.Convert, out)
	case "format":
		return format(cal, opts.Format, out)
	case "parse":
		return parse(cal, opts.Parse, out)
	case "cal":
		return printMonth(cal, opts.Cal, out)
	case "serve":
		if opts.Serve.Listen != "" {
			cfg.Server.Listen = opts.Serve.Listen
		}
		srv := server.New(cal, server.Opts{
			Listen:  cfg.Server.Listen,
			Timeout: cfg.Server.Timeout,
			Version: revision,
			Debug:   opts.Debug,
		}, lgr.Default())
		return srv.Run(ctx)
	case "":
		_, err := fmt.Fprintln(out, strings.Join(cal.Now().Format(shdate.TextLayout), " "))
		return err
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// loadConfig reads the configuration file, if any, and applies the command
// line overrides.
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.TimeZone != "" {
		cfg.Calendar.TimeZone = opts.TimeZone
	}
	if opts.Lang != "" {
		cfg.Calendar.Language = opts.Lang
	}
	if opts.FirstDay != 0 {
		cfg.Calendar.FirstDayOfWeek = opts.FirstDay
	}
	return cfg, nil
}

func convert(cal *shdate.Calendar, cmd ConvertCmd, out io.Writer) error {
	if cmd.Gregorian && cmd.Solar {
		return errors.New("--gregorian and --solar are mutually exclusive")
	}
	for _, arg := range cmd.Args.Dates {
		if cmd.Solar {
			d, err := shdate.ParseDate(arg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", d, d.Time(0, 0, 0, 0, time.UTC).Format(time.DateOnly))
			continue
		}
		t, err := cal.ParseGregorian(arg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", t.Time().Format(time.DateOnly), t.Date())
	}
	return nil
}

func format(cal *shdate.Calendar, cmd FormatCmd, out io.Writer) error {
	t := cal.Now()
	if len(cmd.Args.Text) > 0 {
		res, err := cal.Parse(strings.Join(cmd.Args.Text, " "))
		if err != nil {
			return err
		}
		t = res.Time
	}
	_, err := fmt.Fprintln(out, strings.Join(t.Format(cmd.Layout), " "))
	return err
}

func parse(cal *shdate.Calendar, cmd ParseCmd, out io.Writer) error {
	p := shdate.Parser{Calendar: cal, Strict: cmd.Strict}
	res, err := p.Parse(strings.Join(cmd.Args.Text, " "), time.Time{})
	if err != nil {
		return err
	}
	for _, tok := range res.Fields.Tokens {
		log.Printf("[DEBUG] %v=%d %q", tok.Kind, tok.Value, tok.Text)
	}
	if !res.Recognized {
		log.Printf("[WARN] nothing recognized, showing the current time")
	}
	_, err = fmt.Fprintln(out, res.Time)
	return err
}

// printMonth prints a month grid, highlighting today.
func printMonth(cal *shdate.Calendar, cmd CalCmd, out io.Writer) error {
	today := cal.Today()
	year, month := today.Year, today.Month
	if cmd.Args.Year != 0 {
		year = cmd.Args.Year
	}
	if cmd.Args.Month != 0 {
		if cmd.Args.Month < 1 || cmd.Args.Month > 12 {
			return errors.New("month must be between 1 and 12")
		}
		month = shdate.Month(cmd.Args.Month - 1)
	}
	lang, first := cal.Language(), cal.FirstDayOfWeek()

	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", words.Lookup(words.MonthFull, int(month), lang), year)
	for i := range 7 {
		fmt.Fprintf(&b, "%4s", words.Lookup(words.DayShort, i+int(first), lang))
	}
	b.WriteByte('\n')

	col := shdate.DayOfWeek(year, month, 1, first)
	b.WriteString(strings.Repeat("    ", col))
	highlight := color.New(color.ReverseVideo).SprintFunc()
	for day := 1; day <= shdate.DaysInMonth(year, month); day++ {
		cell := fmt.Sprintf("%4d", day)
		if (shdate.Date{Year: year, Month: month, Day: day}) == today {
			cell = " " + highlight(fmt.Sprintf("%3d", day))
		}
		b.WriteString(cell)
		if col++; col == 7 {
			b.WriteByte('\n')
			col = 0
		}
	}
	if col != 0 {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func writeSchema(file string, out io.Writer) error {
	data, err := config.Schema()
	if err != nil {
		return err
	}
	if file == "" {
		_, err = out.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(file, data, 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		return fmt.Errorf("write schema: %w", err)
	}
	log.Printf("[INFO] schema written to %s", file)
	return nil
}

func setupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
