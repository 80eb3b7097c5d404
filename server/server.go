// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server exposes a [shdate.Calendar] as a JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"gonih.org/shdate"
)

// Opts configures a Server.
type Opts struct {
	Listen  string
	Timeout time.Duration
	Version string
	Debug   bool
}

// Server serves the calendar API.
type Server struct {
	cal  *shdate.Calendar
	opts Opts
	log  lgr.L

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance. A nil logger discards everything.
func New(cal *shdate.Calendar, opts Opts, l lgr.L) *Server {
	if l == nil {
		l = lgr.NoOp
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	s := &Server{
		cal:    cal,
		opts:   opts,
		log:    l,
		router: routegroup.New(http.NewServeMux()),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler of s.
func (s *Server) Handler() http.Handler { return s.router }

// Run starts the HTTP server and shuts it down gracefully once ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.log.Logf("[INFO] starting server on %s", s.opts.Listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              s.opts.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: s.opts.Timeout,
		WriteTimeout:      s.opts.Timeout,
		IdleTimeout:       s.opts.Timeout,
	}
	srv := s.httpServer
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		s.log.Logf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Logf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("shdate", "gonih.org", s.opts.Version))
	s.router.Use(rest.Ping)
	if s.opts.Debug {
		s.router.Use(logger.New(logger.Log(s.log), logger.Prefix("[DEBUG]")).Handler)
	}
	s.router.Use(rest.Recoverer(s.log))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /convert", s.convertHandler)
		r.HandleFunc("GET /parse", s.parseHandler)
		r.HandleFunc("GET /format", s.formatHandler)
		r.HandleFunc("POST /batch", s.batchHandler)
	})
}

var errDateRange = fmt.Errorf("date outside of the years %d to %d", shdate.MinYear, shdate.MaxYear)

// dateResponse describes a day in both calendars.
type dateResponse struct {
	Solar     shdate.Date `json:"solar"`
	Gregorian string      `json:"gregorian"`
	Weekday   string      `json:"weekday"`
	YearDay   int         `json:"year_day"`
	Leap      bool        `json:"leap"`
}

func newDateResponse(d shdate.Date) dateResponse {
	return dateResponse{
		Solar:     d,
		Gregorian: d.Time(0, 0, 0, 0, time.UTC).Format(time.DateOnly),
		Weekday:   d.Weekday().String(),
		YearDay:   d.YearDay(),
		Leap:      shdate.IsLeap(d.Year),
	}
}

// convertHandler converts ?gregorian=YYYY-MM-DD or ?solar=YYYY-MM-DD.
func (s *Server) convertHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("gregorian") != "":
		t, err := time.Parse(time.DateOnly, q.Get("gregorian"))
		if err != nil {
			rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, err, "invalid gregorian date")
			return
		}
		d := shdate.FromTime(t)
		if !d.IsValid() {
			rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, errDateRange, "invalid gregorian date")
			return
		}
		rest.RenderJSON(w, newDateResponse(d))
	case q.Get("solar") != "":
		d, err := shdate.ParseDate(q.Get("solar"))
		if err != nil {
			rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, err, "invalid solar date")
			return
		}
		rest.RenderJSON(w, newDateResponse(d))
	default:
		rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, errors.New("missing date"), "one of gregorian or solar is required")
	}
}

type tokenResponse struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
	Text  string `json:"text,omitempty"`
}

type parseResponse struct {
	Time       time.Time       `json:"time"`
	UnixMilli  int64           `json:"unix_milli"`
	Solar      shdate.Date     `json:"solar"`
	Clock      string          `json:"clock"`
	Recognized bool            `json:"recognized"`
	Tokens     []tokenResponse `json:"tokens"`
	Unknown    []string        `json:"unknown,omitempty"`
}

// parseHandler resolves ?q=, strictly if ?strict= is true.
func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	p := shdate.Parser{Calendar: s.cal, Strict: strict}
	res, err := p.Parse(r.URL.Query().Get("q"), time.Time{})
	if err != nil {
		rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, err, "can't parse date")
		return
	}
	if !res.Time.Date().IsValid() {
		rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, errDateRange, "can't parse date")
		return
	}
	resp := parseResponse{
		Time:       res.Time.Time(),
		UnixMilli:  res.Time.UnixMilli(),
		Solar:      res.Time.Date(),
		Clock:      res.Time.Time().Format(time.TimeOnly),
		Recognized: res.Recognized,
		Tokens:     make([]tokenResponse, 0, len(res.Fields.Tokens)),
		Unknown:    res.Fields.Unknown,
	}
	for _, t := range res.Fields.Tokens {
		resp.Tokens = append(resp.Tokens, tokenResponse{Kind: t.Kind.String(), Value: t.Value, Text: t.Text})
	}
	rest.RenderJSON(w, resp)
}

// formatHandler renders ?q= (the current instant if empty) with ?layout=.
func (s *Server) formatHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := s.cal.Now()
	if q.Get("q") != "" {
		res, err := s.cal.Parse(q.Get("q"))
		if err != nil {
			rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, err, "can't parse date")
			return
		}
		t = res.Time
	}
	layout := q.Get("layout")
	if layout == "" {
		layout = shdate.DateTimeLayout
	}
	rest.RenderJSON(w, rest.JSON{"layout": layout, "values": t.Format(layout)})
}

type batchRequest struct {
	Times []time.Time `json:"times"`
}

// batchHandler converts a list of RFC 3339 instants to solar dates.
func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, err, "invalid request body")
		return
	}
	dates, err := s.cal.BatchToSolar(r.Context(), req.Times)
	if err != nil {
		rest.SendErrorJSON(w, r, s.log, http.StatusInternalServerError, err, "batch conversion failed")
		return
	}
	for i, d := range dates {
		if !d.IsValid() {
			rest.SendErrorJSON(w, r, s.log, http.StatusBadRequest, fmt.Errorf("time %d: %w", i, errDateRange), "batch conversion failed")
			return
		}
	}
	rest.RenderJSON(w, rest.JSON{"dates": dates})
}
