// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonih.org/shdate"
)

// clock is Farvardin 1 1403, 15:04:05.123 UTC.
var clock = time.Date(2024, time.March, 20, 15, 4, 5, 123e6, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cal, err := shdate.New(shdate.Config{
		TimeZone:       "UTC",
		Language:       "en_US",
		FirstDayOfWeek: 1,
	}, shdate.WithClock(func() time.Time { return clock }))
	require.NoError(t, err)
	return New(cal, Opts{Version: "test"}, nil)
}

func do(t *testing.T, s *Server, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	var body map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

func TestServer_Convert(t *testing.T) {
	s := newTestServer(t)

	t.Run("gregorian", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?gregorian=2024-03-20", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1403-01-01", body["solar"])
		assert.Equal(t, "2024-03-20", body["gregorian"])
		assert.Equal(t, "Wednesday", body["weekday"])
		assert.InDelta(t, 0, body["year_day"], 0)
		assert.Equal(t, true, body["leap"])
	})

	t.Run("solar", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?solar=1402-12-29", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1402-12-29", body["solar"])
		assert.Equal(t, "2024-03-19", body["gregorian"])
		assert.Equal(t, "Tuesday", body["weekday"])
		assert.InDelta(t, 364, body["year_day"], 0)
		assert.Equal(t, false, body["leap"])
	})

	t.Run("invalid solar", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?solar=1402-12-30", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid solar date", body["error"])
	})

	t.Run("invalid gregorian", func(t *testing.T) {
		w, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?gregorian=20/03/2024", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("year out of range", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?solar=999999999999999999-01-01", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid solar date", body["error"])

		w, body = do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert?gregorian=0001-01-01", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid gregorian date", body["error"])
	})

	t.Run("missing date", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/convert", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "one of gregorian or solar is required", body["error"])
	})
}

func TestServer_Parse(t *testing.T) {
	s := newTestServer(t)

	t.Run("lenient", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/parse?q=1403/01/15+12:30+xyz", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2024-04-03T12:30:00Z", body["time"])
		assert.Equal(t, "1403-01-15", body["solar"])
		assert.Equal(t, "12:30:00", body["clock"])
		assert.Equal(t, true, body["recognized"])
		assert.Equal(t, []any{"xyz"}, body["unknown"])
		assert.NotEmpty(t, body["tokens"])
	})

	t.Run("nothing recognized", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/parse?q=garbage", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["recognized"])
		assert.Equal(t, "2024-03-20T15:04:05.123Z", body["time"])
	})

	t.Run("huge year", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/parse?q=999999999999999999", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, body["recognized"])
		assert.Equal(t, "2024-03-20T15:04:05.123Z", body["time"])
		assert.Equal(t, []any{"999999999999999999"}, body["unknown"])
	})

	t.Run("strict", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/parse?q=garbage&strict=true", http.NoBody))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "can't parse date", body["error"])
	})
}

func TestServer_Format(t *testing.T) {
	s := newTestServer(t)

	t.Run("current instant", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/format?layout=YY=MM=DD", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "YY=MM=DD", body["layout"])
		assert.Equal(t, []any{"1403", "00", "01"}, body["values"])
	})

	t.Run("default layout", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/format?q=1403/07/05+08:09:10", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shdate.DateTimeLayout, body["layout"])
		assert.Equal(t, []any{"1403", "06", "05", "08", "09", "10"}, body["values"])
	})

	t.Run("text layout", func(t *testing.T) {
		w, body := do(t, s, httptest.NewRequest(http.MethodGet, "/api/v1/format?layout=dfn=dd=mfn=yy", http.NoBody))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"Wednesday", "1", "Farvardin", "1403"}, body["values"])
	})
}

func TestServer_Batch(t *testing.T) {
	s := newTestServer(t)

	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/batch",
			strings.NewReader(`{"times":["2024-03-20T00:00:00Z","2025-03-21T00:00:00Z","2024-03-19T23:00:00Z"]}`))
		w, body := do(t, s, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{"1403-01-01", "1404-01-01", "1402-12-29"}, body["dates"])
	})

	t.Run("empty", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", strings.NewReader(`{"times":[]}`))
		w, body := do(t, s, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, body["dates"])
	})

	t.Run("before the first year", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/batch",
			strings.NewReader(`{"times":["2024-03-20T00:00:00Z","0001-01-01T00:00:00Z"]}`))
		w, body := do(t, s, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "batch conversion failed", body["error"])
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/batch", strings.NewReader(`{"times":`))
		w, body := do(t, s, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid request body", body["error"])
	})
}

func TestServer_Ping(t *testing.T) {
	s := newTestServer(t)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	b, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "pong", string(b))
	assert.Equal(t, "shdate", w.Header().Get("App-Name"))
	assert.Equal(t, "test", w.Header().Get("App-Version"))
}
