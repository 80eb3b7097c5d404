// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shdate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// BatchToSolar converts every instant of ts to its solar date in the
// calendar's time zone. It stops early if ctx is done.
func (c *Calendar) BatchToSolar(ctx context.Context, ts []time.Time) ([]Date, error) {
	out := make([]Date, len(ts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.workers, 1))
	for i, t := range ts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = FromTime(t.In(c.loc))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// BatchParse parses every string of ss with a lenient Parser, relative to
// a single reading of the clock.
func (c *Calendar) BatchParse(ctx context.Context, ss []string) ([]Result, error) {
	return Parser{Calendar: c}.ParseAll(ctx, ss, time.Time{})
}

// ParseAll parses every string of ss relative to ref, concurrently. The
// first error stops the remaining work.
func (p Parser) ParseAll(ctx context.Context, ss []string, ref time.Time) ([]Result, error) {
	c := p.Calendar
	if ref.IsZero() {
		ref = c.clock()
	}
	out := make([]Result, len(ss))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.workers, 1))
	for i, s := range ss {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := p.Parse(s, ref)
			if err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
