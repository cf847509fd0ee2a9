// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anim

import (
	"sync"
	"time"
)

// Clock accumulates elapsed time from frame deltas.
// It is driven by the GUI animation tick rather than the wall clock,
// so tests can step it deterministically.
type Clock struct {
	mu      sync.Mutex
	elapsed time.Duration
	paused  bool
}

// Advance adds dt to the elapsed time unless the clock is paused,
// and returns the new elapsed time in seconds.
func (c *Clock) Advance(dt time.Duration) float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused && dt > 0 {
		c.elapsed += dt
	}
	return float32(c.elapsed.Seconds())
}

// Elapsed returns the elapsed time in seconds.
func (c *Clock) Elapsed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(c.elapsed.Seconds())
}

// Reset sets the elapsed time back to zero.
func (c *Clock) Reset() {
	c.mu.Lock()
	c.elapsed = 0
	c.mu.Unlock()
}

// Pause stops the clock from advancing.
func (c *Clock) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

// Resume lets a paused clock advance again.
func (c *Clock) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

// Paused returns whether the clock is paused.
func (c *Clock) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}
