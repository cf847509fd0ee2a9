// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package viewport keeps the camera and render target of a scene
// in step with the size of the widget that shows it,
// and toggles fullscreen display.
package viewport

import (
	"image"
	"log/slog"

	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/system"
	"cogentcore.org/core/xyz"
)

// MaxPixelRatio is the largest device pixel ratio rendered at.
// Denser displays are rendered at this ratio and scaled up.
const MaxPixelRatio = 2

// Sizes is the size of a viewport in logical units and its pixel ratio.
type Sizes struct {
	Width  int
	Height int

	// PixelRatio is the number of device pixels per logical unit.
	PixelRatio float32
}

// Aspect returns width over height, or 1 if the height is zero.
func (s Sizes) Aspect() float32 {
	if s.Height == 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Pixels returns the render target size in device pixels,
// at the pixel ratio clamped to [MaxPixelRatio].
func (s Sizes) Pixels() image.Point {
	pr := ClampPixelRatio(s.PixelRatio, MaxPixelRatio)
	return image.Point{
		X: int(math32.Round(float32(s.Width) * pr)),
		Y: int(math32.Round(float32(s.Height) * pr)),
	}
}

// ClampPixelRatio returns min(dpr, max), and never less than 1.
func ClampPixelRatio(dpr, max float32) float32 {
	return math32.Max(math32.Min(dpr, max), 1)
}

// Tracker remembers the last viewport size and applies changes
// to a scene.
type Tracker struct {
	// Scene, if set, has its camera aspect and size updated on changes.
	Scene *xyz.Scene

	// OnResize functions are called after every change.
	OnResize []func(s Sizes)

	current Sizes
}

// Current returns the last size passed to [Tracker.Update].
func (t *Tracker) Current() Sizes {
	return t.current
}

// Update records s and returns whether it differs from the last size.
// On a change it updates the scene and calls the resize functions.
func (t *Tracker) Update(s Sizes) bool {
	if s == t.current {
		return false
	}
	t.current = s
	if t.Scene != nil {
		Apply(t.Scene, s)
	}
	for _, fn := range t.OnResize {
		fn(s)
	}
	slog.Debug("viewport: resized", "width", s.Width, "height", s.Height, "pixelRatio", s.PixelRatio)
	return true
}

// Apply sets the camera aspect and the render size of sc from s.
func Apply(sc *xyz.Scene, s Sizes) {
	sc.Camera.Aspect = s.Aspect()
	sc.Camera.UpdateMatrix()
	sc.SetSize(s.Pixels())
}

// Fullscreener is a display that can switch to and from fullscreen.
// [core.Scene] is one.
type Fullscreener interface {
	IsFullscreen() bool
	SetFullscreen(fullscreen bool)
}

// Toggle switches f to the other display mode and returns
// whether it is now fullscreen.
func Toggle(f Fullscreener) bool {
	fs := !f.IsFullscreen()
	f.SetFullscreen(fs)
	slog.Debug("viewport: fullscreen", "on", fs)
	return fs
}

// ToggleOnDoubleClick makes a double click on w toggle fullscreen
// for the window that shows it.
func ToggleOnDoubleClick(w core.Widget) {
	wb := w.AsWidget()
	wb.OnDoubleClick(func(e events.Event) {
		Toggle(wb.Scene)
		e.SetHandled()
	})
}

// SizesOf returns the current size of w in logical units.
func SizesOf(w core.Widget) Sizes {
	wb := w.AsWidget()
	sz := wb.Geom.ContentBBox.Size()
	dpr := float32(1)
	if system.TheApp != nil && system.TheApp.NScreens() > 0 {
		dpr = math32.Max(system.TheApp.Screen(0).DevicePixelRatio, 1)
	}
	return Sizes{
		Width:      int(float32(sz.X) / dpr),
		Height:     int(float32(sz.Y) / dpr),
		PixelRatio: dpr,
	}
}
