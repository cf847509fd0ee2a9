// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package params is a model of a debug panel: folders of numeric sliders,
// each bound two-way to a live float32 property of the scene.
// Sliders clamp and snap what they write, fire change callbacks,
// and can be saved to and restored from TOML or YAML presets.
// Package paramscore shows a panel as GUI widgets.
package params

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"cogentcore.org/core/math32"
)

// ErrUnknownSlider is returned for preset keys that match no slider.
var ErrUnknownSlider = errors.New("params: unknown slider")

// Slider is a numeric control bound to a float32 property.
type Slider struct {
	Label string

	Min  float32
	Max  float32
	Step float32

	ptr      *float32
	folder   *Folder
	ranged   bool
	onChange []func(v float32)
}

// Range sets the slider bounds.
func (s *Slider) Range(min, max float32) *Slider {
	s.Min, s.Max = min, max
	s.ranged = true
	return s
}

// SetStep sets the increment values snap to, relative to Min.
// Zero disables snapping.
func (s *Slider) SetStep(step float32) *Slider {
	s.Step = step
	return s
}

// OnChange adds a function called with the new value after every change.
func (s *Slider) OnChange(fn func(v float32)) *Slider {
	s.onChange = append(s.onChange, fn)
	return s
}

// Ranged returns whether bounds were set.
func (s *Slider) Ranged() bool {
	return s.ranged
}

// Ptr returns the bound property.
func (s *Slider) Ptr() *float32 {
	return s.ptr
}

// Get returns the live value of the property.
func (s *Slider) Get() float32 {
	return *s.ptr
}

// Constrain returns v clamped to the range and snapped to the step.
func (s *Slider) Constrain(v float32) float32 {
	if s.Step > 0 {
		v = snap(v, s.Min, s.Step)
	}
	if s.ranged {
		v = math32.Clamp(v, s.Min, s.Max)
	}
	return v
}

// snap rounds v to the nearest min + k*step. Steps with an integral
// reciprocal, such as 0.001, divide by the reciprocal so that decimal
// values come out exact.
func snap(v, min, step float32) float32 {
	d := float64(v - min)
	inv := 1 / float64(step)
	if ri := math.Round(inv); math.Abs(inv-ri) < 1e-3 {
		return min + float32(math.Round(d*ri)/ri)
	}
	return min + float32(math.Round(d/float64(step))*float64(step))
}

// Set constrains v, writes it to the property, and fires the change
// callbacks. It returns the value written.
func (s *Slider) Set(v float32) float32 {
	v = s.Constrain(v)
	*s.ptr = v
	s.Changed()
	return v
}

// Changed fires the change callbacks with the current value.
// It is called after the property was written by someone else,
// such as a bound widget.
func (s *Slider) Changed() {
	v := *s.ptr
	for _, fn := range s.onChange {
		fn(v)
	}
}

// Key returns the slash-separated path of the slider:
// its folder titles and its label.
func (s *Slider) Key() string {
	if p := s.folder.Path(); p != "" {
		return p + "/" + s.Label
	}
	return s.Label
}

// Folder is a titled group of sliders and sub-folders.
type Folder struct {
	Title   string
	Folders []*Folder
	Sliders []*Slider

	parent *Folder
}

// AddFolder adds a sub-folder.
func (f *Folder) AddFolder(title string) *Folder {
	sub := &Folder{Title: title, parent: f}
	f.Folders = append(f.Folders, sub)
	return sub
}

// Add adds a slider bound to ptr.
func (f *Folder) Add(ptr *float32, label string) *Slider {
	s := &Slider{Label: label, ptr: ptr, folder: f}
	f.Sliders = append(f.Sliders, s)
	return s
}

// Path returns the slash-separated titles from below the root to f.
func (f *Folder) Path() string {
	if f.parent == nil {
		return ""
	}
	if pp := f.parent.Path(); pp != "" {
		return pp + "/" + f.Title
	}
	return f.Title
}

// Walk calls fn on every slider of f and its sub-folders, depth first.
func (f *Folder) Walk(fn func(s *Slider)) {
	for _, s := range f.Sliders {
		fn(s)
	}
	for _, sub := range f.Folders {
		sub.Walk(fn)
	}
}

// Panel is a debug panel: a root folder plus display settings.
type Panel struct {
	*Folder

	// Width is the preferred width of the panel in dots.
	Width float32

	defaults Preset
	frozen   bool
}

// NewPanel returns an empty panel.
func NewPanel(title string, width float32) *Panel {
	return &Panel{Folder: &Folder{Title: title}, Width: width}
}

// Slider returns the slider with the given key, or nil.
func (p *Panel) Slider(key string) *Slider {
	var found *Slider
	p.Walk(func(s *Slider) {
		if found == nil && s.Key() == key {
			found = s
		}
	})
	return found
}

// Sliders returns all sliders in display order.
func (p *Panel) Sliders() []*Slider {
	var ss []*Slider
	p.Walk(func(s *Slider) { ss = append(ss, s) })
	return ss
}

// Values returns the live values keyed by slider key.
func (p *Panel) Values() map[string]float32 {
	m := map[string]float32{}
	p.Walk(func(s *Slider) { m[s.Key()] = s.Get() })
	return m
}

// Apply sets every slider named in values. Unknown keys are reported
// together as [ErrUnknownSlider] after the known ones are applied.
func (p *Panel) Apply(values map[string]float32) error {
	var errs []error
	for k, v := range values {
		s := p.Slider(k)
		if s == nil {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownSlider, k))
			continue
		}
		s.Set(v)
	}
	return errors.Join(errs...)
}

// Freeze records the current values as the defaults that [Panel.Reset]
// returns to. It is called once the lesson has built the panel.
func (p *Panel) Freeze() {
	p.defaults = Preset{Title: p.Title, Values: p.Values()}
	p.frozen = true
	slog.Debug("params: panel frozen", "panel", p.Title, "sliders", len(p.defaults.Values))
}

// Reset restores the values recorded by [Panel.Freeze].
func (p *Panel) Reset() error {
	if !p.frozen {
		return errors.New("params: panel was not frozen")
	}
	snap, err := p.Snapshot()
	if err != nil {
		return err
	}
	return p.Apply(snap.Values)
}

// String returns the panel as indented lines of folder titles
// and slider key = value pairs.
func (p *Panel) String() string {
	var b strings.Builder
	var walk func(f *Folder, depth int)
	walk = func(f *Folder, depth int) {
		ind := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%s%s\n", ind, f.Title)
		for _, s := range f.Sliders {
			fmt.Fprintf(&b, "%s  %s = %g\n", ind, s.Label, s.Get())
		}
		for _, sub := range f.Folders {
			walk(sub, depth+1)
		}
	}
	walk(p.Folder, 0)
	return b.String()
}
