// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paramscore shows a [params.Panel] as core widgets:
// one titled frame per folder and one row per slider.
package paramscore

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/icons"
	"cogentcore.org/core/styles"
	"github.com/gloamlab/gloam/params"
)

// Options configures the widgets built for a panel.
type Options struct {
	// Changed is called after any slider wrote its property.
	Changed func()

	// PresetFile, if set, adds a button that saves the panel to it.
	PresetFile string
}

// Build adds the widgets for p to parent and returns the outer frame.
func Build(parent core.Widget, p *params.Panel, opts Options) *core.Frame {
	fr := core.NewFrame(parent)
	fr.SetName("params")
	fr.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Min.X.Dp(p.Width)
		s.Overflow.Y = styles.OverflowAuto
	})
	addFolder(fr, p.Folder, opts, true)

	tb := core.NewFrame(fr)
	tb.SetName("actions")
	reset := core.NewButton(tb).SetText("Reset").SetIcon(icons.Refresh)
	reset.SetTooltip("Restore the values the lesson started with")
	reset.OnClick(func(e events.Event) {
		if errors.Log(p.Reset()) != nil {
			return
		}
		fr.Update()
		if opts.Changed != nil {
			opts.Changed()
		}
	})
	if opts.PresetFile != "" {
		save := core.NewButton(tb).SetText("Save preset").SetIcon(icons.Save)
		save.SetTooltip("Save the current values to " + opts.PresetFile)
		save.OnClick(func(e events.Event) {
			if err := p.SaveFile(opts.PresetFile); err != nil {
				core.ErrorSnackbar(save, err, "Error saving preset")
				return
			}
			core.MessageSnackbar(save, "Saved "+opts.PresetFile)
		})
	}
	return fr
}

func addFolder(parent core.Widget, f *params.Folder, opts Options, root bool) {
	ff := core.NewFrame(parent)
	ff.SetName("folder-" + f.Title)
	ff.Styler(func(s *styles.Style) {
		s.Direction = styles.Column
		s.Grow.Set(1, 0)
	})
	title := core.NewText(ff).SetText(f.Title)
	if root {
		title.SetType(core.TextTitleMedium)
	} else {
		title.SetType(core.TextTitleSmall)
	}
	for _, s := range f.Sliders {
		addSlider(ff, s, opts)
	}
	for _, sub := range f.Folders {
		addFolder(ff, sub, opts, false)
	}
}

func addSlider(parent core.Widget, s *params.Slider, opts Options) {
	row := core.NewFrame(parent)
	row.SetName("slider-" + s.Key())
	row.Styler(func(s *styles.Style) {
		s.Align.Items = styles.Center
		s.Grow.Set(1, 0)
	})
	core.NewText(row).SetText(s.Label).Styler(func(st *styles.Style) {
		st.Min.X.Em(8)
	})
	sr := core.NewSlider(row)
	if s.Ranged() {
		sr.SetMin(s.Min).SetMax(s.Max)
	}
	if s.Step > 0 {
		sr.SetStep(s.Step).SetEnforceStep(true)
	}
	sr.Styler(func(st *styles.Style) {
		st.Grow.Set(1, 0)
	})
	core.Bind(s.Ptr(), sr)
	val := core.NewText(row)
	val.Updater(func() {
		val.SetText(fmt.Sprintf("%.3g", s.Get()))
	})
	commit := func(e events.Event) {
		s.Set(sr.Value)
		slog.Debug("params: slider", "key", s.Key(), "value", s.Get())
		val.Update()
		if opts.Changed != nil {
			opts.Changed()
		}
	}
	sr.OnInput(commit)
	sr.OnChange(commit)
}
