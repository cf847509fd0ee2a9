// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lesson

import (
	"log/slog"
	"os"
	"time"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/xyz/xyzcore"
	"github.com/gloamlab/gloam/params"
	"github.com/gloamlab/gloam/params/paramscore"
	"github.com/gloamlab/gloam/viewport"
)

// Run shows l in a window with its debug panel and blocks until the
// window is closed. The configuration is validated before any window
// opens.
func Run(l Lesson, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir, err := cfg.AssetsDir()
	if err != nil {
		return err
	}

	b := core.NewBody("gloam").SetTitle(l.Title())
	sp := core.NewSplits(b)
	se := xyzcore.NewSceneEditor(sp)
	se.UpdateWidget()
	sw := se.SceneWidget()

	st, err := mount(se.SceneXYZ(), l, cfg, os.DirFS(dir))
	if err != nil {
		return err
	}
	defer st.Close()
	sc := st.Scene
	sc.SaveCamera("default")

	preset := cfg.Preset
	if preset == "" {
		preset = l.Name() + ".toml"
	}
	paramscore.Build(sp, st.Panel, paramscore.Options{
		Changed:    func() { sc.SetNeedsUpdate(); sw.NeedsRender() },
		PresetFile: preset,
	})
	sp.SetSplits(.75, .25)
	st.attach(sw)

	go func() {
		if err := st.Textures(); err != nil {
			slog.Warn("lesson: some textures fell back to placeholders", "err", err)
			return
		}
		slog.Info("lesson: textures loaded", "lesson", l.Name())
	}()

	if cfg.Preset != "" && cfg.Watch {
		go func() {
			err := params.Watch(st.Context(), cfg.Preset, func() {
				st.Update(func() {
					if err := st.Panel.LoadFile(cfg.Preset); err != nil {
						slog.Error("lesson: preset reload", "file", cfg.Preset, "err", err)
						return
					}
					slog.Debug("lesson: preset reloaded", "file", cfg.Preset)
				})
			})
			errors.Log(err)
		}()
	}

	tr := &viewport.Tracker{Scene: sc}
	viewport.ToggleOnDoubleClick(sw)

	sw.Animate(func(a *core.Animation) {
		if st.Closed() {
			a.Done = true
			return
		}
		tr.Update(viewport.SizesOf(sw))
		st.Step(st.Clock.Advance(frameTime(a.Dt)))
		sc.SetNeedsUpdate()
		sw.NeedsRender()
	})

	slog.Info("lesson: running", "lesson", l.Name())
	b.RunMainWindow()
	return nil
}

// frameTime converts an animation frame delta in milliseconds to a duration.
func frameTime(ms float32) time.Duration {
	return time.Duration(float64(ms) * float64(time.Millisecond))
}
