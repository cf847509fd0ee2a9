// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lesson mounts a lesson onto a 3D scene, drives its
// per-frame loop and tears it down again. [Mount] assembles a lesson
// headlessly; [Run] shows it in a window next to its debug panel.
package lesson

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"cogentcore.org/core/core"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/anim"
	"github.com/gloamlab/gloam/atmos"
	"github.com/gloamlab/gloam/lights"
	"github.com/gloamlab/gloam/params"
	"github.com/gloamlab/gloam/pbr"
	"github.com/gloamlab/gloam/shadows"
	"github.com/gloamlab/gloam/textures"
)

// Lesson is one self-contained scene with its lights, animation and
// debug panel.
type Lesson interface {
	// Name is the short name used on the command line.
	Name() string

	// Title is the human readable name.
	Title() string

	// Build adds the lesson to the stage.
	Build(st *Stage) error
}

// Stage is what a lesson is built onto: the scene and the services
// that keep it alive from frame to frame.
type Stage struct {
	Scene  *xyz.Scene
	Panel  *params.Panel
	Loader *textures.Loader
	Rig    *lights.Rig

	// Blobs and Fog are set by lessons that use them,
	// and are updated after the ticks of every step.
	Blobs *shadows.Blobs
	Fog   *atmos.Fog

	// Renderer is the renderer shadow configuration.
	Renderer lights.Renderer

	Config *Config
	Clock  anim.Clock

	// BakeSize is the size of baked material textures.
	BakeSize int

	ticks     []func(t float32)
	materials map[*pbr.Material]*binding
	widget    core.Widget
	ctx       context.Context
	cancel    context.CancelFunc

	// step serializes steps with headless updates.
	step sync.Mutex

	mu       sync.Mutex
	building bool
	queued   []func()
	closed   bool
}

// newStage returns an empty stage over sc loading textures from fsys.
func newStage(sc *xyz.Scene, cfg *Config, fsys fs.FS) (*Stage, error) {
	smt, err := cfg.ShadowMapType()
	if err != nil {
		return nil, err
	}
	st := &Stage{
		Scene:    sc,
		Panel:    params.NewPanel("Controls", 300),
		Loader:   textures.NewLoader(fsys, cfg.Workers),
		Rig:      lights.NewRig(sc),
		Renderer: lights.Renderer{Enabled: true, Type: smt},
		Config:   cfg,
		BakeSize: 512,
		building: true,
	}
	st.Loader.Retries = cfg.Retries
	st.ctx, st.cancel = context.WithCancel(context.Background())
	return st, nil
}

// Context returns a context that is canceled when the stage closes.
func (st *Stage) Context() context.Context {
	return st.ctx
}

// OnTick adds a function called on every step with the elapsed
// time in seconds. Ticks run in the order they were added.
func (st *Stage) OnTick(fn func(t float32)) {
	st.ticks = append(st.ticks, fn)
}

// Step runs the ticks for the given elapsed time, then places the
// blob shadows and applies the fog.
func (st *Stage) Step(elapsed float32) {
	if st.Closed() {
		return
	}
	st.step.Lock()
	defer st.step.Unlock()
	for _, fn := range st.ticks {
		fn(elapsed)
	}
	if st.Blobs != nil {
		st.Blobs.Update()
	}
	if st.Fog != nil {
		if st.Fog.Skip == nil {
			st.Fog.Skip = st.Rig.IsHelper
		}
		st.Fog.Apply(st.Scene)
	}
}

// Advance moves the clock by dt and steps to the new time.
func (st *Stage) Advance(dt time.Duration) float32 {
	t := st.Clock.Advance(dt)
	st.Step(t)
	return t
}

// Update runs fn, which changes the scene, from any goroutine.
// Calls made while the lesson is building are queued until it is built.
// Once the stage is shown, fn runs under the lock of the widget that
// renders it; before that, it runs one call at a time between steps.
func (st *Stage) Update(fn func()) {
	if st.Closed() {
		return
	}
	st.mu.Lock()
	if st.building {
		st.queued = append(st.queued, fn)
		st.mu.Unlock()
		return
	}
	w := st.widget
	st.mu.Unlock()
	if w == nil {
		st.step.Lock()
		defer st.step.Unlock()
		fn()
		return
	}
	wb := w.AsWidget()
	wb.AsyncLock()
	defer wb.AsyncUnlock()
	fn()
	st.Scene.SetNeedsUpdate()
	wb.NeedsRender()
}

// built ends building and runs the updates queued meanwhile.
func (st *Stage) built() {
	st.step.Lock()
	defer st.step.Unlock()
	st.mu.Lock()
	st.building = false
	queued := st.queued
	st.queued = nil
	st.mu.Unlock()
	for _, fn := range queued {
		fn()
	}
}

// attach makes [Stage.Update] go through the lock of w.
func (st *Stage) attach(w core.Widget) {
	st.mu.Lock()
	st.widget = w
	st.mu.Unlock()
}

// Material applies m to sld now, with placeholders for textures still
// loading, and again each time one of its textures arrives.
// Solids sharing a material share one baked texture.
func (st *Stage) Material(sld *xyz.Solid, m *pbr.Material) {
	if st.materials == nil {
		st.materials = map[*pbr.Material]*binding{}
	}
	if b, ok := st.materials[m]; ok {
		b.solids = append(b.solids, sld)
		pbr.Use(sld, m, b.tex)
		return
	}
	// textures not loaded before the bake get a rebake; one that lands
	// between the check and OnLoad runs its callback right away.
	var pending []*textures.Texture
	for _, tx := range m.Textures() {
		if !tx.Loaded() {
			pending = append(pending, tx)
		}
	}
	b := &binding{solids: []*xyz.Solid{sld}}
	b.tex = pbr.ApplyAll(st.Scene, b.solids, m, st.BakeSize)
	st.materials[m] = b
	for _, tx := range pending {
		tx.OnLoad(func(*textures.Texture) {
			st.Update(func() { st.rebake(m) })
		})
	}
}

// binding is a material and the solids showing it.
type binding struct {
	solids []*xyz.Solid
	tex    *xyz.TextureBase
}

// rebake bakes m again for all of its solids.
func (st *Stage) rebake(m *pbr.Material) {
	b := st.materials[m]
	b.tex = pbr.ApplyAll(st.Scene, b.solids, m, st.BakeSize)
}

// Textures waits for every texture load started so far and returns
// the joined errors of those that failed.
func (st *Stage) Textures() error {
	return st.Loader.Wait()
}

// Closed returns whether [Stage.Close] was called.
func (st *Stage) Closed() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.closed
}

// Close stops the loop, cancels pending texture loads and
// cancels the stage context. It is safe to call more than once.
func (st *Stage) Close() error {
	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return nil
	}
	st.closed = true
	st.widget = nil
	st.mu.Unlock()
	st.cancel()
	err := st.Loader.Close()
	if st.Fog != nil {
		st.Fog.Clear()
	}
	slog.Info("lesson: closed")
	return err
}

// Mount builds l onto a new scene with textures read from
// [Config.Assets], without showing it.
func Mount(l Lesson, cfg *Config) (*Stage, error) {
	dir, err := cfg.AssetsDir()
	if err != nil {
		return nil, err
	}
	return MountFS(l, cfg, os.DirFS(dir))
}

// MountFS is like [Mount] but reads textures from fsys.
func MountFS(l Lesson, cfg *Config, fsys fs.FS) (*Stage, error) {
	sc := xyz.NewScene()
	sc.SetName(l.Name())
	return mount(sc, l, cfg, fsys)
}

func mount(sc *xyz.Scene, l Lesson, cfg *Config, fsys fs.FS) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := newStage(sc, cfg, fsys)
	if err != nil {
		return nil, err
	}
	st.Panel.Title = l.Title()
	start := time.Now()
	if err := l.Build(st); err != nil {
		st.Close()
		return nil, fmt.Errorf("lesson %q: %w", l.Name(), err)
	}
	if cfg.Helpers {
		st.Rig.AddHelpers(sc)
	}
	st.Panel.Freeze()
	casters := st.Rig.ShadowCasters(st.Renderer)
	slog.Info("lesson: mounted", "lesson", l.Name(), "lights", len(st.Rig.Names()),
		"shadowCasters", len(casters), "sliders", len(st.Panel.Sliders()), "took", time.Since(start))
	if cfg.Preset != "" {
		if err := st.Panel.LoadFile(cfg.Preset); err != nil {
			slog.Error("lesson: preset", "file", cfg.Preset, "err", err)
		}
	}
	st.built()
	st.Step(0)
	return st, nil
}
