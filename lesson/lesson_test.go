// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lesson

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/atmos"
	"github.com/gloamlab/gloam/lights"
	"github.com/gloamlab/gloam/pbr"
	"github.com/gloamlab/gloam/textures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLesson is a small lesson with one light, one slider and one
// animated solid.
type fakeLesson struct {
	name  string
	err   error
	order *[]string
	sld   *xyz.Solid
	tex   *textures.Texture
}

func (f *fakeLesson) Name() string  { return f.name }
func (f *fakeLesson) Title() string { return "Fake " + f.name }

func (f *fakeLesson) Build(st *Stage) error {
	if f.err != nil {
		return f.err
	}
	sc := st.Scene
	amb := st.Rig.MustAdd("ambient", lights.NewAmbient(color.RGBA{255, 255, 255, 255}, 1))
	st.Panel.Add(&amb.Intensity, "Intensity").Range(0, 3).SetStep(0.001).
		OnChange(func(float32) { st.Rig.Sync("ambient") })

	f.sld = xyz.NewSolid(sc).SetMesh(xyz.NewBox(sc, "box", 1, 1, 1))
	m := pbr.New("fake")
	f.tex = st.Loader.Load(textures.NewSpec("color.png").WithColorSpace(textures.SRGB))
	m.SetMap(pbr.Color, f.tex)
	st.Material(f.sld, m)

	st.OnTick(func(t float32) {
		f.sld.Pose.Pos.X = t
		if f.order != nil {
			*f.order = append(*f.order, "first")
		}
	})
	st.OnTick(func(t float32) {
		if f.order != nil {
			*f.order = append(*f.order, "second")
		}
	})
	return nil
}

var fakeRegistered = func() bool {
	Register(&fakeLesson{name: "fake"})
	return true
}()

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Lesson = "fake"
	return cfg
}

func TestRegistry(t *testing.T) {
	require.True(t, fakeRegistered)
	l, err := Lookup("fake")
	require.NoError(t, err)
	assert.Equal(t, "fake", l.Name())
	assert.Contains(t, Names(), "fake")

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownLesson)

	assert.Panics(t, func() { Register(&fakeLesson{name: "fake"}) })
}

func TestConfigValidate(t *testing.T) {
	cfg := testConfig()
	assert.NoError(t, cfg.Validate())

	smt, err := cfg.ShadowMapType()
	require.NoError(t, err)
	assert.Equal(t, lights.PCFSoft, smt)

	cfg.ShadowMap = "VSM"
	smt, err = cfg.ShadowMapType()
	require.NoError(t, err)
	assert.Equal(t, lights.VSM, smt)

	bad := testConfig()
	bad.Lesson = "nope"
	bad.ShadowMap = "ray-traced"
	bad.Workers = 0
	err = bad.Validate()
	assert.ErrorIs(t, err, ErrUnknownLesson)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorContains(t, err, "ray-traced")
	assert.ErrorContains(t, err, "workers")
}

func TestConfigAssetsDir(t *testing.T) {
	cfg := testConfig()
	dir, err := cfg.AssetsDir()
	require.NoError(t, err)
	assert.Equal(t, "assets", dir)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	cfg.Assets = "~/gloam"
	dir, err = cfg.AssetsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "gloam"), dir)
}

func TestMount(t *testing.T) {
	var order []string
	l := &fakeLesson{name: "fake", order: &order}
	st, err := MountFS(l, testConfig(), fstest.MapFS{})
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, "Fake fake", st.Panel.Title)
	assert.Equal(t, []string{"ambient"}, st.Rig.Names())
	assert.Equal(t, []string{"first", "second"}, order, "mount steps once")

	// the missing texture leaves the placeholder in place
	err = st.Textures()
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.False(t, l.tex.Loaded())

	order = order[:0]
	t1 := st.Advance(500 * time.Millisecond)
	assert.InDelta(t, 0.5, t1, 1e-6)
	assert.InDelta(t, 0.5, l.sld.Pose.Pos.X, 1e-6)
	assert.Equal(t, []string{"first", "second"}, order)

	st.Clock.Pause()
	st.Advance(time.Second)
	assert.InDelta(t, 0.5, l.sld.Pose.Pos.X, 1e-6)
}

func TestMountBuildError(t *testing.T) {
	boom := errors.New("boom")
	_, err := MountFS(&fakeLesson{name: "fake", err: boom}, testConfig(), fstest.MapFS{})
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, `lesson "fake"`)

	cfg := testConfig()
	cfg.Workers = -1
	_, err = MountFS(&fakeLesson{name: "fake"}, cfg, fstest.MapFS{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMountPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = \"Fake fake\"\n\n[values]\nIntensity = 2.5\n"), 0o666))
	cfg := testConfig()
	cfg.Preset = path
	st, err := MountFS(&fakeLesson{name: "fake"}, cfg, fstest.MapFS{})
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, float32(2.5), st.Rig.Params("ambient").Intensity)

	// reset returns to the values the lesson was built with
	require.NoError(t, st.Panel.Reset())
	assert.Equal(t, float32(1), st.Rig.Params("ambient").Intensity)
}

func TestStepBlobsAndFog(t *testing.T) {
	st, err := MountFS(&fakeLesson{name: "fake"}, testConfig(), fstest.MapFS{})
	require.NoError(t, err)
	defer st.Close()

	fog := color.RGBA{2, 52, 63, 255}
	st.Fog = atmos.New(fog, 0.1, 22)
	st.Scene.Camera.Pose.Pos = math32.Vec3(0, 0, 100)
	st.Step(1)
	assert.Equal(t, colors.Uniform(fog), st.Scene.Background)
	n := 0
	st.Scene.WalkDown(func(nd tree.Node) bool {
		if sld, ok := nd.(*xyz.Solid); ok {
			assert.Equal(t, fog, sld.Material.Emissive, "solids beyond the far plane take the fog color")
			n++
		}
		return tree.Continue
	})
	assert.Equal(t, 1, n)
}

func TestUpdateAndClose(t *testing.T) {
	st, err := MountFS(&fakeLesson{name: "fake"}, testConfig(), fstest.MapFS{})
	require.NoError(t, err)

	ran := false
	st.Update(func() { ran = true })
	assert.True(t, ran, "update runs directly when not shown")

	require.NoError(t, st.Close())
	require.NoError(t, st.Close())
	assert.True(t, st.Closed())
	assert.Error(t, st.Context().Err())

	ran = false
	st.Update(func() { ran = true })
	assert.False(t, ran, "update is dropped after close")

	tx := st.Loader.Load(textures.NewSpec("late.png"))
	assert.ErrorIs(t, tx.Err(), textures.ErrClosed)
}

func TestUpdateQueuedWhileBuilding(t *testing.T) {
	st, err := newStage(xyz.NewScene(), testConfig(), fstest.MapFS{})
	require.NoError(t, err)
	defer st.Close()

	var order []string
	st.Update(func() { order = append(order, "a") })
	st.Update(func() { order = append(order, "b") })
	assert.Empty(t, order, "updates wait for the build")

	st.built()
	assert.Equal(t, []string{"a", "b"}, order)
	st.Update(func() { order = append(order, "c") })
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestMaterialShared(t *testing.T) {
	st, err := newStage(xyz.NewScene(), testConfig(), fstest.MapFS{})
	require.NoError(t, err)
	defer st.Close()
	st.BakeSize = 8

	m := pbr.New("shared")
	m.SetMap(pbr.Color, textures.NewStatic(textures.NewSpec("c"), textures.Solid(color.RGBA{10, 20, 30, 255})))
	a := xyz.NewSolid(st.Scene).SetMesh(xyz.NewBox(st.Scene, "box", 1, 1, 1))
	b := xyz.NewSolid(st.Scene).SetMesh(xyz.NewBox(st.Scene, "box", 1, 1, 1))
	st.Material(a, m)
	st.Material(b, m)
	require.Len(t, st.materials, 1)
	bd := st.materials[m]
	assert.Len(t, bd.solids, 2)
	require.NotNil(t, bd.tex)
	assert.Equal(t, a.Material.Color, b.Material.Color)
}

// gatedFS blocks every open until release is closed.
type gatedFS struct {
	fs.FS
	release chan struct{}
}

func (g *gatedFS) Open(name string) (fs.File, error) {
	<-g.release
	return g.FS.Open(name)
}

func TestMaterialRebakesOnArrival(t *testing.T) {
	var png1 bytes.Buffer
	require.NoError(t, png.Encode(&png1, textures.Solid(color.RGBA{200, 30, 30, 255})))
	gfs := &gatedFS{FS: fstest.MapFS{"red.png": {Data: png1.Bytes()}}, release: make(chan struct{})}
	st, err := newStage(xyz.NewScene(), testConfig(), gfs)
	require.NoError(t, err)
	defer st.Close()
	st.BakeSize = 4

	m := pbr.New("late")
	tx := st.Loader.Load(textures.NewSpec("red.png").WithColorSpace(textures.SRGB))
	m.SetMap(pbr.Color, tx)
	sld := xyz.NewSolid(st.Scene).SetMesh(xyz.NewBox(st.Scene, "box", 1, 1, 1))
	st.Material(sld, m)
	before := st.materials[m].tex.RGBA.RGBAAt(0, 0)

	close(gfs.release)
	require.NoError(t, st.Textures())
	require.True(t, tx.Loaded())
	assert.Equal(t, before, st.materials[m].tex.RGBA.RGBAAt(0, 0), "the rebake waits for the build")

	st.built()
	after := st.materials[m].tex.RGBA.RGBAAt(0, 0)
	assert.NotEqual(t, before, after)
	assert.Greater(t, after.R, after.G)

	// a material baked after the texture arrived shows it at once
	m2 := pbr.New("early")
	m2.SetMap(pbr.Color, tx)
	other := xyz.NewSolid(st.Scene).SetMesh(xyz.NewBox(st.Scene, "box", 1, 1, 1))
	st.Material(other, m2)
	assert.Equal(t, after, st.materials[m2].tex.RGBA.RGBAAt(0, 0))
}

func TestFrameTime(t *testing.T) {
	assert.Equal(t, 16*time.Millisecond, frameTime(16))
	assert.Equal(t, 1500*time.Microsecond, frameTime(1.5))
	assert.Equal(t, time.Duration(0), frameTime(0))
}
