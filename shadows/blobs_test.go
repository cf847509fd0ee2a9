// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shadows

import (
	"image/color"
	"testing"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/anim"
	"github.com/gloamlab/gloam/lights"
	"github.com/gloamlab/gloam/textures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlobs(t *testing.T) (*xyz.Scene, *Blobs, *Caster) {
	sc := xyz.NewScene()
	b := New(sc, sc, -0.5, textures.RadialBlob(32))
	sphere := xyz.NewSolid(sc).SetMesh(xyz.NewSphere(sc, "sphere", 0.75, 16))
	sphere.SetName("sphere")
	c := b.Add(sphere, 0.75)
	c.Rest = 0
	require.Len(t, b.Casters(), 1)
	return sc, b, c
}

func TestOpacityMatchesBounce(t *testing.T) {
	_, b, _ := newBlobs(t)
	for _, y := range []float32{-0.5, 0, 0.25, 0.5, 1, 2} {
		assert.InDelta(t, anim.BlobOpacity(y), b.Opacity(y), 1e-6, "y=%v", y)
	}
}

func TestQuantize(t *testing.T) {
	_, b, _ := newBlobs(t)
	assert.Equal(t, 0, b.Quantize(0))
	assert.Equal(t, (b.Levels-1)/2, b.Quantize(0.5))
	assert.Equal(t, b.Levels-1, b.Quantize(1))
	assert.Equal(t, b.Levels-1, b.Quantize(3))
	assert.Equal(t, 0, b.Quantize(-1))
	prev := 0
	for o := float32(0); o <= 1; o += 0.01 {
		l := b.Quantize(o)
		assert.GreaterOrEqual(t, l, prev)
		prev = l
	}
}

func TestProject(t *testing.T) {
	_, b, _ := newBlobs(t)
	p := math32.Vec3(1, 1.5, 2)
	assert.Equal(t, math32.Vec3(1, -0.5, 2), b.Project(p))

	dir := lights.NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math32.Vec3(2, 2, 0))
	b.Light = &dir
	got := b.Project(p)
	// light from +x at 45 degrees: the shadow is offset by the height in -x
	assert.InDelta(t, -1, got.X, 1e-5)
	assert.InDelta(t, -0.5, got.Y, 1e-5)
	assert.InDelta(t, 2, got.Z, 1e-5)

	pt := lights.NewPoint(color.RGBA{255, 255, 255, 255}, 1, 0, 2, math32.Vec3(1, 3.5, 2))
	b.Light = &pt
	got = b.Project(p)
	assert.InDelta(t, 1, got.X, 1e-5)
	assert.InDelta(t, 2, got.Z, 1e-5)

	// grazing light falls back to straight down
	low := lights.NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math32.Vec3(5, 0, 0))
	b.Light = &low
	assert.Equal(t, math32.Vec3(1, -0.5, 2), b.Project(p))
}

func TestUpdate(t *testing.T) {
	_, b, c := newBlobs(t)
	c.Solid.Pose.Pos = anim.Bounce(0)
	b.Update()
	assert.Equal(t, b.Quantize(b.Base), c.Level())
	bp := c.Blob().Pose.Pos
	assert.InDelta(t, 1, bp.X, 1e-6)
	assert.InDelta(t, -0.49, bp.Y, 1e-6)
	assert.InDelta(t, 0, bp.Z, 1e-6)

	c.Solid.Pose.Pos = math32.Vec3(0, 1.2, 1)
	b.Update()
	assert.Equal(t, 0, c.Level())
	assert.InDelta(t, -0.49, c.Blob().Pose.Pos.Y, 1e-6)

	c.Solid.Pose.Pos = math32.Vec3(0, 0.5, 1)
	b.Update()
	assert.Equal(t, b.Quantize(0.25), c.Level())
}

func TestUpdateFlags(t *testing.T) {
	_, b, c := newBlobs(t)
	c.Solid.Pose.Pos = math32.Vec3(0, 0, 0)

	c.Cast = false
	b.Update()
	assert.Equal(t, 0, c.Level())

	c.Cast = true
	b.Receive = false
	b.Update()
	assert.Equal(t, 0, c.Level())

	b.Receive = true
	amb := lights.NewAmbient(color.RGBA{255, 255, 255, 255}, 1)
	b.Light = &amb
	b.Update()
	assert.Equal(t, 0, c.Level())

	dir := lights.NewDirectional(color.RGBA{255, 255, 255, 255}, 1, math32.Vec3(0, 3, 0))
	b.Light = &dir
	b.Update()
	assert.Equal(t, 0, c.Level(), "light not casting")
	dir.Shadow.Cast = true
	b.Update()
	assert.Equal(t, b.Quantize(b.Base), c.Level())
}

// centerAlpha returns the alpha at the middle of the caster's blob texture.
func centerAlpha(b *Blobs, c *Caster) uint8 {
	img := b.texs[c.Level()].RGBA
	r := img.Bounds()
	return img.RGBAAt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2).A
}

func TestContactAlphaFollowsBase(t *testing.T) {
	_, b, c := newBlobs(t)
	peak := float64(textures.RadialBlob(32).RGBAAt(16, 16).R)
	step := 255.0 / float64(b.Levels-1)

	c.Solid.Pose.Pos = math32.Vec3(0, 0, 0)
	b.Update()
	assert.InDelta(t, 0.5*peak, float64(centerAlpha(b, c)), step)

	b.Base = 0.1
	b.Update()
	assert.InDelta(t, 0.1*peak, float64(centerAlpha(b, c)), step)

	b.Base = 1
	b.Update()
	assert.InDelta(t, peak, float64(centerAlpha(b, c)), step)

	// lifting the caster fades the blob out
	b.Base = 0.5
	prev := centerAlpha(b, c) + 1
	for _, y := range []float32{0, 0.25, 0.5, 0.75, 1} {
		c.Solid.Pose.Pos.Y = y
		b.Update()
		a := centerAlpha(b, c)
		assert.Less(t, a, prev, "y=%v", y)
		prev = a
	}
	assert.Equal(t, uint8(0), prev)
}

func TestLevelImage(t *testing.T) {
	alpha := textures.RadialBlob(16)
	full := LevelImage(alpha, 1)
	half := LevelImage(alpha, 0.5)
	none := LevelImage(alpha, 0)
	c := full.RGBAAt(8, 8)
	assert.Equal(t, uint8(0), c.R)
	assert.Greater(t, c.A, uint8(200))
	assert.InDelta(t, float64(c.A)/2, float64(half.RGBAAt(8, 8).A), 1)
	assert.Equal(t, uint8(0), none.RGBAAt(8, 8).A)
}
