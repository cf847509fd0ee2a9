// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbr

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/textures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidTex(name string, c color.RGBA) *textures.Texture {
	return textures.NewStatic(textures.NewSpec(name), textures.Solid(c))
}

// checker returns a size x size checkerboard of a and b with cells of cell texels.
func checker(size, cell int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestSlotChannels(t *testing.T) {
	assert.Equal(t, 0, AO.Channel())
	assert.Equal(t, 1, Roughness.Channel())
	assert.Equal(t, 2, Metalness.Channel())
	assert.Equal(t, 1, Alpha.Channel())
	assert.Equal(t, 0, Displacement.Channel())
	assert.Equal(t, -1, Color.Channel())
	assert.Equal(t, "roughness", Roughness.String())
	assert.Len(t, Slots(), 7)
}

func TestMaterialMaps(t *testing.T) {
	m := New("door")
	assert.False(t, m.NeedsBake())
	arm := solidTex("arm", color.RGBA{255, 128, 0, 255})
	m.SetMap(AO, arm).SetMap(Roughness, arm).SetMap(Metalness, arm)
	assert.True(t, m.NeedsBake())
	assert.Len(t, m.Textures(), 1)
	assert.False(t, m.Transparent)
	m.SetMap(Alpha, solidTex("alpha", color.RGBA{0, 255, 0, 255}))
	assert.True(t, m.Transparent)
	assert.Len(t, m.Textures(), 2)
	assert.Nil(t, m.Map(Normal))
}

func TestBakeTintOnly(t *testing.T) {
	m := New("tint")
	m.Tint = color.RGBA{204, 255, 204, 255}
	img := Bake(m, 4)
	assert.Equal(t, image.Pt(4, 4), img.Bounds().Size())
	for _, c := range []color.RGBA{img.RGBAAt(0, 0), img.RGBAAt(3, 3)} {
		assert.InDelta(t, 204, c.R, 1)
		assert.InDelta(t, 255, c.G, 1)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestBakeAOOnlyDarkens(t *testing.T) {
	base := New("base")
	base.SetMap(Color, solidTex("color", color.RGBA{180, 120, 60, 255}))
	plain := Bake(base, 8)

	for _, ao := range []uint8{0, 64, 200, 255} {
		m := New("ao")
		m.SetMap(Color, base.Map(Color))
		m.SetMap(AO, solidTex("ao", color.RGBA{ao, 255, 255, 255}))
		got := Bake(m, 8)
		for y := range 8 {
			for x := range 8 {
				p, g := plain.RGBAAt(x, y), got.RGBAAt(x, y)
				assert.LessOrEqual(t, g.R, p.R)
				assert.LessOrEqual(t, g.G, p.G)
				assert.LessOrEqual(t, g.B, p.B)
			}
		}
	}

	m := New("ao-off")
	m.SetMap(Color, base.Map(Color))
	m.SetMap(AO, solidTex("ao", color.RGBA{0, 0, 0, 255}))
	m.AOIntensity = 0
	assert.Equal(t, plain.RGBAAt(2, 2), Bake(m, 8).RGBAAt(2, 2))
}

func TestBakeAlphaFromGreen(t *testing.T) {
	m := New("alpha")
	m.SetMap(Alpha, textures.NewStatic(textures.NewSpec("alpha"),
		checker(8, 4, color.RGBA{255, 0, 255, 255}, color.RGBA{0, 255, 0, 255})))
	img := Bake(m, 8)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), img.RGBAAt(5, 0).A)
	imagex.Assert(t, img, "bake-alpha")
}

func TestCavityShade(t *testing.T) {
	assert.Equal(t, float32(1), CavityShade(1, 1))
	assert.Equal(t, float32(0.5), CavityShade(0, 1))
	assert.Equal(t, float32(1), CavityShade(0, 0))
	assert.InDelta(t, 0.75, CavityShade(0.5, 1), 1e-6)

	flat := New("flat")
	flat.SetMap(Normal, solidTex("n", color.RGBA{128, 128, 255, 255}))
	c := Bake(flat, 2).RGBAAt(0, 0)
	assert.Equal(t, uint8(255), c.R)
}

func TestSurfaceAndPhong(t *testing.T) {
	m := New("arm")
	arm := solidTex("arm", color.RGBA{255, 128, 255, 255})
	m.SetMap(Roughness, arm).SetMap(Metalness, arm)
	r, mt := Surface(m)
	assert.InDelta(t, 128.0/255, r, 1e-3)
	assert.InDelta(t, 0, mt, 1e-6) // scalar metalness is 0

	m.Metalness = 1
	_, mt = Surface(m)
	assert.InDelta(t, 1, mt, 1e-3)

	prevShiny, prevRefl := Phong(0, 0)
	for _, r := range []float32{0.25, 0.5, 0.75, 1} {
		s, rf := Phong(r, 0)
		assert.Less(t, s, prevShiny)
		assert.LessOrEqual(t, rf, prevRefl)
		prevShiny, prevRefl = s, rf
	}
	s, rf := Phong(1, 1)
	assert.Equal(t, float32(2), s)
	assert.Equal(t, float32(0), rf)
	_, dielectric := Phong(0.2, 0)
	_, metal := Phong(0.2, 1)
	assert.Greater(t, metal, dielectric)
}

func TestPlaneGeometry(t *testing.T) {
	g := PlaneGeometry(20, 10, 4, 2)
	assert.Len(t, g.Vertex, 15)
	assert.Len(t, g.Normal, 15)
	assert.Len(t, g.UV, 15)
	assert.Len(t, g.Index, 4*2*6)
	assert.Equal(t, math32.Vec3(-10, 5, 0), g.Vertex[0])
	assert.Equal(t, math32.Vec2(0, 1), g.UV[0])
	assert.Equal(t, math32.Vec3(10, -5, 0), g.Vertex[14])
	assert.Equal(t, math32.Vec2(1, 0), g.UV[14])

	// winding faces +Z
	c := g.Clone()
	c.ComputeNormals()
	for _, n := range c.Normal {
		assert.InDelta(t, 1, n.Z, 1e-6)
	}
}

func TestDisplaced(t *testing.T) {
	g := PlaneGeometry(2, 2, 8, 8)
	d := g.Displaced(nil, 0, -0.2)
	for i, v := range d.Vertex {
		assert.InDelta(t, -0.2, v.Z, 1e-6)
		assert.Equal(t, g.Vertex[i].X, v.X)
		assert.InDelta(t, 1, d.Normal[i].Z, 1e-6)
	}
	for _, v := range g.Vertex {
		assert.Equal(t, float32(0), v.Z)
	}

	hm := textures.NewStatic(textures.NewSpec("h"), textures.Solid(color.RGBA{255, 0, 0, 255}))
	d = g.Displaced(hm.Sampler(), 0.3, -0.2)
	for _, v := range d.Vertex {
		assert.InDelta(t, 0.1, v.Z, 1e-6)
	}

	// a ramp tilts the normals
	ramp := image.NewRGBA(image.Rect(0, 0, 8, 1))
	for x := range 8 {
		ramp.SetRGBA(x, 0, color.RGBA{uint8(x * 32), 0, 0, 255})
	}
	d = g.Displaced(textures.NewSampler(ramp, textures.NewSpec("ramp")), 1, 0)
	assert.Less(t, d.Normal[40].X, float32(0))
}

func TestGridMesh(t *testing.T) {
	g := PlaneGeometry(1, 1, 2, 2)
	ms := g.Mesh("floor")
	assert.Equal(t, "floor", ms.Name)
	nv, ni, hasColor := ms.MeshSize()
	assert.Equal(t, 9, nv)
	assert.Equal(t, 24, ni)
	assert.False(t, hasColor)
	assert.Len(t, ms.TexCoord, 18)
}

func TestApply(t *testing.T) {
	sc := xyz.NewScene()
	sld := xyz.NewSolid(sc)
	plain := New("plain")
	plain.Tint = color.RGBA{255, 0, 0, 255}
	plain.Roughness = 0.4
	Apply(sc, sld, plain, 4)
	assert.Equal(t, plain.Tint, sld.Material.Color)
	assert.Nil(t, sld.Material.Texture)
	shiny, _ := Phong(0.4, 0)
	assert.Equal(t, shiny, sld.Material.Shiny)

	m := New("wall")
	m.SetMap(Color, solidTex("c", color.RGBA{10, 20, 30, 255}))
	Apply(sc, sld, m, 4)
	require.NotNil(t, sld.Material.Texture)
	tx, err := sc.TextureByName("wall")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 4), tx.Image().Bounds().Size())
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, sld.Material.Color)
}
