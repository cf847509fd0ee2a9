// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbr

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/textures"
)

// Bake folds the material's color, tint, AO, normal and alpha maps into a
// single size x size sRGB image, sampling each map with its own tiling.
// Color and tint are multiplied in linear light. AO darkens by
// AOIntensity. The tilt of the normal map away from +Z darkens by
// NormalStrength, a cavity term standing in for per-pixel lighting.
// The alpha map fills the alpha channel.
func Bake(m *Material, size int) *image.RGBA {
	size = max(size, 1)
	sz := image.Pt(size, size)
	samp := map[Slot]*textures.Sampler{}
	for s, tx := range m.Maps {
		if tx == nil || s == Displacement || s == Roughness || s == Metalness {
			continue
		}
		samp[s] = tx.Sampler().Prepared(sz)
	}
	tint := m.tint()
	tl := [3]float32{
		math32.SRGBToLinear(float32(tint.R) / 255),
		math32.SRGBToLinear(float32(tint.G) / 255),
		math32.SRGBToLinear(float32(tint.B) / 255),
	}
	ta := float32(tint.A) / 255

	img := image.NewRGBA(image.Rectangle{Max: sz})
	for y := range size {
		v := 1 - (float32(y)+0.5)/float32(size)
		for x := range size {
			u := (float32(x) + 0.5) / float32(size)
			c := [4]float32{tl[0], tl[1], tl[2], ta}
			if s := samp[Color]; s != nil {
				cc := s.Linear(u, v)
				for i := range 4 {
					c[i] *= cc[i]
				}
			}
			shade := float32(1)
			if s := samp[AO]; s != nil {
				ao := s.Value(u, v)[AO.Channel()]
				shade *= math32.Lerp(1, ao, math32.Clamp(m.AOIntensity, 0, 1))
			}
			if s := samp[Normal]; s != nil {
				nz := s.Value(u, v)[2]*2 - 1
				shade *= CavityShade(nz, m.NormalStrength)
			}
			if s := samp[Alpha]; s != nil {
				c[3] *= s.Value(u, v)[Alpha.Channel()]
			}
			img.SetRGBA(x, y, color.RGBA{
				R: toSRGB8(c[0] * shade),
				G: toSRGB8(c[1] * shade),
				B: toSRGB8(c[2] * shade),
				A: uint8(math32.Clamp(c[3], 0, 1)*255 + 0.5),
			})
		}
	}
	return img
}

// CavityShade is the darkening applied for a normal whose Z component is nz:
// 1 for a flat normal, down to 0.5 for a normal lying in the surface plane
// at full strength.
func CavityShade(nz, strength float32) float32 {
	tilt := 1 - math32.Clamp(nz, 0, 1)
	return math32.Clamp(1-tilt*0.5*strength, 0.5, 1)
}

func toSRGB8(lin float32) uint8 {
	return uint8(math32.SRGBFromLinear(math32.Clamp(lin, 0, 1))*255 + 0.5)
}

// meanChannel returns the mean of a channel over a grid of samples.
func meanChannel(tx *textures.Texture, ch int) float32 {
	const n = 16
	s := tx.Sampler()
	var sum float32
	for y := range n {
		for x := range n {
			sum += s.Value((float32(x)+0.5)/n, (float32(y)+0.5)/n)[ch]
		}
	}
	return sum / (n * n)
}

// Surface returns the effective roughness and metalness of the material:
// the scalars times the mean of their maps.
func Surface(m *Material) (roughness, metalness float32) {
	roughness, metalness = m.Roughness, m.Metalness
	if tx := m.Map(Roughness); tx != nil {
		roughness *= meanChannel(tx, Roughness.Channel())
	}
	if tx := m.Map(Metalness); tx != nil {
		metalness *= meanChannel(tx, Metalness.Channel())
	}
	return math32.Clamp(roughness, 0, 1), math32.Clamp(metalness, 0, 1)
}

// Phong converts roughness and metalness into the xyz Phong
// Shiny exponent and Reflective factor. Rougher surfaces get a broader,
// dimmer highlight; metals reflect more.
func Phong(roughness, metalness float32) (shiny, reflective float32) {
	smooth := 1 - math32.Clamp(roughness, 0, 1)
	shiny = 2 + 126*smooth*smooth
	reflective = smooth * (0.3 + 0.7*math32.Clamp(metalness, 0, 1))
	return shiny, reflective
}

// Apply bakes the material at the given size, registers the result as
// a scene texture named after the material, and points the solid at it
// with the material's Phong parameters. Materials without any baked
// map only get their parameters and tint.
func Apply(sc *xyz.Scene, sld *xyz.Solid, m *Material, size int) {
	ApplyAll(sc, []*xyz.Solid{sld}, m, size)
}

// ApplyAll is [Apply] for solids sharing one material, which is baked
// once. It returns the baked texture, or nil if m has no maps.
func ApplyAll(sc *xyz.Scene, slds []*xyz.Solid, m *Material, size int) *xyz.TextureBase {
	var tx *xyz.TextureBase
	if m.NeedsBake() {
		tx = &xyz.TextureBase{Name: m.Name, Transparent: m.Transparent}
		tx.RGBA = Bake(m, size)
		sc.SetTexture(tx)
	}
	for _, sld := range slds {
		Use(sld, m, tx)
	}
	return tx
}

// Use points sld at an already baked texture of m, or just sets the
// parameters of m when tx is nil.
func Use(sld *xyz.Solid, m *Material, tx *xyz.TextureBase) {
	ApplyParams(sld, m)
	if tx != nil {
		sld.SetTexture(tx)
	}
}

// ApplyParams sets the solid's Phong parameters and color from the
// material without touching its texture.
func ApplyParams(sld *xyz.Solid, m *Material) {
	r, mt := Surface(m)
	shiny, refl := Phong(r, mt)
	sld.Material.Shiny = shiny
	sld.Material.Reflective = refl
	if m.NeedsBake() {
		sld.Material.Color = color.RGBA{255, 255, 255, 255}
	} else {
		sld.Material.Color = m.tint()
	}
}
