// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package atmos provides distance fog for xyz scenes.
package atmos

import (
	"image/color"

	"cogentcore.org/core/colors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
)

// Fog is linear distance fog: surfaces closer than Near are clear,
// those farther than Far take the fog color.
// The Phong renderer has no fog stage, so [Fog.Apply] blends per solid,
// dimming its lit color through Bright and adding the fog color
// through Emissive.
type Fog struct {
	Color color.RGBA
	Near  float32
	Far   float32

	// Skip, if set, reports solids that are left unfogged,
	// such as markers that carry their own emissive color.
	Skip func(sld *xyz.Solid) bool

	bright map[*xyz.Solid]float32
}

// New returns fog with the given color and range.
func New(c color.RGBA, near, far float32) *Fog {
	return &Fog{Color: c, Near: near, Far: far}
}

// Factor returns the fog amount at distance d, from 0 (clear) to 1.
func (f *Fog) Factor(d float32) float32 {
	if f.Far <= f.Near {
		if d >= f.Far {
			return 1
		}
		return 0
	}
	return math32.Clamp((d-f.Near)/(f.Far-f.Near), 0, 1)
}

// WorldPos returns the position of a solid with the translations of
// its parent groups applied.
func WorldPos(sld *xyz.Solid) math32.Vector3 {
	pos := sld.Pose.Pos
	for p := sld.Parent; p != nil; p = p.AsTree().Parent {
		if g, ok := p.(*xyz.Group); ok {
			pos = pos.Add(g.Pose.Pos)
		}
	}
	return pos
}

// Apply sets the scene background to the fog color and fogs every solid
// by its distance from the camera.
func (f *Fog) Apply(sc *xyz.Scene) {
	if f.bright == nil {
		f.bright = map[*xyz.Solid]float32{}
	}
	sc.Background = colors.Uniform(f.Color)
	cam := sc.Camera.Pose.Pos
	sc.WalkDown(func(n tree.Node) bool {
		sld, ok := n.(*xyz.Solid)
		if !ok || (f.Skip != nil && f.Skip(sld)) {
			return tree.Continue
		}
		base, ok := f.bright[sld]
		if !ok {
			base = sld.Material.Bright
			f.bright[sld] = base
		}
		k := f.Factor(WorldPos(sld).Sub(cam).Length())
		sld.Material.Bright = base * (1 - k)
		sld.Material.Emissive = scale(f.Color, k)
		return tree.Continue
	})
}

// Clear restores the brightness of every fogged solid.
func (f *Fog) Clear() {
	for sld, b := range f.bright {
		sld.Material.Bright = b
		sld.Material.Emissive = color.RGBA{}
	}
	f.bright = nil
}

func scale(c color.RGBA, k float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(c.R)*k + 0.5),
		G: uint8(float32(c.G)*k + 0.5),
		B: uint8(float32(c.B)*k + 0.5),
		A: uint8(float32(c.A)*k + 0.5),
	}
}
