// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shadows draws baked blob shadows: a soft dark disc on a
// receiving plane under each shadow-casting solid, faded by the solid's
// height. It is used in place of shadow maps, which the Phong renderer
// does not have.
package shadows

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/lights"
)

// Caster is a solid that casts a blob shadow.
type Caster struct {
	Solid *xyz.Solid

	// Radius is the footprint radius of the blob.
	Radius float32

	// Cast is whether the solid casts a shadow.
	Cast bool

	// Rest is the Y of the caster's position when it touches the
	// receiver, where its blob is darkest.
	Rest float32

	blob  *xyz.Solid
	level int
}

// Level returns the current opacity level of the caster's blob,
// 0 being invisible.
func (c *Caster) Level() int {
	return c.level
}

// Blob returns the blob solid drawn for the caster.
func (c *Caster) Blob() *xyz.Solid {
	return c.blob
}

// Blobs places blob shadows for a set of casters over a horizontal
// receiver plane. Opacity is quantized to Levels pre-baked textures.
type Blobs struct {

	// Height is the Y of the receiving plane.
	Height float32

	// Receive is whether the receiving plane shows shadows.
	Receive bool

	// Light is the shadow-casting light, or nil to project straight down.
	// A light that cannot cast shadows, or has Shadow.Cast off, hides all blobs.
	Light *lights.Params

	// Base is the opacity on contact, and Fade the height
	// at which the blob disappears.
	Base float32
	Fade float32

	// Lift raises the blobs above the receiver to avoid z-fighting.
	Lift float32

	// Levels is the number of opacity levels spanning [0, 1],
	// including invisible.
	Levels int

	sc      *xyz.Scene
	parent  tree.Node
	mesh    xyz.Mesh
	texs    []*xyz.TextureBase
	casters []*Caster
}

// New returns blobs over a receiver at the given height, adding blob
// solids under parent. The alpha image supplies the blob shape from its
// red channel; [Blobs.SetAlpha] replaces it later.
func New(sc *xyz.Scene, parent tree.Node, height float32, alpha image.Image) *Blobs {
	b := &Blobs{
		Height:  height,
		Receive: true,
		Base:    0.5,
		Fade:    1,
		Lift:    0.01,
		Levels:  33,
		sc:      sc,
		parent:  parent,
	}
	pl := xyz.NewPlane(sc, "shadow-blob", 1, 1)
	b.mesh = pl
	b.SetAlpha(alpha)
	return b
}

// SetAlpha re-bakes the level textures from a new blob shape.
func (b *Blobs) SetAlpha(alpha image.Image) {
	b.Levels = max(b.Levels, 2)
	b.texs = b.texs[:0]
	for k := range b.Levels {
		tx := &xyz.TextureBase{Name: fmt.Sprintf("shadow-blob-%d", k), Transparent: true}
		tx.RGBA = LevelImage(alpha, float32(k)/float32(b.Levels-1))
		b.sc.SetTexture(tx)
		b.texs = append(b.texs, tx)
	}
	for _, c := range b.casters {
		c.blob.SetTexture(b.texs[min(c.level, len(b.texs)-1)])
	}
}

// LevelImage returns a black image whose alpha is the red channel of
// alpha scaled by opacity.
func LevelImage(alpha image.Image, opacity float32) *image.RGBA {
	bb := alpha.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			r, _, _, _ := alpha.At(x, y).RGBA()
			a := float32(r>>8) * math32.Clamp(opacity, 0, 1)
			img.SetRGBA(x-bb.Min.X, y-bb.Min.Y, color.RGBA{0, 0, 0, uint8(a + 0.5)})
		}
	}
	return img
}

// Add registers a casting solid with the given footprint radius,
// and adds its blob.
func (b *Blobs) Add(sld *xyz.Solid, radius float32) *Caster {
	c := &Caster{Solid: sld, Radius: radius, Cast: true, Rest: b.Height + radius}
	c.blob = xyz.NewSolid(b.parent).SetMesh(b.mesh)
	c.blob.SetName(sld.Name + "-blob")
	c.blob.Pose.Scale.Set(radius*2, 1, radius*2)
	c.blob.Material.CullBack = false
	c.blob.SetTexture(b.texs[0])
	b.casters = append(b.casters, c)
	return c
}

// Casters returns the registered casters.
func (b *Blobs) Casters() []*Caster {
	return b.casters
}

// Opacity returns the blob opacity for a caster at height h
// above the receiver.
func (b *Blobs) Opacity(h float32) float32 {
	if b.Fade <= 0 {
		return 0
	}
	return b.Base * math32.Clamp(1-h/b.Fade, 0, 1)
}

// Quantize returns the texture level for an absolute opacity in [0, 1].
// Level k has opacity k/(Levels-1).
func (b *Blobs) Quantize(opacity float32) int {
	f := math32.Clamp(opacity, 0, 1)
	return int(f*float32(b.Levels-1) + 0.5)
}

// Project returns where the shadow of a point at pos falls on the
// receiver: along the light's direction when it is above the horizon,
// and straight down otherwise.
func (b *Blobs) Project(pos math32.Vector3) math32.Vector3 {
	down := math32.Vec3(pos.X, b.Height, pos.Z)
	if b.Light == nil {
		return down
	}
	var dir math32.Vector3
	switch b.Light.Kind {
	case lights.Directional:
		dir = b.Light.Target.Sub(b.Light.Position)
	case lights.Point, lights.Spot:
		dir = pos.Sub(b.Light.Position)
	default:
		return down
	}
	if dir.Length() == 0 {
		return down
	}
	dir = dir.Normal()
	if dir.Y > -0.05 {
		return down
	}
	t := (pos.Y - b.Height) / -dir.Y
	return pos.Add(dir.MulScalar(t))
}

// active reports whether the blobs should show at all.
func (b *Blobs) active() bool {
	if !b.Receive {
		return false
	}
	if b.Light != nil && (!lights.Capable(b.Light.Kind) || !b.Light.Shadow.Cast) {
		return false
	}
	return true
}

// Update moves and fades every blob to match its caster.
// It is called once per frame after the casters have moved.
func (b *Blobs) Update() {
	on := b.active()
	for _, c := range b.casters {
		pos := c.Solid.Pose.Pos
		p := b.Project(pos)
		c.blob.Pose.Pos.Set(p.X, b.Height+b.Lift, p.Z)
		level := 0
		if on && c.Cast {
			level = b.Quantize(b.Opacity(pos.Y - c.Rest))
		}
		if level != c.level {
			c.level = level
			c.blob.SetTexture(b.texs[level])
		}
	}
}
