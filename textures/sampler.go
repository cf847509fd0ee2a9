// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textures

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"golang.org/x/image/draw"
)

// Sampler reads texels from an image using the tiling,
// wrapping and vertical orientation of a [Spec].
// UV (0, 0) is the bottom-left of the image, as in OpenGL-style
// texture coordinates.
type Sampler struct {
	img  *image.RGBA
	spec Spec
	size image.Point
}

// NewSampler returns a sampler over img with the sampling parameters of spec.
func NewSampler(img *image.RGBA, spec Spec) *Sampler {
	return &Sampler{img: img, spec: spec, size: img.Bounds().Size()}
}

// Spec returns the spec the sampler was made with.
func (s *Sampler) Spec() Spec {
	return s.spec
}

// Prepared returns a sampler whose source image has been downscaled so that
// one tile is no larger than a target of the given size divides into.
// Sampling a large source image into a small bake target otherwise aliases.
// If no scaling is needed, s itself is returned.
func (s *Sampler) Prepared(target image.Point) *Sampler {
	rep := s.spec.Tiling()
	tw := int(math32.Ceil(float32(target.X) / math32.Max(math32.Abs(rep.X), 1e-3)))
	th := int(math32.Ceil(float32(target.Y) / math32.Max(math32.Abs(rep.Y), 1e-3)))
	tw = max(tw, 1)
	th = max(th, 1)
	if tw >= s.size.X && th >= s.size.Y {
		return s
	}
	tw = min(tw, s.size.X)
	th = min(th, s.size.Y)
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), s.img, s.img.Bounds(), draw.Src, nil)
	return NewSampler(dst, s.spec)
}

// wrap maps a texel index into [0, n) according to mode.
func wrap(i, n int, mode Wrapping) int {
	switch mode {
	case Repeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case MirroredRepeat:
		p := 2 * n
		i %= p
		if i < 0 {
			i += p
		}
		if i >= n {
			i = p - 1 - i
		}
		return i
	}
	return min(max(i, 0), n-1)
}

func (s *Sampler) texel(x, y int) color.RGBA {
	x = wrap(x, s.size.X, s.spec.WrapS)
	y = wrap(y, s.size.Y, s.spec.WrapT)
	b := s.img.Bounds()
	return s.img.RGBAAt(b.Min.X+x, b.Min.Y+y)
}

// At returns the bilinearly filtered texel at texture coordinate (u, v),
// after applying the spec's repeat and offset.
func (s *Sampler) At(u, v float32) color.RGBA {
	c := s.Value(u, v)
	return color.RGBA{
		R: uint8(c[0]*255 + 0.5),
		G: uint8(c[1]*255 + 0.5),
		B: uint8(c[2]*255 + 0.5),
		A: uint8(c[3]*255 + 0.5),
	}
}

// Value returns the bilinearly filtered texel at (u, v) as
// normalized [0, 1] channel values, in the image's own encoding.
func (s *Sampler) Value(u, v float32) [4]float32 {
	rep := s.spec.Tiling()
	u = u*rep.X + s.spec.Offset.X
	v = v*rep.Y + s.spec.Offset.Y
	fx := u*float32(s.size.X) - 0.5
	fy := (1-v)*float32(s.size.Y) - 0.5
	x0 := math32.Floor(fx)
	y0 := math32.Floor(fy)
	tx := fx - x0
	ty := fy - y0
	ix, iy := int(x0), int(y0)

	c00 := s.texel(ix, iy)
	c10 := s.texel(ix+1, iy)
	c01 := s.texel(ix, iy+1)
	c11 := s.texel(ix+1, iy+1)

	var out [4]float32
	ch := func(c color.RGBA, i int) float32 {
		switch i {
		case 0:
			return float32(c.R)
		case 1:
			return float32(c.G)
		case 2:
			return float32(c.B)
		}
		return float32(c.A)
	}
	for i := range out {
		top := math32.Lerp(ch(c00, i), ch(c10, i), tx)
		bot := math32.Lerp(ch(c01, i), ch(c11, i), tx)
		out[i] = math32.Lerp(top, bot, ty) / 255
	}
	return out
}

// Linear returns the texel at (u, v) with color channels decoded
// to linear light when the spec is [SRGB]. Alpha is always linear.
func (s *Sampler) Linear(u, v float32) [4]float32 {
	c := s.Value(u, v)
	if s.spec.ColorSpace == SRGB {
		for i := range 3 {
			c[i] = math32.SRGBToLinear(c[i])
		}
	}
	return c
}
