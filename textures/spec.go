// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textures

import (
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
)

// Wrapping is how texture coordinates outside [0, 1] are resolved.
type Wrapping int32

const (
	// ClampToEdge repeats the edge texels.
	ClampToEdge Wrapping = iota

	// Repeat tiles the texture.
	Repeat

	// MirroredRepeat tiles the texture, flipping every other tile.
	MirroredRepeat
)

func (w Wrapping) String() string {
	switch w {
	case ClampToEdge:
		return "clamp-to-edge"
	case Repeat:
		return "repeat"
	case MirroredRepeat:
		return "mirrored-repeat"
	}
	return fmt.Sprintf("Wrapping(%d)", int32(w))
}

// ColorSpace is the encoding of the texel values.
type ColorSpace int32

const (
	// NoColorSpace is for data maps (normal, roughness, displacement)
	// whose values are used as-is.
	NoColorSpace ColorSpace = iota

	// SRGB is for color maps, whose values are gamma encoded.
	SRGB
)

func (c ColorSpace) String() string {
	if c == SRGB {
		return "srgb"
	}
	return "none"
}

// Spec describes one texture: the file it comes from and how it is sampled.
// A Spec is a value; once it is handed to a [Loader] its sampling
// parameters are fixed, so repeat and wrap are always configured before
// the texture is first used.
type Spec struct {

	// Name is the name used to refer to the texture in the scene.
	Name string

	// File is the slash-separated path of the image within the loader's file system.
	File string

	// Repeat is how many times the texture tiles across the surface in U and V.
	// The zero value means no tiling (1, 1).
	Repeat math32.Vector2

	// Offset shifts the texture in UV space before tiling.
	Offset math32.Vector2

	// WrapS and WrapT are the wrapping modes in U and V.
	WrapS Wrapping
	WrapT Wrapping

	// ColorSpace is the encoding of the image.
	ColorSpace ColorSpace

	// Placeholder is the texel served until the image is decoded,
	// and kept if it fails to load. The zero value is opaque white.
	Placeholder color.RGBA
}

// NewSpec returns a spec for the given file, named after the file.
func NewSpec(file string) Spec {
	return Spec{Name: file, File: file}
}

// WithRepeat returns a copy of the spec that tiles u by v times.
func (s Spec) WithRepeat(u, v float32) Spec {
	s.Repeat = math32.Vec2(u, v)
	return s
}

// WithOffset returns a copy of the spec with the given UV offset.
func (s Spec) WithOffset(u, v float32) Spec {
	s.Offset = math32.Vec2(u, v)
	return s
}

// WithWrap returns a copy of the spec with the given wrapping in U and V.
func (s Spec) WithWrap(wrapS, wrapT Wrapping) Spec {
	s.WrapS = wrapS
	s.WrapT = wrapT
	return s
}

// WithColorSpace returns a copy of the spec with the given color space.
func (s Spec) WithColorSpace(cs ColorSpace) Spec {
	s.ColorSpace = cs
	return s
}

// WithPlaceholder returns a copy of the spec with the given placeholder texel.
func (s Spec) WithPlaceholder(c color.RGBA) Spec {
	s.Placeholder = c
	return s
}

// Tiling returns the effective repeat, treating the zero value as (1, 1).
func (s Spec) Tiling() math32.Vector2 {
	if s.Repeat == (math32.Vector2{}) {
		return math32.Vec2(1, 1)
	}
	return s.Repeat
}

func (s Spec) placeholder() color.RGBA {
	if s.Placeholder == (color.RGBA{}) {
		return color.RGBA{255, 255, 255, 255}
	}
	return s.Placeholder
}

// Repeating returns a copy of the spec that tiles u by v times with
// [Repeat] wrapping in both directions, which is what most surface maps use.
func (s Spec) Repeating(u, v float32) Spec {
	return s.WithRepeat(u, v).WithWrap(Repeat, Repeat)
}
