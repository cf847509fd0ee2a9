// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbr describes physically based material parameter sets
// (color, ambient occlusion, roughness, metalness, normal, displacement
// and alpha maps) and bakes them down for the single-texture Phong
// pipeline of xyz.
package pbr

import (
	"fmt"
	"image/color"

	"github.com/gloamlab/gloam/textures"
)

// Slot is a material map slot.
type Slot int32

const (
	// Color is the diffuse color map (sRGB).
	Color Slot = iota

	// Alpha is the opacity map, read from the green channel.
	Alpha

	// AO is the ambient occlusion map, read from the red channel.
	AO

	// Roughness is read from the green channel, so that it can share
	// a packed ARM (AO, roughness, metalness) texture.
	Roughness

	// Metalness is read from the blue channel.
	Metalness

	// Normal is a tangent-space normal map with +Y up (OpenGL convention).
	Normal

	// Displacement moves vertices along their normal by the red channel.
	Displacement

	slotN
)

var slotNames = [...]string{"color", "alpha", "ao", "roughness", "metalness", "normal", "displacement"}

func (s Slot) String() string {
	if s >= 0 && s < slotN {
		return slotNames[s]
	}
	return fmt.Sprintf("Slot(%d)", int32(s))
}

// Channel returns the image channel (0 = R through 3 = A) the slot reads
// a scalar from. Color and Normal read all channels and return -1.
func (s Slot) Channel() int {
	switch s {
	case AO, Displacement:
		return 0
	case Alpha, Roughness:
		return 1
	case Metalness:
		return 2
	}
	return -1
}

// Slots returns all slots in order.
func Slots() []Slot {
	s := make([]Slot, slotN)
	for i := range s {
		s[i] = Slot(i)
	}
	return s
}

// Material is a physically based material parameter set.
// Maps are optional; a missing map leaves the scalar parameters alone.
type Material struct {

	// Name names the baked texture in the scene.
	Name string

	// Tint multiplies the color map. The zero value is white.
	Tint color.RGBA

	// Maps holds the textures bound to each slot.
	Maps map[Slot]*textures.Texture

	// Roughness multiplies the roughness map, 1 = fully rough.
	Roughness float32

	// Metalness multiplies the metalness map, 0 = dielectric.
	Metalness float32

	// AOIntensity is how strongly the AO map darkens, 0 to 1.
	AOIntensity float32

	// NormalStrength scales the shading contribution of the normal map.
	NormalStrength float32

	// DisplacementScale and DisplacementBias map the displacement
	// value h to an offset along the normal of h*scale + bias.
	DisplacementScale float32
	DisplacementBias  float32

	// Transparent marks the material as blended rather than opaque.
	Transparent bool
}

// New returns a material with default parameters:
// white tint, roughness 1, metalness 0, full AO and normal strength,
// and unit displacement scale.
func New(name string) *Material {
	return &Material{
		Name:              name,
		Tint:              color.RGBA{255, 255, 255, 255},
		Maps:              map[Slot]*textures.Texture{},
		Roughness:         1,
		AOIntensity:       1,
		NormalStrength:    1,
		DisplacementScale: 1,
	}
}

// SetMap binds tx to the slot and returns the material.
func (m *Material) SetMap(s Slot, tx *textures.Texture) *Material {
	if m.Maps == nil {
		m.Maps = map[Slot]*textures.Texture{}
	}
	m.Maps[s] = tx
	if s == Alpha {
		m.Transparent = true
	}
	return m
}

// Map returns the texture bound to the slot, or nil.
func (m *Material) Map(s Slot) *textures.Texture {
	return m.Maps[s]
}

// Textures returns the distinct bound textures.
func (m *Material) Textures() []*textures.Texture {
	var txs []*textures.Texture
	seen := map[*textures.Texture]bool{}
	for _, s := range Slots() {
		tx := m.Maps[s]
		if tx == nil || seen[tx] {
			continue
		}
		seen[tx] = true
		txs = append(txs, tx)
	}
	return txs
}

// NeedsBake returns whether any map that contributes to the baked
// color texture is bound.
func (m *Material) NeedsBake() bool {
	return m.Map(Color) != nil || m.Map(AO) != nil || m.Map(Alpha) != nil || m.Map(Normal) != nil
}

func (m *Material) tint() color.RGBA {
	if m.Tint == (color.RGBA{}) {
		return color.RGBA{255, 255, 255, 255}
	}
	return m.Tint
}
