// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lessons

import (
	"path"

	"github.com/gloamlab/gloam/pbr"
	"github.com/gloamlab/gloam/textures"
)

// surfaceSet is a downloaded PBR texture set: diffuse color,
// OpenGL normal and packed AO/roughness/metalness maps named
// <dir>/<set>_1k/<set>_<map>_1k.webp.
type surfaceSet struct {
	dir string
	set string
}

func (s surfaceSet) file(kind string) string {
	return path.Join("resources", s.dir, s.set+"_1k", s.set+"_"+kind+"_1k.webp")
}

// tiling is how a surface set repeats.
type tiling struct {
	u, v         float32
	wrapS, wrapT textures.Wrapping
}

func (t tiling) apply(sp textures.Spec) textures.Spec {
	if t.u == 0 && t.v == 0 {
		return sp
	}
	return sp.WithRepeat(t.u, t.v).WithWrap(t.wrapS, t.wrapT)
}

var (
	floorSet = surfaceSet{"floor", "coast_sand_rocks_02"}
	wallSet  = surfaceSet{"wall", "castle_brick_broken_06"}
	roofSet  = surfaceSet{"roof", "roof_slates_02"}
	bushSet  = surfaceSet{"bush", "leaves_forest_ground"}
	graveSet = surfaceSet{"grave", "plastered_stone_wall"}

	floorTiling = tiling{8, 8, textures.Repeat, textures.Repeat}
	roofTiling  = tiling{3, 1, textures.Repeat, textures.ClampToEdge}
	bushTiling  = tiling{2, 1, textures.Repeat, textures.ClampToEdge}
	graveTiling = tiling{0.3, 0.4, textures.Repeat, textures.Repeat}
)

const (
	floorAlphaFile = "resources/floor/alpha.webp"
	doorDir        = "resources/door"
)

// surfaceMaterial starts loading a surface set and returns a material
// using its color, normal and packed maps.
func surfaceMaterial(ld *textures.Loader, name string, s surfaceSet, t tiling) *pbr.Material {
	m := pbr.New(name)
	arm := ld.Load(t.apply(textures.NewSpec(s.file("arm"))))
	m.SetMap(pbr.Color, ld.Load(t.apply(textures.NewSpec(s.file("diff"))).WithColorSpace(textures.SRGB)))
	m.SetMap(pbr.Normal, ld.Load(t.apply(textures.NewSpec(s.file("nor_gl")))))
	m.SetMap(pbr.AO, arm)
	m.SetMap(pbr.Roughness, arm)
	m.SetMap(pbr.Metalness, arm)
	return m
}

// floorMaterial returns the floor material and its displacement map.
func floorMaterial(ld *textures.Loader) (*pbr.Material, *textures.Texture) {
	m := surfaceMaterial(ld, "floor", floorSet, floorTiling)
	m.SetMap(pbr.Alpha, ld.Load(textures.NewSpec(floorAlphaFile)))
	disp := ld.Load(floorTiling.apply(textures.NewSpec(floorSet.file("disp"))))
	m.SetMap(pbr.Displacement, disp)
	m.DisplacementScale = 0.3
	m.DisplacementBias = -0.2
	return m, disp
}

// doorMaterial returns the door material and its height map.
func doorMaterial(ld *textures.Loader) (*pbr.Material, *textures.Texture) {
	door := func(file string) textures.Spec {
		return textures.NewSpec(path.Join(doorDir, file))
	}
	m := pbr.New("door")
	m.SetMap(pbr.Color, ld.Load(door("color.webp").WithColorSpace(textures.SRGB)))
	m.SetMap(pbr.Alpha, ld.Load(door("alpha.webp")))
	m.SetMap(pbr.Normal, ld.Load(door("normal.webp")))
	m.SetMap(pbr.AO, ld.Load(door("ambientOcclusion.webp")))
	m.SetMap(pbr.Roughness, ld.Load(door("roughness.webp")))
	m.SetMap(pbr.Metalness, ld.Load(door("metalness.webp")))
	height := ld.Load(door("height.webp"))
	m.SetMap(pbr.Displacement, height)
	m.DisplacementScale = 0.15
	m.DisplacementBias = -0.04
	return m, height
}
