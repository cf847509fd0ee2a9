// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lessons

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/anim"
	"github.com/gloamlab/gloam/lesson"
	"github.com/gloamlab/gloam/lights"
	"github.com/gloamlab/gloam/pbr"
	"github.com/gloamlab/gloam/shadows"
	"github.com/gloamlab/gloam/textures"
)

// SimpleShadowFile is the blob shadow shape, relative to the assets.
const SimpleShadowFile = "textures/simpleShadow.jpg"

// Shadows bounces a sphere over a floor with a baked blob shadow
// under it. The lights are configured for shadow maps, which the
// renderer leaves off.
type Shadows struct {
	Sphere *xyz.Solid
	Floor  *xyz.Solid
	Caster *shadows.Caster
}

func (l *Shadows) Name() string  { return "shadows" }
func (l *Shadows) Title() string { return "Shadows" }

func (l *Shadows) Build(st *lesson.Stage) error {
	sc := st.Scene
	camera(sc, 75, 0.1, 100, math32.Vec3(0, 0, 6))
	st.Renderer.Enabled = false

	white := hex(0xffffff)
	rig := st.Rig
	amb, err := rig.Add("ambient", lights.NewAmbient(white, 0.3))
	if err != nil {
		return err
	}

	dp := lights.NewDirectional(white, 2, math32.Vec3(2, 2, -1))
	dp.Shadow = lights.Shadow{Cast: true, MapSize: 1024, Near: 1, Far: 6,
		Left: -2, Right: 2, Top: 2, Bottom: -2, Radius: 10}
	dir, err := rig.Add("directional", dp)
	if err != nil {
		return err
	}

	sp := lights.NewSpot(white, 8, 19, math32.Pi/4, 0.3, 2, math32.Vec3(0, 3, 3))
	sp.Shadow = lights.Shadow{Cast: true, MapSize: 1024, Near: 1, Far: 6.5, Radius: 1}
	if _, err := rig.Add("spot", sp); err != nil {
		return err
	}

	pp := lights.NewPoint(white, 24, 19, 2, math32.Vec3(0, 3.5, 0.3))
	pp.Shadow = lights.Shadow{Cast: true, MapSize: 1024, Near: 1, Far: 4, Radius: 1}
	if _, err := rig.Add("point", pp); err != nil {
		return err
	}

	mat := pbr.New("standard")
	mat.Roughness = 0.4

	l.Sphere = xyz.NewSolid(sc).SetMesh(xyz.NewSphere(sc, "sphere", 0.75, 32))
	l.Sphere.SetName("sphere")
	l.Sphere.Pose.Pos.Set(0, 0.5, 0)
	pbr.ApplyParams(l.Sphere, mat)

	l.Floor = xyz.NewSolid(sc).SetMesh(xyz.NewPlane(sc, "plane", 6.75, 6.75))
	l.Floor.SetName("plane")
	l.Floor.Pose.Pos.Set(0, -0.5, 0)
	pbr.ApplyParams(l.Floor, mat)

	blobs := shadows.New(sc, sc, -0.5, textures.RadialBlob(128))
	l.Caster = blobs.Add(l.Sphere, 0.75)
	// the bounce touches down at y = 0, not at the sphere's radius
	l.Caster.Rest = 0
	st.Blobs = blobs

	tx := st.Loader.Load(textures.NewSpec(SimpleShadowFile).WithColorSpace(textures.SRGB))
	tx.OnLoad(func(tx *textures.Texture) {
		st.Update(func() { blobs.SetAlpha(tx.Image()) })
	})

	p := st.Panel
	p.Add(&amb.Intensity, "ambientLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "ambient"))
	p.Add(&dir.Intensity, "directionalLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "directional"))
	p.Add(&blobs.Base, "shadowOpacity").Range(0, 1).SetStep(0.001)

	st.OnTick(func(t float32) {
		l.Sphere.Pose.Pos = anim.Bounce(t)
	})
	return nil
}
