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
)

// Lights shows one light of every kind on three spinning shapes
// over a floor, all sharing one material.
type Lights struct {
	// Spin is the rotation rate of the shapes.
	Spin anim.Spin

	// Shapes are the sphere, cube and torus, in that order.
	Shapes []*xyz.Solid
	Floor  *xyz.Solid
}

func (l *Lights) Name() string  { return "lights" }
func (l *Lights) Title() string { return "Lights" }

func (l *Lights) Build(st *lesson.Stage) error {
	sc := st.Scene
	camera(sc, 75, 0.1, 100, math32.Vec3(0, 0, 6))
	st.Panel.Width = 300

	rig := st.Rig
	amb, err := rig.Add("ambient", lights.NewAmbient(hex(0xffffff), 1))
	if err != nil {
		return err
	}
	dir, err := rig.Add("directional", lights.NewDirectional(hex(0x00fffc), 1, math32.Vec3(1, 0.25, 0)))
	if err != nil {
		return err
	}
	hemi, err := rig.Add("hemisphere", lights.NewHemisphere(hex(0xff0000), hex(0x0000ff), 0.9))
	if err != nil {
		return err
	}
	point, err := rig.Add("point", lights.NewPoint(hex(0xff9000), 1.5, 10, 2, math32.Vec3(1, -0.1, 1)))
	if err != nil {
		return err
	}
	rect, err := rig.Add("rect-area", lights.NewRectArea(hex(0x4e00ff), 6, 1, 1, math32.Vec3(-1.5, 0, 1.5)))
	if err != nil {
		return err
	}
	sp := lights.NewSpot(hex(0x78ff00), 4.5, 10, math32.Pi*0.1, 0.25, 1, math32.Vec3(0, 2, 3))
	sp.Target = math32.Vec3(-1.5, 0, 0)
	spot, err := rig.Add("spot", sp)
	if err != nil {
		return err
	}

	p := st.Panel
	p.Add(&amb.Intensity, "ambientLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "ambient"))
	p.Add(&dir.Intensity, "directionalLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "directional"))
	p.Add(&hemi.Intensity, "hemisphereLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "hemisphere"))
	p.Add(&point.Intensity, "pointLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "point"))
	p.Add(&point.Distance, "pointLightDistance").Range(0, 10).SetStep(0.001).OnChange(resync(st, "point"))
	p.Add(&rect.Intensity, "rectAreaLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "rect-area"))
	p.Add(&rect.Width, "rectAreaLightWidth").Range(0, 3).SetStep(0.001).OnChange(resync(st, "rect-area"))
	p.Add(&rect.Height, "rectAreaLightHeight").Range(0, 3).SetStep(0.001).OnChange(resync(st, "rect-area"))
	p.Add(&spot.Intensity, "spotLightIntensity").Range(0, 3).SetStep(0.001).OnChange(resync(st, "spot"))
	p.Add(&spot.Angle, "spotLightAngle").Range(0.001, math32.Pi/2).SetStep(0.001).OnChange(resync(st, "spot"))
	p.Add(&spot.Penumbra, "spotLightPenumbra").Range(0, 1).SetStep(0.001).OnChange(resync(st, "spot"))
	p.Add(&spot.Distance, "spotLightDistance").Range(0, 10).SetStep(0.001).OnChange(resync(st, "spot"))
	p.Add(&spot.Decay, "spotLightDecay").Range(0, 2).SetStep(0.001).OnChange(resync(st, "spot"))

	mat := pbr.New("standard")
	mat.Roughness = 0.4

	add := func(name string, ms xyz.Mesh, x, y float32) *xyz.Solid {
		sld := xyz.NewSolid(sc).SetMesh(ms)
		sld.SetName(name)
		sld.Pose.Pos.Set(x, y, 0)
		pbr.ApplyParams(sld, mat)
		return sld
	}
	l.Shapes = []*xyz.Solid{
		add("sphere", xyz.NewSphere(sc, "sphere", 0.75, 32), -2.5, 0.5),
		add("cube", xyz.NewBox(sc, "cube", 1, 1, 1), 0, 0.5),
		add("torus", xyz.NewTorus(sc, "torus", 0.6, 0.3, 60), 2.5, 0.5),
	}
	l.Floor = add("plane", xyz.NewPlane(sc, "plane", 6.75, 6.75), 0, -0.5)

	l.Spin = anim.Spin{RateX: -0.15, RateY: 0.3}
	st.OnTick(func(t float32) {
		rot := l.Spin.Degrees(t)
		for _, sld := range l.Shapes {
			sld.Pose.SetEulerRotation(rot.X, rot.Y, rot.Z)
		}
	})
	return nil
}
