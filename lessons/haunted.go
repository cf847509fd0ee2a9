// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lessons

import (
	"math/rand/v2"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/anim"
	"github.com/gloamlab/gloam/atmos"
	"github.com/gloamlab/gloam/lesson"
	"github.com/gloamlab/gloam/lights"
	"github.com/gloamlab/gloam/pbr"
	"github.com/gloamlab/gloam/textures"
)

// House dimensions.
const (
	WallWidth  = 4
	WallHeight = 2.5
	WallDepth  = 4

	RoofRadius = 3.5
	RoofHeight = 1.5

	DoorWidth  = 2.2
	DoorHeight = 2.2

	GraveCount  = 30
	GraveWidth  = 0.6
	GraveHeight = 0.8
	GraveDepth  = 0.2

	FloorSize     = 20
	FloorSegments = 100
	DoorSegments  = 100
)

// FogColor is the night fog, which is also the sky.
var FogColor = hex(0x02343f)

// Bush is the placement of one bush sphere.
type Bush struct {
	Scale float32
	Pos   math32.Vector3
}

// Bushes are the bushes by the door.
var Bushes = []Bush{
	{0.5, math32.Vec3(0.8, 0.2, 2.2)},
	{0.25, math32.Vec3(1.4, 0.1, 2.1)},
	{0.4, math32.Vec3(-0.8, 0.1, 2.2)},
	{0.15, math32.Vec3(-1, 0.05, 2.6)},
}

// Grave is the placement of one grave.
type Grave struct {
	Pos math32.Vector3

	// Tilt is the rotation in radians about each axis.
	Tilt float32
}

// Graves scatters n graves around the house: at a random angle,
// at a distance in [3, 7), sunk to a height in [0, GraveHeight/2),
// and tilted by up to 0.2 radians. The same seed gives the same layout.
func Graves(seed uint64, n int) []Grave {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	gs := make([]Grave, n)
	for i := range gs {
		angle := rng.Float32() * 2 * math32.Pi
		radius := 3 + rng.Float32()*4
		y := rng.Float32() * GraveHeight * 0.5
		gs[i] = Grave{
			Pos:  math32.Vec3(math32.Cos(angle)*radius, y, math32.Sin(angle)*radius),
			Tilt: (rng.Float32() - 0.5) * 0.4,
		}
	}
	return gs
}

// Ghost is a colored light circling the house.
type Ghost struct {
	Name  string
	Color uint32
	Orbit anim.Orbit
}

// Ghosts are the three ghost lights.
var Ghosts = []Ghost{
	{"ghost1", 0x8800ff, anim.Orbit{Radius: 4, Speed: 0.5}},
	{"ghost2", 0xff0088, anim.Orbit{Radius: 5, Speed: -0.38}},
	{"ghost3", 0xff0000, anim.Orbit{Radius: 6, Speed: 0.23}},
}

// Haunted is a house at night in a fog-bound graveyard,
// circled by ghost lights.
type Haunted struct {
	House  *xyz.Group
	Floor  *xyz.Solid
	Walls  *xyz.Solid
	Roof   *xyz.Solid
	Door   *xyz.Solid
	Bushes []*xyz.Solid
	Graves []*xyz.Solid

	FloorMaterial *pbr.Material

	// GhostSpeed scales how fast the ghosts circle.
	GhostSpeed float32

	// phase is the ghost time, advanced at GhostSpeed.
	phase, last float32

	floorGrid *pbr.Grid
	doorGrid  *pbr.Grid
}

func (h *Haunted) Name() string  { return "haunted" }
func (h *Haunted) Title() string { return "Haunted House" }

func (h *Haunted) Build(st *lesson.Stage) error {
	sc := st.Scene
	ld := st.Loader
	camera(sc, 75, 0.1, 100, math32.Vec3(4, 2, 5))
	st.Fog = atmos.New(FogColor, 0.1, 22)
	h.GhostSpeed = 1
	h.phase, h.last = 0, 0

	// floor
	floorMat, floorDisp := floorMaterial(ld)
	h.FloorMaterial = floorMat
	h.floorGrid = pbr.PlaneGeometry(FloorSize, FloorSize, FloorSegments, FloorSegments)
	h.Floor = xyz.NewSolid(sc)
	h.Floor.SetName("floor")
	h.Floor.Pose.SetAxisRotation(1, 0, 0, -90)
	rebuildFloor := func() {
		displace(sc, h.Floor, h.floorGrid, "floor", floorDisp, floorMat)
	}
	rebuildFloor()
	floorDisp.OnLoad(func(*textures.Texture) { st.Update(rebuildFloor) })
	st.Material(h.Floor, floorMat)

	h.House = xyz.NewGroup(sc)
	h.House.SetName("house")

	// walls
	h.Walls = xyz.NewSolid(h.House).SetMesh(xyz.NewBox(sc, "walls", WallWidth, WallHeight, WallDepth))
	h.Walls.SetName("walls")
	h.Walls.Pose.Pos.Set(0, WallHeight/2, 0)
	st.Material(h.Walls, surfaceMaterial(ld, "walls", wallSet, tiling{}))

	// roof
	h.Roof = xyz.NewSolid(h.House).SetMesh(xyz.NewCone(sc, "roof", RoofHeight, RoofRadius, 4, 1, true))
	h.Roof.SetName("roof")
	h.Roof.Pose.Pos.Set(0, WallHeight+RoofHeight/2, 0)
	h.Roof.Pose.SetAxisRotation(0, 1, 0, 45)
	st.Material(h.Roof, surfaceMaterial(ld, "roof", roofSet, roofTiling))

	// door
	doorMat, doorHeightMap := doorMaterial(ld)
	h.doorGrid = pbr.PlaneGeometry(DoorWidth, DoorHeight, DoorSegments, DoorSegments)
	h.Door = xyz.NewSolid(h.House)
	h.Door.SetName("door")
	h.Door.Pose.Pos.Set(0, DoorHeight/2-0.1, WallDepth/2+0.01)
	rebuildDoor := func() {
		displace(sc, h.Door, h.doorGrid, "door", doorHeightMap, doorMat)
	}
	rebuildDoor()
	doorHeightMap.OnLoad(func(*textures.Texture) { st.Update(rebuildDoor) })
	st.Material(h.Door, doorMat)

	// bushes
	bushMat := surfaceMaterial(ld, "bush", bushSet, bushTiling)
	bushMat.Tint = hex(0xccffcc)
	bushMesh := xyz.NewSphere(sc, "bush", 1, 16)
	h.Bushes = h.Bushes[:0]
	for _, b := range Bushes {
		sld := xyz.NewSolid(h.House).SetMesh(bushMesh)
		sld.Pose.Pos = b.Pos
		sld.SetScale(b.Scale, b.Scale, b.Scale)
		sld.Pose.SetEulerRotation(math32.RadToDeg(-0.75), 0, 0)
		st.Material(sld, bushMat)
		h.Bushes = append(h.Bushes, sld)
	}

	// graves
	graveMat := surfaceMaterial(ld, "grave", graveSet, graveTiling)
	graveMesh := xyz.NewBox(sc, "grave", GraveWidth, GraveHeight, GraveDepth)
	graves := xyz.NewGroup(sc)
	graves.SetName("graves")
	h.Graves = h.Graves[:0]
	for _, g := range Graves(st.Config.Seed, GraveCount) {
		sld := xyz.NewSolid(graves).SetMesh(graveMesh)
		sld.Pose.Pos = g.Pos
		d := math32.RadToDeg(g.Tilt)
		sld.Pose.SetEulerRotation(d, d, d)
		st.Material(sld, graveMat)
		h.Graves = append(h.Graves, sld)
	}

	if err := h.addLights(st); err != nil {
		return err
	}

	// panel
	p := st.Panel
	ff := p.AddFolder("Floor")
	ff.Add(&floorMat.DisplacementScale, "Displacement Scale").Range(0, 1).SetStep(0.001).
		OnChange(func(float32) { rebuildFloor() })
	ff.Add(&floorMat.DisplacementBias, "Displacement Bias").Range(-1, 1).SetStep(0.001).
		OnChange(func(float32) { rebuildFloor() })
	gf := p.AddFolder("Ghosts")
	gf.Add(&h.GhostSpeed, "Speed").Range(0, 3).SetStep(0.01)

	st.OnTick(h.moveGhosts(st))
	return nil
}

// addLights adds the moonlight, the door lamp and the ghosts.
func (h *Haunted) addLights(st *lesson.Stage) error {
	rig := st.Rig
	moon := hex(0x86cdff)
	if _, err := rig.Add("ambient", lights.NewAmbient(moon, 0.5)); err != nil {
		return err
	}
	dp := lights.NewDirectional(moon, 1.5, math32.Vec3(3, 2, -8))
	dp.Shadow = lights.Shadow{Cast: true, MapSize: 256, Near: 1, Far: 20,
		Left: -8, Right: 8, Top: 8, Bottom: -8, Radius: 1}
	if _, err := rig.Add("directional", dp); err != nil {
		return err
	}
	if _, err := rig.Add("door", lights.NewPoint(hex(0xff7d46), 4, 10, 2, math32.Vec3(0, 2.25, 2.5))); err != nil {
		return err
	}
	rig.SetOffset("door", h.House.Pose.Pos)
	for _, g := range Ghosts {
		gp := lights.NewPoint(hex(g.Color), 6, 0, 2, g.Orbit.At(0))
		gp.Shadow = lights.Shadow{Cast: true, MapSize: 256, Near: 0.5, Far: 10, Radius: 1}
		if _, err := rig.Add(g.Name, gp); err != nil {
			return err
		}
	}
	return nil
}

// moveGhosts returns the tick that moves the ghosts along their orbits.
// Ghost time runs at GhostSpeed, so changing the speed does not make
// the ghosts jump.
func (h *Haunted) moveGhosts(st *lesson.Stage) func(t float32) {
	return func(t float32) {
		dt := t - h.last
		h.last = t
		if dt > 0 {
			h.phase += dt * h.GhostSpeed
		}
		for _, g := range Ghosts {
			st.Rig.SetPosition(g.Name, g.Orbit.At(h.phase))
		}
	}
}

// displace rebuilds a grid mesh with the material's displacement
// applied and sets it on sld. Until the height map loads only the
// bias is applied.
func displace(sc *xyz.Scene, sld *xyz.Solid, g *pbr.Grid, name string, height *textures.Texture, m *pbr.Material) {
	var s *textures.Sampler
	if height.Loaded() {
		s = height.Sampler()
	}
	d := g.Displaced(s, m.DisplacementScale, m.DisplacementBias)
	ms := d.Mesh(name)
	sc.SetMesh(ms)
	sld.SetMesh(ms)
}
