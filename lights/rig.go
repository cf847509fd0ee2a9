// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lights

import (
	"fmt"
	"image/color"
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/core/tree"
	"cogentcore.org/core/xyz"
)

// entry is one named light of a rig and the xyz lights that render it.
type entry struct {
	params *Params
	offset math32.Vector3
	lights []xyz.Light
	helper *xyz.Solid
}

// Rig owns the lights of a scene by name, keeping their [Params]
// and re-applying them to the scene's Phong lights on change.
// Some kinds are rendered by several Phong lights: a hemisphere light
// is an ambient fill plus sky and ground directionals, and a rect-area
// light is a wide spot.
type Rig struct {
	Scene *xyz.Scene

	entries map[string]*entry
	order   []string
}

// NewRig returns a rig adding lights to sc.
func NewRig(sc *xyz.Scene) *Rig {
	return &Rig{Scene: sc, entries: map[string]*entry{}}
}

// Add validates p and adds it as a light with the given name,
// returning a pointer to the rig's copy of the parameters, which can be
// bound to sliders and re-applied with [Rig.Sync].
func (r *Rig) Add(name string, p Params) (*Params, error) {
	if _, ok := r.entries[name]; ok {
		return nil, fmt.Errorf("lights: duplicate light %q", name)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("light %q: %w", name, err)
	}
	e := &entry{params: &p}
	e.lights = r.create(name, &p)
	r.entries[name] = e
	r.order = append(r.order, name)
	r.apply(e)
	return e.params, nil
}

// MustAdd is like [Rig.Add] but panics on invalid parameters.
// It is meant for lights built from constants.
func (r *Rig) MustAdd(name string, p Params) *Params {
	pp, err := r.Add(name, p)
	if err != nil {
		panic(err)
	}
	return pp
}

func (r *Rig) create(name string, p *Params) []xyz.Light {
	sc := r.Scene
	switch p.Kind {
	case Ambient:
		return []xyz.Light{xyz.NewAmbient(sc, name, 0, xyz.DirectSun)}
	case Directional:
		return []xyz.Light{xyz.NewDirectional(sc, name, 0, xyz.DirectSun)}
	case Hemisphere:
		return []xyz.Light{
			xyz.NewAmbient(sc, name+"-fill", 0, xyz.DirectSun),
			xyz.NewDirectional(sc, name+"-sky", 0, xyz.DirectSun),
			xyz.NewDirectional(sc, name+"-ground", 0, xyz.DirectSun),
		}
	case Point:
		return []xyz.Light{xyz.NewPoint(sc, name, 0, xyz.DirectSun)}
	case Spot, RectArea:
		return []xyz.Light{xyz.NewSpot(sc, name, 0, xyz.DirectSun)}
	}
	return nil
}

// apply writes the entry's parameters into its xyz lights.
func (r *Rig) apply(e *entry) {
	p := e.params
	pos := p.Position.Add(e.offset)
	target := p.Target.Add(e.offset)
	lumens := Lumens(p)
	set := func(lt xyz.Light, c color.RGBA, lm float32) {
		lb := lt.AsLightBase()
		lb.Color = c
		lb.Lumens = lm
	}
	switch p.Kind {
	case Ambient:
		set(e.lights[0], p.Color, lumens)
	case Directional:
		set(e.lights[0], p.Color, lumens)
		e.lights[0].(*xyz.Directional).Pos = pos.Sub(target)
	case Hemisphere:
		half := lumens / 2
		set(e.lights[0], Mix(p.Color, p.GroundColor), half)
		set(e.lights[1], p.Color, half)
		e.lights[1].(*xyz.Directional).Pos = math32.Vec3(0, 1, 0)
		set(e.lights[2], p.GroundColor, half)
		e.lights[2].(*xyz.Directional).Pos = math32.Vec3(0, -1, 0)
	case Point:
		set(e.lights[0], p.Color, lumens)
		pl := e.lights[0].(*xyz.Point)
		pl.Pos = pos
		pl.LinDecay, pl.QuadDecay = FitDecay(p.Distance, p.Decay)
	case Spot, RectArea:
		set(e.lights[0], p.Color, lumens)
		sl := e.lights[0].(*xyz.Spot)
		sl.Pose.Pos = pos
		aim(sl, target)
		if p.Kind == Spot {
			sl.CutoffAngle = SpotCutoff(p.Angle)
			sl.AngDecay = AngularDecay(p.Penumbra)
			sl.LinDecay, sl.QuadDecay = FitDecay(p.Distance, p.Decay)
		} else {
			sl.CutoffAngle = SpotCutoff(RectAreaAngle)
			sl.AngDecay = 1
			sl.LinDecay, sl.QuadDecay = FitDecay(0, 2)
		}
	}
	for _, lt := range e.lights {
		r.Scene.AddLight(lt) // replaces by name, uploading when live
	}
	if e.helper != nil {
		e.helper.Pose.Pos = pos
		e.helper.Material.Emissive = p.Color
	}
}

// aim points a spot at target, picking an up direction that is not
// parallel to the view direction.
func aim(sl *xyz.Spot, target math32.Vector3) {
	dir := target.Sub(sl.Pose.Pos)
	if dir.Length() == 0 {
		return
	}
	up := math32.Vec3(0, 1, 0)
	if math32.Abs(dir.Normal().Dot(up)) > 0.999 {
		up = math32.Vec3(0, 0, -1)
	}
	sl.LookAt(target, up)
}

// Params returns the parameters of the named light, or nil.
func (r *Rig) Params(name string) *Params {
	if e, ok := r.entries[name]; ok {
		return e.params
	}
	return nil
}

// Names returns the light names in the order they were added.
func (r *Rig) Names() []string {
	return append([]string(nil), r.order...)
}

// Sync re-applies the named light's parameters after they were edited.
// Invalid parameters are reported and the light keeps its previous state.
func (r *Rig) Sync(name string) error {
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("lights: unknown light %q", name)
	}
	if err := e.params.Validate(); err != nil {
		return fmt.Errorf("light %q: %w", name, err)
	}
	r.apply(e)
	return nil
}

// SetPosition moves the named light.
func (r *Rig) SetPosition(name string, pos math32.Vector3) {
	if e, ok := r.entries[name]; ok {
		e.params.Position = pos
		r.apply(e)
	}
}

// SetOffset sets the translation of the frame the named light's
// position and target are expressed in, for lights that belong to a
// translated group.
func (r *Rig) SetOffset(name string, off math32.Vector3) {
	if e, ok := r.entries[name]; ok {
		e.offset = off
		r.apply(e)
	}
}

// SetOn turns the named light on or off.
func (r *Rig) SetOn(name string, on bool) {
	if e, ok := r.entries[name]; ok {
		for _, lt := range e.lights {
			lt.AsLightBase().On = on
		}
	}
}

// Lights returns the xyz lights rendering the named light.
func (r *Rig) Lights(name string) []xyz.Light {
	if e, ok := r.entries[name]; ok {
		return e.lights
	}
	return nil
}

// ShadowCasters returns the names of lights that cast shadows under the renderer.
func (r *Rig) ShadowCasters(rd Renderer) []string {
	var names []string
	for _, nm := range r.order {
		if r.entries[nm].params.Shadow.Effective(nm, rd) {
			names = append(names, nm)
		}
	}
	return names
}

// IsHelper returns whether sld is the marker of one of the lights.
func (r *Rig) IsHelper(sld *xyz.Solid) bool {
	for _, e := range r.entries {
		if e.helper == sld {
			return true
		}
	}
	return false
}

// AddHelpers adds a small emissive marker under parent for every
// positioned light, which follows the light on later changes.
func (r *Rig) AddHelpers(parent tree.Node) {
	ms := xyz.NewSphere(r.Scene, "light-helper", 0.08, 12)
	for _, nm := range r.order {
		e := r.entries[nm]
		if !e.params.Kind.Positioned() || e.helper != nil {
			continue
		}
		e.helper = xyz.NewSolid(parent).SetMesh(ms)
		e.helper.SetName(nm + "-helper")
		r.apply(e)
	}
	slog.Debug("lights: added helpers", "lights", len(r.order))
}
