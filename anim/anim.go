// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package anim provides closed-form animation functions of elapsed time
// and a simple frame clock to drive them.
//
// Every function here is a pure function of its inputs: given the same
// elapsed time it returns the same value, holds no state, and cannot fail.
// Lessons call them once per frame and write the results into the scene.
package anim

import (
	"cogentcore.org/core/math32"
)

// Orbit is a horizontal circular path with a wobbling height,
// used for the ghost lights that circle the haunted house.
type Orbit struct {

	// Radius is the radius of the circle in the horizontal plane.
	Radius float32

	// Speed is the angular speed in radians per second.
	// Negative values orbit clockwise.
	Speed float32
}

// Angle returns the orbit angle at elapsed time t.
func (o Orbit) Angle(t float32) float32 {
	return t * o.Speed
}

// At returns the position on the orbit at elapsed time t.
// X and Z lie on the circle of [Orbit.Radius]; Y is the product of
// three sines of the angle at incommensurate rates, so it stays in [-1, 1]
// and never visibly repeats.
func (o Orbit) At(t float32) math32.Vector3 {
	a := o.Angle(t)
	return math32.Vec3(
		math32.Cos(a)*o.Radius,
		math32.Sin(a)*math32.Sin(a*2.34)*math32.Sin(a*3.45),
		math32.Sin(a)*o.Radius,
	)
}

// Bounce returns the position of a ball that circles the origin on the
// unit circle while hopping four times per revolution: x = cos t,
// z = sin t, and y = |sin 4t|.
func Bounce(t float32) math32.Vector3 {
	return math32.Vec3(math32.Cos(t), math32.Abs(math32.Sin(t*4)), math32.Sin(t))
}

// BlobOpacity is the opacity of a baked shadow blob under a caster
// at height y above the receiver: fully dark (0.5) on contact and
// fading to nothing at height 1.
func BlobOpacity(y float32) float32 {
	return math32.Clamp((1-y)*0.5, 0, 0.5)
}

// Spin is a constant-rate rotation about the X and Y axes,
// in radians per second.
type Spin struct {
	RateX float32
	RateY float32
}

// At returns the X and Y rotation angles, in radians, at elapsed time t.
func (s Spin) At(t float32) (x, y float32) {
	return s.RateX * t, s.RateY * t
}

// Degrees returns the rotation at elapsed time t as Euler angles in degrees,
// in the form used by xyz poses.
func (s Spin) Degrees(t float32) math32.Vector3 {
	x, y := s.At(t)
	return math32.Vec3(math32.RadToDeg(x), math32.RadToDeg(y), 0)
}
