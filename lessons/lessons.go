// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lessons contains the lighting lessons: a tour of light kinds,
// baked shadows, and a haunted house at night. Importing it registers
// them with package lesson.
package lessons

import (
	"image/color"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/xyz"
	"github.com/gloamlab/gloam/lesson"
)

func init() {
	lesson.Register(&Lights{})
	lesson.Register(&Shadows{})
	lesson.Register(&Haunted{})
}

// hex returns the opaque color 0xRRGGBB.
func hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// resync returns a slider callback that re-applies the named light.
func resync(st *lesson.Stage, name string) func(float32) {
	return func(float32) {
		errors.Log(st.Rig.Sync(name))
	}
}

// camera sets a perspective camera at pos looking at the origin.
func camera(sc *xyz.Scene, fov, near, far float32, pos math32.Vector3) {
	sc.Camera.FOV = fov
	sc.Camera.Near = near
	sc.Camera.Far = far
	sc.Camera.Pose.Pos = pos
	sc.Camera.LookAt(math32.Vector3{}, math32.Vec3(0, 1, 0))
}
