// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lights

import (
	"image/color"

	"cogentcore.org/core/math32"
)

// Falloff is the distance attenuation of a punctual light at distance d:
// 1/max(d^decay, 0.01), multiplied by the smooth window (1-(d/distance)^4)^2
// when distance is positive so that it reaches exactly zero at distance.
// It is 1 at unit distance and peaks at 100 close to the light.
func Falloff(d, distance, decay float32) float32 {
	d = math32.Max(d, 0)
	f := 1 / math32.Max(math32.Pow(d, decay), 0.01)
	if distance > 0 {
		r := d / distance
		w := math32.Clamp(1-r*r*r*r, 0, 1)
		f *= w * w
	}
	return f
}

// FitDecay returns the linear and quadratic factors of the
// 1/(1 + linear*d + quadratic*d^2) attenuation used by the Phong
// renderer that best match [Falloff] in the least-squares sense.
// The Phong attenuation never exceeds 1, so the fit is sampled from
// unit distance out to 90% of distance (or 10 units when unlimited).
// Both factors are non-negative.
func FitDecay(distance, decay float32) (linear, quadratic float32) {
	const n = 32
	reach := float32(10)
	if distance > 0 {
		reach = distance * 0.9
	}
	lo := math32.Min(1, reach/n)
	// normal equations of y = a*d + b*d^2
	var sdd, sddd, sdddd, sdy, sddy float64
	for i := 0; i <= n; i++ {
		d := lo + (reach-lo)*float32(i)/n
		f := Falloff(d, distance, decay)
		y := float64(math32.Clamp(1/math32.Max(f, 1e-4)-1, 0, 1e4))
		dd := float64(d)
		sdd += dd * dd
		sddd += dd * dd * dd
		sdddd += dd * dd * dd * dd
		sdy += dd * y
		sddy += dd * dd * y
	}
	det := sdd*sdddd - sddd*sddd
	var a, b float64
	if det != 0 {
		a = (sdy*sdddd - sddy*sddd) / det
		b = (sdd*sddy - sddd*sdy) / det
	}
	switch {
	case a < 0 && b < 0:
		a, b = 0, 0
	case a < 0:
		a, b = 0, sddy/sdddd
	case b < 0:
		a, b = sdy/sdd, 0
	}
	return float32(max(a, 0)), float32(max(b, 0))
}

// SpotCutoff converts a cone half-angle in radians to the
// cutoff angle in degrees used by the Phong renderer, at most 90.
func SpotCutoff(angle float32) float32 {
	return math32.Clamp(math32.RadToDeg(angle), 1, 90)
}

// AngularDecay converts a penumbra fraction to the exponent of the
// angular falloff within the cone, pow(cos, exponent): a flat cone with
// a hard edge for penumbra 0, and a soft edge that fades from the axis
// for penumbra 1.
func AngularDecay(penumbra float32) float32 {
	return 1 + 29*math32.Clamp(penumbra, 0, 1)
}

// Lumens converts an intensity to Phong light strength.
// Punctual lights are specified in candela, and are divided by pi;
// a rect-area light is additionally scaled by its area.
func Lumens(p *Params) float32 {
	switch p.Kind {
	case Point, Spot:
		return p.Intensity / math32.Pi
	case RectArea:
		return p.Intensity * p.Width * p.Height / math32.Pi
	}
	return p.Intensity
}

// Mix returns the average of two colors.
func Mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R) + 1) / 2),
		G: uint8((uint16(a.G) + uint16(b.G) + 1) / 2),
		B: uint8((uint16(a.B) + uint16(b.B) + 1) / 2),
		A: 255,
	}
}

// RectAreaAngle is the cone half-angle of the spot that stands in for a
// rect-area light: wide, since the emitter lights a half space.
const RectAreaAngle = 80 * math32.DegToRadFactor
