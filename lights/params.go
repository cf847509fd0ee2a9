// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lights describes lights with the parameters used by
// physically based engines (intensity, distance, decay, cone angle,
// penumbra) and maps them onto the Phong lights of an xyz scene.
package lights

import (
	"errors"
	"fmt"
	"image/color"

	"cogentcore.org/core/math32"
)

// Kind is the type of a light.
type Kind int32

const (
	// Ambient lights every surface equally.
	Ambient Kind = iota

	// Directional lights from a direction, like the sun.
	Directional

	// Hemisphere blends a sky color from above with a ground color from below.
	Hemisphere

	// Point lights in all directions from a position.
	Point

	// Spot lights a cone from a position toward a target.
	Spot

	// RectArea is a rectangular emitter facing its target.
	RectArea
)

var kindNames = [...]string{"ambient", "directional", "hemisphere", "point", "spot", "rect-area"}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Positioned returns whether lights of this kind have a position.
func (k Kind) Positioned() bool {
	return k == Directional || k == Point || k == Spot || k == RectArea
}

// Params are the construction parameters of a light.
// Fields that do not apply to a kind are ignored.
type Params struct {
	Kind Kind

	// Color is the light color. GroundColor is the lower color of a
	// hemisphere light.
	Color       color.RGBA
	GroundColor color.RGBA

	// Intensity scales the color.
	Intensity float32

	// Distance is the range at which point and spot lights reach zero;
	// 0 means unlimited.
	Distance float32

	// Decay is the exponent of distance falloff, 2 being physically correct.
	Decay float32

	// Angle is the spot cone half-angle in radians, at most pi/2.
	Angle float32

	// Penumbra is the fraction of the cone that is softened, 0 to 1.
	Penumbra float32

	// Width and Height are the size of a rect-area light.
	Width  float32
	Height float32

	// Position of the light, and the Target that directional,
	// spot and rect-area lights face.
	Position math32.Vector3
	Target   math32.Vector3

	// Shadow configures shadow casting.
	Shadow Shadow
}

// ErrInvalid is wrapped by parameter validation errors.
var ErrInvalid = errors.New("lights: invalid parameters")

// Validate checks the parameters, including the shadow configuration.
func (p *Params) Validate() error {
	var errs []error
	if p.Intensity < 0 {
		errs = append(errs, fmt.Errorf("%w: negative intensity %v", ErrInvalid, p.Intensity))
	}
	if p.Distance < 0 {
		errs = append(errs, fmt.Errorf("%w: negative distance %v", ErrInvalid, p.Distance))
	}
	if p.Decay < 0 {
		errs = append(errs, fmt.Errorf("%w: negative decay %v", ErrInvalid, p.Decay))
	}
	if p.Kind == Spot {
		if p.Angle <= 0 || p.Angle > math32.Pi/2 {
			errs = append(errs, fmt.Errorf("%w: spot angle %v outside (0, pi/2]", ErrInvalid, p.Angle))
		}
		if p.Penumbra < 0 || p.Penumbra > 1 {
			errs = append(errs, fmt.Errorf("%w: penumbra %v outside [0, 1]", ErrInvalid, p.Penumbra))
		}
	}
	if p.Kind == RectArea && (p.Width < 0 || p.Height < 0) {
		errs = append(errs, fmt.Errorf("%w: negative rect-area size", ErrInvalid))
	}
	if p.Shadow.Cast {
		if err := p.Shadow.Validate(p.Kind); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewAmbient returns ambient light parameters.
func NewAmbient(c color.RGBA, intensity float32) Params {
	return Params{Kind: Ambient, Color: c, Intensity: intensity}
}

// NewDirectional returns directional light parameters shining from
// pos toward the origin.
func NewDirectional(c color.RGBA, intensity float32, pos math32.Vector3) Params {
	return Params{Kind: Directional, Color: c, Intensity: intensity, Position: pos}
}

// NewHemisphere returns hemisphere light parameters.
func NewHemisphere(sky, ground color.RGBA, intensity float32) Params {
	return Params{Kind: Hemisphere, Color: sky, GroundColor: ground, Intensity: intensity}
}

// NewPoint returns point light parameters.
func NewPoint(c color.RGBA, intensity, distance, decay float32, pos math32.Vector3) Params {
	return Params{Kind: Point, Color: c, Intensity: intensity, Distance: distance, Decay: decay, Position: pos}
}

// NewSpot returns spot light parameters, aimed at the origin.
func NewSpot(c color.RGBA, intensity, distance, angle, penumbra, decay float32, pos math32.Vector3) Params {
	return Params{Kind: Spot, Color: c, Intensity: intensity, Distance: distance, Angle: angle,
		Penumbra: penumbra, Decay: decay, Position: pos}
}

// NewRectArea returns rect-area light parameters, facing the origin.
func NewRectArea(c color.RGBA, intensity, width, height float32, pos math32.Vector3) Params {
	return Params{Kind: RectArea, Color: c, Intensity: intensity, Width: width, Height: height, Position: pos}
}
