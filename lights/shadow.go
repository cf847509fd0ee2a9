// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lights

import (
	"errors"
	"fmt"
	"log/slog"
	"math/bits"
)

// ShadowMapType is the shadow map filtering algorithm of a renderer.
type ShadowMapType int32

const (
	// Basic is unfiltered.
	Basic ShadowMapType = iota

	// PCF is percentage-closer filtered.
	PCF

	// PCFSoft is percentage-closer filtered with softer edges.
	// The per-light radius is ignored.
	PCFSoft

	// VSM is a variance shadow map.
	VSM
)

var shadowMapNames = [...]string{"basic", "pcf", "pcf-soft", "vsm"}

func (s ShadowMapType) String() string {
	if s >= 0 && int(s) < len(shadowMapNames) {
		return shadowMapNames[s]
	}
	return fmt.Sprintf("ShadowMapType(%d)", int32(s))
}

// MarshalText implements [encoding.TextMarshaler].
func (s ShadowMapType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *ShadowMapType) UnmarshalText(text []byte) error {
	for i, nm := range shadowMapNames {
		if nm == string(text) {
			*s = ShadowMapType(i)
			return nil
		}
	}
	return fmt.Errorf("lights: unknown shadow map type %q (want one of %v)", text, shadowMapNames)
}

// Renderer is the renderer-wide shadow configuration.
type Renderer struct {
	Enabled bool
	Type    ShadowMapType
}

// ErrNotShadowCapable is returned when shadows are requested from a light
// kind that cannot cast them.
var ErrNotShadowCapable = errors.New("lights: light kind cannot cast shadows")

// Capable returns whether lights of the kind can cast shadows.
func Capable(k Kind) bool {
	return k == Directional || k == Point || k == Spot
}

// Shadow is the shadow configuration of one light. Directional lights use
// an orthographic shadow camera bounded by Left, Right, Top and Bottom;
// the others use a perspective one.
type Shadow struct {
	Cast bool

	// MapSize is the shadow map resolution, a power of two.
	// Zero means 512.
	MapSize int

	Near float32
	Far  float32

	Left   float32
	Right  float32
	Top    float32
	Bottom float32

	// Radius blurs the shadow edge, except under [PCFSoft].
	Radius float32

	Bias float32
}

// DefaultShadow returns the default shadow configuration:
// a 512 map over [0.5, 500], with a ±5 orthographic box.
func DefaultShadow() Shadow {
	return Shadow{Cast: true, MapSize: 512, Near: 0.5, Far: 500, Left: -5, Right: 5, Top: 5, Bottom: -5, Radius: 1}
}

// Size returns the map size, defaulting to 512.
func (s *Shadow) Size() int {
	if s.MapSize == 0 {
		return 512
	}
	return s.MapSize
}

// Validate checks the configuration for a light of the given kind.
func (s *Shadow) Validate(k Kind) error {
	if !s.Cast {
		return nil
	}
	if !Capable(k) {
		return fmt.Errorf("%w: %v", ErrNotShadowCapable, k)
	}
	var errs []error
	if sz := s.Size(); sz <= 0 || bits.OnesCount(uint(sz)) != 1 {
		errs = append(errs, fmt.Errorf("%w: shadow map size %d is not a power of two", ErrInvalid, sz))
	}
	if s.Near < 0 || s.Near >= s.Far {
		errs = append(errs, fmt.Errorf("%w: shadow near %v must be in [0, far %v)", ErrInvalid, s.Near, s.Far))
	}
	if k == Directional && (s.Left >= s.Right || s.Bottom >= s.Top) {
		errs = append(errs, fmt.Errorf("%w: empty shadow camera box [%v, %v] x [%v, %v]", ErrInvalid, s.Left, s.Right, s.Bottom, s.Top))
	}
	return errors.Join(errs...)
}

// Effective reports, for a light's shadow under the given renderer, whether
// it will be drawn, logging settings the renderer ignores.
func (s *Shadow) Effective(name string, r Renderer) bool {
	if !s.Cast || !r.Enabled {
		return false
	}
	if r.Type == PCFSoft && s.Radius != 0 && s.Radius != 1 {
		slog.Debug("lights: shadow radius is ignored by pcf-soft", "light", name, "radius", s.Radius)
	}
	return true
}
