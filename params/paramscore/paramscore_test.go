// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paramscore

import (
	"testing"

	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"github.com/gloamlab/gloam/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPanel(intensity, scale *float32) *params.Panel {
	p := params.NewPanel("Lights", 300)
	p.Add(intensity, "Intensity").Range(0, 3).SetStep(0.001)
	p.AddFolder("Floor").Add(scale, "Scale").Range(0, 1).SetStep(0.001)
	p.Freeze()
	return p
}

func sliders(fr *core.Frame) map[string]*core.Slider {
	m := map[string]*core.Slider{}
	fr.WidgetWalkDown(func(cw core.Widget, cwb *core.WidgetBase) bool {
		if sr, ok := cw.(*core.Slider); ok {
			m[sr.Parent.AsTree().Name] = sr
		}
		return true
	})
	return m
}

func TestBuild(t *testing.T) {
	intensity, scale := float32(1.5), float32(0.3)
	b := core.NewBody()
	fr := Build(b, testPanel(&intensity, &scale), Options{})
	ss := sliders(fr)
	require.Len(t, ss, 2)

	sr := ss["slider-Intensity"]
	require.NotNil(t, sr)
	assert.Equal(t, float32(1.5), sr.Value)
	assert.Equal(t, float32(0), sr.Min)
	assert.Equal(t, float32(3), sr.Max)
	assert.Equal(t, float32(0.001), sr.Step)
	assert.True(t, sr.EnforceStep)

	sr = ss["slider-Floor/Scale"]
	require.NotNil(t, sr)
	assert.Equal(t, float32(0.3), sr.Value)
	assert.Equal(t, float32(1), sr.Max)
}

func TestSliderInput(t *testing.T) {
	intensity, scale := float32(1.5), float32(0.3)
	p := testPanel(&intensity, &scale)
	var fired []float32
	p.Slider("Intensity").OnChange(func(v float32) { fired = append(fired, v) })
	changed := 0

	b := core.NewBody()
	fr := Build(b, p, Options{Changed: func() { changed++ }})
	sr := sliders(fr)["slider-Intensity"]
	require.NotNil(t, sr)

	sr.SetValue(2.25)
	sr.Send(events.Input)
	assert.Equal(t, float32(2.25), intensity)
	assert.Equal(t, []float32{2.25}, fired)
	assert.Equal(t, 1, changed)

	sr.SetValue(7)
	sr.Send(events.Change)
	assert.Equal(t, float32(3), intensity)
	assert.Equal(t, 2, changed)
}

func TestPresetButton(t *testing.T) {
	intensity, scale := float32(1), float32(0)
	b := core.NewBody()
	fr := Build(b, testPanel(&intensity, &scale), Options{PresetFile: "preset.toml"})
	var labels []string
	fr.WidgetWalkDown(func(cw core.Widget, cwb *core.WidgetBase) bool {
		if bt, ok := cw.(*core.Button); ok {
			labels = append(labels, bt.Text)
		}
		return true
	})
	assert.Equal(t, []string{"Reset", "Save preset"}, labels)
}
