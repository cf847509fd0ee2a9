// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package params

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Preset is a saved set of slider values.
type Preset struct {
	Title  string             `toml:"title" yaml:"title"`
	Values map[string]float32 `toml:"values" yaml:"values"`
}

// Format is a preset file format.
type Format int32

const (
	TOML Format = iota
	YAML
)

func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "toml"
}

// FormatFromPath returns the format for a file name by its extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("params: preset %q must be .toml, .yaml or .yml", path)
}

// Snapshot returns a deep copy of the defaults recorded by [Panel.Freeze].
func (p *Panel) Snapshot() (Preset, error) {
	var snap Preset
	if err := copier.CopyWithOption(&snap, &p.defaults, copier.Option{DeepCopy: true}); err != nil {
		return Preset{}, fmt.Errorf("params: snapshot %q: %w", p.Title, err)
	}
	return snap, nil
}

// Preset returns the live values as a preset.
func (p *Panel) Preset() Preset {
	return Preset{Title: p.Title, Values: p.Values()}
}

// WritePreset writes the live values to w.
func (p *Panel) WritePreset(w io.Writer, f Format) error {
	pr := p.Preset()
	if f == YAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&pr); err != nil {
			return err
		}
		return enc.Close()
	}
	return toml.NewEncoder(w).Encode(&pr)
}

// ReadPreset decodes a preset from r.
func ReadPreset(r io.Reader, f Format) (Preset, error) {
	var pr Preset
	var err error
	if f == YAML {
		err = yaml.NewDecoder(r).Decode(&pr)
	} else {
		err = toml.NewDecoder(r).Decode(&pr)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("params: reading %v preset: %w", f, err)
	}
	return pr, nil
}

// SaveFile writes the live values to a file, in the format of its extension.
func (p *Panel) SaveFile(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.WritePreset(fp, f); err != nil {
		fp.Close()
		return err
	}
	return fp.Close()
}

// LoadFile reads a preset file and applies it. A preset that does not
// parse leaves the panel unchanged; unknown keys are reported after
// the known ones are applied.
func (p *Panel) LoadFile(path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	pr, err := ReadPreset(fp, f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return p.Apply(pr.Values)
}
