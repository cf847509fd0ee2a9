// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lesson

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"cogentcore.org/core/base/logx"
	"github.com/gloamlab/gloam/lights"
	"github.com/mitchellh/go-homedir"
)

// Config is the configuration of the gloam command,
// read from flags and gloam.toml.
type Config struct {

	// Lesson is the name of the lesson to show.
	Lesson string `posarg:"0" required:"-" default:"haunted"`

	// Assets is the directory textures are loaded from.
	// A leading ~ is the home directory.
	Assets string `default:"assets"`

	// Seed seeds the procedural layout of scattered props.
	Seed uint64 `default:"1"`

	// Helpers adds a small marker at each positioned light.
	Helpers bool

	// ShadowMap is the shadow map filtering: basic, pcf, pcf-soft or vsm.
	ShadowMap string `default:"pcf-soft"`

	// Preset is an optional TOML or YAML file of debug panel values,
	// applied after the lesson is built.
	Preset string

	// Watch reloads the preset whenever its file changes.
	Watch bool

	// Workers is the number of textures decoded at once.
	Workers int `default:"4"`

	// Retries is the number of times a texture read is retried
	// after a transient error.
	Retries int `default:"2"`

	// List prints the available lessons and exits.
	List bool

	// Verbose prints info messages.
	Verbose bool `flag:"v,verbose"`

	// Debug prints debug messages.
	Debug bool `flag:"vv,debug"`

	// Quiet only prints errors.
	Quiet bool `flag:"q,quiet"`
}

// DefaultConfig returns the configuration with the defaults of the
// command line.
func DefaultConfig() *Config {
	return &Config{
		Lesson:    "haunted",
		Assets:    "assets",
		Seed:      1,
		ShadowMap: "pcf-soft",
		Workers:   4,
		Retries:   2,
	}
}

// ErrInvalidConfig is returned for configurations that cannot be run.
var ErrInvalidConfig = errors.New("lesson: invalid config")

// Validate checks the lesson name, the shadow map name and the worker
// count, returning all problems together.
func (c *Config) Validate() error {
	var errs []error
	if _, err := Lookup(c.Lesson); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ShadowMapType(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers))
	}
	if c.Retries < 0 {
		errs = append(errs, fmt.Errorf("%w: retries must not be negative, got %d", ErrInvalidConfig, c.Retries))
	}
	return errors.Join(errs...)
}

// ShadowMapType parses [Config.ShadowMap].
func (c *Config) ShadowMapType() (lights.ShadowMapType, error) {
	var t lights.ShadowMapType
	err := t.UnmarshalText([]byte(strings.ToLower(c.ShadowMap)))
	return t, err
}

// AssetsDir returns [Config.Assets] with a leading ~ expanded.
func (c *Config) AssetsDir() (string, error) {
	return homedir.Expand(c.Assets)
}

// LogLevel returns the level selected by the verbosity flags.
func (c *Config) LogLevel() slog.Level {
	return logx.LevelFromFlags(c.Debug, c.Verbose, c.Quiet)
}

// ErrUnknownLesson is returned for lesson names that are not registered.
var ErrUnknownLesson = errors.New("lesson: unknown lesson")

var registry = map[string]Lesson{}

// Register makes a lesson available by its name.
// It panics if the name is taken.
func Register(l Lesson) {
	if _, ok := registry[l.Name()]; ok {
		panic("lesson: duplicate lesson " + l.Name())
	}
	registry[l.Name()] = l
}

// Lookup returns the lesson registered under name.
func Lookup(name string) (Lesson, error) {
	if l, ok := registry[name]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownLesson, name, strings.Join(Names(), ", "))
}

// Names returns the registered lesson names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for nm := range registry {
		names = append(names, nm)
	}
	slices.Sort(names)
	return names
}
