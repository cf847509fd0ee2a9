// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gloam shows the lighting lessons: a tour of light kinds,
// baked shadows, and a haunted house at night.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/core/base/logx"
	"cogentcore.org/core/cli"
	"github.com/gloamlab/gloam/lesson"
	_ "github.com/gloamlab/gloam/lessons"
	"github.com/muesli/termenv"
)

func main() {
	opts := cli.DefaultOptions("gloam", "Lights, shadows and a haunted house in 3D.")
	opts.DefaultFiles = []string{"gloam.toml"}
	opts.PrintSuccess = false
	cli.Run(opts, lesson.DefaultConfig(), Run)
}

// Run shows the configured lesson, or lists the lessons.
func Run(cfg *lesson.Config) error { //cli:cmd -root
	level := cfg.LogLevel()
	logx.UserLevel = level
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.List {
		return list(os.Stdout)
	}
	l, err := lesson.Lookup(cfg.Lesson)
	if err != nil {
		return err
	}
	return lesson.Run(l, cfg)
}

// list prints the registered lessons with their titles.
func list(w io.Writer) error {
	out := termenv.NewOutput(w)
	for _, name := range lesson.Names() {
		l, err := lesson.Lookup(name)
		if err != nil {
			return err
		}
		n := out.String(fmt.Sprintf("%-10s", name)).Bold().Foreground(out.Color("6"))
		if _, err := fmt.Fprintf(w, "%s %s\n", n, l.Title()); err != nil {
			return err
		}
	}
	return nil
}
