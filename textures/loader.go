// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package textures loads texture images asynchronously and samples them
// with the tiling, wrapping and color-space conventions of a 3D scene.
package textures

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"cogentcore.org/core/base/iox/imagex"
	"github.com/h2non/filetype"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrClosed is returned for loads that were pending when the loader was closed.
	ErrClosed = errors.New("textures: loader closed")

	// ErrUnsupported is returned for files that are not a supported image type.
	ErrUnsupported = errors.New("textures: unsupported image type")
)

// decode is one in-flight or finished file decode, shared by every
// texture that uses the same file.
type decode struct {
	file     string
	finished bool
	img      *image.RGBA
	err      error
	waiters  []*Texture
}

// Loader loads textures from a file system in the background.
// [Loader.Load] never blocks: it returns a [Texture] that serves a
// placeholder until its image has been decoded. At most Workers files
// are read and decoded at once.
type Loader struct {

	// Retries is the number of extra attempts for transient read errors.
	Retries int

	// Backoff is the delay before the first retry; it doubles on each attempt.
	Backoff time.Duration

	fsys    fs.FS
	sem     *semaphore.Weighted
	group   errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	mu      sync.Mutex
	closed  bool
	decodes map[string]*decode
	byspec  map[Spec]*Texture
	errs    []error
}

// NewLoader returns a loader reading from fsys with the given
// number of concurrent workers (at least 1).
func NewLoader(fsys fs.FS, workers int) *Loader {
	workers = max(workers, 1)
	l := &Loader{
		Retries: 2,
		Backoff: 50 * time.Millisecond,
		fsys:    fsys,
		sem:     semaphore.NewWeighted(int64(workers)),
		decodes: map[string]*decode{},
		byspec:  map[Spec]*Texture{},
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())
	return l
}

// Load starts loading the texture described by spec and returns it at once.
// Loading the same spec twice returns the same texture, and specs that
// share a file share one decode.
func (l *Loader) Load(spec Spec) *Texture {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tx, ok := l.byspec[spec]; ok {
		return tx
	}
	tx := newTexture(spec)
	l.byspec[spec] = tx
	if l.closed {
		tx.resolve(nil, ErrClosed)
		return tx
	}
	d, ok := l.decodes[spec.File]
	if !ok {
		d = &decode{file: spec.File}
		l.decodes[spec.File] = d
		l.group.Go(func() error {
			return l.run(d)
		})
	}
	if d.finished {
		tx.resolve(d.img, d.err)
	} else {
		d.waiters = append(d.waiters, tx)
	}
	return tx
}

// LoadAll loads each spec and returns the textures keyed by spec name.
func (l *Loader) LoadAll(specs ...Spec) map[string]*Texture {
	m := make(map[string]*Texture, len(specs))
	for _, sp := range specs {
		m[sp.Name] = l.Load(sp)
	}
	return m
}

func (l *Loader) run(d *decode) error {
	st := time.Now()
	img, err := l.acquireAndRead(d.file)
	l.mu.Lock()
	d.finished = true
	d.img, d.err = img, err
	waiters := d.waiters
	d.waiters = nil
	if err != nil {
		l.errs = append(l.errs, err)
	}
	l.mu.Unlock()

	if err != nil {
		if !errors.Is(err, ErrClosed) {
			slog.Warn("textures: using placeholder", "file", d.file, "error", err)
		}
	} else {
		slog.Debug("textures: loaded", "file", d.file, "size", img.Bounds().Size(), "took", time.Since(st))
	}
	for _, tx := range waiters {
		tx.resolve(img, err)
	}
	return err
}

func (l *Loader) acquireAndRead(file string) (*image.RGBA, error) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		return nil, fmt.Errorf("%s: %w", file, ErrClosed)
	}
	defer l.sem.Release(1)
	data, err := l.readFile(file)
	if err != nil {
		return nil, err
	}
	return decodeImage(file, data)
}

// readFile reads file, retrying transient errors with exponential backoff.
// Missing files and permission errors are not retried.
func (l *Loader) readFile(file string) ([]byte, error) {
	delay := l.Backoff
	for attempt := 0; ; attempt++ {
		data, err := fs.ReadFile(l.fsys, file)
		if err == nil {
			return data, nil
		}
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) || attempt >= l.Retries {
			return nil, err
		}
		slog.Debug("textures: retrying read", "file", file, "attempt", attempt+1, "error", err)
		select {
		case <-l.ctx.Done():
			return nil, fmt.Errorf("%s: %w", file, ErrClosed)
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// decodeImage sniffs the file type from its content and decodes it.
func decodeImage(file string, data []byte) (*image.RGBA, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	switch kind.Extension {
	case "jpg", "png", "webp", "gif", "bmp", "tif":
	default:
		return nil, fmt.Errorf("%s (%s): %w", file, kind.MIME.Value, ErrUnsupported)
	}
	img, _, err := imagex.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return imagex.CloneAsRGBA(img), nil
}

// Wait blocks until every load started so far has finished,
// and returns the joined errors of the failed ones.
func (l *Loader) Wait() error {
	l.group.Wait()
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.errs...)
}

// Pending returns the number of decodes that have not finished.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, d := range l.decodes {
		if !d.finished {
			n++
		}
	}
	return n
}

// Close cancels pending loads, which fail with [ErrClosed],
// and waits for the workers to exit. Later loads fail immediately.
func (l *Loader) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.cancel()
	l.group.Wait()
	return nil
}
