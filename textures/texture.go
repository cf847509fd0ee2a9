// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textures

import (
	"image"
	"image/color"
	"sync"
)

// Texture is a texture whose image arrives asynchronously.
// It is usable immediately: until the image has been decoded,
// [Texture.Image] returns a 1x1 placeholder of [Spec.Placeholder].
type Texture struct {

	// Spec is the texture description. It must not be changed after loading.
	Spec Spec

	mu      sync.RWMutex
	img     *image.RGBA
	loaded  bool
	done    bool
	err     error
	onLoad  []func(tx *Texture)
	sampler *Sampler
}

func newTexture(spec Spec) *Texture {
	tx := &Texture{Spec: spec}
	tx.img = Solid(spec.placeholder())
	return tx
}

// NewStatic returns a texture that is already loaded with the given image.
// It is used for procedurally generated textures.
func NewStatic(spec Spec, img *image.RGBA) *Texture {
	tx := &Texture{Spec: spec, img: img, loaded: true, done: true}
	return tx
}

// Solid returns a 1x1 image of the given color.
func Solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, c)
	return img
}

// Image returns the decoded image, or the placeholder if it is not loaded.
func (tx *Texture) Image() *image.RGBA {
	tx.mu.RLock()
	defer tx.mu.RUnlock()
	return tx.img
}

// Size returns the size of the current image.
func (tx *Texture) Size() image.Point {
	return tx.Image().Bounds().Size()
}

// Loaded returns whether the decoded image has been swapped in.
func (tx *Texture) Loaded() bool {
	tx.mu.RLock()
	defer tx.mu.RUnlock()
	return tx.loaded
}

// Done returns whether loading has finished, successfully or not.
func (tx *Texture) Done() bool {
	tx.mu.RLock()
	defer tx.mu.RUnlock()
	return tx.done
}

// Err returns the load error, if loading failed.
func (tx *Texture) Err() error {
	tx.mu.RLock()
	defer tx.mu.RUnlock()
	return tx.err
}

// OnLoad registers fn to be called once the image has been swapped in.
// If that has already happened, fn is called immediately.
// Callbacks registered before loading run on a loader goroutine,
// and are not called at all if the load fails.
func (tx *Texture) OnLoad(fn func(tx *Texture)) {
	tx.mu.Lock()
	if tx.loaded {
		tx.mu.Unlock()
		fn(tx)
		return
	}
	tx.onLoad = append(tx.onLoad, fn)
	tx.mu.Unlock()
}

// Sampler returns a sampler over the current image with the
// spec's tiling and wrapping. The sampler is rebuilt after loading.
func (tx *Texture) Sampler() *Sampler {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.sampler == nil || tx.sampler.img != tx.img {
		tx.sampler = NewSampler(tx.img, tx.Spec)
	}
	return tx.sampler
}

// resolve swaps in the decoded image, or records the error,
// and then runs the load callbacks.
func (tx *Texture) resolve(img *image.RGBA, err error) {
	tx.mu.Lock()
	if tx.done {
		tx.mu.Unlock()
		return
	}
	tx.done = true
	if err != nil {
		tx.err = err
		tx.onLoad = nil
		tx.mu.Unlock()
		return
	}
	tx.img = img
	tx.loaded = true
	fns := tx.onLoad
	tx.onLoad = nil
	tx.mu.Unlock()
	for _, fn := range fns {
		fn(tx)
	}
}
