// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package textures

import (
	"image"
	"image/color"

	"cogentcore.org/core/math32"
	"github.com/anthonynsimon/bild/blur"
)

// RadialBlob returns a size x size alpha map of a soft round shadow:
// white in the middle, fading to black at the edge, in all channels.
// It stands in for a painted shadow texture.
func RadialBlob(size int) *image.RGBA {
	size = max(size, 4)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float32(size) / 2
	r := c * 0.6
	for y := range size {
		for x := range size {
			dx := float32(x) + 0.5 - c
			dy := float32(y) + 0.5 - c
			v := uint8(0)
			if math32.Sqrt(dx*dx+dy*dy) <= r {
				v = 255
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return blur.Gaussian(img, float64(size)/10)
}
