// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package softraster evaluates effect shaders on the CPU.
//
// It is the pixel loop shared by the software device and the wgpu
// device's CPU fallback path: one evaluator call per pixel, rows split
// into bands across GOMAXPROCS workers.
package softraster

import (
	"runtime"
	"sync"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
)

// Render evaluates eval for every pixel of dst, sampling at pixel
// centers in normalized [0,1] coordinates. content may be nil for
// overlay and generative effects. Output components are clamped and
// stored as straight (non-premultiplied) RGBA.
func Render(dst *fx.Pixmap, eval effects.Evaluator, un *effects.Uniforms, content effects.Sampler) {
	width, height := dst.Width(), dst.Height()
	if width <= 0 || height <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers < 1 {
		workers = 1
	}

	band := (height + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			renderBand(dst, eval, un, content, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

func renderBand(dst *fx.Pixmap, eval effects.Evaluator, un *effects.Uniforms, content effects.Sampler, y0, y1 int) {
	width, height := dst.Width(), dst.Height()
	data := dst.Data()
	for y := y0; y < y1; y++ {
		v := (float64(y) + 0.5) / float64(height)
		row := y * width * 4
		for x := 0; x < width; x++ {
			u := (float64(x) + 0.5) / float64(width)
			r, g, b, a := eval(u, v, un, content)
			i := row + x*4
			data[i] = clamp255(r)
			data[i+1] = clamp255(g)
			data[i+2] = clamp255(b)
			data[i+3] = clamp255(a)
		}
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// PixmapSampler adapts a pixmap into a content sampler with edge
// clamping and nearest-pixel lookup.
type PixmapSampler struct {
	Pix *fx.Pixmap
}

// Sample returns the pixel nearest (u, v), clamped at the edges, as
// components in [0, 1].
func (s PixmapSampler) Sample(u, v float64) (r, g, b, a float64) {
	width, height := s.Pix.Width(), s.Pix.Height()
	if width == 0 || height == 0 {
		return 0, 0, 0, 0
	}
	x := int(u * float64(width))
	y := int(v * float64(height))
	if x < 0 {
		x = 0
	} else if x >= width {
		x = width - 1
	}
	if y < 0 {
		y = 0
	} else if y >= height {
		y = height - 1
	}
	c := s.Pix.GetPixel(x, y)
	return c.R, c.G, c.B, c.A
}
