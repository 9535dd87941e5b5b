// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"fmt"
	"image"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/fx"
)

// LoadMask decodes an alpha-mask image for WithMask. PNG, JPEG and GIF
// are registered; other formats decode if their package is imported by
// the host.
func LoadMask(r io.Reader) (*fx.Pixmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("surface: decode mask: %w", err)
	}
	return fx.FromImage(img), nil
}

// ScaleMask resizes a mask to width×height with bilinear filtering, so
// mask edges stay soft when the surface and mask sizes differ.
func ScaleMask(mask *fx.Pixmap, width, height int) *fx.Pixmap {
	if mask.Width() == width && mask.Height() == height {
		return mask
	}
	src := mask.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return fx.FromImage(dst)
}
