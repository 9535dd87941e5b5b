// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the three drawing strategies layered on the
// program manager: overlay (additive on top of visible content),
// distortion (re-sampling captured content through a warp shader) and
// generative (continuous self-contained patterns).
//
// Every surface owns its device exclusively. GPU, compile and capture
// failures never propagate out of a frame callback: the surface logs,
// stays in its previous visible state, and renders nothing.
package surface

import (
	"context"
	"errors"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/program"
)

// Surface errors.
var (
	// ErrReleased is returned when operations are called on a released
	// surface.
	ErrReleased = errors.New("surface: released")

	// ErrCaptureInFlight is returned when a distortion surface is
	// activated while a prior capture has not resolved. Single in-flight
	// capture per surface; concurrent captures could resolve out of
	// order.
	ErrCaptureInFlight = errors.New("surface: capture already in flight")

	// ErrCaptureFailed wraps a capture collaborator failure.
	ErrCaptureFailed = errors.New("surface: capture failed")
)

// Capturer produces a raster of a UI subtree. It is the external
// element-to-raster collaborator; the distortion surface depends on it
// but does not implement it.
type Capturer interface {
	Capture(ctx context.Context, targetID string, width, height int) (*fx.Pixmap, error)
}

// framer is implemented by devices that expose their rendered frame as
// a pixmap (the software device, and the wgpu device's readback
// stand-in).
type framer interface {
	Frame() *fx.Pixmap
}

// deviceFrame returns the device's last rendered frame, or nil when the
// device renders straight to its swapchain.
func deviceFrame(d program.Device) *fx.Pixmap {
	if f, ok := d.(framer); ok {
		return f.Frame()
	}
	return nil
}
