// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/fx/program"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu.App) implements it and passes it in; fx
// RECEIVES the device from the host, it does not create one. DeviceHandle
// is an alias for gpucontext.DeviceProvider so any gpucontext host works
// unchanged.
type DeviceHandle = gpucontext.DeviceProvider

// NewFromHandle creates a device from a typed host handle. The handle's
// device and queue must expose their HAL types, which gogpu's context
// objects do.
func NewFromHandle(h DeviceHandle) (*Device, error) {
	if h == nil {
		return nil, fmt.Errorf("wgpu: nil device handle: %w", program.ErrContextUnavailable)
	}
	dev := h.Device()
	queue := h.Queue()
	if dev == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: handle has no device: %w", program.ErrContextUnavailable)
	}
	return New(halBridge{device: dev, queue: queue})
}

// halBridge adapts a gpucontext device/queue pair to the HAL-provider
// shape New expects.
type halBridge struct {
	device gpucontext.Device
	queue  gpucontext.Queue
}

func (b halBridge) HalDevice() any {
	if hd, ok := b.device.(interface{ HalDevice() any }); ok {
		return hd.HalDevice()
	}
	return nil
}

func (b halBridge) HalQueue() any {
	if hq, ok := b.queue.(interface{ HalQueue() any }); ok {
		return hq.HalQueue()
	}
	return nil
}

// SurfaceFormat returns the pixel format of the frames the device
// produces. Content uploads and frame output both use 8-bit RGBA.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
