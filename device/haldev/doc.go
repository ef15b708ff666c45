// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package haldev implements device.Device on a WebGPU HAL device from
// github.com/gogpu/wgpu/hal.
//
// Programs are written in WGSL and compiled to SPIR-V with naga. Each
// program keeps one render pipeline per draw state it has been used with.
// Submit encodes the commands into render passes that load and store the
// target set with SetTarget, then waits for the GPU to finish.
//
// A Device is usually built from a host application's
// gpucontext.DeviceProvider:
//
//	dev, err := haldev.NewFromProvider(app)
//	...
//	if err := dev.SetTarget(haldev.Target{View: frameView, Width: w, Height: h}); err != nil {
//		...
//	}
//
// Submit waits for each submission by polling the queue's completed
// submission index. A target of zero width or height is rejected.
//
// Texture unit i of a program is exposed to WGSL as the texture at
// @group(0) @binding(2i) and its sampler at @binding(2i+1).
//
// Build with -tags nogpu to exclude the package.
package haldev
