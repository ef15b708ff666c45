// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the GPU device contract consumed by the gfx2d
// backend.
//
// A [Device] links shader programs, allocates fixed-capacity vertex buffers
// and textures, and executes recorded [CommandBuffer]s. Resources are
// referred to by opaque IDs ([ProgramID], [BufferID], [TextureID]); each
// implementation keeps its own mapping from IDs to native objects.
//
// # Shading-language dialects
//
// Shader programs carry their source in several dialects ([ShaderSource]).
// A device reports the dialect it accepts through [Capabilities], and the
// caller resolves the matching source once, before linking:
//
//	src, err := vertex.Select(dev.Capabilities().Dialect)
//
// # Command recording
//
// Rendering work is recorded into a [CommandBuffer] as typed commands
// (buffer updates, program and texture binds, draw-state changes, draws)
// and handed to [Device.Submit]. Commands execute strictly in recording
// order.
//
// # Implementations
//
//   - device/memdev: host-memory reference device (tests, headless hosts)
//   - device/gldev: OpenGL via go-gl (GLSL 1.20 / 1.50)
//   - device/haldev: WebGPU via gogpu/wgpu HAL (WGSL)
package device
