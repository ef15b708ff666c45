// Package gfx2d provides a minimal immediate-mode 2D rendering backend.
//
// # Overview
//
// gfx2d accepts triangle lists from a generic drawing front end as flat
// float32 arrays (positions, RGBA colors and optionally texture
// coordinates), batches them into fixed-capacity vertex buffers, and
// records draw calls using one of two shader programs: flat-colored
// triangles and textured triangles. The recorded command buffer is
// submitted to a [device.Device].
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gfx2d"
//		"github.com/gogpu/gfx2d/device/memdev"
//	)
//
//	g, err := gfx2d.New(memdev.New())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer g.Close()
//
//	err = g.TriListXYColorF32(
//		[]float32{0, 0, 1, 0, 0, 1},
//		[]float32{1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1},
//	)
//	if err == nil {
//		err = g.Submit()
//	}
//
// # Shader Dialects
//
// Both programs ship in GLSL 1.20, GLSL 1.50 core and WGSL. The dialect is
// chosen once, at construction, from the device's reported capabilities.
//
// # Batching
//
// Flat triangle lists accumulate across calls until Flush, Submit, a
// textured draw, or a full buffer. A full buffer flushes its complete
// triangles and keeps the unfinished one staged, so a triangle is never
// split across draws. Textured triangle lists are drawn before the call
// returns because the texture is only borrowed for that call.
//
// # Threading
//
// A backend is bound to its device context and is not safe for concurrent
// use. Draw order equals call order.
package gfx2d
