// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gldev implements device.Device on an OpenGL context through
// github.com/go-gl/gl.
//
// The context must be OpenGL 3.0 or newer, current on the calling
// goroutine's OS thread (see runtime.LockOSThread), and gl.Init must have
// succeeded before New is called. gl.Init fails on 2.1 contexts since they
// lack glBindVertexArray. The shading-language dialect is derived from
// GL_SHADING_LANGUAGE_VERSION: 1.50 and newer (GL 3.2+) select core-profile
// GLSL, while 1.30 and 1.40 (GL 3.0 and 3.1) select the GLSL 1.20 sources,
// which those compilers accept.
//
// Commands execute immediately during Submit. Buffer uploads use
// glBufferSubData; draws use glDrawArrays. The device never touches the
// framebuffer binding, viewport or clear color.
//
// Build with -tags nogl to exclude this package's cgo dependency.
package gldev
