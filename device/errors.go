// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import "errors"

// Common device errors.
var (
	// ErrDialectUnavailable is returned when a shader source has no text
	// for the requested dialect.
	ErrDialectUnavailable = errors.New("device: shader dialect unavailable")

	// ErrUnsupportedShadingLanguage is returned when a context reports a
	// shading-language version older than every known dialect.
	ErrUnsupportedShadingLanguage = errors.New("device: unsupported shading language version")

	// ErrInvalidResource is returned when a command references an unknown ID.
	ErrInvalidResource = errors.New("device: invalid resource")

	// ErrBufferOverflow is returned when an update writes past a buffer's capacity.
	ErrBufferOverflow = errors.New("device: buffer update out of range")

	// ErrNoProgram is returned when a draw is issued with no program bound.
	ErrNoProgram = errors.New("device: draw without bound program")

	// ErrNoVertexBuffer is returned when a draw is issued with no vertex buffer bound.
	ErrNoVertexBuffer = errors.New("device: draw without bound vertex buffer")

	// ErrUnsupportedFormat is returned for texture or vertex formats a device cannot handle.
	ErrUnsupportedFormat = errors.New("device: unsupported format")
)
