package gfx2d

import "errors"

// Common gfx2d errors.
var (
	// ErrProgramLink is returned by New when a shader program fails to
	// compile or link. No backend is returned.
	ErrProgramLink = errors.New("gfx2d: shader program link failed")

	// ErrBufferCreate is returned by New when a vertex buffer cannot be
	// allocated.
	ErrBufferCreate = errors.New("gfx2d: vertex buffer allocation failed")

	// ErrInvalidBufferSize is returned by New when the buffer size option
	// cannot hold a single triangle.
	ErrInvalidBufferSize = errors.New("gfx2d: buffer size must hold at least one triangle")

	// ErrLengthMismatch is returned when position, color and uv arrays
	// describe different vertex counts. Nothing is staged.
	ErrLengthMismatch = errors.New("gfx2d: vertex array lengths mismatch")

	// ErrNilTexture is returned by a textured draw without a texture.
	ErrNilTexture = errors.New("gfx2d: nil texture")

	// ErrSubmit wraps device errors returned during submission.
	ErrSubmit = errors.New("gfx2d: submit failed")

	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("gfx2d: backend closed")
)
