package gfx2d

import (
	"log/slog"

	"github.com/gogpu/gfx2d/device"
)

// BufferSize is the default capacity, in vertices, of each GPU vertex
// buffer and its staging arena.
const BufferSize = 1024

// Option configures a backend during creation.
//
// Example:
//
//	g, err := gfx2d.New(dev,
//		gfx2d.WithBufferSize(256),
//		gfx2d.WithDrawState(device.DrawState{}),
//	)
type Option func(*options)

// options holds optional configuration for backend creation.
type options struct {
	state      device.DrawState
	bufferSize int
	logger     *slog.Logger
}

// defaultOptions returns the default backend options.
func defaultOptions() options {
	return options{
		state:      device.DefaultDrawState(),
		bufferSize: BufferSize,
	}
}

// WithDrawState sets the draw state applied to every submission.
// The state is copied; the backend never exposes it for mutation.
func WithDrawState(s device.DrawState) Option {
	return func(o *options) {
		o.state = s
	}
}

// WithBufferSize sets the per-layout buffer capacity in vertices.
// It must be at least 3.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithLogger sets a logger for this backend only, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
