// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memdev

import "github.com/gogpu/gfx2d/device"

// Option configures a memory device during creation.
type Option func(*Device)

// WithDialect sets the dialect the device reports. DialectUnknown
// simulates a context that cannot link any program.
func WithDialect(d device.Dialect) Option {
	return func(dev *Device) {
		dev.caps.Dialect = d
	}
}

// WithMaxTextureSize sets the reported texture size limit (0 = unlimited).
func WithMaxTextureSize(n uint32) Option {
	return func(dev *Device) {
		dev.caps.MaxTextureSize = n
	}
}

// WithLinkError makes every LinkProgram call fail with err.
func WithLinkError(err error) Option {
	return func(dev *Device) {
		dev.linkErr = err
	}
}

// WithBufferError makes every CreateBuffer call fail with err.
func WithBufferError(err error) Option {
	return func(dev *Device) {
		dev.bufferErr = err
	}
}

// WithSubmitError makes every Submit call fail with err, simulating a
// lost context.
func WithSubmitError(err error) Option {
	return func(dev *Device) {
		dev.submitErr = err
	}
}
