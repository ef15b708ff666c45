// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package gldev

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

// attribFormat describes a vertex format for glVertexAttribPointer.
type attribFormat struct {
	size       int32
	xtype      uint32
	normalized bool
}

// vertexFormat maps a vertex format to its GL attribute description.
func vertexFormat(f gputypes.VertexFormat) (attribFormat, bool) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return attribFormat{1, gl.FLOAT, false}, true
	case gputypes.VertexFormatFloat32x2:
		return attribFormat{2, gl.FLOAT, false}, true
	case gputypes.VertexFormatFloat32x3:
		return attribFormat{3, gl.FLOAT, false}, true
	case gputypes.VertexFormatFloat32x4:
		return attribFormat{4, gl.FLOAT, false}, true
	case gputypes.VertexFormatUnorm8x4:
		return attribFormat{4, gl.UNSIGNED_BYTE, true}, true
	default:
		return attribFormat{}, false
	}
}

func blendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorOne:
		return gl.ONE
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		return gl.ONE
	}
}

func blendOperation(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	default:
		return gl.FUNC_ADD
	}
}

func compareFunc(c gputypes.CompareFunction) uint32 {
	switch c {
	case gputypes.CompareFunctionNever:
		return gl.NEVER
	case gputypes.CompareFunctionLess:
		return gl.LESS
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL
	case gputypes.CompareFunctionGreater:
		return gl.GREATER
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	default:
		return gl.ALWAYS
	}
}

func stencilOp(op device.StencilOperation) uint32 {
	switch op {
	case device.StencilOperationZero:
		return gl.ZERO
	case device.StencilOperationReplace:
		return gl.REPLACE
	case device.StencilOperationInvert:
		return gl.INVERT
	case device.StencilOperationIncrementWrap:
		return gl.INCR_WRAP
	case device.StencilOperationDecrementWrap:
		return gl.DECR_WRAP
	default:
		return gl.KEEP
	}
}

// textureFormat returns the internal format, pixel format and pixel type
// for uploading a texture.
func textureFormat(f gputypes.TextureFormat) (internal int32, format, xtype uint32, ok bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE, true
	case gputypes.TextureFormatR8Unorm:
		return gl.R8, gl.RED, gl.UNSIGNED_BYTE, true
	default:
		return 0, 0, 0, false
	}
}
