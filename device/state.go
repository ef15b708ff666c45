// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gputypes"
)

// BlendComponent describes how one channel group (color or alpha) is blended.
type BlendComponent struct {
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
	Operation gputypes.BlendOperation
}

// BlendState describes fixed-function blending. The zero value disables it.
type BlendState struct {
	Enabled bool
	Color   BlendComponent
	Alpha   BlendComponent
}

// StencilOperation is the action taken on a stencil value.
type StencilOperation uint8

// Stencil operations.
const (
	StencilOperationKeep StencilOperation = iota
	StencilOperationZero
	StencilOperationReplace
	StencilOperationInvert
	StencilOperationIncrementWrap
	StencilOperationDecrementWrap
)

// StencilState describes the stencil test. The zero value disables it.
type StencilState struct {
	Enabled     bool
	Compare     gputypes.CompareFunction
	Reference   uint32
	ReadMask    uint32
	WriteMask   uint32
	FailOp      StencilOperation
	DepthFailOp StencilOperation
	PassOp      StencilOperation
}

// DepthState describes the depth test. The zero value disables it.
type DepthState struct {
	Enabled bool
	Compare gputypes.CompareFunction
	Write   bool
}

// ScissorRect limits rasterization to a rectangle in framebuffer pixels.
// The zero value disables scissoring.
type ScissorRect struct {
	Enabled bool
	X, Y    uint32
	Width   uint32
	Height  uint32
}

// DrawState is the fixed-function configuration applied to a draw.
// DrawState is comparable and may be used as a map key.
type DrawState struct {
	Blend   BlendState
	Depth   DepthState
	Stencil StencilState
	Scissor ScissorRect
}

// AlphaBlend returns straight (non-premultiplied) source-over blending.
func AlphaBlend() BlendState {
	return BlendState{
		Enabled: true,
		Color: BlendComponent{
			SrcFactor: gputypes.BlendFactorSrcAlpha,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: BlendComponent{
			SrcFactor: gputypes.BlendFactorOne,
			DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

// DefaultDrawState returns alpha blending with depth, stencil and scissor
// tests disabled.
func DefaultDrawState() DrawState {
	return DrawState{Blend: AlphaBlend()}
}
