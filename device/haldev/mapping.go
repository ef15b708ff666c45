// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package haldev

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx2d/device"
)

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(source string) ([]uint32, error) {
	b, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("compile wgsl: %w", err)
	}
	return spirvWords(b)
}

// spirvWords converts little-endian SPIR-V bytes to words.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("spir-v length %d is not a multiple of 4", len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

// bindings returns the texture and sampler binding indices of a texture unit.
func bindings(unit uint32) (texture, sampler uint32) {
	return 2 * unit, 2*unit + 1
}

// layoutEntries describes n texture units for the fragment stage.
func layoutEntries(n int) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, 2*n)
	for unit := range uint32(n) { //nolint:gosec // few samplers
		tb, sb := bindings(unit)
		entries = append(entries,
			gputypes.BindGroupLayoutEntry{
				Binding:    tb,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			gputypes.BindGroupLayoutEntry{
				Binding:    sb,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		)
	}
	return entries
}

// vertexBuffers converts a vertex layout to a single-slot buffer layout.
func vertexBuffers(l device.VertexLayout) []gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.Attributes))
	for i, a := range l.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Location,
		}
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(l.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}}
}

// blendState returns nil when blending is disabled.
func blendState(b device.BlendState) *gputypes.BlendState {
	if !b.Enabled {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: b.Color.SrcFactor,
			DstFactor: b.Color.DstFactor,
			Operation: b.Color.Operation,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: b.Alpha.SrcFactor,
			DstFactor: b.Alpha.DstFactor,
			Operation: b.Alpha.Operation,
		},
	}
}

func stencilOp(op device.StencilOperation) hal.StencilOperation {
	switch op {
	case device.StencilOperationZero:
		return hal.StencilOperationZero
	case device.StencilOperationReplace:
		return hal.StencilOperationReplace
	case device.StencilOperationInvert:
		return hal.StencilOperationInvert
	case device.StencilOperationIncrementWrap:
		return hal.StencilOperationIncrementWrap
	case device.StencilOperationDecrementWrap:
		return hal.StencilOperationDecrementWrap
	default:
		return hal.StencilOperationKeep
	}
}

// depthStencilState builds the depth-stencil state for a pass with a
// depth-stencil attachment. Disabled tests always pass and write nothing.
func depthStencilState(s device.DrawState) *hal.DepthStencilState {
	ds := &hal.DepthStencilState{
		Format:       gputypes.TextureFormatDepth24PlusStencil8,
		DepthCompare: gputypes.CompareFunctionAlways,
	}
	if s.Depth.Enabled {
		ds.DepthCompare = s.Depth.Compare
		ds.DepthWriteEnabled = s.Depth.Write
	}

	face := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	if st := s.Stencil; st.Enabled {
		face = hal.StencilFaceState{
			Compare:     st.Compare,
			FailOp:      stencilOp(st.FailOp),
			DepthFailOp: stencilOp(st.DepthFailOp),
			PassOp:      stencilOp(st.PassOp),
		}
		ds.StencilReadMask = st.ReadMask
		ds.StencilWriteMask = st.WriteMask
	}
	ds.StencilFront = face
	ds.StencilBack = face
	return ds
}

// pipelineKey identifies a cached render pipeline of a program.
type pipelineKey struct {
	state        device.DrawState
	depthStencil bool
}

// keyFor drops the parts of s that are dynamic pass state, so that draws
// differing only in scissor or stencil reference share a pipeline.
func keyFor(s device.DrawState, depthStencil bool) pipelineKey {
	s.Scissor = device.ScissorRect{}
	s.Stencil.Reference = 0
	if !depthStencil {
		s.Depth = device.DepthState{}
		s.Stencil = device.StencilState{}
	}
	return pipelineKey{state: s, depthStencil: depthStencil}
}
