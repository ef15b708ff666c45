// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package gldev

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

// Submit implements device.Device. Commands execute in order on the
// current context. GL state changed by the commands is left as is, except
// that program, buffer, texture and vertex-array bindings are cleared
// before returning.
func (d *Device) Submit(cb *device.CommandBuffer) error {
	var (
		prog *program
		buf  *buffer
	)
	defer func() {
		gl.BindVertexArray(0)
		gl.BindBuffer(gl.ARRAY_BUFFER, 0)
		gl.UseProgram(0)
	}()

	applyDrawState(device.DefaultDrawState())

	for i, cmd := range cb.Commands() {
		switch c := cmd.(type) {
		case device.UpdateBufferCommand:
			b, ok := d.buffers[c.Buffer]
			if !ok {
				return fmt.Errorf("gldev: command %d: %w: buffer %d", i, device.ErrInvalidResource, c.Buffer)
			}
			if c.Offset+uint64(len(c.Data)) > b.size {
				return fmt.Errorf("gldev: command %d: %w", i, device.ErrBufferOverflow)
			}
			if len(c.Data) == 0 {
				continue
			}
			gl.BindBuffer(gl.ARRAY_BUFFER, b.handle)
			gl.BufferSubData(gl.ARRAY_BUFFER, int(c.Offset), len(c.Data), gl.Ptr(c.Data)) //nolint:gosec // offset < size

		case device.BindProgramCommand:
			p, ok := d.programs[c.Program]
			if !ok {
				return fmt.Errorf("gldev: command %d: %w: program %d", i, device.ErrInvalidResource, c.Program)
			}
			prog = p
			gl.UseProgram(p.handle)

		case device.BindVertexBufferCommand:
			b, ok := d.buffers[c.Buffer]
			if !ok {
				return fmt.Errorf("gldev: command %d: %w: buffer %d", i, device.ErrInvalidResource, c.Buffer)
			}
			buf = b

		case device.BindTextureCommand:
			handle, ok := d.textures[c.Texture]
			if !ok {
				return fmt.Errorf("gldev: command %d: %w: texture %d", i, device.ErrInvalidResource, c.Texture)
			}
			gl.ActiveTexture(gl.TEXTURE0 + c.Unit)
			gl.BindTexture(gl.TEXTURE_2D, handle)

		case device.SetDrawStateCommand:
			applyDrawState(c.State)

		case device.DrawCommand:
			if prog == nil {
				return fmt.Errorf("gldev: command %d: %w", i, device.ErrNoProgram)
			}
			if buf == nil {
				return fmt.Errorf("gldev: command %d: %w", i, device.ErrNoVertexBuffer)
			}
			if uint64(c.First+c.Count)*uint64(prog.layout.Stride) > buf.size {
				return fmt.Errorf("gldev: command %d: %w: draw past end of buffer", i, device.ErrBufferOverflow)
			}
			bindVertexArray(prog, buf)
			gl.DrawArrays(primitiveMode(c.Topology), int32(c.First), int32(c.Count)) //nolint:gosec // bounded by buffer size

		default:
			return fmt.Errorf("gldev: command %d: unknown command %T", i, cmd)
		}
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gldev: submit: GL error 0x%x", code)
	}
	return nil
}

// bindVertexArray points the program's attributes at buf.
func bindVertexArray(p *program, buf *buffer) {
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.handle)
	stride := int32(p.layout.Stride) //nolint:gosec // small
	for i, a := range p.layout.Attributes {
		f := p.formats[i]
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, f.size, f.xtype, f.normalized, stride, uintptr(a.Offset))
	}
}

func primitiveMode(t gputypes.PrimitiveTopology) uint32 {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

// applyDrawState configures fixed-function state.
func applyDrawState(s device.DrawState) {
	if s.Blend.Enabled {
		gl.Enable(gl.BLEND)
		gl.BlendFuncSeparate(
			blendFactor(s.Blend.Color.SrcFactor), blendFactor(s.Blend.Color.DstFactor),
			blendFactor(s.Blend.Alpha.SrcFactor), blendFactor(s.Blend.Alpha.DstFactor))
		gl.BlendEquationSeparate(blendOperation(s.Blend.Color.Operation), blendOperation(s.Blend.Alpha.Operation))
	} else {
		gl.Disable(gl.BLEND)
	}

	if s.Depth.Enabled {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(compareFunc(s.Depth.Compare))
		gl.DepthMask(s.Depth.Write)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if s.Stencil.Enabled {
		st := s.Stencil
		gl.Enable(gl.STENCIL_TEST)
		gl.StencilFunc(compareFunc(st.Compare), int32(st.Reference), st.ReadMask) //nolint:gosec // 8-bit stencil
		gl.StencilOp(stencilOp(st.FailOp), stencilOp(st.DepthFailOp), stencilOp(st.PassOp))
		gl.StencilMask(st.WriteMask)
	} else {
		gl.Disable(gl.STENCIL_TEST)
	}

	if s.Scissor.Enabled {
		sc := s.Scissor
		gl.Enable(gl.SCISSOR_TEST)
		gl.Scissor(int32(sc.X), int32(sc.Y), int32(sc.Width), int32(sc.Height)) //nolint:gosec // framebuffer pixels
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
}
