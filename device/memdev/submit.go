// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memdev

import (
	"fmt"
	"sort"

	"github.com/gogpu/gfx2d/device"
)

// execState is the binding state while replaying one command buffer.
// Bindings do not persist across Submit calls.
type execState struct {
	program  device.ProgramID
	buffer   device.BufferID
	textures map[uint32]BoundTexture
	state    device.DrawState
}

// Submit implements device.Device.
func (d *Device) Submit(cb *device.CommandBuffer) error {
	if d.submitErr != nil {
		return fmt.Errorf("memdev: submit: %w", d.submitErr)
	}

	st := execState{
		textures: make(map[uint32]BoundTexture),
		state:    device.DefaultDrawState(),
	}
	for i, cmd := range cb.Commands() {
		if err := d.exec(&st, cmd); err != nil {
			return fmt.Errorf("memdev: command %d (%v): %w", i, cmd.Type(), err)
		}
	}
	d.submits++
	return nil
}

func (d *Device) exec(st *execState, cmd device.Command) error {
	switch c := cmd.(type) {
	case device.UpdateBufferCommand:
		buf, ok := d.buffers[c.Buffer]
		if !ok {
			return fmt.Errorf("%w: buffer %d", device.ErrInvalidResource, c.Buffer)
		}
		end := c.Offset + uint64(len(c.Data))
		if end > uint64(len(buf.Data)) {
			return fmt.Errorf("%w: %d bytes at offset %d, capacity %d",
				device.ErrBufferOverflow, len(c.Data), c.Offset, len(buf.Data))
		}
		copy(buf.Data[c.Offset:end], c.Data)

	case device.BindProgramCommand:
		if _, ok := d.programs[c.Program]; !ok {
			return fmt.Errorf("%w: program %d", device.ErrInvalidResource, c.Program)
		}
		st.program = c.Program

	case device.BindVertexBufferCommand:
		if _, ok := d.buffers[c.Buffer]; !ok {
			return fmt.Errorf("%w: buffer %d", device.ErrInvalidResource, c.Buffer)
		}
		st.buffer = c.Buffer

	case device.BindTextureCommand:
		if _, ok := d.textures[c.Texture]; !ok {
			return fmt.Errorf("%w: texture %d", device.ErrInvalidResource, c.Texture)
		}
		st.textures[c.Unit] = BoundTexture{Unit: c.Unit, Name: c.Name, Texture: c.Texture}

	case device.SetDrawStateCommand:
		st.state = c.State

	case device.DrawCommand:
		return d.draw(st, c)

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}

func (d *Device) draw(st *execState, c device.DrawCommand) error {
	prog, ok := d.programs[st.program]
	if !ok {
		return device.ErrNoProgram
	}
	buf, ok := d.buffers[st.buffer]
	if !ok {
		return device.ErrNoVertexBuffer
	}

	stride := uint64(prog.Layout.Stride)
	start := uint64(c.First) * stride
	end := start + uint64(c.Count)*stride
	if end > uint64(len(buf.Data)) {
		return fmt.Errorf("%w: draw reads %d bytes, capacity %d", device.ErrBufferOverflow, end, len(buf.Data))
	}

	var textures []BoundTexture
	for unit, name := range prog.Samplers {
		bt, ok := st.textures[uint32(unit)] //nolint:gosec // sampler count is tiny
		if !ok {
			return fmt.Errorf("%w: sampler %q has no texture", device.ErrInvalidResource, name)
		}
		textures = append(textures, bt)
	}
	sort.Slice(textures, func(i, j int) bool { return textures[i].Unit < textures[j].Unit })

	d.draws = append(d.draws, DrawCall{
		Program:  st.program,
		Buffer:   st.buffer,
		Textures: textures,
		State:    st.state,
		Topology: c.Topology,
		First:    c.First,
		Count:    c.Count,
		Vertices: append([]byte(nil), buf.Data[start:end]...),
	})
	return nil
}
