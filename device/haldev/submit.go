// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package haldev

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx2d/device"
)

const (
	// submitTimeout bounds the wait for each GPU submission.
	submitTimeout = 5 * time.Second

	pollInterval = 100 * time.Microsecond
)

// Submit implements device.Device.
//
// Draws are encoded into a render pass over the current target. Buffer
// uploads go through the queue, so an upload to a buffer that a pending
// draw reads ends the pass and submits it first. Submit returns after the
// GPU has finished all work.
func (d *Device) Submit(cb *device.CommandBuffer) error {
	if err := d.target.validate(); err != nil {
		return err
	}
	s := &submission{
		d:        d,
		state:    device.DefaultDrawState(),
		textures: make(map[uint32]device.TextureID),
		read:     make(map[device.BufferID]bool),
	}
	defer s.release()

	for i, cmd := range cb.Commands() {
		if err := s.exec(cmd); err != nil {
			return fmt.Errorf("haldev: command %d (%v): %w", i, cmd.Type(), err)
		}
	}
	if err := s.flush(); err != nil {
		return fmt.Errorf("haldev: %w", err)
	}
	slogger().Debug("haldev: submitted", "commands", cb.Len(), "passes", s.passes)
	return nil
}

// submission is the replay state of one Submit call.
type submission struct {
	d *Device

	program  *program
	vertex   *buffer
	vertexID device.BufferID
	state    device.DrawState
	textures map[uint32]device.TextureID

	encoder    hal.CommandEncoder
	pass       hal.RenderPassEncoder
	read       map[device.BufferID]bool
	bindGroups []hal.BindGroup
	passes     int
}

func (s *submission) exec(cmd device.Command) error {
	d := s.d
	switch c := cmd.(type) {
	case device.UpdateBufferCommand:
		b, ok := d.buffers[c.Buffer]
		if !ok {
			return fmt.Errorf("%w: buffer %d", device.ErrInvalidResource, c.Buffer)
		}
		if c.Offset+uint64(len(c.Data)) > b.size {
			return device.ErrBufferOverflow
		}
		if s.read[c.Buffer] {
			if err := s.flush(); err != nil {
				return err
			}
		}
		if err := d.queue.WriteBuffer(b.buf, c.Offset, c.Data); err != nil {
			return fmt.Errorf("write buffer: %w", err)
		}

	case device.BindProgramCommand:
		p, ok := d.programs[c.Program]
		if !ok {
			return fmt.Errorf("%w: program %d", device.ErrInvalidResource, c.Program)
		}
		s.program = p

	case device.BindVertexBufferCommand:
		b, ok := d.buffers[c.Buffer]
		if !ok {
			return fmt.Errorf("%w: buffer %d", device.ErrInvalidResource, c.Buffer)
		}
		s.vertex = b
		s.vertexID = c.Buffer

	case device.BindTextureCommand:
		if _, ok := d.textures[c.Texture]; !ok {
			return fmt.Errorf("%w: texture %d", device.ErrInvalidResource, c.Texture)
		}
		s.textures[c.Unit] = c.Texture

	case device.SetDrawStateCommand:
		s.state = c.State

	case device.DrawCommand:
		return s.draw(c)

	default:
		return fmt.Errorf("unknown command %T", cmd)
	}
	return nil
}

func (s *submission) draw(c device.DrawCommand) error {
	d := s.d
	p := s.program
	if p == nil {
		return device.ErrNoProgram
	}
	if s.vertex == nil {
		return device.ErrNoVertexBuffer
	}
	if uint64(c.First+c.Count)*uint64(p.layout.Stride) > s.vertex.size {
		return fmt.Errorf("%w: draw past end of buffer", device.ErrBufferOverflow)
	}
	if (s.state.Depth.Enabled || s.state.Stencil.Enabled) && d.target.DepthStencil == nil {
		return ErrNoDepthStencil
	}
	if c.Topology != gputypes.PrimitiveTopologyTriangleList {
		return fmt.Errorf("unsupported topology %v", c.Topology)
	}

	rp, err := d.pipeline(p, s.state)
	if err != nil {
		return err
	}
	bg, err := s.bindGroup(p)
	if err != nil {
		return err
	}
	if err := s.begin(); err != nil {
		return err
	}

	s.pass.SetPipeline(rp)
	if bg != nil {
		s.pass.SetBindGroup(0, bg, nil)
	}
	if sc := s.state.Scissor; sc.Enabled {
		s.pass.SetScissorRect(sc.X, sc.Y, sc.Width, sc.Height)
	} else {
		s.pass.SetScissorRect(0, 0, d.target.Width, d.target.Height)
	}
	if s.state.Stencil.Enabled {
		s.pass.SetStencilReference(s.state.Stencil.Reference)
	}
	s.pass.SetVertexBuffer(0, s.vertex.buf, 0)
	s.pass.Draw(c.Count, 1, c.First, 0)
	s.read[s.vertexID] = true
	return nil
}

// bindGroup binds the textures of every unit p samples from.
func (s *submission) bindGroup(p *program) (hal.BindGroup, error) {
	if p.samplers == 0 {
		return nil, nil
	}
	d := s.d
	entries := make([]gputypes.BindGroupEntry, 0, 2*p.samplers)
	for unit := range uint32(p.samplers) { //nolint:gosec // few samplers
		id, ok := s.textures[unit]
		if !ok {
			return nil, fmt.Errorf("%w: no texture bound to unit %d", device.ErrInvalidResource, unit)
		}
		t, ok := d.textures[id]
		if !ok {
			return nil, fmt.Errorf("%w: texture %d", device.ErrInvalidResource, id)
		}
		tb, sb := bindings(unit)
		entries = append(entries,
			gputypes.BindGroupEntry{Binding: tb, Resource: gputypes.TextureViewBinding{
				TextureView: t.view.NativeHandle(),
			}},
			gputypes.BindGroupEntry{Binding: sb, Resource: gputypes.SamplerBinding{
				Sampler: d.sampler.NativeHandle(),
			}},
		)
	}

	bg, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_textures",
		Layout:  p.bgLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	s.bindGroups = append(s.bindGroups, bg)
	return bg, nil
}

// begin opens an encoder and render pass if none is open.
func (s *submission) begin() error {
	if s.pass != nil {
		return nil
	}
	d := s.d
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gfx2d_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gfx2d_submit"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	desc := &hal.RenderPassDescriptor{
		Label: "gfx2d_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    d.target.View,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	}
	if d.target.DepthStencil != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:           d.target.DepthStencil,
			DepthLoadOp:    gputypes.LoadOpLoad,
			DepthStoreOp:   gputypes.StoreOpStore,
			StencilLoadOp:  gputypes.LoadOpLoad,
			StencilStoreOp: gputypes.StoreOpStore,
		}
	}

	s.encoder = encoder
	s.pass = encoder.BeginRenderPass(desc)
	return nil
}

// flush ends the open pass, submits it and waits for completion.
func (s *submission) flush() error {
	if s.pass == nil {
		return nil
	}
	d := s.d
	s.pass.End()
	s.pass = nil
	encoder := s.encoder
	s.encoder = nil
	clear(s.read)

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	idx, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	if err := d.wait(idx); err != nil {
		return err
	}
	s.passes++
	s.releaseBindGroups()
	return nil
}

// wait polls the queue until submission idx has completed.
func (d *Device) wait(idx uint64) error {
	deadline := time.Now().Add(submitTimeout)
	for d.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("wait for GPU: submission %d not complete after %v", idx, submitTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

func (s *submission) releaseBindGroups() {
	for _, bg := range s.bindGroups {
		s.d.device.DestroyBindGroup(bg)
	}
	s.bindGroups = s.bindGroups[:0]
}

// release discards unfinished work after an error.
func (s *submission) release() {
	if s.pass != nil {
		s.pass.End()
		s.pass = nil
	}
	if s.encoder != nil {
		s.encoder.DiscardEncoding()
		s.encoder = nil
	}
	s.releaseBindGroups()
}
