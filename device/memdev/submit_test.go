// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memdev

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

type fixture struct {
	dev  *Device
	prog device.ProgramID
	buf  device.BufferID
}

func newFixture(t *testing.T, samplers ...string) *fixture {
	t.Helper()
	d := New()
	prog, err := d.LinkProgram(testProgram(samplers...))
	if err != nil {
		t.Fatalf("LinkProgram() error = %v", err)
	}
	buf, err := d.CreateBuffer(&device.BufferDescriptor{Size: 64})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	return &fixture{dev: d, prog: prog, buf: buf}
}

func TestSubmitDraw(t *testing.T) {
	f := newFixture(t)
	data := []byte{
		1, 1, 1, 1, 1, 1, 1, 1,
		2, 2, 2, 2, 2, 2, 2, 2,
		3, 3, 3, 3, 3, 3, 3, 3,
	}

	var cb device.CommandBuffer
	cb.UpdateBuffer(f.buf, 0, data)
	cb.BindProgram(f.prog)
	cb.BindVertexBuffer(f.buf)
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)

	if err := f.dev.Submit(&cb); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	draws := f.dev.Draws()
	if len(draws) != 1 {
		t.Fatalf("len(Draws()) = %d, want 1", len(draws))
	}
	dc := draws[0]
	if dc.Program != f.prog || dc.Buffer != f.buf {
		t.Errorf("draw bound program %d buffer %d, want %d %d", dc.Program, dc.Buffer, f.prog, f.buf)
	}
	if dc.Count != 3 || dc.First != 0 {
		t.Errorf("draw range = [%d,+%d), want [0,+3)", dc.First, dc.Count)
	}
	if !bytes.Equal(dc.Vertices, data) {
		t.Errorf("Vertices = %v, want %v", dc.Vertices, data)
	}
	if dc.State != device.DefaultDrawState() {
		t.Error("draw without SetDrawState should use the default state")
	}
	if f.dev.Submits() != 1 {
		t.Errorf("Submits() = %d, want 1", f.dev.Submits())
	}
}

func TestSubmitSnapshotsVertices(t *testing.T) {
	f := newFixture(t)

	var cb device.CommandBuffer
	cb.BindProgram(f.prog)
	cb.BindVertexBuffer(f.buf)
	cb.UpdateBuffer(f.buf, 0, bytes.Repeat([]byte{7}, 24))
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)
	cb.UpdateBuffer(f.buf, 0, bytes.Repeat([]byte{9}, 24))
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)

	if err := f.dev.Submit(&cb); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	draws := f.dev.Draws()
	if len(draws) != 2 {
		t.Fatalf("len(Draws()) = %d, want 2", len(draws))
	}
	if draws[0].Vertices[0] != 7 || draws[1].Vertices[0] != 9 {
		t.Errorf("snapshots = %d, %d; want 7, 9", draws[0].Vertices[0], draws[1].Vertices[0])
	}
}

func TestSubmitDrawState(t *testing.T) {
	f := newFixture(t)
	state := device.DrawState{
		Scissor: device.ScissorRect{Enabled: true, Width: 10, Height: 10},
	}

	var cb device.CommandBuffer
	cb.BindProgram(f.prog)
	cb.BindVertexBuffer(f.buf)
	cb.SetDrawState(state)
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)

	if err := f.dev.Submit(&cb); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if got := f.dev.Draws()[0].State; got != state {
		t.Errorf("State = %+v, want %+v", got, state)
	}
}

func TestSubmitTextures(t *testing.T) {
	f := newFixture(t, "s_texture")
	tex, err := f.dev.CreateTexture(&device.TextureDescriptor{
		Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm,
	}, make([]byte, 4))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}

	var cb device.CommandBuffer
	cb.BindProgram(f.prog)
	cb.BindVertexBuffer(f.buf)
	cb.BindTexture(0, "s_texture", tex.ID)
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)

	if err := f.dev.Submit(&cb); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	got := f.dev.Draws()[0].Textures
	if len(got) != 1 || got[0].Texture != tex.ID || got[0].Name != "s_texture" {
		t.Errorf("Textures = %+v, want one binding of %d", got, tex.ID)
	}
}

func TestSubmitErrors(t *testing.T) {
	tests := []struct {
		name    string
		record  func(f *fixture, cb *device.CommandBuffer)
		samp    []string
		wantErr error
	}{
		{
			name: "no program",
			record: func(f *fixture, cb *device.CommandBuffer) {
				cb.BindVertexBuffer(f.buf)
				cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)
			},
			wantErr: device.ErrNoProgram,
		},
		{
			name: "no vertex buffer",
			record: func(f *fixture, cb *device.CommandBuffer) {
				cb.BindProgram(f.prog)
				cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)
			},
			wantErr: device.ErrNoVertexBuffer,
		},
		{
			name: "update overflow",
			record: func(f *fixture, cb *device.CommandBuffer) {
				cb.UpdateBuffer(f.buf, 60, make([]byte, 8))
			},
			wantErr: device.ErrBufferOverflow,
		},
		{
			name: "draw past end",
			record: func(f *fixture, cb *device.CommandBuffer) {
				cb.BindProgram(f.prog)
				cb.BindVertexBuffer(f.buf)
				cb.Draw(gputypes.PrimitiveTopologyTriangleList, 6, 3)
			},
			wantErr: device.ErrBufferOverflow,
		},
		{
			name: "unknown program",
			record: func(_ *fixture, cb *device.CommandBuffer) {
				cb.BindProgram(999)
			},
			wantErr: device.ErrInvalidResource,
		},
		{
			name: "unknown buffer",
			record: func(_ *fixture, cb *device.CommandBuffer) {
				cb.UpdateBuffer(999, 0, []byte{1})
			},
			wantErr: device.ErrInvalidResource,
		},
		{
			name: "unbound sampler",
			samp: []string{"s_texture"},
			record: func(f *fixture, cb *device.CommandBuffer) {
				cb.BindProgram(f.prog)
				cb.BindVertexBuffer(f.buf)
				cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)
			},
			wantErr: device.ErrInvalidResource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.samp...)
			var cb device.CommandBuffer
			tt.record(f, &cb)
			if err := f.dev.Submit(&cb); !errors.Is(err, tt.wantErr) {
				t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
			}
			if f.dev.Submits() != 0 {
				t.Errorf("Submits() = %d, want 0 after failure", f.dev.Submits())
			}
		})
	}
}

func TestSubmitInjectedError(t *testing.T) {
	lost := errors.New("context lost")
	d := New(WithSubmitError(lost))
	var cb device.CommandBuffer
	if err := d.Submit(&cb); !errors.Is(err, lost) {
		t.Errorf("Submit() error = %v, want %v", err, lost)
	}
}

func TestResetDraws(t *testing.T) {
	f := newFixture(t)
	var cb device.CommandBuffer
	cb.BindProgram(f.prog)
	cb.BindVertexBuffer(f.buf)
	cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, 3)
	if err := f.dev.Submit(&cb); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	f.dev.ResetDraws()
	if len(f.dev.Draws()) != 0 {
		t.Errorf("len(Draws()) after reset = %d, want 0", len(f.dev.Draws()))
	}
}
