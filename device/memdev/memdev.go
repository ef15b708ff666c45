// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package memdev provides a device that executes command buffers against
// host memory.
//
// Buffers are byte slices, textures are pixel slices, and every draw is
// appended to a log together with a snapshot of the vertices it consumed.
// No pixels are rasterized. The device is meant for tests and for headless
// hosts that want to inspect what a backend would have drawn.
package memdev

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

// Program is a linked program as seen by the memory device.
type Program struct {
	Label    string
	Dialect  device.Dialect
	Vertex   string
	Fragment string
	Layout   device.VertexLayout
	Samplers []string
}

// Buffer is a fixed-capacity buffer backed by host memory.
type Buffer struct {
	Label string
	Usage gputypes.BufferUsage
	Data  []byte
}

// BoundTexture records a texture bound to a sampler unit at draw time.
type BoundTexture struct {
	Unit    uint32
	Name    string
	Texture device.TextureID
}

// DrawCall is one executed draw.
type DrawCall struct {
	Program  device.ProgramID
	Buffer   device.BufferID
	Textures []BoundTexture
	State    device.DrawState
	Topology gputypes.PrimitiveTopology
	First    uint32
	Count    uint32

	// Vertices is a copy of the bytes the draw read from Buffer.
	Vertices []byte
}

type texture struct {
	desc   device.TextureDescriptor
	pixels []byte
}

// Device is a host-memory device. It is not safe for concurrent use.
type Device struct {
	caps device.Capabilities

	nextID   uint64
	programs map[device.ProgramID]*Program
	buffers  map[device.BufferID]*Buffer
	textures map[device.TextureID]*texture

	draws   []DrawCall
	submits int

	linkErr   error
	bufferErr error
	submitErr error
}

// New creates a memory device. By default it reports the GLSL 1.50 dialect
// and a 4096 pixel texture limit.
func New(opts ...Option) *Device {
	d := &Device{
		caps: device.Capabilities{
			Dialect:        device.DialectGLSL150,
			MaxTextureSize: 4096,
			Vendor:         "gfx2d",
			Renderer:       "memdev",
		},
		programs: make(map[device.ProgramID]*Program),
		buffers:  make(map[device.BufferID]*Buffer),
		textures: make(map[device.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Device) allocID() uint64 {
	d.nextID++
	return d.nextID
}

// Capabilities implements device.Device.
func (d *Device) Capabilities() device.Capabilities {
	return d.caps
}

// LinkProgram implements device.Device.
func (d *Device) LinkProgram(desc *device.ProgramDescriptor) (device.ProgramID, error) {
	vs, err := desc.Vertex.Select(d.caps.Dialect)
	if err != nil {
		return device.InvalidID, fmt.Errorf("memdev: link %q: vertex stage: %w", desc.Label, err)
	}
	fs, err := desc.Fragment.Select(d.caps.Dialect)
	if err != nil {
		return device.InvalidID, fmt.Errorf("memdev: link %q: fragment stage: %w", desc.Label, err)
	}
	if d.linkErr != nil {
		return device.InvalidID, fmt.Errorf("memdev: link %q: %w", desc.Label, d.linkErr)
	}
	if desc.Layout.Stride == 0 {
		return device.InvalidID, fmt.Errorf("memdev: link %q: %w: zero vertex stride", desc.Label, device.ErrUnsupportedFormat)
	}

	id := device.ProgramID(d.allocID())
	d.programs[id] = &Program{
		Label:    desc.Label,
		Dialect:  d.caps.Dialect,
		Vertex:   vs,
		Fragment: fs,
		Layout:   desc.Layout,
		Samplers: append([]string(nil), desc.Samplers...),
	}
	return id, nil
}

// DestroyProgram implements device.Device.
func (d *Device) DestroyProgram(id device.ProgramID) {
	delete(d.programs, id)
}

// CreateBuffer implements device.Device.
func (d *Device) CreateBuffer(desc *device.BufferDescriptor) (device.BufferID, error) {
	if d.bufferErr != nil {
		return device.InvalidID, fmt.Errorf("memdev: create buffer %q: %w", desc.Label, d.bufferErr)
	}
	id := device.BufferID(d.allocID())
	d.buffers[id] = &Buffer{
		Label: desc.Label,
		Usage: desc.Usage,
		Data:  make([]byte, desc.Size),
	}
	return id, nil
}

// DestroyBuffer implements device.Device.
func (d *Device) DestroyBuffer(id device.BufferID) {
	delete(d.buffers, id)
}

// CreateTexture implements device.Device.
func (d *Device) CreateTexture(desc *device.TextureDescriptor, pixels []byte) (*device.Texture, error) {
	bpp := device.BytesPerPixel(desc.Format)
	if bpp == 0 {
		return nil, fmt.Errorf("memdev: create texture %q: %w: %v", desc.Label, device.ErrUnsupportedFormat, desc.Format)
	}
	if limit := d.caps.MaxTextureSize; limit != 0 && (desc.Width > limit || desc.Height > limit) {
		return nil, fmt.Errorf("memdev: create texture %q: %dx%d exceeds limit %d", desc.Label, desc.Width, desc.Height, limit)
	}
	want := int(desc.Width) * int(desc.Height) * bpp
	if len(pixels) != want {
		return nil, fmt.Errorf("memdev: create texture %q: got %d bytes, want %d", desc.Label, len(pixels), want)
	}

	id := device.TextureID(d.allocID())
	d.textures[id] = &texture{
		desc:   *desc,
		pixels: append([]byte(nil), pixels...),
	}
	return &device.Texture{ID: id, Width: desc.Width, Height: desc.Height, Format: desc.Format}, nil
}

// DestroyTexture implements device.Device.
func (d *Device) DestroyTexture(tex *device.Texture) {
	if tex == nil {
		return
	}
	delete(d.textures, tex.ID)
}

// Program returns a linked program.
func (d *Device) Program(id device.ProgramID) (*Program, bool) {
	p, ok := d.programs[id]
	return p, ok
}

// Buffer returns a live buffer. The returned Data aliases device memory.
func (d *Device) Buffer(id device.BufferID) (*Buffer, bool) {
	b, ok := d.buffers[id]
	return b, ok
}

// TexturePixels returns the pixels uploaded for a texture.
func (d *Device) TexturePixels(id device.TextureID) ([]byte, bool) {
	t, ok := d.textures[id]
	if !ok {
		return nil, false
	}
	return t.pixels, true
}

// Draws returns every draw executed since creation or the last ResetDraws.
func (d *Device) Draws() []DrawCall {
	return d.draws
}

// ResetDraws clears the draw log.
func (d *Device) ResetDraws() {
	d.draws = nil
}

// Submits returns the number of successful Submit calls.
func (d *Device) Submits() int {
	return d.submits
}

// LiveResources returns the number of programs, buffers and textures
// that have not been destroyed.
func (d *Device) LiveResources() int {
	return len(d.programs) + len(d.buffers) + len(d.textures)
}
