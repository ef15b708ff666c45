// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package memdev

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

func testProgram(samplers ...string) *device.ProgramDescriptor {
	return &device.ProgramDescriptor{
		Label:    "test",
		Vertex:   device.ShaderSource{GLSL120: "vs120", GLSL150: "vs150"},
		Fragment: device.ShaderSource{GLSL120: "fs120", GLSL150: "fs150"},
		Layout: device.VertexLayout{
			Stride: 8,
			Attributes: []device.VertexAttribute{
				{Name: "pos", Location: 0, Format: gputypes.VertexFormatFloat32x2},
			},
		},
		Samplers: samplers,
	}
}

func TestLinkProgramSelectsDialect(t *testing.T) {
	tests := []struct {
		dialect device.Dialect
		wantVS  string
		wantFS  string
	}{
		{device.DialectGLSL120, "vs120", "fs120"},
		{device.DialectGLSL150, "vs150", "fs150"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect.String(), func(t *testing.T) {
			d := New(WithDialect(tt.dialect))
			id, err := d.LinkProgram(testProgram())
			if err != nil {
				t.Fatalf("LinkProgram() error = %v", err)
			}
			if id == device.InvalidID {
				t.Fatal("LinkProgram() returned InvalidID")
			}
			p, ok := d.Program(id)
			if !ok {
				t.Fatal("Program() not found after link")
			}
			if p.Vertex != tt.wantVS || p.Fragment != tt.wantFS {
				t.Errorf("linked sources = %q/%q, want %q/%q", p.Vertex, p.Fragment, tt.wantVS, tt.wantFS)
			}
			if p.Dialect != tt.dialect {
				t.Errorf("Dialect = %v, want %v", p.Dialect, tt.dialect)
			}
		})
	}
}

func TestLinkProgramFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		dev     *Device
		desc    *device.ProgramDescriptor
		wantErr error
	}{
		{
			name:    "unknown dialect",
			dev:     New(WithDialect(device.DialectUnknown)),
			desc:    testProgram(),
			wantErr: device.ErrDialectUnavailable,
		},
		{
			name:    "wgsl missing",
			dev:     New(WithDialect(device.DialectWGSL)),
			desc:    testProgram(),
			wantErr: device.ErrDialectUnavailable,
		},
		{
			name:    "injected",
			dev:     New(WithLinkError(boom)),
			desc:    testProgram(),
			wantErr: boom,
		},
		{
			name: "zero stride",
			dev:  New(),
			desc: &device.ProgramDescriptor{
				Vertex:   device.ShaderSource{GLSL150: "vs"},
				Fragment: device.ShaderSource{GLSL150: "fs"},
			},
			wantErr: device.ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.dev.LinkProgram(tt.desc)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LinkProgram() error = %v, want %v", err, tt.wantErr)
			}
			if id != device.InvalidID {
				t.Errorf("LinkProgram() id = %d, want InvalidID", id)
			}
			if n := tt.dev.LiveResources(); n != 0 {
				t.Errorf("LiveResources() = %d, want 0", n)
			}
		})
	}
}

func TestCreateBuffer(t *testing.T) {
	d := New()
	id, err := d.CreateBuffer(&device.BufferDescriptor{Label: "vb", Size: 64, Usage: gputypes.BufferUsageVertex})
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	b, ok := d.Buffer(id)
	if !ok {
		t.Fatal("Buffer() not found")
	}
	if len(b.Data) != 64 {
		t.Errorf("len(Data) = %d, want 64", len(b.Data))
	}

	d.DestroyBuffer(id)
	if _, ok := d.Buffer(id); ok {
		t.Error("buffer still live after DestroyBuffer")
	}
}

func TestCreateBufferInjectedError(t *testing.T) {
	boom := errors.New("out of memory")
	d := New(WithBufferError(boom))
	if _, err := d.CreateBuffer(&device.BufferDescriptor{Size: 4}); !errors.Is(err, boom) {
		t.Errorf("CreateBuffer() error = %v, want %v", err, boom)
	}
}

func TestCreateTexture(t *testing.T) {
	tests := []struct {
		name    string
		desc    device.TextureDescriptor
		pixels  int
		wantErr bool
	}{
		{"rgba 2x2", device.TextureDescriptor{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}, 16, false},
		{"r8 3x1", device.TextureDescriptor{Width: 3, Height: 1, Format: gputypes.TextureFormatR8Unorm}, 3, false},
		{"short data", device.TextureDescriptor{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}, 15, true},
		{"depth format", device.TextureDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatDepth24PlusStencil8}, 4, true},
		{"over limit", device.TextureDescriptor{Width: 8192, Height: 1, Format: gputypes.TextureFormatR8Unorm}, 8192, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			tex, err := d.CreateTexture(&tt.desc, make([]byte, tt.pixels))
			if tt.wantErr {
				if err == nil {
					t.Error("CreateTexture() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateTexture() error = %v", err)
			}
			if tex.Width != tt.desc.Width || tex.Height != tt.desc.Height {
				t.Errorf("size = %dx%d, want %dx%d", tex.Width, tex.Height, tt.desc.Width, tt.desc.Height)
			}
			if px, ok := d.TexturePixels(tex.ID); !ok || len(px) != tt.pixels {
				t.Errorf("TexturePixels() = %d bytes, %v; want %d", len(px), ok, tt.pixels)
			}
			d.DestroyTexture(tex)
			if d.LiveResources() != 0 {
				t.Error("texture still live after DestroyTexture")
			}
		})
	}
}

func TestCreateTextureCopiesPixels(t *testing.T) {
	d := New()
	px := []byte{1, 2, 3, 4}
	tex, err := d.CreateTexture(&device.TextureDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm}, px)
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	px[0] = 99
	got, _ := d.TexturePixels(tex.ID)
	if got[0] != 1 {
		t.Errorf("stored pixels aliased caller slice: got %d, want 1", got[0])
	}
}

func TestDestroyNilTexture(t *testing.T) {
	d := New()
	d.DestroyTexture(nil)
}

func TestUniqueIDs(t *testing.T) {
	d := New()
	seen := make(map[uint64]bool)
	for range 4 {
		p, _ := d.LinkProgram(testProgram())
		b, _ := d.CreateBuffer(&device.BufferDescriptor{Size: 8})
		for _, id := range []uint64{uint64(p), uint64(b)} {
			if seen[id] {
				t.Fatalf("duplicate id %d", id)
			}
			seen[id] = true
		}
	}
}
