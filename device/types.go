// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/gogpu/gputypes"
)

// Resource IDs
//
// These opaque IDs represent GPU resources. Each device implementation
// maintains a mapping between IDs and actual backend resources.

// ProgramID is an opaque handle to a linked vertex+fragment program.
type ProgramID uint64

// BufferID is an opaque handle to a GPU vertex buffer.
type BufferID uint64

// TextureID is an opaque handle to a GPU texture.
type TextureID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// Capabilities describes what a device context accepts.
type Capabilities struct {
	// Dialect is the shading-language dialect programs must be written in.
	Dialect Dialect

	// MaxTextureSize is the largest texture dimension in pixels.
	// Zero means unlimited.
	MaxTextureSize uint32

	// Vendor and Renderer identify the driver, for diagnostics only.
	Vendor   string
	Renderer string
}

// VertexAttribute describes one attribute inside an interleaved vertex.
type VertexAttribute struct {
	// Name is the attribute name in GLSL sources.
	Name string

	// Location is the attribute location (WGSL @location, GL attribute index).
	Location uint32

	// Format is the attribute data format.
	Format gputypes.VertexFormat

	// Offset is the byte offset from the start of the vertex.
	Offset uint32
}

// VertexLayout describes an interleaved vertex buffer layout.
type VertexLayout struct {
	// Stride is the byte size of one vertex.
	Stride uint32

	// Attributes lists the attributes in location order.
	Attributes []VertexAttribute
}

// ProgramDescriptor describes a program to link.
type ProgramDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Vertex and Fragment hold the stage sources in every available dialect.
	Vertex   ShaderSource
	Fragment ShaderSource

	// Layout is the vertex layout the program consumes.
	Layout VertexLayout

	// Samplers lists sampler uniform names, indexed by texture unit.
	Samplers []string
}

// BufferDescriptor describes a fixed-capacity vertex buffer.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Size is the buffer capacity in bytes.
	Size uint64

	// Usage specifies how the buffer will be used.
	Usage gputypes.BufferUsage
}

// TextureDescriptor describes a 2D texture.
type TextureDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the texture size in pixels.
	Width  uint32
	Height uint32

	// Format is the pixel format. Only RGBA8Unorm is required of devices.
	Format gputypes.TextureFormat
}

// Texture is a handle to an uploaded image.
//
// Textures are owned by whoever created them (typically an asset loader).
// Draw calls borrow a *Texture for their own duration only.
type Texture struct {
	ID     TextureID
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
}

// Device is a live GPU device context.
//
// Devices are not safe for concurrent use; every call must come from the
// goroutine (thread) that owns the context.
type Device interface {
	// Capabilities reports the context's shading-language dialect and limits.
	Capabilities() Capabilities

	// LinkProgram compiles and links a program using the source that
	// matches Capabilities().Dialect.
	LinkProgram(desc *ProgramDescriptor) (ProgramID, error)

	// DestroyProgram releases a program.
	DestroyProgram(id ProgramID)

	// CreateBuffer allocates a fixed-capacity dynamic buffer.
	CreateBuffer(desc *BufferDescriptor) (BufferID, error)

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// CreateTexture allocates a texture and uploads tightly packed pixels.
	CreateTexture(desc *TextureDescriptor, pixels []byte) (*Texture, error)

	// DestroyTexture releases a texture.
	DestroyTexture(tex *Texture)

	// Submit executes the recorded commands in order.
	// The command buffer is not modified.
	Submit(cb *CommandBuffer) error
}

// BytesPerPixel returns the size of one pixel of the given format, or 0
// for formats devices are not required to support.
func BytesPerPixel(format gputypes.TextureFormat) int {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return 4
	case gputypes.TextureFormatR8Unorm:
		return 1
	default:
		return 0
	}
}
