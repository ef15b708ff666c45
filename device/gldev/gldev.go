// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogl

package gldev

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/gfx2d/device"
)

// ErrCompile is returned when a shader stage fails to compile or a program
// fails to link. The message carries the driver's info log.
var ErrCompile = errors.New("gldev: shader compile failed")

type program struct {
	handle   uint32
	vao      uint32
	layout   device.VertexLayout
	formats  []attribFormat
	samplers []int32 // uniform location per texture unit
}

type buffer struct {
	handle uint32
	size   uint64
}

// Device is an OpenGL device. All methods must be called on the thread
// that owns the GL context.
type Device struct {
	caps device.Capabilities

	nextID   uint64
	programs map[device.ProgramID]*program
	buffers  map[device.BufferID]*buffer
	textures map[device.TextureID]uint32
}

// New queries the current context and returns a device bound to it.
// It fails with device.ErrUnsupportedShadingLanguage when the context
// supports neither GLSL dialect.
func New() (*Device, error) {
	version := gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))
	dialect, err := device.ParseGLSLVersion(version)
	if err != nil {
		return nil, fmt.Errorf("gldev: %w", err)
	}

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)

	d := &Device{
		caps: device.Capabilities{
			Dialect:        dialect,
			MaxTextureSize: uint32(max(maxTex, 0)), //nolint:gosec // clamped
			Vendor:         gl.GoStr(gl.GetString(gl.VENDOR)),
			Renderer:       gl.GoStr(gl.GetString(gl.RENDERER)),
		},
		programs: make(map[device.ProgramID]*program),
		buffers:  make(map[device.BufferID]*buffer),
		textures: make(map[device.TextureID]uint32),
	}
	slogger().Info("gldev: context",
		"glsl", version, "dialect", dialect,
		"vendor", d.caps.Vendor, "renderer", d.caps.Renderer,
		"maxTextureSize", d.caps.MaxTextureSize)
	return d, nil
}

// SetLogger sets the logger for the gldev package.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

func (d *Device) allocID() uint64 {
	d.nextID++
	return d.nextID
}

// Capabilities implements device.Device.
func (d *Device) Capabilities() device.Capabilities {
	return d.caps
}

// LinkProgram implements device.Device. Attribute locations are bound by
// name before linking, so sources need no layout qualifiers.
func (d *Device) LinkProgram(desc *device.ProgramDescriptor) (device.ProgramID, error) {
	formats := make([]attribFormat, len(desc.Layout.Attributes))
	for i, a := range desc.Layout.Attributes {
		f, ok := vertexFormat(a.Format)
		if !ok {
			return device.InvalidID, fmt.Errorf("gldev: link %q: %w: attribute %q format %v",
				desc.Label, device.ErrUnsupportedFormat, a.Name, a.Format)
		}
		formats[i] = f
	}

	vsrc, err := desc.Vertex.Select(d.caps.Dialect)
	if err != nil {
		return device.InvalidID, fmt.Errorf("gldev: link %q: vertex stage: %w", desc.Label, err)
	}
	fsrc, err := desc.Fragment.Select(d.caps.Dialect)
	if err != nil {
		return device.InvalidID, fmt.Errorf("gldev: link %q: fragment stage: %w", desc.Label, err)
	}

	handle, err := buildProgram(vsrc, fsrc, desc.Layout.Attributes)
	if err != nil {
		return device.InvalidID, fmt.Errorf("gldev: link %q: %w", desc.Label, err)
	}

	p := &program{
		handle:  handle,
		layout:  desc.Layout,
		formats: formats,
	}
	gl.UseProgram(handle)
	for unit, name := range desc.Samplers {
		loc := gl.GetUniformLocation(handle, gl.Str(name+"\x00"))
		if loc >= 0 {
			gl.Uniform1i(loc, int32(unit)) //nolint:gosec // few samplers
		}
		p.samplers = append(p.samplers, loc)
	}
	gl.UseProgram(0)
	gl.GenVertexArrays(1, &p.vao)

	id := device.ProgramID(d.allocID())
	d.programs[id] = p
	slogger().Debug("gldev: program linked", "label", desc.Label, "dialect", d.caps.Dialect)
	return id, nil
}

// DestroyProgram implements device.Device.
func (d *Device) DestroyProgram(id device.ProgramID) {
	p, ok := d.programs[id]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.handle)
	delete(d.programs, id)
}

// CreateBuffer implements device.Device. The buffer is allocated with
// GL_DYNAMIC_DRAW and no initial contents.
func (d *Device) CreateBuffer(desc *device.BufferDescriptor) (device.BufferID, error) {
	var handle uint32
	gl.GenBuffers(1, &handle)
	gl.BindBuffer(gl.ARRAY_BUFFER, handle)
	gl.BufferData(gl.ARRAY_BUFFER, int(desc.Size), nil, gl.DYNAMIC_DRAW) //nolint:gosec // buffer sizes are small
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteBuffers(1, &handle)
		return device.InvalidID, fmt.Errorf("gldev: create buffer %q: GL error 0x%x", desc.Label, code)
	}

	id := device.BufferID(d.allocID())
	d.buffers[id] = &buffer{handle: handle, size: desc.Size}
	return id, nil
}

// DestroyBuffer implements device.Device.
func (d *Device) DestroyBuffer(id device.BufferID) {
	b, ok := d.buffers[id]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &b.handle)
	delete(d.buffers, id)
}

// CreateTexture implements device.Device. Textures use linear filtering
// and clamp-to-edge addressing.
func (d *Device) CreateTexture(desc *device.TextureDescriptor, pixels []byte) (*device.Texture, error) {
	internal, format, xtype, ok := textureFormat(desc.Format)
	if !ok {
		return nil, fmt.Errorf("gldev: create texture %q: %w: %v", desc.Label, device.ErrUnsupportedFormat, desc.Format)
	}
	if limit := d.caps.MaxTextureSize; limit != 0 && (desc.Width > limit || desc.Height > limit) {
		return nil, fmt.Errorf("gldev: create texture %q: %dx%d exceeds limit %d", desc.Label, desc.Width, desc.Height, limit)
	}
	want := int(desc.Width) * int(desc.Height) * device.BytesPerPixel(desc.Format)
	if len(pixels) != want || want == 0 {
		return nil, fmt.Errorf("gldev: create texture %q: got %d bytes, want %d", desc.Label, len(pixels), want)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, //nolint:gosec // bounded by limit
		format, xtype, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &handle)
		return nil, fmt.Errorf("gldev: create texture %q: GL error 0x%x", desc.Label, code)
	}

	id := device.TextureID(d.allocID())
	d.textures[id] = handle
	return &device.Texture{ID: id, Width: desc.Width, Height: desc.Height, Format: desc.Format}, nil
}

// DestroyTexture implements device.Device.
func (d *Device) DestroyTexture(tex *device.Texture) {
	if tex == nil {
		return
	}
	handle, ok := d.textures[tex.ID]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &handle)
	delete(d.textures, tex.ID)
}

func compileShader(shaderType uint32, source string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func buildProgram(vsrc, fsrc string, attrs []device.VertexAttribute) (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, vsrc)
	if err != nil {
		return 0, fmt.Errorf("vertex stage: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(gl.FRAGMENT_SHADER, fsrc)
	if err != nil {
		return 0, fmt.Errorf("fragment stage: %w", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	for _, a := range attrs {
		gl.BindAttribLocation(prog, a.Location, gl.Str(a.Name+"\x00"))
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: link: %s", ErrCompile, strings.TrimRight(log, "\x00"))
	}
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)
	return prog, nil
}
