// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package haldev

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx2d/device"
)

var (
	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("haldev: provider does not expose HAL device and queue")

	// ErrNoTarget is returned by Submit when no render target is set.
	ErrNoTarget = errors.New("haldev: no render target")

	// ErrEmptyTarget is returned for a target with zero width or height.
	ErrEmptyTarget = errors.New("haldev: render target has zero size")

	// ErrNoDepthStencil is returned when a draw enables depth or stencil
	// testing and the target has no depth-stencil view.
	ErrNoDepthStencil = errors.New("haldev: draw state needs a depth-stencil attachment")
)

// DefaultMaxTextureSize is the texture size limit reported when none is
// configured. It is the WebGPU default for maxTextureDimension2D.
const DefaultMaxTextureSize = 8192

// Target is the attachment set draws are rendered into.
type Target struct {
	// View is the color attachment. Its contents are loaded and stored.
	View hal.TextureView

	// DepthStencil is an optional Depth24PlusStencil8 attachment.
	DepthStencil hal.TextureView

	// Width and Height are the attachment size in pixels. Draws without a
	// scissor rectangle cover the whole size.
	Width, Height uint32
}

func (t Target) validate() error {
	if t.View == nil {
		return ErrNoTarget
	}
	if t.Width == 0 || t.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrEmptyTarget, t.Width, t.Height)
	}
	return nil
}

type program struct {
	label      string
	modules    []hal.ShaderModule
	vertex     hal.ShaderModule
	fragment   hal.ShaderModule
	bgLayout   hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	layout     device.VertexLayout
	samplers   int
	pipelines  map[pipelineKey]hal.RenderPipeline
}

type buffer struct {
	buf  hal.Buffer
	size uint64
}

type texture struct {
	tex  hal.Texture
	view hal.TextureView
}

// Device implements device.Device on a HAL device and queue it borrows.
// Device is not safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue
	caps   device.Capabilities
	format gputypes.TextureFormat

	sampler hal.Sampler
	target  Target

	nextID   uint64
	programs map[device.ProgramID]*program
	buffers  map[device.BufferID]*buffer
	textures map[device.TextureID]*texture
}

// Option configures a Device.
type Option func(*Device)

// WithColorFormat sets the color attachment format pipelines are built for.
// The default is BGRA8Unorm.
func WithColorFormat(f gputypes.TextureFormat) Option {
	return func(d *Device) {
		d.format = f
	}
}

// WithMaxTextureSize sets the reported texture size limit.
func WithMaxTextureSize(n uint32) Option {
	return func(d *Device) {
		d.caps.MaxTextureSize = n
	}
}

func withRenderer(name string) Option {
	return func(d *Device) {
		d.caps.Renderer = name
	}
}

// New wraps a HAL device and queue. The caller keeps ownership of both.
func New(dev hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	d := &Device{
		device: dev,
		queue:  queue,
		format: gputypes.TextureFormatBGRA8Unorm,
		caps: device.Capabilities{
			Dialect:        device.DialectWGSL,
			MaxTextureSize: DefaultMaxTextureSize,
			Vendor:         "gogpu",
			Renderer:       "wgpu-hal",
		},
		programs: make(map[device.ProgramID]*program),
		buffers:  make(map[device.BufferID]*buffer),
		textures: make(map[device.TextureID]*texture),
	}
	for _, opt := range opts {
		opt(d)
	}

	sampler, err := dev.CreateSampler(&hal.SamplerDescriptor{
		Label:        "gfx2d_linear_clamp",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return nil, fmt.Errorf("haldev: create sampler: %w", err)
	}
	d.sampler = sampler

	slogger().Info("haldev: device ready", "format", d.format, "maxTextureSize", d.caps.MaxTextureSize)
	return d, nil
}

// NewFromProvider builds a Device from a host application's device provider.
// The provider must also implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue. The provider's surface format is used
// as the color format unless an option overrides it.
func NewFromProvider(p gpucontext.DeviceProvider, opts ...Option) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	dev, ok := hp.HalDevice().(hal.Device)
	if !ok || dev == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHAL, hp.HalQueue())
	}

	if f := p.SurfaceFormat(); f != gputypes.TextureFormatUndefined {
		opts = append([]Option{WithColorFormat(f)}, opts...)
	}
	if name := p.AdapterInfo().Name; name != "" {
		opts = append([]Option{withRenderer(name)}, opts...)
	}
	return New(dev, queue, opts...)
}

// SetLogger sets the logger for the haldev package.
func (d *Device) SetLogger(l *slog.Logger) { setLogger(l) }

// SetTarget sets the attachments later submissions render into.
// A target without a color view or with zero size is rejected and the
// previous target is kept.
func (d *Device) SetTarget(t Target) error {
	if err := t.validate(); err != nil {
		return err
	}
	d.target = t
	return nil
}

// Capabilities implements device.Device.
func (d *Device) Capabilities() device.Capabilities {
	return d.caps
}

func (d *Device) allocID() uint64 {
	d.nextID++
	return d.nextID
}

// LinkProgram implements device.Device. Only the WGSL sources are used.
// Pipelines are created lazily on first draw with each draw state.
func (d *Device) LinkProgram(desc *device.ProgramDescriptor) (device.ProgramID, error) {
	if desc.Layout.Stride == 0 {
		return device.InvalidID, fmt.Errorf("haldev: link %q: zero vertex stride", desc.Label)
	}
	vsrc, err := desc.Vertex.Select(device.DialectWGSL)
	if err != nil {
		return device.InvalidID, fmt.Errorf("haldev: link %q: vertex stage: %w", desc.Label, err)
	}
	fsrc, err := desc.Fragment.Select(device.DialectWGSL)
	if err != nil {
		return device.InvalidID, fmt.Errorf("haldev: link %q: fragment stage: %w", desc.Label, err)
	}

	p := &program{
		label:     desc.Label,
		layout:    desc.Layout,
		samplers:  len(desc.Samplers),
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}
	if err := d.buildProgram(p, vsrc, fsrc); err != nil {
		d.destroyProgram(p)
		return device.InvalidID, fmt.Errorf("haldev: link %q: %w", desc.Label, err)
	}

	id := device.ProgramID(d.allocID())
	d.programs[id] = p
	slogger().Debug("haldev: program linked", "label", desc.Label, "samplers", p.samplers)
	return id, nil
}

func (d *Device) buildProgram(p *program, vsrc, fsrc string) error {
	var err error
	if p.vertex, err = d.shaderModule(p, p.label+"_vs", vsrc); err != nil {
		return fmt.Errorf("vertex stage: %w", err)
	}
	p.fragment = p.vertex
	if fsrc != vsrc {
		if p.fragment, err = d.shaderModule(p, p.label+"_fs", fsrc); err != nil {
			return fmt.Errorf("fragment stage: %w", err)
		}
	}

	layouts := []hal.BindGroupLayout{}
	if p.samplers > 0 {
		p.bgLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   p.label + "_textures",
			Entries: layoutEntries(p.samplers),
		})
		if err != nil {
			return fmt.Errorf("create bind group layout: %w", err)
		}
		layouts = append(layouts, p.bgLayout)
	}

	p.pipeLayout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.label + "_layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	return nil
}

func (d *Device) shaderModule(p *program, label, source string) (hal.ShaderModule, error) {
	code, err := compileWGSL(source)
	if err != nil {
		return nil, err
	}
	m, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	p.modules = append(p.modules, m)
	return m, nil
}

// pipeline returns the program's render pipeline for s, creating it on
// first use.
func (d *Device) pipeline(p *program, s device.DrawState) (hal.RenderPipeline, error) {
	hasDS := d.target.DepthStencil != nil
	key := keyFor(s, hasDS)
	if rp, ok := p.pipelines[key]; ok {
		return rp, nil
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  p.label + "_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.vertex,
			EntryPoint: "vs_main",
			Buffers:    vertexBuffers(p.layout),
		},
		Fragment: &hal.FragmentState{
			Module:     p.fragment,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{{
				Format:    d.format,
				Blend:     blendState(s.Blend),
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
	}
	if hasDS {
		desc.DepthStencil = depthStencilState(key.state)
	}

	rp, err := d.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("create render pipeline %q: %w", p.label, err)
	}
	p.pipelines[key] = rp
	slogger().Debug("haldev: pipeline created", "label", p.label, "pipelines", len(p.pipelines))
	return rp, nil
}

// DestroyProgram implements device.Device.
func (d *Device) DestroyProgram(id device.ProgramID) {
	p, ok := d.programs[id]
	if !ok {
		return
	}
	d.destroyProgram(p)
	delete(d.programs, id)
}

func (d *Device) destroyProgram(p *program) {
	for _, rp := range p.pipelines {
		d.device.DestroyRenderPipeline(rp)
	}
	if p.pipeLayout != nil {
		d.device.DestroyPipelineLayout(p.pipeLayout)
	}
	if p.bgLayout != nil {
		d.device.DestroyBindGroupLayout(p.bgLayout)
	}
	for _, m := range p.modules {
		d.device.DestroyShaderModule(m)
	}
}

// CreateBuffer implements device.Device.
func (d *Device) CreateBuffer(desc *device.BufferDescriptor) (device.BufferID, error) {
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: desc.Usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return device.InvalidID, fmt.Errorf("haldev: create buffer %q: %w", desc.Label, err)
	}
	id := device.BufferID(d.allocID())
	d.buffers[id] = &buffer{buf: buf, size: desc.Size}
	return id, nil
}

// DestroyBuffer implements device.Device.
func (d *Device) DestroyBuffer(id device.BufferID) {
	b, ok := d.buffers[id]
	if !ok {
		return
	}
	d.device.DestroyBuffer(b.buf)
	delete(d.buffers, id)
}

// CreateTexture implements device.Device.
func (d *Device) CreateTexture(desc *device.TextureDescriptor, pixels []byte) (*device.Texture, error) {
	bpp := device.BytesPerPixel(desc.Format)
	if bpp == 0 {
		return nil, fmt.Errorf("haldev: create texture %q: %w: %v", desc.Label, device.ErrUnsupportedFormat, desc.Format)
	}
	if limit := d.caps.MaxTextureSize; limit != 0 && (desc.Width > limit || desc.Height > limit) {
		return nil, fmt.Errorf("haldev: create texture %q: %dx%d exceeds limit %d", desc.Label, desc.Width, desc.Height, limit)
	}
	want := int(desc.Width) * int(desc.Height) * bpp
	if len(pixels) != want || want == 0 {
		return nil, fmt.Errorf("haldev: create texture %q: got %d bytes, want %d", desc.Label, len(pixels), want)
	}

	size := hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1}
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("haldev: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         desc.Label + "_view",
		Format:        desc.Format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("haldev: create texture view %q: %w", desc.Label, err)
	}

	err = d.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  desc.Width * uint32(bpp), //nolint:gosec // bpp <= 4
			RowsPerImage: desc.Height,
		},
		&size,
	)
	if err != nil {
		d.device.DestroyTextureView(view)
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("haldev: upload texture %q: %w", desc.Label, err)
	}

	id := device.TextureID(d.allocID())
	d.textures[id] = &texture{tex: tex, view: view}
	return &device.Texture{ID: id, Width: desc.Width, Height: desc.Height, Format: desc.Format}, nil
}

// DestroyTexture implements device.Device.
func (d *Device) DestroyTexture(tex *device.Texture) {
	if tex == nil {
		return
	}
	t, ok := d.textures[tex.ID]
	if !ok {
		return
	}
	d.device.DestroyTextureView(t.view)
	d.device.DestroyTexture(t.tex)
	delete(d.textures, tex.ID)
}

// Close destroys every resource still owned by the device and its sampler.
// The HAL device and queue are not destroyed.
func (d *Device) Close() {
	for id := range d.programs {
		d.DestroyProgram(id)
	}
	for id := range d.buffers {
		d.DestroyBuffer(id)
	}
	for _, t := range d.textures {
		d.device.DestroyTextureView(t.view)
		d.device.DestroyTexture(t.tex)
	}
	clear(d.textures)
	if d.sampler != nil {
		d.device.DestroySampler(d.sampler)
		d.sampler = nil
	}
}
