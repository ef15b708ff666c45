package gfx2d

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/backend"
	"github.com/gogpu/gfx2d/device"
)

// Name is the name gfx2d registers under in the backend registry.
const Name = "gfx2d"

var _ backend.Backend = (*Gfx2d)(nil)

func init() {
	backend.Register(Name, func(dev device.Device) (backend.Backend, error) {
		g, err := New(dev)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}

// Gfx2d batches triangle lists into two fixed-capacity vertex buffers and
// records their draws into a command buffer.
//
// A Gfx2d owns its programs and buffers. Textures passed to textured draws
// are borrowed for the duration of the call and never destroyed.
type Gfx2d struct {
	dev     device.Device
	dialect device.Dialect
	state   device.DrawState
	logger  *slog.Logger

	flatProg device.ProgramID
	uvProg   device.ProgramID
	flatBuf  device.BufferID
	uvBuf    device.BufferID

	flat arena[Vertex]
	uv   arena[VertexUV]

	// tex is set only while a textured call runs.
	tex *device.Texture

	cb      device.CommandBuffer
	scratch []byte
	closed  bool
}

// New links the flat and textured programs on dev and allocates one vertex
// buffer per layout.
//
// Program link failure is fatal: New returns an error wrapping
// ErrProgramLink and releases everything it allocated.
func New(dev device.Device, opts ...Option) (*Gfx2d, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.bufferSize < 3 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBufferSize, o.bufferSize)
	}

	if ls, ok := dev.(loggerSetter); ok && o.logger != nil {
		ls.SetLogger(o.logger)
	}

	caps := dev.Capabilities()
	g := &Gfx2d{
		dev:     dev,
		dialect: caps.Dialect,
		state:   o.state,
		logger:  o.logger,
		flat:    newArena[Vertex](o.bufferSize),
		uv:      newArena[VertexUV](o.bufferSize),
		scratch: make([]byte, 0, o.bufferSize*VertexUVSize),
	}
	if err := g.init(o.bufferSize); err != nil {
		g.log().Warn("gfx2d: construction failed, releasing resources", "err", err)
		g.release()
		return nil, err
	}

	g.log().Info("gfx2d: backend created", "dialect", caps.Dialect, "bufferSize", o.bufferSize)
	return g, nil
}

// init links both programs and allocates both buffers.
// On error the caller releases whatever was created.
func (g *Gfx2d) init(bufferSize int) error {
	g.log().Debug("gfx2d: linking programs", "dialect", g.dialect)

	var err error
	if g.flatProg, err = g.dev.LinkProgram(FlatProgram()); err != nil {
		return fmt.Errorf("%w: flat: %w", ErrProgramLink, err)
	}
	if g.uvProg, err = g.dev.LinkProgram(TexturedProgram()); err != nil {
		return fmt.Errorf("%w: textured: %w", ErrProgramLink, err)
	}

	if g.flatBuf, err = g.dev.CreateBuffer(&device.BufferDescriptor{
		Label: "gfx2d_flat_vertices",
		Size:  uint64(bufferSize) * VertexSize, //nolint:gosec // validated positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	}); err != nil {
		return fmt.Errorf("%w: flat: %w", ErrBufferCreate, err)
	}
	if g.uvBuf, err = g.dev.CreateBuffer(&device.BufferDescriptor{
		Label: "gfx2d_textured_vertices",
		Size:  uint64(bufferSize) * VertexUVSize, //nolint:gosec // validated positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	}); err != nil {
		return fmt.Errorf("%w: textured: %w", ErrBufferCreate, err)
	}
	return nil
}

func (g *Gfx2d) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return Logger()
}

// release destroys every owned resource that was created.
func (g *Gfx2d) release() {
	if g.uvBuf != device.InvalidID {
		g.dev.DestroyBuffer(g.uvBuf)
		g.uvBuf = device.InvalidID
	}
	if g.flatBuf != device.InvalidID {
		g.dev.DestroyBuffer(g.flatBuf)
		g.flatBuf = device.InvalidID
	}
	if g.uvProg != device.InvalidID {
		g.dev.DestroyProgram(g.uvProg)
		g.uvProg = device.InvalidID
	}
	if g.flatProg != device.InvalidID {
		g.dev.DestroyProgram(g.flatProg)
		g.flatProg = device.InvalidID
	}
}

// Name implements backend.Backend.
func (g *Gfx2d) Name() string { return Name }

// Dialect returns the shader dialect the programs were linked with.
func (g *Gfx2d) Dialect() device.Dialect { return g.dialect }

// DrawState returns a copy of the draw state applied to every draw.
func (g *Gfx2d) DrawState() device.DrawState { return g.state }

// Staged returns the number of vertices waiting for a flush.
func (g *Gfx2d) Staged() int { return g.flat.Len() + g.uv.Len() }

// Supports implements backend.Backend.
func (g *Gfx2d) Supports(e backend.Encoding) bool {
	switch e {
	case backend.EncodingTriListXYColorF32, backend.EncodingTriListXYColorUVF32:
		return true
	default:
		return false
	}
}

// SupportsTriListXYColorF32 implements backend.Backend. It always reports true.
func (g *Gfx2d) SupportsTriListXYColorF32() bool { return true }

// SupportsTriListXYColorUVF32 implements backend.Backend. It always reports true.
func (g *Gfx2d) SupportsTriListXYColorUVF32() bool { return true }

// TriListXYColorF32 stages a flat-colored triangle list.
//
// vertices holds x,y pairs and colors holds r,g,b,a per vertex. The
// records stay staged until Flush, Submit or a textured draw, except that a
// full buffer is drawn before more records are staged.
//
// An overflow draw covers only whole triangles. The vertices of the
// unfinished triangle stay staged ahead of the remaining input, so the
// staged count afterwards is not the total pushed modulo BufferSize: pushing
// 1025 vertices into an empty 1024-vertex buffer draws 1023 and leaves 2
// staged.
func (g *Gfx2d) TriListXYColorF32(vertices, colors []float32) error {
	if g.closed {
		return ErrClosed
	}
	n, err := vertexCount(vertices, colors)
	if err != nil {
		return err
	}

	for i := range n {
		if g.flat.Full() {
			g.drawFlat(trianglePrefix(g.flat.Len()))
		}
		g.flat.Push(Vertex{
			Pos:   [2]float32(vertices[2*i : 2*i+2]),
			Color: [4]float32(colors[4*i : 4*i+4]),
		})
	}
	return nil
}

// TriListXYColorUVF32 draws a textured triangle list sampling tex.
//
// Pending flat records are drawn first so that draw order matches call
// order. All records of this call are drawn before it returns; tex is not
// referenced afterwards.
func (g *Gfx2d) TriListXYColorUVF32(tex *device.Texture, vertices, colors, uv []float32) error {
	if g.closed {
		return ErrClosed
	}
	if tex == nil {
		return ErrNilTexture
	}
	n, err := vertexCount(vertices, colors)
	if err != nil {
		return err
	}
	if len(uv) != 2*n {
		return fmt.Errorf("%w: %d vertices need %d uv floats, got %d", ErrLengthMismatch, n, 2*n, len(uv))
	}

	g.drawFlat(g.flat.Len())

	g.tex = tex
	defer func() {
		g.tex = nil
		g.uv.Reset()
	}()

	for i := range n {
		if g.uv.Full() {
			g.drawUV(trianglePrefix(g.uv.Len()))
		}
		g.uv.Push(VertexUV{
			Pos:   [2]float32(vertices[2*i : 2*i+2]),
			Color: [4]float32(colors[4*i : 4*i+4]),
			UV:    [2]float32(uv[2*i : 2*i+2]),
		})
	}
	g.drawUV(g.uv.Len())
	return nil
}

// vertexCount validates array lengths and returns the vertex count.
func vertexCount(vertices, colors []float32) (int, error) {
	if len(vertices)%2 != 0 {
		return 0, fmt.Errorf("%w: odd position count %d", ErrLengthMismatch, len(vertices))
	}
	n := len(vertices) / 2
	if len(colors) != 4*n {
		return 0, fmt.Errorf("%w: %d vertices need %d color floats, got %d", ErrLengthMismatch, n, 4*n, len(colors))
	}
	return n, nil
}

// Flush records draws for every staged vertex. Empty staging records nothing.
func (g *Gfx2d) Flush() error {
	if g.closed {
		return ErrClosed
	}
	g.drawFlat(g.flat.Len())
	return nil
}

// drawFlat records an upload and draw of the first count flat records and
// drops them from staging.
func (g *Gfx2d) drawFlat(count int) {
	if count == 0 {
		return
	}
	g.scratch = AppendVertices(g.scratch[:0], g.flat.Records()[:count])
	g.record(g.flatProg, g.flatBuf, nil, count)
	g.flat.Consume(count)
}

// drawUV is drawFlat for the textured layout, sampling the borrowed texture.
func (g *Gfx2d) drawUV(count int) {
	if count == 0 {
		return
	}
	g.scratch = AppendVerticesUV(g.scratch[:0], g.uv.Records()[:count])
	g.record(g.uvProg, g.uvBuf, g.tex, count)
	g.uv.Consume(count)
}

// record appends one upload+draw sequence for the bytes in g.scratch.
func (g *Gfx2d) record(prog device.ProgramID, buf device.BufferID, tex *device.Texture, count int) {
	g.cb.UpdateBuffer(buf, 0, g.scratch)
	g.cb.BindProgram(prog)
	g.cb.BindVertexBuffer(buf)
	if tex != nil {
		g.cb.BindTexture(0, samplerName, tex.ID)
	}
	g.cb.SetDrawState(g.state)
	g.cb.Draw(gputypes.PrimitiveTopologyTriangleList, 0, uint32(count)) //nolint:gosec // count <= buffer size

	g.log().Debug("gfx2d: flush", "textured", tex != nil, "vertices", count)
}

// AsBuffer returns the command buffer draws are recorded into.
// It stays owned by the backend and is reset by Submit.
func (g *Gfx2d) AsBuffer() *device.CommandBuffer {
	return &g.cb
}

// Submit flushes staged vertices and hands the recorded commands to the
// device. On success the command buffer is reset. A device error is
// returned wrapped in ErrSubmit and the commands are kept.
func (g *Gfx2d) Submit() error {
	if g.closed {
		return ErrClosed
	}
	g.drawFlat(g.flat.Len())
	if g.cb.Len() == 0 {
		return nil
	}

	draws := g.cb.DrawCount()
	if err := g.dev.Submit(&g.cb); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	g.log().Debug("gfx2d: submitted", "commands", g.cb.Len(), "draws", draws)
	g.cb.Reset()
	return nil
}

// Close destroys the programs and buffers. Staged and recorded but
// unsubmitted work is discarded. Close is idempotent.
func (g *Gfx2d) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	g.release()
	g.flat.Reset()
	g.uv.Reset()
	g.cb.Reset()
	g.log().Info("gfx2d: backend closed")
	return nil
}
