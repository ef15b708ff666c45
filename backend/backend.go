package backend

import (
	"errors"
	"fmt"

	"github.com/gogpu/gfx2d/device"
)

// Common backend errors.
var (
	// ErrUnsupportedEncoding is returned by Dispatch when a backend does not
	// accept a primitive's encoding. Front ends should fall back to an
	// encoding the backend does support.
	ErrUnsupportedEncoding = errors.New("backend: unsupported encoding")

	// ErrUnknownBackend is returned by Open when no factory is registered
	// under the requested name.
	ErrUnknownBackend = errors.New("backend: unknown backend")
)

// Encoding identifies a primitive data encoding a front end can push.
type Encoding uint8

const (
	// EncodingTriListXYColorF32 is a triangle list given as separate float32
	// arrays: two position floats and four RGBA floats per vertex.
	EncodingTriListXYColorF32 Encoding = iota + 1

	// EncodingTriListXYColorUVF32 adds two texture-coordinate floats per
	// vertex and a texture sampled by the fragment stage.
	EncodingTriListXYColorUVF32
)

// encodings lists every known encoding in declaration order.
var encodings = [...]Encoding{
	EncodingTriListXYColorF32,
	EncodingTriListXYColorUVF32,
}

var encodingNames = [...]string{
	EncodingTriListXYColorF32:   "TriListXYColorF32",
	EncodingTriListXYColorUVF32: "TriListXYColorUVF32",
}

// String returns the encoding name.
func (e Encoding) String() string {
	if e != 0 && int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return "Unknown"
}

// Backend consumes primitive draw requests and turns them into GPU
// submissions.
//
// Every push operation has a paired capability query. A front end must
// check the query (or call Supports, or use Dispatch) before pushing, and
// fall back to another encoding when it reports false.
type Backend interface {
	// Name returns the name the backend is registered under.
	Name() string

	// Supports reports whether the backend accepts the encoding.
	Supports(e Encoding) bool

	// SupportsTriListXYColorF32 reports whether TriListXYColorF32 is implemented.
	SupportsTriListXYColorF32() bool

	// TriListXYColorF32 draws a flat-colored triangle list. len(vertices)
	// must be even and len(colors) must be twice len(vertices).
	TriListXYColorF32(vertices, colors []float32) error

	// SupportsTriListXYColorUVF32 reports whether TriListXYColorUVF32 is implemented.
	SupportsTriListXYColorUVF32() bool

	// TriListXYColorUVF32 draws a textured triangle list. tex is borrowed
	// for the duration of the call only. len(uv) must equal len(vertices).
	TriListXYColorUVF32(tex *device.Texture, vertices, colors, uv []float32) error

	// Flush records draws for everything staged so far.
	Flush() error

	// Close releases backend-owned GPU resources.
	Close() error
}

// Encodings returns the encodings b accepts, in a stable order.
func Encodings(b Backend) []Encoding {
	var out []Encoding
	for _, e := range encodings {
		if b.Supports(e) {
			out = append(out, e)
		}
	}
	return out
}

// Primitive is a draw request in one specific encoding.
// The set of primitives is closed: TriList and TexturedTriList.
type Primitive interface {
	// Encoding returns the encoding the primitive's data is in.
	Encoding() Encoding

	isPrimitive()
}

// TriList is a flat-colored triangle list.
type TriList struct {
	// Vertices holds x,y pairs.
	Vertices []float32
	// Colors holds r,g,b,a per vertex.
	Colors []float32
}

// Encoding implements Primitive.
func (TriList) Encoding() Encoding { return EncodingTriListXYColorF32 }

func (TriList) isPrimitive() {}

// TexturedTriList is a triangle list sampling Texture, tinted by Colors.
type TexturedTriList struct {
	Texture  *device.Texture
	Vertices []float32
	Colors   []float32
	// UV holds u,v pairs.
	UV []float32
}

// Encoding implements Primitive.
func (TexturedTriList) Encoding() Encoding { return EncodingTriListXYColorUVF32 }

func (TexturedTriList) isPrimitive() {}

// Dispatch pushes p to b after checking that b supports its encoding.
// It returns an error wrapping ErrUnsupportedEncoding, without calling b,
// when the encoding is refused.
func Dispatch(b Backend, p Primitive) error {
	enc := p.Encoding()
	if !b.Supports(enc) {
		return fmt.Errorf("%w: %s does not accept %v", ErrUnsupportedEncoding, b.Name(), enc)
	}

	switch p := p.(type) {
	case TriList:
		return b.TriListXYColorF32(p.Vertices, p.Colors)
	case *TriList:
		return b.TriListXYColorF32(p.Vertices, p.Colors)
	case TexturedTriList:
		return b.TriListXYColorUVF32(p.Texture, p.Vertices, p.Colors, p.UV)
	case *TexturedTriList:
		return b.TriListXYColorUVF32(p.Texture, p.Vertices, p.Colors, p.UV)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedEncoding, p)
	}
}
