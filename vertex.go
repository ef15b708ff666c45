package gfx2d

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx2d/device"
)

// Vertex byte sizes. Both layouts are tightly packed little-endian float32s.
const (
	VertexSize   = 24 // pos(8) + color(16)
	VertexUVSize = 32 // pos(8) + color(16) + uv(8)
)

// Vertex is one corner of a flat-colored triangle.
type Vertex struct {
	Pos   [2]float32
	Color [4]float32
}

// VertexUV is one corner of a textured triangle.
type VertexUV struct {
	Pos   [2]float32
	Color [4]float32
	UV    [2]float32
}

var flatLayout = device.VertexLayout{
	Stride: VertexSize,
	Attributes: []device.VertexAttribute{
		{Name: "pos", Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
		{Name: "color", Location: 1, Format: gputypes.VertexFormatFloat32x4, Offset: 8},
	},
}

var uvLayout = device.VertexLayout{
	Stride: VertexUVSize,
	Attributes: []device.VertexAttribute{
		{Name: "pos", Location: 0, Format: gputypes.VertexFormatFloat32x2, Offset: 0},
		{Name: "color", Location: 1, Format: gputypes.VertexFormatFloat32x4, Offset: 8},
		{Name: "uv", Location: 2, Format: gputypes.VertexFormatFloat32x2, Offset: 24},
	},
}

func appendFloats(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func readFloat(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
}

// AppendVertices appends the wire encoding of vs to dst.
func AppendVertices(dst []byte, vs []Vertex) []byte {
	for _, v := range vs {
		dst = appendFloats(dst, v.Pos[0], v.Pos[1], v.Color[0], v.Color[1], v.Color[2], v.Color[3])
	}
	return dst
}

// AppendVerticesUV appends the wire encoding of vs to dst.
func AppendVerticesUV(dst []byte, vs []VertexUV) []byte {
	for _, v := range vs {
		dst = appendFloats(dst, v.Pos[0], v.Pos[1], v.Color[0], v.Color[1], v.Color[2], v.Color[3], v.UV[0], v.UV[1])
	}
	return dst
}

// DecodeVertices decodes buffer contents written by AppendVertices.
// A trailing partial vertex is ignored.
func DecodeVertices(b []byte) []Vertex {
	out := make([]Vertex, 0, len(b)/VertexSize)
	for ; len(b) >= VertexSize; b = b[VertexSize:] {
		out = append(out, Vertex{
			Pos:   [2]float32{readFloat(b, 0), readFloat(b, 1)},
			Color: [4]float32{readFloat(b, 2), readFloat(b, 3), readFloat(b, 4), readFloat(b, 5)},
		})
	}
	return out
}

// DecodeVerticesUV decodes buffer contents written by AppendVerticesUV.
// A trailing partial vertex is ignored.
func DecodeVerticesUV(b []byte) []VertexUV {
	out := make([]VertexUV, 0, len(b)/VertexUVSize)
	for ; len(b) >= VertexUVSize; b = b[VertexUVSize:] {
		out = append(out, VertexUV{
			Pos:   [2]float32{readFloat(b, 0), readFloat(b, 1)},
			Color: [4]float32{readFloat(b, 2), readFloat(b, 3), readFloat(b, 4), readFloat(b, 5)},
			UV:    [2]float32{readFloat(b, 6), readFloat(b, 7)},
		})
	}
	return out
}
