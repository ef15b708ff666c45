package gfx2d

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestVertexSizesMatchLayouts(t *testing.T) {
	if flatLayout.Stride != VertexSize {
		t.Errorf("flat stride = %d, want %d", flatLayout.Stride, VertexSize)
	}
	if uvLayout.Stride != VertexUVSize {
		t.Errorf("uv stride = %d, want %d", uvLayout.Stride, VertexUVSize)
	}
	if n := len(AppendVertices(nil, []Vertex{{}})); n != VertexSize {
		t.Errorf("encoded Vertex = %d bytes, want %d", n, VertexSize)
	}
	if n := len(AppendVerticesUV(nil, []VertexUV{{}})); n != VertexUVSize {
		t.Errorf("encoded VertexUV = %d bytes, want %d", n, VertexUVSize)
	}
}

func TestAppendVerticesLittleEndian(t *testing.T) {
	v := Vertex{Pos: [2]float32{1.5, -2}, Color: [4]float32{0.25, 0.5, 0.75, 1}}
	b := AppendVertices(nil, []Vertex{v})

	want := []float32{1.5, -2, 0.25, 0.5, 0.75, 1}
	for i, f := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
		if got != f {
			t.Errorf("float %d = %v, want %v", i, got, f)
		}
	}
}

func TestAttributeOffsets(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		want   uint32
	}{
		{"flat pos", flatLayout.Attributes[0].Offset, 0},
		{"flat color", flatLayout.Attributes[1].Offset, 8},
		{"uv pos", uvLayout.Attributes[0].Offset, 0},
		{"uv color", uvLayout.Attributes[1].Offset, 8},
		{"uv uv", uvLayout.Attributes[2].Offset, 24},
	}
	for _, tt := range tests {
		if tt.offset != tt.want {
			t.Errorf("%s offset = %d, want %d", tt.name, tt.offset, tt.want)
		}
	}
}

func TestDecodeVerticesUV(t *testing.T) {
	in := []VertexUV{
		{Pos: [2]float32{1, 2}, Color: [4]float32{3, 4, 5, 6}, UV: [2]float32{7, 8}},
		{Pos: [2]float32{-1, -2}, Color: [4]float32{0, 0, 0, 1}, UV: [2]float32{0.5, 0.5}},
	}
	b := AppendVerticesUV(nil, in)
	b = append(b, 1, 2, 3) // partial trailing vertex

	got := DecodeVerticesUV(b)
	if len(got) != len(in) {
		t.Fatalf("decoded %d vertices, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}
