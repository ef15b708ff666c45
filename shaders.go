package gfx2d

import (
	_ "embed"

	"github.com/gogpu/gfx2d/device"
)

// Embedded shader sources. The GLSL stages exist in a legacy (#version 120)
// and a core-profile (#version 150) dialect; the WGSL module holds both
// stages with vs_main and fs_main entry points.
var (
	//go:embed shaders/flat.120.vert
	flatVert120 string
	//go:embed shaders/flat.120.frag
	flatFrag120 string
	//go:embed shaders/flat.150.vert
	flatVert150 string
	//go:embed shaders/flat.150.frag
	flatFrag150 string
	//go:embed shaders/flat.wgsl
	flatWGSL string

	//go:embed shaders/textured.120.vert
	texturedVert120 string
	//go:embed shaders/textured.120.frag
	texturedFrag120 string
	//go:embed shaders/textured.150.vert
	texturedVert150 string
	//go:embed shaders/textured.150.frag
	texturedFrag150 string
	//go:embed shaders/textured.wgsl
	texturedWGSL string
)

// samplerName is the sampler uniform of the textured program.
const samplerName = "s_texture"

// FlatProgram returns the descriptor of the flat-colored program.
func FlatProgram() *device.ProgramDescriptor {
	return &device.ProgramDescriptor{
		Label:    "gfx2d_flat",
		Vertex:   device.ShaderSource{GLSL120: flatVert120, GLSL150: flatVert150, WGSL: flatWGSL},
		Fragment: device.ShaderSource{GLSL120: flatFrag120, GLSL150: flatFrag150, WGSL: flatWGSL},
		Layout:   flatLayout,
	}
}

// TexturedProgram returns the descriptor of the textured program.
func TexturedProgram() *device.ProgramDescriptor {
	return &device.ProgramDescriptor{
		Label:    "gfx2d_textured",
		Vertex:   device.ShaderSource{GLSL120: texturedVert120, GLSL150: texturedVert150, WGSL: texturedWGSL},
		Fragment: device.ShaderSource{GLSL120: texturedFrag120, GLSL150: texturedFrag150, WGSL: texturedWGSL},
		Layout:   uvLayout,
		Samplers: []string{samplerName},
	}
}
