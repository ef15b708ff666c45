// Command gfx2ddemo records a fan of flat triangles and an optional textured
// quad through the gfx2d backend on an in-memory device and reports the
// draw calls that reach the device.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"math"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/gfx2d"
	"github.com/gogpu/gfx2d/backend"
	"github.com/gogpu/gfx2d/device"
	"github.com/gogpu/gfx2d/device/memdev"
	"github.com/gogpu/gfx2d/texture"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("gfx2ddemo", flag.ContinueOnError)
	var (
		dialect   = fs.String("dialect", "glsl150", "shader dialect: glsl120, glsl150 or wgsl")
		triangles = fs.Int("triangles", 1000, "number of flat triangles")
		imagePath = fs.String("image", "", "optional image drawn as a textured quad")
		maxTex    = fs.Uint("max-texture", 4096, "device texture size limit")
		verbose   = fs.Bool("v", false, "log backend activity to stderr")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := parseDialect(*dialect)
	if err != nil {
		return err
	}
	if *verbose {
		gfx2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dev := memdev.New(memdev.WithDialect(d), memdev.WithMaxTextureSize(uint32(*maxTex))) //nolint:gosec // flag value
	b, err := backend.Open(gfx2d.Name, dev)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer b.Close()

	if err := backend.Dispatch(b, fan(*triangles)); err != nil {
		return fmt.Errorf("draw triangles: %w", err)
	}

	if *imagePath != "" {
		tex, err := loadTexture(dev, *imagePath)
		if err != nil {
			return fmt.Errorf("load texture: %w", err)
		}
		defer dev.DestroyTexture(tex)
		if err := backend.Dispatch(b, quad(tex)); err != nil {
			return fmt.Errorf("draw image: %w", err)
		}
	}

	g, ok := b.(*gfx2d.Gfx2d)
	if !ok {
		return fmt.Errorf("backend %q is %T", gfx2d.Name, b)
	}
	if err := g.Submit(); err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	for i, dc := range dev.Draws() {
		fmt.Printf("draw %d: %d vertices, %d bytes, textures=%d\n", i, dc.Count, len(dc.Vertices), len(dc.Textures))
	}
	log.Printf("%d draws in %d submits (dialect %v)", len(dev.Draws()), dev.Submits(), d)
	return nil
}

func parseDialect(s string) (device.Dialect, error) {
	for _, d := range []device.Dialect{device.DialectGLSL120, device.DialectGLSL150, device.DialectWGSL} {
		if d.String() == s {
			return d, nil
		}
	}
	return device.DialectUnknown, fmt.Errorf("unknown dialect %q", s)
}

// fan returns n triangles around the origin, shaded by angle.
func fan(n int) backend.TriList {
	var p backend.TriList
	step := 2 * math.Pi / float64(max(n, 1))
	for i := range n {
		a0 := float64(i) * step
		a1 := a0 + step
		p.Vertices = append(p.Vertices,
			0, 0,
			float32(math.Cos(a0)), float32(math.Sin(a0)),
			float32(math.Cos(a1)), float32(math.Sin(a1)))
		t := float32(i) / float32(max(n, 1))
		for range 3 {
			p.Colors = append(p.Colors, t, 0.2, 1-t, 1)
		}
	}
	return p
}

// quad covers the center of clip space with tex.
func quad(tex *device.Texture) backend.TexturedTriList {
	white := []float32{1, 1, 1, 1}
	p := backend.TexturedTriList{
		Texture:  tex,
		Vertices: []float32{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, 0.5},
		UV:       []float32{0, 1, 1, 1, 1, 0, 0, 1, 1, 0, 0, 0},
	}
	for range 6 {
		p.Colors = append(p.Colors, white...)
	}
	return p
}

func loadTexture(dev device.Device, path string) (*device.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	log.Printf("loaded %s image %s (%dx%d)", format, path, img.Bounds().Dx(), img.Bounds().Dy())
	return texture.FromImage(dev, img, texture.WithLabel(path))
}
