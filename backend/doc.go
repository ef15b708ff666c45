// Package backend defines the contract between a generic 2D drawing front
// end and the backends that turn its primitives into GPU submissions.
//
// # Capability Negotiation
//
// A backend accepts some set of primitive encodings. Front ends query the
// set before committing to one, and decompose into a supported encoding
// otherwise:
//
//	for _, e := range backend.Encodings(b) {
//		fmt.Println("accepts", e)
//	}
//
//	err := backend.Dispatch(b, backend.TriList{Vertices: v, Colors: c})
//	if errors.Is(err, backend.ErrUnsupportedEncoding) {
//		// fall back
//	}
//
// # Backend Registration
//
// Backends are registered via init() functions and opened by name on a
// live device:
//
//	import _ "github.com/gogpu/gfx2d"
//
//	b, err := backend.Open("gfx2d", dev)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
// # Available Backends
//
// - "gfx2d": flat and textured triangle lists batched into fixed-size buffers
package backend
