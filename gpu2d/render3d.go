package gpu2d

// Renderer3D is the narrow control surface this package needs from the 3D
// rasterizer (spec.md §6). Everything else about 3D rendering — geometry,
// shading, the texture cache itself — is out of scope.
type Renderer3D interface {
	// IsAccelerated reports whether the 3D backend renders on the GPU,
	// meaning its line buffer's colors aren't resolvable on the CPU yet.
	IsAccelerated() bool
	// Line returns the 256 composited 3D pixels for scanline n. Each is a
	// 32-bit color with source alpha (0-31) in bits 24-28; alpha 0 means
	// transparent.
	Line(n int) [256]uint32
	// RenderXPos returns the 3D engine's current X offset, used only to
	// annotate the accelerated-path control pixel (spec.md §4.4).
	RenderXPos() int
	// PrepareCaptureFrame is called once per capture frame so an
	// accelerated backend can latch its output before the CPU reads it.
	PrepareCaptureFrame()
}

// NullRenderer3D is a non-accelerated Renderer3D that contributes nothing —
// useful for tests and for units that never enable the 3D layer.
type NullRenderer3D struct{}

func (NullRenderer3D) IsAccelerated() bool        { return false }
func (NullRenderer3D) Line(int) [256]uint32       { return [256]uint32{} }
func (NullRenderer3D) RenderXPos() int            { return 0 }
func (NullRenderer3D) PrepareCaptureFrame()       {}
