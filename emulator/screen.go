package emulator

const (
	// ScreenWidth is the framebuffer width in pixels.
	ScreenWidth = 64

	// ScreenHeight is the framebuffer height in pixels.
	ScreenHeight = 32

	// ScreenArea is the total pixel count.
	ScreenArea = ScreenWidth * ScreenHeight
)

// Screen is the monochrome framebuffer. Pixels are stored row-major; only
// the clear (00E0) and draw (Dxyn) instructions mutate them.
type Screen struct {
	pixels [ScreenArea]bool
}

// Pixel returns the state of the pixel at (x, y). Coordinates must be
// within [0,ScreenWidth) and [0,ScreenHeight).
func (s *Screen) Pixel(x, y int) bool {
	return s.pixels[y*ScreenWidth+x]
}

// Pixels returns the row-major pixel grid. Callers must not modify it.
func (s *Screen) Pixels() []bool {
	return s.pixels[:]
}

func (s *Screen) clear() {
	s.pixels = [ScreenArea]bool{}
}

// xor flips the pixel at (x, y) and reports whether the flip turned a set
// pixel off, which is the sprite collision condition.
func (s *Screen) xor(x, y int) bool {
	i := y*ScreenWidth + x
	s.pixels[i] = !s.pixels[i]
	return !s.pixels[i]
}
