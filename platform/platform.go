// Package platform is the SDL2 front end for the emulator core: a scaled
// window the framebuffer is blitted into, the classic keyboard mapping and
// a square-wave beeper driven by the core's sound signal.
package platform

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/adrichey/chip8vm/emulator"
)

/*
Key mappings:
Keypad       Keyboard
+-+-+-+-+    +-+-+-+-+
|1|2|3|C|    |1|2|3|4|
+-+-+-+-+    +-+-+-+-+
|4|5|6|D|    |Q|W|E|R|
+-+-+-+-+ => +-+-+-+-+
|7|8|9|E|    |A|S|D|F|
+-+-+-+-+    +-+-+-+-+
|A|0|B|F|    |Z|X|C|V|
+-+-+-+-+    +-+-+-+-+
*/
var keyMap = map[sdl.Keycode]int{
	sdl.K_x: 0x0,
	sdl.K_1: 0x1,
	sdl.K_2: 0x2,
	sdl.K_3: 0x3,
	sdl.K_q: 0x4,
	sdl.K_w: 0x5,
	sdl.K_e: 0x6,
	sdl.K_a: 0x7,
	sdl.K_s: 0x8,
	sdl.K_d: 0x9,
	sdl.K_z: 0xA,
	sdl.K_c: 0xB,
	sdl.K_4: 0xC,
	sdl.K_r: 0xD,
	sdl.K_f: 0xE,
	sdl.K_v: 0xF,
}

const (
	pixelOn  = 0xFFFFFFFF
	pixelOff = 0x000000FF
)

// Platform owns the SDL window, renderer, streaming texture and audio
// device. It holds no emulator state; the host passes the framebuffer in
// and key transitions out.
type Platform struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	beeper   *beeper

	// staging buffer the bool framebuffer is expanded into before the
	// texture update
	pixels [emulator.ScreenHeight][emulator.ScreenWidth]uint32
}

// New initialises SDL and creates a window of scale times the framebuffer
// dimensions. Callers must call Destroy when done.
func New(title string, scale int32) (*Platform, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return nil, err
	}

	p := &Platform{}

	winWidth := int32(emulator.ScreenWidth) * scale
	winHeight := int32(emulator.ScreenHeight) * scale

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.renderer = renderer

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING,
		emulator.ScreenWidth, emulator.ScreenHeight)
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.texture = texture

	bp, err := newBeeper()
	if err != nil {
		p.Destroy()
		return nil, err
	}
	p.beeper = bp

	return p, nil
}

// Destroy tears down the SDL resources in reverse order of creation.
func (p *Platform) Destroy() {
	if p.beeper != nil {
		p.beeper.close()
	}
	if p.texture != nil {
		p.texture.Destroy()
	}
	if p.renderer != nil {
		p.renderer.Destroy()
	}
	if p.window != nil {
		p.window.Destroy()
	}
	sdl.Quit()
}

// Update blits the framebuffer to the window. SDL scales the 64x32 texture
// to the window size for us.
func (p *Platform) Update(s *emulator.Screen) error {
	for y := range emulator.ScreenHeight {
		for x := range emulator.ScreenWidth {
			if s.Pixel(x, y) {
				p.pixels[y][x] = pixelOn
			} else {
				p.pixels[y][x] = pixelOff
			}
		}
	}

	pitch := emulator.ScreenWidth * 4
	if err := p.texture.Update(nil, unsafe.Pointer(&p.pixels), pitch); err != nil {
		return err
	}
	if err := p.renderer.Clear(); err != nil {
		return err
	}
	if err := p.renderer.Copy(p.texture, nil, nil); err != nil {
		return err
	}
	p.renderer.Present()
	return nil
}

// ProcessInput drains the SDL event queue, reporting key transitions
// through setKey. It returns true when the user asked to quit, either by
// closing the window or pressing Escape.
func (p *Platform) ProcessInput(setKey func(k int, pressed bool)) bool {
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			pressed := t.Type == sdl.KEYDOWN

			if t.Keysym.Sym == sdl.K_ESCAPE {
				if pressed {
					quit = true
				}
				continue
			}
			if k, ok := keyMap[t.Keysym.Sym]; ok {
				setKey(k, pressed)
			}
		}
	}

	return quit
}

// SetSound starts or stops the beeper. Call once per frame with the core's
// Sound() value.
func (p *Platform) SetSound(on bool) {
	p.beeper.set(on)
}
