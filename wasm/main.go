//go:build js && wasm

// Command wasm is the web front end for the emulator core. It blits the
// framebuffer into a 2D canvas from a requestAnimationFrame loop and maps
// browser key events onto the keypad. The hosting page supplies a canvas
// with id "screen", feeds ROM bytes to the exported chip8vmLoadROM function
// and may poll chip8vmSound to drive a Web Audio beeper.
package main

import (
	"syscall/js"

	"github.com/adrichey/chip8vm/emulator"
)

const pixelSize = 10

// the same 1234/qwer/asdf/zxcv layout as the native front ends, keyed by
// the browser's KeyboardEvent.key values
var keyMap = map[string]int{
	"x": 0x0,
	"1": 0x1,
	"2": 0x2,
	"3": 0x3,
	"q": 0x4,
	"w": 0x5,
	"e": 0x6,
	"a": 0x7,
	"s": 0x8,
	"d": 0x9,
	"z": 0xA,
	"c": 0xB,
	"4": 0xC,
	"r": 0xD,
	"f": 0xE,
	"v": 0xF,
}

type app struct {
	emu     *emulator.Emulator
	ctx     js.Value
	running bool

	// kept alive for the duration of the program so the funcs are not
	// collected while JS still references them
	frameFn js.Func
}

func main() {
	a := &app{emu: emulator.New(nil)}
	a.emu.LoadFont()

	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "screen")
	canvas.Set("width", emulator.ScreenWidth*pixelSize)
	canvas.Set("height", emulator.ScreenHeight*pixelSize)
	a.ctx = canvas.Call("getContext", "2d")

	a.frameFn = js.FuncOf(a.frame)

	js.Global().Set("chip8vmLoadROM", js.FuncOf(a.loadROM))
	js.Global().Set("chip8vmSound", js.FuncOf(a.sound))
	doc.Call("addEventListener", "keydown", js.FuncOf(a.keyDown))
	doc.Call("addEventListener", "keyup", js.FuncOf(a.keyUp))

	// block forever; everything further happens in JS callbacks
	select {}
}

// loadROM resets the core, loads the Uint8Array passed from JS and starts
// the frame loop. Returns an error string or null.
func (a *app) loadROM(_ js.Value, args []js.Value) any {
	if len(args) != 1 {
		return "expected one Uint8Array argument"
	}

	rom := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(rom, args[0])

	a.emu.Reset()
	a.emu.LoadFont()
	if err := a.emu.LoadROM(rom); err != nil {
		return err.Error()
	}

	if !a.running {
		a.running = true
		js.Global().Call("requestAnimationFrame", a.frameFn)
	}
	return nil
}

func (a *app) sound(js.Value, []js.Value) any {
	return a.emu.Sound()
}

func (a *app) keyDown(_ js.Value, args []js.Value) any {
	a.setKey(args[0], true)
	return nil
}

func (a *app) keyUp(_ js.Value, args []js.Value) any {
	a.setKey(args[0], false)
	return nil
}

func (a *app) setKey(event js.Value, pressed bool) {
	if k, ok := keyMap[event.Get("key").String()]; ok {
		a.emu.SetKey(k, pressed)
		event.Call("preventDefault")
	}
}

// frame runs one 60Hz frame of the core and repaints the canvas. A cycle
// error stops the loop and is reported on the console; the ROM is bad.
func (a *app) frame(js.Value, []js.Value) any {
	if err := a.emu.RunFrame(); err != nil {
		js.Global().Get("console").Call("error", err.Error())
		a.running = false
		return nil
	}

	a.paint()

	js.Global().Call("requestAnimationFrame", a.frameFn)
	return nil
}

func (a *app) paint() {
	s := a.emu.Screen()

	a.ctx.Set("fillStyle", "#000000")
	a.ctx.Call("fillRect", 0, 0, emulator.ScreenWidth*pixelSize, emulator.ScreenHeight*pixelSize)

	a.ctx.Set("fillStyle", "#FFFFFF")
	for y := range emulator.ScreenHeight {
		for x := range emulator.ScreenWidth {
			if s.Pixel(x, y) {
				a.ctx.Call("fillRect", x*pixelSize, y*pixelSize, pixelSize, pixelSize)
			}
		}
	}
}
