// Package terminal is the terminal front end for the emulator core. It puts
// the controlling terminal into raw mode for keyboard input and renders the
// framebuffer with ANSI escape sequences, packing two pixel rows into each
// text row with half-block characters.
package terminal

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/adrichey/chip8vm/emulator"
)

// ANSI sequences for entering and leaving the rendering state.
const (
	enterScreen = "\x1b[?1049h\x1b[?25l\x1b[2J" // alternate screen, hide cursor, clear
	leaveScreen = "\x1b[?1049l\x1b[?25h"        // back to main screen, show cursor
	homeCursor  = "\x1b[H"
)

// keyHold is how long a received keyboard byte keeps its keypad key
// pressed. Terminals deliver key presses but no release events, so a key is
// held for a fixed interval and released by decay. Repeats from a held
// physical key arrive well inside the interval and extend it.
const keyHold = 100 * time.Millisecond

// Terminal owns the raw-mode state of the controlling terminal and the
// frame composition buffer. It holds no emulator state.
type Terminal struct {
	input  *os.File
	output *os.File

	// terminal attributes for restoring canonical mode on exit
	canAttr unix.Termios
	rawAttr unix.Termios

	// frame composition buffer, written to the terminal in one syscall
	frame strings.Builder

	// last time each keypad key was seen, for press decay
	seen [emulator.NumKeys]time.Time

	// previous sound state, for bell edge detection
	sounding bool

	readBuf []byte
}

// New puts the terminal into raw mode with non-blocking reads and switches
// to the alternate screen. Callers must call CleanUp before exiting or the
// user's terminal is left unusable.
func New() (*Terminal, error) {
	t := &Terminal{
		input:   os.Stdin,
		output:  os.Stdout,
		readBuf: make([]byte, 64),
	}

	if err := termios.Tcgetattr(t.input.Fd(), &t.canAttr); err != nil {
		return nil, err
	}

	t.rawAttr = t.canAttr
	termios.Cfmakeraw(&t.rawAttr)

	// VMIN=0 VTIME=0 makes reads return immediately with whatever bytes
	// are pending, which is what a per-frame poll needs
	t.rawAttr.Cc[unix.VMIN] = 0
	t.rawAttr.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.rawAttr); err != nil {
		return nil, err
	}

	if _, err := t.output.WriteString(enterScreen); err != nil {
		t.CleanUp()
		return nil, err
	}

	return t, nil
}

// CleanUp restores canonical mode and the main screen.
func (t *Terminal) CleanUp() {
	t.output.WriteString(leaveScreen)
	termios.Tcsetattr(t.input.Fd(), termios.TCIFLUSH, &t.canAttr)
}

// ProcessInput consumes pending keyboard bytes and reports the resulting
// keypad transitions through setKey. It returns true when the user asked to
// quit with Escape or Ctrl-C.
func (t *Terminal) ProcessInput(setKey func(k int, pressed bool)) bool {
	quit := false
	now := time.Now()

	n, _ := t.input.Read(t.readBuf)
	for _, c := range t.readBuf[:n] {
		switch c {
		case 0x03, 0x1b: // Ctrl-C, Escape
			quit = true
		default:
			if k, ok := keyFor(c); ok {
				t.seen[k] = now
			}
		}
	}

	for k, ts := range t.seen {
		setKey(k, !ts.IsZero() && now.Sub(ts) < keyHold)
	}

	return quit
}

// Render draws the framebuffer to the terminal. Two pixel rows share one
// text row: the upper pixel maps to the top half block, the lower to the
// bottom.
func (t *Terminal) Render(s *emulator.Screen) error {
	t.frame.Reset()
	t.frame.WriteString(homeCursor)

	for y := 0; y < emulator.ScreenHeight; y += 2 {
		for x := range emulator.ScreenWidth {
			top := s.Pixel(x, y)
			bottom := s.Pixel(x, y+1)
			switch {
			case top && bottom:
				t.frame.WriteRune('█')
			case top:
				t.frame.WriteRune('▀')
			case bottom:
				t.frame.WriteRune('▄')
			default:
				t.frame.WriteRune(' ')
			}
		}
		t.frame.WriteString("\r\n")
	}

	_, err := t.output.WriteString(t.frame.String())
	return err
}

// SetSound rings the terminal bell when the core's sound signal turns on.
// Call once per frame with the core's Sound() value.
func (t *Terminal) SetSound(on bool) {
	if on && !t.sounding {
		t.output.WriteString("\a")
	}
	t.sounding = on
}
