// Package main implements the native host for the CHIP-8 emulator core: it
// selects a front end, loads a ROM and drives the core's two clocks at a
// 60Hz frame rate.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/adrichey/chip8vm/emulator"
	"github.com/adrichey/chip8vm/platform"
	"github.com/adrichey/chip8vm/terminal"
)

// romEnvVar is consulted for the ROM path when no positional argument is
// given.
const romEnvVar = "CHIP8VM_ROM"

const windowTitle = "chip8vm"

type options struct {
	ui     string
	scale  int
	cycles int
	seed   uint64
	debug  bool
	quiet  bool

	rom string
}

func main() {
	opts := readArguments()
	logger := createLogger(opts.debug, opts.quiet)

	if err := run(logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func readArguments() options {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := options{}

	flags.StringVar(&opts.ui, "ui", "sdl", "front end to use: sdl or term")
	flags.IntVar(&opts.scale, "scale", 12, "window size as a multiple of the 64x32 framebuffer (sdl front end)")
	flags.IntVar(&opts.cycles, "cycles", emulator.CyclesPerFrame, "instruction cycles per 60Hz frame")
	flags.Uint64Var(&opts.seed, "seed", 0, "random number seed, 0 seeds from the clock")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.quiet, "quiet", false, "only log errors")

	_ = flags.Parse(os.Args[1:]) // flag.ExitOnError

	args := flags.Args()
	switch {
	case len(args) > 0:
		opts.rom = args[0]
	case os.Getenv(romEnvVar) != "":
		opts.rom = os.Getenv(romEnvVar)
	default:
		fmt.Printf("usage: chip8vm [options] <rom file>\n")
		fmt.Printf("the rom file can also be given in the %s environment variable\n\n", romEnvVar)
		flags.PrintDefaults()
		os.Exit(1)
	}

	return opts
}

func run(logger *log.Logger, opts options) error {
	var rnd emulator.RandomSource
	if opts.seed != 0 {
		rnd = emulator.SeededSource(opts.seed)
	}

	emu := emulator.New(rnd)
	emu.LoadFont()

	if err := emu.LoadROMFile(opts.rom); err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	logger.Info("ROM loaded", log.String("path", opts.rom))

	switch opts.ui {
	case "sdl":
		return runSDL(logger, emu, opts)
	case "term":
		return runTerminal(logger, emu, opts)
	default:
		return fmt.Errorf("unknown front end %q", opts.ui)
	}
}

// runFrame advances the core by one 60Hz frame: the configured number of
// instruction cycles followed by a timer tick.
func runFrame(emu *emulator.Emulator, cycles int) error {
	for range cycles {
		if err := emu.RunCycle(); err != nil {
			return fmt.Errorf("cycle: %w", err)
		}
	}
	emu.TickTimers()
	return nil
}

func runSDL(logger *log.Logger, emu *emulator.Emulator, opts options) error {
	p, err := platform.New(windowTitle, int32(opts.scale))
	if err != nil {
		return fmt.Errorf("sdl front end: %w", err)
	}
	defer p.Destroy()

	logger.Debug("front end ready", log.String("ui", "sdl"))

	ticker := time.NewTicker(emulator.TimerTick)
	defer ticker.Stop()

	for range ticker.C {
		if p.ProcessInput(emu.SetKey) {
			logger.Info("Quit requested")
			return nil
		}
		if err := runFrame(emu, opts.cycles); err != nil {
			return err
		}
		if err := p.Update(emu.Screen()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		p.SetSound(emu.Sound())
	}
	return nil
}

func runTerminal(logger *log.Logger, emu *emulator.Emulator, opts options) error {
	t, err := terminal.New()
	if err != nil {
		return fmt.Errorf("terminal front end: %w", err)
	}
	defer t.CleanUp()

	logger.Debug("front end ready", log.String("ui", "term"))

	ticker := time.NewTicker(emulator.TimerTick)
	defer ticker.Stop()

	for range ticker.C {
		if t.ProcessInput(emu.SetKey) {
			return nil
		}
		if err := runFrame(emu, opts.cycles); err != nil {
			return err
		}
		if err := t.Render(emu.Screen()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		t.SetSound(emu.Sound())
	}
	return nil
}
