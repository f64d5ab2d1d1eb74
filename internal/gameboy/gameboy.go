// Package gameboy wires a cartridge image to the CPU and its memory bus,
// and drives execution.
package gameboy

import (
	"context"
	"errors"
	"os"

	"github.com/thelolagemann/dmgcore/internal/cartridge"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU       *cpu.CPU
	MMU       *mmu.MMU
	Cartridge *cartridge.Cartridge

	log.Logger

	debug  bool
	tracer cpu.TraceFunc
}

// NewGameBoy returns a new GameBoy for the given cartridge image. The
// image is validated before any component is created: a title that is
// not text is an error, while a bad logo or header checksum is only
// logged as a warning.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{}
	for _, opt := range opts {
		opt(g)
	}
	if g.Logger == nil {
		g.Logger = log.NewWithOutput(os.Stderr, g.debug)
	}

	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, err
	}
	g.Cartridge = cart
	g.validate()

	g.MMU = mmu.NewMMU()
	g.MMU.Log = g.Logger
	g.CPU = cpu.NewCPU(g.MMU, cpu.WithLogger(g.Logger), cpu.WithTracer(g.trace))

	return g, nil
}

// validate logs the cartridge header, and any validation warnings.
func (g *GameBoy) validate() {
	header := g.Cartridge.Header()
	g.Infof("Cartridge: %s", header.String())
	g.Debugf("Fingerprint: %016x", g.Cartridge.Fingerprint())

	if header.CartridgeType.BankSwitched() {
		g.Warnf("cartridge type %s is bank switched, only the fixed bank is mapped", header.CartridgeType)
	}

	err := g.Cartridge.Validate()
	if err == nil {
		return
	}
	if errors.Is(err, cartridge.ErrInvalidLogo) {
		g.Warnf("Expected logo:\n\t%s\nFound:\n\t%s", utils.HexDump(cartridge.Logo(), "\t"), utils.HexDump(header.Logo(), "\t"))
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			g.Warnf("%v", e)
		}
		return
	}
	g.Warnf("%v", err)
}

// trace receives every executed instruction.
func (g *GameBoy) trace(t cpu.Trace) {
	if g.debug {
		g.Debugf("%s", t)
	}
	if g.tracer != nil {
		g.tracer(t)
	}
}

// Run starts the emulation. It blocks until the CPU faults or ctx is
// done, returning the error that stopped the CPU.
func (g *GameBoy) Run(ctx context.Context) error {
	g.Infof("Starting emulation")
	err := g.CPU.Run(ctx, g.Cartridge.ROM())

	var fault *cpu.Fault
	switch {
	case errors.Is(err, cpu.ErrStopped):
		g.Infof("Stopped after %d instructions", g.CPU.Steps())
	case errors.As(err, &fault):
		g.Errorf("Halted after %d instructions: %v", g.CPU.Steps(), fault)
	case err != nil:
		g.Errorf("%v", err)
	}
	return err
}
