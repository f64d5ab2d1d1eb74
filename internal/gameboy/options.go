package gameboy

import (
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at debug level. When no logger
// is given, the default logger is created at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger used by the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithTracer sets a function to receive the trace of every executed
// instruction.
func WithTracer(fn cpu.TraceFunc) Opt {
	return func(gb *GameBoy) {
		gb.tracer = fn
	}
}
