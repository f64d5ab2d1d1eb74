// Package main implements dmgcore, which runs a cartridge image on the
// CPU until it faults or is interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/andybalholm/brotli"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/internal/gameboy"
	"github.com/thelolagemann/dmgcore/internal/mmu"
	"github.com/thelolagemann/dmgcore/pkg/log"
	"github.com/thelolagemann/dmgcore/pkg/utils"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	rom  string
	dump string

	trace bool
	debug bool
	quiet bool
}

func main() {
	options := readArguments()

	if !options.quiet {
		printBanner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, options)
	stop()

	if err != nil {
		fmt.Println(fmt.Errorf("running failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.StringVar(&options.rom, "rom", "", "the rom file to load (.gb, optionally .gz, .xz, .zip or .7z compressed)")
	flags.StringVar(&options.dump, "dump", "", "write a memory dump to this file on fault; .txt for a hex dump, .br suffix to compress")
	flags.BoolVar(&options.trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&options.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&options.quiet, "q", false, "do not print the banner")

	err := flags.Parse(os.Args[1:])
	if err == nil && options.rom == "" && flags.NArg() > 0 {
		options.rom = flags.Arg(0)
	}

	if err != nil || options.rom == "" {
		printBanner()
		fmt.Printf("usage: dmgcore [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}

	return options
}

func printBanner() {
	fmt.Println("[--------------------------------]")
	fmt.Println("[ dmgcore - Game Boy CPU runner  ]")
	fmt.Printf("[--------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(ctx context.Context, options optionFlags) error {
	rom, err := utils.LoadFile(options.rom)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}

	logger := log.NewWithOutput(os.Stderr, options.debug || options.trace)
	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if options.trace {
		opts = append(opts, gameboy.Debug())
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}

	err = gb.Run(ctx)
	if errors.Is(err, cpu.ErrStopped) {
		return nil
	}

	var fault *cpu.Fault
	if errors.As(err, &fault) && options.dump != "" {
		if dumpErr := writeDump(options.dump, gb.MMU, fault); dumpErr != nil {
			return errors.Join(err, dumpErr)
		}
		logger.Infof("Wrote memory dump to %s", options.dump)
	}
	return err
}

// writeDump writes the address space at the time of the fault to path.
func writeDump(path string, mem *mmu.MMU, fault *cpu.Fault) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	var w io.Writer = f
	name := path
	if filepath.Ext(name) == ".br" {
		bw := brotli.NewWriterLevel(f, brotli.BestCompression)
		defer func() {
			if closeErr := bw.Close(); err == nil {
				err = closeErr
			}
		}()
		w = bw
		name = strings.TrimSuffix(name, ".br")
	}

	if filepath.Ext(name) == ".txt" {
		return mem.WriteDump(w)
	}
	_, err = w.Write(fault.Dump)
	return err
}
